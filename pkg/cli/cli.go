// Package cli implements the interactive router shell: the line
// dispatcher, contextual help, output pipes, tab completion and the
// readline loop that drives them.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/session"
)

const interruptMessage = "Ctrl+C pressed, but waiting for 'exit cli' command to exit..."

// Options configures a CLI.
type Options struct {
	HistoryFile string    // empty disables persistent history
	Stdin       io.Reader // defaults to os.Stdin
	Stdout      io.Writer // defaults to os.Stdout
	Metrics     *Metrics  // nil disables counting
	// Plain reads input line by line without readline, even on a terminal.
	Plain bool
}

// CLI is the interactive command-line interface.
type CLI struct {
	disp *Dispatcher
	opts Options
	rl   *readline.Instance
}

// New creates a CLI dispatching into reg on behalf of sess.
func New(reg *cmdtree.Registry, sess *session.Session, opts Options) *CLI {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &CLI{
		disp: NewDispatcher(reg, sess, opts.Metrics),
		opts: opts,
	}
}

// Dispatcher returns the dispatcher behind the loop.
func (c *CLI) Dispatcher() *Dispatcher {
	return c.disp
}

// Run reads and executes lines until "exit cli", "exit ssh" or end of
// input. A terminal gets line editing, history and "?" help on the key;
// anything else is read line by line.
func (c *CLI) Run() error {
	if f, ok := c.opts.Stdin.(*os.File); ok && !c.opts.Plain && term.IsTerminal(int(f.Fd())) {
		return c.runInteractive(f)
	}
	return c.runPlain()
}

func (c *CLI) runInteractive(stdin *os.File) error {
	sess := c.disp.Session()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 sess.Prompt(),
		HistoryFile:            c.opts.HistoryFile,
		DisableAutoSaveHistory: true,
		HistorySearchFold:      true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		AutoComplete:           &completer{d: c.disp},
		Listener:               readline.FuncListener(c.helpKey),
		Stdin:                  stdin,
		Stdout:                 c.opts.Stdout,
		Stderr:                 c.opts.Stdout,
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()
	c.rl = rl

	out := rl.Stdout()
	sess.Out = out
	sess.Prompter = &readlinePrompter{rl: rl}
	if sess.Console != nil {
		sess.Console.SetOutput(out)
	}

	stop := c.watchInterrupts(out, rl.Refresh)
	defer stop()

	for {
		fmt.Fprintln(out)
		rl.SetPrompt(sess.Prompt())
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Fprintln(out, interruptMessage)
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if keepInHistory(line) {
			if err := rl.SaveHistory(line); err != nil {
				sess.Log.Warn("history not saved", "err", err)
			}
		}
		if c.execute(line) {
			return nil
		}
	}
}

func (c *CLI) runPlain() error {
	sess := c.disp.Session()
	p := NewLinePrompter(c.opts.Stdin, c.opts.Stdout)
	sess.Out = c.opts.Stdout
	sess.Prompter = p

	stop := c.watchInterrupts(c.opts.Stdout, nil)
	defer stop()

	for {
		fmt.Fprintln(c.opts.Stdout)
		line, err := p.ReadLine(sess.Prompt())
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		if keepInHistory(line) {
			if err := c.appendHistory(line); err != nil {
				sess.Log.Warn("history not saved", "err", err)
			}
		}
		if c.execute(line) {
			return nil
		}
	}
}

// keepInHistory reports whether line belongs in the history file. Lines
// starting with a space stay out.
func keepInHistory(line string) bool {
	return strings.TrimSpace(line) != "" && !strings.HasPrefix(line, " ")
}

// appendHistory adds line to the history file, in the one-line-per-entry
// format readline loads on the next interactive start.
func (c *CLI) appendHistory(line string) error {
	if c.opts.HistoryFile == "" {
		return nil
	}
	f, err := os.OpenFile(c.opts.HistoryFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return fmt.Errorf("write history: %w", err)
	}
	return f.Close()
}

// execute records and runs one line and reports whether the loop should
// end.
func (c *CLI) execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	sess := c.disp.Session()
	sess.History = append(sess.History, line)
	return errors.Is(c.disp.Execute(line), ErrExit)
}

// helpKey answers "?" as soon as it is typed, then removes it from the
// line.
func (c *CLI) helpKey(line []rune, pos int, key rune) ([]rune, int, bool) {
	if key != '?' || pos < 1 {
		return line, pos, false
	}
	// Strip the '?' that readline already inserted.
	cleanLine := make([]rune, 0, len(line)-1)
	cleanLine = append(cleanLine, line[:pos-1]...)
	cleanLine = append(cleanLine, line[pos:]...)
	c.disp.Help(string(cleanLine[:pos-1]))
	return cleanLine, pos - 1, true
}

// watchInterrupts keeps SIGINT from ending the process while a command
// runs. The returned function stops watching.
func (c *CLI) watchInterrupts(out io.Writer, refresh func()) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		for range sigCh {
			fmt.Fprintln(out, "\n"+interruptMessage)
			if refresh != nil {
				refresh()
			}
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(sigCh)
	}
}
