package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// readlinePrompter reads answers to in-command questions through the
// shell's readline instance without recording them in history.
type readlinePrompter struct {
	rl *readline.Instance
}

func (p *readlinePrompter) ReadLine(prompt string) (string, error) {
	p.rl.HistoryDisable()
	defer p.rl.HistoryEnable()
	p.rl.SetPrompt(prompt)
	return p.rl.Readline()
}

func (p *readlinePrompter) ReadPassword(prompt string) (string, error) {
	b, err := p.rl.ReadPassword(prompt)
	return string(b), err
}

// LinePrompter reads plain lines from a reader. Passwords are read without
// echo when the input is a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // -1 unless the input is a file
}

// NewLinePrompter returns a prompter reading from in and writing prompts
// to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &LinePrompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// ReadLine prints prompt and returns the next line without its newline.
// A final line without a newline is returned before io.EOF.
func (p *LinePrompter) ReadLine(prompt string) (string, error) {
	io.WriteString(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword prints prompt and reads a line, hiding it on a terminal.
func (p *LinePrompter) ReadPassword(prompt string) (string, error) {
	if p.fd < 0 || !term.IsTerminal(p.fd) {
		return p.ReadLine(prompt)
	}
	io.WriteString(p.out, prompt)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
