package cli

import (
	"bytes"
	"errors"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/session"
)

// ErrExit ends the shell with status 0. Handlers return it for "exit ssh".
var ErrExit = cmdtree.ErrExit

// Dispatcher turns one input line into a help listing or a command call.
type Dispatcher struct {
	reg     *cmdtree.Registry
	sess    *session.Session
	metrics *Metrics
}

// NewDispatcher returns a dispatcher over reg acting on sess. metrics may
// be nil.
func NewDispatcher(reg *cmdtree.Registry, sess *session.Session, metrics *Metrics) *Dispatcher {
	return &Dispatcher{reg: reg, sess: sess, metrics: metrics}
}

// Session returns the session the dispatcher acts on.
func (d *Dispatcher) Session() *session.Session {
	return d.sess
}

// Execute runs one line. Command failures are printed, not returned; the
// only error is ErrExit, which asks the caller to stop reading input.
func (d *Dispatcher) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasSuffix(line, "?") {
		d.Help(strings.TrimRight(line, "?"))
		return nil
	}
	if line == "exit cli" {
		d.sess.Println("Exiting CLI...")
		return ErrExit
	}
	if cmd, p, ok := extractPipe(line); ok {
		return d.executePiped(cmd, p)
	}
	return d.dispatch(line)
}

// executePiped runs cmd with output captured, then writes the filtered
// result to the session output.
func (d *Dispatcher) executePiped(cmd string, p pipe) error {
	out := d.sess.Out
	var buf bytes.Buffer
	d.sess.Out = &buf
	err := d.dispatch(cmd)
	d.sess.Out = out

	if ferr := p.apply(out, buf.String()); ferr != nil {
		d.sess.Printf("Error: %v\n", ferr)
	}
	return err
}

func (d *Dispatcher) dispatch(line string) error {
	parts := strings.Fields(line)
	name, ok := cmdtree.Resolve(parts[0], d.reg.Visible(d.sess.Mode))
	if !ok {
		d.metrics.miss("command")
		d.sess.Printf("Ambiguous command or command not available in current mode: %s\n", parts[0])
		return nil
	}
	cmd, ok := d.reg.Lookup(name)
	if !ok {
		return nil
	}

	args := parts[1:]
	if len(cmd.Subcommands) > 0 {
		switch len(args) {
		case 0:
			d.sess.Println("Incomplete command. Subcommand required.")
			return nil
		case 1:
			sub, ok := cmdtree.Resolve(args[0], cmd.Subcommands)
			if !ok {
				d.metrics.miss("subcommand")
				d.sess.Printf("Ambiguous or invalid subcommand: %s\n", args[0])
				return nil
			}
			args = []string{sub}
		}
	}

	from := d.sess.Mode
	d.sess.Log.Debug("dispatch", "command", name, "args", args, "mode", from.String())
	err := cmd.Exec(args, d.sess)
	if d.sess.Mode != from {
		d.metrics.transition(d.sess.Mode.Kind.String())
	}
	if errors.Is(err, ErrExit) {
		d.metrics.command(name, nil)
		return ErrExit
	}
	d.metrics.command(name, err)
	if err != nil {
		d.sess.Printf("Error: %v\n", err)
	}
	return nil
}
