// Package session holds the per-shell context that command handlers read
// and mutate: the current mode, the selected interface or VLAN, the
// configuration aggregate and the device state.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/psaab/pnfcli/pkg/clock"
	"github.com/psaab/pnfcli/pkg/configstore"
	"github.com/psaab/pnfcli/pkg/logging"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/netstate"
)

// ErrNoInterface is returned by interface commands when nothing is selected.
var ErrNoInterface = errors.New("No interface selected. Use the 'interface' command first.")

// Prompter reads operator input in the middle of a command.
type Prompter interface {
	ReadLine(prompt string) (string, error)
	// ReadPassword reads without echo where the terminal allows it.
	ReadPassword(prompt string) (string, error)
}

// Session is owned by the REPL driver and handed to one handler at a time.
type Session struct {
	ID        string
	Mode      mode.Mode
	Interface string // selected interface, or "a - b" for a range
	Range     bool
	Vlan      int

	Config *configstore.Config
	Net    *netstate.State
	Clock  *clock.Clock // nil when no clock is available
	Store  *configstore.Store

	Out      io.Writer
	Prompter Prompter
	Log      *slog.Logger
	Console  *logging.ConsoleHandler // nil disables debug mirroring

	// History is the accepted input of this session.
	History []string
}

// New returns a session in User mode with default configuration.
func New(out io.Writer, p Prompter) *Session {
	return &Session{
		Mode:     mode.User,
		Config:   configstore.Default(),
		Net:      netstate.New(),
		Clock:    clock.New(),
		Out:      out,
		Prompter: p,
		Log:      slog.Default(),
	}
}

// Prompt returns the prompt for the current mode.
func (s *Session) Prompt() string {
	return mode.Prompt(s.Config.Hostname, s.Mode, s.Range)
}

// SetMode switches mode and logs the transition.
func (s *Session) SetMode(m mode.Mode) {
	if m != s.Mode {
		s.Log.Debug("mode change", "from", s.Mode.String(), "to", m.String())
	}
	s.Mode = m
}

// ClearSelection forgets the selected interface, range and VLAN.
func (s *Session) ClearSelection() {
	s.Interface = ""
	s.Range = false
	s.Vlan = 0
}

// SelectedInterfaces returns the interfaces the selection covers. A range
// "a - b" covers both ends and, when they share a prefix ending in a
// number, everything between.
func (s *Session) SelectedInterfaces() ([]string, error) {
	if s.Interface == "" {
		return nil, ErrNoInterface
	}
	if !s.Range {
		return []string{s.Interface}, nil
	}
	first, last, ok := strings.Cut(s.Interface, " - ")
	if !ok {
		return []string{s.Interface}, nil
	}
	return expandRange(strings.TrimSpace(first), strings.TrimSpace(last)), nil
}

// Printf writes formatted output to the session.
func (s *Session) Printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

// Println writes one line to the session.
func (s *Session) Println(line string) {
	io.WriteString(s.Out, line+"\n")
}

// ReadLine prompts through the session's Prompter.
func (s *Session) ReadLine(prompt string) (string, error) {
	if s.Prompter == nil {
		return "", errors.New("no input available")
	}
	return s.Prompter.ReadLine(prompt)
}

// ReadPassword prompts for a secret through the session's Prompter.
func (s *Session) ReadPassword(prompt string) (string, error) {
	if s.Prompter == nil {
		return "", errors.New("no input available")
	}
	return s.Prompter.ReadPassword(prompt)
}
