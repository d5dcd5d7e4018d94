// Package cmdtree defines the command descriptors, the registry that holds
// them, the per-mode visibility policies, and the prefix matching and help
// helpers shared by the dispatcher and tab completion.
//
// Static commands are visible through a fixed allow-list per mode.
// Commands registered later with RegisterDynamic carry their own list of
// modes and are visible through the mode hierarchy. Both are served by one
// Visible query, so the dispatcher resolves them the same way.
package cmdtree

import (
	"errors"

	"github.com/psaab/pnfcli/pkg/session"
)

// ErrExit is returned by a handler to end the shell cleanly.
var ErrExit = errors.New("exit")

// ExecFunc runs a command. args excludes the command name.
type ExecFunc func(args []string, s *session.Session) error

// Command describes one top-level command.
type Command struct {
	Name string
	Desc string
	// Subcommands are matched by unique prefix when exactly one argument is
	// given, and listed by "<cmd> ?". Order is kept for display.
	Subcommands []string
	// Options are argument hints shown by help when there are no
	// Subcommands.
	Options []string
	Exec    ExecFunc
}

// Candidate holds a name and its description for display.
type Candidate struct {
	Name string
	Desc string
}
