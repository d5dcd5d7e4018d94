// Package commands holds the built-in command catalogue of the router
// shell. Handlers write their output to the session and return errors
// instead of printing them; the dispatcher prints "Error: <message>".
package commands

import (
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/session"
)

// Builtins returns the static command descriptors.
func Builtins() []*cmdtree.Command {
	var cmds []*cmdtree.Command
	cmds = append(cmds, execCommands()...)
	cmds = append(cmds, configCommands()...)
	cmds = append(cmds, interfaceCommands()...)
	cmds = append(cmds, routingCommands()...)
	cmds = append(cmds, aclCommands()...)
	cmds = append(cmds, cryptoCommands()...)
	cmds = append(cmds, vlanCommands()...)
	cmds = append(cmds, showCommand(), ntpCommand(), ipCommand(), noCommand())
	return cmds
}

// Register adds the built-in commands to reg as static commands and the
// hello command as a dynamic one.
func Register(reg *cmdtree.Registry) error {
	for _, cmd := range Builtins() {
		if err := reg.Register(cmd); err != nil {
			return err
		}
	}
	return RegisterHello(reg)
}

// words rejoins args and splits them again, so a resolved multi-word
// subcommand such as "crypto key" arrives as separate tokens.
func words(args []string) []string {
	return strings.Fields(strings.Join(args, " "))
}

func in(s *session.Session, kinds ...mode.Kind) bool {
	for _, k := range kinds {
		if s.Mode.Kind == k {
			return true
		}
	}
	return false
}

// ask prompts and returns the trimmed, lowercased answer.
func ask(s *session.Session, prompt string) (string, error) {
	line, err := s.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// readBlock reads pasted lines until a blank line.
func readBlock(s *session.Session) (string, error) {
	var lines []string
	for {
		line, err := s.ReadLine("")
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// expand resolves the first argument against subs by unique prefix so that
// "ip add ..." reads as "ip address ...". Unresolved arguments are kept.
func expand(args []string, subs ...string) []string {
	if len(args) == 0 {
		return args
	}
	if full, ok := cmdtree.Resolve(args[0], subs); ok {
		return append([]string{full}, args[1:]...)
	}
	return args
}
