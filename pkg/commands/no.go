package commands

import (
	"errors"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/session"
)

func noCommand() *cmdtree.Command {
	return &cmdtree.Command{
		Name: "no",
		Desc: "Negate a command or set its defaults",
		Subcommands: []string{
			"shutdown", "ntp", "crypto dynamic-map", "crypto engine accelerator",
			"crypto ipsec security-association lifetime", "crypto ipsec transform-set",
			"crypto map",
		},
		Exec: no,
	}
}

func no(args []string, s *session.Session) error {
	args = words(args)
	if len(args) == 0 {
		return errors.New("Invalid arguments provided to 'no'.")
	}
	switch args[0] {
	case "shutdown":
		if len(args) != 1 {
			return errors.New("Invalid arguments provided to 'no shutdown'. This command does not accept additional arguments.")
		}
		return noShutdown(s)
	case "ntp":
		return noNTP(args[1:], s)
	case "crypto":
		return noCrypto(args[1:], s)
	}
	return errors.New("Invalid arguments provided to 'no'.")
}
