package commands

import (
	"errors"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/session"
)

// RegisterHello adds the hello greeting as a dynamic command allowed in
// User, Privileged and Config mode. Interface mode inherits it.
func RegisterHello(reg *cmdtree.Registry) error {
	return reg.RegisterDynamic(&cmdtree.Command{
		Name:        "hello",
		Desc:        "Prints a greeting message",
		Subcommands: []string{"world", "friend", "privileged", "config"},
		Exec:        hello,
	}, mode.User, mode.Privileged, mode.Config)
}

func hello(args []string, s *session.Session) error {
	if len(args) == 0 {
		s.Println("Hello there!")
		return nil
	}
	switch args[0] {
	case "world":
		s.Println("Hello, World!")
	case "friend":
		s.Println("Hello, Friend!")
	case "privileged":
		if s.Mode != mode.Privileged {
			return errors.New("This 'hello privileged' is only valid in Privileged Mode")
		}
		s.Println("Hello in Privileged Mode!")
	case "config":
		if s.Mode != mode.Config {
			return errors.New("This 'hello config' is only valid in Config Mode")
		}
		s.Println("Hello in Config Mode!")
	default:
		s.Printf("Hello, %s!\n", args[0])
	}
	return nil
}
