package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/netstate"
	"github.com/psaab/pnfcli/pkg/session"
)

func aclCommands() []*cmdtree.Command {
	return []*cmdtree.Command{
		{Name: "access-list", Desc: "Configure a numbered ACL", Options: []string{"<number>     - 1-99 standard, 100-199 extended"}, Exec: accessList},
		{Name: "deny", Desc: "Add a deny entry to the ACL (standard or extended)", Exec: aclEntry("deny")},
		{Name: "permit", Desc: "Add a permit entry to the ACL (standard or extended)", Exec: aclEntry("permit")},
	}
}

// numberedKind returns the list kind implied by an IOS list number.
func numberedKind(n int) netstate.ACLKind {
	if (n >= 100 && n <= 199) || (n >= 2000 && n <= 2699) {
		return netstate.ACLExtended
	}
	return netstate.ACLStandard
}

func accessList(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'access-list' command is only available in global configuration mode.")
	}
	syntax := errors.New("Invalid syntax. Use 'access-list <number> {deny|permit} <source_ip> <wildcard_mask>'.")
	if len(args) < 3 {
		return syntax
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return syntax
	}
	action := strings.ToLower(args[1])
	if action != "permit" && action != "deny" {
		return syntax
	}
	kind := numberedKind(n)
	if acl, ok := s.Net.ACLs[args[0]]; ok {
		kind = acl.Kind
	}
	var entry netstate.ACLEntry
	if kind == netstate.ACLExtended {
		entry, err = netstate.ParseExtended(action, args[2:])
	} else {
		entry, err = netstate.ParseStandard(action, args[2:])
	}
	if err != nil {
		return err
	}
	acl := s.Net.ACL(args[0], kind)
	acl.Entries = append(acl.Entries, entry)
	s.Printf("ACL %s updated.\n", args[0])
	return nil
}

func aclEntry(action string) cmdtree.ExecFunc {
	title := strings.ToUpper(action[:1]) + action[1:]
	return func(args []string, s *session.Session) error {
		if !s.Mode.IsACL() {
			return errors.New("This command is only available in ACL configuration mode.")
		}
		acl, ok := s.Net.ACLs[s.Mode.ACL]
		if !ok {
			return fmt.Errorf("ACL '%s' not found.", s.Mode.ACL)
		}
		var (
			entry netstate.ACLEntry
			err   error
		)
		if s.Mode.Kind == mode.KindStdNacl {
			entry, err = netstate.ParseStandard(action, args)
		} else {
			entry, err = netstate.ParseExtended(action, args)
		}
		if err != nil {
			return err
		}
		acl.Entries = append(acl.Entries, entry)
		s.Printf("%s entry added to %s ACL '%s'.\n", title, acl.Kind, acl.Name)
		return nil
	}
}
