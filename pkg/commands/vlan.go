package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/session"
)

// VLAN id bounds.
const (
	minVlan = 1
	maxVlan = 4094
)

func vlanCommands() []*cmdtree.Command {
	return []*cmdtree.Command{
		{Name: "vlan", Desc: "Create a VLAN and enter VLAN configuration mode", Options: []string{"<vlan-id>       - Enter the VLAN id (1-4094)"}, Exec: vlan},
		{Name: "name", Desc: "Set the name of the VLAN", Options: []string{"<name>       - Enter the VLAN name"}, Exec: vlanName},
		{Name: "state", Desc: "Set the operational state of the VLAN", Subcommands: []string{"active", "suspend"}, Exec: vlanState},
		{Name: "switchport", Desc: "Set the switching characteristics of the interface", Subcommands: []string{"mode", "access"}, Exec: switchport},
	}
}

func parseVlanID(v string) (int, error) {
	id, err := strconv.Atoi(v)
	if err != nil || id < minVlan || id > maxVlan {
		return 0, fmt.Errorf("Invalid VLAN id '%s'. It must be a number between %d and %d.", v, minVlan, maxVlan)
	}
	return id, nil
}

func vlan(args []string, s *session.Session) error {
	if !in(s, mode.KindConfig, mode.KindVlan) {
		return errors.New("The 'vlan' command is only available in Global Configuration mode and VLAN mode.")
	}
	if len(args) != 1 {
		return errors.New("Usage: vlan <vlan-id>")
	}
	id, err := parseVlanID(args[0])
	if err != nil {
		return err
	}
	s.Net.VLAN(id)
	s.ClearSelection()
	s.Vlan = id
	s.SetMode(mode.Vlan)
	s.Printf("Entering VLAN configuration mode for VLAN %d.\n", id)
	return nil
}

func selectedVlan(s *session.Session, name string) (int, error) {
	if s.Mode != mode.Vlan {
		return 0, fmt.Errorf("The '%s' command is only available in VLAN mode.", name)
	}
	if s.Vlan == 0 {
		return 0, errors.New("No VLAN selected. Use the 'vlan' command first.")
	}
	return s.Vlan, nil
}

func vlanName(args []string, s *session.Session) error {
	id, err := selectedVlan(s, "name")
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("Usage: name <vlan-name>")
	}
	v := s.Net.VLAN(id)
	v.Name = strings.Join(args, " ")
	s.Printf("VLAN %d name set to '%s'.\n", id, v.Name)
	return nil
}

func vlanState(args []string, s *session.Session) error {
	id, err := selectedVlan(s, "state")
	if err != nil {
		return err
	}
	if len(args) != 1 || (args[0] != "active" && args[0] != "suspend") {
		return errors.New("Usage: state {active | suspend}")
	}
	s.Net.VLAN(id).State = args[0]
	s.Printf("VLAN %d state set to %s.\n", id, args[0])
	return nil
}

func switchport(args []string, s *session.Session) error {
	if s.Mode != mode.Interface {
		return errors.New("The 'switchport' command is only available in Interface Configuration mode.")
	}
	names, err := s.SelectedInterfaces()
	if err != nil {
		return err
	}
	args = expand(args, "mode", "access")
	switch {
	case len(args) == 2 && args[0] == "mode" && (args[1] == "access" || args[1] == "trunk"):
		for _, name := range names {
			s.Net.Interface(name).Switchport.Mode = args[1]
			s.Printf("Interface %s switchport mode set to %s.\n", name, args[1])
		}
	case len(args) == 3 && args[0] == "access" && args[1] == "vlan":
		id, err := parseVlanID(args[2])
		if err != nil {
			return err
		}
		s.Net.VLAN(id)
		for _, name := range names {
			s.Net.Interface(name).Switchport.AccessVlan = id
			s.Printf("Interface %s assigned to access VLAN %d.\n", name, id)
		}
	default:
		return errors.New("Usage: switchport mode {access | trunk} | switchport access vlan <vlan-id>")
	}
	return nil
}
