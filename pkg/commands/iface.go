package commands

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/session"
)

func interfaceCommands() []*cmdtree.Command {
	return []*cmdtree.Command{
		{
			Name:    "interface",
			Desc:    "Enter Interface configuration mode or Interface Range configuration mode",
			Options: []string{"range", "<interface-name>    - Specify a valid interface name"},
			Exec:    selectInterface,
		},
		{Name: "shutdown", Desc: "Disable the selected interface", Exec: shutdown},
	}
}

func selectInterface(args []string, s *session.Session) error {
	if !in(s, mode.KindConfig, mode.KindInterface) {
		return errors.New("The 'interface' command is only available in Global Configuration mode and interface configuration mode.")
	}
	if len(args) == 0 {
		return errors.New("Please specify an interface or range, e.g., 'interface g0/0' or 'interface range f0/0 - 24'.")
	}
	if len(args) > 1 && strings.HasPrefix("range", args[0]) {
		first, last, ok := strings.Cut(strings.Join(args[1:], " "), "-")
		if !ok || strings.Count(strings.Join(args[1:], " "), "-") != 1 {
			return errors.New("Invalid range format. Use 'interface range f0/0 - 24'.")
		}
		first, last = strings.TrimSpace(first), strings.TrimSpace(last)
		if first == "" || last == "" {
			return errors.New("Invalid range format. Start and end interfaces must be specified.")
		}
		s.Interface = fmt.Sprintf("%s - %s", first, last)
		s.Range = true
		s.Vlan = 0
		s.SetMode(mode.Interface)
		for _, name := range mustSelected(s) {
			s.Net.Interface(name)
		}
		s.Printf("Entering Interface Range configuration mode for: %s\n", s.Interface)
		return nil
	}
	if len(args) == 1 && strings.HasPrefix("range", args[0]) {
		return errors.New("Invalid range format. Use 'interface range f0/0 - 24'.")
	}

	name := strings.Join(args, "")
	s.Net.Interface(name)
	s.Interface = name
	s.Range = false
	s.Vlan = 0
	s.SetMode(mode.Interface)
	s.Printf("Entering Interface configuration mode for: %s\n", name)
	return nil
}

// mustSelected returns the selection, or nothing when none is made.
func mustSelected(s *session.Session) []string {
	names, err := s.SelectedInterfaces()
	if err != nil {
		return nil
	}
	return names
}

func shutdown(args []string, s *session.Session) error {
	if s.Mode != mode.Interface {
		return errors.New("The 'shutdown' command is only available in Interface Configuration mode.")
	}
	if len(args) != 0 {
		return errors.New("Invalid arguments provided to 'shutdown'. This command does not accept additional arguments.")
	}
	names, err := s.SelectedInterfaces()
	if err != nil {
		return err
	}
	for _, name := range names {
		ifc := s.Net.Interface(name)
		ifc.Up = false
		ifc.Addr, ifc.Mask = netip.IPv4Unspecified(), netip.IPv4Unspecified()
		s.Printf("Interface %s has been shut down. IP address set to 0.0.0.0\n", name)
	}
	return nil
}

func noShutdown(s *session.Session) error {
	if s.Mode != mode.Interface {
		return errors.New("The 'no shutdown' command is only available in Interface Configuration mode.")
	}
	names, err := s.SelectedInterfaces()
	if err != nil {
		return err
	}
	for _, name := range names {
		s.Net.Interface(name).Up = true
		s.Printf("%%LINK-5-CHANGED: Interface %s, changed state to up\n", name)
		s.Printf("%%LINEPROTO-5-UPDOWN: Line protocol on Interface %s, changed state to up\n", name)
	}
	return nil
}
