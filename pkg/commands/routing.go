package commands

import (
	"errors"
	"strconv"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/netstate"
	"github.com/psaab/pnfcli/pkg/session"
)

func routingCommands() []*cmdtree.Command {
	return []*cmdtree.Command{
		{Name: "router", Desc: "Enable OSPF routing and enter router configuration mode", Subcommands: []string{"ospf"}, Options: []string{"<process-id>       - Enter the ospf process-id"}, Exec: router},
		{
			Name: "network",
			Desc: "Define an OSPF network and associate it with an area ID",
			Options: []string{
				"<ip-address>        - Enter the ip-address",
				"<wildcard-mask>      - Enter the wildcard-mask",
				"<area-id>          - Enter the area-id",
			},
			Exec: network,
		},
		{Name: "neighbor", Desc: "Specify a neighbor and optionally assign a cost.", Options: []string{"<ip-address>       - Enter the ip-address", "<cost>       - Enter the cost"}, Exec: neighbor},
		{Name: "area", Desc: "Configure OSPF area options.", Options: []string{"<area-id>       - Enter the area-id", "authentication", "stub", "default-cost"}, Exec: area},
		{Name: "passive-interface", Desc: "Disables sending OSPF Hello packets on an interface", Options: []string{"<interface>     - Enter the interface name"}, Exec: passiveInterface},
		{Name: "distance", Desc: "Set administrative distance for OSPF", Options: []string{"<distance>      - Set the distance"}, Exec: distance},
		{Name: "default-information", Desc: "Originate a default route in OSPF", Subcommands: []string{"originate"}, Exec: defaultInformation},
		{Name: "router-id", Desc: "Set the router ID for the OSPF process", Options: []string{"<router-id>       - Enter the router-id"}, Exec: routerID},
	}
}

func router(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'router ospf' command is only available in Global Configuration mode.")
	}
	if len(args) != 2 || args[0] != "ospf" {
		return errors.New("The 'router ospf' command requires exactly one argument: the process ID.")
	}
	id, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil || id == 0 {
		return errors.New("Invalid process ID provided. It must be a positive integer.")
	}
	s.Net.OSPF.ProcessID = int(id)
	s.SetMode(mode.RouterConfig)
	s.Printf("OSPF routing enabled with process ID %d.\n", id)
	return nil
}

func requireRouter(s *session.Session, name string) error {
	if s.Mode != mode.RouterConfig {
		return errors.New("The '" + name + "' command is only available in Router Configuration mode.")
	}
	return nil
}

func network(args []string, s *session.Session) error {
	if err := requireRouter(s, "network"); err != nil {
		return err
	}
	if len(args) != 4 {
		return errors.New("The 'network' command requires three arguments: <ip-address> <wildcard-mask> area <area-id>.")
	}
	ip, err1 := netstate.ParseIPv4(args[0])
	wc, err2 := netstate.ParseIPv4(args[1])
	id, err3 := strconv.ParseUint(args[3], 10, 32)
	if err1 != nil || err2 != nil || err3 != nil || args[2] != "area" {
		return errors.New("Invalid arguments provided. Usage: network <ip-address> <wildcard-mask> area <area-id>")
	}
	key := ip.String() + " " + wc.String()
	s.Net.OSPF.Networks[key] = int(id)
	s.Printf("Network %s added to OSPF area %d.\n", key, id)
	return nil
}

func neighbor(args []string, s *session.Session) error {
	if err := requireRouter(s, "neighbor"); err != nil {
		return err
	}
	if len(args) != 1 && !(len(args) == 3 && args[1] == "cost") {
		return errors.New("Usage: neighbor <ip-address> [cost <number>]")
	}
	ip, err := netstate.ParseIPv4(args[0])
	if err != nil {
		return errors.New("Invalid IP address format.")
	}
	n := netstate.Neighbor{Addr: ip}
	if len(args) == 3 {
		cost, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return errors.New("Invalid cost value. It must be a positive integer.")
		}
		n.Cost, n.HasCost = int(cost), true
	}
	s.Net.OSPF.Neighbors[ip] = n
	if n.HasCost {
		s.Printf("Neighbor %s configured with cost %d.\n", ip, n.Cost)
	} else {
		s.Printf("Neighbor %s configured with default cost.\n", ip)
	}
	return nil
}

func area(args []string, s *session.Session) error {
	if err := requireRouter(s, "area"); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("Usage: area <area-id> <subcommand> [options]")
	}
	id := args[0]
	var sub string
	if len(args) > 1 {
		sub = args[1]
	}
	switch sub {
	case "authentication":
		if len(args) != 2 {
			return errors.New("Usage: area <area-id> authentication")
		}
		s.Net.OSPF.Area(id).Authentication = true
		s.Printf("Authentication enabled for area %s.\n", id)
	case "stub":
		switch {
		case len(args) == 2:
			a := s.Net.OSPF.Area(id)
			a.Stub, a.NoSummary = true, false
			s.Printf("Area %s configured as a stub.\n", id)
		case len(args) == 3 && args[2] == "no-summary":
			a := s.Net.OSPF.Area(id)
			a.Stub, a.NoSummary = true, true
			s.Printf("Area %s configured as a stub with no-summary.\n", id)
		default:
			return errors.New("Usage: area <area-id> stub [no-summary]")
		}
	case "default-cost":
		if len(args) != 3 {
			return errors.New("Usage: area <area-id> default-cost <cost>")
		}
		cost, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return errors.New("Invalid cost value. It must be a positive integer.")
		}
		s.Net.OSPF.Area(id).DefaultCost = int(cost)
		s.Printf("Default cost for area %s set to %d.\n", id, cost)
	default:
		return errors.New("Invalid subcommand. Valid subcommands: authentication, stub, default-cost")
	}
	return nil
}

func requireRouterOSPF(s *session.Session, name string) error {
	if s.Mode != mode.RouterConfig {
		return errors.New("The '" + name + "' command is only available in Router OSPF mode.")
	}
	return nil
}

func passiveInterface(args []string, s *session.Session) error {
	if err := requireRouterOSPF(s, "passive-interface"); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("Usage: passive-interface <interface>")
	}
	s.Net.OSPF.AddPassive(args[0])
	s.Printf("Passive interface set on: %s\n", args[0])
	return nil
}

func distance(args []string, s *session.Session) error {
	if err := requireRouterOSPF(s, "distance"); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("Usage: distance <value>")
	}
	d, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return errors.New("Invalid distance value. Must be a number.")
	}
	s.Net.OSPF.Distance = int(d)
	s.Printf("OSPF administrative distance set to: %d\n", d)
	return nil
}

func defaultInformation(args []string, s *session.Session) error {
	if err := requireRouterOSPF(s, "default-information originate"); err != nil {
		return err
	}
	if len(args) == 0 || args[0] != "originate" {
		return errors.New("Usage: default-information originate")
	}
	s.Net.OSPF.DefaultOriginate = true
	s.Println("Default-information originate command executed.")
	return nil
}

func routerID(args []string, s *session.Session) error {
	if err := requireRouterOSPF(s, "router-id"); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("Usage: router-id <id>")
	}
	s.Net.OSPF.RouterID = args[0]
	s.Printf("Router ID set to: %s\n", args[0])
	return nil
}
