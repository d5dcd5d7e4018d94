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

var ipSubcommands = []string{"address", "ospf", "route", "domain-name", "access-list"}

var ospfParams = []string{
	"cost", "retransmit-interval", "transmit-delay", "priority", "hello-interval",
	"dead-interval", "authentication-key", "message-digest-key", "authentication",
}

func ipCommand() *cmdtree.Command {
	return &cmdtree.Command{Name: "ip", Desc: "Define all the ip commands", Subcommands: ipSubcommands, Exec: ip}
}

func ip(args []string, s *session.Session) error {
	if len(args) == 0 {
		return errors.New("Incomplete command. Use 'ip ?' for help.")
	}
	args = expand(args, ipSubcommands...)
	switch {
	case args[0] == "address" && s.Mode == mode.Interface:
		return ipAddress(args[1:], s)
	case args[0] == "ospf" && s.Mode == mode.Interface:
		return ipOSPF(args[1:], s)
	case args[0] == "route" && s.Mode == mode.Config:
		return ipRoute(args[1:], s)
	case args[0] == "domain-name" && s.Mode == mode.Config:
		if len(args) < 2 {
			return errors.New("Usage: ip domain-name <name>")
		}
		s.Config.DomainName = args[1]
		s.Printf("Domain name set to: %s\n", args[1])
		return nil
	case args[0] == "access-list" && (s.Mode == mode.Config || s.Mode.IsACL()):
		return ipAccessList(args[1:], s)
	}
	return errors.New("Command not available in current mode or invalid command")
}

func ipAddress(args []string, s *session.Session) error {
	if len(args) != 2 {
		return errors.New("Usage: ip address <ip_address> <netmask>")
	}
	addr, err := netstate.ParseIPv4(args[0])
	if err != nil {
		return errors.New("Invalid IP address format.")
	}
	mask, err := netstate.ParseIPv4(args[1])
	if err != nil {
		return errors.New("Invalid netmask format.")
	}
	names, err := s.SelectedInterfaces()
	if err != nil {
		return err
	}
	for _, name := range names {
		ifc := s.Net.Interface(name)
		had := ifc.HasAddr()
		ifc.Addr, ifc.Mask = addr, mask
		if had {
			s.Printf("Updated interface %s with IP %s and netmask %s\n", name, addr, mask)
		} else {
			s.Printf("Assigned IP %s and netmask %s to interface %s\n", addr, mask, name)
		}
	}
	return nil
}

// ospfUint validates an unsigned interface parameter.
type ospfUint struct {
	bits    int
	invalid string
	usage   string
	done    string
}

var ospfUintParams = map[string]ospfUint{
	"cost":                {32, "Invalid cost value. It must be a positive integer.", "Usage: ip ospf cost <cost>", "OSPF cost set to %d."},
	"retransmit-interval": {32, "Invalid retransmit interval. It must be a positive integer.", "Usage: ip ospf retransmit-interval <seconds>", "OSPF retransmit interval set to %d seconds."},
	"transmit-delay":      {32, "Invalid transmit delay. It must be a positive integer.", "Usage: ip ospf transmit-delay <seconds>", "OSPF transmit delay set to %d seconds."},
	"priority":            {8, "Invalid priority value. It must be a number between 0 and 255.", "Usage: ip ospf priority <priority>", "OSPF priority set to %d."},
	"hello-interval":      {32, "Invalid hello interval. It must be a positive integer.", "Usage: ip ospf hello-interval <seconds>", "OSPF hello interval set to %d seconds."},
	"dead-interval":       {32, "Invalid dead interval. It must be a positive integer.", "Usage: ip ospf dead-interval <seconds>", "OSPF dead interval set to %d seconds."},
}

func ipOSPF(args []string, s *session.Session) error {
	if len(args) == 0 {
		return fmt.Errorf("The 'ip ospf' command requires a subcommand. Available subcommands: %s.", strings.Join(ospfParams, ", "))
	}
	args = expand(args, ospfParams...)
	names, err := s.SelectedInterfaces()
	if err != nil {
		return err
	}
	set := func(key, value string) {
		for _, name := range names {
			s.Net.Interface(name).OSPF[key] = value
		}
	}

	param := args[0]
	if p, ok := ospfUintParams[param]; ok {
		if len(args) != 2 {
			return errors.New(p.usage)
		}
		v, err := strconv.ParseUint(args[1], 10, p.bits)
		if err != nil {
			return errors.New(p.invalid)
		}
		set(param, strconv.FormatUint(v, 10))
		s.Printf(p.done+"\n", v)
		return nil
	}
	switch param {
	case "authentication-key":
		if len(args) != 2 {
			return errors.New("Usage: ip ospf authentication-key <key>")
		}
		set(param, args[1])
		s.Printf("OSPF authentication key set to '%s'.\n", args[1])
	case "message-digest-key":
		if len(args) != 4 || args[2] != "md5" {
			return errors.New("Usage: ip ospf message-digest-key <key-id> md5 <key>")
		}
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return errors.New("Invalid key-id. It must be a positive integer.")
		}
		set(param, fmt.Sprintf("%d md5 %s", id, args[3]))
		s.Printf("OSPF MD5 message-digest-key set with key-id %d and key '%s'.\n", id, args[3])
	case "authentication":
		if len(args) != 2 {
			return errors.New("Usage: ip ospf authentication [message-digest | null]")
		}
		if args[1] != "message-digest" && args[1] != "null" {
			return errors.New("Invalid authentication type. Valid options: message-digest, null.")
		}
		set(param, args[1])
		s.Printf("OSPF authentication set to '%s'.\n", args[1])
	default:
		return fmt.Errorf("Unknown subcommand '%s'. Use 'ip ospf' to see available subcommands.", param)
	}
	return nil
}

func ipRoute(args []string, s *session.Session) error {
	const usage = "Usage: ip route <ip-address> <netmask> <next-hop | exit-interface> <next-hop>"
	if len(args) != 3 && len(args) != 4 {
		return errors.New(usage)
	}
	dst, err := netstate.ParseIPv4(args[0])
	if err != nil {
		return errors.New("Invalid IP address format.")
	}
	mask, err := netstate.ParseIPv4(args[1])
	if err != nil {
		return errors.New("Invalid netmask format.")
	}
	r := netstate.Route{Destination: dst, Mask: mask}
	if len(args) == 3 {
		if hop, err := netstate.ParseIPv4(args[2]); err == nil {
			r.NextHop = hop.String()
		} else {
			r.ExitInterface = args[2]
		}
	} else {
		hop, err := netstate.ParseIPv4(args[3])
		if err != nil {
			return errors.New("Invalid IP address format.")
		}
		r.ExitInterface, r.NextHop = args[2], hop.String()
	}
	s.Net.AddRoute(r)
	s.Log.Debug("route added", "destination", dst.String(), "target", r.Target())
	s.Printf("Added route: ip route %s %s %s\n", dst, mask, r.Target())
	return nil
}

func ipAccessList(args []string, s *session.Session) error {
	if len(args) < 2 {
		return errors.New("Usage: ip access-list standard|extended <acl_name|number>")
	}
	name := args[1]
	var (
		kind  netstate.ACLKind
		next  mode.Mode
		title string
	)
	switch strings.ToLower(args[0]) {
	case "standard":
		kind, next, title = netstate.ACLStandard, mode.StdNacl(name), "Standard"
	case "extended":
		kind, next, title = netstate.ACLExtended, mode.ExtNacl(name), "Extended"
	default:
		return errors.New("Invalid syntax. Use 'ip access-list standard <acl_name>' or 'ip access-list extended <name_or_number>'.")
	}
	verb := "entered"
	if existing, ok := s.Net.ACLs[name]; ok {
		if existing.Kind != kind {
			return fmt.Errorf("%% A named %s access list with this name already exists", existing.Kind)
		}
	} else {
		s.Net.ACL(name, kind)
		verb = "created"
	}
	s.SetMode(next)
	s.Printf("%s ACL '%s' %s. Enter ACL configuration mode.\n", title, name, verb)
	return nil
}
