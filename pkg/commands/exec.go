package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/psaab/pnfcli/pkg/auth"
	"github.com/psaab/pnfcli/pkg/clock"
	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/configstore"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/netstate"
	"github.com/psaab/pnfcli/pkg/session"
)

const configPrompt = "Enter configuration commands, one per line.  End with CNTL/Z"

func execCommands() []*cmdtree.Command {
	return []*cmdtree.Command{
		{Name: "enable", Desc: "Enter privileged EXEC mode", Options: []string{"password", "secret"}, Exec: enable},
		{Name: "configure", Desc: "Enter global configuration mode", Subcommands: []string{"terminal", "user"}, Exec: configure},
		{Name: "exit", Desc: "Exit the current mode and return to the previous mode.", Exec: exit},
		{Name: "reload", Desc: "Reload the system", Exec: reload},
		{Name: "debug", Desc: "To turn on all the possible debug levels", Subcommands: []string{"all"}, Exec: debug},
		{Name: "undebug", Desc: "Turning off all possible debugging processes", Subcommands: []string{"all"}, Exec: undebug},
		{Name: "help", Desc: "Display available commands for current mode", Exec: help},
		{Name: "write", Desc: "Save the running configuration to the startup configuration", Subcommands: []string{"memory"}, Exec: write},
		{Name: "copy", Desc: "Copy running configuration", Subcommands: []string{"running-config"}, Options: []string{"startup-config"}, Exec: copyConfig},
		{
			Name:        "clock",
			Desc:        "Change the clock date and time",
			Subcommands: []string{"set"},
			Options: []string{
				"<hh:mm:ss>      - Enter the time in this specified format",
				"<day>      - Enter the day '1-31'",
				"<month>    - Enter a valid month",
				"<year>     - Enter the year",
			},
			Exec: setClock,
		},
		{Name: "ping", Desc: "Ping a specific ip address to check reachability", Options: []string{"<ip-address>    - Enter the ip-address"}, Exec: ping},
		{Name: "clear", Desc: "Clear the terminal or the OSPF processes", Options: []string{"ip ospf process"}, Exec: clearCmd},
		{
			Name: "ifconfig",
			Desc: "Display or configure network details of the router",
			Options: []string{
				"<interface      - Enter the interface you need to change the ip-address of or need to add",
				"<ip-address>      - Enter the new ip-address",
			},
			Exec: ifconfig,
		},
	}
}

func enterPrivileged(s *session.Session) error {
	s.SetMode(mode.Privileged)
	s.Println("Entering privileged EXEC mode...")
	return nil
}

func enable(args []string, s *session.Session) error {
	if len(args) == 0 {
		if s.Mode != mode.User {
			return errors.New("The 'enable' command is only available in User EXEC mode.")
		}
		pw, secret := s.Config.EnablePassword, s.Config.EnableSecret
		if pw == "" && secret == "" {
			return enterPrivileged(s)
		}
		typed, err := s.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		// A configured secret takes precedence over the plain password.
		if secret != "" {
			if auth.CheckSecret(secret, typed) {
				return enterPrivileged(s)
			}
		} else if typed == pw {
			return enterPrivileged(s)
		}
		s.Log.Warn("enable authentication failed")
		return errors.New("Incorrect password or secret.")
	}

	switch args[0] {
	case "password":
		if s.Mode != mode.Config {
			return errors.New("The 'enable password' command is only available in Config mode.")
		}
		if len(args) != 2 {
			return errors.New("You must provide the enable password.")
		}
		s.Config.EnablePassword = args[1]
		s.Println("Enable password set.")
	case "secret":
		if s.Mode != mode.Config {
			return errors.New("The 'enable secret' command is only available in Config mode.")
		}
		if len(args) != 2 {
			return errors.New("You must provide the enable secret password.")
		}
		hash, err := auth.HashSecret(args[1])
		if err != nil {
			return err
		}
		s.Config.EnableSecret = hash
		s.Println("Enable secret password set.")
	default:
		return fmt.Errorf("Unknown enable subcommand: %s", args[0])
	}
	return nil
}

func configure(args []string, s *session.Session) error {
	if s.Mode != mode.Privileged {
		return errors.New("The 'configure terminal' command is only available in Privileged EXEC mode.")
	}
	if len(args) != 1 {
		return errors.New("Invalid arguments provided to 'configure'. This command does not accept additional arguments.")
	}
	switch args[0] {
	case "terminal":
		s.SetMode(mode.Config)
	case "user":
		s.SetMode(mode.CryptoUser)
	default:
		return errors.New("Invalid arguments provided to 'configure'. This command does not accept additional arguments.")
	}
	s.Println(configPrompt)
	return nil
}

var exitMessages = map[mode.Kind]string{
	mode.KindInterface:    "Exiting Interface Configuration Mode...",
	mode.KindVlan:         "Exiting VLAN Mode...",
	mode.KindRouterConfig: "Exiting Router Configuration Mode...",
	mode.KindStdNacl:      "Exiting Standard ACL Mode...",
	mode.KindExtNacl:      "Exiting Extended ACL Mode...",
	mode.KindConfig:       "Exiting Global Configuration Mode...",
	mode.KindCryptoUser:   "Exiting User Configuration Mode...",
	mode.KindPrivileged:   "Exiting Privileged EXEC Mode...",
}

func exit(args []string, s *session.Session) error {
	switch {
	case len(args) == 0:
		parent, ok := mode.Parent(s.Mode)
		if !ok {
			s.Println("Already at the top level. No mode to exit.")
			return errors.New("No mode to exit.")
		}
		s.Println(exitMessages[s.Mode.Kind])
		if s.Mode.Kind == mode.KindInterface || s.Mode.Kind == mode.KindVlan {
			s.ClearSelection()
		}
		s.SetMode(parent)
		return nil
	case len(args) == 1 && args[0] == "ssh":
		s.Println("Terminating SSH session...")
		return cmdtree.ErrExit
	}
	return errors.New("Command is either 'exit' , 'exit cli' or 'exit ssh'")
}

// saveStartup renders the running configuration into the startup
// configuration and persists the aggregate.
func saveStartup(s *session.Session, comment string) error {
	s.Config.StartupConfig = configstore.RenderRunning(s.Config, s.Net)
	s.Config.LastWritten = time.Now().Format(time.RFC3339)
	if s.Store != nil {
		if err := s.Store.Save(s.Config, comment); err != nil {
			return fmt.Errorf("save startup configuration: %w", err)
		}
	}
	s.Log.Info("startup configuration saved", "comment", comment)
	return nil
}

func reload(_ []string, s *session.Session) error {
	answer, err := ask(s, "System configuration has been modified. Save? [yes/no]: ")
	if err != nil {
		return err
	}
	switch answer {
	case "yes":
		s.Println("Building configuration...")
		if err := saveStartup(s, "reload"); err != nil {
			return err
		}
		s.Println("[OK]")
	case "no":
		s.Println("Configuration not saved.")
	default:
		return errors.New("Invalid input. Please enter 'yes' or 'no'.")
	}

	answer, err = ask(s, "Proceed with reload? [confirm]: ")
	if err != nil {
		return err
	}
	switch answer {
	case "yes", "y":
		s.Println("System Bootstrap, Version 15.1(4)M4, RELEASE SOFTWARE (fc1)")
		s.Println("Technical Support: http://www.cisco.com/techsupport")
		s.Println("Copyright (c) 2010 by cisco Systems, Inc.")
		s.Println("Total memory size = 512 MB - On-board = 512 MB, DIMM0 = 0 MB")
		s.ClearSelection()
		s.SetMode(mode.User)
		s.Println("\nPress RETURN to get started!")
		return nil
	case "no":
		s.Println("Reload aborted.")
		return nil
	}
	return errors.New("Invalid input. Please enter 'yes', 'y', or 'no'.")
}

func debug(args []string, s *session.Session) error {
	if s.Mode != mode.Privileged {
		return errors.New("The 'debug all' command is only available in Privileged EXEC mode.")
	}
	if len(args) != 1 || args[0] != "all" {
		return errors.New("Invalid arguments provided to 'debug all'. This command does not accept additional arguments.")
	}
	answer, err := ask(s, "This may severely impact network performance. Continue? (yes/[no]): ")
	if err != nil {
		return err
	}
	if answer != "yes" {
		return errors.New("Invalid input. Please enter 'yes' or 'no'.")
	}
	if s.Console != nil {
		s.Console.SetDebug(true)
	}
	s.Println("All possible debugging has been turned on")
	return nil
}

func undebug(args []string, s *session.Session) error {
	if s.Mode != mode.Privileged {
		return errors.New("The 'undebug all' command is only available in Privileged EXEC mode.")
	}
	if len(args) != 1 || args[0] != "all" {
		return errors.New("Invalid arguments provided to 'undebug all'. This command does not accept additional arguments.")
	}
	if s.Console != nil {
		s.Console.SetDebug(false)
	}
	s.Println("All possible debugging has been turned off")
	return nil
}

func help(_ []string, s *session.Session) error {
	cmdtree.WriteModeHelp(s.Out, s.Mode)
	return nil
}

func write(args []string, s *session.Session) error {
	if !in(s, mode.KindPrivileged, mode.KindConfig, mode.KindInterface) {
		return errors.New("The 'write memory' command is only available in Privileged EXEC mode.")
	}
	if len(args) != 1 || args[0] != "memory" {
		return errors.New("Invalid arguments provided to 'write memory'. This command does not accept additional arguments.")
	}
	if err := saveStartup(s, "write memory"); err != nil {
		return err
	}
	s.Println("Configuration saved successfully.")
	return nil
}

func copyConfig(args []string, s *session.Session) error {
	if !in(s, mode.KindPrivileged, mode.KindConfig, mode.KindInterface) {
		return errors.New("The 'copy' command is only available in Privileged EXEC mode, Config mode and interface mode")
	}
	if len(args) == 0 || len(args[0]) < 3 || args[0][:3] != "run" {
		return errors.New("Invalid source. Use 'running-config'")
	}
	if len(args) != 2 {
		return errors.New("Invalid destination. Use 'copy running-config startup-config' or 'copy running-config <file>'")
	}
	if args[1] == "startup-config" {
		if err := saveStartup(s, "copy running-config startup-config"); err != nil {
			return err
		}
		s.Println("Configuration saved successfully.")
		return nil
	}
	running := configstore.RenderRunning(s.Config, s.Net)
	if err := os.WriteFile(args[1], []byte(running), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args[1], err)
	}
	s.Printf("Running configuration copied to %s\n", args[1])
	return nil
}

func setClock(args []string, s *session.Session) error {
	if s.Mode != mode.Privileged {
		return errors.New("The 'clock set' command is only available in Privileged EXEC mode.")
	}
	if s.Clock == nil {
		return errors.New("Clock functionality is unavailable.")
	}
	args = words(args)
	if len(args) == 0 || args[0] != "set" {
		return errors.New("Correct Usage of 'clock set' command is 'clock set <hh:mm:ss> <day> <month> <year>'.")
	}
	setting, err := clock.ParseSet(args)
	if err != nil {
		return err
	}
	if err := s.Clock.Set(setting); err != nil {
		return err
	}
	s.Printf("Clock updated successfully to %s.\n", setting)
	return nil
}

func ping(args []string, s *session.Session) error {
	if len(args) != 1 {
		return errors.New("Invalid syntax. Usage: ping <ip>")
	}
	ip, err := netstate.ParseIPv4(args[0])
	if err != nil {
		return errors.New("Invalid IP address format.")
	}
	s.Printf("Pinging %s with 32 bytes of data:\n", ip)
	if s.Net.Reachable(ip) {
		for range 4 {
			s.Printf("Reply from %s: bytes=32 time<1ms TTL=128\n", ip)
		}
		s.Printf("\nPing statistics for %s:\n", ip)
		s.Println("    Packets: Sent = 4, Received = 4, Lost = 0 (0% loss),")
		s.Println("Approximate round trip times in milli-seconds:")
		s.Println("    Minimum = 0ms, Maximum = 1ms, Average = 0ms")
		return nil
	}
	for range 4 {
		s.Println("Request timed out.")
	}
	s.Printf("\nPing statistics for %s:\n", ip)
	s.Println("    Packets: Sent = 4, Received = 0, Lost = 4 (100% loss),")
	return fmt.Errorf("IP address %s is not reachable.", ip)
}

func clearCmd(args []string, s *session.Session) error {
	if len(args) == 0 {
		s.Printf("\033[H\033[2J")
		return nil
	}
	if s.Mode != mode.Privileged {
		return errors.New("The 'clear ip ospf process' command is only available in EXEC mode.")
	}
	args = words(args)
	if len(args) != 3 || args[0] != "ip" || args[1] != "ospf" || args[2] != "process" {
		return errors.New("Invalid arguments provided to 'clear ip ospf process'. This command does not accept additional arguments.")
	}
	answer, err := ask(s, "Reset ALL OSPF processes? [no]: ")
	if err != nil {
		return err
	}
	if answer == "yes" || answer == "y" {
		s.Net.OSPF.Reset()
		s.Println("All OSPF processes cleared.")
		return nil
	}
	s.Println("Clear process cancelled.")
	return nil
}

func printHostInterface(s *session.Session, prefix string, h netstate.HostInterface) {
	s.Printf("%s%s: flags=4163<UP,BROADCAST,RUNNING,MULTICAST>  mtu 1500\n", prefix, h.Name)
	s.Printf("    inet %s  netmask 255.255.255.0  broadcast %s\n", h.Addr, h.Broadcast)
	s.Println("    inet6 fe80::6a01:72f9:adf2:3ffb  prefixlen 64  scopeid 0x20<link>")
	s.Println("    ether 00:0c:29:16:30:92  txqueuelen 1000  (Ethernet)")
}

func ifconfig(args []string, s *session.Session) error {
	switch {
	case len(args) == 0:
		names := s.Net.HostInterfaceNames()
		if len(names) == 0 {
			s.Println("No interfaces found.")
			return nil
		}
		for _, name := range names {
			printHostInterface(s, "", s.Net.Ifconfig[name])
		}
		return nil
	case len(args) == 3 && args[2] == "up":
		ip, err := netstate.ParseIPv4(args[1])
		if err != nil {
			return errors.New("Invalid IP address format.")
		}
		printHostInterface(s, "Updated ", s.Net.SetHostInterface(args[0], ip))
		return nil
	}
	return errors.New("Invalid arguments provided to 'ifconfig'. To create an entry 'ifconfig <interface> <ip-address> up")
}
