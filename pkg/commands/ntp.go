package commands

import (
	"errors"
	"strconv"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/netstate"
	"github.com/psaab/pnfcli/pkg/session"
)

var ntpSubcommands = []string{"server", "master", "authenticate", "authentication-key", "trusted-key"}

func ntpCommand() *cmdtree.Command {
	return &cmdtree.Command{Name: "ntp", Desc: "NTP configuration commands", Subcommands: ntpSubcommands, Exec: ntp}
}

func ntp(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("NTP commands are only available in configuration mode.")
	}
	if len(args) == 0 {
		return errors.New("Subcommand required. Available subcommands: " + strings.Join(ntpSubcommands, ", "))
	}
	args = expand(args, ntpSubcommands...)
	n := &s.Net.NTP
	switch args[0] {
	case "server":
		if len(args) != 2 {
			return errors.New("Invalid arguments. Usage: ntp server {ip-address}")
		}
		ip, err := netstate.ParseIPv4(args[1])
		if err != nil {
			return errors.New("Invalid IP address format.")
		}
		if n.AddServer(ip.String()) {
			s.Log.Info("ntp server added", "server", ip.String())
		}
		s.Printf("NTP server %s configured.\n", ip)
	case "master":
		n.Master = true
		s.Println("Device configured as NTP master.")
	case "authenticate":
		if len(args) != 1 {
			return errors.New("Invalid arguments. Use 'ntp authenticate'.")
		}
		n.Authenticate = !n.Authenticate
		status := "disabled"
		if n.Authenticate {
			status = "enabled"
		}
		s.Printf("NTP authentication %s\n", status)
	case "authentication-key":
		if len(args) != 4 || args[2] != "md5" {
			return errors.New("Invalid arguments. Use 'ntp authentication-key <key-number> md5 <key-value>'.")
		}
		num, err := parseKeyNumber(args[1])
		if err != nil {
			return err
		}
		n.Keys[num] = args[3]
		s.Printf("NTP authentication key %d configured with MD5 key: %s\n", num, args[3])
	case "trusted-key":
		if len(args) != 2 {
			return errors.New("Invalid arguments. Use 'ntp trusted-key <key-number>'.")
		}
		num, err := parseKeyNumber(args[1])
		if err != nil {
			return err
		}
		n.Trusted[num] = true
		s.Printf("NTP trusted key %d configured.\n", num)
	default:
		return errors.New("Invalid NTP subcommand. Available subcommands: " + strings.Join(ntpSubcommands, ", "))
	}
	return nil
}

func parseKeyNumber(v string) (uint32, error) {
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, errors.New("Invalid key number. Must be a positive integer.")
	}
	return uint32(n), nil
}

func noNTP(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'no ntp server' command is only available in configuration mode.")
	}
	if len(args) != 2 || args[0] != "server" {
		return errors.New("Invalid arguments. Usage: no ntp server {ip-address}")
	}
	if !s.Net.NTP.RemoveServer(args[1]) {
		return errors.New("NTP server not found.")
	}
	s.Printf("NTP server %s removed.\n", args[1])
	return nil
}
