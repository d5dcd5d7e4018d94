package commands

import (
	"errors"
	"strconv"
	"strings"

	"github.com/psaab/pnfcli/pkg/auth"
	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/netstate"
	"github.com/psaab/pnfcli/pkg/session"
)

var tunnelSubcommands = []string{"mode", "source", "destination", "protection"}

func configCommands() []*cmdtree.Command {
	return []*cmdtree.Command{
		{Name: "hostname", Desc: "Set the device hostname", Options: []string{"<new-hostname>    - Enter a new hostname"}, Exec: hostname},
		{Name: "service", Desc: "Enable password encryption", Subcommands: []string{"password-encryption"}, Exec: service},
		{Name: "set", Desc: "Specifies which transform sets can be used with the crypto map entry.", Subcommands: []string{"transform-set"}, Exec: setTransformSet},
		{Name: "tunnel", Desc: "Configures the tunnel interface with multiple parameters (mode, source, destination, protection, virtual-template).", Subcommands: tunnelSubcommands, Exec: tunnel},
		{Name: "virtual-template", Desc: "Enter interface configuration mode for a virtual-template interface", Options: []string{"<template-number>       - Enter the template number"}, Exec: virtualTemplate},
	}
}

func hostname(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'hostname' command is only available in Global Configuration Mode.")
	}
	if len(args) == 0 {
		return errors.New("Please specify a new hostname. Usage: hostname <new_hostname>")
	}
	s.Config.Hostname = args[0]
	s.Log.Info("hostname changed", "hostname", args[0])
	s.Printf("Hostname changed to '%s'\n", args[0])
	return nil
}

func service(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'service password-encryption' command is only available in Config mode.")
	}
	if len(args) != 1 || args[0] != "password-encryption" {
		return errors.New("Invalid arguments provided to 'service password-encryption'. This command does not accept additional arguments.")
	}
	if s.Config.EnablePassword != "" {
		s.Config.EncryptedPassword = auth.Digest(s.Config.EnablePassword)
	}
	if s.Config.EnableSecret != "" {
		s.Config.EncryptedSecret = auth.Digest(s.Config.EnableSecret)
	}
	s.Config.PasswordEncryption = true
	s.Println("Password encryption enabled.")
	return nil
}

func setTransformSet(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'set transform-set' command is only available in Config mode.")
	}
	args = expand(args, "transform-set")
	if len(args) < 2 || args[0] != "transform-set" {
		return errors.New("Invalid command. The command should be set transform-set <transform set name>")
	}
	s.Config.TransformSets = append([]string(nil), args[1:]...)
	s.Printf("Transform set(s) set to: %s\n", strings.Join(args[1:], ", "))
	return nil
}

func tunnel(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'tunnel' command is only available in Config mode.")
	}
	args = expand(args, tunnelSubcommands...)
	if len(args) == 0 {
		return errors.New("Invalid arguments. Please specify a subcommand like 'mode', 'source', 'destination', 'protection', or 'virtual-template'.")
	}
	switch args[0] {
	case "mode":
		if len(args) != 3 || args[1] != "ipsec" || args[2] != "ipv4" {
			return errors.New("Invalid arguments for 'mode'. Use 'mode ipsec ipv4'.")
		}
		s.Config.TunnelMode = "ipsec ipv4"
		s.Println("Tunnel mode set to IPsec IPv4.")
	case "source":
		if len(args) != 2 {
			return errors.New("Invalid arguments for 'source'. Use 'source <interface>'.")
		}
		s.Config.TunnelSource = args[1]
		s.Printf("Tunnel source interface set to '%s'.\n", args[1])
	case "destination":
		if len(args) != 2 {
			return errors.New("Invalid arguments for 'destination'. Use 'destination <ip-address>'.")
		}
		ip, err := netstate.ParseIPv4(args[1])
		if err != nil {
			return errors.New("Invalid IP address format.")
		}
		s.Config.TunnelDestination = ip.String()
		s.Printf("Tunnel destination IP address set to '%s'.\n", ip)
	case "protection":
		if len(args) != 4 || args[1] != "ipsec" || args[2] != "profile" {
			return errors.New("Invalid arguments for 'protection'. Use 'protection ipsec profile <profile-name>'.")
		}
		s.Config.TunnelProtectionProfile = args[3]
		s.Printf("Tunnel protection associated with IPsec profile '%s'.\n", args[3])
	default:
		return errors.New("Invalid subcommand. Use 'mode', 'source', 'destination' or 'protection'.")
	}
	return nil
}

func virtualTemplate(args []string, s *session.Session) error {
	if s.Mode != mode.Config {
		return errors.New("The 'virtual-template' command is only available in Configuration mode.")
	}
	if len(args) != 1 {
		return errors.New("Invalid arguments for 'virtual-template'. Use 'virtual-template <number>'.")
	}
	if _, err := strconv.ParseUint(args[0], 10, 32); err != nil {
		return errors.New("Invalid argument for 'virtual-template'. The template number must be a valid number.")
	}
	s.Config.VirtualTemplate = args[0]
	s.Printf("Entering interface configuration mode for virtual-template interface '%s'.\n", args[0])
	return nil
}

