package cmdtree

import (
	"fmt"
	"io"
	"strings"

	"github.com/psaab/pnfcli/pkg/mode"
)

// Banner is printed by "?" on an empty line and by "help".
const Banner = `Help may be requested at any point in a command by entering
a question mark '?'. If nothing matches, the help list will
be empty and you must backup until entering a '?' shows the
available options.
Two styles of help are provided:
1. Full help is available when you are ready to enter a
   command argument (e.g. 'show ?') and describes each possible
   argument.
2. Partial help is provided when an abbreviated argument is entered
   and you want to know what arguments match the input
   (e.g. 'show pr?'.
`

const showHint = "Some available show commands are present. To view enter 'show ?'"

var (
	aclHelp = []Candidate{
		{"deny", "Deny specific traffic"},
		{"permit", "Permit specific traffic"},
		{"exit", "Exit to config mode"},
		{"ip access-list", "Configure IP access list"},
		{"reload", "Reload the system"},
		{"clear", "Clear the terminal"},
		{"help", "Display available commands"},
	}

	// ModeHelp is the fixed per-mode command table. The first word of every
	// entry must be in the mode's allow-list.
	ModeHelp = map[mode.Kind][]Candidate{
		mode.KindUser: {
			{"enable", "Enter privileged mode"},
			{"exit", "Exit current mode"},
			{"ping", "Send ICMP echo request"},
			{"help", "Display available commands"},
			{"reload", "Reload the system"},
			{"clear", "Clear the terminal"},
			{"show", showHint},
		},
		mode.KindPrivileged: {
			{"configure", "Enter configuration mode"},
			{"exit", "Exit to user mode"},
			{"help", "Display available commands"},
			{"write", "Save the configuration"},
			{"copy", "Copy configuration files"},
			{"clock", "Manage system clock"},
			{"clear ip ospf process", "Clear all the ospf processes"},
			{"ping", "Send ICMP echo request"},
			{"show", showHint},
			{"ifconfig", "Display interface configuration"},
			{"reload", "Reload the system"},
			{"clear", "Clear the terminal"},
			{"debug", "Debug the availbale processes"},
			{"undebug", "Undebug the availbale processes"},
		},
		mode.KindConfig: {
			{"hostname", "Set system hostname"},
			{"interface", "Configure interface"},
			{"exit", "Exit to privileged mode"},
			{"tunnel", "Configure tunnel interface"},
			{"virtual-template", "Configure virtual template"},
			{"help", "Display available commands"},
			{"write", "Save the configuration"},
			{"ping", "Send ICMP echo request"},
			{"vlan", "Configure VLAN"},
			{"access-list", "Configure access list"},
			{"router", "Configure routing protocol"},
			{"enable", "Enter privileged mode"},
			{"ip route", "Configure static routes"},
			{"ip domain-name", "Configure DNS domain name"},
			{"ip access-list", "Configure IP access list"},
			{"service", "Configure system services"},
			{"set", "Set system parameters"},
			{"ifconfig", "Configure interface"},
			{"ntp", "Configure NTP"},
			{"crypto", "Configure encryption"},
			{"reload", "Reload the system"},
			{"clear", "Clear the terminal"},
		},
		mode.KindInterface: {
			{"exit", "Exit to config mode"},
			{"shutdown", "Shutdown interface"},
			{"no", "Negate a command"},
			{"switchport", "Configure switching parameters"},
			{"help", "Display available commands"},
			{"write", "Save the configuration"},
			{"interface", "Select another interface"},
			{"ip address", "Set IP address"},
			{"ip ospf", "Configure OSPF protocol"},
			{"reload", "Reload the system"},
			{"clear", "Clear the terminal"},
		},
		mode.KindVlan: {
			{"name", "Set VLAN name"},
			{"exit", "Exit to config mode"},
			{"state", "Set VLAN state"},
			{"vlan", "Configure VLAN parameters"},
			{"reload", "Reload the system"},
			{"clear", "Clear the terminal"},
			{"help", "Display available commands"},
		},
		mode.KindRouterConfig: {
			{"network", "Configure network"},
			{"exit", "Exit to config mode"},
			{"neighbor", "Configure BGP neighbor"},
			{"area", "Configure OSPF area"},
			{"passive-interface", "Configure passive interface"},
			{"distance", "Configure administrative distance"},
			{"default-information", "Configure default route distribution"},
			{"router-id", "Configure router ID"},
			{"reload", "Reload the system"},
			{"clear", "Clear the terminal"},
			{"help", "Display available commands"},
		},
		mode.KindStdNacl: aclHelp,
		mode.KindExtNacl: aclHelp,
		mode.KindCryptoUser: {
			{"exit", "Exit to privileged mode"},
		},
	}
)

// WriteModeHelp prints the banner and the command table of m, framed the
// way the router prints it.
func WriteModeHelp(w io.Writer, m mode.Mode) {
	var sb strings.Builder
	sb.WriteString("\n \n")
	sb.WriteString(Banner)
	sb.WriteString("\n\nAvailable commands\n")
	sb.WriteString("\n \n")
	for _, c := range ModeHelp[m.Kind] {
		width := max(18, len(c.Name)+1)
		fmt.Fprintf(&sb, "%-*s- %s\n", width, c.Name, c.Desc)
	}
	sb.WriteString("\n \n")
	io.WriteString(w, sb.String())
}
