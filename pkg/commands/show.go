package commands

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/configstore"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/netstate"
	"github.com/psaab/pnfcli/pkg/session"
)

var showSubcommands = []string{
	"running-config", "startup-config", "access-lists", "ip", "version", "ntp",
	"processes", "clock", "vlan", "interfaces", "uptime", "login", "crypto key",
	"crypto certificate", "crypto dynamic-map", "crypto map", "crypto engine",
	"archive", "logging", "history",
}

// showTopics are the first words of showSubcommands.
var showTopics = []string{
	"running-config", "startup-config", "access-lists", "ip", "version", "ntp",
	"processes", "clock", "vlan", "interfaces", "uptime", "login", "crypto",
	"archive", "logging", "history",
}

// userShow are the topics available in User EXEC mode.
var userShow = map[string]bool{
	"clock": true, "uptime": true, "version": true, "interfaces": true,
	"ip": true, "vlan": true, "history": true,
}

const logLines = 50

func showCommand() *cmdtree.Command {
	return &cmdtree.Command{
		Name:        "show",
		Desc:        "Display all the show commands when specific command is passed",
		Subcommands: showSubcommands,
		Exec:        show,
	}
}

func show(args []string, s *session.Session) error {
	if !in(s, mode.KindUser, mode.KindPrivileged) {
		return errors.New("Show commands are only available in User EXEC mode and Privileged EXEC mode.")
	}
	args = expand(words(args), showTopics...)
	if len(args) == 0 {
		return errors.New("Incomplete command. Subcommand required.")
	}
	topic, rest := args[0], args[1:]
	if s.Mode == mode.User && !userShow[topic] && slices.Contains(showTopics, topic) {
		return fmt.Errorf("The 'show %s' command is only available in Privileged EXEC mode.", topic)
	}

	switch topic {
	case "clock":
		if s.Clock == nil {
			return errors.New("Clock functionality is unavailable.")
		}
		s.Println(s.Clock.FormatNow())
	case "uptime":
		if s.Clock == nil {
			return errors.New("Clock functionality is unavailable.")
		}
		s.Println(s.Clock.FormatUptime())
	case "version":
		return showVersion(s)
	case "interfaces":
		showInterfaces(s)
	case "ip":
		return showIP(rest, s)
	case "vlan":
		return showVlan(s)
	case "history":
		for i, line := range s.History {
			s.Printf("%5d  %s\n", i+1, line)
		}
	case "running-config":
		s.Printf("Building configuration...\n\n")
		s.Printf("Current configuration : 0 bytes\n\n")
		s.Println(configstore.RenderRunning(s.Config, s.Net))
	case "startup-config":
		s.Printf("Building configuration...\n\n")
		if s.Config.LastWritten != "" && s.Config.StartupConfig != "" {
			s.Printf("Startup configuration (last saved: %s):\n\n", s.Config.LastWritten)
			s.Println(s.Config.StartupConfig)
		} else {
			s.Printf("Startup configuration (default):\n\n")
			s.Println(configstore.DefaultStartupConfig)
		}
	case "login":
		s.Println("A default login delay of 1 seconds is applied.")
		s.Println("No Quiet-Mode access list has been configured.")
		s.Println(" ")
		s.Println("Router NOT enabled to watch for login Attacks")
	case "ntp":
		return showNTP(rest, s)
	case "access-lists":
		showAccessLists(s)
	case "processes":
		return showProcesses(rest, s)
	case "crypto":
		return showCrypto(rest, s)
	case "archive":
		return showArchive(rest, s)
	case "logging":
		showLogging(s)
	default:
		return fmt.Errorf("Invalid show command: %s", topic)
	}
	return nil
}

func showVersion(s *session.Session) error {
	s.Println("Cisco IOS Software, C2900 Software (C2900-UNIVERSALK9-M), Version 15.1(4)M4, RELEASE SOFTWARE (fc2)")
	s.Println("Compiled Thurs 5-Jan-12 15:41 by pt_team")
	s.Println(" ")
	s.Println("ROM: System Bootstrap, Version 15.1(4)M4, RELEASE SOFTWARE (fc1)")
	if s.Clock == nil {
		return errors.New("Clock functionality is unavailable.")
	}
	s.Println(s.Clock.FormatUptime())
	s.Println(" ")
	s.Println("Device Details... ")
	s.Println("PNF Router")
	return nil
}

func showInterfaces(s *session.Session) {
	found := false
	for _, name := range s.Net.InterfaceNames() {
		ifc := s.Net.Interfaces[name]
		if !ifc.HasAddr() {
			continue
		}
		found = true
		s.Printf("%s is up, line protocol is up\n", name)
		s.Printf("  Internet address is %s, subnet mask 255.255.255.0\n", ifc.Addr)
		s.Println("  MTU 1500 bytes, BW 10000 Kbit, DLY 100000 usec")
		s.Println("  Encapsulation ARPA, loopback not set, keepalive set (10 sec)")
		s.Println("  Last clearing of \"show interface\" counters: never")
		s.Println("  Input queue: 0/2000/0/0 (size/max/drops/flushes); Total output drops: 0")
		s.Println("  5 minute input rate 1000 bits/sec, 10 packets/sec")
		s.Println("  5 minute output rate 500 bits/sec, 5 packets/sec")
		s.Println("  100 packets input, 1000 bytes, 10 no buffer")
		s.Println("  50 packets output, 500 bytes, 0 underruns")
	}
	if !found {
		s.Println("No interfaces found.")
	}
}

func showIP(args []string, s *session.Session) error {
	args = expand(args, "ospf", "route", "interface")
	if len(args) == 0 {
		return errors.New("Invalid IP subcommand. Use 'ospf neighbor', 'route', or 'interface brief'")
	}
	switch args[0] {
	case "ospf":
		if len(args) != 2 || !strings.HasPrefix("neighbor", args[1]) {
			return errors.New("Invalid OSPF subcommand. Use 'neighbor'")
		}
		o := &s.Net.OSPF
		routerID := o.RouterID
		if routerID == "" {
			routerID = "Not set"
		}
		s.Println("Current OSPF Configuration:")
		s.Printf("Router ID: %q\n", routerID)
		s.Printf("Administrative Distance: %d\n", o.EffectiveDistance())
		s.Printf("Default Information Originate: %t\n", o.DefaultOriginate)
		s.Printf("Passive Interfaces: %s\n", quoteList(o.Passive))
		for _, n := range o.SortedNeighbors() {
			if n.HasCost {
				s.Printf("Neighbor: %s cost %d\n", n.Addr, n.Cost)
			} else {
				s.Printf("Neighbor: %s\n", n.Addr)
			}
		}
	case "route":
		return showRoute(args[1:], s)
	case "interface":
		if len(args) != 2 || !strings.HasPrefix("brief", args[1]) {
			return errors.New("Invalid interface subcommand. Use 'brief'")
		}
		s.Printf("%-22s %-15s %-8s %-20s %-20s %-10s\n", "Interface", "IP-Address", "OK?", "Method", "Status", "Protocol")
		for _, name := range s.Net.InterfaceNames() {
			ifc := s.Net.Interfaces[name]
			addr := "unassigned"
			if ifc.HasAddr() {
				addr = ifc.Addr.String()
			}
			status, protocol := "administratively down", "down"
			if ifc.Up {
				status, protocol = "up", "up"
			}
			s.Printf("%-22s %-15s YES     unset/manual        %s         %s\n", name, addr, status, protocol)
		}
	default:
		return errors.New("Invalid IP subcommand. Use 'ospf neighbor', 'route', or 'interface brief'")
	}
	return nil
}

// quoteList renders names as ["a", "b"].
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

var routeCodes = []string{
	"Codes: L - local, C - connected, S - static, R - RIP, M - mobile, B - BGP",
	"       D - EIGRP, EX - EIGRP external, O - OSPF, IA - OSPF inter area",
	"       N1 - OSPF NSSA external type 1, N2 - OSPF NSSA external type 2",
	"       E1 - OSPF external type 1, E2 - OSPF external type 2, E - EGP",
	"       i - IS-IS, L1 - IS-IS level-1, L2 - IS-IS level-2, ia - IS-IS inter area",
	"       * - candidate default, U - per-user static route, o - ODR",
	"       P - periodic downloaded static route",
}

func showRoute(args []string, s *session.Session) error {
	switch len(args) {
	case 0:
		for _, line := range routeCodes {
			s.Println(line)
		}
		s.Println("")
		routes := s.Net.SortedRoutes()
		if len(routes) == 0 {
			s.Println("No routes configured.")
			return nil
		}
		for _, r := range routes {
			code := "S"
			if r.Connected() {
				code = "C"
			}
			s.Printf("%s\t%s %s via %s\n", code, r.Destination, r.Mask, r.Target())
		}
	case 1:
		ip, err := netstate.ParseIPv4(args[0])
		if err != nil {
			return errors.New("Invalid IP address format.")
		}
		r, ok := s.Net.Routes[ip]
		if !ok {
			s.Printf("No route found for %s.\n", ip)
			return nil
		}
		via := "static"
		if r.Connected() {
			via = "connected"
		}
		s.Printf("Routing entry for %s/%s\n", r.Destination, r.Mask)
		s.Printf("Known via \"%s\"\n", via)
		s.Println("  Routing Descriptor Blocks:")
		s.Printf("  * %s\n", r.Target())
	default:
		return errors.New("Invalid arguments. Use 'show ip route' or 'show ip route <ip-address>'.")
	}
	return nil
}

func showVlan(s *session.Session) error {
	ids := s.Net.VLANIDs()
	if len(ids) == 0 {
		return errors.New("No VLAN information available.")
	}
	ports := make(map[int][]string)
	for _, name := range s.Net.InterfaceNames() {
		if v := s.Net.Interfaces[name].Switchport.AccessVlan; v != 0 {
			ports[v] = append(ports[v], name)
		}
	}
	s.Printf("%-6s %-30s %-10s %s\n", "VLAN", "Name", "Status", "Ports")
	for _, id := range ids {
		v := s.Net.VLANs[id]
		s.Printf("%-6d %-30s %-10s %s\n", id, v.Name, v.State, strings.Join(ports[id], ", "))
	}
	return nil
}

func showNTP(args []string, s *session.Session) error {
	n := &s.Net.NTP
	if len(args) == 0 {
		s.Printf("NTP Master: %s\n", enabled(n.Master))
		s.Printf("NTP Authentication: %s\n", enabled(n.Authenticate))
		if keys := n.KeyNumbers(); len(keys) > 0 {
			s.Println("NTP Authentication Keys:")
			for _, k := range keys {
				s.Printf("Key %d: %s\n", k, n.Keys[k])
			}
		}
		if trusted := n.TrustedNumbers(); len(trusted) > 0 {
			s.Println("NTP Trusted Keys:")
			for _, k := range trusted {
				s.Printf("Trusted Key %d\n", k)
			}
		}
		return nil
	}
	if len(args) != 1 || !strings.HasPrefix("associations", args[0]) {
		return errors.New("Invalid NTP subcommand. Use 'associations' or no subcommand")
	}
	if len(n.Associations) == 0 {
		s.Println("No NTP associations configured.")
		return nil
	}
	s.Println("address         ref clock       st   when     poll    reach  delay          offset            disp")
	for _, a := range n.Associations {
		s.Printf(" ~%s       %s          %d   %s        %d      %d      %.2f           %.2f              %.2f\n",
			a.Address, a.RefClock, a.Stratum, a.When, a.Poll, a.Reach, a.Delay, a.Offset, a.Disp)
	}
	s.Println(" * sys.peer, # selected, + candidate, - outlyer, x falseticker, ~ configured")
	return nil
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

func showAccessLists(s *session.Session) {
	names := s.Net.ACLNames()
	if len(names) == 0 {
		s.Println("No access lists configured.")
		return
	}
	for _, name := range names {
		acl := s.Net.ACLs[name]
		s.Printf("\nAccess list: %s\n", acl.Name)
		for _, e := range acl.Entries {
			if e.Matches > 0 {
				s.Printf("  %s (%d matches)\n", e, e.Matches)
			} else {
				s.Printf("  %s\n", e)
			}
		}
	}
}

func showProcesses(args []string, s *session.Session) error {
	switch strings.Join(args, " ") {
	case "":
		s.Println("CPU utilization for five seconds: 0%/0%; one minute: 0%; five minutes: 0%")
		s.Println(" PID Q  Ty       PC  Runtime(uS)    Invoked   uSecs    Stacks TTY Process")
		s.Println("1 C  sp 602F3AF0            0       1627       0 2600/3000   0 Load Meter")
		s.Println("2 L  we 60C5BE00            4        136      29 5572/6000   0 CEF Scanner")
		s.Println("3 L  st 602D90F8         1676        837    2002 5740/6000   0 Check heaps")
		s.Println("4 C  we 602D08F8            0          1       0 5568/6000   0 Chunk Manager")
		s.Println("5 C  we 602DF0E8            0          1       0 5592/6000   0 Pool Manager")
	case "cpu":
		s.Println("CPU utilization for five seconds: 8%/4%; one minute: 6%; five minutes: 5%")
		s.Println(" PID Runtime(uS)   Invoked  uSecs    5Sec   1Min   5Min TTY Process")
		s.Println("1         384     32789     11   0.00%  0.00%  0.00%   0 Load Meter")
		s.Println("2        2752      1179   2334   0.73%  1.06%  0.29%   0 Exec")
		s.Println("3      318592      5273  60419   0.00%  0.15%  0.17%   0 Check heaps")
		s.Println("4           4         1   4000   0.00%  0.00%  0.00%   0 Pool Manager")
		s.Println("5        6472      6568    985   0.00%  0.00%  0.00%   0 ARP Input")
	case "cpu history":
		s.Println("CPU% per minute (last 60 minutes)")
		s.Println("100")
		s.Println(" 90")
		s.Println(" 80         *  *                     * *     *  * *  *")
		s.Println("70  * * ***** *  ** ***** ***  **** ******  *  *******     * *")
		s.Println("60  #***##*##*#***#####*#*###*****#*###*#*#*##*#*##*#*##*****#")
		for _, pct := range []string{"50", "40", "30", "20", "10"} {
			s.Println(pct + "  ##########################################################")
		}
		s.Println("0....5....1....1....2....2....3....3....4....4....5....5....")
		s.Println("0    5    0    5    0    5    0    5    0    5")
	case "memory":
		s.Println("Total: 106206400, Used: 7479116, Free: 98727284")
		s.Println("PID TTY  Allocated      Freed    Holding    Getbufs    Retbufs Process")
		s.Println("0   0      81648       1808    6577644          0          0 *Init*")
		s.Println("0   0        572     123196        572          0          0 *Sched*")
		s.Println("0   0   10750692    3442000       5812    2813524          0 *Dead*")
		s.Println("1   0        276        276       3804          0          0 Load Meter")
	default:
		return errors.New("Invalid subcommand for 'show processes'. Valid subcommands are 'cpu', 'cpu history', and 'memory'.")
	}
	return nil
}

// pemField returns the trimmed line of data that starts with prefix.
func pemField(data, prefix string) (string, bool) {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, prefix) {
			return line, true
		}
	}
	return "", false
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func showCrypto(args []string, s *session.Session) error {
	if len(args) == 0 {
		return errors.New("Specify 'key' or 'certificate' after 'crypto'.")
	}
	cfg := s.Config
	switch args[0] {
	case "key":
		if len(cfg.CryptoKeys) == 0 {
			s.Println("No crypto keys found.")
			return nil
		}
		s.Println("Crypto keys:")
		s.Println("------------")
		for _, name := range sortedNames(cfg.CryptoKeys) {
			data := cfg.CryptoKeys[name]
			s.Printf("Key: %s\n", name)
			switch {
			case strings.Contains(data, "BEGIN RSA"):
				s.Println("Type: RSA")
			case strings.Contains(data, "BEGIN DSA"):
				s.Println("Type: DSA")
			}
			s.Println("Usage: General Purpose")
			s.Println("------------")
		}
	case "certificate":
		if len(cfg.Certificates) == 0 {
			s.Println("No certificates found.")
			return nil
		}
		s.Println("Certificates:")
		s.Println("-------------")
		for _, name := range sortedNames(cfg.Certificates) {
			data := cfg.Certificates[name]
			s.Printf("Certificate: %s\n", name)
			if line, ok := pemField(data, "Subject:"); ok {
				s.Println(line)
			}
			if line, ok := pemField(data, "Issuer:"); ok {
				s.Println(line)
			}
			s.Println("Status: Active")
			s.Println("-------------")
		}
	case "dynamic-map":
		s.Println("Crypto dynamic-map entries:")
		for _, name := range sortedNames(cfg.CryptoDynamicMaps) {
			e := cfg.CryptoDynamicMaps[name]
			s.Printf("Dynamic-map '%s' sequence %d\n", e.Name, e.SeqNum)
		}
	case "map":
		s.Println("Crypto map entries:")
		for _, name := range sortedNames(cfg.CryptoMaps) {
			e := cfg.CryptoMaps[name]
			s.Printf("Crypto map '%s' sequence %d\n", e.Name, e.SeqNum)
			if e.InterfaceID != "" {
				s.Printf("  Interface: %s\n", e.InterfaceID)
			}
			if addr, ok := cfg.CryptoLocalAddresses[e.Name]; ok {
				s.Printf("  Local address: %s\n", addr)
			}
		}
	case "engine":
		s.Println("Crypto engine configuration:")
		if cfg.CryptoEngineAccelerator != nil {
			s.Printf("Hardware crypto accelerator configured in slot %d\n", *cfg.CryptoEngineAccelerator)
		} else {
			s.Println("No hardware crypto accelerator configured")
		}
	default:
		return errors.New("Invalid crypto show command. Use 'show crypto key' or 'show crypto certificate'.")
	}
	return nil
}

func showArchive(args []string, s *session.Session) error {
	if s.Store == nil {
		return errors.New("No configuration store available.")
	}
	if len(args) == 0 {
		entries := s.Store.ListHistory()
		if len(entries) == 0 {
			s.Println("No saved configurations.")
			return nil
		}
		s.Println("Saved configurations (most recent first):")
		for i, e := range entries {
			s.Printf("  %-3d %s  %s\n", i, e.Timestamp.Format("2006-01-02 15:04:05"), e.Comment)
		}
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.New("Usage: show archive [<index>]")
	}
	entry, err := s.Store.Snapshot(n)
	if err != nil {
		return err
	}
	data, err := entry.Config.Marshal()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.Println(string(data))
	return nil
}

func showLogging(s *session.Session) {
	if s.Console == nil {
		s.Println("Logging buffer is not available.")
		return
	}
	state := "disabled"
	if s.Console.Debug() {
		state = "enabled"
	}
	s.Printf("Console debug logging: %s\n", state)
	buf := s.Console.Buffer()
	if buf == nil {
		return
	}
	s.Printf("Log Buffer (%d records):\n", buf.Len())
	for _, rec := range buf.Latest(logLines) {
		s.Println(rec.String())
	}
}
