package configstore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/psaab/pnfcli/pkg/netstate"
)

// DefaultStartupConfig is shown by "show startup-config" before anything
// has been written.
const DefaultStartupConfig = `
Building configuration...

Current configuration : 0 bytes

version 15.1
no service timestamps log datetime msec
no service password-encryption
!
hostname Router
!
enable password 5 
enable secret 5 
!
interface FastEthernet0/0
no ip address
shutdown
!
!
end
`

// RenderRunning renders the running configuration from the persisted
// aggregate and the live device state.
func RenderRunning(cfg *Config, st *netstate.State) string {
	var b strings.Builder

	b.WriteString("version 15.1\n")
	b.WriteString("no service timestamps log datetime msec\n")
	if cfg.PasswordEncryption {
		b.WriteString("service password-encryption\n")
	} else {
		b.WriteString("no service password-encryption\n")
	}
	b.WriteString("!\n")
	fmt.Fprintf(&b, "hostname %s\n", cfg.Hostname)
	b.WriteString("!\n")
	fmt.Fprintf(&b, "enable password 5 %s\n", cfg.EncryptedPassword)
	fmt.Fprintf(&b, "enable secret 5 %s\n", cfg.EncryptedSecret)
	b.WriteString("!\n")
	if cfg.DomainName != "" {
		fmt.Fprintf(&b, "ip domain-name %s\n", cfg.DomainName)
		b.WriteString("!\n")
	}

	renderCrypto(&b, cfg)
	renderInterfaces(&b, cfg, st)

	for _, id := range st.VLANIDs() {
		v := st.VLANs[id]
		fmt.Fprintf(&b, "vlan %d\n name %s\n", v.ID, v.Name)
		if v.State != "active" {
			fmt.Fprintf(&b, " state %s\n", v.State)
		}
		b.WriteString("!\n")
	}

	b.WriteString("ip classes\n")
	for _, r := range st.SortedRoutes() {
		fmt.Fprintf(&b, "ip route %s %s %s\n", r.Destination, r.Mask, r.Target())
	}
	b.WriteString("!\n")

	renderOSPF(&b, &st.OSPF)
	renderACLs(&b, st)

	for _, server := range st.NTP.Servers {
		fmt.Fprintf(&b, "ntp server %s\n", server)
	}
	if st.NTP.Master {
		b.WriteString("ntp master\n")
	}
	b.WriteString("!\n")
	b.WriteString("end\n")
	return b.String()
}

func renderCrypto(b *strings.Builder, cfg *Config) {
	wrote := false
	if cfg.CryptoIPSecProfile != "" {
		fmt.Fprintf(b, "crypto ipsec profile %s\n", cfg.CryptoIPSecProfile)
		if len(cfg.TransformSets) > 0 {
			fmt.Fprintf(b, " set transform-set %s\n", strings.Join(cfg.TransformSets, " "))
		}
		wrote = true
	}
	names := make([]string, 0, len(cfg.CryptoTransformSets))
	for name := range cfg.CryptoTransformSets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "crypto ipsec transform-set %s %s\n", name, strings.Join(cfg.CryptoTransformSets[name], " "))
		wrote = true
	}
	if wrote {
		b.WriteString("!\n")
	}
}

func renderInterfaces(b *strings.Builder, cfg *Config, st *netstate.State) {
	names := st.InterfaceNames()
	if len(names) == 0 {
		b.WriteString("interface FastEthernet0/1\n no ip address\n duplex auto\n speed auto\n shutdown\n!\n")
	}
	for _, name := range names {
		ifc := st.Interfaces[name]
		fmt.Fprintf(b, "interface %s\n", name)
		if ifc.HasAddr() {
			fmt.Fprintf(b, " ip address %s %s\n", ifc.Addr, ifc.Mask)
		} else {
			b.WriteString(" no ip address\n")
		}
		keys := make([]string, 0, len(ifc.OSPF))
		for k := range ifc.OSPF {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, " ip ospf %s %s\n", k, ifc.OSPF[k])
		}
		b.WriteString(" duplex auto\n speed auto\n")
		if ifc.Switchport.Mode != "" {
			fmt.Fprintf(b, " switchport mode %s\n", ifc.Switchport.Mode)
		}
		if ifc.Switchport.AccessVlan != 0 {
			fmt.Fprintf(b, " switchport access vlan %d\n", ifc.Switchport.AccessVlan)
		}
		if ifc.Up {
			b.WriteString(" no shutdown\n")
		} else {
			b.WriteString(" shutdown\n")
		}
		b.WriteString("!\n")
	}
	if cfg.TunnelMode != "" || cfg.TunnelSource != "" || cfg.TunnelDestination != "" || cfg.TunnelProtectionProfile != "" {
		b.WriteString("interface Tunnel0\n")
		if cfg.TunnelMode != "" {
			fmt.Fprintf(b, " tunnel mode %s\n", cfg.TunnelMode)
		}
		if cfg.TunnelSource != "" {
			fmt.Fprintf(b, " tunnel source %s\n", cfg.TunnelSource)
		}
		if cfg.TunnelDestination != "" {
			fmt.Fprintf(b, " tunnel destination %s\n", cfg.TunnelDestination)
		}
		if cfg.TunnelProtectionProfile != "" {
			fmt.Fprintf(b, " tunnel protection ipsec profile %s\n", cfg.TunnelProtectionProfile)
		}
		b.WriteString("!\n")
	}
	if cfg.VirtualTemplate != "" {
		fmt.Fprintf(b, "interface Virtual-Template%s\n!\n", cfg.VirtualTemplate)
	}
	b.WriteString("interface Vlan1\n no ip address\n shutdown\n!\n")
}

func renderOSPF(b *strings.Builder, o *netstate.OSPF) {
	if o.ProcessID == 0 {
		return
	}
	fmt.Fprintf(b, "router ospf %d\n", o.ProcessID)
	b.WriteString(" log-adjacency-changes\n")
	if o.RouterID != "" {
		fmt.Fprintf(b, " router-id %s\n", o.RouterID)
	}
	for _, p := range o.Passive {
		fmt.Fprintf(b, " passive-interface %s\n", p)
	}
	for _, key := range o.NetworkKeys() {
		fmt.Fprintf(b, " network %s area %d\n", key, o.Networks[key])
	}
	for _, n := range o.SortedNeighbors() {
		if n.HasCost {
			fmt.Fprintf(b, " neighbor %s cost %d\n", n.Addr, n.Cost)
		} else {
			fmt.Fprintf(b, " neighbor %s\n", n.Addr)
		}
	}
	for _, id := range o.AreaIDs() {
		a := o.Areas[id]
		if a.Authentication {
			fmt.Fprintf(b, " area %s authentication\n", id)
		}
		if a.Stub {
			if a.NoSummary {
				fmt.Fprintf(b, " area %s stub no-summary\n", id)
			} else {
				fmt.Fprintf(b, " area %s stub\n", id)
			}
		}
		if a.DefaultCost != 0 {
			fmt.Fprintf(b, " area %s default-cost %d\n", id, a.DefaultCost)
		}
	}
	if o.Distance != 0 {
		fmt.Fprintf(b, " distance %d\n", o.Distance)
	}
	if o.DefaultOriginate {
		b.WriteString(" default-information originate\n")
	}
	b.WriteString("!\n")
}

func renderACLs(b *strings.Builder, st *netstate.State) {
	for _, name := range st.ACLNames() {
		acl := st.ACLs[name]
		fmt.Fprintf(b, "ip access-list %s %s\n", acl.Kind, acl.Name)
		for _, e := range acl.Entries {
			fmt.Fprintf(b, " %s\n", e)
		}
		b.WriteString("!\n")
	}
}
