// Package netstate holds the in-memory device state that configuration
// commands mutate: interfaces, static routes, OSPF, access lists, NTP,
// VLANs and the host interface table shown by ifconfig.
//
// A State is owned by one session and is not safe for concurrent use.
package netstate

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"sort"
)

// Switchport holds layer-2 settings of an interface.
type Switchport struct {
	Mode       string // access or trunk
	AccessVlan int
}

// Interface is a router interface created by "interface <name>".
type Interface struct {
	Name       string
	Addr       netip.Addr
	Mask       netip.Addr
	Up         bool
	Switchport Switchport
	// OSPF holds per-interface "ip ospf" parameters keyed by name.
	OSPF map[string]string
}

// HasAddr reports whether an address was assigned with "ip address".
func (i *Interface) HasAddr() bool { return i.Addr.IsValid() }

// Route is a static route. Exactly one of NextHop and ExitInterface may be
// empty; both are set for "ip route <dst> <mask> <if> <next-hop>".
type Route struct {
	Destination   netip.Addr
	Mask          netip.Addr
	NextHop       string
	ExitInterface string
}

// Target returns the next hop and exit interface as configured.
func (r Route) Target() string {
	switch {
	case r.ExitInterface != "" && r.NextHop != "":
		return r.ExitInterface + " " + r.NextHop
	case r.ExitInterface != "":
		return r.ExitInterface
	}
	return r.NextHop
}

// Connected reports whether the route points only at an exit interface.
func (r Route) Connected() bool {
	return r.ExitInterface != "" && r.NextHop == ""
}

// HostInterface is an entry of the ifconfig table.
type HostInterface struct {
	Name      string
	Addr      netip.Addr
	Broadcast netip.Addr
}

// VLAN is a layer-2 VLAN created by "vlan <id>".
type VLAN struct {
	ID    int
	Name  string
	State string
}

// State is the complete mutable device state.
type State struct {
	Interfaces map[string]*Interface
	Routes     map[netip.Addr]Route
	OSPF       OSPF
	ACLs       map[string]*ACL
	NTP        NTP
	VLANs      map[int]*VLAN
	Ifconfig   map[string]HostInterface
}

// New returns an empty state with the host table seeded with ens33.
func New() *State {
	s := &State{
		Interfaces: make(map[string]*Interface),
		Routes:     make(map[netip.Addr]Route),
		OSPF:       newOSPF(),
		ACLs:       make(map[string]*ACL),
		NTP:        newNTP(),
		VLANs:      make(map[int]*VLAN),
		Ifconfig:   make(map[string]HostInterface),
	}
	addr := netip.MustParseAddr("192.168.253.135")
	s.Ifconfig["ens33"] = HostInterface{Name: "ens33", Addr: addr, Broadcast: Broadcast(addr, 24)}
	return s
}

// Interface returns the named interface, creating it administratively down
// if it does not exist.
func (s *State) Interface(name string) *Interface {
	if ifc, ok := s.Interfaces[name]; ok {
		return ifc
	}
	ifc := &Interface{Name: name, OSPF: make(map[string]string)}
	s.Interfaces[name] = ifc
	return ifc
}

// InterfaceNames returns interface names in sorted order.
func (s *State) InterfaceNames() []string {
	return sortedKeys(s.Interfaces)
}

// AddRoute installs r, replacing any route to the same destination.
func (s *State) AddRoute(r Route) {
	s.Routes[r.Destination] = r
}

// SortedRoutes returns the routes ordered by destination.
func (s *State) SortedRoutes() []Route {
	out := make([]Route, 0, len(s.Routes))
	for _, r := range s.Routes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Destination.Less(out[j].Destination) })
	return out
}

// Reachable reports whether ip is a route destination or the address of a
// configured interface.
func (s *State) Reachable(ip netip.Addr) bool {
	if _, ok := s.Routes[ip]; ok {
		return true
	}
	for _, ifc := range s.Interfaces {
		if ifc.Addr == ip {
			return true
		}
	}
	return false
}

// SetHostInterface adds or replaces an ifconfig entry with a /24 broadcast.
func (s *State) SetHostInterface(name string, addr netip.Addr) HostInterface {
	h := HostInterface{Name: name, Addr: addr, Broadcast: Broadcast(addr, 24)}
	s.Ifconfig[name] = h
	return h
}

// HostInterfaceNames returns the ifconfig table names in sorted order.
func (s *State) HostInterfaceNames() []string {
	return sortedKeys(s.Ifconfig)
}

// VLAN returns VLAN id, creating it active with the default name.
func (s *State) VLAN(id int) *VLAN {
	if v, ok := s.VLANs[id]; ok {
		return v
	}
	v := &VLAN{ID: id, Name: fmt.Sprintf("VLAN%04d", id), State: "active"}
	s.VLANs[id] = v
	return v
}

// VLANIDs returns VLAN ids in ascending order.
func (s *State) VLANIDs() []int {
	ids := make([]int, 0, len(s.VLANs))
	for id := range s.VLANs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Broadcast returns the broadcast address of addr within a prefix of the
// given length. Only IPv4 is supported; other addresses are returned as is.
func Broadcast(addr netip.Addr, prefixLen int) netip.Addr {
	if !addr.Is4() || prefixLen < 0 || prefixLen > 32 {
		return addr
	}
	b := addr.As4()
	v := binary.BigEndian.Uint32(b[:])
	v |= ^uint32(0) >> prefixLen
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

// ParseIPv4 parses a dotted-quad address.
func ParseIPv4(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(s)
	if err != nil || !a.Is4() {
		return netip.Addr{}, fmt.Errorf("invalid IPv4 address %q", s)
	}
	return a, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
