package netstate

import (
	"net/netip"
	"sort"
)

// DefaultOSPFDistance is reported when no distance was configured.
const DefaultOSPFDistance = 110

// Area holds "area <id> ..." settings.
type Area struct {
	Authentication bool
	Stub           bool
	NoSummary      bool
	DefaultCost    int // 0 when unset
}

// Neighbor is a manually configured OSPF neighbor.
type Neighbor struct {
	Addr    netip.Addr
	Cost    int
	HasCost bool
}

// OSPF is the state of the single OSPF process.
type OSPF struct {
	ProcessID        int // 0 when no process is running
	RouterID         string
	Distance         int // 0 when unset
	DefaultOriginate bool
	Passive          []string
	// Networks maps "<ip> <wildcard>" to the area id.
	Networks  map[string]int
	Neighbors map[netip.Addr]Neighbor
	Areas     map[string]*Area
}

func newOSPF() OSPF {
	return OSPF{
		Networks:  make(map[string]int),
		Neighbors: make(map[netip.Addr]Neighbor),
		Areas:     make(map[string]*Area),
	}
}

// Reset discards every OSPF setting, as "clear ip ospf process" does.
func (o *OSPF) Reset() {
	*o = newOSPF()
}

// EffectiveDistance returns the configured distance or the default.
func (o *OSPF) EffectiveDistance() int {
	if o.Distance == 0 {
		return DefaultOSPFDistance
	}
	return o.Distance
}

// Area returns area id, creating it on first use.
func (o *OSPF) Area(id string) *Area {
	if a, ok := o.Areas[id]; ok {
		return a
	}
	a := &Area{}
	o.Areas[id] = a
	return a
}

// AddPassive marks ifname passive. Duplicates are ignored.
func (o *OSPF) AddPassive(ifname string) {
	for _, p := range o.Passive {
		if p == ifname {
			return
		}
	}
	o.Passive = append(o.Passive, ifname)
}

// NetworkKeys returns the network statements in sorted order.
func (o *OSPF) NetworkKeys() []string {
	return sortedKeys(o.Networks)
}

// SortedNeighbors returns neighbors ordered by address.
func (o *OSPF) SortedNeighbors() []Neighbor {
	out := make([]Neighbor, 0, len(o.Neighbors))
	for _, n := range o.Neighbors {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Addr.Less(out[j].Addr) })
	return out
}

// AreaIDs returns the configured area ids in sorted order.
func (o *OSPF) AreaIDs() []string {
	return sortedKeys(o.Areas)
}
