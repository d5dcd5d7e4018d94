package netstate

import "sort"

// Association is one row of "show ntp associations".
type Association struct {
	Address  string
	RefClock string
	Stratum  int
	When     string
	Poll     int
	Reach    int
	Delay    float64
	Offset   float64
	Disp     float64
}

// NTP is the NTP client and server configuration.
type NTP struct {
	Servers      []string
	Associations []Association
	Authenticate bool
	Keys         map[uint32]string
	Trusted      map[uint32]bool
	Master       bool
}

func newNTP() NTP {
	return NTP{
		Keys:    make(map[uint32]string),
		Trusted: make(map[uint32]bool),
	}
}

// AddServer configures server and starts an unsynchronised association
// for it. It reports false if the server was already configured.
func (n *NTP) AddServer(server string) bool {
	for _, s := range n.Servers {
		if s == server {
			return false
		}
	}
	n.Servers = append(n.Servers, server)
	n.Associations = append(n.Associations, Association{
		Address:  server,
		RefClock: ".INIT.",
		Stratum:  16,
		When:     "-",
		Poll:     64,
		Disp:     0.01,
	})
	return true
}

// RemoveServer removes server and its association. It reports false if
// the server was not configured.
func (n *NTP) RemoveServer(server string) bool {
	idx := -1
	for i, s := range n.Servers {
		if s == server {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	n.Servers = append(n.Servers[:idx], n.Servers[idx+1:]...)
	assoc := n.Associations[:0]
	for _, a := range n.Associations {
		if a.Address != server {
			assoc = append(assoc, a)
		}
	}
	n.Associations = assoc
	return true
}

// KeyNumbers returns the authentication key numbers in ascending order.
func (n *NTP) KeyNumbers() []uint32 {
	return sortedUint32(n.Keys)
}

// TrustedNumbers returns the trusted key numbers in ascending order.
func (n *NTP) TrustedNumbers() []uint32 {
	return sortedUint32(n.Trusted)
}

func sortedUint32[V any](m map[uint32]V) []uint32 {
	out := make([]uint32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
