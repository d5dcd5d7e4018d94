package cmdtree

import (
	"slices"

	"github.com/psaab/pnfcli/pkg/mode"
)

// Policy decides whether a command name is legal in a mode.
type Policy interface {
	Allowed(m mode.Mode, name string) bool
}

// StaticPolicy is one fixed allow-list per mode kind. It never consults
// parent modes.
type StaticPolicy map[mode.Kind][]string

// DefaultAllowLists are the commands each mode accepts.
var DefaultAllowLists = StaticPolicy{
	mode.KindUser: {"enable", "ping", "help", "show", "clear", "reload", "exit"},
	mode.KindPrivileged: {"configure", "ping", "exit", "write", "help", "show",
		"copy", "clock", "clear", "reload", "debug", "undebug", "ifconfig"},
	mode.KindConfig: {"hostname", "interface", "ping", "exit", "clear", "tunnel",
		"access-list", "router", "virtual-template", "help", "write", "vlan", "ip",
		"service", "set", "enable", "ifconfig", "ntp", "no", "reload", "crypto"},
	mode.KindInterface: {"shutdown", "no", "exit", "clear", "help", "switchport",
		"write", "reload", "ip", "interface"},
	mode.KindVlan: {"name", "state", "clear", "exit", "help", "reload", "vlan"},
	mode.KindRouterConfig: {"network", "neighbor", "exit", "clear", "area",
		"passive-interface", "distance", "help", "reload", "default-information",
		"router-id"},
	mode.KindStdNacl:    {"deny", "permit", "help", "exit", "clear", "reload", "ip"},
	mode.KindExtNacl:    {"deny", "permit", "help", "exit", "clear", "reload", "ip"},
	mode.KindCryptoUser: {"exit"},
}

// Allowed implements Policy.
func (p StaticPolicy) Allowed(m mode.Mode, name string) bool {
	return slices.Contains(p[m.Kind], name)
}

// Names returns the allow-list of m.
func (p StaticPolicy) Names(m mode.Mode) []string {
	return p[m.Kind]
}

// HierarchyPolicy holds the allowed modes of each dynamic command. A
// command allowed in a mode is also visible from the modes below it on
// the User, Privileged, Config, Interface chain. Vlan, RouterConfig, the
// ACL modes and CryptoUser see only what names them directly.
type HierarchyPolicy struct {
	modes map[string][]mode.Mode
}

// NewHierarchyPolicy returns an empty policy.
func NewHierarchyPolicy() *HierarchyPolicy {
	return &HierarchyPolicy{modes: make(map[string][]mode.Mode)}
}

// Allow replaces the allowed modes of name.
func (p *HierarchyPolicy) Allow(name string, modes ...mode.Mode) {
	p.modes[name] = slices.Clone(modes)
}

// Remove forgets name.
func (p *HierarchyPolicy) Remove(name string) {
	delete(p.modes, name)
}

// AllowedDirect reports whether m itself is listed for name, without
// widening.
func (p *HierarchyPolicy) AllowedDirect(m mode.Mode, name string) bool {
	return slices.ContainsFunc(p.modes[name], func(a mode.Mode) bool { return a.Kind == m.Kind })
}

// Allowed implements Policy.
func (p *HierarchyPolicy) Allowed(m mode.Mode, name string) bool {
	if _, ok := p.modes[name]; !ok {
		return false
	}
	listed := func(x mode.Mode) bool { return p.AllowedDirect(x, name) }
	if !widens(m) {
		return listed(m)
	}
	_, ok := mode.Walkup(m, listed)
	return ok
}

func widens(m mode.Mode) bool {
	switch m.Kind {
	case mode.KindUser, mode.KindPrivileged, mode.KindConfig, mode.KindInterface:
		return true
	}
	return false
}
