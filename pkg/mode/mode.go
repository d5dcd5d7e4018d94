// Package mode defines the operating modes of the router shell and the
// parent relationship between them.
package mode

import "fmt"

// Kind identifies a mode without its payload.
type Kind int

const (
	KindUser Kind = iota
	KindPrivileged
	KindConfig
	KindInterface
	KindVlan
	KindRouterConfig
	KindStdNacl
	KindExtNacl
	KindCryptoUser
)

// Mode is the active operating context of a session. The two ACL kinds
// carry the name of the list being edited in ACL; for every other kind ACL
// is empty. Mode is comparable, and == includes the payload.
type Mode struct {
	Kind Kind
	ACL  string
}

var (
	User         = Mode{Kind: KindUser}
	Privileged   = Mode{Kind: KindPrivileged}
	Config       = Mode{Kind: KindConfig}
	Interface    = Mode{Kind: KindInterface}
	Vlan         = Mode{Kind: KindVlan}
	RouterConfig = Mode{Kind: KindRouterConfig}
	CryptoUser   = Mode{Kind: KindCryptoUser}
)

// StdNacl returns the standard named ACL mode for acl.
func StdNacl(acl string) Mode { return Mode{Kind: KindStdNacl, ACL: acl} }

// ExtNacl returns the extended named ACL mode for acl.
func ExtNacl(acl string) Mode { return Mode{Kind: KindExtNacl, ACL: acl} }

// All lists one representative of every kind, ACL kinds with an empty name.
var All = []Mode{
	User, Privileged, Config, Interface, Vlan, RouterConfig,
	StdNacl(""), ExtNacl(""), CryptoUser,
}

var kindNames = map[Kind]string{
	KindUser:         "UserMode",
	KindPrivileged:   "PrivilegedMode",
	KindConfig:       "ConfigMode",
	KindInterface:    "InterfaceMode",
	KindVlan:         "VlanMode",
	KindRouterConfig: "RouterConfigMode",
	KindStdNacl:      "ConfigStdNaclMode",
	KindExtNacl:      "ConfigExtNaclMode",
	KindCryptoUser:   "CryptoUserMode",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (m Mode) String() string {
	if m.IsACL() {
		return fmt.Sprintf("%s(%s)", m.Kind, m.ACL)
	}
	return m.Kind.String()
}

// IsACL reports whether m edits a named access list.
func (m Mode) IsACL() bool {
	return m.Kind == KindStdNacl || m.Kind == KindExtNacl
}

// Suffix returns the prompt decoration that follows the hostname.
// rangeSelected switches interface mode to the range prompt.
func Suffix(m Mode, rangeSelected bool) string {
	switch m.Kind {
	case KindUser:
		return ">"
	case KindPrivileged:
		return "#"
	case KindConfig:
		return "(config)#"
	case KindInterface:
		if rangeSelected {
			return "(config-if-range)#"
		}
		return "(config-if)#"
	case KindVlan:
		return "(config-vlan)#"
	case KindRouterConfig:
		return "(config-router)#"
	case KindStdNacl:
		return "(config-std-nacl)#"
	case KindExtNacl:
		return "(config-ext-nacl)#"
	case KindCryptoUser:
		return "(user)#"
	}
	return ">"
}

// Prompt builds the full prompt for hostname in mode m.
func Prompt(hostname string, m Mode, rangeSelected bool) string {
	return hostname + Suffix(m, rangeSelected)
}
