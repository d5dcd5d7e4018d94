package netstate

import (
	"errors"
	"fmt"
	"strings"
)

// ACLKind distinguishes standard from extended lists.
type ACLKind int

const (
	ACLStandard ACLKind = iota
	ACLExtended
)

func (k ACLKind) String() string {
	if k == ACLExtended {
		return "extended"
	}
	return "standard"
}

// ACLEntry is one permit or deny line.
type ACLEntry struct {
	Action      string
	Protocol    string // empty for standard entries
	Source      string
	SourceOp    string
	SourcePort  string
	Destination string
	DestOp      string
	DestPort    string
	Matches     int
}

// String renders the entry the way it appears in the running config,
// without the leading space.
func (e ACLEntry) String() string {
	parts := []string{e.Action}
	proto := e.Protocol
	if proto == "" {
		proto = "ip"
	}
	parts = append(parts, proto, e.Source)
	if e.SourceOp != "" {
		parts = append(parts, e.SourceOp, e.SourcePort)
	}
	if e.Destination != "" {
		parts = append(parts, e.Destination)
	}
	if e.DestOp != "" {
		parts = append(parts, e.DestOp, e.DestPort)
	}
	return strings.Join(parts, " ")
}

// ACL is a named or numbered access list.
type ACL struct {
	Name    string
	Kind    ACLKind
	Entries []ACLEntry
}

// ACL returns the named list, creating it with kind on first use.
func (s *State) ACL(name string, kind ACLKind) *ACL {
	if a, ok := s.ACLs[name]; ok {
		return a
	}
	a := &ACL{Name: name, Kind: kind}
	s.ACLs[name] = a
	return a
}

// ACLNames returns list names in sorted order.
func (s *State) ACLNames() []string {
	return sortedKeys(s.ACLs)
}

var portOps = map[string]bool{"eq": true, "neq": true, "gt": true, "lt": true}

// ParseStandard parses "<ip> [wildcard]" for a standard list entry. The
// wildcard defaults to 0.0.0.0.
func ParseStandard(action string, args []string) (ACLEntry, error) {
	if len(args) < 1 || len(args) > 2 {
		return ACLEntry{}, fmt.Errorf("Invalid syntax. Use '%s <ip> <wildcard mask>'.", action)
	}
	src, err := ParseIPv4(args[0])
	if err != nil {
		return ACLEntry{}, errors.New("Invalid IP address format.")
	}
	wildcard := "0.0.0.0"
	if len(args) == 2 {
		w, err := ParseIPv4(args[1])
		if err != nil {
			return ACLEntry{}, errors.New("Invalid wildcard mask format.")
		}
		wildcard = w.String()
	}
	return ACLEntry{Action: action, Source: src.String(), Destination: wildcard}, nil
}

// ParseExtended parses "<proto> <src> [op port] <dst> [op port]" where each
// endpoint is "any", "host <ip>" or "<ip> [wildcard]".
func ParseExtended(action string, args []string) (ACLEntry, error) {
	usage := fmt.Errorf("Invalid syntax. Use '%s <protocol> <src> [eq|neq|gt|lt <port>] <dst> [eq|neq|gt|lt <port>]'.", action)
	if len(args) < 3 {
		return ACLEntry{}, usage
	}
	e := ACLEntry{Action: action, Protocol: strings.ToLower(args[0])}
	rest := args[1:]

	src, n, err := parseEndpoint(rest, true)
	if err != nil {
		return ACLEntry{}, err
	}
	e.Source, rest = src, rest[n:]
	if len(rest) >= 2 && portOps[strings.ToLower(rest[0])] {
		e.SourceOp, e.SourcePort, rest = strings.ToLower(rest[0]), rest[1], rest[2:]
	}
	if len(rest) == 0 {
		return ACLEntry{}, usage
	}

	dst, n, err := parseEndpoint(rest, false)
	if err != nil {
		return ACLEntry{}, err
	}
	e.Destination, rest = dst, rest[n:]
	if len(rest) >= 2 && portOps[strings.ToLower(rest[0])] {
		e.DestOp, e.DestPort, rest = strings.ToLower(rest[0]), rest[1], rest[2:]
	}
	if len(rest) != 0 {
		return ACLEntry{}, usage
	}
	return e, nil
}

// parseEndpoint consumes one address specification from args and returns
// its canonical text and the number of tokens used. A bare source address
// only takes a wildcard when a destination still follows it.
func parseEndpoint(args []string, source bool) (string, int, error) {
	switch strings.ToLower(args[0]) {
	case "any":
		return "any", 1, nil
	case "host":
		if len(args) < 2 {
			return "", 0, errors.New("Missing address after 'host'.")
		}
		ip, err := ParseIPv4(args[1])
		if err != nil {
			return "", 0, errors.New("Invalid IP address format.")
		}
		return "host " + ip.String(), 2, nil
	}
	ip, err := ParseIPv4(args[0])
	if err != nil {
		return "", 0, errors.New("Invalid IP address format.")
	}
	if len(args) >= 2 {
		if w, err := ParseIPv4(args[1]); err == nil {
			remaining := args[2:]
			if !source || (len(remaining) > 0 && !portOps[strings.ToLower(remaining[0])]) ||
				(len(remaining) > 2 && portOps[strings.ToLower(remaining[0])]) {
				return ip.String() + " " + w.String(), 2, nil
			}
		}
	}
	return ip.String(), 1, nil
}
