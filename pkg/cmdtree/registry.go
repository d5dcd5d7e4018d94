package cmdtree

import (
	"fmt"
	"sort"

	"github.com/psaab/pnfcli/pkg/mode"
)

// Registry holds the static and dynamic command tables. Names are unique
// across both.
type Registry struct {
	static  map[string]*Command
	dynamic map[string]*Command

	Static  StaticPolicy
	Dynamic *HierarchyPolicy
}

// NewRegistry returns an empty registry using DefaultAllowLists.
func NewRegistry() *Registry {
	return &Registry{
		static:  make(map[string]*Command),
		dynamic: make(map[string]*Command),
		Static:  DefaultAllowLists,
		Dynamic: NewHierarchyPolicy(),
	}
}

// Register adds a static command.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Name == "" || cmd.Exec == nil {
		return fmt.Errorf("register: command needs a name and an exec function")
	}
	if _, ok := r.static[cmd.Name]; ok {
		return fmt.Errorf("register %q: already registered", cmd.Name)
	}
	if _, ok := r.dynamic[cmd.Name]; ok {
		return fmt.Errorf("register %q: name used by a dynamic command", cmd.Name)
	}
	r.static[cmd.Name] = cmd
	return nil
}

// RegisterDynamic adds or replaces a command visible in modes, widened
// through the mode hierarchy.
func (r *Registry) RegisterDynamic(cmd *Command, modes ...mode.Mode) error {
	if cmd == nil || cmd.Name == "" || cmd.Exec == nil {
		return fmt.Errorf("register dynamic: command needs a name and an exec function")
	}
	if _, ok := r.static[cmd.Name]; ok {
		return fmt.Errorf("register dynamic %q: name used by a static command", cmd.Name)
	}
	r.dynamic[cmd.Name] = cmd
	r.Dynamic.Allow(cmd.Name, modes...)
	return nil
}

// Unregister removes a dynamic command.
func (r *Registry) Unregister(name string) {
	delete(r.dynamic, name)
	r.Dynamic.Remove(name)
}

// Lookup returns the descriptor for an exact name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	if c, ok := r.static[name]; ok {
		return c, true
	}
	c, ok := r.dynamic[name]
	return c, ok
}

// Allowed reports whether name is registered and visible in m.
func (r *Registry) Allowed(m mode.Mode, name string) bool {
	if _, ok := r.static[name]; ok {
		return r.Static.Allowed(m, name)
	}
	if _, ok := r.dynamic[name]; ok {
		return r.Dynamic.Allowed(m, name)
	}
	return false
}

// Visible returns the sorted names usable in m: the registered part of the
// mode's allow-list plus the dynamic commands the hierarchy lets through.
func (r *Registry) Visible(m mode.Mode) []string {
	var names []string
	for _, name := range r.Static.Names(m) {
		if _, ok := r.static[name]; ok {
			names = append(names, name)
		}
	}
	for name := range r.dynamic {
		if r.Dynamic.Allowed(m, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Walkup returns the first mode, starting at m and moving to parents,
// where name is legal: listed in that mode's allow-list or registered
// dynamically for it.
func (r *Registry) Walkup(m mode.Mode, name string) (mode.Mode, bool) {
	_, isStatic := r.static[name]
	_, isDynamic := r.dynamic[name]
	return mode.Walkup(m, func(x mode.Mode) bool {
		return (isStatic && r.Static.Allowed(x, name)) ||
			(isDynamic && r.Dynamic.AllowedDirect(x, name))
	})
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.static)+len(r.dynamic))
	for n := range r.static {
		names = append(names, n)
	}
	for n := range r.dynamic {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
