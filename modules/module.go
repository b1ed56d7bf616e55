// Package modules is the registry of script-facing modules. Each module
// registers itself from an init function; the binary pulls the ones it
// wants in with blank imports.
package modules

import (
	"fmt"
	"sort"

	"github.com/mooffie/luaui/bridge"
)

// Module is one script-facing module.
type Module struct {
	// Name is the script-side name ("ui", "tty").
	Name string
	// Open installs the module into the bridge's Lua state.
	Open func(b *bridge.Bridge) error
}

var registry = make(map[string]*Module)

// Register adds a module to the global registry.
func Register(m *Module) {
	registry[m.Name] = m
}

// Get returns a registered module by name.
func Get(name string) (*Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// Names returns sorted names of all registered modules.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenAll installs every registered module, in name order so the result
// is deterministic.
func OpenAll(b *bridge.Bridge) error {
	for _, name := range Names() {
		if err := registry[name].Open(b); err != nil {
			return fmt.Errorf("opening module %s: %w", name, err)
		}
	}
	return nil
}
