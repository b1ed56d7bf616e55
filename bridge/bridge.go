// Package bridge ties script values to native widgets: it keeps the
// identity map between widget pointers and their Lua proxy tables,
// defines the class hierarchy scripts see, and translates widget
// toolkit messages into script method calls.
package bridge

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/script"
	"github.com/mooffie/luaui/widget"
)

// Bridge is the glue between one script engine and one widget host.
// Like the engine, it is single-threaded by contract.
type Bridge struct {
	Eng  *script.Engine
	Host widget.Host

	reg     registry
	classes map[string]*Class
}

// New creates a bridge over an engine and host.
func New(eng *script.Engine, host widget.Host) *Bridge {
	return &Bridge{
		Eng:     eng,
		Host:    host,
		reg:     newRegistry(),
		classes: make(map[string]*Class),
	}
}

func (b *Bridge) state() *lua.LState { return b.Eng.L }

// Class returns a previously defined widget class, or nil.
func (b *Bridge) Class(name string) *Class { return b.classes[name] }
