// Package ttymod exposes terminal facts to scripts as the "tty" table:
// key name translation and the screen size.
package ttymod

import (
	"github.com/gdamore/tcell/v2"
	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/bridge"
	"github.com/mooffie/luaui/modules"
	"github.com/mooffie/luaui/widget"
)

func init() {
	modules.Register(&modules.Module{
		Name: "tty",
		Open: Open,
	})
}

var keyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[name] = k
	}
	return m
}()

// Open installs the tty table.
func Open(b *bridge.Bridge) error {
	L := b.Eng.L
	tty := L.NewTable()

	L.SetFuncs(tty, map[string]lua.LGFunction{
		// A single character names itself; anything longer must be a
		// tcell key name ("Enter", "F1", "Ctrl-C").
		"keyname_to_keycode": func(L *lua.LState) int {
			name := L.CheckString(1)
			runes := []rune(name)
			if len(runes) == 1 {
				L.Push(lua.LNumber(runes[0]))
				return 1
			}
			if key, ok := keyByName[name]; ok {
				L.Push(lua.LNumber(widget.KeyCodeFor(key)))
				return 1
			}
			L.Push(lua.LNil)
			return 1
		},
		"keycode_to_keyname": func(L *lua.LState) int {
			kc := widget.KeyCode(L.CheckInt(1))
			if kc.IsRune() {
				L.Push(lua.LString(string(kc.Rune())))
				return 1
			}
			if name, ok := tcell.KeyNames[kc.Key()]; ok {
				L.Push(lua.LString(name))
				return 1
			}
			L.Push(lua.LNil)
			return 1
		},
		"size": func(L *lua.LState) int {
			if b.Host != nil {
				if screen := b.Host.Screen(); screen != nil {
					cols, rows := screen.Size()
					L.Push(lua.LNumber(cols))
					L.Push(lua.LNumber(rows))
					return 2
				}
			}
			L.Push(lua.LNumber(80))
			L.Push(lua.LNumber(25))
			return 2
		},
	})

	L.SetGlobal("tty", tty)
	return nil
}
