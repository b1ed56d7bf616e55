// Package uimod exposes the widget toolkit to scripts as the global
// "ui" table: widget classes, constructors, and the handful of
// engine-level entry points the script core needs.
package uimod

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/bridge"
	"github.com/mooffie/luaui/modules"
	"github.com/mooffie/luaui/widget"
)

func init() {
	modules.Register(&modules.Module{
		Name: "ui",
		Open: Open,
	})
}

// Open installs the ui table and the widget class hierarchy.
func Open(b *bridge.Bridge) error {
	L := b.Eng.L
	ui := L.NewTable()

	root := defineRoot(b, L)
	defineCustom(b, L, root)
	defineLabel(b, L, root)
	defineButton(b, L, root)
	defineCheckbox(b, L, root)
	defineDialog(b, L, root)

	for _, name := range []string{"Widget", "Custom", "Label", "Button", "Checkbox", "Dialog"} {
		ui.RawSetString(name, b.Class(name).Statics)
	}

	registerCanvasType(L)

	L.SetFuncs(ui, map[string]lua.LGFunction{
		"ready": func(L *lua.LState) int {
			L.Push(lua.LBool(b.Eng.UIReady()))
			return 1
		},
		"restart": func(L *lua.LState) int {
			b.Eng.RequestRestart()
			return 0
		},
		"register_system_callback": func(L *lua.LState) int {
			name := L.CheckString(1)
			var fn *lua.LFunction
			if L.Get(2) != lua.LNil {
				fn = L.CheckFunction(2)
			}
			b.Eng.RegisterSystemCallback(name, fn)
			return 0
		},
	})

	L.SetGlobal("ui", ui)
	return nil
}

func defineRoot(b *bridge.Bridge, L *lua.LState) *bridge.Class {
	c := b.DefineClass("Widget", nil)

	c.Method(L, "is_alive", func(L *lua.LState) int {
		L.Push(lua.LBool(bridge.Alive(L.CheckTable(1))))
		return 1
	})
	c.Method(L, "get_dimensions", func(L *lua.LState) int {
		w := b.CheckWidget(L, 1)
		t := L.NewTable()
		t.RawSetString("x", lua.LNumber(w.X))
		t.RawSetString("y", lua.LNumber(w.Y))
		t.RawSetString("cols", lua.LNumber(w.Cols))
		t.RawSetString("rows", lua.LNumber(w.Rows))
		L.Push(t)
		return 1
	})
	c.Method(L, "set_dimensions", func(L *lua.LState) int {
		w := b.CheckWidget(L, 1)
		w.X = L.CheckInt(2)
		w.Y = L.CheckInt(3)
		w.Cols = L.CheckInt(4)
		w.Rows = L.CheckInt(5)
		return 0
	})
	c.Method(L, "get_text", func(L *lua.LState) int {
		L.Push(lua.LString(b.CheckWidget(L, 1).Text))
		return 1
	})
	c.Method(L, "set_text", func(L *lua.LState) int {
		w := b.CheckWidget(L, 1)
		w.Text = L.CheckString(2)
		return 0
	})
	c.Method(L, "focus", func(L *lua.LState) int {
		w := b.CheckWidget(L, 1)
		if d := w.Owner(); d != nil {
			L.Push(lua.LBool(d.Focus(w)))
			return 1
		}
		L.Push(lua.LFalse)
		return 1
	})
	c.Method(L, "get_dialog", func(L *lua.LState) int {
		w := b.CheckWidget(L, 1)
		if d := w.Owner(); d != nil {
			L.Push(b.ToScript(d.Widget))
			return 1
		}
		L.Push(lua.LNil)
		return 1
	})
	c.Method(L, "redraw", func(L *lua.LState) int {
		w := b.CheckWidget(L, 1)
		if d := w.Owner(); d != nil && !d.Destroyed() && b.Host != nil {
			if screen := b.Host.Screen(); screen != nil {
				d.Redraw(screen)
				screen.Show()
			}
		}
		return 0
	})
	c.Method(L, "capture_mouse", func(L *lua.LState) int {
		b.CheckWidget(L, 1).SetMouseCapture(L.OptBool(2, true))
		return 0
	})
	c.Method(L, "get_canvas", func(L *lua.LState) int {
		w := b.CheckWidget(L, 1)
		cv := w.Canvas()
		if cv == nil {
			L.RaiseError("widget has no canvas yet (it was never drawn)")
		}
		L.Push(wrapCanvas(L, cv))
		return 1
	})

	return c
}

func defineCustom(b *bridge.Bridge, L *lua.LState, root *bridge.Class) *bridge.Class {
	c := b.DefineClass("Custom", root)
	c.Method(L, "set_want_cursor", func(L *lua.LState) int {
		b.CheckWidget(L, 1).SetWantCursor(L.OptBool(2, true))
		return 0
	})
	c.Method(L, "set_want_hotkey", func(L *lua.LState) int {
		b.CheckWidget(L, 1).SetWantHotkey(L.OptBool(2, true))
		return 0
	})
	c.SetConstructor(L, constructor(b, "Custom"))
	return c
}

func defineLabel(b *bridge.Bridge, L *lua.LState, root *bridge.Class) *bridge.Class {
	c := b.DefineClass("Label", root)
	c.SetConstructor(L, constructor(b, "Label"))
	return c
}

func defineButton(b *bridge.Bridge, L *lua.LState, root *bridge.Class) *bridge.Class {
	c := b.DefineClass("Button", root)
	// The default action of a button is its on_click handler.
	c.Method(L, "_action", forwardTo("on_click"))
	c.SetConstructor(L, constructor(b, "Button"))
	return c
}

func defineCheckbox(b *bridge.Bridge, L *lua.LState, root *bridge.Class) *bridge.Class {
	c := b.DefineClass("Checkbox", root)
	c.Method(L, "get_checked", func(L *lua.LState) int {
		L.Push(lua.LBool(b.CheckWidgetOfKind(L, 1, "Checkbox").Checked))
		return 1
	})
	c.Method(L, "set_checked", func(L *lua.LState) int {
		w := b.CheckWidgetOfKind(L, 1, "Checkbox")
		w.Checked = lua.LVAsBool(L.Get(2))
		return 0
	})
	c.Method(L, "_action", forwardTo("on_change"))
	c.SetConstructor(L, constructor(b, "Checkbox"))
	return c
}

// forwardTo builds a method that forwards to a user handler on the
// instance, if the script installed one.
func forwardTo(handler string) lua.LGFunction {
	return func(L *lua.LState) int {
		self := L.CheckTable(1)
		fn := L.GetField(self, handler)
		if fn == lua.LNil {
			L.Push(lua.LFalse)
			return 1
		}
		L.Push(fn)
		L.Push(self)
		L.Call(1, 0)
		L.Push(lua.LTrue)
		return 1
	}
}

// constructor builds the __call handler for a class's statics table:
// ui.Button{text="OK", on_click=...} creates a widget and its proxy.
func constructor(b *bridge.Bridge, kind string) lua.LGFunction {
	return func(L *lua.LState) int {
		w := widget.New(kind, b.WidgetCallback(kind), b.MouseCallback(kind))
		proxy := b.Wrap(w)
		if L.GetTop() >= 2 {
			if props, ok := L.Get(2).(*lua.LTable); ok {
				applyProps(L, w, proxy, props, kind)
			}
		}
		L.Push(proxy)
		return 1
	}
}

// applyProps splits a constructor's property table: geometry and text
// go to the native widget, everything else (handlers included) lands on
// the proxy itself.
func applyProps(L *lua.LState, w *widget.Widget, proxy *lua.LTable, props *lua.LTable, kind string) {
	sized := false
	props.ForEach(func(k, v lua.LValue) {
		key, isStr := k.(lua.LString)
		if !isStr {
			proxy.RawSet(k, v)
			return
		}
		switch string(key) {
		case "text":
			w.Text = lua.LVAsString(v)
		case "checked":
			w.Checked = lua.LVAsBool(v)
		case "x":
			w.X = int(lua.LVAsNumber(v))
		case "y":
			w.Y = int(lua.LVAsNumber(v))
		case "cols":
			w.Cols = int(lua.LVAsNumber(v))
			sized = true
		case "rows":
			w.Rows = int(lua.LVAsNumber(v))
		default:
			proxy.RawSet(k, v)
		}
	})
	if !sized {
		w.Cols = widget.PreferredCols(kind, w.Text)
	}
}
