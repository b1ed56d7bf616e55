package uimod

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/bridge"
	"github.com/mooffie/luaui/widget"
)

func defineDialog(b *bridge.Bridge, L *lua.LState, root *bridge.Class) *bridge.Class {
	c := b.DefineClass("Dialog", root)

	c.Method(L, "add", func(L *lua.LState) int {
		d := checkDialog(b, L, 1)
		for i := 2; i <= L.GetTop(); i++ {
			d.Add(b.CheckWidget(L, i))
		}
		L.Push(L.Get(1))
		return 1
	})
	c.Method(L, "run", func(L *lua.LState) int {
		d := checkDialog(b, L, 1)
		if d.Destroyed() {
			L.RaiseError("dialog has been destroyed")
		}
		d.Reopen()
		if b.Host == nil {
			L.RaiseError("no UI host to run the dialog on")
		}
		if err := b.Host.RunDialog(d); err != nil {
			L.RaiseError("running dialog: %s", err.Error())
		}
		return 0
	})
	c.Method(L, "close", func(L *lua.LState) int {
		L.Push(lua.LBool(checkDialog(b, L, 1).TryClose()))
		return 1
	})
	c.Method(L, "destroy", func(L *lua.LState) int {
		checkDialog(b, L, 1).Destroy()
		return 0
	})
	c.Method(L, "current", func(L *lua.LState) int {
		L.Push(b.ToScript(checkDialog(b, L, 1).Current()))
		return 1
	})
	c.Method(L, "children", func(L *lua.LState) int {
		d := checkDialog(b, L, 1)
		t := L.NewTable()
		for _, child := range d.Children() {
			t.Append(b.ToScript(child))
		}
		L.Push(t)
		return 1
	})
	c.Method(L, "focus_next", func(L *lua.LState) int {
		checkDialog(b, L, 1).FocusNext()
		return 0
	})

	c.SetConstructor(L, func(L *lua.LState) int {
		d := widget.NewDialog(b.DialogCallback(), b.MouseCallback("Dialog"))
		d.SetDestroyNotifier(b.NotifyDestroyed)
		proxy := b.Wrap(d.Widget)
		if L.GetTop() >= 2 {
			if props, ok := L.Get(2).(*lua.LTable); ok {
				applyProps(L, d.Widget, proxy, props, "Dialog")
			}
		}
		L.Push(proxy)
		return 1
	})

	return c
}

// checkDialog extracts a dialog from a proxy. Dialogs are their own
// owner, which is what tells them apart from ordinary widgets.
func checkDialog(b *bridge.Bridge, L *lua.LState, idx int) *widget.Dialog {
	w := b.CheckWidgetOfKind(L, idx, "Dialog")
	if d := w.Owner(); d != nil && d.Widget == w {
		return d
	}
	L.ArgError(idx, "dialog expected")
	return nil
}
