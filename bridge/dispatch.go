package bridge

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/widget"
)

// MethodExists reports whether the widget's proxy (or, through the
// metatable chain, its class) defines a method.
func (b *Bridge) MethodExists(w *widget.Widget, name string) bool {
	proxy, ok := b.reg.lookup(w)
	if !ok {
		return false
	}
	return b.state().GetField(proxy, name) != lua.LNil
}

// CallMethodEx invokes a method on the widget's proxy with the proxy as
// self. found tells whether the method exists at all; ok tells whether
// the call completed without a script error. Errors were already
// reported through the engine by the time this returns.
func (b *Bridge) CallMethodEx(w *widget.Widget, name string, args []lua.LValue, nresults int) (res []lua.LValue, found, ok bool) {
	L := b.state()
	proxy, have := b.reg.lookup(w)
	if !have {
		return nil, false, false
	}
	fn := L.GetField(proxy, name)
	if fn == lua.LNil {
		return nil, false, false
	}
	L.Push(fn)
	L.Push(proxy)
	for _, a := range args {
		L.Push(a)
	}
	if !b.Eng.SafeCall(1+len(args), nresults) {
		return nil, true, false
	}
	if nresults > 0 {
		res = make([]lua.LValue, nresults)
		for i := 0; i < nresults; i++ {
			res[i] = L.Get(-nresults + i)
		}
		L.Pop(nresults)
	}
	return res, true, true
}

// CallMethod invokes a method for its side effects.
func (b *Bridge) CallMethod(w *widget.Widget, name string, args ...lua.LValue) (found bool) {
	_, found, _ = b.CallMethodEx(w, name, args, 0)
	return found
}

// WidgetCallback builds the toolkit callback for a widget of the given
// kind: script handlers run first, the kind's native behavior is the
// fallback.
func (b *Bridge) WidgetCallback(kind string) widget.Callback {
	native := widget.DefaultCallback(kind)
	fallback := func(w, sender *widget.Widget, msg widget.Msg, parm int) widget.Result {
		if native == nil {
			return widget.NotHandled
		}
		return native(w, sender, msg, parm)
	}

	return func(w, sender *widget.Widget, msg widget.Msg, parm int) widget.Result {
		switch msg {
		case widget.MsgInit:
			if b.CallMethod(w, "on_init") {
				return widget.Handled
			}

		case widget.MsgFocus:
			// Focus is granted only if the handler says so.
			res, found, ok := b.CallMethodEx(w, "on_focus", nil, 1)
			if found {
				if ok && lua.LVAsBool(res[0]) {
					return widget.Handled
				}
				return widget.NotHandled
			}

		case widget.MsgUnfocus:
			// Unfocus is allowed unless the handler explicitly refuses.
			res, found, ok := b.CallMethodEx(w, "on_unfocus", nil, 1)
			if found {
				if ok && res[0] == lua.LFalse {
					return widget.NotHandled
				}
				return widget.Handled
			}
			if native == nil {
				return widget.Handled
			}

		case widget.MsgDraw:
			if b.CallMethod(w, "on_draw") {
				return widget.Handled
			}

		case widget.MsgCursor:
			if b.CallMethod(w, "on_cursor") {
				return widget.Handled
			}

		case widget.MsgKey:
			if r, done := b.keyHandler(w, "on_key", parm); done {
				return r
			}

		case widget.MsgHotkey:
			if r, done := b.keyHandler(w, "on_hotkey", parm); done {
				return r
			}

		case widget.MsgResize:
			if b.CallMethod(w, "on_resize") {
				return widget.Handled
			}
		}

		return fallback(w, sender, msg, parm)
	}
}

// keyHandler runs a key-receiving handler. A handler that errors still
// consumes the key: the error was already shown, and running the key's
// default action on top of the alert would compound the surprise.
func (b *Bridge) keyHandler(w *widget.Widget, name string, keycode int) (widget.Result, bool) {
	res, found, ok := b.CallMethodEx(w, name, []lua.LValue{lua.LNumber(keycode)}, 1)
	if !found {
		return widget.NotHandled, false
	}
	if !ok || lua.LVAsBool(res[0]) {
		return widget.Handled, true
	}
	return widget.NotHandled, false
}

// DialogCallback builds the toolkit callback for a dialog: the dialog
// has its own message vocabulary on top of the generic widget one.
func (b *Bridge) DialogCallback() widget.Callback {
	generic := b.WidgetCallback("Dialog")

	return func(w, sender *widget.Widget, msg widget.Msg, parm int) widget.Result {
		switch msg {
		case widget.MsgIdle:
			if b.CallMethod(w, "on_idle") {
				return widget.Handled
			}
			return widget.NotHandled

		case widget.MsgAction:
			// A child's action pings the child's own default action
			// method; widgets map it to their natural handler.
			if sender != nil && b.CallMethod(sender, "_action") {
				return widget.Handled
			}
			return widget.NotHandled

		case widget.MsgValidate:
			// on_validate returning false keeps the dialog open.
			res, found, ok := b.CallMethodEx(w, "on_validate", nil, 1)
			if found && ok && res[0] == lua.LFalse {
				return widget.Handled
			}
			return widget.NotHandled
		}

		return generic(w, sender, msg, parm)
	}
}

var mouseMethods = map[widget.MouseMsg]struct{ full, simple string }{
	widget.MouseDown:       {full: "on_mouse_down"},
	widget.MouseUp:         {full: "on_mouse_up"},
	widget.MouseClick:      {full: "on_mouse_click", simple: "on_click"},
	widget.MouseDrag:       {full: "on_mouse_drag"},
	widget.MouseMove:       {full: "on_mouse_move"},
	widget.MouseScrollUp:   {full: "on_mouse_scroll_up"},
	widget.MouseScrollDown: {full: "on_mouse_scroll_down"},
}

// MouseCallback builds the toolkit mouse callback for a kind. The full
// on_mouse_* handlers get an event table and may veto by returning
// false; the simple on_click handler gets nothing and fires on click
// only when no on_mouse_click shadows it. A message with no matching
// handler still counts as handled: only an explicit false vetoes.
func (b *Bridge) MouseCallback(kind string) widget.MouseCallback {
	native := widget.DefaultMouseCallback(kind)

	return func(w *widget.Widget, msg widget.MouseMsg, ev *widget.MouseEvent) {
		names := mouseMethods[msg]
		if b.MethodExists(w, names.full) {
			args := []lua.LValue{b.mouseEventTable(ev)}
			res, _, ok := b.CallMethodEx(w, names.full, args, 1)
			if ok && res[0] == lua.LFalse {
				ev.Abort = true
			}
			return
		}
		if names.simple != "" && b.MethodExists(w, names.simple) {
			res, _, ok := b.CallMethodEx(w, names.simple, nil, 1)
			if ok && res[0] == lua.LFalse {
				ev.Abort = true
			}
			return
		}
		if native != nil {
			native(w, msg, ev)
		}
	}
}

func (b *Bridge) mouseEventTable(ev *widget.MouseEvent) *lua.LTable {
	L := b.state()
	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(ev.X))
	t.RawSetString("y", lua.LNumber(ev.Y))
	t.RawSetString("count", lua.LNumber(ev.Count))
	t.RawSetString("buttons", buttonsTable(L, ev.Buttons))
	return t
}

func buttonsTable(L *lua.LState, bt widget.Buttons) *lua.LTable {
	t := L.NewTable()
	if bt&widget.ButtonLeft != 0 {
		t.RawSetString("left", lua.LTrue)
	}
	if bt&widget.ButtonMiddle != 0 {
		t.RawSetString("middle", lua.LTrue)
	}
	if bt&widget.ButtonRight != 0 {
		t.RawSetString("right", lua.LTrue)
	}
	return t
}

// TriggerWidgetEvent fires a named event carrying a widget. Events are
// suppressed until the UI is up: the script core is not ready to route
// them, and early failures would drown the real startup error.
func (b *Bridge) TriggerWidgetEvent(name string, w *widget.Widget) {
	if !b.Eng.UIReady() {
		return
	}
	fn := b.Eng.SystemCallback("event::trigger")
	if fn == nil {
		return
	}
	L := b.state()
	L.Push(fn)
	L.Push(lua.LString(name))
	L.Push(b.ToScript(w))
	b.Eng.SafeCall(2, 0)
}
