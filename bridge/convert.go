package bridge

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/widget"
)

// Proxy table fields. nativeField holds a userdata wrapping the widget
// pointer while the widget is alive, and false once it has been
// destroyed: false rather than nil, so a lookup can tell "destroyed"
// apart from "not a widget at all".
const (
	nativeField      = "__native__"
	createdNativeKey = "__created_natively__"
)

// ToScript returns the proxy for a widget, creating and registering one
// on first sight. Widgets first seen here (created by native code, not
// by a script constructor) are flagged on the proxy so scripts can tell
// them apart. Returns lua.LNil for a nil widget.
func (b *Bridge) ToScript(w *widget.Widget) lua.LValue {
	if w == nil {
		return lua.LNil
	}
	if proxy, ok := b.reg.lookup(w); ok {
		return proxy
	}
	proxy := b.newProxy(w)
	proxy.RawSetString(createdNativeKey, lua.LTrue)
	b.reg.attach(w, proxy)

	// Give the class a chance to set the fresh proxy up.
	L := b.state()
	if fn := L.GetField(proxy, "init"); fn != lua.LNil {
		L.Push(fn)
		L.Push(proxy)
		b.Eng.SafeCall(1, 0)
	}
	return proxy
}

// Wrap builds and registers a proxy for a widget created by a script
// constructor. The caller owns pushing it; it is already attached.
func (b *Bridge) Wrap(w *widget.Widget) *lua.LTable {
	proxy := b.newProxy(w)
	b.reg.attach(w, proxy)
	return proxy
}

func (b *Bridge) newProxy(w *widget.Widget) *lua.LTable {
	L := b.state()
	proxy := L.NewTable()
	ud := L.NewUserData()
	ud.Value = w
	proxy.RawSetString(nativeField, ud)
	class := b.classes[w.Kind()]
	if class == nil {
		// Only the abstract root may go unregistered. A concrete kind
		// with no class means the native side forgot to declare it,
		// which is a bridge defect, not a script error.
		if w.Kind() != "" && w.Kind() != "Widget" {
			panic(fmt.Sprintf("no class registered for widget kind %q", w.Kind()))
		}
		class = b.classes["Widget"]
	}
	if class != nil {
		L.SetMetatable(proxy, class.Meta)
	}
	return proxy
}

// Lookup returns the live proxy for a widget, if the script side has
// one.
func (b *Bridge) Lookup(w *widget.Widget) (*lua.LTable, bool) {
	return b.reg.lookup(w)
}

// CheckWidget extracts the widget behind the proxy at a stack position,
// raising a Lua argument error for non-proxies and for proxies whose
// widget has been destroyed.
func (b *Bridge) CheckWidget(L *lua.LState, idx int) *widget.Widget {
	proxy := L.CheckTable(idx)
	return b.widgetOf(L, proxy, idx)
}

func (b *Bridge) widgetOf(L *lua.LState, proxy *lua.LTable, idx int) *widget.Widget {
	v := proxy.RawGetString(nativeField)
	switch v := v.(type) {
	case *lua.LUserData:
		if w, ok := v.Value.(*widget.Widget); ok {
			return w
		}
	case lua.LBool:
		if v == lua.LFalse {
			L.ArgError(idx, "widget has been destroyed")
		}
	}
	L.ArgError(idx, "widget expected")
	return nil
}

// CheckWidgetOfKind is CheckWidget plus a class test: the proxy must be
// an instance of the named class or one of its subclasses. The error
// names both kinds.
func (b *Bridge) CheckWidgetOfKind(L *lua.LState, idx int, kind string) *widget.Widget {
	w := b.CheckWidget(L, idx)
	c := b.classes[kind]
	proxy, ok := b.reg.lookup(w)
	if c == nil || !ok || !isInstance(L, proxy, c) {
		L.ArgError(idx, fmt.Sprintf("%s expected, got %s", kind, w.Kind()))
	}
	return w
}

// Unwrap returns the widget behind a proxy, without raising: ok is
// false for destroyed proxies and for tables that never were proxies.
func Unwrap(proxy *lua.LTable) (*widget.Widget, bool) {
	if ud, isUD := proxy.RawGetString(nativeField).(*lua.LUserData); isUD {
		w, ok := ud.Value.(*widget.Widget)
		return w, ok
	}
	return nil, false
}

// Alive reports whether a proxy still fronts a live widget.
func Alive(proxy *lua.LTable) bool {
	_, ok := proxy.RawGetString(nativeField).(*lua.LUserData)
	return ok
}

// NotifyDestroyed severs a widget's proxy: the widget's on_destroy
// handler runs while the proxy is still usable, then the native pointer
// is replaced with false and the registry entry dropped. Installed as
// the dialog's destroy notifier; a no-op for widgets the script side
// never saw.
func (b *Bridge) NotifyDestroyed(w *widget.Widget) {
	proxy, ok := b.reg.lookup(w)
	if !ok {
		return
	}
	b.CallMethod(w, "on_destroy")
	proxy.RawSetString(nativeField, lua.LFalse)
	b.reg.detach(w)
}

// CreatedNatively reports whether the proxy was minted by ToScript for
// a widget the native side created.
func CreatedNatively(proxy *lua.LTable) bool {
	return lua.LVAsBool(proxy.RawGetString(createdNativeKey))
}
