package bridge

import (
	lua "github.com/yuin/gopher-lua"
)

// Class is one widget class on the script side. Meta is the metatable
// every instance proxy gets; Statics is the table exported to scripts
// (ui.Button and friends), carrying class-level functions and the
// constructor.
type Class struct {
	Name    string
	Parent  *Class
	Meta    *lua.LTable
	Statics *lua.LTable
}

// DefineClass creates a widget class, optionally deriving it from a
// parent. Instance method lookup follows the metatable chain up to the
// root class; statics inherit the same way through their own chain.
func (b *Bridge) DefineClass(name string, parent *Class) *Class {
	L := b.state()

	meta := L.NewTypeMetatable("ui." + name)
	meta.RawSetString("__index", meta)
	meta.RawSetString("widget_type", lua.LString(name))
	if parent != nil {
		L.SetMetatable(meta, parent.Meta)
	}

	statics := L.NewTable()
	statics.RawSetString("meta", meta)
	smeta := L.NewTable()
	if parent != nil {
		smeta.RawSetString("__index", parent.Statics)
	}
	L.SetMetatable(statics, smeta)

	c := &Class{Name: name, Parent: parent, Meta: meta, Statics: statics}
	b.classes[name] = c
	return c
}

// SetConstructor makes the statics table callable: ui.Button{...} and
// ui.Button(...) both construct an instance.
func (c *Class) SetConstructor(L *lua.LState, fn lua.LGFunction) {
	smeta := L.GetMetatable(c.Statics).(*lua.LTable)
	smeta.RawSetString("__call", L.NewFunction(fn))
}

// Method registers an instance method on the class.
func (c *Class) Method(L *lua.LState, name string, fn lua.LGFunction) {
	c.Meta.RawSetString(name, L.NewFunction(fn))
}

// Static registers a class-level function.
func (c *Class) Static(L *lua.LState, name string, fn lua.LGFunction) {
	c.Statics.RawSetString(name, L.NewFunction(fn))
}

// isInstance reports whether the proxy's metatable chain contains the
// class's metatable.
func isInstance(L *lua.LState, proxy *lua.LTable, c *Class) bool {
	mt := L.GetMetatable(proxy)
	for mt != lua.LNil {
		if mt == c.Meta {
			return true
		}
		t, ok := mt.(*lua.LTable)
		if !ok {
			return false
		}
		mt = L.GetMetatable(t)
	}
	return false
}
