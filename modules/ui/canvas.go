package uimod

import (
	"github.com/gdamore/tcell/v2"
	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/widget"
)

const canvasType = "ui.Canvas"

func registerCanvasType(L *lua.LState) {
	mt := L.NewTypeMetatable(canvasType)
	mt.RawSetString("__index", mt)
	L.SetFuncs(mt, map[string]lua.LGFunction{
		"erase": func(L *lua.LState) int {
			checkCanvas(L).Erase()
			return 0
		},
		"goto_xy": func(L *lua.LState) int {
			checkCanvas(L).GotoXY(L.CheckInt(2), L.CheckInt(3))
			return 0
		},
		"draw_string": func(L *lua.LState) int {
			checkCanvas(L).DrawString(L.CheckString(2))
			return 0
		},
		"show_cursor": func(L *lua.LState) int {
			checkCanvas(L).ShowCursor()
			return 0
		},
		"get_size": func(L *lua.LState) int {
			cols, rows := checkCanvas(L).Size()
			L.Push(lua.LNumber(cols))
			L.Push(lua.LNumber(rows))
			return 2
		},
		"set_style": func(L *lua.LState) int {
			checkCanvas(L).SetStyle(styleFromTable(L, L.CheckTable(2)))
			return 0
		},
	})
}

func wrapCanvas(L *lua.LState, cv *widget.Canvas) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = cv
	L.SetMetatable(ud, L.GetTypeMetatable(canvasType))
	return ud
}

func checkCanvas(L *lua.LState) *widget.Canvas {
	ud := L.CheckUserData(1)
	if cv, ok := ud.Value.(*widget.Canvas); ok {
		return cv
	}
	L.ArgError(1, "canvas expected")
	return nil
}

// styleFromTable builds a style from {fg=..., bg=..., bold=...,
// reverse=..., underline=...}. Colors are tcell color names or
// "#rrggbb".
func styleFromTable(L *lua.LState, t *lua.LTable) tcell.Style {
	style := tcell.StyleDefault
	if v := t.RawGetString("fg"); v != lua.LNil {
		style = style.Foreground(tcell.GetColor(lua.LVAsString(v)))
	}
	if v := t.RawGetString("bg"); v != lua.LNil {
		style = style.Background(tcell.GetColor(lua.LVAsString(v)))
	}
	if lua.LVAsBool(t.RawGetString("bold")) {
		style = style.Bold(true)
	}
	if lua.LVAsBool(t.RawGetString("reverse")) {
		style = style.Reverse(true)
	}
	if lua.LVAsBool(t.RawGetString("underline")) {
		style = style.Underline(true)
	}
	return style
}
