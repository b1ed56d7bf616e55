package ttymod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/bridge"
	"github.com/mooffie/luaui/script"
	"github.com/mooffie/luaui/widget"
)

func ttyFixture(t *testing.T) *lua.LState {
	t.Helper()
	eng := script.New()
	t.Cleanup(eng.Close)
	b := bridge.New(eng, nil)
	require.NoError(t, Open(b))
	return eng.L
}

func TestKeynameToKeycode(t *testing.T) {
	L := ttyFixture(t)

	require.NoError(t, L.DoString(`
		a = tty.keyname_to_keycode("a")
		enter = tty.keyname_to_keycode("Enter")
		nope = tty.keyname_to_keycode("NoSuchKey")
	`))

	assert.Equal(t, lua.LNumber('a'), L.GetGlobal("a"))
	assert.Equal(t, lua.LNil, L.GetGlobal("nope"))

	enter := L.GetGlobal("enter")
	require.NotEqual(t, lua.LNil, enter)
	// Named keys live past the rune range.
	assert.False(t, widget.KeyCode(lua.LVAsNumber(enter)).IsRune())
}

func TestKeycodeRoundTrip(t *testing.T) {
	L := ttyFixture(t)

	require.NoError(t, L.DoString(`
		rune_name = tty.keycode_to_keyname(string.byte("x"))
		f1 = tty.keyname_to_keycode("F1")
		f1_name = tty.keycode_to_keyname(f1)
	`))

	assert.Equal(t, lua.LString("x"), L.GetGlobal("rune_name"))
	assert.Equal(t, lua.LString("F1"), L.GetGlobal("f1_name"))
}

func TestSizeWithoutScreen(t *testing.T) {
	L := ttyFixture(t)

	require.NoError(t, L.DoString(`cols, rows = tty.size()`))
	assert.Equal(t, lua.LNumber(80), L.GetGlobal("cols"))
	assert.Equal(t, lua.LNumber(25), L.GetGlobal("rows"))
}
