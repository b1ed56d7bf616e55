package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func newTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	e := New()
	t.Cleanup(e.Close)
	var diag bytes.Buffer
	e.Diag = &diag
	return e, &diag
}

func pushCode(t *testing.T, e *Engine, code string) {
	t.Helper()
	fn, err := e.L.LoadString(code)
	require.NoError(t, err)
	e.L.Push(fn)
}

func TestSafeCallSuccess(t *testing.T) {
	e, diag := newTestEngine(t)

	pushCode(t, e, `return 1 + 2`)
	ok := e.SafeCall(0, 1)

	require.True(t, ok)
	assert.Equal(t, 1, e.L.GetTop())
	assert.Equal(t, lua.LNumber(3), e.L.Get(-1))
	assert.Empty(t, diag.String())
}

func TestSafeCallFailureBalancesStack(t *testing.T) {
	e, diag := newTestEngine(t)

	// Leave a sentinel below the call to prove only the call's slots
	// are consumed.
	e.L.Push(lua.LString("sentinel"))
	pushCode(t, e, `error("boom")`)
	e.L.Push(lua.LNumber(1)) // one argument

	ok := e.SafeCall(1, 2)

	require.False(t, ok)
	assert.Equal(t, 1, e.L.GetTop())
	assert.Equal(t, lua.LString("sentinel"), e.L.Get(1))
	assert.Contains(t, diag.String(), "LUA EXCEPTION:")
	assert.Contains(t, diag.String(), "boom")
}

func TestSafeCallArgumentsReachFunction(t *testing.T) {
	e, _ := newTestEngine(t)

	pushCode(t, e, `local a, b = ... ; return a * b`)
	e.L.Push(lua.LNumber(6))
	e.L.Push(lua.LNumber(7))

	require.True(t, e.SafeCall(2, 1))
	assert.Equal(t, lua.LNumber(42), e.L.Get(-1))
	e.L.Pop(1)
}

func TestNonStringErrorPlaceholder(t *testing.T) {
	e, diag := newTestEngine(t)

	pushCode(t, e, `error({code = 42})`)
	require.False(t, e.SafeCall(0, 0))

	assert.Contains(t, diag.String(), nonStringError)
}

func TestPendingErrorReplayedOnce(t *testing.T) {
	e, _ := newTestEngine(t)

	pushCode(t, e, `error("first")`)
	require.False(t, e.SafeCall(0, 0))
	pushCode(t, e, `error("second")`)
	require.False(t, e.SafeCall(0, 0))

	pending, ok := e.PendingError()
	require.True(t, ok)
	assert.Contains(t, pending, "first")

	var notices []string
	e.SetNotice(func(title, msg string) { notices = append(notices, msg) })

	e.SetUIReady()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "first")

	// A second ready flip must not replay again.
	e.SetUIReady()
	assert.Len(t, notices, 1)
}

func TestErrorsGoToNoticeOnceUIReady(t *testing.T) {
	e, diag := newTestEngine(t)

	var notices []string
	e.SetNotice(func(title, msg string) { notices = append(notices, msg) })
	e.SetUIReady()

	pushCode(t, e, `error("visible")`)
	require.False(t, e.SafeCall(0, 0))

	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "visible")
	assert.Empty(t, diag.String())
}

func TestSafeRunFileStatuses(t *testing.T) {
	e, _ := newTestEngine(t)
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.lua"), []byte(`x = 1`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(`this is not lua (`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boom.lua"), []byte(`error("at runtime")`), 0o644))

	assert.Equal(t, RunOK, e.SafeRunFile(dir, "good.lua"))
	assert.Equal(t, RunFileNotFound, e.SafeRunFile(dir, "missing.lua"))
	assert.Equal(t, RunSyntaxError, e.SafeRunFile(dir, "bad.lua"))
	assert.Equal(t, RunRuntimeError, e.SafeRunFile(dir, "boom.lua"))

	assert.Equal(t, 0, e.L.GetTop())
}

func TestMissingFileIsNotDisplayed(t *testing.T) {
	e, diag := newTestEngine(t)

	e.SafeRunFile(t.TempDir(), "nope.lua")
	assert.Empty(t, diag.String())
	_, pending := e.PendingError()
	assert.False(t, pending)
}

func TestCheckFile(t *testing.T) {
	e, _ := newTestEngine(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.lua")
	require.NoError(t, os.WriteFile(good, []byte(`return 1`), 0o644))
	assert.NoError(t, e.CheckFile(good))

	bad := filepath.Join(dir, "bad.lua")
	require.NoError(t, os.WriteFile(bad, []byte(`return return`), 0o644))
	err := e.CheckFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.lua")
}

func TestGuardPanicsOnImbalance(t *testing.T) {
	e, _ := newTestEngine(t)

	g := e.Guard()
	e.L.Push(lua.LNumber(1))
	assert.Panics(t, func() { g.Check(0) })
	assert.NotPanics(t, func() { g.Check(1) })
}
