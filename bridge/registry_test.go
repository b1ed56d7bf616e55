package bridge

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/script"
	"github.com/mooffie/luaui/widget"
)

func newTestBridge(t *testing.T) *Bridge {
	t.Helper()
	eng := script.New()
	t.Cleanup(eng.Close)
	return New(eng, nil)
}

func TestProxyIdentity(t *testing.T) {
	b := newTestBridge(t)
	w := widget.New("Widget", nil, nil)

	p1 := b.ToScript(w)
	p2 := b.ToScript(w)

	// Same widget, same proxy: scripts can use proxies as table keys.
	assert.Same(t, p1, p2)
}

func TestLookupUnknownWidget(t *testing.T) {
	b := newTestBridge(t)
	_, ok := b.Lookup(widget.New("Widget", nil, nil))
	assert.False(t, ok)
}

func TestLookupFallsBackToScan(t *testing.T) {
	b := newTestBridge(t)
	w := widget.New("Widget", nil, nil)
	proxy := b.Wrap(w)

	// Simulate the transient state where the direct entry is gone but
	// the proxy is still reachable through the reverse map.
	b.reg.dropForward(w)

	got, ok := b.reg.lookup(w)
	require.True(t, ok, "scan fallback failed")
	assert.Same(t, proxy, got)

	// The scan repairs the direct entry.
	_, direct := b.reg.byWidget[w]
	assert.True(t, direct)
}

func TestDetachForgetsWidget(t *testing.T) {
	b := newTestBridge(t)
	w := widget.New("Widget", nil, nil)
	b.Wrap(w)

	b.reg.detach(w)
	_, ok := b.reg.lookup(w)
	assert.False(t, ok)
	assert.Equal(t, 0, b.reg.size())
}

func TestRegistryDoesNotKeepProxiesAlive(t *testing.T) {
	b := newTestBridge(t)
	w := widget.New("Widget", nil, nil)
	b.Wrap(w)

	require.Equal(t, 1, b.reg.size())

	// Drop every strong reference and collect. The registry holds the
	// proxy only weakly, so the pair should be reclaimable; we accept
	// that collection may need more than one cycle.
	runtime.GC()
	runtime.GC()

	if b.reg.size() == 0 {
		_, ok := b.reg.lookup(w)
		assert.False(t, ok)
	}
}

func TestNotifyDestroyedSeversProxy(t *testing.T) {
	b := newTestBridge(t)
	w := widget.New("Widget", nil, nil)
	proxy := b.Wrap(w)

	require.True(t, Alive(proxy))

	b.NotifyDestroyed(w)

	assert.False(t, Alive(proxy))
	_, ok := b.Lookup(w)
	assert.False(t, ok)
	// A destroyed proxy raises on use; the non-raising unwrap is how
	// native code asks politely.
	_, ok = Unwrap(proxy)
	assert.False(t, ok)
}

func TestUnregisteredKindPanics(t *testing.T) {
	b := newTestBridge(t)
	assert.Panics(t, func() { b.Wrap(widget.New("Gizmo", nil, nil)) })
}

func TestToScriptRunsInitHook(t *testing.T) {
	b := newTestBridge(t)
	L := b.Eng.L

	calls := 0
	c := b.DefineClass("Widget", nil)
	c.Method(L, "init", func(L *lua.LState) int {
		calls++
		return 0
	})

	b.ToScript(widget.New("Widget", nil, nil))
	assert.Equal(t, 1, calls)

	// Proxies minted for script constructors initialize themselves.
	b.Wrap(widget.New("Widget", nil, nil))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, L.GetTop())
}

func TestToScriptMarksNativeOrigin(t *testing.T) {
	b := newTestBridge(t)

	fromNative := b.ToScript(widget.New("Widget", nil, nil))
	assert.True(t, CreatedNatively(fromNative.(*lua.LTable)))

	fromScript := b.Wrap(widget.New("Widget", nil, nil))
	assert.False(t, CreatedNatively(fromScript))
}
