package bridge

import (
	"weak"

	lua "github.com/yuin/gopher-lua"

	"github.com/mooffie/luaui/widget"
)

// registry is the two-way map between native widgets and their script
// proxies. Both directions hold the proxy weakly: the registry must not
// keep a proxy alive once the script has dropped every reference to it,
// or dialogs reopened from scripts would accumulate stale tables
// forever.
//
// The forward map is keyed by widget pointer for O(1) lookup. A proxy
// can momentarily be reachable only through the reverse map: the Lua
// collector may have seen it unreferenced, after which a reference
// resurfaces (a script callback still holds it), while the forward
// entry was already pruned. Lookup therefore falls back to a linear
// scan of the reverse map before concluding there is no proxy.
type registry struct {
	byWidget map[*widget.Widget]weak.Pointer[lua.LTable]
	byProxy  map[weak.Pointer[lua.LTable]]*widget.Widget
}

func newRegistry() registry {
	return registry{
		byWidget: make(map[*widget.Widget]weak.Pointer[lua.LTable]),
		byProxy:  make(map[weak.Pointer[lua.LTable]]*widget.Widget),
	}
}

// attach records a widget/proxy pair in both directions.
func (r *registry) attach(w *widget.Widget, proxy *lua.LTable) {
	wp := weak.Make(proxy)
	r.byWidget[w] = wp
	r.byProxy[wp] = w
}

// lookup finds the live proxy for a widget. Dead entries found along
// the way are pruned; there is no finalizer, reclamation is lazy.
func (r *registry) lookup(w *widget.Widget) (*lua.LTable, bool) {
	if wp, ok := r.byWidget[w]; ok {
		if t := wp.Value(); t != nil {
			return t, true
		}
		delete(r.byWidget, w)
		delete(r.byProxy, wp)
	}
	// Search hard: the forward entry may be gone while the proxy still
	// lives in the reverse map.
	for wp, ww := range r.byProxy {
		t := wp.Value()
		if t == nil {
			delete(r.byProxy, wp)
			if cur, ok := r.byWidget[ww]; ok && cur == wp {
				delete(r.byWidget, ww)
			}
			continue
		}
		if ww == w {
			r.byWidget[w] = wp
			return t, true
		}
	}
	return nil, false
}

// detach removes a widget's entries from both directions.
func (r *registry) detach(w *widget.Widget) {
	if wp, ok := r.byWidget[w]; ok {
		delete(r.byWidget, w)
		delete(r.byProxy, wp)
	}
	for wp, ww := range r.byProxy {
		if ww == w {
			delete(r.byProxy, wp)
		}
	}
}

// dropForward removes only the forward entry, leaving the proxy
// reachable through the reverse map alone. Test hook for the lookup
// fallback path.
func (r *registry) dropForward(w *widget.Widget) {
	delete(r.byWidget, w)
}

// size returns the live pair count, pruning dead entries.
func (r *registry) size() int {
	n := 0
	for wp, ww := range r.byProxy {
		if wp.Value() == nil {
			delete(r.byProxy, wp)
			if cur, ok := r.byWidget[ww]; ok && cur == wp {
				delete(r.byWidget, ww)
			}
			continue
		}
		n++
	}
	return n
}
