package script

import "fmt"

// Guard captures the value-stack depth so code crossing the Go/Lua
// boundary can assert it put the stack back where it found it.
//
// An imbalance is a defect in the bridge itself, never something a user
// script can cause, so Check panics instead of returning an error.
// Nothing recovers these panics; they are meant to take the process
// down during development before a misbalanced stack corrupts anything.
type Guard struct {
	e   *Engine
	top int
}

// Guard records the current stack depth.
func (e *Engine) Guard() Guard {
	return Guard{e, e.L.GetTop()}
}

// Check panics unless the stack moved by exactly by slots since the
// guard was taken. Call it on every exit path with a fixed net effect;
// SafeCall does this for both its success and failure paths.
func (g Guard) Check(by int) {
	if top := g.e.L.GetTop(); top != g.top+by {
		panic(fmt.Sprintf("lua stack error: started at %d, now at %d (expected %d)",
			g.top, top, g.top+by))
	}
}
