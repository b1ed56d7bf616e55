// Package script wraps a gopher-lua state with the call discipline the
// rest of the bridge relies on: stack-balance guards, protected calls
// that contain script errors, and the plumbing that decides where those
// errors are shown to the user.
package script

import (
	"fmt"
	"io"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// NoticeFunc displays a modal notice to the user. The host installs one
// once its screen is up; until then errors go to Diag.
type NoticeFunc func(title, message string)

// Engine owns the Lua state and the error-reporting policy around it.
//
// Everything here runs on the host's event-loop goroutine. There is no
// locking: the engine, the bridge and the widget toolkit share a single
// thread by contract.
type Engine struct {
	L    *lua.LState
	Diag io.Writer // diagnostic stream, used while the UI is not ready

	notice  NoticeFunc
	uiReady bool

	// The first error seen before the UI was ready. It is kept verbatim
	// and replayed once the UI comes up, so early startup errors are not
	// lost in a stderr nobody is looking at.
	pending    string
	hasPending bool
	replayed   bool

	coreMissing bool

	callbacks map[string]*lua.LFunction

	restart          func()
	restartRequested bool
}

// New creates an engine with the standard Lua libraries opened.
func New() *Engine {
	return &Engine{
		L:         lua.NewState(),
		Diag:      os.Stderr,
		callbacks: make(map[string]*lua.LFunction),
	}
}

// Close shuts the Lua state down. The engine must not be used afterwards.
func (e *Engine) Close() {
	e.L.Close()
}

// SetNotice installs the modal error display.
func (e *Engine) SetNotice(fn NoticeFunc) {
	e.notice = fn
}

// UIReady reports whether the host has declared its screen usable.
func (e *Engine) UIReady() bool {
	return e.uiReady
}

// SetUIReady flips the engine into "UI is up" mode, replays the
// earliest pre-UI error, if one was recorded, and warns about missing
// core scripts now that there is a screen to warn on.
func (e *Engine) SetUIReady() {
	e.uiReady = true
	if e.hasPending && !e.replayed {
		e.replayed = true
		if e.notice != nil {
			e.notice("Lua error", e.pending)
		}
	}
	if e.coreMissing {
		e.coreMissing = false
		e.display(fmt.Sprintf(missingCoreText, SystemDir()))
	}
}

// PendingError returns the retained pre-UI error, if any.
func (e *Engine) PendingError() (string, bool) {
	return e.pending, e.hasPending
}

// RegisterSystemCallback stores a script function under a well-known
// name ("keymap::eat", "event::trigger", ...) for native code to call
// later. Registering nil removes the callback.
func (e *Engine) RegisterSystemCallback(name string, fn *lua.LFunction) {
	if fn == nil {
		delete(e.callbacks, name)
		return
	}
	e.callbacks[name] = fn
}

// SystemCallback returns a previously registered callback, or nil.
func (e *Engine) SystemCallback(name string) *lua.LFunction {
	return e.callbacks[name]
}

// TriggerEvent fires a named event on the script side, if the script
// core registered a trigger callback.
func (e *Engine) TriggerEvent(name string) {
	fn := e.callbacks["event::trigger"]
	if fn == nil {
		return
	}
	e.L.Push(fn)
	e.L.Push(lua.LString(name))
	e.SafeCall(1, 0)
}

// EatKey offers a key press to the script-side keymap. The callback
// returns true for keys it consumed. A script error also consumes the
// key: an alert was already shown, and triggering the key's default
// action on top of it would only compound the surprise.
func (e *Engine) EatKey(keycode int) bool {
	fn := e.callbacks["keymap::eat"]
	if fn == nil {
		return false
	}
	consumed := true
	e.L.Push(fn)
	e.L.Push(lua.LNumber(keycode))
	if e.SafeCall(1, 1) {
		consumed = lua.LVAsBool(e.L.Get(-1))
		e.L.Pop(1)
	}
	e.CheckForRestart()
	return consumed
}

// SetRestart installs the function that tears the engine down and brings
// a fresh one up. The host owns that sequence; the engine only decides
// when it is safe to run.
func (e *Engine) SetRestart(fn func()) {
	e.restart = fn
}

// RequestRestart asks for an engine restart at the next safe point.
// Exposed to scripts so they can reload themselves after editing.
func (e *Engine) RequestRestart() {
	e.restartRequested = true
}

// CheckForRestart honors a pending restart request. The host calls it
// at its quiescent points: after a key was offered to the keymap, and
// after a script run completes. Restarting is only safe when the value
// stack is empty: a non-empty stack means a protected call is still in
// flight and would resume against a dead state after the swap.
func (e *Engine) CheckForRestart() {
	if !e.restartRequested {
		return
	}
	e.restartRequested = false
	if e.restart == nil {
		return
	}
	if e.L.GetTop() != 0 {
		e.display("You may not restart Lua from a dialog, or a window, opened by Lua.\n" +
			"First close, or switch out of, this window.")
		return
	}
	e.restart()
}

// display shows an informational message wherever errors currently go.
func (e *Engine) display(msg string) {
	if e.uiReady && e.notice != nil {
		e.notice("Lua", msg)
		return
	}
	fmt.Fprintf(e.Diag, "%s\n", msg)
}
