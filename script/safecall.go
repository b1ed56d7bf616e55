package script

import (
	"fmt"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
)

// Shown in place of error values we don't know how to display.
const nonStringError = "(error object is not a string)"

// RunStatus distinguishes the ways running a script file can fail, so
// callers can decide whether a missing optional script is fatal.
type RunStatus int

const (
	RunOK RunStatus = iota
	RunFileNotFound
	RunSyntaxError
	RunRuntimeError
)

func (s RunStatus) String() string {
	switch s {
	case RunOK:
		return "ok"
	case RunFileNotFound:
		return "file not found"
	case RunSyntaxError:
		return "syntax error"
	case RunRuntimeError:
		return "runtime error"
	default:
		return "unknown"
	}
}

// SafeCall invokes the function sitting under nargs arguments on the
// stack, with protection. A script error never unwinds into the caller:
// it is converted to a false return, and its message is displayed (and
// retained for replay if the UI isn't ready yet).
//
// The stack is balanced to the caller's expectation on both outcomes:
// nresults values on success, nothing on failure.
//
// You can think of it as a fancy version of LState.PCall.
func (e *Engine) SafeCall(nargs, nresults int) bool {
	g := e.Guard()

	err := e.L.PCall(nargs, nresults, nil)
	if err != nil {
		e.handleError(err)
		g.Check(-1 - nargs)
		return false
	}

	g.Check(-1 - nargs + nresults)
	return true
}

// SafeRunFile loads and runs a script file. Missing files are reported
// through the return status only, so callers decide whether to warn;
// syntax and runtime errors are displayed the usual way.
func (e *Engine) SafeRunFile(dir, name string) RunStatus {
	fn, err := e.L.LoadFile(filepath.Join(dir, name))
	if err != nil {
		apiErr, ok := err.(*lua.ApiError)
		if ok && apiErr.Type == lua.ApiErrorFile {
			return RunFileNotFound
		}
		e.handleError(err)
		if ok && apiErr.Type == lua.ApiErrorSyntax {
			return RunSyntaxError
		}
		return RunRuntimeError
	}

	e.L.Push(fn)
	if !e.SafeCall(0, 0) {
		return RunRuntimeError
	}
	return RunOK
}

// CheckFile compiles a script without running it. The returned error
// carries the compiler's message, position included.
func (e *Engine) CheckFile(path string) error {
	_, err := e.L.LoadFile(path)
	if err != nil {
		if apiErr, ok := err.(*lua.ApiError); ok {
			if s, ok := apiErr.Object.(lua.LString); ok {
				return fmt.Errorf("%s", string(s))
			}
		}
		return err
	}
	return nil
}

// handleError formats a caught script error and reports it. Non-string
// error values are replaced with a placeholder; a traceback, when the
// runtime captured one, is appended.
func (e *Engine) handleError(err error) {
	msg := nonStringError
	var trace string

	if apiErr, ok := err.(*lua.ApiError); ok {
		if s, ok := apiErr.Object.(lua.LString); ok {
			msg = string(s)
		}
		trace = apiErr.StackTrace
	}
	if trace != "" {
		msg = msg + "\n" + trace
	}

	e.reportError(msg)
}

// reportError records the first pre-UI error for later replay and shows
// the message wherever errors currently go: the modal notice once the
// UI is ready, the diagnostic stream before that.
func (e *Engine) reportError(msg string) {
	if !e.uiReady && !e.hasPending {
		e.pending = msg
		e.hasPending = true
	}
	if e.uiReady && e.notice != nil {
		e.notice("Lua error", msg)
		return
	}
	fmt.Fprintf(e.Diag, "LUA EXCEPTION: %s\n", msg)
}
