// Package widget is a small terminal widget toolkit: widgets, dialogs
// that own and route input to them, and the mouse gesture machinery
// that turns raw button reports into semantic events. It knows nothing
// about scripting; the bridge package hooks in through the callback
// types and the dialog's destruction notifier.
package widget

import (
	"github.com/gdamore/tcell/v2"
)

// Callback handles one widget message. sender is the originating child
// for messages relayed to a container (MsgAction), nil otherwise.
type Callback func(w *Widget, sender *Widget, msg Msg, parm int) Result

// MouseCallback handles one semantic mouse message. The handler may set
// ev.Result.Abort to veto the handled status for this event.
type MouseCallback func(w *Widget, msg MouseMsg, ev *MouseEvent)

// Host is the surface the embedding application provides: a screen to
// draw on and a modal event loop for dialogs.
type Host interface {
	Screen() tcell.Screen
	RunDialog(d *Dialog) error
}

// Widget is one UI element, owned by the dialog it was added to. Its
// pointer is stable for its lifetime and serves as the identity key on
// the scripting side.
type Widget struct {
	// Position and size. For ordinary widgets the coordinates are
	// relative to the owning dialog; a dialog's own are screen-absolute.
	X, Y, Cols, Rows int

	// Per-kind state, kept inline; the toolkit is small enough that
	// subtyping would buy little beyond casts.
	Text    string
	Checked bool

	kind  string
	owner *Dialog

	callback      Callback
	mouseCallback MouseCallback

	wantCursor bool
	wantHotkey bool

	canvas *Canvas
}

// New creates a widget of the named kind. The kind ties the widget to
// its scripting class; widgets constructed with an empty kind are
// invisible to scripts except as abstract "Widget" values.
func New(kind string, cb Callback, mcb MouseCallback) *Widget {
	return &Widget{kind: kind, callback: cb, mouseCallback: mcb, Cols: 1, Rows: 1}
}

// Kind returns the widget's scripting class name.
func (w *Widget) Kind() string { return w.kind }

// Owner returns the dialog the widget belongs to, or nil.
func (w *Widget) Owner() *Dialog { return w.owner }

func (w *Widget) SetWantCursor(v bool) { w.wantCursor = v }
func (w *Widget) WantsCursor() bool    { return w.wantCursor }
func (w *Widget) SetWantHotkey(v bool) { w.wantHotkey = v }
func (w *Widget) WantsHotkey() bool    { return w.wantHotkey }

// SendMessage delivers one message to the widget's callback.
func (w *Widget) SendMessage(sender *Widget, msg Msg, parm int) Result {
	if w.callback == nil {
		return NotHandled
	}
	return w.callback(w, sender, msg, parm)
}

// containsLocal reports whether a widget-local point is inside the
// widget's bounds.
func (w *Widget) containsLocal(x, y int) bool {
	return x >= 0 && x < w.Cols && y >= 0 && y < w.Rows
}
