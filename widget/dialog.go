package widget

import (
	"github.com/gdamore/tcell/v2"
)

// Dialog is a container widget that owns children, keeps the focus and
// runs the mouse gesture machine over them. A dialog is its own owner,
// so owner-relative code works uniformly on children and on the dialog
// itself.
type Dialog struct {
	*Widget

	children []*Widget
	current  int

	screen tcell.Screen
	mouse  mouseState

	Style tcell.Style

	inited  bool
	closing bool
	closed  bool

	// notify is invoked for every widget, the dialog included, when the
	// dialog is destroyed. The scripting bridge hooks in here.
	notify func(*Widget)
}

// NewDialog creates an empty dialog.
func NewDialog(cb Callback, mcb MouseCallback) *Dialog {
	d := &Dialog{
		Widget:  New("Dialog", cb, mcb),
		current: -1,
		Style:   tcell.StyleDefault,
	}
	d.Widget.owner = d
	return d
}

// SetDestroyNotifier registers the hook called per widget on Destroy.
func (d *Dialog) SetDestroyNotifier(fn func(*Widget)) { d.notify = fn }

// Add appends a child. The first focusable child becomes current.
func (d *Dialog) Add(w *Widget) {
	w.owner = d
	d.children = append(d.children, w)
	if d.current < 0 {
		d.current = len(d.children) - 1
	}
}

// Children returns the child list in z-order, bottom first.
func (d *Dialog) Children() []*Widget { return d.children }

// Current returns the focused child, or nil.
func (d *Dialog) Current() *Widget {
	if d.current < 0 || d.current >= len(d.children) {
		return nil
	}
	return d.children[d.current]
}

// Focus moves the focus to w. The target may refuse by not handling
// MsgFocus; the previous widget is told with MsgUnfocus first and a
// refusal there blocks the move.
func (d *Dialog) Focus(w *Widget) bool {
	idx := -1
	for i, c := range d.children {
		if c == w {
			idx = i
			break
		}
	}
	if idx < 0 || idx == d.current {
		return idx == d.current
	}
	if cur := d.Current(); cur != nil {
		if cur.SendMessage(nil, MsgUnfocus, 0) == NotHandled {
			return false
		}
	}
	if w.SendMessage(nil, MsgFocus, 0) == NotHandled {
		return false
	}
	d.current = idx
	return true
}

// FocusNext cycles the focus forward, skipping widgets that refuse it.
func (d *Dialog) FocusNext() {
	n := len(d.children)
	if n == 0 || d.current < 0 {
		return
	}
	for i := 1; i < n; i++ {
		if d.Focus(d.children[(d.current+i)%n]) {
			return
		}
	}
}

// HandleKey routes one key press: hotkey consumers first, then the
// focused widget, then the dialog's own handler.
func (d *Dialog) HandleKey(kc KeyCode) Result {
	for _, c := range d.children {
		if c.wantHotkey && c.SendMessage(nil, MsgHotkey, int(kc)) == Handled {
			return Handled
		}
	}
	if cur := d.Current(); cur != nil {
		if cur.SendMessage(nil, MsgKey, int(kc)) == Handled {
			return Handled
		}
	}
	if d.SendMessage(nil, MsgKey, int(kc)) == Handled {
		return Handled
	}
	return d.SendMessage(nil, MsgPostKey, int(kc))
}

// Init broadcasts MsgInit to the dialog and its children, in z-order.
// It runs once; running the dialog again after a close does not repeat
// it.
func (d *Dialog) Init() {
	if d.inited {
		return
	}
	d.inited = true
	d.SendMessage(nil, MsgInit, 0)
	for _, c := range d.children {
		c.SendMessage(nil, MsgInit, 0)
	}
}

// Idle sends one MsgIdle tick to the dialog.
func (d *Dialog) Idle() { d.SendMessage(nil, MsgIdle, 0) }

// Action relays a child's action to the dialog, the way a button press
// bubbles up.
func (d *Dialog) Action(sender *Widget) Result {
	return d.SendMessage(sender, MsgAction, 0)
}

// Redraw paints the dialog frame and every child, then positions the
// cursor on the focused widget if it wants one.
func (d *Dialog) Redraw(screen tcell.Screen) {
	d.screen = screen
	screen.HideCursor()
	d.Widget.canvas = prepareCanvas(d.Widget.canvas, screen, d.X, d.Y, d.Cols, d.Rows)
	if d.SendMessage(nil, MsgDraw, 0) == NotHandled {
		d.Widget.canvas.SetStyle(d.Style)
		d.Widget.canvas.Erase()
	}
	for _, c := range d.children {
		c.canvas = prepareCanvas(c.canvas, screen, d.X+c.X, d.Y+c.Y, c.Cols, c.Rows)
		c.SendMessage(nil, MsgDraw, 0)
	}
	if cur := d.Current(); cur != nil && cur.wantCursor {
		cur.SendMessage(nil, MsgCursor, 0)
	}
}

func prepareCanvas(c *Canvas, screen tcell.Screen, ox, oy, cols, rows int) *Canvas {
	if c == nil {
		return newCanvas(screen, ox, oy, cols, rows)
	}
	c.Reset(screen, ox, oy, cols, rows)
	return c
}

// Canvas returns the widget's drawing surface for the current redraw.
// It is nil before the first Redraw.
func (w *Widget) Canvas() *Canvas { return w.canvas }

// TryClose asks the dialog to close. MsgValidate may veto it by
// claiming the message.
func (d *Dialog) TryClose() bool {
	if d.SendMessage(nil, MsgValidate, 0) == Handled {
		return false
	}
	d.closing = true
	return true
}

// Closing reports whether the modal loop should end.
func (d *Dialog) Closing() bool { return d.closing }

// Reopen arms a closed dialog so it can be run again.
func (d *Dialog) Reopen() {
	if d.closed {
		panic("dialog reopened after destroy")
	}
	d.closing = false
}

// Destroyed reports whether Destroy has run.
func (d *Dialog) Destroyed() bool { return d.closed }

// Destroy tears the dialog down. Children are told first, bottom up,
// then the dialog itself; the destroy notifier fires after each
// widget's MsgDestroy so the widget can still be inspected from it.
func (d *Dialog) Destroy() {
	if d.closed {
		return
	}
	d.closed = true
	d.closing = true
	for _, c := range d.children {
		c.SendMessage(nil, MsgDestroy, 0)
		if d.notify != nil {
			d.notify(c)
		}
	}
	d.SendMessage(nil, MsgDestroy, 0)
	if d.notify != nil {
		d.notify(d.Widget)
	}
}
