package widget

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Buttons is a set of pressed mouse buttons.
type Buttons int

const (
	ButtonLeft Buttons = 1 << iota
	ButtonMiddle
	ButtonRight
)

// MouseMsg identifies a semantic mouse event produced by the gesture
// machine.
type MouseMsg int

const (
	MouseDown MouseMsg = iota
	MouseUp
	MouseClick
	MouseDrag
	MouseMove
	MouseScrollUp
	MouseScrollDown
)

func (m MouseMsg) String() string {
	switch m {
	case MouseDown:
		return "down"
	case MouseUp:
		return "up"
	case MouseClick:
		return "click"
	case MouseDrag:
		return "drag"
	case MouseMove:
		return "move"
	case MouseScrollUp:
		return "scroll-up"
	case MouseScrollDown:
		return "scroll-down"
	}
	return "unknown"
}

// MouseEvent carries the payload of one semantic mouse message. X and Y
// are widget-local. A handler that sets Abort vetoes the event: the
// machine then reports it as unhandled.
type MouseEvent struct {
	X, Y    int
	Buttons Buttons
	Count   int
	Abort   bool
}

// RawMouseMsg is a gesture already classified per button transition:
// the translator diffs tcell's button masks into these.
type RawMouseMsg int

const (
	RawMouseDown RawMouseMsg = iota
	RawMouseUp
	RawMouseDrag
	RawMouseMove
)

// RawMouse is one raw gesture in screen coordinates.
type RawMouse struct {
	Msg     RawMouseMsg
	X, Y    int
	Buttons Buttons
	Wheel   tcell.ButtonMask
	Count   int
}

// mouseState is the per-dialog gesture state. Capture makes every
// subsequent gesture go to the captured widget regardless of position;
// it is taken on a down event and released on up, unless the widget
// forced it.
type mouseState struct {
	capture         *Widget
	forced          bool
	lastButtonsDown Buttons
}

// SetMouseCapture forces mouse capture to the widget (or releases a
// forced capture when off). While forced, button release does not end
// the capture.
func (w *Widget) SetMouseCapture(on bool) {
	d := w.owner
	if d == nil {
		return
	}
	if on {
		d.mouse.capture = w
		d.mouse.forced = true
	} else if d.mouse.capture == w {
		d.mouse.capture = nil
		d.mouse.forced = false
	}
}

// MouseCaptured reports whether the widget currently holds the capture.
func (w *Widget) MouseCaptured() bool {
	return w.owner != nil && w.owner.mouse.capture == w
}

// deliverMouse sends one semantic event to the widget and reports
// whether it was handled. A handler that sets ev.Abort makes the event
// count as unhandled.
func (w *Widget) deliverMouse(msg MouseMsg, ev *MouseEvent) bool {
	if w.mouseCallback == nil {
		return false
	}
	ev.Abort = false
	w.mouseCallback(w, msg, ev)
	return !ev.Abort
}

// RouteMouse runs the gesture machine over one raw event. Coordinates
// in raw are dialog-local; the machine resolves the target widget,
// translates to widget-local coordinates and emits semantic events.
func (d *Dialog) RouteMouse(raw RawMouse) bool {
	// Wheel gestures never capture and always go to the widget under
	// the pointer, even during a drag.
	if raw.Wheel != 0 {
		return d.routeWheel(raw)
	}

	target := d.mouse.capture
	if target == nil {
		target = d.widgetAt(raw.X, raw.Y)
	}
	if target == nil {
		return false
	}

	ev := MouseEvent{
		X:       raw.X - target.X,
		Y:       raw.Y - target.Y,
		Buttons: raw.Buttons,
		Count:   raw.Count,
	}

	switch raw.Msg {
	case RawMouseDown:
		// A press always takes the capture; a handler's veto governs
		// only the handled result, not the gesture state.
		d.mouse.lastButtonsDown = raw.Buttons
		if d.mouse.capture == nil {
			d.mouse.capture = target
		}
		return target.deliverMouse(MouseDown, &ev)

	case RawMouseUp:
		// Some terminals report release with a zero button mask.
		// Substitute the buttons that went down so handlers can tell
		// which button was released.
		if ev.Buttons == 0 {
			ev.Buttons = d.mouse.lastButtonsDown
		}
		wasCaptured := d.mouse.capture == target
		if d.mouse.capture != nil && !d.mouse.forced {
			d.mouse.capture = nil
		}
		handled := target.deliverMouse(MouseUp, &ev)
		// A click happens only if the release lands inside the widget
		// that took the press.
		if wasCaptured && target.containsLocal(ev.X, ev.Y) {
			click := ev
			if target.deliverMouse(MouseClick, &click) {
				handled = true
			}
		}
		return handled

	case RawMouseDrag:
		if d.mouse.capture == nil {
			return false
		}
		return target.deliverMouse(MouseDrag, &ev)

	case RawMouseMove:
		return target.deliverMouse(MouseMove, &ev)
	}
	return false
}

func (d *Dialog) routeWheel(raw RawMouse) bool {
	target := d.widgetAt(raw.X, raw.Y)
	if target == nil {
		return false
	}
	ev := MouseEvent{X: raw.X - target.X, Y: raw.Y - target.Y, Buttons: raw.Buttons}
	switch {
	case raw.Wheel&tcell.WheelUp != 0:
		return target.deliverMouse(MouseScrollUp, &ev)
	case raw.Wheel&tcell.WheelDown != 0:
		return target.deliverMouse(MouseScrollDown, &ev)
	}
	return false
}

// widgetAt returns the topmost widget containing the dialog-local
// point, or nil. Later children are considered on top.
func (d *Dialog) widgetAt(x, y int) *Widget {
	for i := len(d.children) - 1; i >= 0; i-- {
		w := d.children[i]
		if w.containsLocal(x-w.X, y-w.Y) {
			return w
		}
	}
	return nil
}

const multiClickInterval = 400 * time.Millisecond

// Translator turns tcell mouse events into raw gestures by diffing
// successive button masks. It also counts rapid successive presses of
// the same button at the same spot, for double and triple clicks.
type Translator struct {
	prev tcell.ButtonMask

	lastPress    time.Time
	lastX, lastY int
	lastButton   Buttons
	count        int
}

func buttonsOf(mask tcell.ButtonMask) Buttons {
	var b Buttons
	if mask&tcell.Button1 != 0 {
		b |= ButtonLeft
	}
	if mask&tcell.Button2 != 0 {
		b |= ButtonRight
	}
	if mask&tcell.Button3 != 0 {
		b |= ButtonMiddle
	}
	return b
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// Translate converts one tcell mouse event into zero or more raw
// gestures, in the order they should be routed.
func (t *Translator) Translate(ev *tcell.EventMouse) []RawMouse {
	x, y := ev.Position()
	mask := ev.Buttons()

	var out []RawMouse

	if wheel := mask & wheelMask; wheel != 0 {
		out = append(out, RawMouse{Msg: RawMouseDown, X: x, Y: y, Wheel: wheel})
	}

	cur := buttonsOf(mask)
	old := buttonsOf(t.prev)
	t.prev = mask

	switch {
	case cur&^old != 0:
		pressed := cur &^ old
		t.countClick(ev.When(), x, y, pressed)
		out = append(out, RawMouse{Msg: RawMouseDown, X: x, Y: y, Buttons: cur, Count: t.count})
	case old&^cur != 0:
		out = append(out, RawMouse{Msg: RawMouseUp, X: x, Y: y, Buttons: cur, Count: t.count})
	case cur != 0:
		out = append(out, RawMouse{Msg: RawMouseDrag, X: x, Y: y, Buttons: cur, Count: t.count})
	case len(out) == 0:
		out = append(out, RawMouse{Msg: RawMouseMove, X: x, Y: y})
	}
	return out
}

func (t *Translator) countClick(when time.Time, x, y int, pressed Buttons) {
	if pressed == t.lastButton && x == t.lastX && y == t.lastY &&
		when.Sub(t.lastPress) <= multiClickInterval {
		t.count++
	} else {
		t.count = 1
	}
	t.lastPress = when
	t.lastX, t.lastY = x, y
	t.lastButton = pressed
}
