package widget

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type mouseRecord struct {
	msg MouseMsg
	ev  MouseEvent
}

// mouseRecorder returns a widget that records every semantic mouse
// event. abortAll makes it veto everything.
func mouseRecorder(log *[]mouseRecord, abortAll bool) MouseCallback {
	return func(w *Widget, msg MouseMsg, ev *MouseEvent) {
		*log = append(*log, mouseRecord{msg, *ev})
		if abortAll {
			ev.Abort = true
		}
	}
}

func testDialogWith(w *Widget) *Dialog {
	d := NewDialog(nil, nil)
	d.Cols, d.Rows = 40, 10
	d.Add(w)
	return d
}

func placedWidget(mcb MouseCallback) *Widget {
	w := New("Custom", nil, mcb)
	w.X, w.Y = 5, 2
	w.Cols, w.Rows = 10, 3
	return w
}

func TestMouseDownCaptures(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, false))
	d := testDialogWith(w)

	if !d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Buttons: ButtonLeft, Count: 1}) {
		t.Fatal("down not handled")
	}
	if !w.MouseCaptured() {
		t.Error("widget should hold the capture after a handled down")
	}
	if len(log) != 1 || log[0].msg != MouseDown {
		t.Fatalf("log = %+v, want one down", log)
	}
	if log[0].ev.X != 2 || log[0].ev.Y != 1 {
		t.Errorf("coordinates not widget-local: (%d,%d)", log[0].ev.X, log[0].ev.Y)
	}
}

func TestMouseClickRequiresReleaseInside(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, false))
	d := testDialogWith(w)

	d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Buttons: ButtonLeft, Count: 1})
	d.RouteMouse(RawMouse{Msg: RawMouseUp, X: 8, Y: 3, Buttons: ButtonLeft, Count: 1})

	msgs := messagesOf(log)
	want := []MouseMsg{MouseDown, MouseUp, MouseClick}
	if !equalMsgs(msgs, want) {
		t.Errorf("messages = %v, want %v", msgs, want)
	}
	if w.MouseCaptured() {
		t.Error("capture should end on release")
	}
}

func TestMouseUpOutsideIsNoClick(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, false))
	d := testDialogWith(w)

	d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Buttons: ButtonLeft})
	d.RouteMouse(RawMouse{Msg: RawMouseUp, X: 30, Y: 9, Buttons: ButtonLeft})

	for _, r := range log {
		if r.msg == MouseClick {
			t.Fatal("click delivered although release was outside the widget")
		}
	}
	// The up still went to the widget that took the press.
	if last := log[len(log)-1]; last.msg != MouseUp {
		t.Errorf("last message = %v, want up", last.msg)
	}
}

func TestDragFollowsCapture(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, false))
	d := testDialogWith(w)

	d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Buttons: ButtonLeft})
	d.RouteMouse(RawMouse{Msg: RawMouseDrag, X: 35, Y: 9, Buttons: ButtonLeft})

	last := log[len(log)-1]
	if last.msg != MouseDrag {
		t.Fatalf("last message = %v, want drag", last.msg)
	}
	// Drag coordinates stay widget-local even outside the widget.
	if last.ev.X != 30 || last.ev.Y != 7 {
		t.Errorf("drag at (%d,%d), want (30,7)", last.ev.X, last.ev.Y)
	}
}

func TestDragWithoutCaptureIsIgnored(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, false))
	d := testDialogWith(w)

	if d.RouteMouse(RawMouse{Msg: RawMouseDrag, X: 7, Y: 3, Buttons: ButtonLeft}) {
		t.Error("drag with no capture should not be handled")
	}
	if len(log) != 0 {
		t.Errorf("log = %+v, want empty", log)
	}
}

func TestVetoedDownStillCaptures(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, true))
	d := testDialogWith(w)

	if d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Buttons: ButtonLeft}) {
		t.Error("vetoed down reported as handled")
	}
	// The veto governs the handled result only; the gesture machine
	// enters the captured state regardless, so the release still
	// routes back to the widget.
	if !w.MouseCaptured() {
		t.Error("the press should capture even when vetoed")
	}
	d.RouteMouse(RawMouse{Msg: RawMouseDrag, X: 30, Y: 9, Buttons: ButtonLeft})
	if last := log[len(log)-1]; last.msg != MouseDrag {
		t.Errorf("last message = %v, want drag", last.msg)
	}
}

func TestZeroButtonReleaseSubstitution(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, false))
	d := testDialogWith(w)

	d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Buttons: ButtonRight})
	d.RouteMouse(RawMouse{Msg: RawMouseUp, X: 7, Y: 3, Buttons: 0})

	for _, r := range log {
		if r.msg == MouseUp && r.ev.Buttons != ButtonRight {
			t.Errorf("up buttons = %v, want the buttons that went down", r.ev.Buttons)
		}
	}
}

func TestWheelNeverCaptures(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, false))
	d := testDialogWith(w)

	if !d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Wheel: tcell.WheelUp}) {
		t.Fatal("wheel not handled")
	}
	if w.MouseCaptured() {
		t.Error("wheel must not capture")
	}
	if log[0].msg != MouseScrollUp {
		t.Errorf("message = %v, want scroll-up", log[0].msg)
	}

	d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Wheel: tcell.WheelDown})
	if log[1].msg != MouseScrollDown {
		t.Errorf("message = %v, want scroll-down", log[1].msg)
	}
}

func TestForcedCaptureSurvivesRelease(t *testing.T) {
	var log []mouseRecord
	w := placedWidget(mouseRecorder(&log, false))
	d := testDialogWith(w)

	w.SetMouseCapture(true)
	d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Buttons: ButtonLeft})
	d.RouteMouse(RawMouse{Msg: RawMouseUp, X: 7, Y: 3, Buttons: ButtonLeft})

	if !w.MouseCaptured() {
		t.Error("forced capture ended by release")
	}
	w.SetMouseCapture(false)
	if w.MouseCaptured() {
		t.Error("capture not released")
	}
}

func TestTopmostWidgetWins(t *testing.T) {
	var bottomLog, topLog []mouseRecord
	bottom := placedWidget(mouseRecorder(&bottomLog, false))
	top := placedWidget(mouseRecorder(&topLog, false))
	d := testDialogWith(bottom)
	d.Add(top)

	d.RouteMouse(RawMouse{Msg: RawMouseDown, X: 7, Y: 3, Buttons: ButtonLeft})

	if len(bottomLog) != 0 {
		t.Error("event leaked to an obscured widget")
	}
	if len(topLog) != 1 {
		t.Error("topmost widget did not get the event")
	}
}

func messagesOf(log []mouseRecord) []MouseMsg {
	out := make([]MouseMsg, len(log))
	for i, r := range log {
		out[i] = r.msg
	}
	return out
}

func equalMsgs(a, b []MouseMsg) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTranslatorPressDragRelease(t *testing.T) {
	var tr Translator

	down := tr.Translate(tcell.NewEventMouse(3, 4, tcell.Button1, 0))
	if len(down) != 1 || down[0].Msg != RawMouseDown || down[0].Count != 1 {
		t.Fatalf("press = %+v", down)
	}
	drag := tr.Translate(tcell.NewEventMouse(5, 4, tcell.Button1, 0))
	if len(drag) != 1 || drag[0].Msg != RawMouseDrag {
		t.Fatalf("drag = %+v", drag)
	}
	up := tr.Translate(tcell.NewEventMouse(5, 4, tcell.ButtonNone, 0))
	if len(up) != 1 || up[0].Msg != RawMouseUp {
		t.Fatalf("release = %+v", up)
	}
	move := tr.Translate(tcell.NewEventMouse(6, 4, tcell.ButtonNone, 0))
	if len(move) != 1 || move[0].Msg != RawMouseMove {
		t.Fatalf("move = %+v", move)
	}
}

func TestTranslatorDoubleClickCount(t *testing.T) {
	var tr Translator

	tr.Translate(tcell.NewEventMouse(3, 4, tcell.Button1, 0))
	tr.Translate(tcell.NewEventMouse(3, 4, tcell.ButtonNone, 0))
	down := tr.Translate(tcell.NewEventMouse(3, 4, tcell.Button1, 0))
	if down[0].Count != 2 {
		t.Errorf("count = %d, want 2", down[0].Count)
	}

	// A press somewhere else starts a fresh count.
	tr.Translate(tcell.NewEventMouse(3, 4, tcell.ButtonNone, 0))
	down = tr.Translate(tcell.NewEventMouse(9, 4, tcell.Button1, 0))
	if down[0].Count != 1 {
		t.Errorf("count after move = %d, want 1", down[0].Count)
	}
}

func TestTranslatorWheel(t *testing.T) {
	var tr Translator

	out := tr.Translate(tcell.NewEventMouse(3, 4, tcell.WheelUp, 0))
	if len(out) != 1 || out[0].Wheel != tcell.WheelUp {
		t.Fatalf("wheel = %+v", out)
	}
}

func TestTranslatorMapsButtons(t *testing.T) {
	if buttonsOf(tcell.Button1) != ButtonLeft {
		t.Error("Button1 should map to left")
	}
	if buttonsOf(tcell.Button2) != ButtonRight {
		t.Error("Button2 should map to right")
	}
	if buttonsOf(tcell.Button3) != ButtonMiddle {
		t.Error("Button3 should map to middle")
	}
}
