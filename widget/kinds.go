package widget

import (
	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// DefaultCallback returns the native behavior for a widget kind. The
// scripting bridge wraps it: script handlers run first and the native
// behavior is the fallback.
func DefaultCallback(kind string) Callback {
	switch kind {
	case "Label":
		return labelCallback
	case "Button":
		return buttonCallback
	case "Checkbox":
		return checkboxCallback
	case "Dialog":
		return dialogCallback
	default:
		return nil
	}
}

// DefaultMouseCallback returns the native mouse behavior for a kind.
func DefaultMouseCallback(kind string) MouseCallback {
	switch kind {
	case "Button", "Checkbox":
		return activateOnClick
	default:
		return nil
	}
}

// PreferredCols returns the natural width of a widget given its text.
func PreferredCols(kind, text string) int {
	w := runewidth.StringWidth(text)
	switch kind {
	case "Button":
		return w + 4 // "[ " and " ]"
	case "Checkbox":
		return w + 4 // "[x] "
	default:
		if w == 0 {
			return 1
		}
		return w
	}
}

func labelCallback(w *Widget, sender *Widget, msg Msg, parm int) Result {
	// Labels never take the focus but never hold on to it either.
	if msg == MsgUnfocus {
		return Handled
	}
	if msg == MsgDraw {
		if c := w.canvas; c != nil {
			if d := w.owner; d != nil {
				c.SetStyle(d.Style)
			}
			c.Erase()
			c.DrawString(w.Text)
		}
		return Handled
	}
	return NotHandled
}

func buttonCallback(w *Widget, sender *Widget, msg Msg, parm int) Result {
	switch msg {
	case MsgFocus, MsgUnfocus:
		return Handled
	case MsgDraw:
		if c := w.canvas; c != nil {
			if d := w.owner; d != nil {
				c.SetStyle(d.Style)
			}
			c.Erase()
			c.DrawString("[ " + w.Text + " ]")
		}
		return Handled
	case MsgKey:
		kc := KeyCode(parm)
		if kc == '\r' || kc == '\n' || kc == ' ' || kc.Key() == tcell.KeyEnter {
			return Activate(w)
		}
	}
	return NotHandled
}

func checkboxCallback(w *Widget, sender *Widget, msg Msg, parm int) Result {
	switch msg {
	case MsgFocus, MsgUnfocus:
		return Handled
	case MsgDraw:
		if c := w.canvas; c != nil {
			if d := w.owner; d != nil {
				c.SetStyle(d.Style)
			}
			c.Erase()
			mark := "[ ] "
			if w.Checked {
				mark = "[x] "
			}
			c.DrawString(mark + w.Text)
		}
		return Handled
	case MsgKey:
		if KeyCode(parm) == ' ' {
			w.Checked = !w.Checked
			return Activate(w)
		}
	}
	return NotHandled
}

func dialogCallback(w *Widget, sender *Widget, msg Msg, parm int) Result {
	switch msg {
	case MsgKey:
		if KeyCode(parm).Key() == tcell.KeyTab {
			if d := w.owner; d != nil {
				d.FocusNext()
				return Handled
			}
		}
	}
	return NotHandled
}

// Activate fires a widget's action: the press of a button, the toggle
// of a checkbox. The action bubbles to the owning dialog.
func Activate(w *Widget) Result {
	if d := w.owner; d != nil {
		d.Focus(w)
		if d.Action(w) == Handled {
			return Handled
		}
	}
	return Handled
}

func activateOnClick(w *Widget, msg MouseMsg, ev *MouseEvent) {
	switch msg {
	case MouseDown:
		if d := w.owner; d != nil {
			d.Focus(w)
		}
	case MouseClick:
		if w.kind == "Checkbox" {
			w.Checked = !w.Checked
		}
		Activate(w)
	default:
		ev.Abort = true
	}
}
