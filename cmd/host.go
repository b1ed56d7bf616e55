package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/mooffie/luaui/script"
	"github.com/mooffie/luaui/widget"
)

// tcellHost drives dialogs over a tcell screen. RunDialog nests: a
// dialog opened from inside another dialog's handler runs its own modal
// loop on top.
type tcellHost struct {
	screen tcell.Screen
	eng    *script.Engine
	trans  widget.Translator
	depth  int
}

func newHost(screen tcell.Screen, eng *script.Engine) *tcellHost {
	return &tcellHost{screen: screen, eng: eng}
}

func (h *tcellHost) Screen() tcell.Screen { return h.screen }

// RunDialog runs the modal event loop for one dialog until it closes.
func (h *tcellHost) RunDialog(d *widget.Dialog) error {
	if h.screen == nil {
		return fmt.Errorf("no screen")
	}
	h.depth++
	defer func() { h.depth-- }()

	d.Init()
	for !d.Closing() {
		d.Redraw(h.screen)
		h.screen.Show()

		if !h.screen.HasPendingEvent() {
			d.Idle()
		}
		ev := h.screen.PollEvent()
		if ev == nil {
			// Screen finalized under us.
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			kc := widget.KeyCodeOf(ev)
			// The script-side keymap gets first refusal on every key.
			if h.eng != nil && h.eng.EatKey(int(kc)) {
				continue
			}
			if d.HandleKey(kc) == widget.NotHandled && kc.Key() == tcell.KeyEscape {
				d.TryClose()
			}

		case *tcell.EventMouse:
			for _, raw := range h.trans.Translate(ev) {
				raw.X -= d.X
				raw.Y -= d.Y
				d.RouteMouse(raw)
			}

		case *tcell.EventResize:
			h.screen.Sync()
			d.SendMessage(nil, widget.MsgResize, 0)
		}
	}
	return nil
}

// Notice shows a modal message with a single dismiss button. Used as
// the engine's error display once the screen is up.
func (h *tcellHost) Notice(title, message string) {
	if h.screen == nil {
		return
	}
	d := widget.NewDialog(nil, nil)

	lines := splitLines(message)
	width := len(title)
	for _, ln := range lines {
		if len(ln) > width {
			width = len(ln)
		}
	}
	if width > 72 {
		width = 72
	}
	cols, rows := width+4, len(lines)+5

	scols, srows := h.screen.Size()
	d.X, d.Y = (scols-cols)/2, (srows-rows)/2
	d.Cols, d.Rows = cols, rows
	d.Text = title
	d.Style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed)

	for i, ln := range lines {
		l := widget.New("Label", widget.DefaultCallback("Label"), nil)
		l.Text = ln
		l.X, l.Y = 2, 1+i
		l.Cols, l.Rows = widget.PreferredCols("Label", ln), 1
		d.Add(l)
	}

	ok := widget.New("Button", func(w, sender *widget.Widget, msg widget.Msg, parm int) widget.Result {
		if msg == widget.MsgKey {
			kc := widget.KeyCode(parm)
			if kc == '\r' || kc == '\n' || kc == ' ' || kc.Key() == tcell.KeyEnter {
				d.TryClose()
				return widget.Handled
			}
		}
		return widget.DefaultCallback("Button")(w, sender, msg, parm)
	}, nil)
	ok.Text = "OK"
	ok.Cols, ok.Rows = widget.PreferredCols("Button", "OK"), 1
	ok.X, ok.Y = (cols-ok.Cols)/2, rows-2
	d.Add(ok)
	d.Focus(ok)

	h.RunDialog(d)
	d.Destroy()
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) || len(lines) == 0 {
		lines = append(lines, s[start:])
	}
	return lines
}
