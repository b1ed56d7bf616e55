package widget

import (
	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// Canvas is a clipped drawing surface over a widget's rectangle on the
// screen. Scripts draw through it during MsgDraw; coordinates are
// widget-local.
type Canvas struct {
	screen     tcell.Screen
	ox, oy     int
	cols, rows int
	style      tcell.Style
	cx, cy     int
}

func newCanvas(screen tcell.Screen, ox, oy, cols, rows int) *Canvas {
	return &Canvas{screen: screen, ox: ox, oy: oy, cols: cols, rows: rows,
		style: tcell.StyleDefault}
}

// Reset rebinds the canvas to a new rectangle and clears the pen state.
func (c *Canvas) Reset(screen tcell.Screen, ox, oy, cols, rows int) {
	c.screen = screen
	c.ox, c.oy = ox, oy
	c.cols, c.rows = cols, rows
	c.style = tcell.StyleDefault
	c.cx, c.cy = 0, 0
}

func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) SetStyle(s tcell.Style) { c.style = s }
func (c *Canvas) Style() tcell.Style     { return c.style }
func (c *Canvas) GotoXY(x, y int)        { c.cx, c.cy = x, y }
func (c *Canvas) XY() (x, y int)         { return c.cx, c.cy }

// Erase fills the whole rectangle with spaces in the current style and
// homes the pen.
func (c *Canvas) Erase() {
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			c.screen.SetContent(c.ox+x, c.oy+y, ' ', nil, c.style)
		}
	}
	c.cx, c.cy = 0, 0
}

// DrawString writes s at the pen position, advancing it. Wide runes
// advance by their display width; anything falling outside the
// rectangle is clipped.
func (c *Canvas) DrawString(s string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if c.cy >= 0 && c.cy < c.rows && c.cx >= 0 && c.cx+w <= c.cols {
			c.screen.SetContent(c.ox+c.cx, c.oy+c.cy, r, nil, c.style)
		}
		c.cx += w
	}
}

// ShowCursor places the terminal cursor at the pen position. Widgets
// that want the cursor call this from their MsgCursor handler.
func (c *Canvas) ShowCursor() {
	c.screen.ShowCursor(c.ox+c.cx, c.oy+c.cy)
}
