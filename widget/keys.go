package widget

import "github.com/gdamore/tcell/v2"

// KeyCode is a single integer encoding of a key press. Printable keys
// carry their rune value; function and navigation keys are offset past
// the Unicode range so the two spaces never collide.
type KeyCode int

const keyBase KeyCode = 0x110000

// KeyCodeOf encodes a tcell key event.
func KeyCodeOf(ev *tcell.EventKey) KeyCode {
	if ev.Key() == tcell.KeyRune {
		return KeyCode(ev.Rune())
	}
	return keyBase + KeyCode(ev.Key())
}

// KeyCodeFor encodes a non-printable tcell key.
func KeyCodeFor(key tcell.Key) KeyCode {
	return keyBase + KeyCode(key)
}

// IsRune reports whether the code is a printable rune.
func (k KeyCode) IsRune() bool { return k < keyBase }

// Rune returns the rune for a printable code, or 0.
func (k KeyCode) Rune() rune {
	if k.IsRune() {
		return rune(k)
	}
	return 0
}

// Key returns the tcell key for a non-printable code, or KeyRune.
func (k KeyCode) Key() tcell.Key {
	if k.IsRune() {
		return tcell.KeyRune
	}
	return tcell.Key(k - keyBase)
}
