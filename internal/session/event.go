package session

import "unicode"

// KeyKind classifies a raw key press.
type KeyKind int

// Key kinds understood by the session loop.
const (
	KeyOther KeyKind = iota
	KeyPrintable
	KeyBackspace
	KeyCancel
	// KeyEnter submits menu input. Typing sessions ignore it.
	KeyEnter
)

// KeyEvent is a single key press read from the console.
type KeyEvent struct {
	Kind KeyKind
	Rune rune
}

const (
	keyEscape    = 27
	keyCtrlH     = 8
	keyDelete    = 127
	keyCtrlC     = 3
	keyLF        = '\n'
	keyCR        = '\r'
	maxASCIIRune = 0x7e
)

// Printable returns a printable key event for r.
func Printable(r rune) KeyEvent {
	return KeyEvent{Kind: KeyPrintable, Rune: r}
}

// Backspace returns a backspace key event.
func Backspace() KeyEvent {
	return KeyEvent{Kind: KeyBackspace}
}

// Cancel returns a cancel key event.
func Cancel() KeyEvent {
	return KeyEvent{Kind: KeyCancel}
}

// Enter returns an enter key event.
func Enter() KeyEvent {
	return KeyEvent{Kind: KeyEnter}
}

// KeyFromRune classifies a raw character code the way a terminal reports it:
// ESC and Ctrl+C cancel, BS and DEL delete, CR and LF submit, printable
// characters are typed.
func KeyFromRune(r rune) KeyEvent {
	switch r {
	case keyEscape, keyCtrlC:
		return Cancel()
	case keyCtrlH, keyDelete:
		return Backspace()
	case keyLF, keyCR:
		return Enter()
	}
	if r == ' ' || (r <= maxASCIIRune && unicode.IsPrint(r)) || (r > maxASCIIRune && unicode.IsGraphic(r)) {
		return Printable(r)
	}
	return KeyEvent{Kind: KeyOther, Rune: r}
}

// KeysFromString turns s into printable events, one per rune.
func KeysFromString(s string) []KeyEvent {
	out := make([]KeyEvent, 0, len(s))
	for _, r := range s {
		out = append(out, Printable(r))
	}
	return out
}
