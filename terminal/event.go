package terminal

// EventType identifies the kind of raw input event
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
)

// RawEvent is unclassified input as reported by a backend
type RawEvent struct {
	Type EventType

	// Key events
	Key  Key
	Rune rune
	Mod  Modifier

	// Mouse events (Mod is shared)
	MouseX int
	MouseY int
	Button MouseButton
	Action MouseAction

	// Resize events
	Width  int
	Height int
}

// KeyEvent builds a key event
func KeyEvent(k Key, r rune, mod Modifier) RawEvent {
	return RawEvent{Type: EventKey, Key: k, Rune: r, Mod: mod}
}

// RuneEvent builds a printable key event
func RuneEvent(r rune) RawEvent {
	return RawEvent{Type: EventKey, Key: KeyRune, Rune: r}
}

// MouseEvent builds a mouse event
func MouseEvent(x, y int, btn MouseButton, action MouseAction, mod Modifier) RawEvent {
	return RawEvent{Type: EventMouse, MouseX: x, MouseY: y, Button: btn, Action: action, Mod: mod}
}

// ResizeEvent builds a resize event
func ResizeEvent(w, h int) RawEvent {
	return RawEvent{Type: EventResize, Width: w, Height: h}
}
