package terminal

// MouseButton identifies the button of a mouse event. Wheel motion is
// reported as a press of a wheel button.
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

var buttonNames = [...]string{"none", "left", "middle", "right", "wheel-up", "wheel-down"}

func (b MouseButton) Valid() bool { return int(b) < len(buttonNames) }

// IsWheel reports whether b is a scroll wheel direction
func (b MouseButton) IsWheel() bool { return b == MouseBtnWheelUp || b == MouseBtnWheelDown }

func (b MouseButton) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return buttonNames[b]
}

// MouseAction is what happened to the button. Move carries the button
// held during motion, MouseBtnNone when hovering.
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
)

var actionNames = [...]string{"none", "press", "release", "move"}

func (a MouseAction) Valid() bool { return int(a) < len(actionNames) }

func (a MouseAction) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return actionNames[a]
}
