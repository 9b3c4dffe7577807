package engine

import "math"

// Easing maps time progress in [0, 1] to value progress
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseOutBack
	EaseOutElastic
	EaseOutBounce
)

var easingNames = [...]string{
	"linear", "in-quad", "out-quad", "in-out-quad",
	"in-cubic", "out-cubic", "in-out-cubic",
	"out-back", "out-elastic", "out-bounce",
}

// Valid reports whether e is a known curve
func (e Easing) Valid() bool {
	return int(e) < len(easingNames)
}

func (e Easing) String() string {
	if !e.Valid() {
		return "unknown"
	}
	return easingNames[e]
}

// ParseEasing maps a curve name to its Easing
func ParseEasing(name string) (Easing, bool) {
	for i, n := range easingNames {
		if n == name {
			return Easing(i), true
		}
	}
	return EaseLinear, false
}

// Apply evaluates the curve; back and elastic curves overshoot 1
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseInQuad:
		return t * t
	case EaseOutQuad:
		return t * (2 - t)
	case EaseInOutQuad:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case EaseInCubic:
		return t * t * t
	case EaseOutCubic:
		t--
		return t*t*t + 1
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	case EaseOutBack:
		c1 := 1.70158
		c3 := c1 + 1
		return 1 + c3*(t-1)*(t-1)*(t-1) + c1*(t-1)*(t-1)
	case EaseOutElastic:
		if t == 0 || t == 1 {
			return t
		}
		c4 := (2 * math.Pi) / 3
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
	case EaseOutBounce:
		n1, d1 := 7.5625, 2.75
		switch {
		case t < 1/d1:
			return n1 * t * t
		case t < 2/d1:
			t -= 1.5 / d1
			return n1*t*t + 0.75
		case t < 2.5/d1:
			t -= 2.25 / d1
			return n1*t*t + 0.9375
		default:
			t -= 2.625 / d1
			return n1*t*t + 0.984375
		}
	}
	return t
}
