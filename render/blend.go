package render

import (
	"fmt"

	"github.com/lixenwraith/termgraph/terminal"
	"github.com/lucasb-eyer/go-colorful"
)

func toColorful(c terminal.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) terminal.Color {
	r, g, b := c.Clamped().RGB255()
	return terminal.RGB(r, g, b)
}

// Lerp interpolates R, G and B independently between two truecolor values.
// Any other pair has no smooth path: a holds until t reaches 1, then b.
func Lerp(a, b terminal.Color, t float64) terminal.Color {
	if t >= 1 {
		return b
	}
	if t <= 0 || !a.IsRGB() || !b.IsRGB() {
		return a
	}
	return fromColorful(toColorful(a).BlendRgb(toColorful(b), t))
}

// Blend composites over onto under at the given opacity. Pairs that are not
// both truecolor resolve to whichever side dominates.
func Blend(under, over terminal.Color, opacity float64) terminal.Color {
	switch {
	case opacity >= 1:
		return over
	case opacity <= 0:
		return under
	case under.IsRGB() && over.IsRGB():
		return Lerp(under, over, opacity)
	case opacity >= 0.5:
		return over
	}
	return under
}

// ParseHex parses "#rrggbb" or "#rgb" into a truecolor value
func ParseHex(s string) (terminal.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return terminal.ColorDefault, fmt.Errorf("color %q: %w", s, err)
	}
	return fromColorful(c), nil
}
