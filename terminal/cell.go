package terminal

import "fmt"

// Attr represents text decoration flags (bitmask)
type Attr uint8

const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << 0
	AttrDim           Attr = 1 << 1
	AttrItalic        Attr = 1 << 2
	AttrUnderline     Attr = 1 << 3
	AttrBlink         Attr = 1 << 4
	AttrReverse       Attr = 1 << 5
	AttrStrikethrough Attr = 1 << 6
)

// AttrMask covers every defined decoration bit
const AttrMask Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse | AttrStrikethrough

// Valid reports whether only defined bits are set
func (a Attr) Valid() bool {
	return a&^AttrMask == 0
}

// ColorKind is the tag of a packed Color
type ColorKind uint8

const (
	ColorKindDefault ColorKind = iota // inherit terminal default
	ColorKindRGB
	ColorKindPalette
)

// Color is a tagged union packed into 32 bits: the high byte is the ColorKind,
// RGB uses the low 24 bits as 0xRRGGBB, palette uses the low 8 bits.
// The zero value is the terminal default color.
type Color uint32

// ColorDefault inherits the terminal's default color
const ColorDefault Color = 0

const (
	colorTagShift = 24
	colorTagRGB   = Color(ColorKindRGB) << colorTagShift
	colorTagPal   = Color(ColorKindPalette) << colorTagShift
)

// RGB returns a truecolor value
func RGB(r, g, b uint8) Color {
	return colorTagRGB | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Hex returns a truecolor value from 0xRRGGBB
func Hex(v uint32) Color {
	return colorTagRGB | Color(v&0xFFFFFF)
}

// Palette returns a 256-color palette index
func Palette(index uint8) Color {
	return colorTagPal | Color(index)
}

// Kind returns the color tag
func (c Color) Kind() ColorKind {
	return ColorKind(c >> colorTagShift)
}

// Valid reports whether the tag is known and unused bits are clear
func (c Color) Valid() bool {
	switch c.Kind() {
	case ColorKindDefault:
		return c == ColorDefault
	case ColorKindRGB:
		return true
	case ColorKindPalette:
		return c&0x00FFFF00 == 0
	}
	return false
}

// IsRGB reports whether the color is truecolor
func (c Color) IsRGB() bool {
	return c.Kind() == ColorKindRGB
}

// RGB returns the channels of a truecolor value; other kinds return zeros
func (c Color) RGB() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Index returns the palette index of a palette color
func (c Color) Index() uint8 {
	return uint8(c)
}

func (c Color) String() string {
	switch c.Kind() {
	case ColorKindRGB:
		r, g, b := c.RGB()
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	case ColorKindPalette:
		return fmt.Sprintf("palette(%d)", c.Index())
	default:
		return "default"
	}
}

// Cell represents a single terminal cell.
// Rune 0 marks the continuation column of a preceding wide glyph.
type Cell struct {
	Rune  rune
	Fg    Color
	Bg    Color
	Attrs Attr
}

// EmptyCell is a blank cell in default colors
var EmptyCell = Cell{Rune: ' '}

// CellUpdate is one changed cell emitted to a backend
type CellUpdate struct {
	X, Y int
	Cell Cell
}
