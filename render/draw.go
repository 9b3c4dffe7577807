package render

import "github.com/lixenwraith/termgraph/terminal"

// BorderKind specifies box drawing character style
type BorderKind uint8

const (
	BorderNone    BorderKind = iota
	BorderSingle             // ┌─┐│└┘
	BorderDouble             // ╔═╗║╚╝
	BorderRounded            // ╭─╮│╰╯
	BorderHeavy              // ┏━┓┃┗┛
)

// Valid reports whether k is a known border kind
func (k BorderKind) Valid() bool {
	return k <= BorderHeavy
}

// Box drawing character sets indexed by BorderKind
var boxChars = [...][6]rune{
	BorderNone:    {' ', ' ', ' ', ' ', ' ', ' '},
	BorderSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	BorderDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	BorderRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	BorderHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

// Box character indices
const (
	boxTL = iota
	boxH
	boxTR
	boxV
	boxBL
	boxBR
)

// Box draws a border along the edge of rect
func (r Region) Box(rect Rect, kind BorderKind, fg, bg terminal.Color, opacity float64) {
	if kind == BorderNone || !kind.Valid() || rect.W < 2 || rect.H < 2 {
		return
	}
	chars := boxChars[kind]
	cell := func(x, y int, ch rune) {
		r.Glyph(x, y, Glyph{Rune: ch, Width: 1, Fg: fg, Bg: bg}, opacity)
	}

	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.W-1, rect.Y+rect.H-1

	// Corners
	cell(x0, y0, chars[boxTL])
	cell(x1, y0, chars[boxTR])
	cell(x0, y1, chars[boxBL])
	cell(x1, y1, chars[boxBR])

	// Horizontal edges
	for x := x0 + 1; x < x1; x++ {
		cell(x, y0, chars[boxH])
		cell(x, y1, chars[boxH])
	}

	// Vertical edges
	for y := y0 + 1; y < y1; y++ {
		cell(x0, y, chars[boxV])
		cell(x1, y, chars[boxV])
	}
}
