package render

import (
	"unicode"

	"github.com/lixenwraith/termgraph/span"
	"github.com/lixenwraith/termgraph/terminal"
	"github.com/mattn/go-runewidth"
)

// tabWidth is the number of spaces a tab expands to
const tabWidth = 4

// Glyph is one shaped character with its display width and style
type Glyph struct {
	Rune  rune
	Width int
	Fg    terminal.Color
	Bg    terminal.Color
	Attrs terminal.Attr
}

// WrapMode controls how lines longer than the available width break
type WrapMode uint8

const (
	WrapNone WrapMode = iota
	WrapChar
	WrapWord
)

// Valid reports whether m is a known wrap mode
func (m WrapMode) Valid() bool {
	return m <= WrapWord
}

// StringWidth returns the display width of s in cells
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Shape converts spans into glyphs. Newlines are kept as zero-width line
// breaks; tabs expand to spaces; other control and zero-width runes are dropped.
func Shape(spans []span.Span) []Glyph {
	var out []Glyph
	for _, s := range spans {
		out = AppendText(out, s.Text, s.Fg, s.Bg, s.Attrs)
	}
	return out
}

// AppendText shapes text in a single style
func AppendText(out []Glyph, text string, fg, bg terminal.Color, attrs terminal.Attr) []Glyph {
	for _, r := range text {
		switch {
		case r == '\n':
			out = append(out, Glyph{Rune: '\n', Fg: fg, Bg: bg, Attrs: attrs})
		case r == '\t':
			for range tabWidth {
				out = append(out, Glyph{Rune: ' ', Width: 1, Fg: fg, Bg: bg, Attrs: attrs})
			}
		case unicode.IsControl(r):
		default:
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			out = append(out, Glyph{Rune: r, Width: w, Fg: fg, Bg: bg, Attrs: attrs})
		}
	}
	return out
}

// Width returns the total display width of glyphs
func Width(glyphs []Glyph) int {
	w := 0
	for _, g := range glyphs {
		w += g.Width
	}
	return w
}

// Wrap splits glyphs at newlines and, unless mode is WrapNone or width is not
// positive, breaks lines to fit width. Word mode breaks after the last space
// and falls back to a character break for words longer than a line.
func Wrap(glyphs []Glyph, width int, mode WrapMode) [][]Glyph {
	var out [][]Glyph
	start := 0
	for i := 0; i <= len(glyphs); i++ {
		if i < len(glyphs) && glyphs[i].Rune != '\n' {
			continue
		}
		logical := glyphs[start:i:i]
		start = i + 1
		if mode == WrapNone || width <= 0 {
			out = append(out, logical)
			continue
		}
		out = wrapLine(out, logical, width, mode)
	}
	return out
}

func wrapLine(out [][]Glyph, logical []Glyph, width int, mode WrapMode) [][]Glyph {
	var line []Glyph
	col := 0
	lastSpace := -1
	for _, g := range logical {
		if col+g.Width > width && len(line) > 0 {
			switch {
			case mode == WrapWord && g.Rune == ' ':
				// Break at the overflowing space itself
				out = append(out, line)
				line, col, lastSpace = nil, 0, -1
				continue
			case mode == WrapWord && lastSpace >= 0:
				tail := append([]Glyph(nil), line[lastSpace+1:]...)
				out = append(out, line[:lastSpace:lastSpace])
				line, col, lastSpace = tail, Width(tail), -1
			default:
				out = append(out, line)
				line, col, lastSpace = nil, 0, -1
			}
		}
		line = append(line, g)
		col += g.Width
		if g.Rune == ' ' {
			lastSpace = len(line) - 1
		}
	}
	return append(out, line)
}

// Measure returns the widest line and the line count after wrapping
func Measure(glyphs []Glyph, width int, mode WrapMode) (w, h int) {
	lines := Wrap(glyphs, width, mode)
	for _, l := range lines {
		w = max(w, Width(l))
	}
	return w, len(lines)
}
