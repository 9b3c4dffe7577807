package render

import "github.com/lixenwraith/termgraph/terminal"

// Region paints into a Buffer using absolute coordinates, dropping every
// write outside its clip rect
type Region struct {
	buf  *Buffer
	clip Rect
}

// Clip returns a region further clipped to rect
func (r Region) Clip(rect Rect) Region {
	return Region{buf: r.buf, clip: r.clip.Intersect(rect)}
}

// Bounds returns the clip rect
func (r Region) Bounds() Rect {
	return r.clip
}

// Visible reports whether (x, y) is inside the clip
func (r Region) Visible(x, y int) bool {
	return r.clip.Contains(x, y)
}

// Cell returns the current cell at (x, y)
func (r Region) Cell(x, y int) terminal.Cell {
	return r.buf.Get(x, y)
}

// put writes c, repairing any wide glyph it splits
func (r Region) put(x, y int, c terminal.Cell) {
	if !r.Visible(x, y) {
		return
	}
	// Overwriting a continuation orphans the wide glyph to its left
	if r.buf.Get(x, y).Rune == 0 && x > 0 {
		left := r.buf.Get(x-1, y)
		left.Rune = ' '
		r.buf.Set(x-1, y, left)
	}
	// Overwriting a wide glyph's head orphans its continuation
	if c.Rune != 0 {
		if next := r.buf.Get(x+1, y); next.Rune == 0 && r.buf.inBounds(x+1, y) {
			next.Rune = ' '
			r.buf.Set(x+1, y, next)
		}
	}
	r.buf.Set(x, y, c)
}

// Fill paints rect with blanks in bg at opacity
func (r Region) Fill(rect Rect, bg terminal.Color, opacity float64) {
	area := r.clip.Intersect(rect)
	for y := area.Y; y < area.Y+area.H; y++ {
		for x := area.X; x < area.X+area.W; x++ {
			under := r.buf.Get(x, y)
			r.put(x, y, terminal.Cell{
				Rune: ' ',
				Fg:   under.Fg,
				Bg:   Blend(under.Bg, bg, opacity),
			})
		}
	}
}

// Glyph draws g at (x, y) and returns the columns it occupies. A default
// background keeps the cell's existing background. A wide glyph whose second
// column is clipped is drawn as a blank.
func (r Region) Glyph(x, y int, g Glyph, opacity float64) int {
	if !r.Visible(x, y) {
		return g.Width
	}
	under := r.buf.Get(x, y)
	bg := under.Bg
	if g.Bg != terminal.ColorDefault {
		bg = Blend(under.Bg, g.Bg, opacity)
	}
	fg := g.Fg
	if opacity < 1 {
		fg = Blend(bg, g.Fg, opacity)
	}

	ch := g.Rune
	if g.Width == 2 && !r.Visible(x+1, y) {
		ch = ' '
	}
	r.put(x, y, terminal.Cell{Rune: ch, Fg: fg, Bg: bg, Attrs: g.Attrs})
	if g.Width == 2 && ch != ' ' {
		r.put(x+1, y, terminal.Cell{Rune: 0, Fg: fg, Bg: bg, Attrs: g.Attrs})
	}
	return g.Width
}

// Line draws glyphs left to right from (x, y) and returns the next column
func (r Region) Line(x, y int, glyphs []Glyph, opacity float64) int {
	for _, g := range glyphs {
		if x >= r.clip.X+r.clip.W {
			break
		}
		x += r.Glyph(x, y, g, opacity)
	}
	return x
}

// Restyle changes attributes of an existing cell, e.g. to draw a cursor
func (r Region) Restyle(x, y int, fn func(*terminal.Cell)) {
	if !r.Visible(x, y) {
		return
	}
	c := r.buf.Get(x, y)
	fn(&c)
	r.buf.Set(x, y, c)
}
