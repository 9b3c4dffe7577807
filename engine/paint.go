package engine

import (
	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

// paint draws n and its subtree into the back buffer in tree order and
// returns the number of nodes drawn. Opacity multiplies down the tree.
func (e *Engine) paint(n *node, alpha float64) int {
	if !n.visible {
		return 0
	}
	if st, err := e.layout.Style(n.layout); err == nil && st.Display == flex.DisplayNone {
		return 0
	}
	s := n.effective
	alpha *= s.Opacity
	reg := e.back.Region(n.clip)

	if s.Bg != terminal.ColorDefault {
		reg.Fill(n.screen, s.Bg, alpha)
	}
	if s.Border != render.BorderNone {
		bc := s.BorderColor
		if bc == terminal.ColorDefault {
			bc = s.Fg
		}
		reg.Box(n.screen, s.Border, bc, s.Bg, alpha)
	}

	content := reg.Clip(n.inner)
	switch n.kind {
	case KindText:
		e.paintText(n, content, s, alpha)
	case KindInput:
		e.paintInput(n, content, s, alpha)
	case KindTextArea:
		e.paintEditor(n, content, s, alpha)
	case KindSelect:
		e.paintSelect(n, content, s, alpha)
	}

	count := 1
	for _, c := range n.children {
		if cn, ok := e.nodes[c]; ok {
			count += e.paint(cn, alpha)
		}
	}
	return count
}

// styled applies the node's foreground and decorations under span styling
func styled(glyphs []render.Glyph, s VisualStyle) []render.Glyph {
	out := make([]render.Glyph, len(glyphs))
	for i, g := range glyphs {
		if g.Fg == terminal.ColorDefault {
			g.Fg = s.Fg
		}
		g.Attrs |= s.Attrs
		out[i] = g
	}
	return out
}

func (e *Engine) paintText(n *node, reg render.Region, s VisualStyle, alpha float64) {
	lines := render.Wrap(styled(e.shape(n), s), n.inner.W, n.wrap)
	for i, line := range lines {
		if i >= n.inner.H {
			break
		}
		reg.Line(n.inner.X, n.inner.Y+i, line, alpha)
	}
}

func (e *Engine) drawCursor(reg render.Region, x, y int) {
	reg.Restyle(x, y, func(c *terminal.Cell) {
		c.Attrs |= terminal.AttrReverse
	})
}

func (e *Engine) paintInput(n *node, reg render.Region, s VisualStyle, alpha float64) {
	f := n.field
	x, y := n.inner.X, n.inner.Y
	cursor := 0
	if len(f.text) == 0 && f.placeholder != "" {
		ph := render.AppendText(nil, f.placeholder, s.Fg, terminal.ColorDefault, s.Attrs|terminal.AttrDim)
		reg.Line(x, y, ph, alpha)
	} else {
		var glyphs []render.Glyph
		glyphs, cursor = f.visible(n.inner.W, s.Fg, terminal.ColorDefault, s.Attrs)
		reg.Line(x, y, glyphs, alpha)
	}
	if e.focus == n.id {
		e.drawCursor(reg, x+cursor, y)
	}
}

func (e *Engine) paintSelect(n *node, reg render.Region, s VisualStyle, alpha float64) {
	l := n.list
	l.ensureVisible(n.inner.H)
	for row := 0; row < n.inner.H && l.offset+row < len(l.options); row++ {
		i := l.offset + row
		attrs := s.Attrs
		if i == l.selected {
			attrs |= terminal.AttrReverse
		}
		glyphs := render.AppendText(nil, l.options[i], s.Fg, terminal.ColorDefault, attrs)
		if i == l.selected {
			// Highlight spans the full row
			for w := render.Width(glyphs); w < n.inner.W; w++ {
				glyphs = append(glyphs, render.Glyph{Rune: ' ', Width: 1, Fg: s.Fg, Attrs: attrs})
			}
		}
		reg.Line(n.inner.X, n.inner.Y+row, glyphs, alpha)
	}
}

func (e *Engine) paintEditor(n *node, reg render.Region, s VisualStyle, alpha float64) {
	ed := n.editor
	ed.clampCursor()
	inner := n.inner
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	var rows [][]render.Glyph
	curRow, curCol := 0, 0
	if n.wrap == render.WrapNone {
		line := ed.lines[ed.row]
		if ed.col < ed.scrollX {
			ed.scrollX = ed.col
		}
		for ed.scrollX < ed.col && clustersWidth(line[ed.scrollX:ed.col])+1 > inner.W {
			ed.scrollX++
		}
		for _, l := range ed.lines {
			start := min(ed.scrollX, len(l))
			rows = append(rows, render.AppendText(nil, joinClusters(l[start:]), s.Fg, terminal.ColorDefault, s.Attrs))
		}
		curRow, curCol = ed.row, clustersWidth(line[ed.scrollX:ed.col])
	} else {
		for li, l := range ed.lines {
			logical := render.AppendText(nil, joinClusters(l), s.Fg, terminal.ColorDefault, s.Attrs)
			wrapped := render.Wrap(logical, inner.W, n.wrap)
			if li == ed.row {
				gi := len(render.AppendText(nil, joinClusters(l[:ed.col]), 0, 0, 0))
				r, c := cursorInRows(logical, wrapped, n.wrap, gi)
				curRow, curCol = len(rows)+r, c
			}
			rows = append(rows, wrapped...)
		}
		ed.scrollX = 0
	}

	if curRow < ed.scrollY {
		ed.scrollY = curRow
	} else if curRow >= ed.scrollY+inner.H {
		ed.scrollY = curRow - inner.H + 1
	}
	ed.scrollY = max(0, min(ed.scrollY, len(rows)-1))

	for i := 0; i < inner.H && ed.scrollY+i < len(rows); i++ {
		reg.Line(inner.X, inner.Y+i, rows[ed.scrollY+i], alpha)
	}
	if e.focus == n.id {
		e.drawCursor(reg, inner.X+curCol, inner.Y+curRow-ed.scrollY)
	}
}

// cursorInRows locates glyph index gi of a logical line within its wrapped
// rows. Word wrapping drops the space at each break, which is skipped here.
func cursorInRows(logical []render.Glyph, rows [][]render.Glyph, mode render.WrapMode, gi int) (row, col int) {
	pos := 0
	for i, r := range rows {
		start := pos
		pos += len(r)
		if i < len(rows)-1 && mode == render.WrapWord && pos < len(logical) && logical[pos].Rune == ' ' {
			pos++
		}
		if gi < pos || i == len(rows)-1 {
			return i, render.Width(r[:min(gi-start, len(r))])
		}
	}
	return 0, 0
}
