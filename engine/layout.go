package engine

import (
	"fmt"
	"log"
	"math"

	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/span"
)

// updateLayout is the only path into the layout engine's style record:
// read the node's record, change one field, write it back
func (e *Engine) updateLayout(id NodeID, fn func(*flex.Style)) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	st, err := e.layout.Style(n.layout)
	if err != nil {
		return fmt.Errorf("layout of node %d: %w", id, err)
	}
	fn(&st)
	if err := e.layout.SetStyle(n.layout, st); err != nil {
		return fmt.Errorf("layout of node %d: %w: %w", id, ErrInvalidArgument, err)
	}
	e.markDirty(n)
	return nil
}

// LayoutStyle returns the node's layout record
func (e *Engine) LayoutStyle(id NodeID) (flex.Style, error) {
	n, err := e.node(id)
	if err != nil {
		return flex.Style{}, err
	}
	return e.layout.Style(n.layout)
}

func (e *Engine) SetWidth(id NodeID, d flex.Dimension) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Width = d })
}

func (e *Engine) SetHeight(id NodeID, d flex.Dimension) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Height = d })
}

func (e *Engine) SetMinWidth(id NodeID, d flex.Dimension) error {
	return e.updateLayout(id, func(s *flex.Style) { s.MinWidth = d })
}

func (e *Engine) SetMinHeight(id NodeID, d flex.Dimension) error {
	return e.updateLayout(id, func(s *flex.Style) { s.MinHeight = d })
}

func (e *Engine) SetMaxWidth(id NodeID, d flex.Dimension) error {
	return e.updateLayout(id, func(s *flex.Style) { s.MaxWidth = d })
}

func (e *Engine) SetMaxHeight(id NodeID, d flex.Dimension) error {
	return e.updateLayout(id, func(s *flex.Style) { s.MaxHeight = d })
}

func (e *Engine) SetFlexBasis(id NodeID, d flex.Dimension) error {
	return e.updateLayout(id, func(s *flex.Style) { s.FlexBasis = d })
}

func (e *Engine) SetFlexGrow(id NodeID, v float64) error {
	return e.updateLayout(id, func(s *flex.Style) { s.FlexGrow = v })
}

func (e *Engine) SetFlexShrink(id NodeID, v float64) error {
	return e.updateLayout(id, func(s *flex.Style) { s.FlexShrink = v })
}

func (e *Engine) SetDirection(id NodeID, d flex.Direction) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Direction = d })
}

func (e *Engine) SetFlexWrap(id NodeID, w flex.Wrap) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Wrap = w })
}

func (e *Engine) SetJustify(id NodeID, j flex.Justify) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Justify = j })
}

func (e *Engine) SetAlignItems(id NodeID, a flex.Align) error {
	return e.updateLayout(id, func(s *flex.Style) { s.AlignItems = a })
}

func (e *Engine) SetAlignSelf(id NodeID, a flex.Align) error {
	return e.updateLayout(id, func(s *flex.Style) { s.AlignSelf = a })
}

// SetGap sets the spacing between lines (row) and between items (column)
func (e *Engine) SetGap(id NodeID, row, column flex.Dimension) error {
	return e.updateLayout(id, func(s *flex.Style) {
		s.RowGap = row
		s.ColumnGap = column
	})
}

func (e *Engine) SetPadding(id NodeID, p flex.Edges) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Padding = p })
}

func (e *Engine) SetMargin(id NodeID, m flex.Edges) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Margin = m })
}

// SetInset sets the offsets used by absolute positioning
func (e *Engine) SetInset(id NodeID, i flex.Edges) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Inset = i })
}

func (e *Engine) SetPosition(id NodeID, p flex.Position) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Position = p })
}

func (e *Engine) SetDisplay(id NodeID, d flex.Display) error {
	return e.updateLayout(id, func(s *flex.Style) { s.Display = d })
}

// SetOverflow controls clipping of children. Scroll viewports always scroll.
func (e *Engine) SetOverflow(id NodeID, o flex.Overflow) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	if n.kind == KindScroll {
		return fmt.Errorf("overflow of scroll node %d: %w", id, ErrTypeMismatch)
	}
	return e.updateLayout(id, func(s *flex.Style) { s.Overflow = o })
}

// syncBorder reserves one cell per edge for a resolved visible border
func (e *Engine) syncBorder(n *node) {
	w := flex.Cells(borderWidth(n.effective))
	st, err := e.layout.Style(n.layout)
	if err != nil || st.Border == flex.Uniform(w) {
		return
	}
	e.updateLayout(n.id, func(s *flex.Style) { s.Border = flex.Uniform(w) })
}

// LayoutRect returns the node's border box in terminal cells as of the last
// render, ignoring scroll and render offsets
func (e *Engine) LayoutRect(id NodeID) (render.Rect, error) {
	n, err := e.node(id)
	if err != nil {
		return render.Rect{}, err
	}
	return n.rect, nil
}

// ScreenRect returns where the node was last painted
func (e *Engine) ScreenRect(id NodeID) (render.Rect, error) {
	n, err := e.node(id)
	if err != nil {
		return render.Rect{}, err
	}
	return n.screen, nil
}

// computeLayout lays out the root against the terminal and records every
// node's absolute and on-screen boxes
func (e *Engine) computeLayout(root *node) error {
	avail := flex.Size{Width: float64(e.width), Height: float64(e.height)}
	if err := e.layout.ComputeLayout(root.layout, avail); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	e.place(root, 0, 0, 0, 0, e.back.Bounds())
	return nil
}

func (e *Engine) place(n *node, px, py float64, dx, dy int, clip render.Rect) {
	l, err := e.layout.Layout(n.layout)
	if err != nil {
		return
	}
	x, y := px+l.X, py+l.Y
	n.rect = render.RoundRect(x, y, l.Width, l.Height)
	cx, cy, cw, ch := l.ContentBox()
	inner := render.RoundRect(x+cx, y+cy, cw, ch)

	ox := dx + int(math.Round(n.offsetX))
	oy := dy + int(math.Round(n.offsetY))
	n.screen = n.rect.Translate(ox, oy)
	n.inner = inner.Translate(ox, oy)
	n.clip = clip
	n.placed = true

	childClip := clip
	st, _ := e.layout.Style(n.layout)
	if n.kind == KindScroll || st.Overflow != flex.OverflowVisible {
		b := l.Border
		childClip = clip.Intersect(n.screen.Inset(int(b.Top), int(b.Right), int(b.Bottom), int(b.Left)))
	}
	if n.kind == KindScroll {
		content, _ := e.layout.ContentSize(n.layout)
		n.scroll.setBounds(int(math.Ceil(content.Width-cw)), int(math.Ceil(content.Height-ch)))
		n.scroll.viewW, n.scroll.viewH = inner.W, inner.H
		ox -= n.scroll.x
		oy -= n.scroll.y
	}

	for _, c := range n.children {
		if cn, ok := e.nodes[c]; ok {
			e.place(cn, x, y, ox, oy, childClip)
		}
	}
}

// HitTest returns the topmost visible node at (x, y): later siblings and
// deeper descendants win. 0 means nothing was hit.
func (e *Engine) HitTest(x, y int) (NodeID, error) {
	root, ok := e.nodes[e.root]
	if !ok {
		return 0, ErrNoRootSet
	}
	return e.hit(root, x, y), nil
}

func (e *Engine) hit(n *node, x, y int) NodeID {
	if !n.visible || !n.placed {
		return 0
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if cn, ok := e.nodes[n.children[i]]; ok {
			if id := e.hit(cn, x, y); id != 0 {
				return id
			}
		}
	}
	if n.screen.Intersect(n.clip).Contains(x, y) {
		return n.id
	}
	return 0
}

// measure sizes leaf content for the layout engine
func (e *Engine) measure(n *node, known, avail flex.Size) flex.Size {
	if n == nil {
		return flex.Size{}
	}
	width := avail.Width
	if !math.IsNaN(known.Width) {
		width = known.Width
	}
	wrapW := 0
	if !math.IsNaN(width) && !math.IsInf(width, 0) && width > 0 {
		wrapW = int(width)
	}

	switch n.kind {
	case KindText:
		w, h := render.Measure(e.shape(n), wrapW, n.wrap)
		return flex.Size{Width: float64(w), Height: float64(h)}
	case KindInput:
		w := max(render.StringWidth(n.field.value()), render.StringWidth(n.field.placeholder))
		return flex.Size{Width: float64(w + 1), Height: 1}
	case KindTextArea:
		w, h := 0, 0
		for _, line := range n.editor.lines {
			glyphs := render.AppendText(nil, joinClusters(line), 0, 0, 0)
			lw, lh := render.Measure(glyphs, wrapW, n.wrap)
			w = max(w, lw)
			h += lh
		}
		return flex.Size{Width: float64(w + 1), Height: float64(h)}
	case KindSelect:
		w := 0
		for _, o := range n.list.options {
			w = max(w, render.StringWidth(o))
		}
		return flex.Size{Width: float64(w), Height: float64(len(n.list.options))}
	}
	return flex.Size{}
}

// shape returns the cached glyphs of a text node's content
func (e *Engine) shape(n *node) []render.Glyph {
	if n.shaped {
		return n.glyphs
	}
	spans, err := e.opts.Spans.Produce(n.content, n.mode, n.lang)
	if err != nil {
		log.Printf("engine: node %d %s content: %v", n.id, n.mode, err)
		spans = span.Plain(n.content)
	}
	n.glyphs = render.Shape(spans)
	n.shaped = true
	return n.glyphs
}
