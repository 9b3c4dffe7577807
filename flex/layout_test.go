package flex

import (
	"errors"
	"testing"
)

type box struct{ x, y, w, h float64 }

func boxOf(t *testing.T, tr *Tree, id NodeID) box {
	t.Helper()
	l, err := tr.Layout(id)
	if err != nil {
		t.Fatalf("Layout(%d): %v", id, err)
	}
	return box{l.X, l.Y, l.Width, l.Height}
}

func styled(mut func(*Style)) Style {
	s := DefaultStyle()
	if mut != nil {
		mut(&s)
	}
	return s
}

func build(t *testing.T, root Style, children ...Style) (*Tree, NodeID, []NodeID) {
	t.Helper()
	tr := NewTree()
	r := tr.NewNode(root)
	ids := make([]NodeID, len(children))
	for i, cs := range children {
		ids[i] = tr.NewNode(cs)
		if err := tr.AddChild(r, ids[i]); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}
	return tr, r, ids
}

func fixed(w, h float64) Style {
	return styled(func(s *Style) {
		s.Width = Cells(w)
		s.Height = Cells(h)
	})
}

func TestLayoutCases(t *testing.T) {
	tests := []struct {
		name     string
		root     Style
		children []Style
		avail    Size
		want     []box
	}{
		{
			name:     "fixed child in root",
			root:     fixed(80, 24),
			children: []Style{fixed(20, 1)},
			avail:    Size{80, 24},
			want:     []box{{0, 0, 20, 1}},
		},
		{
			name: "grow shares",
			root: styled(func(s *Style) { s.Direction = DirectionRow; s.Width = Cells(30); s.Height = Cells(5) }),
			children: []Style{
				styled(func(s *Style) { s.FlexGrow = 1 }),
				styled(func(s *Style) { s.FlexGrow = 2 }),
			},
			avail: Size{80, 24},
			want:  []box{{0, 0, 10, 5}, {10, 0, 20, 5}},
		},
		{
			name: "justify center with gap",
			root: styled(func(s *Style) {
				s.Direction = DirectionRow
				s.Width = Cells(20)
				s.Height = Cells(1)
				s.Justify = JustifyCenter
				s.ColumnGap = Cells(2)
			}),
			children: []Style{fixed(4, 1), fixed(4, 1)},
			avail:    Size{80, 24},
			want:     []box{{5, 0, 4, 1}, {11, 0, 4, 1}},
		},
		{
			name: "space between",
			root: styled(func(s *Style) {
				s.Direction = DirectionRow
				s.Width = Cells(20)
				s.Height = Cells(1)
				s.Justify = JustifySpaceBetween
			}),
			children: []Style{fixed(2, 1), fixed(2, 1), fixed(2, 1)},
			avail:    Size{80, 24},
			want:     []box{{0, 0, 2, 1}, {9, 0, 2, 1}, {18, 0, 2, 1}},
		},
		{
			name:     "shrink proportional to basis",
			root:     styled(func(s *Style) { s.Direction = DirectionRow; s.Width = Cells(10); s.Height = Cells(1) }),
			children: []Style{fixed(8, 1), fixed(8, 1)},
			avail:    Size{80, 24},
			want:     []box{{0, 0, 5, 1}, {5, 0, 5, 1}},
		},
		{
			name: "shrink respects min width",
			root: styled(func(s *Style) { s.Direction = DirectionRow; s.Width = Cells(10); s.Height = Cells(1) }),
			children: []Style{
				styled(func(s *Style) { s.Width = Cells(8); s.Height = Cells(1); s.MinWidth = Cells(7) }),
				fixed(8, 1),
			},
			avail: Size{80, 24},
			want:  []box{{0, 0, 7, 1}, {7, 0, 3, 1}},
		},
		{
			name: "padding and border inset children",
			root: styled(func(s *Style) {
				s.Width = Cells(20)
				s.Height = Cells(10)
				s.Padding = Uniform(Cells(1))
				s.Border = Uniform(Cells(1))
			}),
			children: []Style{styled(func(s *Style) { s.Height = Cells(2) })},
			avail:    Size{80, 24},
			want:     []box{{2, 2, 16, 2}},
		},
		{
			name:     "percent width",
			root:     styled(func(s *Style) { s.Direction = DirectionRow; s.Width = Cells(40); s.Height = Cells(10) }),
			children: []Style{styled(func(s *Style) { s.Width = Percent(50) })},
			avail:    Size{80, 24},
			want:     []box{{0, 0, 20, 10}},
		},
		{
			name: "absolute bottom right",
			root: fixed(20, 10),
			children: []Style{styled(func(s *Style) {
				s.Position = PositionAbsolute
				s.Width = Cells(3)
				s.Height = Cells(2)
				s.Inset = Edges{Right: Cells(0), Bottom: Cells(0)}
			})},
			avail: Size{80, 24},
			want:  []box{{17, 8, 3, 2}},
		},
		{
			name: "wrap onto second line",
			root: styled(func(s *Style) {
				s.Direction = DirectionRow
				s.Wrap = WrapLines
				s.Width = Cells(10)
				s.Height = Cells(10)
			}),
			children: []Style{fixed(4, 1), fixed(4, 1), fixed(4, 1)},
			avail:    Size{80, 24},
			want:     []box{{0, 0, 4, 1}, {4, 0, 4, 1}, {0, 1, 4, 1}},
		},
		{
			name:     "row reverse",
			root:     styled(func(s *Style) { s.Direction = DirectionRowReverse; s.Width = Cells(10); s.Height = Cells(1) }),
			children: []Style{fixed(2, 1), fixed(2, 1)},
			avail:    Size{80, 24},
			want:     []box{{8, 0, 2, 1}, {6, 0, 2, 1}},
		},
		{
			name: "align center on cross axis",
			root: styled(func(s *Style) {
				s.Direction = DirectionRow
				s.Width = Cells(10)
				s.Height = Cells(5)
				s.AlignItems = AlignCenter
			}),
			children: []Style{fixed(2, 1)},
			avail:    Size{80, 24},
			want:     []box{{0, 2, 2, 1}},
		},
		{
			name: "display none takes no space",
			root: fixed(10, 10),
			children: []Style{
				fixed(10, 2),
				styled(func(s *Style) { s.Height = Cells(3); s.Display = DisplayNone }),
				fixed(10, 2),
			},
			avail: Size{80, 24},
			want:  []box{{0, 0, 10, 2}, {0, 0, 0, 0}, {0, 2, 10, 2}},
		},
		{
			name:     "auto root fills available",
			root:     DefaultStyle(),
			children: []Style{styled(func(s *Style) { s.FlexGrow = 1 })},
			avail:    Size{30, 6},
			want:     []box{{0, 0, 30, 6}},
		},
		{
			name: "margins offset children",
			root: fixed(20, 10),
			children: []Style{styled(func(s *Style) {
				s.Height = Cells(1)
				s.Margin = Edges{Top: Cells(1), Left: Cells(2), Right: Cells(3)}
			})},
			avail: Size{80, 24},
			want:  []box{{2, 1, 15, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, root, ids := build(t, tt.root, tt.children...)
			if err := tr.ComputeLayout(root, tt.avail); err != nil {
				t.Fatalf("ComputeLayout: %v", err)
			}
			for i, id := range ids {
				if got := boxOf(t, tr, id); got != tt.want[i] {
					t.Errorf("child %d = %+v, want %+v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestMeasureFunc(t *testing.T) {
	tr, root, ids := build(t,
		styled(func(s *Style) { s.Width = Cells(80); s.Height = Cells(24); s.AlignItems = AlignStart }),
		DefaultStyle(),
	)
	var sawKnown Size
	tr.SetMeasure(ids[0], func(known, available Size) Size {
		sawKnown = known
		return Size{Width: 5, Height: 1}
	})
	if err := tr.ComputeLayout(root, Size{80, 24}); err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if got := boxOf(t, tr, ids[0]); got != (box{0, 0, 5, 1}) {
		t.Errorf("measured child = %+v", got)
	}
	if defined(sawKnown.Width) {
		t.Errorf("known width should be undefined for unstretched child, got %v", sawKnown.Width)
	}
}

func TestMeasureReceivesStretchedWidth(t *testing.T) {
	tr, root, ids := build(t, fixed(12, 10), DefaultStyle())
	tr.SetMeasure(ids[0], func(known, available Size) Size {
		if undefined(known.Width) {
			return Size{Width: 24, Height: 1}
		}
		// Wrap 24 cells of text at the known width
		lines := (24 + known.Width - 1) / known.Width
		return Size{Width: known.Width, Height: float64(int(lines))}
	})
	tr.ComputeLayout(root, Size{80, 24})
	if got := boxOf(t, tr, ids[0]); got != (box{0, 0, 12, 2}) {
		t.Errorf("wrapped child = %+v, want 12x2", got)
	}
}

func TestScrollContainerContentSize(t *testing.T) {
	tr, root, ids := build(t,
		styled(func(s *Style) { s.Width = Cells(10); s.Height = Cells(10); s.Overflow = OverflowScroll }),
		fixed(30, 40),
	)
	if err := tr.ComputeLayout(root, Size{80, 24}); err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if got := boxOf(t, tr, ids[0]); got != (box{0, 0, 30, 40}) {
		t.Errorf("scrolled child shrunk: %+v", got)
	}
	content, _ := tr.ContentSize(root)
	if content != (Size{30, 40}) {
		t.Errorf("ContentSize = %+v, want 30x40", content)
	}
}

func TestLayoutCacheInvalidation(t *testing.T) {
	tr, root, ids := build(t, fixed(20, 10), fixed(5, 2))
	tr.ComputeLayout(root, Size{80, 24})
	if tr.Dirty(root) || tr.Dirty(ids[0]) {
		t.Fatal("nodes dirty after layout")
	}

	st, _ := tr.Style(ids[0])
	st.Height = Cells(4)
	if err := tr.SetStyle(ids[0], st); err != nil {
		t.Fatalf("SetStyle: %v", err)
	}
	if !tr.Dirty(root) {
		t.Error("dirty flag did not propagate to root")
	}
	tr.ComputeLayout(root, Size{80, 24})
	if got := boxOf(t, tr, ids[0]); got.h != 4 {
		t.Errorf("height after restyle = %v, want 4", got.h)
	}
}

func TestSetStyleValidates(t *testing.T) {
	tr := NewTree()
	id := tr.NewNode(DefaultStyle())
	bad := DefaultStyle()
	bad.Direction = Direction(9)
	if err := tr.SetStyle(id, bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("SetStyle(bad direction) = %v, want ErrInvalid", err)
	}
	bad = DefaultStyle()
	bad.Width = Dimension{Value: 1, Unit: Unit(7)}
	if err := tr.SetStyle(id, bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("SetStyle(bad unit) = %v, want ErrInvalid", err)
	}
}
