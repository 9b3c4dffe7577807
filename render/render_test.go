package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lixenwraith/termgraph/span"
	"github.com/lixenwraith/termgraph/terminal"
)

func rowString(b *Buffer, y int) string {
	w, _ := b.Size()
	var out []rune
	for x := 0; x < w; x++ {
		if r := b.Get(x, y).Rune; r != 0 {
			out = append(out, r)
		}
	}
	return string(out)
}

func TestRoundRect(t *testing.T) {
	tests := []struct {
		x, y, w, h float64
		want       Rect
	}{
		{0, 0, 10, 5, Rect{0, 0, 10, 5}},
		{0.4, 0, 3.3, 1, Rect{0, 0, 4, 1}},
		{3.3, 1.5, 3.3, 1, Rect{3, 2, 4, 1}},
	}
	for _, tt := range tests {
		if got := RoundRect(tt.x, tt.y, tt.w, tt.h); got != tt.want {
			t.Errorf("RoundRect(%v,%v,%v,%v) = %+v, want %+v", tt.x, tt.y, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	if got := a.Intersect(Rect{5, 5, 10, 10}); got != (Rect{5, 5, 5, 5}) {
		t.Errorf("overlap = %+v", got)
	}
	if got := a.Intersect(Rect{20, 20, 1, 1}); !got.Empty() {
		t.Errorf("disjoint intersect not empty: %+v", got)
	}
	if !a.Contains(9, 9) || a.Contains(10, 0) {
		t.Error("Contains edge handling wrong")
	}
}

func TestBufferResizeAndDiff(t *testing.T) {
	front := NewBuffer(4, 2)
	back := NewBuffer(4, 2)

	if got := Diff(nil, front, back); len(got) != 0 {
		t.Fatalf("identical buffers diffed: %v", got)
	}

	back.Set(1, 1, terminal.Cell{Rune: 'x', Fg: terminal.RGB(1, 2, 3)})
	want := []terminal.CellUpdate{{X: 1, Y: 1, Cell: terminal.Cell{Rune: 'x', Fg: terminal.RGB(1, 2, 3)}}}
	if diff := cmp.Diff(want, Diff(nil, front, back)); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}

	front.Resize(2, 2)
	if got := Diff(nil, front, back); len(got) != 8 {
		t.Errorf("size mismatch emitted %d cells, want 8", len(got))
	}
}

func TestRegionClipping(t *testing.T) {
	b := NewBuffer(6, 2)
	r := b.Region(b.Bounds()).Clip(Rect{1, 0, 3, 1})
	r.Line(0, 0, AppendText(nil, "abcdef", 0, 0, 0), 1)
	if got := rowString(b, 0); got != " bcd  " {
		t.Errorf("clipped row = %q", got)
	}
	if got := rowString(b, 1); got != "      " {
		t.Errorf("row outside clip touched: %q", got)
	}
}

func TestRegionWideGlyph(t *testing.T) {
	b := NewBuffer(4, 1)
	r := b.Region(b.Bounds())
	r.Line(0, 0, AppendText(nil, "世a", 0, 0, 0), 1)
	if got := rowString(b, 0); got != "世a " {
		t.Errorf("row = %q", got)
	}
	if b.Get(1, 0).Rune != 0 {
		t.Error("continuation cell not marked")
	}

	// Overwriting the continuation blanks the orphaned head
	r.Glyph(1, 0, Glyph{Rune: 'z', Width: 1}, 1)
	if got := rowString(b, 0); got != " za " {
		t.Errorf("after split row = %q", got)
	}

	// Wide glyph clipped at the right edge becomes a blank
	b2 := NewBuffer(3, 1)
	b2.Region(Rect{0, 0, 3, 1}).Line(2, 0, AppendText(nil, "世", 0, 0, 0), 1)
	if got := b2.Get(2, 0).Rune; got != ' ' {
		t.Errorf("clipped wide glyph = %q", got)
	}
}

func TestGlyphKeepsBackground(t *testing.T) {
	b := NewBuffer(2, 1)
	r := b.Region(b.Bounds())
	bg := terminal.RGB(10, 20, 30)
	r.Fill(Rect{0, 0, 2, 1}, bg, 1)
	r.Glyph(0, 0, Glyph{Rune: 'q', Width: 1, Fg: terminal.RGB(255, 255, 255)}, 1)
	if got := b.Get(0, 0).Bg; got != bg {
		t.Errorf("bg = %v, want %v", got, bg)
	}
}

func TestBox(t *testing.T) {
	b := NewBuffer(4, 3)
	b.Region(b.Bounds()).Box(Rect{0, 0, 4, 3}, BorderRounded, terminal.Palette(2), terminal.ColorDefault, 1)
	want := []string{"╭──╮", "│  │", "╰──╯"}
	for y, w := range want {
		if got := rowString(b, y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if b.Get(0, 0).Fg != terminal.Palette(2) {
		t.Error("border color not applied")
	}
}

func TestBlendAndLerp(t *testing.T) {
	black := terminal.RGB(0, 0, 0)
	target := terminal.RGB(200, 100, 0)

	if got := Lerp(black, target, 0.5); got != terminal.RGB(100, 50, 0) {
		t.Errorf("Lerp midpoint = %v", got)
	}
	if got := Lerp(black, terminal.Palette(3), 0.99); got != black {
		t.Errorf("non-rgb lerp before end = %v, want start", got)
	}
	if got := Lerp(black, terminal.Palette(3), 1); got != terminal.Palette(3) {
		t.Errorf("non-rgb lerp at end = %v, want end", got)
	}

	if got := Blend(black, target, 1); got != target {
		t.Errorf("opaque blend = %v", got)
	}
	if got := Blend(terminal.ColorDefault, terminal.Palette(1), 0.4); got != terminal.ColorDefault {
		t.Errorf("faint non-rgb blend = %v", got)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1e1e2e")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if c != terminal.RGB(0x1e, 0x1e, 0x2e) {
		t.Errorf("ParseHex = %v", c)
	}
	if _, err := ParseHex("nope"); err == nil {
		t.Error("expected error for malformed hex")
	}
}

func lineStrings(lines [][]Glyph) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		rs := make([]rune, len(l))
		for j, g := range l {
			rs[j] = g.Rune
		}
		out[i] = string(rs)
	}
	return out
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		mode  WrapMode
		want  []string
	}{
		{"none keeps lines", "hello world\nfoo", 5, WrapNone, []string{"hello world", "foo"}},
		{"char", "abcdefg", 3, WrapChar, []string{"abc", "def", "g"}},
		{"word", "hello world foo", 11, WrapWord, []string{"hello world", "foo"}},
		{"word long fallback", "aaaa bbbbbbbbbbb", 6, WrapWord, []string{"aaaa", "bbbbbb", "bbbbb"}},
		{"trailing newline", "ab\n", 10, WrapWord, []string{"ab", ""}},
		{"wide", "世界世", 4, WrapChar, []string{"世界", "世"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lineStrings(Wrap(AppendText(nil, tt.text, 0, 0, 0), tt.width, tt.mode))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Wrap (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShapeAndMeasure(t *testing.T) {
	glyphs := Shape([]span.Span{
		{Text: "a\tb", Attrs: terminal.AttrBold},
		{Text: "世\x01"},
	})
	if got := Width(glyphs); got != 8 {
		t.Errorf("Width = %d, want 8", got)
	}
	if glyphs[0].Attrs != terminal.AttrBold {
		t.Error("span attrs not carried")
	}
	w, h := Measure(AppendText(nil, "one two three", 0, 0, 0), 7, WrapWord)
	if w != 7 || h != 2 {
		t.Errorf("Measure = %dx%d, want 7x2", w, h)
	}
	if StringWidth("世a") != 3 {
		t.Error("StringWidth wide rune")
	}
}
