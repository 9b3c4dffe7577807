package engine

import (
	"strings"
	"testing"

	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

func TestStyleSettersRecordExplicitBits(t *testing.T) {
	h := newHarness(t, 10, 5)
	id := h.node(t, KindText)

	s, _ := h.e.Style(id)
	if s.Set != 0 || s.Opacity != 1 {
		t.Fatalf("new node style = %+v, want nothing set and opaque", s)
	}

	// Setting the default value still counts as explicit
	if err := h.e.SetFg(id, terminal.ColorDefault); err != nil {
		t.Fatal(err)
	}
	if err := h.e.SetBorder(id, render.BorderRounded); err != nil {
		t.Fatal(err)
	}
	s, _ = h.e.Style(id)
	if !s.Has(PropFg) || !s.Has(PropBorder) || s.Has(PropBg) {
		t.Errorf("Set = %06b, want fg and border only", s.Set)
	}

	wantErr(t, h.e.SetOpacity(id, 1.5), ErrInvalidArgument)
	wantErr(t, h.e.SetBorder(id, render.BorderKind(200)), ErrInvalidArgument)
}

func TestThemeResolution(t *testing.T) {
	h := newHarness(t, 10, 5)
	root := h.screen(t)
	text := h.child(t, root, KindText)
	in := h.child(t, root, KindInput)
	pinned := h.child(t, root, KindText)

	dark, _ := h.e.ThemeStyle(ThemeDark)
	light, _ := h.e.ThemeStyle(ThemeLight)
	inputOverride, _, _ := h.e.ThemeOverride(ThemeDark, KindInput)
	red := terminal.RGB(255, 0, 0)

	if err := h.e.BindTheme(root, ThemeDark); err != nil {
		t.Fatal(err)
	}
	if err := h.e.SetFg(pinned, red); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		id     NodeID
		fg, bg terminal.Color
	}{
		{"global theme value", text, dark.Fg, dark.Bg},
		{"kind override beats global", in, dark.Fg, inputOverride.Bg},
		{"explicit beats theme", pinned, red, dark.Bg},
	}
	for _, tt := range tests {
		s, err := h.e.EffectiveStyle(tt.id)
		if err != nil {
			t.Fatal(err)
		}
		if s.Fg != tt.fg || s.Bg != tt.bg {
			t.Errorf("%s: fg %s bg %s, want fg %s bg %s", tt.name, s.Fg, s.Bg, tt.fg, tt.bg)
		}
	}

	// Nearest binding wins
	if err := h.e.BindTheme(text, ThemeLight); err != nil {
		t.Fatal(err)
	}
	if s, _ := h.e.EffectiveStyle(text); s.Fg != light.Fg {
		t.Errorf("nested binding fg = %s, want %s", s.Fg, light.Fg)
	}

	if err := h.e.UnbindTheme(text); err != nil {
		t.Fatal(err)
	}
	if err := h.e.UnbindTheme(root); err != nil {
		t.Fatal(err)
	}
	if s, _ := h.e.EffectiveStyle(text); s.Fg != terminal.ColorDefault {
		t.Errorf("unbound fg = %s, want default", s.Fg)
	}
}

func TestThemeEditMarksBoundSubtreeDirty(t *testing.T) {
	h := newHarness(t, 20, 5)
	root := h.screen(t)
	text := h.child(t, root, KindText)
	th := h.e.CreateTheme()
	if err := h.e.BindTheme(root, th); err != nil {
		t.Fatal(err)
	}
	h.render(t)
	if d, _ := h.e.Dirty(text); d {
		t.Fatal("dirty after render")
	}

	blue := terminal.RGB(0, 0, 255)
	if err := h.e.EditTheme(th, func(s *VisualStyle) { s.SetFg(blue) }); err != nil {
		t.Fatal(err)
	}
	if d, _ := h.e.Dirty(text); !d {
		t.Error("theme edit left bound descendant clean")
	}
	h.render(t)
	if s, _ := h.e.EffectiveStyle(text); s.Fg != blue {
		t.Errorf("fg = %s, want %s", s.Fg, blue)
	}

	// Rejected edits leave the theme untouched
	err := h.e.EditTheme(th, func(s *VisualStyle) {
		s.SetFg(terminal.RGB(1, 1, 1))
		s.SetOpacity(-1)
	})
	wantErr(t, err, ErrInvalidArgument)
	if s, _ := h.e.ThemeStyle(th); s.Fg != blue {
		t.Errorf("rejected edit applied: fg %s", s.Fg)
	}
}

func TestDestroyTheme(t *testing.T) {
	h := newHarness(t, 10, 5)
	id := h.node(t, KindText)
	th := h.e.CreateTheme()
	if err := h.e.BindTheme(id, th); err != nil {
		t.Fatal(err)
	}

	wantErr(t, h.e.DestroyTheme(ThemeDark), ErrInvalidArgument)
	if err := h.e.DestroyTheme(th); err != nil {
		t.Fatal(err)
	}
	if got, _ := h.e.BoundTheme(id); got != 0 {
		t.Errorf("BoundTheme = %d after destroy, want 0", got)
	}
	wantErr(t, h.e.BindTheme(id, th), ErrInvalidHandle)
}

func TestBorderReservesLayoutSpace(t *testing.T) {
	h := newHarness(t, 20, 6)
	root := h.screen(t)
	box := h.child(t, root, KindContainer)
	h.e.SetBorder(box, render.BorderSingle)
	label := h.child(t, box, KindText)
	h.e.SetContent(label, "hi")

	h.render(t)
	r, _ := h.e.LayoutRect(label)
	if r.X != 1 || r.Y != 1 {
		t.Errorf("label at (%d,%d), want inside border at (1,1)", r.X, r.Y)
	}
	if got := h.term.Row(1); !strings.HasPrefix(got, "│hi") {
		t.Errorf("row 1 = %q, want border then label", got)
	}
}
