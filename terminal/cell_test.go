package terminal

import "testing"

func TestColorEncoding(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		kind  ColorKind
		str   string
	}{
		{"default", ColorDefault, ColorKindDefault, "default"},
		{"rgb", RGB(0x12, 0x34, 0x56), ColorKindRGB, "#123456"},
		{"hex", Hex(0xff8000), ColorKindRGB, "#ff8000"},
		{"palette", Palette(196), ColorKindPalette, "palette(196)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if !tt.color.Valid() {
				t.Errorf("Valid() = false for %v", tt.color)
			}
			if got := tt.color.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestColorRGBChannels(t *testing.T) {
	r, g, b := RGB(10, 20, 30).RGB()
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("RGB() = (%d,%d,%d), want (10,20,30)", r, g, b)
	}

	r, g, b = Palette(5).RGB()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("palette RGB() = (%d,%d,%d), want zeros", r, g, b)
	}
}

func TestColorInvalid(t *testing.T) {
	invalid := []Color{
		Color(3) << 24,
		Color(1),
		Palette(1) | 0x100,
	}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("Valid() = true for %#x", uint32(c))
		}
	}
}

func TestAttrValid(t *testing.T) {
	if !(AttrBold | AttrStrikethrough).Valid() {
		t.Error("defined attrs reported invalid")
	}
	if Attr(1 << 7).Valid() {
		t.Error("undefined attr bit reported valid")
	}
}

func TestKeyString(t *testing.T) {
	if got := KeyPageDown.String(); got != "page_down" {
		t.Errorf("KeyPageDown = %q", got)
	}
	if got := KeyCtrlW.String(); got != "ctrl_w" {
		t.Errorf("KeyCtrlW = %q", got)
	}
	if got := KeyCtrlW.CtrlLetter(); got != 'w' {
		t.Errorf("CtrlLetter = %q", got)
	}
}
