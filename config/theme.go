package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

// ThemeConfig is one [themes.<name>] table. Unset keys leave the theme's
// property unset so it falls through to the engine default.
type ThemeConfig struct {
	Fg          string   `toml:"fg"`
	Bg          string   `toml:"bg"`
	BorderColor string   `toml:"border_color"`
	Border      string   `toml:"border"`
	Decorations []string `toml:"decorations"`
	Opacity     *float64 `toml:"opacity"`
}

var borderNames = map[string]render.BorderKind{
	"none":    render.BorderNone,
	"single":  render.BorderSingle,
	"double":  render.BorderDouble,
	"rounded": render.BorderRounded,
	"heavy":   render.BorderHeavy,
}

var attrNames = map[string]terminal.Attr{
	"bold":          terminal.AttrBold,
	"dim":           terminal.AttrDim,
	"italic":        terminal.AttrItalic,
	"underline":     terminal.AttrUnderline,
	"blink":         terminal.AttrBlink,
	"reverse":       terminal.AttrReverse,
	"strikethrough": terminal.AttrStrikethrough,
}

// style converts the table into an edit of explicit properties
func (t ThemeConfig) style() (func(*engine.VisualStyle), error) {
	var edits []func(*engine.VisualStyle)

	color := func(key, val string, set func(*engine.VisualStyle, terminal.Color)) error {
		if val == "" {
			return nil
		}
		c, err := render.ParseHex(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		edits = append(edits, func(s *engine.VisualStyle) { set(s, c) })
		return nil
	}
	if err := color("fg", t.Fg, (*engine.VisualStyle).SetFg); err != nil {
		return nil, err
	}
	if err := color("bg", t.Bg, (*engine.VisualStyle).SetBg); err != nil {
		return nil, err
	}
	if err := color("border_color", t.BorderColor, (*engine.VisualStyle).SetBorderColor); err != nil {
		return nil, err
	}

	if t.Border != "" {
		k, ok := borderNames[strings.ToLower(t.Border)]
		if !ok {
			return nil, fmt.Errorf("border: unknown kind %q", t.Border)
		}
		edits = append(edits, func(s *engine.VisualStyle) { s.SetBorder(k) })
	}

	if t.Decorations != nil {
		var attrs terminal.Attr
		for _, name := range t.Decorations {
			a, ok := attrNames[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("decorations: unknown decoration %q", name)
			}
			attrs |= a
		}
		edits = append(edits, func(s *engine.VisualStyle) { s.SetAttrs(attrs) })
	}

	if t.Opacity != nil {
		v := *t.Opacity
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("opacity: %v outside [0,1]", v)
		}
		edits = append(edits, func(s *engine.VisualStyle) { s.SetOpacity(v) })
	}

	return func(s *engine.VisualStyle) {
		for _, edit := range edits {
			edit(s)
		}
	}, nil
}

// ApplyThemes edits the built-in "dark" and "light" themes and creates one
// theme per other name. Returns the handle of every configured theme.
func (c Config) ApplyThemes(e *engine.Engine) (map[string]engine.ThemeID, error) {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	slices.Sort(names)

	ids := make(map[string]engine.ThemeID, len(names))
	for _, name := range names {
		edit, err := c.Themes[name].style()
		if err != nil {
			return ids, fmt.Errorf("themes.%s.%w", name, err)
		}

		var id engine.ThemeID
		switch name {
		case "dark":
			id = engine.ThemeDark
		case "light":
			id = engine.ThemeLight
		default:
			id = e.CreateTheme()
		}
		if err := e.EditTheme(id, edit); err != nil {
			return ids, fmt.Errorf("themes.%s: %w", name, err)
		}
		ids[name] = id
	}
	return ids, nil
}
