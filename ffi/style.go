package ffi

import (
	"fmt"
	"math"

	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

// Colors cross as packed terminal.Color values; 0 is the terminal default.

func SetFg(node uint32, color uint32) int32 {
	return call("set fg", func(e *engine.Engine) error {
		return e.SetFg(engine.NodeID(node), terminal.Color(color))
	})
}

func SetBg(node uint32, color uint32) int32 {
	return call("set bg", func(e *engine.Engine) error {
		return e.SetBg(engine.NodeID(node), terminal.Color(color))
	})
}

func SetBorderColor(node uint32, color uint32) int32 {
	return call("set border color", func(e *engine.Engine) error {
		return e.SetBorderColor(engine.NodeID(node), terminal.Color(color))
	})
}

func SetBorder(node uint32, kind uint8) int32 {
	return call("set border", func(e *engine.Engine) error {
		return e.SetBorder(engine.NodeID(node), render.BorderKind(kind))
	})
}

func SetAttrs(node uint32, attrs uint8) int32 {
	return call("set attrs", func(e *engine.Engine) error {
		return e.SetAttrs(engine.NodeID(node), terminal.Attr(attrs))
	})
}

func SetOpacity(node uint32, v float64) int32 {
	return call("set opacity", func(e *engine.Engine) error {
		return e.SetOpacity(engine.NodeID(node), v)
	})
}

func CreateTheme() uint32 {
	return alloc("create theme", func(e *engine.Engine) (uint32, error) {
		return uint32(e.CreateTheme()), nil
	})
}

func DestroyTheme(theme uint32) int32 {
	return call("destroy theme", func(e *engine.Engine) error {
		return e.DestroyTheme(engine.ThemeID(theme))
	})
}

// propEdit decodes one property from its wire value: color bits, border
// kind, attr bits, or IEEE-754 bits for opacity
func propEdit(prop uint8, v uint64) (func(*engine.VisualStyle), error) {
	p := engine.StyleProp(prop)
	if p != engine.PropOpacity && v > math.MaxUint32 {
		return nil, fmt.Errorf("%w: value %#x", engine.ErrInvalidArgument, v)
	}
	switch p {
	case engine.PropFg:
		return func(s *engine.VisualStyle) { s.SetFg(terminal.Color(v)) }, nil
	case engine.PropBg:
		return func(s *engine.VisualStyle) { s.SetBg(terminal.Color(v)) }, nil
	case engine.PropBorderColor:
		return func(s *engine.VisualStyle) { s.SetBorderColor(terminal.Color(v)) }, nil
	case engine.PropBorder:
		if v > math.MaxUint8 {
			break
		}
		return func(s *engine.VisualStyle) { s.SetBorder(render.BorderKind(v)) }, nil
	case engine.PropAttrs:
		if v > math.MaxUint8 {
			break
		}
		return func(s *engine.VisualStyle) { s.SetAttrs(terminal.Attr(v)) }, nil
	case engine.PropOpacity:
		return func(s *engine.VisualStyle) { s.SetOpacity(math.Float64frombits(v)) }, nil
	}
	return nil, fmt.Errorf("%w: style property %#x value %#x", engine.ErrInvalidArgument, prop, v)
}

// SetThemeProp sets one property of a theme's global style. A negative kind
// targets the global style; otherwise the override for that node kind.
func SetThemeProp(theme uint32, kind int32, prop uint8, value uint64) int32 {
	return call("set theme prop", func(e *engine.Engine) error {
		edit, err := propEdit(prop, value)
		if err != nil {
			return err
		}
		if kind < 0 {
			return e.EditTheme(engine.ThemeID(theme), edit)
		}
		return e.EditThemeOverride(engine.ThemeID(theme), engine.Kind(kind), edit)
	})
}

func BindTheme(node, theme uint32) int32 {
	return call("bind theme", func(e *engine.Engine) error {
		return e.BindTheme(engine.NodeID(node), engine.ThemeID(theme))
	})
}

func UnbindTheme(node uint32) int32 {
	return call("unbind theme", func(e *engine.Engine) error {
		return e.UnbindTheme(engine.NodeID(node))
	})
}
