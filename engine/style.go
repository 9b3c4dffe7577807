package engine

import (
	"fmt"
	"math"

	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

// StyleProp is one bit of a VisualStyle explicit-set mask
type StyleProp uint8

const (
	PropFg StyleProp = 1 << iota
	PropBg
	PropBorderColor
	PropBorder
	PropAttrs
	PropOpacity

	propAll = PropFg | PropBg | PropBorderColor | PropBorder | PropAttrs | PropOpacity
)

var styleProps = [...]StyleProp{PropFg, PropBg, PropBorderColor, PropBorder, PropAttrs, PropOpacity}

// VisualStyle is a node's or theme's paint style. Set records which fields
// were written by the owner; unset fields take the theme cascade.
type VisualStyle struct {
	Fg          terminal.Color
	Bg          terminal.Color
	BorderColor terminal.Color
	Border      render.BorderKind
	Attrs       terminal.Attr
	Opacity     float64
	Set         StyleProp
}

// defaultStyle is the raw style of a new node: default colors, fully opaque
func defaultStyle() VisualStyle {
	return VisualStyle{Opacity: 1}
}

func (s *VisualStyle) SetFg(c terminal.Color) {
	s.Fg = c
	s.Set |= PropFg
}

func (s *VisualStyle) SetBg(c terminal.Color) {
	s.Bg = c
	s.Set |= PropBg
}

func (s *VisualStyle) SetBorderColor(c terminal.Color) {
	s.BorderColor = c
	s.Set |= PropBorderColor
}

func (s *VisualStyle) SetBorder(k render.BorderKind) {
	s.Border = k
	s.Set |= PropBorder
}

func (s *VisualStyle) SetAttrs(a terminal.Attr) {
	s.Attrs = a
	s.Set |= PropAttrs
}

func (s *VisualStyle) SetOpacity(v float64) {
	s.Opacity = v
	s.Set |= PropOpacity
}

// Has reports whether p was explicitly set
func (s VisualStyle) Has(p StyleProp) bool {
	return s.Set&p != 0
}

// Validate reports the first field outside its domain
func (s VisualStyle) Validate() error {
	switch {
	case !s.Fg.Valid():
		return fmt.Errorf("%w: fg color %#x", ErrInvalidArgument, uint32(s.Fg))
	case !s.Bg.Valid():
		return fmt.Errorf("%w: bg color %#x", ErrInvalidArgument, uint32(s.Bg))
	case !s.BorderColor.Valid():
		return fmt.Errorf("%w: border color %#x", ErrInvalidArgument, uint32(s.BorderColor))
	case !s.Border.Valid():
		return fmt.Errorf("%w: border kind %d", ErrInvalidArgument, s.Border)
	case !s.Attrs.Valid():
		return fmt.Errorf("%w: attrs %#x", ErrInvalidArgument, uint8(s.Attrs))
	case !validOpacity(s.Opacity):
		return fmt.Errorf("%w: opacity %v", ErrInvalidArgument, s.Opacity)
	}
	return nil
}

func validOpacity(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// copyProp copies the field selected by p from src
func (s *VisualStyle) copyProp(src *VisualStyle, p StyleProp) {
	switch p {
	case PropFg:
		s.Fg = src.Fg
	case PropBg:
		s.Bg = src.Bg
	case PropBorderColor:
		s.BorderColor = src.BorderColor
	case PropBorder:
		s.Border = src.Border
	case PropAttrs:
		s.Attrs = src.Attrs
	case PropOpacity:
		s.Opacity = src.Opacity
	}
}

// --- Node style setters ---

func (e *Engine) editStyle(id NodeID, fn func(*VisualStyle)) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	next := n.style
	fn(&next)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("style of node %d: %w", id, err)
	}
	n.style = next
	e.markDirty(n)
	return nil
}

// SetFg sets the node's explicit foreground
func (e *Engine) SetFg(id NodeID, c terminal.Color) error {
	return e.editStyle(id, func(s *VisualStyle) { s.SetFg(c) })
}

// SetBg sets the node's explicit background
func (e *Engine) SetBg(id NodeID, c terminal.Color) error {
	return e.editStyle(id, func(s *VisualStyle) { s.SetBg(c) })
}

// SetBorderColor sets the node's explicit border color
func (e *Engine) SetBorderColor(id NodeID, c terminal.Color) error {
	return e.editStyle(id, func(s *VisualStyle) { s.SetBorderColor(c) })
}

// SetBorder sets the node's border kind. A visible border reserves one cell
// on each edge at the next layout.
func (e *Engine) SetBorder(id NodeID, k render.BorderKind) error {
	return e.editStyle(id, func(s *VisualStyle) { s.SetBorder(k) })
}

// SetAttrs sets the node's text decoration flags
func (e *Engine) SetAttrs(id NodeID, a terminal.Attr) error {
	return e.editStyle(id, func(s *VisualStyle) { s.SetAttrs(a) })
}

// SetOpacity sets the node's opacity in [0, 1]
func (e *Engine) SetOpacity(id NodeID, v float64) error {
	return e.editStyle(id, func(s *VisualStyle) { s.SetOpacity(v) })
}

// Style returns the node's own style, explicit mask included
func (e *Engine) Style(id NodeID) (VisualStyle, error) {
	n, err := e.node(id)
	if err != nil {
		return VisualStyle{}, err
	}
	return n.style, nil
}

// EffectiveStyle resolves the node's style against the theme cascade now,
// without waiting for a render
func (e *Engine) EffectiveStyle(id NodeID) (VisualStyle, error) {
	n, err := e.node(id)
	if err != nil {
		return VisualStyle{}, err
	}
	return e.resolve(n), nil
}

// resolve applies, per property: the node's explicit value, else the
// nearest bound theme's override for the node's kind, else that theme's
// global value, else the node's stored default
func (e *Engine) resolve(n *node) VisualStyle {
	out := n.style
	th := e.themeFor(n)
	if th == nil {
		return out
	}
	ov := th.overrides[n.kind]
	for _, p := range styleProps {
		switch {
		case n.style.Has(p):
		case ov != nil && ov.Has(p):
			out.copyProp(ov, p)
		case th.style.Has(p):
			out.copyProp(&th.style, p)
		}
	}
	return out
}
