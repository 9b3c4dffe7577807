package engine

import (
	"fmt"

	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

type theme struct {
	style     VisualStyle
	overrides map[Kind]*VisualStyle
	builtin   bool
}

func newTheme() *theme {
	return &theme{style: defaultStyle(), overrides: make(map[Kind]*VisualStyle)}
}

func darkTheme() *theme {
	t := newTheme()
	t.builtin = true
	t.style.SetFg(terminal.RGB(200, 200, 200))
	t.style.SetBg(terminal.RGB(20, 20, 30))
	t.style.SetBorderColor(terminal.RGB(60, 80, 100))

	in := defaultStyle()
	in.SetBg(terminal.RGB(30, 30, 50))
	t.overrides[KindInput] = &in
	ta := in
	t.overrides[KindTextArea] = &ta

	sel := defaultStyle()
	sel.SetFg(terminal.RGB(80, 200, 80))
	t.overrides[KindSelect] = &sel
	return t
}

func lightTheme() *theme {
	t := newTheme()
	t.builtin = true
	t.style.SetFg(terminal.RGB(30, 30, 40))
	t.style.SetBg(terminal.RGB(240, 240, 235))
	t.style.SetBorderColor(terminal.RGB(140, 150, 160))

	in := defaultStyle()
	in.SetBg(terminal.RGB(255, 255, 255))
	t.overrides[KindInput] = &in
	ta := in
	t.overrides[KindTextArea] = &ta

	sel := defaultStyle()
	sel.SetFg(terminal.RGB(40, 120, 40))
	t.overrides[KindSelect] = &sel
	return t
}

func (e *Engine) theme(id ThemeID) (*theme, error) {
	t, ok := e.themes[id]
	if !ok {
		return nil, fmt.Errorf("theme %d: %w", id, ErrInvalidHandle)
	}
	return t, nil
}

// themeFor returns the theme bound to n or its nearest bound ancestor
func (e *Engine) themeFor(n *node) *theme {
	for n != nil {
		if id, ok := e.bindings[n.id]; ok {
			return e.themes[id]
		}
		n = e.nodes[n.parent]
	}
	return nil
}

// CreateTheme allocates an empty theme
func (e *Engine) CreateTheme() ThemeID {
	e.nextTheme++
	e.themes[e.nextTheme] = newTheme()
	return e.nextTheme
}

// DestroyTheme frees a theme and drops its bindings. Built-in themes
// cannot be destroyed.
func (e *Engine) DestroyTheme(id ThemeID) error {
	t, err := e.theme(id)
	if err != nil {
		return err
	}
	if t.builtin {
		return fmt.Errorf("destroy built-in theme %d: %w", id, ErrInvalidArgument)
	}
	for nid, tid := range e.bindings {
		if tid == id {
			delete(e.bindings, nid)
			if n, ok := e.nodes[nid]; ok {
				e.markSubtreeDirty(n)
			}
		}
	}
	delete(e.themes, id)
	return nil
}

// EditTheme applies fn to the theme's global style. The edit is rejected
// as a whole if it leaves any field out of range.
func (e *Engine) EditTheme(id ThemeID, fn func(*VisualStyle)) error {
	t, err := e.theme(id)
	if err != nil {
		return err
	}
	next := t.style
	fn(&next)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("theme %d: %w", id, err)
	}
	t.style = next
	e.themeChanged(id)
	return nil
}

// EditThemeOverride applies fn to the theme's override for nodes of kind
func (e *Engine) EditThemeOverride(id ThemeID, kind Kind, fn func(*VisualStyle)) error {
	t, err := e.theme(id)
	if err != nil {
		return err
	}
	if !kind.Valid() {
		return fmt.Errorf("theme override kind %d: %w", kind, ErrInvalidArgument)
	}
	next := defaultStyle()
	if ov := t.overrides[kind]; ov != nil {
		next = *ov
	}
	fn(&next)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("theme %d %s override: %w", id, kind, err)
	}
	t.overrides[kind] = &next
	e.themeChanged(id)
	return nil
}

// ThemeStyle returns the theme's global style
func (e *Engine) ThemeStyle(id ThemeID) (VisualStyle, error) {
	t, err := e.theme(id)
	if err != nil {
		return VisualStyle{}, err
	}
	return t.style, nil
}

// ThemeOverride returns the override for kind; ok is false when none is set
func (e *Engine) ThemeOverride(id ThemeID, kind Kind) (style VisualStyle, ok bool, err error) {
	t, err := e.theme(id)
	if err != nil {
		return VisualStyle{}, false, err
	}
	if ov := t.overrides[kind]; ov != nil {
		return *ov, true, nil
	}
	return VisualStyle{}, false, nil
}

// BindTheme makes theme the cascade source for node and its descendants
func (e *Engine) BindTheme(id NodeID, tid ThemeID) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	if _, err := e.theme(tid); err != nil {
		return err
	}
	e.bindings[id] = tid
	e.markSubtreeDirty(n)
	return nil
}

// UnbindTheme removes the node's own binding; ancestors' bindings still apply
func (e *Engine) UnbindTheme(id NodeID) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	if _, ok := e.bindings[id]; ok {
		delete(e.bindings, id)
		e.markSubtreeDirty(n)
	}
	return nil
}

// BoundTheme returns the theme bound directly to the node, 0 if none
func (e *Engine) BoundTheme(id NodeID) (ThemeID, error) {
	if _, err := e.node(id); err != nil {
		return 0, err
	}
	return e.bindings[id], nil
}

func (e *Engine) themeChanged(id ThemeID) {
	for nid, tid := range e.bindings {
		if tid != id {
			continue
		}
		if n, ok := e.nodes[nid]; ok {
			e.markSubtreeDirty(n)
		}
	}
}

// borderWidth is the layout border a resolved style needs
func borderWidth(s VisualStyle) float64 {
	if s.Border == render.BorderNone {
		return 0
	}
	return 1
}
