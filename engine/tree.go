package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/span"
)

type node struct {
	id       NodeID
	kind     Kind
	parent   NodeID
	children []NodeID
	layout   flex.NodeID

	style     VisualStyle
	effective VisualStyle

	content string
	mode    span.Mode
	lang    string
	glyphs  []render.Glyph
	shaped  bool
	wrap    render.WrapMode

	dirty     bool
	focusable bool
	visible   bool

	// Visual-only displacement written by animation; layout never reads it
	offsetX, offsetY float64

	// Absolute layout box, and its on-screen placement after scroll and
	// render offsets, as of the last render
	rect   render.Rect
	screen render.Rect
	inner  render.Rect
	clip   render.Rect
	placed bool

	field  *textField
	editor *editor
	list   *optionList
	scroll *scrollState
}

func (e *Engine) node(id NodeID) (*node, error) {
	n, ok := e.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrInvalidHandle)
	}
	return n, nil
}

func (e *Engine) nodeOfKind(id NodeID, kinds ...Kind) (*node, error) {
	n, err := e.node(id)
	if err != nil {
		return nil, err
	}
	for _, k := range kinds {
		if n.kind == k {
			return n, nil
		}
	}
	return nil, fmt.Errorf("node %d is %s: %w", id, n.kind, ErrTypeMismatch)
}

// markDirty flags n and every ancestor
func (e *Engine) markDirty(n *node) {
	for n != nil {
		n.dirty = true
		n = e.nodes[n.parent]
	}
}

func (e *Engine) markSubtreeDirty(n *node) {
	e.walk(n, func(c *node) bool {
		c.dirty = true
		return true
	})
	e.markDirty(n)
}

// walk visits n and its descendants depth-first in child order; returning
// false from fn skips the children of that node
func (e *Engine) walk(n *node, fn func(*node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		if cn, ok := e.nodes[c]; ok {
			e.walk(cn, fn)
		}
	}
}

// --- Allocation ---

// CreateNode allocates a detached node of the given kind
func (e *Engine) CreateNode(kind Kind) (NodeID, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if !kind.Valid() {
		return 0, fmt.Errorf("node kind %d: %w", kind, ErrInvalidArgument)
	}

	e.nextNode++
	n := &node{
		id:      e.nextNode,
		kind:    kind,
		style:   defaultStyle(),
		visible: true,
		dirty:   true,
	}
	ls := flex.DefaultStyle()

	switch kind {
	case KindText:
		n.wrap = render.WrapWord
	case KindInput:
		n.field = newTextField("")
		n.focusable = true
	case KindTextArea:
		n.editor = newEditor("")
		n.focusable = true
	case KindSelect:
		n.list = newOptionList(nil)
		n.focusable = true
	case KindScroll:
		n.scroll = &scrollState{}
		n.focusable = true
		ls.Overflow = flex.OverflowScroll
	}

	n.layout = e.layout.NewNode(ls)
	if kind != KindContainer && kind != KindScroll {
		id := n.id
		e.layout.SetMeasure(n.layout, func(known, avail flex.Size) flex.Size {
			return e.measure(e.nodes[id], known, avail)
		})
	}
	e.nodes[n.id] = n
	return n.id, nil
}

// DestroyNode frees one node. Its children become detached roots; its
// animations are cancelled and its theme binding dropped.
func (e *Engine) DestroyNode(id NodeID) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	e.destroy(n)
	return nil
}

func (e *Engine) destroy(n *node) {
	if p, ok := e.nodes[n.parent]; ok {
		p.children = withoutNode(p.children, n.id)
		e.markDirty(p)
	}
	for _, c := range n.children {
		if cn, ok := e.nodes[c]; ok {
			cn.parent = 0
			e.markSubtreeDirty(cn)
		}
	}

	e.cancelNodeAnimations(n.id)
	delete(e.bindings, n.id)
	if e.root == n.id {
		e.root = 0
	}
	if e.focus == n.id {
		e.focus = 0
	}
	e.layout.Remove(n.layout)
	delete(e.nodes, n.id)
}

// DestroySubtree frees id and all its descendants, children before parents
func (e *Engine) DestroySubtree(id NodeID) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	var order []*node
	var post func(*node)
	post = func(n *node) {
		for _, c := range n.children {
			if cn, ok := e.nodes[c]; ok {
				post(cn)
			}
		}
		order = append(order, n)
	}
	post(n)
	for _, d := range order {
		e.destroy(d)
	}
	return nil
}

// --- Structure ---

// SetRoot selects the node laid out against the full terminal and painted
func (e *Engine) SetRoot(id NodeID) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	e.root = id
	e.fullRepaint = true
	e.markSubtreeDirty(n)
	return nil
}

// Root returns the root node, 0 when unset
func (e *Engine) Root() NodeID {
	return e.root
}

// AppendChild adds child as the last child of parent
func (e *Engine) AppendChild(parent, child NodeID) error {
	p, err := e.node(parent)
	if err != nil {
		return err
	}
	return e.InsertChild(parent, child, len(p.children))
}

// InsertChild places child at index under parent, clamping index to the
// end. A child that already has a parent is detached first, so this also
// reparents and reorders.
func (e *Engine) InsertChild(parent, child NodeID, index int) error {
	p, err := e.node(parent)
	if err != nil {
		return err
	}
	c, err := e.node(child)
	if err != nil {
		return err
	}
	if index < 0 {
		return fmt.Errorf("insert index %d: %w", index, ErrInvalidArgument)
	}
	for a := p; a != nil; a = e.nodes[a.parent] {
		if a.id == child {
			return fmt.Errorf("insert %d under %d would create a cycle: %w", child, parent, ErrInvalidArgument)
		}
	}

	if old, ok := e.nodes[c.parent]; ok {
		old.children = withoutNode(old.children, child)
		e.layout.RemoveChild(old.layout, c.layout)
		e.markDirty(old)
	}

	index = min(index, len(p.children))
	p.children = append(p.children, 0)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
	c.parent = parent
	if err := e.layout.InsertChild(p.layout, c.layout, index); err != nil {
		return fmt.Errorf("layout insert: %w", err)
	}
	e.markSubtreeDirty(c)
	return nil
}

// RemoveChild detaches child from parent without destroying it
func (e *Engine) RemoveChild(parent, child NodeID) error {
	p, err := e.node(parent)
	if err != nil {
		return err
	}
	c, err := e.node(child)
	if err != nil {
		return err
	}
	if c.parent != parent {
		return fmt.Errorf("node %d under %d: %w", child, parent, ErrNotAChild)
	}
	p.children = withoutNode(p.children, child)
	c.parent = 0
	e.layout.RemoveChild(p.layout, c.layout)
	e.markDirty(p)
	e.markSubtreeDirty(c)
	return nil
}

// Parent returns the node's parent, 0 when detached
func (e *Engine) Parent(id NodeID) (NodeID, error) {
	n, err := e.node(id)
	if err != nil {
		return 0, err
	}
	return n.parent, nil
}

// ChildCount returns the number of children
func (e *Engine) ChildCount(id NodeID) (int, error) {
	n, err := e.node(id)
	if err != nil {
		return 0, err
	}
	return len(n.children), nil
}

// ChildAt returns the child at index
func (e *Engine) ChildAt(id NodeID, index int) (NodeID, error) {
	n, err := e.node(id)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(n.children) {
		return 0, fmt.Errorf("child index %d of %d: %w", index, len(n.children), ErrInvalidArgument)
	}
	return n.children[index], nil
}

// Children returns a copy of the child list
func (e *Engine) Children(id NodeID) ([]NodeID, error) {
	n, err := e.node(id)
	if err != nil {
		return nil, err
	}
	return append([]NodeID(nil), n.children...), nil
}

// NodeCount returns the number of live nodes
func (e *Engine) NodeCount() int {
	return len(e.nodes)
}

// IsValid reports whether id names a live node
func (e *Engine) IsValid(id NodeID) bool {
	_, ok := e.nodes[id]
	return ok
}

// Kind returns the node's variant
func (e *Engine) Kind(id NodeID) (Kind, error) {
	n, err := e.node(id)
	if err != nil {
		return 0, err
	}
	return n.kind, nil
}

// Dirty reports whether the node changed since the last render
func (e *Engine) Dirty(id NodeID) (bool, error) {
	n, err := e.node(id)
	if err != nil {
		return false, err
	}
	return n.dirty, nil
}

// --- Content and flags ---

// SetContent replaces the node's text. Inputs take it as their value,
// selects split it into one option per line.
func (e *Engine) SetContent(id NodeID, text string) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("content of node %d: malformed UTF-8: %w", id, ErrInvalidArgument)
	}

	switch n.kind {
	case KindInput:
		n.field.setValue(strings.ReplaceAll(text, "\n", " "))
	case KindTextArea:
		n.editor.setValue(text)
	case KindSelect:
		var opts []string
		if text != "" {
			opts = strings.Split(text, "\n")
		}
		n.list.setOptions(opts)
	default:
		n.content = text
		n.shaped = false
	}
	e.contentChanged(n)
	return nil
}

// Content returns the node's current text
func (e *Engine) Content(id NodeID) (string, error) {
	n, err := e.node(id)
	if err != nil {
		return "", err
	}
	switch n.kind {
	case KindInput:
		return n.field.value(), nil
	case KindTextArea:
		return n.editor.value(), nil
	case KindSelect:
		return strings.Join(n.list.options, "\n"), nil
	}
	return n.content, nil
}

// SetContentMode selects how a text node interprets its content; lang
// names the grammar for code mode
func (e *Engine) SetContentMode(id NodeID, mode span.Mode, lang string) error {
	n, err := e.nodeOfKind(id, KindText)
	if err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("content mode %d: %w", mode, ErrInvalidArgument)
	}
	if !utf8.ValidString(lang) {
		return fmt.Errorf("content language of node %d: malformed UTF-8: %w", id, ErrInvalidArgument)
	}
	n.mode, n.lang = mode, lang
	n.shaped = false
	e.contentChanged(n)
	return nil
}

// SetWrap selects line breaking for text and textarea nodes
func (e *Engine) SetWrap(id NodeID, mode render.WrapMode) error {
	n, err := e.nodeOfKind(id, KindText, KindTextArea)
	if err != nil {
		return err
	}
	if !mode.Valid() {
		return fmt.Errorf("wrap mode %d: %w", mode, ErrInvalidArgument)
	}
	n.wrap = mode
	e.contentChanged(n)
	return nil
}

// SetFocusable controls whether focus traversal and focus requests accept
// the node. Clearing it on the focused node drops focus.
func (e *Engine) SetFocusable(id NodeID, focusable bool) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	n.focusable = focusable
	if !focusable && e.focus == id {
		e.setFocus(0)
	}
	return nil
}

// SetVisible hides or shows the node and its subtree. Hidden nodes keep
// their layout space but are neither painted nor hit.
func (e *Engine) SetVisible(id NodeID, visible bool) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	if n.visible != visible {
		n.visible = visible
		e.markDirty(n)
	}
	return nil
}

// SetRenderOffset displaces the painted node and its subtree without
// affecting layout
func (e *Engine) SetRenderOffset(id NodeID, x, y float64) error {
	n, err := e.node(id)
	if err != nil {
		return err
	}
	if !finite(x) || !finite(y) {
		return fmt.Errorf("render offset: %w", ErrInvalidArgument)
	}
	n.offsetX, n.offsetY = x, y
	e.markDirty(n)
	return nil
}

// RenderOffset returns the node's visual displacement
func (e *Engine) RenderOffset(id NodeID) (x, y float64, err error) {
	n, err := e.node(id)
	if err != nil {
		return 0, 0, err
	}
	return n.offsetX, n.offsetY, nil
}

func (e *Engine) contentChanged(n *node) {
	e.layout.MarkDirty(n.layout)
	e.markDirty(n)
}

func withoutNode(ids []NodeID, id NodeID) []NodeID {
	out := ids[:0]
	for _, c := range ids {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}
