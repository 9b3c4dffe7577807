package flex

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownNode = errors.New("unknown layout node")
	ErrHasParent   = errors.New("layout node already has a parent")
	ErrNotChild    = errors.New("layout node is not a child of parent")
	ErrCycle       = errors.New("layout node would become its own ancestor")
	ErrInvalid     = errors.New("invalid layout style")
)

func invalid(field string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, field)
}

// NodeID identifies a layout node; 0 is never assigned
type NodeID uint32

// Size is a width/height pair; NaN marks an undefined axis
type Size struct {
	Width, Height float64
}

// Undefined is a size with both axes unknown
var Undefined = Size{Width: math.NaN(), Height: math.NaN()}

// MeasureFunc sizes a leaf's content. known holds axes already fixed by the
// parent (NaN otherwise); available bounds the content box (NaN = unbounded).
type MeasureFunc func(known, available Size) Size

// Layout is a node's computed border box, relative to its parent's border box
type Layout struct {
	X, Y          float64
	Width, Height float64
	Border        EdgeValues
	Padding       EdgeValues
}

// ContentBox returns the box inside border and padding, relative to the node
func (l Layout) ContentBox() (x, y, w, h float64) {
	x = l.Border.Left + l.Padding.Left
	y = l.Border.Top + l.Padding.Top
	w = math.Max(0, l.Width-x-l.Border.Right-l.Padding.Right)
	h = math.Max(0, l.Height-y-l.Border.Bottom-l.Padding.Bottom)
	return
}

type cacheEntry struct {
	valid                 bool
	avail, forced, parent Size
	size                  Size
}

func (c *cacheEntry) match(avail, forced, parent Size) bool {
	return c.valid && sizeEq(c.avail, avail) && sizeEq(c.forced, forced) && sizeEq(c.parent, parent)
}

type node struct {
	style    Style
	parent   NodeID
	children []NodeID
	measure  MeasureFunc

	layout  Layout
	content Size

	dirty      bool
	sizing     [sizingSlots]cacheEntry
	sizingNext int
	placing    cacheEntry
}

// sizingSlots bounds cached measure-only results per node; a parent measures a
// child with a few distinct constraint sets per pass
const sizingSlots = 4

func (n *node) invalidate() {
	n.dirty = true
	for i := range n.sizing {
		n.sizing[i].valid = false
	}
	n.placing.valid = false
}

// Tree owns layout nodes
type Tree struct {
	nodes map[NodeID]*node
	next  NodeID
}

// NewTree creates an empty layout tree
func NewTree() *Tree {
	return &Tree{nodes: make(map[NodeID]*node)}
}

// NewNode adds a detached node with the given style
func (t *Tree) NewNode(style Style) NodeID {
	t.next++
	t.nodes[t.next] = &node{style: style, dirty: true}
	return t.next
}

// Len returns the number of live nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Contains reports whether id is live
func (t *Tree) Contains(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

func (t *Tree) get(id NodeID) (*node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return n, nil
}

// Remove detaches id from its parent, orphans its children and deletes it
func (t *Tree) Remove(id NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.parent != 0 {
		if p, ok := t.nodes[n.parent]; ok {
			p.children = without(p.children, id)
			t.markDirty(p)
		}
	}
	for _, c := range n.children {
		if cn, ok := t.nodes[c]; ok {
			cn.parent = 0
			t.markDirty(cn)
		}
	}
	delete(t.nodes, id)
	return nil
}

// Style returns a copy of the node's style record
func (t *Tree) Style(id NodeID) (Style, error) {
	n, err := t.get(id)
	if err != nil {
		return Style{}, err
	}
	return n.style, nil
}

// SetStyle replaces the node's style record. Callers changing a single
// property should read with Style, modify, then write back.
func (t *Tree) SetStyle(id NodeID, style Style) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if err := style.Validate(); err != nil {
		return err
	}
	n.style = style
	t.markDirty(n)
	return nil
}

// SetMeasure installs a content measure for a leaf; nil removes it
func (t *Tree) SetMeasure(id NodeID, fn MeasureFunc) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	n.measure = fn
	t.markDirty(n)
	return nil
}

// Parent returns the node's parent, 0 when detached
func (t *Tree) Parent(id NodeID) (NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return 0, err
	}
	return n.parent, nil
}

// Children returns a copy of the node's child list
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	return append([]NodeID(nil), n.children...), nil
}

// AddChild appends child to parent
func (t *Tree) AddChild(parent, child NodeID) error {
	p, err := t.get(parent)
	if err != nil {
		return err
	}
	return t.InsertChild(parent, child, len(p.children))
}

// InsertChild inserts child at index, clamped to [0, len]
func (t *Tree) InsertChild(parent, child NodeID, index int) error {
	p, err := t.get(parent)
	if err != nil {
		return err
	}
	c, err := t.get(child)
	if err != nil {
		return err
	}
	if c.parent != 0 {
		return ErrHasParent
	}
	for a := parent; a != 0; {
		if a == child {
			return ErrCycle
		}
		an, ok := t.nodes[a]
		if !ok {
			break
		}
		a = an.parent
	}

	if index < 0 {
		index = 0
	}
	if index > len(p.children) {
		index = len(p.children)
	}
	p.children = append(p.children, 0)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
	c.parent = parent
	t.markDirty(p)
	return nil
}

// RemoveChild detaches child from parent
func (t *Tree) RemoveChild(parent, child NodeID) error {
	p, err := t.get(parent)
	if err != nil {
		return err
	}
	c, err := t.get(child)
	if err != nil {
		return err
	}
	if c.parent != parent {
		return ErrNotChild
	}
	p.children = without(p.children, child)
	c.parent = 0
	t.markDirty(p)
	t.markDirty(c)
	return nil
}

// SetChildren replaces parent's child list, detaching previous children.
// Every listed child must be live and either detached or already under parent.
func (t *Tree) SetChildren(parent NodeID, children []NodeID) error {
	p, err := t.get(parent)
	if err != nil {
		return err
	}
	for _, c := range children {
		cn, err := t.get(c)
		if err != nil {
			return err
		}
		if cn.parent != 0 && cn.parent != parent {
			return ErrHasParent
		}
	}
	for _, c := range p.children {
		if cn, ok := t.nodes[c]; ok {
			cn.parent = 0
		}
	}
	p.children = append(p.children[:0:0], children...)
	for _, c := range children {
		t.nodes[c].parent = parent
	}
	t.markDirty(p)
	return nil
}

// MarkDirty invalidates cached geometry of id and its ancestors
func (t *Tree) MarkDirty(id NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	t.markDirty(n)
	return nil
}

func (t *Tree) markDirty(n *node) {
	for n != nil {
		n.invalidate()
		if n.parent == 0 {
			return
		}
		n = t.nodes[n.parent]
	}
}

// Dirty reports whether id needs layout
func (t *Tree) Dirty(id NodeID) bool {
	n, ok := t.nodes[id]
	return ok && n.dirty
}

// Layout returns the node's last computed box
func (t *Tree) Layout(id NodeID) (Layout, error) {
	n, err := t.get(id)
	if err != nil {
		return Layout{}, err
	}
	return n.layout, nil
}

// ContentSize returns the extent of the node's children measured from its
// content box origin, as of the last layout
func (t *Tree) ContentSize(id NodeID) (Size, error) {
	n, err := t.get(id)
	if err != nil {
		return Size{}, err
	}
	return n.content, nil
}

func without(ids []NodeID, id NodeID) []NodeID {
	out := ids[:0]
	for _, c := range ids {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}

func sizeEq(a, b Size) bool {
	return floatEq(a.Width, b.Width) && floatEq(a.Height, b.Height)
}

func floatEq(a, b float64) bool {
	if undefined(a) || undefined(b) {
		return undefined(a) && undefined(b)
	}
	return a == b
}
