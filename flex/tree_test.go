package flex

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTreeStructure(t *testing.T) {
	tr := NewTree()
	p := tr.NewNode(DefaultStyle())
	a := tr.NewNode(DefaultStyle())
	b := tr.NewNode(DefaultStyle())
	c := tr.NewNode(DefaultStyle())

	tr.AddChild(p, a)
	tr.AddChild(p, b)
	if err := tr.InsertChild(p, c, 99); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	got, _ := tr.Children(p)
	if diff := cmp.Diff([]NodeID{a, b, c}, got); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}

	if err := tr.AddChild(p, a); !errors.Is(err, ErrHasParent) {
		t.Errorf("AddChild(existing) = %v, want ErrHasParent", err)
	}
	if err := tr.AddChild(a, p); !errors.Is(err, ErrCycle) {
		t.Errorf("AddChild(cycle) = %v, want ErrCycle", err)
	}
	if err := tr.RemoveChild(a, b); !errors.Is(err, ErrNotChild) {
		t.Errorf("RemoveChild(non-child) = %v, want ErrNotChild", err)
	}

	if err := tr.RemoveChild(p, b); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if parent, _ := tr.Parent(b); parent != 0 {
		t.Errorf("Parent(b) = %d after removal", parent)
	}

	if err := tr.Remove(p); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if parent, _ := tr.Parent(a); parent != 0 {
		t.Error("child not orphaned by Remove")
	}
	if _, err := tr.Style(p); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Style(removed) = %v, want ErrUnknownNode", err)
	}
	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
}

func TestSetChildren(t *testing.T) {
	tr := NewTree()
	p := tr.NewNode(DefaultStyle())
	a := tr.NewNode(DefaultStyle())
	b := tr.NewNode(DefaultStyle())
	tr.AddChild(p, a)

	if err := tr.SetChildren(p, []NodeID{b, a}); err != nil {
		t.Fatalf("SetChildren: %v", err)
	}
	got, _ := tr.Children(p)
	if diff := cmp.Diff([]NodeID{b, a}, got); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}

	if err := tr.SetChildren(p, nil); err != nil {
		t.Fatalf("SetChildren(nil): %v", err)
	}
	if parent, _ := tr.Parent(a); parent != 0 {
		t.Error("previous child still attached")
	}
}

func TestContentBox(t *testing.T) {
	l := Layout{
		Width: 10, Height: 6,
		Border:  EdgeValues{1, 1, 1, 1},
		Padding: EdgeValues{0, 1, 0, 1},
	}
	x, y, w, h := l.ContentBox()
	if x != 2 || y != 1 || w != 6 || h != 4 {
		t.Errorf("ContentBox = (%v,%v,%v,%v), want (2,1,6,4)", x, y, w, h)
	}
}
