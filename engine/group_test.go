package engine

import (
	"testing"
	"time"
)

func TestGroupStaggersMembers(t *testing.T) {
	h := newHarness(t, 20, 5)
	root := h.screen(t)
	n1 := h.child(t, root, KindText)
	n2 := h.child(t, root, KindText)
	h.render(t)

	a, _ := h.e.PrepareAnimation(n1, AnimOpacity, FloatValue(0), 100*time.Millisecond, EaseLinear)
	b, _ := h.e.PrepareAnimation(n2, AnimOpacity, FloatValue(0), 100*time.Millisecond, EaseLinear)
	g := h.e.CreateGroup()
	if err := h.e.GroupAdd(g, a, 0); err != nil {
		t.Fatal(err)
	}
	if err := h.e.GroupAdd(g, b, 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if got := h.state(t, b); got != AnimHeld {
		t.Fatalf("member state = %s, want held", got)
	}

	if err := h.e.GroupStart(g); err != nil {
		t.Fatal(err)
	}
	if got := h.state(t, a); got != AnimRunning {
		t.Errorf("zero-delay member = %s, want running", got)
	}
	if got := h.state(t, b); got != AnimHeld {
		t.Errorf("delayed member = %s, want held", got)
	}

	h.step(t, 50*time.Millisecond)
	if got := h.opacity(t, n1); got != 0.5 {
		t.Errorf("first member opacity = %v, want 0.5", got)
	}
	if got := h.opacity(t, n2); got != 1 {
		t.Errorf("second member moved before its delay: %v", got)
	}
	if got := h.state(t, b); got != AnimRunning {
		t.Errorf("delayed member after delay = %s, want running", got)
	}

	h.step(t, 50*time.Millisecond)
	if got := h.opacity(t, n2); got != 0.5 {
		t.Errorf("second member opacity = %v, want 0.5", got)
	}
	if s, _ := h.e.GroupState(g); s != GroupRunning {
		t.Errorf("group = %s, want running", s)
	}

	h.step(t, 50*time.Millisecond)
	if s, _ := h.e.GroupState(g); s != GroupDone {
		t.Errorf("group = %s, want done", s)
	}
	if got := h.opacity(t, n2); got != 0 {
		t.Errorf("second member final opacity = %v, want 0", got)
	}
}

func TestGroupCancelStopsUnstartedMembers(t *testing.T) {
	h := newHarness(t, 20, 5)
	root := h.screen(t)
	id := h.child(t, root, KindText)
	h.render(t)

	a, _ := h.e.PrepareAnimation(id, AnimOffsetX, FloatValue(4), time.Second, EaseLinear)
	b, _ := h.e.PrepareAnimation(id, AnimOffsetY, FloatValue(4), time.Second, EaseLinear)
	g := h.e.CreateGroup()
	h.e.GroupAdd(g, a, 0)
	h.e.GroupAdd(g, b, time.Hour)
	h.e.GroupStart(g)
	h.step(t, 500*time.Millisecond)

	if err := h.e.GroupCancel(g); err != nil {
		t.Fatal(err)
	}
	if s, _ := h.e.GroupState(g); s != GroupCancelled {
		t.Errorf("group = %s, want cancelled", s)
	}
	for _, aid := range []AnimID{a, b} {
		if got := h.state(t, aid); got != AnimDone {
			t.Errorf("member %d = %s, want done", aid, got)
		}
	}
	if x, y, _ := h.e.RenderOffset(id); x != 2 || y != 0 {
		t.Errorf("offset = (%v,%v), want (2,0)", x, y)
	}
}

func TestGroupRejects(t *testing.T) {
	h := newHarness(t, 20, 5)
	root := h.screen(t)
	id := h.child(t, root, KindText)

	a, _ := h.e.PrepareAnimation(id, AnimOpacity, FloatValue(0), time.Second, EaseLinear)
	b, _ := h.e.PrepareAnimation(id, AnimOffsetX, FloatValue(1), time.Second, EaseLinear)
	g := h.e.CreateGroup()

	wantErr(t, h.e.GroupAdd(g, a, -time.Second), ErrInvalidArgument)
	wantErr(t, h.e.GroupAdd(999, a, 0), ErrInvalidHandle)
	if err := h.e.GroupAdd(g, a, 0); err != nil {
		t.Fatal(err)
	}
	g2 := h.e.CreateGroup()
	wantErr(t, h.e.GroupAdd(g2, a, 0), ErrInvalidArgument) // already in g
	wantErr(t, h.e.Chain(b, a), ErrInvalidArgument)

	h.e.GroupStart(g)
	wantErr(t, h.e.GroupStart(g), ErrInvalidArgument)
	wantErr(t, h.e.GroupAdd(g, b, 0), ErrInvalidArgument)
}

func TestEmptyGroupCompletesOnStart(t *testing.T) {
	h := newHarness(t, 20, 5)
	g := h.e.CreateGroup()
	if err := h.e.GroupStart(g); err != nil {
		t.Fatal(err)
	}
	if s, _ := h.e.GroupState(g); s != GroupDone {
		t.Errorf("empty group = %s, want done", s)
	}
}
