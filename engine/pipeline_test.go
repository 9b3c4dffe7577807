package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/span"
	"github.com/lixenwraith/termgraph/terminal"
)

func TestRenderHello(t *testing.T) {
	h := newHarness(t, 80, 24)
	root := h.screen(t)
	text := h.child(t, root, KindText)
	h.e.SetContent(text, "Hello")

	h.render(t)
	if got := h.term.Row(0); !strings.HasPrefix(got, "Hello ") {
		t.Errorf("row 0 = %q, want Hello first", got)
	}
	s := h.e.Stats()
	if s.Frame != 1 || s.Skipped {
		t.Errorf("stats = %+v, want first painted frame", s)
	}
	if s.NodesPainted != 2 {
		t.Errorf("NodesPainted = %d, want 2", s.NodesPainted)
	}
	if s.CellsChanged != 80*24 {
		t.Errorf("first frame changed %d cells, want a full repaint", s.CellsChanged)
	}
	for _, ns := range []int64{s.AnimateNs, s.StyleNs, s.LayoutNs, s.PaintNs, s.DiffNs, s.EmitNs} {
		if ns < 0 {
			t.Errorf("negative stage timing in %+v", s)
		}
	}
}

func TestRenderRequiresRoot(t *testing.T) {
	h := newHarness(t, 10, 3)
	wantErr(t, h.e.Render(), ErrNoRootSet)
	if h.term.Frames() != 0 {
		t.Error("frame emitted without root")
	}
}

func TestCleanFrameIsSkipped(t *testing.T) {
	h := newHarness(t, 20, 5)
	root := h.screen(t)
	text := h.child(t, root, KindText)
	h.e.SetContent(text, "static")
	h.render(t)
	frames := h.term.Frames()

	h.render(t)
	if !h.e.Stats().Skipped {
		t.Error("clean frame not skipped")
	}
	if h.term.Frames() != frames {
		t.Error("skipped frame reached the backend")
	}

	// A change emits only the differing cells
	h.e.SetContent(text, "stable")
	h.render(t)
	if got := h.e.Stats().CellsChanged; got != 3 {
		t.Errorf("changed %d cells, want 3", got)
	}
}

func TestInvalidateReemitsEveryCell(t *testing.T) {
	h := newHarness(t, 10, 3)
	h.screen(t)
	h.render(t)

	h.e.Invalidate()
	h.render(t)
	if got := len(h.term.LastFrame()); got != 30 {
		t.Errorf("invalidated frame wrote %d cells, want 30", got)
	}
}

func TestHiddenNodeKeepsSpace(t *testing.T) {
	h := newHarness(t, 10, 3)
	root := h.screen(t)
	a := h.child(t, root, KindText)
	b := h.child(t, root, KindText)
	h.e.SetContent(a, "aaa")
	h.e.SetContent(b, "bbb")
	h.e.SetVisible(a, false)
	h.render(t)

	if got := h.term.Row(0); strings.Contains(got, "a") {
		t.Errorf("hidden node painted: %q", got)
	}
	if got := h.term.Row(1); !strings.HasPrefix(got, "bbb") {
		t.Errorf("row 1 = %q, want sibling in its usual place", got)
	}
	if id, _ := h.e.HitTest(0, 0); id != root {
		t.Errorf("hidden node hit: %d", id)
	}

	h.e.SetDisplay(a, flex.DisplayNone)
	h.render(t)
	if got := h.term.Row(0); !strings.HasPrefix(got, "bbb") {
		t.Errorf("row 0 = %q, want sibling collapsed into place", got)
	}
}

func TestRenderOffsetMovesPaintNotLayout(t *testing.T) {
	h := newHarness(t, 10, 3)
	root := h.screen(t)
	text := h.child(t, root, KindText)
	h.e.SetContent(text, "x")
	h.e.SetRenderOffset(text, 3, 1)
	h.render(t)

	if got := h.term.Cell(3, 1).Rune; got != 'x' {
		t.Errorf("cell (3,1) = %q, want x", got)
	}
	if r, _ := h.e.LayoutRect(text); r.X != 0 || r.Y != 0 {
		t.Errorf("layout moved to (%d,%d)", r.X, r.Y)
	}
	if r, _ := h.e.ScreenRect(text); r.X != 3 || r.Y != 1 {
		t.Errorf("screen rect at (%d,%d), want (3,1)", r.X, r.Y)
	}
}

func TestOpacityBlendsBackground(t *testing.T) {
	h := newHarness(t, 4, 1)
	root := h.screen(t)
	black, white := terminal.RGB(0, 0, 0), terminal.RGB(255, 255, 255)
	h.e.SetBg(root, black)
	child := h.child(t, root, KindContainer)
	h.e.SetHeight(child, flex.Cells(1))
	h.e.SetBg(child, white)
	h.e.SetOpacity(child, 0.5)
	h.render(t)

	bg := h.term.Cell(0, 0).Bg
	if bg == black || bg == white || !bg.IsRGB() {
		t.Errorf("half-transparent bg = %s, want a blend", bg)
	}

	// Opacity multiplies down the tree
	h.e.SetOpacity(root, 0)
	h.render(t)
	if got := h.term.Cell(0, 0).Bg; got != terminal.ColorDefault {
		t.Errorf("transparent subtree painted bg %s", got)
	}
}

func TestMarkdownContent(t *testing.T) {
	h := newHarness(t, 20, 3)
	root := h.screen(t)
	text := h.child(t, root, KindText)
	h.e.SetContent(text, "**hi** there")
	if err := h.e.SetContentMode(text, span.ModeMarkdown, ""); err != nil {
		t.Fatal(err)
	}
	h.render(t)

	if got := h.term.Row(0); !strings.HasPrefix(got, "hi there") {
		t.Errorf("row 0 = %q", got)
	}
	if c := h.term.Cell(0, 0); c.Attrs&terminal.AttrBold == 0 {
		t.Errorf("bold span attrs = %v", c.Attrs)
	}
}

func TestWordWrapInsideBox(t *testing.T) {
	h := newHarness(t, 12, 6)
	root := h.screen(t)
	box := h.child(t, root, KindContainer)
	h.e.SetWidth(box, flex.Cells(8))
	h.e.SetBorder(box, render.BorderSingle)
	text := h.child(t, box, KindText)
	h.e.SetContent(text, "one two three")
	h.render(t)

	rows := []string{"┌──────┐", "│one   │", "│two   │", "│three │", "└──────┘"}
	for y, want := range rows {
		if got := h.term.Row(y); !strings.HasPrefix(got, want) {
			t.Errorf("row %d = %q, want prefix %q", y, got, want)
		}
	}
}

func TestRepairDropsDanglingReferences(t *testing.T) {
	h := newHarness(t, 10, 3)
	root := h.screen(t)
	a := h.child(t, root, KindText)
	h.e.Animate(a, AnimOffsetX, FloatValue(2), 0, EaseLinear)

	// Simulate an interrupted destroy: the record is gone, links remain
	delete(h.e.nodes, a)
	if err := h.e.CheckInvariants(); err == nil {
		t.Fatal("CheckInvariants missed a dangling child")
	}

	if fixed := h.e.Repair(); fixed == 0 {
		t.Error("Repair reported nothing fixed")
	}
	if err := h.e.CheckInvariants(); err != nil {
		t.Errorf("after Repair: %v", err)
	}
	if n := h.e.AnimationCount(); n != 0 {
		t.Errorf("AnimationCount = %d, want 0", n)
	}
	h.render(t)
}

func TestFailedRenderAppliesNothing(t *testing.T) {
	h, id := animHarness(t)
	h.e.SetOpacity(id, 0)
	a, err := h.e.Animate(id, AnimOpacity, FloatValue(1), 100*time.Millisecond, EaseLinear)
	if err != nil {
		t.Fatal(err)
	}
	frame := h.e.Stats().Frame
	reads := h.clock.Reads()

	// A layout tree that no longer knows the root
	h.e.layout = flex.NewTree()
	h.clock.Advance(50 * time.Millisecond)
	wantErr(t, h.e.Render(), ErrInvalidHandle)

	if got := h.opacity(t, id); got != 0 {
		t.Errorf("opacity = %v, want 0", got)
	}
	if got := h.state(t, a); got != AnimRunning {
		t.Errorf("state = %s, want running", got)
	}
	if got := h.e.Stats().Frame; got != frame {
		t.Errorf("Frame = %d, want %d", got, frame)
	}
	if got := h.clock.Reads(); got != reads {
		t.Errorf("clock read %d times during a failed render", got-reads)
	}
}

func TestClockGoingBackwardsIsNoElapsedTime(t *testing.T) {
	h, id := animHarness(t)
	h.e.SetOpacity(id, 0)
	if _, err := h.e.Animate(id, AnimOpacity, FloatValue(1), 100*time.Millisecond, EaseLinear); err != nil {
		t.Fatal(err)
	}
	h.step(t, 50*time.Millisecond)
	h.step(t, -30*time.Millisecond)
	if got := h.opacity(t, id); got != 0.5 {
		t.Errorf("opacity after backwards step = %v, want 0.5", got)
	}
	h.step(t, 25*time.Millisecond)
	if got := h.opacity(t, id); got != 0.75 {
		t.Errorf("opacity = %v, want 0.75", got)
	}
}
