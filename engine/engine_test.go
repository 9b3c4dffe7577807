package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/terminal"
)

type harness struct {
	e     *Engine
	term  *terminal.Headless
	clock *MockClock
}

func newHarness(t *testing.T, w, h int) *harness {
	t.Helper()
	term := terminal.NewHeadless(w, h)
	clock := NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	opts := DefaultOptions()
	opts.Backend = term
	opts.Clock = clock
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return &harness{e: e, term: term, clock: clock}
}

func (h *harness) node(t *testing.T, kind Kind) NodeID {
	t.Helper()
	id, err := h.e.CreateNode(kind)
	if err != nil {
		t.Fatalf("CreateNode(%s): %v", kind, err)
	}
	return id
}

func (h *harness) child(t *testing.T, parent NodeID, kind Kind) NodeID {
	t.Helper()
	id := h.node(t, kind)
	if err := h.e.AppendChild(parent, id); err != nil {
		t.Fatalf("AppendChild(%d, %d): %v", parent, id, err)
	}
	return id
}

// screen builds a full-size container root
func (h *harness) screen(t *testing.T) NodeID {
	t.Helper()
	root := h.node(t, KindContainer)
	if err := h.e.SetWidth(root, flex.Percent(100)); err != nil {
		t.Fatal(err)
	}
	if err := h.e.SetHeight(root, flex.Percent(100)); err != nil {
		t.Fatal(err)
	}
	if err := h.e.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	return root
}

func (h *harness) render(t *testing.T) {
	t.Helper()
	if err := h.e.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func (h *harness) drain() []Event {
	var out []Event
	for {
		ev, ok := h.e.PollEvent()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

func TestNewDefaults(t *testing.T) {
	e, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if w, h := e.Size(); w != 80 || h != 24 {
		t.Errorf("Size = %dx%d, want 80x24", w, h)
	}
	for _, id := range []ThemeID{ThemeDark, ThemeLight} {
		if _, err := e.ThemeStyle(id); err != nil {
			t.Errorf("built-in theme %d: %v", id, err)
		}
	}
}

func TestCloseInvalidatesEverything(t *testing.T) {
	h := newHarness(t, 20, 5)
	root := h.screen(t)

	if err := h.e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.e.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if h.term.Active() {
		t.Error("backend still active after Close")
	}
	if h.e.IsValid(root) {
		t.Error("root still valid after Close")
	}
	wantErr(t, h.e.Render(), ErrClosed)
	_, err := h.e.CreateNode(KindText)
	wantErr(t, err, ErrClosed)
	_, err = h.e.ReadInput(0)
	wantErr(t, err, ErrClosed)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{nil, CodeOK},
		{ErrInvalidHandle, CodeInvalidHandle},
		{errors.Join(errors.New("ctx"), ErrTypeMismatch), CodeTypeMismatch},
		{ErrInvalidArgument, CodeInvalidArgument},
		{ErrNoRootSet, CodeNoRootSet},
		{ErrNotAChild, CodeNotAChild},
		{ErrInternalPanic, CodeInternalPanic},
		{ErrClosed, CodeClosed},
		{errors.New("broken pipe"), CodeIO},
	}
	for _, tt := range tests {
		if got := CodeOf(tt.err); got != tt.want {
			t.Errorf("CodeOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
