package ffi

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/terminal"
)

func lastError() string {
	buf := make([]byte, 256)
	n := LastError(buf)
	if int(n) > len(buf) {
		n = int32(len(buf))
	}
	return string(buf[:n])
}

func start(t *testing.T, w, h int) *terminal.Headless {
	t.Helper()
	term := terminal.NewHeadless(w, h)
	st := Init(engine.Options{
		Backend:       term,
		Clock:         engine.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		TabNavigation: true,
	})
	if st != StatusOK {
		t.Fatalf("Init = %d: %s", st, lastError())
	}
	t.Cleanup(func() {
		Shutdown()
		ClearError()
	})
	return term
}

func ok(t *testing.T, st int32) {
	t.Helper()
	if st != StatusOK {
		t.Fatalf("status %d: %s", st, lastError())
	}
}

func wantCode(t *testing.T, want engine.ErrorCode) {
	t.Helper()
	if got := engine.ErrorCode(LastErrorCode()); got != want {
		t.Errorf("LastErrorCode = %s, want %s (%s)", got, want, lastError())
	}
}

// screen builds a full-size root container
func screen(t *testing.T) uint32 {
	t.Helper()
	root := CreateNode(uint8(engine.KindContainer))
	if root == 0 {
		t.Fatalf("CreateNode: %s", lastError())
	}
	ok(t, SetWidth(root, uint8(flex.UnitPercent), 100))
	ok(t, SetHeight(root, uint8(flex.UnitPercent), 100))
	ok(t, SetRoot(root))
	return root
}

func child(t *testing.T, parent uint32, kind engine.Kind) uint32 {
	t.Helper()
	id := CreateNode(uint8(kind))
	if id == 0 {
		t.Fatalf("CreateNode(%s): %s", kind, lastError())
	}
	ok(t, AppendChild(parent, id))
	return id
}

func TestCallsBeforeInit(t *testing.T) {
	ClearError()
	if id := CreateNode(uint8(engine.KindText)); id != 0 {
		t.Errorf("CreateNode before Init = %d, want 0", id)
	}
	wantCode(t, engine.CodeClosed)
	if st := Render(); st != StatusError {
		t.Errorf("Render before Init = %d, want %d", st, StatusError)
	}
	if st := Shutdown(); st != StatusError {
		t.Errorf("Shutdown before Init = %d, want %d", st, StatusError)
	}
	ClearError()
}

func TestDoubleInitRejected(t *testing.T) {
	start(t, 10, 4)
	if st := InitHeadless(10, 4); st != StatusError {
		t.Fatalf("second Init = %d, want %d", st, StatusError)
	}
	wantCode(t, engine.CodeInvalidArgument)
	if !Initialized() {
		t.Error("first engine lost")
	}
}

func TestInitRejectsBadTerminalSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int32
	}{
		{"zero width", 0, 4},
		{"negative height", 10, -1},
		{"beyond cell cap", math.MaxInt32, math.MaxInt32},
		{"wide single row", math.MaxInt32, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ClearError()
			if st := InitHeadless(tt.w, tt.h); st != StatusError {
				t.Fatalf("InitHeadless(%d, %d) = %d, want %d", tt.w, tt.h, st, StatusError)
			}
			wantCode(t, engine.CodeInvalidArgument)
			if Initialized() {
				Shutdown()
				t.Fatal("engine initialized with invalid size")
			}
			ClearError()
		})
	}
}

func TestInitConfigErrorsStayInside(t *testing.T) {
	for _, k := range []string{"TERMGRAPH_DRIVER", "TERMGRAPH_DEBUG", "TERMGRAPH_BELL", "TERMGRAPH_BELL_VOLUME"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "termgraph.toml")
	doc := "[terminal]\ndriver = \"headless\"\nwidth = 100000\nheight = 100000\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	ClearError()
	if st := InitConfig([]byte(path)); st != StatusError {
		t.Fatalf("InitConfig = %d, want %d", st, StatusError)
	}
	if msg := lastError(); !strings.Contains(msg, "terminal.width/height") {
		t.Errorf("last error = %q, want the offending key", msg)
	}
	if Initialized() {
		Shutdown()
		t.Fatal("engine initialized from invalid config")
	}
	ClearError()
}

func TestRenderHello(t *testing.T) {
	term := start(t, 20, 3)
	root := screen(t)
	text := child(t, root, engine.KindText)
	ok(t, SetContent(text, []byte("Hello")))
	ok(t, Render())

	if row := term.Row(0); !strings.HasPrefix(row, "Hello") {
		t.Errorf("row 0 = %q, want Hello prefix", row)
	}

	screen := make([]byte, 64)
	if n := ScreenText(screen); n != 20*3+2 || !strings.HasPrefix(string(screen), "Hello") {
		t.Errorf("ScreenText = %d %q", n, screen)
	}

	if Counter([]byte(MetricFrames)) == 0 || Counter([]byte(MetricCells)) < 60 {
		t.Errorf("frame metrics not recorded: frames %d cells %d",
			Counter([]byte(MetricFrames)), Counter([]byte(MetricCells)))
	}
	if Counter([]byte("no.such.metric")) != 0 {
		t.Error("unknown metric is nonzero")
	}
	if Counter([]byte(MetricFrameMs)) != 0 {
		t.Error("Counter read a non-counter metric")
	}
	var timing [3]float64
	if n := FrameTiming(&timing); n < 1 || n > FrameWindow {
		t.Errorf("FrameTiming held %d frames", n)
	}
	if timing[0] < 0 || timing[1] < 0 || timing[2] < timing[1] || timing[2] < timing[0] {
		t.Errorf("FrameTiming last/mean/max = %v", timing)
	}
	if s, found := Metrics().Lookup(MetricNodes); !found || s.Float < 2 {
		t.Errorf("%s = %+v, want at least 2 painted nodes", MetricNodes, s)
	}

	var stats [StatsLen]int64
	ok(t, FrameStats(&stats))
	if stats[0] != 1 || stats[8] != 2 || stats[9] != 0 {
		t.Errorf("stats = %v, want frame 1 with 2 nodes painted", stats)
	}

	buf := make([]byte, 3)
	if n := Content(text, buf); n != 5 || string(buf) != "Hel" {
		t.Errorf("Content = %d %q, want 5 %q", n, buf, "Hel")
	}
}

func TestLastErrorLifecycle(t *testing.T) {
	start(t, 10, 4)
	if st := DestroyNode(999); st != StatusError {
		t.Fatalf("DestroyNode(999) = %d, want %d", st, StatusError)
	}
	wantCode(t, engine.CodeInvalidHandle)

	full := LastError(nil)
	if full == 0 {
		t.Fatal("no message recorded")
	}
	short := make([]byte, 4)
	if n := LastError(short); n != full {
		t.Errorf("truncated copy returned %d, want full length %d", n, full)
	}
	if !strings.HasPrefix(lastError(), string(short)) {
		t.Errorf("prefix %q does not match %q", short, lastError())
	}

	// Success keeps the previous error
	if id := CreateNode(uint8(engine.KindText)); id == 0 {
		t.Fatal(lastError())
	}
	wantCode(t, engine.CodeInvalidHandle)

	ClearError()
	if n := LastError(nil); n != 0 {
		t.Errorf("LastError after clear = %d", n)
	}
	wantCode(t, engine.CodeOK)
}

func TestMalformedTextRejected(t *testing.T) {
	start(t, 20, 4)
	text := CreateNode(uint8(engine.KindText))
	in := CreateNode(uint8(engine.KindInput))
	sel := CreateNode(uint8(engine.KindSelect))

	tests := []struct {
		name string
		call func() int32
	}{
		{"content", func() int32 { return SetContent(text, []byte("a\xffb")) }},
		{"placeholder", func() int32 { return SetPlaceholder(in, []byte("a\xffb")) }},
		{"options", func() int32 { return SetOptions(sel, []byte("ok\nbad\xff")) }},
		{"language", func() int32 { return SetContentMode(text, 2, []byte("go\xff")) }},
	}
	for _, tt := range tests {
		ClearError()
		if st := tt.call(); st != StatusError {
			t.Errorf("%s: status = %d, want %d", tt.name, st, StatusError)
		}
		wantCode(t, engine.CodeInvalidArgument)
	}
}

func TestPanicContained(t *testing.T) {
	start(t, 10, 4)
	panics := Counter([]byte(MetricPanics))
	root := screen(t)

	st := call("boom", func(e *engine.Engine) error {
		id, err := e.CreateNode(engine.KindText)
		if err != nil {
			return err
		}
		if err := e.AppendChild(engine.NodeID(root), id); err != nil {
			return err
		}
		panic("boom")
	})
	if st != StatusPanic {
		t.Fatalf("status = %d, want %d", st, StatusPanic)
	}
	wantCode(t, engine.CodeInternalPanic)
	if msg := lastError(); !strings.Contains(msg, "boom") {
		t.Errorf("message %q does not name the panic", msg)
	}

	if got := lastPanic.Load(); got != "boom" {
		t.Errorf("last panic = %q, want boom", got)
	}

	ok(t, CheckInvariants())
	ok(t, Render())
	if n := ChildCount(root); n != 1 {
		t.Errorf("ChildCount = %d, want 1", n)
	}

	if id := alloc("boom", func(*engine.Engine) (uint32, error) { panic("alloc") }); id != 0 {
		t.Errorf("panicking alloc = %d, want 0", id)
	}
	if n := count("boom", func(*engine.Engine) (int, error) { panic("count") }); n != StatusPanic {
		t.Errorf("panicking count = %d, want %d", n, StatusPanic)
	}
	if got := Counter([]byte(MetricPanics)) - panics; got != 3 {
		t.Errorf("panic counter grew by %d, want 3", got)
	}
}

func TestDrainEvent(t *testing.T) {
	start(t, 20, 4)
	root := screen(t)
	in := child(t, root, engine.KindInput)
	ok(t, SetFocus(in))

	buf := make([]byte, engine.EventSize)
	for DrainEvent(buf) > 0 {
	}

	if n := InjectRune('a'); n < 1 {
		t.Fatalf("InjectRune queued %d", n)
	}
	pending := PendingEvents()

	if st := DrainEvent(buf[:engine.EventSize-1]); st != StatusError {
		t.Errorf("short buffer = %d, want %d", st, StatusError)
	}
	if PendingEvents() != pending {
		t.Error("short buffer consumed an event")
	}

	if n := DrainEvent(buf); n != engine.EventSize {
		t.Fatalf("DrainEvent = %d: %s", n, lastError())
	}
	ev, err := engine.DecodeEvent(buf)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != engine.EventKey || ev.Target != engine.NodeID(in) || ev.Payload[2] != 'a' {
		t.Errorf("event = %+v, want key 'a' on %d", ev, in)
	}

	for DrainEvent(buf) > 0 {
	}
	if n := DrainEvent(buf); n != 0 {
		t.Errorf("empty drain = %d, want 0", n)
	}
	content := make([]byte, 8)
	if n := Content(in, content); string(content[:n]) != "a" {
		t.Errorf("content = %q, want %q", content[:n], "a")
	}
}

func TestSetThemeProp(t *testing.T) {
	start(t, 10, 4)
	theme := CreateTheme()
	if theme == 0 {
		t.Fatal(lastError())
	}
	red := uint64(terminal.RGB(255, 0, 0))
	ok(t, SetThemeProp(theme, -1, uint8(engine.PropFg), red))
	ok(t, SetThemeProp(theme, int32(engine.KindInput), uint8(engine.PropOpacity), math.Float64bits(0.5)))

	rejected := []struct {
		name  string
		prop  uint8
		value uint64
	}{
		{"unknown prop", 0x40, 0},
		{"wide color", uint8(engine.PropFg), 1 << 40},
		{"bad border", uint8(engine.PropBorder), 200},
		{"bad opacity", uint8(engine.PropOpacity), math.Float64bits(2)},
	}
	for _, tt := range rejected {
		if st := SetThemeProp(theme, -1, tt.prop, tt.value); st != StatusError {
			t.Errorf("%s: status %d, want %d", tt.name, st, StatusError)
		}
	}

	got, err := eng.ThemeStyle(engine.ThemeID(theme))
	if err != nil {
		t.Fatal(err)
	}
	want := engine.VisualStyle{Fg: terminal.RGB(255, 0, 0), Opacity: 1, Set: engine.PropFg}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("theme style (-want +got):\n%s", diff)
	}
	over, found, _ := eng.ThemeOverride(engine.ThemeID(theme), engine.KindInput)
	if !found || over.Opacity != 0.5 {
		t.Errorf("input override = %+v (found %v)", over, found)
	}
}

func TestOutParams(t *testing.T) {
	start(t, 20, 5)
	root := screen(t)
	sel := child(t, root, engine.KindSelect)
	ok(t, SetHeight(sel, uint8(flex.UnitCells), 3))

	idx := int32(99)
	ok(t, Selected(sel, &idx))
	if idx != -1 {
		t.Errorf("Selected without options = %d, want -1", idx)
	}
	ok(t, SetOptions(sel, []byte("one\ntwo\nthree")))
	ok(t, Select(sel, 2))
	ok(t, Selected(sel, &idx))
	if idx != 2 {
		t.Errorf("Selected = %d, want 2", idx)
	}

	if st := Selected(sel, nil); st != StatusError {
		t.Errorf("nil out = %d, want %d", st, StatusError)
	}
	wantCode(t, engine.CodeInvalidArgument)

	ok(t, Render())
	var r [4]int32
	ok(t, LayoutRect(root, &r))
	if r != [4]int32{0, 0, 20, 5} {
		t.Errorf("root rect = %v", r)
	}
	ok(t, LayoutRect(sel, &r))
	if r[1] != 0 || r[3] != 3 {
		t.Errorf("select rect = %v, want y 0 height 3", r)
	}

	var w, h int32
	ok(t, Size(&w, &h))
	if w != 20 || h != 5 {
		t.Errorf("Size = %dx%d", w, h)
	}
}

func TestAnimateThroughBoundary(t *testing.T) {
	start(t, 10, 4)
	root := screen(t)
	text := child(t, root, engine.KindText)

	a := Animate(text, uint8(engine.AnimOpacity), math.Float64bits(0), 100, uint8(engine.EaseLinear))
	if a == 0 {
		t.Fatal(lastError())
	}
	if s := AnimationState(a); s != int32(engine.AnimRunning) {
		t.Errorf("state = %d, want running", s)
	}

	b := PrepareAnimation(text, uint8(engine.AnimOpacity), math.Float64bits(1), 100, uint8(engine.EaseLinear))
	ok(t, Chain(a, b))
	if s := AnimationState(b); s != int32(engine.AnimPending) {
		t.Errorf("successor state = %d, want pending", s)
	}

	if id := Animate(999, uint8(engine.AnimOpacity), 0, 100, 0); id != 0 {
		t.Errorf("Animate on freed node = %d", id)
	}
	wantCode(t, engine.CodeInvalidHandle)

	ok(t, CancelAnimation(a))
	if n := AnimationCount(); n != 0 {
		t.Errorf("AnimationCount after cancel = %d, want 0", n)
	}
}

func TestShutdownInvalidatesHandles(t *testing.T) {
	ok(t, InitHeadless(10, 4))
	id := CreateNode(uint8(engine.KindText))
	ok(t, Shutdown())

	if st := IsValid(id); st != StatusError {
		t.Errorf("IsValid after shutdown = %d", st)
	}
	ok(t, InitHeadless(10, 4))
	t.Cleanup(func() {
		Shutdown()
		ClearError()
	})
	if n := NodeCount(); n != 0 {
		t.Errorf("NodeCount after restart = %d", n)
	}
	if st := IsValid(id); st != 0 {
		t.Errorf("old handle valid after restart: %d", st)
	}
}

func TestInitConfig(t *testing.T) {
	for _, k := range []string{"TERMGRAPH_DRIVER", "TERMGRAPH_DEBUG", "TERMGRAPH_BELL", "TERMGRAPH_BELL_VOLUME"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "termgraph.toml")
	doc := `
[terminal]
driver = "headless"
width = 30
height = 8

[themes.dark]
fg = "#00ff00"
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	ok(t, InitConfig([]byte(path)))
	t.Cleanup(func() {
		Shutdown()
		ClearError()
	})

	var w, h int32
	ok(t, Size(&w, &h))
	if w != 30 || h != 8 {
		t.Errorf("Size = %dx%d, want 30x8", w, h)
	}
	dark, _ := eng.ThemeStyle(engine.ThemeDark)
	if dark.Fg != terminal.RGB(0, 255, 0) {
		t.Errorf("dark fg = %v", dark.Fg)
	}
}
