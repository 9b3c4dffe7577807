package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/termgraph/flex"
	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/span"
	"github.com/lixenwraith/termgraph/terminal"
)

const defaultQueueCapacity = 256

// Ringer signals rejected input audibly
type Ringer interface {
	Ring()
}

// Options configures an Engine
type Options struct {
	Backend terminal.Backend // Default: 80x24 headless
	Clock   Clock            // Default: wall clock
	Spans   span.Producer    // Default: span.NewConverter()
	Bell    Ringer           // Optional

	// TabNavigation moves focus on Tab/Backtab
	TabNavigation bool
	QueueCapacity int
	// FrameTrace logs one line per rendered frame
	FrameTrace bool
}

// DefaultOptions returns options with tab navigation on
func DefaultOptions() Options {
	return Options{
		TabNavigation: true,
		QueueCapacity: defaultQueueCapacity,
	}
}

// Engine owns every node, theme, animation and buffer
type Engine struct {
	opts    Options
	backend terminal.Backend
	clock   Clock

	nodes    map[NodeID]*node
	nextNode NodeID
	root     NodeID
	focus    NodeID
	layout   *flex.Tree

	themes    map[ThemeID]*theme
	nextTheme ThemeID
	bindings  map[NodeID]ThemeID

	anims     map[AnimID]*animation
	animOrder []AnimID
	active    map[animKey]AnimID
	nextAnim  AnimID
	groups    map[GroupID]*group
	nextGroup GroupID

	events *eventQueue

	front, back   *render.Buffer
	width, height int
	updates       []terminal.CellUpdate
	fullRepaint   bool
	lastFrame     time.Time
	framed        bool
	stats         RenderStats

	closed bool
}

// New initializes the backend and creates an engine with the built-in themes
func New(opts Options) (*Engine, error) {
	if opts.Backend == nil {
		opts.Backend = terminal.NewHeadless(80, 24)
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Spans == nil {
		opts.Spans = span.NewConverter()
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = defaultQueueCapacity
	}

	if err := opts.Backend.Init(); err != nil {
		return nil, fmt.Errorf("backend init: %w", err)
	}
	w, h := opts.Backend.Size()
	if !terminal.ValidSize(w, h) {
		opts.Backend.Fini()
		return nil, fmt.Errorf("%w: backend size %dx%d", ErrInvalidArgument, w, h)
	}

	e := &Engine{
		opts:        opts,
		backend:     opts.Backend,
		clock:       opts.Clock,
		nodes:       make(map[NodeID]*node),
		layout:      flex.NewTree(),
		themes:      make(map[ThemeID]*theme),
		bindings:    make(map[NodeID]ThemeID),
		anims:       make(map[AnimID]*animation),
		active:      make(map[animKey]AnimID),
		groups:      make(map[GroupID]*group),
		events:      newEventQueue(opts.QueueCapacity),
		front:       render.NewBuffer(w, h),
		back:        render.NewBuffer(w, h),
		width:       w,
		height:      h,
		fullRepaint: true,
	}
	e.themes[ThemeDark] = darkTheme()
	e.themes[ThemeLight] = lightTheme()
	e.nextTheme = ThemeLight

	log.Printf("engine: started %dx%d", w, h)
	return e, nil
}

// Close restores the terminal and invalidates every handle
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.backend.Fini()

	clear(e.nodes)
	clear(e.bindings)
	clear(e.anims)
	clear(e.active)
	clear(e.groups)
	e.animOrder = nil
	e.root, e.focus = 0, 0
	e.layout = flex.NewTree()
	e.events.clear()
	log.Printf("engine: closed")
	return nil
}

// Closed reports whether Close was called
func (e *Engine) Closed() bool {
	return e.closed
}

// Size returns the terminal size as of the last resize
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Backend returns the terminal the engine draws to
func (e *Engine) Backend() terminal.Backend {
	return e.backend
}

func (e *Engine) ring() {
	if e.opts.Bell != nil {
		e.opts.Bell.Ring()
	}
}
