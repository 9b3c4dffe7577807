package terminal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Headless is a deterministic Backend without a physical terminal.
// It keeps a cell grid of everything written, records flushed frames and
// replays injected input. Poll never blocks.
type Headless struct {
	mu sync.Mutex

	width, height int
	cells         []Cell

	staged  []CellUpdate
	frames  [][]CellUpdate
	pending []RawEvent

	initialized bool
	finalized   bool
}

// NewHeadless creates a headless backend of the given size. Negative
// dimensions become 0; a size beyond MaxCells yields an empty grid.
func NewHeadless(width, height int) *Headless {
	h := &Headless{}
	h.resize(width, height)
	return h
}

func (h *Headless) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if !ValidSize(width, height) {
		width, height = h.width, h.height
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = EmptyCell
	}
	// Preserve the overlapping region
	for y := 0; y < height && y < h.height; y++ {
		for x := 0; x < width && x < h.width; x++ {
			cells[y*width+x] = h.cells[y*h.width+x]
		}
	}
	h.width, h.height, h.cells = width, height, cells
}

// Init marks the backend active
func (h *Headless) Init() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.initialized = true
	h.finalized = false
	return nil
}

// Fini marks the backend closed. Safe to call multiple times
func (h *Headless) Fini() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.initialized {
		h.finalized = true
	}
}

// Size returns the simulated dimensions
func (h *Headless) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// Write applies updates to the grid and stages them as part of the next frame
func (h *Headless) Write(updates []CellUpdate) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, u := range updates {
		if u.X < 0 || u.Y < 0 || u.X >= h.width || u.Y >= h.height {
			return fmt.Errorf("cell update (%d,%d) outside %dx%d", u.X, u.Y, h.width, h.height)
		}
		h.cells[u.Y*h.width+u.X] = u.Cell
	}
	h.staged = append(h.staged, updates...)
	return nil
}

// Flush closes the current frame
func (h *Headless) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = append(h.frames, h.staged)
	h.staged = nil
	return nil
}

// Poll returns every injected event; timeout is ignored
func (h *Headless) Poll(time.Duration) ([]RawEvent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pending) == 0 {
		return nil, nil
	}
	out := h.pending
	h.pending = nil
	return out, nil
}

// Inject queues raw events for the next Poll
func (h *Headless) Inject(events ...RawEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, events...)
}

// Resize changes the simulated size and queues a resize event
func (h *Headless) Resize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resize(width, height)
	h.pending = append(h.pending, ResizeEvent(h.width, h.height))
}

// Cell returns the grid cell at (x, y)
func (h *Headless) Cell(x, y int) Cell {
	h.mu.Lock()
	defer h.mu.Unlock()
	if x < 0 || y < 0 || x >= h.width || y >= h.height {
		return Cell{}
	}
	return h.cells[y*h.width+x]
}

// Row returns the glyphs of row y, skipping wide-glyph continuation cells
func (h *Headless) Row(y int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.row(y)
}

func (h *Headless) row(y int) string {
	if y < 0 || y >= h.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < h.width; x++ {
		if r := h.cells[y*h.width+x].Rune; r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Text returns all rows joined by newlines
func (h *Headless) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	rows := make([]string, h.height)
	for y := range rows {
		rows[y] = h.row(y)
	}
	return strings.Join(rows, "\n")
}

// Frames returns the number of flushed frames
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.frames)
}

// LastFrame returns the updates of the most recent flush
func (h *Headless) LastFrame() []CellUpdate {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}

// Active reports whether Init was called without a matching Fini
func (h *Headless) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.initialized && !h.finalized
}
