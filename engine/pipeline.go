package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/termgraph/render"
	"github.com/lixenwraith/termgraph/terminal"
)

// RenderStats describes the last Render call
type RenderStats struct {
	Frame        uint64
	AnimateNs    int64
	StyleNs      int64
	LayoutNs     int64
	PaintNs      int64
	DiffNs       int64
	EmitNs       int64
	CellsChanged int
	NodesPainted int
	// Skipped is set when nothing was dirty and paint, diff and emit did not run
	Skipped bool
}

// invalidCell never equals a painted cell, forcing a full re-emit
var invalidCell = terminal.Cell{Rune: -1}

// Render runs one frame: animation advance, style resolution, layout,
// paint, diff, then emit and swap. A frame with nothing dirty stops after
// the animation step.
func (e *Engine) Render() error {
	if e.closed {
		return ErrClosed
	}
	root, ok := e.nodes[e.root]
	if !ok {
		return ErrNoRootSet
	}
	// Layout can only fail on a root unknown to the layout tree; reject that
	// before the clock or any animation moves
	if !e.layout.Contains(root.layout) {
		return fmt.Errorf("layout of root %d: %w", root.id, ErrInvalidHandle)
	}

	now := e.clock.Now()
	var dt time.Duration
	if e.framed {
		dt = max(0, now.Sub(e.lastFrame))
	}
	e.lastFrame, e.framed = now, true
	stats := RenderStats{Frame: e.stats.Frame + 1}

	mark := time.Now()
	lap := func() int64 {
		t := time.Now()
		d := t.Sub(mark).Nanoseconds()
		mark = t
		return d
	}

	e.advanceAnimations(dt)
	stats.AnimateNs = lap()

	if !root.dirty && !e.fullRepaint {
		stats.Skipped = true
		e.stats = stats
		return nil
	}

	e.resolveStyles(root)
	stats.StyleNs = lap()

	if err := e.computeLayout(root); err != nil {
		return err
	}
	stats.LayoutNs = lap()

	e.back.Clear()
	stats.NodesPainted = e.paint(root, 1)
	stats.PaintNs = lap()

	if e.fullRepaint {
		e.front.Fill(invalidCell)
	}
	e.updates = render.Diff(e.updates[:0], e.front, e.back)
	stats.CellsChanged = len(e.updates)
	stats.DiffNs = lap()

	if err := e.emit(); err != nil {
		e.fullRepaint = true
		return err
	}
	stats.EmitNs = lap()

	e.front, e.back = e.back, e.front
	e.fullRepaint = false
	for _, n := range e.nodes {
		n.dirty = false
	}
	e.stats = stats
	if e.opts.FrameTrace {
		log.Printf("engine: frame %d nodes=%d cells=%d paint=%dns", stats.Frame, stats.NodesPainted, stats.CellsChanged, stats.PaintNs)
	}
	return nil
}

func (e *Engine) emit() error {
	if len(e.updates) > 0 {
		if err := e.backend.Write(e.updates); err != nil {
			return fmt.Errorf("emit: %w", err)
		}
	}
	if err := e.backend.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// resolveStyles computes the effective style of every dirty node under
// root. Clean subtrees are skipped: a clean node never has a dirty
// descendant.
func (e *Engine) resolveStyles(root *node) {
	e.walk(root, func(n *node) bool {
		if !n.dirty {
			return false
		}
		n.effective = e.resolve(n)
		e.syncBorder(n)
		return true
	})
}

// Stats returns the counters of the last Render
func (e *Engine) Stats() RenderStats {
	return e.stats
}

// Invalidate makes the next Render repaint and re-emit every cell
func (e *Engine) Invalidate() {
	e.fullRepaint = true
}
