package ffi

import (
	"github.com/lixenwraith/termgraph/engine"
	"github.com/lixenwraith/termgraph/status"
)

// Boundary metric names
const (
	MetricCalls     = "ffi.calls"
	MetricErrors    = "ffi.errors"
	MetricPanics    = "ffi.panics"
	MetricRepairs   = "ffi.repaired_refs"
	MetricLastPanic = "ffi.last_panic"
	MetricFrames    = "frame.count"
	MetricCells     = "frame.cells_changed"
	MetricNodes     = "frame.nodes"
	MetricFrameMs   = "frame.ms"
)

// FrameWindow is the number of rendered frames FrameTiming covers
const FrameWindow = 64

var (
	metrics = status.NewRegistry()

	callCount   = metrics.Counter(MetricCalls)
	errorCount  = metrics.Counter(MetricErrors)
	panicCount  = metrics.Counter(MetricPanics)
	repairCount = metrics.Counter(MetricRepairs)
	lastPanic   = metrics.Label(MetricLastPanic)
	frameCount  = metrics.Counter(MetricFrames)
	cellCount   = metrics.Counter(MetricCells)
	nodeGauge   = metrics.Gauge(MetricNodes)
	frameTimes  = metrics.Window(MetricFrameMs, FrameWindow)
)

// Metrics returns the boundary's metric registry. It outlives Shutdown.
func Metrics() *status.Registry {
	return metrics
}

// Counter returns a counter metric by name, 0 when unknown or not a counter
func Counter(name []byte) int64 {
	if s, ok := metrics.Lookup(string(name)); ok && s.Kind == status.KindCounter {
		return s.Int
	}
	return 0
}

// FrameTiming writes the last, mean and maximum frame time in milliseconds
// over the most recent FrameWindow rendered frames, and returns how many
// frames the window holds. Skipped frames are not counted.
func FrameTiming(out *[3]float64) int32 {
	if out == nil {
		mu.Lock()
		defer mu.Unlock()
		lastErr = errNilOut
		return StatusError
	}
	last, mean, peak, n := frameTimes.Stats()
	*out = [3]float64{last, mean, peak}
	return int32(n)
}

func recordFrame(s engine.RenderStats) {
	if s.Skipped {
		return
	}
	frameCount.Inc()
	cellCount.Add(int64(s.CellsChanged))
	nodeGauge.Set(float64(s.NodesPainted))
	total := s.AnimateNs + s.StyleNs + s.LayoutNs + s.PaintNs + s.DiffNs + s.EmitNs
	frameTimes.Observe(float64(total) / 1e6)
}
