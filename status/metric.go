package status

import (
	"math"
	"sync/atomic"
)

// Counter is a monotonically growing count
type Counter struct {
	v atomic.Int64
}

func (c *Counter) Add(n int64) { c.v.Add(n) }

func (c *Counter) Inc() { c.v.Add(1) }

func (c *Counter) Load() int64 { return c.v.Load() }

func (c *Counter) kind() Kind     { return KindCounter }
func (c *Counter) fill(s *Sample) { s.Int = c.Load() }
func (c *Counter) reset()         { c.v.Store(0) }

// Gauge holds the latest float value, stored as bits
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Load() float64 { return math.Float64frombits(g.bits.Load()) }

func (g *Gauge) kind() Kind     { return KindGauge }
func (g *Gauge) fill(s *Sample) { s.Float = g.Load() }
func (g *Gauge) reset()         { g.Set(0) }

// MaxLabelLen bounds stored labels
const MaxLabelLen = 48

// Label holds a short text value such as the last failing entry point
type Label struct {
	p atomic.Pointer[string]
}

// Store sets the label, truncated to MaxLabelLen bytes
func (l *Label) Store(v string) {
	if len(v) > MaxLabelLen {
		v = v[:MaxLabelLen]
	}
	l.p.Store(&v)
}

func (l *Label) Load() string {
	if p := l.p.Load(); p != nil {
		return *p
	}
	return ""
}

func (l *Label) kind() Kind     { return KindLabel }
func (l *Label) fill(s *Sample) { s.Text = l.Load() }
func (l *Label) reset()         { l.p.Store(nil) }
