// Package status holds boundary telemetry: named counters, gauges, labels
// and rolling windows of frame timings. Owners register a metric once and
// keep the pointer; readers take a Snapshot in name order.
package status

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Kind is a metric's value type
type Kind uint8

const (
	KindCounter Kind = iota
	KindGauge
	KindLabel
	KindWindow
)

var kindNames = [...]string{"counter", "gauge", "label", "window"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Sample is one metric's value at snapshot time. Counters fill Int, gauges
// Float, labels Text; windows fill Float with the mean, Last, Max and N.
type Sample struct {
	Name  string
	Kind  Kind
	Int   int64
	Float float64
	Last  float64
	Max   float64
	N     int
	Text  string
}

func (s Sample) String() string {
	switch s.Kind {
	case KindCounter:
		return fmt.Sprintf("%d", s.Int)
	case KindGauge:
		return fmt.Sprintf("%.3f", s.Float)
	case KindLabel:
		return s.Text
	default:
		return fmt.Sprintf("last %.3f mean %.3f max %.3f (%d)", s.Last, s.Float, s.Max, s.N)
	}
}

type metric interface {
	kind() Kind
	fill(*Sample)
	reset()
}

// Registry maps names to metrics of one kind each
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]metric
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{metrics: make(map[string]metric)}
}

// register returns the metric under name, creating it with mk on first use.
// Reusing a name for another kind panics.
func register[T metric](r *Registry, name string, mk func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.metrics[name]; ok {
		t, ok := m.(T)
		if !ok {
			panic(fmt.Sprintf("status: %s is a %s", name, m.kind()))
		}
		return t
	}
	t := mk()
	r.metrics[name] = t
	return t
}

// Counter returns the counter under name
func (r *Registry) Counter(name string) *Counter {
	return register(r, name, func() *Counter { return new(Counter) })
}

// Gauge returns the gauge under name
func (r *Registry) Gauge(name string) *Gauge {
	return register(r, name, func() *Gauge { return new(Gauge) })
}

// Label returns the label under name
func (r *Registry) Label(name string) *Label {
	return register(r, name, func() *Label { return new(Label) })
}

// Window returns the window under name. size applies on first registration.
func (r *Registry) Window(name string, size int) *Window {
	return register(r, name, func() *Window { return NewWindow(size) })
}

// Lookup samples one metric
func (r *Registry) Lookup(name string) (Sample, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.metrics[name]
	if !ok {
		return Sample{}, false
	}
	return sample(name, m), true
}

// Snapshot samples every metric in name order
func (r *Registry) Snapshot() []Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Sample, 0, len(r.metrics))
	for _, name := range slices.Sorted(maps.Keys(r.metrics)) {
		out = append(out, sample(name, r.metrics[name]))
	}
	return out
}

// Len returns the number of registered metrics
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metrics)
}

// Reset zeroes every metric; registered pointers stay valid
func (r *Registry) Reset() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.metrics {
		m.reset()
	}
}

func sample(name string, m metric) Sample {
	s := Sample{Name: name, Kind: m.kind()}
	m.fill(&s)
	return s
}
