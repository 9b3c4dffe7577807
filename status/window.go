package status

import "sync"

// DefaultWindow is the window size used when a non-positive size is given
const DefaultWindow = 64

// Window keeps the most recent observations in a ring and reports their
// mean and maximum
type Window struct {
	mu   sync.Mutex
	vals []float64
	next int
	n    int
}

// NewWindow creates a window over the last size observations
func NewWindow(size int) *Window {
	if size <= 0 {
		size = DefaultWindow
	}
	return &Window{vals: make([]float64, size)}
}

// Observe records v, evicting the oldest observation when full
func (w *Window) Observe(v float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.vals[w.next] = v
	w.next = (w.next + 1) % len(w.vals)
	w.n = min(w.n+1, len(w.vals))
}

// Stats returns the latest observation, the mean and the maximum over the
// window, and the number of observations held
func (w *Window) Stats() (last, mean, peak float64, n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.n == 0 {
		return 0, 0, 0, 0
	}
	last = w.vals[(w.next-1+len(w.vals))%len(w.vals)]
	peak = last
	sum := 0.0
	for i := range w.n {
		v := w.vals[(w.next-1-i+2*len(w.vals))%len(w.vals)]
		sum += v
		peak = max(peak, v)
	}
	return last, sum / float64(w.n), peak, w.n
}

func (w *Window) kind() Kind { return KindWindow }

func (w *Window) fill(s *Sample) {
	s.Last, s.Float, s.Max, s.N = w.Stats()
}

func (w *Window) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next, w.n = 0, 0
}
