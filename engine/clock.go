package engine

import "time"

// Clock supplies frame timestamps to the animation pass. Render reads it
// once per frame.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// MockClock is a manually advanced Clock for deterministic frames. Like the
// engine it is not safe for concurrent use.
type MockClock struct {
	now   time.Time
	reads int
}

// NewMockClock creates a mock clock at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the mocked time
func (m *MockClock) Now() time.Time {
	m.reads++
	return m.now
}

// Advance moves the clock by d. A negative d moves it backwards, which the
// animation pass treats as no elapsed time.
func (m *MockClock) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Reads reports how many times Now was called
func (m *MockClock) Reads() int {
	return m.reads
}
