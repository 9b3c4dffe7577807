package engine

import "math/bits"

// eventQueue is a single-threaded ring buffer. Overflow: oldest events are
// overwritten when full.
type eventQueue struct {
	events  []Event
	mask    uint64
	head    uint64 // Read index
	tail    uint64 // Write index
	dropped uint64
}

// newEventQueue rounds capacity up to a power of two
func newEventQueue(capacity int) *eventQueue {
	if capacity < 1 {
		capacity = 1
	}
	size := uint64(1) << bits.Len64(uint64(capacity-1))
	return &eventQueue{events: make([]Event, size), mask: size - 1}
}

func (q *eventQueue) push(ev Event) {
	q.events[q.tail&q.mask] = ev
	q.tail++
	if q.tail-q.head > uint64(len(q.events)) {
		q.head = q.tail - uint64(len(q.events))
		q.dropped++
	}
}

func (q *eventQueue) pop() (Event, bool) {
	if q.head == q.tail {
		return Event{}, false
	}
	ev := q.events[q.head&q.mask]
	q.head++
	return ev, true
}

func (q *eventQueue) len() int {
	return int(q.tail - q.head)
}

func (q *eventQueue) clear() {
	q.head = q.tail
}
