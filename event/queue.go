package event

import (
	"sync/atomic"

	"github.com/lixenwraith/portal/parameter"
)

// Queue carries engine and host events into the frame loop's dispatch phase
// Any goroutine may Push (input sources, permission requests, host keys); only the frame loop drains
// More than EventQueueSize pending events drop the oldest, so a stalled loop never blocks input
type Queue struct {
	slots [parameter.EventQueueSize]slot
	head  atomic.Uint64 // next sequence to drain
	tail  atomic.Uint64 // next sequence to claim
}

type slot struct {
	ev    Event
	ready atomic.Bool
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push claims the next sequence, fills its slot and marks it ready
func (q *Queue) Push(ev Event) {
	seq := q.tail.Add(1) - 1
	s := &q.slots[seq&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Overwrote an undrained slot: move the drain point past it
	floor := seq + 1 - parameter.EventQueueSize
	for {
		head := q.head.Load()
		if seq+1 <= parameter.EventQueueSize || head >= floor {
			return
		}
		if q.head.CompareAndSwap(head, floor) {
			return
		}
	}
}

// Drain appends ready events to dst in publish order and returns it
// Stops at the first slot a producer has claimed but not yet filled
func (q *Queue) Drain(dst []Event) []Event {
	head, tail := q.head.Load(), q.tail.Load()
	if tail-head > parameter.EventQueueSize {
		head = tail - parameter.EventQueueSize
	}

	seq := head
	for ; seq < tail; seq++ {
		s := &q.slots[seq&parameter.EventBufferMask]
		if !s.ready.Load() {
			break
		}
		dst = append(dst, s.ev)
		s.ready.Store(false)
	}

	// Producers may have raised head past us on overflow; never move it back
	for {
		cur := q.head.Load()
		if cur >= seq || q.head.CompareAndSwap(cur, seq) {
			return dst
		}
	}
}

// Pending returns the number of undrained events, at most EventQueueSize
func (q *Queue) Pending() int {
	n := q.tail.Load() - q.head.Load()
	if n > parameter.EventQueueSize {
		n = parameter.EventQueueSize
	}
	return int(n)
}
