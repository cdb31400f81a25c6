package queue

import (
	"sync/atomic"
)

// RingBuffer is a growable FIFO backed by a power-of-two ring.
//
// Push never fails: when the ring is full its storage is doubled and the
// queued items are copied to the front of the new ring in FIFO order.
//
// WARNING: RingBuffer is not safe for overlapping calls. The event loop
// serializes every access through its handoff channels, and the guard
// below panics if that contract is ever violated.
type RingBuffer[T any] struct {
	buf  []T
	mask uint64
	head uint64 // next slot to write
	tail uint64 // next slot to read

	// Guard: detect overlapping use
	active atomic.Uint32
}

// NewRingBuffer creates a RingBuffer with the specified initial size.
// Size will be rounded up to the next power of 2.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	n := roundPow2(size)
	return &RingBuffer[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
}

func roundPow2(size int) uint64 {
	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}
	return n
}

func (r *RingBuffer[T]) enter() {
	if !r.active.CompareAndSwap(0, 1) {
		panic("queue: overlapping access to RingBuffer - run queue must be owned by one loop")
	}
}

func (r *RingBuffer[T]) exit() {
	r.active.Store(0)
}

// Push appends an item, growing the ring if needed.
// Always returns true.
func (r *RingBuffer[T]) Push(v T) bool {
	r.enter()
	defer r.exit()

	if r.head-r.tail >= uint64(len(r.buf)) {
		r.grow()
	}
	r.buf[r.head&r.mask] = v
	r.head++
	return true
}

// grow doubles the ring, keeping items in FIFO order.
func (r *RingBuffer[T]) grow() {
	n := uint64(len(r.buf)) << 1
	buf := make([]T, n)
	count := r.head - r.tail
	for i := uint64(0); i < count; i++ {
		buf[i] = r.buf[(r.tail+i)&r.mask]
	}
	r.buf = buf
	r.mask = n - 1
	r.tail = 0
	r.head = count
}

// Pop removes and returns the oldest item.
// Returns false if the queue is empty.
func (r *RingBuffer[T]) Pop() (T, bool) {
	r.enter()
	defer r.exit()

	var zero T
	if r.tail >= r.head {
		return zero, false
	}
	idx := r.tail & r.mask
	v := r.buf[idx]
	r.buf[idx] = zero // drop reference so parked coroutines can be collected
	r.tail++
	return v, true
}

// Len returns the current number of items in the queue.
func (r *RingBuffer[T]) Len() int {
	return int(r.head - r.tail)
}

// Cap returns the current capacity of the ring.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}
