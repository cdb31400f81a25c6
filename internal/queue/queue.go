// Package queue provides run queue implementations for the event loop.
//
// This package offers two implementations of the Queue interface:
//   - RingBuffer: Power-of-two ring that grows when full (the default)
//   - ChannelQueue: Bounded buffered channel
//
// # Ownership (IMPORTANT)
//
// A run queue belongs to exactly one loop. The loop and its coroutines
// hand control to each other, so Push and Pop are never called at the
// same instant even though they may be called from different goroutines.
//
// RingBuffer includes a runtime guard that panics on overlapping calls.
// This catches scheduler bugs early but adds ~1-2ns overhead per operation.
package queue

// Queue is a FIFO of ready work.
//
// Implementations are non-blocking: Push returns false if the item
// could not be stored, Pop returns false if empty.
type Queue[T any] interface {
	// Push appends an item to the tail of the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns the item at the head of the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)

	// Len returns the number of queued items.
	Len() int
}

// DefaultSize is the initial run queue capacity used by the loop.
const DefaultSize = 64
