package queue

// ChannelQueue is a fixed-capacity Queue over a buffered channel.
//
// Push and Pop are selects with a default case, so neither blocks. A
// loop built on it refuses Go once Cap coroutines are ready, which is
// how tests provoke loop.ErrRunQueueFull.
type ChannelQueue[T any] struct {
	ch chan T
}

// NewChannel creates a ChannelQueue holding up to size items.
// size < 1 is treated as 1.
func NewChannel[T any](size int) *ChannelQueue[T] {
	return &ChannelQueue[T]{ch: make(chan T, max(size, 1))}
}

// Push reports false instead of blocking when the channel is full.
func (q *ChannelQueue[T]) Push(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Pop reports false instead of blocking when the channel is empty.
func (q *ChannelQueue[T]) Pop() (v T, ok bool) {
	select {
	case v = <-q.ch:
		return v, true
	default:
		return v, false
	}
}

func (q *ChannelQueue[T]) Len() int { return len(q.ch) }

func (q *ChannelQueue[T]) Cap() int { return cap(q.ch) }
