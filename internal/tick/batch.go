package tick

import "time"

// BatchTicker consults the clock on every Nth poll only.
//
// With every=1000 and interval=1s the runner reads the clock once per
// thousand invocations, so a progress line may lag its deadline by up to
// every-1 invocations. Not safe for concurrent pollers.
type BatchTicker struct {
	interval int64
	every    int
	polls    int
	next     int64
	fired    int
}

// NewBatch creates a BatchTicker. every < 1 is treated as 1.
func NewBatch(interval time.Duration, every int) *BatchTicker {
	b := &BatchTicker{interval: int64(interval), every: max(every, 1)}
	b.Reset()
	return b
}

// Tick reports whether a deadline has passed, looking only on every
// Nth call.
func (b *BatchTicker) Tick() bool {
	b.polls++
	if b.polls < b.every {
		return false
	}
	b.polls = 0

	now := nanotime()
	if now < b.next {
		return false
	}
	b.next = nextDeadline(b.next, now, b.interval)
	b.fired++
	return true
}

// Reset re-anchors the grid at now and restarts the batch count.
func (b *BatchTicker) Reset() {
	b.polls = 0
	b.fired = 0
	b.next = nanotime() + b.interval
}

// Stop is a no-op.
func (b *BatchTicker) Stop() {}

// Fired returns the ticks since the last Reset.
func (b *BatchTicker) Fired() int { return b.fired }

// Every returns the batch size.
func (b *BatchTicker) Every() int { return b.every }

func (b *BatchTicker) Interval() time.Duration {
	return time.Duration(b.interval)
}
