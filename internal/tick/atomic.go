package tick

import (
	"sync/atomic"
	"time"
	_ "unsafe" // go:linkname
)

// nanotime is the runtime's monotonic clock. It skips building a
// time.Time, which matters when it is read once per subject invocation.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// nextDeadline returns the first point on the grid next, next+interval,
// next+2*interval, ... that lies after now. A non-positive interval
// makes every poll due.
func nextDeadline(next, now, interval int64) int64 {
	if interval <= 0 {
		return now
	}
	return next + ((now-next)/interval+1)*interval
}

// AtomicTicker reads the clock on every poll.
//
// Deadlines sit on a grid anchored at the last Reset, so an invocation
// that spans several intervals produces one tick, not a burst, and the
// following deadline stays aligned.
type AtomicTicker struct {
	interval int64
	next     atomic.Int64
	fired    atomic.Int64
}

// NewAtomicTicker creates an AtomicTicker whose first deadline is one
// interval from now.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	a := &AtomicTicker{interval: int64(interval)}
	a.Reset()
	return a
}

// Tick reports whether a deadline has passed. When pollers race, the
// compare-and-swap lets only one of them see the tick.
func (a *AtomicTicker) Tick() bool {
	now := nanotime()
	next := a.next.Load()
	if now < next {
		return false
	}
	if !a.next.CompareAndSwap(next, nextDeadline(next, now, a.interval)) {
		return false
	}
	a.fired.Add(1)
	return true
}

// Reset re-anchors the grid at now and zeroes Fired.
func (a *AtomicTicker) Reset() {
	a.next.Store(nanotime() + a.interval)
	a.fired.Store(0)
}

// Stop is a no-op.
func (a *AtomicTicker) Stop() {}

// Fired returns the ticks since the last Reset.
func (a *AtomicTicker) Fired() int {
	return int(a.fired.Load())
}

func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}
