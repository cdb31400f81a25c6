package tick

import (
	"sync/atomic"
	"time"
)

// StdTicker polls a time.Ticker channel without blocking.
//
// The runtime timer fires whether or not anyone polls; ticks missed
// between polls collapse into one because the channel holds a single
// value.
type StdTicker struct {
	t        *time.Ticker
	interval time.Duration
	fired    atomic.Int64
}

// NewTicker creates a StdTicker. Non-positive intervals are raised to
// one nanosecond since time.NewTicker rejects them.
func NewTicker(interval time.Duration) *StdTicker {
	interval = max(interval, time.Nanosecond)
	return &StdTicker{t: time.NewTicker(interval), interval: interval}
}

func (s *StdTicker) Tick() bool {
	select {
	case <-s.t.C:
		s.fired.Add(1)
		return true
	default:
		return false
	}
}

// Reset restarts the interval from now, discards a tick already queued
// on the channel and zeroes Fired.
func (s *StdTicker) Reset() {
	s.t.Reset(s.interval)
	select {
	case <-s.t.C:
	default:
	}
	s.fired.Store(0)
}

// Stop releases the runtime timer.
func (s *StdTicker) Stop() { s.t.Stop() }

// Fired returns the ticks since the last Reset.
func (s *StdTicker) Fired() int { return int(s.fired.Load()) }

func (s *StdTicker) Interval() time.Duration { return s.interval }
