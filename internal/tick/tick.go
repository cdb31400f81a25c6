// Package tick provides the periodic triggers the benchmark runner polls
// to decide when to log progress.
//
// This package offers several implementations of the Ticker interface:
//   - StdTicker: Standard library time.Ticker wrapper
//   - AtomicTicker: Atomic timestamp comparison using runtime.nanotime
//   - BatchTicker: Check the clock only every N polls
//
// The runner polls once per subject invocation, so for fast subjects the
// poll must cost far less than the subject itself. BatchTicker amortizes
// the clock read across many invocations and is the default.
package tick

import (
	"errors"
	"fmt"
	"time"
)

// Ticker signals when a time interval has elapsed.
//
// The runner polls from a single goroutine. StdTicker and AtomicTicker
// also tolerate concurrent pollers; BatchTicker does not.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now and zeroes Fired. The runner
	// resets the ticker at the start of each subject.
	Reset()

	// Fired returns how many times Tick has returned true since the
	// last Reset.
	Fired() int

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// DefaultInterval is how often the runner reports progress by default.
const DefaultInterval = time.Second

// DefaultEvery is the default BatchTicker batch size.
const DefaultEvery = 1000

// Kinds accepted by New.
const (
	KindStd    = "std"
	KindAtomic = "atomic"
	KindBatch  = "batch"
)

// ErrUnknownKind is returned by New for an unrecognized kind.
var ErrUnknownKind = errors.New("tick: unknown ticker kind")

// New returns a Ticker of the given kind. every is only used by
// KindBatch; an empty kind selects KindBatch.
func New(kind string, interval time.Duration, every int) (Ticker, error) {
	switch kind {
	case KindBatch, "":
		return NewBatch(interval, every), nil
	case KindAtomic:
		return NewAtomicTicker(interval), nil
	case KindStd:
		return NewTicker(interval), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
