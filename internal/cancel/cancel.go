// Package cancel provides the stop signal the benchmark runner polls
// between subject invocations.
//
// This package offers two implementations of the Canceler interface:
//   - ContextCanceler: Standard library approach using context.Context
//   - AtomicCanceler: A single atomic.Bool, optionally fed by a context
//
// The runner checks Done() once per iteration, so the poll sits inside
// the measured loop's bookkeeping. The atomic form keeps that poll to a
// single load.
package cancel

import (
	"context"
	"errors"
	"fmt"
)

// Canceler provides cancellation signaling to the runner.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}

// Kinds accepted by New.
const (
	KindAtomic  = "atomic"
	KindContext = "context"
)

// ErrUnknownKind is returned by New for an unrecognized kind.
var ErrUnknownKind = errors.New("cancel: unknown canceler kind")

// New returns a Canceler of the given kind that fires when ctx is done.
func New(kind string, ctx context.Context) (Canceler, error) {
	switch kind {
	case KindAtomic, "":
		return NewAtomicFromContext(ctx), nil
	case KindContext:
		return NewContext(ctx), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
