package cancel

import (
	"context"
	"sync/atomic"
)

// AtomicCanceler uses an atomic.Bool for cancellation signaling.
//
// Each call to Done() performs a single atomic load, which is much
// faster than a channel select.
//
// Typical performance:
//   - ContextCanceler.Done(): ~15-25ns
//   - AtomicCanceler.Done(): ~1-2ns
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// NewAtomicFromContext creates an AtomicCanceler that is cancelled when
// ctx is done. A background goroutine waits on ctx.Done(), so the poll
// itself never touches the context.
func NewAtomicFromContext(ctx context.Context) *AtomicCanceler {
	a := &AtomicCanceler{}
	if ctx.Done() == nil {
		return a // never cancelled
	}
	go func() {
		<-ctx.Done()
		a.Cancel()
	}()
	return a
}

// Done returns true if cancellation has been triggered.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel triggers cancellation.
//
// Safe to call multiple times; subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Reset clears the cancellation flag so one canceler can serve several
// runs. Not safe to call concurrently with Done() or Cancel().
func (a *AtomicCanceler) Reset() {
	a.done.Store(false)
}
