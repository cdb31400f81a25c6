package cancel

import (
	"context"
	"errors"
)

// ErrCancelled is the cause recorded when Cancel is called directly.
var ErrCancelled = errors.New("cancel: cancelled by caller")

// ContextCanceler polls a context.
//
// Done is a non-blocking select on ctx.Done(). Err tells the runner
// whether the run was stopped by Cancel, a signal or a timeout.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// NewContext derives a ContextCanceler from parent, typically a
// signal.NotifyContext wrapped in context.WithTimeout.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancelCause(parent)
	return &ContextCanceler{ctx: ctx, cancel: cancel}
}

func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel stops the context with ErrCancelled as its cause.
func (c *ContextCanceler) Cancel() {
	c.cancel(ErrCancelled)
}

// Context returns the derived context.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}

// Err returns nil while running, otherwise the cause: ErrCancelled,
// context.Canceled from a parent (signals), or context.DeadlineExceeded.
func (c *ContextCanceler) Err() error {
	return context.Cause(c.ctx)
}
