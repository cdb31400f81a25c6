// Package loop provides a cooperative single-threaded event loop.
//
// Each unit of work runs as a Coroutine backed by its own goroutine, but
// control is handed back and forth through channels so that exactly one
// of {loop, coroutine} executes at any instant. Suspending a coroutine
// means giving control back to the loop; resuming means the loop handing
// it back. There is no parallelism: the loop behaves like an async
// runtime with a single thread.
//
// Typical use:
//
//	l := loop.New()
//	l.Go(func() {
//	    // ... work ...
//	    l.Yield() // one handoff to the loop
//	    // ... more work ...
//	})
//	err := l.Run()
package loop

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/randomizedcoder/task-benchmarks/internal/queue"
)

var (
	// ErrRunQueueFull is returned when the run queue rejects a coroutine.
	ErrRunQueueFull = errors.New("loop: run queue full")

	// ErrStalled is returned by Run when the run queue drains while
	// coroutines are still parked waiting for something.
	ErrStalled = errors.New("loop: coroutines parked with nothing ready")

	// ErrRunning is returned by Run when called while already running.
	ErrRunning = errors.New("loop: already running")
)

// Coroutine is a unit of work scheduled by a Loop.
type Coroutine struct {
	id     uint64
	fn     func() // nil once started
	resume chan struct{}
	done   bool
}

// ID returns the coroutine's spawn sequence number, starting at 1.
func (c *Coroutine) ID() uint64 {
	return c.id
}

// Done reports whether the coroutine's function has returned.
func (c *Coroutine) Done() bool {
	return c.done
}

// Stats counts scheduler events since the loop was created.
type Stats struct {
	Spawned uint64 // coroutines created by Go
	Resumes uint64 // handoffs from the loop to a coroutine
	Yields  uint64 // calls to Yield
	Parks   uint64 // calls to Park
}

// Loop is a single-threaded cooperative scheduler.
//
// A Loop is not safe for use by multiple independent goroutines. All
// methods other than Run must be called either before Run or from
// inside one of the loop's own coroutines.
type Loop struct {
	runq    queue.Queue[*Coroutine]
	current *Coroutine
	parked  chan struct{} // coroutine -> loop: control returned
	live    int           // spawned and not yet finished
	running bool
	stats   Stats
	panic   *PanicError
	log     *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithRunQueue replaces the default growable RingBuffer run queue.
func WithRunQueue(q queue.Queue[*Coroutine]) Option {
	return func(l *Loop) {
		l.runq = q
	}
}

// WithLogger sets the logger used for stall and panic diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

var discard = slog.New(slog.DiscardHandler)

// New creates an idle Loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		parked: make(chan struct{}),
		log:    discard,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.runq == nil {
		l.runq = queue.NewRingBuffer[*Coroutine](queue.DefaultSize)
	}
	return l
}

// Go creates a coroutine running fn and appends it to the run queue.
// The coroutine does not start until Run reaches it.
func (l *Loop) Go(fn func()) (*Coroutine, error) {
	c := &Coroutine{
		id:     l.stats.Spawned + 1,
		fn:     fn,
		resume: make(chan struct{}),
	}
	if !l.runq.Push(c) {
		return nil, ErrRunQueueFull
	}
	l.stats.Spawned++
	l.live++
	return c, nil
}

// Run drives ready coroutines, one at a time, until the run queue is empty.
//
// If a coroutine panics, Run re-panics on the caller's goroutine with a
// *PanicError. If coroutines are still parked when nothing is left to
// run, Run returns an error wrapping ErrStalled; those coroutines are
// abandoned.
func (l *Loop) Run() error {
	if l.running {
		return ErrRunning
	}
	l.running = true
	defer func() { l.running = false }()

	for {
		c, ok := l.runq.Pop()
		if !ok {
			break
		}
		l.step(c)
		if p := l.panic; p != nil {
			l.panic = nil
			l.log.Error("coroutine panicked", "id", p.ID, "value", p.Value)
			panic(p)
		}
	}

	if l.live > 0 {
		l.log.Warn("loop stalled", "parked", l.live)
		return fmt.Errorf("%w: %d parked", ErrStalled, l.live)
	}
	return nil
}

// step hands control to c and waits for it to give control back.
func (l *Loop) step(c *Coroutine) {
	if c.fn != nil {
		fn := c.fn
		c.fn = nil
		go l.start(c, fn)
	}
	l.current = c
	l.stats.Resumes++
	c.resume <- struct{}{}
	<-l.parked
	l.current = nil
}

func (l *Loop) start(c *Coroutine, fn func()) {
	<-c.resume
	defer func() {
		if r := recover(); r != nil {
			l.panic = &PanicError{ID: c.id, Value: r, Stack: debug.Stack()}
		}
		c.done = true
		l.live--
		l.parked <- struct{}{}
	}()
	fn()
}

// suspend gives control back to the loop and blocks until c is resumed.
func (l *Loop) suspend(c *Coroutine) {
	l.parked <- struct{}{}
	<-c.resume
}

// Yield re-enqueues the running coroutine and hands control to the loop
// exactly once. The coroutine resumes after every coroutine that was
// already ready has had a turn.
//
// Yield panics if called outside one of this loop's coroutines.
func (l *Loop) Yield() {
	c := l.mustCurrent("Yield")
	l.stats.Yields++
	if !l.runq.Push(c) {
		panic(fmt.Errorf("loop: Yield: %w", ErrRunQueueFull))
	}
	l.suspend(c)
}

// Park suspends the running coroutine without re-enqueueing it. Something
// must later call Ready with the coroutine, or Run will report a stall.
//
// Park panics if called outside one of this loop's coroutines.
func (l *Loop) Park() {
	c := l.mustCurrent("Park")
	l.stats.Parks++
	l.suspend(c)
}

// Ready appends a parked coroutine to the run queue.
func (l *Loop) Ready(c *Coroutine) error {
	if !l.runq.Push(c) {
		return ErrRunQueueFull
	}
	return nil
}

// Current returns the running coroutine, or nil when called from outside
// the loop's coroutines.
func (l *Loop) Current() *Coroutine {
	return l.current
}

// Stats returns a snapshot of the loop's counters.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Pending returns the number of coroutines that have been spawned and
// have not finished.
func (l *Loop) Pending() int {
	return l.live
}

func (l *Loop) mustCurrent(op string) *Coroutine {
	if l.current == nil {
		panic("loop: " + op + " called outside a coroutine")
	}
	return l.current
}

// PanicError carries a panic raised inside a coroutine.
type PanicError struct {
	ID    uint64
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("loop: coroutine %d panicked: %v\n%s", p.ID, p.Value, p.Stack)
}
