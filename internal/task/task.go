// Package task provides completion handles for work running on a loop.
//
// This package offers two implementations of the Awaiter interface:
//   - *Task: Heap-allocated handle, shared by reference
//   - ValueTask: Value-type handle that stays on the stack when the
//     result is already available, and borrows a pooled source otherwise
//
// Both come with the same set of builders:
//
//	Task        ValueTask      meaning
//	FromResult  ValueOf        already completed with a value
//	FromError   ValueError     already completed with an error
//	Run         RunValue       run an async body inline on the caller
//	Go          GoValue        run an async body on a new coroutine
//
// Await on a completed handle never suspends. Await on a pending handle
// parks the calling coroutine until the producing coroutine finishes.
package task

import (
	"errors"

	"github.com/randomizedcoder/task-benchmarks/internal/loop"
)

var (
	// ErrPending is returned when a pending handle is awaited from
	// outside the loop, where there is no coroutine to park.
	ErrPending = errors.New("task: result not yet available")

	// ErrConsumed is returned when a pending ValueTask is awaited
	// after its result has already been taken.
	ErrConsumed = errors.New("task: value task already awaited")
)

// Awaiter is the result-producing interface shared by both handle kinds.
type Awaiter[T any] interface {
	// Await returns the result, parking the running coroutine first if
	// the result is not yet available.
	Await() (T, error)

	// IsCompleted reports whether Await would return without suspending.
	IsCompleted() bool
}

// Task is a heap-allocated completion handle.
//
// Every builder allocates a new Task. Completed tasks may be awaited any
// number of times. A zero Task is pending with no loop to complete it;
// awaiting it returns ErrPending.
type Task[T any] struct {
	loop    *loop.Loop
	done    bool
	value   T
	err     error
	waiters []*loop.Coroutine
}

// FromResult returns a completed Task holding v.
func FromResult[T any](v T) *Task[T] {
	return &Task[T]{done: true, value: v}
}

// FromError returns a completed Task holding err.
func FromError[T any](err error) *Task[T] {
	return &Task[T]{done: true, err: err}
}

// Run executes fn on the caller and returns a Task holding its result.
//
// Suspensions inside fn suspend the caller's coroutine, so by the time
// Run returns the Task is always complete.
func Run[T any](fn func() (T, error)) *Task[T] {
	v, err := fn()
	return &Task[T]{done: true, value: v, err: err}
}

// Go starts fn on a new coroutine of l and returns a pending Task.
// If the coroutine cannot be scheduled the Task completes with that error.
func Go[T any](l *loop.Loop, fn func() (T, error)) *Task[T] {
	t := &Task[T]{loop: l}
	if _, err := l.Go(func() { t.complete(fn()) }); err != nil {
		t.done = true
		t.err = err
	}
	return t
}

func (t *Task[T]) complete(v T, err error) {
	t.value, t.err, t.done = v, err, true
	for _, w := range t.waiters {
		// A waiter that cannot be re-queued stays parked and Run
		// reports the stall.
		_ = t.loop.Ready(w)
	}
	t.waiters = nil
}

// Await returns the Task's result, parking the running coroutine until
// the Task completes if necessary.
func (t *Task[T]) Await() (T, error) {
	if !t.done {
		if t.loop == nil {
			var zero T
			return zero, ErrPending
		}
		c := t.loop.Current()
		if c == nil {
			var zero T
			return zero, ErrPending
		}
		t.waiters = append(t.waiters, c)
		t.loop.Park()
	}
	return t.value, t.err
}

// IsCompleted reports whether the Task has a result.
func (t *Task[T]) IsCompleted() bool {
	return t.done
}

// Result returns the result of a completed Task, or ErrPending.
// Unlike Await it never parks, so it is safe to call from outside the loop.
func (t *Task[T]) Result() (T, error) {
	if !t.done {
		var zero T
		return zero, ErrPending
	}
	return t.value, t.err
}

// Block runs fn as the root coroutine of l, drives l until it is idle,
// and returns fn's result. It is the bridge between synchronous callers
// and code that suspends.
func Block[T any](l *loop.Loop, fn func() (T, error)) (T, error) {
	t := Go(l, fn)
	if err := l.Run(); err != nil {
		var zero T
		return zero, err
	}
	return t.Result()
}
