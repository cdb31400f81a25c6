// Package subject provides the benchmark subjects: small units of async
// work whose cost is dominated by suspension, resumption and completion
// handle overhead.
//
// Subjects come in pairs that differ only in handle representation:
// the plain name returns a heap-allocated *task.Task, the Value suffix
// returns a task.ValueTask. Subjects taking a *loop.Loop suspend and must
// be called from inside one of that loop's coroutines (see task.Block).
// Every other subject completes synchronously and may be called anywhere.
package subject

import (
	"errors"

	"github.com/randomizedcoder/task-benchmarks/internal/loop"
	"github.com/randomizedcoder/task-benchmarks/internal/task"
)

// CompletedValue is the result of AlreadyComplete, and of the yield chains.
const CompletedValue = 100

// ChainLength is the number of dependent awaits in each chain subject.
const ChainLength = 10

// ErrFail is the deliberate failure raised by SingleSyncFailure.
var ErrFail = errors.New("fail")

// AlreadyComplete returns a heap handle that is complete with 100.
func AlreadyComplete() *task.Task[int] {
	return task.FromResult(CompletedValue)
}

// AlreadyCompleteValue returns a value handle that is complete with 100.
func AlreadyCompleteValue() task.ValueTask[int] {
	return task.ValueOf(CompletedValue)
}

// YieldOnce hands control to the loop exactly once.
func YieldOnce(l *loop.Loop) {
	l.Yield()
}

// SingleSyncValue completes immediately with 1.
func SingleSyncValue() *task.Task[int] {
	return task.Run(func() (int, error) {
		return 1, nil
	})
}

// SingleSyncFailure completes immediately with ErrFail.
func SingleSyncFailure() *task.Task[int] {
	return task.Run(func() (int, error) {
		return 0, ErrFail
	})
}

// CountLoop counts from 0 to length without suspending.
func CountLoop(length int) *task.Task[int] {
	return task.Run(func() (int, error) {
		i := 0
		for i < length {
			i++
		}
		return i, nil
	})
}

// CountLoopAsync counts from 0 to length, yielding once per increment.
func CountLoopAsync(l *loop.Loop, length int) *task.Task[int] {
	return task.Run(func() (int, error) {
		i := 0
		for i < length {
			YieldOnce(l)
			i++
		}
		return i, nil
	})
}
