package subject

import (
	"github.com/randomizedcoder/task-benchmarks/internal/loop"
	"github.com/randomizedcoder/task-benchmarks/internal/task"
)

// Ten-step chains. The name reads outer-handle Of inner-handle:
// TenSyncTaskOfValue returns a *task.Task built from ten awaited
// AlreadyCompleteValue handles. Each step is awaited before the next one
// is created.

// TenSyncTaskOfTask sums ten AlreadyComplete results into a *task.Task.
func TenSyncTaskOfTask() *task.Task[int] {
	return task.Run(sumTask)
}

// TenSyncTaskOfValue sums ten AlreadyCompleteValue results into a *task.Task.
func TenSyncTaskOfValue() *task.Task[int] {
	return task.Run(sumValue)
}

// TenSyncValueOfTask sums ten AlreadyComplete results into a task.ValueTask.
func TenSyncValueOfTask() task.ValueTask[int] {
	return task.RunValue(sumTask)
}

// TenSyncValueOfValue sums ten AlreadyCompleteValue results into a task.ValueTask.
func TenSyncValueOfValue() task.ValueTask[int] {
	return task.RunValue(sumValue)
}

func sumTask() (int, error) {
	total := 0
	for i := 0; i < ChainLength; i++ {
		x, err := AlreadyComplete().Await()
		if err != nil {
			return 0, err
		}
		total += x
	}
	return total, nil
}

func sumValue() (int, error) {
	total := 0
	for i := 0; i < ChainLength; i++ {
		x, err := AlreadyCompleteValue().Await()
		if err != nil {
			return 0, err
		}
		total += x
	}
	return total, nil
}

// TenYieldTask yields ten times, then completes a *task.Task with 100.
func TenYieldTask(l *loop.Loop) *task.Task[int] {
	return task.Run(func() (int, error) {
		return yieldChain(l), nil
	})
}

// TenYieldValue yields ten times, then completes a task.ValueTask with 100.
func TenYieldValue(l *loop.Loop) task.ValueTask[int] {
	return task.RunValue(func() (int, error) {
		return yieldChain(l), nil
	})
}

func yieldChain(l *loop.Loop) int {
	for i := 0; i < ChainLength; i++ {
		YieldOnce(l)
	}
	return CompletedValue
}
