package task_test

import (
	"testing"

	"github.com/randomizedcoder/task-benchmarks/internal/loop"
	"github.com/randomizedcoder/task-benchmarks/internal/task"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkInt int
var sinkErr error

// Completed handles: the cost of the abstraction itself

func BenchmarkTask_FromResult_Await(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	var v int
	var err error
	for i := 0; i < b.N; i++ {
		v, err = task.FromResult(i).Await()
	}
	sinkInt = v
	sinkErr = err
}

func BenchmarkTask_ValueOf_Await(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	var v int
	var err error
	for i := 0; i < b.N; i++ {
		v, err = task.ValueOf(i).Await()
	}
	sinkInt = v
	sinkErr = err
}

// Interface dispatch

func BenchmarkTask_FromResult_Interface(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	var v int
	for i := 0; i < b.N; i++ {
		var a task.Awaiter[int] = task.FromResult(i)
		v, _ = a.Await()
	}
	sinkInt = v
}

func BenchmarkTask_ValueOf_Interface(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	var v int
	for i := 0; i < b.N; i++ {
		var a task.Awaiter[int] = task.ValueOf(i)
		v, _ = a.Await()
	}
	sinkInt = v
}

// Pending handles: one coroutine per await

func BenchmarkTask_Go_Await(b *testing.B) {
	l := loop.New()
	b.ReportAllocs()
	b.ResetTimer()

	l.Go(func() {
		for i := 0; i < b.N; i++ {
			sinkInt, sinkErr = task.Go(l, func() (int, error) { return 1, nil }).Await()
		}
	})
	if err := l.Run(); err != nil {
		b.Fatal(err)
	}
}

func BenchmarkTask_GoValue_Await(b *testing.B) {
	l := loop.New()
	b.ReportAllocs()
	b.ResetTimer()

	l.Go(func() {
		for i := 0; i < b.N; i++ {
			sinkInt, sinkErr = task.GoValue(l, func() (int, error) { return 1, nil }).Await()
		}
	})
	if err := l.Run(); err != nil {
		b.Fatal(err)
	}
}
