package runner_test

import (
	"testing"
	"time"

	"github.com/randomizedcoder/task-benchmarks/internal/cancel"
	"github.com/randomizedcoder/task-benchmarks/internal/runner"
	"github.com/randomizedcoder/task-benchmarks/internal/tick"
)

// Sink variable to prevent compiler from eliminating benchmark loops
var sinkAny any

// BenchmarkInvoke measures each subject through the runner's invocation
// path, including the fresh loop each suspending invocation gets.
func BenchmarkInvoke(b *testing.B) {
	p := testParams()
	for _, s := range runner.Registry() {
		b.Run(s.Name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			var v any
			for i := 0; i < b.N; i++ {
				v, _ = runner.Invoke(s, p)
			}
			sinkAny = v
		})
	}
}

// BenchmarkRunner_Overhead measures the per-iteration bookkeeping the
// runner adds around the cheapest subject: cancel poll, tick poll and
// timing.
func BenchmarkRunner_Overhead(b *testing.B) {
	s, _ := runner.Lookup("AlreadyCompleteValue")
	r := runner.New(0, b.N)
	r.Canceler = cancel.NewAtomic()
	r.Progress = tick.NewBatch(time.Hour, tick.DefaultEvery)
	b.ReportAllocs()
	b.ResetTimer()

	res := r.RunSubject(s, testParams())
	sinkAny = res.Value
}
