// Package runner times benchmark subjects outside of `go test -bench`.
//
// A Runner invokes each subject Warmup times untimed, then Iterations
// times timed, giving every invocation a fresh loop so that no scheduler
// state carries over. Between invocations it polls a cancel.Canceler
// (to stop early on a signal or timeout) and a tick.Ticker (to log
// progress on long runs).
package runner

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/randomizedcoder/task-benchmarks/internal/cancel"
	"github.com/randomizedcoder/task-benchmarks/internal/loop"
	"github.com/randomizedcoder/task-benchmarks/internal/task"
)

var (
	// ErrCancelled is recorded on results cut short by the Canceler.
	ErrCancelled = errors.New("runner: cancelled")

	// ErrNondeterministic is recorded when a subject returns different
	// values for identical parameters.
	ErrNondeterministic = errors.New("runner: subject result changed between invocations")
)

// Result holds the outcome of timing a single subject.
type Result struct {
	Subject      Subject
	Success      bool
	Value        any           // value returned by the last invocation
	Iterations   int           // measured invocations completed
	TotalTime    time.Duration // total time for all measured invocations
	AvgTime      time.Duration
	MinTime      time.Duration
	MaxTime      time.Duration
	OpsPerSecond float64
	Err          error
}

// Runner executes subjects and records their timings.
type Runner struct {
	Warmup     int
	Iterations int
	Canceler   cancel.Canceler // optional
	Progress   ProgressTicker  // optional
	Log        *slog.Logger
}

// ProgressTicker is the subset of tick.Ticker the runner needs.
type ProgressTicker interface {
	Tick() bool
	Reset()
}

// New creates a Runner with no canceler, no progress ticker and a
// discarding logger.
func New(warmup, iterations int) *Runner {
	return &Runner{
		Warmup:     warmup,
		Iterations: iterations,
		Log:        slog.New(slog.DiscardHandler),
	}
}

// Invoke runs s once with p. Suspending subjects run as the root
// coroutine of a fresh loop; sync subjects are called directly with a
// nil loop.
func Invoke(s Subject, p Params) (any, error) {
	return invokeOn(loopFor(s), s, p)
}

// loopFor returns the loop an invocation of s needs, or nil for sync
// subjects. RunSubject calls it outside the timed window.
func loopFor(s Subject) *loop.Loop {
	if s.Mode == Suspending {
		return loop.New()
	}
	return nil
}

func invokeOn(l *loop.Loop, s Subject, p Params) (any, error) {
	if l == nil {
		return s.Run(nil, p)
	}
	return task.Block(l, func() (any, error) {
		return s.Run(l, p)
	})
}

func (r *Runner) cancelled() bool {
	return r.Canceler != nil && r.Canceler.Done()
}

// cause asks the Canceler why it fired, when it can say.
func (r *Runner) cause() error {
	if c, ok := r.Canceler.(interface{ Err() error }); ok {
		return c.Err()
	}
	return nil
}

func (r *Runner) log() *slog.Logger {
	if r.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Log
}

// RunSubject times s with p.
func (r *Runner) RunSubject(s Subject, p Params) Result {
	log := r.log().With("subject", s.Name)
	res := Result{Subject: s}

	for i := 0; i < r.Warmup; i++ {
		if r.cancelled() {
			res.Err = ErrCancelled
			return res
		}
		if _, err := Invoke(s, p); !s.accepts(err) {
			res.Err = fmt.Errorf("warmup %d: %w", i+1, err)
			return res
		}
	}

	if r.Progress != nil {
		r.Progress.Reset()
	}

	var first any
	for i := 0; i < r.Iterations; i++ {
		if r.cancelled() {
			res.Err = ErrCancelled
			break
		}

		l := loopFor(s)
		start := time.Now()
		v, err := invokeOn(l, s, p)
		d := time.Since(start)

		if !s.accepts(err) {
			if err == nil {
				err = fmt.Errorf("expected %v, got success", s.WantErr)
			}
			res.Err = fmt.Errorf("iteration %d: %w", i+1, err)
			break
		}
		if i == 0 {
			first = v
		} else if !reflect.DeepEqual(v, first) {
			res.Err = fmt.Errorf("%w: iteration %d returned %v, first returned %v", ErrNondeterministic, i+1, v, first)
			break
		}

		res.Value = v
		res.Iterations++
		res.TotalTime += d
		if res.Iterations == 1 || d < res.MinTime {
			res.MinTime = d
		}
		if d > res.MaxTime {
			res.MaxTime = d
		}

		if r.Progress != nil && r.Progress.Tick() {
			log.Info("progress", "done", res.Iterations, "of", r.Iterations, "elapsed", res.TotalTime)
		}
	}

	if res.Iterations > 0 {
		res.AvgTime = res.TotalTime / time.Duration(res.Iterations)
		if res.TotalTime > 0 {
			res.OpsPerSecond = float64(res.Iterations) / res.TotalTime.Seconds()
		}
	}
	res.Success = res.Err == nil && res.Iterations == r.Iterations

	if errors.Is(res.Err, ErrCancelled) {
		log.Warn("cancelled", "done", res.Iterations, "of", r.Iterations, "cause", r.cause())
	} else if res.Err != nil {
		log.Error("subject failed", "err", res.Err)
	}
	return res
}

// Run times every subject in order. Once the Canceler fires, the
// remaining subjects are reported as cancelled without being invoked.
func (r *Runner) Run(subjects []Subject, p Params) []Result {
	results := make([]Result, 0, len(subjects))
	for _, s := range subjects {
		if r.cancelled() {
			results = append(results, Result{Subject: s, Err: ErrCancelled})
			continue
		}
		r.log().Debug("running", "subject", s.Name, "mode", s.Mode)
		results = append(results, r.RunSubject(s, p))
	}
	return results
}
