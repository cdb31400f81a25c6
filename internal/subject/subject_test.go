package subject_test

import (
	"errors"
	"testing"

	"github.com/randomizedcoder/task-benchmarks/internal/loop"
	"github.com/randomizedcoder/task-benchmarks/internal/subject"
	"github.com/randomizedcoder/task-benchmarks/internal/task"
)

func TestAlreadyComplete(t *testing.T) {
	testCases := []struct {
		name string
		a    task.Awaiter[int]
	}{
		{"Task", subject.AlreadyComplete()},
		{"ValueTask", subject.AlreadyCompleteValue()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.a.IsCompleted() {
				t.Error("expected handle to be complete on return")
			}
			v, err := tc.a.Await()
			if err != nil || v != 100 {
				t.Errorf("expected (100, nil), got (%d, %v)", v, err)
			}
		})
	}
}

func TestYieldOnce_SingleHandoff(t *testing.T) {
	l := loop.New()
	_, err := task.Block(l, func() (struct{}, error) {
		subject.YieldOnce(l)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if y := l.Stats().Yields; y != 1 {
		t.Errorf("expected exactly 1 yield, got %d", y)
	}
}

func TestSingleSyncValue(t *testing.T) {
	v, err := subject.SingleSyncValue().Await()
	if err != nil || v != 1 {
		t.Errorf("expected (1, nil), got (%d, %v)", v, err)
	}
}

func TestSingleSyncFailure(t *testing.T) {
	tk := subject.SingleSyncFailure()
	if !tk.IsCompleted() {
		t.Error("expected failure to be surfaced synchronously")
	}
	v, err := tk.Await()
	if !errors.Is(err, subject.ErrFail) {
		t.Fatalf("expected ErrFail, got %v", err)
	}
	if err.Error() != "fail" {
		t.Errorf("expected message %q, got %q", "fail", err.Error())
	}
	if v != 0 {
		t.Errorf("expected zero value alongside failure, got %d", v)
	}
}

func TestCountLoop(t *testing.T) {
	for _, n := range []int{0, 1, 7, 1000} {
		v, err := subject.CountLoop(n).Await()
		if err != nil || v != n {
			t.Errorf("CountLoop(%d) = (%d, %v), want (%d, nil)", n, v, err, n)
		}
	}
}

func TestCountLoopAsync(t *testing.T) {
	for _, n := range []int{0, 1, 7, 1000} {
		l := loop.New()
		v, err := task.Block(l, func() (int, error) {
			return subject.CountLoopAsync(l, n).Await()
		})
		if err != nil || v != n {
			t.Errorf("CountLoopAsync(%d) = (%d, %v), want (%d, nil)", n, v, err, n)
		}
		if y := l.Stats().Yields; y != uint64(n) {
			t.Errorf("CountLoopAsync(%d): expected %d yields, got %d", n, n, y)
		}
	}
}

func TestChains(t *testing.T) {
	testCases := []struct {
		name       string
		run        func(l *loop.Loop) (int, error)
		want       int
		wantYields uint64
	}{
		{"TenSyncTaskOfTask", func(*loop.Loop) (int, error) { return subject.TenSyncTaskOfTask().Await() }, 1000, 0},
		{"TenSyncTaskOfValue", func(*loop.Loop) (int, error) { return subject.TenSyncTaskOfValue().Await() }, 1000, 0},
		{"TenSyncValueOfTask", func(*loop.Loop) (int, error) { return subject.TenSyncValueOfTask().Await() }, 1000, 0},
		{"TenSyncValueOfValue", func(*loop.Loop) (int, error) { return subject.TenSyncValueOfValue().Await() }, 1000, 0},
		{"TenYieldTask", func(l *loop.Loop) (int, error) { return subject.TenYieldTask(l).Await() }, 100, 10},
		{"TenYieldValue", func(l *loop.Loop) (int, error) { return subject.TenYieldValue(l).Await() }, 100, 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Run twice: no state may leak between calls
			for i := 0; i < 2; i++ {
				l := loop.New()
				got, err := task.Block(l, func() (int, error) { return tc.run(l) })
				if err != nil {
					t.Fatal(err)
				}
				if got != tc.want {
					t.Errorf("expected %d, got %d", tc.want, got)
				}
				if y := l.Stats().Yields; y != tc.wantYields {
					t.Errorf("expected %d yields, got %d", tc.wantYields, y)
				}
			}
		})
	}
}

// A yield chain must not let a sibling's steps run in the middle of a
// step; it may only interleave at its own yield points.
func TestYieldChain_Sequential(t *testing.T) {
	l := loop.New()
	var trace []int

	l.Go(func() {
		v, _ := subject.TenYieldTask(l).Await()
		trace = append(trace, v)
	})
	l.Go(func() {
		for i := 0; i < 3; i++ {
			trace = append(trace, i)
			l.Yield()
		}
	})
	if err := l.Run(); err != nil {
		t.Fatal(err)
	}

	if trace[len(trace)-1] != 100 {
		t.Errorf("expected chain to finish last, trace %v", trace)
	}
	if len(trace) != 4 {
		t.Errorf("expected 4 trace entries, got %v", trace)
	}
}
