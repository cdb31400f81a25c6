package runner

import (
	"errors"
	"fmt"

	"github.com/randomizedcoder/task-benchmarks/internal/loop"
	"github.com/randomizedcoder/task-benchmarks/internal/seq"
	"github.com/randomizedcoder/task-benchmarks/internal/subject"
)

// Mode says whether a subject suspends.
type Mode int

const (
	// Sync subjects resolve without a scheduler handoff and are invoked
	// directly.
	Sync Mode = iota
	// Suspending subjects hand off to the loop at least once and are
	// invoked as the root coroutine of a fresh loop.
	Suspending
)

func (m Mode) String() string {
	switch m {
	case Sync:
		return "sync"
	case Suspending:
		return "suspending"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Params are the tunable inputs handed to every subject invocation.
type Params struct {
	Iterations int // writes per write-loop call
	BufferSize int // bytes per write
	Length     int // count-loop length
	X          int // Values parameter
	FS         subject.FS
}

// ErrUnknownSubject is returned by Lookup and Select.
var ErrUnknownSubject = errors.New("runner: unknown subject")

// Subject is a named benchmark subject.
type Subject struct {
	Name  string
	Group string
	Mode  Mode
	// WantErr, when set, is the failure the subject is expected to
	// produce; it then counts as a successful invocation.
	WantErr error
	// Run receives the invocation's loop, which is nil for Sync subjects.
	Run     func(l *loop.Loop, p Params) (any, error)
}

func (s Subject) accepts(err error) bool {
	if s.WantErr != nil {
		return errors.Is(err, s.WantErr)
	}
	return err == nil
}

// Registry returns every subject in display order.
func Registry() []Subject {
	return []Subject{
		{Name: "AlreadyComplete", Group: "primitive", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return subject.AlreadyComplete().Await()
		}},
		{Name: "AlreadyCompleteValue", Group: "primitive", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return subject.AlreadyCompleteValue().Await()
		}},
		{Name: "YieldOnce", Group: "primitive", Mode: Suspending, Run: func(l *loop.Loop, _ Params) (any, error) {
			subject.YieldOnce(l)
			return nil, nil
		}},

		{Name: "TenSyncTaskOfTask", Group: "chain", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return subject.TenSyncTaskOfTask().Await()
		}},
		{Name: "TenSyncTaskOfValue", Group: "chain", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return subject.TenSyncTaskOfValue().Await()
		}},
		{Name: "TenSyncValueOfTask", Group: "chain", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return subject.TenSyncValueOfTask().Await()
		}},
		{Name: "TenSyncValueOfValue", Group: "chain", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return subject.TenSyncValueOfValue().Await()
		}},
		{Name: "TenYieldTask", Group: "chain", Mode: Suspending, Run: func(l *loop.Loop, _ Params) (any, error) {
			return subject.TenYieldTask(l).Await()
		}},
		{Name: "TenYieldValue", Group: "chain", Mode: Suspending, Run: func(l *loop.Loop, _ Params) (any, error) {
			return subject.TenYieldValue(l).Await()
		}},

		{Name: "SingleSyncValue", Group: "simple", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return subject.SingleSyncValue().Await()
		}},
		{Name: "SingleSyncFailure", Group: "simple", Mode: Sync, WantErr: subject.ErrFail, Run: func(*loop.Loop, Params) (any, error) {
			return subject.SingleSyncFailure().Await()
		}},
		{Name: "CountLoop", Group: "simple", Mode: Sync, Run: func(_ *loop.Loop, p Params) (any, error) {
			return subject.CountLoop(p.Length).Await()
		}},
		{Name: "CountLoopAsync", Group: "simple", Mode: Suspending, Run: func(l *loop.Loop, p Params) (any, error) {
			return subject.CountLoopAsync(l, p.Length).Await()
		}},

		{Name: "Values", Group: "sequence", Mode: Sync, Run: func(_ *loop.Loop, p Params) (any, error) {
			return seq.SumPuller(seq.PullValues(p.X)), nil
		}},
		{Name: "NestedRange", Group: "sequence", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return seq.Sum(seq.Nested()), nil
		}},
		{Name: "NestedPull", Group: "sequence", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return seq.SumPuller(seq.NestedPull(3)), nil
		}},
		{Name: "NestedCoro", Group: "sequence", Mode: Sync, Run: func(*loop.Loop, Params) (any, error) {
			return seq.SumPuller(seq.NestedCoro(3)), nil
		}},

		{Name: "WriteFileLoop", Group: "io", Mode: Sync, Run: func(_ *loop.Loop, p Params) (any, error) {
			return subject.WriteFileLoop(p.fs(), p.Iterations, p.BufferSize).Await()
		}},
		{Name: "WriteFileLoopValue", Group: "io", Mode: Sync, Run: func(_ *loop.Loop, p Params) (any, error) {
			return subject.WriteFileLoopValue(p.fs(), p.Iterations, p.BufferSize).Await()
		}},
	}
}

func (p Params) fs() subject.FS {
	if p.FS == nil {
		return subject.OSFS{}
	}
	return p.FS
}

// Lookup returns the subject called name.
func Lookup(name string) (Subject, error) {
	for _, s := range Registry() {
		if s.Name == name {
			return s, nil
		}
	}
	return Subject{}, fmt.Errorf("%w: %q", ErrUnknownSubject, name)
}

// Select returns the named subjects in the given order, or every subject
// when names is empty.
func Select(names []string) ([]Subject, error) {
	if len(names) == 0 {
		return Registry(), nil
	}
	out := make([]Subject, 0, len(names))
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
