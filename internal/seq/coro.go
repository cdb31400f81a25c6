package seq

import (
	"iter"

	"github.com/0x5a17ed/coro"
)

// stopSignal is passed into a coroutine to ask it to return.
type stopSignal struct{}

// CoroPuller runs a push sequence inside a coroutine and hands out one
// element per resume.
type CoroPuller struct {
	resume func(any) (int, bool)
	done   bool
}

// Coro returns a coroutine-backed Puller over s.
func Coro(s iter.Seq[int]) *CoroPuller {
	p := &CoroPuller{}
	p.resume = coro.NewSub(func(in any, yield func(int) any) {
		if _, stop := in.(stopSignal); stop {
			return
		}
		s(func(v int) bool {
			_, stop := yield(v).(stopSignal)
			return !stop
		})
	}).Resume
	return p
}

// Next resumes the coroutine until it yields the next element.
func (p *CoroPuller) Next() (int, bool) {
	if p.done {
		return 0, false
	}
	v, ok := p.resume(nil)
	if !ok {
		p.done = true
		return 0, false
	}
	return v, true
}

// Stop resumes the coroutine one last time with a stop signal so it can
// return.
func (p *CoroPuller) Stop() {
	if p.done {
		return
	}
	p.done = true
	p.resume(stopSignal{})
}

// NewCoro returns a coroutine-backed Puller over Values(x).
func NewCoro(x int) Puller {
	return Coro(Values(x))
}

// NestedCoro is NestedPull with every level, and the composite itself,
// running as a coroutine.
func NestedCoro(outer int) Puller {
	return Coro(func(yield func(int) bool) {
		walk(NewCoro, outer, 1, 0, yield)
	})
}
