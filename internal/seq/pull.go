package seq

import "iter"

// Puller is a pull-driven, single-use sequence.
type Puller interface {
	// Next returns the next element, or false once the sequence is
	// exhausted or stopped.
	Next() (int, bool)

	// Stop releases the producer. Safe to call multiple times and
	// after exhaustion.
	Stop()
}

// IterPuller adapts a push sequence with iter.Pull.
type IterPuller struct {
	next func() (int, bool)
	stop func()
}

// Pull returns a Puller over s.
func Pull(s iter.Seq[int]) *IterPuller {
	next, stop := iter.Pull(s)
	return &IterPuller{next: next, stop: stop}
}

// Next returns the next element of the sequence.
func (p *IterPuller) Next() (int, bool) {
	return p.next()
}

// Stop ends the sequence early.
func (p *IterPuller) Stop() {
	p.stop()
}

// PullValues returns a Puller over Values(x).
func PullValues(x int) Puller {
	return Pull(Values(x))
}

// NestedPull is the pull-at-every-level form of NestedN: each of the six
// levels is consumed through its own iter.Pull puller, and the composite
// is itself a puller.
func NestedPull(outer int) Puller {
	return Pull(func(yield func(int) bool) {
		walk(PullValues, outer, 1, 0, yield)
	})
}

// walk consumes one level opened by open and recurses into the next,
// emitting the elements of the deepest level. It returns false when emit
// asks to stop.
func walk(open func(x int) Puller, outer, level, prev int, emit func(int) bool) bool {
	x := outer
	if level == Depth {
		x = prev
	}
	p := open(x)
	defer p.Stop()

	for {
		v, ok := p.Next()
		if !ok {
			return true
		}
		if level == Depth {
			if !emit(v) {
				return false
			}
			continue
		}
		if !walk(open, outer, level+1, v, emit) {
			return false
		}
	}
}

// Drain consumes p to exhaustion, stops it and returns the elements.
func Drain(p Puller) []int {
	defer p.Stop()
	var out []int
	for {
		v, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// SumPuller consumes p to exhaustion, stops it and returns the total.
func SumPuller(p Puller) int {
	defer p.Stop()
	total := 0
	for {
		v, ok := p.Next()
		if !ok {
			return total
		}
		total += v
	}
}
