// Package seq provides lazy integer sequences for benchmarking
// per-element production cost.
//
// Sequences are produced as iter.Seq[int] (push style) and consumed
// either by ranging over them or through a Puller (pull style). Two
// Puller implementations are offered:
//   - Pull: wraps the standard library's iter.Pull
//   - Coro: a coroutine-backed producer built on github.com/0x5a17ed/coro
//
// Every Puller is single-use: once exhausted or stopped, Next returns
// (0, false) forever.
package seq

import "iter"

// Depth is the number of nested levels driven by the composite producers.
const Depth = 6

// Values yields 1 and 2, then 3 and 4 if x >= 2.
func Values(x int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if !yield(1) || !yield(2) {
			return
		}
		if x >= 2 {
			if !yield(3) {
				return
			}
			yield(4)
		}
	}
}

// Nested is NestedN(3).
func Nested() iter.Seq[int] {
	return NestedN(3)
}

// NestedN drives six nested levels of Values. Levels one to five each
// consume a fresh Values(outer); the sixth consumes Values(i5), where i5
// is the current element of the fifth level. Elements of the sixth level
// are re-emitted in order, outermost level varying slowest.
func NestedN(outer int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for range Values(outer) {
			for range Values(outer) {
				for range Values(outer) {
					for range Values(outer) {
						for i5 := range Values(outer) {
							for i6 := range Values(i5) {
								if !yield(i6) {
									return
								}
							}
						}
					}
				}
			}
		}
	}
}

// Sum consumes s by ranging over it. This is the synchronous loop the
// pull-based consumers are measured against.
func Sum(s iter.Seq[int]) int {
	total := 0
	for v := range s {
		total += v
	}
	return total
}

// Collect returns every element of s in order.
func Collect(s iter.Seq[int]) []int {
	var out []int
	for v := range s {
		out = append(out, v)
	}
	return out
}
