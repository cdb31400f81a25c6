package task

import (
	"reflect"
	"sync"

	"github.com/randomizedcoder/task-benchmarks/internal/loop"
)

// ValueTask is a value-type completion handle.
//
// When the result is known up front the ValueTask carries it inline and
// nothing is allocated. When the result is pending the ValueTask points
// at a source borrowed from a sync.Pool, which is returned to the pool
// as soon as the result is awaited. A pending ValueTask must therefore
// be awaited at most once; a second Await returns ErrConsumed.
//
// The zero ValueTask is completed with the zero value.
type ValueTask[T any] struct {
	value T
	err   error
	src   *source[T]
	token uint32
}

// source backs a pending ValueTask.
type source[T any] struct {
	loop   *loop.Loop
	done   bool
	value  T
	err    error
	waiter *loop.Coroutine
	token  uint32 // bumped on every reuse
}

// sourcePools holds one *sync.Pool per result type.
var sourcePools sync.Map // reflect.Type -> *sync.Pool

func poolFor[T any]() *sync.Pool {
	key := reflect.TypeFor[T]()
	if p, ok := sourcePools.Load(key); ok {
		return p.(*sync.Pool)
	}
	p, _ := sourcePools.LoadOrStore(key, &sync.Pool{
		New: func() any { return new(source[T]) },
	})
	return p.(*sync.Pool)
}

func getSource[T any]() *source[T] {
	return poolFor[T]().Get().(*source[T])
}

func (s *source[T]) release() {
	var zero T
	s.loop = nil
	s.done = false
	s.value = zero
	s.err = nil
	s.waiter = nil
	s.token++
	poolFor[T]().Put(s)
}

// ValueOf returns a completed ValueTask holding v.
func ValueOf[T any](v T) ValueTask[T] {
	return ValueTask[T]{value: v}
}

// ValueError returns a completed ValueTask holding err.
func ValueError[T any](err error) ValueTask[T] {
	return ValueTask[T]{err: err}
}

// RunValue executes fn on the caller and returns a completed ValueTask
// holding its result. It is the allocation-free counterpart of Run.
func RunValue[T any](fn func() (T, error)) ValueTask[T] {
	v, err := fn()
	return ValueTask[T]{value: v, err: err}
}

// GoValue starts fn on a new coroutine of l and returns a pending
// ValueTask backed by a pooled source.
func GoValue[T any](l *loop.Loop, fn func() (T, error)) ValueTask[T] {
	s := getSource[T]()
	s.loop = l
	tok := s.token
	_, err := l.Go(func() {
		s.value, s.err = fn()
		s.done = true
		if w := s.waiter; w != nil {
			s.waiter = nil
			_ = s.loop.Ready(w)
		}
	})
	if err != nil {
		s.release()
		return ValueError[T](err)
	}
	return ValueTask[T]{src: s, token: tok}
}

// Await returns the result, parking the running coroutine until the
// source completes if necessary. A pending source is recycled on return.
func (v ValueTask[T]) Await() (T, error) {
	s := v.src
	if s == nil {
		return v.value, v.err
	}
	var zero T
	if s.token != v.token || s.waiter != nil {
		return zero, ErrConsumed
	}
	if !s.done {
		c := s.loop.Current()
		if c == nil {
			return zero, ErrPending
		}
		s.waiter = c
		s.loop.Park()
	}
	val, err := s.value, s.err
	s.release()
	return val, err
}

// IsCompleted reports whether Await would return without suspending.
func (v ValueTask[T]) IsCompleted() bool {
	return v.src == nil || (v.src.token == v.token && v.src.done)
}

// Pooled reports whether the ValueTask is backed by a pooled source.
func (v ValueTask[T]) Pooled() bool {
	return v.src != nil
}
