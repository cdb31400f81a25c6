package cancel_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/randomizedcoder/task-benchmarks/internal/cancel"
)

func TestAtomicCanceler_Reset(t *testing.T) {
	c := cancel.NewAtomic()

	c.Cancel()
	if !c.Done() {
		t.Error("expected Done() = true after Cancel()")
	}

	c.Reset()
	if c.Done() {
		t.Error("expected Done() = false after Reset()")
	}
}

func TestAtomicFromContext(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	c := cancel.NewAtomicFromContext(ctx)

	if c.Done() {
		t.Fatal("expected Done() = false before the context ends")
	}
	stop()

	deadline := time.Now().Add(time.Second)
	for !c.Done() {
		if time.Now().After(deadline) {
			t.Fatal("expected Done() = true after the context was cancelled")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAtomicFromContext_Background(t *testing.T) {
	c := cancel.NewAtomicFromContext(context.Background())
	if c.Done() {
		t.Error("expected a background-derived canceler to start live")
	}
	c.Cancel()
	if !c.Done() {
		t.Error("expected Done() = true after Cancel()")
	}
}

func TestContextCanceler_Context(t *testing.T) {
	c := cancel.NewContext(context.Background())

	ctx := c.Context()
	select {
	case <-ctx.Done():
		t.Error("expected context to not be done")
	default:
	}
	if c.Err() != nil {
		t.Errorf("expected nil Err() while running, got %v", c.Err())
	}

	c.Cancel()

	select {
	case <-ctx.Done():
	default:
		t.Error("expected context to be done after Cancel()")
	}
	if !errors.Is(c.Err(), cancel.ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", c.Err())
	}
}

func TestContextCanceler_ParentCancelled(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())
	c := cancel.NewContext(parent)

	stop()
	<-c.Context().Done()
	if !errors.Is(c.Err(), context.Canceled) {
		t.Errorf("expected context.Canceled from parent, got %v", c.Err())
	}
}

func TestContextCanceler_Timeout(t *testing.T) {
	ctx, stop := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer stop()
	c := cancel.NewContext(ctx)

	<-c.Context().Done()
	if !c.Done() {
		t.Error("expected Done() = true after timeout")
	}
	if !errors.Is(c.Err(), context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", c.Err())
	}
}

func TestNew(t *testing.T) {
	for _, kind := range []string{"", cancel.KindAtomic, cancel.KindContext} {
		c, err := cancel.New(kind, context.Background())
		if err != nil {
			t.Fatalf("New(%q): %v", kind, err)
		}
		if c.Done() {
			t.Errorf("New(%q): expected Done() = false initially", kind)
		}
	}

	if _, err := cancel.New("channel", context.Background()); !errors.Is(err, cancel.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

// Test that both implementations satisfy the interface
func TestCancelerInterface(t *testing.T) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.c.Done() {
				t.Error("expected Done() = false initially")
			}

			tc.c.Cancel()
			if !tc.c.Done() {
				t.Error("expected Done() = true after Cancel()")
			}

			// Verify idempotent
			tc.c.Cancel()
			if !tc.c.Done() {
				t.Error("expected Done() = true after second Cancel()")
			}
		})
	}
}

// TestCanceler_Race tests concurrent Done() and Cancel().
// Run with: go test -race ./internal/cancel
func TestCanceler_Race(t *testing.T) {
	testCases := []struct {
		name string
		c    cancel.Canceler
	}{
		{"Context", cancel.NewContext(context.Background())},
		{"Atomic", cancel.NewAtomic()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 10000; j++ {
						_ = tc.c.Done()
					}
				}()
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				tc.c.Cancel()
			}()
			wg.Wait()

			if !tc.c.Done() {
				t.Error("expected Done() = true after Cancel()")
			}
		})
	}
}
