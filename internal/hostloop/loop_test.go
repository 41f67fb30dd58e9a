package hostloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	l := New()
	ctx, cancel := context.WithCancel(context.Background())

	returned := make(chan error, 1)
	go func() { returned <- l.Run(ctx) }()

	cancel()

	select {
	case err := <-returned:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestLoop_WakeInvokesHandler(t *testing.T) {
	t.Parallel()

	l := New()
	var wakes atomic.Int64
	l.OnWake(func() { wakes.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	l.Wake()

	require.Eventually(t, func() bool { return wakes.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestLoop_WakesCoalesceWhileNotRunning(t *testing.T) {
	t.Parallel()

	l := New()
	var wakes atomic.Int64
	l.OnWake(func() { wakes.Add(1) })

	// Several wakes before the loop runs collapse into one pending signal.
	l.Wake()
	l.Wake()
	l.Wake()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	require.Eventually(t, func() bool { return wakes.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, wakes.Load())
}

func TestLoop_SubmitRunsTasksInOrder(t *testing.T) {
	t.Parallel()

	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	results := make(chan int, 3)
	for i := 0; i < 3; i++ {
		i := i
		l.Submit(func() { results <- i })
	}

	for want := 0; want < 3; want++ {
		select {
		case got := <-results:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("task %d never ran", want)
		}
	}
}

func TestLoop_TasksRunOnOneGoroutine(t *testing.T) {
	t.Parallel()

	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	// All tasks mutate shared state without any synchronization of their
	// own; the race detector verifies serialization.
	counter := 0
	got := make(chan int, 1)
	for i := 0; i < 100; i++ {
		l.Submit(func() { counter++ })
	}
	l.Submit(func() { got <- counter })

	select {
	case final := <-got:
		assert.Equal(t, 100, final)
	case <-time.After(time.Second):
		t.Fatal("submitted tasks did not finish")
	}
}
