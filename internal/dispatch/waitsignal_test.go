package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// waitAsync runs s.Wait on its own goroutine and returns a channel that
// closes when the wait returns.
func waitAsync(s *WaitSignal) <-chan struct{} {
	returned := make(chan struct{})
	go func() {
		s.Wait()
		close(returned)
	}()
	return returned
}

func TestWaitSignal_DoneReleasesWaiter(t *testing.T) {
	t.Parallel()

	s := NewWaitSignal()
	returned := waitAsync(s)

	// The waiter must still be blocked before Done.
	select {
	case <-returned:
		t.Fatal("Wait returned before Done was called")
	case <-time.After(50 * time.Millisecond):
	}

	s.Done()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Done")
	}
}

func TestWaitSignal_DoneBeforeWait(t *testing.T) {
	t.Parallel()

	s := NewWaitSignal()
	s.Done()

	// The flag persists across the call gap, so this must not block.
	returned := waitAsync(s)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked even though Done was already called")
	}
}

func TestWaitSignal_DoneIsNotCumulative(t *testing.T) {
	t.Parallel()

	s := NewWaitSignal()

	// Two Done calls before any Wait collapse into one release.
	s.Done()
	s.Done()

	first := waitAsync(s)
	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("first Wait did not return immediately")
	}

	// The first Wait consumed the flag; a second Wait with no intervening
	// Done must block.
	second := waitAsync(s)
	select {
	case <-second:
		t.Fatal("second Wait returned without a second Done")
	case <-time.After(100 * time.Millisecond):
	}

	// Release the goroutine so the test does not leak it.
	s.Done()
	require.Eventually(t, func() bool {
		select {
		case <-second:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestWaitSignal_RoundTripRepeats(t *testing.T) {
	t.Parallel()

	s := NewWaitSignal()

	// Each round trip consumes exactly one Done.
	for i := 0; i < 3; i++ {
		returned := waitAsync(s)
		s.Done()
		select {
		case <-returned:
		case <-time.After(time.Second):
			t.Fatalf("round trip %d did not complete", i)
		}
	}
}
