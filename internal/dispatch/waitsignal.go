package dispatch

import "sync"

// WaitSignal is the one-shot handshake between a worker goroutine and the
// host loop: the worker blocks in Wait until a handler calls Done.
//
// The flag has store semantics, not event semantics: Done before Wait is
// absorbed by the flag, so the next Wait returns immediately. Two Done calls
// with no Wait in between collapse into one release. Only one waiter per
// instance is supported; concurrent waiters race for the same flag.
type WaitSignal struct {
	mu   sync.Mutex
	cond *sync.Cond
	done bool
}

// NewWaitSignal returns a signal in the idle state.
func NewWaitSignal() *WaitSignal {
	s := &WaitSignal{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Wait blocks until Done has been called, then consumes the flag. There is
// no timeout: a handler that never calls Done blocks the caller forever.
func (s *WaitSignal) Wait() {
	s.mu.Lock()
	for !s.done {
		s.cond.Wait()
	}
	s.done = false
	s.mu.Unlock()
}

// Done marks the pending round trip complete and releases the waiter, if
// any. Safe to call with no waiter present.
func (s *WaitSignal) Done() {
	s.mu.Lock()
	s.done = true
	s.cond.Signal()
	s.mu.Unlock()
}
