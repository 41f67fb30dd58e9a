package dispatch

import (
	"errors"
	"sync"
)

// ErrSlotBusy is returned by a dispatch whose previous descriptor has not
// yet been drained by the host loop. The notifier carries one in-flight
// dispatch at a time; it is not a queue.
var ErrSlotBusy = errors.New("dispatch: notifier slot busy")

// Waker wakes the host loop's poll from any goroutine. Wake must be safe to
// call concurrently and must coalesce: waking an already-woken loop is a
// no-op, not an error.
type Waker interface {
	Wake()
}

// descriptor is the unit handed from a worker goroutine to the host loop:
// which bridge the dispatch originated from, and which handle to invoke.
type descriptor struct {
	owner  *Bridge
	handle *Callback
}

// Notifier is the single-slot, process-wide handoff point shared by every
// bridge. One descriptor occupies the slot at a time; the slot owns the
// descriptor from post until drain, so nothing dangles across the boundary.
type Notifier struct {
	mu    sync.Mutex
	slot  *descriptor
	waker Waker
}

// NewNotifier returns a notifier with an empty slot and no wake target.
// Attach must be called before any bridge dispatches through it.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Attach binds the notifier to the host loop's wake mechanism. The loop must
// also arrange for Drain to run when it wakes.
func (n *Notifier) Attach(w Waker) {
	n.mu.Lock()
	n.waker = w
	n.mu.Unlock()
}

// post deposits d into the slot and wakes the host loop. Callable from any
// goroutine. Posting before the notifier is attached is a fatal
// configuration error; posting while the previous descriptor is undrained
// returns ErrSlotBusy.
func (n *Notifier) post(d *descriptor) error {
	n.mu.Lock()
	if n.waker == nil {
		n.mu.Unlock()
		panic("dispatch: notifier not attached to a host loop")
	}
	if n.slot != nil {
		n.mu.Unlock()
		return ErrSlotBusy
	}
	n.slot = d
	w := n.waker
	n.mu.Unlock()

	w.Wake()
	return nil
}

// Drain moves the pending descriptor out of the slot and invokes its handle.
// It must run on the host loop's goroutine; register it as the loop's wake
// handler. An empty slot is a no-op, which absorbs coalesced wakes.
func (n *Notifier) Drain() {
	n.mu.Lock()
	d := n.slot
	n.slot = nil
	n.mu.Unlock()

	if d == nil {
		return
	}
	d.handle.invoke(d.owner)
}
