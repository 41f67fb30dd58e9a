package dispatch

// Bridge routes named dispatches from worker goroutines onto the host loop.
// Each bridge owns its callback registry and wait signal; the notifier is a
// non-owning reference to the process-wide handoff slot, which must outlive
// every bridge built on it.
type Bridge struct {
	notifier  *Notifier
	callbacks *Registry
	shared    *Registry
	signal    *WaitSignal
}

// New builds a bridge on the given notifier. shared is the class-wide
// fallback registry consulted when the instance registry has no entry for a
// dispatched name; it may be nil and may be shared across many bridges.
func New(notifier *Notifier, shared *Registry) *Bridge {
	if notifier == nil {
		panic("dispatch: bridge requires a notifier")
	}
	return &Bridge{
		notifier:  notifier,
		callbacks: NewRegistry(),
		shared:    shared,
		signal:    NewWaitSignal(),
	}
}

// On registers cb under name on this bridge, replacing any previous handle.
// Must be called on the host loop's goroutine.
func (b *Bridge) On(name string, cb *Callback) {
	b.callbacks.Register(name, cb)
}

// Off removes the callback registered under name and reports how many
// entries were removed. Must be called on the host loop's goroutine.
func (b *Bridge) Off(name string) int {
	return b.callbacks.Unregister(name)
}

// resolve looks name up in the instance registry first, then the shared
// fallback. Reads are safe off the host loop only because the host loop is
// the sole mutator and dispatching workers tolerate a stale view.
func (b *Bridge) resolve(name string) *Callback {
	if cb := b.callbacks.Resolve(name); cb != nil {
		return cb
	}
	if b.shared != nil {
		return b.shared.Resolve(name)
	}
	return nil
}

// Dispatch asks the host loop to invoke the callback registered under name.
// Callable from any goroutine. A name with no listener is a silent no-op;
// the only error is ErrSlotBusy when the previous dispatch through the
// shared notifier has not been drained yet.
func (b *Bridge) Dispatch(name string) error {
	cb := b.resolve(name)
	if cb == nil {
		return nil
	}
	return b.notifier.post(&descriptor{owner: b, handle: cb})
}

// Wait blocks the calling worker goroutine until a handler calls Done on
// this bridge. See WaitSignal for the flag semantics and the no-timeout
// hazard.
func (b *Bridge) Wait() {
	b.signal.Wait()
}

// Done reports completion of the in-flight round trip, releasing the worker
// blocked in Wait. Typically called by a host-loop handler.
func (b *Bridge) Done() {
	b.signal.Done()
}
