package dispatch

// Registry maps event names to callback handles. A registry is only ever
// mutated and read from the host loop's goroutine; workers reach it solely
// through Bridge.Dispatch.
type Registry struct {
	entries map[string]*Callback
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Callback)}
}

// Register stores cb under name, replacing any previous handle for that
// name. The replaced handle is dropped, never invoked.
func (r *Registry) Register(name string, cb *Callback) {
	if name == "" {
		panic("dispatch: empty callback name")
	}
	if cb == nil {
		panic("dispatch: nil callback handle")
	}
	r.entries[name] = cb
}

// Unregister removes the entry for name and reports how many entries were
// removed (0 or 1). An absent name is not an error.
func (r *Registry) Unregister(name string) int {
	if _, ok := r.entries[name]; !ok {
		return 0
	}
	delete(r.entries, name)
	return 1
}

// Resolve returns the handle registered under name, or nil. A nil result is
// the legitimate "no listener" state, not an error.
func (r *Registry) Resolve(name string) *Callback {
	return r.entries[name]
}

// Len reports the number of registered names.
func (r *Registry) Len() int {
	return len(r.entries)
}
