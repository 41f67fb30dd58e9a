package dispatch

// Callback is an opaque handle to logic owned and invoked by the host loop.
// Handles are compared by identity: the same *Callback registered under two
// names is one callback, and only the pointer ever crosses goroutines.
type Callback struct {
	fn func(owner *Bridge)
}

// NewCallback wraps fn in a stable handle. fn runs on the host loop's
// goroutine with the bridge the dispatch originated from.
func NewCallback(fn func(owner *Bridge)) *Callback {
	if fn == nil {
		panic("dispatch: nil callback func")
	}
	return &Callback{fn: fn}
}

func (c *Callback) invoke(owner *Bridge) {
	c.fn(owner)
}
