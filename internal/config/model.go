package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the unified representation of the entire grid configuration.
type Model struct {
	// Globals are class-wide handler bindings: they populate the shared
	// fallback registry consulted by every bridge.
	Globals []*Binding
	Bridges []*Bridge
}

// Bridge represents a single `bridge` block: one dispatch bridge instance,
// the feeds that drive it, and its instance-level handler bindings.
type Bridge struct {
	Name     string
	Feeds    []*Feed
	Bindings []*Binding
}

// Feed represents a `feed` block. Kind selects the registered feed module
// (e.g. "socketio"); the body is retained so the module can decode its own
// input arguments.
type Feed struct {
	Kind string
	Name string
	Body hcl.Body
}

// Binding represents an `on` block: it routes a dispatched event name to a
// registered Go handler. Done marks bindings that complete the worker's
// wait/done round trip when the handler returns.
type Binding struct {
	Event   string
	Handler string
	Done    bool
}
