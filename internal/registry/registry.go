package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/vk/streambridgego/internal/config"
	"github.com/vk/streambridgego/internal/dispatch"
)

// Module is the interface all module packages implement to be registered.
type Module interface {
	Register(r *Registry)
}

// StopFunc tears down a running feed. Returned by RegisteredFeed.Start.
type StopFunc func()

// RegisteredFeed holds the compiled Go parts of a feed module. NewInput
// returns a pointer to the module's hcl-tagged input struct; Start connects
// the feed and begins dispatching events onto the bridge from the feed's own
// worker goroutines.
type RegisteredFeed struct {
	NewInput func() any
	Start    func(ctx context.Context, b *dispatch.Bridge, input any) (StopFunc, error)
}

// HandlerFunc runs on the host loop's goroutine when the event it is bound
// to is dispatched. owner is the bridge the dispatch originated from.
type HandlerFunc func(ctx context.Context, owner *dispatch.Bridge, event string)

// RegisteredHandler holds the compiled Go parts of a handler module.
type RegisteredHandler struct {
	Fn HandlerFunc
}

// Registry holds all registered feeds and handlers for a single application
// instance.
type Registry struct {
	feeds    map[string]*RegisteredFeed
	handlers map[string]*RegisteredHandler
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		feeds:    make(map[string]*RegisteredFeed),
		handlers: make(map[string]*RegisteredHandler),
	}
}

// RegisterFeed registers a feed module under kind.
func (r *Registry) RegisterFeed(kind string, feed *RegisteredFeed) {
	if _, exists := r.feeds[kind]; exists {
		panic(fmt.Sprintf("feed with kind '%s' already registered", kind))
	}
	slog.Debug("Registering feed.", "kind", kind)
	r.feeds[kind] = feed
}

// RegisterHandler registers a handler function under name.
func (r *Registry) RegisterHandler(name string, handler *RegisteredHandler) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	r.handlers[name] = handler
}

// Feed returns the feed registered under kind, or nil.
func (r *Registry) Feed(kind string) *RegisteredFeed {
	return r.feeds[kind]
}

// Handler returns the handler registered under name, or nil.
func (r *Registry) Handler(name string) *RegisteredHandler {
	return r.handlers[name]
}

// HandlerNames reports how many handlers are registered. Used for startup
// logging.
func (r *Registry) HandlerNames() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Validate checks that every handler and feed kind referenced by the model
// resolves to a registration. A mismatch between grid files and compiled
// modules is a startup error, not a runtime one.
func (r *Registry) Validate(model *config.Model) error {
	check := func(scope string, bindings []*config.Binding) error {
		for _, bind := range bindings {
			if r.Handler(bind.Handler) == nil {
				return fmt.Errorf("%s references unknown handler %q for event %q", scope, bind.Handler, bind.Event)
			}
		}
		return nil
	}

	if err := check("top-level `on` block", model.Globals); err != nil {
		return err
	}
	for _, b := range model.Bridges {
		if err := check(fmt.Sprintf("bridge %q", b.Name), b.Bindings); err != nil {
			return err
		}
		for _, f := range b.Feeds {
			if r.Feed(f.Kind) == nil {
				return fmt.Errorf("bridge %q references unknown feed kind %q", b.Name, f.Kind)
			}
		}
	}
	return nil
}

// DecodeFeedInput decodes a feed block body into the module's input struct
// using the loader's evaluation context.
func DecodeFeedInput(feed *RegisteredFeed, body hcl.Body, evalCtx *hcl.EvalContext) (any, error) {
	input := feed.NewInput()
	if diags := gohcl.DecodeBody(body, evalCtx, input); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode feed arguments: %w", diags)
	}
	return input, nil
}
