// Package print provides the built-in OnEventPrint handler: it logs each
// event arrival from the host loop's goroutine. Useful as the default sink
// when wiring up a new grid.
package print

import (
	"context"

	"github.com/vk/streambridgego/internal/ctxlog"
	"github.com/vk/streambridgego/internal/dispatch"
	"github.com/vk/streambridgego/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnEventPrint is invoked by the host loop for every dispatched event it is
// bound to.
func OnEventPrint(ctx context.Context, owner *dispatch.Bridge, event string) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Event received.", "event", event)
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnEventPrint", &registry.RegisteredHandler{
		Fn: OnEventPrint,
	})
}
