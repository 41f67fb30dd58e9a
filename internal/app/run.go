package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/streambridgego/internal/config"
	"github.com/vk/streambridgego/internal/ctxlog"
	"github.com/vk/streambridgego/internal/dispatch"
	"github.com/vk/streambridgego/internal/hostloop"
	"github.com/vk/streambridgego/internal/registry"
)

// Run wires the host loop, the process-wide notifier, and every configured
// bridge, then starts the feeds and runs the host loop on the calling
// goroutine until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthcheckServer(ctx)
	}

	// The notifier must exist and be attached before any bridge is built on
	// it: posting through an unattached notifier is a fatal error.
	loop := hostloop.New()
	notifier := dispatch.NewNotifier()
	loop.OnWake(notifier.Drain)
	notifier.Attach(loop)

	shared := dispatch.NewRegistry()
	for _, bind := range a.model.Globals {
		shared.Register(bind.Event, a.newCallback(ctx, bind))
	}

	bridges := make(map[string]*dispatch.Bridge, len(a.model.Bridges))
	for _, def := range a.model.Bridges {
		b := dispatch.New(notifier, shared)
		for _, bind := range def.Bindings {
			b.On(bind.Event, a.newCallback(ctx, bind))
		}
		bridges[def.Name] = b
		a.logger.Debug("Bridge constructed.", "bridge", def.Name, "bindings", len(def.Bindings))
	}

	a.logger.Info("Handlers registered:", "count", len(a.registry.HandlerNames()), "keys", a.registry.HandlerNames())

	// Feeds start only after every binding is in place; once the loop runs,
	// the registries belong to the host loop's goroutine.
	var stops []registry.StopFunc
	defer func() {
		for _, stop := range stops {
			stop()
		}
	}()
	for _, def := range a.model.Bridges {
		for _, f := range def.Feeds {
			stop, err := a.startFeed(ctx, bridges[def.Name], def.Name, f)
			if err != nil {
				return err
			}
			stops = append(stops, stop)
		}
	}

	a.logger.Info("🚀 Bridge running.", "bridges", len(bridges))
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("host loop failed: %w", err)
	}

	a.logger.Info("🏁 Shutdown complete.")
	return nil
}

// startFeed decodes the feed's arguments and hands the bridge to the feed
// module, which dispatches onto it from its own worker goroutines.
func (a *App) startFeed(ctx context.Context, b *dispatch.Bridge, bridgeName string, f *config.Feed) (registry.StopFunc, error) {
	feed := a.registry.Feed(f.Kind)

	input, err := registry.DecodeFeedInput(feed, f.Body, a.loader.EvalContext())
	if err != nil {
		return nil, fmt.Errorf("feed %s.%s on bridge %q: %w", f.Kind, f.Name, bridgeName, err)
	}

	stop, err := feed.Start(ctx, b, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start feed %s.%s on bridge %q: %w", f.Kind, f.Name, bridgeName, err)
	}
	a.logger.Info("Feed started.", "bridge", bridgeName, "kind", f.Kind, "name", f.Name)
	return stop, nil
}

// newCallback adapts a configured binding into a host-loop callback handle.
func (a *App) newCallback(ctx context.Context, bind *config.Binding) *dispatch.Callback {
	h := a.registry.Handler(bind.Handler)
	return dispatch.NewCallback(func(owner *dispatch.Bridge) {
		h.Fn(ctx, owner, bind.Event)
		if bind.Done {
			owner.Done()
		}
	})
}
