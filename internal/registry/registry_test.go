package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/streambridgego/internal/config"
	"github.com/vk/streambridgego/internal/dispatch"
)

func noopHandler() *RegisteredHandler {
	return &RegisteredHandler{Fn: func(context.Context, *dispatch.Bridge, string) {}}
}

func noopFeed() *RegisteredFeed {
	return &RegisteredFeed{
		NewInput: func() any { return new(struct{}) },
		Start: func(context.Context, *dispatch.Bridge, any) (StopFunc, error) {
			return func() {}, nil
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterHandler("OnEventPrint", noopHandler())
	r.RegisterFeed("socketio", noopFeed())

	assert.NotNil(t, r.Handler("OnEventPrint"))
	assert.Nil(t, r.Handler("missing"))
	assert.NotNil(t, r.Feed("socketio"))
	assert.Nil(t, r.Feed("missing"))
	assert.ElementsMatch(t, []string{"OnEventPrint"}, r.HandlerNames())
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterHandler("OnEventPrint", noopHandler())
	r.RegisterFeed("socketio", noopFeed())

	assert.Panics(t, func() { r.RegisterHandler("OnEventPrint", noopHandler()) })
	assert.Panics(t, func() { r.RegisterFeed("socketio", noopFeed()) })
}

func TestRegistry_Validate(t *testing.T) {
	t.Parallel()

	newRegistry := func() *Registry {
		r := New()
		r.RegisterHandler("OnEventPrint", noopHandler())
		r.RegisterFeed("socketio", noopFeed())
		return r
	}

	t.Run("valid model passes", func(t *testing.T) {
		t.Parallel()
		model := &config.Model{
			Globals: []*config.Binding{{Event: "error", Handler: "OnEventPrint"}},
			Bridges: []*config.Bridge{{
				Name:     "b",
				Feeds:    []*config.Feed{{Kind: "socketio", Name: "main"}},
				Bindings: []*config.Binding{{Event: "ready", Handler: "OnEventPrint"}},
			}},
		}
		require.NoError(t, newRegistry().Validate(model))
	})

	t.Run("unknown handler fails", func(t *testing.T) {
		t.Parallel()
		model := &config.Model{
			Bridges: []*config.Bridge{{
				Name:     "b",
				Bindings: []*config.Binding{{Event: "ready", Handler: "Missing"}},
			}},
		}
		err := newRegistry().Validate(model)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown handler "Missing"`)
	})

	t.Run("unknown global handler fails", func(t *testing.T) {
		t.Parallel()
		model := &config.Model{
			Globals: []*config.Binding{{Event: "error", Handler: "Missing"}},
		}
		require.Error(t, newRegistry().Validate(model))
	})

	t.Run("unknown feed kind fails", func(t *testing.T) {
		t.Parallel()
		model := &config.Model{
			Bridges: []*config.Bridge{{
				Name:  "b",
				Feeds: []*config.Feed{{Kind: "carrier-pigeon", Name: "main"}},
			}},
		}
		err := newRegistry().Validate(model)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown feed kind "carrier-pigeon"`)
	})
}
