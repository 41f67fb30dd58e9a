package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	cb := NewCallback(func(*Bridge) {})

	r.Register("ready", cb)

	require.Same(t, cb, r.Resolve("ready"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first := NewCallback(func(*Bridge) {})
	second := NewCallback(func(*Bridge) {})

	r.Register("ready", first)
	r.Register("ready", second)

	// Only the latest handle is ever resolved.
	require.Same(t, second, r.Resolve("ready"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ResolveAbsent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	// Absence is a legitimate "no listener" state, not an error.
	assert.Nil(t, r.Resolve("nope"))
}

func TestRegistry_Unregister(t *testing.T) {
	t.Parallel()

	t.Run("removes the entry and reports 1", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register("ready", NewCallback(func(*Bridge) {}))

		assert.Equal(t, 1, r.Unregister("ready"))
		assert.Nil(t, r.Resolve("ready"))
	})

	t.Run("absent name reports 0 and leaves the registry unchanged", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register("ready", NewCallback(func(*Bridge) {}))

		assert.Equal(t, 0, r.Unregister("never-registered"))
		assert.Equal(t, 1, r.Len())
		assert.NotNil(t, r.Resolve("ready"))
	})
}

func TestRegistry_EmptyNamePanics(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Panics(t, func() {
		r.Register("", NewCallback(func(*Bridge) {}))
	})
}

func TestRegistry_NilCallbackPanics(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Panics(t, func() {
		r.Register("ready", nil)
	})
}
