// Package hostloop provides the single-goroutine cooperative event loop
// that owns and invokes every bridged callback. Worker goroutines never run
// handlers themselves; they wake the loop and the loop runs them serially.
package hostloop
