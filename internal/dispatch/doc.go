// Package dispatch implements the cross-thread callback bridge: named
// callbacks owned by a single host event loop, invoked on that loop at the
// request of worker goroutines driven by an external streaming library.
//
// The package is built from three primitives composed by Bridge:
//
//   - Registry maps event names to callback handles. Every bridge owns one,
//     and a second, shared registry acts as a fallback for names the
//     instance does not know.
//   - Notifier is the single-slot handoff between worker goroutines and the
//     host loop: a worker deposits one dispatch descriptor and wakes the
//     loop; the loop drains the slot and invokes the callback.
//   - WaitSignal is the mutex/condition pair that lets a worker block until
//     a host-loop handler reports completion.
//
// The core idiom is Dispatch followed by Wait on the worker side, with the
// handler calling Done on the host-loop side once it has finished.
package dispatch
