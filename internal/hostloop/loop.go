package hostloop

import (
	"context"

	"github.com/vk/streambridgego/internal/ctxlog"
)

// Loop serializes all callback invocations and registry mutation on one
// goroutine. Wake is the cross-thread interrupt (it coalesces, like a
// one-slot async handle); Submit queues ordinary tasks onto the loop.
type Loop struct {
	wake   chan struct{}
	tasks  chan func()
	onWake func()
}

// New returns a loop that is ready to accept Wake and Submit calls. Nothing
// runs until Run is called.
func New() *Loop {
	return &Loop{
		wake:  make(chan struct{}, 1),
		tasks: make(chan func(), 64),
	}
}

// OnWake registers the handler the loop invokes each time it is woken.
// It must be set before Run starts; typically this is a notifier's Drain.
func (l *Loop) OnWake(fn func()) {
	l.onWake = fn
}

// Wake interrupts the loop's poll from any goroutine. Wakes coalesce: if the
// loop has a wake pending, further calls are absorbed.
func (l *Loop) Wake() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Submit queues fn to run on the loop's goroutine. It blocks only if the
// task queue is full.
func (l *Loop) Submit(fn func()) {
	l.tasks <- fn
}

// Run processes wakes and submitted tasks on the calling goroutine until ctx
// is done. The calling goroutine becomes the host loop; every handler and
// every registry mutation happens here.
func (l *Loop) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Host loop started.")

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Host loop stopping.", "reason", ctx.Err())
			return ctx.Err()
		case <-l.wake:
			if l.onWake != nil {
				l.onWake()
			}
		case fn := <-l.tasks:
			fn()
		}
	}
}
