package clock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrLoopStopped = errors.New("event loop stopped")

const defaultQueueSize = 64

// Loop is a single goroutine event loop backed by the real clock. Timer and
// ticker callbacks are posted to the loop, so they never run concurrently with
// work submitted through Do or Call.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop. It does nothing until Run is called.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), defaultQueueSize),
		done:  make(chan struct{}),
	}
}

// Run processes tasks until ctx is cancelled. Callbacks pending at that point
// are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.tasks:
			f()
		}
	}
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Do queues f to run on the loop. It reports false if the loop has stopped.
func (l *Loop) Do(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

// Call runs f on the loop and waits for it to return.
func (l *Loop) Call(ctx context.Context, f func()) error {
	finished := make(chan struct{})
	if !l.Do(func() {
		defer close(finished)
		f()
	}) {
		return ErrLoopStopped
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Now returns the current time with its monotonic reading.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) Cancel {
	var cancelled atomic.Bool

	t := time.AfterFunc(d, func() {
		l.Do(func() {
			if !cancelled.Load() {
				f()
			}
		})
	})

	return func() {
		cancelled.Store(true)
		t.Stop()
	}
}

// Every runs f on the loop every d until cancelled. Ticks that come due
// while the loop is busy are coalesced by the underlying ticker.
func (l *Loop) Every(d time.Duration, f func()) Cancel {
	var (
		cancelled atomic.Bool
		once      sync.Once
	)

	ticker := time.NewTicker(d)
	stop := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Do(func() {
					if !cancelled.Load() {
						f()
					}
				})
			case <-stop:
				return
			case <-l.done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			cancelled.Store(true)
			close(stop)
		})
	}
}
