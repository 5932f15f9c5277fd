package terminal

import (
	"sync"

	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

const defaultFeedSize = 64

// Feed forwards session events to the UI. It is the session's observer, so
// OnGameEvent runs on the game loop.
//
// Ticks are dropped when the UI falls behind; every other event waits for
// the UI or for Close.
type Feed struct {
	events chan service.Event
	done   chan struct{}
	once   sync.Once
}

// NewFeed creates a feed buffering up to size events.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = defaultFeedSize
	}

	return &Feed{
		events: make(chan service.Event, size),
		done:   make(chan struct{}),
	}
}

func (f *Feed) OnGameEvent(e service.Event) {
	if e.Kind == service.EventTick {
		select {
		case f.events <- e:
		case <-f.done:
		default:
		}
		return
	}

	select {
	case f.events <- e:
	case <-f.done:
	}
}

// Events returns the channel the UI reads from.
func (f *Feed) Events() <-chan service.Event {
	return f.events
}

// Done is closed by Close.
func (f *Feed) Done() <-chan struct{} {
	return f.done
}

// Close releases the loop from pending sends. Events sent afterward are
// discarded.
func (f *Feed) Close() {
	f.once.Do(func() { close(f.done) })
}
