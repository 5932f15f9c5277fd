// Package clock provides the time source and callback scheduling used by game
// sessions. A session is single-threaded: every scheduled callback must run on
// the same goroutine as the calls made into the session.
package clock

import "time"

// Clock reports the current time. Readings must carry a monotonic component
// so durations between them are immune to wall clock changes.
type Clock interface {
	Now() time.Time
}

// Cancel stops a scheduled callback. Calling it more than once is safe.
type Cancel func()

// Scheduler runs callbacks after a delay or periodically.
type Scheduler interface {
	Clock
	AfterFunc(d time.Duration, f func()) Cancel
	Every(d time.Duration, f func()) Cancel
}

// Group collects cancel funcs that share a lifetime, such as everything
// scheduled for one round. It is not safe for concurrent use.
type Group struct {
	cancels []Cancel
}

// Add registers c to be called on Release.
func (g *Group) Add(c Cancel) {
	if c == nil {
		return
	}
	g.cancels = append(g.cancels, c)
}

// Release cancels everything registered so far and empties the group.
func (g *Group) Release() {
	cancels := g.cancels
	g.cancels = nil
	for _, c := range cancels {
		c()
	}
}

// Len returns the number of registered cancel funcs.
func (g *Group) Len() int {
	return len(g.cancels)
}
