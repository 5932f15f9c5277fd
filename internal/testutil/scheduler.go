package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
)

// FakeScheduler is a manually advanced clock.Scheduler. Callbacks run
// synchronously inside Advance, in deadline order, on the caller's goroutine.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	id        int
	at        time.Time
	every     time.Duration
	f         func()
	cancelled bool
}

// NewFakeScheduler initializes a FakeScheduler at start.
func NewFakeScheduler(start time.Time) *FakeScheduler {
	return &FakeScheduler{now: start}
}

// Now returns the current fake time.
func (s *FakeScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc schedules f to run once d has elapsed.
func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) clock.Cancel {
	return s.add(d, 0, f)
}

// Every schedules f to run every d.
func (s *FakeScheduler) Every(d time.Duration, f func()) clock.Cancel {
	if d <= 0 {
		panic("testutil: non-positive interval")
	}
	return s.add(d, d, f)
}

func (s *FakeScheduler) add(d, every time.Duration, f func()) clock.Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &fakeTimer{id: s.seq, at: s.now.Add(d), every: every, f: f}
	s.timers = append(s.timers, t)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
	}
}

// Advance moves the fake time forward by d, running every callback that
// comes due, including callbacks scheduled while advancing.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	end := s.now.Add(d)
	s.mu.Unlock()

	for {
		t := s.popDue(end)
		if t == nil {
			break
		}
		t.f()
	}

	s.mu.Lock()
	s.now = end
	s.mu.Unlock()
}

// Pending returns the number of scheduled, not cancelled callbacks.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// popDue returns the earliest live timer due by end and moves the clock to
// its deadline. Periodic timers are rescheduled, one-shot timers removed.
func (s *FakeScheduler) popDue(end time.Time) *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.timers = live

	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at.Equal(s.timers[j].at) {
			return s.timers[i].id < s.timers[j].id
		}
		return s.timers[i].at.Before(s.timers[j].at)
	})

	if len(s.timers) == 0 || s.timers[0].at.After(end) {
		return nil
	}

	t := s.timers[0]
	s.now = t.at
	if t.every > 0 {
		t.at = t.at.Add(t.every)
	} else {
		t.cancelled = true
	}

	return &fakeTimer{id: t.id, at: s.now, f: t.f}
}
