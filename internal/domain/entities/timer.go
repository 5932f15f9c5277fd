package entities

import (
	"fmt"
	"math"
	"time"
)

// TimerState is the countdown state of the current round.
type TimerState struct {
	Remaining time.Duration // time left before the round expires
	Total     time.Duration // baseline the progress fraction is measured against
	LowTime   bool          // whether the low-time threshold has been crossed
}

// NewTimerState returns a full timer for a round of duration d.
func NewTimerState(d time.Duration) TimerState {
	return TimerState{Remaining: d, Total: d}
}

// Fraction returns Remaining/Total clamped to [0, 1].
func (s TimerState) Fraction() float64 {
	if s.Total <= 0 {
		return 0
	}
	f := float64(s.Remaining) / float64(s.Total)
	return math.Max(0, math.Min(1, f))
}

// Expired reports whether no time is left.
func (s TimerState) Expired() bool {
	return s.Remaining <= 0
}

// Seconds returns the remaining time rounded up to whole seconds, as displayed.
func (s TimerState) Seconds() int {
	if s.Remaining <= 0 {
		return 0
	}
	return int(math.Ceil(s.Remaining.Seconds()))
}

// Label formats the remaining time as displayed, e.g. "12s".
func (s TimerState) Label() string {
	return fmt.Sprintf("%ds", s.Seconds())
}
