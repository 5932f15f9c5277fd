package entities

import "time"

// StressKind is the variant tag of a stress event.
type StressKind string

const (
	StressSpeed   StressKind = "speed"
	StressBonus   StressKind = "bonus"
	StressPenalty StressKind = "penalty"
)

// minSpeedTotal is the smallest baseline a speed event may leave behind.
const minSpeedTotal = time.Second

// StressEvent is a one-shot perturbation of the round countdown.
type StressEvent struct {
	Kind    StressKind    // variant tag
	Factor  float64       // pace factor, speed events only
	Delta   time.Duration // added or removed time, bonus and penalty events only
	Message string        // text shown while the event is displayed
}

// StressCatalog is the fixed set of events drawn from at fire time.
var StressCatalog = []StressEvent{
	{Kind: StressSpeed, Factor: 2, Message: "Time pressure! 2× faster"},
	{Kind: StressSpeed, Factor: 0.5, Message: "Breather! 2× slower"},
	{Kind: StressBonus, Delta: 5 * time.Second, Message: "Lucky! +5s added"},
	{Kind: StressPenalty, Delta: 5 * time.Second, Message: "Oops! -5s lost"},
}

// Apply returns the timer state after the event.
//
// A speed event rescales the remaining window and resets Total to it, so the
// progress fraction restarts from the new pace instead of the original round
// duration.
func (e StressEvent) Apply(s TimerState) TimerState {
	switch e.Kind {
	case StressSpeed:
		if e.Factor <= 0 {
			return s
		}
		s.Remaining = time.Duration(float64(s.Remaining) / e.Factor)
		s.Total = max(s.Remaining, minSpeedTotal)
	case StressBonus:
		s.Remaining += e.Delta
		s.Total = max(s.Total, s.Remaining)
	case StressPenalty:
		s.Remaining = max(0, s.Remaining-e.Delta)
	}
	return s
}
