package service

import (
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

const (
	defaultTotalRounds      = 10
	defaultTickInterval     = 20 * time.Millisecond
	defaultLowTimeFloor     = 5 * time.Second
	defaultLowTimeRatio     = 0.2
	defaultAutoAdvanceDelay = 350 * time.Millisecond
	defaultTimeUpVisual     = 650 * time.Millisecond
	defaultStressChance     = 0.5
	defaultStressHeadroom   = 3 * time.Second
	defaultStressDisplay    = 3 * time.Second
)

// GameSettings holds the tunables of a game session.
type GameSettings struct {
	TotalRounds      int                                   // rounds per session
	Durations        map[entities.Difficulty]time.Duration // base round duration per difficulty
	TickInterval     time.Duration                         // countdown tick cadence
	LowTimeFloor     time.Duration                         // low-time threshold lower bound
	LowTimeRatio     float64                               // low-time threshold as a share of total
	AutoAdvanceDelay time.Duration                         // pause between an expired round and the next one
	TimeUpVisual     time.Duration                         // how long the time-up effect is shown
	Stress           StressSettings                        // stress event injection
}

// StressSettings configures stress event injection.
type StressSettings struct {
	Probability float64       // chance that a round gets an event
	Headroom    time.Duration // minimum time left between firing and expiry
	Display     time.Duration // how long the event message is shown
}

// DefaultGameSettings returns the stock game tuning.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		TotalRounds: defaultTotalRounds,
		Durations: map[entities.Difficulty]time.Duration{
			entities.DifficultyEasy:   25 * time.Second,
			entities.DifficultyNormal: 35 * time.Second,
			entities.DifficultyHard:   45 * time.Second,
		},
		TickInterval:     defaultTickInterval,
		LowTimeFloor:     defaultLowTimeFloor,
		LowTimeRatio:     defaultLowTimeRatio,
		AutoAdvanceDelay: defaultAutoAdvanceDelay,
		TimeUpVisual:     defaultTimeUpVisual,
		Stress: StressSettings{
			Probability: defaultStressChance,
			Headroom:    defaultStressHeadroom,
			Display:     defaultStressDisplay,
		},
	}
}

// BaseDuration returns the round duration for d.
func (s GameSettings) BaseDuration(d entities.Difficulty) (time.Duration, bool) {
	dur, ok := s.Durations[d]
	if !ok || dur <= 0 {
		return 0, false
	}
	return dur, true
}
