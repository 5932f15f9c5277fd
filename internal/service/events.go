package service

import (
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

// EventKind identifies the type of game event.
type EventKind int

const (
	// EventRoundStarted signals a new round waiting for its card to be flipped.
	EventRoundStarted EventKind = iota
	// EventQuestionRevealed delivers the question and options of the round.
	EventQuestionRevealed
	// EventTick delivers a countdown update.
	EventTick
	// EventLowTime signals that the low-time threshold was crossed.
	EventLowTime
	// EventStressApplied delivers a stress event and the timer after it.
	EventStressApplied
	// EventStressCleared signals that the stress message should be hidden.
	EventStressCleared
	// EventTimeUp signals that the round expired without an answer.
	EventTimeUp
	// EventRoundFinalized delivers the answer record of the round.
	EventRoundFinalized
	// EventSessionFinished delivers the final results.
	EventSessionFinished
)

var eventKindNames = map[EventKind]string{
	EventRoundStarted:     "round_started",
	EventQuestionRevealed: "question_revealed",
	EventTick:             "tick",
	EventLowTime:          "low_time",
	EventStressApplied:    "stress_applied",
	EventStressCleared:    "stress_cleared",
	EventTimeUp:           "time_up",
	EventRoundFinalized:   "round_finalized",
	EventSessionFinished:  "session_finished",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event carries a game update for the presentation layer.
type Event struct {
	Kind        EventKind
	Round       int                    // zero-based round index
	TotalRounds int                    // rounds in the session
	Question    *entities.Question     // revealed question
	Timer       entities.TimerState    // countdown state
	Stress      *entities.StressEvent  // applied stress event
	Record      *entities.AnswerRecord // finalized round
	Results     *entities.Results      // final results
	Hold        time.Duration          // how long a transient visual should stay
}

// Observer receives game events. It is called on the session's goroutine and
// must not call back into the session synchronously.
type Observer interface {
	OnGameEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnGameEvent calls f.
func (f ObserverFunc) OnGameEvent(e Event) {
	f(e)
}

type nopObserver struct{}

func (nopObserver) OnGameEvent(Event) {}
