package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

var (
	ErrConfiguration        = errors.New("quiz configuration error")
	ErrNoQuestionsAvailable = fmt.Errorf("%w: no questions available", ErrConfiguration)
	ErrInvalidPhase         = errors.New("action not allowed in the current phase")
	ErrInvalidOption        = errors.New("option index out of range")
)

// Phase is the state of a session's round state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePresenting
	PhaseAnswering
	PhaseRoundDone
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePresenting:
		return "presenting"
	case PhaseAnswering:
		return "answering"
	case PhaseRoundDone:
		return "round_done"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session plays one fixed-length sequence of rounds for one player.
//
// A Session is not safe for concurrent use. Every method, and every callback
// it schedules, must run on the goroutine that drives its scheduler.
type Session struct {
	bank     BankSource
	sched    clock.Scheduler
	rng      Random
	observer Observer
	logger   *zap.Logger
	settings GameSettings

	course     string
	difficulty entities.Difficulty
	base       time.Duration
	rounds     []entities.Question
	current    int
	phase      Phase
	board      Scoreboard
	results    *entities.Results

	timer    *Countdown
	injector *StressInjector
	pending  clock.Group
}

// NewSession creates an idle session.
func NewSession(
	bank BankSource,
	sched clock.Scheduler,
	rng Random,
	observer Observer,
	logger *zap.Logger,
	settings GameSettings,
) *Session {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		bank:     bank,
		sched:    sched,
		rng:      rng,
		observer: observer,
		logger:   logger,
		settings: settings,
		injector: NewStressInjector(rng, settings.Stress),
	}
	s.timer = NewCountdown(sched, settings, CountdownHooks{
		OnTick:    s.onTick,
		OnLowTime: s.onLowTime,
		OnExpire:  s.onExpire,
	})

	return s
}

// Start begins a new session for course and difficulty. Anything still
// scheduled from a previous session is cancelled.
func (s *Session) Start(course string, d entities.Difficulty) error {
	bank, err := s.bank.Bank()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	base, ok := s.settings.BaseDuration(d)
	if !ok {
		return fmt.Errorf("%w: %w %q", ErrConfiguration, entities.ErrUnknownDifficulty, d)
	}

	pool := EligiblePool(bank, course, d)
	if len(pool) == 0 {
		return fmt.Errorf("%w: course %q, difficulty %s", ErrNoQuestionsAvailable, course, d)
	}

	total := s.settings.TotalRounds
	if total <= 0 {
		total = defaultTotalRounds
	}

	s.release()

	s.course = course
	s.difficulty = d
	s.base = base
	s.rounds = SelectRounds(pool, total, s.rng)
	s.current = 0
	s.board.Reset()
	s.results = nil

	s.logger.Info("session started",
		zap.String("course", course),
		zap.String("difficulty", d.String()),
		zap.Int("pool_size", len(pool)),
		zap.Int("rounds", total),
	)

	s.presentRound()
	return nil
}

// Reveal flips the card of the current round: the question is shown and the
// countdown starts. A round can be revealed only once.
func (s *Session) Reveal() error {
	if s.phase != PhasePresenting {
		return fmt.Errorf("reveal in phase %s: %w", s.phase, ErrInvalidPhase)
	}

	q := s.rounds[s.current]
	d := q.Duration(s.base)
	s.phase = PhaseAnswering

	s.emit(Event{Kind: EventQuestionRevealed, Question: &q, Timer: entities.NewTimerState(d)})
	s.timer.Start(d)

	if offset, ok := s.injector.Plan(d); ok {
		s.logger.Debug("stress event scheduled",
			zap.Int("round", s.current),
			zap.Duration("offset", offset),
		)
		s.timer.After(offset, s.fireStress)
	}

	return nil
}

// Choose finalizes the current round with option i. It reports whether the
// choice was recorded; a choice arriving after the round already ended is
// ignored.
func (s *Session) Choose(i int) (bool, error) {
	if s.phase == PhaseAnswering {
		if i < 0 || i >= len(s.rounds[s.current].Options) {
			return false, ErrInvalidOption
		}
	}
	return s.finalize(i), nil
}

// Advance moves from a finished round to the next one, or to the results
// after the last round.
func (s *Session) Advance() error {
	if s.phase != PhaseRoundDone {
		return fmt.Errorf("advance in phase %s: %w", s.phase, ErrInvalidPhase)
	}

	s.pending.Release()
	s.current++

	if s.current < len(s.rounds) {
		s.presentRound()
		return nil
	}

	s.finish()
	return nil
}

// Stop abandons the session and cancels everything it has scheduled. Results
// of a finished session stay available.
func (s *Session) Stop() {
	s.release()
	if s.phase != PhaseFinished && s.phase != PhaseIdle {
		s.logger.Info("session stopped",
			zap.String("course", s.course),
			zap.Int("round", s.current),
		)
		s.phase = PhaseIdle
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Round returns the zero-based index of the current round.
func (s *Session) Round() int {
	return s.current
}

// TotalRounds returns the number of rounds in the session.
func (s *Session) TotalRounds() int {
	return len(s.rounds)
}

// Course returns the course being played.
func (s *Session) Course() string {
	return s.course
}

// Difficulty returns the difficulty being played.
func (s *Session) Difficulty() entities.Difficulty {
	return s.difficulty
}

// CurrentQuestion returns the question of the current round.
func (s *Session) CurrentQuestion() (entities.Question, bool) {
	if s.current < 0 || s.current >= len(s.rounds) {
		return entities.Question{}, false
	}
	return s.rounds[s.current], true
}

// Timer returns the countdown state of the current round.
func (s *Session) Timer() entities.TimerState {
	return s.timer.State()
}

// Answers returns the records of the rounds completed so far.
func (s *Session) Answers() []entities.AnswerRecord {
	return s.board.Records()
}

// Results returns the final results once the session has finished.
func (s *Session) Results() (entities.Results, bool) {
	if s.results == nil {
		return entities.Results{}, false
	}
	return Summarize(s.results.Answers, s.results.TotalRounds), true
}

func (s *Session) presentRound() {
	s.phase = PhasePresenting
	s.emit(Event{Kind: EventRoundStarted})
}

// finalize records the round outcome. The countdown is stopped before
// anything else so a concurrent expiry or choice can no longer finalize
// the same round.
func (s *Session) finalize(selected int) bool {
	s.timer.Stop()

	if s.phase != PhaseAnswering {
		return false
	}

	rec := entities.NewAnswerRecord(s.current, s.rounds[s.current], selected)
	s.board.Record(rec)
	s.phase = PhaseRoundDone

	s.logger.Info("round finalized",
		zap.Int("round", s.current),
		zap.String("question_id", string(rec.QuestionID)),
		zap.Int("selected", rec.SelectedIndex),
		zap.Bool("correct", rec.IsCorrect),
	)

	s.emit(Event{Kind: EventRoundFinalized, Record: &rec, Timer: s.timer.State()})
	return true
}

func (s *Session) finish() {
	s.release()
	s.phase = PhaseFinished

	res := s.board.Summarize(len(s.rounds))
	s.results = &res

	s.logger.Info("session finished",
		zap.String("course", s.course),
		zap.String("difficulty", s.difficulty.String()),
		zap.Int("correct", res.TotalCorrect),
		zap.Int("rounds", res.TotalRounds),
	)

	out := Summarize(res.Answers, res.TotalRounds)
	s.emit(Event{Kind: EventSessionFinished, Results: &out})
}

func (s *Session) release() {
	s.timer.Stop()
	s.pending.Release()
}

func (s *Session) onTick(state entities.TimerState) {
	s.emit(Event{Kind: EventTick, Timer: state})
}

func (s *Session) onLowTime(state entities.TimerState) {
	s.emit(Event{Kind: EventLowTime, Timer: state})
}

func (s *Session) onExpire(state entities.TimerState) {
	if s.phase != PhaseAnswering {
		return
	}

	s.emit(Event{Kind: EventTimeUp, Timer: state, Hold: s.settings.TimeUpVisual})
	if !s.finalize(entities.NoAnswer) {
		return
	}

	s.pending.Add(s.sched.AfterFunc(s.settings.AutoAdvanceDelay, func() {
		if err := s.Advance(); err != nil {
			s.logger.Debug("auto advance skipped", zap.Error(err))
		}
	}))
}

func (s *Session) fireStress() {
	if s.phase != PhaseAnswering {
		return
	}

	ev := s.injector.Pick()
	state := s.timer.Apply(ev)

	s.logger.Debug("stress event applied",
		zap.Int("round", s.current),
		zap.String("kind", string(ev.Kind)),
		zap.Duration("remaining", state.Remaining),
		zap.Duration("total", state.Total),
	)

	s.emit(Event{Kind: EventStressApplied, Stress: &ev, Timer: state, Hold: s.injector.Display()})
	s.timer.After(s.injector.Display(), func() {
		s.emit(Event{Kind: EventStressCleared, Timer: s.timer.State()})
	})
}

func (s *Session) emit(e Event) {
	e.Round = s.current
	e.TotalRounds = len(s.rounds)
	s.observer.OnGameEvent(e)
}
