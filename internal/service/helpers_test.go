package service

import (
	"testing"
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/testutil"
)

type fakeBankSource struct {
	bank entities.Bank
	err  error
}

func (f *fakeBankSource) Bank() (entities.Bank, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bank, nil
}

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnGameEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) kinds(kind EventKind) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (r *eventRecorder) count(kind EventKind) int {
	return len(r.kinds(kind))
}

func intPtr(v int) *int { return &v }

func mcq(id string, answer int, options ...string) entities.Question {
	return entities.Question{
		ID:       entities.QuestionID(id),
		Question: "question " + id,
		Options:  options,
		Answer:   intPtr(answer),
	}
}

// singleQuestionBank is the pool of the end-to-end scenarios: course X, easy,
// one question {options: [A, B], answer: 1}.
func singleQuestionBank() entities.Bank {
	bank := entities.Bank{}
	bank.Add("X", entities.DifficultyEasy, mcq("q1", 1, "A", "B"))
	return bank
}

func testSettings(rounds int) GameSettings {
	s := DefaultGameSettings()
	s.TotalRounds = rounds
	return s
}

type sessionFixture struct {
	session  *Session
	sched    *testutil.FakeScheduler
	rng      *testutil.ScriptedRand
	recorder *eventRecorder
}

func newSessionFixture(t *testing.T, bank entities.Bank, settings GameSettings) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		sched:    testutil.NewFakeScheduler(time.Unix(1_700_000_000, 0)),
		rng:      testutil.NewScriptedRand(),
		recorder: &eventRecorder{},
	}
	f.session = NewSession(&fakeBankSource{bank: bank}, f.sched, f.rng, f.recorder, nil, settings)
	return f
}

func mustStart(t *testing.T, s *Session, course string, d entities.Difficulty) {
	t.Helper()
	if err := s.Start(course, d); err != nil {
		t.Fatalf("start: %v", err)
	}
}

func mustReveal(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
}

func mustChoose(t *testing.T, s *Session, i int) {
	t.Helper()
	ok, err := s.Choose(i)
	if err != nil {
		t.Fatalf("choose %d: %v", i, err)
	}
	if !ok {
		t.Fatalf("choose %d was not recorded", i)
	}
}

func mustAdvance(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
}
