package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
	"github.com/aliskhannn/flipquiz-bot/internal/testutil"
)

type staticBank entities.Bank

func (b staticBank) Bank() (entities.Bank, error) { return entities.Bank(b), nil }

type presenterFixture struct {
	session  *service.Session
	sched    *testutil.FakeScheduler
	ops      []renderOp
	finished int
}

func newPresenterFixture(t *testing.T, rounds int) *presenterFixture {
	t.Helper()

	answer := 1
	bank := entities.Bank{}
	bank.Add("X", entities.DifficultyEasy, entities.Question{
		ID: "q1", Question: "Pick B", Options: []string{"A", "B"}, Answer: &answer,
	})

	settings := service.DefaultGameSettings()
	settings.TotalRounds = rounds

	f := &presenterFixture{sched: testutil.NewFakeScheduler(time.Unix(1_700_000_000, 0))}
	p := newPresenter(uuid.New(), "X", entities.DifficultyEasy, f.sched, time.Second, func(op renderOp) {
		f.ops = append(f.ops, op)
	})
	p.onFinish = func() { f.finished++ }

	f.session = service.NewSession(staticBank(bank), f.sched, testutil.NewScriptedRand(), p, nil, settings)
	if err := f.session.Start("X", entities.DifficultyEasy); err != nil {
		t.Fatalf("start: %v", err)
	}
	return f
}

func (f *presenterFixture) last() renderOp {
	return f.ops[len(f.ops)-1]
}

func TestPresenterRoundFlow(t *testing.T) {
	f := newPresenterFixture(t, 1)

	if len(f.ops) != 1 || !f.ops[0].Fresh || !strings.Contains(f.ops[0].Text, md(faceDownCards)) {
		t.Fatalf("round start ops = %+v", f.ops)
	}

	if err := f.session.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	revealed := f.last()
	if revealed.Fresh || revealed.Keyboard == nil || len(revealed.Keyboard.InlineKeyboard) != 2 {
		t.Fatalf("reveal op = %+v", revealed)
	}
	if !strings.Contains(revealed.Text, "25s") {
		t.Fatalf("reveal text %q has no full timer", revealed.Text)
	}

	if _, err := f.session.Choose(1); err != nil {
		t.Fatalf("choose: %v", err)
	}
	final := f.last()
	if !strings.Contains(final.Text, "Your answer: B ✓") || final.Keyboard == nil {
		t.Fatalf("finalized op = %+v", final)
	}

	if err := f.session.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	results := f.last()
	if !results.Fresh || !strings.Contains(results.Text, "Score: 1 / 1") {
		t.Fatalf("results op = %+v", results)
	}
	if f.finished != 1 {
		t.Fatalf("onFinish called %d times", f.finished)
	}
}

func TestPresenterThrottlesTicks(t *testing.T) {
	f := newPresenterFixture(t, 1)
	if err := f.session.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	before := len(f.ops)

	f.sched.Advance(3 * time.Second)

	ticks := f.ops[before:]
	if len(ticks) != 3 {
		t.Fatalf("renders in 3s = %d, want one per second", len(ticks))
	}
	for _, op := range ticks {
		if !op.Droppable {
			t.Fatalf("tick render not droppable: %+v", op)
		}
	}
	if !strings.Contains(f.last().Text, "22s") {
		t.Fatalf("last tick text %q, want 22s", f.last().Text)
	}
}

func TestPresenterTimeoutRemovesButtons(t *testing.T) {
	f := newPresenterFixture(t, 2)
	if err := f.session.Reveal(); err != nil {
		t.Fatalf("reveal: %v", err)
	}

	f.sched.Advance(25 * time.Second)

	final := f.last()
	if final.Keyboard != nil {
		t.Fatalf("timed out round kept a keyboard: %+v", final.Keyboard)
	}
	if !strings.Contains(final.Text, md("[No Answer]")) {
		t.Fatalf("timed out text = %q", final.Text)
	}

	f.sched.Advance(350 * time.Millisecond)
	next := f.last()
	if !next.Fresh || !strings.Contains(next.Text, "Round 2/2") {
		t.Fatalf("auto advance op = %+v", next)
	}
	if !strings.Contains(next.Text, md("Q1: [No Answer] ✗")) {
		t.Fatalf("answer log missing from %q", next.Text)
	}
}
