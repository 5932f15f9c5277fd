package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
	"github.com/aliskhannn/flipquiz-bot/internal/testutil"
)

func TestLoopControllerDrivesSession(t *testing.T) {
	answer := 0
	bank := entities.Bank{}
	bank.Add("Go", entities.DifficultyEasy, entities.Question{ID: "1", Question: "q", Options: []string{"a", "b"}, Answer: &answer})

	loop := clock.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	settings := service.DefaultGameSettings()
	settings.TotalRounds = 2
	session := service.NewSession(staticBank(bank), loop, testutil.NewScriptedRand(), nil, nil, settings)

	if err := loop.Call(testutil.Context(t, 0), func() { _ = session.Start("Go", entities.DifficultyEasy) }); err != nil {
		t.Fatalf("start: %v", err)
	}

	ctrl := NewLoopController(loop, session, nil)
	ctrl.Reveal()
	ctrl.Choose(5) // out of range, ignored
	ctrl.Choose(0)

	phase := func() service.Phase {
		var p service.Phase
		_ = loop.Call(testutil.Context(t, 0), func() { p = session.Phase() })
		return p
	}
	testutil.Eventually(t, time.Second, 5*time.Millisecond, func() bool {
		return phase() == service.PhaseRoundDone
	}, "round not finalized")

	ctrl.Stop()
	if got := phase(); got != service.PhaseIdle {
		t.Fatalf("phase after stop = %s, want idle", got)
	}

	var answers []entities.AnswerRecord
	_ = loop.Call(testutil.Context(t, 0), func() { answers = session.Answers() })
	if len(answers) != 1 || !answers[0].IsCorrect {
		t.Fatalf("answers = %+v", answers)
	}
}
