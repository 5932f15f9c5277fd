package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/infra/postgres"
)

func TestAddRow(t *testing.T) {
	bank := entities.Bank{}
	answer := int32(1)
	secs := 12.5

	if !addRow(bank, questionRow{
		ID:          "7",
		Course:      "SQL",
		Difficulty:  "Hard",
		Question:    "Which joins keep unmatched rows?",
		Options:     []string{"INNER", "LEFT"},
		Answer:      &answer,
		TimeSeconds: &secs,
	}) {
		t.Fatal("row with a known difficulty rejected")
	}
	if !addRow(bank, questionRow{ID: "8", Course: "SQL", Difficulty: "easy"}) {
		t.Fatal("row without answer rejected")
	}
	if addRow(bank, questionRow{ID: "9", Course: "SQL", Difficulty: "expert"}) {
		t.Fatal("row with unknown difficulty accepted")
	}

	hard := bank.Questions("SQL", entities.DifficultyHard)
	if len(hard) != 1 || !hard[0].IsMCQ() || hard[0].CorrectIndex() != 1 || hard[0].Time != 12.5 {
		t.Fatalf("hard = %+v", hard)
	}

	easy := bank.Questions("SQL", entities.DifficultyEasy)
	if len(easy) != 1 || easy[0].Answer != nil || easy[0].IsMCQ() {
		t.Fatalf("easy = %+v", easy)
	}
}

type failingSnapshot struct{ err error }

func (f failingSnapshot) WithinSnapshot(context.Context, func(context.Context, postgres.DBTX) error) error {
	return f.err
}

func TestLoadBankWrapsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	repo := NewQuestionBankRepository(failingSnapshot{err: boom}, nil)

	if _, err := repo.LoadBank(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped connection error", err)
	}
}
