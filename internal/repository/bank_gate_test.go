package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

type stubLoader struct {
	bank entities.Bank
	err  error
}

func (l stubLoader) LoadBank(context.Context) (entities.Bank, error) {
	return l.bank, l.err
}

func TestQuestionBankNotReadyBeforeLoad(t *testing.T) {
	qb := NewQuestionBank(stubLoader{bank: entities.Bank{}}, nil)

	if _, err := qb.Bank(); !errors.Is(err, ErrBankNotReady) {
		t.Fatalf("err = %v, want ErrBankNotReady", err)
	}
	if qb.Ready() {
		t.Fatal("ready before load")
	}
}

func TestQuestionBankLoaded(t *testing.T) {
	want := entities.Bank{}
	want.Add("Go", entities.DifficultyEasy, entities.Question{ID: "1"})
	qb := NewQuestionBank(stubLoader{bank: want}, nil)

	if err := qb.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := qb.Bank()
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	if len(got.Questions("Go", entities.DifficultyEasy)) != 1 || !qb.Ready() {
		t.Fatalf("bank = %v", got)
	}
}

func TestQuestionBankLoadFailure(t *testing.T) {
	boom := errors.New("boom")
	qb := NewQuestionBank(stubLoader{err: boom}, nil)

	if err := qb.Load(context.Background()); !errors.Is(err, ErrBankUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("load err = %v", err)
	}
	if _, err := qb.Bank(); !errors.Is(err, ErrBankUnavailable) {
		t.Fatalf("bank err = %v, want ErrBankUnavailable", err)
	}
	if qb.Ready() {
		t.Fatal("ready after failed load")
	}
}
