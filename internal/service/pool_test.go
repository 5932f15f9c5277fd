package service

import (
	"testing"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/testutil"
)

func TestEligiblePoolFiltersShape(t *testing.T) {
	bank := entities.Bank{}
	bank.Add("Go", entities.DifficultyNormal, mcq("ok", 0, "yes", "no"))
	bank.Add("Go", entities.DifficultyNormal, entities.Question{ID: "open", Question: "explain"})
	bank.Add("Go", entities.DifficultyNormal, entities.Question{ID: "no-answer", Options: []string{"a", "b"}})
	bank.Add("Go", entities.DifficultyNormal, mcq("out-of-range", 5, "a", "b"))
	bank.Add("Go", entities.DifficultyEasy, mcq("other-bucket", 0, "a"))

	pool := EligiblePool(bank, "Go", entities.DifficultyNormal)
	if len(pool) != 1 || pool[0].ID != "ok" {
		t.Fatalf("pool = %+v, want only the valid question", pool)
	}

	if got := EligiblePool(bank, "Rust", entities.DifficultyNormal); len(got) != 0 {
		t.Fatalf("unknown course pool = %+v", got)
	}
}

func TestSelectRoundsWithReplacement(t *testing.T) {
	pool := []entities.Question{mcq("a", 0, "x"), mcq("b", 0, "y"), mcq("c", 0, "z")}
	rng := testutil.NewScriptedRand()
	rng.Ints = []int{1, 1, 2, 0, 1}

	rounds := SelectRounds(pool, 5, rng)

	want := []entities.QuestionID{"b", "b", "c", "a", "b"}
	if len(rounds) != len(want) {
		t.Fatalf("len = %d, want %d", len(rounds), len(want))
	}
	for i := range want {
		if rounds[i].ID != want[i] {
			t.Fatalf("rounds[%d] = %s, want %s (duplicates must be kept)", i, rounds[i].ID, want[i])
		}
	}
}

func TestSelectRoundsEmpty(t *testing.T) {
	if got := SelectRounds(nil, 3, testutil.NewScriptedRand()); got != nil {
		t.Fatalf("SelectRounds(nil) = %v", got)
	}
	if got := SelectRounds([]entities.Question{mcq("a", 0, "x")}, 0, testutil.NewScriptedRand()); got != nil {
		t.Fatalf("SelectRounds(n=0) = %v", got)
	}
}
