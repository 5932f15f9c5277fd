package service

import (
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

// EligiblePool returns the questions of the course/difficulty bucket that have
// the multiple-choice shape, in bank order.
func EligiblePool(bank entities.Bank, course string, d entities.Difficulty) []entities.Question {
	raw := bank.Questions(course, d)

	pool := make([]entities.Question, 0, len(raw))
	for _, q := range raw {
		if q.IsMCQ() {
			pool = append(pool, q)
		}
	}
	return pool
}

// SelectRounds draws n questions from pool uniformly and independently, with
// replacement. The same question may appear in several rounds.
func SelectRounds(pool []entities.Question, n int, rng Random) []entities.Question {
	if len(pool) == 0 || n <= 0 {
		return nil
	}

	rounds := make([]entities.Question, n)
	for i := range rounds {
		rounds[i] = pool[rng.Intn(len(pool))]
	}
	return rounds
}
