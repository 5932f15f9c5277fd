package service

import "github.com/aliskhannn/flipquiz-bot/internal/domain/entities"

// BankSource gives access to the loaded question bank. Bank fails while the
// bank is still loading or if loading failed.
type BankSource interface {
	Bank() (entities.Bank, error)
}

// Random is the randomness a session consumes. *math/rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}
