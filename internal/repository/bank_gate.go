package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

var (
	ErrBankNotReady    = errors.New("question bank is still loading")
	ErrBankUnavailable = errors.New("question bank failed to load")
)

// BankLoader produces a question bank.
type BankLoader interface {
	LoadBank(ctx context.Context) (entities.Bank, error)
}

// QuestionBank holds the bank once a loader has produced it. Callers asking
// for it earlier get ErrBankNotReady.
type QuestionBank struct {
	loader BankLoader
	logger *zap.Logger

	mu     sync.RWMutex
	bank   entities.Bank
	err    error
	loaded bool
}

// NewQuestionBank creates a QuestionBank that is not ready until Load returns.
func NewQuestionBank(loader BankLoader, logger *zap.Logger) *QuestionBank {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionBank{loader: loader, logger: logger}
}

// Load runs the loader and stores its outcome. A failed load is final.
func (b *QuestionBank) Load(ctx context.Context) error {
	bank, err := b.loader.LoadBank(ctx)

	b.mu.Lock()
	b.bank, b.err, b.loaded = bank, err, true
	b.mu.Unlock()

	if err != nil {
		b.logger.Error("question bank load failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrBankUnavailable, err)
	}

	b.logger.Info("question bank loaded", zap.Int("courses", len(bank)))
	return nil
}

// Bank returns the loaded bank.
func (b *QuestionBank) Bank() (entities.Bank, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	switch {
	case !b.loaded:
		return nil, ErrBankNotReady
	case b.err != nil:
		return nil, fmt.Errorf("%w: %w", ErrBankUnavailable, b.err)
	default:
		return b.bank, nil
	}
}

// Ready reports whether the bank loaded successfully.
func (b *QuestionBank) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded && b.err == nil
}
