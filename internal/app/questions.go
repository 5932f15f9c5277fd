// Package app wires the pieces shared by the bot and the terminal game.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/config"
	"github.com/aliskhannn/flipquiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/flipquiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/flipquiz-bot/internal/repository"
)

// NewBankLoader returns the question loader selected by cfg. The returned
// func releases whatever the loader holds open.
func NewBankLoader(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.BankLoader, func(), error) {
	switch cfg.QuestionBank.Source {
	case config.SourcePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}

		log.Info("question bank source", zap.String("source", config.SourcePostgres))
		return pgrepo.NewQuestionBankRepository(postgres.NewTransactor(pool), log), pool.Close, nil

	default:
		log.Info("question bank source",
			zap.String("source", config.SourceFile),
			zap.String("path", cfg.QuestionBank.Path),
		)
		return repository.NewFileBankRepository(cfg.QuestionBank.Path), func() {}, nil
	}
}
