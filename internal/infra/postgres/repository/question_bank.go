package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/infra/postgres"
)

// Snapshotter runs reads against one consistent view of the database.
type Snapshotter interface {
	WithinSnapshot(ctx context.Context, fn func(ctx context.Context, db postgres.DBTX) error) error
}

// QuestionBankRepository reads the question bank from the quiz_questions
// table:
//
//	id           text
//	course       text
//	difficulty   text
//	question     text
//	options      text[]
//	answer       integer null
//	time_seconds double precision null
type QuestionBankRepository struct {
	tx     Snapshotter
	logger *zap.Logger
}

// NewQuestionBankRepository creates a new QuestionBankRepository.
func NewQuestionBankRepository(tx Snapshotter, logger *zap.Logger) *QuestionBankRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionBankRepository{tx: tx, logger: logger}
}

type questionRow struct {
	ID          string
	Course      string
	Difficulty  string
	Question    string
	Options     []string
	Answer      *int32
	TimeSeconds *float64
}

// LoadBank reads every question row.
func (r *QuestionBankRepository) LoadBank(ctx context.Context) (entities.Bank, error) {
	query := `
		SELECT id, course, difficulty, question, options, answer, time_seconds
		FROM quiz_questions
		ORDER BY course, difficulty, id
	`

	bank := entities.Bank{}
	skipped := 0

	err := r.tx.WithinSnapshot(ctx, func(ctx context.Context, db postgres.DBTX) error {
		rows, err := db.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row questionRow
			if err := rows.Scan(
				&row.ID,
				&row.Course,
				&row.Difficulty,
				&row.Question,
				&row.Options,
				&row.Answer,
				&row.TimeSeconds,
			); err != nil {
				return err
			}

			if !addRow(bank, row) {
				skipped++
			}
		}

		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	if skipped > 0 {
		r.logger.Warn("question rows with unknown difficulty skipped", zap.Int("count", skipped))
	}

	return bank, nil
}

// addRow adds row to bank and reports whether its difficulty was recognised.
func addRow(bank entities.Bank, row questionRow) bool {
	d, err := entities.ParseDifficulty(row.Difficulty)
	if err != nil {
		return false
	}

	q := entities.Question{
		ID:       entities.QuestionID(row.ID),
		Question: row.Question,
		Options:  row.Options,
	}
	if row.Answer != nil {
		idx := int(*row.Answer)
		q.Answer = &idx
	}
	if row.TimeSeconds != nil && *row.TimeSeconds > 0 {
		q.Time = *row.TimeSeconds
	}

	bank.Add(row.Course, d, q)
	return true
}
