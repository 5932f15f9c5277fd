package service

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/clock"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

// GameService creates game sessions over a shared question bank.
type GameService struct {
	bank     BankSource
	settings GameSettings
	logger   *zap.Logger
	newRand  func() Random
}

// NewGameService creates a new GameService.
func NewGameService(bank BankSource, settings GameSettings, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GameService{
		bank:     bank,
		settings: settings,
		logger:   logger,
		newRand: func() Random {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// NewSession creates an idle session driven by sched and reporting to observer.
// Each session gets its own random source.
func (g *GameService) NewSession(sched clock.Scheduler, observer Observer) *Session {
	return NewSession(g.bank, sched, g.newRand(), observer, g.logger, g.settings)
}

// Settings returns the game settings sessions are created with.
func (g *GameService) Settings() GameSettings {
	return g.settings
}

// Courses returns the courses that have at least one playable question.
func (g *GameService) Courses() ([]string, error) {
	bank, err := g.bank.Bank()
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	var out []string
	for _, course := range bank.Courses() {
		if len(playableDifficulties(bank, course)) > 0 {
			out = append(out, course)
		}
	}

	return out, nil
}

// Difficulties returns the difficulties of course that have at least one
// playable question.
func (g *GameService) Difficulties(course string) ([]entities.Difficulty, error) {
	bank, err := g.bank.Bank()
	if err != nil {
		return nil, fmt.Errorf("list difficulties: %w", err)
	}

	out := playableDifficulties(bank, course)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: course %q", ErrNoQuestionsAvailable, course)
	}
	return out, nil
}

func playableDifficulties(bank entities.Bank, course string) []entities.Difficulty {
	var out []entities.Difficulty
	for _, d := range entities.Difficulties {
		if len(EligiblePool(bank, course, d)) > 0 {
			out = append(out, d)
		}
	}
	return out
}
