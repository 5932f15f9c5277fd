package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/flipquiz-bot/internal/config"
	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/testutil"
)

func TestNewBankLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	data := "Geo:\n  easy:\n    - id: fr\n      question: Capital of France?\n      options: [Rome, Paris]\n      answer: 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{QuestionBank: config.QuestionBank{Source: config.SourceFile, Path: path}}
	loader, closeFn, err := NewBankLoader(testutil.Context(t, 0), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewBankLoader: %v", err)
	}
	defer closeFn()

	bank, err := loader.LoadBank(testutil.Context(t, 0))
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if got := len(bank.Questions("Geo", entities.DifficultyEasy)); got != 1 {
		t.Fatalf("questions = %d, want 1", got)
	}
}

func TestNewBankLoaderPostgresNeedsURL(t *testing.T) {
	cfg := &config.Config{QuestionBank: config.QuestionBank{Source: config.SourcePostgres}}
	_, _, err := NewBankLoader(testutil.Context(t, 0), cfg, zap.NewNop())
	if !errors.Is(err, config.ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}
}
