package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "local" || cfg.QuestionBank.Source != SourceFile {
		t.Fatalf("cfg = %+v", cfg)
	}

	s := cfg.Game.Settings()
	if s.TotalRounds != 10 {
		t.Fatalf("TotalRounds = %d, want 10", s.TotalRounds)
	}
	if d, _ := s.BaseDuration(entities.DifficultyHard); d != 45*time.Second {
		t.Fatalf("hard duration = %v, want 45s", d)
	}
	if s.TickInterval != 20*time.Millisecond || s.AutoAdvanceDelay != 350*time.Millisecond {
		t.Fatalf("timing = %v / %v", s.TickInterval, s.AutoAdvanceDelay)
	}
	if s.Stress.Probability != 0.5 || s.Stress.Headroom != 3*time.Second {
		t.Fatalf("stress = %+v", s.Stress)
	}
	if cfg.Telegram.RenderInterval != time.Second {
		t.Fatalf("render interval = %v", cfg.Telegram.RenderInterval)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	dir := writeConfig(t, `
question_bank:
  path: data/bank.yaml
game:
  total_rounds: 4
  durations:
    easy: 10s
  stress:
    probability: 0
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.QuestionBank.Path != "data/bank.yaml" {
		t.Fatalf("path = %q", cfg.QuestionBank.Path)
	}
	s := cfg.Game.Settings()
	if s.TotalRounds != 4 || s.Durations[entities.DifficultyEasy] != 10*time.Second {
		t.Fatalf("settings = %+v", s)
	}
	if s.Durations[entities.DifficultyNormal] != 35*time.Second {
		t.Fatalf("normal duration lost its default: %v", s.Durations[entities.DifficultyNormal])
	}
	if s.Stress.Probability != 0 {
		t.Fatalf("probability = %v, want 0", s.Stress.Probability)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GAME_TOTAL_ROUNDS", "3")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TELEGRAM_API_TOKEN", "secret")

	cfg, err := Load(writeConfig(t, "game:\n  total_rounds: 7\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Game.TotalRounds != 3 {
		t.Fatalf("TotalRounds = %d, want env value 3", cfg.Game.TotalRounds)
	}
	if cfg.Env != "production" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if err := cfg.RequireTelegram(); err != nil {
		t.Fatalf("RequireTelegram: %v", err)
	}
}

func TestRequireTelegramMissing(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.RequireTelegram(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}
}

func TestLoadPostgresNeedsDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := writeConfig(t, "question_bank:\n  source: postgres\n")

	if _, err := Load(dir); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}

	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dsn, err := cfg.DB.DSN(); err != nil || dsn == "" {
		t.Fatalf("DSN = %q, %v", dsn, err)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := map[string]string{
		"zero rounds":     "game:\n  total_rounds: 0\n",
		"probability":     "game:\n  stress:\n    probability: 1.5\n",
		"negative easy":   "game:\n  durations:\n    easy: -1s\n",
		"unknown source":  "question_bank:\n  source: s3\n",
		"zero tick":       "game:\n  tick_interval: 0s\n",
		"low time ratio":  "game:\n  low_time_ratio: 2\n",
		"empty bank path": "question_bank:\n  path: \"\"\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	if _, err := Load(writeConfig(t, "game: [\n")); err == nil {
		t.Fatal("malformed config loaded")
	}
}
