package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
	"github.com/aliskhannn/flipquiz-bot/internal/service"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string       `mapstructure:"env"`           // current application environment (local, dev, production etc)
	TelegramAPIToken string       `mapstructure:"-"`             // Telegram API token loaded from environment
	QuestionBank     QuestionBank `mapstructure:"question_bank"` // where questions come from
	Game             Game         `mapstructure:"game"`          // round tuning
	Telegram         Telegram     `mapstructure:"telegram"`      // Telegram delivery tuning
	DB               DB           `mapstructure:"database"`      // database configuration section
}

// QuestionBank selects the question source.
type QuestionBank struct {
	Source string `mapstructure:"source"` // file or postgres
	Path   string `mapstructure:"path"`   // JSON or YAML bank file for the file source
}

// Game contains the round tuning.
type Game struct {
	TotalRounds      int           `mapstructure:"total_rounds"`
	Durations        Durations     `mapstructure:"durations"`
	TickInterval     time.Duration `mapstructure:"tick_interval"`
	LowTimeFloor     time.Duration `mapstructure:"low_time_floor"`
	LowTimeRatio     float64       `mapstructure:"low_time_ratio"`
	AutoAdvanceDelay time.Duration `mapstructure:"auto_advance_delay"`
	TimeUpVisual     time.Duration `mapstructure:"time_up_visual"`
	Stress           Stress        `mapstructure:"stress"`
}

// Durations holds the base round duration per difficulty.
type Durations struct {
	Easy   time.Duration `mapstructure:"easy"`
	Normal time.Duration `mapstructure:"normal"`
	Hard   time.Duration `mapstructure:"hard"`
}

// Stress configures stress event injection.
type Stress struct {
	Probability float64       `mapstructure:"probability"`
	Headroom    time.Duration `mapstructure:"headroom"`
	Display     time.Duration `mapstructure:"display"`
}

// Telegram contains Telegram delivery tuning.
type Telegram struct {
	RenderInterval time.Duration `mapstructure:"render_interval"` // minimum gap between timer message edits
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}
	return db.URL, nil
}

// RequireTelegram checks that the Telegram token is set.
func (c *Config) RequireTelegram() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

// Settings converts the game section into session settings.
func (g Game) Settings() service.GameSettings {
	return service.GameSettings{
		TotalRounds: g.TotalRounds,
		Durations: map[entities.Difficulty]time.Duration{
			entities.DifficultyEasy:   g.Durations.Easy,
			entities.DifficultyNormal: g.Durations.Normal,
			entities.DifficultyHard:   g.Durations.Hard,
		},
		TickInterval:     g.TickInterval,
		LowTimeFloor:     g.LowTimeFloor,
		LowTimeRatio:     g.LowTimeRatio,
		AutoAdvanceDelay: g.AutoAdvanceDelay,
		TimeUpVisual:     g.TimeUpVisual,
		Stress: service.StressSettings{
			Probability: g.Stress.Probability,
			Headroom:    g.Stress.Headroom,
			Display:     g.Stress.Display,
		},
	}
}

// Load reads configuration from config files and environment variables.
// Config files are looked up in paths, or in ./config when none are given.
func Load(paths ...string) (*Config, error) {
	// A missing .env file is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := service.DefaultGameSettings()

	v.SetDefault("env", "local")
	v.SetDefault("question_bank.source", SourceFile)
	v.SetDefault("question_bank.path", "assets/questions.json")

	v.SetDefault("game.total_rounds", d.TotalRounds)
	v.SetDefault("game.durations.easy", d.Durations[entities.DifficultyEasy])
	v.SetDefault("game.durations.normal", d.Durations[entities.DifficultyNormal])
	v.SetDefault("game.durations.hard", d.Durations[entities.DifficultyHard])
	v.SetDefault("game.tick_interval", d.TickInterval)
	v.SetDefault("game.low_time_floor", d.LowTimeFloor)
	v.SetDefault("game.low_time_ratio", d.LowTimeRatio)
	v.SetDefault("game.auto_advance_delay", d.AutoAdvanceDelay)
	v.SetDefault("game.time_up_visual", d.TimeUpVisual)
	v.SetDefault("game.stress.probability", d.Stress.Probability)
	v.SetDefault("game.stress.headroom", d.Stress.Headroom)
	v.SetDefault("game.stress.display", d.Stress.Display)

	v.SetDefault("telegram.render_interval", "1s")

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
}

func (c *Config) validate() error {
	var problems []string

	switch c.QuestionBank.Source {
	case SourceFile:
		if c.QuestionBank.Path == "" {
			problems = append(problems, "question_bank.path is empty")
		}
	case SourcePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		problems = append(problems, fmt.Sprintf("question_bank.source %q is not file or postgres", c.QuestionBank.Source))
	}

	g := c.Game
	if g.TotalRounds < 1 {
		problems = append(problems, "game.total_rounds must be at least 1")
	}
	for _, f := range []struct {
		name string
		d    time.Duration
	}{
		{"game.durations.easy", g.Durations.Easy},
		{"game.durations.normal", g.Durations.Normal},
		{"game.durations.hard", g.Durations.Hard},
		{"game.tick_interval", g.TickInterval},
	} {
		if f.d <= 0 {
			problems = append(problems, f.name+" must be positive")
		}
	}
	if g.Stress.Probability < 0 || g.Stress.Probability > 1 {
		problems = append(problems, "game.stress.probability must be within [0, 1]")
	}
	if g.LowTimeRatio < 0 || g.LowTimeRatio > 1 {
		problems = append(problems, "game.low_time_ratio must be within [0, 1]")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
