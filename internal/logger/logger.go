package logger

import (
	"go.uber.org/zap"
)

const envProduction = "production"

// New builds the application logger: JSON production output in production,
// human-readable development output everywhere else.
func New(env string) (*zap.Logger, error) {
	if env == envProduction {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// NewFile builds a logger that writes to path instead of the terminal. An
// empty path disables logging.
func NewFile(env, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	if env == envProduction {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	return cfg.Build()
}
