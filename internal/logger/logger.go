package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger: JSON at info level for production, console at
// debug level otherwise.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
