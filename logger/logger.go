package logger

import (
	"go.uber.org/zap"
)

// New creates a logger appropriate for the environment: JSON output in
// production, human-readable console output otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
