package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. SKYLOG_DEBUG=1 switches to debug level.
// TUI sessions should pass quiet=true so log lines do not tear the screen.
func New(quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	if os.Getenv("SKYLOG_DEBUG") == "1" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
