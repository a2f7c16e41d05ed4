// Package zap builds the structured logger used by diffutils commands.
package zap

import (
	"os"

	zaplib "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a logger that writes JSON lines to the file at path.
// If path is empty, logging is disabled.
// If debug is true, debug-level events are included.
func NewLogger(path string, debug bool) (*zaplib.Logger, error) {
	if path == "" {
		return zaplib.NewNop(), nil
	}

	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	encoderConfig := zaplib.NewProductionEncoderConfig()
	if debug {
		level = zapcore.DebugLevel
		encoderConfig = zaplib.NewDevelopmentEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		level,
	)

	return zaplib.New(core).Named("diffutils"), nil
}
