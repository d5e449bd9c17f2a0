// Package logging builds the run's file logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New truncates path and returns a logger writing INFO and above to it.
// The returned close func syncs and closes the file.
func New(path string) (*zap.Logger, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(f),
		zap.InfoLevel,
	)
	logger := zap.New(core)

	closeFn := func() error {
		_ = logger.Sync()
		return f.Close()
	}
	return logger, closeFn, nil
}
