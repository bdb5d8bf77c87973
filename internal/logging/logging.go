// Package logging builds the process logger. The chooser owns the terminal, so
// output goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log level and destination.
type Options struct {
	Level   string // debug|info|warn|error|off
	Path    string
	Verbose bool
}

// New returns a production JSON logger writing to opts.Path. Level "off" yields a
// no-op logger; Verbose forces debug.
func New(opts Options) (*zap.Logger, error) {
	level := opts.Level
	if opts.Verbose {
		level = "debug"
	}
	if level == "off" {
		return zap.NewNop(), nil
	}

	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("could not parse log level: %w", err)
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o700); err != nil {
		return nil, fmt.Errorf("could not create log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = atomic
	config.Sampling = nil
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{opts.Path}
	config.ErrorOutputPaths = []string{opts.Path}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("nmenu"), nil
}
