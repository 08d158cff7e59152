// Package logging provides a unified logging system with rotation
// support, shared by the CLI and the interactive prompt console.
package logging

import (
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig configures log file rotation behavior.
type RotationConfig struct {
	// MaxSizeMB is the maximum size in megabytes before rotation.
	// Zero means use DefaultRotationConfig's MaxSizeMB.
	MaxSizeMB int

	// MaxAgeDays is the maximum number of days to retain old log files.
	// Zero means no age-based cleanup.
	MaxAgeDays int

	// MaxBackups is the maximum number of old log files to keep.
	// Zero means keep all old files (subject to MaxAgeDays).
	MaxBackups int
}

// DefaultRotationConfig returns sensible defaults for rotation.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MaxSizeMB:  10,
		MaxAgeDays: 30,
		MaxBackups: 5,
	}
}

// RotatingWriter wraps lumberjack.Logger, the size/age-based rotation
// library used across the rest of this tool's third-party stack, behind
// the same io.WriteCloser shape the rest of this package expects.
type RotatingWriter struct {
	ljLogger *lumberjack.Logger
}

// NewRotatingWriter creates a rotating writer for path, creating parent
// directories as needed.
func NewRotatingWriter(path string, cfg RotationConfig) (*RotatingWriter, error) {
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = DefaultRotationConfig().MaxSizeMB
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	return &RotatingWriter{
		ljLogger: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxAge:     cfg.MaxAgeDays,
			MaxBackups: cfg.MaxBackups,
			Compress:   false,
		},
	}, nil
}

// Write writes data to the log file, rotating when lumberjack's
// size threshold is crossed.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	return w.ljLogger.Write(p)
}

// Close closes the underlying log file.
func (w *RotatingWriter) Close() error {
	return w.ljLogger.Close()
}

// Rotate forces an immediate rotation without waiting for the size
// threshold.
func (w *RotatingWriter) Rotate() error {
	return w.ljLogger.Rotate()
}
