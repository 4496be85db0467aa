// Package logging builds zap loggers from pluggable cores: a console core for
// the terminal and a rotating JSON file core.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file.
const (
	MaxSizeMB  = 10
	MaxBackups = 3
	MaxAgeDays = 28
)

// Plugin is one destination for log entries.
type Plugin = zapcore.Core

// NewStdoutPlugin writes human-readable entries to stderr. Stdout is reserved
// for command output.
func NewStdoutPlugin(enabler zapcore.LevelEnabler) Plugin {
	return NewWriterPlugin(os.Stderr, enabler)
}

// NewWriterPlugin writes console-encoded entries to w.
func NewWriterPlugin(w io.Writer, enabler zapcore.LevelEnabler) Plugin {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), enabler)
}

// NewFilePlugin writes JSON entries to a size-rotated file. The returned
// closer releases the file handle.
func NewFilePlugin(path string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
		MaxAge:     MaxAgeDays,
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(w), enabler), w
}

// NewLogger fans entries out to every plugin.
func NewLogger(plugins ...Plugin) *zap.Logger {
	return zap.New(zapcore.NewTee(plugins...))
}

// ParseLevel accepts zap level names ("debug", "info", "warn", "error").
// An empty string means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}
