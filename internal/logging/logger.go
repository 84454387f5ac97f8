// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// consoleTimeFormat keeps console lines short; JSON logs use RFC 3339.
const consoleTimeFormat = "15:04:05"

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level. See ParseLevel.
	// Default: info
	Level string

	// Format is json or console.
	// Default: console
	Format string

	// Caller adds the file and line of each log call.
	Caller bool

	// Timestamp adds a time field.
	// Default: true
	Timestamp bool

	// Output receives log lines.
	// Default: os.Stderr
	Output io.Writer
}

// DefaultConfig returns console logging at info level to stderr.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    FormatConsole,
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	mu     sync.RWMutex
	global zerolog.Logger

	fieldsOnce sync.Once
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	global = New(DefaultConfig())
}

// New builds a logger from cfg without touching the global logger. It does
// set the process-wide minimum level, which zerolog keeps globally.
func New(cfg Config) zerolog.Logger {
	fieldsOnce.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		zerolog.TimestampFieldName = "time"
		zerolog.MessageFieldName = "message"
	})

	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	out := cfg.Output
	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: consoleTimeFormat,
			NoColor:    !isTerminal(cfg.Output),
		}
	}

	zctx := zerolog.New(out).With()
	if cfg.Timestamp {
		zctx = zctx.Timestamp()
	}
	if cfg.Caller {
		zctx = zctx.Caller()
	}
	return zctx.Logger()
}

// Init replaces the global logger with one built from cfg. Safe to call
// more than once.
func Init(cfg Config) {
	l := New(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

// isTerminal reports whether w is a character device such as a TTY.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// ParseLevel maps a level name to zerolog.Level, case-insensitively.
// "warning" is accepted for warn; anything unknown means info.
func ParseLevel(level string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	if name == "" {
		return zerolog.InfoLevel
	}
	l, err := zerolog.ParseLevel(name)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// SetLogger replaces the global logger, mostly for tests.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// With starts a child logger of the global logger.
//
//	loadLogger := logging.With().Str("component", "dataset").Logger()
func With() zerolog.Context {
	l := Logger()
	return l.With()
}

// Debug starts a debug event on the global logger.
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info starts an info event on the global logger.
//
//	logging.Info().Int("users", n).Msg("Users loaded")
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warning event on the global logger.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error event on the global logger.
//
//	logging.Error().Err(err).Msg("affinity failed")
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// GetLevel returns the process-wide minimum level.
func GetLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// SetLevel sets the process-wide minimum level.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
