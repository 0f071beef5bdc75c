// Package logging provides the structured logger used by desknotify.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// LogLevel represents logging severity.
type LogLevel int

const (
	// LogLevelDebug includes detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo includes standard operational information.
	LogLevelInfo
	// LogLevelWarn includes warnings about potential issues.
	LogLevelWarn
	// LogLevelError includes only error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a log level string.
func ParseLogLevel(s string) (LogLevel, error) {
	switch s {
	case "debug", "DEBUG":
		return LogLevelDebug, nil
	case "info", "INFO", "":
		return LogLevelInfo, nil
	case "warn", "WARN", "warning", "WARNING":
		return LogLevelWarn, nil
	case "error", "ERROR":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

const consoleTimeFormat = time.RFC3339

// LoggerConfig configures the logger.
type LoggerConfig struct {
	Level    LogLevel
	FilePath string
	JSONMode bool
	// Journal sends entries to the systemd journal when it is reachable.
	Journal bool
	// Writer overrides the destination; used when FilePath is empty and
	// Journal is off. Defaults to stderr.
	Writer io.Writer
}

// Logger wraps a zerolog logger. A nil *Logger discards everything.
type Logger struct {
	zl     zerolog.Logger
	level  LogLevel
	closer io.Closer
}

// NewLogger creates a new Logger.
func NewLogger(cfg LoggerConfig) (*Logger, error) {
	l := &Logger{level: cfg.Level}

	var out io.Writer
	if cfg.Journal {
		if jw, ok := journalWriter(); ok {
			out = jw
		}
	}

	switch {
	case out != nil:
	case cfg.FilePath != "":
		dir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		// #nosec G304 - log path comes from the user's own configuration
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.closer = f
		out = f
		if !cfg.JSONMode {
			out = zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: consoleTimeFormat}
		}
	default:
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		out = w
		if !cfg.JSONMode {
			out = zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w), TimeFormat: consoleTimeFormat}
		}
	}

	l.zl = zerolog.New(out).Level(cfg.Level.zerolog()).With().Timestamp().Logger()
	return l, nil
}

// Nop returns a logger that never writes anything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop(), level: LogLevelError}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Close closes the underlying log file, if any. Later calls do nothing.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// GetLevel returns the configured log level.
func (l *Logger) GetLevel() LogLevel {
	if l == nil {
		return LogLevelError
	}
	return l.level
}

func (l *Logger) emit(e *zerolog.Event, msg string, fields []Field) {
	if e == nil {
		return
	}
	for _, f := range fields {
		if f != nil {
			f(e)
		}
	}
	e.Msg(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.emit(l.zl.Debug(), msg, fields)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.emit(l.zl.Info(), msg, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.emit(l.zl.Warn(), msg, fields)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.emit(l.zl.Error(), msg, fields)
}
