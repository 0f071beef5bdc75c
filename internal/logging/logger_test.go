package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("LogLevel.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LogLevelDebug, false},
		{"DEBUG", LogLevelDebug, false},
		{"info", LogLevelInfo, false},
		{"", LogLevelInfo, false}, // empty defaults to info
		{"warn", LogLevelWarn, false},
		{"warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"invalid", LogLevelInfo, true},
		{"trace", LogLevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLogLevel() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(LoggerConfig{Level: LogLevelDebug, JSONMode: true, Writer: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("notification sent", String("backend", "dbus"), Err(errors.New("boom")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log entry %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" {
		t.Errorf("expected level info, got %v", entry["level"])
	}
	if entry["message"] != "notification sent" {
		t.Errorf("expected message 'notification sent', got %v", entry["message"])
	}
	if entry["backend"] != "dbus" {
		t.Errorf("expected backend field dbus, got %v", entry["backend"])
	}
	if entry["error"] != "boom" {
		t.Errorf("expected error field boom, got %v", entry["error"])
	}
}

func TestFields(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(LoggerConfig{Level: LogLevelDebug, JSONMode: true, Writer: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("dispatch",
		Int("attempt", 2),
		Bool("sound", true),
		Duration("elapsed", 1500*time.Millisecond),
		Err(nil),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log entry %q: %v", buf.String(), err)
	}
	if entry["attempt"] != float64(2) {
		t.Errorf("expected attempt 2, got %v", entry["attempt"])
	}
	if entry["sound"] != true {
		t.Errorf("expected sound true, got %v", entry["sound"])
	}
	if entry["elapsed"] != float64(1500) {
		t.Errorf("expected elapsed 1500ms, got %v", entry["elapsed"])
	}
	if _, ok := entry["error"]; ok {
		t.Errorf("expected no error key for nil error, got %v", entry["error"])
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(LoggerConfig{Level: LogLevelDebug, Writer: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Warn("dispatch failed", String("backend", "toast"))

	output := buf.String()
	if !strings.Contains(output, "dispatch failed") {
		t.Errorf("expected output to contain message, got %q", output)
	}
	if !strings.Contains(output, "backend=toast") {
		t.Errorf("expected output to contain backend=toast, got %q", output)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(LoggerConfig{Level: LogLevelWarn, JSONMode: true, Writer: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn level, got %q", buf.String())
	}

	logger.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Errorf("expected error message in output, got %q", buf.String())
	}
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "desknotify.log")

	logger, err := NewLogger(LoggerConfig{Level: LogLevelInfo, FilePath: path, JSONMode: true})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("written to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected log file to contain message, got %q", string(data))
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	var logger *Logger

	logger.Debug("ignored")
	logger.Info("ignored")
	logger.Warn("ignored")
	logger.Error("ignored")
	if err := logger.Close(); err != nil {
		t.Errorf("expected nil error from nil logger Close, got %v", err)
	}
	if logger.GetLevel() != LogLevelError {
		t.Errorf("expected nil logger level ERROR, got %v", logger.GetLevel())
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("never written")
	if err := logger.Close(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestLogger_Journal(t *testing.T) {
	original := journalWriter
	t.Cleanup(func() { journalWriter = original })

	t.Run("journal reachable", func(t *testing.T) {
		var journalBuf, fallback bytes.Buffer
		journalWriter = func() (io.Writer, bool) { return &journalBuf, true }

		logger, err := NewLogger(LoggerConfig{Level: LogLevelInfo, Journal: true, Writer: &fallback})
		if err != nil {
			t.Fatalf("NewLogger() error = %v", err)
		}
		logger.Info("sent", String("backend", "toast"))

		if fallback.Len() != 0 {
			t.Errorf("expected nothing on the fallback writer, got %q", fallback.String())
		}
		if !strings.Contains(journalBuf.String(), `"backend":"toast"`) {
			t.Errorf("expected JSON entry in journal, got %q", journalBuf.String())
		}
	})

	t.Run("journal unreachable falls back", func(t *testing.T) {
		var fallback bytes.Buffer
		journalWriter = func() (io.Writer, bool) { return nil, false }

		logger, err := NewLogger(LoggerConfig{Level: LogLevelInfo, Journal: true, Writer: &fallback})
		if err != nil {
			t.Fatalf("NewLogger() error = %v", err)
		}
		logger.Info("sent")

		if !strings.Contains(fallback.String(), "sent") {
			t.Errorf("expected entry on the fallback writer, got %q", fallback.String())
		}
	})
}
