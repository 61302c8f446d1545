package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase TRACE", "TRACE", LevelTrace},
		{"mixed case Debug", "Debug", slog.LevelDebug},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level      string
		logAtTrace bool
		logAtDebug bool
	}{
		{"info", false, false},
		{"debug", false, true},
		{"trace", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Log(context.Background(), LevelTrace, "trace message")
			logger.Debug("debug message")
			logger.Info("info message")
			out := buf.String()
			if strings.Contains(out, "trace message") != tt.logAtTrace {
				t.Errorf("Level %v: unexpected trace output: %q", tt.level, out)
			}
			if strings.Contains(out, "debug message") != tt.logAtDebug {
				t.Errorf("Level %v: unexpected debug output: %q", tt.level, out)
			}
			if !strings.Contains(out, "info message") {
				t.Errorf("Level %v: info should always be logged. Got: %q", tt.level, out)
			}
			if tt.logAtTrace && !strings.Contains(out, "level=TRACE") {
				t.Errorf("The trace level should be labeled TRACE. Got: %q", out)
			}
		})
	}
}

func TestOrDiscard(t *testing.T) {
	OrDiscard(nil).Info("dropped")
	var buf bytes.Buffer
	l := NewLogger("info", &buf)
	if OrDiscard(l) != l {
		t.Errorf("OrDiscard should return a non nil logger unchanged")
	}
}
