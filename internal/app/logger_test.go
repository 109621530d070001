package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/heartmarshall/ninolex-gh/internal/config"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})

	if slog.Default().Handler() != logger.Handler() {
		t.Error("NewLogger should set the returned logger as slog default")
	}
}

func TestNewLoggerTo_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    string
		wantSlog slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := NewLoggerTo(&buf, config.LogConfig{Level: tt.level, Format: "text"})

			logger.Log(context.Background(), tt.wantSlog, "should appear")
			if buf.Len() == 0 {
				t.Errorf("expected log output at level %v", tt.wantSlog)
			}

			buf.Reset()
			logger.Log(context.Background(), tt.wantSlog-1, "should be suppressed")
			if buf.Len() != 0 {
				t.Errorf("level %v should suppress level %v, got: %s", tt.wantSlog, tt.wantSlog-1, buf.String())
			}
		})
	}
}

func TestNewLoggerTo_TextAddsSource_JSONDoesNot(t *testing.T) {
	t.Parallel()

	var textBuf, jsonBuf bytes.Buffer

	NewLoggerTo(&textBuf, config.LogConfig{Level: "info", Format: "text"}).Info("hello")
	NewLoggerTo(&jsonBuf, config.LogConfig{Level: "info", Format: "json"}).Info("hello", slog.String("grapheme", "Kɔforidua"))

	if !strings.Contains(textBuf.String(), "source=") {
		t.Error("text format should include source")
	}

	var m map[string]any
	if err := json.Unmarshal(jsonBuf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := m["source"]; ok {
		t.Error("json format should not include source")
	}
	if m["grapheme"] != "Kɔforidua" {
		t.Errorf("grapheme attr = %v", m["grapheme"])
	}
}
