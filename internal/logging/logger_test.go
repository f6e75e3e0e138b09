package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entries []map[string]any
	for i, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := NewLogger(dir, LevelDebug)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, LogFileName)); os.IsNotExist(err) {
			t.Error("log file was not created")
		}
	})

	t.Run("writes to stderr when dir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.out.closer != nil {
			t.Error("expected no closer when dir is empty")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})

	t.Run("defaults to INFO for an unknown level", func(t *testing.T) {
		logger, err := NewLogger(t.TempDir(), "loud")
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if got := logger.Level(); got != LevelInfo {
			t.Errorf("Level() = %q, want %q", got, LevelInfo)
		}
	})
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message", "key", "value")
	logger.Close()

	entries := readEntries(t, dir)
	if len(entries) != 4 {
		t.Fatalf("expected 4 log lines, got %d", len(entries))
	}

	wantLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, entry := range entries {
		if entry["level"] != wantLevels[i] {
			t.Errorf("line %d: level = %v, want %s", i, entry["level"], wantLevels[i])
		}
		if entry["key"] != "value" {
			t.Errorf("line %d: key = %v, want value", i, entry["key"])
		}
	}
}

func TestSetLevel(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	child := logger.WithPlayer(1)

	child.Info("dropped")
	logger.SetLevel("debug")
	child.Debug("kept")
	logger.Close()

	entries := readEntries(t, dir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(entries))
	}
	if entries[0]["msg"] != "kept" {
		t.Errorf("msg = %v, want kept", entries[0]["msg"])
	}
	if child.Level() != LevelDebug {
		t.Errorf("child Level() = %q, want %q", child.Level(), LevelDebug)
	}
}

func TestContextPropagation(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.WithGame("g-1").WithPlayer(2).WithComponent("player").Info("matched", "value", 17)
	logger.Close()

	entries := readEntries(t, dir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(entries))
	}
	entry := entries[0]

	if entry["game_id"] != "g-1" {
		t.Errorf("game_id = %v, want g-1", entry["game_id"])
	}
	// JSON numbers decode as float64
	if entry["player_id"] != float64(2) {
		t.Errorf("player_id = %v, want 2", entry["player_id"])
	}
	if entry["component"] != "player" {
		t.Errorf("component = %v, want player", entry["component"])
	}
	if entry["value"] != float64(17) {
		t.Errorf("value = %v, want 17", entry["value"])
	}
}

func TestWith(t *testing.T) {
	logger := NopLogger()

	if logger.With() != logger {
		t.Error("With() with no args should return the same logger")
	}

	child := logger.With("a", 1, 2, "skipped", "b", "x")
	if len(child.attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(child.attrs))
	}
	if child.attrs[0].Key != "a" || child.attrs[1].Key != "b" {
		t.Errorf("unexpected attr keys: %v", child.attrs)
	}
	if len(logger.attrs) != 0 {
		t.Error("parent attrs should not change")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info("ignored")
	logger.WithGame("x").Error("ignored")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidLevels(t *testing.T) {
	levels := ValidLevels()
	if len(levels) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(levels))
	}
}
