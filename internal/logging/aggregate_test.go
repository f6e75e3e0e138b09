package logging

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeGameLog(t *testing.T, dir string) {
	t.Helper()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	game := logger.WithGame("g1")
	game.WithComponent("moderator").Info("game started", "players", 2)
	game.WithComponent("moderator").Debug("number announced", "round", 1, "value", 7)
	game.WithPlayer(0).Info("number matched", "round", 1, "value", 7, "matches", 1)
	game.WithPlayer(1).Warn("slow player")
	logger.WithGame("g2").Error("game failed")
	_ = logger.Close()
}

func TestReadLogs(t *testing.T) {
	t.Run("parses game fields", func(t *testing.T) {
		dir := t.TempDir()
		writeGameLog(t, dir)

		entries, err := ReadLogs(dir)
		if err != nil {
			t.Fatalf("ReadLogs failed: %v", err)
		}
		if len(entries) != 5 {
			t.Fatalf("expected 5 entries, got %d", len(entries))
		}

		first := entries[0]
		if first.Message != "game started" || first.Level != LevelInfo {
			t.Errorf("first entry = %q/%q, want %q/%q", first.Message, first.Level, "game started", LevelInfo)
		}
		if first.GameID != "g1" {
			t.Errorf("GameID = %q, want %q", first.GameID, "g1")
		}
		if first.Component != "moderator" {
			t.Errorf("Component = %q, want %q", first.Component, "moderator")
		}
		if first.PlayerID != nil {
			t.Errorf("PlayerID = %d, want nil", *first.PlayerID)
		}
		if first.Attrs["players"] != float64(2) {
			t.Errorf("players attr = %v, want 2", first.Attrs["players"])
		}

		matched := entries[2]
		if matched.PlayerID == nil || *matched.PlayerID != 0 {
			t.Errorf("PlayerID = %v, want 0", matched.PlayerID)
		}
		if matched.Round != 1 {
			t.Errorf("Round = %d, want 1", matched.Round)
		}
		if _, ok := matched.Attrs["round"]; ok {
			t.Error("round should not be duplicated in Attrs")
		}
	})

	t.Run("missing log file", func(t *testing.T) {
		if _, err := ReadLogs(t.TempDir()); err == nil {
			t.Error("expected error for missing log file")
		}
	})

	t.Run("includes rotated backups", func(t *testing.T) {
		dir := t.TempDir()
		older := `{"time":"2026-01-01T10:00:00Z","level":"INFO","msg":"old","game_id":"g0"}` + "\n"
		middle := `{"time":"2026-01-01T11:00:00Z","level":"INFO","msg":"middle","game_id":"g0"}` + "\n"
		newest := `{"time":"2026-01-01T12:00:00Z","level":"INFO","msg":"new","game_id":"g0"}` + "\n"

		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write([]byte(older)); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(dir, LogFileName+".2.gz"), buf.Bytes())
		writeFile(t, filepath.Join(dir, LogFileName+".1"), []byte(middle))
		writeFile(t, filepath.Join(dir, LogFileName), []byte(newest+"not json\n\n"))

		entries, err := ReadLogs(dir)
		if err != nil {
			t.Fatalf("ReadLogs failed: %v", err)
		}
		var got []string
		for _, e := range entries {
			got = append(got, e.Message)
		}
		if strings.Join(got, ",") != "old,middle,new" {
			t.Errorf("messages = %v, want [old middle new]", got)
		}
	})
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestFilterLogs(t *testing.T) {
	dir := t.TempDir()
	writeGameLog(t, dir)
	entries, err := ReadLogs(dir)
	if err != nil {
		t.Fatalf("ReadLogs failed: %v", err)
	}

	player0, player1 := 0, 1
	tests := []struct {
		name   string
		filter LogFilter
		want   int
	}{
		{"empty filter", LogFilter{}, 5},
		{"level info", LogFilter{Level: "info"}, 4},
		{"level warn", LogFilter{Level: LevelWarn}, 2},
		{"game", LogFilter{GameID: "g1"}, 4},
		{"player 0", LogFilter{PlayerID: &player0}, 1},
		{"player 1 at warn", LogFilter{PlayerID: &player1, Level: LevelWarn}, 1},
		{"component", LogFilter{Component: "moderator"}, 2},
		{"message", LogFilter{MessageContains: "number"}, 2},
		{"future start", LogFilter{StartTime: time.Now().Add(time.Hour)}, 0},
		{"past end", LogFilter{EndTime: time.Now().Add(-time.Hour)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterLogs(entries, tt.filter); len(got) != tt.want {
				t.Errorf("FilterLogs() returned %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestWriteEntries(t *testing.T) {
	player := 3
	entries := []LogEntry{
		{
			Timestamp: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
			Level:     LevelInfo,
			Message:   "threshold reached",
			GameID:    "g1",
			PlayerID:  &player,
			Round:     9,
			Attrs:     map[string]any{"matches": float64(10)},
		},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteEntries(&buf, entries, FormatText); err != nil {
			t.Fatalf("WriteEntries failed: %v", err)
		}
		want := `[2026-01-01 10:00:00.000] INFO - threshold reached (game=g1, player=3, round=9) {"matches":10}` + "\n"
		if buf.String() != want {
			t.Errorf("text =\n%q\nwant\n%q", buf.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteEntries(&buf, entries, "JSON"); err != nil {
			t.Fatalf("WriteEntries failed: %v", err)
		}
		var decoded []LogEntry
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded) != 1 || decoded[0].PlayerID == nil || *decoded[0].PlayerID != 3 {
			t.Errorf("decoded = %+v", decoded)
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteEntries(&buf, entries, FormatCSV); err != nil {
			t.Fatalf("WriteEntries failed: %v", err)
		}
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected header + 1 record, got %d", len(records))
		}
		if records[1][3] != "g1" || records[1][4] != "3" || records[1][6] != "9" {
			t.Errorf("record = %v", records[1])
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if err := WriteEntries(&bytes.Buffer{}, entries, "xml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}
