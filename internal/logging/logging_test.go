package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesAtLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(dir, slog.LevelWarn); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	slog.Info("hidden message")
	slog.Warn("visible message", "pipeline_id", 7)

	data, err := os.ReadFile(filepath.Join(dir, "pipeboard.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden message") {
		t.Error("Info record written below configured level")
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "pipeline_id=7") {
		t.Errorf("Expected warn record with attrs, got %q", out)
	}
}
