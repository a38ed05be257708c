package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSONHandlerShape(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("imported file", String("file", "IMG-0001.jpeg"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if record["msg"] != "imported file" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["file"] != "IMG-0001.jpeg" {
		t.Fatalf("unexpected file attr: %v", record["file"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("missing ts field")
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger = NewComponentLogger(logger, "importer")
	logger.Warn("thumbnail failed", String("file", "a.jpg"))

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Fatalf("missing level label: %q", out)
	}
	if !strings.Contains(out, "[importer]") {
		t.Fatalf("missing component: %q", out)
	}
	if !strings.Contains(out, "file=a.jpg") {
		t.Fatalf("missing attr: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info record emitted at warn level: %q", buf.String())
	}
	logger.Error("loud")
	if buf.Len() == 0 {
		t.Fatal("error record suppressed")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelFallback(t *testing.T) {
	if got := parseLevel("bogus"); got != slog.LevelInfo {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := parseLevel("DEBUG"); got != slog.LevelDebug {
		t.Fatalf("expected debug, got %v", got)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()
	logger.Error("should vanish", Error(nil))
}
