package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	// Test with text format
	cfg := Config{
		Level:  "info",
		Format: "text",
	}
	logger := New(cfg)
	if logger == nil {
		t.Error("Expected logger to not be nil")
	}

	// Test with json format
	cfg.Format = "json"
	logger = New(cfg)
	if logger == nil {
		t.Error("Expected logger to not be nil")
	}

	// Test with invalid level (should default to info)
	cfg.Level = "invalid"
	logger = New(cfg)
	if logger == nil {
		t.Error("Expected logger to not be nil")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	logger.WithComponent("schedule").WithWeek("week-1").Info("Week created")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Expected a JSON record, got %q: %v", buf.String(), err)
	}
	if record["component"] != "schedule" {
		t.Errorf("Expected component=schedule, got %v", record["component"])
	}
	if record["week_id"] != "week-1" {
		t.Errorf("Expected week_id=week-1, got %v", record["week_id"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "text", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info record should be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("Warn record should be written, got %q", out)
	}
}

func TestWithVideo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "text", Output: &buf})

	logger.WithVideo("dQw4w9WgXcQ").Info("fetched")
	if !strings.Contains(buf.String(), "video_id=dQw4w9WgXcQ") {
		t.Errorf("Expected video_id attribute, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger == nil {
		t.Fatal("Expected discard logger to not be nil")
	}
	logger.Error("nothing happens")
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Error("Expected default logger to not be nil")
	}
}
