package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel}, // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJSONLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("merge decided",
		SubgraphKey("Global:1"),
		CutValue(42.5),
		Stage("merge"),
	)

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("level = %q, want INFO", entry.Level)
	}
	if entry.Message != "merge decided" {
		t.Errorf("msg = %q", entry.Message)
	}
	if entry.Fields["subgraph"] != "Global:1" {
		t.Errorf("subgraph field = %v", entry.Fields["subgraph"])
	}
	if entry.Fields["cut_value"] != 42.5 {
		t.Errorf("cut_value field = %v", entry.Fields["cut_value"])
	}
}

func TestJSONLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 2 {
		t.Errorf("got %d log lines, want 2: %s", lines, buf.String())
	}
}

func TestWithPresetFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(RunID("abc-123"), WorkerID(3))
	child.Info("task complete")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Fields["run_id"] != "abc-123" {
		t.Errorf("run_id field = %v", entry.Fields["run_id"])
	}
	if entry.Fields["worker_id"] != float64(3) {
		t.Errorf("worker_id field = %v", entry.Fields["worker_id"])
	}
}

func TestErrorField(t *testing.T) {
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil).Value = %v, want nil", f.Value)
	}
	if f := Error(errors.New("boom")); f.Value != "boom" {
		t.Errorf("Error(err).Value = %v, want boom", f.Value)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("silent", Count(1))
	if logger.With(Stage("solve")) == nil {
		t.Error("With returned nil")
	}
}
