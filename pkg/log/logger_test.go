package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": DebugLevel,
		"INFO":  InfoLevel,
		"warn":  WarnLevel,
		"error": ErrorLevel,
		"fatal": FatalLevel,
		"":      InfoLevel,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestBaseLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithLevel(WarnLevel), WithFormatter(&JSONFormatter{}), WithOutput(NewWriterOutput(&buf)))

	logger.Info("should be filtered")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below configured level, got %q", buf.String())
	}

	logger.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected warn message in output, got %q", buf.String())
	}
}

func TestBaseLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithLevel(DebugLevel), WithFormatter(&JSONFormatter{}), WithOutput(NewWriterOutput(&buf)))
	logger.Info("generated id", Str("node", "n1"), Int("count", 3))

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if decoded["msg"] != "generated id" {
		t.Fatalf("msg = %v, want %q", decoded["msg"], "generated id")
	}
	if decoded["node"] != "n1" {
		t.Fatalf("node field = %v, want n1", decoded["node"])
	}
}

func TestWithComponentIsSticky(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(WithLevel(DebugLevel), WithFormatter(&JSONFormatter{}), WithOutput(NewWriterOutput(&buf)))
	scoped := base.WithComponent("idservice")
	scoped.Info("hello")

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded[ComponentKey] != "idservice" {
		t.Fatalf("component field = %v, want idservice", decoded[ComponentKey])
	}
}

func TestTextFormatterIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithLevel(DebugLevel), WithFormatter(&TextFormatter{}), WithOutput(NewWriterOutput(&buf)))
	logger.Error("boom", Str("node", "n1"))

	line := buf.String()
	if !strings.Contains(line, "level=ERROR") || !strings.Contains(line, "node=n1") {
		t.Fatalf("unexpected text line: %q", line)
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	logger, err := ApplyConfig(&Config{})
	if err != nil {
		t.Fatalf("ApplyConfig returned error: %v", err)
	}
	if logger.GetLevel() != InfoLevel {
		t.Fatalf("default level = %v, want InfoLevel", logger.GetLevel())
	}
}

func TestApplyConfigRejectsBadLevel(t *testing.T) {
	if _, err := ApplyConfig(&Config{Level: "not-a-level"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestRedirectStdLogWritesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WithLevel(DebugLevel), WithFormatter(&JSONFormatter{}), WithOutput(NewWriterOutput(&buf)))
	w := RedirectStdLog(logger)
	w.Write([]byte("pebble: compaction stalled\n"))

	if !strings.Contains(buf.String(), "compaction stalled") {
		t.Fatalf("expected redirected message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Fatalf("expected redirected message at error level, got %q", buf.String())
	}
}
