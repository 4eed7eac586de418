package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMakeDefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.config.level != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.config.level)
	}

	if logger.config.caller {
		t.Error("expected caller info disabled by default")
	}

	if logger.config.format != FormatText {
		t.Errorf("expected default format text, got %v", logger.config.format)
	}
}

func TestMakeWithLevelFiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelDebug), WithPretty(false))

	logger.Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()

	logger = Make(&buf, WithLevel(LevelError), WithPretty(false))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestMakeWithFormatJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON))
	logger.Info("test message", slog.String("key", "value"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if result["msg"] != "test message" {
		t.Errorf("expected msg=test message, got %v", result["msg"])
	}

	if result["key"] != "value" {
		t.Errorf("expected key=value, got %v", result["key"])
	}
}

func TestMakeWithFormatText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
	logger.Info("test message", slog.String("key", "value"))

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Error("message not found in text output")
	}

	if !strings.Contains(output, "key=value") {
		t.Error("key=value not found in text output")
	}
}

func TestTraceLevelBelowDebug(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelDebug), WithPretty(false))
	logger.Trace("trace message")

	if buf.Len() > 0 {
		t.Error("trace message logged when level is Debug")
	}

	logger = Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON))
	logger.Trace("trace message")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level label, got %q", buf.String())
	}
}

func TestWrapOverridesConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelError))
	wrapped := logger.Wrap(WithLevel(LevelDebug), WithPretty(false))

	wrapped.Debug("wrapped debug")

	if !strings.Contains(buf.String(), "wrapped debug") {
		t.Error("wrapped logger did not apply overridden level")
	}

	buf.Reset()
	logger.Debug("original debug")

	if buf.Len() > 0 {
		t.Error("original logger level was mutated by Wrap")
	}
}

func TestWithIncludesAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("component", "lexer"))
	logger.Info("scanning")

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if result["component"] != "lexer" {
		t.Errorf("expected component=lexer, got %v", result["component"])
	}
}

func TestZeroValueLoggerDiscards(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Info("into the void")
	logger.Error("still nothing")

	if logger.Level() != DefaultLevel {
		t.Errorf("expected DefaultLevel from zero logger, got %v", logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected DefaultFormat from zero logger, got %v", logger.Format())
	}
}

func TestWithTimeLayoutNoneOmitsTimestamp(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithTimeLayout("none"),
	)
	logger.Info("no time")

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if _, ok := result["time"]; ok {
		t.Error("timestamp present despite layout \"none\"")
	}
}
