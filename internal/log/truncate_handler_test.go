package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTruncateHandlerLongValue tests that oversized string values are cut.
func TestTruncateHandlerLongValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		WithMaxValueLen(10),
	))

	logger.Info("record", "full_text", strings.Repeat("法", 50), "title", "短标题")

	out := buf.String()
	if !strings.Contains(out, strings.Repeat("法", 10)+TruncationMarker) {
		t.Errorf("long value not truncated: %s", out)
	}
	if strings.Contains(out, strings.Repeat("法", 11)) {
		t.Errorf("truncated value too long: %s", out)
	}
	if !strings.Contains(out, "短标题") {
		t.Errorf("short value should pass through: %s", out)
	}
}

// TestTruncateHandlerCountsRunes tests that the threshold counts runes,
// not bytes, so CJK text is not cut mid-character.
func TestTruncateHandlerCountsRunes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		WithMaxValueLen(5),
	))

	// Five runes, fifteen bytes: exactly at the threshold.
	logger.Info("record", "title", "监管政策文件")

	if !strings.Contains(buf.String(), "监管政策文"+TruncationMarker) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

// TestTruncateHandlerWithAttrs tests truncation of pre-bound attributes.
func TestTruncateHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		WithMaxValueLen(4),
	))

	logger.With("source", "abcdefgh").Info("loaded")

	if !strings.Contains(buf.String(), "abcd"+TruncationMarker) {
		t.Errorf("bound attribute not truncated: %s", buf.String())
	}
}

// TestTruncateHandlerGroups tests recursion into grouped attributes.
func TestTruncateHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		WithMaxValueLen(4),
	))

	logger.Info("run", slog.Group("record", slog.String("body", "0123456789")))

	if !strings.Contains(buf.String(), "0123"+TruncationMarker) {
		t.Errorf("grouped attribute not truncated: %s", buf.String())
	}
}

// TestNewLoggerLevels tests the verbose level switch.
func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	NewLogger(&quiet, false).Info("hidden")
	if quiet.Len() != 0 {
		t.Errorf("info should be suppressed without verbose: %s", quiet.String())
	}

	var verbose bytes.Buffer
	NewLogger(&verbose, true).Debug("visible")
	if !strings.Contains(verbose.String(), "visible") {
		t.Errorf("debug should be emitted with verbose: %s", verbose.String())
	}
}
