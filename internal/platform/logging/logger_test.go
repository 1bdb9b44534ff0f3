package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	logger.With("season_id", "s1").Info("challenge created", "match_id", "m1", "error", errors.New("boom"))
	logger.Debug("dropped")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["season_id"] != "s1" || fields["match_id"] != "m1" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field, got %+v", fields["error"])
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var logger *Logger
	logger.Warn("fallback", "odd")

	if logs.Len() != 1 {
		t.Fatalf("expected default logger to receive entry, got %d", logs.Len())
	}
	if _, ok := logs.All()[0].ContextMap()["odd"]; !ok {
		t.Fatalf("expected dangling key to be logged")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("warn") != LevelWarn || ParseLevel("nonsense") != LevelInfo {
		t.Fatalf("unexpected level parsing")
	}
}
