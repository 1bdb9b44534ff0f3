package main

import (
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	steps, err := parseSteps(nil)
	if err != nil || steps != 1 {
		t.Fatalf("expected default of one step, got %d (%v)", steps, err)
	}
	if steps, err = parseSteps([]string{"3"}); err != nil || steps != 3 {
		t.Fatalf("expected 3 steps, got %d (%v)", steps, err)
	}
	if _, err = parseSteps([]string{"0"}); err == nil {
		t.Fatalf("expected error for zero steps")
	}
	if _, err = parseSteps([]string{"x"}); err == nil {
		t.Fatalf("expected error for non-numeric steps")
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if v, err := parseVersion("1792368000"); err != nil || v != 1792368000 {
		t.Fatalf("unexpected version %d (%v)", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestNormalizeDBURL(t *testing.T) {
	t.Setenv("DB_BINARY_PARAMETERS", "")
	got := normalizeDBURL("postgres://u:p@localhost:5432/ladder?sslmode=disable")
	if !strings.Contains(got, "binary_parameters=yes") {
		t.Fatalf("expected binary_parameters in %q", got)
	}

	t.Setenv("DB_BINARY_PARAMETERS", "false")
	in := "postgres://u:p@localhost:5432/ladder?sslmode=disable"
	if got := normalizeDBURL(in); got != in {
		t.Fatalf("expected url unchanged, got %q", got)
	}

	dsn := "host=localhost dbname=ladder"
	t.Setenv("DB_BINARY_PARAMETERS", "")
	if got := normalizeDBURL(dsn); got != dsn {
		t.Fatalf("expected dsn unchanged, got %q", got)
	}
}
