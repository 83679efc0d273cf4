package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := DashboardAddr(); got != ":3000" {
		t.Fatalf("expected :3000, got %q", got)
	}
	if got := RevealStep(); got != 30*time.Millisecond {
		t.Fatalf("expected 30ms reveal step, got %s", got)
	}
	if got := BreakerMaxFailures(); got != 3 {
		t.Fatalf("expected 3 breaker failures, got %d", got)
	}
	if TelemetryEnabled() {
		t.Fatalf("telemetry should be disabled by default")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("REVEAL_STEP", "5ms")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	if err := Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := RevealStep(); got != 5*time.Millisecond {
		t.Fatalf("expected 5ms, got %s", got)
	}
	if got := DisplayLocation(); got.String() != "UTC" {
		t.Fatalf("expected UTC, got %s", got)
	}
}

func TestDisplayLocationFallback(t *testing.T) {
	t.Setenv("DISPLAY_TIMEZONE", "Nowhere/Invalid")
	if err := Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := DisplayLocation(); got != time.Local {
		t.Fatalf("expected time.Local fallback, got %s", got)
	}
}
