package main

import (
	"log/slog"
	"testing"

	"mousesim/internal/config"
	"mousesim/internal/core/mousesim"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		raw      string
		expected slog.Level
		wantErr  bool
	}{
		{raw: "debug", expected: slog.LevelDebug},
		{raw: "INFO", expected: slog.LevelInfo},
		{raw: "warn", expected: slog.LevelWarn},
		{raw: "warning", expected: slog.LevelWarn},
		{raw: "error", expected: slog.LevelError},
		{raw: "loud", wantErr: true},
	}

	for _, tc := range tests {
		level, err := parseLogLevel(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseLogLevel(%q) should fail", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseLogLevel(%q) returned error: %v", tc.raw, err)
		}
		if level != tc.expected {
			t.Fatalf("parseLogLevel(%q)=%v, want %v", tc.raw, level, tc.expected)
		}
	}
}

func TestParseConfigRejectsBadValues(t *testing.T) {
	if _, err := parseConfig([]string{"--magnitude", "-3"}); err == nil {
		t.Fatalf("negative magnitude should fail")
	}
	if _, err := parseConfig([]string{"--interval", "-1"}); err == nil {
		t.Fatalf("negative interval should fail")
	}
	if _, err := parseConfig([]string{"--enabled", "maybe"}); err == nil {
		t.Fatalf("non-boolean --enabled should fail")
	}
	if _, err := parseConfig([]string{"stray"}); err == nil {
		t.Fatalf("positional arguments should fail")
	}
}

func TestParseConfigDefaultsSettingsPath(t *testing.T) {
	cfg, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("parseConfig(nil) returned error: %v", err)
	}
	if cfg.settingsPath == "" {
		t.Fatalf("settings path should default to the per-user location")
	}
}

func TestApplyOverrides(t *testing.T) {
	file := config.Defaults()
	applyOverrides(&file, cliConfig{
		moveLeftRaw: "KEY_J",
		magnitude:   20,
		enabledRaw:  "true",
	})

	if file.MoveLeft != "KEY_J" {
		t.Fatalf("move_left=%q, want KEY_J", file.MoveLeft)
	}
	if file.MoveRight != "KEY_D" {
		t.Fatalf("move_right=%q should stay at default", file.MoveRight)
	}
	if file.Magnitude != 20 {
		t.Fatalf("magnitude=%d, want 20", file.Magnitude)
	}
	if file.IntervalMS != 16 {
		t.Fatalf("interval_ms=%d should stay at default", file.IntervalMS)
	}
	if !file.Enabled {
		t.Fatalf("enabled should be overridden to true")
	}
}

func TestResolveSettingsNumericBindings(t *testing.T) {
	file := config.Defaults()
	file.MoveLeft = "30"
	file.ClickRight = "18"

	settings, err := resolveSettings(file)
	if err != nil {
		t.Fatalf("resolveSettings returned error: %v", err)
	}
	if settings.Bindings[mousesim.SlotMoveLeft] != 30 {
		t.Fatalf("move_left code=%d, want 30", settings.Bindings[mousesim.SlotMoveLeft])
	}
	if settings.Bindings[mousesim.SlotClickRight] != 18 {
		t.Fatalf("click_right code=%d, want 18", settings.Bindings[mousesim.SlotClickRight])
	}
	if settings.Magnitude != file.Magnitude || settings.Interval != file.IntervalMS {
		t.Fatalf("magnitude/interval not carried over: %+v", settings)
	}
}
