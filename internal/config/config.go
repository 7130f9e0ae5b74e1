// Package config persists the key bindings, movement magnitude,
// polling interval and enabled flag as XML at a fixed per-user path.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// Settings is the on-disk configuration record. Key bindings are
// stored by canonical name (KEY_*/BTN_*); the platform layer resolves
// names to codes.
type Settings struct {
	XMLName    xml.Name `xml:"mousesim"`
	MoveLeft   string   `xml:"bindings>move_left"`
	MoveRight  string   `xml:"bindings>move_right"`
	MoveUp     string   `xml:"bindings>move_up"`
	MoveDown   string   `xml:"bindings>move_down"`
	ClickLeft  string   `xml:"bindings>click_left"`
	ClickRight string   `xml:"bindings>click_right"`
	Magnitude  int      `xml:"magnitude"`
	IntervalMS int      `xml:"interval_ms"`
	Enabled    bool     `xml:"enabled"`
}

// Defaults returns the configuration used when no settings file
// exists: WASD movement, space and E for the two buttons, 8 pixels per
// reference frame at a 16ms cadence, starting disabled.
func Defaults() Settings {
	return Settings{
		MoveLeft:   "KEY_A",
		MoveRight:  "KEY_D",
		MoveUp:     "KEY_W",
		MoveDown:   "KEY_S",
		ClickLeft:  "KEY_SPACE",
		ClickRight: "KEY_E",
		Magnitude:  8,
		IntervalMS: 16,
		Enabled:    false,
	}
}

// DefaultPath is the fixed per-user settings location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return filepath.Join(".", ".mousesim-settings.xml")
	}
	return filepath.Join(configDir, "mousesim", "settings.xml")
}

// Load reads the settings file. A missing file is not an error: the
// defaults are returned. Malformed content also falls back to the
// defaults, with the parse error returned so the operator can be told.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	var cfg Settings
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return Defaults(), fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the settings atomically: a temp file in the same
// directory is renamed over the destination. Failures are returned to
// the caller and not retried.
func Save(path string, cfg Settings) error {
	if err := validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	data, err := xml.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

func validate(cfg Settings) error {
	if cfg.Magnitude < 1 {
		return fmt.Errorf("magnitude must be >= 1, got %d", cfg.Magnitude)
	}
	if cfg.IntervalMS < 1 {
		return fmt.Errorf("interval_ms must be >= 1, got %d", cfg.IntervalMS)
	}
	for _, binding := range []struct {
		name  string
		value string
	}{
		{"move_left", cfg.MoveLeft},
		{"move_right", cfg.MoveRight},
		{"move_up", cfg.MoveUp},
		{"move_down", cfg.MoveDown},
		{"click_left", cfg.ClickLeft},
		{"click_right", cfg.ClickRight},
	} {
		if binding.value == "" {
			return fmt.Errorf("binding %s is empty", binding.name)
		}
	}
	return nil
}
