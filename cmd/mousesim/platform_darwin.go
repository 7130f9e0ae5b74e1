//go:build darwin

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"mousesim/internal/adapters/darwininput"
)

func parseKeyCode(value string) (uint16, error) {
	return darwininput.ParseCode(value)
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "darwin":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (macOS supports auto|darwin)", value)
	}
}

func listInputDevices(_ string) error {
	fmt.Println("global: macOS Global Event Tap [physical, keyboard]")
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied reading global input. Grant the binary Accessibility access in System Settings > Privacy & Security."
}

func openBackend(cfg cliConfig, logger *slog.Logger) (inputBackend, error) {
	if cfg.devicePath != "" {
		logger.Warn("--device is ignored on macOS; the global event tap is used")
	}
	logger.Info("Backend", "name", "darwin")
	return darwininput.NewBackend(logger)
}
