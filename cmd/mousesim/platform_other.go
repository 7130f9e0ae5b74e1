//go:build !linux && !windows && !darwin

package main

import (
	"fmt"
	"log/slog"
	"strings"
)

func parseKeyCode(value string) (uint16, error) {
	return 0, fmt.Errorf("unsupported platform")
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" || backend == "auto" {
		return "auto", nil
	}
	return "", fmt.Errorf("invalid --backend %q (unsupported platform)", value)
}

func listInputDevices(_ string) error {
	return fmt.Errorf("input device listing is not supported on this platform")
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend."
}

func openBackend(cfg cliConfig, logger *slog.Logger) (inputBackend, error) {
	return nil, fmt.Errorf("mouse simulation is not supported on this platform")
}
