//go:build windows

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"mousesim/internal/adapters/wininput"
)

func parseKeyCode(value string) (uint16, error) {
	return wininput.ParseCode(value)
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "windows":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (windows supports auto|windows)", value)
	}
}

func listInputDevices(_ string) error {
	fmt.Println("global: Windows Global Input [physical, keyboard]")
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied sampling global key state. Run from an interactive session; elevated target windows may require running as Administrator."
}

func openBackend(cfg cliConfig, logger *slog.Logger) (inputBackend, error) {
	if cfg.devicePath != "" {
		logger.Warn("--device is ignored on Windows; global key state is used")
	}
	logger.Info("Backend", "name", "windows")
	return wininput.NewBackend(logger)
}
