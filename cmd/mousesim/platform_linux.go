//go:build linux

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"mousesim/internal/adapters/evdevinput"
	"mousesim/internal/adapters/x11input"
)

func parseKeyCode(value string) (uint16, error) {
	return evdevinput.ParseCode(value)
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "x11", "evdev", "wayland":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (linux supports auto|x11|evdev)", value)
	}
}

func listInputDevices(backend string) error {
	devices, err := evdevinput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		virtualTag := "physical"
		if dev.IsVirtual {
			virtualTag = "virtual"
		}
		keyboardTag := "non-keyboard"
		if dev.IsKeyboard {
			keyboardTag = "keyboard"
		}
		fmt.Printf("%s: %s [%s, %s]\n", dev.Path, dev.Name, virtualTag, keyboardTag)
	}
	return nil
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. The evdev backend needs read access to /dev/input and write access to /dev/uinput (root or udev rules). On X11 ensure an active session and DISPLAY is set."
}

func openBackend(cfg cliConfig, logger *slog.Logger) (inputBackend, error) {
	switch resolveLinuxBackend(cfg.backend) {
	case "x11":
		if cfg.devicePath != "" {
			logger.Warn("--device is ignored on the X11 backend")
		}
		logger.Info("Backend", "name", "x11")
		return x11input.NewBackend(logger)
	default:
		logger.Info("Backend", "name", "evdev")
		return evdevinput.NewBackend(cfg.devicePath, logger)
	}
}

func resolveLinuxBackend(configured string) string {
	choice := strings.ToLower(strings.TrimSpace(configured))
	if choice == "" {
		choice = "auto"
	}
	if choice == "wayland" {
		choice = "evdev"
	}
	if choice != "auto" {
		return choice
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "wayland":
		return "evdev"
	case "x11":
		return "x11"
	}

	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "evdev"
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	return "evdev"
}
