package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"mousesim/internal/config"
	"mousesim/internal/core/mousesim"
	"mousesim/internal/tray"
)

// inputBackend is what every platform adapter provides: physical key
// sampling plus pointer injection over one connection.
type inputBackend interface {
	mousesim.KeyStater
	mousesim.Injector
}

type cliConfig struct {
	moveLeftRaw   string
	moveRightRaw  string
	moveUpRaw     string
	moveDownRaw   string
	clickLeftRaw  string
	clickRightRaw string
	magnitude     int
	intervalMS    int
	enabledRaw    string
	backend       string
	devicePath    string
	settingsPath  string
	useTray       bool
	saveOnExit    bool
	listDevices   bool
	logLevel      slog.Level
}

func newSlogLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (expected debug|info|warning|error)", value)
	}
}

func parseConfig(args []string) (cliConfig, error) {
	cfg := cliConfig{}
	flags := flag.NewFlagSet("mousesim", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	var backendRaw string
	var logLevelRaw string

	flags.StringVar(&cfg.moveLeftRaw, "move-left", "", "Key that moves the cursor left (default from settings file). Example: KEY_A.")
	flags.StringVar(&cfg.moveRightRaw, "move-right", "", "Key that moves the cursor right (default from settings file).")
	flags.StringVar(&cfg.moveUpRaw, "move-up", "", "Key that moves the cursor up (default from settings file).")
	flags.StringVar(&cfg.moveDownRaw, "move-down", "", "Key that moves the cursor down (default from settings file).")
	flags.StringVar(&cfg.clickLeftRaw, "click-left", "", "Key that holds the left mouse button (default from settings file).")
	flags.StringVar(&cfg.clickRightRaw, "click-right", "", "Key that holds the right mouse button (default from settings file).")
	flags.IntVar(&cfg.magnitude, "magnitude", 0, "Cursor speed in pixels per reference frame (default from settings file).")
	flags.IntVar(&cfg.intervalMS, "interval", 0, "Polling interval in milliseconds (default from settings file).")
	flags.StringVar(&cfg.enabledRaw, "enabled", "", "Start with simulation enabled: true|false (default from settings file).")
	flags.StringVar(&backendRaw, "backend", "auto", "Input backend. Linux: auto|x11|evdev. Other platforms: auto.")
	flags.StringVar(&cfg.devicePath, "device", "", "Input event device path to sample, e.g. /dev/input/event4. Auto-detected if omitted.")
	flags.StringVar(&cfg.settingsPath, "settings", "", "Settings file path. Defaults to the per-user config dir.")
	flags.BoolVar(&cfg.useTray, "tray", false, "Show a system tray menu with an enable toggle.")
	flags.BoolVar(&cfg.saveOnExit, "save", false, "Write the effective settings back to the settings file on exit.")
	flags.BoolVar(&cfg.listDevices, "list-devices", false, "Print available input devices and exit.")
	flags.StringVar(&logLevelRaw, "log-level", "info", "Log verbosity (default: info). Allowed: debug, info, warning, error.")

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	if cfg.magnitude < 0 {
		return cfg, fmt.Errorf("--magnitude must be >= 1")
	}
	if cfg.intervalMS < 0 {
		return cfg, fmt.Errorf("--interval must be >= 1")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.enabledRaw)) {
	case "", "true", "false":
	default:
		return cfg, fmt.Errorf("invalid --enabled %q (expected true|false)", cfg.enabledRaw)
	}

	parsedLevel, err := parseLogLevel(logLevelRaw)
	if err != nil {
		return cfg, err
	}
	backendChoice, err := parseBackendChoice(backendRaw)
	if err != nil {
		return cfg, err
	}

	cfg.backend = backendChoice
	cfg.logLevel = parsedLevel
	if cfg.settingsPath == "" {
		cfg.settingsPath = config.DefaultPath()
	}
	return cfg, nil
}

// applyOverrides layers non-empty flag values over the loaded settings
// record.
func applyOverrides(file *config.Settings, cfg cliConfig) {
	if cfg.moveLeftRaw != "" {
		file.MoveLeft = cfg.moveLeftRaw
	}
	if cfg.moveRightRaw != "" {
		file.MoveRight = cfg.moveRightRaw
	}
	if cfg.moveUpRaw != "" {
		file.MoveUp = cfg.moveUpRaw
	}
	if cfg.moveDownRaw != "" {
		file.MoveDown = cfg.moveDownRaw
	}
	if cfg.clickLeftRaw != "" {
		file.ClickLeft = cfg.clickLeftRaw
	}
	if cfg.clickRightRaw != "" {
		file.ClickRight = cfg.clickRightRaw
	}
	if cfg.magnitude > 0 {
		file.Magnitude = cfg.magnitude
	}
	if cfg.intervalMS > 0 {
		file.IntervalMS = cfg.intervalMS
	}
	switch strings.ToLower(strings.TrimSpace(cfg.enabledRaw)) {
	case "true":
		file.Enabled = true
	case "false":
		file.Enabled = false
	}
}

// resolveSettings turns the named bindings into canonical codes for
// the engine. Resolution is per-platform.
func resolveSettings(file config.Settings) (mousesim.Settings, error) {
	out := mousesim.Settings{
		Magnitude: file.Magnitude,
		Interval:  file.IntervalMS,
		Enabled:   file.Enabled,
	}
	for _, binding := range []struct {
		slot mousesim.Slot
		name string
		raw  string
	}{
		{mousesim.SlotMoveLeft, "move_left", file.MoveLeft},
		{mousesim.SlotMoveRight, "move_right", file.MoveRight},
		{mousesim.SlotMoveUp, "move_up", file.MoveUp},
		{mousesim.SlotMoveDown, "move_down", file.MoveDown},
		{mousesim.SlotClickLeft, "click_left", file.ClickLeft},
		{mousesim.SlotClickRight, "click_right", file.ClickRight},
	} {
		code, err := parseKeyCode(binding.raw)
		if err != nil {
			return out, fmt.Errorf("binding %s: %w", binding.name, err)
		}
		out.Bindings[binding.slot] = code
	}
	return out, nil
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func run(args []string, stderr io.Writer) int {
	cfg, err := parseConfig(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if cfg.listDevices {
		if err := listInputDevices(cfg.backend); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	logger := newSlogLogger(cfg.logLevel)

	fileCfg, err := config.Load(cfg.settingsPath)
	if err != nil {
		logger.Warn("Settings unreadable, continuing with defaults", "path", cfg.settingsPath, "err", err)
	}
	applyOverrides(&fileCfg, cfg)

	settings, err := resolveSettings(fileCfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	store, err := mousesim.NewStore(settings)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	backend, err := openBackend(cfg, logger)
	if err != nil {
		if isPermissionError(err) {
			fmt.Fprintln(stderr, permissionDeniedHint())
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer backend.Close()

	engine, err := mousesim.NewEngine(store, backend, backend, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := engine.Start(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer engine.Stop()

	logger.Info("Bindings",
		"move_left", fileCfg.MoveLeft,
		"move_right", fileCfg.MoveRight,
		"move_up", fileCfg.MoveUp,
		"move_down", fileCfg.MoveDown,
		"click_left", fileCfg.ClickLeft,
		"click_right", fileCfg.ClickRight,
	)
	logger.Info("Motion", "magnitude", store.Magnitude(), "interval_ms", store.Interval())
	if store.Enabled() {
		logger.Info("Simulation enabled")
	} else {
		logger.Info("Simulation disabled; toggle via tray or restart with --enabled=true")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.useTray {
		controller := tray.New(store, logger, cancel)
		go func() {
			<-ctx.Done()
			controller.Stop()
		}()
		controller.Run()
	} else {
		<-ctx.Done()
	}

	if cfg.saveOnExit {
		fileCfg.Enabled = store.Enabled()
		if err := config.Save(cfg.settingsPath, fileCfg); err != nil {
			logger.Warn("Failed to save settings", "path", cfg.settingsPath, "err", err)
		} else {
			logger.Info("Settings saved", "path", cfg.settingsPath)
		}
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
