//go:build linux

package evdevinput

import (
	"errors"
	"fmt"
	"sync"

	"mousesim/internal/core/mousesim"

	evdev "github.com/holoplot/go-evdev"
)

// Backend provides the two OS primitives on Linux without a display
// server dependency: key state is polled from the opened source
// devices (EVIOCGKEY) and events are injected through a uinput virtual
// pointer.
type Backend struct {
	sources []*evdev.InputDevice
	virtual *evdev.InputDevice
	logger  mousesim.Logger

	injectMu  sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

var _ mousesim.KeyStater = (*Backend)(nil)
var _ mousesim.Injector = (*Backend)(nil)

// NewBackend opens the source devices to poll and creates the virtual
// pointer device. devicePath narrows polling to a single device; empty
// means every non-virtual key-capable device.
func NewBackend(devicePath string, logger mousesim.Logger) (*Backend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	sources, err := openSourceDevices(devicePath)
	if err != nil {
		return nil, err
	}
	for _, dev := range sources {
		name, _ := dev.Name()
		logger.Debug("Polling source device", "path", dev.Path(), "name", name)
	}

	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1,
		Product: 0x1,
		Version: 1,
	}
	virtual, err := evdev.CreateDevice("mousesim-pointer", id, map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: {evdev.BTN_LEFT, evdev.BTN_RIGHT},
		evdev.EV_REL: {evdev.REL_X, evdev.REL_Y},
	})
	if err != nil {
		for _, dev := range sources {
			_ = dev.Close()
		}
		return nil, fmt.Errorf("failed to create uinput device: %w", err)
	}

	return &Backend{
		sources: sources,
		virtual: virtual,
		logger:  logger,
	}, nil
}

// Held reports whether the key is down on any polled source device.
// Per-device query failures are tolerated as long as one device
// answers; an error is returned only when every query fails.
func (b *Backend) Held(code uint16) (bool, error) {
	var lastErr error
	answered := false

	for _, dev := range b.sources {
		state, err := dev.State(evdev.EV_KEY)
		if err != nil {
			lastErr = err
			continue
		}
		answered = true
		if state[evdev.EvCode(code)] {
			return true, nil
		}
	}

	if !answered {
		if lastErr == nil {
			lastErr = errors.New("no source devices to query")
		}
		return false, lastErr
	}
	return false, nil
}

func (b *Backend) MoveRelative(dx, dy int) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	if dx != 0 {
		if err := b.writeEvent(evdev.EV_REL, evdev.REL_X, int32(dx)); err != nil {
			return err
		}
	}
	if dy != 0 {
		if err := b.writeEvent(evdev.EV_REL, evdev.REL_Y, int32(dy)); err != nil {
			return err
		}
	}
	return b.writeEvent(evdev.EV_SYN, evdev.SYN_REPORT, 0)
}

func (b *Backend) SetButton(primary bool, down bool) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	var button evdev.EvCode = evdev.BTN_RIGHT
	if primary {
		button = evdev.BTN_LEFT
	}
	value := int32(0)
	if down {
		value = 1
	}

	if err := b.writeEvent(evdev.EV_KEY, button, value); err != nil {
		return err
	}
	return b.writeEvent(evdev.EV_SYN, evdev.SYN_REPORT, 0)
}

func (b *Backend) writeEvent(evType evdev.EvType, code evdev.EvCode, value int32) error {
	ev := evdev.InputEvent{
		Type:  evType,
		Code:  code,
		Value: value,
	}
	return b.virtual.WriteOne(&ev)
}

func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		for _, dev := range b.sources {
			_ = dev.Close()
		}
		b.closeErr = b.virtual.Close()
	})
	return b.closeErr
}
