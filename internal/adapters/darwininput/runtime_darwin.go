//go:build darwin

package darwininput

import (
	"fmt"
	"sync"

	"mousesim/internal/core/mousesim"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// Backend tracks physical key state from the global event tap and
// injects pointer events through robotgo. The tap requires the
// accessibility permission; without it the event stream stays silent.
type Backend struct {
	logger mousesim.Logger

	mu   sync.RWMutex
	held map[uint16]bool

	injectMu  sync.Mutex
	closeOnce sync.Once
	doneCh    chan struct{}
}

var (
	_ mousesim.KeyStater = (*Backend)(nil)
	_ mousesim.Injector  = (*Backend)(nil)
)

func NewBackend(logger mousesim.Logger) (*Backend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	b := &Backend{
		logger: logger,
		held:   make(map[uint16]bool),
		doneCh: make(chan struct{}),
	}
	go b.tapLoop()
	return b, nil
}

func (b *Backend) tapLoop() {
	defer close(b.doneCh)

	events := hook.Start()
	for event := range events {
		switch event.Kind {
		case hook.KeyDown, hook.KeyHold:
			if code, ok := CodeFromMac(event.Rawcode); ok {
				b.setHeld(code, true)
			}
		case hook.KeyUp:
			if code, ok := CodeFromMac(event.Rawcode); ok {
				b.setHeld(code, false)
			}
		case hook.MouseDown:
			if code, ok := buttonCode(event.Button); ok {
				b.setHeld(code, true)
			}
		case hook.MouseUp:
			if code, ok := buttonCode(event.Button); ok {
				b.setHeld(code, false)
			}
		}
	}
}

func (b *Backend) setHeld(code uint16, down bool) {
	b.mu.Lock()
	b.held[code] = down
	b.mu.Unlock()
}

func (b *Backend) Held(code uint16) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.held[code], nil
}

func (b *Backend) MoveRelative(dx, dy int) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	if dx == 0 && dy == 0 {
		return nil
	}
	robotgo.MoveRelative(dx, dy)
	return nil
}

func (b *Backend) SetButton(primary bool, down bool) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	button := "right"
	if primary {
		button = "left"
	}
	direction := "up"
	if down {
		direction = "down"
	}
	return robotgo.Toggle(button, direction)
}

func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		hook.End()
		<-b.doneCh
	})
	return nil
}

func buttonCode(button uint16) (uint16, bool) {
	switch button {
	case 1:
		return CodeBTNLeft, true
	case 2:
		return CodeBTNRight, true
	case 3:
		return CodeBTNMiddle, true
	default:
		return 0, false
	}
}
