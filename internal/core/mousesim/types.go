// Package mousesim implements the input-simulation engine: it samples
// physical key state on a fixed cadence, converts held movement keys
// into frame-rate-independent pointer displacement, detects
// press/release transitions for the click keys and emits synthetic
// input events through a platform injector.
package mousesim

// ReferenceFPS normalizes displacement against the polling interval:
// the configured magnitude is pixels per reference frame, so changing
// the interval does not change the perceived speed.
const ReferenceFPS = 60

// Slot identifies one of the six configurable key bindings.
type Slot int

const (
	SlotMoveLeft Slot = iota
	SlotMoveRight
	SlotMoveUp
	SlotMoveDown
	SlotClickLeft
	SlotClickRight

	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotMoveLeft:
		return "move-left"
	case SlotMoveRight:
		return "move-right"
	case SlotMoveUp:
		return "move-up"
	case SlotMoveDown:
		return "move-down"
	case SlotClickLeft:
		return "click-left"
	case SlotClickRight:
		return "click-right"
	default:
		return "unknown"
	}
}

// Slots lists all binding slots in configuration order.
func Slots() []Slot {
	return []Slot{
		SlotMoveLeft, SlotMoveRight, SlotMoveUp, SlotMoveDown,
		SlotClickLeft, SlotClickRight,
	}
}

// KeyStater answers whether a physical key is currently held. The
// query is synchronous and non-blocking; it reflects the key state at
// call time, independent of input focus.
type KeyStater interface {
	Held(code uint16) (bool, error)
}

// Injector submits synthetic input events to the operating system.
// Both calls are fire-and-forget best-effort: the engine logs failures
// and keeps ticking.
type Injector interface {
	MoveRelative(dx, dy int) error
	SetButton(primary bool, down bool) error
	Close() error
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
