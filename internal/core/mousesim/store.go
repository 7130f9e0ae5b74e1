package mousesim

import (
	"fmt"
	"sync/atomic"
)

// Settings is a plain snapshot of the configurable record. It is what
// the persistence layer serializes and what the Store is seeded from.
type Settings struct {
	Bindings  [6]uint16 // indexed by Slot
	Magnitude int       // pixels per reference frame, >= 1
	Interval  int       // polling interval in milliseconds, >= 1
	Enabled   bool
}

// Store holds the live configuration shared between the control
// surface and the tick loop. Every field is independently atomic; a
// tick may observe a mix of old and new values across fields, which is
// acceptable because each field takes effect within one tick on its
// own. There is no snapshot spanning multiple fields.
//
// Duplicate bindings are not rejected: binding two slots to the same
// physical key makes both actions fire together.
type Store struct {
	bindings  [slotCount]atomic.Uint32
	magnitude atomic.Int64
	interval  atomic.Int64
	enabled   atomic.Bool
}

// NewStore builds a Store from a settings snapshot. Magnitude and
// interval below 1 are rejected.
func NewStore(s Settings) (*Store, error) {
	store := &Store{}
	if err := store.SetMagnitude(s.Magnitude); err != nil {
		return nil, err
	}
	if err := store.SetInterval(s.Interval); err != nil {
		return nil, err
	}
	for _, slot := range Slots() {
		store.SetBinding(slot, s.Bindings[slot])
	}
	store.SetEnabled(s.Enabled)
	return store, nil
}

func (s *Store) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

func (s *Store) Enabled() bool {
	return s.enabled.Load()
}

// ToggleEnabled flips the enabled flag and reports the new state.
func (s *Store) ToggleEnabled() bool {
	for {
		old := s.enabled.Load()
		if s.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *Store) SetBinding(slot Slot, code uint16) {
	if slot < 0 || slot >= slotCount {
		return
	}
	s.bindings[slot].Store(uint32(code))
}

func (s *Store) Binding(slot Slot) uint16 {
	if slot < 0 || slot >= slotCount {
		return 0
	}
	return uint16(s.bindings[slot].Load())
}

func (s *Store) SetMagnitude(pixels int) error {
	if pixels < 1 {
		return fmt.Errorf("magnitude must be >= 1, got %d", pixels)
	}
	s.magnitude.Store(int64(pixels))
	return nil
}

func (s *Store) Magnitude() int {
	return int(s.magnitude.Load())
}

func (s *Store) SetInterval(ms int) error {
	if ms < 1 {
		return fmt.Errorf("polling interval must be >= 1ms, got %d", ms)
	}
	s.interval.Store(int64(ms))
	return nil
}

func (s *Store) Interval() int {
	return int(s.interval.Load())
}

// Snapshot reads every field once. The result is not transactional;
// it is meant for persistence and display, not for tick processing.
func (s *Store) Snapshot() Settings {
	out := Settings{
		Magnitude: s.Magnitude(),
		Interval:  s.Interval(),
		Enabled:   s.Enabled(),
	}
	for _, slot := range Slots() {
		out.Bindings[slot] = s.Binding(slot)
	}
	return out
}
