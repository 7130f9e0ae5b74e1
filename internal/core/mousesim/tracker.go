package mousesim

// Transition is the edge detected for a click key between two
// consecutive ticks.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionPressed
	TransitionReleased
)

// Tracker queries physical key state and derives edge transitions for
// the click slots. Edge state is keyed by slot, not by key code, so
// two click slots bound to the same key each see their own edges.
//
// Edge state starts empty and is discarded on Reset: a key that stays
// held across a stop/start boundary is reported as a fresh press on
// the first tick of the new run (no warm-up tick with suppressed
// detection), and no release is synthesized on stop.
type Tracker struct {
	keys KeyStater
	held [slotCount]bool
}

func NewTracker(keys KeyStater) *Tracker {
	return &Tracker{keys: keys}
}

// Held reports whether the key bound to code is physically down.
func (t *Tracker) Held(code uint16) (bool, error) {
	return t.keys.Held(code)
}

// Transition compares the current sample for a click slot against the
// previous one and stores the new sample.
func (t *Tracker) Transition(slot Slot, heldNow bool) Transition {
	prev := t.held[slot]
	t.held[slot] = heldNow

	switch {
	case heldNow && !prev:
		return TransitionPressed
	case !heldNow && prev:
		return TransitionReleased
	default:
		return TransitionNone
	}
}

// Reset discards all stored edge state.
func (t *Tracker) Reset() {
	t.held = [slotCount]bool{}
}
