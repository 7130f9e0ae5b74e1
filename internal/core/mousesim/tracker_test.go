package mousesim

import "testing"

func TestTrackerEdgeDetection(t *testing.T) {
	tracker := NewTracker(newScriptedKeys())

	if got := tracker.Transition(SlotClickLeft, false); got != TransitionNone {
		t.Fatalf("idle key reported %v, want none", got)
	}
	if got := tracker.Transition(SlotClickLeft, true); got != TransitionPressed {
		t.Fatalf("idle->held reported %v, want pressed", got)
	}
	if got := tracker.Transition(SlotClickLeft, true); got != TransitionNone {
		t.Fatalf("held->held reported %v, want none", got)
	}
	if got := tracker.Transition(SlotClickLeft, false); got != TransitionReleased {
		t.Fatalf("held->idle reported %v, want released", got)
	}
	if got := tracker.Transition(SlotClickLeft, false); got != TransitionNone {
		t.Fatalf("idle->idle reported %v, want none", got)
	}
}

func TestTrackerFirstSampleOfHeldKeyIsPressed(t *testing.T) {
	tracker := NewTracker(newScriptedKeys())

	// No warm-up tick: a key already held on the very first sample is
	// a press, not a missed edge.
	if got := tracker.Transition(SlotClickRight, true); got != TransitionPressed {
		t.Fatalf("first held sample reported %v, want pressed", got)
	}
}

func TestTrackerResetDiscardsHeldState(t *testing.T) {
	tracker := NewTracker(newScriptedKeys())

	tracker.Transition(SlotClickLeft, true)
	tracker.Reset()

	// Still physically held after a stop/start cycle: fresh press, and
	// the stop itself synthesized no release.
	if got := tracker.Transition(SlotClickLeft, true); got != TransitionPressed {
		t.Fatalf("post-reset held sample reported %v, want pressed", got)
	}
}

func TestTrackerSlotsAreIndependent(t *testing.T) {
	tracker := NewTracker(newScriptedKeys())

	// Both click slots bound to the same physical key still get their
	// own edge each.
	if got := tracker.Transition(SlotClickLeft, true); got != TransitionPressed {
		t.Fatalf("left slot reported %v, want pressed", got)
	}
	if got := tracker.Transition(SlotClickRight, true); got != TransitionPressed {
		t.Fatalf("right slot reported %v, want pressed", got)
	}
}

func TestTrackerHeldDelegatesToKeyStater(t *testing.T) {
	keys := newScriptedKeys()
	tracker := NewTracker(keys)

	keys.set(42, true)
	held, err := tracker.Held(42)
	if err != nil {
		t.Fatalf("Held() error = %v", err)
	}
	if !held {
		t.Fatalf("expected key 42 to be held")
	}

	keys.setFailing(true)
	if _, err := tracker.Held(42); err == nil {
		t.Fatalf("expected error from failing key stater")
	}
}
