package mousesim

import (
	"fmt"
	"math"
	"time"
)

type axis struct {
	slot Slot
	dx   int
	dy   int
}

// The four directional slots with their unit vectors. Each held key
// produces its own MoveRelative call: opposing keys held together
// issue two cancelling moves rather than one pre-summed no-op.
var axes = [4]axis{
	{SlotMoveLeft, -1, 0},
	{SlotMoveRight, 1, 0},
	{SlotMoveUp, 0, -1},
	{SlotMoveDown, 0, 1},
}

type clickSlot struct {
	slot    Slot
	primary bool
}

var clickSlots = [2]clickSlot{
	{SlotClickLeft, true},
	{SlotClickRight, false},
}

// Engine owns the polling loop. It is either Stopped or Running:
// Start spawns the loop goroutine, Stop signals it and waits for it to
// exit, so no tick is in flight once Stop returns.
//
// The running state is distinct from the store's enabled flag: the
// state says whether a loop goroutine exists, the flag says whether a
// given tick should act. Toggling the flag leaves the goroutine alive
// and idling instead of tearing it down and rebuilding it.
type Engine struct {
	store    *Store
	tracker  *Tracker
	clock    *motionClock
	injector Injector
	logger   Logger

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewEngine wires the engine to its collaborators. The clock defaults
// to the monotonic wall clock; tests substitute their own via
// newEngineWithClock.
func NewEngine(store *Store, keys KeyStater, injector Injector, logger Logger) (*Engine, error) {
	return newEngineWithClock(store, keys, injector, logger, nil)
}

func newEngineWithClock(store *Store, keys KeyStater, injector Injector, logger Logger, now func() time.Time) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if keys == nil {
		return nil, fmt.Errorf("key stater is nil")
	}
	if injector == nil {
		return nil, fmt.Errorf("injector is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Engine{
		store:    store,
		tracker:  NewTracker(keys),
		clock:    newMotionClock(now),
		injector: injector,
		logger:   logger,
	}, nil
}

// Start transitions Stopped -> Running. On failure the engine remains
// Stopped. Not safe for concurrent use with Stop; the control surface
// serializes lifecycle calls.
func (e *Engine) Start() error {
	if e.running {
		return fmt.Errorf("engine already running")
	}

	e.tracker.Reset()
	e.clock.Reset()
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})
	e.running = true

	go e.loop(e.stopCh, e.doneCh)
	e.logger.Info("Engine started")
	return nil
}

// Stop transitions Running -> Stopped. It signals the loop and blocks
// until the goroutine has fully exited; stop latency is bounded by one
// sleep interval plus tick processing. Idempotent.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	close(e.stopCh)
	<-e.doneCh
	e.running = false

	// Held/not-held state does not survive a stop: no release events
	// are synthesized here, and a key still held at the next Start is
	// reported as a fresh press.
	e.tracker.Reset()
	e.logger.Info("Engine stopped")
}

func (e *Engine) Running() bool {
	return e.running
}

func (e *Engine) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-stopCh:
			return
		default:
		}

		elapsed := e.clock.Lap()
		if e.store.Enabled() {
			e.tick(elapsed)
		}

		if !e.sleep(stopCh, time.Duration(e.store.Interval())*time.Millisecond) {
			return
		}
	}
}

// tick runs one unit of work. All key samples and injected events
// within a tick belong to that tick; no tick observes a mixture of
// this tick's and the next tick's samples.
func (e *Engine) tick(elapsed time.Duration) {
	magnitude := e.store.Magnitude()
	step := int(math.Round(Displacement(magnitude, elapsed)))

	for _, a := range axes {
		code := e.store.Binding(a.slot)
		held, err := e.tracker.Held(code)
		if err != nil {
			e.logger.Warn("Key state query failed", "slot", a.slot.String(), "code", code, "err", err)
			continue
		}
		if !held {
			continue
		}
		if err := e.injector.MoveRelative(a.dx*step, a.dy*step); err != nil {
			e.logger.Warn("Pointer move injection failed", "slot", a.slot.String(), "err", err)
		}
	}

	for _, c := range clickSlots {
		code := e.store.Binding(c.slot)
		held, err := e.tracker.Held(code)
		if err != nil {
			e.logger.Warn("Key state query failed", "slot", c.slot.String(), "code", code, "err", err)
			continue
		}

		switch e.tracker.Transition(c.slot, held) {
		case TransitionPressed:
			if err := e.injector.SetButton(c.primary, true); err != nil {
				e.logger.Warn("Button press injection failed", "slot", c.slot.String(), "err", err)
			}
		case TransitionReleased:
			if err := e.injector.SetButton(c.primary, false); err != nil {
				e.logger.Warn("Button release injection failed", "slot", c.slot.String(), "err", err)
			}
		}
	}
}

func (e *Engine) sleep(stopCh <-chan struct{}, duration time.Duration) bool {
	if duration <= 0 {
		duration = time.Millisecond
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-stopCh:
		return false
	case <-timer.C:
		return true
	}
}
