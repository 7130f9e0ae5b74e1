package mousesim

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type moveCall struct {
	dx int
	dy int
}

type buttonCall struct {
	primary bool
	down    bool
}

type recordingInjector struct {
	mu      sync.Mutex
	moves   []moveCall
	buttons []buttonCall
	failing bool
	closed  bool
}

func (r *recordingInjector) MoveRelative(dx, dy int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return fmt.Errorf("injection rejected")
	}
	r.moves = append(r.moves, moveCall{dx: dx, dy: dy})
	return nil
}

func (r *recordingInjector) SetButton(primary bool, down bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return fmt.Errorf("injection rejected")
	}
	r.buttons = append(r.buttons, buttonCall{primary: primary, down: down})
	return nil
}

func (r *recordingInjector) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingInjector) snapshotMoves() []moveCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]moveCall, len(r.moves))
	copy(out, r.moves)
	return out
}

func (r *recordingInjector) snapshotButtons() []buttonCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]buttonCall, len(r.buttons))
	copy(out, r.buttons)
	return out
}

func (r *recordingInjector) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.moves) + len(r.buttons)
}

func (r *recordingInjector) setFailing(failing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing = failing
}

type scriptedKeys struct {
	mu      sync.Mutex
	down    map[uint16]bool
	failing bool
}

func newScriptedKeys() *scriptedKeys {
	return &scriptedKeys{down: make(map[uint16]bool)}
}

func (k *scriptedKeys) Held(code uint16) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.failing {
		return false, fmt.Errorf("key state unavailable")
	}
	return k.down[code], nil
}

func (k *scriptedKeys) set(code uint16, held bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.down[code] = held
}

func (k *scriptedKeys) setFailing(failing bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.failing = failing
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

const (
	testKeyLeft       uint16 = 30 // KEY_A
	testKeyRight      uint16 = 32 // KEY_D
	testKeyUp         uint16 = 17 // KEY_W
	testKeyDown       uint16 = 31 // KEY_S
	testKeyClickLeft  uint16 = 57 // KEY_SPACE
	testKeyClickRight uint16 = 18 // KEY_E
)

func testSettings(enabled bool) Settings {
	return Settings{
		Bindings: [6]uint16{
			testKeyLeft, testKeyRight, testKeyUp, testKeyDown,
			testKeyClickLeft, testKeyClickRight,
		},
		Magnitude: 10,
		Interval:  1,
		Enabled:   enabled,
	}
}

func newTestEngine(t *testing.T, enabled bool) (*Engine, *Store, *scriptedKeys, *recordingInjector) {
	t.Helper()
	store, err := NewStore(testSettings(enabled))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	keys := newScriptedKeys()
	injector := &recordingInjector{}
	engine, err := NewEngine(store, keys, injector, noopLogger{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine, store, keys, injector
}

func TestTickOpposingKeysIssueTwoCancellingMoves(t *testing.T) {
	engine, _, keys, injector := newTestEngine(t, true)

	keys.set(testKeyLeft, true)
	keys.set(testKeyRight, true)

	engine.tick(20 * time.Millisecond)

	moves := injector.snapshotMoves()
	if len(moves) != 2 {
		t.Fatalf("expected 2 move calls, got %d", len(moves))
	}
	// magnitude=10, elapsed=20ms, reference 60fps -> 12 pixels per axis
	if moves[0] != (moveCall{dx: -12, dy: 0}) {
		t.Fatalf("unexpected first move: %+v", moves[0])
	}
	if moves[1] != (moveCall{dx: 12, dy: 0}) {
		t.Fatalf("unexpected second move: %+v", moves[1])
	}
	if moves[0].dx+moves[1].dx != 0 || moves[0].dy+moves[1].dy != 0 {
		t.Fatalf("expected cancelling moves, got %+v", moves)
	}
}

func TestTickVerticalDisplacementSign(t *testing.T) {
	engine, _, keys, injector := newTestEngine(t, true)

	keys.set(testKeyUp, true)
	engine.tick(20 * time.Millisecond)
	keys.set(testKeyUp, false)
	keys.set(testKeyDown, true)
	engine.tick(20 * time.Millisecond)

	moves := injector.snapshotMoves()
	if len(moves) != 2 {
		t.Fatalf("expected 2 move calls, got %d", len(moves))
	}
	if moves[0] != (moveCall{dx: 0, dy: -12}) {
		t.Fatalf("up key should move negative y, got %+v", moves[0])
	}
	if moves[1] != (moveCall{dx: 0, dy: 12}) {
		t.Fatalf("down key should move positive y, got %+v", moves[1])
	}
}

func TestTickClickHoldEmitsOneDownOneUp(t *testing.T) {
	engine, _, keys, injector := newTestEngine(t, true)

	keys.set(testKeyClickLeft, true)
	for i := 0; i < 5; i++ {
		engine.tick(10 * time.Millisecond)
	}
	keys.set(testKeyClickLeft, false)
	for i := 0; i < 3; i++ {
		engine.tick(10 * time.Millisecond)
	}

	buttons := injector.snapshotButtons()
	if len(buttons) != 2 {
		t.Fatalf("expected exactly down+up, got %d calls: %+v", len(buttons), buttons)
	}
	if buttons[0] != (buttonCall{primary: true, down: true}) {
		t.Fatalf("unexpected first button call: %+v", buttons[0])
	}
	if buttons[1] != (buttonCall{primary: true, down: false}) {
		t.Fatalf("unexpected second button call: %+v", buttons[1])
	}
}

func TestTickSecondaryClickUsesNonPrimaryButton(t *testing.T) {
	engine, _, keys, injector := newTestEngine(t, true)

	keys.set(testKeyClickRight, true)
	engine.tick(10 * time.Millisecond)
	keys.set(testKeyClickRight, false)
	engine.tick(10 * time.Millisecond)

	buttons := injector.snapshotButtons()
	if len(buttons) != 2 {
		t.Fatalf("expected 2 button calls, got %d", len(buttons))
	}
	if buttons[0].primary || buttons[1].primary {
		t.Fatalf("expected non-primary button calls, got %+v", buttons)
	}
}

func TestTickDuplicateClickBindingsFireTogether(t *testing.T) {
	engine, store, keys, injector := newTestEngine(t, true)

	store.SetBinding(SlotClickRight, testKeyClickLeft)
	keys.set(testKeyClickLeft, true)
	engine.tick(10 * time.Millisecond)

	buttons := injector.snapshotButtons()
	if len(buttons) != 2 {
		t.Fatalf("expected both click slots to fire, got %d calls", len(buttons))
	}
	if !buttons[0].primary || buttons[1].primary {
		t.Fatalf("expected one primary and one secondary press, got %+v", buttons)
	}
}

func TestTickKeyStateFailureSkipsSlotAndContinues(t *testing.T) {
	engine, _, keys, injector := newTestEngine(t, true)

	keys.setFailing(true)
	engine.tick(10 * time.Millisecond)
	if count := injector.callCount(); count != 0 {
		t.Fatalf("expected no injections while key state fails, got %d", count)
	}

	keys.setFailing(false)
	keys.set(testKeyRight, true)
	engine.tick(10 * time.Millisecond)
	if moves := injector.snapshotMoves(); len(moves) != 1 {
		t.Fatalf("expected tick to recover after key state failure, got %d moves", len(moves))
	}
}

func TestTickInjectionFailureDoesNotDropTrackedEdges(t *testing.T) {
	engine, _, keys, injector := newTestEngine(t, true)

	injector.setFailing(true)
	keys.set(testKeyClickLeft, true)
	engine.tick(10 * time.Millisecond)

	// The press edge was consumed even though injection failed; a
	// later release must still produce its up event.
	injector.setFailing(false)
	keys.set(testKeyClickLeft, false)
	engine.tick(10 * time.Millisecond)

	buttons := injector.snapshotButtons()
	if len(buttons) != 1 {
		t.Fatalf("expected exactly the release call, got %d: %+v", len(buttons), buttons)
	}
	if buttons[0] != (buttonCall{primary: true, down: false}) {
		t.Fatalf("unexpected button call: %+v", buttons[0])
	}
}

func TestStartWhileRunningFails(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, false)

	if err := engine.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer engine.Stop()

	if err := engine.Start(); err == nil {
		t.Fatalf("expected second Start() to fail")
	}
}

func TestStopReturnsOnlyAfterLoopExit(t *testing.T) {
	engine, _, keys, injector := newTestEngine(t, true)

	keys.set(testKeyRight, true)
	if err := engine.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	engine.Stop()
	if engine.Running() {
		t.Fatalf("expected engine to report stopped")
	}

	count := injector.callCount()
	if count == 0 {
		t.Fatalf("expected some injected events before stop")
	}
	time.Sleep(30 * time.Millisecond)
	if after := injector.callCount(); after != count {
		t.Fatalf("events injected after Stop returned: %d -> %d", count, after)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	engine, _, _, _ := newTestEngine(t, false)

	if err := engine.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	engine.Stop()
	engine.Stop()
}

func TestRestartTreatsHeldClickKeyAsFreshPress(t *testing.T) {
	engine, _, keys, injector := newTestEngine(t, true)

	keys.set(testKeyClickLeft, true)
	if err := engine.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	engine.Stop()

	buttons := injector.snapshotButtons()
	if len(buttons) != 1 || !buttons[0].down {
		t.Fatalf("expected exactly one down event before stop, got %+v", buttons)
	}

	// Key stays physically held across the stop/start boundary.
	if err := engine.Start(); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	engine.Stop()

	buttons = injector.snapshotButtons()
	if len(buttons) != 2 {
		t.Fatalf("expected a fresh press after restart, got %+v", buttons)
	}
	if !buttons[1].down {
		t.Fatalf("expected second event to be a press, got %+v", buttons[1])
	}
}

func TestDisableIdlesLoopWithoutTearingItDown(t *testing.T) {
	engine, store, keys, injector := newTestEngine(t, true)

	keys.set(testKeyRight, true)
	if err := engine.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer engine.Stop()

	time.Sleep(30 * time.Millisecond)
	store.SetEnabled(false)
	time.Sleep(30 * time.Millisecond)
	count := injector.callCount()
	if count == 0 {
		t.Fatalf("expected events while enabled")
	}

	time.Sleep(30 * time.Millisecond)
	if after := injector.callCount(); after != count {
		t.Fatalf("events injected while disabled: %d -> %d", count, after)
	}
	if !engine.Running() {
		t.Fatalf("disable must not stop the loop goroutine")
	}

	store.SetEnabled(true)
	time.Sleep(30 * time.Millisecond)
	if after := injector.callCount(); after <= count {
		t.Fatalf("expected events to resume after re-enable")
	}
}
