//go:build linux

// Package x11input backs the simulator with an X11 connection: key
// state is sampled from the server keymap and pointer events are
// injected through XTEST, so no raw input device access is required.
package x11input

import (
	"fmt"
	"sort"
	"sync"

	"mousesim/internal/adapters/evdevinput"
	"mousesim/internal/core/mousesim"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// resolvedBinding caches the X11 view of one canonical key code. A
// code resolves to either keyboard keycodes or a pointer button.
type resolvedBinding struct {
	keycodes []xproto.Keycode
	button   xproto.Button
	isButton bool
}

type Backend struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window
	logger  mousesim.Logger

	mu       sync.Mutex
	resolved map[uint16]resolvedBinding

	injectMu  sync.Mutex
	closeOnce sync.Once
}

var (
	_ mousesim.KeyStater = (*Backend)(nil)
	_ mousesim.Injector  = (*Backend)(nil)
)

func NewBackend(logger mousesim.Logger) (*Backend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	conn := xu.Conn()
	if conn == nil {
		return nil, fmt.Errorf("failed to open X11 connection")
	}

	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, err
	}
	keybind.Initialize(xu)

	return &Backend{
		xu:       xu,
		conn:     conn,
		rootWin:  xu.RootWin(),
		logger:   logger,
		resolved: make(map[uint16]resolvedBinding),
	}, nil
}

// Held reports whether the key bound to code is currently down. Keyboard
// keys are read from the server keymap snapshot; pointer buttons from
// the pointer state mask.
func (b *Backend) Held(code uint16) (bool, error) {
	binding, err := b.resolve(code)
	if err != nil {
		return false, err
	}

	if binding.isButton {
		query, err := xproto.QueryPointer(b.conn, b.rootWin).Reply()
		if err != nil {
			return false, err
		}
		return query.Mask&buttonStateMask(binding.button) != 0, nil
	}

	keymap, err := xproto.QueryKeymap(b.conn).Reply()
	if err != nil {
		return false, err
	}
	for _, keycode := range binding.keycodes {
		if keymap.Keys[keycode>>3]&(1<<(keycode&7)) != 0 {
			return true, nil
		}
	}
	return false, nil
}

// MoveRelative shifts the pointer by (dx, dy) from its current root
// position. WarpPointer takes absolute root coordinates, so the current
// position is queried first and the target clamped to the int16 wire
// range.
func (b *Backend) MoveRelative(dx, dy int) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	if dx == 0 && dy == 0 {
		return nil
	}

	query, err := xproto.QueryPointer(b.conn, b.rootWin).Reply()
	if err != nil {
		return err
	}
	nextX := clampToInt16(int(query.RootX) + dx)
	nextY := clampToInt16(int(query.RootY) + dy)

	if err := xproto.WarpPointerChecked(
		b.conn,
		xproto.WindowNone,
		b.rootWin,
		0,
		0,
		0,
		0,
		nextX,
		nextY,
	).Check(); err != nil {
		return err
	}
	b.conn.Sync()
	return nil
}

func (b *Backend) SetButton(primary bool, down bool) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	button := byte(xproto.ButtonIndex3)
	if primary {
		button = byte(xproto.ButtonIndex1)
	}
	eventType := byte(xproto.ButtonRelease)
	if down {
		eventType = byte(xproto.ButtonPress)
	}

	if err := xtest.FakeInputChecked(
		b.conn,
		eventType,
		button,
		xproto.TimeCurrentTime,
		b.rootWin,
		0,
		0,
		0,
	).Check(); err != nil {
		return err
	}
	b.conn.Sync()
	return nil
}

func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		if b.conn != nil {
			b.conn.Close()
		}
	})
	return nil
}

func (b *Backend) resolve(code uint16) (resolvedBinding, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if binding, ok := b.resolved[code]; ok {
		return binding, nil
	}

	if button, ok := codeToXButton(code); ok {
		binding := resolvedBinding{button: button, isButton: true}
		b.resolved[code] = binding
		return binding, nil
	}

	keyName, ok := codeToXKeyName(code)
	if !ok {
		return resolvedBinding{}, fmt.Errorf("unsupported X11 key code %s", evdevinput.FormatCodeName(code))
	}
	keycodes := keybind.StrToKeycodes(b.xu, keyName)
	if len(keycodes) == 0 {
		return resolvedBinding{}, fmt.Errorf("failed to resolve X11 key %q", keyName)
	}

	uniq := make(map[xproto.Keycode]struct{}, len(keycodes))
	for _, keycode := range keycodes {
		uniq[keycode] = struct{}{}
	}
	result := make([]xproto.Keycode, 0, len(uniq))
	for keycode := range uniq {
		result = append(result, keycode)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })

	binding := resolvedBinding{keycodes: result}
	b.resolved[code] = binding
	return binding, nil
}

// buttonStateMask converts a pointer button index to the bit it sets in
// the QueryPointer state mask. Button1 maps to ButtonMask1 and so on.
func buttonStateMask(button xproto.Button) uint16 {
	return uint16(xproto.ButtonMask1) << (button - 1)
}

func clampToInt16(value int) int16 {
	if value < -32768 {
		return -32768
	}
	if value > 32767 {
		return 32767
	}
	return int16(value)
}
