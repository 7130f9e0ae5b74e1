//go:build windows

package wininput

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"mousesim/internal/core/mousesim"
)

const (
	inputMouse = 0

	mouseeventfMove      = 0x0001
	mouseeventfLeftDown  = 0x0002
	mouseeventfLeftUp    = 0x0004
	mouseeventfRightDown = 0x0008
	mouseeventfRightUp   = 0x0010
)

var (
	user32 = syscall.NewLazyDLL("user32.dll")

	procSendInput        = user32.NewProc("SendInput")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type input struct {
	Type uint32
	Mi   mouseInput
}

type Backend struct {
	logger   mousesim.Logger
	injectMu sync.Mutex
}

var (
	_ mousesim.KeyStater = (*Backend)(nil)
	_ mousesim.Injector  = (*Backend)(nil)
)

func NewBackend(logger mousesim.Logger) (*Backend, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Backend{logger: logger}, nil
}

// Held samples the async key state for the virtual key mapped to code.
// Bit 15 is set while the key is physically down.
func (b *Backend) Held(code uint16) (bool, error) {
	vk, ok := CodeToVK(code)
	if !ok {
		return false, fmt.Errorf("no virtual key for %s", FormatCodeName(code))
	}
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(state)&0x8000 != 0, nil
}

func (b *Backend) MoveRelative(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	return b.send(input{
		Type: inputMouse,
		Mi: mouseInput{
			Dx:      int32(dx),
			Dy:      int32(dy),
			DwFlags: mouseeventfMove,
		},
	})
}

func (b *Backend) SetButton(primary bool, down bool) error {
	var flags uint32
	switch {
	case primary && down:
		flags = mouseeventfLeftDown
	case primary && !down:
		flags = mouseeventfLeftUp
	case !primary && down:
		flags = mouseeventfRightDown
	default:
		flags = mouseeventfRightUp
	}
	return b.send(input{
		Type: inputMouse,
		Mi:   mouseInput{DwFlags: flags},
	})
}

func (b *Backend) Close() error {
	return nil
}

func (b *Backend) send(inputs ...input) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent != uintptr(len(inputs)) {
		if callErr != nil && callErr != syscall.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of %d inputs", sent, len(inputs))
	}
	return nil
}
