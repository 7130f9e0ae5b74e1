//go:build !windows

package wininput

import (
	"fmt"

	"mousesim/internal/core/mousesim"
)

type Backend struct{}

func NewBackend(logger mousesim.Logger) (*Backend, error) {
	return nil, fmt.Errorf("windows input backend is only available on Windows")
}

func (b *Backend) Held(code uint16) (bool, error) {
	return false, fmt.Errorf("windows input backend is only available on Windows")
}

func (b *Backend) MoveRelative(dx, dy int) error {
	return fmt.Errorf("windows input backend is only available on Windows")
}

func (b *Backend) SetButton(primary bool, down bool) error {
	return fmt.Errorf("windows input backend is only available on Windows")
}

func (b *Backend) Close() error {
	return nil
}
