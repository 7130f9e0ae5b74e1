// Package tray exposes the enable toggle through a system tray menu
// using getlantern/systray.
package tray

import (
	"github.com/getlantern/systray"

	"mousesim/internal/core/mousesim"
)

// Controller owns the tray menu. Run blocks for the lifetime of the
// tray loop, so it must be called from the main goroutine on platforms
// that require it.
type Controller struct {
	store  *mousesim.Store
	logger mousesim.Logger
	onQuit func()

	quitCh chan struct{}
}

func New(store *mousesim.Store, logger mousesim.Logger, onQuit func()) *Controller {
	return &Controller{
		store:  store,
		logger: logger,
		onQuit: onQuit,
		quitCh: make(chan struct{}),
	}
}

// Run starts the tray event loop and blocks until Stop or the quit
// menu item is used.
func (c *Controller) Run() {
	systray.Run(c.onReady, c.onExit)
}

// Stop tears down the tray loop and unblocks Run.
func (c *Controller) Stop() {
	systray.Quit()
}

func (c *Controller) onReady() {
	systray.SetTitle("mousesim")
	systray.SetTooltip("Keyboard mouse simulator")

	toggle := systray.AddMenuItemCheckbox("Enabled", "Toggle mouse simulation", c.store.Enabled())
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Stop the simulator and exit")

	go func() {
		for {
			select {
			case <-toggle.ClickedCh:
				enabled := c.store.ToggleEnabled()
				if enabled {
					toggle.Check()
				} else {
					toggle.Uncheck()
				}
				c.logger.Info("Simulation toggled from tray", "enabled", enabled)
			case <-quit.ClickedCh:
				systray.Quit()
				return
			case <-c.quitCh:
				return
			}
		}
	}()
}

func (c *Controller) onExit() {
	close(c.quitCh)
	if c.onQuit != nil {
		c.onQuit()
	}
}
