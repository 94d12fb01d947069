// Package tray provides the system tray interface for Strandguard.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onStats  func()
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle     *systray.MenuItem
	menuTodayCount *systray.MenuItem
}

// New creates a new Tray instance with monitoring enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback for pausing and resuming detection.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnStats sets the callback for the statistics menu item.
func (t *Tray) OnStats(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStats = fn
}

// OnQuit sets the callback for the quit menu item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Strandguard")
	systray.SetTooltip("Strandguard Hair-Pulling Monitor")

	t.menuToggle = systray.AddMenuItem("● Monitoring", "Pause or resume detection")
	systray.AddSeparator()

	t.menuTodayCount = systray.AddMenuItem("Today: 0", "Triggers recorded today")
	t.menuTodayCount.Disable()
	systray.AddSeparator()

	menuStats := systray.AddMenuItem("Open Statistics...", "Open statistics in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Strandguard")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuStats.ClickedCh:
				t.handleStats()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the pause/resume menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Monitoring")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleStats handles the statistics menu item click.
func (t *Tray) handleStats() {
	t.mu.RLock()
	callback := t.onStats
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetTodayCount updates the daily trigger counter in the menu.
func (t *Tray) SetTodayCount(count int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuTodayCount != nil {
		t.menuTodayCount.SetTitle(fmt.Sprintf("Today: %d", count))
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
