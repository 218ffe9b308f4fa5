// Package tray provides a system tray interface for the particle
// animation daemon: toggle gesture control, force a display mode, and
// show the last confirmed gesture.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/AKAshrimp/Interactive-3D-particle-system/internal/engine"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle  func(enabled bool)
	onSetMode func(mode engine.Mode)
	onViewer  func()
	onQuit    func()
	enabled   bool
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuToggle      *systray.MenuItem
	menuLastGesture *systray.MenuItem
	menuHeart       *systray.MenuItem
	menuStarfield   *systray.MenuItem
}

// New creates a new Tray instance with gesture control enabled.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback for the enabled state toggle.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnSetMode sets the callback for the manual mode menu items.
func (t *Tray) OnSetMode(fn func(mode engine.Mode)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSetMode = fn
}

// OnViewer sets the callback for the open-viewer menu item.
func (t *Tray) OnViewer(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onViewer = fn
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
	systray.SetTitle("Particles")
	systray.SetTooltip("Gesture-driven particle animation")

	t.menuToggle = systray.AddMenuItem("● Gestures enabled", "Toggle gesture control")
	systray.AddSeparator()

	t.menuLastGesture = systray.AddMenuItem("Last gesture: none", "Last confirmed gesture")
	t.menuLastGesture.Disable()
	systray.AddSeparator()

	t.menuHeart = systray.AddMenuItem("Heart mode", "Morph particles into the heart")
	t.menuStarfield = systray.AddMenuItem("Starfield mode", "Scatter particles into the starfield")
	systray.AddSeparator()

	menuViewer := systray.AddMenuItem("Open Viewer...", "Open the particle viewer in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit the particle daemon")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-t.menuHeart.ClickedCh:
				t.handleSetMode(engine.ModeHeart)
			case <-t.menuStarfield.ClickedCh:
				t.handleSetMode(engine.ModeStarfield)
			case <-menuViewer.ClickedCh:
				t.handleViewer()
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

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Gestures enabled")
	} else {
		t.menuToggle.SetTitle("○ Gestures disabled")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleSetMode handles the manual mode menu item clicks.
func (t *Tray) handleSetMode(mode engine.Mode) {
	t.mu.RLock()
	callback := t.onSetMode
	t.mu.RUnlock()

	if callback != nil {
		callback(mode)
	}
}

// handleViewer handles the open-viewer menu item click.
func (t *Tray) handleViewer() {
	t.mu.RLock()
	callback := t.onViewer
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

// SetLastGesture updates the last gesture display in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastGesture != nil {
		if name == "" {
			t.menuLastGesture.SetTitle("Last gesture: none")
		} else {
			t.menuLastGesture.SetTitle("Last gesture: " + name)
		}
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
