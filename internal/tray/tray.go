// Package tray shows an optional tray icon with "Open view" and "Exit".
package tray

import (
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/osk"
)

const appName = "GamepadKeyMouse"

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// Tray manages the system tray icon and menu
type Tray struct {
	viewURL      string
	shutdownFunc ShutdownFunc
	logger       *zap.SugaredLogger
	once         sync.Once
	shuttingDown atomic.Bool
	keyboardOpen chan bool
	menuOpen     *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a new Tray. viewURL is opened by "Open view"; the entry is
// left out when it is empty.
func New(viewURL string, shutdownFn ShutdownFunc, logger *zap.SugaredLogger) *Tray {
	return &Tray{
		viewURL:      viewURL,
		shutdownFunc: shutdownFn,
		logger:       logger,
		keyboardOpen: make(chan bool, 1),
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	t.shuttingDown.Store(true)
	systray.Quit()
}

// Publish mirrors the keyboard open state in the tooltip.
func (t *Tray) Publish(snap osk.Snapshot) {
	select {
	case <-t.keyboardOpen:
	default:
	}
	select {
	case t.keyboardOpen <- snap.Open:
	default:
	}
}

// onReady is called when the tray is ready
func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle(appName)
	systray.SetTooltip(tooltip(false))

	if t.viewURL != "" {
		t.menuOpen = systray.AddMenuItem("Open view", "Open the keyboard view in a browser")
	} else {
		// never fires
		t.menuOpen = &systray.MenuItem{ClickedCh: make(chan struct{})}
	}
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	t.logger.Info("system tray initialized")
}

func tooltip(open bool) string {
	if open {
		return appName + " - keyboard open"
	}
	return appName + " - pointer mode"
}

// handleMenuClicks processes menu item clicks and keyboard state updates
// without blocking
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case open := <-t.keyboardOpen:
			if !t.shuttingDown.Load() {
				systray.SetTooltip(tooltip(open))
			}
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

// onExit is called when the tray is exiting
func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	t.logger.Info("system tray exiting")
}

// browserCommand returns the command opening url on goos.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

// openBrowser opens the default web browser
func (t *Tray) openBrowser() {
	// Prevent multiple browser launches during shutdown
	if t.shuttingDown.Load() {
		return
	}

	name, args := browserCommand(runtime.GOOS, t.viewURL)
	if err := exec.Command(name, args...).Start(); err != nil {
		t.logger.Warnw("failed to open browser", "url", t.viewURL, "error", err)
	}
}
