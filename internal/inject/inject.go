// Package inject delivers synthesized pointer and key events to the host.
package inject

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/keys"
)

// MouseButton is a pointer button the dispatcher can click.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
)

func (b MouseButton) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// Injector emits pointer and key events.
type Injector interface {
	// MoveRelative moves the pointer by (dx, dy) pixels.
	MoveRelative(dx, dy int) error
	// Scroll emits v vertical ticks (positive is up) and h horizontal
	// ticks (positive is right).
	Scroll(v, h int) error
	Button(b MouseButton, pressed bool) error
	Key(tok keys.Token, pressed bool) error
	Close() error
}

// FocusKeeper remembers the focused window and gives focus back to it.
type FocusKeeper interface {
	Remember() error
	Restore() error
}

// Backend is an Injector that can also keep focus.
type Backend interface {
	Injector
	FocusKeeper
}

// Backend names accepted by Open.
const (
	BackendUinput = "uinput"
	BackendXTest  = "xtest"
	BackendDryRun = "dryrun"
)

// Open creates the named backend. The uinput backend keeps focus through
// X11 when a display is reachable and skips focus handling otherwise.
func Open(name, uinputPath string, logger *zap.SugaredLogger) (Backend, error) {
	switch name {
	case BackendUinput:
		var focus FocusKeeper = nopFocus{}
		x, err := NewX11(logger.Named("x11"))
		if err != nil {
			logger.Infow("focus restore disabled", "error", err)
		} else {
			focus = x
		}
		u, err := NewUinput(uinputPath, focus, logger)
		if err != nil {
			if x != nil {
				_ = x.Close()
			}
			return nil, err
		}
		u.x11 = x
		return u, nil
	case BackendXTest:
		x, err := NewX11(logger)
		if err != nil {
			return nil, err
		}
		return x, nil
	case BackendDryRun:
		return NewRecorder(logger), nil
	}
	return nil, errors.Errorf("unknown injection backend %q", name)
}

type nopFocus struct{}

func (nopFocus) Remember() error { return nil }
func (nopFocus) Restore() error  { return nil }
