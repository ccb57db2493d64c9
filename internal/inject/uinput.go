package inject

import (
	"github.com/bendahl/uinput"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/keys"
)

// Uinput injects through a virtual mouse and keyboard created on the
// kernel's uinput device. Key tokens are evdev codes and pass through.
type Uinput struct {
	FocusKeeper
	mouse    uinput.Mouse
	keyboard uinput.Keyboard
	x11      *X11
	logger   *zap.SugaredLogger
}

// NewUinput creates the virtual devices on path, usually /dev/uinput.
func NewUinput(path string, focus FocusKeeper, logger *zap.SugaredLogger) (*Uinput, error) {
	kb, err := uinput.CreateKeyboard(path, []byte("gamepad-keymouse-keyboard"))
	if err != nil {
		return nil, errors.Wrapf(err, "create virtual keyboard on %s", path)
	}
	m, err := uinput.CreateMouse(path, []byte("gamepad-keymouse-mouse"))
	if err != nil {
		kb.Close()
		return nil, errors.Wrapf(err, "create virtual mouse on %s", path)
	}
	if focus == nil {
		focus = nopFocus{}
	}
	logger.Infow("uinput devices created", "path", path)
	return &Uinput{FocusKeeper: focus, mouse: m, keyboard: kb, logger: logger}, nil
}

func (u *Uinput) MoveRelative(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	return u.mouse.Move(int32(dx), int32(dy))
}

func (u *Uinput) Scroll(v, h int) error {
	var err error
	if v != 0 {
		err = multierr.Append(err, u.mouse.Wheel(false, int32(v)))
	}
	if h != 0 {
		err = multierr.Append(err, u.mouse.Wheel(true, int32(h)))
	}
	return err
}

func (u *Uinput) Button(b MouseButton, pressed bool) error {
	switch {
	case b == ButtonLeft && pressed:
		return u.mouse.LeftPress()
	case b == ButtonLeft:
		return u.mouse.LeftRelease()
	case pressed:
		return u.mouse.RightPress()
	default:
		return u.mouse.RightRelease()
	}
}

func (u *Uinput) Key(tok keys.Token, pressed bool) error {
	if !tok.Valid() {
		return errors.Errorf("invalid key %s", tok)
	}
	if pressed {
		return u.keyboard.KeyDown(tok.Code())
	}
	return u.keyboard.KeyUp(tok.Code())
}

// Close destroys both virtual devices.
func (u *Uinput) Close() error {
	err := multierr.Combine(u.keyboard.Close(), u.mouse.Close())
	if u.x11 != nil {
		err = multierr.Append(err, u.x11.Close())
	}
	return err
}
