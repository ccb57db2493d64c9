package inject

import (
	"math"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/keys"
)

// X11 core pointer buttons.
const (
	x11ButtonLeft       = 1
	x11ButtonRight      = 3
	x11ButtonWheelUp    = 4
	x11ButtonWheelDown  = 5
	x11ButtonWheelLeft  = 6
	x11ButtonWheelRight = 7
)

// X11 injects through the XTEST extension and keeps focus with core
// protocol requests.
type X11 struct {
	xu     *xgbutil.XUtil
	conn   *xgb.Conn
	root   xproto.Window
	logger *zap.SugaredLogger

	codes map[keys.Token]xproto.Keycode

	focus    xproto.Window
	revertTo byte
	hasFocus bool

	closeOnce sync.Once
}

// NewX11 connects to the display named by $DISPLAY.
func NewX11(logger *zap.SugaredLogger) (*X11, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connect to X server")
	}
	if err := xtest.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, errors.Wrap(err, "XTEST extension")
	}
	keybind.Initialize(xu)
	return &X11{
		xu:     xu,
		conn:   xu.Conn(),
		root:   xu.RootWin(),
		logger: logger,
		codes:  make(map[keys.Token]xproto.Keycode),
	}, nil
}

func (x *X11) fake(kind byte, detail byte) error {
	return xtest.FakeInputChecked(x.conn, kind, detail, 0, x.root, 0, 0, 0).Check()
}

func (x *X11) MoveRelative(dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	xproto.WarpPointer(x.conn, xproto.WindowNone, xproto.WindowNone, 0, 0, 0, 0, clampInt16(dx), clampInt16(dy))
	return nil
}

// clampInt16 saturates v to the int16 range of X11 pointer offsets.
func clampInt16(v int) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

func (x *X11) click(button byte, n int) error {
	var err error
	for i := 0; i < n; i++ {
		err = multierr.Combine(err,
			x.fake(xproto.ButtonPress, button),
			x.fake(xproto.ButtonRelease, button))
	}
	return err
}

func (x *X11) Scroll(v, h int) error {
	var err error
	switch {
	case v > 0:
		err = x.click(x11ButtonWheelUp, v)
	case v < 0:
		err = x.click(x11ButtonWheelDown, -v)
	}
	switch {
	case h > 0:
		err = multierr.Append(err, x.click(x11ButtonWheelRight, h))
	case h < 0:
		err = multierr.Append(err, x.click(x11ButtonWheelLeft, -h))
	}
	return err
}

func (x *X11) Button(b MouseButton, pressed bool) error {
	detail := byte(x11ButtonLeft)
	if b == ButtonRight {
		detail = x11ButtonRight
	}
	kind := byte(xproto.ButtonRelease)
	if pressed {
		kind = xproto.ButtonPress
	}
	return x.fake(kind, detail)
}

func (x *X11) Key(tok keys.Token, pressed bool) error {
	code, err := x.keycode(tok)
	if err != nil {
		return err
	}
	kind := byte(xproto.KeyRelease)
	if pressed {
		kind = xproto.KeyPress
	}
	return x.fake(kind, byte(code))
}

func (x *X11) keycode(tok keys.Token) (xproto.Keycode, error) {
	if code, ok := x.codes[tok]; ok {
		return code, nil
	}
	sym := tok.Keysym()
	if sym == "" {
		return 0, errors.Errorf("no keysym for %s", tok)
	}
	codes := keybind.StrToKeycodes(x.xu, sym)
	if len(codes) == 0 {
		return 0, errors.Errorf("keysym %s is not mapped on this display", sym)
	}
	x.codes[tok] = codes[0]
	return codes[0], nil
}

// Remember records the window that currently has input focus.
func (x *X11) Remember() error {
	reply, err := xproto.GetInputFocus(x.conn).Reply()
	if err != nil {
		return errors.Wrap(err, "get input focus")
	}
	x.focus, x.revertTo, x.hasFocus = reply.Focus, reply.RevertTo, true
	x.logger.Debugw("focus remembered", "window", x.focus)
	return nil
}

// Restore gives focus back to the remembered window, once.
func (x *X11) Restore() error {
	if !x.hasFocus {
		return nil
	}
	x.hasFocus = false
	if x.focus == xproto.WindowNone {
		return nil
	}
	err := xproto.SetInputFocusChecked(x.conn, x.revertTo, x.focus, xproto.TimeCurrentTime).Check()
	if err != nil {
		return errors.Wrapf(err, "restore focus to window %d", x.focus)
	}
	x.logger.Debugw("focus restored", "window", x.focus)
	return nil
}

func (x *X11) Close() error {
	x.closeOnce.Do(x.conn.Close)
	return nil
}
