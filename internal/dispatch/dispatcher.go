// Package dispatch owns the controller state and routes every frame either
// to the pointer or to the on-screen keyboard.
package dispatch

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/gamepad"
	"github.com/soar/GamepadKeyMouse/internal/inject"
	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/motion"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

// PointerEvent is a press or release of a key cell by a pointing device.
type PointerEvent struct {
	Pressed bool
	Pos     keyboard.Point
}

// Options tune the dispatcher.
type Options struct {
	Deadzone    int32
	MaxSpeed    float64
	ScrollSpeed float64
	// A trigger above TriggerThreshold gates its cursor.
	TriggerThreshold int16
}

// Dispatcher folds controller events into AxisState and decides, once per
// frame, what the sticks and buttons do.
type Dispatcher struct {
	logger *zap.SugaredLogger
	norm   gamepad.Normalizer
	axes   gamepad.AxisState
	motion *motion.Integrator
	osk    *osk.State
	inj    inject.Injector
	focus  inject.FocusKeeper
	thr    int16

	clicks  [2]bool // left, right held in pointer mode
	edges   []gamepad.Event
	lastSeq uint64
}

// New returns a Dispatcher driving kb and injecting through inj.
func New(kb *osk.State, inj inject.Injector, focus inject.FocusKeeper, opts Options, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		norm:    gamepad.NewNormalizer(opts.Deadzone),
		motion:  motion.NewIntegrator(opts.MaxSpeed, opts.ScrollSpeed),
		osk:     kb,
		inj:     inj,
		focus:   focus,
		thr:     opts.TriggerThreshold,
		lastSeq: kb.Seq(),
	}
}

// Axes returns the current normalized samples.
func (d *Dispatcher) Axes() gamepad.AxisState {
	return d.axes
}

// Keyboard returns the on-screen keyboard state.
func (d *Dispatcher) Keyboard() *osk.State {
	return d.osk
}

// Snapshot returns the keyboard snapshot with the current axes attached.
func (d *Dispatcher) Snapshot() osk.Snapshot {
	snap := d.osk.Snapshot()
	snap.Axes = append([]int16(nil), d.axes[:]...)
	return snap
}

// Frame runs one frame over the events drained since the previous one and
// reports whether anything a view shows has changed.
func (d *Dispatcher) Frame(events []gamepad.Event, pointer []PointerEvent) bool {
	changed := false
	d.edges = d.edges[:0]
	for _, ev := range events {
		switch ev.Kind {
		case gamepad.EventAxis:
			if d.axes.Set(ev.Axis, d.norm.Normalize(ev.Axis, ev.Value)) {
				changed = true
			}
		case gamepad.EventButtonDown, gamepad.EventButtonUp:
			d.edges = append(d.edges, ev)
		case gamepad.EventDisconnected:
			if d.axes.Reset() {
				changed = true
			}
			d.warn(d.releaseClicks(), "release pointer buttons")
		}
	}

	d.updateMode()
	for _, ev := range d.edges {
		d.button(ev.Button, ev.Kind == gamepad.EventButtonDown)
	}
	for _, pe := range pointer {
		d.pointer(pe)
	}

	if d.osk.IsOpen() {
		d.osk.Navigate(osk.SourceBlue, d.axes.Unit(gamepad.AxisLeftX), d.axes.Unit(gamepad.AxisLeftY))
		d.osk.Navigate(osk.SourceRed, d.axes.Unit(gamepad.AxisRightX), d.axes.Unit(gamepad.AxisRightY))
	} else {
		d.movePointer()
	}

	if seq := d.osk.Seq(); seq != d.lastSeq {
		d.lastSeq = seq
		changed = true
	}
	return changed
}

// updateMode opens the keyboard while any trigger is pressed and gates each
// cursor by its own trigger.
func (d *Dispatcher) updateMode() {
	blue := d.axes.Get(gamepad.AxisLeftTrigger) > d.thr
	red := d.axes.Get(gamepad.AxisRightTrigger) > d.thr

	if !blue && !red {
		if !d.osk.IsOpen() {
			return
		}
		d.warn(d.osk.Close(), "close keyboard")
		d.warn(d.focus.Restore(), "restore focus")
		return
	}
	if !d.osk.IsOpen() {
		d.warn(d.focus.Remember(), "remember focus")
		d.osk.Open()
	}
	d.warn(d.osk.SetActive(osk.SourceBlue, blue), "deactivate blue cursor")
	d.warn(d.osk.SetActive(osk.SourceRed, red), "deactivate red cursor")
}

func (d *Dispatcher) button(b gamepad.Button, down bool) {
	d.logger.Debugw("button", "button", b, "down", down)
	switch b {
	case gamepad.ButtonLeftShoulder:
		d.selectKey(osk.SourceBlue, down)
	case gamepad.ButtonRightShoulder:
		d.selectKey(osk.SourceRed, down)
	case gamepad.ButtonSouth:
		d.click(inject.ButtonLeft, down)
	case gamepad.ButtonEast:
		d.click(inject.ButtonRight, down)
	}
}

func (d *Dispatcher) selectKey(src osk.Source, down bool) {
	if !down {
		d.warn(d.osk.Deselect(src), "release key")
		return
	}
	_, _, err := d.osk.Select(src)
	d.warn(err, "press key")
}

// click presses pointer buttons only in pointer mode but always releases a
// button it pressed.
func (d *Dispatcher) click(b inject.MouseButton, down bool) {
	if down == d.clicks[b] {
		return
	}
	if down && d.osk.IsOpen() {
		return
	}
	if err := d.inj.Button(b, down); err != nil {
		d.warn(err, "click")
		if down {
			return
		}
	}
	d.clicks[b] = down
}

func (d *Dispatcher) releaseClicks() error {
	var err error
	for b, held := range d.clicks {
		if held {
			err = multierr.Append(err, d.inj.Button(inject.MouseButton(b), false))
			d.clicks[b] = false
		}
	}
	return err
}

func (d *Dispatcher) pointer(pe PointerEvent) {
	if !pe.Pressed {
		d.warn(d.osk.PointerRelease(), "release key")
		return
	}
	_, _, err := d.osk.PointerPress(pe.Pos)
	d.warn(err, "press key")
}

func (d *Dispatcher) movePointer() {
	f := d.motion.Step(
		d.axes.Unit(gamepad.AxisLeftX),
		d.axes.Unit(gamepad.AxisLeftY),
		-d.axes.Unit(gamepad.AxisRightY),
		d.axes.Unit(gamepad.AxisRightX),
	)
	if f.IsZero() {
		return
	}
	if f.DX != 0 || f.DY != 0 {
		d.warn(d.inj.MoveRelative(f.DX, f.DY), "move pointer")
	}
	if f.ScrollV != 0 || f.ScrollH != 0 {
		d.warn(d.inj.Scroll(f.ScrollV, f.ScrollH), "scroll")
	}
}

// Release lets go of every held key and pointer button and closes the
// keyboard.
func (d *Dispatcher) Release() error {
	err := d.releaseClicks()
	if d.osk.IsOpen() {
		err = multierr.Append(err, d.osk.Close())
		err = multierr.Append(err, d.focus.Restore())
	}
	return multierr.Append(err, d.osk.Tracker().ReleaseAll())
}

func (d *Dispatcher) warn(err error, what string) {
	if err != nil {
		d.logger.Warnw(what+" failed", "error", err)
	}
}
