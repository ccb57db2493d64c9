package dispatch

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/soar/GamepadKeyMouse/internal/gamepad"
	"github.com/soar/GamepadKeyMouse/internal/inject"
	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/keys"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

const navDelay = 80 * time.Millisecond

type harness struct {
	d   *Dispatcher
	rec *inject.Recorder
	clk *clock.Mock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zaptest.NewLogger(t).Sugar()
	rec := inject.NewRecorder(logger)
	clk := clock.NewMock()
	kb := osk.New(keyboard.QWERTY(), rec, clk, osk.Options{
		NavDelay:  navDelay,
		Threshold: 0.3,
	}, logger)
	d := New(kb, rec, rec, Options{
		Deadzone:    gamepad.DefaultDeadzone,
		MaxSpeed:    20,
		ScrollSpeed: 0.25,
	}, logger)
	return &harness{d: d, rec: rec, clk: clk}
}

func (h *harness) frame(events ...gamepad.Event) bool {
	return h.d.Frame(events, nil)
}

func axis(a gamepad.Axis, v int16) gamepad.Event {
	return gamepad.Event{Kind: gamepad.EventAxis, Axis: a, Value: v}
}

func down(b gamepad.Button) gamepad.Event {
	return gamepad.Event{Kind: gamepad.EventButtonDown, Button: b}
}

func up(b gamepad.Button) gamepad.Event {
	return gamepad.Event{Kind: gamepad.EventButtonUp, Button: b}
}

func keyEdges(rec *inject.Recorder) []string {
	var out []string
	for _, a := range rec.Filter(inject.ActionKey) {
		out = append(out, a.String())
	}
	return out
}

func pt(x, y int) keyboard.Point {
	return keyboard.Point{X: x, Y: y}
}

func TestSlowStickAccumulates(t *testing.T) {
	h := newHarness(t)
	h.frame(axis(gamepad.AxisLeftX, 9000))
	axes := h.d.Axes()
	test.That(t, axes.Get(gamepad.AxisLeftX), test.ShouldEqual, int16(1077))
	for i := 1; i < 60; i++ {
		h.frame()
	}

	total := 0
	for _, a := range h.rec.Filter(inject.ActionMove) {
		test.That(t, a.Y, test.ShouldEqual, 0)
		test.That(t, a.X, test.ShouldEqual, 1)
		total += a.X
	}
	// 60 * 1077/32767 * 20 = 39.44
	test.That(t, total, test.ShouldEqual, 39)
}

func TestDeadzoneRestsPointer(t *testing.T) {
	h := newHarness(t)
	changed := h.frame(axis(gamepad.AxisLeftX, 8000), axis(gamepad.AxisLeftY, -8192))
	test.That(t, changed, test.ShouldBeFalse)
	for i := 0; i < 30; i++ {
		h.frame()
	}
	test.That(t, h.rec.Actions(), test.ShouldBeEmpty)
}

func TestTriggerOpensKeyboardAndTypes(t *testing.T) {
	h := newHarness(t)
	test.That(t, h.frame(axis(gamepad.AxisLeftTrigger, 20000), axis(gamepad.AxisLeftX, 32767)), test.ShouldBeTrue)
	kb := h.d.Keyboard()
	test.That(t, kb.IsOpen(), test.ShouldBeTrue)
	test.That(t, kb.Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(2, 3))
	test.That(t, h.rec.Filter(inject.ActionMove), test.ShouldBeEmpty)

	h.frame(down(gamepad.ButtonLeftShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key w down"})
	test.That(t, kb.Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(2, 3))

	h.frame(up(gamepad.ButtonLeftShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key w down", "key w up"})

	// focus is remembered on open and restored on close
	h.frame(axis(gamepad.AxisLeftTrigger, 0))
	test.That(t, kb.IsOpen(), test.ShouldBeFalse)
	focus := h.rec.Filter(inject.ActionRemember, inject.ActionRestore)
	test.That(t, focus, test.ShouldHaveLength, 2)
	test.That(t, focus[0].Kind, test.ShouldEqual, inject.ActionRemember)
	test.That(t, focus[1].Kind, test.ShouldEqual, inject.ActionRestore)
}

func TestReleaseUsesCapturedKey(t *testing.T) {
	h := newHarness(t)
	h.frame(axis(gamepad.AxisLeftTrigger, 100))
	h.frame(down(gamepad.ButtonLeftShoulder), axis(gamepad.AxisLeftX, 32767))
	h.clk.Add(navDelay)
	h.frame()
	test.That(t, h.d.Keyboard().Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(3, 3))
	h.frame(up(gamepad.ButtonLeftShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key q down", "key q up"})
}

func TestSpaceFromEveryColumn(t *testing.T) {
	h := newHarness(t)
	h.frame(axis(gamepad.AxisLeftTrigger, 100))
	tr := h.d.Keyboard().Tracker()
	for x := 4; x <= 7; x++ {
		b, ok, err := tr.Activate(osk.SourcePointer, pt(x, 6))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, b.Token, test.ShouldEqual, keys.Space)
		test.That(t, b.Origin, test.ShouldResemble, pt(4, 6))
		_, _, _ = tr.Deactivate(osk.SourcePointer)
	}
}

func TestCursorsMeetOnSpace(t *testing.T) {
	h := newHarness(t)
	h.frame(axis(gamepad.AxisLeftTrigger, 100), axis(gamepad.AxisRightTrigger, 100),
		axis(gamepad.AxisLeftX, 32767), axis(gamepad.AxisLeftY, 32767),
		axis(gamepad.AxisRightX, -32767), axis(gamepad.AxisRightY, 32767))
	for i := 0; i < 2; i++ {
		h.clk.Add(navDelay)
		h.frame()
	}
	kb := h.d.Keyboard()
	test.That(t, kb.Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(4, 6))
	test.That(t, kb.Cursor(osk.SourceRed).Pos, test.ShouldResemble, pt(7, 6))

	h.frame(down(gamepad.ButtonLeftShoulder), down(gamepad.ButtonRightShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key Space down"})
	h.frame(up(gamepad.ButtonLeftShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldHaveLength, 1)
	h.frame(up(gamepad.ButtonRightShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key Space down", "key Space up"})
}

func TestCursorsDebounceIndependently(t *testing.T) {
	h := newHarness(t)
	kb := h.d.Keyboard()
	h.frame(axis(gamepad.AxisLeftTrigger, 100), axis(gamepad.AxisRightTrigger, 100), axis(gamepad.AxisLeftX, 32767))
	test.That(t, kb.Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(2, 3))
	test.That(t, kb.Cursor(osk.SourceRed).Pos, test.ShouldResemble, pt(10, 3))

	h.clk.Add(navDelay / 2)
	h.frame(axis(gamepad.AxisRightX, -32767))
	test.That(t, kb.Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(2, 3))
	test.That(t, kb.Cursor(osk.SourceRed).Pos, test.ShouldResemble, pt(9, 3))

	h.clk.Add(navDelay / 2)
	h.frame()
	test.That(t, kb.Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(3, 3))
	test.That(t, kb.Cursor(osk.SourceRed).Pos, test.ShouldResemble, pt(9, 3))
}

func TestBothCursorsMoveInOneFrame(t *testing.T) {
	h := newHarness(t)
	h.frame(axis(gamepad.AxisLeftTrigger, 1), axis(gamepad.AxisRightTrigger, 1),
		axis(gamepad.AxisLeftX, 32767), axis(gamepad.AxisRightX, -32767))
	kb := h.d.Keyboard()
	test.That(t, kb.Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(2, 3))
	test.That(t, kb.Cursor(osk.SourceRed).Pos, test.ShouldResemble, pt(9, 3))
}

func TestOneTriggerGatesOneCursor(t *testing.T) {
	h := newHarness(t)
	h.frame(axis(gamepad.AxisRightTrigger, 500), axis(gamepad.AxisLeftX, 32767))
	kb := h.d.Keyboard()
	test.That(t, kb.IsOpen(), test.ShouldBeTrue)
	test.That(t, kb.Cursor(osk.SourceBlue).Active, test.ShouldBeFalse)
	test.That(t, kb.Cursor(osk.SourceBlue).Pos, test.ShouldResemble, pt(1, 3))

	h.frame(down(gamepad.ButtonLeftShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldBeEmpty)
	h.frame(down(gamepad.ButtonRightShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key p down"})

	// releasing the trigger closes the keyboard and the held key
	h.frame(axis(gamepad.AxisRightTrigger, 0))
	test.That(t, kb.IsOpen(), test.ShouldBeFalse)
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key p down", "key p up"})
	h.frame(up(gamepad.ButtonRightShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldHaveLength, 2)
}

func TestClicksOnlyInPointerMode(t *testing.T) {
	h := newHarness(t)
	h.frame(down(gamepad.ButtonSouth))
	h.frame(axis(gamepad.AxisLeftTrigger, 100))
	h.frame(down(gamepad.ButtonEast))
	h.frame(up(gamepad.ButtonSouth), up(gamepad.ButtonEast))

	var got []string
	for _, a := range h.rec.Filter(inject.ActionButton) {
		got = append(got, a.String())
	}
	test.That(t, got, test.ShouldResemble, []string{"left down", "left up"})
}

func TestScrollWithRightStick(t *testing.T) {
	h := newHarness(t)
	h.frame(axis(gamepad.AxisRightY, -32767))
	for i := 0; i < 7; i++ {
		h.frame()
	}
	scrolls := h.rec.Filter(inject.ActionScroll)
	// 0.25 per frame ticks on the 2nd and every 4th frame after
	test.That(t, scrolls, test.ShouldHaveLength, 2)
	for _, s := range scrolls {
		test.That(t, s.Y, test.ShouldEqual, 1)
		test.That(t, s.X, test.ShouldEqual, 0)
	}
	test.That(t, h.rec.Filter(inject.ActionMove), test.ShouldBeEmpty)
}

func TestDisconnectReleasesEverything(t *testing.T) {
	h := newHarness(t)
	h.frame(down(gamepad.ButtonSouth))
	h.frame(axis(gamepad.AxisLeftTrigger, 100), down(gamepad.ButtonLeftShoulder))
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key q down"})

	h.frame(gamepad.Event{Kind: gamepad.EventDisconnected})
	test.That(t, h.d.Keyboard().IsOpen(), test.ShouldBeFalse)
	test.That(t, h.d.Axes(), test.ShouldResemble, gamepad.AxisState{})
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key q down", "key q up"})
	buttons := h.rec.Filter(inject.ActionButton)
	test.That(t, buttons, test.ShouldHaveLength, 2)
	test.That(t, buttons[1].Pressed, test.ShouldBeFalse)
}

func TestPointerEvents(t *testing.T) {
	h := newHarness(t)
	h.d.Frame(nil, []PointerEvent{{Pressed: true, Pos: pt(1, 3)}})
	test.That(t, keyEdges(h.rec), test.ShouldBeEmpty)

	h.frame(axis(gamepad.AxisLeftTrigger, 100))
	h.d.Frame(nil, []PointerEvent{{Pressed: true, Pos: pt(6, 6)}})
	h.d.Frame(nil, []PointerEvent{{Pressed: true, Pos: pt(1, 3)}, {Pressed: false}})
	test.That(t, keyEdges(h.rec), test.ShouldResemble, []string{"key Space down", "key Space up"})
}

func TestSnapshotCarriesAxes(t *testing.T) {
	h := newHarness(t)
	h.frame(axis(gamepad.AxisRightTrigger, 32767))
	snap := h.d.Snapshot()
	test.That(t, snap.Open, test.ShouldBeTrue)
	test.That(t, snap.Axes, test.ShouldHaveLength, gamepad.NumAxes)
	test.That(t, snap.Axes[gamepad.AxisRightTrigger], test.ShouldEqual, int16(32767))
}
