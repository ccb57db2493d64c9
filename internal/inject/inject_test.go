package inject

import (
	"testing"

	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/soar/GamepadKeyMouse/internal/keys"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(zaptest.NewLogger(t).Sugar())
	test.That(t, r.MoveRelative(0, 0), test.ShouldBeNil)
	test.That(t, r.Scroll(0, 0), test.ShouldBeNil)
	test.That(t, r.Actions(), test.ShouldBeEmpty)

	_ = r.MoveRelative(3, -1)
	_ = r.Scroll(1, 0)
	_ = r.Button(ButtonRight, true)
	_ = r.Key(keys.W, true)
	_ = r.Remember()
	_ = r.Restore()

	want := []string{"move 3,-1", "scroll 0,1", "right down", "key w down", "remember focus", "restore focus"}
	var got []string
	for _, a := range r.Actions() {
		got = append(got, a.String())
	}
	test.That(t, got, test.ShouldResemble, want)
	test.That(t, r.Filter(ActionKey, ActionButton), test.ShouldHaveLength, 2)

	r.Reset()
	test.That(t, r.Actions(), test.ShouldBeEmpty)
	test.That(t, r.Close(), test.ShouldBeNil)
	test.That(t, r.Closed(), test.ShouldBeTrue)
}

func TestOpen(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	b, err := Open(BackendDryRun, "", logger)
	test.That(t, err, test.ShouldBeNil)
	_, ok := b.(*Recorder)
	test.That(t, ok, test.ShouldBeTrue)

	_, err = Open("wayland", "", logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "wayland")
}

func TestNopFocus(t *testing.T) {
	var f FocusKeeper = nopFocus{}
	test.That(t, f.Remember(), test.ShouldBeNil)
	test.That(t, f.Restore(), test.ShouldBeNil)
}

func TestClampInt16(t *testing.T) {
	test.That(t, clampInt16(12), test.ShouldEqual, int16(12))
	test.That(t, clampInt16(-40), test.ShouldEqual, int16(-40))
	test.That(t, clampInt16(40000), test.ShouldEqual, int16(32767))
	test.That(t, clampInt16(-40000), test.ShouldEqual, int16(-32768))
}
