package keys

import (
	"testing"

	"github.com/bendahl/uinput"
	"go.viam.com/test"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		label string
		side  Side
		want  Token
	}{
		{"Q", SideLeft, Q},
		{"w", SideLeft, W},
		{"!\n1", SideLeft, Num1},
		{"~\n`", SideLeft, Grave},
		{"\"\n'", SideLeft, Apostrophe},
		{"|\n\\", SideLeft, Backslash},
		{"Back\nSpace", SideLeft, Backspace},
		{"Space", SideLeft, Space},
		{"Enter", SideLeft, Enter},
		{"Esc", SideLeft, Esc},
		{"Tab", SideLeft, Tab},
		{"Caps", SideLeft, CapsLock},
		{"Print\nScreen", SideLeft, SysRq},
		{"Scroll\nLock", SideLeft, ScrollLock},
		{"Pause\nBreak", SideLeft, Pause},
		{"Page\nUp", SideLeft, PageUp},
		{"Page\nDown", SideLeft, PageDown},
		{"Menu", SideLeft, Compose},
		{"Up", SideLeft, Up},
		{"F1", SideLeft, F1},
		{"F10", SideLeft, F10},
		{"F12", SideLeft, F12},
		{"Shift", SideLeft, LeftShift},
		{"Shift", SideRight, RightShift},
		{"Ctrl", SideRight, RightCtrl},
		{"Alt", SideLeft, LeftAlt},
		{"Win", SideLeft, LeftMeta},
	} {
		t.Run(tc.label, func(t *testing.T) {
			got, ok := Parse(tc.label, tc.side)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, got, test.ShouldEqual, tc.want)
		})
	}
}

func TestParseUnresolvable(t *testing.T) {
	for _, label := range []string{"", "  ", "Fn", "F13", "F0", "Hello", "€", "ab\ncd"} {
		_, ok := Parse(label, SideLeft)
		test.That(t, ok, test.ShouldBeFalse)
	}
}

func TestTokenCodesMatchUinput(t *testing.T) {
	test.That(t, A.Code(), test.ShouldEqual, uinput.KeyA)
	test.That(t, W.Code(), test.ShouldEqual, uinput.KeyW)
	test.That(t, Enter.Code(), test.ShouldEqual, uinput.KeyEnter)
	test.That(t, Space.Code(), test.ShouldEqual, uinput.KeySpace)
	test.That(t, Esc.Code(), test.ShouldEqual, uinput.KeyEsc)
	test.That(t, LeftShift.Code(), test.ShouldEqual, uinput.KeyLeftshift)
	test.That(t, Backspace.Code(), test.ShouldEqual, uinput.KeyBackspace)
	test.That(t, Num0.Code(), test.ShouldEqual, uinput.Key0)
}

func TestTokenCodesAreLinuxEventCodes(t *testing.T) {
	for tok, code := range map[Token]int{
		Esc: 1, Q: 16, LeftCtrl: 29, Space: 57, F10: 68, F12: 88,
		RightCtrl: 97, Home: 102, Delete: 111, Pause: 119, Compose: 127,
	} {
		test.That(t, tok.Code(), test.ShouldEqual, code)
	}

	// every defined token has a distinct code
	seen := map[int]Token{}
	for tok := range tokens {
		_, dup := seen[tok.Code()]
		test.That(t, dup, test.ShouldBeFalse)
		seen[tok.Code()] = tok
	}
}

func TestTokenMetadata(t *testing.T) {
	for tok, info := range tokens {
		test.That(t, tok.Valid(), test.ShouldBeTrue)
		test.That(t, info.keysym, test.ShouldNotBeEmpty)
		test.That(t, tok.String(), test.ShouldEqual, info.name)
	}
	test.That(t, None.Valid(), test.ShouldBeFalse)
	test.That(t, None.Keysym(), test.ShouldEqual, "")
	test.That(t, Token(999).String(), test.ShouldEqual, "Token(999)")
}
