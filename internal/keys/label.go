package keys

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Side selects the left or right variant of a modifier key.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

var named = map[string]Token{
	"esc":          Esc,
	"escape":       Esc,
	"enter":        Enter,
	"return":       Enter,
	"space":        Space,
	"tab":          Tab,
	"back space":   Backspace,
	"backspace":    Backspace,
	"caps":         CapsLock,
	"caps lock":    CapsLock,
	"num lock":     NumLock,
	"scroll lock":  ScrollLock,
	"print screen": SysRq,
	"pause break":  Pause,
	"pause":        Pause,
	"insert":       Insert,
	"delete":       Delete,
	"home":         Home,
	"end":          End,
	"page up":      PageUp,
	"page down":    PageDown,
	"up":           Up,
	"down":         Down,
	"left":         Left,
	"right":        Right,
	"menu":         Compose,
}

var modifiers = map[string][2]Token{
	"shift": {LeftShift, RightShift},
	"ctrl":  {LeftCtrl, RightCtrl},
	"alt":   {LeftAlt, RightAlt},
	"win":   {LeftMeta, RightMeta},
	"super": {LeftMeta, RightMeta},
}

var chars = map[rune]Token{
	'1': Num1, '2': Num2, '3': Num3, '4': Num4, '5': Num5,
	'6': Num6, '7': Num7, '8': Num8, '9': Num9, '0': Num0,
	'a': A, 'b': B, 'c': C, 'd': D, 'e': E, 'f': F, 'g': G,
	'h': H, 'i': I, 'j': J, 'k': K, 'l': L, 'm': M, 'n': N,
	'o': O, 'p': P, 'q': Q, 'r': R, 's': S, 't': T, 'u': U,
	'v': V, 'w': W, 'x': X, 'y': Y, 'z': Z,
	'`': Grave, '-': Minus, '=': Equal, '[': LeftBrace, ']': RightBrace,
	'\\': Backslash, ';': Semicolon, '\'': Apostrophe, ',': Comma,
	'.': Dot, '/': Slash,
}

var functionKeys = [...]Token{F1, F2, F3, F4, F5, F6, F7, F8, F9, F10, F11, F12}

var functionLabel = regexp.MustCompile(`^[Ff]([1-9]|1[0-2])$`)

// Parse resolves a key-cap label to a Token. A label is a single printable
// character, a two-line label whose last line is the base character, a named
// control key (lines joined by a space, case-insensitive) or F1..F12. side
// picks the variant of modifier keys. Unresolvable labels return false.
func Parse(label string, side Side) (Token, bool) {
	lines := strings.Split(label, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	whole := strings.ToLower(strings.Join(lines, " "))
	whole = strings.TrimSpace(whole)
	if whole == "" {
		return None, false
	}

	if t, ok := named[whole]; ok {
		return t, true
	}
	if pair, ok := modifiers[whole]; ok {
		if side == SideRight {
			return pair[1], true
		}
		return pair[0], true
	}
	if m := functionLabel.FindStringSubmatch(lines[0]); m != nil && len(lines) == 1 {
		n, _ := strconv.Atoi(m[1])
		return functionKeys[n-1], true
	}

	glyph := lines[len(lines)-1]
	if utf8.RuneCountInString(glyph) != 1 {
		return None, false
	}
	r, _ := utf8.DecodeRuneInString(glyph)
	t, ok := chars[unicode.ToLower(r)]
	return t, ok
}
