// Package keys defines the closed set of logical key tokens the on-screen
// keyboard can emit and resolves key-cap labels to them.
//
// Token values are Linux input event codes, so the uinput backend can pass
// them through unchanged.
package keys

import (
	"strconv"

	"github.com/bendahl/uinput"
)

// Token identifies one logical key.
type Token uint16

// None is the zero Token; it never resolves to a key.
const None Token = 0

const (
	Esc        Token = uinput.KeyEsc
	Num1       Token = uinput.Key1
	Num2       Token = uinput.Key2
	Num3       Token = uinput.Key3
	Num4       Token = uinput.Key4
	Num5       Token = uinput.Key5
	Num6       Token = uinput.Key6
	Num7       Token = uinput.Key7
	Num8       Token = uinput.Key8
	Num9       Token = uinput.Key9
	Num0       Token = uinput.Key0
	Minus      Token = uinput.KeyMinus
	Equal      Token = uinput.KeyEqual
	Backspace  Token = uinput.KeyBackspace
	Tab        Token = uinput.KeyTab
	Q          Token = uinput.KeyQ
	W          Token = uinput.KeyW
	E          Token = uinput.KeyE
	R          Token = uinput.KeyR
	T          Token = uinput.KeyT
	Y          Token = uinput.KeyY
	U          Token = uinput.KeyU
	I          Token = uinput.KeyI
	O          Token = uinput.KeyO
	P          Token = uinput.KeyP
	LeftBrace  Token = uinput.KeyLeftbrace
	RightBrace Token = uinput.KeyRightbrace
	Enter      Token = uinput.KeyEnter
	LeftCtrl   Token = uinput.KeyLeftctrl
	A          Token = uinput.KeyA
	S          Token = uinput.KeyS
	D          Token = uinput.KeyD
	F          Token = uinput.KeyF
	G          Token = uinput.KeyG
	H          Token = uinput.KeyH
	J          Token = uinput.KeyJ
	K          Token = uinput.KeyK
	L          Token = uinput.KeyL
	Semicolon  Token = uinput.KeySemicolon
	Apostrophe Token = uinput.KeyApostrophe
	Grave      Token = uinput.KeyGrave
	LeftShift  Token = uinput.KeyLeftshift
	Backslash  Token = uinput.KeyBackslash
	Z          Token = uinput.KeyZ
	X          Token = uinput.KeyX
	C          Token = uinput.KeyC
	V          Token = uinput.KeyV
	B          Token = uinput.KeyB
	N          Token = uinput.KeyN
	M          Token = uinput.KeyM
	Comma      Token = uinput.KeyComma
	Dot        Token = uinput.KeyDot
	Slash      Token = uinput.KeySlash
	RightShift Token = uinput.KeyRightshift
	LeftAlt    Token = uinput.KeyLeftalt
	Space      Token = uinput.KeySpace
	CapsLock   Token = uinput.KeyCapslock
	F1         Token = uinput.KeyF1
	F2         Token = uinput.KeyF2
	F3         Token = uinput.KeyF3
	F4         Token = uinput.KeyF4
	F5         Token = uinput.KeyF5
	F6         Token = uinput.KeyF6
	F7         Token = uinput.KeyF7
	F8         Token = uinput.KeyF8
	F9         Token = uinput.KeyF9
	F10        Token = uinput.KeyF10
	NumLock    Token = uinput.KeyNumlock
	ScrollLock Token = uinput.KeyScrolllock
	F11        Token = uinput.KeyF11
	F12        Token = uinput.KeyF12
	RightCtrl  Token = uinput.KeyRightctrl
	SysRq      Token = uinput.KeySysrq
	RightAlt   Token = uinput.KeyRightalt
	Home       Token = uinput.KeyHome
	Up         Token = uinput.KeyUp
	PageUp     Token = uinput.KeyPageup
	Left       Token = uinput.KeyLeft
	Right      Token = uinput.KeyRight
	End        Token = uinput.KeyEnd
	Down       Token = uinput.KeyDown
	PageDown   Token = uinput.KeyPagedown
	Insert     Token = uinput.KeyInsert
	Delete     Token = uinput.KeyDelete
	Pause      Token = uinput.KeyPause
	LeftMeta   Token = uinput.KeyLeftmeta
	RightMeta  Token = uinput.KeyRightmeta
	Compose    Token = uinput.KeyCompose
)

type tokenInfo struct {
	name   string
	keysym string // X11 keysym name
}

var tokens = map[Token]tokenInfo{
	Esc:        {"Esc", "Escape"},
	Num1:       {"1", "1"},
	Num2:       {"2", "2"},
	Num3:       {"3", "3"},
	Num4:       {"4", "4"},
	Num5:       {"5", "5"},
	Num6:       {"6", "6"},
	Num7:       {"7", "7"},
	Num8:       {"8", "8"},
	Num9:       {"9", "9"},
	Num0:       {"0", "0"},
	Minus:      {"-", "minus"},
	Equal:      {"=", "equal"},
	Backspace:  {"Backspace", "BackSpace"},
	Tab:        {"Tab", "Tab"},
	Q:          {"q", "q"},
	W:          {"w", "w"},
	E:          {"e", "e"},
	R:          {"r", "r"},
	T:          {"t", "t"},
	Y:          {"y", "y"},
	U:          {"u", "u"},
	I:          {"i", "i"},
	O:          {"o", "o"},
	P:          {"p", "p"},
	LeftBrace:  {"[", "bracketleft"},
	RightBrace: {"]", "bracketright"},
	Enter:      {"Enter", "Return"},
	LeftCtrl:   {"LeftCtrl", "Control_L"},
	A:          {"a", "a"},
	S:          {"s", "s"},
	D:          {"d", "d"},
	F:          {"f", "f"},
	G:          {"g", "g"},
	H:          {"h", "h"},
	J:          {"j", "j"},
	K:          {"k", "k"},
	L:          {"l", "l"},
	Semicolon:  {";", "semicolon"},
	Apostrophe: {"'", "apostrophe"},
	Grave:      {"`", "grave"},
	LeftShift:  {"LeftShift", "Shift_L"},
	Backslash:  {"\\", "backslash"},
	Z:          {"z", "z"},
	X:          {"x", "x"},
	C:          {"c", "c"},
	V:          {"v", "v"},
	B:          {"b", "b"},
	N:          {"n", "n"},
	M:          {"m", "m"},
	Comma:      {",", "comma"},
	Dot:        {".", "period"},
	Slash:      {"/", "slash"},
	RightShift: {"RightShift", "Shift_R"},
	LeftAlt:    {"LeftAlt", "Alt_L"},
	Space:      {"Space", "space"},
	CapsLock:   {"CapsLock", "Caps_Lock"},
	F1:         {"F1", "F1"},
	F2:         {"F2", "F2"},
	F3:         {"F3", "F3"},
	F4:         {"F4", "F4"},
	F5:         {"F5", "F5"},
	F6:         {"F6", "F6"},
	F7:         {"F7", "F7"},
	F8:         {"F8", "F8"},
	F9:         {"F9", "F9"},
	F10:        {"F10", "F10"},
	NumLock:    {"NumLock", "Num_Lock"},
	ScrollLock: {"ScrollLock", "Scroll_Lock"},
	F11:        {"F11", "F11"},
	F12:        {"F12", "F12"},
	RightCtrl:  {"RightCtrl", "Control_R"},
	SysRq:      {"PrintScreen", "Print"},
	RightAlt:   {"RightAlt", "Alt_R"},
	Home:       {"Home", "Home"},
	Up:         {"Up", "Up"},
	PageUp:     {"PageUp", "Prior"},
	Left:       {"Left", "Left"},
	Right:      {"Right", "Right"},
	End:        {"End", "End"},
	Down:       {"Down", "Down"},
	PageDown:   {"PageDown", "Next"},
	Insert:     {"Insert", "Insert"},
	Delete:     {"Delete", "Delete"},
	Pause:      {"Pause", "Pause"},
	LeftMeta:   {"LeftMeta", "Super_L"},
	RightMeta:  {"RightMeta", "Super_R"},
	Compose:    {"Menu", "Menu"},
}

// Valid reports whether t is one of the defined tokens.
func (t Token) Valid() bool {
	_, ok := tokens[t]
	return ok
}

// Code returns the Linux input event code of t.
func (t Token) Code() int {
	return int(t)
}

// Keysym returns the X11 keysym name of t, or "" for invalid tokens.
func (t Token) Keysym() string {
	return tokens[t].keysym
}

func (t Token) String() string {
	if info, ok := tokens[t]; ok {
		return info.name
	}
	return "Token(" + strconv.Itoa(int(t)) + ")"
}
