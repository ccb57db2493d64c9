package keyboard

func k(label string) Key { return Key{Label: label, Span: 1} }

func wide(label string, span int) Key { return Key{Label: label, Span: span} }

func gap(n int) Key { return Key{Span: n} }

// qwertyRows is an 18 column full-size layout with the navigation cluster on
// the right and a spacer row under the function keys.
var qwertyRows = [][]Key{
	{k("Esc"), k("F1"), k("F2"), k("F3"), k("F4"), k("F5"), k("F6"), k("F7"), k("F8"), k("F9"), k("F10"), k("F11"), k("F12"),
		gap(2), k("Print\nScreen"), k("Scroll\nLock"), k("Pause\nBreak")},
	{gap(18)},
	{k("~\n`"), k("!\n1"), k("@\n2"), k("#\n3"), k("$\n4"), k("%\n5"), k("^\n6"), k("&\n7"), k("*\n8"), k("(\n9"), k(")\n0"), k("_\n-"), k("+\n="),
		k("Back\nSpace"), gap(1), k("Insert"), k("Home"), k("Page\nUp")},
	{k("Tab"), k("Q"), k("W"), k("E"), k("R"), k("T"), k("Y"), k("U"), k("I"), k("O"), k("P"), k("{\n["), k("}\n]"), k("|\n\\"),
		gap(1), k("Delete"), k("End"), k("Page\nDown")},
	{k("Caps"), k("A"), k("S"), k("D"), k("F"), k("G"), k("H"), k("J"), k("K"), k("L"), k(":\n;"), k("\"\n'"), wide("Enter", 2),
		gap(4)},
	{wide("Shift", 2), k("Z"), k("X"), k("C"), k("V"), k("B"), k("N"), k("M"), k("<\n,"), k(">\n."), k("?\n/"), wide("Shift", 2),
		gap(2), k("Up"), gap(1)},
	{k("Ctrl"), k("Win"), k("Fn"), k("Alt"), wide("Space", 4), k("Alt"), k("Fn"), k("Menu"), k("Ctrl"),
		gap(3), k("Left"), k("Down"), k("Right")},
}

// QWERTY returns the default layout.
func QWERTY() *Layout {
	return MustBuild(qwertyRows)
}
