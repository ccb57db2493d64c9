// Package status renders the diagnostics line: every axis value and the
// cursor positions, overwritten in place on a terminal.
package status

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/osk"
)

// Line writes one status line per published snapshot that differs from the
// previous one.
type Line struct {
	mu     sync.Mutex
	w      io.Writer
	fd     int
	tty    bool
	layout *keyboard.Layout
	last   string
}

// New returns a Line writing to f. On a terminal the line is rewritten in
// place; otherwise every update is a new line.
func New(f *os.File, layout *keyboard.Layout) *Line {
	fd := int(f.Fd())
	return &Line{w: f, fd: fd, tty: term.IsTerminal(fd), layout: layout}
}

// NewWriter returns a Line writing plain lines to w.
func NewWriter(w io.Writer, layout *keyboard.Layout) *Line {
	return &Line{w: w, fd: -1, layout: layout}
}

// Format renders snap.
func (l *Line) Format(snap osk.Snapshot) string {
	var b strings.Builder
	for i, v := range snap.Axes {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "A%d:%6d", i, v)
	}
	if !snap.Open {
		return b.String()
	}
	b.WriteString(" |")
	for _, c := range snap.Cursors {
		if !c.Active {
			continue
		}
		label := "?"
		if cell, ok := l.layout.Lookup(c.Key); ok {
			label = strings.ReplaceAll(cell.Label, "\n", "")
		}
		fmt.Fprintf(&b, " %s:%s", c.Name, label)
		if snap.IsPressed(c.Key) {
			b.WriteByte('*')
		}
	}
	return b.String()
}

// Publish writes the line if it changed.
func (l *Line) Publish(snap osk.Snapshot) {
	s := l.Format(snap)
	l.mu.Lock()
	defer l.mu.Unlock()
	if s == l.last {
		return
	}
	l.last = s
	if !l.tty {
		fmt.Fprintln(l.w, s)
		return
	}
	if width, _, err := term.GetSize(l.fd); err == nil && width > 0 && len(s) >= width {
		s = s[:width-1]
	}
	fmt.Fprintf(l.w, "\r%s\x1b[K", s)
}

// Finish ends the line so following output starts on a fresh one.
func (l *Line) Finish() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tty && l.last != "" {
		fmt.Fprintln(l.w)
	}
}
