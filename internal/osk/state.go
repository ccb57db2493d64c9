// Package osk holds the on-screen keyboard state: two trigger-gated cursors
// navigating a shared layout, and the bindings of keys they hold.
package osk

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/keyboard"
)

// ReopenPolicy decides where cursors sit when the keyboard closes.
type ReopenPolicy int

const (
	ReopenPreserve ReopenPolicy = iota
	ReopenReset
)

// ParseReopenPolicy parses "preserve" or "reset".
func ParseReopenPolicy(s string) (ReopenPolicy, error) {
	switch s {
	case "preserve", "":
		return ReopenPreserve, nil
	case "reset":
		return ReopenReset, nil
	}
	return 0, errors.Errorf("unknown reopen policy %q", s)
}

func (p ReopenPolicy) String() string {
	if p == ReopenReset {
		return "reset"
	}
	return "preserve"
}

// Home cells of the cursors.
const (
	BlueHome = "Q"
	RedHome  = "P"
)

// Cursor is one highlight cursor.
type Cursor struct {
	Pos    keyboard.Point
	Home   keyboard.Point
	Active bool

	lastMove time.Time
}

// Options configure a State.
type Options struct {
	NavDelay  time.Duration
	Threshold float64
	Diagonal  DiagonalPolicy
	Reopen    ReopenPolicy
}

// State is the keyboard context object. It is owned by the input loop and
// must not be shared with other goroutines; views read Snapshots instead.
type State struct {
	layout  *keyboard.Layout
	nav     *Navigator
	tracker *Tracker
	reopen  ReopenPolicy
	logger  *zap.SugaredLogger

	open    bool
	cursors [2]Cursor
	seq     uint64
}

// New returns a closed State with both cursors on their home cells.
func New(layout *keyboard.Layout, inj KeyInjector, clk clock.Clock, opts Options, logger *zap.SugaredLogger) *State {
	s := &State{
		layout:  layout,
		nav:     NewNavigator(layout, clk, opts.NavDelay, opts.Threshold, opts.Diagonal),
		tracker: NewTracker(layout, inj, logger),
		reopen:  opts.Reopen,
		logger:  logger,
	}
	homes := [2]string{BlueHome, RedHome}
	for i := range s.cursors {
		home, ok := layout.Find(homes[i])
		if !ok {
			home = firstNavigable(layout)
		}
		s.cursors[i] = Cursor{Pos: home, Home: home}
	}
	return s
}

func firstNavigable(layout *keyboard.Layout) keyboard.Point {
	if cells := layout.Cells(); len(cells) > 0 {
		return cells[0].Origin()
	}
	return keyboard.Point{}
}

// Layout returns the keyboard layout.
func (s *State) Layout() *keyboard.Layout {
	return s.layout
}

// Tracker returns the key tracker.
func (s *State) Tracker() *Tracker {
	return s.tracker
}

// IsOpen reports whether the keyboard is shown.
func (s *State) IsOpen() bool {
	return s.open
}

// Seq increases on every visible change.
func (s *State) Seq() uint64 {
	return s.seq
}

// Cursor returns a copy of the cursor driven by src.
func (s *State) Cursor(src Source) Cursor {
	if !isCursor(src) {
		return Cursor{}
	}
	return s.cursors[src]
}

func isCursor(src Source) bool {
	return src == SourceBlue || src == SourceRed
}

// Open shows the keyboard and reports whether it was closed before.
func (s *State) Open() bool {
	if s.open {
		return false
	}
	s.open = true
	s.seq++
	s.logger.Debug("keyboard opened")
	return true
}

// Close hides the keyboard, releases every binding and deactivates both
// cursors. Closing a closed keyboard does nothing.
func (s *State) Close() error {
	if !s.open {
		return nil
	}
	var err error
	for _, src := range []Source{SourceBlue, SourceRed} {
		err = multierr.Append(err, s.SetActive(src, false))
	}
	err = multierr.Append(err, s.tracker.ReleaseAll())
	s.open = false
	s.seq++
	s.logger.Debug("keyboard closed")
	return err
}

// SetActive turns the cursor of src on or off. Turning it off releases its
// binding and applies the reopen policy to its position.
func (s *State) SetActive(src Source, active bool) error {
	if !isCursor(src) {
		return nil
	}
	c := &s.cursors[src]
	if c.Active == active {
		return nil
	}
	c.Active = active
	s.seq++
	if active {
		return nil
	}
	_, _, err := s.tracker.Deactivate(src)
	if s.reopen == ReopenReset {
		c.Pos = c.Home
		c.lastMove = time.Time{}
	}
	return err
}

// Navigate steps the cursor of src by stick position (ax, ay). Inactive
// cursors and a closed keyboard never move.
func (s *State) Navigate(src Source, ax, ay float64) bool {
	if !s.open || !isCursor(src) || !s.cursors[src].Active {
		return false
	}
	if !s.nav.Move(&s.cursors[src], ax, ay) {
		return false
	}
	s.seq++
	return true
}

// Select presses the key under the cursor of src.
func (s *State) Select(src Source) (Binding, bool, error) {
	if !s.open || !isCursor(src) || !s.cursors[src].Active {
		return Binding{}, false, nil
	}
	b, ok, err := s.tracker.Activate(src, s.cursors[src].Pos)
	if ok {
		s.seq++
	}
	return b, ok, err
}

// Deselect releases whatever src holds, wherever its cursor is now.
func (s *State) Deselect(src Source) error {
	_, ok, err := s.tracker.Deactivate(src)
	if ok {
		s.seq++
	}
	return err
}

// PointerPress presses the key at p on behalf of the pointing device.
func (s *State) PointerPress(p keyboard.Point) (Binding, bool, error) {
	if !s.open {
		return Binding{}, false, nil
	}
	b, ok, err := s.tracker.Activate(SourcePointer, p)
	if ok {
		s.seq++
	}
	return b, ok, err
}

// PointerRelease releases the pointing device's key.
func (s *State) PointerRelease() error {
	return s.Deselect(SourcePointer)
}
