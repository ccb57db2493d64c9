package osk

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/soar/GamepadKeyMouse/internal/keyboard"
)

// MaxReach is how many cells a single step may jump over gaps.
const MaxReach = 9

// DiagonalPolicy decides how a blocked diagonal step falls back.
type DiagonalPolicy int

const (
	// DiagonalSimultaneous scans the horizontal and vertical rays
	// independently and applies both when the combined cell is a key.
	DiagonalSimultaneous DiagonalPolicy = iota
	// DiagonalHorizontalFirst scans the vertical ray only when the
	// horizontal one finds nothing.
	DiagonalHorizontalFirst
)

// ParseDiagonalPolicy parses "simultaneous" or "horizontal-first".
func ParseDiagonalPolicy(s string) (DiagonalPolicy, error) {
	switch s {
	case "simultaneous", "":
		return DiagonalSimultaneous, nil
	case "horizontal-first":
		return DiagonalHorizontalFirst, nil
	}
	return 0, errors.Errorf("unknown diagonal policy %q", s)
}

func (p DiagonalPolicy) String() string {
	if p == DiagonalHorizontalFirst {
		return "horizontal-first"
	}
	return "simultaneous"
}

// Navigator moves one cursor at a time over a layout in discrete,
// rate-limited steps.
type Navigator struct {
	layout    *keyboard.Layout
	clock     clock.Clock
	delay     time.Duration
	threshold float64
	policy    DiagonalPolicy
}

// NewNavigator returns a Navigator. A stick component beyond ±threshold
// counts as a step in that direction; steps are at least delay apart.
func NewNavigator(layout *keyboard.Layout, clk clock.Clock, delay time.Duration, threshold float64, policy DiagonalPolicy) *Navigator {
	return &Navigator{
		layout:    layout,
		clock:     clk,
		delay:     delay,
		threshold: threshold,
		policy:    policy,
	}
}

// Move steps c according to the stick position (ax, ay) and reports whether
// the cursor moved. Rejected attempts leave the debounce timer alone.
func (n *Navigator) Move(c *Cursor, ax, ay float64) bool {
	now := n.clock.Now()
	if !c.lastMove.IsZero() && now.Sub(c.lastMove) < n.delay {
		return false
	}
	dx, dy := quantize(ax, n.threshold), quantize(ay, n.threshold)
	if dx == 0 && dy == 0 {
		return false
	}
	next, ok := n.target(c.Pos, dx, dy)
	if !ok || next == c.Pos {
		return false
	}
	c.Pos = next
	c.lastMove = now
	return true
}

func (n *Navigator) target(from keyboard.Point, dx, dy int) (keyboard.Point, bool) {
	if dx == 0 || dy == 0 {
		return n.scan(from, dx, dy)
	}
	if p, ok := n.scan(from, dx, dy); ok {
		return p, true
	}

	h, hok := n.scan(from, dx, 0)
	if n.policy == DiagonalHorizontalFirst && hok {
		return h, true
	}
	v, vok := n.scan(from, 0, dy)
	switch {
	case hok && vok:
		both := keyboard.Point{X: h.X, Y: v.Y}
		if n.stop(from, both) {
			return both, true
		}
		return h, true
	case hok:
		return h, true
	case vok:
		return v, true
	}
	return from, false
}

// scan walks the ray from `from` in direction (dx, dy) and returns the
// nearest stop. Leaving the grid ends the scan.
func (n *Navigator) scan(from keyboard.Point, dx, dy int) (keyboard.Point, bool) {
	for k := 1; k <= MaxReach; k++ {
		p := keyboard.Point{X: from.X + k*dx, Y: from.Y + k*dy}
		if !n.layout.InBounds(p) {
			return from, false
		}
		if n.stop(from, p) {
			return p, true
		}
	}
	return from, false
}

// stop reports whether p is a key other than the one under from. Alias
// columns of the current key are not separate stops.
func (n *Navigator) stop(from, p keyboard.Point) bool {
	return n.layout.Navigable(p) && !n.layout.SameKey(from, p)
}

func quantize(v, threshold float64) int {
	switch {
	case v > threshold:
		return 1
	case v < -threshold:
		return -1
	}
	return 0
}
