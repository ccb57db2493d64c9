// Package motion turns normalized stick deflection into discrete pointer
// deltas and scroll ticks without losing sub-unit precision between frames.
package motion

import "math"

// Accumulator carries a fractional remainder across frames.
type Accumulator float64

// Take adds v and extracts the truncated integer part, keeping the remainder.
func (a *Accumulator) Take(v float64) int {
	*a += Accumulator(v)
	n := math.Trunc(float64(*a))
	*a -= Accumulator(n)
	return int(n)
}

// Tick adds v and, once the magnitude reaches 0.5, emits the rounded
// accumulator as whole ticks and subtracts them, never resetting the
// remainder. Nothing is emitted for v == 0, so scrolling stops with the
// stick.
func (a *Accumulator) Tick(v float64) int {
	if v == 0 {
		return 0
	}
	*a += Accumulator(v)
	if math.Abs(float64(*a)) < 0.5 {
		return 0
	}
	n := math.Round(float64(*a))
	*a -= Accumulator(n)
	return int(n)
}

// Frame is the integer output of one integration step.
type Frame struct {
	DX, DY int
	// ScrollV ticks are positive for up, ScrollH ticks positive for right.
	ScrollV, ScrollH int
}

// IsZero reports whether the frame moves nothing.
func (f Frame) IsZero() bool {
	return f == Frame{}
}

// Integrator owns the pointer and scroll accumulators.
type Integrator struct {
	maxSpeed    float64
	scrollSpeed float64

	x, y             Accumulator
	scrollV, scrollH Accumulator
}

// NewIntegrator returns an Integrator moving at most maxSpeed pixels per
// frame and scrolling at scrollSpeed ticks per frame at full deflection.
func NewIntegrator(maxSpeed, scrollSpeed float64) *Integrator {
	return &Integrator{maxSpeed: maxSpeed, scrollSpeed: scrollSpeed}
}

// Step integrates one frame. x and y are the pointer stick in -1..1,
// sv and sh the vertical and horizontal scroll inputs in -1..1.
func (in *Integrator) Step(x, y, sv, sh float64) Frame {
	return Frame{
		DX:      in.x.Take(x * in.maxSpeed),
		DY:      in.y.Take(y * in.maxSpeed),
		ScrollV: in.scrollV.Tick(sv * in.scrollSpeed),
		ScrollH: in.scrollH.Tick(sh * in.scrollSpeed),
	}
}
