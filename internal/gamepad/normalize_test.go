package gamepad

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestNormalizeDeadzone(t *testing.T) {
	n := NewNormalizer(DefaultDeadzone)
	for _, raw := range []int16{0, 1, -1, 100, -4000, 8191, -8191, 8192, -8192} {
		for _, a := range []Axis{AxisLeftX, AxisLeftY, AxisRightX, AxisRightY} {
			test.That(t, n.Normalize(a, raw), test.ShouldEqual, int16(0))
		}
	}
}

func TestNormalizeRange(t *testing.T) {
	n := NewNormalizer(DefaultDeadzone)
	test.That(t, n.Normalize(AxisLeftX, math.MaxInt16), test.ShouldEqual, int16(math.MaxInt16))
	test.That(t, n.Normalize(AxisLeftX, math.MinInt16), test.ShouldEqual, int16(math.MinInt16))
	test.That(t, n.Normalize(AxisLeftX, -math.MaxInt16), test.ShouldEqual, int16(-math.MaxInt16))

	// just above the deadzone the output starts near zero
	test.That(t, n.Normalize(AxisLeftX, 8193), test.ShouldEqual, int16(1))
	test.That(t, n.Normalize(AxisLeftX, 9000), test.ShouldEqual, int16(1077))
	test.That(t, n.Normalize(AxisLeftX, -9000), test.ShouldEqual, int16(-1077))
}

func TestNormalizeMonotonicAndSigned(t *testing.T) {
	n := NewNormalizer(DefaultDeadzone)
	prev := int16(0)
	for raw := int32(0); raw <= math.MaxInt16; raw += 37 {
		pos := n.Normalize(AxisRightY, int16(raw))
		neg := n.Normalize(AxisRightY, int16(-raw))
		test.That(t, pos, test.ShouldBeGreaterThanOrEqualTo, prev)
		test.That(t, pos, test.ShouldBeGreaterThanOrEqualTo, 0)
		test.That(t, neg, test.ShouldBeLessThanOrEqualTo, 0)
		test.That(t, neg, test.ShouldEqual, -pos)
		prev = pos
	}
}

func TestNormalizeExemptTriggers(t *testing.T) {
	n := NewNormalizer(DefaultDeadzone)
	for _, raw := range []int16{0, 1, 100, 8192, 20000, math.MaxInt16} {
		test.That(t, n.Normalize(AxisLeftTrigger, raw), test.ShouldEqual, raw)
		test.That(t, n.Normalize(AxisRightTrigger, raw), test.ShouldEqual, raw)
	}
}

func TestUnit(t *testing.T) {
	test.That(t, Unit(0), test.ShouldEqual, 0.0)
	test.That(t, Unit(math.MaxInt16), test.ShouldEqual, 1.0)
	test.That(t, Unit(math.MinInt16), test.ShouldEqual, -1.0)
}
