package gamepad

import "math"

// DefaultDeadzone is the stick deadzone in raw units.
const DefaultDeadzone = 8192

// Normalizer applies deadzone correction to raw axis samples.
type Normalizer struct {
	deadzone int32
	exempt   [NumAxes]bool
}

// NewNormalizer returns a Normalizer with the given deadzone. The trigger
// axes are exempt: they are pressure sensors gating modes, not sticks.
func NewNormalizer(deadzone int32) Normalizer {
	n := Normalizer{deadzone: deadzone}
	n.exempt[AxisLeftTrigger] = true
	n.exempt[AxisRightTrigger] = true
	return n
}

// Normalize returns raw with the deadzone removed and the remaining travel
// rescaled onto the full 0..32767 magnitude, keeping the sign.
func (n Normalizer) Normalize(axis Axis, raw int16) int16 {
	if axis >= 0 && int(axis) < NumAxes && n.exempt[axis] {
		return raw
	}
	mag := int32(raw)
	if mag < 0 {
		mag = -mag
	}
	if mag <= n.deadzone {
		return 0
	}
	scaled := float64(mag-n.deadzone) / float64(math.MaxInt16-n.deadzone) * math.MaxInt16
	if raw < 0 {
		if scaled > -math.MinInt16 {
			scaled = -math.MinInt16
		}
		return int16(-scaled)
	}
	if scaled > math.MaxInt16 {
		scaled = math.MaxInt16
	}
	return int16(scaled)
}

// Unit scales a normalized sample to -1.0..1.0.
func Unit(v int16) float64 {
	u := float64(v) / math.MaxInt16
	if u < -1 {
		u = -1
	}
	return u
}
