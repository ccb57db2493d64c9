package gamepad

import "fmt"

// Axis is a logical axis id on the fixed two-stick, two-trigger layout.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger

	NumAxes = 6
)

// Button is a logical button id. Ids follow the SDL game controller order,
// so 9 and 10 are the shoulder buttons.
type Button int

const (
	ButtonSouth Button = iota
	ButtonEast
	ButtonWest
	ButtonNorth
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder

	NumButtons = 11
)

// EventKind distinguishes the events a Source emits.
type EventKind int

const (
	EventAxis EventKind = iota
	EventButtonDown
	EventButtonUp
	// EventDisconnected is emitted when the active controller goes away.
	// Consumers should treat every axis as released.
	EventDisconnected
)

func (k EventKind) String() string {
	switch k {
	case EventAxis:
		return "axis"
	case EventButtonDown:
		return "button-down"
	case EventButtonUp:
		return "button-up"
	case EventDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Event is one raw controller event already mapped to logical ids.
// Axis values are raw samples; trigger axes are rescaled to 0..32767.
type Event struct {
	Kind   EventKind
	Axis   Axis
	Value  int16
	Button Button
}

func (e Event) String() string {
	switch e.Kind {
	case EventAxis:
		return fmt.Sprintf("axis %d = %d", e.Axis, e.Value)
	case EventButtonDown, EventButtonUp:
		return fmt.Sprintf("%s %d", e.Kind, e.Button)
	}
	return e.Kind.String()
}

// AxisState holds the current normalized sample of every axis.
type AxisState [NumAxes]int16

// Set stores v for axis a and reports whether the stored value changed.
// Out-of-range axis ids are ignored.
func (s *AxisState) Set(a Axis, v int16) bool {
	if a < 0 || int(a) >= NumAxes {
		return false
	}
	if s[a] == v {
		return false
	}
	s[a] = v
	return true
}

// Get returns the sample of axis a, 0 for unknown axes.
func (s *AxisState) Get(a Axis) int16 {
	if a < 0 || int(a) >= NumAxes {
		return 0
	}
	return s[a]
}

// Unit returns axis a scaled to -1.0..1.0.
func (s *AxisState) Unit(a Axis) float64 {
	return Unit(s.Get(a))
}

// Reset zeroes every axis and reports whether anything changed.
func (s *AxisState) Reset() bool {
	changed := *s != AxisState{}
	*s = AxisState{}
	return changed
}
