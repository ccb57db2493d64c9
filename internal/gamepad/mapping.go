package gamepad

import "math"

// AxisMapping defines how a raw joystick axis index maps to a logical axis.
type AxisMapping struct {
	Index     int32
	Target    Axis
	IsTrigger bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw joystick button index maps to a logical button.
type ButtonMapping struct {
	Index  int32
	Target Button
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	// TriggerButtons maps digital trigger buttons onto trigger axes.
	TriggerButtons map[int32]Axis
}

// Axis returns the mapping for raw axis index idx.
func (m *DeviceMapping) Axis(idx int32) (AxisMapping, bool) {
	for _, am := range m.Axes {
		if am.Index == idx {
			return am, true
		}
	}
	return AxisMapping{}, false
}

// Button returns the logical button for raw button index idx.
func (m *DeviceMapping) Button(idx int32) (Button, bool) {
	for _, bm := range m.Buttons {
		if bm.Index == idx {
			return bm.Target, true
		}
	}
	return 0, false
}

// TriggerButton returns the trigger axis driven by raw button idx, if any.
func (m *DeviceMapping) TriggerButton(idx int32) (Axis, bool) {
	a, ok := m.TriggerButtons[idx]
	return a, ok
}

// Map converts a raw axis sample into the logical axis and its value.
// Trigger samples are rescaled onto 0..32767 so that rest reads as 0.
func (am AxisMapping) Map(raw int16) (Axis, int16) {
	if !am.IsTrigger {
		return am.Target, raw
	}
	return am.Target, RescaleTrigger(raw, am.RawMin, am.RawMax)
}

// RescaleTrigger converts a raw trigger value to 0..32767.
func RescaleTrigger(raw int16, rawMin, rawMax int16) int16 {
	if rawMax == rawMin {
		return 0
	}
	v := float64(int32(raw)-int32(rawMin)) / float64(int32(rawMax)-int32(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int16(math.Round(v * math.MaxInt16))
}

// Built-in mappings for common controllers.

var standardAxes = []AxisMapping{
	{Index: 0, Target: AxisLeftX},
	{Index: 1, Target: AxisLeftY},
	{Index: 2, Target: AxisRightX},
	{Index: 3, Target: AxisRightY},
	{Index: 4, Target: AxisLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	{Index: 5, Target: AxisRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
}

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonSouth},
		{Index: 1, Target: ButtonEast},
		{Index: 2, Target: ButtonWest},
		{Index: 3, Target: ButtonNorth},
		{Index: 4, Target: ButtonLeftShoulder},
		{Index: 5, Target: ButtonRightShoulder},
		{Index: 6, Target: ButtonBack},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonGuide},
	},
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonSouth}, // Cross (×)
		{Index: 1, Target: ButtonEast},  // Circle (○)
		{Index: 2, Target: ButtonWest},  // Square (□)
		{Index: 3, Target: ButtonNorth}, // Triangle (△)
		{Index: 4, Target: ButtonBack},  // Share / Create
		{Index: 5, Target: ButtonGuide}, // PS button
		{Index: 6, Target: ButtonStart}, // Options
		{Index: 7, Target: ButtonLeftStick},
		{Index: 8, Target: ButtonRightStick},
		{Index: 9, Target: ButtonLeftShoulder},   // L1
		{Index: 10, Target: ButtonRightShoulder}, // R1
	},
}

// The Switch Pro controller reports ZL/ZR as buttons 11/12 over the joystick
// API; they drive the trigger axes as full presses.
var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: standardAxes[:4],
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonSouth},
		{Index: 1, Target: ButtonEast},
		{Index: 2, Target: ButtonWest},
		{Index: 3, Target: ButtonNorth},
		{Index: 4, Target: ButtonLeftShoulder},
		{Index: 5, Target: ButtonRightShoulder},
		{Index: 6, Target: ButtonBack},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonGuide},
	},
	TriggerButtons: map[int32]Axis{
		11: AxisLeftTrigger,
		12: AxisRightTrigger,
	},
}

var genericMapping = &DeviceMapping{
	Name:    "generic",
	Axes:    standardAxes,
	Buttons: xboxMapping.Buttons,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0268}: playstationMapping, // DualShock 3
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
