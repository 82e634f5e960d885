package camera

import (
	"github.com/mverity/smoothcam/common"
)

// Button is a semantic input button. The host maps whatever physical keys and
// mouse buttons it likes onto these; controllers only ever see the semantic
// names.
type Button uint8

const (
	// ButtonForward moves the camera forward (typically W).
	ButtonForward Button = iota
	// ButtonBackward moves the camera backward (typically S).
	ButtonBackward
	// ButtonLeft strafes or pans left (typically A).
	ButtonLeft
	// ButtonRight strafes or pans right (typically D).
	ButtonRight
	// ButtonUp moves or pans upward (typically Space or E).
	ButtonUp
	// ButtonDown moves or pans downward (typically Left Shift or Q).
	ButtonDown
	// ButtonRotateModifier gates cursor-drag orbiting (typically Left Control).
	ButtonRotateModifier
	// ButtonMouseLeft is the primary mouse button.
	ButtonMouseLeft
	// ButtonMouseRight is the secondary mouse button.
	ButtonMouseRight
	// ButtonMouseMiddle is the middle mouse button or wheel click.
	ButtonMouseMiddle

	buttonCount
)

// WheelUnit describes how a scroll delta is measured.
type WheelUnit uint8

const (
	// WheelUnitLine is a discrete notch of a clicky wheel.
	WheelUnitLine WheelUnit = iota
	// WheelUnitPixel is a high-resolution trackpad or free-spinning wheel
	// delta, normalized by a pixels-per-line constant before use.
	WheelUnitPixel
)

// InputSnapshot is one frame's worth of accumulated raw input: cursor motion,
// scroll motion, and the set of held semantic buttons. Snapshots are values;
// the collector that produced one retains no reference to it.
type InputSnapshot struct {
	// CursorDelta is the cursor motion accumulated since the last snapshot,
	// in screen pixels.
	CursorDelta common.Vec2
	// WheelDelta is the scroll motion accumulated since the last snapshot.
	WheelDelta common.Vec2
	// WheelUnit is the unit WheelDelta is measured in.
	WheelUnit WheelUnit

	pressed uint16
}

// SetPressed marks a semantic button held or released.
func (s *InputSnapshot) SetPressed(b Button, down bool) {
	if b >= buttonCount {
		return
	}
	if down {
		s.pressed |= 1 << b
	} else {
		s.pressed &^= 1 << b
	}
}

// Pressed reports whether a semantic button is held.
func (s *InputSnapshot) Pressed(b Button) bool {
	if b >= buttonCount {
		return false
	}
	return s.pressed&(1<<b) != 0
}
