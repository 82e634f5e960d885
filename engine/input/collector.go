// Package input accumulates raw window events into per-frame snapshots for
// the camera controllers. The collector owns the mapping from physical key
// codes to the semantic buttons the controllers understand.
package input

import (
	"sync"

	"github.com/mverity/smoothcam/common"
	"github.com/mverity/smoothcam/engine/camera"
	"github.com/mverity/smoothcam/engine/window"
)

// Collector gathers cursor motion, scroll motion, and held buttons between
// frames. Take drains the accumulated deltas into a camera.InputSnapshot;
// held-button state persists across snapshots so keys held over several
// frames keep registering.
type Collector struct {
	mu sync.Mutex

	keyBindings map[uint32]camera.Button
	wheelUnit   camera.WheelUnit

	held        camera.InputSnapshot
	cursorDelta common.Vec2
	wheelDelta  common.Vec2
	lastX       float64
	lastY       float64
	hasCursor   bool
}

// CollectorOption is a functional option for configuring a Collector.
type CollectorOption func(*Collector)

// WithWheelUnit sets the unit scroll deltas are reported in.
//
// Parameters:
//   - unit: line for clicky wheels, pixel for high-resolution devices
//
// Returns:
//   - CollectorOption: functional option to set the wheel unit
func WithWheelUnit(unit camera.WheelUnit) CollectorOption {
	return func(c *Collector) {
		c.wheelUnit = unit
	}
}

// WithKeyBinding maps a physical key code onto a semantic button, replacing
// any default binding for that code.
//
// Parameters:
//   - keyCode: the platform virtual key code
//   - button: the semantic button it should register as
//
// Returns:
//   - CollectorOption: functional option to add the binding
func WithKeyBinding(keyCode uint32, button camera.Button) CollectorOption {
	return func(c *Collector) {
		c.keyBindings[keyCode] = button
	}
}

// NewCollector creates a collector with the default WASD/QE/Space/Shift
// bindings.
//
// Parameters:
//   - options: functional options to adjust bindings or wheel unit
//
// Returns:
//   - *Collector: the configured collector
func NewCollector(options ...CollectorOption) *Collector {
	c := &Collector{
		keyBindings: map[uint32]camera.Button{
			common.KeyW:           camera.ButtonForward,
			common.KeyS:           camera.ButtonBackward,
			common.KeyA:           camera.ButtonLeft,
			common.KeyD:           camera.ButtonRight,
			common.KeySpace:       camera.ButtonUp,
			common.KeyE:           camera.ButtonUp,
			common.KeyLeftShift:   camera.ButtonDown,
			common.KeyQ:           camera.ButtonDown,
			common.KeyLeftControl: camera.ButtonRotateModifier,
		},
		wheelUnit: camera.WheelUnitLine,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Attach registers the collector's event handlers on a window. Existing
// handlers on the window are replaced.
//
// Parameters:
//   - w: the window to collect input from
func (c *Collector) Attach(w window.Window) {
	w.SetKeyDownCallback(c.KeyDown)
	w.SetKeyUpCallback(c.KeyUp)
	w.SetMouseMoveCallback(c.CursorMoved)
	w.SetScrollCallback(c.Scrolled)
	w.SetMouseDownCallback(func(button window.MouseButton, x, y float64) {
		c.MouseButton(button, true)
	})
	w.SetMouseUpCallback(func(button window.MouseButton, x, y float64) {
		c.MouseButton(button, false)
	})
}

// KeyDown registers a key press.
func (c *Collector) KeyDown(keyCode uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if button, ok := c.keyBindings[keyCode]; ok {
		c.held.SetPressed(button, true)
	}
}

// KeyUp registers a key release.
func (c *Collector) KeyUp(keyCode uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if button, ok := c.keyBindings[keyCode]; ok {
		c.held.SetPressed(button, false)
	}
}

// MouseButton registers a mouse button press or release.
func (c *Collector) MouseButton(button window.MouseButton, down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch button {
	case window.MouseButtonLeft:
		c.held.SetPressed(camera.ButtonMouseLeft, down)
	case window.MouseButtonRight:
		c.held.SetPressed(camera.ButtonMouseRight, down)
	case window.MouseButtonMiddle:
		c.held.SetPressed(camera.ButtonMouseMiddle, down)
	}
}

// CursorMoved accumulates cursor motion. The first position after
// construction only seeds the reference point so window entry does not
// register as a huge jump.
func (c *Collector) CursorMoved(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasCursor {
		c.cursorDelta.X += float32(x - c.lastX)
		c.cursorDelta.Y += float32(y - c.lastY)
	}
	c.lastX = x
	c.lastY = y
	c.hasCursor = true
}

// Scrolled accumulates scroll motion.
func (c *Collector) Scrolled(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wheelDelta.X += dx
	c.wheelDelta.Y += dy
}

// Take drains the accumulated motion into a snapshot. Held buttons carry
// over; deltas reset to zero.
//
// Returns:
//   - camera.InputSnapshot: everything gathered since the previous Take.
func (c *Collector) Take() camera.InputSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.held
	snap.CursorDelta = c.cursorDelta
	snap.WheelDelta = c.wheelDelta
	snap.WheelUnit = c.wheelUnit

	c.cursorDelta = common.Vec2{}
	c.wheelDelta = common.Vec2{}
	return snap
}
