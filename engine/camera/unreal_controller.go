package camera

import (
	"fmt"
	"sync"

	"github.com/mverity/smoothcam/common"
)

// Keyboard movement speed can be scrolled down to but not below this floor,
// so the keys never become completely inert.
const minKeyboardSensitivity = 0.01

// UnrealController is editor-style navigation driven by mouse button chords:
// left drag walks and turns, right drag looks around, middle drag (or left
// and right together) pans, and the wheel on its own dollies along the view.
// While any button chord is held, WASD/QE keys move the camera and wheel
// scroll retunes the keyboard speed on the fly.
type UnrealController interface {
	Controller

	// RotateSensitivity returns the per-axis cursor look scale.
	RotateSensitivity() common.Vec2
	// SetRotateSensitivity updates the look scale. Values must be non-negative.
	SetRotateSensitivity(sensitivity common.Vec2) error
	// MouseTranslateSensitivity returns the per-axis cursor pan scale.
	MouseTranslateSensitivity() common.Vec2
	// SetMouseTranslateSensitivity updates the pan scale. Values must be
	// non-negative.
	SetMouseTranslateSensitivity(sensitivity common.Vec2) error
	// WheelTranslateSensitivity returns the wheel dolly speed.
	WheelTranslateSensitivity() float32
	// SetWheelTranslateSensitivity updates the dolly speed. Must be
	// non-negative.
	SetWheelTranslateSensitivity(sensitivity float32) error
	// KeyboardSensitivity returns the current keyboard movement speed.
	KeyboardSensitivity() float32
	// SetKeyboardSensitivity updates the keyboard movement speed. Must be at
	// least the minimum floor.
	SetKeyboardSensitivity(sensitivity float32) error
	// KeyboardWheelSensitivity returns how strongly wheel scroll retunes the
	// keyboard speed while a chord is held.
	KeyboardWheelSensitivity() float32
	// SetKeyboardWheelSensitivity updates the retune strength. Must be
	// non-negative.
	SetKeyboardWheelSensitivity(sensitivity float32) error
	// PixelsPerLine returns the divisor used to turn pixel-unit scroll deltas
	// into wheel lines.
	PixelsPerLine() float32
	// SetPixelsPerLine updates the pixel-unit divisor. Must be positive.
	SetPixelsPerLine(pixels float32) error
	// SetSmoothingWeight updates the suggested smoother lag weight, in [0, 1).
	SetSmoothingWeight(weight float32) error
}

type unrealController struct {
	mu sync.Mutex

	enabled                   bool
	rotateSensitivity         common.Vec2
	mouseTranslateSensitivity common.Vec2
	wheelTranslateSensitivity float32
	keyboardSensitivity       float32
	keyboardWheelSensitivity  float32
	pixelsPerLine             float32
	smoothingWeight           float32
}

var _ UnrealController = &unrealController{}

// Kind identifies the movement style.
func (c *unrealController) Kind() ControllerKind {
	return KindUnreal
}

// Enabled reports whether the controller responds to input.
func (c *unrealController) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetEnabled toggles input response.
func (c *unrealController) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// SmoothingWeight is the suggested smoother lag weight.
func (c *unrealController) SmoothingWeight() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.smoothingWeight
}

// SetSmoothingWeight updates the suggested smoother lag weight.
func (c *unrealController) SetSmoothingWeight(weight float32) error {
	if weight < 0.0 || weight >= 1.0 {
		return fmt.Errorf("%w: smoothing weight %v not in [0, 1)", ErrConfigOutOfRange, weight)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smoothingWeight = weight
	return nil
}

// RotateSensitivity returns the cursor look scale.
func (c *unrealController) RotateSensitivity() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotateSensitivity
}

// SetRotateSensitivity updates the cursor look scale.
func (c *unrealController) SetRotateSensitivity(sensitivity common.Vec2) error {
	if sensitivity.X < 0.0 || sensitivity.Y < 0.0 {
		return fmt.Errorf("%w: rotate sensitivity %v must be non-negative", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotateSensitivity = sensitivity
	return nil
}

// MouseTranslateSensitivity returns the cursor pan scale.
func (c *unrealController) MouseTranslateSensitivity() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mouseTranslateSensitivity
}

// SetMouseTranslateSensitivity updates the cursor pan scale.
func (c *unrealController) SetMouseTranslateSensitivity(sensitivity common.Vec2) error {
	if sensitivity.X < 0.0 || sensitivity.Y < 0.0 {
		return fmt.Errorf("%w: mouse translate sensitivity %v must be non-negative", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mouseTranslateSensitivity = sensitivity
	return nil
}

// WheelTranslateSensitivity returns the wheel dolly speed.
func (c *unrealController) WheelTranslateSensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wheelTranslateSensitivity
}

// SetWheelTranslateSensitivity updates the wheel dolly speed.
func (c *unrealController) SetWheelTranslateSensitivity(sensitivity float32) error {
	if sensitivity < 0.0 {
		return fmt.Errorf("%w: wheel translate sensitivity %v must be non-negative", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wheelTranslateSensitivity = sensitivity
	return nil
}

// KeyboardSensitivity returns the current keyboard movement speed.
func (c *unrealController) KeyboardSensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyboardSensitivity
}

// SetKeyboardSensitivity updates the keyboard movement speed.
func (c *unrealController) SetKeyboardSensitivity(sensitivity float32) error {
	if sensitivity < minKeyboardSensitivity {
		return fmt.Errorf("%w: keyboard sensitivity %v below minimum %v", ErrConfigOutOfRange, sensitivity, float32(minKeyboardSensitivity))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyboardSensitivity = sensitivity
	return nil
}

// KeyboardWheelSensitivity returns the wheel retune strength.
func (c *unrealController) KeyboardWheelSensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyboardWheelSensitivity
}

// SetKeyboardWheelSensitivity updates the wheel retune strength.
func (c *unrealController) SetKeyboardWheelSensitivity(sensitivity float32) error {
	if sensitivity < 0.0 {
		return fmt.Errorf("%w: keyboard wheel sensitivity %v must be non-negative", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyboardWheelSensitivity = sensitivity
	return nil
}

// PixelsPerLine returns the pixel-unit scroll divisor.
func (c *unrealController) PixelsPerLine() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pixelsPerLine
}

// SetPixelsPerLine updates the pixel-unit scroll divisor.
func (c *unrealController) SetPixelsPerLine(pixels float32) error {
	if pixels <= 0.0 {
		return fmt.Errorf("%w: pixels per line %v must be positive", ErrConfigOutOfRange, pixels)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pixelsPerLine = pixels
	return nil
}

// MapInput resolves the mouse button chord into rotate, pan, and locomotion
// events. While a chord is held, direction keys contribute keyboard movement
// and wheel scroll retunes the keyboard speed, clamped at a small floor.
// With no chord held, wheel scroll alone dollies the camera.
func (c *unrealController) MapInput(snapshot *InputSnapshot) []ControlEvent {
	c.mu.Lock()
	enabled := c.enabled
	rotate := c.rotateSensitivity
	mouseTranslate := c.mouseTranslateSensitivity
	wheelTranslate := c.wheelTranslateSensitivity
	keyboard := c.keyboardSensitivity
	keyboardWheel := c.keyboardWheelSensitivity
	pixelsPerLine := c.pixelsPerLine
	c.mu.Unlock()

	if !enabled || snapshot == nil {
		return nil
	}

	left := snapshot.Pressed(ButtonMouseLeft)
	right := snapshot.Pressed(ButtonMouseRight)
	middle := snapshot.Pressed(ButtonMouseMiddle)

	wheel := snapshot.WheelDelta.X + snapshot.WheelDelta.Y
	if snapshot.WheelUnit == WheelUnitPixel {
		wheel /= pixelsPerLine
	}

	var panning common.Vec2
	var locomotion common.Vec2

	if left || right || middle {
		var panDir common.Vec2
		if snapshot.Pressed(ButtonLeft) {
			panDir.X -= 1.0
		}
		if snapshot.Pressed(ButtonRight) {
			panDir.X += 1.0
		}
		if snapshot.Pressed(ButtonUp) {
			panDir.Y += 1.0
		}
		if snapshot.Pressed(ButtonDown) {
			panDir.Y -= 1.0
		}
		var moveDir float32
		if snapshot.Pressed(ButtonForward) {
			moveDir += 1.0
		}
		if snapshot.Pressed(ButtonBackward) {
			moveDir -= 1.0
		}

		panning = panning.Add(panDir.Scale(keyboard))
		locomotion.Y += keyboard * moveDir

		// Scroll while a chord is held retunes the keyboard speed instead of
		// moving the camera.
		if wheel != 0.0 {
			keyboard += keyboardWheel * wheel
			if keyboard < minKeyboardSensitivity {
				keyboard = minKeyboardSensitivity
			}
			c.mu.Lock()
			c.keyboardSensitivity = keyboard
			c.mu.Unlock()
		}
	} else if wheel != 0.0 {
		locomotion.Y += wheelTranslate * wheel
	}

	var events []ControlEvent
	if right && !left && !middle {
		events = append(events, RotateEvent{Delta: rotate.MulEach(snapshot.CursorDelta)})
	}
	if middle || (left && right) {
		panning = panning.Add(mouseTranslate.MulEach(snapshot.CursorDelta))
	} else if left {
		locomotion.X += rotate.X * snapshot.CursorDelta.X
		locomotion.Y -= mouseTranslate.Y * snapshot.CursorDelta.Y
	}

	if panning.LengthSquared() > 0.0 {
		events = append(events, PanEvent{Delta: panning})
	}
	if locomotion.LengthSquared() > 0.0 {
		events = append(events, LocomotionEvent{Delta: locomotion})
	}
	return events
}

// Update applies events in arrival order: rotations adjust the look angles,
// pans slide the eye across the view plane, and locomotion turns while
// moving along the frame's look vector. The target is recomputed from the
// current radius and the new angles.
func (c *unrealController) Update(events []ControlEvent, dt float32, transform *LookTransform) error {
	if !c.Enabled() {
		return nil
	}

	working := *transform
	lookVector, err := working.LookDirection()
	if err != nil {
		return fmt.Errorf("unreal controller: %w", err)
	}
	angles, err := AnglesFromVector(lookVector)
	if err != nil {
		return fmt.Errorf("unreal controller: %w", err)
	}

	for _, event := range events {
		switch e := event.(type) {
		case RotateEvent:
			angles.AddYaw(dt * -e.Delta.X)
			angles.AddPitch(dt * -e.Delta.Y)
		case PanEvent:
			// The pan axis follows the yaw accumulated so far this frame,
			// so a rotation earlier in the same batch re-aims the slide.
			yawRight := common.RotateY(common.UnitX(), angles.Yaw())
			working.Eye = working.Eye.
				Add(yawRight.Scale(dt * -e.Delta.X)).
				Add(working.Up.Scale(dt * e.Delta.Y))
		case LocomotionEvent:
			angles.AddYaw(dt * -e.Delta.X)
			working.Eye = working.Eye.Add(lookVector.Scale(dt * e.Delta.Y))
		}
	}

	if err := angles.CheckNotLookingUp(); err != nil {
		return fmt.Errorf("unreal controller: %w", err)
	}

	working.Target = working.Eye.Add(angles.UnitVector().Scale(working.Radius()))
	*transform = working
	return nil
}
