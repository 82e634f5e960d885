package camera

import (
	"fmt"
	"sync"

	"github.com/mverity/smoothcam/common"
)

// FpsController is first-person movement: cursor motion turns the camera and
// held direction buttons fly the eye along its yaw-aligned axes. The target
// is recomputed each update so the look angles survive the translation.
type FpsController interface {
	Controller

	// RotateSensitivity returns the per-axis cursor scale in radians per pixel.
	RotateSensitivity() common.Vec2
	// SetRotateSensitivity updates the cursor scale. Values must be non-negative.
	SetRotateSensitivity(sensitivity common.Vec2) error
	// TranslateSensitivity returns the fly speed in world units per second.
	TranslateSensitivity() float32
	// SetTranslateSensitivity updates the fly speed. Must be non-negative.
	SetTranslateSensitivity(sensitivity float32) error
	// SetSmoothingWeight updates the suggested smoother lag weight, in [0, 1).
	SetSmoothingWeight(weight float32) error
}

type fpsController struct {
	mu sync.Mutex

	enabled              bool
	rotateSensitivity    common.Vec2
	translateSensitivity float32
	smoothingWeight      float32
}

var _ FpsController = &fpsController{}

// Kind identifies the movement style.
func (c *fpsController) Kind() ControllerKind {
	return KindFPS
}

// Enabled reports whether the controller responds to input.
func (c *fpsController) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetEnabled toggles input response.
func (c *fpsController) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// SmoothingWeight is the suggested smoother lag weight.
func (c *fpsController) SmoothingWeight() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.smoothingWeight
}

// SetSmoothingWeight updates the suggested smoother lag weight.
func (c *fpsController) SetSmoothingWeight(weight float32) error {
	if weight < 0.0 || weight >= 1.0 {
		return fmt.Errorf("%w: smoothing weight %v not in [0, 1)", ErrConfigOutOfRange, weight)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smoothingWeight = weight
	return nil
}

// RotateSensitivity returns the per-axis cursor scale.
func (c *fpsController) RotateSensitivity() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotateSensitivity
}

// SetRotateSensitivity updates the cursor scale.
func (c *fpsController) SetRotateSensitivity(sensitivity common.Vec2) error {
	if sensitivity.X < 0.0 || sensitivity.Y < 0.0 {
		return fmt.Errorf("%w: rotate sensitivity %v must be non-negative", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotateSensitivity = sensitivity
	return nil
}

// TranslateSensitivity returns the fly speed.
func (c *fpsController) TranslateSensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translateSensitivity
}

// SetTranslateSensitivity updates the fly speed.
func (c *fpsController) SetTranslateSensitivity(sensitivity float32) error {
	if sensitivity < 0.0 {
		return fmt.Errorf("%w: translate sensitivity %v must be non-negative", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.translateSensitivity = sensitivity
	return nil
}

// MapInput translates one frame of raw input into rotate and translate
// events. Held direction buttons each contribute an axis-aligned unit
// translation scaled by the fly speed.
func (c *fpsController) MapInput(snapshot *InputSnapshot) []ControlEvent {
	c.mu.Lock()
	enabled := c.enabled
	rotate := c.rotateSensitivity
	translate := c.translateSensitivity
	c.mu.Unlock()

	if !enabled || snapshot == nil {
		return nil
	}

	events := []ControlEvent{
		RotateEvent{Delta: rotate.MulEach(snapshot.CursorDelta)},
	}

	directions := []struct {
		button Button
		axis   common.Vec3
	}{
		{ButtonForward, common.UnitZ()},
		{ButtonLeft, common.UnitX()},
		{ButtonBackward, common.UnitZ().Negate()},
		{ButtonRight, common.UnitX().Negate()},
		{ButtonDown, common.UnitY().Negate()},
		{ButtonUp, common.UnitY()},
	}
	for _, d := range directions {
		if snapshot.Pressed(d.button) {
			events = append(events, TranslateEyeEvent{Delta: d.axis.Scale(translate)})
		}
	}
	return events
}

// Update applies events in arrival order: rotations adjust the look angles,
// translations move the eye along the frame's yaw-aligned axes, then the
// target is recomputed from the current radius and the new angles.
func (c *fpsController) Update(events []ControlEvent, dt float32, transform *LookTransform) error {
	if !c.Enabled() {
		return nil
	}

	working := *transform
	dir, err := working.LookDirection()
	if err != nil {
		return fmt.Errorf("fps controller: %w", err)
	}
	angles, err := AnglesFromVector(dir)
	if err != nil {
		return fmt.Errorf("fps controller: %w", err)
	}

	// Translation axes are fixed for the frame: the yaw rotation applied to
	// the world axes, so vertical motion stays vertical regardless of pitch.
	yaw := angles.Yaw()
	rotX := common.RotateY(common.UnitX(), yaw)
	rotY := common.UnitY()
	rotZ := common.RotateY(common.UnitZ(), yaw)

	for _, event := range events {
		switch e := event.(type) {
		case RotateEvent:
			angles.AddYaw(dt * -e.Delta.X)
			angles.AddPitch(dt * -e.Delta.Y)
		case TranslateEyeEvent:
			working.Eye = working.Eye.
				Add(rotX.Scale(dt * e.Delta.X)).
				Add(rotY.Scale(dt * e.Delta.Y)).
				Add(rotZ.Scale(dt * e.Delta.Z))
		}
	}

	if err := angles.CheckNotLookingUp(); err != nil {
		return fmt.Errorf("fps controller: %w", err)
	}

	working.Target = working.Eye.Add(angles.UnitVector().Scale(working.Radius()))
	*transform = working
	return nil
}
