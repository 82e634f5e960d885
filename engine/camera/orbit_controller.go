package camera

import (
	"fmt"
	"sync"

	"github.com/mverity/smoothcam/common"
)

// Orbit radius is clamped to this range so zooming can neither collapse the
// eye onto the target nor fling it to infinity.
const (
	MinOrbitRadius = 0.001
	MaxOrbitRadius = 1000000.0
)

// OrbitController circles the eye around a pivot target. Holding the rotate
// modifier and dragging orbits, dragging with the right mouse button pans the
// pivot across the view plane, and the wheel zooms by scaling the radius.
type OrbitController interface {
	Controller

	// RotateSensitivity returns the per-axis orbit scale in radians per pixel.
	RotateSensitivity() common.Vec2
	// SetRotateSensitivity updates the orbit scale. Values must be non-negative.
	SetRotateSensitivity(sensitivity common.Vec2) error
	// TranslateSensitivity returns the per-axis pivot drag scale.
	TranslateSensitivity() common.Vec2
	// SetTranslateSensitivity updates the pivot drag scale. Values must be
	// non-negative.
	SetTranslateSensitivity(sensitivity common.Vec2) error
	// ZoomSensitivity returns the per-notch zoom fraction.
	ZoomSensitivity() float32
	// SetZoomSensitivity updates the zoom fraction, in [0, 1).
	SetZoomSensitivity(sensitivity float32) error
	// PixelsPerLine returns the divisor used to turn pixel-unit scroll deltas
	// into wheel lines.
	PixelsPerLine() float32
	// SetPixelsPerLine updates the pixel-unit divisor. Must be positive.
	SetPixelsPerLine(pixels float32) error
	// SetSmoothingWeight updates the suggested smoother lag weight, in [0, 1).
	SetSmoothingWeight(weight float32) error

	// Orthographic reports whether zoom drives an orthographic projection
	// scale instead of the orbit radius.
	Orthographic() bool
	// CaptureOrthoScale records the projection's initial scale. Only the
	// first call has any effect.
	CaptureOrthoScale(scale float32)
	// OrthoScale returns the current orthographic scale.
	OrthoScale() float32
}

type orbitController struct {
	mu sync.Mutex

	enabled              bool
	rotateSensitivity    common.Vec2
	translateSensitivity common.Vec2
	zoomSensitivity      float32
	pixelsPerLine        float32
	smoothingWeight      float32

	orthographic       bool
	orthoScale         float32
	orthoScaleCaptured bool
}

var _ OrbitController = &orbitController{}

// Kind identifies the movement style.
func (c *orbitController) Kind() ControllerKind {
	return KindOrbit
}

// Enabled reports whether the controller responds to input.
func (c *orbitController) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetEnabled toggles input response.
func (c *orbitController) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// SmoothingWeight is the suggested smoother lag weight.
func (c *orbitController) SmoothingWeight() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.smoothingWeight
}

// SetSmoothingWeight updates the suggested smoother lag weight.
func (c *orbitController) SetSmoothingWeight(weight float32) error {
	if weight < 0.0 || weight >= 1.0 {
		return fmt.Errorf("%w: smoothing weight %v not in [0, 1)", ErrConfigOutOfRange, weight)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smoothingWeight = weight
	return nil
}

// RotateSensitivity returns the per-axis orbit scale.
func (c *orbitController) RotateSensitivity() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotateSensitivity
}

// SetRotateSensitivity updates the orbit scale.
func (c *orbitController) SetRotateSensitivity(sensitivity common.Vec2) error {
	if sensitivity.X < 0.0 || sensitivity.Y < 0.0 {
		return fmt.Errorf("%w: rotate sensitivity %v must be non-negative", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotateSensitivity = sensitivity
	return nil
}

// TranslateSensitivity returns the pivot drag scale.
func (c *orbitController) TranslateSensitivity() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translateSensitivity
}

// SetTranslateSensitivity updates the pivot drag scale.
func (c *orbitController) SetTranslateSensitivity(sensitivity common.Vec2) error {
	if sensitivity.X < 0.0 || sensitivity.Y < 0.0 {
		return fmt.Errorf("%w: translate sensitivity %v must be non-negative", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.translateSensitivity = sensitivity
	return nil
}

// ZoomSensitivity returns the per-notch zoom fraction.
func (c *orbitController) ZoomSensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoomSensitivity
}

// SetZoomSensitivity updates the zoom fraction.
func (c *orbitController) SetZoomSensitivity(sensitivity float32) error {
	if sensitivity < 0.0 || sensitivity >= 1.0 {
		return fmt.Errorf("%w: zoom sensitivity %v not in [0, 1)", ErrConfigOutOfRange, sensitivity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoomSensitivity = sensitivity
	return nil
}

// PixelsPerLine returns the pixel-unit scroll divisor.
func (c *orbitController) PixelsPerLine() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pixelsPerLine
}

// SetPixelsPerLine updates the pixel-unit scroll divisor.
func (c *orbitController) SetPixelsPerLine(pixels float32) error {
	if pixels <= 0.0 {
		return fmt.Errorf("%w: pixels per line %v must be positive", ErrConfigOutOfRange, pixels)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pixelsPerLine = pixels
	return nil
}

// Orthographic reports whether zoom drives an orthographic scale.
func (c *orbitController) Orthographic() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orthographic
}

// CaptureOrthoScale records the projection's initial scale exactly once.
func (c *orbitController) CaptureOrthoScale(scale float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orthoScaleCaptured {
		return
	}
	c.orthoScale = scale
	c.orthoScaleCaptured = true
}

// OrthoScale returns the current orthographic scale.
func (c *orbitController) OrthoScale() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orthoScale
}

// MapInput translates one frame of raw input: modifier-drag orbits,
// right-button drag pans the pivot, and scroll produces a single
// multiplicative zoom scalar. Pixel-unit scroll is normalized to wheel lines
// first.
func (c *orbitController) MapInput(snapshot *InputSnapshot) []ControlEvent {
	c.mu.Lock()
	enabled := c.enabled
	rotate := c.rotateSensitivity
	translate := c.translateSensitivity
	zoom := c.zoomSensitivity
	pixelsPerLine := c.pixelsPerLine
	c.mu.Unlock()

	if !enabled || snapshot == nil {
		return nil
	}

	var events []ControlEvent
	if snapshot.Pressed(ButtonRotateModifier) {
		events = append(events, OrbitEvent{Delta: rotate.MulEach(snapshot.CursorDelta)})
	}
	if snapshot.Pressed(ButtonMouseRight) {
		events = append(events, TranslateTargetEvent{Delta: translate.MulEach(snapshot.CursorDelta)})
	}

	amount := snapshot.WheelDelta.Y
	if snapshot.WheelUnit == WheelUnitPixel {
		amount /= pixelsPerLine
	}
	events = append(events, ZoomEvent{Scalar: 1.0 - amount*zoom})
	return events
}

// Update applies events in arrival order. Orbit deltas adjust the look
// angles of the negated look direction, pivot drags slide the target across
// the view plane, and zoom scalars multiply into the radius, clamped to
// [MinOrbitRadius, MaxOrbitRadius]. In orthographic mode the zoom product
// scales the projection instead and the radius is left alone.
func (c *orbitController) Update(events []ControlEvent, dt float32, transform *LookTransform) error {
	if !c.Enabled() {
		return nil
	}

	working := *transform
	dir, err := working.LookDirection()
	if err != nil {
		return fmt.Errorf("orbit controller: %w", err)
	}
	// Angles describe the target-to-eye ray so yaw/pitch move the eye around
	// the pivot rather than the pivot around the eye.
	angles, err := AnglesFromVector(dir.Negate())
	if err != nil {
		return fmt.Errorf("orbit controller: %w", err)
	}

	right, camUp, _ := common.CameraBasis(working.Eye, working.Target, working.Up)

	c.mu.Lock()
	orthographic := c.orthographic
	orthoScale := c.orthoScale
	c.mu.Unlock()

	// Radius is captured before any target pan so dragging the pivot
	// carries the eye along at a fixed distance.
	radius := working.Radius()

	radiusScalar := float32(1.0)
	for _, event := range events {
		switch e := event.(type) {
		case OrbitEvent:
			angles.AddYaw(dt * -e.Delta.X)
			angles.AddPitch(dt * e.Delta.Y)
		case TranslateTargetEvent:
			delta := e.Delta
			if orthographic {
				delta = delta.Scale(orthoScale * 0.5)
			}
			working.Target = working.Target.
				Add(right.Negate().Scale(dt * delta.X)).
				Add(camUp.Scale(dt * delta.Y))
		case ZoomEvent:
			radiusScalar *= e.Scalar
		}
	}

	if err := angles.CheckNotLookingUp(); err != nil {
		return fmt.Errorf("orbit controller: %w", err)
	}

	if orthographic {
		scale := common.Clamp(radiusScalar*orthoScale, MinOrbitRadius, MaxOrbitRadius)
		c.mu.Lock()
		c.orthoScale = scale
		c.mu.Unlock()
	} else {
		radius = common.Clamp(radiusScalar*radius, MinOrbitRadius, MaxOrbitRadius)
	}
	working.Eye = working.Target.Add(angles.UnitVector().Scale(radius))

	*transform = working
	return nil
}
