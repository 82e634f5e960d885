package camera

import (
	"fmt"

	"github.com/mverity/smoothcam/common"
)

// Default tuning for an orbit controller.
const (
	DefaultOrbitRotateSensitivity    = 0.08
	DefaultOrbitTranslateSensitivity = 0.1
	DefaultOrbitZoomSensitivity      = 0.2
	DefaultOrbitPixelsPerLine        = 53.0
	DefaultOrbitSmoothingWeight      = 0.8
)

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitController)

// WithOrbitRotateSensitivity sets the per-axis orbit scale.
//
// Parameters:
//   - sensitivity: radians per cursor pixel, per axis
//
// Returns:
//   - OrbitControllerOption: functional option to set the rotate sensitivity
func WithOrbitRotateSensitivity(sensitivity common.Vec2) OrbitControllerOption {
	return func(c *orbitController) {
		c.rotateSensitivity = sensitivity
	}
}

// WithOrbitTranslateSensitivity sets the pivot drag scale.
//
// Parameters:
//   - sensitivity: world units per cursor pixel, per axis
//
// Returns:
//   - OrbitControllerOption: functional option to set the translate sensitivity
func WithOrbitTranslateSensitivity(sensitivity common.Vec2) OrbitControllerOption {
	return func(c *orbitController) {
		c.translateSensitivity = sensitivity
	}
}

// WithOrbitZoomSensitivity sets the fraction of the radius removed per wheel
// notch.
//
// Parameters:
//   - sensitivity: zoom fraction per wheel line, in [0, 1)
//
// Returns:
//   - OrbitControllerOption: functional option to set the zoom sensitivity
func WithOrbitZoomSensitivity(sensitivity float32) OrbitControllerOption {
	return func(c *orbitController) {
		c.zoomSensitivity = sensitivity
	}
}

// WithOrbitPixelsPerLine sets the divisor that converts pixel-unit scroll
// deltas into wheel lines.
//
// Parameters:
//   - pixels: pixels per wheel line, must be positive
//
// Returns:
//   - OrbitControllerOption: functional option to set the divisor
func WithOrbitPixelsPerLine(pixels float32) OrbitControllerOption {
	return func(c *orbitController) {
		c.pixelsPerLine = pixels
	}
}

// WithOrbitSmoothingWeight sets the suggested smoother lag weight.
//
// Parameters:
//   - weight: fraction of the previous pose retained per frame, in [0, 1)
//
// Returns:
//   - OrbitControllerOption: functional option to set the smoothing weight
func WithOrbitSmoothingWeight(weight float32) OrbitControllerOption {
	return func(c *orbitController) {
		c.smoothingWeight = weight
	}
}

// WithOrbitEnabled sets whether the controller starts enabled.
//
// Parameters:
//   - enabled: initial enabled state
//
// Returns:
//   - OrbitControllerOption: functional option to set the enabled state
func WithOrbitEnabled(enabled bool) OrbitControllerOption {
	return func(c *orbitController) {
		c.enabled = enabled
	}
}

// WithOrthographicZoom routes wheel zoom into an orthographic projection
// scale instead of the orbit radius. The actual starting scale is captured
// from the projection on first use via CaptureOrthoScale.
//
// Returns:
//   - OrbitControllerOption: functional option to enable orthographic zoom
func WithOrthographicZoom() OrbitControllerOption {
	return func(c *orbitController) {
		c.orthographic = true
	}
}

// NewOrbitController creates an orbit controller with sensible defaults,
// then applies any options.
//
// Parameters:
//   - options: functional options to override the defaults
//
// Returns:
//   - OrbitController: the configured controller
//   - error: ErrConfigOutOfRange when an option sets an invalid value
func NewOrbitController(options ...OrbitControllerOption) (OrbitController, error) {
	c := &orbitController{
		enabled:              true,
		rotateSensitivity:    common.Splat2(DefaultOrbitRotateSensitivity),
		translateSensitivity: common.Splat2(DefaultOrbitTranslateSensitivity),
		zoomSensitivity:      DefaultOrbitZoomSensitivity,
		pixelsPerLine:        DefaultOrbitPixelsPerLine,
		smoothingWeight:      DefaultOrbitSmoothingWeight,
	}
	for _, option := range options {
		option(c)
	}
	if err := validateOrbitConfig(c); err != nil {
		return nil, err
	}
	return c, nil
}

func validateOrbitConfig(c *orbitController) error {
	if c.rotateSensitivity.X < 0.0 || c.rotateSensitivity.Y < 0.0 {
		return fmt.Errorf("%w: rotate sensitivity %v must be non-negative", ErrConfigOutOfRange, c.rotateSensitivity)
	}
	if c.translateSensitivity.X < 0.0 || c.translateSensitivity.Y < 0.0 {
		return fmt.Errorf("%w: translate sensitivity %v must be non-negative", ErrConfigOutOfRange, c.translateSensitivity)
	}
	if c.zoomSensitivity < 0.0 || c.zoomSensitivity >= 1.0 {
		return fmt.Errorf("%w: zoom sensitivity %v not in [0, 1)", ErrConfigOutOfRange, c.zoomSensitivity)
	}
	if c.pixelsPerLine <= 0.0 {
		return fmt.Errorf("%w: pixels per line %v must be positive", ErrConfigOutOfRange, c.pixelsPerLine)
	}
	if c.smoothingWeight < 0.0 || c.smoothingWeight >= 1.0 {
		return fmt.Errorf("%w: smoothing weight %v not in [0, 1)", ErrConfigOutOfRange, c.smoothingWeight)
	}
	return nil
}
