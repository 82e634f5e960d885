package camera

import (
	"fmt"

	"github.com/mverity/smoothcam/common"
)

// Default tuning for a first-person controller.
const (
	DefaultFpsRotateSensitivity    = 0.2
	DefaultFpsTranslateSensitivity = 2.0
	DefaultFpsSmoothingWeight      = 0.9
)

// FpsControllerOption is a functional option for configuring an FpsController.
type FpsControllerOption func(*fpsController)

// WithFpsRotateSensitivity sets the per-axis cursor scale.
//
// Parameters:
//   - sensitivity: radians per cursor pixel, per axis
//
// Returns:
//   - FpsControllerOption: functional option to set the rotate sensitivity
func WithFpsRotateSensitivity(sensitivity common.Vec2) FpsControllerOption {
	return func(c *fpsController) {
		c.rotateSensitivity = sensitivity
	}
}

// WithFpsTranslateSensitivity sets the fly speed.
//
// Parameters:
//   - sensitivity: world units per second per held direction button
//
// Returns:
//   - FpsControllerOption: functional option to set the translate sensitivity
func WithFpsTranslateSensitivity(sensitivity float32) FpsControllerOption {
	return func(c *fpsController) {
		c.translateSensitivity = sensitivity
	}
}

// WithFpsSmoothingWeight sets the suggested smoother lag weight.
//
// Parameters:
//   - weight: fraction of the previous pose retained per frame, in [0, 1)
//
// Returns:
//   - FpsControllerOption: functional option to set the smoothing weight
func WithFpsSmoothingWeight(weight float32) FpsControllerOption {
	return func(c *fpsController) {
		c.smoothingWeight = weight
	}
}

// WithFpsEnabled sets whether the controller starts enabled.
//
// Parameters:
//   - enabled: initial enabled state
//
// Returns:
//   - FpsControllerOption: functional option to set the enabled state
func WithFpsEnabled(enabled bool) FpsControllerOption {
	return func(c *fpsController) {
		c.enabled = enabled
	}
}

// NewFpsController creates a first-person controller with sensible defaults,
// then applies any options.
//
// Parameters:
//   - options: functional options to override the defaults
//
// Returns:
//   - FpsController: the configured controller
//   - error: ErrConfigOutOfRange when an option sets an invalid value
func NewFpsController(options ...FpsControllerOption) (FpsController, error) {
	c := &fpsController{
		enabled:              true,
		rotateSensitivity:    common.Splat2(DefaultFpsRotateSensitivity),
		translateSensitivity: DefaultFpsTranslateSensitivity,
		smoothingWeight:      DefaultFpsSmoothingWeight,
	}
	for _, option := range options {
		option(c)
	}
	if err := validateFpsConfig(c); err != nil {
		return nil, err
	}
	return c, nil
}

func validateFpsConfig(c *fpsController) error {
	if c.rotateSensitivity.X < 0.0 || c.rotateSensitivity.Y < 0.0 {
		return fmt.Errorf("%w: rotate sensitivity %v must be non-negative", ErrConfigOutOfRange, c.rotateSensitivity)
	}
	if c.translateSensitivity < 0.0 {
		return fmt.Errorf("%w: translate sensitivity %v must be non-negative", ErrConfigOutOfRange, c.translateSensitivity)
	}
	if c.smoothingWeight < 0.0 || c.smoothingWeight >= 1.0 {
		return fmt.Errorf("%w: smoothing weight %v not in [0, 1)", ErrConfigOutOfRange, c.smoothingWeight)
	}
	return nil
}
