package camera

import (
	"fmt"

	"github.com/mverity/smoothcam/common"
)

// Default tuning for an unreal-style controller.
const (
	DefaultUnrealRotateSensitivity         = 0.2
	DefaultUnrealMouseTranslateSensitivity = 2.0
	DefaultUnrealWheelTranslateSensitivity = 50.0
	DefaultUnrealKeyboardSensitivity       = 10.0
	DefaultUnrealKeyboardWheelSensitivity  = 5.0
	DefaultUnrealPixelsPerLine             = 53.0
	DefaultUnrealSmoothingWeight           = 0.7
)

// UnrealControllerOption is a functional option for configuring an UnrealController.
type UnrealControllerOption func(*unrealController)

// WithUnrealRotateSensitivity sets the cursor look scale.
//
// Parameters:
//   - sensitivity: radians per cursor pixel, per axis
//
// Returns:
//   - UnrealControllerOption: functional option to set the rotate sensitivity
func WithUnrealRotateSensitivity(sensitivity common.Vec2) UnrealControllerOption {
	return func(c *unrealController) {
		c.rotateSensitivity = sensitivity
	}
}

// WithUnrealMouseTranslateSensitivity sets the cursor pan scale.
//
// Parameters:
//   - sensitivity: world units per cursor pixel, per axis
//
// Returns:
//   - UnrealControllerOption: functional option to set the pan sensitivity
func WithUnrealMouseTranslateSensitivity(sensitivity common.Vec2) UnrealControllerOption {
	return func(c *unrealController) {
		c.mouseTranslateSensitivity = sensitivity
	}
}

// WithUnrealWheelTranslateSensitivity sets the wheel dolly speed used when no
// mouse button is held.
//
// Parameters:
//   - sensitivity: world units per wheel line
//
// Returns:
//   - UnrealControllerOption: functional option to set the dolly speed
func WithUnrealWheelTranslateSensitivity(sensitivity float32) UnrealControllerOption {
	return func(c *unrealController) {
		c.wheelTranslateSensitivity = sensitivity
	}
}

// WithUnrealKeyboardSensitivity sets the starting keyboard movement speed.
//
// Parameters:
//   - sensitivity: world units per second per held key
//
// Returns:
//   - UnrealControllerOption: functional option to set the keyboard speed
func WithUnrealKeyboardSensitivity(sensitivity float32) UnrealControllerOption {
	return func(c *unrealController) {
		c.keyboardSensitivity = sensitivity
	}
}

// WithUnrealKeyboardWheelSensitivity sets how strongly wheel scroll retunes
// the keyboard speed while a mouse chord is held.
//
// Parameters:
//   - sensitivity: keyboard speed change per wheel line
//
// Returns:
//   - UnrealControllerOption: functional option to set the retune strength
func WithUnrealKeyboardWheelSensitivity(sensitivity float32) UnrealControllerOption {
	return func(c *unrealController) {
		c.keyboardWheelSensitivity = sensitivity
	}
}

// WithUnrealPixelsPerLine sets the divisor that converts pixel-unit scroll
// deltas into wheel lines.
//
// Parameters:
//   - pixels: pixels per wheel line, must be positive
//
// Returns:
//   - UnrealControllerOption: functional option to set the divisor
func WithUnrealPixelsPerLine(pixels float32) UnrealControllerOption {
	return func(c *unrealController) {
		c.pixelsPerLine = pixels
	}
}

// WithUnrealSmoothingWeight sets the suggested smoother lag weight.
//
// Parameters:
//   - weight: fraction of the previous pose retained per frame, in [0, 1)
//
// Returns:
//   - UnrealControllerOption: functional option to set the smoothing weight
func WithUnrealSmoothingWeight(weight float32) UnrealControllerOption {
	return func(c *unrealController) {
		c.smoothingWeight = weight
	}
}

// WithUnrealEnabled sets whether the controller starts enabled.
//
// Parameters:
//   - enabled: initial enabled state
//
// Returns:
//   - UnrealControllerOption: functional option to set the enabled state
func WithUnrealEnabled(enabled bool) UnrealControllerOption {
	return func(c *unrealController) {
		c.enabled = enabled
	}
}

// NewUnrealController creates an unreal-style controller with sensible
// defaults, then applies any options.
//
// Parameters:
//   - options: functional options to override the defaults
//
// Returns:
//   - UnrealController: the configured controller
//   - error: ErrConfigOutOfRange when an option sets an invalid value
func NewUnrealController(options ...UnrealControllerOption) (UnrealController, error) {
	c := &unrealController{
		enabled:                   true,
		rotateSensitivity:         common.Splat2(DefaultUnrealRotateSensitivity),
		mouseTranslateSensitivity: common.Splat2(DefaultUnrealMouseTranslateSensitivity),
		wheelTranslateSensitivity: DefaultUnrealWheelTranslateSensitivity,
		keyboardSensitivity:       DefaultUnrealKeyboardSensitivity,
		keyboardWheelSensitivity:  DefaultUnrealKeyboardWheelSensitivity,
		pixelsPerLine:             DefaultUnrealPixelsPerLine,
		smoothingWeight:           DefaultUnrealSmoothingWeight,
	}
	for _, option := range options {
		option(c)
	}
	if err := validateUnrealConfig(c); err != nil {
		return nil, err
	}
	return c, nil
}

func validateUnrealConfig(c *unrealController) error {
	if c.rotateSensitivity.X < 0.0 || c.rotateSensitivity.Y < 0.0 {
		return fmt.Errorf("%w: rotate sensitivity %v must be non-negative", ErrConfigOutOfRange, c.rotateSensitivity)
	}
	if c.mouseTranslateSensitivity.X < 0.0 || c.mouseTranslateSensitivity.Y < 0.0 {
		return fmt.Errorf("%w: mouse translate sensitivity %v must be non-negative", ErrConfigOutOfRange, c.mouseTranslateSensitivity)
	}
	if c.wheelTranslateSensitivity < 0.0 {
		return fmt.Errorf("%w: wheel translate sensitivity %v must be non-negative", ErrConfigOutOfRange, c.wheelTranslateSensitivity)
	}
	if c.keyboardSensitivity < minKeyboardSensitivity {
		return fmt.Errorf("%w: keyboard sensitivity %v below minimum %v", ErrConfigOutOfRange, c.keyboardSensitivity, float32(minKeyboardSensitivity))
	}
	if c.keyboardWheelSensitivity < 0.0 {
		return fmt.Errorf("%w: keyboard wheel sensitivity %v must be non-negative", ErrConfigOutOfRange, c.keyboardWheelSensitivity)
	}
	if c.pixelsPerLine <= 0.0 {
		return fmt.Errorf("%w: pixels per line %v must be positive", ErrConfigOutOfRange, c.pixelsPerLine)
	}
	if c.smoothingWeight < 0.0 || c.smoothingWeight >= 1.0 {
		return fmt.Errorf("%w: smoothing weight %v not in [0, 1)", ErrConfigOutOfRange, c.smoothingWeight)
	}
	return nil
}
