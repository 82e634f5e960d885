package camera

import "errors"

var (
	// ErrDegenerateDirection is returned when an eye/target pair coincide or a
	// direction vector is too short to normalize.
	ErrDegenerateDirection = errors.New("camera: degenerate look direction")

	// ErrInvariantViolation is returned when a controller update would leave
	// the look direction parallel to the up axis.
	ErrInvariantViolation = errors.New("camera: look direction parallel to up axis")

	// ErrConfigOutOfRange is returned when a sensitivity, weight, or other
	// tunable is set outside its valid range.
	ErrConfigOutOfRange = errors.New("camera: config value out of range")
)
