package camera

import (
	"github.com/mverity/smoothcam/common"
)

// LookTransform is a camera pose expressed as an eye position looking at a
// target, with an up reference axis. It is a plain value; controllers mutate
// it and smoothers interpolate between successive values.
type LookTransform struct {
	Eye    common.Vec3
	Target common.Vec3
	Up     common.Vec3
}

// NewLookTransform creates a LookTransform.
//
// Parameters:
//   - eye: the camera position in world space.
//   - target: the point being looked at.
//   - up: the up reference axis, usually common.UnitY().
//
// Returns:
//   - LookTransform: the assembled pose.
func NewLookTransform(eye, target, up common.Vec3) LookTransform {
	return LookTransform{Eye: eye, Target: target, Up: up}
}

// Radius returns the distance from eye to target.
func (t *LookTransform) Radius() float32 {
	return t.Target.Sub(t.Eye).Length()
}

// LookDirection returns the unit vector from eye toward target.
//
// Returns:
//   - common.Vec3: the normalized direction.
//   - error: ErrDegenerateDirection when eye and target coincide.
func (t *LookTransform) LookDirection() (common.Vec3, error) {
	dir, ok := t.Target.Sub(t.Eye).Normalize()
	if !ok {
		return common.Vec3{}, ErrDegenerateDirection
	}
	return dir, nil
}

// ViewMatrix writes the column-major view matrix for this pose into out.
// The matrix is built looking from the eye toward eye plus the unit look
// direction rather than toward the raw target, which keeps precision stable
// when the target is far away.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements).
//
// Returns:
//   - error: ErrDegenerateDirection when eye and target coincide.
func (t *LookTransform) ViewMatrix(out []float32) error {
	dir, err := t.LookDirection()
	if err != nil {
		return err
	}
	common.LookAt(out, t.Eye, t.Eye.Add(dir), t.Up)
	return nil
}
