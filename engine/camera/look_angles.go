package camera

import (
	"math"

	"github.com/mverity/smoothcam/common"
)

// pitchLimitEpsilon keeps pitch strictly away from the poles so the look
// direction can never become parallel to the up axis.
const pitchLimitEpsilon = 0.01

// LookAngles is a yaw/pitch decomposition of a look direction. Yaw is the
// rotation about the +Y axis measured from +Z, pitch the elevation above the
// horizontal plane. Pitch is clamped inside (-pi/2, pi/2) so a round trip
// through UnitVector is always well defined.
type LookAngles struct {
	yaw   float32
	pitch float32
}

// NewLookAngles creates a LookAngles from raw yaw and pitch values, applying
// the usual wrapping and clamping.
//
// Parameters:
//   - yaw: rotation about +Y in radians.
//   - pitch: elevation in radians, clamped inside (-pi/2, pi/2).
//
// Returns:
//   - LookAngles: the normalized angle pair.
func NewLookAngles(yaw, pitch float32) LookAngles {
	var a LookAngles
	a.SetYaw(yaw)
	a.SetPitch(pitch)
	return a
}

// AnglesFromVector decomposes a direction vector into yaw and pitch.
//
// Parameters:
//   - v: the direction to decompose. Need not be normalized.
//
// Returns:
//   - LookAngles: the decomposed angles.
//   - error: ErrDegenerateDirection when v is the zero vector.
func AnglesFromVector(v common.Vec3) (LookAngles, error) {
	if v.IsZero() {
		return LookAngles{}, ErrDegenerateDirection
	}

	horizontal := common.V3(v.X, 0.0, v.Z)
	if horizontal.IsZero() {
		// Looking straight along the up axis. Yaw is arbitrary; choose zero.
		pitch := float32(math.Pi / 2.0)
		if v.Y < 0.0 {
			pitch = -pitch
		}
		return NewLookAngles(0.0, pitch), nil
	}

	yaw := horizontal.AngleBetween(common.UnitZ())
	if v.X < 0.0 {
		yaw = -yaw
	}

	pitch := horizontal.AngleBetween(v)
	if v.Y < 0.0 {
		pitch = -pitch
	}

	return NewLookAngles(yaw, pitch), nil
}

// Yaw returns the rotation about +Y in radians.
func (a *LookAngles) Yaw() float32 {
	return a.yaw
}

// Pitch returns the elevation in radians.
func (a *LookAngles) Pitch() float32 {
	return a.pitch
}

// SetYaw sets the yaw, reduced modulo 2*pi.
func (a *LookAngles) SetYaw(yaw float32) {
	a.yaw = float32(math.Mod(float64(yaw), 2.0*math.Pi))
}

// SetPitch sets the pitch, clamped inside (-pi/2, pi/2) by a small epsilon.
func (a *LookAngles) SetPitch(pitch float32) {
	limit := float32(math.Pi/2.0) - pitchLimitEpsilon
	a.pitch = common.Clamp(pitch, -limit, limit)
}

// SetDirection points the angles along a direction vector.
//
// Parameters:
//   - v: the direction to look along. Need not be normalized.
//
// Returns:
//   - error: ErrDegenerateDirection when v is the zero vector.
func (a *LookAngles) SetDirection(v common.Vec3) error {
	decomposed, err := AnglesFromVector(v)
	if err != nil {
		return err
	}
	*a = decomposed
	return nil
}

// AddYaw adds a delta to the yaw, wrapping as SetYaw does.
func (a *LookAngles) AddYaw(delta float32) {
	a.SetYaw(a.yaw + delta)
}

// AddPitch adds a delta to the pitch, clamping as SetPitch does.
func (a *LookAngles) AddPitch(delta float32) {
	a.SetPitch(a.pitch + delta)
}

// UnitVector reconstructs the unit direction described by the angles: +Z
// rotated about +Y by yaw, then rotated about the pitched axis by pitch.
func (a *LookAngles) UnitVector() common.Vec3 {
	ray := common.RotateY(common.UnitZ(), a.yaw)
	pitchAxis := ray.Cross(common.UnitY())
	return common.RotateAboutAxis(ray, pitchAxis, a.pitch)
}

// CheckNotLookingUp verifies the reconstructed direction is not parallel to
// the up axis.
//
// Returns:
//   - error: ErrInvariantViolation when the direction and +Y are parallel.
func (a *LookAngles) CheckNotLookingUp() error {
	d := float64(a.UnitVector().Dot(common.UnitY()))
	if math.Abs(math.Abs(d)-1.0) < 1e-5 {
		return ErrInvariantViolation
	}
	return nil
}
