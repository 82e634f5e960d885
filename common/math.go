package common

import "math"

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space convention with depth in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Orthographic creates an orthographic projection matrix for the WebGPU
// [0, 1] depth convention. The scale parameter is the half-height of the
// view volume; the half-width is scale*aspect.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - scale: half-height of the view volume in world units
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance (must be > near)
func Orthographic(out []float32, scale, aspect, near, far float32) {
	Identity(out)

	halfW := scale * aspect
	halfH := scale

	out[0] = 1.0 / halfW
	out[5] = 1.0 / halfH
	out[10] = 1.0 / (near - far)
	out[14] = near / (near - far)
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically +Y)
func LookAt(out []float32, eye, center, up Vec3) {
	z := eye.Sub(center)
	if z.LengthSquared() == 0 {
		z = UnitZ()
	}
	z, _ = z.Normalize()

	x := up.Cross(z)
	if x.LengthSquared() == 0 {
		x = UnitX()
	}
	x, _ = x.Normalize()

	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// CameraBasis returns the right, up, and forward axes of the look-at frame
// defined by eye, center, and up. These match the rows of the LookAt view
// matrix (forward = -z). All axes are zero when eye and center coincide.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation
//
// Returns:
//   - right, camUp, forward: the orthonormal camera axes in world space
func CameraBasis(eye, center, up Vec3) (right, camUp, forward Vec3) {
	back, ok := eye.Sub(center).Normalize()
	if !ok {
		return
	}
	right, ok = up.Cross(back).Normalize()
	if !ok {
		return
	}
	camUp = back.Cross(right)
	forward = back.Negate()
	return
}

// RotateY rotates v about the +Y axis by angle radians.
//
// Parameters:
//   - v: the vector to rotate
//   - angle: rotation angle in radians (right-handed about +Y)
//
// Returns:
//   - Vec3: the rotated vector
func RotateY(v Vec3, angle float32) Vec3 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	return Vec3{
		X: c*v.X + s*v.Z,
		Y: v.Y,
		Z: -s*v.X + c*v.Z,
	}
}

// Clamp limits v to the inclusive range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RotateAboutAxis rotates v about an arbitrary axis by angle radians using
// the Rodrigues rotation formula. The axis does not need to be normalized;
// a near-zero axis returns v unchanged.
//
// Parameters:
//   - v: the vector to rotate
//   - axis: the rotation axis
//   - angle: rotation angle in radians (right-handed about the axis)
//
// Returns:
//   - Vec3: the rotated vector
func RotateAboutAxis(v, axis Vec3, angle float32) Vec3 {
	n, ok := axis.Normalize()
	if !ok {
		return v
	}
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	// v*cos + (n × v)*sin + n*(n·v)*(1-cos)
	return v.Scale(c).
		Add(n.Cross(v).Scale(s)).
		Add(n.Scale(n.Dot(v) * (1 - c)))
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - posX, posY, posZ: translation in world space
//   - rotX, rotY, rotZ: rotation angles in radians around each axis
//   - scaleX, scaleY, scaleZ: scale factors along each axis
func BuildModelMatrix(out []float32, posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ float32) {
	cx := float32(math.Cos(float64(rotX)))
	sx := float32(math.Sin(float64(rotX)))
	cy := float32(math.Cos(float64(rotY)))
	sy := float32(math.Sin(float64(rotY)))
	cz := float32(math.Cos(float64(rotZ)))
	sz := float32(math.Sin(float64(rotZ)))

	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scaleX
	out[1] = (cx * sz) * scaleX
	out[2] = (-sy*cz + cy*sx*sz) * scaleX
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scaleY
	out[5] = (cx * cz) * scaleY
	out[6] = (sy*sz + cy*sx*cz) * scaleY
	out[7] = 0

	out[8] = (sy * cx) * scaleZ
	out[9] = (-sx) * scaleZ
	out[10] = (cy * cx) * scaleZ
	out[11] = 0

	out[12] = posX
	out[13] = posY
	out[14] = posZ
	out[15] = 1
}
