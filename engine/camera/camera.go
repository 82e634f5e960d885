package camera

import (
	"math"
	"sync"

	"github.com/mverity/smoothcam/common"
)

// Projection selects how the camera maps view space to clip space.
type Projection uint8

const (
	// ProjectionPerspective maps through a perspective frustum.
	ProjectionPerspective Projection = iota
	// ProjectionOrthographic maps through a scale-driven orthographic volume.
	ProjectionOrthographic
)

type cameraImpl struct {
	mu *sync.Mutex

	projection Projection
	fov        float32
	orthoScale float32
	aspect     float32
	near       float32
	far        float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	rig *Rig
}

// Camera holds projection settings and computes view/projection matrices
// from a presented LookTransform each frame via ApplyTransform.
type Camera interface {
	// Projection returns the active projection mode.
	//
	// Returns:
	//   - Projection: perspective or orthographic
	Projection() Projection

	// Fov returns the field of view in radians. Only meaningful for
	// perspective projection.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// OrthoScale returns the orthographic half-height in world units. Only
	// meaningful for orthographic projection.
	//
	// Returns:
	//   - float32: the orthographic scale
	OrthoScale() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Rig returns the attached rig.
	// Returns nil if no rig is attached.
	//
	// Returns:
	//   - *Rig: the attached rig or nil
	Rig() *Rig

	// ApplyTransform recomputes the view and combined matrices from a
	// presented pose. Called once per frame by whatever drives the rig.
	//
	// Parameters:
	//   - transform: the pose to present
	//
	// Returns:
	//   - error: ErrDegenerateDirection when the pose has no valid direction
	ApplyTransform(transform LookTransform) error

	// SetFov sets the field of view in radians and recomputes the projection.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetOrthoScale sets the orthographic half-height and recomputes the
	// projection.
	//
	// Parameters:
	//   - scale: orthographic half-height in world units
	SetOrthoScale(scale float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes the projection.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes the projection.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes the projection.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetRig attaches a rig to the camera.
	//
	// Parameters:
	//   - rig: the rig to attach
	SetRig(rig *Rig)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		projection:           ProjectionPerspective,
		fov:                  45.0 * (math.Pi / 180.0), // radians
		orthoScale:           5.0,
		aspect:               1.0,
		near:                 0.1,
		far:                  100.0,
		viewMatrix:           [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		projectionMatrix:     [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		viewProjectionMatrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	}
	for _, option := range options {
		option(c)
	}
	c.updateProjection()
	if c.rig != nil {
		tfm := c.rig.Transform()
		if err := tfm.ViewMatrix(c.viewMatrix[:]); err == nil {
			common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
		}
	}
	return c
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) OrthoScale() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orthoScale
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Rig() *Rig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rig
}

func (c *cameraImpl) SetRig(rig *Rig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rig = rig
}

func (c *cameraImpl) ApplyTransform(transform LookTransform) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := transform.ViewMatrix(c.viewMatrix[:]); err != nil {
		return err
	}
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	return nil
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) SetOrthoScale(scale float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orthoScale = scale
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateProjection()
}

// updateProjection recalculates the projection and combined matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	switch c.projection {
	case ProjectionOrthographic:
		common.Orthographic(c.projectionMatrix[:], c.orthoScale, c.aspect, c.near, c.far)
	default:
		common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	}
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
