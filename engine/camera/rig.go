package camera

import (
	"sync"

	"github.com/mverity/smoothcam/common"
)

// Rig bundles a controller, the LookTransform it drives, and the smoother
// that filters the result. A rig without a controller is passive: its
// transform only changes through SetTransform or EditTransform, but it still
// runs through the smoother each frame.
type Rig struct {
	mu          sync.Mutex
	controller  Controller
	transform   LookTransform
	smoother    TransformSmoother
	lastEnabled bool
}

// RigOption is a functional option for configuring a Rig.
type RigOption func(*Rig)

// WithSmoother replaces the rig's default exponential smoother.
//
// Parameters:
//   - smoother: the smoother to use, or nil to disable smoothing entirely
//
// Returns:
//   - RigOption: functional option to set the smoother
func WithSmoother(smoother TransformSmoother) RigOption {
	return func(r *Rig) {
		r.smoother = smoother
	}
}

// NewRig creates a rig around a controller and an initial pose. Unless
// overridden, the rig smooths with an exponential Smoother using the
// controller's suggested weight; a nil controller gets no smoother.
//
// Parameters:
//   - controller: the controller driving the rig, or nil for a passive rig.
//   - eye: initial camera position.
//   - target: initial look-at point.
//   - up: up reference axis, usually common.UnitY().
//   - options: functional options.
//
// Returns:
//   - *Rig: the assembled rig.
func NewRig(controller Controller, eye, target, up common.Vec3, options ...RigOption) *Rig {
	r := &Rig{
		controller: controller,
		transform:  NewLookTransform(eye, target, up),
	}
	if controller != nil {
		r.lastEnabled = controller.Enabled()
		// Suggested weights are validated by the controller builders, so
		// this cannot fail.
		r.smoother, _ = NewSmoother(controller.SmoothingWeight())
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Controller returns the rig's controller, which may be nil.
func (r *Rig) Controller() Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.controller
}

// Smoother returns the rig's smoother, which may be nil.
func (r *Rig) Smoother() TransformSmoother {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.smoother
}

// Transform returns a copy of the raw, unsmoothed transform.
func (r *Rig) Transform() LookTransform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transform
}

// SetTransform replaces the raw transform.
func (r *Rig) SetTransform(transform LookTransform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transform = transform
}

// EditTransform mutates the raw transform in place under the rig's lock.
//
// Parameters:
//   - edit: callback receiving the transform to mutate.
func (r *Rig) EditTransform(edit func(*LookTransform)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	edit(&r.transform)
}

// Step advances the rig one frame: it propagates controller enabled-state
// changes to the smoother, maps the snapshot into control events, applies
// them to the raw transform, and returns the smoothed pose the camera should
// present.
//
// When the controller update fails the raw transform is left unchanged for
// the frame and the error is returned alongside the still-smoothed pose, so
// one misbehaving rig cannot freeze the presented stream.
//
// Parameters:
//   - snapshot: this frame's input, or nil when the rig is not the active
//     input consumer.
//   - dt: frame delta in seconds. Zero is a valid no-op.
//
// Returns:
//   - LookTransform: the pose to present this frame.
//   - error: the controller update error, if any.
func (r *Rig) Step(snapshot *InputSnapshot, dt float32) (LookTransform, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stepErr error
	if r.controller != nil {
		enabled := r.controller.Enabled()
		if enabled != r.lastEnabled {
			if r.smoother != nil {
				r.smoother.SetEnabled(enabled)
			}
			r.lastEnabled = enabled
		}

		events := r.controller.MapInput(snapshot)
		if enabled {
			stepErr = r.controller.Update(events, dt, &r.transform)
		}
	}

	presented := r.transform
	if r.smoother != nil {
		presented = r.smoother.SmoothTransform(r.transform)
	}
	return presented, stepErr
}
