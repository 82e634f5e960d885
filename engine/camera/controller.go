package camera

import (
	"github.com/mverity/smoothcam/common"
)

// ControllerKind identifies a controller's movement style.
type ControllerKind uint8

const (
	// KindFPS is first-person movement: the eye flies, the target follows.
	KindFPS ControllerKind = iota
	// KindOrbit circles the eye around a pivot target.
	KindOrbit
	// KindUnreal is editor-style navigation driven by mouse button chords.
	KindUnreal
)

// String returns a human-readable name for the kind.
func (k ControllerKind) String() string {
	switch k {
	case KindFPS:
		return "fps"
	case KindOrbit:
		return "orbit"
	case KindUnreal:
		return "unreal"
	default:
		return "unknown"
	}
}

// ControlEvent is a typed camera movement command produced by a controller's
// input mapping and consumed, in order, by its update step.
type ControlEvent interface {
	isControlEvent()
}

// RotateEvent turns the camera by a scaled cursor delta.
type RotateEvent struct {
	Delta common.Vec2
}

// TranslateEyeEvent moves the eye along the camera's yaw-aligned axes.
type TranslateEyeEvent struct {
	Delta common.Vec3
}

// OrbitEvent swings the eye around the target by a scaled cursor delta.
type OrbitEvent struct {
	Delta common.Vec2
}

// TranslateTargetEvent drags the orbit pivot across the view plane.
type TranslateTargetEvent struct {
	Delta common.Vec2
}

// ZoomEvent scales the orbit radius by a multiplicative factor.
type ZoomEvent struct {
	Scalar float32
}

// LocomotionEvent combines a yaw turn (X) with movement along the look
// vector (Y).
type LocomotionEvent struct {
	Delta common.Vec2
}

// PanEvent slides the eye across the view plane without turning.
type PanEvent struct {
	Delta common.Vec2
}

func (RotateEvent) isControlEvent()          {}
func (TranslateEyeEvent) isControlEvent()    {}
func (OrbitEvent) isControlEvent()           {}
func (TranslateTargetEvent) isControlEvent() {}
func (ZoomEvent) isControlEvent()            {}
func (LocomotionEvent) isControlEvent()      {}
func (PanEvent) isControlEvent()             {}

// Controller turns raw input into ControlEvents and applies them to a
// LookTransform. Implementations are safe for concurrent configuration while
// a frame driver calls MapInput and Update.
type Controller interface {
	// Kind identifies the movement style.
	Kind() ControllerKind
	// Enabled reports whether the controller responds to input.
	Enabled() bool
	// SetEnabled toggles input response. A disabled controller still has its
	// input drained each frame so stale deltas cannot replay on re-enable.
	SetEnabled(enabled bool)
	// SmoothingWeight is the lag weight a rig should use when building this
	// controller's default smoother.
	SmoothingWeight() float32
	// MapInput translates one frame of raw input into control events. A nil
	// snapshot or a disabled controller yields nil.
	MapInput(snapshot *InputSnapshot) []ControlEvent
	// Update applies events in arrival order to the transform, scaled by the
	// frame delta. A disabled controller is a no-op. On error the transform
	// is left unchanged.
	Update(events []ControlEvent, dt float32, transform *LookTransform) error
}

// SelectActive picks the rig whose controller should consume this frame's
// input: the enabled controller with the lowest id. Selection is
// deterministic for a given set of enabled controllers.
//
// Parameters:
//   - controllers: rig id to controller. Nil controllers are skipped.
//
// Returns:
//   - uint64: the selected rig id.
//   - bool: false when no controller is enabled.
func SelectActive(controllers map[uint64]Controller) (uint64, bool) {
	var best uint64
	found := false
	for id, c := range controllers {
		if c == nil || !c.Enabled() {
			continue
		}
		if !found || id < best {
			best = id
			found = true
		}
	}
	return best, found
}
