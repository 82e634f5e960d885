package camera

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/harmonica"
)

// SpringSmoother filters LookTransform values through damped harmonic
// springs, one per eye/target component. Compared to the exponential
// Smoother it can overshoot (damping ratio below 1) and settles with
// physically plausible easing. The up axis is passed through unchanged.
type SpringSmoother struct {
	mu      sync.Mutex
	spring  harmonica.Spring
	pos     [6]float64
	vel     [6]float64
	seeded  bool
	enabled bool
}

var _ TransformSmoother = &SpringSmoother{}

// NewSpringSmoother creates a spring smoother stepped at a fixed rate.
//
// Parameters:
//   - fps: the tick rate the smoother will be stepped at.
//   - angularFrequency: spring stiffness in radians per second.
//   - dampingRatio: 1 for critical damping, below 1 to allow overshoot.
//
// Returns:
//   - *SpringSmoother: the smoother, enabled.
//   - error: ErrConfigOutOfRange when a parameter is not positive.
func NewSpringSmoother(fps int, angularFrequency, dampingRatio float64) (*SpringSmoother, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps %d must be positive", ErrConfigOutOfRange, fps)
	}
	if angularFrequency <= 0.0 || dampingRatio <= 0.0 {
		return nil, fmt.Errorf("%w: spring frequency %v and damping %v must be positive",
			ErrConfigOutOfRange, angularFrequency, dampingRatio)
	}
	return &SpringSmoother{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), angularFrequency, dampingRatio),
		enabled: true,
	}, nil
}

// SmoothTransform advances the springs one tick toward raw. While disabled,
// or on the first call after a reset, raw is returned unchanged.
func (s *SpringSmoother) SmoothTransform(raw LookTransform) LookTransform {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return raw
	}

	targets := [6]float64{
		float64(raw.Eye.X), float64(raw.Eye.Y), float64(raw.Eye.Z),
		float64(raw.Target.X), float64(raw.Target.Y), float64(raw.Target.Z),
	}
	if !s.seeded {
		s.pos = targets
		s.vel = [6]float64{}
		s.seeded = true
		return raw
	}

	for i := range s.pos {
		s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], targets[i])
	}
	out := raw
	out.Eye.X = float32(s.pos[0])
	out.Eye.Y = float32(s.pos[1])
	out.Eye.Z = float32(s.pos[2])
	out.Target.X = float32(s.pos[3])
	out.Target.Y = float32(s.pos[4])
	out.Target.Z = float32(s.pos[5])
	return out
}

// Reset discards spring state so the next call returns its input.
func (s *SpringSmoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeded = false
}

// Enabled reports whether smoothing is applied.
func (s *SpringSmoother) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled toggles smoothing. Enabling after a disabled stretch resets the
// springs.
func (s *SpringSmoother) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled && !s.enabled {
		s.seeded = false
	}
	s.enabled = enabled
}
