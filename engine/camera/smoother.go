package camera

import (
	"fmt"
	"sync"
)

// TransformSmoother filters a stream of raw LookTransform values into a
// smoothed stream. Implementations pass the raw value through unchanged while
// disabled and must restart from the raw value after being re-enabled.
type TransformSmoother interface {
	// SmoothTransform folds the next raw transform into the smoothed stream
	// and returns the value the camera should present this frame.
	SmoothTransform(raw LookTransform) LookTransform
	// Reset discards any accumulated state so the next call returns its input.
	Reset()
	// Enabled reports whether smoothing is applied.
	Enabled() bool
	// SetEnabled toggles smoothing. Re-enabling resets accumulated state so
	// the camera does not jump toward a stale pose.
	SetEnabled(enabled bool)
}

// Smoother is an exponential lag filter over LookTransform values. With lag
// weight w, each output is previous*w + raw*(1-w). The first call after
// construction or a reset returns the raw value exactly.
type Smoother struct {
	mu        sync.Mutex
	lagWeight float32
	previous  *LookTransform
	enabled   bool
}

var _ TransformSmoother = &Smoother{}

// NewSmoother creates an exponential smoother.
//
// Parameters:
//   - lagWeight: fraction of the previous value retained each frame, in [0, 1).
//
// Returns:
//   - *Smoother: the smoother, enabled.
//   - error: ErrConfigOutOfRange when lagWeight is outside [0, 1).
func NewSmoother(lagWeight float32) (*Smoother, error) {
	s := &Smoother{enabled: true}
	if err := s.SetLagWeight(lagWeight); err != nil {
		return nil, err
	}
	return s, nil
}

// LagWeight returns the current lag weight.
func (s *Smoother) LagWeight() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lagWeight
}

// SetLagWeight updates the lag weight.
//
// Parameters:
//   - lagWeight: fraction of the previous value retained each frame, in [0, 1).
//
// Returns:
//   - error: ErrConfigOutOfRange when lagWeight is outside [0, 1).
func (s *Smoother) SetLagWeight(lagWeight float32) error {
	if lagWeight < 0.0 || lagWeight >= 1.0 {
		return fmt.Errorf("%w: lag weight %v not in [0, 1)", ErrConfigOutOfRange, lagWeight)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lagWeight = lagWeight
	return nil
}

// SmoothTransform folds raw into the lag filter. While disabled, or on the
// first call after a reset, raw is returned unchanged.
func (s *Smoother) SmoothTransform(raw LookTransform) LookTransform {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return raw
	}
	if s.previous == nil {
		prev := raw
		s.previous = &prev
		return raw
	}

	lag := s.lagWeight
	lead := 1.0 - lag
	out := LookTransform{
		Eye:    s.previous.Eye.Scale(lag).Add(raw.Eye.Scale(lead)),
		Target: s.previous.Target.Scale(lag).Add(raw.Target.Scale(lead)),
		Up:     s.previous.Up.Scale(lag).Add(raw.Up.Scale(lead)),
	}
	*s.previous = out
	return out
}

// Reset discards the accumulated pose so the next call returns its input.
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previous = nil
}

// Enabled reports whether smoothing is applied.
func (s *Smoother) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetEnabled toggles smoothing. Enabling after a disabled stretch resets the
// accumulated pose.
func (s *Smoother) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled && !s.enabled {
		s.previous = nil
	}
	s.enabled = enabled
}
