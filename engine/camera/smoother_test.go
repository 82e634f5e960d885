package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverity/smoothcam/common"
)

func poseAt(z float32) LookTransform {
	return NewLookTransform(common.V3(0, 0, z), common.V3(0, 0, z+1), common.UnitY())
}

func TestSmoother(t *testing.T) {
	t.Run("Invalid Lag Weight", func(t *testing.T) {
		_, err := NewSmoother(1.0)
		assert.ErrorIs(t, err, ErrConfigOutOfRange)
		_, err = NewSmoother(-0.1)
		assert.ErrorIs(t, err, ErrConfigOutOfRange)

		s, err := NewSmoother(0.5)
		require.NoError(t, err)
		assert.ErrorIs(t, s.SetLagWeight(1.5), ErrConfigOutOfRange)
		assert.InDelta(t, 0.5, float64(s.LagWeight()), 1e-6)
	})

	t.Run("First Call Returns Raw Exactly", func(t *testing.T) {
		s, err := NewSmoother(0.9)
		require.NoError(t, err)

		raw := poseAt(7)
		out := s.SmoothTransform(raw)
		assert.Equal(t, raw, out)
	})

	t.Run("Exponential Blend", func(t *testing.T) {
		s, err := NewSmoother(0.9)
		require.NoError(t, err)

		s.SmoothTransform(poseAt(0))
		out := s.SmoothTransform(poseAt(10))
		// previous*0.9 + raw*0.1
		assert.InDelta(t, 1.0, float64(out.Eye.Z), 1e-5)

		out = s.SmoothTransform(poseAt(10))
		assert.InDelta(t, 1.9, float64(out.Eye.Z), 1e-5)
	})

	t.Run("Converges To Steady Input", func(t *testing.T) {
		s, err := NewSmoother(0.8)
		require.NoError(t, err)

		s.SmoothTransform(poseAt(0))
		var out LookTransform
		for range 200 {
			out = s.SmoothTransform(poseAt(5))
		}
		assert.InDelta(t, 5.0, float64(out.Eye.Z), 1e-3)
		assert.InDelta(t, 6.0, float64(out.Target.Z), 1e-3)
	})

	t.Run("Zero Weight Passes Through", func(t *testing.T) {
		s, err := NewSmoother(0.0)
		require.NoError(t, err)

		s.SmoothTransform(poseAt(0))
		out := s.SmoothTransform(poseAt(42))
		assert.InDelta(t, 42.0, float64(out.Eye.Z), 1e-5)
	})

	t.Run("Disabled Passes Through", func(t *testing.T) {
		s, err := NewSmoother(0.9)
		require.NoError(t, err)

		s.SmoothTransform(poseAt(0))
		s.SetEnabled(false)
		out := s.SmoothTransform(poseAt(100))
		assert.Equal(t, poseAt(100), out)
	})

	t.Run("Re-enable Resets Accumulated Pose", func(t *testing.T) {
		s, err := NewSmoother(0.9)
		require.NoError(t, err)

		s.SmoothTransform(poseAt(0))
		s.SetEnabled(false)
		s.SetEnabled(true)

		// No lag toward the stale pose at z=0.
		out := s.SmoothTransform(poseAt(50))
		assert.Equal(t, poseAt(50), out)
	})

	t.Run("Reset Restarts Stream", func(t *testing.T) {
		s, err := NewSmoother(0.9)
		require.NoError(t, err)

		s.SmoothTransform(poseAt(0))
		s.Reset()
		out := s.SmoothTransform(poseAt(9))
		assert.Equal(t, poseAt(9), out)
	})
}

func TestSpringSmoother(t *testing.T) {
	t.Run("Invalid Config", func(t *testing.T) {
		_, err := NewSpringSmoother(0, 6.0, 1.0)
		assert.ErrorIs(t, err, ErrConfigOutOfRange)
		_, err = NewSpringSmoother(60, -1.0, 1.0)
		assert.ErrorIs(t, err, ErrConfigOutOfRange)
	})

	t.Run("First Call Returns Raw Exactly", func(t *testing.T) {
		s, err := NewSpringSmoother(60, 6.0, 1.0)
		require.NoError(t, err)

		raw := poseAt(3)
		assert.Equal(t, raw, s.SmoothTransform(raw))
	})

	t.Run("Settles On Steady Input", func(t *testing.T) {
		s, err := NewSpringSmoother(60, 6.0, 1.0)
		require.NoError(t, err)

		s.SmoothTransform(poseAt(0))
		var out LookTransform
		for range 600 {
			out = s.SmoothTransform(poseAt(4))
		}
		assert.InDelta(t, 4.0, float64(out.Eye.Z), 1e-2)
	})

	t.Run("Re-enable Resets Springs", func(t *testing.T) {
		s, err := NewSpringSmoother(60, 6.0, 1.0)
		require.NoError(t, err)

		s.SmoothTransform(poseAt(0))
		s.SetEnabled(false)
		s.SetEnabled(true)
		out := s.SmoothTransform(poseAt(25))
		assert.Equal(t, poseAt(25), out)
	})
}
