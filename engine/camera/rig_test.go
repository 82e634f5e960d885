package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverity/smoothcam/common"
)

func TestSelectActive(t *testing.T) {
	t.Run("Lowest Enabled Id Wins", func(t *testing.T) {
		fps, err := NewFpsController()
		require.NoError(t, err)
		orbit, err := NewOrbitController()
		require.NoError(t, err)

		id, ok := SelectActive(map[uint64]Controller{7: orbit, 3: fps})
		require.True(t, ok)
		assert.Equal(t, uint64(3), id)

		fps.SetEnabled(false)
		id, ok = SelectActive(map[uint64]Controller{7: orbit, 3: fps})
		require.True(t, ok)
		assert.Equal(t, uint64(7), id)
	})

	t.Run("No Enabled Controller", func(t *testing.T) {
		fps, err := NewFpsController(WithFpsEnabled(false))
		require.NoError(t, err)

		_, ok := SelectActive(map[uint64]Controller{1: fps, 2: nil})
		assert.False(t, ok)

		_, ok = SelectActive(nil)
		assert.False(t, ok)
	})
}

func TestRig(t *testing.T) {
	newFpsRig := func(t *testing.T, options ...RigOption) (*Rig, FpsController) {
		t.Helper()
		ctrl, err := NewFpsController()
		require.NoError(t, err)
		rig := NewRig(ctrl, common.V3(0, 0, 0), common.V3(0, 0, 5), common.UnitY(), options...)
		return rig, ctrl
	}

	t.Run("Default Smoother Uses Controller Weight", func(t *testing.T) {
		rig, _ := newFpsRig(t)
		s, ok := rig.Smoother().(*Smoother)
		require.True(t, ok)
		assert.InDelta(t, DefaultFpsSmoothingWeight, float64(s.LagWeight()), 1e-6)
	})

	t.Run("Passive Rig Presents Its Transform", func(t *testing.T) {
		rig := NewRig(nil, common.V3(0, 0, -2), common.V3(0, 0, 0), common.UnitY())
		out, err := rig.Step(nil, 0.016)
		require.NoError(t, err)
		assert.Equal(t, rig.Transform(), out)

		rig.EditTransform(func(tfm *LookTransform) {
			tfm.Target = common.V3(1, 0, 0)
		})
		assert.Equal(t, common.V3(1, 0, 0), rig.Transform().Target)
	})

	t.Run("Step Applies Input To Transform", func(t *testing.T) {
		rig, _ := newFpsRig(t, WithSmoother(nil))

		var snap InputSnapshot
		snap.SetPressed(ButtonForward, true)

		out, err := rig.Step(&snap, 0.016)
		require.NoError(t, err)
		assert.InDelta(t, 0.032, float64(out.Eye.Z), 1e-5)
	})

	t.Run("First Smoothed Step Matches Raw", func(t *testing.T) {
		rig, _ := newFpsRig(t)
		out, err := rig.Step(nil, 0.016)
		require.NoError(t, err)
		assert.Equal(t, rig.Transform(), out)
	})

	t.Run("Zero Delta Is A No-Op", func(t *testing.T) {
		rig, _ := newFpsRig(t, WithSmoother(nil))
		before := rig.Transform()

		var snap InputSnapshot
		snap.CursorDelta = common.V2(100, 100)
		snap.SetPressed(ButtonForward, true)

		out, err := rig.Step(&snap, 0.0)
		require.NoError(t, err)
		assert.Equal(t, before, out)
		assert.Equal(t, before, rig.Transform())
	})

	t.Run("Disabled Controller Freezes Transform", func(t *testing.T) {
		rig, ctrl := newFpsRig(t, WithSmoother(nil))
		ctrl.SetEnabled(false)
		before := rig.Transform()

		var snap InputSnapshot
		snap.SetPressed(ButtonForward, true)
		out, err := rig.Step(&snap, 1.0)
		require.NoError(t, err)
		assert.Equal(t, before, out)
	})

	t.Run("Enable Change Propagates To Smoother", func(t *testing.T) {
		rig, ctrl := newFpsRig(t)

		_, err := rig.Step(nil, 0.016)
		require.NoError(t, err)

		ctrl.SetEnabled(false)
		_, err = rig.Step(nil, 0.016)
		require.NoError(t, err)
		assert.False(t, rig.Smoother().Enabled())

		// Re-enabling resets the smoother: the camera teleported while the
		// controller was off, and must not lag back toward the stale pose.
		ctrl.SetEnabled(true)
		rig.SetTransform(NewLookTransform(common.V3(50, 0, 0), common.V3(50, 0, 5), common.UnitY()))
		out, err := rig.Step(nil, 0.016)
		require.NoError(t, err)
		assert.True(t, rig.Smoother().Enabled())
		assert.InDelta(t, 50.0, float64(out.Eye.X), 1e-5)
	})

	t.Run("Update Error Freezes Frame But Keeps Presenting", func(t *testing.T) {
		rig, _ := newFpsRig(t, WithSmoother(nil))
		rig.SetTransform(NewLookTransform(common.V3(1, 1, 1), common.V3(1, 1, 1), common.UnitY()))
		before := rig.Transform()

		var snap InputSnapshot
		snap.CursorDelta = common.V2(5, 5)
		out, err := rig.Step(&snap, 0.016)
		assert.ErrorIs(t, err, ErrDegenerateDirection)
		assert.Equal(t, before, out)
		assert.Equal(t, before, rig.Transform())
	})
}
