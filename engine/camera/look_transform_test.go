package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverity/smoothcam/common"
)

func TestLookTransform(t *testing.T) {
	t.Run("Radius", func(t *testing.T) {
		tfm := NewLookTransform(common.V3(0, 0, -3), common.V3(0, 0, 1), common.UnitY())
		assert.InDelta(t, 4.0, float64(tfm.Radius()), 1e-6)
	})

	t.Run("Look Direction", func(t *testing.T) {
		tfm := NewLookTransform(common.V3(1, 2, 3), common.V3(1, 2, 7), common.UnitY())
		dir, err := tfm.LookDirection()
		require.NoError(t, err)
		assert.InDelta(t, 0.0, float64(dir.X), 1e-6)
		assert.InDelta(t, 0.0, float64(dir.Y), 1e-6)
		assert.InDelta(t, 1.0, float64(dir.Z), 1e-6)
	})

	t.Run("Degenerate Pose", func(t *testing.T) {
		tfm := NewLookTransform(common.V3(1, 2, 3), common.V3(1, 2, 3), common.UnitY())
		_, err := tfm.LookDirection()
		assert.ErrorIs(t, err, ErrDegenerateDirection)

		var view [16]float32
		assert.ErrorIs(t, tfm.ViewMatrix(view[:]), ErrDegenerateDirection)
	})

	t.Run("View Matrix Centers Eye", func(t *testing.T) {
		eye := common.V3(0, 0, -5)
		tfm := NewLookTransform(eye, common.V3(0, 0, 0), common.UnitY())

		var view [16]float32
		require.NoError(t, tfm.ViewMatrix(view[:]))

		// The eye must map to the view-space origin.
		x := view[0]*eye.X + view[4]*eye.Y + view[8]*eye.Z + view[12]
		y := view[1]*eye.X + view[5]*eye.Y + view[9]*eye.Z + view[13]
		z := view[2]*eye.X + view[6]*eye.Y + view[10]*eye.Z + view[14]
		assert.InDelta(t, 0.0, float64(x), 1e-5)
		assert.InDelta(t, 0.0, float64(y), 1e-5)
		assert.InDelta(t, 0.0, float64(z), 1e-5)
	})

	t.Run("Distant Target Matches Near Target", func(t *testing.T) {
		eye := common.V3(3, 1, -2)
		near := NewLookTransform(eye, common.V3(3, 1, 8), common.UnitY())
		far := NewLookTransform(eye, common.V3(3, 1, 100000), common.UnitY())

		var nearView, farView [16]float32
		require.NoError(t, near.ViewMatrix(nearView[:]))
		require.NoError(t, far.ViewMatrix(farView[:]))
		for i := range nearView {
			assert.InDelta(t, float64(nearView[i]), float64(farView[i]), 1e-4, "element %d", i)
		}
	})
}
