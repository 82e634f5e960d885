package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mverity/smoothcam/common"
	"github.com/mverity/smoothcam/engine/camera"
	"github.com/mverity/smoothcam/engine/window"
)

func TestCollectorAccumulation(t *testing.T) {
	t.Run("Cursor Deltas Accumulate And Drain", func(t *testing.T) {
		c := NewCollector()

		// First position only seeds the reference point.
		c.CursorMoved(100, 100)
		c.CursorMoved(110, 95)
		c.CursorMoved(112, 95)

		snap := c.Take()
		assert.InDelta(t, 12.0, float64(snap.CursorDelta.X), 1e-6)
		assert.InDelta(t, -5.0, float64(snap.CursorDelta.Y), 1e-6)

		// Drained: the next snapshot starts from zero.
		snap = c.Take()
		assert.Equal(t, common.Vec2{}, snap.CursorDelta)
	})

	t.Run("Scroll Accumulates Both Axes", func(t *testing.T) {
		c := NewCollector(WithWheelUnit(camera.WheelUnitPixel))

		c.Scrolled(1, 2)
		c.Scrolled(0, 3)

		snap := c.Take()
		assert.InDelta(t, 1.0, float64(snap.WheelDelta.X), 1e-6)
		assert.InDelta(t, 5.0, float64(snap.WheelDelta.Y), 1e-6)
		assert.Equal(t, camera.WheelUnitPixel, snap.WheelUnit)
	})

	t.Run("Held Keys Persist Across Snapshots", func(t *testing.T) {
		c := NewCollector()

		c.KeyDown(common.KeyW)
		c.KeyDown(common.KeyLeftShift)

		snap := c.Take()
		assert.True(t, snap.Pressed(camera.ButtonForward))
		assert.True(t, snap.Pressed(camera.ButtonDown))

		snap = c.Take()
		assert.True(t, snap.Pressed(camera.ButtonForward))

		c.KeyUp(common.KeyW)
		snap = c.Take()
		assert.False(t, snap.Pressed(camera.ButtonForward))
		assert.True(t, snap.Pressed(camera.ButtonDown))
	})

	t.Run("Unbound Keys Are Ignored", func(t *testing.T) {
		c := NewCollector()
		c.KeyDown(common.KeyEsc)
		snap := c.Take()
		for b := camera.ButtonForward; b <= camera.ButtonMouseMiddle; b++ {
			assert.False(t, snap.Pressed(b))
		}
	})

	t.Run("Custom Binding Overrides Default", func(t *testing.T) {
		c := NewCollector(WithKeyBinding(common.Key1, camera.ButtonForward))
		c.KeyDown(common.Key1)
		snap := c.Take()
		assert.True(t, snap.Pressed(camera.ButtonForward))
	})

	t.Run("Mouse Buttons Map To Semantic Buttons", func(t *testing.T) {
		c := NewCollector()

		c.MouseButton(window.MouseButtonLeft, true)
		c.MouseButton(window.MouseButtonMiddle, true)
		snap := c.Take()
		assert.True(t, snap.Pressed(camera.ButtonMouseLeft))
		assert.True(t, snap.Pressed(camera.ButtonMouseMiddle))
		assert.False(t, snap.Pressed(camera.ButtonMouseRight))

		c.MouseButton(window.MouseButtonLeft, false)
		snap = c.Take()
		assert.False(t, snap.Pressed(camera.ButtonMouseLeft))
	})
}
