package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverity/smoothcam/common"
)

func unrealSnap(buttons ...Button) *InputSnapshot {
	var snap InputSnapshot
	for _, b := range buttons {
		snap.SetPressed(b, true)
	}
	return &snap
}

func TestUnrealControllerMapInput(t *testing.T) {
	t.Run("Right Drag Rotates", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		snap := unrealSnap(ButtonMouseRight)
		snap.CursorDelta = common.V2(10, 5)

		events := c.MapInput(snap)
		require.Len(t, events, 1)
		rot := events[0].(RotateEvent)
		assert.InDelta(t, 2.0, float64(rot.Delta.X), 1e-6)
		assert.InDelta(t, 1.0, float64(rot.Delta.Y), 1e-6)
	})

	t.Run("Left Drag Walks And Turns", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		snap := unrealSnap(ButtonMouseLeft)
		snap.CursorDelta = common.V2(10, -3)

		events := c.MapInput(snap)
		require.Len(t, events, 1)
		loc := events[0].(LocomotionEvent)
		assert.InDelta(t, 10*DefaultUnrealRotateSensitivity, float64(loc.Delta.X), 1e-6)
		assert.InDelta(t, 3*DefaultUnrealMouseTranslateSensitivity, float64(loc.Delta.Y), 1e-6)
	})

	t.Run("Middle Drag Pans", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		snap := unrealSnap(ButtonMouseMiddle)
		snap.CursorDelta = common.V2(3, 4)

		events := c.MapInput(snap)
		require.Len(t, events, 1)
		pan := events[0].(PanEvent)
		assert.InDelta(t, 6.0, float64(pan.Delta.X), 1e-6)
		assert.InDelta(t, 8.0, float64(pan.Delta.Y), 1e-6)
	})

	t.Run("Left Plus Right Pans Like Middle", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		snap := unrealSnap(ButtonMouseLeft, ButtonMouseRight)
		snap.CursorDelta = common.V2(1, 1)

		events := c.MapInput(snap)
		require.Len(t, events, 1)
		assert.IsType(t, PanEvent{}, events[0])
	})

	t.Run("Wheel Alone Dollies", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		snap := &InputSnapshot{WheelDelta: common.V2(0, 2), WheelUnit: WheelUnitLine}
		events := c.MapInput(snap)
		require.Len(t, events, 1)
		loc := events[0].(LocomotionEvent)
		assert.InDelta(t, 2*DefaultUnrealWheelTranslateSensitivity, float64(loc.Delta.Y), 1e-6)
		assert.InDelta(t, 0.0, float64(loc.Delta.X), 1e-6)
	})

	t.Run("Chorded Keys Move At Keyboard Speed", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		snap := unrealSnap(ButtonMouseRight, ButtonForward, ButtonRight, ButtonUp)
		events := c.MapInput(snap)
		require.Len(t, events, 3)

		assert.IsType(t, RotateEvent{}, events[0])
		pan := events[1].(PanEvent)
		assert.InDelta(t, float64(DefaultUnrealKeyboardSensitivity), float64(pan.Delta.X), 1e-6)
		assert.InDelta(t, float64(DefaultUnrealKeyboardSensitivity), float64(pan.Delta.Y), 1e-6)
		loc := events[2].(LocomotionEvent)
		assert.InDelta(t, float64(DefaultUnrealKeyboardSensitivity), float64(loc.Delta.Y), 1e-6)
	})

	t.Run("Chorded Wheel Retunes Keyboard Speed", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		snap := unrealSnap(ButtonMouseRight)
		snap.WheelDelta = common.V2(0, 1)
		c.MapInput(snap)
		assert.InDelta(t,
			float64(DefaultUnrealKeyboardSensitivity+DefaultUnrealKeyboardWheelSensitivity),
			float64(c.KeyboardSensitivity()), 1e-5)
	})

	t.Run("Keyboard Speed Floors At Minimum", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		snap := unrealSnap(ButtonMouseRight)
		snap.WheelDelta = common.V2(0, -100)
		c.MapInput(snap)
		assert.InDelta(t, float64(minKeyboardSensitivity), float64(c.KeyboardSensitivity()), 1e-6)

		// Still responsive afterward.
		snap = unrealSnap(ButtonMouseRight, ButtonForward)
		events := c.MapInput(snap)
		require.Len(t, events, 2)
		loc := events[1].(LocomotionEvent)
		assert.InDelta(t, float64(minKeyboardSensitivity), float64(loc.Delta.Y), 1e-6)
	})

	t.Run("Disabled Yields Nothing", func(t *testing.T) {
		c, err := NewUnrealController(WithUnrealEnabled(false))
		require.NoError(t, err)
		snap := unrealSnap(ButtonMouseLeft)
		snap.CursorDelta = common.V2(5, 5)
		assert.Nil(t, c.MapInput(snap))
	})
}

func TestUnrealControllerUpdate(t *testing.T) {
	t.Run("Locomotion Moves Along Look Vector", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		tfm := NewLookTransform(common.V3(0, 0, 0), common.V3(0, 0, 5), common.UnitY())
		events := []ControlEvent{LocomotionEvent{Delta: common.V2(0, 3)}}

		require.NoError(t, c.Update(events, 0.5, &tfm))
		assert.InDelta(t, 1.5, float64(tfm.Eye.Z), 1e-5)
		assert.InDelta(t, 5.0, float64(tfm.Target.Z), 1e-4)
	})

	t.Run("Pan Slides Across View Plane", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		tfm := NewLookTransform(common.V3(0, 0, 0), common.V3(0, 0, 5), common.UnitY())
		events := []ControlEvent{PanEvent{Delta: common.V2(2, 4)}}

		require.NoError(t, c.Update(events, 1.0, &tfm))
		// Yaw zero: the yaw-aligned right axis is +X, so pan X goes to -X.
		assert.InDelta(t, -2.0, float64(tfm.Eye.X), 1e-5)
		assert.InDelta(t, 4.0, float64(tfm.Eye.Y), 1e-5)
		assert.InDelta(t, 0.0, float64(tfm.Eye.Z), 1e-5)
	})

	t.Run("Rotation Re-Aims Same-Frame Pan", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		// Turn a quarter to the right, then pan: the slide must follow the
		// new heading, not the heading at the start of the frame.
		tfm := NewLookTransform(common.V3(0, 0, -5), common.V3(0, 0, 0), common.UnitY())
		events := []ControlEvent{
			RotateEvent{Delta: common.V2(-math.Pi/2, 0)},
			PanEvent{Delta: common.V2(1, 0)},
		}

		require.NoError(t, c.Update(events, 1.0, &tfm))
		assert.InDelta(t, 0.0, float64(tfm.Eye.X), 1e-5)
		assert.InDelta(t, 0.0, float64(tfm.Eye.Y), 1e-5)
		assert.InDelta(t, -4.0, float64(tfm.Eye.Z), 1e-5)
	})

	t.Run("Rotation Keeps Radius", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		tfm := NewLookTransform(common.V3(0, 0, 0), common.V3(0, 0, 5), common.UnitY())
		events := []ControlEvent{RotateEvent{Delta: common.V2(1, 0.5)}}

		require.NoError(t, c.Update(events, 0.1, &tfm))
		assert.Equal(t, common.Vec3{}, tfm.Eye)
		assert.InDelta(t, 5.0, float64(tfm.Radius()), 1e-4)
	})

	t.Run("Degenerate Pose Leaves Transform Unchanged", func(t *testing.T) {
		c, err := NewUnrealController()
		require.NoError(t, err)

		tfm := NewLookTransform(common.V3(2, 2, 2), common.V3(2, 2, 2), common.UnitY())
		before := tfm
		err = c.Update([]ControlEvent{PanEvent{Delta: common.V2(1, 0)}}, 1.0, &tfm)
		assert.ErrorIs(t, err, ErrDegenerateDirection)
		assert.Equal(t, before, tfm)
	})
}
