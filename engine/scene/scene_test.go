package scene

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverity/smoothcam/common"
	"github.com/mverity/smoothcam/engine/camera"
	"github.com/mverity/smoothcam/engine/renderer"
)

// fakeRenderer records calls so scene behavior can be verified without a GPU.
type fakeRenderer struct {
	mu sync.Mutex

	nextID  renderer.MeshID
	uploads map[renderer.MeshID][4]float32

	lastViewProjection [16]float32
	cameraSets         int
	frames             int
	drawn              []renderer.MeshID
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		nextID:  1,
		uploads: make(map[renderer.MeshID][4]float32),
	}
}

func (f *fakeRenderer) Resize(width, height int)                  {}
func (f *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}

func (f *fakeRenderer) SetCamera(viewProjection [16]float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastViewProjection = viewProjection
	f.cameraSets++
}

func (f *fakeRenderer) CreateMesh(vertices []renderer.Vertex, indices []uint32) (renderer.MeshID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	return id, nil
}

func (f *fakeRenderer) UpdateMesh(id renderer.MeshID, model [16]float32, color [4]float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[id] = color
	return nil
}

func (f *fakeRenderer) BeginFrame() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames++
	f.drawn = f.drawn[:0]
	return nil
}

func (f *fakeRenderer) Draw(id renderer.MeshID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drawn = append(f.drawn, id)
}

func (f *fakeRenderer) EndFrame() {}
func (f *fakeRenderer) Present()  {}

var _ renderer.Renderer = &fakeRenderer{}

func newFpsCamera(t *testing.T, enabled bool, eye common.Vec3) camera.Camera {
	t.Helper()
	ctrl, err := camera.NewFpsController(camera.WithFpsEnabled(enabled))
	require.NoError(t, err)
	rig := camera.NewRig(ctrl, eye, common.Vec3{Z: 5}, common.Vec3{Y: 1}, camera.WithSmoother(nil))
	return camera.NewCamera(camera.WithRig(rig))
}

func identityMatrix() [16]float32 {
	var m [16]float32
	common.Identity(m[:])
	return m
}

func unitQuad() ([]renderer.Vertex, []uint32) {
	vertices := []renderer.Vertex{
		{Position: [3]float32{-1, -1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{1, -1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{1, 1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-1, 1, 0}, Normal: [3]float32{0, 0, 1}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return vertices, indices
}

func TestSceneCameraRegistry(t *testing.T) {
	t.Run("active camera is the lowest enabled ID", func(t *testing.T) {
		s := NewScene("test", newFakeRenderer())

		first := s.AddCamera(newFpsCamera(t, false, common.Vec3{}))
		second := s.AddCamera(newFpsCamera(t, true, common.Vec3{}))
		third := s.AddCamera(newFpsCamera(t, true, common.Vec3{}))

		id, cam, ok := s.ActiveCamera()
		require.True(t, ok)
		assert.Equal(t, second, id)
		assert.NotNil(t, cam)

		s.GetCamera(second).Rig().Controller().SetEnabled(false)
		id, _, ok = s.ActiveCamera()
		require.True(t, ok)
		assert.Equal(t, third, id)

		assert.NotEqual(t, first, id)
		assert.Equal(t, 3, s.CameraCount())
	})

	t.Run("no enabled camera means no active camera", func(t *testing.T) {
		s := NewScene("test", newFakeRenderer())
		s.AddCamera(newFpsCamera(t, false, common.Vec3{}))

		_, _, ok := s.ActiveCamera()
		assert.False(t, ok)
	})

	t.Run("remove camera drops it from the registry", func(t *testing.T) {
		s := NewScene("test", newFakeRenderer())
		id := s.AddCamera(newFpsCamera(t, true, common.Vec3{}))

		s.RemoveCamera(id)
		assert.Nil(t, s.GetCamera(id))
		assert.Equal(t, 0, s.CameraCount())
	})

	t.Run("camera without a rig panics", func(t *testing.T) {
		s := NewScene("test", newFakeRenderer())
		assert.Panics(t, func() {
			s.AddCamera(camera.NewCamera())
		})
	})
}

func TestSceneUpdate(t *testing.T) {
	t.Run("input routes to the active camera only", func(t *testing.T) {
		s := NewScene("test", newFakeRenderer())

		activeID := s.AddCamera(newFpsCamera(t, true, common.Vec3{}))
		passiveID := s.AddCamera(newFpsCamera(t, true, common.Vec3{X: 3}))

		var snapshot camera.InputSnapshot
		snapshot.SetPressed(camera.ButtonForward, true)

		require.NoError(t, s.Update(&snapshot, 0.5))

		activeEye := s.GetCamera(activeID).Rig().Transform().Eye
		passiveEye := s.GetCamera(passiveID).Rig().Transform().Eye
		assert.Greater(t, activeEye.Z, float32(0), "active camera should have moved")
		assert.Equal(t, float32(0), passiveEye.Z, "passive camera should not receive input")
	})

	t.Run("stepping applies the pose to the camera matrices", func(t *testing.T) {
		s := NewScene("test", newFakeRenderer())
		id := s.AddCamera(newFpsCamera(t, true, common.Vec3{}))

		before := s.GetCamera(id).ViewProjectionMatrix()
		var snapshot camera.InputSnapshot
		snapshot.SetPressed(camera.ButtonForward, true)
		require.NoError(t, s.Update(&snapshot, 0.5))

		assert.NotEqual(t, before, s.GetCamera(id).ViewProjectionMatrix())
	})

	t.Run("controller errors are reported without stopping other rigs", func(t *testing.T) {
		s := NewScene("test", newFakeRenderer())

		// Degenerate rig: eye and target coincide so the controller errors.
		ctrl, err := camera.NewFpsController(camera.WithFpsEnabled(true))
		require.NoError(t, err)
		broken := camera.NewRig(ctrl, common.Vec3{}, common.Vec3{}, common.Vec3{Y: 1}, camera.WithSmoother(nil))
		s.AddCamera(camera.NewCamera(camera.WithRig(broken)))
		healthyID := s.AddCamera(newFpsCamera(t, true, common.Vec3{}))

		var snapshot camera.InputSnapshot
		snapshot.SetPressed(camera.ButtonForward, true)
		err = s.Update(&snapshot, 0.5)

		assert.ErrorIs(t, err, camera.ErrDegenerateDirection)
		// The healthy rig still stepped even though it was not active this frame.
		assert.NotNil(t, s.GetCamera(healthyID))
	})

	t.Run("orthographic zoom drives the camera scale", func(t *testing.T) {
		s := NewScene("test", newFakeRenderer())

		ctrl, err := camera.NewOrbitController(
			camera.WithOrbitEnabled(true),
			camera.WithOrthographicZoom(),
			camera.WithOrbitSmoothingWeight(0),
		)
		require.NoError(t, err)
		rig := camera.NewRig(ctrl, common.Vec3{Z: 8}, common.Vec3{}, common.Vec3{Y: 1}, camera.WithSmoother(nil))
		cam := camera.NewCamera(
			camera.WithRig(rig),
			camera.WithOrthographicProjection(4.0),
		)
		s.AddCamera(cam)

		snapshot := camera.InputSnapshot{
			WheelDelta: common.Vec2{Y: 1},
			WheelUnit:  camera.WheelUnitLine,
		}
		require.NoError(t, s.Update(&snapshot, 1.0))

		// Wheel up shrinks the ortho scale: 4.0 * (1 - 1*0.2) = 3.2.
		assert.InDelta(t, 3.2, cam.OrthoScale(), 1e-5)
	})
}

func TestSceneProps(t *testing.T) {
	t.Run("props register and draw each frame", func(t *testing.T) {
		fake := newFakeRenderer()
		s := NewScene("test", fake)
		s.AddCamera(newFpsCamera(t, true, common.Vec3{}))

		vertices, indices := unitQuad()
		id, err := s.AddProp(vertices, indices, identityMatrix(), [4]float32{1, 0, 0, 1})
		require.NoError(t, err)
		assert.Equal(t, 1, s.PropCount())

		require.NoError(t, s.Render())
		assert.Equal(t, 1, fake.frames)
		assert.Len(t, fake.drawn, 1)
		assert.Equal(t, 1, fake.cameraSets)

		s.RemoveProp(id)
		require.NoError(t, s.Render())
		assert.Empty(t, fake.drawn)
	})

	t.Run("prop updates reach the renderer", func(t *testing.T) {
		fake := newFakeRenderer()
		s := NewScene("test", fake)

		vertices, indices := unitQuad()
		id, err := s.AddProp(vertices, indices, identityMatrix(), [4]float32{1, 0, 0, 1})
		require.NoError(t, err)

		require.NoError(t, s.SetPropColor(id, [4]float32{0, 1, 0, 1}))
		assert.Equal(t, [4]float32{0, 1, 0, 1}, fake.uploads[renderer.MeshID(1)])

		assert.Error(t, s.SetPropTransform(999, identityMatrix()))
		assert.Error(t, s.SetPropColor(999, [4]float32{}))
	})

	t.Run("render without an active camera is a no-op", func(t *testing.T) {
		fake := newFakeRenderer()
		s := NewScene("test", fake)

		require.NoError(t, s.Render())
		assert.Zero(t, fake.frames)
	})
}
