package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverity/smoothcam/engine/camera"
	"github.com/mverity/smoothcam/engine/input"
	"github.com/mverity/smoothcam/engine/renderer"
	"github.com/mverity/smoothcam/engine/scene"
)

// recordingScene is a minimal scene.Scene that records what Update receives.
type recordingScene struct {
	name     string
	active   bool
	updates  int
	lastSnap *camera.InputSnapshot
	lastDT   float32
}

var _ scene.Scene = &recordingScene{}

func (s *recordingScene) Name() string                            { return s.name }
func (s *recordingScene) SetName(name string)                     { s.name = name }
func (s *recordingScene) Active() bool                            { return s.active }
func (s *recordingScene) SetActive(active bool)                   { s.active = active }
func (s *recordingScene) Renderer() renderer.Renderer             { return nil }
func (s *recordingScene) SetRenderer(renderer.Renderer)           {}
func (s *recordingScene) AddCamera(camera.Camera) uint64          { return 0 }
func (s *recordingScene) RemoveCamera(uint64)                     {}
func (s *recordingScene) GetCamera(uint64) camera.Camera          { return nil }
func (s *recordingScene) ActiveCamera() (uint64, camera.Camera, bool) {
	return 0, nil, false
}
func (s *recordingScene) CameraCount() int { return 0 }
func (s *recordingScene) AddProp([]renderer.Vertex, []uint32, [16]float32, [4]float32) (uint64, error) {
	return 0, nil
}
func (s *recordingScene) SetPropTransform(uint64, [16]float32) error { return nil }
func (s *recordingScene) SetPropColor(uint64, [4]float32) error      { return nil }
func (s *recordingScene) RemoveProp(uint64)                          {}
func (s *recordingScene) PropCount() int                             { return 0 }
func (s *recordingScene) SetAspect(float32)                          {}
func (s *recordingScene) Render() error                              { return nil }

func (s *recordingScene) Update(snapshot *camera.InputSnapshot, deltaTime float32) error {
	s.updates++
	s.lastSnap = snapshot
	s.lastDT = deltaTime
	return nil
}

func TestEngineTick(t *testing.T) {
	t.Run("All Active Scenes Share One Snapshot", func(t *testing.T) {
		first := &recordingScene{name: "first", active: true}
		second := &recordingScene{name: "second", active: true}
		idle := &recordingScene{name: "idle", active: false}

		collector := input.NewCollector()
		e := NewEngine(
			WithCollector(collector),
			WithScene(0, first),
			WithScene(1, second),
			WithScene(2, idle),
		).(*engine)

		collector.Scrolled(0, 2)
		e.tick(1.0 / 60.0)

		require.NotNil(t, first.lastSnap)
		require.NotNil(t, second.lastSnap)
		// The collector is drained once per tick, not once per scene, so
		// every active scene sees the same wheel delta.
		assert.Same(t, first.lastSnap, second.lastSnap)
		assert.InDelta(t, 2.0, float64(first.lastSnap.WheelDelta.Y), 1e-6)
		assert.Equal(t, 0, idle.updates)

		// A fresh tick takes a fresh, empty snapshot.
		e.tick(1.0 / 60.0)
		assert.InDelta(t, 0.0, float64(first.lastSnap.WheelDelta.Y), 1e-6)
	})

	t.Run("No Collector Passes Nil Input", func(t *testing.T) {
		only := &recordingScene{name: "only", active: true}
		e := NewEngine(WithScene(0, only)).(*engine)

		e.tick(0.5)

		assert.Equal(t, 1, only.updates)
		assert.Nil(t, only.lastSnap)
		assert.InDelta(t, 0.5, float64(only.lastDT), 1e-6)
	})
}
