package scene

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/mverity/smoothcam/engine/camera"
	"github.com/mverity/smoothcam/engine/renderer"
)

// Scene manages a registry of cameras (each carrying its own rig) and a set of
// props rendered through the scene's renderer. One camera is active per frame,
// chosen deterministically from the enabled rig controllers; input is routed to
// that camera's rig only, while the others still run their passive smoothing
// step. Scenes can be hot-swapped via the Active flag to switch between
// different views or levels.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// AddCamera registers a camera with the scene and returns its assigned ID.
	// The camera must carry a rig; panics otherwise.
	//
	// Parameters:
	//   - cam: the camera to register (must not be nil and must have a rig attached)
	//
	// Returns:
	//   - uint64: the assigned camera ID
	AddCamera(cam camera.Camera) uint64

	// RemoveCamera removes a camera from the registry by ID. No-op if the ID
	// is not registered.
	//
	// Parameters:
	//   - id: the camera's unique ID
	RemoveCamera(id uint64)

	// GetCamera retrieves a camera by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the camera's unique ID
	//
	// Returns:
	//   - camera.Camera: the camera or nil
	GetCamera(id uint64) camera.Camera

	// ActiveCamera returns the camera whose rig will receive input this frame:
	// the registered camera with the lowest ID among those whose controllers
	// are enabled.
	//
	// Returns:
	//   - uint64: the active camera's ID
	//   - camera.Camera: the active camera
	//   - bool: false if no registered camera has an enabled controller
	ActiveCamera() (uint64, camera.Camera, bool)

	// CameraCount returns the number of registered cameras.
	//
	// Returns:
	//   - int: count of cameras in the registry
	CameraCount() int

	// AddProp uploads a mesh to the GPU and registers it for drawing each frame.
	// The scene's Renderer must be attached; panics otherwise.
	//
	// Parameters:
	//   - vertices: the mesh vertex data
	//   - indices: the triangle list indices into vertices
	//   - model: the initial model matrix in column-major order
	//   - color: the initial RGBA base color
	//
	// Returns:
	//   - uint64: the assigned prop ID
	//   - error: an error if the GPU resources could not be created
	AddProp(vertices []renderer.Vertex, indices []uint32, model [16]float32, color [4]float32) (uint64, error)

	// SetPropTransform updates a prop's model matrix.
	//
	// Parameters:
	//   - id: the prop's unique ID
	//   - model: the new model matrix in column-major order
	//
	// Returns:
	//   - error: an error if the prop is not registered
	SetPropTransform(id uint64, model [16]float32) error

	// SetPropColor updates a prop's base color.
	//
	// Parameters:
	//   - id: the prop's unique ID
	//   - color: the new RGBA base color
	//
	// Returns:
	//   - error: an error if the prop is not registered
	SetPropColor(id uint64, color [4]float32) error

	// RemoveProp removes a prop from the draw list by ID. No-op if the ID is
	// not registered. Does not release GPU resources.
	//
	// Parameters:
	//   - id: the prop's unique ID
	RemoveProp(id uint64)

	// PropCount returns the number of registered props.
	//
	// Returns:
	//   - int: count of props in the draw list
	PropCount() int

	// SetAspect sets the aspect ratio on every registered camera. Call when
	// the surface is resized.
	//
	// Parameters:
	//   - aspect: the new width/height aspect ratio
	SetAspect(aspect float32)

	// Update advances every camera's rig by one frame. The input snapshot is
	// routed to the active camera's rig only; all other rigs receive nil input
	// so their smoothers keep converging on their last pose. Rigs are stepped
	// in parallel across the scene's worker pool. A rig whose controller
	// reports an error holds its pose for the frame; the error is collected
	// and the remaining rigs still run.
	//
	// Parameters:
	//   - snapshot: the input gathered since the last frame (may be nil)
	//   - deltaTime: elapsed time since the last frame in seconds
	//
	// Returns:
	//   - error: the combined controller errors for this frame, or nil
	Update(snapshot *camera.InputSnapshot, deltaTime float32) error

	// Render draws all props through the renderer using the active camera's
	// view-projection matrix. No-ops (without error) when the scene has no
	// active camera.
	//
	// Returns:
	//   - error: an error if the frame could not be started
	Render() error
}

type cameraEntry struct {
	cam camera.Camera
}

type propEntry struct {
	meshID renderer.MeshID
	model  [16]float32
	color  [4]float32
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cameras      map[uint64]*cameraEntry
	nextCameraID uint64

	props      map[uint64]*propEntry
	nextPropID uint64

	r renderer.Renderer

	// updatePool manages a bounded set of reusable goroutines for the parallel
	// rig step in Update. Workers persist across frames, avoiding per-frame
	// goroutine spawn/teardown overhead.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given renderer. The renderer is
// required and NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		active:        false,
		r:             r,
		cameras:       make(map[uint64]*cameraEntry),
		nextCameraID:  1,
		props:         make(map[uint64]*propEntry),
		nextPropID:    1,
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the worker pool after options so WithUpdateWorkers can override
	// the default. Queue size of 256 accommodates typical camera counts with headroom.
	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) AddCamera(cam camera.Camera) uint64 {
	if cam == nil {
		panic("scene: cannot AddCamera with a nil Camera")
	}
	if cam.Rig() == nil {
		panic("scene: cannot AddCamera without a Rig attached")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextCameraID
	s.nextCameraID++
	s.cameras[id] = &cameraEntry{cam: cam}
	return id
}

func (s *scene) RemoveCamera(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cameras, id)
}

func (s *scene) GetCamera(id uint64) camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, exists := s.cameras[id]
	if !exists {
		return nil
	}
	return entry.cam
}

func (s *scene) ActiveCamera() (uint64, camera.Camera, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.activeCameraLocked()
	if !ok {
		return 0, nil, false
	}
	return id, s.cameras[id].cam, true
}

// activeCameraLocked resolves the active camera ID from the registered rig
// controllers. Caller must hold s.mu.
func (s *scene) activeCameraLocked() (uint64, bool) {
	controllers := make(map[uint64]camera.Controller, len(s.cameras))
	for id, entry := range s.cameras {
		controllers[id] = entry.cam.Rig().Controller()
	}
	return camera.SelectActive(controllers)
}

func (s *scene) CameraCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cameras)
}

func (s *scene) AddProp(vertices []renderer.Vertex, indices []uint32, model [16]float32, color [4]float32) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		panic("scene: cannot AddProp without a Renderer attached")
	}

	meshID, err := s.r.CreateMesh(vertices, indices)
	if err != nil {
		return 0, fmt.Errorf("scene: failed to create mesh: %w", err)
	}
	if err := s.r.UpdateMesh(meshID, model, color); err != nil {
		return 0, fmt.Errorf("scene: failed to upload prop uniforms: %w", err)
	}

	id := s.nextPropID
	s.nextPropID++
	s.props[id] = &propEntry{
		meshID: meshID,
		model:  model,
		color:  color,
	}
	return id, nil
}

func (s *scene) SetPropTransform(id uint64, model [16]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prop, exists := s.props[id]
	if !exists {
		return fmt.Errorf("scene: no prop with ID %d", id)
	}
	prop.model = model
	return s.r.UpdateMesh(prop.meshID, prop.model, prop.color)
}

func (s *scene) SetPropColor(id uint64, color [4]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prop, exists := s.props[id]
	if !exists {
		return fmt.Errorf("scene: no prop with ID %d", id)
	}
	prop.color = color
	return s.r.UpdateMesh(prop.meshID, prop.model, prop.color)
}

func (s *scene) RemoveProp(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.props, id)
}

func (s *scene) PropCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.props)
}

func (s *scene) SetAspect(aspect float32) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.cameras {
		entry.cam.SetAspect(aspect)
	}
}

func (s *scene) Update(snapshot *camera.InputSnapshot, deltaTime float32) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activeID, hasActive := s.activeCameraLocked()

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var stepErrs []error

	for id, entry := range s.cameras {
		// Input goes to the active rig only; the rest receive nil so their
		// smoothers keep easing toward their last commanded pose.
		var snap *camera.InputSnapshot
		if hasActive && id == activeID {
			snap = snapshot
		}

		wg.Add(1)
		cam := entry.cam
		taskID := id
		s.updatePool.SubmitTask(worker.Task{
			ID: int(taskID),
			Do: func() (any, error) {
				defer wg.Done()

				rig := cam.Rig()

				// Orthographic zoom couples the orbit controller to the
				// camera's projection: the controller captures the starting
				// scale once, then drives it through its zoom events.
				orbit, isOrbit := rig.Controller().(camera.OrbitController)
				if isOrbit && orbit.Orthographic() && cam.Projection() == camera.ProjectionOrthographic {
					orbit.CaptureOrthoScale(cam.OrthoScale())
				}

				presented, err := rig.Step(snap, deltaTime)
				if err != nil {
					errMu.Lock()
					stepErrs = append(stepErrs, fmt.Errorf("scene: camera %d: %w", taskID, err))
					errMu.Unlock()
				}

				if isOrbit && orbit.Orthographic() && cam.Projection() == camera.ProjectionOrthographic {
					cam.SetOrthoScale(orbit.OrthoScale())
				}

				if applyErr := cam.ApplyTransform(presented); applyErr != nil {
					errMu.Lock()
					stepErrs = append(stepErrs, fmt.Errorf("scene: camera %d: %w", taskID, applyErr))
					errMu.Unlock()
				}

				return nil, nil
			},
		})
	}
	wg.Wait()

	return errors.Join(stepErrs...)
}

func (s *scene) Render() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil {
		return nil
	}

	activeID, hasActive := s.activeCameraLocked()
	if !hasActive {
		return nil
	}

	s.r.SetCamera(s.cameras[activeID].cam.ViewProjectionMatrix())

	if err := s.r.BeginFrame(); err != nil {
		return err
	}
	for _, prop := range s.props {
		s.r.Draw(prop.meshID)
	}
	s.r.EndFrame()
	s.r.Present()

	return nil
}
