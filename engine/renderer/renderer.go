package renderer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/mverity/smoothcam/common"
)

// PresentMode controls how finished frames are delivered to the display.
type PresentMode int

const (
	// PresentModeUncapped presents frames as fast as they are produced.
	PresentModeUncapped PresentMode = iota
	// PresentModeVSync synchronizes presentation with the display refresh.
	PresentModeVSync
)

// Vertex is the interleaved vertex format the forward pipeline consumes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// MeshID identifies a mesh registered with the renderer.
type MeshID uint64

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend wgpuBackend

	meshes     map[MeshID]*meshResources
	nextMeshID MeshID

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingClearColor    *[4]float64
}

// Renderer draws registered meshes with a single forward-lit pipeline.
//
// This is a high-level API designed to simplify rendering tasks into a
// streamlined and idiomatic flow: register meshes once, update their model
// transforms and colors per frame, then batch draw calls between BeginFrame
// and EndFrame.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetCamera uploads the combined view-projection matrix used by every
	// draw call this frame.
	//
	// Parameters:
	//   - viewProjection: column-major combined view-projection matrix
	SetCamera(viewProjection [16]float32)

	// CreateMesh uploads vertex and index data to the GPU and registers the
	// mesh for drawing.
	//
	// Parameters:
	//   - vertices: interleaved position/normal vertex data
	//   - indices: triangle list indices into the vertex data
	//
	// Returns:
	//   - MeshID: handle for draw and update calls
	//   - error: an error if GPU buffer creation fails
	CreateMesh(vertices []Vertex, indices []uint32) (MeshID, error)

	// UpdateMesh uploads a mesh's model matrix and base color.
	//
	// Parameters:
	//   - id: the mesh to update
	//   - model: column-major model matrix
	//   - color: RGBA base color
	//
	// Returns:
	//   - error: an error if the mesh is not registered
	UpdateMesh(id MeshID, model [16]float32, color [4]float32) error

	// BeginFrame acquires the next swapchain texture and begins the main
	// render pass. Must be paired with EndFrame after all Draw invocations.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw encodes a draw command for a registered mesh within the current
	// render pass.
	//
	// Parameters:
	//   - id: the mesh to draw
	Draw(id MeshID)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	EndFrame()

	// Present presents the rendered frame to the surface.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to a window surface.
//
// Parameters:
//   - surfaceDescriptor: platform surface descriptor from the window
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:     &sync.Mutex{},
		meshes: make(map[MeshID]*meshResources),
	}
	for _, option := range options {
		option(r)
	}

	r.backend = newWGPUBackend(surfaceDescriptor, r.forceFallbackAdapter)
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetCamera(viewProjection [16]float32) {
	r.backend.WriteCameraUniform(common.StructToBytes(&viewProjection))
}

func (r *renderer) CreateMesh(vertices []Vertex, indices []uint32) (MeshID, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, fmt.Errorf("mesh requires vertex and index data")
	}

	res, err := r.backend.InitMeshResources(
		common.SliceToBytes(vertices),
		common.SliceToBytes(indices),
		len(indices),
	)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextMeshID++
	id := r.nextMeshID
	r.meshes[id] = res
	return id, nil
}

func (r *renderer) UpdateMesh(id MeshID, model [16]float32, color [4]float32) error {
	r.mu.Lock()
	res, ok := r.meshes[id]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("mesh %d is not registered", id)
	}

	var uniform meshUniform
	uniform.Model = model
	uniform.Color = color
	r.backend.WriteMeshUniform(res, common.StructToBytes(&uniform))
	return nil
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(id MeshID) {
	r.mu.Lock()
	res, ok := r.meshes[id]
	r.mu.Unlock()
	if !ok {
		return
	}
	r.backend.DrawCall(res)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

// meshUniform is the per-mesh GPU uniform block: model matrix plus base
// color, matching the WGSL MeshUniform struct layout.
type meshUniform struct {
	Model [16]float32
	Color [4]float32
}
