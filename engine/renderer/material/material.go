package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// material is the implementation of the PortalMaterial interface.
type material struct {
	mu *sync.RWMutex

	name      string
	program   shader.Shader
	env       shader.Sampler
	gpuTarget renderer.GPUCubeTarget

	bindGroupLayout *wgpu.BindGroupLayout
	bindGroup       *wgpu.BindGroup
}

// PortalMaterial is the surface material of a portal. Its only bindable input is the
// environment: a directional lookup on the CPU side, mirrored by a cube texture and
// sampler on the GPU side when a device exists. Until an environment is bound the
// surface shades black.
type PortalMaterial interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Shader retrieves the surface program the material draws with.
	//
	// Returns:
	//   - shader.Shader: the portal surface shader
	Shader() shader.Shader

	// SetEnvironment binds the environment the surface samples. Nil unbinds it.
	//
	// Parameters:
	//   - env: the environment lookup
	SetEnvironment(env shader.Sampler)

	// Environment retrieves the bound environment, or nil.
	//
	// Returns:
	//   - shader.Sampler: the bound environment
	Environment() shader.Sampler

	// SetGPUTarget binds the GPU mirror of the environment whose view and sampler feed the shader's environment group.
	//
	// Parameters:
	//   - target: the GPU cube target
	SetGPUTarget(target renderer.GPUCubeTarget)

	// GPUTarget retrieves the bound GPU cube target, or nil when running without a device.
	//
	// Returns:
	//   - renderer.GPUCubeTarget: the GPU cube target
	GPUTarget() renderer.GPUCubeTarget

	// EnvironmentEntries builds the bind group entries of the shader's environment group from the GPU target.
	//
	// Returns:
	//   - []wgpu.BindGroupEntry: the cube view and sampler entries, in layout order
	//   - error: ErrNoGPUTarget when no GPU target is bound
	EnvironmentEntries() ([]wgpu.BindGroupEntry, error)

	// BindEnvironment creates the environment bind group layout and bind group on the device,
	// replacing any previous ones.
	//
	// Parameters:
	//   - device: the device the GPU target was created on
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group for the shader's environment group
	//   - error: ErrNoGPUTarget, or the device error
	BindEnvironment(device *wgpu.Device) (*wgpu.BindGroup, error)

	// EnvironmentBindGroup returns the bind group created by BindEnvironment, or nil.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group
	EnvironmentBindGroup() *wgpu.BindGroup

	// ReleaseGPU frees the environment bind group and unbinds the GPU target. The target itself is not released.
	ReleaseGPU()

	// Shade computes the surface color at a point as seen by the viewer.
	//
	// Parameters:
	//   - fragPos: the world position of the shaded point
	//   - normal: the world-space surface normal
	//   - viewer: the world position of the viewer
	//
	// Returns:
	//   - common.Color: the surface color, opaque black if no environment is bound
	Shade(fragPos, normal, viewer common.Vec3) common.Color
}

var _ PortalMaterial = &material{}

// NewPortalMaterial creates a portal material drawing with the portal surface shader.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - PortalMaterial: the new material
func NewPortalMaterial(options ...MaterialBuilderOption) PortalMaterial {
	m := &material{
		mu:   &sync.RWMutex{},
		name: "portal",
	}
	for _, option := range options {
		option(m)
	}
	if m.program == nil {
		m.program = shader.NewPortalSurfaceShader()
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Shader() shader.Shader {
	return m.program
}

func (m *material) SetEnvironment(env shader.Sampler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.env = env
}

func (m *material) Environment() shader.Sampler {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.env
}

func (m *material) SetGPUTarget(target renderer.GPUCubeTarget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gpuTarget = target
}

func (m *material) GPUTarget() renderer.GPUCubeTarget {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gpuTarget
}

func (m *material) Shade(fragPos, normal, viewer common.Vec3) common.Color {
	env := m.Environment()
	if env == nil {
		return common.Color{A: 1}
	}
	return shader.Shade(fragPos, normal, viewer, env)
}
