package pipeline

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the render pipeline of one surface program together with the bind group layouts
// created from the program's reflected groups.
type pipeline struct {
	key     string
	program shader.Shader

	colorFormat       wgpu.TextureFormat
	depthFormat       wgpu.TextureFormat
	depthTestEnabled  bool
	depthWriteEnabled bool
	cullMode          wgpu.CullMode
	frontFace         wgpu.FrontFace
	topology          wgpu.PrimitiveTopology
	writeMask         wgpu.ColorWriteMask

	renderPipeline   *wgpu.RenderPipeline
	pipelineLayout   *wgpu.PipelineLayout
	bindGroupLayouts []*wgpu.BindGroupLayout
	module           *wgpu.ShaderModule
}

// Pipeline is a render pipeline for a surface program drawn with SurfaceVertex meshes.
// Group layouts come from the program's reflected bind groups, so bind groups built from the
// same program (such as a portal material's environment group) bind to it directly.
type Pipeline interface {
	// Key returns the unique key of the pipeline, used as its label.
	//
	// Returns:
	//   - string: the pipeline key
	Key() string

	// Shader returns the program the pipeline runs.
	//
	// Returns:
	//   - shader.Shader: the program
	Shader() shader.Shader

	// ColorFormat returns the format of the color target the pipeline writes.
	//
	// Returns:
	//   - wgpu.TextureFormat: the color format
	ColorFormat() wgpu.TextureFormat

	// DepthFormat returns the depth attachment format, or TextureFormatUndefined when depth testing is off.
	//
	// Returns:
	//   - wgpu.TextureFormat: the depth format
	DepthFormat() wgpu.TextureFormat

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// RenderPipeline returns the created GPU pipeline, or nil before Init.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayout returns the layout created for a bind group index.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout, or nil if the program declares no such group
	BindGroupLayout(group int) *wgpu.BindGroupLayout

	// Init creates the shader module, bind group layouts, pipeline layout and render pipeline.
	//
	// Parameters:
	//   - device: the device to create them on
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	Init(device *wgpu.Device) error

	// NewUniformBinding creates a uniform buffer and its bind group for a group that holds a
	// single uniform at binding 0.
	//
	// Parameters:
	//   - device: the device to create them on
	//   - group: the bind group index
	//   - size: the buffer size in bytes
	//   - label: the debug label
	//
	// Returns:
	//   - *UniformBinding: the buffer and bind group
	//   - error: an error if the group is missing or creation failed
	NewUniformBinding(device *wgpu.Device, group int, size uint64, label string) (*UniformBinding, error)

	// Draw records one indexed draw of mesh with the given bind groups, in group order.
	//
	// Parameters:
	//   - pass: the open render pass
	//   - mesh: the mesh to draw
	//   - groups: one bind group per group index, starting at 0
	Draw(pass *wgpu.RenderPassEncoder, mesh *Mesh, groups ...*wgpu.BindGroup)

	// Release frees every GPU object created by Init.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline configures a surface pipeline for program. Call Init to create it on a device.
//
// Parameters:
//   - program: the surface program, which must declare vertex and fragment entry points
//   - colorFormat: the format of the color target, usually the surface format
//   - options: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(program shader.Shader, colorFormat wgpu.TextureFormat, options ...PipelineBuilderOption) Pipeline {
	if program == nil {
		panic("pipeline: NewPipeline requires a shader")
	}
	p := &pipeline{
		key:               program.Key(),
		program:           program,
		colorFormat:       colorFormat,
		depthFormat:       wgpu.TextureFormatDepth24Plus,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		frontFace:         wgpu.FrontFaceCCW,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	for _, option := range options {
		option(p)
	}
	if !p.depthTestEnabled {
		p.depthFormat = wgpu.TextureFormatUndefined
	}
	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Shader() shader.Shader {
	return p.program
}

func (p *pipeline) ColorFormat() wgpu.TextureFormat {
	return p.colorFormat
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BindGroupLayout(group int) *wgpu.BindGroupLayout {
	if group < 0 || group >= len(p.bindGroupLayouts) {
		return nil
	}
	return p.bindGroupLayouts[group]
}

// groupOrder returns the reflected group indices in order. Groups must be contiguous from 0
// because a pipeline layout cannot leave holes.
func groupOrder(descs map[int]wgpu.BindGroupLayoutDescriptor) ([]int, error) {
	groups := make([]int, 0, len(descs))
	for g := range descs {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	for i, g := range groups {
		if g != i {
			return nil, fmt.Errorf("bind groups must be contiguous from 0, missing group %d", i)
		}
	}
	return groups, nil
}

func (p *pipeline) Init(device *wgpu.Device) error {
	if p.program.VertexEntryPoint() == "" || p.program.FragmentEntryPoint() == "" {
		return fmt.Errorf("pipeline %s: shader needs both a vertex and a fragment entry point", p.key)
	}
	descs := p.program.BindGroupLayoutDescriptors()
	groups, err := groupOrder(descs)
	if err != nil {
		return fmt.Errorf("pipeline %s: %w", p.key, err)
	}

	module, err := device.CreateShaderModule(p.program.Module())
	if err != nil {
		return fmt.Errorf("pipeline %s: create shader module: %w", p.key, err)
	}
	p.module = module

	p.bindGroupLayouts = make([]*wgpu.BindGroupLayout, len(groups))
	for _, g := range groups {
		desc := descs[g]
		layout, err := device.CreateBindGroupLayout(&desc)
		if err != nil {
			p.Release()
			return fmt.Errorf("pipeline %s: create bind group layout %d: %w", p.key, g, err)
		}
		p.bindGroupLayouts[g] = layout
	}

	p.pipelineLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.key,
		BindGroupLayouts: p.bindGroupLayouts,
	})
	if err != nil {
		p.Release()
		return fmt.Errorf("pipeline %s: create pipeline layout: %w", p.key, err)
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  p.key + " Render Pipeline",
		Layout: p.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.program.VertexEntryPoint(),
			Buffers:    []wgpu.VertexBufferLayout{SurfaceVertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.program.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{{
				Format:    p.colorFormat,
				WriteMask: p.writeMask,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: p.frontFace,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	if p.depthTestEnabled {
		desc.DepthStencil = &wgpu.DepthStencilState{
			Format:            p.depthFormat,
			DepthWriteEnabled: p.depthWriteEnabled,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		}
	}

	p.renderPipeline, err = device.CreateRenderPipeline(desc)
	if err != nil {
		p.Release()
		return fmt.Errorf("pipeline %s: create render pipeline: %w", p.key, err)
	}
	return nil
}

func (p *pipeline) NewUniformBinding(device *wgpu.Device, group int, size uint64, label string) (*UniformBinding, error) {
	layout := p.BindGroupLayout(group)
	if layout == nil {
		return nil, fmt.Errorf("pipeline %s: no bind group layout %d", p.key, group)
	}
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: create uniform buffer: %w", p.key, err)
	}
	bg, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Uniform Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Size:    size,
		}},
	})
	if err != nil {
		buf.Release()
		return nil, fmt.Errorf("pipeline %s: create uniform bind group: %w", p.key, err)
	}
	return &UniformBinding{buffer: buf, group: bg}, nil
}

func (p *pipeline) Draw(pass *wgpu.RenderPassEncoder, mesh *Mesh, groups ...*wgpu.BindGroup) {
	pass.SetPipeline(p.renderPipeline)
	for i, g := range groups {
		pass.SetBindGroup(uint32(i), g, nil)
	}
	pass.SetVertexBuffer(0, mesh.vertices, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(mesh.indices, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	if p.pipelineLayout != nil {
		p.pipelineLayout.Release()
		p.pipelineLayout = nil
	}
	for i, l := range p.bindGroupLayouts {
		if l != nil {
			l.Release()
			p.bindGroupLayouts[i] = nil
		}
	}
	p.bindGroupLayouts = nil
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
}

// UniformBinding is a uniform buffer together with the bind group exposing it.
type UniformBinding struct {
	buffer *wgpu.Buffer
	group  *wgpu.BindGroup
}

// Write uploads data to the start of the buffer.
func (u *UniformBinding) Write(queue *wgpu.Queue, data []byte) error {
	return queue.WriteBuffer(u.buffer, 0, data)
}

// BindGroup returns the bind group to pass to Draw.
func (u *UniformBinding) BindGroup() *wgpu.BindGroup {
	return u.group
}

func (u *UniformBinding) Release() {
	if u.group != nil {
		u.group.Release()
		u.group = nil
	}
	if u.buffer != nil {
		u.buffer.Release()
		u.buffer = nil
	}
}
