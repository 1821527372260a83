package material

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoGPUTarget is returned when environment bindings are requested before a GPU cube target is bound.
var ErrNoGPUTarget = errors.New("material: no GPU cube target bound")

// environmentEntries builds the bind group entries of the shader's environment group from the
// GPU target's cube view and sampler.
func (m *material) environmentEntries() (wgpu.BindGroupLayoutDescriptor, []wgpu.BindGroupEntry, error) {
	target := m.GPUTarget()
	if target == nil {
		return wgpu.BindGroupLayoutDescriptor{}, nil, ErrNoGPUTarget
	}
	layout, ok := m.program.BindGroupLayoutDescriptors()[shader.EnvironmentGroup]
	if !ok {
		return wgpu.BindGroupLayoutDescriptor{}, nil, fmt.Errorf("material %s: shader %s declares no group %d", m.name, m.program.Key(), shader.EnvironmentGroup)
	}

	entries := make([]wgpu.BindGroupEntry, len(layout.Entries))
	for i, entry := range layout.Entries {
		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: target.View()}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: target.Sampler()}
		default:
			return wgpu.BindGroupLayoutDescriptor{}, nil, fmt.Errorf("material %s: environment binding %d is neither a texture nor a sampler", m.name, entry.Binding)
		}
	}
	return layout, entries, nil
}

func (m *material) EnvironmentEntries() ([]wgpu.BindGroupEntry, error) {
	_, entries, err := m.environmentEntries()
	return entries, err
}

func (m *material) BindEnvironment(device *wgpu.Device) (*wgpu.BindGroup, error) {
	desc, entries, err := m.environmentEntries()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseBindingsLocked()

	layout, err := device.CreateBindGroupLayout(&desc)
	if err != nil {
		return nil, fmt.Errorf("material %s: create environment layout: %w", m.name, err)
	}
	group, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   m.name + " Environment Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		layout.Release()
		return nil, fmt.Errorf("material %s: create environment bind group: %w", m.name, err)
	}
	m.bindGroupLayout = layout
	m.bindGroup = group
	return group, nil
}

func (m *material) EnvironmentBindGroup() *wgpu.BindGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bindGroup
}

func (m *material) ReleaseGPU() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseBindingsLocked()
	m.gpuTarget = nil
}

// releaseBindingsLocked frees the environment bind group and layout. Caller must hold the write lock.
func (m *material) releaseBindingsLocked() {
	if m.bindGroup != nil {
		m.bindGroup.Release()
		m.bindGroup = nil
	}
	if m.bindGroupLayout != nil {
		m.bindGroupLayout.Release()
		m.bindGroupLayout = nil
	}
}
