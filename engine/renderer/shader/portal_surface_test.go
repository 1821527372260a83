package shader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSampler returns a fixed color and remembers the last lookup direction.
type recordingSampler struct {
	color common.Color
	last  common.Vec3
	calls int
}

func (r *recordingSampler) Sample(dir common.Vec3) common.Color {
	r.last = dir
	r.calls++
	return r.color
}

func TestLookupDirectionHeadOn(t *testing.T) {
	// viewer straight in front of a surface whose normal faces it
	dir := LookupDirection(common.V3(0, 0, 5), common.V3(0, 0, -1), common.V3(0, 0, 0))

	assert.True(t, dir.ApproxEqual(common.V3(0, 0, 1), 1e-6))
}

func TestLookupDirectionBlendsTowardNormal(t *testing.T) {
	frag := common.V3(1, 0, 1)
	normal := common.V3(0, 0, -1)
	viewer := common.Vec3{}

	got := LookupDirection(frag, normal, viewer)

	s := 1 / math32.Sqrt(2)
	want := common.V3(0.7*s, 0, 0.7*s-0.3).Normalize()
	assert.True(t, got.ApproxEqual(want, 1e-6), "got %v want %v", got, want)
	assert.InDelta(t, 1, got.Length(), 1e-6)
}

func TestLookupDirectionIgnoresNormalLength(t *testing.T) {
	a := LookupDirection(common.V3(2, 1, 3), common.V3(0, 0, -1), common.V3(0, 1, 0))
	b := LookupDirection(common.V3(2, 1, 3), common.V3(0, 0, -7), common.V3(0, 1, 0))

	assert.True(t, a.ApproxEqual(b, 1e-6))
}

func TestShadeSamplesEnvironmentOnce(t *testing.T) {
	env := &recordingSampler{color: common.Color{R: 0.2, G: 0.4, B: 0.6, A: 0}}
	frag, normal, viewer := common.V3(0.5, 0, 3), common.V3(0, 0, -1), common.V3(0, 0, -2)

	c := Shade(frag, normal, viewer, env)

	assert.Equal(t, 1, env.calls)
	assert.True(t, env.last.ApproxEqual(LookupDirection(frag, normal, viewer), 1e-7))
	assert.Equal(t, common.Color{R: 0.2, G: 0.4, B: 0.6, A: 1}, c)
}

func TestShadeIsPure(t *testing.T) {
	env := &recordingSampler{color: common.Color{R: 1, A: 1}}
	frag, normal, viewer := common.V3(1, 2, 3), common.V3(0, 1, 0), common.V3(-1, 5, 0)

	first := Shade(frag, normal, viewer, env)
	firstDir := env.last
	second := Shade(frag, normal, viewer, env)

	assert.Equal(t, first, second)
	assert.Equal(t, firstDir, env.last)
}

func TestPortalSurfaceShaderReflection(t *testing.T) {
	s := NewPortalSurfaceShader()

	assert.Equal(t, PortalSurfaceKey, s.Key())
	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	require.NotNil(t, s.Module())
	assert.Equal(t, PortalSurfaceKey, s.Module().Label)

	layouts := s.BindGroupLayoutDescriptors()
	require.Len(t, layouts, 2)

	env := layouts[EnvironmentGroup]
	require.Len(t, env.Entries, 2)
	assert.Equal(t, uint32(EnvironmentTextureBinding), env.Entries[0].Binding)
	assert.Equal(t, wgpu.TextureViewDimensionCube, env.Entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, env.Entries[0].Texture.SampleType)
	assert.Equal(t, uint32(EnvironmentSamplerBinding), env.Entries[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, env.Entries[1].Sampler.Type)

	assert.Equal(t, wgpu.BufferBindingTypeUniform, layouts[0].Entries[0].Buffer.Type)
	assert.Equal(t, "env_map", s.BindGroupVarName(EnvironmentGroup, EnvironmentTextureBinding))
	assert.Equal(t, "", s.BindGroupVarName(7, 0))
}

func TestReflectionSkipsComments(t *testing.T) {
	src := `
// @group(0) @binding(0) var<uniform> ghost: f32;
/* @group(3) @binding(0) var t: texture_2d<f32>; */
@group(2) @binding(4) var<storage, read> data: array<f32>;
@fragment fn main_fs() -> @location(0) vec4<f32> { return vec4<f32>(0.0); }
`
	s := NewShader("test", src)

	layouts := s.BindGroupLayoutDescriptors()
	require.Len(t, layouts, 1)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, layouts[2].Entries[0].Buffer.Type)
	assert.Equal(t, "", s.VertexEntryPoint())
	assert.Equal(t, "main_fs", s.FragmentEntryPoint())
}

func TestNewShaderPanicsWithoutSource(t *testing.T) {
	assert.Panics(t, func() { NewShader("empty", "") })
}

func TestPortalUniformsMarshal(t *testing.T) {
	u := GPUPortalUniforms{Viewer: [4]float32{1, 2, 3, 0}}
	u.ViewProj[0] = 1

	buf := u.Marshal()

	assert.Len(t, buf, u.Size())
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, buf[0:4])
	assert.Equal(t, []byte{0, 0, 0x40, 0x40}, buf[136:140])
}
