package material

import (
	"image"
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnboundMaterialShadesBlack(t *testing.T) {
	m := NewPortalMaterial()

	assert.Nil(t, m.Environment())
	assert.Equal(t, common.Color{A: 1}, m.Shade(common.V3(0, 0, 1), common.V3(0, 0, -1), common.Vec3{}))
	assert.Equal(t, shader.PortalSurfaceKey, m.Shader().Key())
	assert.Nil(t, m.GPUTarget())
}

func TestBoundMaterialSamplesCubeMap(t *testing.T) {
	cm := renderer.NewCubeMap(2)
	green := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(green.Pix); i += 4 {
		copy(green.Pix[i:i+4], []byte{0, 255, 0, 255})
	}
	require.NoError(t, cm.SetFace(camera.CubeFacePosZ, green))

	m := NewPortalMaterial(WithName("a"))
	m.SetEnvironment(cm)

	// looking straight through the surface hits the +Z face
	got := m.Shade(common.V3(0, 0, 3), common.V3(0, 0, -1), common.Vec3{})
	assert.Equal(t, common.ColorFromRGBA(color.RGBA{G: 255, A: 255}), got)
	assert.Equal(t, "a", m.Name())

	m.SetEnvironment(nil)
	assert.Equal(t, common.Color{A: 1}, m.Shade(common.V3(0, 0, 3), common.V3(0, 0, -1), common.Vec3{}))
}

type fakeCubeTarget struct {
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

func (f *fakeCubeTarget) Upload(*renderer.CubeMap) error { return nil }
func (f *fakeCubeTarget) View() *wgpu.TextureView        { return f.view }
func (f *fakeCubeTarget) Sampler() *wgpu.Sampler         { return f.sampler }
func (f *fakeCubeTarget) Size() uint32                   { return 2 }
func (f *fakeCubeTarget) Release()                       {}

func TestEnvironmentEntriesFollowShaderLayout(t *testing.T) {
	m := NewPortalMaterial()

	_, err := m.EnvironmentEntries()
	assert.ErrorIs(t, err, ErrNoGPUTarget)

	target := &fakeCubeTarget{view: &wgpu.TextureView{}, sampler: &wgpu.Sampler{}}
	m.SetGPUTarget(target)

	entries, err := m.EnvironmentEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		switch e.Binding {
		case shader.EnvironmentTextureBinding:
			assert.Same(t, target.view, e.TextureView)
			assert.Nil(t, e.Sampler)
		case shader.EnvironmentSamplerBinding:
			assert.Same(t, target.sampler, e.Sampler)
			assert.Nil(t, e.TextureView)
		default:
			t.Fatalf("unexpected binding %d", e.Binding)
		}
	}

	m.ReleaseGPU()
	assert.Nil(t, m.GPUTarget())
	assert.Nil(t, m.EnvironmentBindGroup())
}
