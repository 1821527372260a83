package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUCubeTarget mirrors a CubeMap into a six-layer wgpu texture with a cube view and sampler,
// ready to bind to the portal surface shader.
type GPUCubeTarget interface {
	// Upload writes all six faces of the cube map to the texture, resampling them when the
	// cube map size differs from the target size.
	// Uploads are skipped when the cube map has not changed since the last upload.
	//
	// Parameters:
	//   - src: the cube map to mirror
	//
	// Returns:
	//   - error: ErrCaptureSize if src is nil or empty
	Upload(src *CubeMap) error

	// View returns the cube texture view.
	//
	// Returns:
	//   - *wgpu.TextureView: the cube view
	View() *wgpu.TextureView

	// Sampler returns the sampler used to read the cube.
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler
	Sampler() *wgpu.Sampler

	// Size returns the face edge length in texels.
	//
	// Returns:
	//   - uint32: the face size
	Size() uint32

	// Release frees the texture, view and sampler.
	Release()
}

type gpuCubeTarget struct {
	mu *sync.Mutex

	label   string
	size    uint32
	sampler common.SamplerStagingData

	queue       *wgpu.Queue
	texture     *wgpu.Texture
	view        *wgpu.TextureView
	samp        *wgpu.Sampler
	uploadedGen uint64
	uploaded    bool
}

var _ GPUCubeTarget = &gpuCubeTarget{}

// NewGPUCubeTarget creates the cube texture, its cube view and a sampler on the given GPU.
//
// Parameters:
//   - gpu: the opened device bundle
//   - size: the face edge length in texels
//   - options: functional options to configure the target
//
// Returns:
//   - GPUCubeTarget: the created target
//   - error: an error if any GPU object could not be created
func NewGPUCubeTarget(gpu *GPU, size uint32, options ...GPUCubeTargetOption) (GPUCubeTarget, error) {
	if gpu == nil || gpu.Device == nil {
		panic("renderer: NewGPUCubeTarget requires an opened GPU")
	}
	if size == 0 {
		return nil, ErrCaptureSize
	}
	t := &gpuCubeTarget{
		mu:    &sync.Mutex{},
		label: "Portal Cube",
		size:  size,
		queue: gpu.Queue,
	}
	for _, option := range options {
		option(t)
	}

	tex, err := gpu.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     t.label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              size,
			Height:             size,
			DepthOrArrayLayers: camera.CubeFaceCount,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cube texture: %w", err)
	}
	t.texture = tex

	view, err := tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           t.label + " View",
		Format:          wgpu.TextureFormatRGBA8UnormSrgb,
		Dimension:       wgpu.TextureViewDimensionCube,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: camera.CubeFaceCount,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("failed to create cube texture view: %w", err)
	}
	t.view = view

	samp, err := gpu.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         t.label + " Sampler",
		AddressModeU:  common.Coalesce(t.sampler.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(t.sampler.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(t.sampler.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(t.sampler.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(t.sampler.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(t.sampler.MipmapFilter, wgpu.MipmapFilterModeNearest),
		LodMinClamp:   common.Coalesce(t.sampler.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(t.sampler.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(t.sampler.MaxAnisotropy, 1),
	})
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("failed to create cube sampler: %w", err)
	}
	t.samp = samp

	return t, nil
}

func (t *gpuCubeTarget) Upload(src *CubeMap) error {
	if src == nil || src.Size() == 0 {
		return ErrCaptureSize
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	gen := src.Generation()
	if t.uploaded && gen == t.uploadedGen {
		return nil
	}

	for _, layer := range src.StagingDataAt(int(t.size)) {
		t.queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  t.texture,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{Z: layer.Layer},
				Aspect:   wgpu.TextureAspectAll,
			},
			layer.Pixels,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  layer.Width * 4,
				RowsPerImage: layer.Height,
			},
			&wgpu.Extent3D{
				Width:              layer.Width,
				Height:             layer.Height,
				DepthOrArrayLayers: 1,
			},
		)
	}
	t.uploadedGen, t.uploaded = gen, true
	return nil
}

func (t *gpuCubeTarget) View() *wgpu.TextureView {
	return t.view
}

func (t *gpuCubeTarget) Sampler() *wgpu.Sampler {
	return t.samp
}

func (t *gpuCubeTarget) Size() uint32 {
	return t.size
}

func (t *gpuCubeTarget) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.samp != nil {
		t.samp.Release()
		t.samp = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
