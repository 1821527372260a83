package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrFrameInFlight is returned by Begin while the previous frame has not been ended.
var ErrFrameInFlight = errors.New("renderer: previous frame not yet presented")

// SurfaceTarget owns the swapchain configuration and depth buffer of a window surface and
// hands out one render pass per frame.
type SurfaceTarget interface {
	// Format returns the color format of the configured surface.
	//
	// Returns:
	//   - wgpu.TextureFormat: the swapchain format
	Format() wgpu.TextureFormat

	// Configure (re)configures the swapchain and depth buffer for a framebuffer size.
	// Zero sizes are ignored so minimized windows keep their last configuration.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	//
	// Returns:
	//   - error: an error if the depth buffer could not be created
	Configure(width, height int) error

	// Size returns the configured framebuffer size.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)

	// Begin acquires the next swapchain image and opens a render pass that clears it.
	//
	// Parameters:
	//   - clear: the clear color
	//
	// Returns:
	//   - *wgpu.RenderPassEncoder: the open pass
	//   - error: ErrFrameInFlight, or an error acquiring the image
	Begin(clear common.Color) (*wgpu.RenderPassEncoder, error)

	// End closes the pass, submits it and presents the image.
	//
	// Returns:
	//   - error: an error if the commands could not be finished
	End() error

	// Release frees the depth buffer and any frame still held.
	Release()
}

type surfaceTarget struct {
	mu *sync.Mutex

	gpu           *GPU
	format        wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	width, height int

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
}

var _ SurfaceTarget = &surfaceTarget{}

// NewSurfaceTarget picks the surface's preferred format. Call Configure before the first frame.
//
// Parameters:
//   - gpu: a GPU opened with a surface descriptor
//
// Returns:
//   - SurfaceTarget: the target
//   - error: an error if the surface reports no usable format
func NewSurfaceTarget(gpu *GPU) (SurfaceTarget, error) {
	if gpu == nil || gpu.Surface == nil || gpu.Device == nil {
		panic("renderer: NewSurfaceTarget requires a GPU opened with a surface")
	}
	capabilities := gpu.Surface.GetCapabilities(gpu.Adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		return nil, errors.New("renderer: surface reports no formats")
	}
	return &surfaceTarget{
		mu:        &sync.Mutex{},
		gpu:       gpu,
		format:    capabilities.Formats[0],
		alphaMode: capabilities.AlphaModes[0],
	}, nil
}

func (s *surfaceTarget) Format() wgpu.TextureFormat {
	return s.format
}

func (s *surfaceTarget) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *surfaceTarget) Configure(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gpu.Surface.Configure(s.gpu.Adapter, s.gpu.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      s.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   s.alphaMode,
	})

	s.releaseDepthLocked()
	tex, err := s.gpu.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create depth texture view: %w", err)
	}
	s.depthTexture, s.depthView = tex, view
	s.width, s.height = width, height
	return nil
}

func (s *surfaceTarget) Begin(clear common.Color) (*wgpu.RenderPassEncoder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frameSurface != nil {
		return nil, ErrFrameInFlight
	}
	if s.depthView == nil {
		return nil, errors.New("renderer: surface target not configured")
	}

	surfaceTexture, err := s.gpu.Surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return nil, err
	}
	encoder, err := s.gpu.Device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return nil, err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Surface Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: wgpu.StoreOpStore,
			ClearValue: wgpu.Color{
				R: float64(clear.R),
				G: float64(clear.G),
				B: float64(clear.B),
				A: float64(clear.A),
			},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            s.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	s.frameSurface = surfaceTexture
	s.frameView = view
	s.frameEncoder = encoder
	s.framePass = pass
	return pass, nil
}

func (s *surfaceTarget) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.framePass == nil {
		return nil
	}
	defer s.releaseFrameLocked()

	if err := s.framePass.End(); err != nil {
		return fmt.Errorf("failed to end surface pass: %w", err)
	}
	commandBuffer, err := s.frameEncoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish surface commands: %w", err)
	}
	s.gpu.Queue.Submit(commandBuffer)
	commandBuffer.Release()
	s.gpu.Surface.Present()
	return nil
}

func (s *surfaceTarget) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseFrameLocked()
	s.releaseDepthLocked()
}

// releaseFrameLocked drops the references of the current frame. Caller must hold the mutex.
func (s *surfaceTarget) releaseFrameLocked() {
	if s.framePass != nil {
		s.framePass.Release()
		s.framePass = nil
	}
	if s.frameEncoder != nil {
		s.frameEncoder.Release()
		s.frameEncoder = nil
	}
	if s.frameView != nil {
		s.frameView.Release()
		s.frameView = nil
	}
	if s.frameSurface != nil {
		s.frameSurface.Release()
		s.frameSurface = nil
	}
}

// releaseDepthLocked frees the depth buffer. Caller must hold the mutex.
func (s *surfaceTarget) releaseDepthLocked() {
	if s.depthView != nil {
		s.depthView.Release()
		s.depthView = nil
	}
	if s.depthTexture != nil {
		s.depthTexture.Release()
		s.depthTexture = nil
	}
}
