package renderer

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPU bundles the wgpu objects needed to own GPU resources: instance, adapter, device
// and queue, plus the presentation surface when one was requested.
type GPU struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
}

// OpenGPU requests an adapter and device. A nil surface descriptor opens a headless device.
// Locks the calling goroutine to its OS thread, as wgpu expects.
//
// Parameters:
//   - surfaceDescriptor: platform surface to render to, or nil
//   - forceFallbackAdapter: request the software adapter
//
// Returns:
//   - *GPU: the opened device bundle
//   - error: an error if no adapter or device could be obtained
func OpenGPU(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*GPU, error) {
	runtime.LockOSThread()
	g := &GPU{Instance: wgpu.CreateInstance(nil)}
	if surfaceDescriptor != nil {
		g.Surface = g.Instance.CreateSurface(surfaceDescriptor)
	}

	a, err := g.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    g.Surface,
	})
	if err != nil {
		g.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	g.Adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Portal Device",
	})
	if err != nil {
		g.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	g.Device = d
	g.Queue = d.GetQueue()
	return g, nil
}

// Release frees every object the bundle holds, in reverse creation order.
func (g *GPU) Release() {
	if g.Device != nil {
		g.Device.Release()
	}
	if g.Adapter != nil {
		g.Adapter.Release()
	}
	if g.Surface != nil {
		g.Surface.Release()
	}
	if g.Instance != nil {
		g.Instance.Release()
	}
}
