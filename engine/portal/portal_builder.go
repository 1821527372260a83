package portal

import (
	"context"

	"github.com/Carmen-Shannon/oxy-portal/engine/renderer"
)

// PortalOption is a functional option for configuring a Portal.
type PortalOption func(*portal)

// WithGroup sets the pairing group explicitly, overriding the group derived from the label.
//
// Parameters:
//   - group: the pairing group
//
// Returns:
//   - PortalOption: functional option to set the group
func WithGroup(group string) PortalOption {
	return func(p *portal) {
		p.group = group
	}
}

// WithLabel sets the structured label, overriding the body's own label.
//
// Parameters:
//   - label: the label, e.g. "portal-to__panorama"
//
// Returns:
//   - PortalOption: functional option to set the label
func WithLabel(label string) PortalOption {
	return func(p *portal) {
		p.label = label
	}
}

// WithProximityThreshold sets the viewer distance below which the portal teleports.
//
// Parameters:
//   - threshold: the distance in world units
//
// Returns:
//   - PortalOption: functional option to set the threshold
func WithProximityThreshold(threshold float32) PortalOption {
	return func(p *portal) {
		p.threshold = threshold
	}
}

// WithFaceSize sets the edge length of each captured cube face.
//
// Parameters:
//   - size: texels per face edge
//
// Returns:
//   - PortalOption: functional option to set the face size
func WithFaceSize(size int) PortalOption {
	return func(p *portal) {
		p.faceSize = size
	}
}

// WithGPUFaceSize sets the edge length of the GPU cube faces. Captured faces are resampled to
// it on upload. Zero keeps the capture size.
//
// Parameters:
//   - size: texels per GPU face edge
//
// Returns:
//   - PortalOption: functional option to set the GPU face size
func WithGPUFaceSize(size int) PortalOption {
	return func(p *portal) {
		p.gpuSize = size
	}
}

// WithGPU mirrors the captured environment into a GPU cube texture on the given device.
//
// Parameters:
//   - gpu: the opened device
//
// Returns:
//   - PortalOption: functional option to set the device
func WithGPU(gpu *renderer.GPU) PortalOption {
	return func(p *portal) {
		p.gpu = gpu
	}
}

// WithContext sets the context environment captures run under.
//
// Parameters:
//   - ctx: the capture context
//
// Returns:
//   - PortalOption: functional option to set the context
func WithContext(ctx context.Context) PortalOption {
	return func(p *portal) {
		p.ctx = ctx
	}
}
