package renderer

import "github.com/Carmen-Shannon/oxy-portal/common"

// GPUCubeTargetOption is a functional option for configuring a GPUCubeTarget.
type GPUCubeTargetOption func(*gpuCubeTarget)

// WithTargetLabel sets the label prefix of the GPU objects, shown in graphics debuggers.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - GPUCubeTargetOption: functional option to set the label
func WithTargetLabel(label string) GPUCubeTargetOption {
	return func(t *gpuCubeTarget) {
		t.label = label
	}
}

// WithSamplerConfig overrides the sampler configuration. Zero fields keep the
// clamp-to-edge linear defaults.
//
// Parameters:
//   - cfg: the sampler configuration
//
// Returns:
//   - GPUCubeTargetOption: functional option to set the sampler
func WithSamplerConfig(cfg common.SamplerStagingData) GPUCubeTargetOption {
	return func(t *gpuCubeTarget) {
		t.sampler = cfg
	}
}
