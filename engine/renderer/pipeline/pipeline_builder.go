package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithKey overrides the pipeline key, which defaults to the shader key.
//
// Parameters:
//   - key: the unique key for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the key
func WithKey(key string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.key = key
	}
}

// WithDepthTestEnabled enables or disables depth testing and the depth attachment.
//
// Parameters:
//   - enabled: whether depth testing is enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets depth testing
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled enables or disables depth writes.
//
// Parameters:
//   - enabled: whether depth writes are enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets depth writes
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithCullMode sets the face culling mode. Portal surfaces default to no culling so they
// show from both sides.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithFrontFace sets the winding order of front faces.
//
// Parameters:
//   - face: the front face winding
//
// Returns:
//   - PipelineBuilderOption: a function that sets the winding
func WithFrontFace(face wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = face
	}
}
