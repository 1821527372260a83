package material

import "github.com/Carmen-Shannon/oxy-portal/engine/renderer/shader"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithEnvironment is an option builder that binds an environment at construction.
//
// Parameters:
//   - env: the environment lookup
//
// Returns:
//   - MaterialBuilderOption: a function that applies the environment option to a material
func WithEnvironment(env shader.Sampler) MaterialBuilderOption {
	return func(m *material) {
		m.env = env
	}
}

// WithShader is an option builder that replaces the default portal surface program.
//
// Parameters:
//   - s: the shader to draw with
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shader option to a material
func WithShader(s shader.Shader) MaterialBuilderOption {
	return func(m *material) {
		m.program = s
	}
}
