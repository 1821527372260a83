package shader

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-portal/common"
)

// PortalSurfaceSource is the WGSL program drawn on portal surfaces.
//
//go:embed assets/portal_surface.wgsl
var PortalSurfaceSource string

// PortalSurfaceKey is the shader key and module label of the portal surface program.
const PortalSurfaceKey = "portal_surface"

// NormalBlend is the weight of the surface normal when bending the view ray.
const NormalBlend float32 = 0.3

// Bind locations of the environment input in PortalSurfaceSource.
const (
	EnvironmentGroup          = 1
	EnvironmentTextureBinding = 0
	EnvironmentSamplerBinding = 1
)

// Sampler is a directional environment lookup: the CPU counterpart of a bound cube texture and sampler.
type Sampler interface {
	// Sample returns the environment color seen along a direction.
	//
	// Parameters:
	//   - dir: the lookup direction
	//
	// Returns:
	//   - common.Color: the sampled color
	Sample(dir common.Vec3) common.Color
}

// NewPortalSurfaceShader returns the portal surface program with its reflected layouts.
func NewPortalSurfaceShader() Shader {
	return NewShader(PortalSurfaceKey, PortalSurfaceSource)
}

// LookupDirection computes the environment lookup direction for a surface point, the same
// way the fragment stage does: the normalized view ray blended toward the surface normal.
//
// Parameters:
//   - fragPos: the world position of the shaded point
//   - normal: the world-space surface normal
//   - viewer: the world position of the viewer
//
// Returns:
//   - common.Vec3: the unit lookup direction
func LookupDirection(fragPos, normal, viewer common.Vec3) common.Vec3 {
	view := fragPos.Sub(viewer).Normalize()
	return view.Lerp(normal.Normalize(), NormalBlend).Normalize()
}

// Shade returns the color of a portal surface point given the bound environment.
// It depends only on its arguments.
//
// Parameters:
//   - fragPos: the world position of the shaded point
//   - normal: the world-space surface normal
//   - viewer: the world position of the viewer
//   - env: the environment to sample
//
// Returns:
//   - common.Color: the opaque surface color
func Shade(fragPos, normal, viewer common.Vec3, env Sampler) common.Color {
	c := env.Sample(LookupDirection(fragPos, normal, viewer))
	c.A = 1
	return c
}
