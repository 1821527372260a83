// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pose is a world-space placement without scale: a position and a Y*X*Z Euler rotation.
type Pose struct {
	// Position is the world-space translation.
	Position Vec3
	// Rotation holds the Euler angles in radians (rx, ry, rz), applied in Y * X * Z order.
	Rotation Vec3
}

// Forward returns the unit +Z axis of the pose's rotation, the direction a portal faces.
//
// Returns:
//   - Vec3: the rotated +Z axis
func (p Pose) Forward() Vec3 {
	cx, sx := math32.Cos(p.Rotation.X), math32.Sin(p.Rotation.X)
	cy, sy := math32.Cos(p.Rotation.Y), math32.Sin(p.Rotation.Y)
	return Vec3{X: sy * cx, Y: -sx, Z: cy * cx}
}

// Matrix builds the column-major 4x4 matrix of the pose with unit scale.
//
// Returns:
//   - [16]float32: the pose matrix
func (p Pose) Matrix() [16]float32 {
	var m [16]float32
	BuildModelMatrix(m[:],
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Rotation.X, p.Rotation.Y, p.Rotation.Z,
		1, 1, 1,
	)
	return m
}

// PoseFromMatrix decomposes a column-major matrix into a Pose. Scale is discarded.
//
// Parameters:
//   - m: the source matrix
//
// Returns:
//   - Pose: the decomposed pose
func PoseFromMatrix(m [16]float32) Pose {
	pos, rot := DecomposeModelMatrix(m[:])
	return Pose{Position: FromArray(pos), Rotation: FromArray(rot)}
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGBA converts the color to an 8-bit image/color value, clamping each channel.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(Clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(Clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(Clamp(c.B, 0, 1)*255 + 0.5),
		A: uint8(Clamp(c.A, 0, 1)*255 + 0.5),
	}
}

// ColorFromRGBA converts an 8-bit color into a float Color.
func ColorFromRGBA(c color.RGBA) Color {
	return Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// TextureStagingData holds RGBA pixel data for one texture layer pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Layer is the array layer the pixels are written to (cube face index for cube textures).
	Layer uint32
}

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
// Zero fields fall back to the creator's defaults via Coalesce.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}
