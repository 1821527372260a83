package renderer

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

// CubeMap is an omnidirectional image made of six square RGBA faces of equal size,
// indexed by camera.CubeFace. It is the CPU-side capture target of a portal and can be
// sampled by direction, which makes it the environment input of the portal surface shader.
type CubeMap struct {
	mu *sync.RWMutex

	size       int
	faces      [camera.CubeFaceCount]*image.RGBA
	generation atomic.Uint64
}

// NewCubeMap creates a cube map with six blank faces of the given edge length.
//
// Parameters:
//   - size: the face edge length in texels
//
// Returns:
//   - *CubeMap: the new cube map
func NewCubeMap(size int) *CubeMap {
	if size <= 0 {
		panic("renderer: NewCubeMap requires a positive face size")
	}
	c := &CubeMap{mu: &sync.RWMutex{}, size: size}
	for i := range c.faces {
		c.faces[i] = image.NewRGBA(image.Rect(0, 0, size, size))
	}
	return c
}

// Size returns the face edge length in texels. A zero-value CubeMap has size 0.
func (c *CubeMap) Size() int {
	if c == nil {
		return 0
	}
	return c.size
}

// Generation returns a counter incremented on every face write, so GPU mirrors know when to re-upload.
func (c *CubeMap) Generation() uint64 {
	return c.generation.Load()
}

// Face returns a copy of one face image.
//
// Parameters:
//   - face: the face to read
//
// Returns:
//   - *image.RGBA: a copy of the face pixels
func (c *CubeMap) Face(face camera.CubeFace) *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	src := c.faces[face]
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// SetFace replaces one face image. The image must be size x size.
//
// Parameters:
//   - face: the face to write
//   - img: the new pixels
//
// Returns:
//   - error: ErrCaptureSize if the image dimensions do not match the cube map
func (c *CubeMap) SetFace(face camera.CubeFace, img *image.RGBA) error {
	if img == nil || img.Rect.Dx() != c.size || img.Rect.Dy() != c.size {
		return ErrCaptureSize
	}
	c.mu.Lock()
	c.faces[face] = img
	c.mu.Unlock()
	c.generation.Add(1)
	return nil
}

// Sample returns the texel color seen along a world-space direction (nearest filtering).
// The zero direction samples the +Z face center.
//
// Parameters:
//   - dir: the lookup direction, need not be normalized
//
// Returns:
//   - common.Color: the sampled color
func (c *CubeMap) Sample(dir common.Vec3) common.Color {
	face, s, t := DirectionToFace(dir)
	x := min(int(s*float32(c.size)), c.size-1)
	y := min(int(t*float32(c.size)), c.size-1)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return common.ColorFromRGBA(c.faces[face].RGBAAt(max(x, 0), max(y, 0)))
}

// StagingData returns the six faces as texture layers ready for GPU upload.
func (c *CubeMap) StagingData() [camera.CubeFaceCount]common.TextureStagingData {
	return c.StagingDataAt(c.size)
}

// StagingDataAt returns the six faces as texture layers of the given edge length, resampled
// bilinearly when it differs from the cube map's own size.
func (c *CubeMap) StagingDataAt(size int) [camera.CubeFaceCount]common.TextureStagingData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out [camera.CubeFaceCount]common.TextureStagingData
	for i, f := range c.faces {
		var pix []byte
		if size == c.size {
			pix = make([]byte, len(f.Pix))
			copy(pix, f.Pix)
		} else {
			dst := image.NewRGBA(image.Rect(0, 0, size, size))
			draw.BiLinear.Scale(dst, dst.Bounds(), f, f.Bounds(), draw.Src, nil)
			pix = dst.Pix
		}
		out[i] = common.TextureStagingData{
			Pixels: pix,
			Width:  uint32(size),
			Height: uint32(size),
			Layer:  uint32(i),
		}
	}
	return out
}

// FaceDirection maps face texture coordinates to the (unnormalized) direction they cover.
// s runs left to right and t top to bottom, both in [0, 1].
//
// Parameters:
//   - face: the cube face
//   - s, t: the texture coordinates on the face
//
// Returns:
//   - common.Vec3: the direction through that texel
func FaceDirection(face camera.CubeFace, s, t float32) common.Vec3 {
	sc, tc := 2*s-1, 2*t-1
	switch face {
	case camera.CubeFacePosX:
		return common.V3(1, -tc, -sc)
	case camera.CubeFaceNegX:
		return common.V3(-1, -tc, sc)
	case camera.CubeFacePosY:
		return common.V3(sc, 1, tc)
	case camera.CubeFaceNegY:
		return common.V3(sc, -1, -tc)
	case camera.CubeFacePosZ:
		return common.V3(sc, -tc, 1)
	default:
		return common.V3(-sc, -tc, -1)
	}
}

// DirectionToFace selects the face a direction falls on by its major axis and returns
// the texture coordinates of the hit. Inverse of FaceDirection.
//
// Parameters:
//   - dir: the lookup direction
//
// Returns:
//   - camera.CubeFace: the face hit
//   - float32, float32: s and t in [0, 1]
func DirectionToFace(dir common.Vec3) (camera.CubeFace, float32, float32) {
	ax, ay, az := math32.Abs(dir.X), math32.Abs(dir.Y), math32.Abs(dir.Z)
	var face camera.CubeFace
	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az && ax > 0:
		ma = ax
		if dir.X > 0 {
			face, sc, tc = camera.CubeFacePosX, -dir.Z, -dir.Y
		} else {
			face, sc, tc = camera.CubeFaceNegX, dir.Z, -dir.Y
		}
	case ay >= az && ay > 0:
		ma = ay
		if dir.Y > 0 {
			face, sc, tc = camera.CubeFacePosY, dir.X, dir.Z
		} else {
			face, sc, tc = camera.CubeFaceNegY, dir.X, -dir.Z
		}
	case az > 0:
		ma = az
		if dir.Z > 0 {
			face, sc, tc = camera.CubeFacePosZ, dir.X, -dir.Y
		} else {
			face, sc, tc = camera.CubeFaceNegZ, -dir.X, -dir.Y
		}
	default:
		return camera.CubeFacePosZ, 0.5, 0.5
	}
	s := common.Clamp((sc/ma+1)/2, 0, 1)
	t := common.Clamp((tc/ma+1)/2, 0, 1)
	return face, s, t
}
