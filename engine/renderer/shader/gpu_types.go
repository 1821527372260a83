package shader

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUPortalUniforms is the GPU-aligned uniform of the portal surface program.
// Matches the WGSL PortalUniforms struct layout exactly (see PortalSurfaceSource).
// Size: 144 bytes (two mat4x4<f32> + one vec4<f32>, std140 aligned).
type GPUPortalUniforms struct {
	ViewProj [16]float32 // offset 0: camera view-projection matrix (64 bytes)
	Model    [16]float32 // offset 64: portal surface model matrix (64 bytes)
	Viewer   [4]float32  // offset 128: viewer world position, w unused (16 bytes)
}

// Size returns the size of the GPUPortalUniforms struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUPortalUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPortalUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload.
func (g *GPUPortalUniforms) Marshal() []byte {
	buf := make([]byte, 144)
	off := 0
	put := func(vs []float32) {
		for _, v := range vs {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
			off += 4
		}
	}
	put(g.ViewProj[:])
	put(g.Model[:])
	put(g.Viewer[:])
	return buf
}
