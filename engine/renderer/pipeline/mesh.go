package pipeline

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceVertex is one vertex of a surface mesh. Matches the VertexInput struct of the
// portal surface program: position at location 0 and normal at location 1.
type SurfaceVertex struct {
	Position [3]float32
	Normal   [3]float32
}

// SurfaceVertexStride is the size of one SurfaceVertex in bytes.
const SurfaceVertexStride = 24

// SurfaceVertexLayout describes SurfaceVertex to the vertex stage.
func SurfaceVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: SurfaceVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// QuadVertices builds a quad in the local XY plane with its normal along +Z, the forward axis
// of a pose, so a portal's model matrix stands it upright facing where the portal faces.
// Triangles wind counter-clockwise seen from +Z.
//
// Parameters:
//   - halfWidth: half the extent along X
//   - halfHeight: half the extent along Y
//
// Returns:
//   - []SurfaceVertex: the four corners
//   - []uint32: two triangles
func QuadVertices(halfWidth, halfHeight float32) ([]SurfaceVertex, []uint32) {
	n := [3]float32{0, 0, 1}
	vertices := []SurfaceVertex{
		{Position: [3]float32{-halfWidth, -halfHeight, 0}, Normal: n},
		{Position: [3]float32{halfWidth, -halfHeight, 0}, Normal: n},
		{Position: [3]float32{halfWidth, halfHeight, 0}, Normal: n},
		{Position: [3]float32{-halfWidth, halfHeight, 0}, Normal: n},
	}
	return vertices, []uint32{0, 1, 2, 0, 2, 3}
}

// Mesh is an indexed SurfaceVertex mesh uploaded to the GPU.
type Mesh struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
}

// NewMesh uploads vertices and indices into new GPU buffers.
//
// Parameters:
//   - device: the device to create the buffers on
//   - label: the debug label
//   - vertices: the vertex data
//   - indices: triangle list indices into vertices
//
// Returns:
//   - *Mesh: the uploaded mesh
//   - error: an error if the data is empty or a buffer could not be created
func NewMesh(device *wgpu.Device, label string, vertices []SurfaceVertex, indices []uint32) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("mesh %s: no geometry", label)
	}
	vb, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Vertex Buffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("mesh %s: create vertex buffer: %w", label, err)
	}
	ib, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Index Buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("mesh %s: create index buffer: %w", label, err)
	}
	return &Mesh{vertices: vb, indices: ib, indexCount: uint32(len(indices))}, nil
}

// IndexCount returns the number of indices drawn.
func (m *Mesh) IndexCount() uint32 {
	return m.indexCount
}

func (m *Mesh) Release() {
	if m.vertices != nil {
		m.vertices.Release()
		m.vertices = nil
	}
	if m.indices != nil {
		m.indices.Release()
		m.indices = nil
	}
}
