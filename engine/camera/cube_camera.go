package camera

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/chewxy/math32"
)

// CubeFace identifies one of the six axis-aligned faces of a cube map.
// The order matches WebGPU cube texture array layers.
type CubeFace int

const (
	CubeFacePosX CubeFace = iota
	CubeFaceNegX
	CubeFacePosY
	CubeFaceNegY
	CubeFacePosZ
	CubeFaceNegZ
)

// CubeFaceCount is the number of faces in a cube map.
const CubeFaceCount = 6

// String returns the conventional face name, e.g. "+x".
func (f CubeFace) String() string {
	switch f {
	case CubeFacePosX:
		return "+x"
	case CubeFaceNegX:
		return "-x"
	case CubeFacePosY:
		return "+y"
	case CubeFaceNegY:
		return "-y"
	case CubeFacePosZ:
		return "+z"
	case CubeFaceNegZ:
		return "-z"
	}
	return "invalid"
}

// Direction returns the unit axis the face looks along.
func (f CubeFace) Direction() common.Vec3 {
	switch f {
	case CubeFacePosX:
		return common.V3(1, 0, 0)
	case CubeFaceNegX:
		return common.V3(-1, 0, 0)
	case CubeFacePosY:
		return common.V3(0, 1, 0)
	case CubeFaceNegY:
		return common.V3(0, -1, 0)
	case CubeFacePosZ:
		return common.V3(0, 0, 1)
	default:
		return common.V3(0, 0, -1)
	}
}

// Up returns the face camera's up vector following the cube map convention
// (texel rows run along -Y for the side faces).
func (f CubeFace) Up() common.Vec3 {
	switch f {
	case CubeFacePosY:
		return common.V3(0, 0, 1)
	case CubeFaceNegY:
		return common.V3(0, 0, -1)
	default:
		return common.V3(0, -1, 0)
	}
}

// Face is one of the six cameras used to capture an omnidirectional view.
type Face struct {
	// Face identifies which cube face this camera renders.
	Face CubeFace
	// Eye is the shared viewpoint of all six faces.
	Eye common.Vec3
	// View is the world-to-view matrix (column-major).
	View [16]float32
	// Projection is the square 90 degree perspective projection (column-major).
	Projection [16]float32
	// ViewProjection is Projection * View.
	ViewProjection [16]float32
}

// Frustum returns the culling frustum of the face camera.
func (f Face) Frustum() common.Frustum {
	return common.ExtractFrustumFromMatrix(f.ViewProjection[:])
}

// CubeFaces builds the six face cameras around a viewpoint. Each face has a 90 degree
// field of view and a square aspect so that together they cover every direction exactly once.
//
// Parameters:
//   - eye: the capture viewpoint in world space
//   - near: near clipping distance
//   - far: far clipping distance
//
// Returns:
//   - [CubeFaceCount]Face: the face cameras, indexed by CubeFace
func CubeFaces(eye common.Vec3, near, far float32) [CubeFaceCount]Face {
	var faces [CubeFaceCount]Face
	var proj [16]float32
	common.Perspective(proj[:], math32.Pi/2, 1, near, far)

	for i := range faces {
		cf := CubeFace(i)
		dir, up := cf.Direction(), cf.Up()
		f := Face{Face: cf, Eye: eye, Projection: proj}
		common.LookAt(f.View[:],
			eye.X, eye.Y, eye.Z,
			eye.X+dir.X, eye.Y+dir.Y, eye.Z+dir.Z,
			up.X, up.Y, up.Z,
		)
		common.Mul4(f.ViewProjection[:], f.Projection[:], f.View[:])
		faces[i] = f
	}
	return faces
}
