package common

import (
	"github.com/chewxy/math32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix
// using the Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	var f Frustum

	// For column-major matrix M, row r is (m[r], m[4+r], m[8+r], m[12+r]).
	row := func(r int) [4]float32 {
		return [4]float32{viewProj[r], viewProj[4+r], viewProj[8+r], viewProj[12+r]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	set := func(idx int, a [4]float32, b [4]float32, sign float32) {
		f.Planes[idx].Normal = [3]float32{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2]}
		f.Planes[idx].Distance = a[3] + sign*b[3]
	}

	set(FrustumLeft, r3, r0, 1)
	set(FrustumRight, r3, r0, -1)
	set(FrustumBottom, r3, r1, 1)
	set(FrustumTop, r3, r1, -1)
	// WebGPU clip space has z in [0, w], so the near plane is row2 alone.
	f.Planes[FrustumNear].Normal = [3]float32{r2[0], r2[1], r2[2]}
	f.Planes[FrustumNear].Distance = r2[3]
	set(FrustumFar, r3, r2, -1)

	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := math32.Sqrt(p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2])

	if length > 0 {
		invLen := 1.0 / length
		p.Normal[0] *= invLen
		p.Normal[1] *= invLen
		p.Normal[2] *= invLen
		p.Distance *= invLen
	}
}

// ContainsSphere reports whether a sphere intersects or lies inside the frustum.
// Planes with a zero normal (degenerate, e.g. an infinite far plane) are ignored.
//
// Parameters:
//   - center: the sphere center in world space
//   - radius: the sphere radius
//
// Returns:
//   - bool: false only if the sphere is fully outside at least one plane
func (f Frustum) ContainsSphere(center Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal == [3]float32{} {
			continue
		}
		d := p.Normal[0]*center.X + p.Normal[1]*center.Y + p.Normal[2]*center.Z + p.Distance
		if d < -radius {
			return false
		}
	}
	return true
}
