package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = float32(1e-5)

func TestPoseForward(t *testing.T) {
	assert.True(t, Pose{}.Forward().ApproxEqual(V3(0, 0, 1), tol))

	yaw90 := Pose{Rotation: V3(0, math32.Pi/2, 0)}
	assert.True(t, yaw90.Forward().ApproxEqual(V3(1, 0, 0), tol), "got %v", yaw90.Forward())

	yaw180 := Pose{Rotation: V3(0, math32.Pi, 0)}
	assert.True(t, yaw180.Forward().ApproxEqual(V3(0, 0, -1), tol), "got %v", yaw180.Forward())
}

func TestPoseForwardMatchesMatrixColumn(t *testing.T) {
	p := Pose{Position: V3(1, 2, 3), Rotation: V3(0.3, -1.1, 0.7)}
	m := p.Matrix()
	f := p.Forward()
	assert.InDelta(t, m[8], f.X, 1e-5)
	assert.InDelta(t, m[9], f.Y, 1e-5)
	assert.InDelta(t, m[10], f.Z, 1e-5)
}

func TestPoseFromMatrixRecoversPose(t *testing.T) {
	want := Pose{Position: V3(-4, 0.5, 9), Rotation: V3(0.2, 2.4, -0.4)}
	got := PoseFromMatrix(want.Matrix())
	assert.True(t, got.Position.ApproxEqual(want.Position, tol))
	assert.True(t, got.Rotation.ApproxEqual(want.Rotation, 1e-4), "got %v", got.Rotation)
}

func TestDecomposeIgnoresScale(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0.1, 0.5, 0.2, 3, 3, 3)
	_, rot := DecomposeModelMatrix(m[:])
	assert.InDelta(t, 0.1, rot[0], 1e-4)
	assert.InDelta(t, 0.5, rot[1], 1e-4)
	assert.InDelta(t, 0.2, rot[2], 1e-4)
}

func TestInvert4(t *testing.T) {
	var m, inv, out [16]float32
	BuildModelMatrix(m[:], 3, -2, 5, 0.4, 1.2, -0.3, 1, 2, 1)
	assert.True(t, Invert4(inv[:], m[:]))
	Mul4(out[:], m[:], inv[:])
	var id [16]float32
	Identity(id[:])
	for i := range out {
		assert.InDelta(t, id[i], out[i], 1e-4)
	}

	var singular [16]float32
	assert.False(t, Invert4(inv[:], singular[:]))
}

func TestTransformPointDividesByW(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0, 0, 0, 2, 2, 2)
	p, ok := TransformPoint(m[:], V3(1, 1, 1))
	require.True(t, ok)
	assert.Equal(t, V3(3, 4, 5), p)

	m[15] = 2
	p, ok = TransformPoint(m[:], V3(1, 1, 1))
	require.True(t, ok)
	assert.Equal(t, V3(1.5, 2, 2.5), p)

	var zero [16]float32
	_, ok = TransformPoint(zero[:], V3(1, 1, 1))
	assert.False(t, ok)
}

func TestFrustumContainsSphere(t *testing.T) {
	var view, proj, vp [16]float32
	LookAt(view[:], 0, 0, 0, 0, 0, -1, 0, 1, 0)
	Perspective(proj[:], math32.Pi/2, 1, 0.1, 100)
	Mul4(vp[:], proj[:], view[:])
	f := ExtractFrustumFromMatrix(vp[:])

	assert.True(t, f.ContainsSphere(V3(0, 0, -10), 1))
	assert.False(t, f.ContainsSphere(V3(0, 0, 10), 1), "behind the camera")
	assert.False(t, f.ContainsSphere(V3(50, 0, -10), 1), "far right of a 90 degree frustum")
	assert.False(t, f.ContainsSphere(V3(0, 0, -200), 1), "beyond the far plane")
}

func TestVec3(t *testing.T) {
	a := V3(1, 2, 2)
	assert.Equal(t, float32(3), a.Length())
	assert.True(t, a.Normalize().ApproxEqual(V3(1.0/3, 2.0/3, 2.0/3), tol))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, V3(0.5, 1, 1), Vec3{}.Lerp(a, 0.5))
	assert.Equal(t, V3(0, 0, 1), V3(1, 0, 0).Cross(V3(0, 1, 0)))
	assert.Equal(t, float32(3), V3(1, 1, 1).Distance(V3(1, 4, 1)))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, "", Coalesce("", ""))
}

func TestColorRoundTrip(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 1}
	back := ColorFromRGBA(c.RGBA())
	assert.InDelta(t, 1, back.R, 1e-6)
	assert.InDelta(t, 0.5, back.G, 0.01)
	assert.InDelta(t, 0, back.B, 1e-6)
	assert.Equal(t, uint8(255), Color{R: 2}.RGBA().R)
}
