package camera

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerDefaults(t *testing.T) {
	cc := NewCameraController()

	assert.Equal(t, common.Vec3{}, cc.Position())
	assert.Equal(t, float32(1), cc.Scale())
	assert.True(t, cc.Forward().ApproxEqual(common.V3(0, 0, 1), 1e-6))
	assert.True(t, cc.Target().ApproxEqual(common.V3(0, 0, 1), 1e-6))
}

func TestControllerPitchIsClamped(t *testing.T) {
	cc := NewCameraController(WithPitch(10))
	assert.InDelta(t, maxPitch, cc.Pitch(), 1e-6)

	cc.Turn(0, -100)
	assert.InDelta(t, -maxPitch, cc.Pitch(), 1e-6)
}

func TestControllerPoseMatchesForward(t *testing.T) {
	cc := NewCameraController(WithPosition(1, 2, 3), WithYaw(0.7), WithPitch(-0.2))

	pose := cc.Pose()
	assert.Equal(t, common.V3(1, 2, 3), pose.Position)
	assert.Equal(t, float32(0), pose.Rotation.Z)
	assert.True(t, pose.Forward().ApproxEqual(cc.Forward(), 1e-6))
}

func TestControllerSetPoseDropsRoll(t *testing.T) {
	cc := NewCameraController()
	cc.SetPose(common.Pose{
		Position: common.V3(4, 0, -2),
		Rotation: common.V3(0.1, math32.Pi/2, 0.5),
	})

	pose := cc.Pose()
	assert.Equal(t, common.V3(4, 0, -2), pose.Position)
	assert.InDelta(t, 0.1, pose.Rotation.X, 1e-6)
	assert.InDelta(t, math32.Pi/2, pose.Rotation.Y, 1e-6)
	assert.Equal(t, float32(0), pose.Rotation.Z)
}

func TestControllerPan(t *testing.T) {
	cc := NewCameraController(WithYaw(math32.Pi / 2))

	cc.PanForward(2)
	assert.True(t, cc.Position().ApproxEqual(common.V3(2, 0, 0), 1e-5))

	cc.PanRight(1)
	// facing +X with +Y up, right is +Z
	assert.True(t, cc.Position().ApproxEqual(common.V3(2, 0, 1), 1e-5))
}

func TestStrafeKeyFollowsPanRight(t *testing.T) {
	cc := NewCameraController(WithYaw(math32.Pi/2), WithPanSpeed(2))

	cc.KeyDown(common.KeyD)
	cc.Update(0.5)
	assert.True(t, cc.Position().ApproxEqual(common.V3(0, 0, 1), 1e-5))

	// the right axis stays horizontal and perpendicular to forward
	right := cc.Position().Normalize()
	assert.InDelta(t, 0, right.Dot(cc.Forward()), 1e-5)
	assert.InDelta(t, 0, right.Y, 1e-6)
}

func TestControllerUpdateAppliesHeldKeys(t *testing.T) {
	cc := NewCameraController(WithPanSpeed(4))

	cc.KeyDown(common.KeyW)
	cc.Update(0.5)
	assert.True(t, cc.Position().ApproxEqual(common.V3(0, 0, 2), 1e-5))

	cc.KeyUp(common.KeyW)
	cc.Update(0.5)
	assert.True(t, cc.Position().ApproxEqual(common.V3(0, 0, 2), 1e-5))
}

func TestCameraFollowsController(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, -5))
	cam := NewCamera(WithController(cc), WithAspect(2))

	view := cam.ViewMatrix()
	// the origin sits 5 units ahead, which is -Z in view space
	z := view[2]*0 + view[6]*0 + view[10]*0 + view[14]
	assert.InDelta(t, -5, z, 1e-5)

	cc.SetPosition(common.V3(0, 0, -8))
	cam.Update()
	view = cam.ViewMatrix()
	assert.InDelta(t, -8, view[14], 1e-5)
	assert.Equal(t, float32(2), cam.Aspect())
}

func TestScreenRayUnprojectsThroughEye(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, -5))
	cam := NewCamera(WithController(cc), WithNearFar(0.1, 100))

	origin, dir, ok := cam.ScreenRay(0, 0)
	require.True(t, ok)
	assert.True(t, origin.ApproxEqual(common.V3(0, 0, -4.9), 1e-3), "origin %v", origin)
	assert.True(t, dir.ApproxEqual(cc.Forward(), 1e-3), "dir %v", dir)

	// screen right at yaw 0 is world -X, half the 45 degree fov off axis
	_, edge, ok := cam.ScreenRay(1, 0)
	require.True(t, ok)
	assert.InDelta(t, -math32.Tan(math32.Pi/8), edge.X/edge.Z, 1e-3)
	assert.InDelta(t, 0, edge.Y, 1e-4)
}

func TestScreenRayFailsOnSingularMatrix(t *testing.T) {
	var singular [16]float32
	c := &cameraImpl{mu: &sync.Mutex{}, viewProjectionMatrix: singular}
	_, _, ok := c.ScreenRay(0, 0)
	assert.False(t, ok)
}

func TestCubeFacesLookAlongAxes(t *testing.T) {
	eye := common.V3(1, 2, 3)
	faces := CubeFaces(eye, 0.1, 50)

	for i, f := range faces {
		require.Equal(t, CubeFace(i), f.Face)
		p := eye.Add(f.Face.Direction())
		v := f.View
		z := v[2]*p.X + v[6]*p.Y + v[10]*p.Z + v[14]
		assert.InDelta(t, -1, z, 1e-5, "face %s", f.Face)

		fr := f.Frustum()
		assert.True(t, fr.ContainsSphere(eye.Add(f.Face.Direction().Scale(5)), 0.1), "face %s", f.Face)
		assert.False(t, fr.ContainsSphere(eye.Sub(f.Face.Direction().Scale(5)), 0.1), "face %s", f.Face)
	}
}

func TestCubeFaceNames(t *testing.T) {
	assert.Equal(t, "+x", CubeFacePosX.String())
	assert.Equal(t, "-z", CubeFaceNegZ.String())
	assert.Equal(t, "invalid", CubeFace(9).String())
}
