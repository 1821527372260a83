package navigation

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFloor() NavMesh {
	return NewNavMesh(WithRects(Rect{MinX: 5, MinZ: 5, MaxX: -5, MaxZ: -5}), WithMaxSnap(0.5))
}

func TestSnapInsideAndNearEdge(t *testing.T) {
	nm := testFloor()

	p, ok := nm.Snap(common.V3(1, 0, 2))
	require.True(t, ok)
	assert.Equal(t, common.V3(1, 0, 2), p)

	p, ok = nm.Snap(common.V3(5.3, 0, 0))
	require.True(t, ok)
	assert.Equal(t, common.V3(5, 0, 0), p)

	_, ok = nm.Snap(common.V3(7, 0, 0))
	assert.False(t, ok)

	_, ok = NewNavMesh().Snap(common.Vec3{})
	assert.False(t, ok)
}

func TestAddRectNormalizesBounds(t *testing.T) {
	nm := NewNavMesh()
	nm.AddRect(Rect{MinX: 2, MaxX: -2, MinZ: 1, MaxZ: 0, Height: 3})

	rects := nm.Rects()
	require.Len(t, rects, 1)
	assert.Equal(t, Rect{MinX: -2, MaxX: 2, MinZ: 0, MaxZ: 1, Height: 3}, rects[0])
	assert.True(t, rects[0].Contains(common.V3(0, 99, 0.5)))
}

func TestTravelToAppliesPose(t *testing.T) {
	viewer := camera.NewCameraController()
	m := NewMover(viewer, WithNavMesh(testFloor()))
	dest := common.Pose{Position: common.V3(2, 0, -3), Rotation: common.V3(0, math32.Pi/2, 0)}

	require.NoError(t, m.TravelTo(dest.Matrix(), true, true))

	assert.True(t, viewer.Position().ApproxEqual(dest.Position, 1e-5))
	assert.True(t, viewer.Forward().ApproxEqual(dest.Forward(), 1e-5))
	assert.Equal(t, 1, m.Travels())
}

func TestTravelToRejectsUnreachable(t *testing.T) {
	viewer := camera.NewCameraController(camera.WithPosition(1, 0, 1))
	m := NewMover(viewer, WithNavMesh(testFloor()))
	dest := common.Pose{Position: common.V3(40, 0, 0)}

	err := m.TravelTo(dest.Matrix(), true, true)

	assert.ErrorIs(t, err, ErrNotNavigable)
	assert.Equal(t, common.V3(1, 0, 1), viewer.Position())
	assert.Equal(t, 0, m.Travels())

	// unconstrained travel ignores the nav mesh
	require.NoError(t, m.TravelTo(dest.Matrix(), false, true))
	assert.True(t, viewer.Position().ApproxEqual(dest.Position, 1e-5))
}

func TestTravelToEyeHeight(t *testing.T) {
	viewer := camera.NewCameraController()
	m := NewMover(viewer, WithNavMesh(testFloor()), WithEyeHeight(1.7))

	require.NoError(t, m.TravelTo(common.Pose{Position: common.V3(0, 1.5, 0)}.Matrix(), true, true))

	assert.InDelta(t, 1.7, viewer.Position().Y, 1e-5)
}

func TestTravelToScale(t *testing.T) {
	viewer := camera.NewCameraController(camera.WithScale(1))
	m := NewMover(viewer)
	var scaled [16]float32
	common.BuildModelMatrix(scaled[:], 0, 0, 0, 0, 0, 0, 3, 3, 3)

	require.NoError(t, m.TravelTo(scaled, false, true))
	assert.Equal(t, float32(1), viewer.Scale())

	require.NoError(t, m.TravelTo(scaled, false, false))
	assert.InDelta(t, 3, viewer.Scale(), 1e-5)
}
