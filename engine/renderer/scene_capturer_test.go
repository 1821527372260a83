package renderer

import (
	"context"
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = common.Color{R: 1, A: 1}

func newRedBallScene(t *testing.T) (scene.Scene, uint64) {
	t.Helper()
	s := scene.NewScene("capture")
	id := s.Add(game_object.NewGameObject(
		game_object.WithLabel("ball"),
		game_object.WithPosition(0, 0, 5),
		game_object.WithBounds(1),
		game_object.WithColor(red),
	))
	return s, id
}

func isRed(c common.Color) bool {
	return c.R > 0.2 && c.G < 0.05 && c.B < 0.05
}

func TestCaptureSeesObjectAhead(t *testing.T) {
	s, _ := newRedBallScene(t)
	c := NewSceneCapturer(s, WithWorkers(3))
	cm := NewCubeMap(16)

	require.NoError(t, c.Capture(context.Background(), common.Vec3{}, cm))

	assert.True(t, isRed(cm.Sample(common.V3(0, 0, 1))))
	assert.False(t, isRed(cm.Sample(common.V3(0, 0, -1))))
	assert.False(t, isRed(cm.Sample(common.V3(1, 0, 0))))
	assert.Equal(t, uint64(1), c.Captures())
	assert.Equal(t, uint64(6), cm.Generation())
}

func TestCaptureSkyGradient(t *testing.T) {
	top := common.Color{R: 0, G: 0, B: 1, A: 1}
	bottom := common.Color{R: 0, G: 1, B: 0, A: 1}
	c := NewSceneCapturer(scene.NewScene("empty"), WithSky(top, bottom))
	cm := NewCubeMap(8)

	require.NoError(t, c.Capture(context.Background(), common.Vec3{}, cm))

	up := cm.Sample(common.V3(0, 1, 0))
	down := cm.Sample(common.V3(0, -1, 0))
	assert.Greater(t, up.B, up.G)
	assert.Greater(t, down.G, down.B)
}

func TestCaptureHonorsExclusions(t *testing.T) {
	s, id := newRedBallScene(t)
	c := NewSceneCapturer(s)
	cm := NewCubeMap(8)

	require.NoError(t, c.Capture(context.Background(), common.Vec3{}, cm, id))

	assert.False(t, isRed(cm.Sample(common.V3(0, 0, 1))))
}

func TestCaptureSkipsDisabledObjects(t *testing.T) {
	s, id := newRedBallScene(t)
	s.Get(id).SetEnabled(false)
	c := NewSceneCapturer(s)
	cm := NewCubeMap(8)

	require.NoError(t, c.Capture(context.Background(), common.Vec3{}, cm))

	assert.False(t, isRed(cm.Sample(common.V3(0, 0, 1))))
}

func TestCaptureFromOtherViewpoint(t *testing.T) {
	s, _ := newRedBallScene(t)
	c := NewSceneCapturer(s)
	cm := NewCubeMap(16)

	// from beyond the ball it sits behind the viewpoint
	require.NoError(t, c.Capture(context.Background(), common.V3(0, 0, 10), cm))

	assert.True(t, isRed(cm.Sample(common.V3(0, 0, -1))))
	assert.False(t, isRed(cm.Sample(common.V3(0, 0, 1))))
}

func TestCaptureRejectsInvalidTarget(t *testing.T) {
	c := NewSceneCapturer(scene.NewScene("empty"))

	assert.ErrorIs(t, c.Capture(context.Background(), common.Vec3{}, nil), ErrCaptureSize)
	assert.ErrorIs(t, c.Capture(context.Background(), common.Vec3{}, &CubeMap{}), ErrCaptureSize)
	assert.Equal(t, uint64(0), c.Captures())
}

func TestCaptureCancelled(t *testing.T) {
	s, _ := newRedBallScene(t)
	c := NewSceneCapturer(s)
	cm := NewCubeMap(8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Capture(ctx, common.Vec3{}, cm)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), cm.Generation())
}

func TestRaySphere(t *testing.T) {
	d, ok := raySphere(common.Vec3{}, common.V3(0, 0, 1), common.V3(0, 0, 5), 1)
	require.True(t, ok)
	assert.InDelta(t, 4, d, 1e-5)

	_, ok = raySphere(common.Vec3{}, common.V3(0, 0, -1), common.V3(0, 0, 5), 1)
	assert.False(t, ok)

	d, ok = raySphere(common.Vec3{}, common.V3(1, 0, 0), common.Vec3{}, 2)
	require.True(t, ok)
	assert.InDelta(t, 2, d, 1e-5)
}
