package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	obj := NewGameObject()
	assert.True(t, obj.Enabled())
	assert.Equal(t, common.V3(1, 1, 1), obj.Scale())
	assert.Equal(t, uint64(0), obj.ID())
	assert.Zero(t, obj.Radius())
}

func TestBuilderOptions(t *testing.T) {
	obj := NewGameObject(
		WithLabel("portal-to__panorama"),
		WithEnabled(false),
		WithPosition(1, 2, 3),
		WithRotation(0, math32.Pi/2, 0),
		WithScale(2, 1, 1),
		WithBounds(0.5),
		WithColor(common.Color{R: 1, A: 1}),
	)
	assert.Equal(t, "portal-to__panorama", obj.Label())
	assert.False(t, obj.Enabled())
	assert.Equal(t, common.V3(1, 2, 3), obj.Position())
	assert.True(t, obj.Forward().ApproxEqual(common.V3(1, 0, 0), 1e-5))
	assert.Equal(t, float32(1), obj.Radius())
	assert.Equal(t, common.Color{R: 1, A: 1}, obj.Color())

	m := obj.ModelMatrix()
	assert.Equal(t, float32(1), m[12])
	assert.Equal(t, float32(2), m[13])
	assert.Equal(t, float32(3), m[14])
}

func TestSetPose(t *testing.T) {
	obj := NewGameObject()
	p := common.Pose{Position: common.V3(4, 0, -2), Rotation: common.V3(0, 1, 0)}
	obj.SetPose(p)
	assert.Equal(t, p, obj.Pose())
	assert.Equal(t, p.Position, obj.Position())
	assert.Equal(t, p.Rotation, obj.Rotation())
}
