package game_object

import (
	"github.com/Carmen-Shannon/oxy-portal/common"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject. Objects added to a Scene without an ID are assigned one.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject starts visible to rendering and capture.
//
// Parameters:
//   - enabled: true to render the object, false to hide it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithLabel sets the structured label of the GameObject, such as "portal-to__panorama".
//
// Parameters:
//   - label: the authored label
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the label
func WithLabel(label string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.label = label
	}
}

// WithPosition sets the initial world position.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: the rotation angles
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale sets the initial scale.
//
// Parameters:
//   - sx, sy, sz: the scale factors
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithPose sets the initial position and rotation from a Pose.
//
// Parameters:
//   - p: the initial pose
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the pose
func WithPose(p common.Pose) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p.Position.Array()
		obj.rotation = p.Rotation.Array()
	}
}

// WithBounds sets the bounding sphere radius used by the environment capturer.
//
// Parameters:
//   - radius: the unscaled bounding radius
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the bounds
func WithBounds(radius float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.radius = radius
	}
}

// WithColor sets the flat color the object contributes to environment captures.
//
// Parameters:
//   - c: the object color
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the color
func WithColor(c common.Color) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = c
	}
}
