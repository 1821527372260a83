package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/chewxy/math32"
)

// CameraController is the first-person viewer rig. It owns the viewer's world position,
// yaw/pitch orientation, and scale; the Camera reads it each frame to build matrices and
// locomotion relocates it. Held movement keys are applied on Update so the rig can be
// registered with the engine scheduler like any other per-frame behavior.
type CameraController interface {
	// Position returns the viewer's world-space position.
	//
	// Returns:
	//   - common.Vec3: the eye position
	Position() common.Vec3

	// SetPosition sets the viewer's world-space position directly.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p common.Vec3)

	// Target returns the look-at point one unit ahead of the viewer.
	//
	// Returns:
	//   - common.Vec3: the look-at point
	Target() common.Vec3

	// Forward returns the unit look direction.
	//
	// Returns:
	//   - common.Vec3: the look direction
	Forward() common.Vec3

	// Pose returns the viewer's pose. Rotation is (pitch, yaw, 0).
	//
	// Returns:
	//   - common.Pose: the viewer pose
	Pose() common.Pose

	// SetPose sets position and orientation. Roll is discarded and pitch is clamped.
	//
	// Parameters:
	//   - p: the new pose
	SetPose(p common.Pose)

	// Scale returns the viewer's uniform scale.
	//
	// Returns:
	//   - float32: the scale
	Scale() float32

	// SetScale sets the viewer's uniform scale.
	//
	// Parameters:
	//   - s: the new scale
	SetScale(s float32)

	// Yaw returns the rotation about the Y axis in radians.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Pitch returns the rotation about the X axis in radians. Positive pitch looks down.
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// Turn rotates the viewer by the given yaw and pitch deltas. Pitch is clamped.
	//
	// Parameters:
	//   - dYaw: yaw delta in radians
	//   - dPitch: pitch delta in radians
	Turn(dYaw, dPitch float32)

	// PanForward translates the viewer along its horizontal look direction.
	// Positive delta moves forward, negative moves back.
	//
	// Parameters:
	//   - delta: distance in world units
	PanForward(delta float32)

	// PanRight translates the viewer along its horizontal right axis.
	//
	// Parameters:
	//   - delta: distance in world units
	PanRight(delta float32)

	// PanSpeed returns the walking speed in world units per second.
	//
	// Returns:
	//   - float32: walk speed
	PanSpeed() float32

	// TurnSpeed returns the keyboard turn speed in radians per second.
	//
	// Returns:
	//   - float32: turn speed
	TurnSpeed() float32

	// KeyDown marks a movement key as held.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyDown(keyCode uint32)

	// KeyUp marks a movement key as released.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyUp(keyCode uint32)

	// Update applies held movement keys for the elapsed time.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	Update(deltaTime float32)
}

// maxPitch keeps the look direction away from the up vector so LookAt stays well-defined.
const maxPitch = math32.Pi/2 - 0.1

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	yaw      float32
	pitch    float32
	scale    float32

	panSpeed  float32
	turnSpeed float32

	held map[uint32]bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new first-person controller at the origin facing +Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:        &sync.Mutex{},
		scale:     1,
		panSpeed:  2.0,
		turnSpeed: 1.5,
		held:      make(map[uint32]bool),
	}
	for _, option := range options {
		option(cc)
	}
	cc.pitch = common.Clamp(cc.pitch, -maxPitch, maxPitch)
	return cc
}

func (cc *cameraControllerImpl) Position() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return common.FromArray(cc.position)
}

func (cc *cameraControllerImpl) SetPosition(p common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = p.Array()
}

func (cc *cameraControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return common.FromArray(cc.position).Add(cc.poseLocked().Forward())
}

func (cc *cameraControllerImpl) Forward() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.poseLocked().Forward()
}

func (cc *cameraControllerImpl) Pose() common.Pose {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.poseLocked()
}

func (cc *cameraControllerImpl) SetPose(p common.Pose) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = p.Position.Array()
	cc.pitch = common.Clamp(p.Rotation.X, -maxPitch, maxPitch)
	cc.yaw = p.Rotation.Y
}

func (cc *cameraControllerImpl) Scale() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.scale
}

func (cc *cameraControllerImpl) SetScale(s float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.scale = s
}

func (cc *cameraControllerImpl) Yaw() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitch
}

func (cc *cameraControllerImpl) Turn(dYaw, dPitch float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.yaw += dYaw
	cc.pitch = common.Clamp(cc.pitch+dPitch, -maxPitch, maxPitch)
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	fx, fz := math32.Sin(cc.yaw), math32.Cos(cc.yaw)
	cc.position[0] += fx * delta
	cc.position[2] += fz * delta
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	// right = forward x up, with forward = (sin yaw, 0, cos yaw)
	rx, rz := -math32.Cos(cc.yaw), math32.Sin(cc.yaw)
	cc.position[0] += rx * delta
	cc.position[2] += rz * delta
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	return cc.panSpeed
}

func (cc *cameraControllerImpl) TurnSpeed() float32 {
	return cc.turnSpeed
}

func (cc *cameraControllerImpl) KeyDown(keyCode uint32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.held[keyCode] = true
}

func (cc *cameraControllerImpl) KeyUp(keyCode uint32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	delete(cc.held, keyCode)
}

func (cc *cameraControllerImpl) Update(deltaTime float32) {
	cc.mu.Lock()
	axis := func(pos []uint32, neg ...uint32) float32 {
		v := float32(0)
		for _, k := range pos {
			if cc.held[k] {
				v++
				break
			}
		}
		for _, k := range neg {
			if cc.held[k] {
				v--
				break
			}
		}
		return v
	}
	forward := axis([]uint32{common.KeyW, common.KeyUp}, common.KeyS, common.KeyDown)
	strafe := axis([]uint32{common.KeyD}, common.KeyA)
	turn := axis([]uint32{common.KeyQ, common.KeyLeft}, common.KeyE, common.KeyRight)
	step := cc.panSpeed * deltaTime
	turnStep := cc.turnSpeed * deltaTime
	cc.mu.Unlock()

	if turn != 0 {
		cc.Turn(turn*turnStep, 0)
	}
	if forward != 0 {
		cc.PanForward(forward * step)
	}
	if strafe != 0 {
		cc.PanRight(strafe * step)
	}
}

// poseLocked returns the current pose. Caller must hold the mutex.
func (cc *cameraControllerImpl) poseLocked() common.Pose {
	return common.Pose{
		Position: common.FromArray(cc.position),
		Rotation: common.V3(cc.pitch, cc.yaw, 0),
	}
}
