package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the viewer's initial world position.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = [3]float32{x, y, z}
	}
}

// WithYaw sets the initial rotation about the Y axis.
//
// Parameters:
//   - yaw: angle in radians (0 = facing +Z)
//
// Returns:
//   - CameraControllerOption: functional option to set the yaw
func WithYaw(yaw float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.yaw = yaw
	}
}

// WithPitch sets the initial rotation about the X axis, clamped short of straight up or down.
//
// Parameters:
//   - pitch: angle in radians (positive looks down)
//
// Returns:
//   - CameraControllerOption: functional option to set the pitch
func WithPitch(pitch float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pitch = pitch
	}
}

// WithScale sets the viewer's initial uniform scale.
//
// Parameters:
//   - scale: the scale factor
//
// Returns:
//   - CameraControllerOption: functional option to set the scale
func WithScale(scale float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.scale = scale
	}
}

// WithPanSpeed sets the walking speed in world units per second.
//
// Parameters:
//   - speed: walk speed
//
// Returns:
//   - CameraControllerOption: functional option to set the pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithTurnSpeed sets the keyboard turn speed in radians per second.
//
// Parameters:
//   - speed: turn speed
//
// Returns:
//   - CameraControllerOption: functional option to set the turn speed
func WithTurnSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.turnSpeed = speed
	}
}
