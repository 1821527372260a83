package teleport

import "context"

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controller)

// WithForwardOffset sets how far in front of the destination the viewer lands.
//
// Parameters:
//   - offset: the forward offset in world units
//
// Returns:
//   - ControllerOption: functional option to set the offset
func WithForwardOffset(offset float32) ControllerOption {
	return func(c *controller) {
		c.offset = offset
	}
}

// WithContext sets the context handed to the fader for sequences started by Request.
//
// Parameters:
//   - ctx: the base context
//
// Returns:
//   - ControllerOption: functional option to set the context
func WithContext(ctx context.Context) ControllerOption {
	return func(c *controller) {
		c.ctx = ctx
	}
}
