package renderer

import (
	"context"
	"errors"

	"github.com/Carmen-Shannon/oxy-portal/common"
)

// ErrCaptureSize is returned when a capture target is missing or its faces do not match in size.
var ErrCaptureSize = errors.New("renderer: capture target has an invalid face size")

// Capturer renders the scene as seen from a point in all six axis directions into a cube map.
// A capture is a snapshot: the target is not updated again until Capture is called again.
type Capturer interface {
	// Capture renders the six faces seen from viewpoint into target.
	//
	// Parameters:
	//   - ctx: cancels an in-flight capture
	//   - viewpoint: the world-space capture position
	//   - target: the cube map to write
	//   - exclude: scene object IDs left out of the capture (the requester's own geometry)
	//
	// Returns:
	//   - error: ErrCaptureSize for an unusable target, or the context error on cancellation
	Capture(ctx context.Context, viewpoint common.Vec3, target *CubeMap, exclude ...uint64) error
}
