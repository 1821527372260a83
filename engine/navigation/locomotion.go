package navigation

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/chewxy/math32"
)

// ErrNotNavigable is returned when a destination cannot be placed on the nav mesh.
var ErrNotNavigable = errors.New("navigation: destination is not navigable")

// Locomotion relocates the viewer.
type Locomotion interface {
	// TravelTo moves the viewer to a world pose.
	//
	// Parameters:
	//   - pose: column-major world matrix of the destination
	//   - constrainToNavigable: snap the destination onto walkable space, failing if none is near
	//   - preserveScale: keep the viewer's own scale instead of adopting the pose's
	//
	// Returns:
	//   - error: ErrNotNavigable if the destination cannot be reached
	TravelTo(pose [16]float32, constrainToNavigable, preserveScale bool) error
}

// Mover is the Locomotion implementation driving a first-person viewer rig.
type Mover interface {
	Locomotion

	// Viewer returns the rig being moved.
	//
	// Returns:
	//   - camera.CameraController: the viewer rig
	Viewer() camera.CameraController

	// Travels returns how many TravelTo calls succeeded.
	//
	// Returns:
	//   - int: the successful travel count
	Travels() int
}

type mover struct {
	viewer    camera.CameraController
	navMesh   NavMesh
	eyeHeight float32
	travels   atomic.Int64
}

var _ Mover = &mover{}

// NewMover creates a Mover for the given viewer rig. Without a nav mesh every destination is navigable.
//
// Parameters:
//   - viewer: the rig to relocate
//   - options: functional options to configure the mover
//
// Returns:
//   - Mover: the new mover
func NewMover(viewer camera.CameraController, options ...MoverOption) Mover {
	if viewer == nil {
		panic("navigation: NewMover requires a viewer")
	}
	m := &mover{viewer: viewer}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *mover) Viewer() camera.CameraController {
	return m.viewer
}

func (m *mover) Travels() int {
	return int(m.travels.Load())
}

func (m *mover) TravelTo(pose [16]float32, constrainToNavigable, preserveScale bool) error {
	dest := common.PoseFromMatrix(pose)

	if constrainToNavigable && m.navMesh != nil {
		floor := dest.Position.Sub(common.V3(0, m.eyeHeight, 0))
		snapped, ok := m.navMesh.Snap(floor)
		if !ok {
			return fmt.Errorf("%w: (%.2f, %.2f, %.2f)", ErrNotNavigable, dest.Position.X, dest.Position.Y, dest.Position.Z)
		}
		dest.Position = snapped.Add(common.V3(0, m.eyeHeight, 0))
	}

	if !preserveScale {
		m.viewer.SetScale(math32.Sqrt(pose[0]*pose[0] + pose[1]*pose[1] + pose[2]*pose[2]))
	}
	m.viewer.SetPose(dest)
	m.travels.Add(1)
	return nil
}
