package teleport

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/fade"
	"github.com/Carmen-Shannon/oxy-portal/engine/navigation"
)

// DefaultForwardOffset is how far past the destination the viewer lands, along the destination's forward axis.
const DefaultForwardOffset float32 = 1.0

// ErrInProgress is returned by TeleportTo when another teleport sequence holds the slot.
var ErrInProgress = errors.New("teleport: a teleport is already in progress")

// Destination is anything with a world pose the viewer can be sent to.
type Destination interface {
	// Pose returns the destination's world position and orientation.
	//
	// Returns:
	//   - common.Pose: the world pose
	Pose() common.Pose
}

// Controller runs teleport sequences: fade out, relocate the viewer in front of the
// destination, fade in. At most one sequence runs at a time; the slot is claimed with a
// single compare-and-set so two simultaneous requests cannot both start.
type Controller interface {
	// InProgress reports whether a teleport sequence currently holds the slot.
	//
	// Returns:
	//   - bool: true from slot claim until the fade-in has finished
	InProgress() bool

	// TeleportTo runs a full sequence on the calling goroutine.
	//
	// Parameters:
	//   - ctx: passed to the fade collaborator
	//   - dest: where to send the viewer
	//
	// Returns:
	//   - error: ErrInProgress if the slot is taken, or the wrapped locomotion error if relocation failed
	TeleportTo(ctx context.Context, dest Destination) error

	// Request claims the slot and runs the sequence on its own goroutine, so the caller's tick is not blocked.
	//
	// Parameters:
	//   - dest: where to send the viewer
	//
	// Returns:
	//   - bool: false if a sequence was already in progress
	Request(dest Destination) bool

	// Wait blocks until every sequence started by Request has finished.
	Wait()

	// Count returns how many sequences relocated the viewer successfully.
	//
	// Returns:
	//   - int: the completed teleport count
	Count() int

	// ForwardOffset returns the landing distance in front of the destination.
	//
	// Returns:
	//   - float32: the offset in world units
	ForwardOffset() float32
}

type controller struct {
	inProgress atomic.Bool
	count      atomic.Int64
	wg         *sync.WaitGroup

	ctx        context.Context
	fader      fade.Fader
	locomotion navigation.Locomotion
	offset     float32
}

var _ Controller = &controller{}

// NewController creates the teleport controller shared by every portal in a scene.
//
// Parameters:
//   - fader: the screen fade collaborator
//   - locomotion: the viewer relocation collaborator
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller
func NewController(fader fade.Fader, locomotion navigation.Locomotion, options ...ControllerOption) Controller {
	if fader == nil || locomotion == nil {
		panic("teleport: NewController requires a fader and a locomotion")
	}
	c := &controller{
		wg:         &sync.WaitGroup{},
		ctx:        context.Background(),
		fader:      fader,
		locomotion: locomotion,
		offset:     DefaultForwardOffset,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// DestinationPose returns where a viewer lands when teleported to dest: the destination's
// orientation, and its position pushed offset units along its forward axis.
//
// Parameters:
//   - dest: the destination's world pose
//   - offset: the forward offset
//
// Returns:
//   - common.Pose: the landing pose
func DestinationPose(dest common.Pose, offset float32) common.Pose {
	return common.Pose{
		Position: dest.Position.Add(dest.Forward().Scale(offset)),
		Rotation: dest.Rotation,
	}
}

func (c *controller) InProgress() bool {
	return c.inProgress.Load()
}

func (c *controller) TeleportTo(ctx context.Context, dest Destination) error {
	if !c.inProgress.CompareAndSwap(false, true) {
		return ErrInProgress
	}
	return c.run(ctx, dest)
}

func (c *controller) Request(dest Destination) bool {
	if !c.inProgress.CompareAndSwap(false, true) {
		return false
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_ = c.run(c.ctx, dest)
	}()
	return true
}

func (c *controller) Wait() {
	c.wg.Wait()
}

func (c *controller) Count() int {
	return int(c.count.Load())
}

func (c *controller) ForwardOffset() float32 {
	return c.offset
}

// run executes the sequence. The caller must already hold the slot; it is released after the fade-in.
// Fade failures are logged and do not stop the sequence.
func (c *controller) run(ctx context.Context, dest Destination) error {
	defer c.inProgress.Store(false)

	pose := DestinationPose(dest.Pose(), c.offset)
	log.Printf("[Teleport] sequence started, destination (%.2f, %.2f, %.2f)", pose.Position.X, pose.Position.Y, pose.Position.Z)

	if err := c.fader.FadeOut(ctx); err != nil {
		log.Printf("[Teleport] fade out failed: %v", err)
	}

	m := pose.Matrix()
	travelErr := c.locomotion.TravelTo(m, true, true)
	if travelErr != nil {
		log.Printf("[Teleport] relocation failed, viewer left in place: %v", travelErr)
	} else {
		c.count.Add(1)
	}

	if err := c.fader.FadeIn(ctx); err != nil {
		log.Printf("[Teleport] fade in failed: %v", err)
	}

	if travelErr != nil {
		return fmt.Errorf("teleport: relocate viewer: %w", travelErr)
	}
	log.Printf("[Teleport] sequence finished")
	return nil
}
