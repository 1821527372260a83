package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-portal/common"
)

type gameObject struct {
	mu *sync.RWMutex

	id      uint64
	enabled atomic.Bool
	label   string

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	// bounding sphere radius and flat color, read by the environment capturer
	radius float32
	color  common.Color
}

// GameObject defines the interface for a scene entity with a world transform.
// Portals, their indicator meshes, scenery, and the viewer rig are all GameObjects.
// Transform accessors are safe for concurrent use: the teleport sequence reads
// portal transforms off the tick goroutine.
type GameObject interface {
	// ID returns the object's unique identifier within its scene.
	//
	// Returns:
	//   - uint64: the object ID, or 0 if the object has not been added to a scene
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Enabled returns whether this object is visible to rendering and capture.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is visible to rendering and capture.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Label returns the structured label the object was authored with (e.g. "portal-to__panorama").
	//
	// Returns:
	//   - string: the label, possibly empty
	Label() string

	// Position returns the world-space position.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p common.Vec3)

	// Rotation returns the Euler rotation in radians (Y * X * Z order).
	//
	// Returns:
	//   - common.Vec3: the rotation angles
	Rotation() common.Vec3

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - r: the new rotation angles
	SetRotation(r common.Vec3)

	// Scale returns the per-axis scale factors.
	//
	// Returns:
	//   - common.Vec3: the scale
	Scale() common.Vec3

	// SetScale sets the per-axis scale factors.
	//
	// Parameters:
	//   - s: the new scale
	SetScale(s common.Vec3)

	// Pose returns position and rotation together, read under a single lock.
	//
	// Returns:
	//   - common.Pose: the world pose without scale
	Pose() common.Pose

	// SetPose sets position and rotation together under a single lock.
	//
	// Parameters:
	//   - p: the new pose
	SetPose(p common.Pose)

	// Forward returns the unit direction the object faces (its rotated +Z axis).
	//
	// Returns:
	//   - common.Vec3: the facing direction
	Forward() common.Vec3

	// ModelMatrix returns the column-major model matrix including scale.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// Radius returns the bounding sphere radius (scaled by the largest scale axis).
	// A zero radius means the object has no visible volume.
	//
	// Returns:
	//   - float32: the world-space bounding radius
	Radius() float32

	// Color returns the flat color the object contributes to environment captures.
	//
	// Returns:
	//   - common.Color: the object color
	Color() common.Color
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects are enabled with unit scale unless an option says otherwise.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.RWMutex{},
		scale: [3]float32{1, 1, 1},
		color: common.Color{R: 1, G: 1, B: 1, A: 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Label() string {
	return g.label
}

func (g *gameObject) Position() common.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return common.FromArray(g.position)
}

func (g *gameObject) SetPosition(p common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p.Array()
}

func (g *gameObject) Rotation() common.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return common.FromArray(g.rotation)
}

func (g *gameObject) SetRotation(r common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = r.Array()
}

func (g *gameObject) Scale() common.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return common.FromArray(g.scale)
}

func (g *gameObject) SetScale(s common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = s.Array()
}

func (g *gameObject) Pose() common.Pose {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return common.Pose{Position: common.FromArray(g.position), Rotation: common.FromArray(g.rotation)}
}

func (g *gameObject) SetPose(p common.Pose) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p.Position.Array()
	g.rotation = p.Rotation.Array()
}

func (g *gameObject) Forward() common.Vec3 {
	return g.Pose().Forward()
}

func (g *gameObject) ModelMatrix() [16]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var m [16]float32
	common.BuildModelMatrix(m[:],
		g.position[0], g.position[1], g.position[2],
		g.rotation[0], g.rotation[1], g.rotation[2],
		g.scale[0], g.scale[1], g.scale[2],
	)
	return m
}

func (g *gameObject) Radius() float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := max(g.scale[0], g.scale[1], g.scale[2])
	return g.radius * s
}

func (g *gameObject) Color() common.Color {
	return g.color
}
