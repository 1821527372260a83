package navigation

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/chewxy/math32"
)

// Rect is a walkable axis-aligned floor area at a fixed height.
type Rect struct {
	MinX, MinZ float32
	MaxX, MaxZ float32
	Height     float32
}

// Contains reports whether the point's horizontal position lies inside the rect.
func (r Rect) Contains(p common.Vec3) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

// normalized orders the bounds so Min <= Max on both axes.
func (r Rect) normalized() Rect {
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinZ > r.MaxZ {
		r.MinZ, r.MaxZ = r.MaxZ, r.MinZ
	}
	return r
}

// closest returns the point on the rect's floor nearest to p.
func (r Rect) closest(p common.Vec3) common.Vec3 {
	return common.V3(
		common.Clamp(p.X, r.MinX, r.MaxX),
		r.Height,
		common.Clamp(p.Z, r.MinZ, r.MaxZ),
	)
}

// NavMesh is the set of floor areas a viewer may stand on.
type NavMesh interface {
	// AddRect adds a walkable area.
	//
	// Parameters:
	//   - r: the area to add
	AddRect(r Rect)

	// Rects returns a copy of the walkable areas.
	//
	// Returns:
	//   - []Rect: the areas
	Rects() []Rect

	// Snap returns the walkable floor point nearest to p, if one lies within the snap distance.
	//
	// Parameters:
	//   - p: the floor-level query point
	//
	// Returns:
	//   - common.Vec3: the snapped point
	//   - bool: false if no walkable point is close enough
	Snap(p common.Vec3) (common.Vec3, bool)
}

type navMesh struct {
	mu *sync.RWMutex

	rects   []Rect
	maxSnap float32
}

var _ NavMesh = &navMesh{}

// NewNavMesh creates a nav mesh.
//
// Parameters:
//   - options: functional options to configure the nav mesh
//
// Returns:
//   - NavMesh: the new nav mesh
func NewNavMesh(options ...NavMeshOption) NavMesh {
	n := &navMesh{
		mu:      &sync.RWMutex{},
		maxSnap: 1,
	}
	for _, option := range options {
		option(n)
	}
	return n
}

func (n *navMesh) AddRect(r Rect) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rects = append(n.rects, r.normalized())
}

func (n *navMesh) Rects() []Rect {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Rect, len(n.rects))
	copy(out, n.rects)
	return out
}

func (n *navMesh) Snap(p common.Vec3) (common.Vec3, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	best := float32(math32.MaxFloat32)
	var snapped common.Vec3
	for _, r := range n.rects {
		c := r.closest(p)
		if d := c.Distance(p); d < best {
			best, snapped = d, c
		}
	}
	if best > n.maxSnap {
		return common.Vec3{}, false
	}
	return snapped, true
}
