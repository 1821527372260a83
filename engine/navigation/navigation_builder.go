package navigation

// NavMeshOption is a functional option for configuring a NavMesh.
type NavMeshOption func(*navMesh)

// WithRects seeds the nav mesh with walkable areas.
//
// Parameters:
//   - rects: the areas to add
//
// Returns:
//   - NavMeshOption: functional option to add the areas
func WithRects(rects ...Rect) NavMeshOption {
	return func(n *navMesh) {
		for _, r := range rects {
			n.rects = append(n.rects, r.normalized())
		}
	}
}

// WithMaxSnap sets how far a destination may be moved to reach walkable space.
//
// Parameters:
//   - d: the maximum snap distance in world units
//
// Returns:
//   - NavMeshOption: functional option to set the snap distance
func WithMaxSnap(d float32) NavMeshOption {
	return func(n *navMesh) {
		n.maxSnap = d
	}
}

// MoverOption is a functional option for configuring a Mover.
type MoverOption func(*mover)

// WithNavMesh constrains travel to the given nav mesh.
//
// Parameters:
//   - nm: the nav mesh
//
// Returns:
//   - MoverOption: functional option to set the nav mesh
func WithNavMesh(nm NavMesh) MoverOption {
	return func(m *mover) {
		m.navMesh = nm
	}
}

// WithEyeHeight sets the viewer's eye height above the floor used when snapping.
//
// Parameters:
//   - h: the eye height in world units
//
// Returns:
//   - MoverOption: functional option to set the eye height
func WithEyeHeight(h float32) MoverOption {
	return func(m *mover) {
		m.eyeHeight = h
	}
}
