package scene

import (
	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.addLocked(obj)
		}
	}
}

// WithRemoveObserver registers an observer called after each object removal.
//
// Parameters:
//   - fn: the observer, receiving the removed object's ID
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRemoveObserver(fn func(id uint64)) SceneBuilderOption {
	return func(s *scene) {
		s.removeObservers = append(s.removeObservers, fn)
	}
}
