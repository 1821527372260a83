package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
)

// Scene is the live-object table for a shared 3D scene. Every GameObject added to the
// scene receives a numeric ID which doubles as a weak handle: holders keep the ID rather
// than the object, and Get returns nil once the object has been removed.
//
// Components are keyed attachments on an object ID (for example the portal behavior on a
// portal body). They are dropped together with their object, which lets subsystems derive
// views such as "all portals currently present" by scanning ComponentsOf.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Add adds a GameObject to the scene. Objects without an ID are assigned the next free ID.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by ID. Returns nil if the object was never added or has been removed.
	//
	// Parameters:
	//   - id: the object's ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject and all of its components, then notifies OnRemove observers.
	// Removing an unknown ID is a no-op.
	//
	// Parameters:
	//   - id: the object's ID
	Remove(id uint64)

	// Count returns the number of objects currently in the scene.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Objects returns a snapshot of all objects in ascending ID order.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// SetComponent attaches a value to an object under the given key, replacing any previous value.
	// Has no effect if the object is not in the scene.
	//
	// Parameters:
	//   - id: the object's ID
	//   - key: the component key
	//   - value: the component value
	SetComponent(id uint64, key string, value any)

	// Component retrieves the value attached to an object under the given key.
	//
	// Parameters:
	//   - id: the object's ID
	//   - key: the component key
	//
	// Returns:
	//   - any: the component value
	//   - bool: true if the component exists
	Component(id uint64, key string) (any, bool)

	// ComponentsOf returns every value attached under the given key, in ascending object ID order.
	//
	// Parameters:
	//   - key: the component key
	//
	// Returns:
	//   - []any: the component values
	ComponentsOf(key string) []any

	// OnRemove registers an observer called after an object leaves the scene.
	// Observers run outside the scene lock and may call back into the scene.
	//
	// Parameters:
	//   - fn: the observer, receiving the removed object's ID
	OnRemove(fn func(id uint64))

	// Clear removes all objects from the scene, notifying observers for each.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name       string
	registry   map[uint64]game_object.GameObject
	components map[uint64]map[string]any
	nextID     uint64

	removeObservers []func(id uint64)
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new, empty Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		registry:   make(map[uint64]game_object.GameObject),
		components: make(map[uint64]map[string]any),
		nextID:     1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj == nil {
		panic("scene: Add requires a non-nil GameObject")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

// addLocked registers obj, assigning an ID when it has none. Caller must hold the write lock.
func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	id := obj.ID()
	if id == 0 {
		id = s.nextID
		obj.SetID(id)
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}
	s.registry[id] = obj
	return id
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	if _, ok := s.registry[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.registry, id)
	delete(s.components, id)
	observers := slices.Clone(s.removeObservers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(id)
	}
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.sortedIDsLocked()
	out := make([]game_object.GameObject, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) SetComponent(id uint64, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[id]; !ok {
		return
	}
	c, ok := s.components[id]
	if !ok {
		c = make(map[string]any)
		s.components[id] = c
	}
	c[key] = value
}

func (s *scene) Component(id uint64, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.components[id][key]
	return v, ok
}

func (s *scene) ComponentsOf(key string) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []any
	for _, id := range s.sortedIDsLocked() {
		if v, ok := s.components[id][key]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (s *scene) OnRemove(fn func(id uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeObservers = append(s.removeObservers, fn)
}

func (s *scene) Clear() {
	s.mu.RLock()
	ids := s.sortedIDsLocked()
	s.mu.RUnlock()
	for _, id := range ids {
		s.Remove(id)
	}
}

// sortedIDsLocked returns registry IDs in ascending order. Caller must hold the lock.
func (s *scene) sortedIDsLocked() []uint64 {
	ids := make([]uint64, 0, len(s.registry))
	for id := range s.registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
