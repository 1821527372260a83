package scheduler

import (
	"slices"
	"sync"
)

// Updatable is anything that advances once per engine tick.
type Updatable interface {
	// Update advances the object by one tick.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Update(deltaTime float32)
}

// UpdateFunc adapts a plain function to Updatable.
type UpdateFunc func(deltaTime float32)

func (f UpdateFunc) Update(deltaTime float32) {
	f(deltaTime)
}

// Scheduler owns the per-tick update list. Updatables run one after another on the ticking
// goroutine in registration order, so no two of them ever run in parallel.
type Scheduler interface {
	// Register adds an updatable to the end of the tick order.
	//
	// Parameters:
	//   - u: the updatable
	//
	// Returns:
	//   - uint64: a handle for Deregister
	Register(u Updatable) uint64

	// Deregister removes an updatable. Safe to call from inside Update; unknown handles are ignored.
	//
	// Parameters:
	//   - id: the handle returned by Register
	Deregister(id uint64)

	// Tick runs every registered updatable once.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Tick(deltaTime float32)

	// Len returns the number of registered updatables.
	//
	// Returns:
	//   - int: the registration count
	Len() int
}

type entry struct {
	id uint64
	u  Updatable
}

type scheduler struct {
	mu      *sync.Mutex
	entries []entry
	nextID  uint64
}

var _ Scheduler = &scheduler{}

// NewScheduler creates an empty Scheduler.
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler() Scheduler {
	return &scheduler{
		mu:     &sync.Mutex{},
		nextID: 1,
	}
}

func (s *scheduler) Register(u Updatable) uint64 {
	if u == nil {
		panic("scheduler: Register requires a non-nil Updatable")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.entries = append(s.entries, entry{id: id, u: u})
	return id
}

func (s *scheduler) Deregister(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = slices.DeleteFunc(s.entries, func(e entry) bool { return e.id == id })
}

func (s *scheduler) Tick(deltaTime float32) {
	s.mu.Lock()
	snapshot := slices.Clone(s.entries)
	s.mu.Unlock()

	for _, e := range snapshot {
		if !s.registered(e.id) {
			continue
		}
		e.u.Update(deltaTime)
	}
}

func (s *scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// registered reports whether id is still in the tick order. An updatable removed earlier in
// the same tick is skipped.
func (s *scheduler) registered(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.entries, func(e entry) bool { return e.id == id })
}
