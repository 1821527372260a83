package portal

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
)

// ComponentKey is the scene component key portals are attached under.
const ComponentKey = "portal"

// Member is the part of a portal the registry needs for matching.
type Member interface {
	// ID returns the scene object ID of the portal body, used as its weak handle.
	ID() uint64
	// Group returns the pairing group.
	Group() string
}

// Pairing is a one-element future holding a portal's partner handle. It resolves at most once;
// later signals are dropped.
type Pairing struct {
	once    *sync.Once
	done    chan struct{}
	partner atomic.Uint64
}

func newPairing() *Pairing {
	return &Pairing{
		once: &sync.Once{},
		done: make(chan struct{}),
	}
}

// Done returns a channel closed when the partner is known.
func (p *Pairing) Done() <-chan struct{} {
	return p.done
}

// Partner returns the partner's object ID once resolved.
//
// Returns:
//   - uint64: the partner handle
//   - bool: false while unresolved
func (p *Pairing) Partner() (uint64, bool) {
	select {
	case <-p.done:
		return p.partner.Load(), true
	default:
		return 0, false
	}
}

// signal delivers the partner handle. Only the first call has any effect.
func (p *Pairing) signal(partner uint64) bool {
	delivered := false
	p.once.Do(func() {
		p.partner.Store(partner)
		close(p.done)
		delivered = true
	})
	return delivered
}

// Registry matches portals of the same group inside one scene. It stores no portal list of its
// own: the present portals are whatever the scene carries under ComponentKey, so a destroyed
// portal drops out of matching as soon as its body leaves the scene.
type Registry interface {
	// Resolve starts partner resolution for self. If a same-group portal is already present the
	// returned pairing is resolved at once and that portal is signalled with self as its partner,
	// completing its own pending resolution. Otherwise the pairing resolves when a later portal
	// signals it. A portal with an empty group never resolves.
	//
	// Parameters:
	//   - self: the portal requesting a partner; must already be attached to the scene
	//
	// Returns:
	//   - *Pairing: the future for self's partner
	Resolve(self Member) *Pairing

	// Remove forgets the pending pairing of a portal. Called when its body leaves the scene.
	//
	// Parameters:
	//   - id: the portal body ID
	Remove(id uint64)

	// Members returns the portals present in the scene, in ascending ID order.
	//
	// Returns:
	//   - []Member: the portals
	Members() []Member
}

type registry struct {
	mu       *sync.Mutex
	scene    scene.Scene
	pairings map[uint64]*Pairing
}

var _ Registry = &registry{}

// NewRegistry creates the pairing registry for a scene and subscribes it to object removal.
//
// Parameters:
//   - s: the scene the portals live in
//
// Returns:
//   - Registry: the new registry
func NewRegistry(s scene.Scene) Registry {
	if s == nil {
		panic("portal: NewRegistry requires a scene")
	}
	r := &registry{
		mu:       &sync.Mutex{},
		scene:    s,
		pairings: make(map[uint64]*Pairing),
	}
	s.OnRemove(r.Remove)
	return r
}

func (r *registry) Resolve(self Member) *Pairing {
	r.mu.Lock()
	defer r.mu.Unlock()

	pairing := newPairing()
	r.pairings[self.ID()] = pairing
	if self.Group() == "" {
		return pairing
	}

	for _, other := range r.Members() {
		if other.ID() == self.ID() || other.Group() != self.Group() {
			continue
		}
		pairing.signal(other.ID())
		if theirs, ok := r.pairings[other.ID()]; ok {
			theirs.signal(self.ID())
		}
		log.Printf("[Portal] paired %d <-> %d in group %q", self.ID(), other.ID(), self.Group())
		break
	}
	return pairing
}

func (r *registry) Remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pairings, id)
}

func (r *registry) Members() []Member {
	var out []Member
	for _, v := range r.scene.ComponentsOf(ComponentKey) {
		if m, ok := v.(Member); ok {
			out = append(out, m)
		}
	}
	return out
}
