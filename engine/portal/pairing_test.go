package portal

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-portal/engine/game_object"
	"github.com/Carmen-Shannon/oxy-portal/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type member struct {
	id    uint64
	group string
}

func (m *member) ID() uint64    { return m.id }
func (m *member) Group() string { return m.group }

// join adds a body to the scene, attaches a member for it and resolves its partner.
func join(s scene.Scene, r Registry, group string) (*member, *Pairing) {
	id := s.Add(game_object.NewGameObject())
	m := &member{id: id, group: group}
	s.SetComponent(id, ComponentKey, m)
	return m, r.Resolve(m)
}

func partnerOf(t *testing.T, p *Pairing) uint64 {
	t.Helper()
	select {
	case <-p.Done():
	default:
		t.Fatal("pairing not resolved")
	}
	id, ok := p.Partner()
	require.True(t, ok)
	return id
}

func TestPairingResolvesBothOrders(t *testing.T) {
	for _, order := range [][2]string{{"a", "b"}, {"b", "a"}} {
		s := scene.NewScene("pairing")
		r := NewRegistry(s)

		first, firstPairing := join(s, r, "g")
		_, ok := firstPairing.Partner()
		assert.False(t, ok, "%v: first portal resolved before its partner existed", order)

		second, secondPairing := join(s, r, "g")

		assert.Equal(t, second.ID(), partnerOf(t, firstPairing), "%v", order)
		assert.Equal(t, first.ID(), partnerOf(t, secondPairing), "%v", order)
	}
}

func TestPairingIgnoresOtherGroups(t *testing.T) {
	s := scene.NewScene("pairing")
	r := NewRegistry(s)

	_, a := join(s, r, "left")
	_, b := join(s, r, "right")

	_, ok := a.Partner()
	assert.False(t, ok)
	_, ok = b.Partner()
	assert.False(t, ok)
	assert.Len(t, r.Members(), 2)
}

func TestEmptyGroupNeverPairs(t *testing.T) {
	s := scene.NewScene("pairing")
	r := NewRegistry(s)

	_, a := join(s, r, "")
	_, b := join(s, r, "")

	_, ok := a.Partner()
	assert.False(t, ok)
	_, ok = b.Partner()
	assert.False(t, ok)
}

func TestPairingSignalDeliveredOnce(t *testing.T) {
	s := scene.NewScene("pairing")
	r := NewRegistry(s)

	_, a := join(s, r, "g")
	b, _ := join(s, r, "g")
	_, c := join(s, r, "g")

	// the third portal finds the first one, but the first is already paired
	assert.Equal(t, b.ID(), partnerOf(t, a))
	assert.NotZero(t, partnerOf(t, c))
}

func TestRemovedPortalDropsOutOfMatching(t *testing.T) {
	s := scene.NewScene("pairing")
	r := NewRegistry(s)

	a, aPairing := join(s, r, "g")
	s.Remove(a.ID())

	_, bPairing := join(s, r, "g")

	_, ok := bPairing.Partner()
	assert.False(t, ok)
	_, ok = aPairing.Partner()
	assert.False(t, ok)
	assert.Len(t, r.Members(), 1)
}
