package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickRunsInRegistrationOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.Register(UpdateFunc(func(float32) { order = append(order, "a") }))
	s.Register(UpdateFunc(func(float32) { order = append(order, "b") }))
	s.Register(UpdateFunc(func(float32) { order = append(order, "c") }))

	s.Tick(0.016)
	s.Tick(0.016)

	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, order)
	assert.Equal(t, 3, s.Len())
}

func TestDeregister(t *testing.T) {
	s := NewScheduler()
	var got float32
	calls := 0
	id := s.Register(UpdateFunc(func(dt float32) {
		calls++
		got = dt
	}))

	s.Tick(0.5)
	s.Deregister(id)
	s.Deregister(id)
	s.Deregister(999)
	s.Tick(0.5)

	assert.Equal(t, 1, calls)
	assert.Equal(t, float32(0.5), got)
	assert.Equal(t, 0, s.Len())
}

func TestDeregisterDuringTick(t *testing.T) {
	s := NewScheduler()
	var second uint64
	ran := 0
	s.Register(UpdateFunc(func(float32) { s.Deregister(second) }))
	second = s.Register(UpdateFunc(func(float32) { ran++ }))

	s.Tick(0.1)

	assert.Equal(t, 0, ran)
	assert.Equal(t, 1, s.Len())
}

func TestRegisterNilPanics(t *testing.T) {
	assert.Panics(t, func() { NewScheduler().Register(nil) })
}
