package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-portal/common"
	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAsync starts Run and returns a channel closed when it returns.
func runAsync(e Engine) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	return done
}

func TestHeadlessRunTicksSchedulerUntilQuit(t *testing.T) {
	e := NewEngine(WithTickRate(500))
	var ticks, callbacks atomic.Int32
	e.Scheduler().Register(scheduler.UpdateFunc(func(float32) { ticks.Add(1) }))
	e.SetTickCallback(func(float32) { callbacks.Add(1) })

	done := runAsync(e)
	assert.Eventually(t, func() bool { return ticks.Load() >= 5 }, 2*time.Second, time.Millisecond)

	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.GreaterOrEqual(t, callbacks.Load(), int32(4))
	assert.Nil(t, e.Window())
}

func TestViewerIsUpdatedEachTick(t *testing.T) {
	viewer := camera.NewCameraController(camera.WithPanSpeed(10))
	s := scheduler.NewScheduler()
	e := NewEngine(WithTickRate(500), WithScheduler(s), WithViewer(viewer))
	require.Same(t, s, e.Scheduler())
	require.Equal(t, 1, s.Len())

	viewer.KeyDown(common.KeyW)
	done := runAsync(e)
	assert.Eventually(t, func() bool { return viewer.Position().Length() > 0 }, 2*time.Second, time.Millisecond)
	e.Quit()
	<-done
}

func TestPanicInUpdateStopsEngine(t *testing.T) {
	e := NewEngine(WithTickRate(500))
	e.Scheduler().Register(scheduler.UpdateFunc(func(float32) { panic("boom") }))

	done := runAsync(e)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine kept running after a panic")
	}
}

func TestCameraFollowsViewer(t *testing.T) {
	viewer := camera.NewCameraController(camera.WithPanSpeed(10))
	cam := camera.NewCamera(camera.WithController(viewer))
	e := NewEngine(WithTickRate(500), WithCamera(cam))
	require.Same(t, cam, e.Camera())
	// viewer taken from the camera plus the camera itself
	require.Equal(t, 2, e.Scheduler().Len())

	before := cam.ViewMatrix()
	viewer.KeyDown(common.KeyW)
	done := runAsync(e)
	assert.Eventually(t, func() bool { return cam.ViewMatrix() != before }, 2*time.Second, time.Millisecond)
	e.Quit()
	<-done
}

func TestSetTickRateWhileRunning(t *testing.T) {
	e := NewEngine(WithTickRate(1), WithProfiling(true))
	var ticks atomic.Int32
	e.Scheduler().Register(scheduler.UpdateFunc(func(float32) { ticks.Add(1) }))

	done := runAsync(e)
	require.Eventually(t, func() bool { return e.(*engine).running.Load() }, time.Second, time.Millisecond)
	e.SetTickRate(1000)
	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, time.Millisecond)
	e.DisableProfiler()
	e.Quit()
	<-done
}
