package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/profiler"
	"github.com/Carmen-Shannon/oxy-portal/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-portal/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfilerStats appends extra fields, such as the teleport count, to each profiler line.
//
// Parameters:
//   - stats: the stats callback
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerStats(stats profiler.Stats) EngineBuilderOption {
	return func(e *engine) {
		e.profilerStats = stats
	}
}

// WithTickRate sets the engine tick rate in ticks per second. Values <= 0 mean 60.
//
// Parameters:
//   - fps: target ticks per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow runs the engine inside a host window. Run then blocks on the window's message loop.
//
// Parameters:
//   - w: an open Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScheduler supplies the scheduler instead of creating one, so portals can register before the engine exists.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s scheduler.Scheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithViewer sets the viewer rig updated each tick and driven by window key events.
//
// Parameters:
//   - viewer: the viewer rig
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewer(viewer camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		e.viewer = viewer
	}
}

// WithCamera sets the eye camera that follows the viewer rig.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = cam
	}
}
