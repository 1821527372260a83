package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-portal/engine/camera"
	"github.com/Carmen-Shannon/oxy-portal/engine/profiler"
	"github.com/Carmen-Shannon/oxy-portal/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-portal/engine/window"
)

// engine coordinates the tick goroutine and the optional window message loop.
type engine struct {
	tickRateChannel chan time.Duration

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window    window.Window
	scheduler scheduler.Scheduler
	viewer    camera.CameraController
	camera    camera.Camera

	profiler         *profiler.Profiler
	profilerStats    profiler.Stats
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	frameCallback  func()
}

// Engine drives a portal scene: a fixed-rate tick goroutine runs the scheduler, so every portal
// and the viewer update one after another on a single timeline, while an optional window
// delivers keyboard input to the viewer.
type Engine interface {
	// Scheduler returns the per-tick update list portals register with.
	//
	// Returns:
	//   - scheduler.Scheduler: the scheduler
	Scheduler() scheduler.Scheduler

	// Camera returns the viewer's eye camera, or nil if none was configured.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Window returns the host window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second. Takes effect immediately when running.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called each tick after the scheduler has run.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetFrameCallback registers a function called on the window thread each message loop iteration.
	// Ignored when running headless.
	//
	// Parameters:
	//   - callback: function to call
	SetFrameCallback(callback func())

	// Run starts the tick goroutine and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine. A configured viewer is registered with the scheduler and, with a
// window, receives its key events. A configured camera follows the viewer each tick and tracks the
// window's aspect ratio; its controller becomes the viewer when none is set.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.scheduler == nil {
		e.scheduler = scheduler.NewScheduler()
	}
	e.profiler = profiler.NewProfiler(profiler.WithStats(e.profilerStats))
	if e.viewer == nil && e.camera != nil {
		e.viewer = e.camera.Controller()
	}
	if e.viewer != nil {
		e.scheduler.Register(e.viewer)
		if e.window != nil {
			e.window.SetKeyDownCallback(e.viewer.KeyDown)
			e.window.SetKeyUpCallback(e.viewer.KeyUp)
		}
	}
	if e.camera != nil {
		e.scheduler.Register(scheduler.UpdateFunc(func(float32) { e.camera.Update() }))
		if e.window != nil {
			e.window.SetResizeCallback(func(width, height int) {
				if height > 0 {
					e.camera.SetAspect(float32(width) / float32(height))
				}
			})
		}
	}
	return e
}

func (e *engine) Scheduler() scheduler.Scheduler {
	return e.scheduler
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()

	if e.window != nil {
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				_ = e.window.Close()
				return
			default:
			}
			if e.frameCallback != nil {
				e.frameCallback()
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handleEngine runs the fixed-rate tick loop. A panic inside an updatable is logged and shuts the engine down.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("tick goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.scheduler.Tick(dt)
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
			if e.profilingEnabled.Load() {
				e.profiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleQuit blocks until the quit channel is closed.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}
	// replace any pending update with the newest rate
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetFrameCallback(callback func()) {
	e.frameCallback = callback
}
