package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"go.uber.org/zap"
)

// Presenter draws one frame to the window surface. renderer.Renderer satisfies it.
type Presenter interface {
	Resize(width, height int)
	RenderFrame() error
}

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window     window.Window
	controller camera.CameraController
	presenter  Presenter
	logger     *zap.Logger

	// invalidated is set by controller change notifications and resizes, and cleared
	// when a frame is presented. redraw wakes the render loop.
	invalidated atomic.Bool
	redraw      chan struct{}
	listenerID  camera.ListenerID

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the engine loop, render loop, and window management.
//
// The tick loop advances the camera controller at a fixed rate. The render loop presents a
// frame only after the controller reports a change (or the window is resized), so an idle
// view costs no GPU work.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Controller returns the camera controller driven by the tick loop.
	//
	// Returns:
	//   - camera.CameraController: the controller, or nil if none was configured
	Controller() camera.CameraController

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The controller is advanced at this rate.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick, after the controller advances.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each presented frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Invalidate requests a redraw on the next render loop iteration.
	Invalidate()

	// Invalidated reports whether a redraw is pending.
	//
	// Returns:
	//   - bool: true if the next render loop iteration will present a frame
	Invalidated() bool

	// Run starts the engine and render loops and processes window messages. Blocks until the
	// window closes, then stops both loops.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Routes window input to the controller and subscribes to its change notifications.
//
// Parameters:
//   - options: functional options for engine configuration (window, controller, presenter, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		redraw:          make(chan struct{}, 1),
		logger:          zap.NewNop(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.controller != nil {
		e.listenerID = e.controller.AddListener(camera.EventChange, func(camera.Event) {
			e.Invalidate()
		})
	}
	if e.window != nil {
		e.bindWindow()
	}

	// The first frame always presents.
	e.Invalidate()
	return e
}

// bindWindow routes window input to the controller and resizes to the camera, controller
// viewport and presenter. R restores the saved view.
func (e *engine) bindWindow() {
	e.window.SetResizeCallback(e.resize)
	e.window.SetUpdateCallback(e.closeOnQuit)
	if e.controller == nil {
		return
	}
	e.controller.SetViewport(float64(e.window.Width()), float64(e.window.Height()))

	c := e.controller
	e.window.SetPointerDownCallback(c.HandlePointerDown)
	e.window.SetPointerMoveCallback(c.HandlePointerMove)
	e.window.SetPointerUpCallback(c.HandlePointerUp)
	e.window.SetPointerCancelCallback(c.HandlePointerCancel)
	e.window.SetWheelCallback(func(ev common.WheelEvent) {
		c.HandleWheel(ev)
	})
	e.window.SetKeyDownCallback(func(ev common.KeyEvent) {
		if ev.Code == common.KeyR && !ev.HasModifier() {
			c.Reset()
			return
		}
		c.HandleKeyDown(ev)
	})
	e.window.SetKeyUpCallback(c.HandleKeyUp)
}

// closeOnQuit runs on the window's message loop. Once Quit was called it waits for the
// engine loops to stop and closes the window.
func (e *engine) closeOnQuit() {
	select {
	case <-e.quitChannel:
	default:
		return
	}
	e.wg.Wait()
	if err := e.window.Close(); err != nil {
		e.logger.Warn("window close failed", zap.Error(err))
	}
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.controller != nil {
		e.controller.Camera().SetAspect(float32(width) / float32(height))
		e.controller.SetViewport(float64(width), float64(height))
	}
	if e.presenter != nil {
		e.presenter.Resize(width, height)
	}
	e.logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
	e.Invalidate()
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Controller() camera.CameraController {
	return e.controller
}

func (e *engine) Invalidate() {
	e.invalidated.Store(true)
	select {
	case e.redraw <- struct{}{}:
	default:
	}
}

func (e *engine) Invalidated() bool {
	return e.invalidated.Load()
}

func (e *engine) Run() {
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
	}
	e.signalQuit()
	e.wg.Wait()
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("window close failed", zap.Error(err))
		}
	}
	if e.controller != nil {
		e.controller.RemoveListener(e.listenerID)
	}
	e.logger.Info("engine stopped")
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the engine and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.running.Store(true)
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Advances the controller at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

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
			e.tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// tick advances the controller by one frame. A change notification invalidates the view.
func (e *engine) tick(dt float32) {
	if e.controller != nil {
		e.controller.Advance(dt)
	}
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
}

// handleRender runs the render-on-demand loop in its own goroutine. It sleeps until the view
// is invalidated, presents one frame, then honors the optional frame limit.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render goroutine recovered from panic", zap.Any("panic", r))
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-e.redraw:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			rendered := e.renderOnce(dt)
			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick(rendered)
			}

			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// renderOnce presents a frame if the view is invalidated.
//
// Returns:
//   - bool: true if a frame was presented
func (e *engine) renderOnce(dt float32) bool {
	if !e.invalidated.CompareAndSwap(true, false) {
		return false
	}
	if e.presenter != nil {
		if err := e.presenter.RenderFrame(); err != nil {
			// Retry on the next wake.
			e.invalidated.Store(true)
			e.logger.Debug("frame not presented", zap.Error(err))
			return false
		}
	}
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	return true
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each presented frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
