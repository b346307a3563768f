package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"go.uber.org/zap"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *zap.Logger

	backendType RendererBackendType
	backend     RendererBackend

	clearColor ClearColor
	width      int
	height     int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer presents frames to a window surface.
//
// Each frame is a single render pass that clears the swapchain image. The Renderer exists so
// the engine's render-on-demand loop acquires, submits and presents real surface images; it
// draws no geometry.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	// Zero sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color subsequent frames are cleared to.
	//
	// Parameters:
	//   - color: the RGBA clear color
	SetClearColor(color ClearColor)

	// ClearColor returns the color frames are cleared to.
	//
	// Returns:
	//   - ClearColor: the current clear color
	ClearColor() ClearColor

	// BeginFrame acquires the next surface image and opens the clearing render pass.
	//
	// Returns:
	//   - error: an error if the surface image could not be acquired
	BeginFrame() error

	// EndFrame closes the render pass and submits it to the GPU queue.
	EndFrame()

	// Present displays the acquired surface image.
	Present()

	// RenderFrame runs BeginFrame, EndFrame and Present.
	//
	// Returns:
	//   - error: an error if the surface image could not be acquired
	RenderFrame() error

	// Release frees the GPU device, surface and adapter. The Renderer is unusable afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer bound to the window's surface.
//
// Parameters:
//   - backendType: the GPU backend implementation to use
//   - window: the window whose surface frames are presented to
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		logger:      zap.NewNop(),
		backendType: backendType,
		clearColor:  DefaultClearColor,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.SetClearColor(r.clearColor)

	r.Resize(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()

	r.backend.ConfigureSurface(width, height)
	r.logger.Debug("surface configured", zap.Int("width", width), zap.Int("height", height))
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color ClearColor) {
	r.mu.Lock()
	r.clearColor = color
	r.mu.Unlock()
	r.backend.SetClearColor(color)
}

func (r *renderer) ClearColor() ClearColor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) RenderFrame() error {
	if err := r.BeginFrame(); err != nil {
		r.logger.Warn("frame skipped", zap.Error(err))
		return err
	}
	r.EndFrame()
	r.Present()
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}
