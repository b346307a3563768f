package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/cogentcore/webgpu/wgpu"
)

const defaultTitle = "oxy-orbit"

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetPointerDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the pointer event (DOM button numbering)
	SetPointerDownCallback(callback func(ev common.PointerEvent))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the pointer event
	SetPointerMoveCallback(callback func(ev common.PointerEvent))

	// SetPointerUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the pointer event
	SetPointerUpCallback(callback func(ev common.PointerEvent))

	// SetPointerCancelCallback sets the callback fired when the cursor stream is lost
	// (window focus lost with buttons held).
	//
	// Parameters:
	//   - callback: function receiving the pointer event
	SetPointerCancelCallback(callback func(ev common.PointerEvent))

	// SetWheelCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the wheel event (line delta mode, positive = scroll down)
	SetWheelCallback(callback func(ev common.WheelEvent))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key event
	SetKeyDownCallback(callback func(ev common.KeyEvent))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key event
	SetKeyUpCallback(callback func(ev common.KeyEvent))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onPointerDown is called when a mouse button is pressed.
	onPointerDown func(ev common.PointerEvent)

	// onPointerMove is called when the cursor moves within the window.
	onPointerMove func(ev common.PointerEvent)

	// onPointerUp is called when a mouse button is released.
	onPointerUp func(ev common.PointerEvent)

	// onPointerCancel is called when focus is lost while buttons are held.
	onPointerCancel func(ev common.PointerEvent)

	// onWheel is called for mouse wheel events.
	onWheel func(ev common.WheelEvent)

	// onKeyDown is called when a key is pressed or repeats.
	onKeyDown func(ev common.KeyEvent)

	// onKeyUp is called when a key is released.
	onKeyUp func(ev common.KeyEvent)

	// buttonsDown counts held mouse buttons, so focus loss can cancel the stream.
	buttonsDown int
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window (not yet spawned)
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	w.title = common.Coalesce(w.title, defaultTitle)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(ev common.PointerEvent)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(ev common.PointerEvent)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(ev common.PointerEvent)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerCancelCallback(callback func(ev common.PointerEvent)) {
	w.onPointerCancel = callback
}

func (w *engineWindow) SetWheelCallback(callback func(ev common.WheelEvent)) {
	w.onWheel = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(ev common.KeyEvent)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(ev common.KeyEvent)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
