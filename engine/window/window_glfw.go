package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent    *engineWindow
	window    *glfw.Window
	running   bool
	destroyed bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Register GLFW callbacks for input and window events.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		ev := translateKey(key, mods)
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(ev)
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(ev)
			}
		}
	})

	// GLFW reports scroll in lines with +y away from the user; pointer wheels use +y toward.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onWheel == nil {
			return
		}
		xpos, ypos := gw.cursorPos()
		w.onWheel(common.WheelEvent{
			X:         xpos,
			Y:         ypos,
			DeltaY:    -yoff,
			DeltaMode: common.WheelDeltaLine,
			Ctrl:      win.GetKey(glfw.KeyLeftControl) == glfw.Press || win.GetKey(glfw.KeyRightControl) == glfw.Press,
		})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		ev := gw.pointerEvent(mods)
		ev.Button = translateMouseButton(button)
		switch action {
		case glfw.Press:
			w.buttonsDown++
			if w.onPointerDown != nil {
				w.onPointerDown(ev)
			}
		case glfw.Release:
			if w.buttonsDown > 0 {
				w.buttonsDown--
			}
			if w.onPointerUp != nil {
				w.onPointerUp(ev)
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onPointerMove != nil {
			w.onPointerMove(gw.pointerEvent(currentModifiers(win)))
		}
	})

	// Releases happening outside the focused window never reach the button callback.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFocusCallback
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if focused || w.buttonsDown == 0 {
			return
		}
		w.buttonsDown = 0
		if w.onPointerCancel != nil {
			w.onPointerCancel(gw.pointerEvent(0))
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// The renderer requires pixel dimensions for correct surface configuration.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// cursorPos returns the cursor position in framebuffer pixels, matching the resize callback units.
func (gw *glfwWindow) cursorPos() (float64, float64) {
	xpos, ypos := gw.window.GetCursorPos()
	winWidth, winHeight := gw.window.GetSize()
	if winWidth > 0 && winHeight > 0 {
		xpos *= float64(gw.parent.width) / float64(winWidth)
		ypos *= float64(gw.parent.height) / float64(winHeight)
	}
	return xpos, ypos
}

// pointerEvent builds a mouse pointer event at the current cursor position.
func (gw *glfwWindow) pointerEvent(mods glfw.ModifierKey) common.PointerEvent {
	xpos, ypos := gw.cursorPos()
	return common.PointerEvent{
		PointerID:   common.MousePointerID,
		PointerType: common.PointerMouse,
		X:           xpos,
		Y:           ypos,
		Shift:       mods&glfw.ModShift != 0,
		Ctrl:        mods&glfw.ModControl != 0,
		Meta:        mods&glfw.ModSuper != 0,
	}
}

// translateMouseButton maps GLFW button numbering (left, right, middle) to DOM numbering
// (left, middle, right).
func translateMouseButton(button glfw.MouseButton) common.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return common.MouseButtonLeft
	case glfw.MouseButtonMiddle:
		return common.MouseButtonMiddle
	case glfw.MouseButtonRight:
		return common.MouseButtonRight
	}
	return common.MouseButton(button)
}

func translateKey(key glfw.Key, mods glfw.ModifierKey) common.KeyEvent {
	return common.KeyEvent{
		Code:  common.KeyCode(key),
		Shift: mods&glfw.ModShift != 0,
		Ctrl:  mods&glfw.ModControl != 0,
		Meta:  mods&glfw.ModSuper != 0,
	}
}

// currentModifiers polls the modifier keys; cursor callbacks carry no modifier bits.
func currentModifiers(win *glfw.Window) glfw.ModifierKey {
	var mods glfw.ModifierKey
	if win.GetKey(glfw.KeyLeftShift) == glfw.Press || win.GetKey(glfw.KeyRightShift) == glfw.Press {
		mods |= glfw.ModShift
	}
	if win.GetKey(glfw.KeyLeftControl) == glfw.Press || win.GetKey(glfw.KeyRightControl) == glfw.Press {
		mods |= glfw.ModControl
	}
	if win.GetKey(glfw.KeyLeftSuper) == glfw.Press || win.GetKey(glfw.KeyRightSuper) == glfw.Press {
		mods |= glfw.ModSuper
	}
	return mods
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	if gw.destroyed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Closing an already destroyed window is a no-op.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	if gw.destroyed {
		return nil
	}
	gw.destroyed = true
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
// This is the GLFW equivalent of the Win32 PeekMessage loop.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
