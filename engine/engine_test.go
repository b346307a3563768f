package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	width, height int
	running       bool
	closed        int

	onUpdate        func()
	onResize        func(width, height int)
	onPointerDown   func(common.PointerEvent)
	onPointerMove   func(common.PointerEvent)
	onPointerUp     func(common.PointerEvent)
	onPointerCancel func(common.PointerEvent)
	onWheel         func(common.WheelEvent)
	onKeyDown       func(common.KeyEvent)
	onKeyUp         func(common.KeyEvent)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(cb func()) { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SetPointerDownCallback(cb func(ev common.PointerEvent)) { w.onPointerDown = cb }
func (w *fakeWindow) SetPointerMoveCallback(cb func(ev common.PointerEvent)) { w.onPointerMove = cb }
func (w *fakeWindow) SetPointerUpCallback(cb func(ev common.PointerEvent)) { w.onPointerUp = cb }
func (w *fakeWindow) SetPointerCancelCallback(cb func(ev common.PointerEvent)) { w.onPointerCancel = cb }
func (w *fakeWindow) SetWheelCallback(cb func(ev common.WheelEvent)) { w.onWheel = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(ev common.KeyEvent)) { w.onKeyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(ev common.KeyEvent)) { w.onKeyUp = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool { return w.running }
func (w *fakeWindow) Width() int { return w.width }
func (w *fakeWindow) Height() int { return w.height }

func (w *fakeWindow) Close() error {
	if w.running {
		w.closed++
	}
	w.running = false
	return nil
}

// ProcessMessages pumps the update callback until the window is closed.
func (w *fakeWindow) ProcessMessages() {
	for w.running {
		if w.onUpdate != nil {
			w.onUpdate()
		}
		time.Sleep(time.Millisecond)
	}
}

type countingPresenter struct {
	mu      sync.Mutex
	frames  int
	resizes [][2]int
	err     error
}

func (p *countingPresenter) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resizes = append(p.resizes, [2]int{width, height})
}

func (p *countingPresenter) RenderFrame() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.frames++
	return nil
}

func (p *countingPresenter) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

func newTestEngine(t *testing.T, options ...camera.CameraControllerOption) (*engine, *fakeWindow, *countingPresenter) {
	t.Helper()
	cam := camera.NewCamera(camera.WithPosition(0, 1, 10))
	ctrl := camera.NewCameraController(cam, append([]camera.CameraControllerOption{camera.WithTarget(0, 1, 0)}, options...)...)
	w := &fakeWindow{width: 800, height: 400, running: true}
	p := &countingPresenter{}
	e := NewEngine(WithWindow(w), WithController(ctrl), WithPresenter(p)).(*engine)
	return e, w, p
}

func TestFirstFramePresents(t *testing.T) {
	e, _, p := newTestEngine(t)

	assert.True(t, e.Invalidated())
	assert.True(t, e.renderOnce(0))
	assert.Equal(t, 1, p.Frames())
	assert.False(t, e.Invalidated())
}

func TestRenderOnlyWhenInvalidated(t *testing.T) {
	e, _, p := newTestEngine(t)
	require.True(t, e.renderOnce(0))

	e.tick(1.0 / 60)
	assert.False(t, e.renderOnce(0))
	assert.Equal(t, 1, p.Frames())
}

func TestControllerChangeInvalidates(t *testing.T) {
	e, w, p := newTestEngine(t)
	require.True(t, e.renderOnce(0))

	w.onWheel(common.WheelEvent{DeltaY: 100, DeltaMode: common.WheelDeltaPixel})
	assert.True(t, e.Invalidated())
	assert.True(t, e.renderOnce(0))
	assert.Equal(t, 2, p.Frames())
}

func TestPointerInputRoutesToController(t *testing.T) {
	e, w, _ := newTestEngine(t)
	before := e.controller.AzimuthalAngle()

	w.onPointerDown(common.PointerEvent{PointerID: common.MousePointerID, PointerType: common.PointerMouse, Button: 0, X: 100, Y: 100})
	assert.True(t, e.controller.Capturing())
	w.onPointerMove(common.PointerEvent{PointerID: common.MousePointerID, PointerType: common.PointerMouse, X: 140, Y: 100})
	w.onPointerUp(common.PointerEvent{PointerID: common.MousePointerID, PointerType: common.PointerMouse, X: 140, Y: 100})

	assert.False(t, e.controller.Capturing())
	assert.NotEqual(t, before, e.controller.AzimuthalAngle())
}

func TestResetKeyRestoresView(t *testing.T) {
	e, w, _ := newTestEngine(t)

	w.onPointerDown(common.PointerEvent{PointerID: common.MousePointerID, PointerType: common.PointerMouse, X: 100, Y: 100})
	w.onPointerMove(common.PointerEvent{PointerID: common.MousePointerID, PointerType: common.PointerMouse, X: 180, Y: 100})
	w.onPointerUp(common.PointerEvent{PointerID: common.MousePointerID, PointerType: common.PointerMouse, X: 180, Y: 100})
	require.NotZero(t, e.controller.AzimuthalAngle())

	w.onKeyDown(common.KeyEvent{Code: common.KeyR})
	assert.InDelta(t, 0, e.controller.AzimuthalAngle(), 1e-9)
	assert.InDelta(t, 10, e.controller.Distance(), 1e-9)
}

func TestAutoRotateTickInvalidates(t *testing.T) {
	e, _, p := newTestEngine(t, camera.WithAutoRotate(true, 2))
	require.True(t, e.renderOnce(0))

	e.tick(1.0 / 60)
	assert.True(t, e.renderOnce(0))
	assert.Equal(t, 2, p.Frames())
}

func TestResizeUpdatesCameraAndPresenter(t *testing.T) {
	e, w, p := newTestEngine(t)
	require.True(t, e.renderOnce(0))

	w.onResize(1000, 500)
	assert.InDelta(t, 2.0, e.controller.Camera().Aspect(), 1e-6)
	assert.Equal(t, [][2]int{{1000, 500}}, p.resizes)
	assert.True(t, e.Invalidated())

	w.onResize(0, 0)
	assert.Len(t, p.resizes, 1)
}

func TestFailedFrameStaysInvalidated(t *testing.T) {
	e, _, p := newTestEngine(t)
	p.err = errors.New("surface lost")

	assert.False(t, e.renderOnce(0))
	assert.True(t, e.Invalidated())
}

func TestRunStopsOnQuit(t *testing.T) {
	e, w, p := newTestEngine(t)
	e.SetTickRate(240)

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool { return p.Frames() >= 1 }, time.Second, time.Millisecond)
	e.Quit()
	e.Quit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
	}
	assert.Equal(t, 1, w.closed)

	stopped := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("engine goroutines still tracked after Run returned")
	}
}

func TestSetTickRate(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
	e.SetTickRate(120)
	assert.Equal(t, time.Second/120, e.engineTickRate)

	e.SetRenderFrameLimit(50)
	assert.Equal(t, 20*time.Millisecond, e.renderFrameLimit)
	e.SetRenderFrameLimit(-1)
	assert.Zero(t, e.renderFrameLimit)
}
