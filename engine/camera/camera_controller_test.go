package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
	"pgregory.net/rapid"
)

const testEpsilon = 1e-9

// newTestController places the camera 10 units in front of a target at (0, 1, 0).
func newTestController(t interface{ Helper() }, options ...CameraControllerOption) CameraController {
	t.Helper()
	cam := NewCamera(WithPosition(0, 1, 10))
	opts := append([]CameraControllerOption{
		WithTarget(0, 1, 0),
		WithViewport(500, 500),
	}, options...)
	return NewCameraController(cam, opts...)
}

type eventRecorder struct {
	events []EventType
}

func (r *eventRecorder) listen(cc CameraController) {
	for _, kind := range []EventType{EventStart, EventChange, EventEnd} {
		cc.AddListener(kind, func(ev Event) {
			r.events = append(r.events, ev.Type)
		})
	}
}

func mouse(id int64, x, y float64, button common.MouseButton) common.PointerEvent {
	return common.PointerEvent{
		PointerID:   common.PointerID(id),
		PointerType: common.PointerMouse,
		X:           x,
		Y:           y,
		Button:      button,
	}
}

func touch(id int64, x, y float64) common.PointerEvent {
	return common.PointerEvent{
		PointerID:   common.PointerID(id),
		PointerType: common.PointerTouch,
		X:           x,
		Y:           y,
	}
}

func TestNewCameraController(t *testing.T) {
	cc := newTestController(t)

	assert.Equal(t, StateNone, cc.State())
	assert.False(t, cc.Capturing())
	assert.InDelta(t, 10, cc.Distance(), testEpsilon)
	assert.InDelta(t, math.Pi/2, cc.PolarAngle(), testEpsilon)
	assert.InDelta(t, 0, cc.AzimuthalAngle(), testEpsilon)

	_, _, back := cc.Camera().Basis()
	assert.InDelta(t, 1, back.Z, testEpsilon, "camera should face the target")
}

func TestUpdateIsIdempotent(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowLeft})
	require.Equal(t, []EventType{EventChange}, rec.events)

	assert.False(t, cc.Update())
	assert.False(t, cc.Update())
	assert.Equal(t, []EventType{EventChange}, rec.events)
}

func TestDollyOutClampsToMaxDistance(t *testing.T) {
	cc := newTestController(t, WithDistanceBounds(5, 70))
	require.InDelta(t, 10, cc.Distance(), testEpsilon)

	for i := 0; i < 100; i++ {
		cc.HandleWheel(common.WheelEvent{X: 250, Y: 250, DeltaY: 100})
		require.LessOrEqual(t, cc.Distance(), 70+testEpsilon)
	}
	assert.InDelta(t, 70, cc.Distance(), testEpsilon)
}

func TestDollyInClampsToMinDistance(t *testing.T) {
	cc := newTestController(t, WithMinDistance(5), WithMaxDistance(70))

	for i := 0; i < 100; i++ {
		cc.HandleWheel(common.WheelEvent{X: 250, Y: 250, DeltaY: -100})
	}
	assert.InDelta(t, 5, cc.Distance(), testEpsilon)
}

func TestWheelDeltaModes(t *testing.T) {
	tests := []struct {
		name  string
		event common.WheelEvent
		// equivalent pixel delta
		pixels float64
	}{
		{name: "pixel", event: common.WheelEvent{DeltaY: 100}, pixels: 100},
		{name: "line", event: common.WheelEvent{DeltaY: 3, DeltaMode: common.WheelDeltaLine}, pixels: 48},
		{name: "page", event: common.WheelEvent{DeltaY: 1, DeltaMode: common.WheelDeltaPage}, pixels: 100},
		{name: "pinch", event: common.WheelEvent{DeltaY: 2, Ctrl: true}, pixels: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := newTestController(t)
			require.True(t, cc.HandleWheel(tt.event))

			want := 10 / math.Pow(0.95, tt.pixels*0.01)
			assert.InDelta(t, want, cc.Distance(), 1e-6)
		})
	}
}

func TestWheelWithHeldControlKeyIsNotPinch(t *testing.T) {
	cc := newTestController(t)

	cc.HandleKeyDown(common.KeyEvent{Code: common.KeyLeftControl, Ctrl: true})
	cc.HandleWheel(common.WheelEvent{DeltaY: 100, Ctrl: true})
	assert.InDelta(t, 10/0.95, cc.Distance(), 1e-6)

	cc.HandleKeyUp(common.KeyEvent{Code: common.KeyLeftControl})
	before := cc.Distance()
	cc.HandleWheel(common.WheelEvent{DeltaY: 10, Ctrl: true})
	assert.InDelta(t, before/0.95, cc.Distance(), 1e-6)
}

func TestWheelNotificationOrder(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	require.True(t, cc.HandleWheel(common.WheelEvent{DeltaY: 100}))
	assert.Equal(t, []EventType{EventStart, EventChange, EventEnd}, rec.events)
}

func TestWheelIgnoredDuringGesture(t *testing.T) {
	cc := newTestController(t)
	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	require.Equal(t, StateRotate, cc.State())

	assert.False(t, cc.HandleWheel(common.WheelEvent{DeltaY: 100}))
	assert.InDelta(t, 10, cc.Distance(), testEpsilon)
}

func TestWheelIgnoredWhenZoomDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableZoom = false
	cc := newTestController(t, WithConfig(cfg))

	assert.False(t, cc.HandleWheel(common.WheelEvent{DeltaY: 100}))
}

func TestMouseDragRotatesAzimuth(t *testing.T) {
	cc := newTestController(t)
	require.InDelta(t, 0, cc.AzimuthalAngle(), testEpsilon)

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerMove(mouse(1, 150, 100, common.MouseButtonLeft))

	assert.InDelta(t, -0.2*math.Pi, cc.AzimuthalAngle(), testEpsilon)
	assert.InDelta(t, math.Pi/2, cc.PolarAngle(), testEpsilon)
	assert.InDelta(t, 10, cc.Distance(), testEpsilon)
}

func TestMouseDragRotatesPolar(t *testing.T) {
	cc := newTestController(t)

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerMove(mouse(1, 100, 150, common.MouseButtonLeft))

	// dragging down raises the camera
	assert.InDelta(t, math.Pi/2-0.2*math.Pi, cc.PolarAngle(), testEpsilon)
}

func TestMouseButtonMapping(t *testing.T) {
	shifted := func(ev common.PointerEvent) common.PointerEvent {
		ev.Shift = true
		return ev
	}

	tests := []struct {
		name   string
		event  common.PointerEvent
		expect GestureState
	}{
		{name: "left rotates", event: mouse(1, 0, 0, common.MouseButtonLeft), expect: StateRotate},
		{name: "middle dollies", event: mouse(1, 0, 0, common.MouseButtonMiddle), expect: StateDolly},
		{name: "right pans", event: mouse(1, 0, 0, common.MouseButtonRight), expect: StatePan},
		{name: "shift left pans", event: shifted(mouse(1, 0, 0, common.MouseButtonLeft)), expect: StatePan},
		{name: "shift right rotates", event: shifted(mouse(1, 0, 0, common.MouseButtonRight)), expect: StateRotate},
		{name: "unmapped button", event: mouse(1, 0, 0, common.MouseButton(4)), expect: StateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := newTestController(t)
			rec := &eventRecorder{}
			rec.listen(cc)

			cc.HandlePointerDown(tt.event)
			assert.Equal(t, tt.expect, cc.State())
			assert.True(t, cc.Capturing())
			if tt.expect == StateNone {
				assert.Empty(t, rec.events)
			} else {
				assert.Equal(t, []EventType{EventStart}, rec.events)
			}
		})
	}
}

func TestMouseMoveWithoutGestureIsIgnored(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	cc.HandlePointerMove(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerMove(mouse(1, 400, 300, common.MouseButtonLeft))

	assert.Empty(t, rec.events)
	assert.InDelta(t, 0, cc.AzimuthalAngle(), testEpsilon)
}

func TestPointerUpEndsGesture(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerMove(mouse(1, 120, 100, common.MouseButtonLeft))
	cc.HandlePointerUp(mouse(1, 120, 100, common.MouseButtonLeft))

	assert.Equal(t, StateNone, cc.State())
	assert.False(t, cc.Capturing())
	assert.Equal(t, []EventType{EventStart, EventChange, EventEnd}, rec.events)
}

func TestDuplicatePointerDownIsIgnored(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerUp(mouse(1, 100, 100, common.MouseButtonLeft))

	assert.Equal(t, []EventType{EventStart, EventEnd}, rec.events)
}

func TestUnknownPointerUpIsIgnored(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	cc.HandlePointerUp(mouse(7, 0, 0, common.MouseButtonLeft))
	cc.HandlePointerCancel(touch(8, 0, 0))

	assert.Empty(t, rec.events)
}

func TestTwoFingerDollyPan(t *testing.T) {
	cc := newTestController(t, WithZoomSpeed(2))
	before := cc.Distance()

	cc.HandlePointerDown(touch(1, 100, 100))
	assert.Equal(t, StateTouchRotate, cc.State())
	cc.HandlePointerDown(touch(2, 200, 100))
	require.Equal(t, StateTouchDollyPan, cc.State())

	cc.HandlePointerMove(touch(2, 250, 100))

	assert.InDelta(t, before/math.Pow(1.5, 2), cc.Distance(), 1e-6)
}

func TestTwoFingerDollyAppliesRatioOnce(t *testing.T) {
	cc := newTestController(t)
	before := cc.Distance()

	cc.HandlePointerDown(touch(1, 100, 100))
	cc.HandlePointerDown(touch(2, 200, 100))
	cc.HandlePointerMove(touch(2, 250, 100))
	// no separation change
	cc.HandlePointerMove(touch(2, 250, 100))

	assert.InDelta(t, before/1.5, cc.Distance(), 1e-6)
}

func TestTwoFingerDollyRotate(t *testing.T) {
	cc := newTestController(t, WithTouches(Touches{One: TouchActionPan, Two: TouchActionDollyRotate}))

	cc.HandlePointerDown(touch(1, 100, 100))
	assert.Equal(t, StateTouchPan, cc.State())
	cc.HandlePointerDown(touch(2, 200, 100))
	assert.Equal(t, StateTouchDollyRotate, cc.State())
}

func TestLiftingOnePointerRederivesSingleTouch(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	cc.HandlePointerDown(touch(1, 100, 100))
	cc.HandlePointerDown(touch(2, 200, 100))
	require.Equal(t, StateTouchDollyPan, cc.State())

	// the first contact lifts before the second
	cc.HandlePointerUp(touch(1, 100, 100))
	assert.Equal(t, StateTouchRotate, cc.State())
	assert.True(t, cc.Capturing())

	rec.events = nil
	cc.HandlePointerMove(touch(2, 250, 100))
	assert.Equal(t, []EventType{EventChange}, rec.events)
	assert.InDelta(t, -0.2*math.Pi, cc.AzimuthalAngle(), testEpsilon)

	cc.HandlePointerUp(touch(2, 250, 100))
	assert.Equal(t, StateNone, cc.State())
	assert.False(t, cc.Capturing())
	assert.Equal(t, []EventType{EventChange, EventEnd}, rec.events)
}

func TestPanKeepsTargetAboveFloor(t *testing.T) {
	cc := newTestController(t)

	for i := 0; i < 50; i++ {
		assert.True(t, cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowDown}))
		assert.GreaterOrEqual(t, cc.Target().Y, MinTargetHeight)
	}
	assert.InDelta(t, MinTargetHeight, cc.Target().Y, testEpsilon)
}

func TestPointerPanKeepsTargetAboveFloor(t *testing.T) {
	cc := newTestController(t)

	cc.HandlePointerDown(mouse(1, 250, 250, common.MouseButtonRight))
	cc.HandlePointerMove(mouse(1, 250, 5000, common.MouseButtonRight))
	cc.HandlePointerMove(mouse(1, 250, -5000, common.MouseButtonRight))
	cc.HandlePointerUp(mouse(1, 250, -5000, common.MouseButtonRight))

	assert.GreaterOrEqual(t, cc.Target().Y, MinTargetHeight)
}

func TestPanPreservesDistance(t *testing.T) {
	cc := newTestController(t)

	cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowLeft})
	cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowUp})

	assert.InDelta(t, 10, cc.Distance(), 1e-6)
	assert.NotEqual(t, model3d.XYZ(0, 1, 0), cc.Target())
}

func TestKeyPanDistance(t *testing.T) {
	cc := newTestController(t)

	// 7px at distance 10 with a 45° fov on a 500px tall viewport
	want := 2 * 7 * 10 * math.Tan(45*math.Pi/180/2) / 500
	cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowLeft})

	assert.InDelta(t, -want, cc.Target().X, 1e-6)
}

func TestKeyDownWithModifierRotates(t *testing.T) {
	cc := newTestController(t)

	assert.True(t, cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowLeft, Shift: true}))
	assert.InDelta(t, -2*math.Pi/500, cc.AzimuthalAngle(), testEpsilon)
	assert.InDelta(t, model3d.XYZ(0, 1, 0).Dist(cc.Target()), 0, testEpsilon)
}

func TestUnmappedKeyIsNotConsumed(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	assert.False(t, cc.HandleKeyDown(common.KeyEvent{Code: common.KeyW}))
	assert.Empty(t, rec.events)
}

func TestKeysIgnoredWhenPanDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnablePan = false
	cc := newTestController(t, WithConfig(cfg))

	assert.False(t, cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowLeft, Shift: true}))
}

func TestDisabledControllerIgnoresInput(t *testing.T) {
	cc := newTestController(t)
	cfg := cc.Config()
	cfg.Enabled = false
	cc.SetConfig(cfg)

	cc.HandlePointerDown(mouse(1, 0, 0, common.MouseButtonLeft))
	assert.Equal(t, StateNone, cc.State())
	assert.False(t, cc.Capturing())
	assert.False(t, cc.HandleWheel(common.WheelEvent{DeltaY: 100}))
	assert.False(t, cc.HandleContextMenu())
}

func TestContextMenuSuppressedWhileEnabled(t *testing.T) {
	cc := newTestController(t)
	assert.True(t, cc.HandleContextMenu())
}

func TestPolarBounds(t *testing.T) {
	cc := newTestController(t, WithPolarBounds(math.Pi/4, math.Pi/2))

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerMove(mouse(1, 100, 1000, common.MouseButtonLeft))
	assert.InDelta(t, math.Pi/4, cc.PolarAngle(), testEpsilon)

	cc.HandlePointerMove(mouse(1, 100, -1000, common.MouseButtonLeft))
	assert.InDelta(t, math.Pi/2, cc.PolarAngle(), testEpsilon)
}

func TestPolarSafeZone(t *testing.T) {
	cc := newTestController(t)

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerMove(mouse(1, 100, 100000, common.MouseButtonLeft))
	assert.Greater(t, cc.PolarAngle(), 0.0)
	assert.False(t, math.IsNaN(cc.Camera().Position().X))

	cc.HandlePointerMove(mouse(1, 100, -100000, common.MouseButtonLeft))
	assert.Less(t, cc.PolarAngle(), math.Pi)
}

func TestClampAzimuth(t *testing.T) {
	deg := math.Pi / 180
	tests := []struct {
		name     string
		theta    float64
		min, max float64
		expect   float64
	}{
		{name: "unbounded", theta: 3, min: math.Inf(-1), max: math.Inf(1), expect: 3},
		{name: "one bound infinite", theta: 3, min: 0, max: math.Inf(1), expect: 3},
		{name: "inside", theta: 0.5, min: 0, max: 1, expect: 0.5},
		{name: "below", theta: -0.5, min: 0, max: 1, expect: 0},
		{name: "above", theta: 1.5, min: 0, max: 1, expect: 1},
		{name: "bounds normalized", theta: -30 * deg, min: 350 * deg, max: 360 * deg, expect: -10 * deg},
		{name: "wrapped inside at pi", theta: 180 * deg, min: 170 * deg, max: -170 * deg, expect: 180 * deg},
		{name: "wrapped outside positive", theta: 10 * deg, min: 170 * deg, max: -170 * deg, expect: 170 * deg},
		{name: "wrapped outside negative", theta: -10 * deg, min: 170 * deg, max: -170 * deg, expect: -170 * deg},
		{name: "wrapped tie goes to max", theta: 0, min: 170 * deg, max: -170 * deg, expect: -170 * deg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, clampAzimuth(tt.theta, tt.min, tt.max), testEpsilon)
		})
	}
}

func TestWrappedAzimuthBounds(t *testing.T) {
	deg := math.Pi / 180
	// camera behind the target, θ = 180°
	cam := NewCamera(WithPosition(0, 1, -10))
	cc := NewCameraController(cam,
		WithTarget(0, 1, 0),
		WithViewport(500, 500),
		WithAzimuthBounds(170*deg, -170*deg),
	)

	assert.InDelta(t, math.Pi, math.Abs(cc.AzimuthalAngle()), testEpsilon)
	assert.InDelta(t, 10, cc.Distance(), testEpsilon)
}

func TestTargetRadiusBounds(t *testing.T) {
	cc := newTestController(t, WithCursor(0, 1, 0), WithTargetRadiusBounds(0, 2))

	for i := 0; i < 200; i++ {
		cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowLeft})
		require.LessOrEqual(t, cc.Target().Dist(model3d.XYZ(0, 1, 0)), 2+testEpsilon)
	}
	assert.InDelta(t, -2, cc.Target().X, testEpsilon)
}

func TestDampingDecays(t *testing.T) {
	cc := newTestController(t, WithDamping(true, 0.25))

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerMove(mouse(1, 150, 100, common.MouseButtonLeft))
	cc.HandlePointerUp(mouse(1, 150, 100, common.MouseButtonLeft))

	afterGesture := cc.AzimuthalAngle()
	assert.InDelta(t, -0.2*math.Pi*0.25, afterGesture, testEpsilon)

	// the remaining delta keeps being applied on later frames
	assert.True(t, cc.Update())
	assert.Less(t, cc.AzimuthalAngle(), afterGesture)

	for i := 0; i < 500; i++ {
		cc.Update()
	}
	assert.InDelta(t, -0.2*math.Pi, cc.AzimuthalAngle(), 1e-3)
}

func TestAutoRotate(t *testing.T) {
	cc := newTestController(t, WithAutoRotate(true, 2))

	assert.True(t, cc.Advance(1))
	// 2π/60·2 radians per second
	assert.InDelta(t, -2*math.Pi/30, cc.AzimuthalAngle(), testEpsilon)

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	angle := cc.AzimuthalAngle()
	cc.Advance(1)
	assert.InDelta(t, angle, cc.AzimuthalAngle(), testEpsilon, "no auto-rotation during a gesture")
}

func TestZoomToCursorMovesTarget(t *testing.T) {
	cc := newTestController(t, WithZoomToCursor(true))
	before := cc.Camera().Position()

	// dolly toward the right half of the screen
	cc.HandleWheel(common.WheelEvent{X: 450, Y: 250, DeltaY: -500})

	after := cc.Camera().Position()
	assert.Less(t, after.Z, before.Z)
	assert.Greater(t, after.X, before.X)
	assert.Greater(t, cc.Target().X, 0.0)
	assert.InDelta(t, 10*math.Pow(0.95, 5), cc.Distance(), 1e-6)
}

func TestZoomToCursorCenterMatchesPlainDolly(t *testing.T) {
	cc := newTestController(t, WithZoomToCursor(true))

	cc.HandleWheel(common.WheelEvent{X: 250, Y: 250, DeltaY: -100})

	assert.InDelta(t, 10*0.95, cc.Distance(), 1e-6)
	assert.InDelta(t, 0, cc.Target().X, 1e-6)
	assert.InDelta(t, 1, cc.Target().Y, 1e-6)
}

func TestSaveStateAndReset(t *testing.T) {
	cc := newTestController(t)
	rec := &eventRecorder{}
	rec.listen(cc)

	cc.HandleKeyDown(common.KeyEvent{Code: common.KeyArrowLeft})
	cc.HandleWheel(common.WheelEvent{DeltaY: 300})
	require.NotEqual(t, 10.0, cc.Distance())

	rec.events = nil
	cc.Reset()
	assert.InDelta(t, 10, cc.Distance(), testEpsilon)
	assert.Equal(t, model3d.XYZ(0, 1, 0), cc.Target())
	assert.Equal(t, StateNone, cc.State())
	assert.Equal(t, EventChange, rec.events[0])

	cc.HandleWheel(common.WheelEvent{DeltaY: 300})
	cc.SaveState()
	saved := cc.Distance()
	cc.HandleWheel(common.WheelEvent{DeltaY: 300})
	cc.Reset()
	assert.InDelta(t, saved, cc.Distance(), testEpsilon)
}

func TestCustomUpVector(t *testing.T) {
	cam := NewCamera(WithPosition(10, 0, 1), WithUp(0, 0, 1))
	cc := NewCameraController(cam, WithTarget(0, 0, 1), WithViewport(500, 500), WithMinTargetHeight(math.Inf(-1)))

	assert.InDelta(t, math.Pi/2, cc.PolarAngle(), 1e-6)

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.HandlePointerMove(mouse(1, 150, 100, common.MouseButtonLeft))

	// orbiting around +Z keeps the camera height
	assert.InDelta(t, 1, cc.Camera().Position().Z, 1e-6)
	assert.InDelta(t, 10, cc.Distance(), 1e-6)
}

func TestListenerMayCallBack(t *testing.T) {
	cc := newTestController(t)

	var distances []float64
	cc.AddListener(EventChange, func(ev Event) {
		distances = append(distances, cc.Distance())
		assert.InDelta(t, ev.Position.Dist(ev.Target), cc.Distance(), testEpsilon)
	})

	cc.HandleWheel(common.WheelEvent{DeltaY: 100})
	assert.Len(t, distances, 1)
}

func TestRemoveListener(t *testing.T) {
	cc := newTestController(t)

	calls := 0
	id := cc.AddListener(EventChange, func(Event) { calls++ })
	cc.HandleWheel(common.WheelEvent{DeltaY: 100})
	require.Equal(t, 1, calls)

	assert.True(t, cc.RemoveListener(id))
	assert.False(t, cc.RemoveListener(id))
	cc.HandleWheel(common.WheelEvent{DeltaY: 100})
	assert.Equal(t, 1, calls)
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	cc := newTestController(t)

	var order []int
	for i := 0; i < 3; i++ {
		cc.AddListener(EventStart, func(Event) { order = append(order, i) })
	}
	cc.HandleWheel(common.WheelEvent{DeltaY: 100})
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestDispose(t *testing.T) {
	cc := newTestController(t)
	calls := 0
	cc.AddListener(EventEnd, func(Event) { calls++ })

	cc.HandlePointerDown(mouse(1, 100, 100, common.MouseButtonLeft))
	cc.Dispose()

	assert.False(t, cc.Capturing())
	assert.Equal(t, StateNone, cc.State())
	cc.HandlePointerUp(mouse(1, 100, 100, common.MouseButtonLeft))
	assert.Zero(t, calls)
}

func TestDistanceStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minDistance := rapid.Float64Range(0.5, 20).Draw(t, "minDistance")
		maxDistance := rapid.Float64Range(minDistance, 200).Draw(t, "maxDistance")
		deltas := rapid.SliceOfN(rapid.Float64Range(-1000, 1000), 1, 30).Draw(t, "deltas")

		cc := newTestController(t, WithDistanceBounds(minDistance, maxDistance))
		for _, d := range deltas {
			cc.HandleWheel(common.WheelEvent{X: 250, Y: 250, DeltaY: d})
			dist := cc.Distance()
			if dist < minDistance-1e-6 || dist > maxDistance+1e-6 {
				t.Fatalf("distance %v outside [%v, %v]", dist, minDistance, maxDistance)
			}
		}
	})
}

func TestPolarAngleStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minPolar := rapid.Float64Range(0.01, 1.5).Draw(t, "minPolar")
		maxPolar := rapid.Float64Range(1.6, math.Pi-0.01).Draw(t, "maxPolar")
		drags := rapid.SliceOfN(rapid.Float64Range(-2000, 2000), 1, 20).Draw(t, "drags")

		cc := newTestController(t, WithPolarBounds(minPolar, maxPolar))
		cc.HandlePointerDown(mouse(1, 0, 0, common.MouseButtonLeft))
		y := 0.0
		for _, dy := range drags {
			y += dy
			cc.HandlePointerMove(mouse(1, 0, y, common.MouseButtonLeft))
			phi := cc.PolarAngle()
			if phi < minPolar-1e-9 || phi > maxPolar+1e-9 {
				t.Fatalf("polar angle %v outside [%v, %v]", phi, minPolar, maxPolar)
			}
			if phi <= 0 || phi >= math.Pi {
				t.Fatalf("polar angle %v reached a pole", phi)
			}
		}
	})
}

func TestTargetHeightInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		moves := rapid.SliceOfN(rapid.Float64Range(-5000, 5000), 1, 20).Draw(t, "moves")
		screenSpace := rapid.Bool().Draw(t, "screenSpace")

		cc := newTestController(t, WithScreenSpacePanning(screenSpace))
		cc.HandlePointerDown(mouse(1, 0, 0, common.MouseButtonRight))
		y := 0.0
		for _, dy := range moves {
			y += dy
			cc.HandlePointerMove(mouse(1, 0, y, common.MouseButtonRight))
			if h := cc.Target().Y; h < MinTargetHeight {
				t.Fatalf("target height %v below %v", h, MinTargetHeight)
			}
		}
	})
}
