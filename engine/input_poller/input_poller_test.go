package input_poller

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSource struct {
	frames []Snapshot
	next   int
}

func (s *scriptedSource) Snapshot() Snapshot {
	if s.next >= len(s.frames) {
		return s.frames[len(s.frames)-1]
	}
	f := s.frames[s.next]
	s.next++
	return f
}

type recordingSink struct {
	log []string
}

func (r *recordingSink) HandlePointerDown(ev common.PointerEvent) {
	r.log = append(r.log, fmt.Sprintf("down %d %v,%v b%d", ev.PointerID, ev.X, ev.Y, ev.Button))
}

func (r *recordingSink) HandlePointerMove(ev common.PointerEvent) {
	r.log = append(r.log, fmt.Sprintf("move %d %v,%v", ev.PointerID, ev.X, ev.Y))
}

func (r *recordingSink) HandlePointerUp(ev common.PointerEvent) {
	r.log = append(r.log, fmt.Sprintf("up %d %v,%v", ev.PointerID, ev.X, ev.Y))
}

func (r *recordingSink) HandleWheel(ev common.WheelEvent) bool {
	r.log = append(r.log, fmt.Sprintf("wheel %v ctrl=%v", ev.DeltaY, ev.Ctrl))
	return true
}

func (r *recordingSink) HandleKeyDown(ev common.KeyEvent) bool {
	r.log = append(r.log, fmt.Sprintf("keydown %d", ev.Code))
	return true
}

func (r *recordingSink) HandleKeyUp(ev common.KeyEvent) {
	r.log = append(r.log, fmt.Sprintf("keyup %d", ev.Code))
}

func pollAll(p Poller, n int) {
	for i := 0; i < n; i++ {
		p.Poll()
	}
}

func TestPollerMouseDrag(t *testing.T) {
	var pressed [3]bool
	pressed[common.MouseButtonLeft] = true

	src := &scriptedSource{frames: []Snapshot{
		{CursorX: 10, CursorY: 10},
		{CursorX: 10, CursorY: 10, Buttons: pressed},
		{CursorX: 20, CursorY: 15, Buttons: pressed},
		{CursorX: 20, CursorY: 15},
	}}
	sink := &recordingSink{}
	pollAll(NewPoller(src, sink), 4)

	assert.Equal(t, []string{
		"down 1 10,10 b0",
		"move 1 20,15",
		"up 1 20,15",
	}, sink.log)
}

func TestPollerRightButton(t *testing.T) {
	var pressed [3]bool
	pressed[common.MouseButtonRight] = true

	src := &scriptedSource{frames: []Snapshot{
		{Buttons: pressed},
		{},
	}}
	sink := &recordingSink{}
	pollAll(NewPoller(src, sink), 2)

	assert.Equal(t, []string{"down 1 0,0 b2", "up 1 0,0"}, sink.log)
}

func TestPollerTouches(t *testing.T) {
	src := &scriptedSource{frames: []Snapshot{
		{Touches: []TouchPoint{{ID: 0, X: 100, Y: 100}}},
		{Touches: []TouchPoint{{ID: 0, X: 100, Y: 100}, {ID: 1, X: 200, Y: 100}}},
		{Touches: []TouchPoint{{ID: 0, X: 100, Y: 100}, {ID: 1, X: 250, Y: 100}}},
		{Touches: []TouchPoint{{ID: 1, X: 250, Y: 100}}},
		{},
	}}
	sink := &recordingSink{}
	pollAll(NewPoller(src, sink), 5)

	assert.Equal(t, []string{
		"down 100 100,100",
		"down 101 200,100",
		"move 101 250,100",
		"up 100 100,100",
		"up 101 250,100",
	}, sink.log)
}

func TestPollerKeysBeforeWheel(t *testing.T) {
	src := &scriptedSource{frames: []Snapshot{
		{
			WheelY:       2,
			Ctrl:         true,
			KeysPressed:  []common.KeyCode{common.KeyLeftControl},
			KeysReleased: []common.KeyCode{common.KeyArrowUp},
		},
	}}
	sink := &recordingSink{}
	pollAll(NewPoller(src, sink), 1)

	assert.Equal(t, []string{
		fmt.Sprintf("keydown %d", common.KeyLeftControl),
		fmt.Sprintf("keyup %d", common.KeyArrowUp),
		"wheel 2 ctrl=true",
	}, sink.log)
}

func TestPollerReset(t *testing.T) {
	var pressed [3]bool
	pressed[common.MouseButtonLeft] = true

	src := &scriptedSource{frames: []Snapshot{
		{CursorX: 5, CursorY: 6, Buttons: pressed, Touches: []TouchPoint{{ID: 3, X: 1, Y: 2}}},
	}}
	sink := &recordingSink{}
	p := NewPoller(src, sink)
	p.Poll()
	sink.log = nil

	p.Reset()
	assert.Equal(t, []string{"up 1 5,6", "up 103 1,2"}, sink.log)

	sink.log = nil
	p.Reset()
	assert.Empty(t, sink.log)
}

func TestPollerDrivesController(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 1, 10))
	ctrl := camera.NewCameraController(cam,
		camera.WithTarget(0, 1, 0),
		camera.WithViewport(500, 500),
	)

	src := &scriptedSource{frames: []Snapshot{
		{Touches: []TouchPoint{{ID: 0, X: 100, Y: 100}}},
		{Touches: []TouchPoint{{ID: 0, X: 100, Y: 100}, {ID: 1, X: 200, Y: 100}}},
		{Touches: []TouchPoint{{ID: 0, X: 100, Y: 100}, {ID: 1, X: 250, Y: 100}}},
	}}
	p := NewPoller(src, ctrl)
	pollAll(p, 3)

	require.Equal(t, camera.StateTouchDollyPan, ctrl.State())
	assert.InDelta(t, 10/1.5, ctrl.Distance(), 1e-6)

	p.Reset()
	assert.Equal(t, camera.StateNone, ctrl.State())
	assert.False(t, ctrl.Capturing())
}

func TestPositiveWheelDolliesOut(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(0, 0, 10))
	ctrl := camera.NewCameraController(cam)
	src := &scriptedSource{frames: []Snapshot{{WheelY: 1}, {}}}

	p := NewPoller(src, ctrl)
	p.Poll()
	p.Poll()

	assert.Greater(t, ctrl.Distance(), 10.0)
}
