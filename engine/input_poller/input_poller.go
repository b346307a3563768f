package input_poller

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"go.uber.org/zap"
)

// TouchPointerBase offsets touch identities so they never collide with common.MousePointerID.
const TouchPointerBase common.PointerID = 100

// TouchPoint is one active touch contact.
type TouchPoint struct {
	ID   int64
	X, Y float64
}

// Snapshot is the input state sampled by an InputSource for one tick.
type Snapshot struct {
	CursorX, CursorY float64

	// Buttons is indexed by common.MouseButton (left, middle, right).
	Buttons [3]bool

	// WheelY is the scroll since the previous tick in lines, positive toward the user (scroll down).
	WheelY float64

	Touches []TouchPoint

	KeysPressed  []common.KeyCode
	KeysReleased []common.KeyCode

	Shift, Ctrl, Meta bool
}

// InputSource samples the host's input state. Polled hosts have no event callbacks,
// so the Poller derives events by diffing consecutive snapshots.
type InputSource interface {
	// Snapshot returns the current input state.
	//
	// Returns:
	//   - Snapshot: input state for this tick
	Snapshot() Snapshot
}

// EventSink receives the derived input events. A camera.CameraController satisfies it.
type EventSink interface {
	HandlePointerDown(ev common.PointerEvent)
	HandlePointerMove(ev common.PointerEvent)
	HandlePointerUp(ev common.PointerEvent)
	HandleWheel(ev common.WheelEvent) bool
	HandleKeyDown(ev common.KeyEvent) bool
	HandleKeyUp(ev common.KeyEvent)
}

// Poller converts per-tick input snapshots into pointer, wheel and key events.
type Poller interface {
	// Poll samples the source once and forwards the resulting events to the sink.
	// Call it once per tick from the host's update loop.
	Poll()

	// Reset releases every pointer the poller believes is down, emitting up events.
	Reset()
}

type pollerImpl struct {
	mu *sync.Mutex

	source InputSource
	sink   EventSink
	logger *zap.Logger

	primed      bool
	mouseDown   bool
	mouseButton common.MouseButton
	cursor      common.Vec2
	touches     map[int64]common.Vec2
}

var _ Poller = &pollerImpl{}

// NewPoller creates a Poller reading from source and writing to sink.
//
// Parameters:
//   - source: the input state provider
//   - sink: the event consumer
//   - options: functional options to configure the poller
//
// Returns:
//   - Poller: the newly created poller
func NewPoller(source InputSource, sink EventSink, options ...PollerBuilderOption) Poller {
	p := &pollerImpl{
		mu:      &sync.Mutex{},
		source:  source,
		sink:    sink,
		logger:  zap.NewNop(),
		touches: make(map[int64]common.Vec2),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *pollerImpl) Poll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.source.Snapshot()

	// keys first so the sink sees Control before a ctrl+wheel in the same tick
	for _, code := range s.KeysPressed {
		p.sink.HandleKeyDown(common.KeyEvent{Code: code, Shift: s.Shift, Ctrl: s.Ctrl, Meta: s.Meta})
	}
	for _, code := range s.KeysReleased {
		p.sink.HandleKeyUp(common.KeyEvent{Code: code, Shift: s.Shift, Ctrl: s.Ctrl, Meta: s.Meta})
	}

	p.pollMouse(s)
	p.pollTouches(s)

	if s.WheelY != 0 {
		p.sink.HandleWheel(common.WheelEvent{
			X:         s.CursorX,
			Y:         s.CursorY,
			DeltaY:    s.WheelY,
			DeltaMode: common.WheelDeltaLine,
			Ctrl:      s.Ctrl,
		})
	}
}

func (p *pollerImpl) pollMouse(s Snapshot) {
	cursor := common.Vec2{X: s.CursorX, Y: s.CursorY}
	ev := common.PointerEvent{
		PointerID:   common.MousePointerID,
		PointerType: common.PointerMouse,
		X:           cursor.X,
		Y:           cursor.Y,
		Shift:       s.Shift,
		Ctrl:        s.Ctrl,
		Meta:        s.Meta,
	}

	if p.primed && cursor != p.cursor {
		ev.Button = p.mouseButton
		p.sink.HandlePointerMove(ev)
	}
	p.cursor = cursor
	p.primed = true

	pressed, button := pressedButton(s.Buttons)
	switch {
	case pressed && !p.mouseDown:
		p.mouseDown = true
		p.mouseButton = button
		ev.Button = button
		p.logger.Debug("mouse down", zap.Int("button", int(button)))
		p.sink.HandlePointerDown(ev)
	case !pressed && p.mouseDown:
		p.mouseDown = false
		ev.Button = p.mouseButton
		p.sink.HandlePointerUp(ev)
	}
}

func (p *pollerImpl) pollTouches(s Snapshot) {
	seen := make(map[int64]bool, len(s.Touches))
	for _, tp := range s.Touches {
		seen[tp.ID] = true
		pos := common.Vec2{X: tp.X, Y: tp.Y}
		ev := touchEvent(tp.ID, pos)

		last, ok := p.touches[tp.ID]
		p.touches[tp.ID] = pos
		switch {
		case !ok:
			p.sink.HandlePointerDown(ev)
		case last != pos:
			p.sink.HandlePointerMove(ev)
		}
	}

	// release in id order so results do not depend on map iteration
	var lifted []int64
	for id := range p.touches {
		if !seen[id] {
			lifted = append(lifted, id)
		}
	}
	sort.Slice(lifted, func(i, j int) bool { return lifted[i] < lifted[j] })
	for _, id := range lifted {
		p.sink.HandlePointerUp(touchEvent(id, p.touches[id]))
		delete(p.touches, id)
	}
}

func (p *pollerImpl) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mouseDown {
		p.mouseDown = false
		p.sink.HandlePointerUp(common.PointerEvent{
			PointerID:   common.MousePointerID,
			PointerType: common.PointerMouse,
			X:           p.cursor.X,
			Y:           p.cursor.Y,
			Button:      p.mouseButton,
		})
	}
	ids := make([]int64, 0, len(p.touches))
	for id := range p.touches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		p.sink.HandlePointerUp(touchEvent(id, p.touches[id]))
		delete(p.touches, id)
	}
}

// pressedButton picks the button that starts a gesture when several are held.
func pressedButton(buttons [3]bool) (bool, common.MouseButton) {
	for _, b := range []common.MouseButton{common.MouseButtonLeft, common.MouseButtonRight, common.MouseButtonMiddle} {
		if buttons[b] {
			return true, b
		}
	}
	return false, 0
}

func touchEvent(id int64, pos common.Vec2) common.PointerEvent {
	return common.PointerEvent{
		PointerID:   TouchPointerBase + common.PointerID(id),
		PointerType: common.PointerTouch,
		X:           pos.X,
		Y:           pos.Y,
	}
}
