package input_poller

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyRepeatDelay and keyRepeatInterval are in ticks.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 4
)

// watchedKeys maps the ebiten keys the orbit controller reacts to onto common key codes.
var watchedKeys = map[ebiten.Key]common.KeyCode{
	ebiten.KeyArrowUp:      common.KeyArrowUp,
	ebiten.KeyArrowDown:    common.KeyArrowDown,
	ebiten.KeyArrowLeft:    common.KeyArrowLeft,
	ebiten.KeyArrowRight:   common.KeyArrowRight,
	ebiten.KeyControlLeft:  common.KeyLeftControl,
	ebiten.KeyControlRight: common.KeyRightControl,
	ebiten.KeyShiftLeft:    common.KeyLeftShift,
	ebiten.KeyShiftRight:   common.KeyRightShift,
	ebiten.KeyR:            common.KeyR,
}

// watchedOrder fixes event order within a tick.
var watchedOrder = []ebiten.Key{
	ebiten.KeyControlLeft, ebiten.KeyControlRight, ebiten.KeyShiftLeft, ebiten.KeyShiftRight,
	ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyR,
}

// EbitenSource samples ebiten's global input state. Snapshot must be called from
// the game's Update method.
type EbitenSource struct {
	touchIDs []ebiten.TouchID
}

var _ InputSource = &EbitenSource{}

// NewEbitenSource creates an InputSource backed by ebiten.
//
// Returns:
//   - *EbitenSource: the input source
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

func (e *EbitenSource) Snapshot() Snapshot {
	x, y := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()

	s := Snapshot{
		CursorX: float64(x),
		CursorY: float64(y),
		// ebiten reports +y when scrolling away from the user
		WheelY: -wheelY,
		Shift:  ebiten.IsKeyPressed(ebiten.KeyShift),
		Ctrl:   ebiten.IsKeyPressed(ebiten.KeyControl),
		Meta:   ebiten.IsKeyPressed(ebiten.KeyMeta),
	}
	s.Buttons[common.MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.Buttons[common.MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	s.Buttons[common.MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	for _, id := range e.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		s.Touches = append(s.Touches, TouchPoint{ID: int64(id), X: float64(tx), Y: float64(ty)})
	}

	for _, key := range watchedOrder {
		code := watchedKeys[key]
		if inpututil.IsKeyJustPressed(key) || isRepeating(key) {
			s.KeysPressed = append(s.KeysPressed, code)
		}
		if inpututil.IsKeyJustReleased(key) {
			s.KeysReleased = append(s.KeysReleased, code)
		}
	}
	return s
}

func isRepeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d > keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}
