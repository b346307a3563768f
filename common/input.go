package common

// PointerID identifies one input stream (a mouse, a pen or a single touch contact).
// Identities are opaque; hosts only need to keep them stable for the lifetime of a contact.
type PointerID int64

// MousePointerID is the identity hosts assign to the system mouse cursor.
const MousePointerID PointerID = 1

// PointerType classifies the device behind a pointer event.
type PointerType int

const (
	// PointerMouse is a mouse or trackpad cursor.
	PointerMouse PointerType = iota
	// PointerPen is a stylus. It is handled like a mouse.
	PointerPen
	// PointerTouch is one finger on a touch surface.
	PointerTouch
)

// MouseButton follows the DOM numbering used by pointer events.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonMiddle MouseButton = 1
	MouseButtonRight  MouseButton = 2
)

// WheelDeltaMode is the unit of a wheel delta.
type WheelDeltaMode int

const (
	// WheelDeltaPixel reports deltas in pixels.
	WheelDeltaPixel WheelDeltaMode = iota
	// WheelDeltaLine reports deltas in lines.
	WheelDeltaLine
	// WheelDeltaPage reports deltas in pages.
	WheelDeltaPage
)

// PointerEvent is a pointer down/move/up/cancel sample in client pixels.
type PointerEvent struct {
	PointerID   PointerID
	PointerType PointerType
	X, Y        float64
	Button      MouseButton
	Shift       bool
	Ctrl        bool
	Meta        bool
}

// Position returns the event location as a Vec2.
func (e PointerEvent) Position() Vec2 {
	return Vec2{X: e.X, Y: e.Y}
}

// HasModifier reports whether any of shift, ctrl or meta is held.
func (e PointerEvent) HasModifier() bool {
	return e.Shift || e.Ctrl || e.Meta
}

// WheelEvent is a scroll sample. Positive DeltaY scrolls away from the user (dolly out).
type WheelEvent struct {
	X, Y      float64
	DeltaY    float64
	DeltaMode WheelDeltaMode
	// Ctrl is set either by a held control key or by trackpad pinch gestures.
	Ctrl bool
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Code  KeyCode
	Shift bool
	Ctrl  bool
	Meta  bool
}

// HasModifier reports whether any of shift, ctrl or meta is held.
func (e KeyEvent) HasModifier() bool {
	return e.Shift || e.Ctrl || e.Meta
}
