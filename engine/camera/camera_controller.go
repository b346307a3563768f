package camera

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/unixpickle/model3d/model3d"
)

// CameraController orbits a Camera around a movable target point.
//
// The controller owns its interaction state (active gesture, pending deltas, pointer
// registry) and converts raw pointer, wheel and keyboard input into camera poses. Spherical
// coordinates around the target are the authoritative state: every Update clamps radius,
// polar and azimuthal angles and the target position, then writes the camera position and
// orientation. Notifications are delivered to listeners after the controller's lock is
// released, so listeners may call back into the controller.
type CameraController interface {
	// Update recomputes the camera pose from the pending rotate/pan/dolly deltas and the
	// configured clamps. Calling it again with no input in between is a no-op.
	//
	// Returns:
	//   - bool: true if a change notification was emitted
	Update() bool

	// Advance is Update driven by a frame clock. Auto-rotation is scaled by deltaTime.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//
	// Returns:
	//   - bool: true if a change notification was emitted
	Advance(deltaTime float32) bool

	// PolarAngle returns the vertical orbit angle measured from the up axis.
	//
	// Returns:
	//   - float64: polar angle in radians, in (0, π)
	PolarAngle() float64

	// AzimuthalAngle returns the horizontal orbit angle around the up axis.
	//
	// Returns:
	//   - float64: azimuthal angle in radians
	AzimuthalAngle() float64

	// Distance returns the distance between the camera and the target.
	//
	// Returns:
	//   - float64: world-space distance
	Distance() float64

	// Target returns the point the camera orbits and faces.
	//
	// Returns:
	//   - model3d.Coord3D: world-space target
	Target() model3d.Coord3D

	// SetTarget moves the orbit target. Takes effect on the next Update.
	//
	// Parameters:
	//   - target: world-space point
	SetTarget(target model3d.Coord3D)

	// Camera returns the driven camera.
	//
	// Returns:
	//   - Camera: the camera this controller writes to
	Camera() Camera

	// State returns the active gesture.
	//
	// Returns:
	//   - GestureState: current interaction mode
	State() GestureState

	// Capturing reports whether the controller is receiving move/up events for an
	// active pointer stream.
	//
	// Returns:
	//   - bool: true while at least one pointer is down
	Capturing() bool

	// Config returns a copy of the current configuration.
	//
	// Returns:
	//   - Config: the configuration
	Config() Config

	// SetConfig replaces the configuration. Takes effect on the next Update.
	//
	// Parameters:
	//   - cfg: the new configuration
	SetConfig(cfg Config)

	// SetViewport sets the size of the element receiving input, in pixels.
	// Rotation and pan speeds are normalized by its height.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height float64)

	// SaveState records the current target and camera position for Reset.
	SaveState()

	// Reset restores the state recorded by SaveState (or at construction) and ends
	// any active gesture.
	Reset()

	// HandlePointerDown starts or extends a gesture.
	//
	// Parameters:
	//   - ev: the pointer-down event
	HandlePointerDown(ev common.PointerEvent)

	// HandlePointerMove continues the active gesture. Mouse moves with no gesture are ignored.
	//
	// Parameters:
	//   - ev: the pointer-move event
	HandlePointerMove(ev common.PointerEvent)

	// HandlePointerUp releases a pointer and ends the gesture when none remain.
	//
	// Parameters:
	//   - ev: the pointer-up event
	HandlePointerUp(ev common.PointerEvent)

	// HandlePointerCancel behaves like HandlePointerUp; hosts call it when pointer capture is lost.
	//
	// Parameters:
	//   - ev: the pointer-cancel event
	HandlePointerCancel(ev common.PointerEvent)

	// HandleWheel applies a transient dolly when no gesture is active.
	//
	// Parameters:
	//   - ev: the wheel event
	//
	// Returns:
	//   - bool: true if the event was consumed and the host should suppress scrolling
	HandleWheel(ev common.WheelEvent) bool

	// HandleKeyDown pans (or rotates, with a modifier) on arrow keys.
	//
	// Parameters:
	//   - ev: the key event
	//
	// Returns:
	//   - bool: true if the key mapped to an action and the default should be suppressed
	HandleKeyDown(ev common.KeyEvent) bool

	// HandleKeyUp tracks release of the Control keys used for pinch detection.
	//
	// Parameters:
	//   - ev: the key event
	HandleKeyUp(ev common.KeyEvent)

	// HandleContextMenu reports whether the host should suppress the context menu.
	//
	// Returns:
	//   - bool: true while the controller is enabled
	HandleContextMenu() bool

	// AddListener registers fn for notifications of the given kind.
	//
	// Parameters:
	//   - kind: EventStart, EventChange or EventEnd
	//   - fn: callback invoked synchronously after the triggering call
	//
	// Returns:
	//   - ListenerID: handle for RemoveListener
	AddListener(kind EventType, fn func(Event)) ListenerID

	// RemoveListener unregisters a listener.
	//
	// Parameters:
	//   - id: handle returned by AddListener
	//
	// Returns:
	//   - bool: true if the listener was registered
	RemoveListener(id ListenerID) bool

	// Dispose drops all listeners and tracked pointers.
	Dispose()
}
