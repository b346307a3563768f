package common

// KeyCode is a virtual key code for cross-platform input handling.
// Values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type KeyCode uint32

const (
	KeyW     KeyCode = 87 // W key (ASCII)
	KeyA     KeyCode = 65 // A key (ASCII)
	KeyS     KeyCode = 83 // S key (ASCII)
	KeyD     KeyCode = 68 // D key (ASCII)
	KeyR     KeyCode = 82 // R key (ASCII)
	KeySpace KeyCode = 32 // Spacebar (ASCII)

	KeyEsc        KeyCode = 256 // Escape key (GLFW)
	KeyArrowRight KeyCode = 262 // Right arrow (GLFW)
	KeyArrowLeft  KeyCode = 263 // Left arrow (GLFW)
	KeyArrowDown  KeyCode = 264 // Down arrow (GLFW)
	KeyArrowUp    KeyCode = 265 // Up arrow (GLFW)
)

// Modifier keys
const (
	KeyLeftShift    KeyCode = 340 // Left Shift (GLFW)
	KeyLeftControl  KeyCode = 341 // Left Control (GLFW)
	KeyRightShift   KeyCode = 344 // Right Shift (GLFW)
	KeyRightControl KeyCode = 345 // Right Control (GLFW)
)

// IsControl reports whether the key is either Control key.
func (k KeyCode) IsControl() bool {
	return k == KeyLeftControl || k == KeyRightControl
}
