package camera

import (
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithConfig replaces the whole configuration. Options applied after it still take effect.
//
// Parameters:
//   - cfg: the configuration to use
//
// Returns:
//   - CameraControllerOption: functional option to set the configuration
func WithConfig(cfg Config) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg = cfg
	}
}

// WithTarget sets the initial orbit target.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(x, y, z float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = model3d.XYZ(x, y, z)
	}
}

// WithCursor sets the reference point for the target radius clamp.
//
// Parameters:
//   - x, y, z: world-space coordinates of the cursor
//
// Returns:
//   - CameraControllerOption: functional option to set the cursor
func WithCursor(x, y, z float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.Cursor = model3d.XYZ(x, y, z)
	}
}

// WithDistanceBounds sets the minimum and maximum camera-to-target distance.
//
// Parameters:
//   - min: minimum dolly distance
//   - max: maximum dolly distance
//
// Returns:
//   - CameraControllerOption: functional option to set distance bounds
func WithDistanceBounds(min, max float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MinDistance = min
		cc.cfg.MaxDistance = max
	}
}

// WithMinDistance sets how close the camera may dolly in.
//
// Parameters:
//   - min: minimum dolly distance
//
// Returns:
//   - CameraControllerOption: functional option to set the minimum distance
func WithMinDistance(min float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MinDistance = min
	}
}

// WithMaxDistance sets how far the camera may dolly out.
//
// Parameters:
//   - max: maximum dolly distance
//
// Returns:
//   - CameraControllerOption: functional option to set the maximum distance
func WithMaxDistance(max float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MaxDistance = max
	}
}

// WithTargetRadiusBounds limits how far the target may move from the cursor.
//
// Parameters:
//   - min: minimum target-to-cursor distance
//   - max: maximum target-to-cursor distance
//
// Returns:
//   - CameraControllerOption: functional option to set target radius bounds
func WithTargetRadiusBounds(min, max float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MinTargetRadius = min
		cc.cfg.MaxTargetRadius = max
	}
}

// WithMinTargetHeight sets the lowest world Y the target may reach.
//
// Parameters:
//   - height: minimum target Y
//
// Returns:
//   - CameraControllerOption: functional option to set the target floor
func WithMinTargetHeight(height float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MinTargetHeight = height
	}
}

// WithPolarBounds sets the vertical orbit limits, measured from the up axis.
//
// Parameters:
//   - min: minimum polar angle in radians
//   - max: maximum polar angle in radians
//
// Returns:
//   - CameraControllerOption: functional option to set polar bounds
func WithPolarBounds(min, max float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MinPolarAngle = min
		cc.cfg.MaxPolarAngle = max
	}
}

// WithAzimuthBounds sets the horizontal orbit limits. Both must be finite to apply;
// an interval crossing ±π is given as min > max.
//
// Parameters:
//   - min: minimum azimuthal angle in radians
//   - max: maximum azimuthal angle in radians
//
// Returns:
//   - CameraControllerOption: functional option to set azimuth bounds
func WithAzimuthBounds(min, max float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MinAzimuthAngle = min
		cc.cfg.MaxAzimuthAngle = max
	}
}

// WithZoomSpeed sets the dolly speed multiplier.
//
// Parameters:
//   - speed: multiplier for wheel, drag and pinch dolly
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.ZoomSpeed = speed
	}
}

// WithRotateSpeed sets the rotation speed multiplier.
//
// Parameters:
//   - speed: multiplier for pointer and key rotation
//
// Returns:
//   - CameraControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.RotateSpeed = speed
	}
}

// WithPanSpeed sets the pointer pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pointer pan
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.PanSpeed = speed
	}
}

// WithKeyPanSpeed sets how many pixels one arrow key press pans.
//
// Parameters:
//   - speed: pixels per key press
//
// Returns:
//   - CameraControllerOption: functional option to set key pan speed
func WithKeyPanSpeed(speed float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.KeyPanSpeed = speed
	}
}

// WithDamping enables inertia. The host must then call Update or Advance every frame.
//
// Parameters:
//   - enabled: true to enable damping
//   - factor: fraction of the pending delta applied per update
//
// Returns:
//   - CameraControllerOption: functional option to configure damping
func WithDamping(enabled bool, factor float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.EnableDamping = enabled
		cc.cfg.DampingFactor = factor
	}
}

// WithAutoRotate spins the camera around the target while no gesture is active.
//
// Parameters:
//   - enabled: true to enable auto-rotation
//   - speed: 2.0 is one orbit per 30 seconds at 60fps
//
// Returns:
//   - CameraControllerOption: functional option to configure auto-rotation
func WithAutoRotate(enabled bool, speed float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.AutoRotate = enabled
		cc.cfg.AutoRotateSpeed = speed
	}
}

// WithZoomToCursor makes dolly gestures move toward the point under the pointer.
//
// Parameters:
//   - enabled: true to zoom toward the cursor
//
// Returns:
//   - CameraControllerOption: functional option to toggle zoom-to-cursor
func WithZoomToCursor(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.ZoomToCursor = enabled
	}
}

// WithScreenSpacePanning chooses between panning in the screen plane (true) and in the
// plane orthogonal to the camera's up vector (false).
//
// Parameters:
//   - enabled: true for screen-space panning
//
// Returns:
//   - CameraControllerOption: functional option to set the pan plane
func WithScreenSpacePanning(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.ScreenSpacePanning = enabled
	}
}

// WithMouseButtons remaps the mouse buttons.
//
// Parameters:
//   - buttons: action per button
//
// Returns:
//   - CameraControllerOption: functional option to set the button mapping
func WithMouseButtons(buttons MouseButtons) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.MouseButtons = buttons
	}
}

// WithTouches remaps one- and two-finger gestures.
//
// Parameters:
//   - touches: action per contact count
//
// Returns:
//   - CameraControllerOption: functional option to set the touch mapping
func WithTouches(touches Touches) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cfg.Touches = touches
	}
}

// WithViewport sets the size of the input element in pixels.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraControllerOption: functional option to set the viewport
func WithViewport(width, height float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.viewportWidth = width
		cc.viewportHeight = height
	}
}

// WithLogger sets the logger used for gesture diagnostics.
//
// Parameters:
//   - logger: a zap logger; nil keeps the no-op logger
//
// Returns:
//   - CameraControllerOption: functional option to set the logger
func WithLogger(logger *zap.Logger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if logger != nil {
			cc.logger = logger
		}
	}
}
