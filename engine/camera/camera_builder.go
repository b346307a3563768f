package camera

import (
	"github.com/unixpickle/model3d/model3d"
)

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = model3d.XYZ(x, y, z)
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = model3d.XYZ(x, y, z)
	}
}

// WithLookAt orients the camera toward a point. Apply it after WithPosition and WithUp.
//
// Parameters:
//   - x, y, z: world-space point to face
//
// Returns:
//   - CameraBuilderOption: a function that orients the camera
func WithLookAt(x, y, z float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lookAt(model3d.XYZ(x, y, z))
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the camera's near clipping plane distance.
//
// Parameters:
//   - near: the near clipping plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's near clipping plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the camera's far clipping plane distance.
//
// Parameters:
//   - far: the far clipping plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's far clipping plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}
