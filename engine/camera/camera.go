package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/unixpickle/model3d/model3d"
)

type cameraImpl struct {
	mu *sync.Mutex

	position model3d.Coord3D
	up       model3d.Coord3D

	// Orientation, refreshed by LookAt. The basis columns are the camera's local
	// +X (right), +Y (up) and +Z (backward) axes in world space.
	quaternion common.Quat
	right      model3d.Coord3D
	upAxis     model3d.Coord3D
	back       model3d.Coord3D

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix              [16]float32
	projectionMatrix        [16]float32
	viewProjectionMatrix    [16]float32
	inverseProjectionMatrix [16]float32
}

// Camera is the perspective camera an orbit controller drives.
// The controller writes its position and orientation; the host reads the
// matrices for rendering. Orientation always comes from the last LookAt call.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - model3d.Coord3D: world-space camera position
	Position() model3d.Coord3D

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p model3d.Coord3D)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - model3d.Coord3D: up vector
	Up() model3d.Coord3D

	// SetUp sets the camera's up vector. Takes effect on the next LookAt.
	//
	// Parameters:
	//   - up: up vector (need not be normalized)
	SetUp(up model3d.Coord3D)

	// LookAt orients the camera so its -Z axis points at target, keeping Up as close to
	// the local +Y axis as possible, and recomputes matrices.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target model3d.Coord3D)

	// Quaternion returns the current orientation.
	//
	// Returns:
	//   - common.Quat: orientation quaternion
	Quaternion() common.Quat

	// Basis returns the camera's local axes in world space.
	//
	// Returns:
	//   - right: local +X
	//   - up: local +Y
	//   - back: local +Z (the camera looks along -back)
	Basis() (right, up, back model3d.Coord3D)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined view-projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// InverseProjectionMatrix returns the inverse of the projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the inverse projection matrix
	InverseProjectionMatrix() [16]float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new perspective Camera at (0, 0, 1) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		position:   model3d.XYZ(0, 0, 1),
		up:         common.WorldUp,
		quaternion: common.IdentityQuat(),
		right:      model3d.XYZ(1, 0, 0),
		upAxis:     model3d.XYZ(0, 1, 0),
		back:       model3d.XYZ(0, 0, 1),
		fov:        45.0 * (math.Pi / 180.0), // radians
		aspect:     1.0,
		near:       0.1,
		far:        100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() model3d.Coord3D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p model3d.Coord3D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) Up() model3d.Coord3D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up model3d.Coord3D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) LookAt(target model3d.Coord3D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookAt(target)
	c.updateMatrices()
}

func (c *cameraImpl) Quaternion() common.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quaternion
}

func (c *cameraImpl) Basis() (right, up, back model3d.Coord3D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right, c.upAxis, c.back
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

// lookAt rebuilds the orientation basis so that -back points from position to target.
// When position and target coincide the previous orientation is kept.
// Caller must hold the mutex.
func (c *cameraImpl) lookAt(target model3d.Coord3D) {
	back, ok := common.SafeNormalize(c.position.Sub(target))
	if !ok {
		return
	}
	up, ok := common.SafeNormalize(c.up)
	if !ok {
		up = common.WorldUp
	}

	right, ok := common.SafeNormalize(up.Cross(back))
	if !ok {
		// up and view direction are parallel; nudge the view direction off the pole
		if math.Abs(up.Z) == 1 {
			back.X += 0.0001
		} else {
			back.Z += 0.0001
		}
		back, _ = common.SafeNormalize(back)
		right, _ = common.SafeNormalize(up.Cross(back))
	}

	c.right = right
	c.upAxis = back.Cross(right)
	c.back = back
	c.quaternion = common.QuatFromBasis(c.right, c.upAxis, c.back)
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	// Reconstruct a look-at point one unit ahead so the view matrix follows the current basis.
	ahead := c.position.Sub(c.back)

	common.LookAt(c.viewMatrix[:], c.position, ahead, c.upAxis)

	common.Perspective(c.projectionMatrix[:],
		c.fov, c.aspect, c.near, c.far,
	)

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	common.Invert4(c.inverseProjectionMatrix[:], c.projectionMatrix[:])
}
