package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

const (
	// changeEpsilon is the squared threshold for position, target and orientation changes.
	changeEpsilon = 1e-6

	// polarEpsilon keeps the polar angle off the poles.
	polarEpsilon = 1e-6

	// tiltLimit is cos(70°); beyond it zoom-to-cursor re-projects the target onto the up plane.
	tiltLimit = 0.3420201433256687
)

// spherical is an offset in "up = +Y" space: radius, polar angle phi from +Y, and
// azimuthal angle theta around +Y measured from +Z.
type spherical struct {
	radius float64
	phi    float64
	theta  float64
}

func (s *spherical) setFromVector(v model3d.Coord3D) {
	s.radius = v.Norm()
	if s.radius == 0 {
		s.theta = 0
		s.phi = 0
		return
	}
	s.theta = math.Atan2(v.X, v.Z)
	s.phi = math.Acos(math.Max(-1, math.Min(1, v.Y/s.radius)))
}

func (s spherical) vector() model3d.Coord3D {
	sinPhiRadius := math.Sin(s.phi) * s.radius
	return model3d.XYZ(
		sinPhiRadius*math.Sin(s.theta),
		math.Cos(s.phi)*s.radius,
		sinPhiRadius*math.Cos(s.theta),
	)
}

func (s *spherical) makeSafe() {
	s.phi = math.Max(polarEpsilon, math.Min(math.Pi-polarEpsilon, s.phi))
}

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	camera Camera
	cfg    Config
	logger *zap.Logger

	target model3d.Coord3D

	// state recorded by SaveState
	target0   model3d.Coord3D
	position0 model3d.Coord3D

	state GestureState

	spherical      spherical
	sphericalDelta spherical
	scale          float64
	panOffset      model3d.Coord3D

	performCursorZoom bool
	dollyDirection    model3d.Coord3D

	// last emitted pose, for change detection
	lastPosition   model3d.Coord3D
	lastQuaternion common.Quat
	lastTarget     model3d.Coord3D

	rotateStart common.Vec2
	panStart    common.Vec2
	dollyStart  common.Vec2

	pointers      *pointerRegistry
	capturing     bool
	controlActive bool

	viewportWidth  float64
	viewportHeight float64

	pending   []EventType
	listeners *listenerRegistry
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller driving cam. The camera keeps its
// current position; the controller looks it at the target and applies the clamps once.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:             &sync.Mutex{},
		camera:         cam,
		cfg:            DefaultConfig(),
		logger:         zap.NewNop(),
		scale:          1,
		lastQuaternion: common.IdentityQuat(),
		pointers:       newPointerRegistry(),
		viewportWidth:  1280,
		viewportHeight: 720,
		listeners:      &listenerRegistry{},
	}

	for _, option := range options {
		option(cc)
	}

	cc.target0 = cc.target
	cc.position0 = cam.Position()

	cc.mu.Lock()
	cc.update(0, false)
	cc.pending = nil
	cc.mu.Unlock()
	return cc
}

// do runs fn under the lock and then dispatches whatever notifications fn queued.
func (cc *cameraControllerImpl) do(fn func()) {
	cc.mu.Lock()
	fn()
	pending := cc.pending
	cc.pending = nil
	position := cc.camera.Position()
	target := cc.target
	cc.mu.Unlock()

	cc.listeners.dispatch(pending, position, target)
}

// --- update ---

func (cc *cameraControllerImpl) Update() bool {
	var changed bool
	cc.do(func() {
		changed = cc.update(0, false)
	})
	return changed
}

func (cc *cameraControllerImpl) Advance(deltaTime float32) bool {
	var changed bool
	cc.do(func() {
		changed = cc.update(float64(deltaTime), true)
	})
	return changed
}

// update recomputes the camera pose from the pending deltas.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) update(deltaTime float64, timed bool) bool {
	cfg := &cc.cfg

	toYUp, fromYUp := common.UpAlignment(cc.camera.Up())
	offset := toYUp.Apply(cc.camera.Position().Sub(cc.target))
	cc.spherical.setFromVector(offset)

	if cfg.AutoRotate && cc.state == StateNone {
		cc.rotateLeft(cc.autoRotationAngle(deltaTime, timed))
	}

	if cfg.EnableDamping {
		cc.spherical.theta += cc.sphericalDelta.theta * cfg.DampingFactor
		cc.spherical.phi += cc.sphericalDelta.phi * cfg.DampingFactor
	} else {
		cc.spherical.theta += cc.sphericalDelta.theta
		cc.spherical.phi += cc.sphericalDelta.phi
	}

	cc.spherical.theta = clampAzimuth(cc.spherical.theta, cfg.MinAzimuthAngle, cfg.MaxAzimuthAngle)
	cc.spherical.phi = math.Max(cfg.MinPolarAngle, math.Min(cfg.MaxPolarAngle, cc.spherical.phi))
	cc.spherical.makeSafe()

	if cfg.EnableDamping {
		cc.target = cc.target.Add(cc.panOffset.Scale(cfg.DampingFactor))
	} else {
		cc.target = cc.target.Add(cc.panOffset)
	}
	cc.target = cc.clampTarget(cc.target)

	zoomChanged := false
	cursorZoom := cfg.ZoomToCursor && cc.performCursorZoom
	if cursorZoom {
		cc.spherical.radius = cc.clampDistance(cc.spherical.radius)
	} else {
		prevRadius := cc.spherical.radius
		cc.spherical.radius = cc.clampDistance(cc.spherical.radius * cc.scale)
		zoomChanged = prevRadius != cc.spherical.radius
	}

	offset = fromYUp.Apply(cc.spherical.vector())
	cc.camera.SetPosition(cc.target.Add(offset))
	cc.camera.LookAt(cc.target)

	if cfg.EnableDamping {
		cc.sphericalDelta.theta *= 1 - cfg.DampingFactor
		cc.sphericalDelta.phi *= 1 - cfg.DampingFactor
		cc.panOffset = cc.panOffset.Scale(1 - cfg.DampingFactor)
	} else {
		cc.sphericalDelta = spherical{}
		cc.panOffset = model3d.Coord3D{}
	}

	if cursorZoom {
		zoomChanged = cc.applyCursorZoom(offset.Norm())
	}

	cc.scale = 1
	cc.performCursorZoom = false

	position := cc.camera.Position()
	quaternion := cc.camera.Quaternion()
	if zoomChanged ||
		common.LengthSquared(cc.lastPosition.Sub(position)) > changeEpsilon ||
		8*(1-cc.lastQuaternion.Dot(quaternion)) > changeEpsilon ||
		common.LengthSquared(cc.lastTarget.Sub(cc.target)) > changeEpsilon {

		cc.pending = append(cc.pending, EventChange)
		cc.lastPosition = position
		cc.lastQuaternion = quaternion
		cc.lastTarget = cc.target
		return true
	}
	return false
}

// applyCursorZoom moves the camera along the pointer ray instead of toward the target,
// then re-places the target in front of the camera.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) applyCursorZoom(prevRadius float64) bool {
	newRadius := cc.clampDistance(prevRadius * cc.scale)
	radiusDelta := prevRadius - newRadius

	position := cc.camera.Position().Add(cc.dollyDirection.Scale(radiusDelta))
	cc.camera.SetPosition(position)

	_, _, back := cc.camera.Basis()
	forward := back.Scale(-1)

	if cc.cfg.ScreenSpacePanning {
		cc.target = position.Add(forward.Scale(newRadius))
	} else if up, ok := common.SafeNormalize(cc.camera.Up()); ok && math.Abs(up.Dot(forward)) >= tiltLimit {
		if hit, ok := intersectPlane(position, forward, up, cc.target); ok {
			cc.target = hit
		}
	}

	cc.target = cc.clampTarget(cc.target)
	cc.camera.LookAt(cc.target)
	return radiusDelta != 0
}

// clampTarget keeps the target within the cursor radius bounds and above the floor.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) clampTarget(t model3d.Coord3D) model3d.Coord3D {
	rel := common.ClampLength(t.Sub(cc.cfg.Cursor), cc.cfg.MinTargetRadius, cc.cfg.MaxTargetRadius)
	t = rel.Add(cc.cfg.Cursor)
	if t.Y < cc.cfg.MinTargetHeight {
		t.Y = cc.cfg.MinTargetHeight
	}
	return t
}

func (cc *cameraControllerImpl) clampDistance(d float64) float64 {
	return math.Max(cc.cfg.MinDistance, math.Min(cc.cfg.MaxDistance, d))
}

func (cc *cameraControllerImpl) autoRotationAngle(deltaTime float64, timed bool) float64 {
	if timed {
		return (2 * math.Pi / 60 * cc.cfg.AutoRotateSpeed) * deltaTime
	}
	return 2 * math.Pi / 60 / 60 * cc.cfg.AutoRotateSpeed
}

// clampAzimuth clamps theta into [minAngle, maxAngle]. Bounds are normalized into (-π, π];
// when the normalized interval wraps across ±π (min > max) theta snaps to the bound on
// its side of the interval midpoint. Infinite bounds disable the clamp.
func clampAzimuth(theta, minAngle, maxAngle float64) float64 {
	if math.IsInf(minAngle, 0) || math.IsInf(maxAngle, 0) || math.IsNaN(minAngle) || math.IsNaN(maxAngle) {
		return theta
	}
	const twoPi = 2 * math.Pi

	if minAngle < -math.Pi {
		minAngle += twoPi
	} else if minAngle > math.Pi {
		minAngle -= twoPi
	}
	if maxAngle < -math.Pi {
		maxAngle += twoPi
	} else if maxAngle > math.Pi {
		maxAngle -= twoPi
	}

	if minAngle <= maxAngle {
		return math.Max(minAngle, math.Min(maxAngle, theta))
	}
	if theta > (minAngle+maxAngle)/2 {
		return math.Max(minAngle, theta)
	}
	return math.Min(maxAngle, theta)
}

// intersectPlane returns where the ray origin+t*dir (t >= 0) meets the plane through
// point with the given normal.
func intersectPlane(origin, dir, normal, point model3d.Coord3D) (model3d.Coord3D, bool) {
	denom := normal.Dot(dir)
	dist := normal.Dot(origin.Sub(point))
	if denom == 0 {
		if dist == 0 {
			return origin, true
		}
		return model3d.Coord3D{}, false
	}
	t := -dist / denom
	if t < 0 {
		return model3d.Coord3D{}, false
	}
	return origin.Add(dir.Scale(t)), true
}

// --- accessors ---

func (cc *cameraControllerImpl) PolarAngle() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.spherical.phi
}

func (cc *cameraControllerImpl) AzimuthalAngle() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.spherical.theta
}

func (cc *cameraControllerImpl) Distance() float64 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.camera.Position().Dist(cc.target)
}

func (cc *cameraControllerImpl) Target() model3d.Coord3D {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target model3d.Coord3D) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) State() GestureState {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state
}

func (cc *cameraControllerImpl) Capturing() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.capturing
}

func (cc *cameraControllerImpl) Config() Config {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cfg
}

func (cc *cameraControllerImpl) SetConfig(cfg Config) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cfg = cfg
}

func (cc *cameraControllerImpl) SetViewport(width, height float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.viewportWidth = width
	cc.viewportHeight = height
}

func (cc *cameraControllerImpl) SaveState() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target0 = cc.target
	cc.position0 = cc.camera.Position()
}

func (cc *cameraControllerImpl) Reset() {
	cc.do(func() {
		cc.target = cc.target0
		cc.camera.SetPosition(cc.position0)
		cc.sphericalDelta = spherical{}
		cc.panOffset = model3d.Coord3D{}
		cc.scale = 1
		cc.pending = append(cc.pending, EventChange)
		cc.update(0, false)
		cc.state = StateNone
	})
}

func (cc *cameraControllerImpl) AddListener(kind EventType, fn func(Event)) ListenerID {
	return cc.listeners.add(kind, fn)
}

func (cc *cameraControllerImpl) RemoveListener(id ListenerID) bool {
	return cc.listeners.remove(id)
}

func (cc *cameraControllerImpl) Dispose() {
	cc.mu.Lock()
	cc.pointers.reset()
	cc.capturing = false
	cc.controlActive = false
	cc.state = StateNone
	cc.pending = nil
	cc.mu.Unlock()

	cc.listeners.clear()
}

// --- delta accumulation ---

func (cc *cameraControllerImpl) rotateLeft(angle float64) {
	cc.sphericalDelta.theta -= angle
}

func (cc *cameraControllerImpl) rotateUp(angle float64) {
	cc.sphericalDelta.phi -= angle
}

// panLeft queues a translation along the camera's local X axis.
func (cc *cameraControllerImpl) panLeft(distance float64) {
	right, _, _ := cc.camera.Basis()
	cc.panOffset = cc.panOffset.Add(right.Scale(-distance))
}

// panUp queues a translation along the camera's local Y axis, or along the direction
// orthogonal to both the camera up vector and its local X axis when not screen-space panning.
func (cc *cameraControllerImpl) panUp(distance float64) {
	right, upAxis, _ := cc.camera.Basis()
	v := upAxis
	if !cc.cfg.ScreenSpacePanning {
		var ok bool
		v, ok = common.SafeNormalize(cc.camera.Up().Cross(right))
		if !ok {
			return
		}
	}
	cc.panOffset = cc.panOffset.Add(v.Scale(distance))
}

// pan converts a pixel delta into a world-space translation at the target plane.
func (cc *cameraControllerImpl) pan(deltaX, deltaY float64) {
	if cc.viewportHeight <= 0 {
		return
	}
	targetDistance := cc.camera.Position().Dist(cc.target)
	// half of the fov is center to top of screen
	targetDistance *= math.Tan(float64(cc.camera.Fov()) / 2)

	cc.panLeft(2 * deltaX * targetDistance / cc.viewportHeight)
	cc.panUp(2 * deltaY * targetDistance / cc.viewportHeight)
}

func (cc *cameraControllerImpl) dollyOut(dollyScale float64) {
	if dollyScale == 0 {
		return
	}
	cc.scale /= dollyScale
}

func (cc *cameraControllerImpl) dollyIn(dollyScale float64) {
	cc.scale *= dollyScale
}

func (cc *cameraControllerImpl) zoomScale(delta float64) float64 {
	normalizedDelta := math.Abs(delta * 0.01)
	return math.Pow(0.95, cc.cfg.ZoomSpeed*normalizedDelta)
}

// updateZoomParameters aims the next dolly at the pixel (x, y) when zooming to the cursor.
func (cc *cameraControllerImpl) updateZoomParameters(x, y float64) {
	if !cc.cfg.ZoomToCursor || cc.viewportWidth <= 0 || cc.viewportHeight <= 0 {
		return
	}
	cc.performCursorZoom = true

	ndcX := x/cc.viewportWidth*2 - 1
	ndcY := -(y/cc.viewportHeight)*2 + 1

	tanHalf := math.Tan(float64(cc.camera.Fov()) / 2)
	aspect := float64(cc.camera.Aspect())
	right, up, back := cc.camera.Basis()
	dir := right.Scale(ndcX * tanHalf * aspect).Add(up.Scale(ndcY * tanHalf)).Sub(back)
	if d, ok := common.SafeNormalize(dir); ok {
		cc.dollyDirection = d
	} else {
		cc.performCursorZoom = false
	}
}
