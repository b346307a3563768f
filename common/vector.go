package common

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// WorldUp is the +Y axis every orbit computation is normalized into.
var WorldUp = model3d.XYZ(0, 1, 0)

// epsilon below which a vector length is treated as zero.
const epsilon = 1e-12

// LengthSquared returns |v|².
func LengthSquared(v model3d.Coord3D) float64 {
	return v.Dot(v)
}

// SafeNormalize returns v scaled to unit length, or the zero vector and false when v
// has no usable direction.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - model3d.Coord3D: the unit vector (zero when degenerate)
//   - bool: false if v was (numerically) zero
func SafeNormalize(v model3d.Coord3D) (model3d.Coord3D, bool) {
	l := v.Norm()
	if l < epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return model3d.Coord3D{}, false
	}
	return v.Scale(1 / l), true
}

// ClampLength rescales v so that its length lies in [minLen, maxLen], preserving direction.
// A zero vector stays zero.
//
// Parameters:
//   - v: the vector to clamp
//   - minLen: lower bound on the length
//   - maxLen: upper bound on the length (may be +Inf)
//
// Returns:
//   - model3d.Coord3D: the clamped vector
func ClampLength(v model3d.Coord3D, minLen, maxLen float64) model3d.Coord3D {
	l := v.Norm()
	div := l
	if div == 0 {
		div = 1
	}
	return v.Scale(math.Max(minLen, math.Min(maxLen, l)) / div)
}

// UpAlignment returns the rotation that maps up onto WorldUp together with its inverse.
// Degenerate or already aligned up vectors yield the identity.
//
// Parameters:
//   - up: the camera's up vector
//
// Returns:
//   - model3d.Transform: rotation into "up = +Y" space
//   - model3d.Transform: rotation back out of it
func UpAlignment(up model3d.Coord3D) (model3d.Transform, model3d.Transform) {
	var identity model3d.Transform = model3d.Rotation(model3d.XYZ(1, 0, 0), 0)

	u, ok := SafeNormalize(up)
	if !ok {
		return identity, identity
	}
	d := math.Max(-1, math.Min(1, u.Dot(WorldUp)))
	if d > 1-1e-12 {
		return identity, identity
	}

	var axis model3d.Coord3D
	if d < -1+1e-12 {
		// antiparallel: any axis orthogonal to up works
		if math.Abs(u.X) > math.Abs(u.Z) {
			axis = model3d.XYZ(-u.Y, u.X, 0)
		} else {
			axis = model3d.XYZ(0, -u.Z, u.Y)
		}
	} else {
		axis = u.Cross(WorldUp)
	}
	axis, _ = SafeNormalize(axis)
	theta := math.Acos(d)

	var rot model3d.Transform = model3d.Rotation(axis, theta)
	if rot.Apply(u).Dist(WorldUp) > 1e-6 {
		rot = model3d.Rotation(axis, -theta)
	}
	return rot, rot.Inverse()
}
