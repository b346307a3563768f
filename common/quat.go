package common

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// Quat is a unit quaternion describing an orientation. Components are float64 so
// pose comparisons stay stable across many small updates.
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat returns the identity orientation.
//
// Returns:
//   - Quat: the quaternion (0, 0, 0, 1)
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// QuatFromBasis builds the orientation whose rotation matrix has the given
// orthonormal columns. For a camera these are its local right, up and backward axes.
//
// Parameters:
//   - right: first matrix column (local +X in world space)
//   - up: second matrix column (local +Y in world space)
//   - back: third matrix column (local +Z in world space)
//
// Returns:
//   - Quat: the equivalent unit quaternion
func QuatFromBasis(right, up, back model3d.Coord3D) Quat {
	m11, m12, m13 := right.X, up.X, back.X
	m21, m22, m23 := right.Y, up.Y, back.Y
	m31, m32, m33 := right.Z, up.Z, back.Z

	trace := m11 + m22 + m33
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}
	return q
}

// Dot returns the four-component dot product of two quaternions.
//
// Parameters:
//   - o: the other quaternion
//
// Returns:
//   - float64: q·o
func (q Quat) Dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Rotate applies the rotation to a vector.
//
// Parameters:
//   - v: the vector to rotate
//
// Returns:
//   - model3d.Coord3D: the rotated vector
func (q Quat) Rotate(v model3d.Coord3D) model3d.Coord3D {
	// t = 2 * cross(q.xyz, v); v' = v + w*t + cross(q.xyz, t)
	u := model3d.XYZ(q.X, q.Y, q.Z)
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}
