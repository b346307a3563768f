// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "math"

// Vec2 is a 2D screen-space position or delta in pixels.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Mid returns the midpoint between v and o.
func (v Vec2) Mid(o Vec2) Vec2 {
	return Vec2{X: 0.5 * (v.X + o.X), Y: 0.5 * (v.Y + o.Y)}
}

// Dist returns the euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}
