// Package geom is the 2D geometry kernel used by the terrain and actor
// simulation: vectors, line segments, axis-aligned rectangles and the
// tolerance-aware intersection routines built on the 2x2 determinant.
// Everything here is a pure function of its inputs.
package geom

import "math"

// Vec is a 2D vector or point in screen coordinates (Y grows downward).
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// AddScaled returns v + o*s.
func (v Vec) AddScaled(o Vec, s float64) Vec {
	return Vec{X: v.X + o.X*s, Y: v.Y + o.Y*s}
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns the squared length of v.
func (v Vec) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length of v.
func (v Vec) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself and ok is false.
func (v Vec) Normalize() (n Vec, ok bool) {
	l := v.Len()
	if l == 0 {
		return Vec{}, false
	}
	return Vec{X: v.X / l, Y: v.Y / l}, true
}

// Unit is Normalize without the flag.
func (v Vec) Unit() Vec {
	n, _ := v.Normalize()
	return n
}

// Perp returns v rotated a quarter turn: (-y, x).
func (v Vec) Perp() Vec {
	return Vec{X: -v.Y, Y: v.X}
}

// Angle returns atan2(y, x).
func (v Vec) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Round returns v with both components rounded to the nearest integer.
func (v Vec) Round() Vec {
	return Vec{X: math.Round(v.X), Y: math.Round(v.Y)}
}

// FromAngle returns the unit vector (cos a, sin a).
func FromAngle(a float64) Vec {
	return Vec{X: math.Cos(a), Y: math.Sin(a)}
}

// DistSq returns the squared distance between a and b.
func DistSq(a, b Vec) float64 {
	return a.Sub(b).LenSq()
}

// Determinant returns v1.x*v2.y - v1.y*v2.x. Its sign gives the turn
// direction from v1 to v2; zero means the vectors are parallel.
func Determinant(v1, v2 Vec) float64 {
	return v1.X*v2.Y - v1.Y*v2.X
}

// NormalAngle returns the angle between two unit vectors.
// The vectors are not checked; the dot product is clamped so rounding
// noise never leaves the domain of acos.
func NormalAngle(n1, n2 Vec) float64 {
	return math.Acos(math.Max(-1, math.Min(1, n1.Dot(n2))))
}

// Angle returns the angle between two arbitrary non-zero vectors.
func Angle(v1, v2 Vec) float64 {
	return NormalAngle(v1.Unit(), v2.Unit())
}
