// Package geom provides the small 3-D linear algebra toolkit used by the
// LDraw object model and the unwrap engine: 3-component vectors, 3x3
// matrices and an axis-aligned bounding box accumulator.
//
// All types are plain value types. Operations return new values rather than
// mutating receivers, which keeps transformed geometry independent of its
// source. Equality comes in two flavours: exact (==) and AlmostEqual, which
// compares within a fixed tolerance of 1e-3 and is the comparison used for
// geometry throughout the rest of the module.
package geom

import (
	"fmt"
	"math"
)

// Tolerance is the fixed comparison tolerance for AlmostEqual checks.
// LDraw coordinates are quantized to 4 decimal places, so 1e-3 comfortably
// absorbs accumulated rounding from transform chains.
const Tolerance = 1e-3

// Vector is a point or direction in 3-D space.
type Vector struct {
	X, Y, Z float64
}

// V is shorthand for constructing a Vector.
func V(x, y, z float64) Vector { return Vector{X: x, Y: y, Z: z} }

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vector) Neg() Vector { return v.Scale(-1) }

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vector) Cross(o Vector) Vector {
	return Vector{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Abs returns the Euclidean length of v.
func (v Vector) Abs() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Norm returns v normalized to unit length. The zero vector is returned
// unchanged since it has no direction.
func (v Vector) Norm() Vector {
	l := v.Abs()
	if l == 0 {
		return v
	}
	return Vector{v.X / l, v.Y / l, v.Z / l}
}

// AlmostEqual reports whether every component of v is within Tolerance of o.
func (v Vector) AlmostEqual(o Vector) bool {
	return math.Abs(v.X-o.X) <= Tolerance &&
		math.Abs(v.Y-o.Y) <= Tolerance &&
		math.Abs(v.Z-o.Z) <= Tolerance
}

// DirString classifies v as one of the six axis directions ("+x", "-y", ...)
// when its normalized form lies within Tolerance of that axis, or "" when it
// is not axis aligned.
func (v Vector) DirString() string {
	n := v.Norm()
	switch {
	case n.AlmostEqual(Vector{1, 0, 0}):
		return "+x"
	case n.AlmostEqual(Vector{-1, 0, 0}):
		return "-x"
	case n.AlmostEqual(Vector{0, 1, 0}):
		return "+y"
	case n.AlmostEqual(Vector{0, -1, 0}):
		return "-y"
	case n.AlmostEqual(Vector{0, 0, 1}):
		return "+z"
	case n.AlmostEqual(Vector{0, 0, -1}):
		return "-z"
	}
	return ""
}

// String formats v for diagnostics. Canonical LDraw serialization lives in
// the ldraw package, not here.
func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
