package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the offset used to lift hit points off a surface and the
// tolerance for approximate tuple and color comparisons
const Epsilon = 1e-5

// Tuple is a homogeneous coordinate. Points have W=1, vectors have W=0.
type Tuple = mgl64.Vec4

// Point creates a tuple with W=1
func Point(x, y, z float64) Tuple {
	return Tuple{x, y, z, 1}
}

// Vector creates a tuple with W=0
func Vector(x, y, z float64) Tuple {
	return Tuple{x, y, z, 0}
}

// IsPoint reports whether t is a point
func IsPoint(t Tuple) bool {
	return t.W() == 1
}

// IsVector reports whether t is a vector
func IsVector(t Tuple) bool {
	return t.W() == 0
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func Normalize(v Tuple) Tuple {
	length := v.Len()
	if length == 0 {
		return v
	}
	return v.Mul(1.0 / length)
}

// Cross returns the cross product of two vectors, ignoring W
func Cross(a, b Tuple) Tuple {
	return a.Vec3().Cross(b.Vec3()).Vec4(0)
}

// Reflect reflects v about the normal n
func Reflect(v, n Tuple) Tuple {
	// r = v - 2*dot(v,n)*n
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// FloatEqual compares two floats within Epsilon
func FloatEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// TupleEqual compares two tuples component-wise within Epsilon
func TupleEqual(a, b Tuple) bool {
	return a.ApproxEqualThreshold(b, Epsilon)
}
