package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// singularThreshold is the determinant magnitude below which a transform
// is treated as non-invertible
const singularThreshold = 1e-12

// Matrix is a 4x4 column-major transformation matrix
type Matrix = mgl64.Mat4

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return mgl64.Ident4()
}

// Translation returns a matrix that moves points by (x, y, z). Vectors are unaffected.
func Translation(x, y, z float64) Matrix {
	return mgl64.Translate3D(x, y, z)
}

// Scaling returns a matrix that scales each axis independently
func Scaling(x, y, z float64) Matrix {
	return mgl64.Scale3D(x, y, z)
}

// RotationX returns a rotation of r radians around the X axis
func RotationX(r float64) Matrix {
	return mgl64.HomogRotate3DX(r)
}

// RotationY returns a rotation of r radians around the Y axis
func RotationY(r float64) Matrix {
	return mgl64.HomogRotate3DY(r)
}

// RotationZ returns a rotation of r radians around the Z axis
func RotationZ(r float64) Matrix {
	return mgl64.HomogRotate3DZ(r)
}

// Shearing returns a matrix that moves each component in proportion to the other two.
// xy means "x in proportion to y", and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	return mgl64.Mat4FromRows(
		mgl64.Vec4{1, xy, xz, 0},
		mgl64.Vec4{yx, 1, yz, 0},
		mgl64.Vec4{zx, zy, 1, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// ViewTransform orients the world relative to an eye at from, looking at to.
// The left vector is not renormalized, so an up vector that is not
// perpendicular to the view direction scales the view.
func ViewTransform(from, to, up Tuple) Matrix {
	forward := to.Sub(from).Vec3().Normalize()
	left := forward.Cross(up.Vec3().Normalize())
	trueUp := left.Cross(forward)

	orientation := mgl64.Mat4FromRows(
		left.Vec4(0),
		trueUp.Vec4(0),
		forward.Mul(-1).Vec4(0),
		mgl64.Vec4{0, 0, 0, 1},
	)
	return orientation.Mul4(Translation(-from.X(), -from.Y(), -from.Z()))
}

// Chain composes transforms so they apply in argument order:
// Chain(a, b, c) == c * b * a
func Chain(transforms ...Matrix) Matrix {
	result := Identity()
	for _, m := range transforms {
		result = m.Mul4(result)
	}
	return result
}

// Inverse returns the inverse of m, or ErrSingularTransform when m has no inverse
func Inverse(m Matrix) (Matrix, error) {
	det := m.Det()
	if math.Abs(det) < singularThreshold || math.IsNaN(det) {
		return Matrix{}, fmt.Errorf("determinant %g: %w", det, ErrSingularTransform)
	}
	return m.Inv(), nil
}

// MatrixEqual compares two matrices element-wise within Epsilon
func MatrixEqual(a, b Matrix) bool {
	return a.ApproxEqualThreshold(b, Epsilon)
}
