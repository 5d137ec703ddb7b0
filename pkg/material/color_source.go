package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials.
// Evaluate receives a point already expressed in pattern space.
type ColorSource interface {
	Evaluate(point core.Tuple) core.Color
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(point core.Tuple) core.Color {
	return s.Color
}

// Stripes alternates between A and B along the x axis, one unit each
type Stripes struct {
	A, B core.Color
}

// NewStripes creates a new stripe source
func NewStripes(a, b core.Color) *Stripes {
	return &Stripes{A: a, B: b}
}

// Evaluate returns A when floor(x) is even, B otherwise
func (s *Stripes) Evaluate(point core.Tuple) core.Color {
	if isEven(point.X()) {
		return s.A
	}
	return s.B
}

// Gradient blends linearly from A to B over each unit of x
type Gradient struct {
	A, B core.Color
}

// NewGradient creates a new gradient source
func NewGradient(a, b core.Color) *Gradient {
	return &Gradient{A: a, B: b}
}

// Evaluate returns A + (B - A) * fract(x)
func (g *Gradient) Evaluate(point core.Tuple) core.Color {
	x := point.X()
	fraction := x - math.Floor(x)
	return g.A.Add(g.B.Subtract(g.A).Multiply(fraction))
}

// Ring produces concentric rings around the y axis
type Ring struct {
	A, B core.Color
}

// NewRing creates a new ring source
func NewRing(a, b core.Color) *Ring {
	return &Ring{A: a, B: b}
}

// Evaluate returns A when floor(sqrt(x^2 + z^2)) is even, B otherwise
func (r *Ring) Evaluate(point core.Tuple) core.Color {
	if isEven(math.Hypot(point.X(), point.Z())) {
		return r.A
	}
	return r.B
}

// Checkers produces a 3D checkerboard of unit cubes
type Checkers struct {
	A, B core.Color
}

// NewCheckers creates a new checker source
func NewCheckers(a, b core.Color) *Checkers {
	return &Checkers{A: a, B: b}
}

// Evaluate returns A when floor(x) + floor(y) + floor(z) is even, B otherwise
func (c *Checkers) Evaluate(point core.Tuple) core.Color {
	sum := math.Floor(point.X()) + math.Floor(point.Y()) + math.Floor(point.Z())
	if math.Mod(sum, 2) == 0 {
		return c.A
	}
	return c.B
}

// PositionDebug maps the pattern-space point directly to a color (x->R, y->G, z->B).
// Useful for checking which space a pattern is evaluated in.
type PositionDebug struct{}

// Evaluate returns the point coordinates as a color
func (PositionDebug) Evaluate(point core.Tuple) core.Color {
	return core.NewColor(point.X(), point.Y(), point.Z())
}

func isEven(v float64) bool {
	return math.Mod(math.Floor(v), 2) == 0
}
