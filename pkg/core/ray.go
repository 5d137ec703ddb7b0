package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Tuple
	Direction Tuple
}

// NewRay creates a new ray
func NewRay(origin, direction Tuple) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Position returns the point at parameter t along the ray
func (r Ray) Position(t float64) Tuple {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform applies m to both the origin and the direction.
// The direction is not renormalized, so t values stay comparable across spaces.
func (r Ray) Transform(m Matrix) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin),
		Direction: m.Mul4x1(r.Direction),
	}
}
