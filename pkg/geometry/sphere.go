package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Sphere is the unit sphere centered at the object-space origin
type Sphere struct{}

// NewSphere creates a new unit sphere
func NewSphere() *Sphere {
	return &Sphere{}
}

// LocalIntersect solves the ray/unit-sphere quadratic
func (s *Sphere) LocalIntersect(ray core.Ray) []float64 {
	// Vector from sphere center to ray origin
	sphereToRay := ray.Origin.Sub(core.Point(0, 0, 0))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return []float64{t1, t2}
}

// LocalNormalAt returns the vector from the center to the point
func (s *Sphere) LocalNormalAt(point core.Tuple) core.Tuple {
	return point.Sub(core.Point(0, 0, 0))
}
