package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// Shape is the local-space geometry of an object.
// Shapes know nothing about transforms; Object converts to and from world space.
type Shape interface {
	// LocalIntersect returns the ray parameters where the object-space ray
	// crosses the surface. Zero or two values, not necessarily positive.
	LocalIntersect(ray core.Ray) []float64

	// LocalNormalAt returns the outward surface normal at an object-space point
	LocalNormalAt(point core.Tuple) core.Tuple
}
