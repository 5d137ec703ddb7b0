package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// parallelThreshold is the |dir.y| below which a ray is treated as parallel to the plane
const parallelThreshold = 1e-4

// Plane is the infinite xz plane through the object-space origin
type Plane struct{}

// NewPlane creates a new xz plane
func NewPlane() *Plane {
	return &Plane{}
}

// LocalIntersect returns the single crossing of y=0, reported twice
func (p *Plane) LocalIntersect(ray core.Ray) []float64 {
	// Parallel or coplanar rays never register a hit
	if math.Abs(ray.Direction.Y()) < parallelThreshold {
		return nil
	}

	t := -ray.Origin.Y() / ray.Direction.Y()
	return []float64{t, t}
}

// LocalNormalAt is constant +y
func (p *Plane) LocalNormalAt(point core.Tuple) core.Tuple {
	return core.Vector(0, 1, 0)
}
