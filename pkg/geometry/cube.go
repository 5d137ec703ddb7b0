package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Cube is the axis-aligned cube spanning [-1, 1] on every object-space axis
type Cube struct{}

// NewCube creates a new unit cube
func NewCube() *Cube {
	return &Cube{}
}

// LocalIntersect uses the slab method: the ray is inside the cube where
// it is inside all three pairs of parallel planes
func (c *Cube) LocalIntersect(ray core.Ray) []float64 {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin[axis]
		direction := ray.Direction[axis]

		if math.Abs(direction) < core.Epsilon {
			// Parallel to this slab: either always inside it or never
			if origin < -1 || origin > 1 {
				return nil
			}
			continue
		}

		t0 := (-1 - origin) / direction
		t1 := (1 - origin) / direction
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		tMin = max(tMin, t0)
		tMax = min(tMax, t1)
		if tMin > tMax {
			return nil
		}
	}

	return []float64{tMin, tMax}
}

// LocalNormalAt picks the face by the component with the largest magnitude
func (c *Cube) LocalNormalAt(point core.Tuple) core.Tuple {
	ax, ay, az := math.Abs(point.X()), math.Abs(point.Y()), math.Abs(point.Z())
	maxc := max(ax, ay, az)

	switch maxc {
	case ax:
		return core.Vector(point.X(), 0, 0)
	case ay:
		return core.Vector(0, point.Y(), 0)
	default:
		return core.Vector(0, 0, point.Z())
	}
}
