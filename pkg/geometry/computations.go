package geometry

import (
	"math"
	"slices"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Computations holds everything shading needs about a single hit
type Computations struct {
	T          float64
	Object     *Object
	Point      core.Tuple
	EyeV       core.Tuple
	NormalV    core.Tuple // Flipped to face the eye when Inside
	Inside     bool
	ReflectV   core.Tuple
	OverPoint  core.Tuple // Point lifted along the normal, for shadow and reflection rays
	UnderPoint core.Tuple // Point pushed below the surface, for refraction rays
	N1         float64    // Refractive index of the medium being exited
	N2         float64    // Refractive index of the medium being entered
}

// PrepareComputations precomputes shading state for hit.
// xs is the full sorted intersection list for ray and is used to find the
// refractive indices on either side of the surface. hit must be one of xs
// for N1/N2 to be meaningful; otherwise both default to 1.
func PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) Computations {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
	}

	comps.Point = ray.Position(comps.T)
	comps.EyeV = ray.Direction.Mul(-1)
	comps.NormalV = comps.Object.NormalAt(comps.Point)

	if comps.NormalV.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = comps.NormalV.Mul(-1)
	}

	comps.ReflectV = core.Reflect(ray.Direction, comps.NormalV)
	offset := comps.NormalV.Mul(core.Epsilon)
	comps.OverPoint = comps.Point.Add(offset)
	comps.UnderPoint = comps.Point.Sub(offset)

	comps.N1, comps.N2 = refractiveIndices(hit, xs)
	return comps
}

// refractiveIndices walks xs tracking which objects the ray is inside.
// The last entered object at the hit determines n1 (before) and n2 (after).
func refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = 1.0, 1.0
	var containers []*Object

	outermost := func() float64 {
		if len(containers) == 0 {
			return 1.0
		}
		return containers[len(containers)-1].Material.RefractiveIndex
	}

	for _, x := range xs {
		if x == hit {
			n1 = outermost()
		}

		if i := slices.Index(containers, x.Object); i >= 0 {
			containers = slices.Delete(containers, i, i+1)
		} else {
			containers = append(containers, x.Object)
		}

		if x == hit {
			n2 = outermost()
			break
		}
	}
	return n1, n2
}

// Schlick approximates the Fresnel reflectance at the hit, in [0, 1].
// Total internal reflection returns 1.
func Schlick(comps Computations) float64 {
	cos := comps.EyeV.Dot(comps.NormalV)

	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2t := n * n * (1.0 - cos*cos)
		if sin2t > 1.0 {
			return 1.0
		}
		// Use cos(theta_t) when leaving the denser medium
		cos = math.Sqrt(1.0 - sin2t)
	}

	r0 := (comps.N1 - comps.N2) / (comps.N1 + comps.N2)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
