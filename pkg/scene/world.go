package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// World is a light source plus an ordered list of objects.
// A world must not be modified while it is being rendered.
type World struct {
	Light   *lights.PointLight // nil means no light
	Objects []*geometry.Object
}

// NewWorld creates a new empty world with no light
func NewWorld() *World {
	return &World{}
}

// NewDefaultWorld creates the reference world: a white light at (-10, 10, -10)
// and two concentric spheres
func NewDefaultWorld() *World {
	w := NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))

	m1 := material.DefaultMaterial()
	m1.Color = core.NewColor(0.8, 1.0, 0.6)
	m1.Diffuse = 0.7
	m1.Specular = 0.2
	s1 := geometry.NewObject(geometry.NewSphere(), m1)

	s2 := geometry.NewObject(geometry.NewSphere(), nil).
		MustSetTransform(core.Scaling(0.5, 0.5, 0.5))

	w.AddObject(s1, s2)
	return w
}

// SetLight sets the world's light source
func (w *World) SetLight(light lights.PointLight) {
	w.Light = &light
}

// AddObject appends objects to the world
func (w *World) AddObject(objects ...*geometry.Object) {
	w.Objects = append(w.Objects, objects...)
}

// Validate checks that the world can be shaded
func (w *World) Validate() error {
	if w.Light == nil {
		return core.ErrNoLight
	}
	return nil
}

// Intersect returns every intersection of ray with the world, sorted by t.
// Ties keep object order.
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, obj := range w.Objects {
		xs = append(xs, obj.Intersect(ray)...)
	}
	geometry.SortIntersections(xs)
	return xs
}

// IsShadowed reports whether any object lies between point and the light
func (w *World) IsShadowed(point core.Tuple) bool {
	light := w.mustLight()

	direction, distance := light.DirectionFrom(point)
	ray := core.NewRay(point, direction)

	hit, ok := w.Intersect(ray).Hit()
	return ok && hit.T < distance
}

// ShadeHit returns the color at a precomputed hit: surface lighting plus
// reflected and refracted contributions. remaining bounds the recursion.
func (w *World) ShadeHit(comps geometry.Computations, remaining int) core.Color {
	light := w.mustLight()
	mat := comps.Object.Material

	shadowed := w.IsShadowed(comps.OverPoint)
	surface := mat.Lighting(comps.Object, *light, comps.Point, comps.EyeV, comps.NormalV, shadowed)

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if mat.Reflective > 0 && mat.Transparency > 0 {
		reflectance := geometry.Schlick(comps)
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}

	return surface.Add(reflected).Add(refracted)
}

// ColorAt traces ray into the world. A miss is black.
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	xs := w.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return core.Black
	}
	comps := geometry.PrepareComputations(hit, ray, xs)
	return w.ShadeHit(comps, remaining)
}

// ReflectedColor traces the mirror ray from the hit, scaled by the material's reflectivity
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) core.Color {
	reflective := comps.Object.Material.Reflective
	if remaining <= 0 || reflective == 0 {
		return core.Black
	}

	ray := core.NewRay(comps.OverPoint, comps.ReflectV)
	return w.ColorAt(ray, remaining-1).Multiply(reflective)
}

// RefractedColor traces the transmitted ray through the surface using Snell's law,
// scaled by the material's transparency. Total internal reflection is black.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) core.Color {
	transparency := comps.Object.Material.Transparency
	if remaining <= 0 || transparency == 0 {
		return core.Black
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Mul(nRatio*cosI - cosT).Sub(comps.EyeV.Mul(nRatio))

	ray := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(ray, remaining-1).Multiply(transparency)
}

func (w *World) mustLight() *lights.PointLight {
	if w.Light == nil {
		panic(core.ErrNoLight)
	}
	return w.Light
}
