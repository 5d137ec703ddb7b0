package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

var (
	approx      = cmpopts.EquateApprox(0, 1e-4)
	looseApprox = cmpopts.EquateApprox(0, 1e-3)
)

func TestNewWorld_Empty(t *testing.T) {
	w := NewWorld()
	if w.Light != nil {
		t.Errorf("Expected no light, got %v", w.Light)
	}
	if len(w.Objects) != 0 {
		t.Errorf("Expected no objects, got %d", len(w.Objects))
	}
	if err := w.Validate(); !errors.Is(err, core.ErrNoLight) {
		t.Errorf("Expected ErrNoLight, got %v", err)
	}
}

func TestNewDefaultWorld(t *testing.T) {
	w := NewDefaultWorld()

	wantLight := lights.NewPointLight(core.Point(-10, 10, -10), core.White)
	if w.Light == nil || *w.Light != wantLight {
		t.Errorf("Expected light %v, got %v", wantLight, w.Light)
	}
	if len(w.Objects) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(w.Objects))
	}

	s1 := w.Objects[0].Material
	if !s1.Color.Equals(core.NewColor(0.8, 1.0, 0.6)) || s1.Diffuse != 0.7 || s1.Specular != 0.2 {
		t.Errorf("Unexpected outer sphere material %+v", s1)
	}
	if !core.MatrixEqual(w.Objects[1].Transform(), core.Scaling(0.5, 0.5, 0.5)) {
		t.Errorf("Unexpected inner sphere transform %v", w.Objects[1].Transform())
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Expected valid world, got %v", err)
	}
}

func TestWorld_Intersect(t *testing.T) {
	w := NewDefaultWorld()
	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))

	xs := w.Intersect(ray)

	got := make([]float64, len(xs))
	for i, x := range xs {
		got[i] = x.T
	}
	if diff := cmp.Diff(got, []float64{4, 4.5, 5.5, 6}, approx); diff != "" {
		t.Errorf("Intersect mismatch (-got +want)\n%s", diff)
	}
}

func TestWorld_ShadeHit(t *testing.T) {
	t.Run("from the outside", func(t *testing.T) {
		w := NewDefaultWorld()
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		hit := geometry.NewIntersection(4, w.Objects[0])
		comps := geometry.PrepareComputations(hit, ray, geometry.Intersections{hit})

		got := w.ShadeHit(comps, DefaultRayLimit)
		if diff := cmp.Diff(got, core.NewColor(0.38066, 0.47583, 0.2855), approx); diff != "" {
			t.Errorf("ShadeHit mismatch (-got +want)\n%s", diff)
		}
	})

	t.Run("from the inside", func(t *testing.T) {
		w := NewDefaultWorld()
		w.SetLight(lights.NewPointLight(core.Point(0, 0.25, 0), core.White))
		ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))
		hit := geometry.NewIntersection(0.5, w.Objects[1])
		comps := geometry.PrepareComputations(hit, ray, geometry.Intersections{hit})

		got := w.ShadeHit(comps, DefaultRayLimit)
		if diff := cmp.Diff(got, core.NewColor(0.90498, 0.90498, 0.90498), approx); diff != "" {
			t.Errorf("ShadeHit mismatch (-got +want)\n%s", diff)
		}
	})

	t.Run("intersection in shadow", func(t *testing.T) {
		w := NewWorld()
		w.SetLight(lights.NewPointLight(core.Point(0, 0, -10), core.White))
		s1 := geometry.NewObject(geometry.NewSphere(), nil)
		s2 := geometry.NewObject(geometry.NewSphere(), nil).MustSetTransform(core.Translation(0, 0, 10))
		w.AddObject(s1, s2)

		ray := core.NewRay(core.Point(0, 0, 5), core.Vector(0, 0, 1))
		hit := geometry.NewIntersection(4, s2)
		comps := geometry.PrepareComputations(hit, ray, geometry.Intersections{hit})

		got := w.ShadeHit(comps, DefaultRayLimit)
		if diff := cmp.Diff(got, core.NewColor(0.1, 0.1, 0.1), approx); diff != "" {
			t.Errorf("ShadeHit mismatch (-got +want)\n%s", diff)
		}
	})
}

func TestWorld_ShadeHitColorsTheSurfacePoint(t *testing.T) {
	m := material.DefaultMaterial()
	m.Pattern = material.NewPattern(material.NewStripes(core.White, core.Black))
	m.Ambient = 1
	m.Diffuse = 0
	m.Specular = 0
	obj := geometry.NewObject(geometry.NewSphere(), m)

	w := NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(0, 0, -10), core.White))

	// The over point sits on the other stripe, so only the surface point gives white
	comps := geometry.Computations{
		T:         1,
		Object:    obj,
		Point:     core.Point(0.5, 0, -1),
		OverPoint: core.Point(1.5, 0, -1),
		EyeV:      core.Vector(0, 0, -1),
		NormalV:   core.Vector(0, 0, -1),
		N1:        1,
		N2:        1,
	}

	got := w.ShadeHit(comps, DefaultRayLimit)
	if diff := cmp.Diff(got, core.White, approx); diff != "" {
		t.Errorf("ShadeHit mismatch (-got +want)\n%s", diff)
	}
}

func TestWorld_ShadeHitWithoutLightPanics(t *testing.T) {
	w := NewWorld()
	s := geometry.NewObject(geometry.NewSphere(), nil)
	w.AddObject(s)

	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	hit := geometry.NewIntersection(4, s)
	comps := geometry.PrepareComputations(hit, ray, geometry.Intersections{hit})

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, core.ErrNoLight) {
			t.Errorf("Expected panic with ErrNoLight, got %v", r)
		}
	}()
	w.ShadeHit(comps, DefaultRayLimit)
}

func TestWorld_ColorAt(t *testing.T) {
	t.Run("ray misses", func(t *testing.T) {
		w := NewDefaultWorld()
		got := w.ColorAt(core.NewRay(core.Point(0, 0, -5), core.Vector(0, 1, 0)), DefaultRayLimit)
		if !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("ray hits", func(t *testing.T) {
		w := NewDefaultWorld()
		got := w.ColorAt(core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)), DefaultRayLimit)
		if diff := cmp.Diff(got, core.NewColor(0.38066, 0.47583, 0.2855), approx); diff != "" {
			t.Errorf("ColorAt mismatch (-got +want)\n%s", diff)
		}
	})

	t.Run("intersection behind the ray", func(t *testing.T) {
		w := NewDefaultWorld()
		outer := w.Objects[0]
		outer.Material.Ambient = 1
		inner := w.Objects[1]
		inner.Material.Ambient = 1

		got := w.ColorAt(core.NewRay(core.Point(0, 0, 0.75), core.Vector(0, 0, -1)), DefaultRayLimit)
		if diff := cmp.Diff(got, inner.Material.Color, approx); diff != "" {
			t.Errorf("ColorAt mismatch (-got +want)\n%s", diff)
		}
	})

	t.Run("mutually reflective surfaces terminate", func(t *testing.T) {
		w := NewWorld()
		w.SetLight(lights.NewPointLight(core.Point(0, 0, 0), core.White))

		mirror := material.DefaultMaterial()
		mirror.Reflective = 1
		lower := geometry.NewObject(geometry.NewPlane(), mirror).MustSetTransform(core.Translation(0, -1, 0))
		upper := geometry.NewObject(geometry.NewPlane(), mirror).MustSetTransform(core.Translation(0, 1, 0))
		w.AddObject(lower, upper)

		got := w.ColorAt(core.NewRay(core.Point(0, 0, 0), core.Vector(0, 1, 0)), DefaultRayLimit)
		if math.IsNaN(got.R) || math.IsInf(got.R, 0) {
			t.Errorf("Expected a finite color, got %v", got)
		}
	})
}

func TestWorld_IsShadowed(t *testing.T) {
	w := NewDefaultWorld()

	tests := []struct {
		name     string
		point    core.Tuple
		expected bool
	}{
		{"nothing collinear with point and light", core.Point(0, 10, 0), false},
		{"object between point and light", core.Point(10, -10, 10), true},
		{"object behind the light", core.Point(-20, 20, -20), false},
		{"object behind the point", core.Point(-2, 2, -2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.IsShadowed(tt.point); got != tt.expected {
				t.Errorf("IsShadowed(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

// addPlane adds a plane one unit below the origin to w
func addPlane(w *World, reflective, transparency, refractiveIndex float64) *geometry.Object {
	m := material.DefaultMaterial()
	m.Reflective = reflective
	m.Transparency = transparency
	m.RefractiveIndex = refractiveIndex
	plane := geometry.NewObject(geometry.NewPlane(), m).MustSetTransform(core.Translation(0, -1, 0))
	w.AddObject(plane)
	return plane
}

func TestWorld_ReflectedColor(t *testing.T) {
	t.Run("non-reflective material", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[1]
		shape.Material.Ambient = 1
		ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))
		hit := geometry.NewIntersection(1, shape)
		comps := geometry.PrepareComputations(hit, ray, geometry.Intersections{hit})

		if got := w.ReflectedColor(comps, DefaultRayLimit); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	w := NewDefaultWorld()
	plane := addPlane(w, 0.5, 0, 1)
	ray := core.NewRay(core.Point(0, 0, -3), core.Vector(0, -math.Sqrt2/2, math.Sqrt2/2))
	hit := geometry.NewIntersection(math.Sqrt2, plane)
	comps := geometry.PrepareComputations(hit, ray, geometry.Intersections{hit})

	t.Run("reflective material", func(t *testing.T) {
		got := w.ReflectedColor(comps, DefaultRayLimit)
		if diff := cmp.Diff(got, core.NewColor(0.19032, 0.2379, 0.14274), looseApprox); diff != "" {
			t.Errorf("ReflectedColor mismatch (-got +want)\n%s", diff)
		}
	})

	t.Run("shade hit with reflective material", func(t *testing.T) {
		got := w.ShadeHit(comps, DefaultRayLimit)
		if diff := cmp.Diff(got, core.NewColor(0.87677, 0.92436, 0.82918), looseApprox); diff != "" {
			t.Errorf("ShadeHit mismatch (-got +want)\n%s", diff)
		}
	})

	t.Run("at the maximum recursive depth", func(t *testing.T) {
		if got := w.ReflectedColor(comps, 0); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})
}

func TestWorld_RefractedColor(t *testing.T) {
	t.Run("opaque surface", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		xs := geometry.Intersections{
			geometry.NewIntersection(4, shape),
			geometry.NewIntersection(6, shape),
		}
		comps := geometry.PrepareComputations(xs[0], ray, xs)

		if got := w.RefractedColor(comps, DefaultRayLimit); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("at the maximum recursive depth", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]
		shape.Material.Transparency = 1
		shape.Material.RefractiveIndex = 1.5
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		xs := geometry.Intersections{
			geometry.NewIntersection(4, shape),
			geometry.NewIntersection(6, shape),
		}
		comps := geometry.PrepareComputations(xs[0], ray, xs)

		if got := w.RefractedColor(comps, 0); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]
		shape.Material.Transparency = 1
		shape.Material.RefractiveIndex = 1.5
		ray := core.NewRay(core.Point(0, 0, math.Sqrt2/2), core.Vector(0, 1, 0))
		xs := geometry.Intersections{
			geometry.NewIntersection(-math.Sqrt2/2, shape),
			geometry.NewIntersection(math.Sqrt2/2, shape),
		}
		// Inside the sphere, so look at the second intersection
		comps := geometry.PrepareComputations(xs[1], ray, xs)

		if got := w.RefractedColor(comps, DefaultRayLimit); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("refracted ray", func(t *testing.T) {
		w := NewDefaultWorld()
		a := w.Objects[0]
		a.Material.Ambient = 1
		a.Material.Pattern = material.NewPattern(material.PositionDebug{})
		b := w.Objects[1]
		b.Material.Transparency = 1
		b.Material.RefractiveIndex = 1.5

		ray := core.NewRay(core.Point(0, 0, 0.1), core.Vector(0, 1, 0))
		xs := geometry.Intersections{
			geometry.NewIntersection(-0.9899, a),
			geometry.NewIntersection(-0.4899, b),
			geometry.NewIntersection(0.4899, b),
			geometry.NewIntersection(0.9899, a),
		}
		comps := geometry.PrepareComputations(xs[2], ray, xs)

		got := w.RefractedColor(comps, DefaultRayLimit)
		if diff := cmp.Diff(got, core.NewColor(0, 0.99888, 0.04725), looseApprox); diff != "" {
			t.Errorf("RefractedColor mismatch (-got +want)\n%s", diff)
		}
	})
}

func TestWorld_ShadeHitTransparent(t *testing.T) {
	tests := []struct {
		name       string
		reflective float64
		expected   core.Color
	}{
		{"transparent material", 0, core.NewColor(0.93642, 0.68642, 0.68642)},
		{"reflective, transparent material", 0.5, core.NewColor(0.93391, 0.69643, 0.69243)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewDefaultWorld()
			floor := addPlane(w, tt.reflective, 0.5, 1.5)

			ballMaterial := material.DefaultMaterial()
			ballMaterial.Color = core.NewColor(1, 0, 0)
			ballMaterial.Ambient = 0.5
			ball := geometry.NewObject(geometry.NewSphere(), ballMaterial).
				MustSetTransform(core.Translation(0, -3.5, -0.5))
			w.AddObject(ball)

			ray := core.NewRay(core.Point(0, 0, -3), core.Vector(0, -math.Sqrt2/2, math.Sqrt2/2))
			xs := geometry.Intersections{geometry.NewIntersection(math.Sqrt2, floor)}
			comps := geometry.PrepareComputations(xs[0], ray, xs)

			got := w.ShadeHit(comps, DefaultRayLimit)
			if diff := cmp.Diff(got, tt.expected, looseApprox); diff != "" {
				t.Errorf("ShadeHit mismatch (-got +want)\n%s", diff)
			}
		})
	}
}
