package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewDefaultScene creates the default world viewed head-on
func NewDefaultScene(width, height int) *Scene {
	width, height = sizeOrDefault(width, height, 400, 400)

	camera := geometry.NewCamera(width, height, math.Pi/3).MustSetTransform(
		core.ViewTransform(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0)),
	)

	return NewScene("default", NewDefaultWorld(), camera)
}

// NewLitSphereScene creates a single Phong-lit sphere against black
func NewLitSphereScene(width, height int) *Scene {
	width, height = sizeOrDefault(width, height, 500, 500)

	m := material.DefaultMaterial()
	m.Color = core.NewColor(0.443, 0.502, 0.725)
	sphere := geometry.NewObject(geometry.NewSphere(), m)

	w := NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))
	w.AddObject(sphere)

	camera := geometry.NewCamera(width, height, math.Pi/4).MustSetTransform(
		core.ViewTransform(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0)),
	)

	return NewScene("lit-sphere", w, camera)
}

// NewThreeSpheresScene creates three colored spheres on a striped floor
func NewThreeSpheresScene(width, height int) *Scene {
	width, height = sizeOrDefault(width, height, 600, 300)

	floorMaterial := material.DefaultMaterial()
	floorMaterial.Color = core.NewColor(1, 0.9, 0.9)
	floorMaterial.Specular = 0
	floorMaterial.Pattern = material.NewPattern(material.NewStripes(core.NewColor(1, 1, 1), core.NewColor(0.7, 0.7, 0.7)))
	floor := geometry.NewObject(geometry.NewPlane(), floorMaterial).
		MustSetTransform(core.Scaling(10, 1, 10))

	middle := geometry.NewObject(geometry.NewSphere(), sphereMaterial(core.NewColor(0.1, 1, 0.5))).
		MustSetTransform(core.Translation(-0.5, 1, 0.5))

	right := geometry.NewObject(geometry.NewSphere(), sphereMaterial(core.NewColor(0.5, 1, 0.1))).
		MustSetTransform(core.Chain(
			core.Scaling(0.5, 0.5, 0.5),
			core.Translation(1.5, 0.5, -0.5),
		))

	left := geometry.NewObject(geometry.NewSphere(), sphereMaterial(core.NewColor(1, 0.8, 0.1))).
		MustSetTransform(core.Chain(
			core.Scaling(0.33, 0.33, 0.33),
			core.Translation(-1.5, 0.33, -0.75),
		))

	w := NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))
	w.AddObject(floor, middle, right, left)

	camera := geometry.NewCamera(width, height, math.Pi/3).MustSetTransform(
		core.ViewTransform(core.Point(0, 1.5, -5), core.Point(0, 1, 0), core.Vector(0, 1, 0)),
	)

	return NewScene("three-spheres", w, camera)
}

func sphereMaterial(color core.Color) *material.Material {
	m := material.DefaultMaterial()
	m.Color = color
	m.Diffuse = 0.7
	m.Specular = 0.3
	return m
}

func sizeOrDefault(width, height, defaultWidth, defaultHeight int) (int, int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}
