package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewReflectionsScene creates a room with a mirrored checker floor, a glass
// sphere with an air bubble, a mirror sphere and a patterned cube
func NewReflectionsScene(width, height int) *Scene {
	width, height = sizeOrDefault(width, height, 600, 400)

	w := NewWorld()
	w.SetLight(lights.NewPointLight(core.Point(-4.9, 4.9, -1), core.White))

	// Floor: checkers, slightly reflective
	floorMaterial := material.DefaultMaterial()
	floorMaterial.Pattern = material.NewPattern(
		material.NewCheckers(core.NewColor(0.35, 0.35, 0.35), core.NewColor(0.65, 0.65, 0.65)),
	).MustSetTransform(core.RotationY(0.31415))
	floorMaterial.Specular = 0
	floorMaterial.Reflective = 0.4
	floor := geometry.NewObject(geometry.NewPlane(), floorMaterial)

	ceilingMaterial := material.DefaultMaterial()
	ceilingMaterial.Color = core.NewColor(0.8, 0.8, 0.8)
	ceilingMaterial.Ambient = 0.3
	ceilingMaterial.Specular = 0
	ceiling := geometry.NewObject(geometry.NewPlane(), ceilingMaterial).
		MustSetTransform(core.Translation(0, 5, 0))

	// All four walls share one striped material
	wallMaterial := material.DefaultMaterial()
	wallMaterial.Pattern = material.NewPattern(
		material.NewStripes(core.NewColor(0.45, 0.45, 0.45), core.NewColor(0.55, 0.55, 0.55)),
	).MustSetTransform(core.Chain(core.Scaling(0.25, 0.25, 0.25), core.RotationY(math.Pi/2)))
	wallMaterial.Ambient = 0
	wallMaterial.Diffuse = 0.4
	wallMaterial.Specular = 0
	wallMaterial.Reflective = 0.3

	wallTransforms := []core.Matrix{
		core.Chain(core.RotationZ(math.Pi/2), core.Translation(5, 0, 0)),
		core.Chain(core.RotationZ(math.Pi/2), core.Translation(-5, 0, 0)),
		core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, 5)),
		core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, -5)),
	}
	for _, m := range wallTransforms {
		w.AddObject(geometry.NewObject(geometry.NewPlane(), wallMaterial).MustSetTransform(m))
	}

	// Glass sphere with a hollow air bubble inside
	glass := material.Glass()
	glass.Color = core.NewColor(0.1, 0.1, 0.1)
	glass.Ambient = 0
	glass.Diffuse = 0.1
	glass.Specular = 1
	glass.Shininess = 300
	glass.Reflective = 0.9
	glassSphere := geometry.NewObject(geometry.NewSphere(), glass).
		MustSetTransform(core.Translation(0.6, 1, 0.6))

	bubble := material.Glass()
	bubble.Color = core.Black
	bubble.Ambient = 0
	bubble.Diffuse = 0
	bubble.Specular = 1
	bubble.Shininess = 300
	bubble.Reflective = 0.9
	bubble.RefractiveIndex = material.RefractiveAir
	bubbleSphere := geometry.NewObject(geometry.NewSphere(), bubble).
		MustSetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(0.6, 1, 0.6)))

	mirror := material.DefaultMaterial()
	mirror.Color = core.NewColor(0.2, 0.2, 0.25)
	mirror.Diffuse = 0.2
	mirror.Specular = 1
	mirror.Shininess = 300
	mirror.Reflective = 0.8
	mirrorSphere := geometry.NewObject(geometry.NewSphere(), mirror).
		MustSetTransform(core.Chain(core.Scaling(0.7, 0.7, 0.7), core.Translation(-1.6, 0.7, 1.8)))

	cubeMaterial := material.DefaultMaterial()
	cubeMaterial.Pattern = material.NewPattern(
		material.NewRing(core.NewColor(0.9, 0.3, 0.2), core.NewColor(0.95, 0.85, 0.4)),
	).MustSetTransform(core.Scaling(0.2, 0.2, 0.2))
	cubeMaterial.Diffuse = 0.8
	cubeMaterial.Specular = 0.2
	cube := geometry.NewObject(geometry.NewCube(), cubeMaterial).
		MustSetTransform(core.Chain(
			core.Scaling(0.5, 0.5, 0.5),
			core.RotationY(math.Pi/5),
			core.Translation(1.8, 0.5, -1.2),
		))

	gradientMaterial := material.DefaultMaterial()
	gradientMaterial.Pattern = material.NewPattern(
		material.NewGradient(core.NewColor(0.2, 0.4, 0.9), core.NewColor(0.9, 0.2, 0.6)),
	).MustSetTransform(core.Chain(core.Scaling(2, 1, 1), core.Translation(-1, 0, 0)))
	gradientSphere := geometry.NewObject(geometry.NewSphere(), gradientMaterial).
		MustSetTransform(core.Chain(core.Scaling(0.4, 0.4, 0.4), core.Translation(-0.4, 0.4, -1.6)))

	w.AddObject(floor, ceiling, glassSphere, bubbleSphere, mirrorSphere, cube, gradientSphere)

	camera := geometry.NewCamera(width, height, 1.152).MustSetTransform(
		core.ViewTransform(core.Point(-2.6, 1.5, -3.9), core.Point(-0.6, 1, -0.8), core.Vector(0, 1, 0)),
	)

	return NewScene("reflections", w, camera)
}
