package loaders

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// ErrSceneFile is wrapped by every error caused by the contents of a scene file
var ErrSceneFile = errors.New("invalid scene file")

// SceneFile is the TOML representation of a scene
type SceneFile struct {
	Name      string                  `toml:"name"`
	RayLimit  int                     `toml:"ray_limit"`
	Camera    CameraSpec              `toml:"camera"`
	Light     *LightSpec              `toml:"light"`
	Materials map[string]MaterialSpec `toml:"materials"`
	Objects   []ObjectSpec            `toml:"objects"`
}

// CameraSpec describes the camera. FieldOfView is in radians.
type CameraSpec struct {
	Width       int        `toml:"width"`
	Height      int        `toml:"height"`
	FieldOfView float64    `toml:"fov"`
	From        [3]float64 `toml:"from"`
	To          [3]float64 `toml:"to"`
	Up          [3]float64 `toml:"up"`
}

// LightSpec describes the point light
type LightSpec struct {
	Position  [3]float64 `toml:"position"`
	Intensity [3]float64 `toml:"intensity"`
}

// MaterialSpec describes a material. Unset fields keep DefaultMaterial values.
type MaterialSpec struct {
	Color           *[3]float64  `toml:"color"`
	Ambient         *float64     `toml:"ambient"`
	Diffuse         *float64     `toml:"diffuse"`
	Specular        *float64     `toml:"specular"`
	Shininess       *float64     `toml:"shininess"`
	Reflective      *float64     `toml:"reflective"`
	Transparency    *float64     `toml:"transparency"`
	RefractiveIndex *float64     `toml:"refractive_index"`
	Pattern         *PatternSpec `toml:"pattern"`
}

// PatternSpec describes a pattern: type is one of stripes, gradient, ring,
// checkers, solid or position
type PatternSpec struct {
	Type      string          `toml:"type"`
	A         [3]float64      `toml:"a"`
	B         [3]float64      `toml:"b"`
	Transform []TransformSpec `toml:"transform"`
}

// ObjectSpec describes one object. Material names an entry of [materials];
// objects naming the same material share it.
type ObjectSpec struct {
	Shape     string          `toml:"shape"`
	Material  string          `toml:"material"`
	Transform []TransformSpec `toml:"transform"`
}

// TransformSpec is a single transform step. Steps apply in list order.
//
//	translate [x, y, z]   scale [x, y, z] or [s]   rotate_x/rotate_y/rotate_z [radians]
//	shear [xy, xz, yx, yz, zx, zy]
type TransformSpec struct {
	Op   string    `toml:"op"`
	Args []float64 `toml:"args"`
}

// LoadSceneFile reads and parses a TOML scene file
func LoadSceneFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}

	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScene builds a scene from TOML. Keys that do not map to any field are an error.
func ParseScene(data []byte) (*scene.Scene, error) {
	var file SceneFile
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSceneFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrSceneFile, strings.Join(keys, ", "))
	}

	return file.Build()
}

// Build converts the decoded file into a scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	if f.RayLimit < 0 {
		return nil, fmt.Errorf("%w: ray_limit must not be negative, got %d", ErrSceneFile, f.RayLimit)
	}

	camera, err := f.Camera.build()
	if err != nil {
		return nil, fmt.Errorf("%w: camera: %w", ErrSceneFile, err)
	}

	world := scene.NewWorld()
	if f.Light != nil {
		world.SetLight(lights.NewPointLight(toPoint(f.Light.Position), toColor(f.Light.Intensity)))
	}

	// Materials are built once so objects naming the same material share a pointer
	materials := make(map[string]*material.Material, len(f.Materials))
	names := make([]string, 0, len(f.Materials))
	for name := range f.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := f.Materials[name]
		m, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %w", ErrSceneFile, name, err)
		}
		materials[name] = m
	}

	for i, spec := range f.Objects {
		obj, err := spec.build(materials)
		if err != nil {
			return nil, fmt.Errorf("%w: object %d: %w", ErrSceneFile, i, err)
		}
		world.AddObject(obj)
	}

	s := scene.NewScene(f.Name, world, camera)
	if f.RayLimit > 0 {
		s.RayLimit = f.RayLimit
	}
	return s, nil
}

func (c CameraSpec) build() (*geometry.Camera, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height)
	}

	fov := c.FieldOfView
	if fov == 0 {
		fov = math.Pi / 3
	}
	if fov <= 0 || fov >= math.Pi {
		return nil, fmt.Errorf("fov must be in (0, pi) radians, got %g", fov)
	}

	up := c.Up
	if up == [3]float64{} {
		up = [3]float64{0, 1, 0}
	}
	to := c.To
	if c.From == to {
		// Default to looking down -z from wherever the camera is
		to = [3]float64{c.From[0], c.From[1], c.From[2] - 1}
	}

	camera := geometry.NewCamera(c.Width, c.Height, fov)
	view := core.ViewTransform(toPoint(c.From), toPoint(to), toVector(up))
	if err := camera.SetTransform(view); err != nil {
		return nil, err
	}
	return camera, nil
}

func (m MaterialSpec) build() (*material.Material, error) {
	mat := material.DefaultMaterial()

	if m.Color != nil {
		mat.Color = toColor(*m.Color)
	}
	setIf(&mat.Ambient, m.Ambient)
	setIf(&mat.Diffuse, m.Diffuse)
	setIf(&mat.Specular, m.Specular)
	setIf(&mat.Shininess, m.Shininess)
	setIf(&mat.Reflective, m.Reflective)
	setIf(&mat.Transparency, m.Transparency)
	setIf(&mat.RefractiveIndex, m.RefractiveIndex)

	if m.Pattern != nil {
		p, err := m.Pattern.build()
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		mat.Pattern = p
	}

	if err := mat.Validate(); err != nil {
		return nil, err
	}
	return mat, nil
}

func (p PatternSpec) build() (*material.Pattern, error) {
	a, b := toColor(p.A), toColor(p.B)

	var source material.ColorSource
	switch p.Type {
	case "stripes":
		source = material.NewStripes(a, b)
	case "gradient":
		source = material.NewGradient(a, b)
	case "ring":
		source = material.NewRing(a, b)
	case "checkers":
		source = material.NewCheckers(a, b)
	case "solid":
		source = material.NewSolidColor(a)
	case "position":
		source = material.PositionDebug{}
	default:
		return nil, fmt.Errorf("unknown pattern type %q", p.Type)
	}

	m, err := buildTransform(p.Transform)
	if err != nil {
		return nil, err
	}
	pattern := material.NewPattern(source)
	if err := pattern.SetTransform(m); err != nil {
		return nil, err
	}
	return pattern, nil
}

func (o ObjectSpec) build(materials map[string]*material.Material) (*geometry.Object, error) {
	var shape geometry.Shape
	switch o.Shape {
	case "sphere":
		shape = geometry.NewSphere()
	case "plane":
		shape = geometry.NewPlane()
	case "cube":
		shape = geometry.NewCube()
	default:
		return nil, fmt.Errorf("unknown shape %q", o.Shape)
	}

	var mat *material.Material
	if o.Material != "" {
		var ok bool
		mat, ok = materials[o.Material]
		if !ok {
			return nil, fmt.Errorf("unknown material %q", o.Material)
		}
	}

	m, err := buildTransform(o.Transform)
	if err != nil {
		return nil, err
	}
	obj := geometry.NewObject(shape, mat)
	if err := obj.SetTransform(m); err != nil {
		return nil, err
	}
	return obj, nil
}

// buildTransform composes the steps so the first listed applies first
func buildTransform(steps []TransformSpec) (core.Matrix, error) {
	ms := make([]core.Matrix, 0, len(steps))
	for i, step := range steps {
		m, err := step.matrix()
		if err != nil {
			return core.Matrix{}, fmt.Errorf("transform step %d: %w", i, err)
		}
		ms = append(ms, m)
	}
	return core.Chain(ms...), nil
}

func (t TransformSpec) matrix() (core.Matrix, error) {
	args := t.Args
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d args, got %d", t.Op, n, len(args))
		}
		return nil
	}

	switch t.Op {
	case "translate":
		if err := want(3); err != nil {
			return core.Matrix{}, err
		}
		return core.Translation(args[0], args[1], args[2]), nil
	case "scale":
		if len(args) == 1 {
			return core.Scaling(args[0], args[0], args[0]), nil
		}
		if err := want(3); err != nil {
			return core.Matrix{}, err
		}
		return core.Scaling(args[0], args[1], args[2]), nil
	case "rotate_x", "rotate_y", "rotate_z":
		if err := want(1); err != nil {
			return core.Matrix{}, err
		}
		switch t.Op {
		case "rotate_x":
			return core.RotationX(args[0]), nil
		case "rotate_y":
			return core.RotationY(args[0]), nil
		default:
			return core.RotationZ(args[0]), nil
		}
	case "shear":
		if err := want(6); err != nil {
			return core.Matrix{}, err
		}
		return core.Shearing(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	default:
		return core.Matrix{}, fmt.Errorf("unknown transform op %q", t.Op)
	}
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func toPoint(v [3]float64) core.Tuple {
	return core.Point(v[0], v[1], v[2])
}

func toVector(v [3]float64) core.Tuple {
	return core.Vector(v[0], v[1], v[2])
}

func toColor(v [3]float64) core.Color {
	return core.NewColor(v[0], v[1], v[2])
}
