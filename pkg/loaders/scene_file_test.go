package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

const minimalScene = `
name = "minimal"

[camera]
width = 20
height = 10
from = [0.0, 0.0, -5.0]
to = [0.0, 0.0, 0.0]

[light]
position = [-10.0, 10.0, -10.0]
intensity = [1.0, 1.0, 1.0]
`

func TestParseScene_Minimal(t *testing.T) {
	s, err := ParseScene([]byte(minimalScene))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if s.Name != "minimal" {
		t.Errorf("Expected name minimal, got %q", s.Name)
	}
	if s.Camera.HSize != 20 || s.Camera.VSize != 10 {
		t.Errorf("Expected 20x10 camera, got %dx%d", s.Camera.HSize, s.Camera.VSize)
	}
	if math.Abs(s.Camera.FieldOfView-math.Pi/3) > 1e-12 {
		t.Errorf("Expected default fov pi/3, got %v", s.Camera.FieldOfView)
	}
	if s.World.Light == nil {
		t.Fatal("Expected a light")
	}
	if diff := cmp.Diff(s.World.Light.Position, core.Point(-10, 10, -10), approx); diff != "" {
		t.Errorf("Light position mismatch (-got +want):\n%s", diff)
	}
	if len(s.World.Objects) != 0 {
		t.Errorf("Expected no objects, got %d", len(s.World.Objects))
	}
	if s.EffectiveRayLimit() != 5 {
		t.Errorf("Expected default ray limit 5, got %d", s.EffectiveRayLimit())
	}

	want := core.ViewTransform(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0))
	if diff := cmp.Diff(s.Camera.Transform(), want, approx); diff != "" {
		t.Errorf("Camera transform mismatch (-got +want):\n%s", diff)
	}
}

func TestParseScene_SharedMaterial(t *testing.T) {
	src := minimalScene + `
[materials.shiny]
color = [1.0, 0.2, 0.1]
reflective = 0.5

[materials.shiny.pattern]
type = "stripes"
a = [1.0, 1.0, 1.0]
b = [0.0, 0.0, 0.0]

[[objects]]
shape = "sphere"
material = "shiny"

[[objects]]
shape = "cube"
material = "shiny"

[[objects]]
shape = "plane"
`
	s, err := ParseScene([]byte(src))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	if len(s.World.Objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(s.World.Objects))
	}

	sphere, cube, plane := s.World.Objects[0], s.World.Objects[1], s.World.Objects[2]
	if sphere.Material != cube.Material {
		t.Error("Expected objects naming the same material to share it")
	}
	if got := sphere.Material.Reflective; got != 0.5 {
		t.Errorf("Expected reflective 0.5, got %v", got)
	}
	if got := sphere.Material.Diffuse; got != material.DefaultMaterial().Diffuse {
		t.Errorf("Expected unset diffuse to keep the default, got %v", got)
	}
	if sphere.Material.Pattern == nil {
		t.Fatal("Expected a pattern")
	}
	if got := sphere.Material.Pattern.ColorAt(core.Point(1.5, 0, 0)); !got.Equals(core.NewColor(0, 0, 0)) {
		t.Errorf("Expected black stripe at x=1.5, got %v", got)
	}

	if _, ok := sphere.Shape.(*geometry.Sphere); !ok {
		t.Errorf("Expected sphere, got %T", sphere.Shape)
	}
	if _, ok := cube.Shape.(*geometry.Cube); !ok {
		t.Errorf("Expected cube, got %T", cube.Shape)
	}
	if _, ok := plane.Shape.(*geometry.Plane); !ok {
		t.Errorf("Expected plane, got %T", plane.Shape)
	}
	if plane.Material == sphere.Material {
		t.Error("Expected an object without a material to get its own default")
	}
}

func TestParseScene_TransformOrder(t *testing.T) {
	src := minimalScene + `
[[objects]]
shape = "sphere"
transform = [
  { op = "scale", args = [2.0] },
  { op = "rotate_z", args = [0.5] },
  { op = "translate", args = [1.0, 2.0, 3.0] },
]
`
	s, err := ParseScene([]byte(src))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	want := core.Translation(1, 2, 3).Mul4(core.RotationZ(0.5)).Mul4(core.Scaling(2, 2, 2))
	if diff := cmp.Diff(s.World.Objects[0].Transform(), want, approx); diff != "" {
		t.Errorf("Transform mismatch (-got +want):\n%s", diff)
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "malformed toml",
			src:     "name = ",
			wantErr: ErrSceneFile,
		},
		{
			name:    "unknown top level key",
			src:     minimalScene + "\nexposure = 2.0\n",
			wantErr: ErrSceneFile,
		},
		{
			name:    "unknown material key",
			src:     minimalScene + "\n[materials.m]\ncolour = [1.0, 0.0, 0.0]\n",
			wantErr: ErrSceneFile,
		},
		{
			name:    "unknown shape",
			src:     minimalScene + "\n[[objects]]\nshape = \"torus\"\n",
			wantErr: ErrSceneFile,
		},
		{
			name:    "unknown material name",
			src:     minimalScene + "\n[[objects]]\nshape = \"sphere\"\nmaterial = \"missing\"\n",
			wantErr: ErrSceneFile,
		},
		{
			name:    "unknown transform op",
			src:     minimalScene + "\n[[objects]]\nshape = \"sphere\"\ntransform = [{ op = \"twist\", args = [1.0] }]\n",
			wantErr: ErrSceneFile,
		},
		{
			name:    "wrong arg count",
			src:     minimalScene + "\n[[objects]]\nshape = \"sphere\"\ntransform = [{ op = \"translate\", args = [1.0] }]\n",
			wantErr: ErrSceneFile,
		},
		{
			name:    "singular object transform",
			src:     minimalScene + "\n[[objects]]\nshape = \"sphere\"\ntransform = [{ op = \"scale\", args = [0.0, 1.0, 1.0] }]\n",
			wantErr: core.ErrSingularTransform,
		},
		{
			name:    "singular pattern transform",
			src:     minimalScene + "\n[materials.m.pattern]\ntype = \"ring\"\ntransform = [{ op = \"scale\", args = [0.0] }]\n",
			wantErr: core.ErrSingularTransform,
		},
		{
			name:    "unknown pattern",
			src:     minimalScene + "\n[materials.m.pattern]\ntype = \"marble\"\n",
			wantErr: ErrSceneFile,
		},
		{
			name:    "invalid material",
			src:     minimalScene + "\n[materials.m]\nrefractive_index = 0.0\n",
			wantErr: material.ErrInvalidMaterial,
		},
		{
			name:    "missing camera size",
			src:     "[light]\nposition = [0.0, 0.0, 0.0]\nintensity = [1.0, 1.0, 1.0]\n",
			wantErr: ErrSceneFile,
		},
		{
			name:    "negative ray limit",
			src:     "ray_limit = -1\n" + minimalScene,
			wantErr: ErrSceneFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScene([]byte(tt.src))
			if err == nil {
				t.Fatalf("Expected error, got scene %v", s)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseScene_NoLight(t *testing.T) {
	s, err := ParseScene([]byte("[camera]\nwidth = 4\nheight = 4\n"))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	if err := s.Validate(); !errors.Is(err, core.ErrNoLight) {
		t.Errorf("Expected %v, got %v", core.ErrNoLight, err)
	}
}

func TestLoadSceneFile_NameFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unnamed.toml")
	if err := os.WriteFile(path, []byte("[camera]\nwidth = 4\nheight = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if s.Name != "unnamed" {
		t.Errorf("Expected name unnamed, got %q", s.Name)
	}
}

func TestLoadSceneFile_Missing(t *testing.T) {
	_, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected %v, got %v", os.ErrNotExist, err)
	}
}

func TestLoadSceneFile_Example(t *testing.T) {
	s, err := LoadSceneFile(filepath.Join("..", "..", "scenes", "glass-on-checkers.toml"))
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected a valid scene, got %v", err)
	}
	if s.GetObjectCount() != 5 {
		t.Errorf("Expected 5 objects, got %d", s.GetObjectCount())
	}
	if s.World.Objects[3].Material != s.World.Objects[4].Material {
		t.Error("Expected the matte objects to share a material")
	}
}

func TestValidateSceneFilePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"scenes/a.toml", false},
		{"scenes/nested/b.TOML", false},
		{"", true},
		{"scenes/a.pbrt", true},
		{"scenes/../secret.toml", true},
		{"../scenes/a.toml", true},
		{"other/a.toml", true},
		{"scenes/a\x00.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidateSceneFilePath("scenes", tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSceneFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
