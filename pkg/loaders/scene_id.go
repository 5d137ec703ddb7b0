package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// LoadScene resolves a scene ID as listed by scene.ListAllScenes. Built-in IDs
// are built directly; "file:<name>" loads <dir>/<name>.toml. Positive width
// and height override the scene's image size.
func LoadScene(id, dir string, width, height int) (*scene.Scene, error) {
	name, isFile := strings.CutPrefix(id, scene.TypeFile+":")
	if !isFile {
		return scene.NewBuiltinScene(id, width, height)
	}

	path := filepath.Join(dir, name+".toml")
	if err := ValidateSceneFilePath(dir, path); err != nil {
		return nil, fmt.Errorf("scene %q: %w", id, err)
	}
	s, err := LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	if err := ResizeCamera(s, width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// ResizeCamera replaces the scene camera with one of the requested size that
// keeps the field of view and view transform. Non-positive sizes keep the
// current value.
func ResizeCamera(s *scene.Scene, width, height int) error {
	if width <= 0 && height <= 0 {
		return nil
	}
	old := s.Camera
	if width <= 0 {
		width = old.HSize
	}
	if height <= 0 {
		height = old.VSize
	}

	camera := geometry.NewCamera(width, height, old.FieldOfView)
	if err := camera.SetTransform(old.Transform()); err != nil {
		return err
	}
	s.Camera = camera
	return nil
}
