package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// DefaultRayLimit is the recursion budget for reflection and refraction
const DefaultRayLimit = 5

// ErrInvalidScene is returned by Validate for scenes that cannot be rendered
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name     string
	World    *World
	Camera   *geometry.Camera
	RayLimit int // Recursion budget; 0 means DefaultRayLimit
}

// NewScene creates a new scene with the default ray limit
func NewScene(name string, world *World, camera *geometry.Camera) *Scene {
	return &Scene{
		Name:     name,
		World:    world,
		Camera:   camera,
		RayLimit: DefaultRayLimit,
	}
}

// EffectiveRayLimit returns RayLimit, or DefaultRayLimit when unset
func (s *Scene) EffectiveRayLimit() int {
	if s.RayLimit <= 0 {
		return DefaultRayLimit
	}
	return s.RayLimit
}

// Validate checks that the scene is complete
func (s *Scene) Validate() error {
	if s.World == nil {
		return fmt.Errorf("%w: %q has no world", ErrInvalidScene, s.Name)
	}
	if s.Camera == nil {
		return fmt.Errorf("%w: %q has no camera", ErrInvalidScene, s.Name)
	}
	if s.Camera.HSize <= 0 || s.Camera.VSize <= 0 {
		return fmt.Errorf("%w: %q camera is %dx%d", ErrInvalidScene, s.Name, s.Camera.HSize, s.Camera.VSize)
	}
	if err := s.World.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// GetObjectCount returns the number of objects in the scene
func (s *Scene) GetObjectCount() int {
	if s.World == nil {
		return 0
	}
	return len(s.World.Objects)
}
