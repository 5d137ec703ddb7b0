package lights

import "github.com/df07/go-phong-raytracer/pkg/core"

// PointLight is a light source with no size at a single position in space
type PointLight struct {
	Position  core.Tuple // World-space position (W=1)
	Intensity core.Color // Color and brightness
}

// NewPointLight creates a new point light
func NewPointLight(position core.Tuple, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit vector from point toward the light and the distance to it
func (l PointLight) DirectionFrom(point core.Tuple) (core.Tuple, float64) {
	v := l.Position.Sub(point)
	distance := v.Len()
	return core.Normalize(v), distance
}
