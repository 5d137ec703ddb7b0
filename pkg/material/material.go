package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// ErrInvalidMaterial is returned by Validate for out-of-range coefficients
var ErrInvalidMaterial = errors.New("invalid material")

// Refractive indices of common media
const (
	RefractiveVacuum  = 1.0
	RefractiveAir     = 1.00029
	RefractiveWater   = 1.333
	RefractiveGlass   = 1.5
	RefractiveDiamond = 2.417
)

// Material holds the Phong surface attributes plus reflection and refraction controls.
// Materials are plain values; objects hold a pointer so one material can be shared.
type Material struct {
	Color           core.Color
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64
	Pattern         *Pattern // Overrides Color when set
}

// DefaultMaterial creates a new white, opaque, non-reflective material
func DefaultMaterial() *Material {
	return &Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200.0,
		Reflective:      0.0,
		Transparency:    0.0,
		RefractiveIndex: RefractiveVacuum,
	}
}

// Glass creates a new fully transparent material with the refractive index of glass
func Glass() *Material {
	m := DefaultMaterial()
	m.Transparency = 1.0
	m.RefractiveIndex = RefractiveGlass
	return m
}

// Validate checks that the coefficients are usable for shading
func (m *Material) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"shininess", m.Shininess},
		{"reflective", m.Reflective},
		{"transparency", m.Transparency},
	}
	for _, c := range coefficients {
		if c.value < 0 || math.IsNaN(c.value) {
			return fmt.Errorf("%w: %s is %g", ErrInvalidMaterial, c.name, c.value)
		}
	}
	if m.RefractiveIndex <= 0 || math.IsNaN(m.RefractiveIndex) {
		return fmt.Errorf("%w: refractive index is %g", ErrInvalidMaterial, m.RefractiveIndex)
	}
	return nil
}

// ColorAt returns the surface color at a world-space point on obj
func (m *Material) ColorAt(obj ObjectSpace, worldPoint core.Tuple) core.Color {
	if m.Pattern != nil {
		return m.Pattern.ColorAtObject(obj, worldPoint)
	}
	return m.Color
}

// Lighting computes the Phong color at point for a single light.
// eye and normal must be unit vectors; in shadow only the ambient term remains.
func (m *Material) Lighting(obj ObjectSpace, light lights.PointLight, point, eye, normal core.Tuple, inShadow bool) core.Color {
	effective := m.ColorAt(obj, point).MultiplyColor(light.Intensity)
	ambient := effective.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	toLight, _ := light.DirectionFrom(point)

	// cosine of the angle between the light vector and the normal;
	// zero or negative means the light is level with or behind the surface
	lightDotNormal := toLight.Dot(normal)
	if lightDotNormal <= 0 {
		return ambient
	}
	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	// cosine of the angle between the reflection vector and the eye;
	// negative means the light reflects away from the eye
	reflected := core.Reflect(toLight.Mul(-1), normal)
	reflectDotEye := reflected.Dot(eye)
	if reflectDotEye <= 0 {
		return ambient.Add(diffuse)
	}
	factor := math.Pow(reflectDotEye, m.Shininess)
	specular := light.Intensity.Multiply(m.Specular * factor)

	return ambient.Add(diffuse).Add(specular)
}
