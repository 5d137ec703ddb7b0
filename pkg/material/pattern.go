package material

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ObjectSpace converts world-space points into an object's local space
type ObjectSpace interface {
	WorldToObject(point core.Tuple) core.Tuple
}

// Pattern places a ColorSource in its own coordinate space, relative to the object it is painted on
type Pattern struct {
	Source    ColorSource
	transform core.Matrix
	inverse   core.Matrix
}

// NewPattern creates a new pattern with the identity transform
func NewPattern(source ColorSource) *Pattern {
	return &Pattern{
		Source:    source,
		transform: core.Identity(),
		inverse:   core.Identity(),
	}
}

// SetTransform sets the object-to-pattern transform. Singular matrices are rejected.
func (p *Pattern) SetTransform(m core.Matrix) error {
	inv, err := core.Inverse(m)
	if err != nil {
		return fmt.Errorf("pattern transform: %w", err)
	}
	p.transform = m
	p.inverse = inv
	return nil
}

// MustSetTransform is like SetTransform but panics on a singular matrix.
// Intended for scenes built in code.
func (p *Pattern) MustSetTransform(m core.Matrix) *Pattern {
	if err := p.SetTransform(m); err != nil {
		panic(err)
	}
	return p
}

// Transform returns the current pattern transform
func (p *Pattern) Transform() core.Matrix {
	return p.transform
}

// ColorAt evaluates the pattern at a point in pattern space
func (p *Pattern) ColorAt(patternPoint core.Tuple) core.Color {
	return p.Source.Evaluate(patternPoint)
}

// ColorAtObject evaluates the pattern at a world-space point on obj.
// A nil obj means the point is already in object space.
func (p *Pattern) ColorAtObject(obj ObjectSpace, worldPoint core.Tuple) core.Color {
	objectPoint := worldPoint
	if obj != nil {
		objectPoint = obj.WorldToObject(worldPoint)
	}
	return p.ColorAt(p.inverse.Mul4x1(objectPoint))
}
