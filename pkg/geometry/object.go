package geometry

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Object places a Shape in the world with a transform and a material.
// Objects are compared by pointer; ID is for logs and diagnostics only.
type Object struct {
	ID       uuid.UUID
	Shape    Shape
	Material *material.Material // May be shared with other objects

	transform    core.Matrix
	inverse      core.Matrix
	normalMatrix core.Matrix // Transpose of inverse, for normals
}

// NewObject creates a new object with the identity transform.
// A nil material gets DefaultMaterial.
func NewObject(shape Shape, mat *material.Material) *Object {
	if mat == nil {
		mat = material.DefaultMaterial()
	}
	return &Object{
		ID:           uuid.New(),
		Shape:        shape,
		Material:     mat,
		transform:    core.Identity(),
		inverse:      core.Identity(),
		normalMatrix: core.Identity(),
	}
}

// NewGlassSphere creates a unit sphere with its own glass material
func NewGlassSphere() *Object {
	return NewObject(NewSphere(), material.Glass())
}

// SetTransform sets the object-to-world transform. Singular matrices are
// rejected and the previous transform is kept.
func (o *Object) SetTransform(m core.Matrix) error {
	inv, err := core.Inverse(m)
	if err != nil {
		return fmt.Errorf("object %s: %w", o.ID, err)
	}
	o.transform = m
	o.inverse = inv
	o.normalMatrix = inv.Transpose()
	return nil
}

// MustSetTransform is like SetTransform but panics on a singular matrix.
// Returns the object so scene builders can chain it.
func (o *Object) MustSetTransform(m core.Matrix) *Object {
	if err := o.SetTransform(m); err != nil {
		panic(err)
	}
	return o
}

// Transform returns the object-to-world transform
func (o *Object) Transform() core.Matrix {
	return o.transform
}

// Intersect transforms a world-space ray into object space and intersects the shape
func (o *Object) Intersect(ray core.Ray) Intersections {
	localRay := ray.Transform(o.inverse)
	ts := o.Shape.LocalIntersect(localRay)
	if len(ts) == 0 {
		return nil
	}

	xs := make(Intersections, len(ts))
	for i, t := range ts {
		xs[i] = NewIntersection(t, o)
	}
	return xs
}

// NormalAt returns the unit world-space normal at a world-space point on the surface
func (o *Object) NormalAt(worldPoint core.Tuple) core.Tuple {
	localPoint := o.inverse.Mul4x1(worldPoint)
	localNormal := o.Shape.LocalNormalAt(localPoint)
	worldNormal := o.normalMatrix.Mul4x1(localNormal)
	// The transpose of a translation leaks into W
	worldNormal[3] = 0
	return core.Normalize(worldNormal)
}

// WorldToObject converts a world-space point to object space
func (o *Object) WorldToObject(point core.Tuple) core.Tuple {
	return o.inverse.Mul4x1(point)
}

// String identifies the object in logs
func (o *Object) String() string {
	return fmt.Sprintf("Object %s (%T)", o.ID, o.Shape)
}
