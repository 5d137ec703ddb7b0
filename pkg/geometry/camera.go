package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Camera maps a pixel raster onto a canvas one unit in front of the eye
type Camera struct {
	HSize       int     // Horizontal size in pixels
	VSize       int     // Vertical size in pixels
	FieldOfView float64 // Radians
	HalfWidth   float64 // Half the canvas width in world units
	HalfHeight  float64 // Half the canvas height in world units
	PixelSize   float64 // World units per pixel

	transform core.Matrix // View transform (world to camera)
	inverse   core.Matrix
}

// NewCamera creates a new camera with the identity view transform
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.HalfWidth = halfView
		c.HalfHeight = halfView / aspect
	} else {
		c.HalfWidth = halfView * aspect
		c.HalfHeight = halfView
	}
	c.PixelSize = (c.HalfWidth * 2) / float64(hsize)

	return c
}

// SetTransform sets the view transform. Singular matrices are rejected.
func (c *Camera) SetTransform(m core.Matrix) error {
	inv, err := core.Inverse(m)
	if err != nil {
		return fmt.Errorf("camera transform: %w", err)
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// MustSetTransform is like SetTransform but panics on a singular matrix
func (c *Camera) MustSetTransform(m core.Matrix) *Camera {
	if err := c.SetTransform(m); err != nil {
		panic(err)
	}
	return c
}

// Transform returns the view transform
func (c *Camera) Transform() core.Matrix {
	return c.transform
}

// RayForPixel returns the world-space ray through the center of pixel (px, py).
// (0, 0) is the top-left corner.
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.PixelSize
	yOffset := (float64(py) + 0.5) * c.PixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.HalfWidth - xOffset
	worldY := c.HalfHeight - yOffset

	pixel := c.inverse.Mul4x1(core.Point(worldX, worldY, -1))
	origin := c.inverse.Mul4x1(core.Point(0, 0, 0))
	direction := core.Normalize(pixel.Sub(origin))

	return core.NewRay(origin, direction)
}
