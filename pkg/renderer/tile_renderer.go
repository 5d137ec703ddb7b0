package renderer

import (
	"image"

	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// TileRenderer traces the camera rays of a region into a canvas
type TileRenderer struct {
	world    *scene.World
	camera   *geometry.Camera
	rayLimit int
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(world *scene.World, camera *geometry.Camera, rayLimit int) *TileRenderer {
	return &TileRenderer{
		world:    world,
		camera:   camera,
		rayLimit: rayLimit,
	}
}

// RenderTileBounds renders every pixel within bounds into canvas.
// Concurrent calls are safe as long as their bounds do not overlap.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, canvas *Canvas) RenderStats {
	stats := RenderStats{TotalTiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := tr.camera.RayForPixel(x, y)
			color := tr.world.ColorAt(ray, tr.rayLimit)
			canvas.WritePixel(x, y, color)
			stats.addPixel(color)
		}
	}

	return stats
}
