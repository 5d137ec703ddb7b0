package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	RayLimit   int // Reflection/refraction recursion budget (0 = scene's limit)
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		RayLimit:   0, // Use the scene's limit
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Completed tiles so far, including this one (1-based)
	TotalTiles int // Total number of tiles in the image
}

// Raytracer renders a scene in parallel tiles
type Raytracer struct {
	scene      *scene.Scene
	config     Config
	workerPool *WorkerPool
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	defaults := DefaultConfig()
	if config.TileSize <= 0 {
		config.TileSize = defaults.TileSize
	}
	if config.RayLimit <= 0 {
		config.RayLimit = s.EffectiveRayLimit()
	}
	if logger == nil {
		logger = nopLogger{}
	}

	return &Raytracer{
		scene:      s,
		config:     config,
		workerPool: NewWorkerPool(config.NumWorkers),
		logger:     logger,
	}
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render traces every pixel of the scene camera. tileCallback, if not nil,
// is called once per finished tile on the calling goroutine.
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*Canvas, RenderStats, error) {
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	camera := rt.scene.Camera
	canvas := NewCanvas(camera.HSize, camera.VSize)
	tiles := NewTileGrid(camera.HSize, camera.VSize, rt.config.TileSize)
	tileRenderer := NewTileRenderer(rt.scene.World, camera, rt.config.RayLimit)

	rt.logger.Printf("Rendering %q: %dx%d, %d objects, %d tiles, %d workers, ray limit %d\n",
		rt.scene.Name, camera.HSize, camera.VSize, rt.scene.GetObjectCount(),
		len(tiles), rt.workerPool.GetNumWorkers(), rt.config.RayLimit)

	start := time.Now()
	stats := RenderStats{
		NumWorkers: rt.workerPool.GetNumWorkers(),
		RayLimit:   rt.config.RayLimit,
	}
	completed := 0

	render := func(tile *Tile) RenderStats {
		// Tiles never overlap, so workers write disjoint canvas slots
		return tileRenderer.RenderTileBounds(tile.Bounds, canvas)
	}

	err := rt.workerPool.Process(ctx, tiles, render, func(result TileResult) {
		completed++
		stats.Merge(result.Stats)

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:      result.Tile.Bounds.Min.X / rt.config.TileSize,
				TileY:      result.Tile.Bounds.Min.Y / rt.config.TileSize,
				Bounds:     result.Tile.Bounds,
				TileImage:  canvas.SubImage(result.Tile.Bounds),
				TileNumber: completed,
				TotalTiles: len(tiles),
			})
		}
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render %q: %w", rt.scene.Name, err)
	}

	stats.Duration = time.Since(start)
	stats.Finalize()

	rt.logger.Printf("Rendered %q in %v (average luminance %.4f)\n",
		rt.scene.Name, stats.Duration, stats.AverageLuminance)

	return canvas, stats, nil
}

// Render renders world through camera with the default configuration
func Render(camera *geometry.Camera, world *scene.World) (*Canvas, error) {
	s := scene.NewScene("render", world, camera)
	canvas, _, err := NewRaytracer(s, DefaultConfig(), nil).Render(context.Background(), nil)
	return canvas, err
}
