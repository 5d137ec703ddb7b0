package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

const scenesDir = "scenes"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene id, built-in or file:<name> (see -list)")
	sceneFile := flag.String("file", "", "TOML scene file to render instead of a built-in scene")
	output := flag.String("out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	format := flag.String("format", "png", "Output format: 'png' or 'ppm'")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	tileSize := flag.Int("tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	rayLimit := flag.Int("raylimit", 0, "Reflection/refraction recursion limit (0 = scene default)")
	list := flag.Bool("list", false, "List available scenes and exit")
	flag.Parse()
	defer glog.Flush()

	if *list {
		if err := listScenes(os.Stdout, scenesDir); err != nil {
			glog.Exitf("Error listing scenes: %v", err)
		}
		return
	}

	if *format != "png" && *format != "ppm" {
		glog.Exitf("Unknown format %q: use 'png' or 'ppm'", *format)
	}

	s, err := createScene(*sceneType, *sceneFile, *width, *height)
	if err != nil {
		glog.Exitf("Error creating scene: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config := renderer.Config{
		RayLimit:   *rayLimit,
		TileSize:   *tileSize,
		NumWorkers: *workers,
	}
	raytracer := renderer.NewRaytracer(s, config, renderer.NewDefaultLogger())

	fmt.Printf("Rendering %s (%dx%d)...\n", s.Name, s.Camera.HSize, s.Camera.VSize)
	canvas, stats, err := raytracer.Render(ctx, func(tile renderer.TileCompletionResult) {
		glog.V(1).Infof("Tile %d/%d done (%d,%d)", tile.TileNumber, tile.TotalTiles, tile.TileX, tile.TileY)
	})
	if err != nil {
		glog.Exitf("Render failed: %v", err)
	}
	fmt.Printf("Render completed in %v (%d workers, %d tiles, ray limit %d)\n",
		stats.Duration.Round(time.Millisecond), stats.NumWorkers, stats.TotalTiles, stats.RayLimit)

	filename := *output
	if filename == "" {
		filename = defaultOutputPath(s.Name, *format, time.Now())
	}
	if err := saveCanvas(canvas, filename, *format); err != nil {
		glog.Exitf("Error saving render: %v", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene builds the scene to render. A scene file takes precedence over
// a scene id; width and height override the scene's size when positive.
func createScene(sceneType, sceneFile string, width, height int) (*scene.Scene, error) {
	if sceneFile != "" {
		s, err := loaders.LoadSceneFile(sceneFile)
		if err != nil {
			return nil, err
		}
		if err := loaders.ResizeCamera(s, width, height); err != nil {
			return nil, err
		}
		return s, nil
	}

	if sceneType == "" {
		return nil, errors.New("scene type cannot be empty")
	}
	return loaders.LoadScene(sceneType, scenesDir, width, height)
}

func defaultOutputPath(sceneName, format string, now time.Time) string {
	dir := strings.ReplaceAll(sceneName, string(filepath.Separator), "_")
	if dir == "" {
		dir = "scene"
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.%s", timestamp, format))
}

func saveCanvas(canvas *renderer.Canvas, filename, format string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if format == "ppm" {
		err = canvas.WritePPM(file)
	} else {
		err = canvas.WritePNG(file)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}

func listScenes(w io.Writer, dir string) error {
	response, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}

	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
		}
	}
	return nil
}
