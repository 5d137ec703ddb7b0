package renderer

import (
	"image"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Number of pixels rendered
	TotalTiles       int           // Number of tiles rendered
	BlackPixels      int           // Pixels whose ray contributed no light
	LuminanceSum     float64       // Sum of pixel luminance, for averaging
	MaxLuminance     float64       // Brightest pixel before clamping
	Duration         time.Duration // Wall-clock render time (whole renders only)
	NumWorkers       int           // Workers used (whole renders only)
	RayLimit         int           // Recursion budget used
	AverageLuminance float64       // LuminanceSum / TotalPixels, set by Finalize
}

// addPixel records one rendered pixel
func (s *RenderStats) addPixel(c core.Color) {
	s.TotalPixels++
	lum := c.Luminance()
	s.LuminanceSum += lum
	s.MaxLuminance = max(s.MaxLuminance, lum)
	if c == core.Black {
		s.BlackPixels++
	}
}

// Merge folds the per-tile statistics of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalTiles += other.TotalTiles
	s.BlackPixels += other.BlackPixels
	s.LuminanceSum += other.LuminanceSum
	s.MaxLuminance = max(s.MaxLuminance, other.MaxLuminance)
}

// Finalize computes derived fields
func (s *RenderStats) Finalize() {
	if s.TotalPixels > 0 {
		s.AverageLuminance = s.LuminanceSum / float64(s.TotalPixels)
	}
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an 8-bit image
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := img.RGBAAt(x, y)
			c := core.NewColor(float64(p.R)/255, float64(p.G)/255, float64(p.B)/255)
			sum += c.Luminance()
		}
	}
	return sum / float64(count)
}
