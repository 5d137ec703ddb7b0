package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ppmMaxLineLength is the longest line a PPM writer may emit
const ppmMaxLineLength = 70

// Canvas is a rectangular grid of linear colors, row-major with (0, 0) at the top left
type Canvas struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewCanvas creates a new canvas with every pixel black
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

// WritePixel sets the pixel at (x, y). Writes outside the canvas are ignored.
func (c *Canvas) WritePixel(x, y int, col core.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.pixels[y*c.Width+x] = col
}

// PixelAt returns the pixel at (x, y), or black outside the canvas
func (c *Canvas) PixelAt(x, y int) core.Color {
	if !c.inBounds(x, y) {
		return core.Black
	}
	return c.pixels[y*c.Width+x]
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// WritePPM writes the canvas as a plain (P3) PPM with maximum value 255.
// Components are clamped and rounded; no line exceeds 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	line := make([]byte, 0, ppmMaxLineLength)
	flush := func() {
		line = append(line, '\n')
		bw.Write(line)
		line = line[:0]
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.PixelAt(x, y)
			for _, component := range [3]float64{p.R, p.G, p.B} {
				value := strconv.Itoa(int(toByte(component)))
				if len(line) > 0 && len(line)+1+len(value) > ppmMaxLineLength {
					flush()
				}
				if len(line) > 0 {
					line = append(line, ' ')
				}
				line = append(line, value...)
			}
		}
		// Each row starts on a new line
		flush()
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ppm body: %w", err)
	}
	return nil
}

// ToImage converts the canvas to an 8-bit RGBA image without gamma correction
func (c *Canvas) ToImage() *image.RGBA {
	return c.SubImage(image.Rect(0, 0, c.Width, c.Height))
}

// SubImage converts the pixels within bounds to an image whose origin is bounds.Min
func (c *Canvas) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, c.Width, c.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, colorToRGBA(c.PixelAt(x, y)))
		}
	}
	return img
}

// WritePNG encodes the canvas as PNG
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// colorToRGBA converts a linear color to RGBA with clamping
func colorToRGBA(col core.Color) color.RGBA {
	return color.RGBA{
		R: toByte(col.R),
		G: toByte(col.G),
		B: toByte(col.B),
		A: 255,
	}
}

// toByte clamps v to [0, 1] and scales it to [0, 255], rounding half up.
// NaN maps to 0.
func toByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = max(0, min(1, v))
	return uint8(math.Round(v * 255))
}
