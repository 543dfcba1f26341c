// Package render drives both rendering pipelines onto a pixel canvas:
// the ray tracer via per-pixel ray generation with supersampling, and
// the scan-line rasterizer with frustum clipping and depth buffering.
package render

import (
	"fmt"
	"image"

	"github.com/taigrr/prism/pkg/scene"
)

// Canvas owns a row-major RGB pixel buffer, 3 bytes per pixel. The
// origin for SetPixel is the top-left corner; the drawing layer and
// rasterizer use centered coordinates and convert internally.
type Canvas struct {
	width  int
	height int
	pixels []uint8
}

// NewCanvas creates a canvas filled with the background color. It
// panics when either dimension is not positive.
func NewCanvas(width, height int, background scene.Color) *Canvas {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("render: invalid canvas size %dx%d", width, height))
	}
	c := &Canvas{
		width:  width,
		height: height,
		pixels: make([]uint8, width*height*3),
	}
	c.Clear(background)
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear repaints every pixel with the given color.
func (c *Canvas) Clear(background scene.Color) {
	r, g, b := background.Clamp()
	for i := 0; i < len(c.pixels); i += 3 {
		c.pixels[i] = r
		c.pixels[i+1] = g
		c.pixels[i+2] = b
	}
}

// SetPixel writes a clamped color at (x, y). Out-of-range coordinates
// are a programmer error and panic.
func (c *Canvas) SetPixel(x, y int, color scene.Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		panic(fmt.Sprintf("render: pixel (%d, %d) outside %dx%d canvas", x, y, c.width, c.height))
	}
	c.writePixel(x, y, color)
}

// put writes a pixel in centered coordinates (origin mid-canvas, y up)
// and silently drops anything that rounds off the edge.
func (c *Canvas) put(cx, cy int, color scene.Color) {
	x := cx + c.width/2
	y := c.height/2 - cy
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.writePixel(x, y, color)
}

func (c *Canvas) writePixel(x, y int, color scene.Color) {
	r, g, b := color.Clamp()
	i := (y*c.width + x) * 3
	c.pixels[i] = r
	c.pixels[i+1] = g
	c.pixels[i+2] = b
}

// At returns the stored color at (x, y) in top-left coordinates.
func (c *Canvas) At(x, y int) scene.Color {
	i := (y*c.width + x) * 3
	return scene.RGB(c.pixels[i], c.pixels[i+1], c.pixels[i+2])
}

// Data exposes the raw RGB bytes in row-major order for handoff to an
// external image encoder.
func (c *Canvas) Data() []byte {
	return c.pixels
}

// ToImage copies the canvas into a standard Go image.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			i := (y*c.width + x) * 3
			o := img.PixOffset(x, y)
			img.Pix[o] = c.pixels[i]
			img.Pix[o+1] = c.pixels[i+1]
			img.Pix[o+2] = c.pixels[i+2]
			img.Pix[o+3] = 255
		}
	}
	return img
}
