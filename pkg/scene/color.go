// Package scene provides the scene object model shared by both
// rendering pipelines: hit-testable objects, lights with shadow
// testing, flat-shaded models for the rasterizer, and the recursive
// ray tracer.
package scene

import "math"

// Color is an RGB color with float32 channels. Channels are free to
// leave [0, 255] during accumulation and are only clamped at pack time.
type Color struct {
	R, G, B float32
}

// Convenience colors.
var (
	Black = Color{}
	White = Color{255, 255, 255}
	Red   = Color{R: 255}
	Green = Color{G: 255}
	Blue  = Color{B: 255}
)

// RGB creates a color from byte channel values.
func RGB(r, g, b uint8) Color {
	return Color{float32(r), float32(g), float32(b)}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	f := float32(s)
	return Color{c.R * f, c.G * f, c.B * f}
}

// Clamp packs the color into bytes: round half away from zero, then
// clamp to [0, 255].
func (c Color) Clamp() (r, g, b uint8) {
	return clampChannel(c.R), clampChannel(c.G), clampChannel(c.B)
}

func clampChannel(v float32) uint8 {
	return uint8(math.Min(math.Max(math.Round(float64(v)), 0), 255))
}
