package render

import (
	"math"

	"github.com/taigrr/prism/pkg/scene"
)

// Point is a 2D canvas position in centered coordinates: the origin is
// the middle of the canvas and y grows upward.
type Point struct {
	X, Y float64
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{x, y}
}

// DrawLine draws a straight line between two points, walking the
// longer axis and interpolating the shorter one.
func (c *Canvas) DrawLine(p0, p1 Point, color scene.Color) {
	if math.Abs(p0.X-p1.X) > math.Abs(p0.Y-p1.Y) {
		if p0.X > p1.X {
			p0, p1 = p1, p0
		}
		x0 := int(math.Round(p0.X))
		x1 := int(math.Round(p1.X))
		ys := Interpolate(x0, p0.Y, x1, p1.Y)
		for x := x0; x <= x1; x++ {
			c.put(x, int(ys[x-x0]), color)
		}
	} else {
		if p0.Y > p1.Y {
			p0, p1 = p1, p0
		}
		y0 := int(math.Round(p0.Y))
		y1 := int(math.Round(p1.Y))
		xs := Interpolate(y0, p0.X, y1, p1.X)
		for y := y0; y <= y1; y++ {
			c.put(int(xs[y-y0]), y, color)
		}
	}
}

// DrawWireframeTriangle outlines a triangle.
func (c *Canvas) DrawWireframeTriangle(p0, p1, p2 Point, color scene.Color) {
	c.DrawLine(p0, p1, color)
	c.DrawLine(p1, p2, color)
	c.DrawLine(p2, p0, color)
}

// DrawFilledTriangle fills a triangle with a solid color by walking
// scan lines between the interpolated left and right edges.
func (c *Canvas) DrawFilledTriangle(p0, p1, p2 Point, color scene.Color) {
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}
	if p2.Y < p0.Y {
		p0, p2 = p2, p0
	}
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}

	y0 := int(math.Round(p0.Y))
	y1 := int(math.Round(p1.Y))
	y2 := int(math.Round(p2.Y))

	x02 := Interpolate(y0, p0.X, y2, p2.X)
	x012 := joinEdges(Interpolate(y0, p0.X, y1, p1.X), Interpolate(y1, p1.X, y2, p2.X))

	xLeft, xRight := x02, x012
	m := len(x02) / 2
	if x012[m] < x02[m] {
		xLeft, xRight = x012, x02
	}

	for y := y0; y <= y2; y++ {
		i := y - y0
		l := int(math.Round(xLeft[i]))
		r := int(math.Round(xRight[i]))
		for x := l; x <= r; x++ {
			c.put(x, y, color)
		}
	}
}

// DrawShadedTriangle fills a triangle modulating the color by a
// per-vertex intensity interpolated across the surface.
func (c *Canvas) DrawShadedTriangle(p0, p1, p2 Point, h0, h1, h2 float64, color scene.Color) {
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
		h0, h1 = h1, h0
	}
	if p2.Y < p0.Y {
		p0, p2 = p2, p0
		h0, h2 = h2, h0
	}
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
		h1, h2 = h2, h1
	}

	y0 := int(math.Round(p0.Y))
	y1 := int(math.Round(p1.Y))
	y2 := int(math.Round(p2.Y))

	x02 := Interpolate(y0, p0.X, y2, p2.X)
	h02 := Interpolate(y0, h0, y2, h2)
	x012 := joinEdges(Interpolate(y0, p0.X, y1, p1.X), Interpolate(y1, p1.X, y2, p2.X))
	h012 := joinEdges(Interpolate(y0, h0, y1, h1), Interpolate(y1, h1, y2, h2))

	xLeft, xRight := x02, x012
	hLeft, hRight := h02, h012
	m := len(x02) / 2
	if x012[m] < x02[m] {
		xLeft, xRight = x012, x02
		hLeft, hRight = h012, h02
	}

	for y := y0; y <= y2; y++ {
		i := y - y0
		l := int(math.Round(xLeft[i]))
		r := int(math.Round(xRight[i]))
		hs := Interpolate(l, hLeft[i], r, hRight[i])
		for x := l; x <= r; x++ {
			c.put(x, y, color.Scale(hs[x-l]))
		}
	}
}

// joinEdges concatenates the two short edges of a triangle into one
// x-per-y list matching the long edge, dropping the duplicated middle
// sample.
func joinEdges(top, bottom []float64) []float64 {
	return append(top[:len(top)-1], bottom...)
}
