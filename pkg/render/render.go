package render

import (
	"math"
	"sync"

	"github.com/taigrr/prism/pkg/scene"
)

// Render ray-traces the scene onto the canvas. depth bounds the
// recursion of reflection and refraction rays; samples is the
// supersampling grid edge, so each pixel averages samples*samples
// traces.
func Render(c *Canvas, s *scene.Scene, depth, samples int) {
	for x := 0; x < c.width; x++ {
		renderColumn(c, s, x, depth, samples)
	}
}

// RenderParallel splits the canvas between workers by column modulo
// the worker count. Columns owned by different workers never share a
// pixel, so the writes need no lock; the scene is read-only for the
// duration. The call returns once every worker has finished.
func RenderParallel(c *Canvas, s *scene.Scene, workers, depth, samples int) {
	if workers <= 1 {
		Render(c, s, depth, samples)
		return
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for x := w; x < c.width; x += workers {
				renderColumn(c, s, x, depth, samples)
			}
		}(w)
	}
	wg.Wait()
}

func renderColumn(c *Canvas, s *scene.Scene, x, depth, samples int) {
	for y := 0; y < c.height; y++ {
		c.writePixel(x, y, superSample(c, s, x, y, depth, samples))
	}
}

// superSample traces a fixed n-by-n grid of sub-pixel rays, treating
// the canvas as n times larger in both directions, and averages the
// results.
func superSample(c *Canvas, s *scene.Scene, x, y, depth, n int) scene.Color {
	if n < 1 {
		n = 1
	}
	color := scene.Black
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ray := s.CanvasToViewport(float64(x*n+i), float64(y*n+j), c.width*n, c.height*n)
			color = color.Add(s.TraceRay(ray, scene.AirRefractionIndex, 1, math.Inf(1), depth))
		}
	}
	return color.Scale(1 / float64(n*n))
}
