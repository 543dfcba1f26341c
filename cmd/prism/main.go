// prism - Software 3D renderer
//
// Two rendering pipelines over the same scene model:
//
//	trace   - recursive ray tracer with reflection, refraction and
//	          sphere CSG, rendered in parallel to a PNG
//	raster  - scan-line rasterizer with frustum clipping and depth
//	          buffering, rendered to a PNG
//	view    - interactive terminal viewer driven by the rasterizer
package main

import (
	"context"
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/prism/pkg/geom"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

func main() {
	root := &cobra.Command{
		Use:   "prism",
		Short: "Software 3D renderer: ray tracer and scan-line rasterizer",
	}
	root.AddCommand(traceCommand(), rasterCommand(), viewCommand())

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

func traceCommand() *cobra.Command {
	var (
		output  string
		size    int
		workers int
		depth   int
		samples int
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Ray trace the demo scene to a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			canvas := render.NewCanvas(size, size, scene.Black)
			render.RenderParallel(canvas, traceDemoScene(), workers, depth, samples)
			return writePNG(canvas, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "trace.png", "Output PNG path")
	cmd.Flags().IntVar(&size, "size", 600, "Canvas width and height in pixels")
	cmd.Flags().IntVar(&workers, "workers", 3, "Parallel render workers")
	cmd.Flags().IntVar(&depth, "depth", 3, "Reflection recursion depth")
	cmd.Flags().IntVar(&samples, "samples", 3, "Supersampling grid size per pixel")
	return cmd
}

func rasterCommand() *cobra.Command {
	var (
		output string
		size   int
		mode   string
	)
	cmd := &cobra.Command{
		Use:   "raster [model.glb]",
		Short: "Rasterize a model, or the demo cubes, to a PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shading, err := parseMode(mode)
			if err != nil {
				return err
			}

			var s *scene.Scene
			if len(args) == 1 {
				s, err = modelScene(args[0])
				if err != nil {
					return err
				}
			} else {
				s = rasterDemoScene()
			}

			canvas := render.NewCanvas(size, size, scene.Black)
			render.NewRasterizer(canvas, shading).Render(s)
			return writePNG(canvas, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "raster.png", "Output PNG path")
	cmd.Flags().IntVar(&size, "size", 600, "Canvas width and height in pixels")
	cmd.Flags().StringVar(&mode, "mode", "flat", "Shading mode: wireframe, flat, phong")
	return cmd
}

// traceDemoScene builds the reference tracer scene: four plain spheres
// including a ground sphere, one CSG pair per boolean operation, and
// three light kinds, seen through a rotated camera.
func traceDemoScene() *scene.Scene {
	s := scene.NewScene(1, 1, scene.RGB(225, 230, 252))

	s.AddObject(&scene.SphereObject{
		Sphere:   geomSphere(0, -1.5, 3, 1),
		Material: scene.Material{Color: scene.Red, Specular: 500, Reflective: 0.2},
	})
	s.AddObject(&scene.SphereObject{
		Sphere:   geomSphere(2, 1, 4, 1),
		Material: scene.Material{Color: scene.Blue, Specular: 500, Reflective: 0.2},
	})
	s.AddObject(&scene.SphereObject{
		Sphere:   geomSphere(-2, 0, 4, 1),
		Material: scene.Material{Color: scene.Green, Specular: 10, Reflective: 0.4},
	})
	s.AddObject(&scene.SphereObject{
		Sphere:   geomSphere(0, -5001, 0, 5000),
		Material: scene.Material{Color: scene.RGB(255, 255, 0), Specular: 1000, Reflective: 0.2},
	})

	s.AddObject(&scene.CSGObject{
		A:        geomSphere(0, 3, 5, 1.5),
		B:        geomSphere(0, 4, 3, 1.5),
		Op:       scene.Subtraction,
		Material: scene.Material{Color: scene.RGB(0, 255, 255), Specular: 50, Reflective: 0.1},
	})
	s.AddObject(&scene.CSGObject{
		A:        geomSphere(-1, 2, 2, 0.6),
		B:        geomSphere(-1.4, 1.8, 1.9, 0.5),
		Op:       scene.Intersection,
		Material: scene.Material{Color: scene.RGB(255, 0, 255), Specular: 100, Reflective: 0.2},
	})
	s.AddObject(&scene.CSGObject{
		A:        geomSphere(0.4, 1, 2.5, 0.6),
		B:        geomSphere(0.3, 0.8, 2.3, 0.5),
		Op:       scene.Union,
		Material: scene.Material{Color: scene.RGB(128, 128, 128), Specular: 20, Reflective: 0.4},
	})

	s.AddLight(scene.AmbientLight{Intensity: 0.2})
	s.AddLight(scene.PointLight{Intensity: 0.6, Position: math3d.V3(2, 1, 0)})
	s.AddLight(scene.DirectionalLight{Intensity: 0.2, Direction: math3d.V3(1, 4, 4)})

	s.SetCamera(
		math3d.V3(1.5, 1, -6),
		math3d.Compose(
			math3d.RotateX(deg(5)),
			math3d.RotateY(deg(5)),
			math3d.RotateZ(deg(10)),
		),
		1.5,
	)
	return s
}

// rasterDemoScene places two instances of the colored demo cube in
// front of a translated, rotated camera.
func rasterDemoScene() *scene.Scene {
	s := scene.NewScene(1, 1, scene.Black)
	s.AddModel("cube", cubeModel())
	s.AddInstance(scene.NewInstance("cube", 0.75, math3d.Identity(), math3d.V3(-1.5, 0, 7)))
	s.AddInstance(scene.NewInstance("cube", 1, math3d.RotateY(deg(195)), math3d.V3(1.25, 2.5, 7.5)))
	addViewerLights(s)
	s.SetCamera(math3d.V3(-3, 1, 2), math3d.RotateY(deg(-30)), 1)
	return s
}

// modelScene loads a glTF model and places a single instance of it in
// front of a camera at the origin.
func modelScene(path string) (*scene.Scene, error) {
	model, err := models.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	model = recentered(model)

	s := scene.NewScene(1, 1, scene.Black)
	s.AddModel("model", model)
	s.AddInstance(scene.NewInstance("model", fitScale(model), math3d.RotateY(deg(30)), math3d.V3(0, 0, 6)))
	addViewerLights(s)
	s.SetCamera(math3d.V3(0, 0, 0), math3d.Identity(), 1)
	return s, nil
}

func addViewerLights(s *scene.Scene) {
	s.AddLight(scene.AmbientLight{Intensity: 0.3})
	s.AddLight(scene.DirectionalLight{Intensity: 0.7, Direction: math3d.V3(-1, 1, -2)})
}

// cubeModel builds a unit-radius-2 cube with one color per face.
// Faces are wound clockwise as seen from outside, matching the
// rasterizer's front-face convention.
func cubeModel() *scene.Model {
	verts := []math3d.Vec3{
		math3d.V3(1, 1, 1), math3d.V3(-1, 1, 1), math3d.V3(-1, -1, 1), math3d.V3(1, -1, 1),
		math3d.V3(1, 1, -1), math3d.V3(-1, 1, -1), math3d.V3(-1, -1, -1), math3d.V3(1, -1, -1),
	}
	yellow := scene.RGB(255, 255, 0)
	purple := scene.RGB(128, 0, 128)
	cyan := scene.RGB(0, 255, 255)
	faces := []struct {
		idx   [3]int
		color scene.Color
	}{
		{[3]int{0, 1, 2}, scene.Red}, {[3]int{0, 2, 3}, scene.Red},
		{[3]int{4, 0, 3}, scene.Green}, {[3]int{4, 3, 7}, scene.Green},
		{[3]int{5, 4, 7}, scene.Blue}, {[3]int{5, 7, 6}, scene.Blue},
		{[3]int{1, 5, 6}, yellow}, {[3]int{1, 6, 2}, yellow},
		{[3]int{4, 5, 1}, purple}, {[3]int{4, 1, 0}, purple},
		{[3]int{2, 6, 7}, cyan}, {[3]int{2, 7, 3}, cyan},
	}

	tris := make([]scene.ModelTriangle, 0, len(faces))
	for _, f := range faces {
		a, b, c := verts[f.idx[0]], verts[f.idx[1]], verts[f.idx[2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		tris = append(tris, scene.ModelTriangle{
			Indexes:  f.idx,
			Color:    f.color,
			Specular: 50,
			Normals:  [3]math3d.Vec3{n, n, n},
		})
	}
	return scene.NewModel(verts, tris)
}

// recentered rebuilds the model with its bounding-sphere center moved
// to the origin, so instance rotations spin it in place.
func recentered(m *scene.Model) *scene.Model {
	center := m.Bounds.Center
	verts := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = v.Sub(center)
	}
	return scene.NewModel(verts, m.Triangles)
}

// fitScale scales a model to a bounding radius of 2.
func fitScale(m *scene.Model) float64 {
	if m.Bounds.Radius <= 0 {
		return 1
	}
	return 2 / m.Bounds.Radius
}

func parseMode(mode string) (render.ShadingMode, error) {
	switch mode {
	case "wireframe":
		return render.Wireframe, nil
	case "flat":
		return render.Flat, nil
	case "phong":
		return render.Phong, nil
	default:
		return 0, fmt.Errorf("unknown shading mode %q (want wireframe, flat or phong)", mode)
	}
}

func writePNG(c *render.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, c.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func deg(d float64) float64 {
	return d * math.Pi / 180
}

func geomSphere(x, y, z, radius float64) geom.Sphere {
	return geom.Sphere{Center: math3d.V3(x, y, z), Radius: radius}
}
