package scene

import "github.com/taigrr/prism/pkg/math3d"

// EPS is the offset applied to secondary ray intervals so a surface
// does not immediately shadow or reflect itself.
const EPS = 0.001

// AirRefractionIndex is the medium assumed around all objects.
const AirRefractionIndex = 1.0

// Scene holds the objects, lights, and camera that the ray tracer
// consumes. The viewport is a window on the projection plane sitting
// CameraDistance in front of the camera.
type Scene struct {
	ViewportWidth  float64
	ViewportHeight float64
	Background     Color

	Objects []Object
	Lights  []Light

	// Rasterizer geometry: shared models placed by instances.
	Models    map[string]*Model
	Instances []Instance

	cameraPosition math3d.Vec3
	cameraRotation math3d.Mat4
	cameraDistance float64
}

// NewScene returns an empty scene with the camera at the origin looking
// down +Z from unit distance.
func NewScene(viewportWidth, viewportHeight float64, background Color) *Scene {
	return &Scene{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Background:     background,
		Models:         make(map[string]*Model),
		cameraRotation: math3d.Identity(),
		cameraDistance: 1,
	}
}

// SetCamera places the camera. rotation maps camera-local directions to
// world directions; distance is the projection plane offset.
func (s *Scene) SetCamera(position math3d.Vec3, rotation math3d.Mat4, distance float64) {
	s.cameraPosition = position
	s.cameraRotation = rotation
	s.cameraDistance = distance
}

func (s *Scene) AddObject(o Object) {
	s.Objects = append(s.Objects, o)
}

func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}

func (s *Scene) AddModel(name string, m *Model) {
	s.Models[name] = m
}

func (s *Scene) AddInstance(inst Instance) {
	s.Instances = append(s.Instances, inst)
}

// Camera reports the placement set by SetCamera.
func (s *Scene) Camera() (position math3d.Vec3, rotation math3d.Mat4, distance float64) {
	return s.cameraPosition, s.cameraRotation, s.cameraDistance
}

// CanvasToViewport builds the primary ray for canvas pixel (x, y) on a
// width-by-height canvas. y grows downward on the canvas but upward on
// the viewport.
func (s *Scene) CanvasToViewport(x, y float64, width, height int) math3d.Ray {
	local := math3d.Vec3{
		X: (x/float64(width) - 0.5) * s.ViewportWidth,
		Y: (0.5 - y/float64(height)) * s.ViewportHeight,
		Z: s.cameraDistance,
	}
	return math3d.Ray{
		Origin: s.cameraPosition,
		Dir:    s.cameraRotation.MulDir(local),
	}
}

// HitTest returns the closest hit over all objects with t inside
// [tMin, tMax].
func (s *Scene) HitTest(ray math3d.Ray, tMin, tMax float64) (Hit, bool) {
	best := Hit{T: posInf}
	found := false
	for _, o := range s.Objects {
		if h, ok := o.HitTest(ray, tMin, tMax); ok && h.T < best.T {
			best = h
			found = true
		}
	}
	return best, found
}

// containerHitTest finds the closest back-facing hit, which identifies
// the solid the ray origin currently sits inside.
func (s *Scene) containerHitTest(ray math3d.Ray, tMin, tMax float64) (Hit, bool) {
	best := Hit{T: posInf}
	found := false
	for _, o := range s.Objects {
		h, ok := o.HitTest(ray, tMin, tMax)
		if !ok || h.Normal.Dot(ray.Dir) <= 0 {
			continue
		}
		if h.T < best.T {
			best = h
			found = true
		}
	}
	return best, found
}

// ComputeLighting sums the contribution of every light at a surface
// point. normal must be unit length; view points from the surface
// toward the camera.
func (s *Scene) ComputeLighting(point, normal, view math3d.Vec3, specular int) float64 {
	total := 0.0
	for _, l := range s.Lights {
		total += l.IntensityFrom(s, point, normal, view, specular)
	}
	return total
}

func (s *Scene) occluded(point, toLight math3d.Vec3, tMax float64) bool {
	_, hit := s.HitTest(math3d.Ray{Origin: point, Dir: toLight}, EPS, tMax)
	return hit
}
