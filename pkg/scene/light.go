package scene

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Light contributes intensity to surface points. Implementations are
// AmbientLight, PointLight, and DirectionalLight; consumers that need
// per-variant handling dispatch on the concrete type.
type Light interface {
	// IntensityFrom returns this light's contribution at a surface
	// point. The scene is consulted for shadow occlusion. normal must
	// be unit length; view points from the surface toward the camera.
	IntensityFrom(s *Scene, point, normal, view math3d.Vec3, specular int) float64
}

// AmbientLight contributes its intensity everywhere, unshadowed.
type AmbientLight struct {
	Intensity float64
}

// PointLight radiates from a position in world space.
type PointLight struct {
	Intensity float64
	Position  math3d.Vec3
}

// DirectionalLight arrives from a fixed direction, as if infinitely far
// away. Direction points from the surface toward the light.
type DirectionalLight struct {
	Intensity float64
	Direction math3d.Vec3
}

func (l AmbientLight) IntensityFrom(_ *Scene, _, _, _ math3d.Vec3, _ int) float64 {
	return l.Intensity
}

func (l PointLight) IntensityFrom(s *Scene, point, normal, view math3d.Vec3, specular int) float64 {
	toLight := l.Position.Sub(point)
	// Occluders past the light itself (t > 1) do not cast a shadow.
	if s.occluded(point, toLight, 1) {
		return 0
	}
	return l.Intensity * lightFactor(normal, toLight, view, specular)
}

func (l DirectionalLight) IntensityFrom(s *Scene, point, normal, view math3d.Vec3, specular int) float64 {
	if s.occluded(point, l.Direction, posInf) {
		return 0
	}
	return l.Intensity * lightFactor(normal, l.Direction, view, specular)
}

// lightFactor is the diffuse term plus, for shiny materials, the
// specular term. A negative specular exponent disables highlights.
func lightFactor(normal, light, view math3d.Vec3, specular int) float64 {
	factor := max(0.0, normal.Cos(light))
	if specular >= 0 {
		reflection := normal.Reflect(light)
		factor += math.Pow(max(0.0, reflection.Cos(view)), float64(specular))
	}
	return factor
}
