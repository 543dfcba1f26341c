package scene

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// TraceRay follows a ray through the scene and returns its color.
// refractionIndex is the index of the medium the ray currently travels
// in. depth bounds recursion: at zero only local shading remains, no
// reflection or refraction rays are spawned.
func (s *Scene) TraceRay(ray math3d.Ray, refractionIndex float64, tMin, tMax float64, depth int) Color {
	hit, ok := s.HitTest(ray, tMin, tMax)
	if !ok {
		return s.Background
	}

	view := ray.Dir.Negate()
	local := hit.Material.Color.Scale(s.ComputeLighting(hit.Point, hit.Normal, view, hit.Material.Specular))

	opaque := local
	if depth > 0 && hit.Material.Reflective > 0 {
		reflected := s.TraceRay(math3d.Ray{
			Origin: hit.Point,
			Dir:    hit.Normal.Reflect(view),
		}, AirRefractionIndex, EPS, posInf, depth-1)
		r := hit.Material.Reflective
		opaque = local.Scale(1 - r).Add(reflected.Scale(r))
	}

	if depth == 0 || !hit.Material.Transparent() {
		return opaque
	}

	in := ray.Dir.Normalize()
	goingOutside := hit.Normal.Dot(in) > 0

	// Leaving a solid: whatever still surrounds the ray sets the next
	// medium, defaulting to air.
	next := hit.Material.Transparency
	if goingOutside {
		next = AirRefractionIndex
		if container, ok := s.containerHitTest(math3d.Ray{Origin: hit.Point, Dir: ray.Dir}, EPS, posInf); ok && container.Material.Transparent() {
			next = container.Material.Transparency
		}
	}

	normal := hit.Normal
	if goingOutside {
		normal = normal.Negate()
	}
	cos := normal.Dot(in)
	k := refractionIndex / next
	d := 1 - k*k*(1-cos*cos)
	if d < 0 {
		// Total internal reflection.
		return opaque
	}

	refracted := in.Sub(normal.Scale(cos)).Scale(k).Sub(normal.Scale(math.Sqrt(d)))
	p := math.Sqrt(math.Abs(cos))
	through := s.TraceRay(math3d.Ray{Origin: hit.Point, Dir: refracted}, next, EPS, posInf, depth-1)
	return opaque.Scale(1 - p).Add(through.Scale(p))
}
