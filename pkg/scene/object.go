package scene

import (
	"math"

	"github.com/taigrr/prism/pkg/geom"
	"github.com/taigrr/prism/pkg/math3d"
)

// Hit describes the nearest surface crossing found by a hit test.
type Hit struct {
	T        float64
	Point    math3d.Vec3
	Normal   math3d.Vec3
	Material Material
}

// Object is anything the ray tracer can hit. Implementations return
// the nearest crossing with tMin <= t <= tMax, or ok=false. tMax may
// be math.Inf(1).
type Object interface {
	HitTest(ray math3d.Ray, tMin, tMax float64) (Hit, bool)
}

// SphereObject is a sphere with a material.
type SphereObject struct {
	Sphere   geom.Sphere
	Material Material
}

// HitTest accepts the smallest quadratic root inside the interval. The
// normal is the outward unit vector from the center through the hit
// point.
func (s *SphereObject) HitTest(ray math3d.Ray, tMin, tMax float64) (Hit, bool) {
	t1, t2, ok := s.Sphere.IntersectRay(ray)
	if !ok {
		return Hit{}, false
	}
	t := t1
	if t < tMin || t > tMax {
		t = t2
	}
	if t < tMin || t > tMax {
		return Hit{}, false
	}
	p := ray.At(t)
	return Hit{
		T:        t,
		Point:    p,
		Normal:   p.Sub(s.Sphere.Center).Normalize(),
		Material: s.Material,
	}, true
}

// sortHitsByT orders hits ascending by ray parameter.
func sortHitsByT(hits []Hit) {
	for i := 1; i < len(hits); i++ {
		h := hits[i]
		j := i - 1
		for j >= 0 && hits[j].T > h.T {
			hits[j+1] = hits[j]
			j--
		}
		hits[j+1] = h
	}
}

var posInf = math.Inf(1)
