// Package geom provides the ray-primitive intersection routines the
// scene layer and rasterizer are built on. Primitives report every real
// solution and leave interval filtering to the caller.
package geom

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Sphere is a center and a non-negative radius.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// IntersectRay solves |O + tD - C|^2 = r^2 for the ray parameter t and
// returns both real roots ordered t1 <= t2, or ok=false when the ray
// misses the sphere. Roots are not clamped to any t-range.
func (s Sphere) IntersectRay(ray math3d.Ray) (t1, t2 float64, ok bool) {
	co := ray.Origin.Sub(s.Center)
	a := ray.Dir.Dot(ray.Dir)
	b := 2 * co.Dot(ray.Dir)
	c := co.Dot(co) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(discriminant)
	return (-b - sq) / (2 * a), (-b + sq) / (2 * a), true
}
