package geom

import "github.com/taigrr/prism/pkg/math3d"

// Triangle is three ordered vertices plus the unit normal derived from
// their winding at construction time. The normal follows the right-hand
// rule on (C-A)×(B-A); callers relying on its direction must order
// vertices accordingly.
type Triangle struct {
	A, B, C math3d.Vec3
	Normal  math3d.Vec3
}

// NewTriangle builds a triangle and freezes its normal.
func NewTriangle(a, b, c math3d.Vec3) Triangle {
	return Triangle{
		A:      a,
		B:      b,
		C:      c,
		Normal: c.Sub(a).Cross(b.Sub(a)).Normalize(),
	}
}

// IntersectRay expresses the ray-plane intersection in barycentric
// coordinates, solving A·(r,s,t) = ao where the columns are the edge
// vectors AB, AC and the negated ray direction. ok is false when the
// ray is parallel to the triangle's plane (singular system) or the
// barycentrics fall outside the triangle. The boundary r+s = 1 is
// inside, so a ray crossing the shared edge of two adjacent triangles
// is attributed to exactly one of them.
func (tr Triangle) IntersectRay(ray math3d.Ray) (t float64, ok bool) {
	ab := tr.B.Sub(tr.A)
	ac := tr.C.Sub(tr.A)
	ao := ray.Origin.Sub(tr.A)

	sol, ok := Solve3([3][3]float64{
		{ab.X, ac.X, -ray.Dir.X},
		{ab.Y, ac.Y, -ray.Dir.Y},
		{ab.Z, ac.Z, -ray.Dir.Z},
	}, [3]float64{ao.X, ao.Y, ao.Z})
	if !ok {
		return 0, false
	}
	r, s, t := sol[0], sol[1], sol[2]
	if r < 0 || s < 0 || r+s > 1 {
		return 0, false
	}
	return t, true
}
