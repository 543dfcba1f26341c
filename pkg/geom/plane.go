package geom

import "github.com/taigrr/prism/pkg/math3d"

// Plane is the point set {p : Normal·p + D = 0}. With a unit normal,
// SignedDistance is a true distance; the rasterizer orients its clip
// planes so "inside" has non-negative signed distance.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// SignedDistance returns Normal·p + D.
func (pl Plane) SignedDistance(p math3d.Vec3) float64 {
	return pl.Normal.Dot(p) + pl.D
}

// IntersectSegment finds the parameter t in a + t·(b-a) at which the
// plane is crossed. ok is false when the segment is parallel to the
// plane (the denominator is exactly zero).
func (pl Plane) IntersectSegment(a, b math3d.Vec3) (t float64, ok bool) {
	denom := pl.Normal.Dot(b.Sub(a))
	if denom == 0 {
		return 0, false
	}
	return -pl.SignedDistance(a) / denom, true
}
