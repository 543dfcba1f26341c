package math3d

// Ray is a half-line: origin plus a direction scaled by a parameter t.
// The direction is not normalized by construction; callers normalize
// when geometric length matters (refraction does, intersection does
// not).
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
