package render

// Interpolate returns the linearly interpolated values of a dependent
// variable at every integer index from i0 through i1 inclusive. It is
// the rasterizer's one workhorse: x-per-scanline edge walking, inverse
// depth, and shading attributes all go through it. When i0 == i1 the
// single starting value is returned, so callers never divide by zero;
// an inverted range yields nil.
func Interpolate(i0 int, d0 float64, i1 int, d1 float64) []float64 {
	if i0 == i1 {
		return []float64{d0}
	}
	if i1 < i0 {
		return nil
	}
	a := (d1 - d0) / float64(i1-i0)
	out := make([]float64, 0, i1-i0+1)
	for i := i0; i <= i1; i++ {
		out = append(out, float64(i-i0)*a+d0)
	}
	return out
}
