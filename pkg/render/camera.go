package render

import "github.com/taigrr/prism/pkg/math3d"

// CameraMatrix maps world space into camera space: translate the world
// so the camera sits at the origin, then undo the camera rotation.
func CameraMatrix(position math3d.Vec3, rotation math3d.Mat4) math3d.Mat4 {
	return math3d.Compose(
		rotation.Transpose(),
		math3d.Translate(position.Negate()),
	)
}

// ProjectionMatrix builds the perspective projection for a viewport of
// the given size sitting distance units in front of the camera. It
// scales x and y onto the viewport and copies camera z into w, so the
// canonical divide performs the perspective division. The matrix is
// deliberately not invertible; Unproject recovers points given their
// camera-space z.
func ProjectionMatrix(viewportWidth, viewportHeight, distance float64) math3d.Mat4 {
	return math3d.Mat4{
		{distance / viewportWidth, 0, 0, 0},
		{0, distance / viewportHeight, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 1, 0},
	}
}

// viewport carries the projection parameters plus the canvas size the
// projected coordinates are scaled to.
type viewport struct {
	width    float64
	height   float64
	distance float64
	canvasW  int
	canvasH  int
}

// project maps a camera-space point to centered canvas coordinates.
// The caller guarantees v is in front of the near plane.
func (vp viewport) project(proj math3d.Mat4, v math3d.Vec3) Point {
	c := proj.MulVec4(math3d.Point(v)).Canonical()
	return Point{c.X * float64(vp.canvasW), c.Y * float64(vp.canvasH)}
}

// unproject inverts project for a point whose camera-space z is known.
func (vp viewport) unproject(p Point, z float64) math3d.Vec3 {
	return math3d.V3(
		p.X/float64(vp.canvasW)*vp.width*z/vp.distance,
		p.Y/float64(vp.canvasH)*vp.height*z/vp.distance,
		z,
	)
}
