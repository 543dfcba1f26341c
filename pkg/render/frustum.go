package render

import (
	"github.com/taigrr/prism/pkg/geom"
	"github.com/taigrr/prism/pkg/math3d"
)

// frustumPlanes returns the five clip planes of the view frustum in
// camera space: the near plane at z=distance and four side planes
// through the camera origin and adjacent viewport corners. All normals
// point inward, so a point is visible when every signed distance is
// nonnegative.
func frustumPlanes(viewportWidth, viewportHeight, distance float64) []geom.Plane {
	hw := viewportWidth / 2
	hh := viewportHeight / 2
	tl := math3d.V3(-hw, hh, distance)
	tr := math3d.V3(hw, hh, distance)
	bl := math3d.V3(-hw, -hh, distance)
	br := math3d.V3(hw, -hh, distance)

	side := func(a, b math3d.Vec3) geom.Plane {
		return geom.Plane{Normal: a.Cross(b).Normalize(), D: 0}
	}
	return []geom.Plane{
		{Normal: math3d.V3(0, 0, 1), D: -distance}, // near
		side(tl, bl),                               // left
		side(br, tr),                               // right
		side(tr, tl),                               // top
		side(bl, br),                               // bottom
	}
}
