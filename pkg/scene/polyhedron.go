package scene

import (
	"github.com/taigrr/prism/pkg/geom"
	"github.com/taigrr/prism/pkg/math3d"
)

// Polyhedron is a closed triangle soup rendered as a single solid with
// one material.
type Polyhedron struct {
	Triangles []geom.Triangle
	Material  Material
}

// HitTest collects every triangle intersection along the ray, sorts
// them by distance, and returns the first one inside the interval.
// Collecting all hits keeps concave meshes correct: the nearest surface
// may belong to any face, not just the first one tried. The normal is
// the face normal frozen at construction, like a sphere's outward
// normal: a hit on a face whose normal points along the ray marks the
// ray leaving the solid, which the refraction path relies on.
func (p *Polyhedron) HitTest(ray math3d.Ray, tMin, tMax float64) (Hit, bool) {
	var hits []Hit
	for i := range p.Triangles {
		tri := &p.Triangles[i]
		t, ok := tri.IntersectRay(ray)
		if !ok {
			continue
		}
		hits = append(hits, Hit{T: t, Point: ray.At(t), Normal: tri.Normal, Material: p.Material})
	}
	sortHitsByT(hits)
	for _, h := range hits {
		if h.T >= tMin && h.T <= tMax {
			return h, true
		}
	}
	return Hit{}, false
}
