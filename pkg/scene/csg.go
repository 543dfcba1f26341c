package scene

import (
	"github.com/taigrr/prism/pkg/geom"
	"github.com/taigrr/prism/pkg/math3d"
)

// BooleanOp selects how a CSGObject combines its two spheres.
type BooleanOp int

const (
	Union BooleanOp = iota
	Intersection
	Subtraction // A minus B
)

// CSGObject combines two spheres with a boolean set operation and
// presents the result as a single hit-testable solid.
type CSGObject struct {
	A, B     geom.Sphere
	Op       BooleanOp
	Material Material
}

// breakpoint is a ray parameter at which the combined surface is
// entered or exited, tagged with the sphere owning that piece of
// surface. flip marks surfaces whose outward direction is opposite the
// owning sphere's own outward normal (the walls of a subtraction
// cavity).
type breakpoint struct {
	t      float64
	sphere geom.Sphere
	flip   bool
}

// HitTest merges the per-sphere entry/exit intervals according to the
// operator and returns the first breakpoint inside the query interval.
func (c *CSGObject) HitTest(ray math3d.Ray, tMin, tMax float64) (Hit, bool) {
	a1, a2, okA := c.A.IntersectRay(ray)
	b1, b2, okB := c.B.IntersectRay(ray)

	var bps []breakpoint
	switch c.Op {
	case Union:
		bps = unionBreakpoints(a1, a2, okA, b1, b2, okB, c.A, c.B)
	case Intersection:
		bps = intersectionBreakpoints(a1, a2, okA, b1, b2, okB, c.A, c.B)
	case Subtraction:
		bps = subtractionBreakpoints(a1, a2, okA, b1, b2, okB, c.A, c.B)
	}

	for _, bp := range bps {
		if bp.t < tMin || bp.t > tMax {
			continue
		}
		p := ray.At(bp.t)
		n := p.Sub(bp.sphere.Center).Normalize()
		if bp.flip {
			n = n.Negate()
		}
		return Hit{T: bp.t, Point: p, Normal: n, Material: c.Material}, true
	}
	return Hit{}, false
}

// unionBreakpoints keeps the outer envelope of the two intervals.
func unionBreakpoints(a1, a2 float64, okA bool, b1, b2 float64, okB bool, sa, sb geom.Sphere) []breakpoint {
	switch {
	case !okA && !okB:
		return nil
	case !okB:
		return []breakpoint{{a1, sa, false}, {a2, sa, false}}
	case !okA:
		return []breakpoint{{b1, sb, false}, {b2, sb, false}}
	}
	if a2 < b1 {
		return []breakpoint{{a1, sa, false}, {a2, sa, false}, {b1, sb, false}, {b2, sb, false}}
	}
	if b2 < a1 {
		return []breakpoint{{b1, sb, false}, {b2, sb, false}, {a1, sa, false}, {a2, sa, false}}
	}
	// Overlapping: earliest start, latest end.
	start := breakpoint{a1, sa, false}
	if b1 < a1 {
		start = breakpoint{b1, sb, false}
	}
	end := breakpoint{a2, sa, false}
	if b2 > a2 {
		end = breakpoint{b2, sb, false}
	}
	return []breakpoint{start, end}
}

// intersectionBreakpoints keeps the common sub-interval: later start,
// earlier end. Disjoint intervals produce an empty solid.
func intersectionBreakpoints(a1, a2 float64, okA bool, b1, b2 float64, okB bool, sa, sb geom.Sphere) []breakpoint {
	if !okA || !okB || a2 < b1 || b2 < a1 {
		return nil
	}
	start := breakpoint{a1, sa, false}
	if b1 > a1 {
		start = breakpoint{b1, sb, false}
	}
	end := breakpoint{a2, sa, false}
	if b2 < a2 {
		end = breakpoint{b2, sb, false}
	}
	return []breakpoint{start, end}
}

// subtractionBreakpoints removes B's interval from A's. Surfaces owned
// by B are cavity walls: their outward direction is the inverse of B's
// own outward normal, so they are flagged flip.
func subtractionBreakpoints(a1, a2 float64, okA bool, b1, b2 float64, okB bool, sa, sb geom.Sphere) []breakpoint {
	if !okA {
		return nil
	}
	if !okB || b1 > a2 || b2 < a1 {
		// No overlap: A unchanged.
		return []breakpoint{{a1, sa, false}, {a2, sa, false}}
	}
	switch {
	case b1 <= a1 && b2 >= a2:
		// B swallows A entirely.
		return nil
	case b1 > a1 && b2 < a2:
		// B nested inside A: two spans.
		return []breakpoint{
			{a1, sa, false}, {b1, sb, true},
			{b2, sb, true}, {a2, sa, false},
		}
	case b1 > a1:
		// B straddles A's far end: truncate at B's start.
		return []breakpoint{{a1, sa, false}, {b1, sb, true}}
	default:
		// B straddles A's near end: the solid begins at B's exit.
		return []breakpoint{{b2, sb, true}, {a2, sa, false}}
	}
}
