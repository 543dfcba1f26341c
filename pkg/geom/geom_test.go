package geom

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
)

const eps = 1e-9

func TestSphereIntersectRay(t *testing.T) {
	s := Sphere{Center: math3d.V3(0, 0, 4), Radius: 1}

	tests := []struct {
		name     string
		ray      math3d.Ray
		hit      bool
		t1, t2   float64
		checkTol float64
	}{
		{
			name: "through center",
			ray:  math3d.Ray{Origin: math3d.Zero3(), Dir: math3d.V3(0, 0, 1)},
			hit:  true, t1: 3, t2: 5, checkTol: eps,
		},
		{
			name: "tangent",
			ray:  math3d.Ray{Origin: math3d.V3(1, 0, 0), Dir: math3d.V3(0, 0, 1)},
			hit:  true, t1: 4, t2: 4, checkTol: 1e-6,
		},
		{
			name: "miss",
			ray:  math3d.Ray{Origin: math3d.V3(2, 0, 0), Dir: math3d.V3(0, 0, 1)},
			hit:  false,
		},
		{
			name: "behind origin",
			ray:  math3d.Ray{Origin: math3d.V3(0, 0, 10), Dir: math3d.V3(0, 0, 1)},
			hit:  true, t1: -7, t2: -5, checkTol: eps,
		},
		{
			name: "unnormalized direction",
			ray:  math3d.Ray{Origin: math3d.Zero3(), Dir: math3d.V3(0, 0, 2)},
			hit:  true, t1: 1.5, t2: 2.5, checkTol: eps,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t1, t2, ok := s.IntersectRay(tc.ray)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if !ok {
				return
			}
			if t1 > t2 {
				t.Errorf("roots out of order: %v > %v", t1, t2)
			}
			if math.Abs(t1-tc.t1) > tc.checkTol || math.Abs(t2-tc.t2) > tc.checkTol {
				t.Errorf("roots (%v, %v), want (%v, %v)", t1, t2, tc.t1, tc.t2)
			}
			// Both roots must satisfy the implicit sphere equation.
			for _, tt := range []float64{t1, t2} {
				p := tc.ray.At(tt)
				d := p.Sub(s.Center).Len()
				if math.Abs(d-s.Radius) > 1e-6 {
					t.Errorf("point at t=%v is %v from center, want %v", tt, d, s.Radius)
				}
			}
		})
	}
}

func TestSolve3(t *testing.T) {
	t.Run("unique solution", func(t *testing.T) {
		x, ok := Solve3([3][3]float64{
			{2, 0, 0},
			{0, 3, 0},
			{0, 0, 4},
		}, [3]float64{2, 6, 12})
		if !ok {
			t.Fatal("expected a solution")
		}
		want := [3]float64{1, 2, 3}
		for i := range 3 {
			if math.Abs(x[i]-want[i]) > eps {
				t.Errorf("x[%d] = %v, want %v", i, x[i], want[i])
			}
		}
	})

	t.Run("needs pivoting", func(t *testing.T) {
		// Zero on the diagonal, solvable after a row swap.
		x, ok := Solve3([3][3]float64{
			{0, 1, 0},
			{1, 0, 0},
			{0, 0, 1},
		}, [3]float64{5, 7, 9})
		if !ok {
			t.Fatal("expected a solution")
		}
		if x[0] != 7 || x[1] != 5 || x[2] != 9 {
			t.Errorf("x = %v", x)
		}
	})

	t.Run("singular", func(t *testing.T) {
		_, ok := Solve3([3][3]float64{
			{1, 2, 3},
			{2, 4, 6},
			{0, 0, 1},
		}, [3]float64{1, 2, 1})
		if ok {
			t.Error("singular system should not solve")
		}
	})
}

func TestTriangleNormalWinding(t *testing.T) {
	// (C-A)×(B-A) with this winding points toward -z... verify both
	// orientation and unit length.
	tr := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	if math.Abs(tr.Normal.Len()-1) > eps {
		t.Errorf("normal not unit: %v", tr.Normal)
	}
	if tr.Normal.Z >= 0 {
		t.Errorf("normal = %v, expected -z orientation for this winding", tr.Normal)
	}
	// Swapping two vertices flips the normal.
	flipped := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0))
	if flipped.Normal.Z <= 0 {
		t.Errorf("flipped normal = %v, expected +z", flipped.Normal)
	}
}

func TestTriangleIntersectRay(t *testing.T) {
	tr := NewTriangle(math3d.V3(-1, -1, 5), math3d.V3(1, -1, 5), math3d.V3(0, 1, 5))

	tests := []struct {
		name  string
		ray   math3d.Ray
		hit   bool
		wantT float64
	}{
		{
			name:  "center hit",
			ray:   math3d.Ray{Origin: math3d.Zero3(), Dir: math3d.V3(0, 0, 1)},
			hit:   true,
			wantT: 5,
		},
		{
			name: "outside",
			ray:  math3d.Ray{Origin: math3d.V3(5, 5, 0), Dir: math3d.V3(0, 0, 1)},
			hit:  false,
		},
		{
			name: "parallel to plane",
			ray:  math3d.Ray{Origin: math3d.Zero3(), Dir: math3d.V3(1, 0, 0)},
			hit:  false,
		},
		{
			name:  "vertex hit",
			ray:   math3d.Ray{Origin: math3d.V3(-1, -1, 0), Dir: math3d.V3(0, 0, 1)},
			hit:   true,
			wantT: 5,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tr.IntersectRay(tc.ray)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if ok && math.Abs(got-tc.wantT) > 1e-6 {
				t.Errorf("t = %v, want %v", got, tc.wantT)
			}
		})
	}
}

func TestTriangleSharedEdgeAttribution(t *testing.T) {
	// Two triangles sharing the edge x=0 between (0,-1,5) and (0,1,5).
	// A ray through the shared edge must hit exactly one of them: the
	// boundary r+s=1 (and r=0, s=0) is included, so the left triangle
	// accepts the edge and the right one would too; geometry must not
	// leave a gap. We verify no-gap and count hits with the exact edge
	// coordinates.
	left := NewTriangle(math3d.V3(-1, 0, 5), math3d.V3(0, -1, 5), math3d.V3(0, 1, 5))
	right := NewTriangle(math3d.V3(0, -1, 5), math3d.V3(1, 0, 5), math3d.V3(0, 1, 5))

	ray := math3d.Ray{Origin: math3d.V3(0, 0, 0), Dir: math3d.V3(0, 0, 1)}

	_, okL := left.IntersectRay(ray)
	_, okR := right.IntersectRay(ray)
	if !okL && !okR {
		t.Fatal("ray through shared edge hit neither triangle (gap)")
	}

	// Slightly inside each triangle hits only that triangle.
	rayL := math3d.Ray{Origin: math3d.V3(-0.1, 0, 0), Dir: math3d.V3(0, 0, 1)}
	if _, ok := left.IntersectRay(rayL); !ok {
		t.Error("point inside left triangle missed")
	}
	if _, ok := right.IntersectRay(rayL); ok {
		t.Error("point inside left triangle hit right triangle")
	}
}

func TestTriangleBarycentricRange(t *testing.T) {
	// For hits, the solved barycentrics must satisfy r>=0, s>=0,
	// r+s<=1. Exercise via interior sample points.
	tr := NewTriangle(math3d.V3(0, 0, 3), math3d.V3(2, 0, 3), math3d.V3(0, 2, 3))
	samples := []math3d.Vec3{
		{X: 0.5, Y: 0.5}, {X: 1, Y: 0.5}, {X: 0.1, Y: 1.5}, {X: 1, Y: 1}, // r+s=1 edge
	}
	for _, p := range samples {
		ray := math3d.Ray{Origin: p, Dir: math3d.V3(0, 0, 1)}
		if _, ok := tr.IntersectRay(ray); !ok {
			t.Errorf("interior/boundary point %v not hit", p)
		}
	}
}

func TestPlaneSignedDistance(t *testing.T) {
	pl := Plane{Normal: math3d.V3(0, 0, 1), D: -2} // z = 2

	tests := []struct {
		p    math3d.Vec3
		want float64
	}{
		{math3d.V3(0, 0, 2), 0},
		{math3d.V3(1, 5, 6), 4},
		{math3d.V3(-3, 0, 0), -2},
	}
	for _, tc := range tests {
		if got := pl.SignedDistance(tc.p); math.Abs(got-tc.want) > eps {
			t.Errorf("SignedDistance(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestPlaneIntersectSegment(t *testing.T) {
	pl := Plane{Normal: math3d.V3(0, 0, 1), D: -2} // z = 2

	t.Run("crossing", func(t *testing.T) {
		tt, ok := pl.IntersectSegment(math3d.V3(0, 0, 0), math3d.V3(0, 0, 4))
		if !ok {
			t.Fatal("expected intersection")
		}
		if math.Abs(tt-0.5) > eps {
			t.Errorf("t = %v, want 0.5", tt)
		}
	})

	t.Run("parallel", func(t *testing.T) {
		if _, ok := pl.IntersectSegment(math3d.V3(0, 0, 1), math3d.V3(5, 0, 1)); ok {
			t.Error("parallel segment should not intersect")
		}
	})
}

func BenchmarkSphereIntersectRay(b *testing.B) {
	s := Sphere{Center: math3d.V3(0, 0, 4), Radius: 1}
	ray := math3d.Ray{Origin: math3d.Zero3(), Dir: math3d.V3(0, 0, 1)}

	for b.Loop() {
		_, _, _ = s.IntersectRay(ray)
	}
}

func BenchmarkTriangleIntersectRay(b *testing.B) {
	tr := NewTriangle(math3d.V3(-1, -1, 5), math3d.V3(1, -1, 5), math3d.V3(0, 1, 5))
	ray := math3d.Ray{Origin: math3d.Zero3(), Dir: math3d.V3(0, 0, 1)}

	for b.Loop() {
		_, _ = tr.IntersectRay(ray)
	}
}
