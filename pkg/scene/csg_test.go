package scene

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/geom"
	"github.com/taigrr/prism/pkg/math3d"
)

// Axis ray setup: sphere A spans t in [4, 6], sphere B spans [5, 7].
var (
	axisRay = math3d.Ray{Origin: math3d.Zero3(), Dir: math3d.V3(0, 0, 1)}
	sphereA = geom.Sphere{Center: math3d.V3(0, 0, 5), Radius: 1}
	sphereB = geom.Sphere{Center: math3d.V3(0, 0, 6), Radius: 1}
)

func TestCSGOverlappingPair(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name       string
		csg        CSGObject
		tMin       float64
		wantT      float64
		wantNormal math3d.Vec3
	}{
		{
			name:       "union near face",
			csg:        CSGObject{A: sphereA, B: sphereB, Op: Union},
			tMin:       1,
			wantT:      4,
			wantNormal: math3d.V3(0, 0, -1),
		},
		{
			name: "union far face",
			csg:  CSGObject{A: sphereA, B: sphereB, Op: Union},
			// Past both surfaces of A; the envelope ends on B.
			tMin:       6.5,
			wantT:      7,
			wantNormal: math3d.V3(0, 0, 1),
		},
		{
			name:       "intersection starts on later sphere",
			csg:        CSGObject{A: sphereA, B: sphereB, Op: Intersection},
			tMin:       1,
			wantT:      5,
			wantNormal: math3d.V3(0, 0, -1),
		},
		{
			name:       "intersection ends on earlier sphere",
			csg:        CSGObject{A: sphereA, B: sphereB, Op: Intersection},
			tMin:       5.5,
			wantT:      6,
			wantNormal: math3d.V3(0, 0, 1),
		},
		{
			name:       "subtraction keeps near face of A",
			csg:        CSGObject{A: sphereA, B: sphereB, Op: Subtraction},
			tMin:       1,
			wantT:      4,
			wantNormal: math3d.V3(0, 0, -1),
		},
		{
			name: "subtraction cavity wall has inverted normal",
			csg:  CSGObject{A: sphereA, B: sphereB, Op: Subtraction},
			tMin: 4.5,
			// B's near surface at t=5; B's outward normal there is -z,
			// the combined solid's outward normal is +z.
			wantT:      5,
			wantNormal: math3d.V3(0, 0, 1),
		},
		{
			name:       "swapped subtraction differs",
			csg:        CSGObject{A: sphereB, B: sphereA, Op: Subtraction},
			tMin:       1,
			wantT:      6,
			wantNormal: math3d.V3(0, 0, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.csg.HitTest(axisRay, tt.tMin, inf)
			if !ok {
				t.Fatalf("HitTest(tMin=%v) missed, want t=%v", tt.tMin, tt.wantT)
			}
			if math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("t = %v, want %v", hit.T, tt.wantT)
			}
			if !vecNear(hit.Normal, tt.wantNormal, 1e-9) {
				t.Errorf("normal = %v, want %v", hit.Normal, tt.wantNormal)
			}
		})
	}
}

func TestCSGNestedSubtraction(t *testing.T) {
	// Outer spans [3, 7], inner spans [4, 6]: the solid is two shells.
	outer := geom.Sphere{Center: math3d.V3(0, 0, 5), Radius: 2}
	inner := geom.Sphere{Center: math3d.V3(0, 0, 5), Radius: 1}
	csg := CSGObject{A: outer, B: inner, Op: Subtraction}

	wantTs := []float64{3, 4, 6, 7}
	wantNormals := []math3d.Vec3{
		math3d.V3(0, 0, -1), // entering the front shell
		math3d.V3(0, 0, 1),  // leaving it into the cavity
		math3d.V3(0, 0, -1), // entering the back shell
		math3d.V3(0, 0, 1),  // leaving the solid
	}
	tMin := 1.0
	for i, want := range wantTs {
		hit, ok := csg.HitTest(axisRay, tMin, math.Inf(1))
		if !ok {
			t.Fatalf("breakpoint %d: missed, want t=%v", i, want)
		}
		if math.Abs(hit.T-want) > 1e-9 {
			t.Fatalf("breakpoint %d: t = %v, want %v", i, hit.T, want)
		}
		if !vecNear(hit.Normal, wantNormals[i], 1e-9) {
			t.Errorf("breakpoint %d: normal = %v, want %v", i, hit.Normal, wantNormals[i])
		}
		tMin = hit.T + 0.5
	}
}

func TestCSGEmptyResults(t *testing.T) {
	inf := math.Inf(1)
	near := geom.Sphere{Center: math3d.V3(0, 0, 3.5), Radius: 0.5}
	small := geom.Sphere{Center: math3d.V3(0, 0, 5), Radius: 0.5}
	big := geom.Sphere{Center: math3d.V3(0, 0, 5), Radius: 2}

	tests := []struct {
		name string
		csg  CSGObject
	}{
		{"disjoint intersection", CSGObject{A: near, B: sphereB, Op: Intersection}},
		{"subtrahend swallows minuend", CSGObject{A: small, B: big, Op: Subtraction}},
		{"ray misses both", CSGObject{A: sphereA, B: sphereB, Op: Union}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := axisRay
			if tt.name == "ray misses both" {
				ray = math3d.Ray{Origin: math3d.Zero3(), Dir: math3d.V3(0, 1, 0)}
			}
			if hit, ok := tt.csg.HitTest(ray, 1, inf); ok {
				t.Errorf("HitTest = hit at t=%v, want miss", hit.T)
			}
		})
	}
}

func TestCSGDisjointUnion(t *testing.T) {
	near := geom.Sphere{Center: math3d.V3(0, 0, 3.5), Radius: 0.5}
	csg := CSGObject{A: sphereB, B: near, Op: Union}

	hit, ok := csg.HitTest(axisRay, 1, math.Inf(1))
	if !ok {
		t.Fatal("HitTest missed")
	}
	// Breakpoints must come out ordered even when B precedes A.
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("t = %v, want 3", hit.T)
	}
}

func BenchmarkCSGHitTest(b *testing.B) {
	csg := CSGObject{A: sphereA, B: sphereB, Op: Subtraction}
	inf := math.Inf(1)
	for b.Loop() {
		csg.HitTest(axisRay, 1, inf)
	}
}
