package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	if got := a.Add(b); !vecNear(got, V3(5, -3, 9)) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !vecNear(got, V3(-3, 7, -3)) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 1*4-2*5+3*6 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Cross(b); !vecNear(got, V3(27, 6, -13)) {
		t.Errorf("Cross = %v", got)
	}
	if got := V3(3, 4, 0).Len(); math.Abs(got-5) > eps {
		t.Errorf("Len = %v", got)
	}
	if got := V3(0, 0, 7).Normalize(); !vecNear(got, V3(0, 0, 1)) {
		t.Errorf("Normalize = %v", got)
	}
	if got := Zero3().Normalize(); !vecNear(got, Zero3()) {
		t.Errorf("Normalize(0) = %v", got)
	}
}

func TestVec3Cos(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"parallel", V3(1, 0, 0), V3(5, 0, 0), 1},
		{"orthogonal", V3(1, 0, 0), V3(0, 3, 0), 0},
		{"opposite", V3(0, 2, 0), V3(0, -1, 0), -1},
		{"diagonal", V3(1, 0, 0), V3(1, 1, 0), math.Sqrt2 / 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Cos(tc.b); math.Abs(got-tc.want) > eps {
				t.Errorf("Cos = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReflectIdempotence(t *testing.T) {
	// Reflecting twice about the same normal must return the original.
	normals := []Vec3{
		V3(0, 1, 0),
		V3(0, 0, 1),
		V3(1, 2, 3).Normalize(),
		V3(-0.3, 0.8, 0.1).Normalize(),
	}
	v := V3(2, -1, 4)
	for _, n := range normals {
		if got := n.Reflect(n.Reflect(v)); !vecNear(got, v) {
			t.Errorf("Reflect twice about %v: got %v, want %v", n, got, v)
		}
	}
}

func TestReflectAboutNormal(t *testing.T) {
	// v pointing 45 degrees into the XY plane, normal +Y.
	n := V3(0, 1, 0)
	v := V3(1, 1, 0)
	if got := n.Reflect(v); !vecNear(got, V3(-1, 1, 0)) {
		t.Errorf("Reflect = %v, want (-1, 1, 0)", got)
	}
}

func TestVec4Canonical(t *testing.T) {
	tests := []struct {
		name string
		in   Vec4
		want Vec4
	}{
		{"position unchanged", V4(1, 2, 3, 1), V4(1, 2, 3, 1)},
		{"direction unchanged", V4(1, 2, 3, 0), V4(1, 2, 3, 0)},
		{"divide by w", V4(2, 4, 6, 2), V4(1, 2, 3, 1)},
		{"negative w", V4(3, -3, 6, -3), V4(-1, 1, -2, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Canonical()
			if got != tc.want {
				t.Errorf("Canonical(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestPointVectorAffineArithmetic(t *testing.T) {
	p := Point(V3(1, 2, 3))
	q := Point(V3(4, 4, 4))

	d := q.Sub(p)
	if d.W != 0 {
		t.Errorf("point-point should be a direction, got w=%v", d.W)
	}
	r := p.Add(d)
	if r.W != 1 {
		t.Errorf("point+vector should be a position, got w=%v", r.W)
	}
	if !vecNear(r.Vec3(), q.Vec3()) {
		t.Errorf("p + (q-p) = %v, want %v", r.Vec3(), q.Vec3())
	}
}

func TestTranslatePointAndDir(t *testing.T) {
	m := Translate(V3(10, 20, 30))

	if got := m.MulPoint(V3(1, 1, 1)); !vecNear(got, V3(11, 21, 31)) {
		t.Errorf("translate point = %v", got)
	}
	// Directions are unaffected by translation.
	if got := m.MulDir(V3(1, 1, 1)); !vecNear(got, V3(1, 1, 1)) {
		t.Errorf("translate dir = %v", got)
	}
}

func TestRotateAxes(t *testing.T) {
	half := math.Pi / 2
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"x quarter turn", RotateX(half), V3(0, 1, 0), V3(0, 0, -1)},
		{"y quarter turn", RotateY(half), V3(0, 0, 1), V3(-1, 0, 0)},
		{"z quarter turn", RotateZ(half), V3(1, 0, 0), V3(0, -1, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.MulDir(tc.in); !vecNear(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTransposeInvertsRotation(t *testing.T) {
	r := Compose(RotateX(0.3), RotateY(-1.1), RotateZ(2.4))
	v := V3(1, 2, 3)
	if got := r.Transpose().MulDir(r.MulDir(v)); !vecNear(got, v) {
		t.Errorf("R^T R v = %v, want %v", got, v)
	}
}

func TestComposeOrder(t *testing.T) {
	// Compose(A, B) must equal applying B first, then A.
	a := Translate(V3(1, 0, 0))
	b := RotateZ(math.Pi / 2)

	v := V3(1, 0, 0)
	want := a.MulPoint(b.MulPoint(v))
	got := Compose(a, b).MulPoint(v)
	if !vecNear(got, want) {
		t.Errorf("Compose(A,B)·v = %v, want A·(B·v) = %v", got, want)
	}

	// And it is not commutative for these two.
	other := Compose(b, a).MulPoint(v)
	if vecNear(got, other) {
		t.Error("Compose(A,B) and Compose(B,A) unexpectedly agree")
	}
}

func TestRayAt(t *testing.T) {
	r := Ray{Origin: V3(1, 0, 0), Dir: V3(0, 2, 0)}
	if got := r.At(1.5); !vecNear(got, V3(1, 3, 0)) {
		t.Errorf("At(1.5) = %v", got)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Compose(Translate(V3(1, 2, 3)), RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}
