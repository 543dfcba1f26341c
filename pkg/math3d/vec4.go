package math3d

// Vec4 is a homogeneous coordinate. W=1 marks a position, W=0 a
// direction, which lets a single Mat4 express both linear and affine
// transforms.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point lifts a Vec3 to a homogeneous position (w=1).
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Dir lifts a Vec3 to a homogeneous direction (w=0).
func Dir(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// Vec3 drops the W component.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Add returns the component-wise sum. Adding a direction to a position
// yields a position; subtracting positions yields a direction.
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the component-wise difference.
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Canonical performs the perspective divide: when W is neither 0 nor 1
// every component is divided by W, normalizing the coordinate back to a
// position. Directions and already-canonical positions pass through.
func (v Vec4) Canonical() Vec4 {
	if v.W == 0 || v.W == 1 {
		return v
	}
	return Vec4{v.X / v.W, v.Y / v.W, v.Z / v.W, 1}
}
