package vectors

// Vec3 is a simple 3D vector with float64 components. It is used both as a
// point and as a displacement; callers track which.
type Vec3 struct {
	X, Y, Z float64
}

func Zero() Vec3 {
	return Vec3{X: 0.0, Y: 0.0, Z: 0.0}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// ScaleInt returns v * n.
func (v Vec3) ScaleInt(n int) Vec3 {
	return v.Scale(float64(n))
}

// Mul returns v * o (component-wise).
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// DivInt returns v / n. A zero n yields Inf/NaN components.
func (v Vec3) DivInt(n int) Vec3 {
	d := float64(n)
	return Vec3{v.X / d, v.Y / d, v.Z / d}
}
