// Package math provides the vector and coordinate-frame types used to
// describe Roblox parts and convert them to Source engine space.
package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// approxMargin is the absolute per-component tolerance used by ApproxEqual.
const approxMargin = 1.0 / 10_000.0

// Vector3 is a 3D vector with behavior matching Roblox.
type Vector3 struct {
	X, Y, Z float64
}

// Vec3FromArray builds a vector from an [x, y, z] array.
func Vec3FromArray(a [3]float64) Vector3 {
	return Vector3{a[0], a[1], a[2]}
}

// Array returns the vector as an [x, y, z] array.
func (v Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// DivScalar returns v / s.
func (v Vector3) DivScalar(s float64) Vector3 {
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

// Mul returns the component-wise product.
func (v Vector3) Mul(other Vector3) Vector3 {
	return Vector3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Div returns the component-wise quotient.
func (v Vector3) Div(other Vector3) Vector3 {
	return Vector3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// Abs returns the vector with every component made non-negative.
func (v Vector3) Abs() Vector3 {
	return Vector3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// Dot returns the dot product.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Magnitude returns the length of the vector.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ClosestAxis returns the signed unit axis along v's dominant component.
// Ties resolve in X, Y, Z order.
func (v Vector3) ClosestAxis() Vector3 {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case ax >= ay && ax >= az:
		return Vector3{X: signOne(v.X)}
	case ay >= ax && ay >= az:
		return Vector3{Y: signOne(v.Y)}
	default:
		return Vector3{Z: signOne(v.Z)}
	}
}

// signOne returns -1 for negative values (including -0) and 1 otherwise.
func signOne(f float64) float64 {
	if math.Signbit(f) {
		return -1
	}
	return 1
}

// ApproxEqual reports whether every component differs by at most 1e-4.
func (v Vector3) ApproxEqual(other Vector3) bool {
	if v == other {
		return true
	}
	return math.Abs(v.X-other.X) <= approxMargin &&
		math.Abs(v.Y-other.Y) <= approxMargin &&
		math.Abs(v.Z-other.Z) <= approxMargin
}

// ToWorld maps a point in frame-local space to world space.
func (v Vector3) ToWorld(f Frame) Vector3 {
	w := f.matrix().Transpose().Mul3x1(mgl64.Vec3(v.Array()))
	return Vec3FromArray(w).Add(f.Position)
}

// ToLocal reverses ToWorld.
func (v Vector3) ToLocal(f Frame) Vector3 {
	l := f.matrix().Mul3x1(mgl64.Vec3(v.Sub(f.Position).Array()))
	return Vec3FromArray(l)
}

// Centroid returns the mean of the given points.
func Centroid(points ...Vector3) Vector3 {
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.DivScalar(float64(len(points)))
}

// Order provides an arbitrary total order over vectors: lexicographic by
// X, then Y, then Z. Incomparable (NaN) components count as equal.
func Order(a, b Vector3) int {
	if c := compareFloat(a.X, b.X); c != 0 {
		return c
	}
	if c := compareFloat(a.Y, b.Y); c != 0 {
		return c
	}
	return compareFloat(a.Z, b.Z)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
