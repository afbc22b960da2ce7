package math

import "github.com/go-gl/mathgl/mgl64"

// Frame is a Roblox CFrame: a position plus a 3x3 rotation matrix.
//
// Rotation is stored with Roblox's R00..R22 components transposed, so a
// local point p maps to world space as transpose(Rotation)·p + Position.
type Frame struct {
	Position Vector3
	Rotation [3][3]float64
}

// Identity returns a frame at the origin with no rotation.
func Identity() Frame {
	return Frame{Rotation: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// At returns an unrotated frame at the given position.
func At(position Vector3) Frame {
	f := Identity()
	f.Position = position
	return f
}

// Transpose returns the frame with its rotation matrix transposed.
func (f Frame) Transpose() Frame {
	m := f.Rotation
	return Frame{
		Position: f.Position,
		Rotation: [3][3]float64{
			{m[0][0], m[1][0], m[2][0]},
			{m[0][1], m[1][1], m[2][1]},
			{m[0][2], m[1][2], m[2][2]},
		},
	}
}

// RightVector returns the frame's local X axis.
func (f Frame) RightVector() Vector3 {
	return Vector3{f.Rotation[0][0], f.Rotation[1][0], f.Rotation[2][0]}
}

// UpVector returns the frame's local Y axis.
func (f Frame) UpVector() Vector3 {
	return Vector3{f.Rotation[0][1], f.Rotation[1][1], f.Rotation[2][1]}
}

// BackVector returns the frame's local Z axis.
func (f Frame) BackVector() Vector3 {
	return Vector3{f.Rotation[0][2], f.Rotation[1][2], f.Rotation[2][2]}
}

// RotateX pre-multiplies the rotation by an elemental rotation about X.
func (f Frame) RotateX(radians float64) Frame {
	return f.premultiply(mgl64.Rotate3DX(radians))
}

// RotateY pre-multiplies the rotation by an elemental rotation about Y.
func (f Frame) RotateY(radians float64) Frame {
	return f.premultiply(mgl64.Rotate3DY(radians))
}

// RotateZ pre-multiplies the rotation by an elemental rotation about Z.
func (f Frame) RotateZ(radians float64) Frame {
	return f.premultiply(mgl64.Rotate3DZ(radians))
}

// matrix returns Rotation as an mgl64 matrix with the same rows.
func (f Frame) matrix() mgl64.Mat3 {
	m := f.Rotation
	return mgl64.Mat3FromRows(m[0], m[1], m[2])
}

func (f Frame) premultiply(a mgl64.Mat3) Frame {
	r := a.Mul3(f.matrix())

	out := Frame{Position: f.Position}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out.Rotation[row][col] = r.At(row, col)
		}
	}
	return out
}
