package vmf

import (
	"fmt"
	"math"

	rmath "github.com/Faultbox/rbxvmf/pkg/math"
)

// TextureFace is the cardinal direction a side faces, in Roblox axes.
// It selects the texture projection axes.
type TextureFace uint8

// Texture faces.
const (
	XPos TextureFace = iota
	XNeg
	ZPos
	ZNeg
	YPos
	YNeg
)

var faceAxes = [...]struct {
	name, u, v string
}{
	XPos: {"X_POS", "0 1 0", "0 0 -1"},
	XNeg: {"X_NEG", "0 -1 0", "0 0 -1"},
	ZPos: {"Z_POS", "1 0 0", "0 0 -1"},
	ZNeg: {"Z_NEG", "-1 0 0", "0 0 -1"},
	YPos: {"Y_POS", "0 1 0", "1 0 0"},
	YNeg: {"Y_NEG", "0 -1 0", "1 0 0"},
}

// UAxis returns the U texture axis as written in the map file.
func (f TextureFace) UAxis() string { return faceAxes[f].u }

// VAxis returns the V texture axis as written in the map file.
func (f TextureFace) VAxis() string { return faceAxes[f].v }

func (f TextureFace) String() string {
	if int(f) < len(faceAxes) {
		return faceAxes[f].name
	}
	return fmt.Sprintf("TextureFace(%d)", f)
}

// ClassifyNormal returns the cardinal face closest to the normal n.
// Ties go to X, then Y. A zero component's sign bit decides direction.
func ClassifyNormal(n rmath.Vector3) TextureFace {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		if math.Signbit(n.X) {
			return XNeg
		}
		return XPos
	case ay >= ax && ay >= az:
		if math.Signbit(n.Y) {
			return YNeg
		}
		return YPos
	default:
		if math.Signbit(n.Z) {
			return ZNeg
		}
		return ZPos
	}
}
