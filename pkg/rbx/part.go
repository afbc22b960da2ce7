// Package rbx models Roblox parts and parses them from RBXLX place files.
package rbx

import (
	"errors"
	"fmt"
	"math"

	rmath "github.com/Faultbox/rbxvmf/pkg/math"
)

// ErrDegeneratePart is returned by Validate for parts without a positive,
// finite size.
var ErrDegeneratePart = errors.New("degenerate part size")

// Kind is the Roblox class a part was read from.
type Kind uint8

// Part kinds.
const (
	KindGeneric Kind = iota
	KindSpawnLocation
	KindTruss
)

// String returns the Roblox class name.
func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "Part"
	case KindSpawnLocation:
		return "SpawnLocation"
	case KindTruss:
		return "TrussPart"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Shape is the primitive geometry of a part.
type Shape uint8

// Part shapes.
const (
	Block Shape = iota
	Sphere
	Cylinder
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case Block:
		return "Block"
	case Sphere:
		return "Sphere"
	case Cylinder:
		return "Cylinder"
	default:
		return fmt.Sprintf("Shape(%d)", s)
	}
}

// Decal slots. Roblox keys face decals by these indices; Right is the -X
// face and Left the +X face.
const (
	DecalRight  = 0
	DecalTop    = 1
	DecalBack   = 2
	DecalLeft   = 3
	DecalBottom = 4
	DecalFront  = 5
)

// Color3 is an 8-bit RGB color.
type Color3 struct {
	R, G, B uint8
}

// White is the untinted color.
var White = Color3{255, 255, 255}

// Color3FromUint32 unpacks a Color3uint8 value (0x00RRGGBB).
func Color3FromUint32(v uint32) Color3 {
	return Color3{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// Part is a single Roblox part.
type Part struct {
	Kind         Kind
	Shape        Shape
	Detail       bool
	Referent     string
	Size         rmath.Vector3
	Frame        rmath.Frame
	Color        Color3
	Transparency float64
	Reflectance  float64
	Material     Material
	// Decals holds per-face overrides indexed by the Decal* slots; nil
	// entries use Material.
	Decals [6]Material
}

// Face is one quad of a part's bounding box.
type Face struct {
	// Points are in world space. The first three define the plane in the
	// order Source expects.
	Points    [4]rmath.Vector3
	DecalSlot int
}

// faceTable maps each face to its vertex indices (see Vertices) and decal slot.
var faceTable = [6]struct {
	vertices [4]int
	slot     int
}{
	{[4]int{5, 7, 4, 6}, DecalTop},    // +Y
	{[4]int{0, 2, 1, 3}, DecalBottom}, // -Y
	{[4]int{2, 7, 6, 3}, DecalRight},  // -X
	{[4]int{5, 0, 1, 4}, DecalLeft},   // +X
	{[4]int{3, 4, 7, 0}, DecalFront},  // -Z
	{[4]int{6, 1, 2, 5}, DecalBack},   // +Z
}

// Vertices returns the 8 corners of the part in world space. Corners 0-3
// lie on the local -Y face, 4-7 on the +Y face.
func (p Part) Vertices() [8]rmath.Vector3 {
	h := p.Size.Scale(0.5)
	local := [8]rmath.Vector3{
		{X: h.X, Y: -h.Y, Z: -h.Z},
		{X: h.X, Y: -h.Y, Z: h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z},
		{X: -h.X, Y: -h.Y, Z: -h.Z},
		{X: h.X, Y: h.Y, Z: -h.Z},
		{X: h.X, Y: h.Y, Z: h.Z},
		{X: -h.X, Y: h.Y, Z: h.Z},
		{X: -h.X, Y: h.Y, Z: -h.Z},
	}
	var out [8]rmath.Vector3
	for i, v := range local {
		out[i] = v.ToWorld(p.Frame)
	}
	return out
}

// Faces returns the 6 faces of the part in world space.
func (p Part) Faces() [6]Face {
	vertices := p.Vertices()
	var faces [6]Face
	for i, entry := range faceTable {
		faces[i].DecalSlot = entry.slot
		for j, idx := range entry.vertices {
			faces[i].Points[j] = vertices[idx]
		}
	}
	return faces
}

// Validate checks that every size component is finite and strictly positive.
func (p Part) Validate() error {
	for _, c := range p.Size.Array() {
		if !(c > 0) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: %v", ErrDegeneratePart, p.Size)
		}
	}
	return nil
}

// Bounds returns the bounding box of all parts. The fold starts from an
// empty box at the origin.
func Bounds(parts []Part) rmath.BoundingBox {
	b := rmath.ZeroBounds()
	for _, p := range parts {
		for _, v := range p.Vertices() {
			b = b.Include(v)
		}
	}
	return b
}

// VisualHash is everything about a part's appearance except its geometry.
type VisualHash struct {
	Detail       bool
	Color        Color3
	Transparency uint64
	Reflectance  uint64
	Material     MaterialHash
	Decals       [6]MaterialHash
}

// VisualHash returns the part's visual identity, or false when the part
// cannot take part in merging: non-generic kinds, non-block shapes, and
// parts using any unhashable material.
func (p Part) VisualHash() (VisualHash, bool) {
	if p.Kind != KindGeneric || p.Shape != Block || p.Material == nil {
		return VisualHash{}, false
	}
	material, ok := p.Material.Hash()
	if !ok {
		return VisualHash{}, false
	}

	h := VisualHash{
		Detail:       p.Detail,
		Color:        p.Color,
		Transparency: math.Float64bits(p.Transparency),
		Reflectance:  math.Float64bits(p.Reflectance),
		Material:     material,
	}
	for i, decal := range p.Decals {
		if decal == nil {
			continue
		}
		dh, ok := decal.Hash()
		if !ok {
			return VisualHash{}, false
		}
		h.Decals[i] = dh
	}
	return h, true
}
