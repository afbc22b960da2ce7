// Package vmf models Valve Map Format brushes and writes them as text.
package vmf

// ID blocks. Parts, sides and entities draw ids from disjoint ranges of
// IDBlockSize so they never collide in the file's flat id namespace.
const (
	IDBlockSize = 35000
	PartIDBase  = 0 * IDBlockSize
	SideIDBase  = 1 * IDBlockSize
	EntityBase  = 2 * IDBlockSize
)

// WorldID is the id of the worldspawn entity. Solid ids start after it.
const WorldID = 1

// MaxSolids is the largest number of solids a map may contain.
const MaxSolids = 32768

// SidePadding is the number of side ids reserved after every solid.
const SidePadding = 6

// Displacement is a power-2 displacement: a 5x5 grid of offsets layered
// onto the side's base quad, anchored at StartPosition.
type Displacement struct {
	Offsets       [5][15]float64
	OffsetNormals [5][15]float64
	StartPosition [3]float64
}

// Side is one planar face of a solid. Plane holds three points on the
// face, in the winding that makes the front of the plane face outward.
type Side struct {
	ID           uint32
	Texture      TextureID
	Face         TextureFace
	Plane        [3][3]float64
	Displacement *Displacement
}

// Solid is a convex brush.
type Solid struct {
	ID    uint32
	Sides []Side
}

// DetailSolid is a solid wrapped in its own func_detail entity.
type DetailSolid struct {
	EntityID uint32
	Solid    Solid
}
