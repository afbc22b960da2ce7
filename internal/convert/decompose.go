package convert

import (
	"math"

	rmath "github.com/Faultbox/rbxvmf/pkg/math"
	"github.com/Faultbox/rbxvmf/pkg/rbx"
	"github.com/Faultbox/rbxvmf/pkg/vmf"
)

// DecomposeOptions controls how parts become sides.
type DecomposeOptions struct {
	// MapScale is the number of map units per stud.
	MapScale float64
	// DevTextures replaces every material with a developer grid.
	DevTextures bool
}

// DecomposePart returns the six sides of part, taking ids from *sideID.
// The cursor advances past the sides plus vmf.SidePadding reserved ids.
// part must have a positive size.
func DecomposePart(part rbx.Part, sideID *uint32, opts DecomposeOptions, textures *TextureMap) []vmf.Side {
	center := part.Frame.Position
	sides := make([]vmf.Side, 0, 6)

	for _, face := range part.Faces() {
		pts := face.Points
		out := outwardNormal(pts, center)
		texFace := vmf.ClassifyNormal(out)
		texture := ResolveTexture(part, face.DecalSlot, opts.MapScale, opts.DevTextures)

		side := vmf.Side{
			ID:      *sideID,
			Texture: textures.Store(texture),
			Face:    texFace,
		}
		for i := range side.Plane {
			side.Plane[i] = rmath.ToSourceCoordinates(pts[i].Scale(opts.MapScale))
		}
		if part.Shape == rbx.Sphere {
			side.Displacement = sphereDisplacement(texFace, part.Size, pts, opts.MapScale)
		}

		sides = append(sides, side)
		*sideID++
	}

	*sideID += vmf.SidePadding
	return sides
}

// outwardNormal picks whichever orientation of the face normal points
// away from the part center.
func outwardNormal(pts [4]rmath.Vector3, center rmath.Vector3) rmath.Vector3 {
	a := pts[0].Sub(pts[1])
	b := pts[2].Sub(pts[1])
	normalA := a.Cross(b)
	normalB := b.Cross(a)

	inward := center.Sub(rmath.Centroid(pts[:]...))
	if inward.Dot(normalA) > inward.Dot(normalB) {
		return normalB
	}
	return normalA
}

// sphereDisplacement scales the face's sphere patch to the part size and
// anchors it at the face corner with minimum X and Y and maximum Z.
func sphereDisplacement(face vmf.TextureFace, size rmath.Vector3, pts [4]rmath.Vector3, mapScale float64) *vmf.Displacement {
	table := sphereFaces[face]
	d := &vmf.Displacement{
		Offsets:       table.offsets,
		OffsetNormals: table.offsetNormals,
	}

	dims := size.Array()
	for r := range d.Offsets {
		for k := range d.Offsets[r] {
			d.Offsets[r][k] *= dims[k%3] * mapScale / 1000
		}
	}

	anchor := rmath.Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: -math.MaxFloat64}
	for _, p := range pts {
		anchor.X = math.Min(anchor.X, p.X)
		anchor.Y = math.Min(anchor.Y, p.Y)
		anchor.Z = math.Max(anchor.Z, p.Z)
	}
	d.StartPosition = rmath.ToSourceCoordinates(anchor.Scale(mapScale))
	return d
}
