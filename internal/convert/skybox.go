package convert

import (
	rmath "github.com/Faultbox/rbxvmf/pkg/math"
	"github.com/Faultbox/rbxvmf/pkg/rbx"
	"github.com/Faultbox/rbxvmf/pkg/vmf"
)

// SkyboxMaterial covers the walls of the generated skybox.
var SkyboxMaterial = rbx.Custom{Texture: "tools/toolsskybox", SizeX: 512, SizeY: 512}

// skyboxWalls lists the wall directions in output order.
var skyboxWalls = [6]struct {
	referent string
	axis     int
	sign     float64
}{
	{"SKYBOX+X", 0, 1},
	{"SKYBOX+Y", 1, 1},
	{"SKYBOX+Z", 2, 1},
	{"SKYBOX-X", 0, -1},
	{"SKYBOX-Y", 1, -1},
	{"SKYBOX-Z", 2, -1},
}

// SkyboxParts returns six one-stud-thick walls enclosing b. Each wall
// spans the box on its other two axes and sits flush against its face.
func SkyboxParts(b rmath.BoundingBox) [6]rbx.Part {
	center := b.Center().Array()
	size := b.Size().Array()

	var parts [6]rbx.Part
	for i, w := range skyboxWalls {
		wallSize := size
		wallSize[w.axis] = 1
		pos := center
		pos[w.axis] += w.sign * (size[w.axis]/2 + 0.5)

		parts[i] = rbx.Part{
			Kind:     rbx.KindGeneric,
			Shape:    rbx.Block,
			Referent: w.referent,
			Size:     rmath.Vec3FromArray(wallSize),
			Frame:    rmath.At(rmath.Vec3FromArray(pos)),
			Color:    rbx.White,
			Material: SkyboxMaterial,
		}
	}
	return parts
}

// Skybox decomposes the skybox walls around b into solids, taking ids from
// the part and side cursors.
func Skybox(b rmath.BoundingBox, partID, sideID *uint32, mapScale float64, textures *TextureMap) []vmf.Solid {
	walls := SkyboxParts(b)
	solids := make([]vmf.Solid, 0, len(walls))
	for _, p := range walls {
		*partID++
		solids = append(solids, vmf.Solid{
			ID:    *partID,
			Sides: DecomposePart(p, sideID, DecomposeOptions{MapScale: mapScale}, textures),
		})
	}
	return solids
}
