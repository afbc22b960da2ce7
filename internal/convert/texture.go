package convert

import (
	"fmt"
	"math"

	rmath "github.com/Faultbox/rbxvmf/pkg/math"
	"github.com/Faultbox/rbxvmf/pkg/rbx"
	"github.com/Faultbox/rbxvmf/pkg/vmf"
)

// Scale is a texture projection scale. Fill stretches the texture across
// the side; otherwise X and Z are map units per texel.
type Scale struct {
	Fill bool
	X, Z float64
}

// FixedScale returns a uniform fixed scale.
func FixedScale(s float64) Scale { return Scale{X: s, Z: s} }

// Texture is the fully resolved appearance of one side. Equal values
// produce identical output, so textures are interned by value.
type Texture struct {
	Material     rbx.Material
	Color        rbx.Color3
	Transparency uint8
	Reflectance  uint8
	Scale        Scale
	NoOffset     bool
	DimX, DimY   uint64
}

var _ vmf.Texture = Texture{}

// MustGenerate reports whether the texture's assets are produced at export.
func (t Texture) MustGenerate() bool { return t.Material.Generated() }

// Name returns the material path. Non-generated customs use their literal
// path; everything else encodes color, alpha and reflectance in the name.
// The blue channel precedes green.
func (t Texture) Name() string {
	if c, ok := t.Material.(rbx.Custom); ok && !c.Generate {
		return c.Texture
	}
	return fmt.Sprintf("rbx/%s_%x-%x-%x-%x-%x",
		t.Material.Name(), t.Color.R, t.Color.B, t.Color.G, t.Transparency, t.Reflectance)
}

func (t Texture) ScaleX(side vmf.Side) float64 {
	if t.Scale.Fill {
		return planePoint(side, 2).Sub(planePoint(side, 1)).Magnitude() / float64(t.DimX)
	}
	return t.Scale.X
}

func (t Texture) ScaleZ(side vmf.Side) float64 {
	if t.Scale.Fill {
		return planePoint(side, 2).Sub(planePoint(side, 0)).Magnitude() / float64(t.DimY)
	}
	return t.Scale.Z
}

func (t Texture) OffsetX(side vmf.Side) float64 {
	if t.NoOffset {
		return 0
	}
	p := side.Plane[2]
	var pos float64
	switch side.Face {
	case vmf.XPos, vmf.YPos:
		pos = -p[1]
	case vmf.XNeg, vmf.YNeg:
		pos = p[1]
	case vmf.ZPos:
		pos = -p[0]
	case vmf.ZNeg:
		pos = p[0]
	}
	return math.Mod(pos/t.ScaleX(side), float64(t.DimX))
}

func (t Texture) OffsetY(side vmf.Side) float64 {
	if t.NoOffset {
		return 0
	}
	p := side.Plane[2]
	var pos float64
	switch side.Face {
	case vmf.XPos, vmf.XNeg, vmf.ZPos:
		pos = p[2]
	case vmf.ZNeg:
		pos = -p[2]
	case vmf.YPos, vmf.YNeg:
		pos = -p[0]
	}
	return math.Mod(pos/t.ScaleZ(side), float64(t.DimY))
}

func planePoint(side vmf.Side, i int) rmath.Vector3 {
	return rmath.Vec3FromArray(side.Plane[i])
}

// TextureMap interns resolved textures.
type TextureMap = vmf.TextureMap[Texture]

// devTexture returns the developer grid texture substituted for m.
func devTexture(m rbx.Material) Texture {
	path := "dev/graygrid"
	switch m {
	case rbx.Plastic:
		path = "dev/dev_measuregeneric01"
	case rbx.DiamondPlate:
		path = "dev/dev_measuregeneric01b"
	case rbx.Wood:
		path = "customdev/dev_measuregeneric01red"
	case rbx.Brick:
		path = "customdev/dev_measuregeneric01blu"
	case rbx.ForceField:
		path = "tools/toolsclip"
	case rbx.Glass:
		path = "tools/toolsskybox"
	}
	return Texture{
		Material:     rbx.Custom{Texture: path, SizeX: 64, SizeY: 64},
		Color:        rbx.White,
		Transparency: 255,
		Scale:        FixedScale(0.25),
		NoOffset:     true,
		DimX:         64,
		DimY:         64,
	}
}

// ResolveTexture returns the texture for the face of part in decal slot.
func ResolveTexture(part rbx.Part, slot int, mapScale float64, devTextures bool) Texture {
	if devTextures {
		return devTexture(part.Material)
	}

	if decal := part.Decals[slot]; decal != nil {
		t := Texture{
			Material:     decal,
			Color:        part.Color,
			Transparency: alphaByte(part.Transparency),
			Reflectance:  unitByte(part.Reflectance),
		}
		if rbx.IsBlankDecal(decal) {
			t.Color = rbx.White
			t.Transparency = 255
		}
		switch d := decal.(type) {
		case rbx.Decal:
			t.Scale = Scale{Fill: true}
		case rbx.Custom:
			if d.Fill {
				t.Scale = Scale{Fill: true}
			} else {
				t.Scale = FixedScale(mapScale / 32)
			}
		case rbx.Texture:
			t.Scale = Scale{
				X: mapScale * d.StudsPerU / float64(d.SizeX),
				Z: mapScale * d.StudsPerV / float64(d.SizeY),
			}
		default:
			t.Scale = FixedScale(mapScale / 32)
		}
		t.DimX, t.DimY = decal.Dimensions()
		return t
	}

	t := Texture{
		Material:     part.Material,
		Color:        part.Color,
		Transparency: alphaByte(part.Transparency),
		Reflectance:  unitByte(part.Reflectance),
		Scale:        FixedScale(mapScale / 32),
	}
	t.DimX, t.DimY = part.Material.Dimensions()
	return t
}

// alphaByte converts a Roblox transparency to an opacity byte.
func alphaByte(transparency float64) uint8 { return unitByte(1 - transparency) }

// unitByte maps [0, 1] to a rounded byte, clamping out-of-range input.
func unitByte(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(math.Round(255 * v))
	}
}
