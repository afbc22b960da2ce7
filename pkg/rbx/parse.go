package rbx

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	rmath "github.com/Faultbox/rbxvmf/pkg/math"
)

// DetailMarker is the StringValue name or value that flags a model as detail.
const DetailMarker = "func_detail"

// DefaultDecalSize is the pixel size requested for fetched decals.
const DefaultDecalSize = 256

// ParseOptions controls scene parsing.
type ParseOptions struct {
	// DecalSize is the pixel size requested for fetched decals and textures.
	DecalSize uint64
}

// Skipped describes a malformed item that was left out of the scene.
type Skipped struct {
	Class    string
	Referent string
	Start    int64
	End      int64
	Reason   error
}

// String formats the diagnostic with the item's byte range.
func (s Skipped) String() string {
	return fmt.Sprintf("malformed %s %q at %d-%d: %v", s.Class, s.Referent, s.Start, s.End, s.Reason)
}

// Scene is the flat result of parsing a place file.
type Scene struct {
	Parts   []Part
	Skipped []Skipped
}

// Parse reads an RBXLX document and returns every part in document order.
// Malformed items are skipped and reported in Scene.Skipped; only invalid
// XML fails the parse.
func Parse(r io.Reader, opts ParseOptions) (*Scene, error) {
	if opts.DecalSize == 0 {
		opts.DecalSize = DefaultDecalSize
	}

	root, err := readTree(r)
	if err != nil {
		return nil, err
	}

	p := &parser{opts: opts, scene: &Scene{}}
	for _, c := range root.children {
		p.walk(c, false)
	}
	return p.scene, nil
}

type parser struct {
	opts  ParseOptions
	scene *Scene
}

func (p *parser) walk(n *node, detail bool) {
	class, _ := n.attr("class")
	switch class {
	case "Part", "SpawnLocation", "TrussPart":
		part, err := p.parsePart(n, class, detail)
		if err != nil {
			referent, _ := n.attr("referent")
			p.scene.Skipped = append(p.scene.Skipped, Skipped{
				Class:    class,
				Referent: referent,
				Start:    n.start,
				End:      n.end,
				Reason:   err,
			})
			return
		}
		p.scene.Parts = append(p.scene.Parts, part)
	case "Model":
		modelDetail := detail || hasDetailMarker(n)
		for _, c := range n.children {
			p.walk(c, modelDetail)
		}
	default:
		for _, c := range n.children {
			p.walk(c, detail)
		}
	}
}

func hasDetailMarker(n *node) bool {
	for _, c := range n.children {
		if class, _ := c.attr("class"); class != "StringValue" {
			continue
		}
		props := c.child("Properties")
		if props == nil {
			continue
		}
		if name, err := props.property("string", "Name"); err == nil && name == DetailMarker {
			return true
		}
		if value, err := props.property("string", "Value"); err == nil && value == DetailMarker {
			return true
		}
	}
	return false
}

// surfaceSlots maps surface properties to decal slots.
var surfaceSlots = [...]struct {
	property string
	slot     int
}{
	{"FrontSurface", DecalFront},
	{"BackSurface", DecalBack},
	{"TopSurface", DecalTop},
	{"BottomSurface", DecalBottom},
	{"RightSurface", DecalRight},
	{"LeftSurface", DecalLeft},
}

// Surface type tokens that map to a texture.
const (
	surfaceStuds = 3
	surfaceInlet = 4
)

func (p *parser) parsePart(n *node, class string, detail bool) (Part, error) {
	referent, ok := n.attr("referent")
	if !ok {
		return Part{}, fmt.Errorf("missing referent")
	}
	props := n.child("Properties")
	if props == nil {
		return Part{}, fmt.Errorf("missing <Properties>")
	}

	part := Part{Referent: referent, Detail: detail}
	switch class {
	case "SpawnLocation":
		part.Kind = KindSpawnLocation
	case "TrussPart":
		part.Kind = KindTruss
	default:
		part.Kind = KindGeneric
	}

	sizeNode := props.childWithAttr("Vector3", "name", "size")
	if sizeNode == nil {
		return Part{}, fmt.Errorf("missing size")
	}
	size, err := readVector(sizeNode)
	if err != nil {
		return Part{}, fmt.Errorf("size: %w", err)
	}
	part.Size = size

	frameNode := props.childWithAttr("CoordinateFrame", "name", "CFrame")
	if frameNode == nil {
		return Part{}, fmt.Errorf("missing CFrame")
	}
	if part.Frame, err = readFrame(frameNode); err != nil {
		return Part{}, fmt.Errorf("CFrame: %w", err)
	}

	colorText, err := props.childText("Color3uint8")
	if err != nil {
		return Part{}, err
	}
	color, err := strconv.ParseUint(colorText, 10, 32)
	if err != nil {
		return Part{}, fmt.Errorf("parsing Color3uint8: %w", err)
	}
	part.Color = Color3FromUint32(uint32(color))

	if part.Transparency, err = props.floatProperty("Transparency"); err != nil {
		return Part{}, err
	}
	if part.Reflectance, err = props.floatProperty("Reflectance"); err != nil {
		return Part{}, err
	}

	materialID, err := props.tokenProperty("Material", 32)
	if err != nil {
		return Part{}, err
	}
	material, ok := MaterialFromID(uint32(materialID))
	if !ok {
		return Part{}, fmt.Errorf("unknown material %d", materialID)
	}
	part.Material = material

	// Truss parts have no shape property.
	part.Shape = Block
	if shape, err := props.tokenProperty("shape", 32); err == nil {
		switch shape {
		case 0:
			part.Shape = Sphere
		case 2:
			part.Shape = Cylinder
		}
	}

	for _, s := range surfaceSlots {
		surface, err := props.tokenProperty(s.property, 8)
		if err != nil {
			continue
		}
		switch surface {
		case surfaceStuds:
			part.Decals[s.slot] = Studs
		case surfaceInlet:
			part.Decals[s.slot] = Inlet
		default:
			part.Decals[s.slot] = nil
		}
	}

	p.readDecals(n, &part)
	p.readTextures(n, &part)

	if part.Kind == KindSpawnLocation {
		part.Decals[DecalTop] = SpawnLocationDecal
	}

	if err := part.Validate(); err != nil {
		return Part{}, err
	}
	return part, nil
}

// readDecals applies Decal children to the part's face slots.
func (p *parser) readDecals(n *node, part *Part) {
	for _, c := range childItems(n, "Decal") {
		face, url, ok := faceAndURL(c)
		if !ok || face >= 6 {
			continue
		}
		if id, ok := assetID(url); ok {
			part.Decals[face] = Decal{ID: id, SizeX: p.opts.DecalSize, SizeY: p.opts.DecalSize}
		} else {
			part.Decals[face] = BlankDecal
		}
	}
}

// readTextures applies tiled Texture children to the part's face slots.
func (p *parser) readTextures(n *node, part *Part) {
	for _, c := range childItems(n, "Texture") {
		face, url, ok := faceAndURL(c)
		if !ok {
			continue
		}
		props := c.child("Properties")
		studsU, errU := props.floatProperty("StudsPerTileU")
		studsV, errV := props.floatProperty("StudsPerTileV")
		offsetU, errOU := props.floatProperty("OffsetStudsU")
		offsetV, errOV := props.floatProperty("OffsetStudsV")
		if errU != nil || errV != nil || errOU != nil || errOV != nil || face >= 6 {
			continue
		}

		if id, ok := assetID(url); ok {
			part.Decals[face] = Texture{
				ID:        id,
				SizeX:     p.opts.DecalSize,
				SizeY:     p.opts.DecalSize,
				StudsPerU: math.Abs(studsU),
				StudsPerV: math.Abs(studsV),
				OffsetU:   offsetU,
				OffsetV:   offsetV,
			}
		} else {
			part.Decals[face] = BlankDecal
		}
	}
}

func childItems(n *node, class string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.name != "Item" {
			continue
		}
		if v, _ := c.attr("class"); v == class {
			out = append(out, c)
		}
	}
	return out
}

// faceAndURL reads the Face token and Texture URL of a decal-like item.
func faceAndURL(item *node) (uint64, string, bool) {
	props := item.child("Properties")
	if props == nil {
		return 0, "", false
	}
	face, err := props.tokenProperty("Face", 8)
	if err != nil {
		return 0, "", false
	}
	content := props.childWithAttr("Content", "name", "Texture")
	if content == nil {
		return 0, "", false
	}
	url, err := content.childText("url")
	if err != nil {
		return 0, "", false
	}
	return face, url, true
}

// assetID extracts the numeric id from an "...?id=<n>" asset URL.
func assetID(url string) (uint64, bool) {
	_, id, found := strings.Cut(url, "?id=")
	if !found {
		return 0, false
	}
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readVector(n *node) (rmath.Vector3, error) {
	var v rmath.Vector3
	var err error
	if v.X, err = n.childFloat("X"); err != nil {
		return v, err
	}
	if v.Y, err = n.childFloat("Y"); err != nil {
		return v, err
	}
	if v.Z, err = n.childFloat("Z"); err != nil {
		return v, err
	}
	return v, nil
}

// rotationTags lists the CFrame matrix elements in storage order; the
// stored matrix is the transpose of Roblox's R00..R22.
var rotationTags = [3][3]string{
	{"R00", "R10", "R20"},
	{"R01", "R11", "R21"},
	{"R02", "R12", "R22"},
}

func readFrame(n *node) (rmath.Frame, error) {
	var f rmath.Frame
	var err error
	if f.Position, err = readVector(n); err != nil {
		return f, err
	}
	for row, tags := range rotationTags {
		for col, tag := range tags {
			if f.Rotation[row][col], err = n.childFloat(tag); err != nil {
				return f, err
			}
		}
	}
	return f, nil
}
