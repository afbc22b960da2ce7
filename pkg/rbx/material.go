package rbx

import "fmt"

// Material is the surface applied to a part or one of its faces.
// It is a closed set: CatalogMaterial, Decal, Texture and Custom.
type Material interface {
	// Name is the texture base name, e.g. "plastic" or "decal_1234".
	Name() string
	// Dimensions returns the texture size in pixels.
	Dimensions() (x, y uint64)
	// Hash returns a comparable identity for merging, or false when the
	// material depends on fetched or procedurally filled content.
	Hash() (MaterialHash, bool)
	// Generated reports whether the material's VMT and texture must be
	// produced during export rather than referenced from the game.
	Generated() bool

	isMaterial()
}

// CatalogMaterial is one of the built-in Roblox materials, keyed by its
// engine enum value.
type CatalogMaterial uint32

// Catalog materials.
const (
	Plastic       CatalogMaterial = 256
	SmoothPlastic CatalogMaterial = 272
	Wood          CatalogMaterial = 512
	WoodPlanks    CatalogMaterial = 528
	Marble        CatalogMaterial = 784
	Slate         CatalogMaterial = 800
	Concrete      CatalogMaterial = 816
	Granite       CatalogMaterial = 832
	Brick         CatalogMaterial = 848
	Pebble        CatalogMaterial = 864
	Cobblestone   CatalogMaterial = 880
	CorrodedMetal CatalogMaterial = 1040
	DiamondPlate  CatalogMaterial = 1056
	Foil          CatalogMaterial = 1072
	Metal         CatalogMaterial = 1088
	Grass         CatalogMaterial = 1280
	Sand          CatalogMaterial = 1296
	Fabric        CatalogMaterial = 1312
	Ice           CatalogMaterial = 1536
	Glass         CatalogMaterial = 1568
	ForceField    CatalogMaterial = 1584
)

// smoothPlasticAlt is the legacy enum value that also means SmoothPlastic.
const smoothPlasticAlt = 288

type catalogInfo struct {
	name string
	size uint64
}

var catalog = map[CatalogMaterial]catalogInfo{
	Plastic:       {"plastic", 32},
	SmoothPlastic: {"smoothplastic", 32},
	Wood:          {"wood", 1024},
	WoodPlanks:    {"woodplanks", 1024},
	Marble:        {"marble", 1024},
	Slate:         {"slate", 1024},
	Concrete:      {"concrete", 1024},
	Granite:       {"granite", 1024},
	Brick:         {"brick", 1024},
	Pebble:        {"pebble", 512},
	Cobblestone:   {"cobblestone", 1024},
	CorrodedMetal: {"rust", 1024},
	DiamondPlate:  {"diamondplate", 512},
	Foil:          {"aluminium", 512},
	Metal:         {"metal", 512},
	Grass:         {"grass", 1024},
	Sand:          {"sand", 1024},
	Fabric:        {"fabric", 512},
	Ice:           {"ice", 1024},
	Glass:         {"glass", 512},
	ForceField:    {"forcefield", 1024},
}

// MaterialFromID maps a Roblox Material token to a catalog material.
func MaterialFromID(id uint32) (CatalogMaterial, bool) {
	if id == smoothPlasticAlt {
		return SmoothPlastic, true
	}
	m := CatalogMaterial(id)
	if _, ok := catalog[m]; !ok {
		return 0, false
	}
	return m, true
}

func (m CatalogMaterial) Name() string {
	if info, ok := catalog[m]; ok {
		return info.name
	}
	return fmt.Sprintf("unknown_%d", uint32(m))
}

func (m CatalogMaterial) Dimensions() (uint64, uint64) {
	info := catalog[m]
	return info.size, info.size
}

func (m CatalogMaterial) Hash() (MaterialHash, bool) {
	return MaterialHash{Kind: HashCatalog, Catalog: m}, true
}

func (m CatalogMaterial) Generated() bool { return true }

func (CatalogMaterial) isMaterial() {}

// String returns the material name.
func (m CatalogMaterial) String() string { return m.Name() }

// Decal is an image asset stretched over a whole face.
type Decal struct {
	ID           uint64
	SizeX, SizeY uint64
}

func (d Decal) Name() string                 { return fmt.Sprintf("decal_%d", d.ID) }
func (d Decal) Dimensions() (uint64, uint64) { return d.SizeX, d.SizeY }
func (Decal) Hash() (MaterialHash, bool)     { return MaterialHash{}, false }
func (Decal) Generated() bool                { return true }
func (Decal) isMaterial()                    {}

// Texture is an image asset tiled across a face every StudsPerU/V studs.
type Texture struct {
	ID                   uint64
	SizeX, SizeY         uint64
	StudsPerU, StudsPerV float64
	OffsetU, OffsetV     float64
}

func (t Texture) Name() string                 { return fmt.Sprintf("texture_%d", t.ID) }
func (t Texture) Dimensions() (uint64, uint64) { return t.SizeX, t.SizeY }
func (Texture) Hash() (MaterialHash, bool)     { return MaterialHash{}, false }
func (Texture) Generated() bool                { return true }
func (Texture) isMaterial()                    {}

// Custom is a material backed by a literal texture path.
//
// Fill stretches the texture over the face instead of tiling it at a fixed
// scale. Generate marks materials whose name is derived from color, alpha
// and reflectance, with a VMT written at export time.
type Custom struct {
	Texture      string
	Fill         bool
	Generate     bool
	SizeX, SizeY uint64
}

func (c Custom) Name() string                 { return c.Texture }
func (c Custom) Dimensions() (uint64, uint64) { return c.SizeX, c.SizeY }

func (c Custom) Hash() (MaterialHash, bool) {
	if c.Fill {
		return MaterialHash{}, false
	}
	return MaterialHash{Kind: HashCustom, Custom: c.Texture, SizeX: c.SizeX, SizeY: c.SizeY}, true
}

func (c Custom) Generated() bool { return c.Generate }
func (Custom) isMaterial()       {}

// Preset custom materials produced by the parser.
var (
	// BlankDecal stands in for decals without a resolvable asset id. Faces
	// using it are never tinted.
	BlankDecal         = Custom{Texture: "decal", Generate: true, SizeX: 32, SizeY: 32}
	Studs              = Custom{Texture: "studs", Generate: true, SizeX: 32, SizeY: 32}
	Inlet              = Custom{Texture: "inlet", Generate: true, SizeX: 32, SizeY: 32}
	SpawnLocationDecal = Custom{Texture: "spawnlocation", Fill: true, Generate: true, SizeX: 256, SizeY: 256}
)

// IsBlankDecal reports whether m is the untinted placeholder decal.
func IsBlankDecal(m Material) bool {
	c, ok := m.(Custom)
	return ok && c.Texture == BlankDecal.Texture
}

// HashKind tags a MaterialHash.
type HashKind uint8

// Hash kinds. HashNone is the zero value and marks an empty decal slot.
const (
	HashNone HashKind = iota
	HashCatalog
	HashCustom
)

// MaterialHash is the comparable identity of a mergeable material.
type MaterialHash struct {
	Kind         HashKind
	Catalog      CatalogMaterial
	Custom       string
	SizeX, SizeY uint64
}
