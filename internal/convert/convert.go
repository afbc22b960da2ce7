// Package convert turns parsed Roblox parts into Valve map brushes and
// exports the textures they reference.
package convert

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"

	"go.uber.org/zap"

	rmath "github.com/Faultbox/rbxvmf/pkg/math"
	"github.com/Faultbox/rbxvmf/pkg/rbx"
	"github.com/Faultbox/rbxvmf/pkg/vmf"
)

// Sentinel errors.
var (
	ErrTooManyParts = errors.New("too many parts")
	ErrIDOverflow   = errors.New("side ids overflow into the entity id block")
	ErrUnknownGame  = errors.New("unknown game")
)

// Options controls a conversion.
type Options struct {
	MapScale        float64
	AutoSkybox      bool
	SkyboxClearance float64
	Optimize        bool
	DevTextures     bool
}

// DefaultMapScale is the number of map units per stud.
const DefaultMapScale = 15

// DefaultOptions returns the default conversion settings.
func DefaultOptions() Options {
	return Options{MapScale: DefaultMapScale}
}

// Converter builds map scenes from parts.
type Converter struct {
	Options Options
	// Logger receives progress; nil disables logging.
	Logger *zap.Logger
}

// Scene is a decomposed map ready to be written.
type Scene struct {
	World    []vmf.Solid
	Details  []vmf.DetailSolid
	Textures *TextureMap
	// Bounds covers every part, including the skybox clearance when a
	// skybox was generated.
	Bounds rmath.BoundingBox
}

func (c *Converter) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// sideStride is the number of side ids one solid consumes.
const sideStride = 6 + vmf.SidePadding

// Build decomposes parts into world and detail solids.
//
// Parts are optionally merged first. Scenes emitting more than
// vmf.MaxSolids solids, skybox walls included, fail with ErrTooManyParts.
// Scenes whose side ids would reach the func_detail entity ids fail with
// ErrIDOverflow. The input slice is not modified.
func (c *Converter) Build(parts []rbx.Part) (*Scene, error) {
	log := c.log()

	if c.Options.Optimize {
		before := len(parts)
		parts = rbx.JoinAdjacent(parts, func(bucket, buckets, in, out int) {
			log.Debug("merged bucket",
				zap.Int("bucket", bucket),
				zap.Int("buckets", buckets),
				zap.Int("before", in),
				zap.Int("after", out))
		})
		log.Info("optimized parts",
			zap.Int("before", before),
			zap.Int("after", len(parts)),
			zap.Int("removed", before-len(parts)))
	} else {
		parts = slices.Clone(parts)
	}

	limit := vmf.MaxSolids
	if c.Options.AutoSkybox {
		limit -= len(skyboxWalls)
	}
	if len(parts) > limit {
		return nil, fmt.Errorf("%w: found %d, must be fewer than %d", ErrTooManyParts, len(parts), limit+1)
	}

	// Displacements cannot live on detail brushes.
	details := 0
	for i := range parts {
		if parts[i].Shape != rbx.Block {
			parts[i].Detail = false
		}
		if parts[i].Detail {
			details++
		}
	}

	if err := c.checkSideIDs(len(parts), details); err != nil {
		return nil, err
	}

	partID := uint32(vmf.PartIDBase + vmf.WorldID)
	sideID := uint32(vmf.SideIDBase)
	entityID := uint32(vmf.EntityBase)

	scene := &Scene{
		Textures: vmf.NewTextureMap[Texture](),
		Bounds:   rbx.Bounds(parts),
		World:    make([]vmf.Solid, 0, len(parts)),
	}
	opts := DecomposeOptions{MapScale: c.Options.MapScale, DevTextures: c.Options.DevTextures}

	for _, p := range parts {
		if p.Detail {
			continue
		}
		partID++
		scene.World = append(scene.World, vmf.Solid{
			ID:    partID,
			Sides: DecomposePart(p, &sideID, opts, scene.Textures),
		})
	}
	for _, p := range parts {
		if !p.Detail {
			continue
		}
		entityID++
		partID++
		scene.Details = append(scene.Details, vmf.DetailSolid{
			EntityID: entityID,
			Solid: vmf.Solid{
				ID:    partID,
				Sides: DecomposePart(p, &sideID, opts, scene.Textures),
			},
		})
	}

	if c.Options.AutoSkybox {
		scene.Bounds.YMax += c.Options.SkyboxClearance
		scene.World = append(scene.World, Skybox(scene.Bounds, &partID, &sideID, c.Options.MapScale, scene.Textures)...)
	}

	log.Info("built scene",
		zap.Int("world", len(scene.World)),
		zap.Int("detail", len(scene.Details)),
		zap.Int("textures", scene.Textures.Len()))
	return scene, nil
}

// checkSideIDs rejects scenes whose last side id would not stay below the
// first func_detail entity id. Without detail parts the entity block is
// empty and side ids may run past it.
func (c *Converter) checkSideIDs(parts, details int) error {
	if details == 0 {
		return nil
	}
	solids := parts
	if c.Options.AutoSkybox {
		solids += len(skyboxWalls)
	}
	lastSide := vmf.SideIDBase + solids*sideStride - vmf.SidePadding - 1
	if lastSide >= vmf.EntityBase+1 {
		return fmt.Errorf("%w: %d solids need side ids up to %d, first entity id is %d",
			ErrIDOverflow, solids, lastSide, vmf.EntityBase+1)
	}
	return nil
}

// WriteVMF writes the scene as a complete map file.
func (s *Scene) WriteVMF(w io.Writer, skyName string) error {
	vw := vmf.NewWriter(w)
	vw.VersionInfo(vmf.EditorVersion, vmf.EditorBuild, 0, false)
	vw.Visgroups()
	vw.ViewSettings()
	vw.World(0, skyName, s.World, s.Textures)
	vw.Detail(s.Details, s.Textures)
	return vw.Flush()
}

var skyNames = map[string]string{
	"css":     "sky_day01_05",
	"csgo":    "sky_day02_05",
	"gmod":    "painted",
	"hl2":     "sky_day01_04",
	"hl2e1":   "sky_ep01_01",
	"hl2e2":   "sky_ep02_01_hdr",
	"hl":      "city",
	"hls":     "sky_wasteland02",
	"l4d":     "river_hdr",
	"l4d2":    "sky_l4d_c1_2_hdr",
	"portal2": "sky_day01_01",
	"portal":  "sky_day01_05_hdr",
	"tf2":     "sky_day01_01",
}

// SkyName returns the default sky texture of a supported game.
func SkyName(game string) (string, error) {
	name, ok := skyNames[game]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGame, game)
	}
	return name, nil
}

// Games returns the supported game identifiers, sorted.
func Games() []string {
	games := make([]string, 0, len(skyNames))
	for g := range skyNames {
		games = append(games, g)
	}
	sort.Strings(games)
	return games
}
