package convert

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"

	rmath "github.com/Faultbox/rbxvmf/pkg/math"
	"github.com/Faultbox/rbxvmf/pkg/rbx"
	"github.com/Faultbox/rbxvmf/pkg/vmf"
)

func TestBuildIDBlocks(t *testing.T) {
	world := createTestPart(rbx.Block, rmath.Vector3{}, cube(2))
	other := createTestPart(rbx.Block, rmath.Vector3{X: 10}, cube(2))
	detail := createTestPart(rbx.Block, rmath.Vector3{Y: 10}, cube(2))
	detail.Detail = true

	c := Converter{
		Options: Options{MapScale: 1, AutoSkybox: true, SkyboxClearance: 5},
		Logger:  zap.NewNop(),
	}
	scene, err := c.Build([]rbx.Part{detail, world, other})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(scene.World) != 2+6 {
		t.Fatalf("expected 8 world solids, got %d", len(scene.World))
	}
	if len(scene.Details) != 1 {
		t.Fatalf("expected 1 detail solid, got %d", len(scene.Details))
	}

	var solidIDs, sideIDs []uint32
	for _, s := range scene.World {
		solidIDs = append(solidIDs, s.ID)
		for _, side := range s.Sides {
			sideIDs = append(sideIDs, side.ID)
		}
	}
	d := scene.Details[0]
	solidIDs = append(solidIDs, d.Solid.ID)
	for _, side := range d.Solid.Sides {
		sideIDs = append(sideIDs, side.ID)
	}

	// World parts first, then detail, then the skybox. The worldspawn owns id 1.
	if got := []uint32{scene.World[0].ID, scene.World[1].ID, d.Solid.ID, scene.World[2].ID}; !slices.Equal(got, []uint32{2, 3, 4, 5}) {
		t.Errorf("unexpected solid ids %v", got)
	}
	if d.EntityID != vmf.EntityBase+1 {
		t.Errorf("expected entity id %d, got %d", vmf.EntityBase+1, d.EntityID)
	}

	if slices.Contains(solidIDs, vmf.WorldID) {
		t.Errorf("solid ids %v reuse the worldspawn id", solidIDs)
	}
	if slices.Max(solidIDs) >= slices.Min(sideIDs) {
		t.Errorf("solid ids overlap side ids: %d >= %d", slices.Max(solidIDs), slices.Min(sideIDs))
	}
	if slices.Max(sideIDs) >= d.EntityID {
		t.Errorf("side ids overlap entity ids: %d >= %d", slices.Max(sideIDs), d.EntityID)
	}
	if slices.Min(sideIDs) != vmf.SideIDBase {
		t.Errorf("expected first side id %d, got %d", vmf.SideIDBase, slices.Min(sideIDs))
	}
	slices.Sort(sideIDs)
	if len(slices.Compact(sideIDs)) != 9*6 {
		t.Error("side ids are not unique")
	}
}

func createTestRow(n int) []rbx.Part {
	parts := make([]rbx.Part, n)
	for i := range parts {
		parts[i] = createTestPart(rbx.Block, rmath.Vector3{X: float64(3 * i)}, cube(1))
	}
	return parts
}

func TestBuildTooManyParts(t *testing.T) {
	tests := []struct {
		name    string
		parts   int
		skybox  bool
		message string
	}{
		{"parts only", vmf.MaxSolids + 1, false, "found 32769, must be fewer than 32769"},
		{"skybox walls count", vmf.MaxSolids - 5, true, "found 32763, must be fewer than 32763"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Converter{Options: DefaultOptions()}
			c.Options.AutoSkybox = tt.skybox
			_, err := c.Build(createTestRow(tt.parts))
			if !errors.Is(err, ErrTooManyParts) {
				t.Fatalf("expected ErrTooManyParts, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("unexpected message %q", err)
			}
		})
	}
}

func TestBuildSkyboxAtSolidLimit(t *testing.T) {
	c := Converter{Options: Options{MapScale: 1, AutoSkybox: true}}
	scene, err := c.Build(createTestRow(vmf.MaxSolids - 6))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(scene.World) != vmf.MaxSolids {
		t.Errorf("expected %d solids, got %d", vmf.MaxSolids, len(scene.World))
	}
}

func TestBuildSideIDOverflow(t *testing.T) {
	tests := []struct {
		name    string
		parts   int
		detail  bool
		skybox  bool
		wantErr bool
	}{
		{"detail past entity block", 3000, true, false, true},
		{"last fitting scene", 2917, true, false, false},
		{"skybox pushes past", 2912, true, true, true},
		{"skybox fits", 2911, true, true, false},
		{"no detail entities", 3000, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := createTestRow(tt.parts)
			parts[len(parts)-1].Detail = tt.detail

			c := Converter{Options: Options{MapScale: 1, AutoSkybox: tt.skybox}}
			scene, err := c.Build(parts)
			if tt.wantErr {
				if !errors.Is(err, ErrIDOverflow) {
					t.Fatalf("expected ErrIDOverflow, got %v", err)
				}
				if scene != nil {
					t.Error("expected no scene on overflow")
				}
				return
			}
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			var maxSide uint32
			for _, s := range scene.World {
				for _, side := range s.Sides {
					maxSide = max(maxSide, side.ID)
				}
			}
			for _, d := range scene.Details {
				for _, side := range d.Solid.Sides {
					maxSide = max(maxSide, side.ID)
				}
				if maxSide >= d.EntityID {
					t.Errorf("max side id %d overlaps entity id %d", maxSide, d.EntityID)
				}
			}
		})
	}
}

func TestBuildOptimize(t *testing.T) {
	// A single row of touching blocks merges into one part.
	parts := make([]rbx.Part, 100)
	for i := range parts {
		parts[i] = createTestPart(rbx.Block, rmath.Vector3{X: float64(i)}, cube(1))
	}

	c := Converter{Options: Options{MapScale: 1, Optimize: true}}
	scene, err := c.Build(parts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(scene.World) != 1 {
		t.Errorf("expected 1 merged solid, got %d", len(scene.World))
	}
}

func TestBuildForcesShapesIntoWorld(t *testing.T) {
	sphere := createTestPart(rbx.Sphere, rmath.Vector3{}, cube(4))
	sphere.Detail = true
	cylinder := createTestPart(rbx.Cylinder, rmath.Vector3{X: 8}, cube(4))
	cylinder.Detail = true
	block := createTestPart(rbx.Block, rmath.Vector3{X: 16}, cube(4))
	block.Detail = true

	input := []rbx.Part{sphere, cylinder, block}
	c := Converter{Options: Options{MapScale: 1}}
	scene, err := c.Build(input)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(scene.World) != 2 || len(scene.Details) != 1 {
		t.Errorf("expected 2 world and 1 detail, got %d and %d", len(scene.World), len(scene.Details))
	}
	if scene.World[0].Sides[0].Displacement == nil {
		t.Error("sphere should carry displacements")
	}
	if !input[0].Detail {
		t.Error("Build must not modify its input")
	}
}

func TestBuildSkyboxClearance(t *testing.T) {
	// Bounds x[-10,10], y[0,20], z[-5,5].
	part := createTestPart(rbx.Block, rmath.Vector3{Y: 10}, rmath.Vector3{X: 20, Y: 20, Z: 10})
	c := Converter{Options: Options{MapScale: 1, AutoSkybox: true, SkyboxClearance: 50}}
	scene, err := c.Build([]rbx.Part{part})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if scene.Bounds.YMax != 70 {
		t.Errorf("expected YMax 70, got %f", scene.Bounds.YMax)
	}

	// The +Y wall is the second skybox solid; its lowest plane sits at 70.
	top := scene.World[2]
	lowest := top.Sides[0].Plane[0][2]
	for _, s := range top.Sides {
		for _, p := range s.Plane {
			lowest = min(lowest, p[2])
		}
	}
	if lowest != 70 {
		t.Errorf("expected +Y wall at 70, got %f", lowest)
	}
}

func TestSceneWriteVMF(t *testing.T) {
	world := createTestPart(rbx.Block, rmath.Vector3{}, cube(2))
	detail := createTestPart(rbx.Block, rmath.Vector3{Y: 4}, cube(2))
	detail.Detail = true

	c := Converter{Options: DefaultOptions()}
	scene, err := c.Build([]rbx.Part{world, detail})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var buf bytes.Buffer
	if err := scene.WriteVMF(&buf, "sky_day01_01"); err != nil {
		t.Fatalf("WriteVMF failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"versioninfo",
		`"skyname" "sky_day01_01"`,
		`"classname" "func_detail"`,
		`"material" "rbx/plastic_a3-a5-a2-ff-0"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(out, "{") != strings.Count(out, "}") {
		t.Error("unbalanced braces")
	}
	if strings.Count(out, "\"id\" \"1\"\n") != 1 {
		t.Error("id 1 must belong to the worldspawn only")
	}
	if !strings.Contains(out, "solid\n\t{\n\t\t\"id\" \"2\"") {
		t.Error("first solid should take id 2")
	}
}

func TestSkyName(t *testing.T) {
	name, err := SkyName("tf2")
	if err != nil || name != "sky_day01_01" {
		t.Errorf("expected sky_day01_01, got %q, %v", name, err)
	}
	if _, err := SkyName("quake"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}

	games := Games()
	if len(games) != 13 || !slices.IsSorted(games) {
		t.Errorf("unexpected games %v", games)
	}
	for _, g := range games {
		if _, err := SkyName(g); err != nil {
			t.Errorf("SkyName(%q): %v", g, err)
		}
	}
}
