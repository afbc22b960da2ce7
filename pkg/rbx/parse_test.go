package rbx

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func partXML(class, referent, extra string) string {
	return fmt.Sprintf(`<Item class="%s" referent="%s">
  <Properties>
    <Vector3 name="size"><X>4</X><Y>1</Y><Z>2</Z></Vector3>
    <CoordinateFrame name="CFrame">
      <X>1</X><Y>2</Y><Z>3</Z>
      <R00>1</R00><R01>0</R01><R02>0</R02>
      <R10>0</R10><R11>1</R11><R12>0</R12>
      <R20>0</R20><R21>0</R21><R22>1</R22>
    </CoordinateFrame>
    <Color3uint8 name="Color3uint8">4288914085</Color3uint8>
    <float name="Transparency">0.5</float>
    <float name="Reflectance">0</float>
    <token name="Material">256</token>
    %s
  </Properties>
</Item>`, class, referent, extra)
}

func placeXML(items ...string) string {
	return `<roblox version="4"><Item class="Workspace" referent="RBX0"><Properties/>` +
		strings.Join(items, "\n") + `</Item></roblox>`
}

func parseString(t *testing.T, doc string) *Scene {
	t.Helper()
	scene, err := Parse(strings.NewReader(doc), ParseOptions{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return scene
}

func TestParsePart(t *testing.T) {
	scene := parseString(t, placeXML(partXML("Part", "RBX1", `<token name="shape">1</token><token name="TopSurface">3</token>`)))

	if len(scene.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(scene.Parts))
	}
	p := scene.Parts[0]
	if p.Referent != "RBX1" || p.Kind != KindGeneric || p.Shape != Block {
		t.Errorf("unexpected part header: %+v", p)
	}
	if p.Size.X != 4 || p.Size.Y != 1 || p.Size.Z != 2 {
		t.Errorf("unexpected size %v", p.Size)
	}
	if p.Frame.Position.X != 1 || p.Frame.Position.Y != 2 || p.Frame.Position.Z != 3 {
		t.Errorf("unexpected position %v", p.Frame.Position)
	}
	if p.Color != (Color3{163, 162, 165}) {
		t.Errorf("unexpected color %v", p.Color)
	}
	if p.Transparency != 0.5 {
		t.Errorf("expected transparency 0.5, got %f", p.Transparency)
	}
	if p.Material != Plastic {
		t.Errorf("expected plastic, got %v", p.Material)
	}
	if p.Decals[DecalTop] != Studs {
		t.Errorf("expected studs on top, got %v", p.Decals[DecalTop])
	}
	if p.Detail {
		t.Error("expected world part")
	}
}

func TestParseRotation(t *testing.T) {
	doc := placeXML(`<Item class="Part" referent="RBX1"><Properties>
    <Vector3 name="size"><X>1</X><Y>1</Y><Z>1</Z></Vector3>
    <CoordinateFrame name="CFrame"><X>0</X><Y>0</Y><Z>0</Z>
      <R00>1</R00><R01>2</R01><R02>3</R02>
      <R10>4</R10><R11>5</R11><R12>6</R12>
      <R20>7</R20><R21>8</R21><R22>9</R22>
    </CoordinateFrame>
    <Color3uint8 name="Color3uint8">0</Color3uint8>
    <float name="Transparency">0</float><float name="Reflectance">0</float>
    <token name="Material">272</token></Properties></Item>`)
	scene := parseString(t, doc)
	if len(scene.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(scene.Parts))
	}
	want := [3][3]float64{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}}
	if scene.Parts[0].Frame.Rotation != want {
		t.Errorf("expected transposed rotation %v, got %v", want, scene.Parts[0].Frame.Rotation)
	}
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		token string
		want  Shape
	}{
		{"0", Sphere},
		{"1", Block},
		{"2", Cylinder},
		{"3", Block},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			scene := parseString(t, placeXML(partXML("Part", "RBX1", `<token name="shape">`+tt.token+`</token>`)))
			if len(scene.Parts) != 1 || scene.Parts[0].Shape != tt.want {
				t.Errorf("expected %v, got %+v", tt.want, scene.Parts)
			}
		})
	}
}

func TestParseKinds(t *testing.T) {
	scene := parseString(t, placeXML(
		partXML("SpawnLocation", "RBX1", ""),
		partXML("TrussPart", "RBX2", ""),
		`<Item class="Script" referent="RBX3"><Properties/></Item>`,
	))
	if len(scene.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(scene.Parts))
	}
	if scene.Parts[0].Kind != KindSpawnLocation {
		t.Errorf("expected spawn location, got %v", scene.Parts[0].Kind)
	}
	if scene.Parts[0].Decals[DecalTop] != SpawnLocationDecal {
		t.Errorf("expected spawn decal on top, got %v", scene.Parts[0].Decals[DecalTop])
	}
	if scene.Parts[1].Kind != KindTruss || scene.Parts[1].Shape != Block {
		t.Errorf("expected truss block, got %v %v", scene.Parts[1].Kind, scene.Parts[1].Shape)
	}
}

func TestParseDecals(t *testing.T) {
	decal := func(face int, url string) string {
		return fmt.Sprintf(`<Item class="Decal" referent="D%d"><Properties>
      <token name="Face">%d</token>
      <Content name="Texture"><url>%s</url></Content>
    </Properties></Item>`, face, face, url)
	}
	texture := `<Item class="Texture" referent="T1"><Properties>
      <token name="Face">2</token>
      <Content name="Texture"><url>rbxassetid://x?id=99</url></Content>
      <float name="StudsPerTileU">-2</float><float name="StudsPerTileV">4</float>
      <float name="OffsetStudsU">0</float><float name="OffsetStudsV">1</float>
    </Properties></Item>`

	part := strings.TrimSuffix(partXML("Part", "RBX1", ""), "</Item>") +
		decal(DecalFront, "http://www.roblox.com/asset/?id=1234") +
		decal(DecalTop, "rbxasset://textures/none.png") +
		decal(9, "http://www.roblox.com/asset/?id=5") +
		texture + "</Item>"

	scene, err := Parse(strings.NewReader(placeXML(part)), ParseOptions{DecalSize: 128})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(scene.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(scene.Parts))
	}
	decals := scene.Parts[0].Decals

	if d, ok := decals[DecalFront].(Decal); !ok || d.ID != 1234 || d.SizeX != 128 {
		t.Errorf("expected decal 1234 at 128px, got %v", decals[DecalFront])
	}
	if !IsBlankDecal(decals[DecalTop]) {
		t.Errorf("expected blank decal on top, got %v", decals[DecalTop])
	}
	tex, ok := decals[DecalBack].(Texture)
	if !ok {
		t.Fatalf("expected texture on back, got %v", decals[DecalBack])
	}
	if tex.ID != 99 || tex.StudsPerU != 2 || tex.StudsPerV != 4 || tex.OffsetV != 1 {
		t.Errorf("unexpected texture %+v", tex)
	}
}

func TestParseDetailModel(t *testing.T) {
	marker := func(prop string) string {
		return `<Item class="StringValue" referent="S1"><Properties>
      <string name="` + prop + `">func_detail</string></Properties></Item>`
	}
	doc := placeXML(
		`<Item class="Model" referent="M1"><Properties/>`+marker("Name")+
			`<Item class="Folder" referent="F1">`+partXML("Part", "RBX1", "")+`</Item></Item>`,
		`<Item class="Model" referent="M2"><Properties/>`+marker("Value")+partXML("Part", "RBX2", "")+`</Item>`,
		`<Item class="Model" referent="M3"><Properties/>`+partXML("Part", "RBX3", "")+`</Item>`,
	)
	scene := parseString(t, doc)
	if len(scene.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(scene.Parts))
	}
	for i, want := range []bool{true, true, false} {
		if scene.Parts[i].Detail != want {
			t.Errorf("part %s: expected detail=%v", scene.Parts[i].Referent, want)
		}
	}
}

func TestParseSkipsMalformed(t *testing.T) {
	broken := `<Item class="Part" referent="BAD"><Properties>
    <Color3uint8 name="Color3uint8">0</Color3uint8></Properties></Item>`
	degenerate := strings.Replace(partXML("Part", "FLAT", ""), "<Y>1</Y>", "<Y>0</Y>", 1)
	unknown := strings.Replace(partXML("Part", "ODD", ""), ">256<", ">999<", 1)

	scene := parseString(t, placeXML(broken, partXML("Part", "OK", ""), degenerate, unknown))
	if len(scene.Parts) != 1 || scene.Parts[0].Referent != "OK" {
		t.Fatalf("expected only OK part, got %+v", scene.Parts)
	}
	if len(scene.Skipped) != 3 {
		t.Fatalf("expected 3 skipped items, got %d", len(scene.Skipped))
	}
	if scene.Skipped[0].Referent != "BAD" || scene.Skipped[0].End <= scene.Skipped[0].Start {
		t.Errorf("unexpected skip record %+v", scene.Skipped[0])
	}
	if !errors.Is(scene.Skipped[1].Reason, ErrDegeneratePart) {
		t.Errorf("expected degenerate part error, got %v", scene.Skipped[1].Reason)
	}
}

func TestParseInvalidXML(t *testing.T) {
	for _, doc := range []string{"", "<roblox><Item>", "not xml <"} {
		if _, err := Parse(strings.NewReader(doc), ParseOptions{}); !errors.Is(err, ErrInvalidXML) {
			t.Errorf("Parse(%q): expected ErrInvalidXML, got %v", doc, err)
		}
	}
}

func TestParseDeclaredCharset(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>` + placeXML(partXML("Part", "caf\xe9", ""))
	scene := parseString(t, doc)
	if len(scene.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(scene.Parts))
	}
	if got := scene.Parts[0].Referent; got != "café" {
		t.Errorf("expected transcoded referent, got %q", got)
	}

	bad := `<?xml version="1.0" encoding="klingon"?>` + placeXML()
	if _, err := Parse(strings.NewReader(bad), ParseOptions{}); !errors.Is(err, ErrInvalidXML) {
		t.Errorf("expected ErrInvalidXML for unknown charset, got %v", err)
	}
}

func TestAssetID(t *testing.T) {
	tests := []struct {
		url  string
		id   uint64
		want bool
	}{
		{"http://www.roblox.com/asset/?id=1234", 1234, true},
		{"rbxassetid://1234", 0, false},
		{"http://x/?id=abc", 0, false},
	}
	for _, tt := range tests {
		id, ok := assetID(tt.url)
		if id != tt.id || ok != tt.want {
			t.Errorf("assetID(%q) = %d, %v", tt.url, id, ok)
		}
	}
}
