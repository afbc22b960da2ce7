package vmf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
)

// ErrUnknownTexture is returned when a side references a handle that the
// texture source cannot resolve.
var ErrUnknownTexture = errors.New("unknown texture handle")

// Default header values written by VersionInfo.
const (
	EditorVersion = 400
	EditorBuild   = 3325
)

const vmfTemplates = `
{{- define "versioninfo" -}}
versioninfo
{
	"editorversion" "{{.EditorVersion}}"
	"editorbuild" "{{.EditorBuild}}"
	"mapversion" "{{.MapVersion}}"
	"formatversion" "100"
	"prefab" "{{if .Prefab}}1{{else}}0{{end}}"
}
{{end}}

{{- define "world" -}}
world
{
	"id" "{{.ID}}"
	"mapversion" "{{.MapVersion}}"
	"classname" "worldspawn"
	"skyname" "{{.SkyName}}"
{{range .Solids}}{{template "solid" .}}{{end -}}
}
{{end}}

{{- define "detail" -}}
entity
{
	"id" "{{.EntityID}}"
	"classname" "func_detail"
{{template "solid" .Solid -}}
}
{{end}}

{{- define "solid" -}}
{{"\t"}}solid
	{
		"id" "{{.ID}}"
{{range .Sides}}{{template "side" .}}{{end -}}
{{"\t"}}}
{{end}}

{{- define "side" -}}
{{"\t\t"}}side
		{
			"id" "{{.ID}}"
			"plane" "{{.Plane}}"
			"material" "{{.Material}}"
			"uaxis" "{{.UAxis}}"
			"vaxis" "{{.VAxis}}"
			"rotation" "0"
			"lightmapscale" "16"
			"smoothing_groups" "0"
{{with .Displacement}}{{template "dispinfo" .}}{{end -}}
{{"\t\t"}}}
{{end}}

{{- define "dispinfo" -}}
{{"\t\t\t"}}dispinfo
			{
				"power" "2"
				"startposition" "[{{.StartPosition}}]"
				"flags" "0"
				"elevation" "0"
				"subdiv" "1"
				normals
				{
{{range $i, $row := .Offsets}}{{"\t\t\t\t\t"}}"row{{$i}}" "0 0 0 0 0 0 0 0 0 0 0 0 0 0 0"
{{end -}}
{{"\t\t\t\t"}}}
				distances
				{
{{range $i, $row := .Offsets}}{{"\t\t\t\t\t"}}"row{{$i}}" "1e-05 1e-05 1e-05 1e-05 1e-05"
{{end -}}
{{"\t\t\t\t"}}}
				offsets
				{
{{range $i, $row := .Offsets}}{{"\t\t\t\t\t"}}"row{{$i}}" "{{$row}}"
{{end -}}
{{"\t\t\t\t"}}}
				offset_normals
				{
{{range $i, $row := .OffsetNormals}}{{"\t\t\t\t\t"}}"row{{$i}}" "{{$row}}"
{{end -}}
{{"\t\t\t\t"}}}
				alphas
				{
{{range $i, $row := .Offsets}}{{"\t\t\t\t\t"}}"row{{$i}}" "0 0 0 0 0"
{{end -}}
{{"\t\t\t\t"}}}
				triangle_tags
				{
{{range $i := .TriangleRows}}{{"\t\t\t\t\t"}}"row{{$i}}" "0 0 0 0 0 0 0 0"
{{end -}}
{{"\t\t\t\t"}}}
				allowed_verts
				{
					"10" "-1 -1 -1 -1 -1 -1 -1 -1 -1 -1"
				}
			}
{{end}}
`

var templates = template.Must(template.New("vmf").Parse(vmfTemplates))

// Writer renders map blocks to an underlying writer. The first error
// stops all further output and is reported by Err and Flush.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter returns a Writer that buffers output to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

func (w *Writer) execute(name string, data any) {
	if w.err != nil {
		return
	}
	if err := templates.ExecuteTemplate(w.w, name, data); err != nil {
		w.err = fmt.Errorf("writing %s: %w", name, err)
	}
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(s); err != nil {
		w.err = err
	}
}

// VersionInfo writes the versioninfo block.
func (w *Writer) VersionInfo(editorVersion, editorBuild, mapVersion uint32, prefab bool) {
	w.execute("versioninfo", struct {
		EditorVersion, EditorBuild, MapVersion uint32
		Prefab                                 bool
	}{editorVersion, editorBuild, mapVersion, prefab})
}

// Visgroups writes an empty visgroups block.
func (w *Writer) Visgroups() { w.raw("visgroups{}\n") }

// ViewSettings writes an empty viewsettings block.
func (w *Writer) ViewSettings() { w.raw("viewsettings{}\n") }

// World writes the worldspawn entity with all structural solids.
func (w *Writer) World(mapVersion uint32, skyName string, solids []Solid, textures TextureSource) {
	if w.err != nil {
		return
	}
	views := make([]solidView, 0, len(solids))
	for _, s := range solids {
		v, err := newSolidView(s, textures)
		if err != nil {
			w.err = err
			return
		}
		views = append(views, v)
	}
	w.execute("world", struct {
		ID         uint32
		MapVersion uint32
		SkyName    string
		Solids     []solidView
	}{WorldID, mapVersion, skyName, views})
}

// Detail writes one func_detail entity per solid.
func (w *Writer) Detail(details []DetailSolid, textures TextureSource) {
	for _, d := range details {
		if w.err != nil {
			return
		}
		v, err := newSolidView(d.Solid, textures)
		if err != nil {
			w.err = err
			return
		}
		w.execute("detail", struct {
			EntityID uint32
			Solid    solidView
		}{d.EntityID, v})
	}
}

type solidView struct {
	ID    uint32
	Sides []sideView
}

type sideView struct {
	ID           uint32
	Plane        string
	Material     string
	UAxis        string
	VAxis        string
	Displacement *displacementView
}

type displacementView struct {
	StartPosition string
	Offsets       [5]string
	OffsetNormals [5]string
	TriangleRows  []int
}

func newSolidView(s Solid, textures TextureSource) (solidView, error) {
	v := solidView{ID: s.ID, Sides: make([]sideView, 0, len(s.Sides))}
	for _, side := range s.Sides {
		t, ok := textures.Lookup(side.Texture)
		if !ok {
			return solidView{}, fmt.Errorf("%w: side %d references %d", ErrUnknownTexture, side.ID, side.Texture)
		}
		sv := sideView{
			ID: side.ID,
			Plane: fmt.Sprintf("(%s) (%s) (%s)",
				formatFloats(side.Plane[0][:]), formatFloats(side.Plane[1][:]), formatFloats(side.Plane[2][:])),
			Material: t.Name(),
			UAxis:    fmt.Sprintf("[%s %s] %s", side.Face.UAxis(), FormatFloat(t.OffsetX(side)), FormatFloat(t.ScaleX(side))),
			VAxis:    fmt.Sprintf("[%s %s] %s", side.Face.VAxis(), FormatFloat(t.OffsetY(side)), FormatFloat(t.ScaleZ(side))),
		}
		if d := side.Displacement; d != nil {
			dv := &displacementView{
				StartPosition: formatFloats(d.StartPosition[:]),
				TriangleRows:  []int{0, 1, 2, 3},
			}
			for i := range d.Offsets {
				dv.Offsets[i] = formatFloats(d.Offsets[i][:])
				dv.OffsetNormals[i] = formatFloats(d.OffsetNormals[i][:])
			}
			sv.Displacement = dv
		}
		v.Sides = append(v.Sides, sv)
	}
	return v, nil
}

// FormatFloat renders v in the shortest decimal form without an exponent.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = FormatFloat(v)
	}
	return strings.Join(parts, " ")
}
