package vmf

import (
	"fmt"
	"io"
	"strings"
)

// VMT is a LightmappedGeneric material definition.
type VMT struct {
	BaseTexture string
	// Color is the linear $color tint; nil omits it.
	Color *[3]float64
	// Alpha is written as $alpha when non-nil.
	Alpha       *float64
	Translucent bool
	// EnvMapTint enables a cubemap reflection of the given strength when
	// positive.
	EnvMapTint float64
}

// WriteTo writes the material in KeyValues form.
func (m VMT) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString("\"LightmappedGeneric\"\n{\n")
	fmt.Fprintf(&b, "\t$basetexture \"%s\"\n", m.BaseTexture)
	if m.Color != nil {
		fmt.Fprintf(&b, "\t$color \"[%s]\"\n", formatFloats(m.Color[:]))
	}
	if m.Translucent {
		b.WriteString("\t$translucent 1\n")
	}
	if m.Alpha != nil {
		fmt.Fprintf(&b, "\t$alpha %s\n", FormatFloat(*m.Alpha))
	}
	if m.EnvMapTint > 0 {
		t := FormatFloat(m.EnvMapTint)
		b.WriteString("\t$envmap env_cubemap\n")
		fmt.Fprintf(&b, "\t$envmaptint \"[%s %s %s]\"\n", t, t, t)
	}
	b.WriteString("}\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
