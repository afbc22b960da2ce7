package vmf

// Texture describes how a side's material is named and projected.
type Texture interface {
	Name() string
	ScaleX(side Side) float64
	ScaleZ(side Side) float64
	OffsetX(side Side) float64
	OffsetY(side Side) float64
}

// TextureID is a handle into a TextureMap.
type TextureID int

// TextureSource resolves texture handles for the writer.
type TextureSource interface {
	Lookup(id TextureID) (Texture, bool)
}

// TextureMap interns textures by value. Handles are stable and entries
// keep insertion order.
type TextureMap[T interface {
	comparable
	Texture
}] struct {
	entries []T
}

// NewTextureMap returns an empty map.
func NewTextureMap[T interface {
	comparable
	Texture
}]() *TextureMap[T] {
	return &TextureMap[T]{}
}

// Store returns the handle of a texture equal to t, adding t if none exists.
// Lookup is a linear scan; maps hold at most a few hundred textures.
func (m *TextureMap[T]) Store(t T) TextureID {
	for i, e := range m.entries {
		if e == t {
			return TextureID(i)
		}
	}
	m.entries = append(m.entries, t)
	return TextureID(len(m.entries) - 1)
}

// Get returns the texture for id.
func (m *TextureMap[T]) Get(id TextureID) (T, bool) {
	if id < 0 || int(id) >= len(m.entries) {
		var zero T
		return zero, false
	}
	return m.entries[id], true
}

// Lookup implements TextureSource.
func (m *TextureMap[T]) Lookup(id TextureID) (Texture, bool) {
	t, ok := m.Get(id)
	if !ok {
		return nil, false
	}
	return t, true
}

// Len returns the number of distinct textures.
func (m *TextureMap[T]) Len() int { return len(m.entries) }

// All returns the textures in storage order.
func (m *TextureMap[T]) All() []T {
	out := make([]T, len(m.entries))
	copy(out, m.entries)
	return out
}
