package render

// TextureSlot optionally holds a texture. The zero value is empty.
type TextureSlot struct {
	tex *Texture
}

// Bind returns a slot holding t. A nil texture leaves the slot empty.
func Bind(t *Texture) TextureSlot {
	return TextureSlot{tex: t}
}

// Get returns the bound texture and whether one is present.
func (s TextureSlot) Get() (*Texture, bool) {
	return s.tex, s.tex != nil
}

// Bound reports whether the slot holds a texture.
func (s TextureSlot) Bound() bool {
	return s.tex != nil
}

// Material is the set of optional textures a mesh is shaded with. The
// specular slot is carried for completeness; lighting does not read it.
type Material struct {
	Diffuse  TextureSlot
	Normal   TextureSlot
	Specular TextureSlot
}
