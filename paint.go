package layer

// Paint describes how a shape or image is colored and composited.
type Paint struct {
	// Shader provides source colors. A nil shader paints opaque black.
	Shader Shader

	// Alpha multiplies the shader's alpha.
	Alpha float64

	// BlendMode combines the source with the destination.
	BlendMode BlendMode

	// Blender replaces BlendMode when set.
	Blender Blender

	// ColorFilter is applied to shader colors before blending.
	ColorFilter ColorFilter

	// ImageFilter is only honored by SaveLayer; it filters the layer content
	// before it is composited back.
	ImageFilter ImageFilter
}

// NewPaint creates a Paint with full alpha and normal blending.
func NewPaint(s Shader) *Paint {
	return &Paint{Shader: s, Alpha: 1}
}

// NewColorPaint creates a Paint for a solid color.
func NewColorPaint(c RGBA) *Paint {
	return NewPaint(NewSolidShader(c))
}

// Clone returns a shallow copy of p.
func (p *Paint) Clone() *Paint {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// blend composites premultiplied src over dst.
func (p *Paint) blend(src, dst RGBA) RGBA {
	if p.Blender != nil {
		return p.Blender.Blend(src, dst)
	}
	return BlendPremultiplied(p.BlendMode, src, dst)
}

// sourceAt returns the premultiplied source color at a user-space point.
func (p *Paint) sourceAt(x, y float64) RGBA {
	c := Black
	if p.Shader != nil {
		c = p.Shader.ColorAt(x, y)
	}
	if p.ColorFilter != nil {
		c = p.ColorFilter.FilterColor(c)
	}
	c.A *= p.Alpha
	return c.Clamp().Premultiply()
}

// constantColor reports whether p paints a constant color; the color is
// returned premultiplied.
func (p *Paint) constantColor() (RGBA, bool) {
	s, ok := p.Shader.(*SolidShader)
	if !ok && p.Shader != nil {
		return RGBA{}, false
	}
	c := Black
	if ok {
		c = s.Color
	}
	if p.ColorFilter != nil {
		c = p.ColorFilter.FilterColor(c)
	}
	c.A *= p.Alpha
	return c.Clamp().Premultiply(), true
}
