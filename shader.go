package layer

// Shader produces a color for every point of user space.
//
// ColorAt is evaluated at pixel centers mapped back through the inverse of
// the canvas matrix. The returned color is straight (not premultiplied).
type Shader interface {
	ColorAt(x, y float64) RGBA
}

// SolidShader paints a single color everywhere.
type SolidShader struct {
	Color RGBA
}

// NewSolidShader creates a solid color shader.
func NewSolidShader(c RGBA) *SolidShader {
	return &SolidShader{Color: c}
}

// ColorAt implements Shader.
func (s *SolidShader) ColorAt(_, _ float64) RGBA {
	return s.Color
}

// ShaderFunc adapts a function to the Shader interface.
type ShaderFunc func(x, y float64) RGBA

// ColorAt implements Shader.
func (f ShaderFunc) ColorAt(x, y float64) RGBA { return f(x, y) }

// localShader evaluates an inner shader in a transformed space.
type localShader struct {
	inner Shader
	inv   Matrix
}

func (s *localShader) ColorAt(x, y float64) RGBA {
	p := s.inv.TransformPoint(Pt(x, y))
	return s.inner.ColorAt(p.X, p.Y)
}

// WithLocalMatrix returns a shader whose content is transformed by m.
// A point p of the result samples the inner shader at m⁻¹·p. If m is not
// invertible the result is transparent.
func WithLocalMatrix(s Shader, m Matrix) Shader {
	if s == nil {
		return nil
	}
	if m.IsIdentity() {
		return s
	}
	inv, ok := m.Inverse()
	if !ok {
		return NewSolidShader(Transparent)
	}
	if ls, ok := s.(*localShader); ok {
		// (m·l)⁻¹ = l⁻¹·m⁻¹
		return &localShader{inner: ls.inner, inv: ls.inv.Multiply(inv)}
	}
	return &localShader{inner: s, inv: inv}
}

// colorFilterShader applies a color filter to a shader's output.
type colorFilterShader struct {
	inner  Shader
	filter ColorFilter
}

func (s *colorFilterShader) ColorAt(x, y float64) RGBA {
	return s.filter.FilterColor(s.inner.ColorAt(x, y))
}

// WithColorFilter returns a shader whose colors pass through cf.
func WithColorFilter(s Shader, cf ColorFilter) Shader {
	if s == nil || cf == nil {
		return s
	}
	return &colorFilterShader{inner: s, filter: cf}
}
