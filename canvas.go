package layer

import "image"

// ClipOp selects how a shape modifies the clip.
type ClipOp uint8

const (
	// ClipIntersect keeps only the area inside the shape.
	ClipIntersect ClipOp = iota
	// ClipDifference removes the area inside the shape.
	ClipDifference
)

// String returns the name of the clip operation.
func (op ClipOp) String() string {
	switch op {
	case ClipIntersect:
		return "Intersect"
	case ClipDifference:
		return "Difference"
	default:
		return unknownStr
	}
}

// LayerRec describes an offscreen layer opened by SaveLayer.
type LayerRec struct {
	// Bounds optionally limits the layer, in user space. Empty means
	// unbounded.
	Bounds Rect

	// Paint composites the layer back on Restore. Its Alpha, BlendMode,
	// Blender and ImageFilter are honored; nil means plain SrcOver.
	Paint *Paint

	// Backdrop, when set, initializes the layer with the filtered content
	// beneath it instead of transparency.
	Backdrop ImageFilter
}

// Picture is an immutable sequence of drawing commands.
type Picture interface {
	// Playback replays the commands onto c.
	Playback(c Canvas)

	// Bounds returns a conservative bound of everything the picture draws.
	Bounds() Rect
}

// Canvas is a drawing surface with a matrix and clip stack.
//
// Save and SaveLayer push state; Restore pops it. A Restore that closes a
// layer composites the layer back with its paint. Unbalanced Restore calls
// are ignored.
type Canvas interface {
	Save()
	SaveLayer(rec LayerRec)
	Restore()

	// SaveCount returns the current depth of the state stack, starting at 1.
	SaveCount() int

	// RestoreToCount pops states until SaveCount equals n.
	RestoreToCount(n int)

	// Concat pre-multiplies the current matrix by m.
	Concat(m Matrix)

	// Matrix returns the current matrix.
	Matrix() Matrix

	// ClipShape narrows the clip by shape s in user space.
	ClipShape(s Shape, op ClipOp)

	// DrawShape fills shape s with p.
	DrawShape(s Shape, p *Paint)

	// DrawImage draws img scaled into dst.
	DrawImage(img image.Image, dst Rect, p *Paint)

	// DrawPicture plays pic back. With a non-nil paint the picture is drawn
	// into a layer composited with that paint.
	DrawPicture(pic Picture, p *Paint)
}

// ClipRect narrows c's clip by a rectangle.
func ClipRect(c Canvas, r Rect, op ClipOp) {
	c.ClipShape(RectShape(r), op)
}

// DrawRect fills a rectangle.
func DrawRect(c Canvas, r Rect, p *Paint) {
	c.DrawShape(RectShape(r), p)
}

// PlaybackPicture replays pic onto c honoring an optional paint. Canvas
// implementations use it for DrawPicture.
func PlaybackPicture(c Canvas, pic Picture, p *Paint) {
	if pic == nil {
		return
	}
	if p == nil {
		n := c.SaveCount()
		c.Save()
		pic.Playback(c)
		c.RestoreToCount(n)
		return
	}
	n := c.SaveCount()
	c.SaveLayer(LayerRec{Bounds: pic.Bounds(), Paint: p})
	pic.Playback(c)
	c.RestoreToCount(n)
}

// imageShaderFor maps img into dst.
func imageShaderFor(img image.Image, dst Rect) *ImageShader {
	b := img.Bounds()
	m := Translate(dst.X, dst.Y).Multiply(Scale(dst.W/float64(b.Dx()), dst.H/float64(b.Dy())))
	return NewImageShader(img, m, ExtendPad, ExtendPad)
}

// ImagePaint returns a copy of p whose shader draws img into dst.
func ImagePaint(img image.Image, dst Rect, p *Paint) *Paint {
	out := p.Clone()
	if out == nil {
		out = NewPaint(nil)
	}
	out.Shader = imageShaderFor(img, dst)
	return out
}
