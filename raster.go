package layer

import (
	"image"
	"math"
)

// Raster is a software Canvas drawing into a premultiplied *image.RGBA.
//
// Every layer is a full-size image; clips are 8-bit coverage masks. Raster
// is not safe for concurrent use.
type Raster struct {
	base   *image.RGBA
	cov    *coverage
	stack  []rasterState
	target *image.RGBA
}

type rasterState struct {
	matrix Matrix
	clip   *image.Alpha // nil means unclipped
	layer  *rasterLayer // set for states pushed by SaveLayer
}

type rasterLayer struct {
	img    *image.RGBA
	parent *image.RGBA
	paint  *Paint
	ctm    Matrix
	clip   *image.Alpha // clip in effect when the layer was opened
	bounds image.Rectangle
}

// NewRaster creates a transparent raster canvas of the given size.
func NewRaster(width, height int) *Raster {
	return NewRasterFromImage(image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))))
}

// NewRasterFromImage creates a canvas drawing into img, which must have
// its origin at (0, 0).
func NewRasterFromImage(img *image.RGBA) *Raster {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return &Raster{
		base:   img,
		target: img,
		cov:    newCoverage(w, h),
		stack:  []rasterState{{matrix: Identity()}},
	}
}

// Width returns the canvas width in pixels.
func (r *Raster) Width() int { return r.base.Rect.Dx() }

// Height returns the canvas height in pixels.
func (r *Raster) Height() int { return r.base.Rect.Dy() }

// Image returns the base image. Open layers are not included.
func (r *Raster) Image() *image.RGBA { return r.base }

// Clear fills the current target with c, ignoring the clip.
func (r *Raster) Clear(c RGBA) {
	px := c.ToPremultiplied8()
	for i := 0; i+3 < len(r.target.Pix); i += 4 {
		r.target.Pix[i] = px.R
		r.target.Pix[i+1] = px.G
		r.target.Pix[i+2] = px.B
		r.target.Pix[i+3] = px.A
	}
}

func (r *Raster) top() *rasterState { return &r.stack[len(r.stack)-1] }

// Save implements Canvas.
func (r *Raster) Save() {
	s := *r.top()
	s.layer = nil
	r.stack = append(r.stack, s)
}

// SaveLayer implements Canvas.
func (r *Raster) SaveLayer(rec LayerRec) {
	cur := *r.top()
	l := &rasterLayer{
		img:    image.NewRGBA(r.base.Rect),
		parent: r.target,
		paint:  rec.Paint,
		ctm:    cur.matrix,
		clip:   cur.clip,
		bounds: r.base.Rect,
	}
	if !rec.Bounds.IsEmpty() {
		l.bounds = deviceRect(cur.matrix.MapRect(rec.Bounds)).Intersect(r.base.Rect)
	}
	if rec.Backdrop != nil {
		backdrop := rec.Backdrop.Filter(cloneRGBA(r.target), cur.matrix)
		copyMasked(l.img, backdrop, l.clip, l.bounds)
	}
	r.stack = append(r.stack, rasterState{matrix: cur.matrix, clip: cur.clip, layer: l})
	r.target = l.img
}

// Restore implements Canvas.
func (r *Raster) Restore() {
	if len(r.stack) <= 1 {
		return
	}
	s := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if s.layer != nil {
		r.closeLayer(s.layer)
	}
}

// SaveCount implements Canvas.
func (r *Raster) SaveCount() int { return len(r.stack) }

// RestoreToCount implements Canvas.
func (r *Raster) RestoreToCount(n int) {
	for len(r.stack) > max(n, 1) {
		r.Restore()
	}
}

// Concat implements Canvas.
func (r *Raster) Concat(m Matrix) {
	s := r.top()
	s.matrix = s.matrix.Multiply(m)
}

// Matrix implements Canvas.
func (r *Raster) Matrix() Matrix { return r.top().matrix }

// ClipShape implements Canvas.
func (r *Raster) ClipShape(sh Shape, op ClipOp) {
	s := r.top()
	a := r.cov.shape(sh, s.matrix)
	if op == ClipDifference {
		a = invertAlpha(a)
	}
	if s.clip != nil {
		a = combineAlpha(OpIntersect, s.clip, a)
	}
	s.clip = a
}

// DrawShape implements Canvas.
func (r *Raster) DrawShape(sh Shape, p *Paint) {
	if IsEmptyShape(sh) || p == nil {
		return
	}
	s := r.top()
	inv, ok := s.matrix.Inverse()
	if !ok {
		return
	}
	a := r.cov.shape(sh, s.matrix)
	if s.clip != nil {
		a = combineAlpha(OpIntersect, a, s.clip)
	}
	area := alphaBounds(a)
	if area.Empty() {
		return
	}

	solid, constant := p.constantColor()
	dst := r.target
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			c := a.Pix[a.PixOffset(x, y)]
			if c == 0 {
				continue
			}
			src := solid
			if !constant {
				pt := inv.TransformPoint(Pt(float64(x)+0.5, float64(y)+0.5))
				src = p.sourceAt(pt.X, pt.Y)
			}
			i := dst.PixOffset(x, y)
			d := loadPremultiplied(dst.Pix[i : i+4])
			storePremultiplied(dst.Pix[i:i+4], d.Lerp(p.blend(src, d), float64(c)/255))
		}
	}
}

// DrawImage implements Canvas.
func (r *Raster) DrawImage(img image.Image, dst Rect, p *Paint) {
	if img == nil || img.Bounds().Empty() || dst.IsEmpty() {
		return
	}
	r.DrawShape(RectShape(dst), ImagePaint(img, dst, p))
}

// DrawPicture implements Canvas.
func (r *Raster) DrawPicture(pic Picture, p *Paint) {
	PlaybackPicture(r, pic, p)
}

// closeLayer filters a finished layer and composites it into its parent.
func (r *Raster) closeLayer(l *rasterLayer) {
	r.target = l.parent
	content := l.img
	p := l.paint
	if p == nil {
		p = NewPaint(nil)
	}
	if p.ImageFilter != nil {
		content = p.ImageFilter.Filter(content, l.ctm)
	}
	alpha := p.Alpha
	dst := l.parent
	for y := l.bounds.Min.Y; y < l.bounds.Max.Y; y++ {
		for x := l.bounds.Min.X; x < l.bounds.Max.X; x++ {
			cov := 1.0
			if l.clip != nil {
				cov = float64(l.clip.Pix[l.clip.PixOffset(x, y)]) / 255
				if cov == 0 {
					continue
				}
			}
			i := dst.PixOffset(x, y)
			src := loadPremultiplied(content.Pix[i : i+4])
			if p.ColorFilter != nil {
				src = p.ColorFilter.FilterColor(src.Unpremultiply()).Premultiply()
			}
			src = scalePremultiplied(src, alpha)
			d := loadPremultiplied(dst.Pix[i : i+4])
			storePremultiplied(dst.Pix[i:i+4], d.Lerp(p.blend(src, d), cov))
		}
	}
}

func scalePremultiplied(c RGBA, k float64) RGBA {
	return RGBA{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A * k}
}

// deviceRect rounds a float rectangle outward to pixels.
func deviceRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}

// copyMasked copies src into dst within bounds, scaled by clip coverage.
func copyMasked(dst, src *image.RGBA, clip *image.Alpha, bounds image.Rectangle) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := dst.PixOffset(x, y)
			if clip == nil {
				copy(dst.Pix[i:i+4], src.Pix[i:i+4])
				continue
			}
			k := float64(clip.Pix[clip.PixOffset(x, y)]) / 255
			storePremultiplied(dst.Pix[i:i+4], scalePremultiplied(loadPremultiplied(src.Pix[i:i+4]), k))
		}
	}
}
