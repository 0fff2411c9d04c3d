package layer

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/layer/internal/filter"
)

// ImageFilter transforms the pixels of a layer.
//
// Filter receives the layer content in device pixels together with the
// matrix that was current when the layer was opened, so that parameters
// given in user space (blur sigma, offsets) can be mapped to pixels. The
// result must have the same bounds as src.
//
// FastBounds returns a conservative user-space bound of the output given
// the user-space bounds of the input.
type ImageFilter interface {
	Filter(src *image.RGBA, ctm Matrix) *image.RGBA
	FastBounds(r Rect) Rect
}

// SigmaFromRadius converts a blur radius into a gaussian sigma.
func SigmaFromRadius(radius float64) float64 { return filter.SigmaFromRadius(radius) }

// applyInput runs in on src, or returns src when in is nil.
func applyInput(in ImageFilter, src *image.RGBA, ctm Matrix) *image.RGBA {
	if in == nil {
		return src
	}
	return in.Filter(src, ctm)
}

func inputBounds(in ImageFilter, r Rect) Rect {
	if in == nil {
		return r
	}
	return in.FastBounds(r)
}

// BlurFilter is a gaussian blur with independent sigma per axis.
type BlurFilter struct {
	SigmaX, SigmaY float64
	Input          ImageFilter
}

// NewBlurFilter creates a gaussian blur of the given sigma.
func NewBlurFilter(sigmaX, sigmaY float64, input ImageFilter) *BlurFilter {
	return &BlurFilter{SigmaX: sigmaX, SigmaY: sigmaY, Input: input}
}

// Filter implements ImageFilter.
func (f *BlurFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	sx, sy := ctm.ScaleFactors()
	return filter.Gaussian(applyInput(f.Input, src, ctm), f.SigmaX*sx, f.SigmaY*sy)
}

// FastBounds implements ImageFilter.
func (f *BlurFilter) FastBounds(r Rect) Rect {
	r = inputBounds(f.Input, r)
	return r.Outset(filter.Extent(f.SigmaX), filter.Extent(f.SigmaY))
}

// MotionBlurFilter smears content along a direction.
type MotionBlurFilter struct {
	Radius float64
	Angle  float64 // radians, user space
	Input  ImageFilter
}

// Filter implements ImageFilter.
func (f *MotionBlurFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	dir := ctm.TransformVector(Pt(math.Cos(f.Angle), math.Sin(f.Angle)))
	return filter.Motion(applyInput(f.Input, src, ctm), f.Radius*dir.Length(), dir.Angle())
}

// FastBounds implements ImageFilter.
func (f *MotionBlurFilter) FastBounds(r Rect) Rect {
	r = inputBounds(f.Input, r)
	return r.Outset(math.Ceil(f.Radius), math.Ceil(f.Radius))
}

// RadialBlurFilter blurs content radially around Center.
type RadialBlurFilter struct {
	Radius float64
	Center Point // user space
	Input  ImageFilter
}

// Filter implements ImageFilter.
func (f *RadialBlurFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	c := ctm.TransformPoint(f.Center)
	return filter.Radial(applyInput(f.Input, src, ctm), f.Radius, c.X, c.Y)
}

// FastBounds implements ImageFilter.
func (f *RadialBlurFilter) FastBounds(r Rect) Rect { return inputBounds(f.Input, r) }

// ComposeFilter applies Inner and then Outer.
type ComposeFilter struct {
	Outer, Inner ImageFilter
}

// ComposeFilters returns outer∘inner, folding nil operands.
func ComposeFilters(outer, inner ImageFilter) ImageFilter {
	switch {
	case outer == nil:
		return inner
	case inner == nil:
		return outer
	}
	return &ComposeFilter{Outer: outer, Inner: inner}
}

// Filter implements ImageFilter.
func (f *ComposeFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	return f.Outer.Filter(f.Inner.Filter(src, ctm), ctm)
}

// FastBounds implements ImageFilter.
func (f *ComposeFilter) FastBounds(r Rect) Rect {
	return f.Outer.FastBounds(f.Inner.FastBounds(r))
}

// OffsetFilter translates content by a user-space vector.
type OffsetFilter struct {
	DX, DY float64
	Input  ImageFilter
}

// Filter implements ImageFilter.
func (f *OffsetFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	d := ctm.TransformVector(Pt(f.DX, f.DY))
	return filter.Offset(applyInput(f.Input, src, ctm), int(math.Round(d.X)), int(math.Round(d.Y)))
}

// FastBounds implements ImageFilter.
func (f *OffsetFilter) FastBounds(r Rect) Rect {
	return inputBounds(f.Input, r).Offset(f.DX, f.DY)
}

// MatrixFilter transforms content by a user-space matrix.
type MatrixFilter struct {
	Matrix Matrix
	Input  ImageFilter
}

// Filter implements ImageFilter.
func (f *MatrixFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	in := applyInput(f.Input, src, ctm)
	inv, ok := ctm.Inverse()
	if !ok {
		return image.NewRGBA(in.Rect)
	}
	device := ctm.Multiply(f.Matrix).Multiply(inv)
	dst := image.NewRGBA(in.Rect)
	xdraw.BiLinear.Transform(dst, device.Aff3(), in, in.Rect, xdraw.Over, nil)
	return dst
}

// FastBounds implements ImageFilter.
func (f *MatrixFilter) FastBounds(r Rect) Rect {
	return f.Matrix.MapRect(inputBounds(f.Input, r))
}

// DropShadowFilter paints a blurred, offset, tinted copy of the input's
// alpha. Unless ShadowOnly is set, the input is composited over it.
type DropShadowFilter struct {
	DX, DY         float64
	SigmaX, SigmaY float64
	Color          RGBA
	ShadowOnly     bool
	Input          ImageFilter
}

// Filter implements ImageFilter.
func (f *DropShadowFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	in := applyInput(f.Input, src, ctm)
	d := ctm.TransformVector(Pt(f.DX, f.DY))
	sx, sy := ctm.ScaleFactors()
	shadow := filter.Tint(in, f.Color.ToPremultiplied8())
	shadow = filter.Offset(shadow, int(math.Round(d.X)), int(math.Round(d.Y)))
	shadow = filter.Gaussian(shadow, f.SigmaX*sx, f.SigmaY*sy)
	if f.ShadowOnly {
		return shadow
	}
	return compositeImages(BlendNormal, nil, in, shadow)
}

// FastBounds implements ImageFilter.
func (f *DropShadowFilter) FastBounds(r Rect) Rect {
	r = inputBounds(f.Input, r)
	s := r.Offset(f.DX, f.DY).Outset(filter.Extent(f.SigmaX), filter.Extent(f.SigmaY))
	if f.ShadowOnly {
		return s
	}
	return s.Union(r)
}

// InnerShadowFilter paints a shadow cast inward from the edges of the
// input's alpha, clipped to the alpha of the source. The source itself is
// not drawn.
type InnerShadowFilter struct {
	DX, DY         float64
	SigmaX, SigmaY float64
	Color          RGBA
	Input          ImageFilter
}

// Filter implements ImageFilter.
func (f *InnerShadowFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	in := applyInput(f.Input, src, ctm)
	d := ctm.TransformVector(Pt(f.DX, f.DY))
	sx, sy := ctm.ScaleFactors()
	shadow := filter.InvertAlpha(in)
	shadow = filter.Offset(shadow, int(math.Round(d.X)), int(math.Round(d.Y)))
	shadow = filter.Gaussian(shadow, f.SigmaX*sx, f.SigmaY*sy)
	shadow = filter.Tint(shadow, f.Color.ToPremultiplied8())
	return filter.MaskAlpha(shadow, src)
}

// FastBounds implements ImageFilter.
func (f *InnerShadowFilter) FastBounds(r Rect) Rect { return inputBounds(f.Input, r) }

// ColorFilterImageFilter applies a color filter to every pixel.
type ColorFilterImageFilter struct {
	ColorFilter ColorFilter
	Input       ImageFilter
}

// Filter implements ImageFilter.
func (f *ColorFilterImageFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	in := applyInput(f.Input, src, ctm)
	return filter.Map(in, func(r, g, b, a float64) (float64, float64, float64, float64) {
		c := f.ColorFilter.FilterColor(RGBA{R: r, G: g, B: b, A: a})
		return c.R, c.G, c.B, c.A
	})
}

// FastBounds implements ImageFilter.
func (f *ColorFilterImageFilter) FastBounds(r Rect) Rect { return inputBounds(f.Input, r) }

// BlendFilter composites Foreground over Background with Mode, or with
// Blender when it is set. A nil input stands for the filter's source.
type BlendFilter struct {
	Mode       BlendMode
	Blender    Blender
	Background ImageFilter
	Foreground ImageFilter
}

// Filter implements ImageFilter.
func (f *BlendFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	dst := applyInput(f.Background, src, ctm)
	fg := applyInput(f.Foreground, src, ctm)
	return compositeImages(f.Mode, f.Blender, fg, dst)
}

// FastBounds implements ImageFilter.
func (f *BlendFilter) FastBounds(r Rect) Rect {
	return inputBounds(f.Background, r).Union(inputBounds(f.Foreground, r))
}

// PictureFilter ignores its source and renders a picture in its place.
type PictureFilter struct {
	Picture Picture
}

// Filter implements ImageFilter.
func (f *PictureFilter) Filter(src *image.RGBA, ctm Matrix) *image.RGBA {
	r := NewRaster(src.Rect.Dx(), src.Rect.Dy())
	r.Concat(ctm)
	if f.Picture != nil {
		f.Picture.Playback(r)
	}
	return r.Image()
}

// FastBounds implements ImageFilter.
func (f *PictureFilter) FastBounds(Rect) Rect {
	if f.Picture == nil {
		return Rect{}
	}
	return f.Picture.Bounds()
}

// compositeImages blends src over dst pixel by pixel into a new image.
func compositeImages(mode BlendMode, blender Blender, src, dst *image.RGBA) *image.RGBA {
	out := image.NewRGBA(dst.Rect)
	for i := 0; i+3 < len(out.Pix) && i+3 < len(src.Pix); i += 4 {
		s := loadPremultiplied(src.Pix[i : i+4])
		d := loadPremultiplied(dst.Pix[i : i+4])
		var r RGBA
		if blender != nil {
			r = blender.Blend(s, d)
		} else {
			r = BlendPremultiplied(mode, s, d)
		}
		storePremultiplied(out.Pix[i:i+4], r)
	}
	return out
}

// loadPremultiplied reads 4 premultiplied bytes as a float color.
func loadPremultiplied(px []uint8) RGBA {
	const inv255 = 1.0 / 255
	return RGBA{R: float64(px[0]) * inv255, G: float64(px[1]) * inv255, B: float64(px[2]) * inv255, A: float64(px[3]) * inv255}
}

// storePremultiplied writes a premultiplied float color into 4 bytes.
func storePremultiplied(px []uint8, c RGBA) {
	px[0] = to8(clamp01(c.R))
	px[1] = to8(clamp01(c.G))
	px[2] = to8(clamp01(c.B))
	px[3] = to8(clamp01(c.A))
}
