package layer

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ImageShader samples an image through an affine matrix.
//
// Matrix maps image pixel space into user space. ExtendX and ExtendY select
// how each axis continues beyond the image edges. Sampling is bilinear on
// premultiplied pixels.
type ImageShader struct {
	img     *image.RGBA
	matrix  Matrix
	inverse Matrix
	valid   bool
	ExtendX ExtendMode
	ExtendY ExtendMode
}

// NewImageShader creates an image shader. Non-RGBA images are converted
// once at construction.
func NewImageShader(img image.Image, m Matrix, extendX, extendY ExtendMode) *ImageShader {
	inv, ok := m.Inverse()
	return &ImageShader{
		img:     ToRGBA(img),
		matrix:  m,
		inverse: inv,
		valid:   ok,
		ExtendX: extendX,
		ExtendY: extendY,
	}
}

// Image returns the sampled image.
func (s *ImageShader) Image() *image.RGBA { return s.img }

// Matrix returns the image-to-user matrix.
func (s *ImageShader) Matrix() Matrix { return s.matrix }

// ColorAt implements Shader.
func (s *ImageShader) ColorAt(x, y float64) RGBA {
	if !s.valid || s.img == nil {
		return Transparent
	}
	b := s.img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Transparent
	}
	p := s.inverse.TransformPoint(Pt(x, y))

	// Pixel centers sit at half-integer positions.
	fx, fy := p.X-0.5, p.Y-0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := fx-x0, fy-y0

	var acc [4]float64
	for j := range 2 {
		for i := range 2 {
			wgt := (1 - tx) * (1 - ty)
			switch {
			case i == 1 && j == 0:
				wgt = tx * (1 - ty)
			case i == 0 && j == 1:
				wgt = (1 - tx) * ty
			case i == 1 && j == 1:
				wgt = tx * ty
			}
			if wgt == 0 {
				continue
			}
			ix, okx := extendIndex(int(x0)+i, w, s.ExtendX)
			iy, oky := extendIndex(int(y0)+j, h, s.ExtendY)
			if !okx || !oky {
				continue
			}
			c := s.img.RGBAAt(b.Min.X+ix, b.Min.Y+iy)
			acc[0] += wgt * float64(c.R)
			acc[1] += wgt * float64(c.G)
			acc[2] += wgt * float64(c.B)
			acc[3] += wgt * float64(c.A)
		}
	}
	const inv255 = 1.0 / 255
	return RGBA{R: acc[0] * inv255, G: acc[1] * inv255, B: acc[2] * inv255, A: acc[3] * inv255}.Unpremultiply()
}

// extendIndex maps an integer pixel coordinate into [0, n).
func extendIndex(i, n int, mode ExtendMode) (int, bool) {
	switch mode {
	case ExtendRepeat:
		i %= n
		if i < 0 {
			i += n
		}
	case ExtendReflect:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
	case ExtendDecal:
		if i < 0 || i >= n {
			return 0, false
		}
	default:
		i = max(0, min(i, n-1))
	}
	return i, true
}

// ToRGBA returns img as a premultiplied *image.RGBA with origin (0, 0).
// An *image.RGBA already at the origin is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
