package filter

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
)

// blurSigmaScale converts a blur radius to a gaussian sigma.
const blurSigmaScale = 0.57735

// SigmaFromRadius converts a design-tool blur radius into a gaussian sigma.
func SigmaFromRadius(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return blurSigmaScale*radius + 0.5
}

// Extent returns how far a gaussian with the given sigma spreads, in pixels.
func Extent(sigma float64) float64 {
	if sigma <= 0 {
		return 0
	}
	return math.Ceil(3 * sigma)
}

var edgeClamp = &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: false}

// Gaussian blurs src with a separable gaussian kernel. Both passes run in
// float and the result is rounded once, so coverage is conserved.
// Zero or negative sigma on an axis leaves that axis unblurred.
func Gaussian(src *image.RGBA, sigmaX, sigmaY float64) *image.RGBA {
	if sigmaX <= 0 && sigmaY <= 0 {
		return clone.AsRGBA(src)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	buf := make([]float64, 4*w*h)
	for y := range h {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		row := buf[4*w*y : 4*w*(y+1)]
		for i, v := range src.Pix[si : si+4*w] {
			row[i] = float64(v)
		}
	}
	if sigmaX > 0 {
		buf = convolveAxis(buf, w, h, gaussianKernel(sigmaX), false)
	}
	if sigmaY > 0 {
		buf = convolveAxis(buf, w, h, gaussianKernel(sigmaY), true)
	}
	dst := image.NewRGBA(src.Rect)
	for y := range h {
		di := dst.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		for i, v := range buf[4*w*y : 4*w*(y+1)] {
			dst.Pix[di+i] = uint8(min(255, max(0, math.Round(v))))
		}
	}
	return dst
}

// gaussianKernel builds a normalized 1D kernel of 2*Extent(sigma)+1 taps.
func gaussianKernel(sigma float64) []float64 {
	r := int(Extent(sigma))
	k := make([]float64, 2*r+1)
	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := -r; i <= r; i++ {
		k[i+r] = math.Exp(-float64(i*i) / twoSigmaSq)
		sum += k[i+r]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// convolveAxis convolves the w×h RGBA samples in buf with k along rows, or
// along columns when vertical. Samples past the edge are transparent.
func convolveAxis(buf []float64, w, h int, k []float64, vertical bool) []float64 {
	out := make([]float64, len(buf))
	r := len(k) / 2
	n, lines, step, lineStep := w, h, 4, 4*w
	if vertical {
		n, lines, step, lineStep = h, w, 4*w, 4
	}
	for l := range lines {
		base := l * lineStep
		for i := range n {
			var acc [4]float64
			for j := max(0, i-r); j <= min(n-1, i+r); j++ {
				wt := k[j-i+r]
				o := base + j*step
				acc[0] += wt * buf[o]
				acc[1] += wt * buf[o+1]
				acc[2] += wt * buf[o+2]
				acc[3] += wt * buf[o+3]
			}
			o := base + i*step
			copy(out[o:o+4], acc[:])
		}
	}
	return out
}

// Motion blurs src along a line of the given length centered on each pixel.
// angle is in radians; zero blurs horizontally.
func Motion(src *image.RGBA, radius, angle float64) *image.RGBA {
	r := int(math.Ceil(radius))
	if r <= 0 {
		return clone.AsRGBA(src)
	}
	size := 2*r + 1
	k := convolution.NewKernel(size, size)
	cos, sin := math.Cos(angle), math.Sin(angle)
	// Sample the line at sub-pixel steps so every covered cell gets weight.
	steps := 4 * size
	for i := 0; i <= steps; i++ {
		t := -radius + 2*radius*float64(i)/float64(steps)
		x := int(math.Round(t*cos)) + r
		y := int(math.Round(t*sin)) + r
		if x >= 0 && x < size && y >= 0 && y < size {
			k.Matrix[y*size+x]++
		}
	}
	out := convolution.Convolve(padded(src, r, r), k.Normalized(), edgeClamp)
	return crop(out, r, r, src.Rect.Dx(), src.Rect.Dy())
}

// radialSamples is the number of scaled copies averaged by Radial.
const radialSamples = 16

// Radial blurs src by averaging copies scaled about center, simulating a
// zoom. radius is the largest displacement in pixels at distance 100 from
// the center.
func Radial(src *image.RGBA, radius float64, cx, cy float64) *image.RGBA {
	if radius <= 0 {
		return clone.AsRGBA(src)
	}
	b := src.Rect
	dst := image.NewRGBA(b)
	strength := radius / 100
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var acc [4]float64
			n := 0
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			for s := range radialSamples {
				f := 1 - strength*float64(s)/radialSamples
				sx := int(math.Floor(cx + dx*f))
				sy := int(math.Floor(cy + dy*f))
				if sx < b.Min.X || sx >= b.Max.X || sy < b.Min.Y || sy >= b.Max.Y {
					continue
				}
				i := src.PixOffset(sx, sy)
				acc[0] += float64(src.Pix[i])
				acc[1] += float64(src.Pix[i+1])
				acc[2] += float64(src.Pix[i+2])
				acc[3] += float64(src.Pix[i+3])
				n++
			}
			if n == 0 {
				continue
			}
			o := dst.PixOffset(x, y)
			for c := range 4 {
				dst.Pix[o+c] = uint8(math.Round(acc[c] / float64(n)))
			}
		}
	}
	return dst
}

// padded returns a copy of src with transparent margins.
func padded(src *image.RGBA, mx, my int) *image.RGBA {
	if mx == 0 && my == 0 {
		return src
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w+2*mx, h+2*my))
	for y := range h {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		di := dst.PixOffset(mx, my+y)
		copy(dst.Pix[di:di+4*w], src.Pix[si:si+4*w])
	}
	return dst
}

// crop copies the w×h region at (x, y) of src into a new image at the origin.
func crop(src *image.RGBA, x, y, w, h int) *image.RGBA {
	if x == 0 && y == 0 && src.Rect.Dx() == w && src.Rect.Dy() == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for row := range h {
		si := src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y+row)
		di := dst.PixOffset(0, row)
		copy(dst.Pix[di:di+4*w], src.Pix[si:si+4*w])
	}
	return dst
}
