package resource

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.trai.ch/zerr"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when asset bytes are not a supported image.
var ErrDecode = zerr.New("failed to decode image")

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data. When maxSize
// is positive and either dimension exceeds it, the image is downscaled with
// Catmull-Rom resampling so that it fits, keeping its aspect ratio.
func DecodeImage(data []byte, maxSize int) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.Wrap(err, ErrDecode.Error())
	}
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img, nil
	}
	w, h := fitSize(b.Dx(), b.Dy(), maxSize)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst, nil
}

// fitSize scales w x h so that the larger side equals limit.
func fitSize(w, h, limit int) (int, int) {
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
