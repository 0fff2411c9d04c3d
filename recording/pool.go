package recording

import (
	"image"

	"github.com/gogpu/layer"
)

// ResourcePool stores resources referenced by recording commands.
// Paints are cloned on Add so later mutation by the caller does not change
// the recording.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	shapes   []layer.Shape
	paints   []*layer.Paint
	images   []image.Image
	pictures []layer.Picture
}

// NewResourcePool creates an empty resource pool with pre-allocated capacity.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		shapes: make([]layer.Shape, 0, 16),
		paints: make([]*layer.Paint, 0, 16),
	}
}

// AddShape adds a shape and returns its reference. Shapes are immutable.
func (p *ResourcePool) AddShape(s layer.Shape) ShapeRef {
	p.shapes = append(p.shapes, s)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ShapeRef(uint32(len(p.shapes) - 1))
}

// Shape returns the shape for ref, or nil if ref is out of range.
func (p *ResourcePool) Shape(ref ShapeRef) layer.Shape {
	if int(ref) >= len(p.shapes) {
		return nil
	}
	return p.shapes[ref]
}

// AddPaint adds a copy of paint. A nil paint yields InvalidRef.
func (p *ResourcePool) AddPaint(paint *layer.Paint) PaintRef {
	if paint == nil {
		return PaintRef(InvalidRef)
	}
	p.paints = append(p.paints, paint.Clone())
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PaintRef(uint32(len(p.paints) - 1))
}

// Paint returns the paint for ref, or nil for InvalidRef.
func (p *ResourcePool) Paint(ref PaintRef) *layer.Paint {
	if int(ref) >= len(p.paints) {
		return nil
	}
	return p.paints[ref]
}

// AddImage adds an image and returns its reference.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// Image returns the image for ref, or nil if ref is out of range.
func (p *ResourcePool) Image(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// AddPicture adds a nested picture and returns its reference.
func (p *ResourcePool) AddPicture(pic layer.Picture) PictureRef {
	p.pictures = append(p.pictures, pic)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PictureRef(uint32(len(p.pictures) - 1))
}

// Picture returns the picture for ref, or nil if ref is out of range.
func (p *ResourcePool) Picture(ref PictureRef) layer.Picture {
	if int(ref) >= len(p.pictures) {
		return nil
	}
	return p.pictures[ref]
}

// Counts returns the number of shapes, paints, images and pictures.
func (p *ResourcePool) Counts() (shapes, paints, images, pictures int) {
	return len(p.shapes), len(p.paints), len(p.images), len(p.pictures)
}
