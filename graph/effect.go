package graph

import (
	"math"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/recording"
)

// BackgroundBlurAttribute compiles background blurs into a backdrop filter
// that blurs the content behind the shape, restricted to the shape. Its
// value is nil when the style has no background blur.
type BackgroundBlurAttribute struct {
	Attribute[layer.ImageFilter]
	shape *ShapeAttribute
	style *Value[Style]
}

// NewBackgroundBlurAttribute creates a background blur attribute.
func NewBackgroundBlurAttribute(shape *ShapeAttribute, style *Value[Style]) *BackgroundBlurAttribute {
	a := &BackgroundBlurAttribute{shape: shape, style: style}
	a.init("backgroundBlur", a.compute)
	a.Observe(&shape.Node)
	a.Observe(&style.Node)
	return a
}

func (a *BackgroundBlurAttribute) compute(env *Env) layer.ImageFilter {
	s := a.shape.Value()
	if layer.IsEmptyShape(s) {
		return nil
	}
	var blur layer.ImageFilter
	for _, b := range a.style.Value().Blurs {
		if !b.Enabled || b.Kind != BlurBackground || b.Radius <= 0 {
			continue
		}
		sigma := layer.SigmaFromRadius(b.Radius)
		blur = layer.ComposeFilters(layer.NewBlurFilter(sigma, sigma, nil), blur)
	}
	if blur == nil {
		return nil
	}
	rec := recording.NewRecorder(layer.Rect{})
	rec.DrawShape(s, layer.NewColorPaint(layer.Black))
	return &layer.BlendFilter{
		Blender:    env.Blender(BlenderMaskOut),
		Background: &layer.PictureFilter{Picture: rec.Finish()},
		Foreground: blur,
	}
}

// LayerFXAttribute composes the layer, motion and radial blurs of a style in
// declaration order. Its value is nil when there are none.
type LayerFXAttribute struct {
	Attribute[layer.ImageFilter]
	object *ObjectAttribute
	style  *Value[Style]
}

// NewLayerFXAttribute creates a layer effect attribute.
func NewLayerFXAttribute(object *ObjectAttribute, style *Value[Style]) *LayerFXAttribute {
	a := &LayerFXAttribute{object: object, style: style}
	a.init("layerFX", a.compute)
	a.Observe(&object.Node)
	a.Observe(&style.Node)
	return a
}

func (a *LayerFXAttribute) compute(*Env) layer.ImageFilter {
	bounds := a.object.Value()
	var f layer.ImageFilter
	for _, b := range a.style.Value().Blurs {
		if !b.Enabled || b.Radius <= 0 {
			continue
		}
		switch b.Kind {
		case BlurGaussian:
			sigma := layer.SigmaFromRadius(b.Radius)
			f = layer.NewBlurFilter(sigma, sigma, f)
		case BlurMotion:
			f = &layer.MotionBlurFilter{Radius: b.Radius, Angle: b.Angle * math.Pi / 180, Input: f}
		case BlurRadial:
			f = &layer.RadialBlurFilter{Radius: b.Radius, Center: objectPoint(bounds, b.Center), Input: f}
		}
	}
	return f
}

// Bounds maps r through the effects.
func (a *LayerFXAttribute) Bounds(r layer.Rect) layer.Rect {
	if f := a.Value(); f != nil {
		return f.FastBounds(r)
	}
	return r
}
