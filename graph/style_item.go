package graph

import (
	"github.com/gogpu/layer"
	"github.com/gogpu/layer/recording"
)

// StyleItem renders one PaintNode's own content: its style, layer effects
// and masks, recorded into a picture in the node's local space.
type StyleItem struct {
	Attribute[*recording.Picture]
	name      string
	transform *TransformAttribute
	shape     *ShapeAttribute
	style     *Value[Style]
	styleAttr *StyleAttribute
	layerFX   *LayerFXAttribute
	bgBlur    *BackgroundBlurAttribute
	shapeMask *ShapeMaskAttribute
	alphaMask *AlphaMaskAttribute

	bounds       layer.Rect
	effectBounds layer.Rect
	maskPicture  *recording.Picture
}

func newStyleItem(owner *PaintNode, runs func(env *Env) []StyledShape) *StyleItem {
	it := &StyleItem{
		name:      owner.name,
		transform: owner.transform,
		shape:     owner.shape,
		style:     owner.style,
	}
	it.styleAttr = NewStyleAttribute(it.shape, it.style, runs)
	it.layerFX = NewLayerFXAttribute(it.styleAttr.object, it.style)
	it.bgBlur = NewBackgroundBlurAttribute(it.shape, it.style)
	it.shapeMask = newShapeMaskAttribute(owner)
	it.alphaMask = newAlphaMaskAttribute(owner, it.layerFX)
	it.init("styleItem", it.compute)
	it.Observe(&it.shapeMask.Node)
	it.Observe(&it.transform.Node)
	it.Observe(&it.alphaMask.Node)
	it.Observe(&it.styleAttr.Node)
	it.Observe(&it.bgBlur.Node)
	return it
}

func (it *StyleItem) compute(env *Env) *recording.Picture {
	it.maskPicture = nil
	it.bounds, it.effectBounds = layer.Rect{}, layer.Rect{}
	if it.shape == nil {
		contract("style item %q has no shape", it.name)
		return recording.Empty()
	}
	clip := it.shapeMask.Value()
	if clip != nil && clip.IsEmpty() {
		return recording.Empty()
	}
	it.bounds = it.styleAttr.ObjectBounds()

	rec := recording.NewRecorder(layer.Rect{})
	if clip != nil {
		rec.ClipShape(clip, layer.ClipIntersect)
	}
	filter := it.alphaMask.Value()
	backdrop := it.bgBlur.Value()
	if filter != nil || backdrop != nil {
		p := layer.NewPaint(nil)
		p.ImageFilter = filter
		rec.SaveLayer(layer.LayerRec{
			Bounds:   it.layerFX.Bounds(it.styleAttr.Value()),
			Paint:    p,
			Backdrop: backdrop,
		})
		it.styleAttr.render(rec, env)
		rec.Restore()
	} else {
		it.styleAttr.render(rec, env)
	}
	pic := rec.Finish()
	it.effectBounds = pic.Bounds()
	layer.Logger().Debug("graph: style item revalidated", "node", it.name, "commands", pic.Len())
	return pic
}

// Bounds returns the bounds of the fills and borders.
func (it *StyleItem) Bounds() layer.Rect { return it.bounds }

// EffectBounds returns the bounds of everything the item paints,
// including shadows and blurs.
func (it *StyleItem) EffectBounds() layer.Rect { return it.effectBounds }

// Render replays the recorded picture onto c.
func (it *StyleItem) Render(c layer.Canvas, env *Env) {
	layer.PlaybackPicture(c, it.Revalidate(env), nil)
}

// renderAsMask paints only the object content, without shadows, effects or
// masks. The item must be valid.
func (it *StyleItem) renderAsMask(c layer.Canvas, env *Env) {
	if it.maskPicture == nil {
		rec := recording.NewRecorder(layer.Rect{})
		it.styleAttr.renderAsMask(rec, env)
		it.maskPicture = rec.Finish()
	}
	layer.PlaybackPicture(c, it.maskPicture, nil)
}

// detach removes every invalidation edge inside the item.
func (it *StyleItem) detach() {
	it.Node.Detach()
	it.styleAttr.object.Detach()
	it.styleAttr.drop.Detach()
	it.styleAttr.inner.Detach()
	it.styleAttr.Detach()
	it.layerFX.Detach()
	it.bgBlur.Detach()
	it.shapeMask.Detach()
	it.alphaMask.Detach()
}
