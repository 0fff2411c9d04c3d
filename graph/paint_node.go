package graph

import (
	"slices"

	"github.com/gogpu/layer"
)

// PaintStrategy selects what a node paints.
type PaintStrategy uint8

const (
	// PaintRecursive paints the node's own content and then its children.
	PaintRecursive PaintStrategy = iota
	PaintSelfOnly
	PaintChildrenOnly
)

// Overflow selects whether children are clipped to the frame.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

func (o Overflow) clips() bool { return o != OverflowVisible }

// PaintNode is one design object in the scene tree. It owns its children
// and its StyleItem. Its value is its content bounds in local space.
//
// Every setter invalidates what depends on the changed property.
type PaintNode struct {
	Attribute[layer.Rect]
	guid     string
	name     string
	parent   *PaintNode
	children []*PaintNode

	visible     bool
	overflow    Overflow
	frame       layer.Rect
	radius      layer.Corners
	smoothing   float64
	contour     Contour
	contourType ContourType
	winding     layer.FillRule
	boolOp      BoolOp
	strategy    PaintStrategy
	context     ContextSetting

	maskType      MaskType
	maskShow      MaskShowType
	alphaMaskType AlphaMaskType
	maskBy        []string
	alphaMaskBy   []string
	maskDirty     bool

	transform *TransformAttribute
	style     *Value[Style]
	shape     *ShapeAttribute
	item      *StyleItem
	effect    layer.Rect
}

// NewPaintNode creates a visible node with an identity transform, an empty
// style and even-odd winding.
func NewPaintNode(guid, name string) *PaintNode {
	n := &PaintNode{
		guid:      guid,
		name:      name,
		visible:   true,
		winding:   layer.FillEvenOdd,
		context:   DefaultContextSetting(),
		maskDirty: true,
	}
	n.transform = NewTransformAttribute(layer.Identity())
	n.style = NewValue("style", Style{})
	n.shape = NewShapeAttribute("shape", n.visualShape)
	n.item = newStyleItem(n, n.styledRuns)
	n.init(name, n.computeBounds)
	n.Observe(&n.item.Node)
	return n
}

// GUID returns the node's identity.
func (n *PaintNode) GUID() string { return n.guid }

// Parent returns the parent node, or nil for a root.
func (n *PaintNode) Parent() *PaintNode { return n.parent }

// Children returns the child nodes in paint order.
func (n *PaintNode) Children() []*PaintNode { return n.children }

// Root returns the root of n's tree.
func (n *PaintNode) Root() *PaintNode {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// StyleItem returns the node's style item.
func (n *PaintNode) StyleItem() *StyleItem { return n.item }

// Shape returns the node's shape attribute.
func (n *PaintNode) Shape() *ShapeAttribute { return n.shape }

// Transform returns the node's transform attribute.
func (n *PaintNode) Transform() *TransformAttribute { return n.transform }

// Style returns the current style.
func (n *PaintNode) Style() Style { return n.style.Get() }

// Frame returns the frame bounds.
func (n *PaintNode) Frame() layer.Rect { return n.frame }

// Visible reports whether the node is painted.
func (n *PaintNode) Visible() bool { return n.visible }

// SetStyle replaces the style.
func (n *PaintNode) SetStyle(st Style) { n.style.Set(st) }

// SetTransform replaces the local transform.
func (n *PaintNode) SetTransform(m layer.Matrix) { n.transform.SetMatrix(m) }

// SetFrameBounds replaces the frame.
func (n *PaintNode) SetFrameBounds(r layer.Rect) {
	if r == n.frame {
		return
	}
	n.frame = r
	n.shape.Invalidate()
	n.Invalidate()
}

// SetFrameRadius sets the corner radii of the frame.
func (n *PaintNode) SetFrameRadius(r layer.Corners) {
	n.radius = r
	n.shape.Invalidate()
	n.Invalidate()
}

// SetCornerSmoothing sets the corner smoothing of the frame in [0, 1].
func (n *PaintNode) SetCornerSmoothing(s float64) {
	n.smoothing = clampUnit(s)
	n.shape.Invalidate()
	n.Invalidate()
}

// SetVisible shows or hides the node.
func (n *PaintNode) SetVisible(v bool) {
	if v == n.visible {
		return
	}
	n.visible = v
	n.shape.Invalidate()
	n.Invalidate()
}

// SetOverflow sets whether children are clipped to the frame.
func (n *PaintNode) SetOverflow(o Overflow) {
	n.overflow = o
	n.Invalidate()
}

// SetContour sets an explicit contour. Nil derives the shape from the
// frame and children according to the contour type.
func (n *PaintNode) SetContour(c Contour) {
	n.contour = c
	n.shape.Invalidate()
}

// SetContourType sets how the shape is derived when there is no contour.
func (n *PaintNode) SetContourType(t ContourType) {
	n.contourType = t
	n.shape.Invalidate()
}

// SetWindingRule sets the fill rule of the node's own geometry.
func (n *PaintNode) SetWindingRule(r layer.FillRule) {
	n.winding = r
	n.shape.Invalidate()
}

// SetBoolOp sets the operator the node applies in its parent's
// ContourObjectOps combination.
func (n *PaintNode) SetBoolOp(op BoolOp) {
	n.boolOp = op
	n.shape.Invalidate()
}

// SetPaintStrategy sets what the node paints.
func (n *PaintNode) SetPaintStrategy(s PaintStrategy) {
	n.strategy = s
	n.Invalidate()
}

// SetContextSetting sets the opacity and blending of the whole node.
func (n *PaintNode) SetContextSetting(c ContextSetting) {
	n.context = c
	n.Invalidate()
}

// SetMaskType makes the node a mask, or an ordinary node for MaskNone.
func (n *PaintNode) SetMaskType(t MaskType) {
	if t == n.maskType {
		return
	}
	n.maskType = t
	n.Root().InvalidateMask()
	n.shape.Invalidate()
	n.Invalidate()
	if n.parent != nil {
		n.parent.Invalidate()
	}
}

// SetMaskShowType sets whether a mask node is also painted.
func (n *PaintNode) SetMaskShowType(t MaskShowType) {
	n.maskShow = t
	n.Invalidate()
	if n.parent != nil {
		n.parent.Invalidate()
	}
}

// SetAlphaMaskType sets how the node's content masks when used as an
// alpha mask.
func (n *PaintNode) SetAlphaMaskType(t AlphaMaskType) {
	n.alphaMaskType = t
	n.Root().InvalidateMask()
}

// SetMaskBy sets the GUIDs of the outline masks applied to the node.
func (n *PaintNode) SetMaskBy(ids ...string) {
	n.maskBy = slices.Clone(ids)
	n.item.shapeMask.Invalidate()
}

// SetAlphaMaskBy sets the GUIDs of the alpha masks applied to the node.
func (n *PaintNode) SetAlphaMaskBy(ids ...string) {
	n.alphaMaskBy = slices.Clone(ids)
	n.item.alphaMask.Invalidate()
}

// InvalidateMask marks the tree of n mask-dirty: the mask registry is
// rebuilt before the next revalidation of the root.
func (n *PaintNode) InvalidateMask() {
	r := n.Root()
	r.maskDirty = true
	r.Invalidate()
}

// AddChild appends c to the children of n, detaching it from its previous
// parent.
func (n *PaintNode) AddChild(c *PaintNode) { n.InsertChild(len(n.children), c) }

// InsertChild inserts c at index i.
func (n *PaintNode) InsertChild(i int, c *PaintNode) {
	if c == nil {
		contract("%q cannot adopt a nil node", n.name)
		return
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			contract("%q cannot adopt its ancestor %q", n.name, c.name)
			return
		}
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	i = min(max(i, 0), len(n.children))
	c.parent = n
	n.children = slices.Insert(n.children, i, c)
	n.Observe(&c.Node)
	n.Observe(&c.transform.Node)
	n.shape.Observe(&c.shape.Node)
	n.shape.Observe(&c.transform.Node)
	n.InvalidateMask()
}

// RemoveChild removes c from the children of n.
func (n *PaintNode) RemoveChild(c *PaintNode) {
	i := slices.Index(n.children, c)
	if i < 0 {
		contract("%q is not a child of %q", c.Name(), n.name)
		return
	}
	n.InvalidateMask()
	n.children = slices.Delete(n.children, i, i+1)
	n.Unobserve(&c.Node)
	n.Unobserve(&c.transform.Node)
	n.shape.Unobserve(&c.shape.Node)
	n.shape.Unobserve(&c.transform.Node)
	c.parent = nil
	c.maskDirty = true
}

// walk visits n and its descendants depth first.
func (n *PaintNode) walk(fn func(*PaintNode)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// frameShape returns the frame as a rounded rectangle.
func (n *PaintNode) frameShape() layer.Shape {
	return roundedRect(n.frame, n.radius, n.smoothing, n.winding)
}

// visualShape returns the explicit contour, or the combination of the
// frame and children.
func (n *PaintNode) visualShape(env *Env) layer.Shape {
	if n.contour != nil {
		return n.contour.Shape(env, n.frame, n.winding)
	}
	if n.contourType == ContourFrameOnly {
		return n.frameShape()
	}
	var shapes []layer.Shape
	var ops []BoolOp
	for _, c := range n.children {
		if !c.visible || c.maskType != MaskNone {
			continue
		}
		s := c.shape.Value()
		if layer.IsEmptyShape(s) {
			continue
		}
		shapes = append(shapes, s.Transform(c.transform.Value()))
		ops = append(ops, c.boolOp)
	}
	if len(shapes) == 0 {
		layer.Logger().Warn("graph: no child shapes to combine", "node", n.name)
		return emptyShape()
	}
	var out layer.Shape
	switch n.contourType {
	case ContourUnion:
		out = combineShapes(layer.OpUnion, shapes)
	case ContourUnionWithFrame:
		out = layer.Union(combineShapes(layer.OpUnion, shapes), n.frameShape())
	case ContourIntersect:
		out = combineShapes(layer.OpIntersect, shapes)
	case ContourIntersectWithFrame:
		out = layer.Intersect(combineShapes(layer.OpIntersect, shapes), n.frameShape())
	default:
		out = objectOps(shapes, ops)
	}
	if out == nil {
		return emptyShape()
	}
	return out
}

// styledRuns splits text contours into separately filled runs.
func (n *PaintNode) styledRuns(env *Env) []StyledShape {
	if rs, ok := n.contour.(runSource); ok {
		return rs.runs(env, n.frame)
	}
	return nil
}

// paintsChild reports whether c contributes to what n paints.
func paintsChild(c *PaintNode) bool {
	return c.visible && (c.maskType == MaskNone || c.maskShow == MaskShowContent)
}

func (n *PaintNode) computeBounds(*Env) layer.Rect {
	var content, effect layer.Rect
	if n.strategy != PaintChildrenOnly {
		content, effect = n.item.Bounds(), n.item.EffectBounds()
	}
	if n.strategy != PaintSelfOnly {
		var cc, ce layer.Rect
		for _, c := range n.children {
			if !paintsChild(c) {
				continue
			}
			m := c.transform.Value()
			cc = cc.Union(m.MapRect(c.Value()))
			ce = ce.Union(m.MapRect(c.effect))
		}
		if n.overflow.clips() {
			cc, ce = cc.Intersect(n.frame), ce.Intersect(n.frame)
		}
		content, effect = content.Union(cc), effect.Union(ce)
	}
	n.effect = effect
	return content
}

// Revalidate brings the node up to date and returns its content bounds. It
// first rebuilds the mask registry if the node's tree is mask-dirty.
func (n *PaintNode) Revalidate(env *Env) layer.Rect {
	env.Masks().sync(n.Root())
	return n.Attribute.Revalidate(env)
}

// Bounds returns the content bounds in local space.
func (n *PaintNode) Bounds(env *Env) layer.Rect { return n.Revalidate(env) }

// EffectBounds returns the bounds including shadows and layer effects.
func (n *PaintNode) EffectBounds(env *Env) layer.Rect {
	n.Revalidate(env)
	return n.effect
}

// NodeAt hit-tests pt, given in the coordinate space of n's parent. Matched
// nodes are visited from the innermost outward until visit returns false.
// NodeAt reports whether the walk ran to completion.
func (n *PaintNode) NodeAt(env *Env, pt layer.Point, visit func(*PaintNode) bool) bool {
	n.Revalidate(env)
	return n.nodeAt(pt, visit)
}

func (n *PaintNode) nodeAt(pt layer.Point, visit func(*PaintNode) bool) bool {
	if !n.visible {
		return true
	}
	inv, ok := n.transform.Value().Inverse()
	if !ok {
		return true
	}
	local := inv.TransformPoint(pt)
	if !n.Value().Contains(local) {
		return true
	}
	for _, c := range slices.Backward(n.children) {
		if !paintsChild(c) {
			continue
		}
		if !c.nodeAt(local, visit) {
			return false
		}
	}
	return visit(n)
}

// Render revalidates n and paints it onto c.
func (n *PaintNode) Render(c layer.Canvas, env *Env) {
	n.Revalidate(env)
	n.render(c, env)
}

func (n *PaintNode) render(c layer.Canvas, env *Env) {
	if !n.visible {
		return
	}
	count := c.SaveCount()
	c.Save()
	c.Concat(n.transform.Value())
	if n.context.needsLayer() {
		c.SaveLayer(layer.LayerRec{Bounds: n.effect, Paint: n.context.layerPaint(env)})
	}
	switch n.strategy {
	case PaintSelfOnly:
		n.item.Render(c, env)
	case PaintChildrenOnly:
		n.paintChildren(c, env)
	default:
		n.item.Render(c, env)
		n.paintChildren(c, env)
	}
	if env.DebugBounds() {
		n.drawBounds(c, env)
	}
	c.RestoreToCount(count)
}

// paintChildren paints masks shown as content first and then ordinary
// children, clipped to the frame when overflow is not visible.
func (n *PaintNode) paintChildren(c layer.Canvas, env *Env) {
	if len(n.children) == 0 {
		return
	}
	clip := n.overflow.clips()
	if clip {
		c.Save()
		c.ClipShape(n.frameShape(), layer.ClipIntersect)
	}
	for _, ch := range n.children {
		if ch.maskType != MaskNone && ch.maskShow == MaskShowContent {
			ch.render(c, env)
		}
	}
	for _, ch := range n.children {
		if ch.maskType == MaskNone {
			ch.render(c, env)
		}
	}
	if clip {
		c.Restore()
	}
}

var debugBoundsColor = layer.RGB(1, 0, 1)

func (n *PaintNode) drawBounds(c layer.Canvas, env *Env) {
	b := n.Value()
	if b.IsEmpty() {
		return
	}
	outline := layer.StrokeShape(layer.RectShape(b), layer.StrokeStyle{Width: 1}, env.Tolerance())
	if outline != nil {
		c.DrawShape(outline, layer.NewColorPaint(debugBoundsColor))
	}
}

// Detach removes every invalidation edge of n and its descendants. The
// tree must not be used afterwards.
func (n *PaintNode) Detach() {
	for _, c := range n.children {
		c.Detach()
	}
	n.Node.Detach()
	n.shape.Detach()
	n.item.detach()
}

// Clone deep-copies n and its descendants. Every GUID in the copy is
// prefixed with prefix, and mask references between nodes of the copy are
// renamed accordingly; references to nodes outside the copy are kept.
func (n *PaintNode) Clone(prefix string) *PaintNode {
	inside := make(map[string]bool)
	n.walk(func(p *PaintNode) { inside[p.guid] = true })
	rename := func(ids []string) []string {
		out := make([]string, len(ids))
		for i, id := range ids {
			if inside[id] {
				id = prefix + id
			}
			out[i] = id
		}
		return out
	}
	return n.clone(prefix, rename)
}

func (n *PaintNode) clone(prefix string, rename func([]string) []string) *PaintNode {
	c := NewPaintNode(prefix+n.guid, n.name)
	c.visible = n.visible
	c.overflow = n.overflow
	c.frame = n.frame
	c.radius = n.radius
	c.smoothing = n.smoothing
	c.contour = n.contour
	c.contourType = n.contourType
	c.winding = n.winding
	c.boolOp = n.boolOp
	c.strategy = n.strategy
	c.context = n.context
	c.maskType = n.maskType
	c.maskShow = n.maskShow
	c.alphaMaskType = n.alphaMaskType
	c.maskBy = rename(n.maskBy)
	c.alphaMaskBy = rename(n.alphaMaskBy)
	c.transform.SetMatrix(n.transform.Matrix())
	c.style.Set(n.style.Get())
	for _, ch := range n.children {
		c.AddChild(ch.clone(prefix, rename))
	}
	return c
}
