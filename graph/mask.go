package graph

import (
	"weak"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/recording"
)

// MaskType marks a node as a mask for its siblings.
type MaskType uint8

const (
	MaskNone MaskType = iota
	// MaskOutline contributes its shape to outline masks.
	MaskOutline
	// MaskAlpha contributes its rendered content to alpha masks.
	MaskAlpha
)

// MaskShowType selects whether a mask node is also painted.
type MaskShowType uint8

const (
	MaskShowInvisible MaskShowType = iota
	MaskShowContent
)

// AlphaMaskType selects how mask content becomes coverage.
type AlphaMaskType uint8

const (
	// AlphaMaskAlpha uses the mask's alpha.
	AlphaMaskAlpha AlphaMaskType = iota
	// AlphaMaskLuminosity uses the mask's lightness.
	AlphaMaskLuminosity
	// AlphaMaskInverseLuminosity uses one minus the mask's lightness.
	AlphaMaskInverseLuminosity
)

func (t AlphaMaskType) blender() string {
	switch t {
	case AlphaMaskLuminosity:
		return BlenderLuminosity
	case AlphaMaskInverseLuminosity:
		return BlenderInvLumi
	default:
		return BlenderAlpha
	}
}

// MaskRegistry maps node GUIDs to the mask nodes of one tree. It holds weak
// pointers only and is rebuilt, never patched, when the tree's root is
// marked mask-dirty.
type MaskRegistry struct {
	root     weak.Pointer[PaintNode]
	nodes    map[string]weak.Pointer[PaintNode]
	rebuilds int
}

// NewMaskRegistry creates an empty registry.
func NewMaskRegistry() *MaskRegistry {
	return &MaskRegistry{nodes: make(map[string]weak.Pointer[PaintNode])}
}

// Rebuild registers every mask node under root and invalidates the mask
// attributes of the tree so that they resolve against the new registry.
func (r *MaskRegistry) Rebuild(root *PaintNode) {
	if r == nil || root == nil {
		return
	}
	clear(r.nodes)
	r.root = weak.Make(root)
	root.walk(func(n *PaintNode) {
		if n.maskType != MaskNone && n.guid != "" {
			if _, dup := r.nodes[n.guid]; dup {
				layer.Logger().Debug("graph: duplicate mask guid", "guid", n.guid)
			}
			r.nodes[n.guid] = weak.Make(n)
		}
		n.item.shapeMask.Invalidate()
		n.item.alphaMask.Invalidate()
	})
	root.maskDirty = false
	r.rebuilds++
	layer.Logger().Debug("graph: mask registry rebuilt", "root", root.name, "masks", len(r.nodes))
}

// sync rebuilds the registry if root is mask-dirty or is not the tree the
// registry was built for.
func (r *MaskRegistry) sync(root *PaintNode) {
	if r == nil {
		return
	}
	if root.maskDirty || r.root.Value() != root {
		r.Rebuild(root)
	}
}

// Lookup returns the live mask node registered under guid, or nil.
func (r *MaskRegistry) Lookup(guid string) *PaintNode {
	if r == nil {
		return nil
	}
	wp, ok := r.nodes[guid]
	if !ok {
		return nil
	}
	return wp.Value()
}

// Len returns the number of registered mask nodes.
func (r *MaskRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.nodes)
}

// Rebuilds returns how many times the registry has been rebuilt.
func (r *MaskRegistry) Rebuilds() int {
	if r == nil {
		return 0
	}
	return r.rebuilds
}

// mapTransform returns the matrix mapping the local space of mask into the
// local space of target, through their nearest common ancestor, together
// with the transforms it depends on. It fails when the nodes share no
// ancestor or a transform on the path cannot be inverted.
func mapTransform(env *Env, mask, target *PaintNode) (layer.Matrix, []*TransformAttribute, bool) {
	ancestors := make(map[*PaintNode]struct{})
	for p := target; p != nil; p = p.parent {
		ancestors[p] = struct{}{}
	}
	var deps []*TransformAttribute
	down := layer.Identity()
	lca := mask
	for ; lca != nil; lca = lca.parent {
		if _, ok := ancestors[lca]; ok {
			break
		}
		down = lca.transform.Revalidate(env).Multiply(down)
		deps = append(deps, lca.transform)
	}
	if lca == nil {
		return layer.Identity(), nil, false
	}
	up := layer.Identity()
	for p := target; p != lca; p = p.parent {
		inv, ok := p.transform.Revalidate(env).Inverse()
		if !ok {
			return layer.Identity(), nil, false
		}
		up = up.Multiply(inv)
		deps = append(deps, p.transform)
	}
	return up.Multiply(down), deps, true
}

// dynamicDeps tracks dependencies an attribute discovers while computing.
type dynamicDeps struct {
	owner *Node
	deps  []*Node
}

func (d *dynamicDeps) reset() {
	for _, dep := range d.deps {
		if d.owner.Observes(dep) {
			d.owner.Unobserve(dep)
		}
	}
	d.deps = d.deps[:0]
}

func (d *dynamicDeps) add(dep *Node) {
	if d.owner.Observes(dep) {
		return
	}
	d.owner.Observe(dep)
	d.deps = append(d.deps, dep)
}

// maskTarget resolves one mask reference of owner. Self references and
// unknown ids resolve to nil.
func maskTarget(env *Env, owner *PaintNode, id string) (*PaintNode, layer.Matrix, []*TransformAttribute) {
	if id == owner.guid {
		layer.Logger().Debug("graph: node masks itself", "guid", id)
		return nil, layer.Matrix{}, nil
	}
	m := env.Masks().Lookup(id)
	if m == nil {
		layer.Logger().Warn("graph: no such mask", "id", id, "node", owner.name)
		return nil, layer.Matrix{}, nil
	}
	rel, deps, ok := mapTransform(env, m, owner)
	if !ok {
		layer.Logger().Warn("graph: mask not reachable", "id", id, "node", owner.name)
		return nil, layer.Matrix{}, nil
	}
	return m, rel, deps
}

// ShapeMaskAttribute intersects the outlines of the nodes an owner is
// masked by. Its value is nil when no mask applies and an empty shape when
// the masks do not overlap.
type ShapeMaskAttribute struct {
	Attribute[layer.Shape]
	owner *PaintNode
	deps  dynamicDeps
}

func newShapeMaskAttribute(owner *PaintNode) *ShapeMaskAttribute {
	a := &ShapeMaskAttribute{owner: owner}
	a.deps.owner = &a.Node
	a.init("shapeMask", a.compute)
	return a
}

func (a *ShapeMaskAttribute) compute(env *Env) layer.Shape {
	a.deps.reset()
	var clip layer.Shape
	resolved := false
	for _, id := range a.owner.maskBy {
		m, rel, ts := maskTarget(env, a.owner, id)
		if m == nil {
			continue
		}
		for _, t := range ts {
			a.deps.add(&t.Node)
		}
		a.deps.add(&m.shape.Node)
		s := m.shape.Revalidate(env)
		if s == nil {
			continue
		}
		s = s.Transform(rel)
		if !resolved {
			clip, resolved = s, true
			continue
		}
		clip = layer.Intersect(clip, s)
	}
	if resolved && clip == nil {
		return emptyShape()
	}
	return clip
}

// AlphaMaskAttribute composes the layer effects of its owner with the
// rendered content of the nodes the owner is alpha-masked by. Its value is
// the image filter for the owner's layer, or nil.
type AlphaMaskAttribute struct {
	Attribute[layer.ImageFilter]
	owner *PaintNode
	fx    *LayerFXAttribute
	deps  dynamicDeps
}

func newAlphaMaskAttribute(owner *PaintNode, fx *LayerFXAttribute) *AlphaMaskAttribute {
	a := &AlphaMaskAttribute{owner: owner, fx: fx}
	a.deps.owner = &a.Node
	a.init("alphaMask", a.compute)
	a.Observe(&fx.Node)
	return a
}

func (a *AlphaMaskAttribute) compute(env *Env) layer.ImageFilter {
	a.deps.reset()
	f := a.fx.Value()
	for _, id := range a.owner.alphaMaskBy {
		m, rel, ts := maskTarget(env, a.owner, id)
		if m == nil {
			continue
		}
		for _, t := range ts {
			a.deps.add(&t.Node)
		}
		a.deps.add(&m.item.Node)
		m.item.Revalidate(env)

		rec := recording.NewRecorder(layer.Rect{})
		rec.Concat(rel)
		p := layer.NewPaint(nil)
		p.Blender = env.Blender(m.alphaMaskType.blender())
		rec.SaveLayer(layer.LayerRec{Paint: p})
		m.item.renderAsMask(rec, env)
		rec.Restore()
		f = &layer.BlendFilter{
			Mode:       layer.BlendSrcIn,
			Background: &layer.PictureFilter{Picture: rec.Finish()},
			Foreground: f,
		}
	}
	return f
}
