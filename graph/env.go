package graph

import (
	"image"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/internal/cache"
	"github.com/gogpu/layer/resource"
	"github.com/gogpu/layer/text"
)

// TextLayouter is the text-layout service consumed by text nodes.
// *text.Shaper implements it.
type TextLayouter interface {
	Layout(content, fontName string, opts text.Options) *text.Layout
}

// Env carries the shared state of one scene: derived-object caches, the
// mask registry, the resource provider and the text service.
//
// Caches are keyed by semantic identity and are never invalidated by tree
// mutation. An Env is not safe for concurrent use.
type Env struct {
	blenders     *cache.LRU[string, layer.Blender]
	colorFilters *cache.LRU[string, layer.ColorFilter]
	images       *cache.LRU[string, image.Image]
	masks        *MaskRegistry
	resources    resource.Provider
	text         TextLayouter
	tolerance    float64
	maxImageSize int
	debugBounds  bool
}

// NewEnv creates an Env.
func NewEnv(opts ...Option) *Env {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tol := o.tolerance
	if tol <= 0 {
		tol = layer.DefaultTolerance
	}
	return &Env{
		blenders:     cache.NewLRU[string, layer.Blender](o.blenders),
		colorFilters: cache.NewLRU[string, layer.ColorFilter](o.colorFilters),
		images:       cache.NewLRU[string, image.Image](o.images),
		masks:        NewMaskRegistry(),
		resources:    o.resources,
		text:         o.text,
		tolerance:    tol,
		maxImageSize: o.maxImageSize,
		debugBounds:  o.debugBounds,
	}
}

// Masks returns the mask registry. It is nil for a nil Env.
func (e *Env) Masks() *MaskRegistry {
	if e == nil {
		return nil
	}
	return e.masks
}

// Tolerance returns the curve flattening tolerance.
func (e *Env) Tolerance() float64 {
	if e == nil {
		return layer.DefaultTolerance
	}
	return e.tolerance
}

// Text returns the text-layout service, or nil.
func (e *Env) Text() TextLayouter {
	if e == nil {
		return nil
	}
	return e.text
}

// DebugBounds reports whether node bounds are outlined when rendering.
func (e *Env) DebugBounds() bool { return e != nil && e.debugBounds }

// Blender returns the named blender, compiling it on first use.
// Unknown names return nil.
func (e *Env) Blender(name string) layer.Blender {
	create, ok := namedBlenders[name]
	if !ok {
		layer.Logger().Debug("graph: no such blender", "name", name)
		return nil
	}
	if e == nil {
		return create()
	}
	return e.blenders.FindOrCreate(name, create)
}

// ColorFilter returns the color filter cached under key, calling create
// on a miss.
func (e *Env) ColorFilter(key string, create func() layer.ColorFilter) layer.ColorFilter {
	if e == nil {
		return create()
	}
	return e.colorFilters.FindOrCreate(key, create)
}

// Image returns the decoded image for guid. Missing or undecodable images
// are logged and return nil; misses are not cached.
func (e *Env) Image(guid string) image.Image {
	if e == nil || e.resources == nil {
		layer.Logger().Warn("graph: no resource provider", "guid", guid)
		return nil
	}
	if img, ok := e.images.Find(guid); ok {
		return img
	}
	data, err := e.resources.ReadData(guid)
	if err != nil {
		layer.Logger().Warn("graph: missing resource", "guid", guid, "error", err)
		return nil
	}
	img, err := resource.DecodeImage(data, e.maxImageSize)
	if err != nil {
		layer.Logger().Warn("graph: bad image resource", "guid", guid, "error", err)
		return nil
	}
	e.images.Insert(guid, img)
	return img
}

// CacheStats reports the number of entries in each cache.
type CacheStats struct {
	Blenders     int
	ColorFilters int
	Images       int
}

// CacheStats returns the current cache occupancy.
func (e *Env) CacheStats() CacheStats {
	if e == nil {
		return CacheStats{}
	}
	return CacheStats{
		Blenders:     e.blenders.Len(),
		ColorFilters: e.colorFilters.Len(),
		Images:       e.images.Len(),
	}
}
