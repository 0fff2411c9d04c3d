// Package graph implements the render graph: a tree of PaintNodes whose
// styled output is computed lazily through a network of attributes.
//
// # Invalidation
//
// Every node in the graph embeds [Node]. A node observes the nodes it
// depends on; invalidating a node marks it and, transitively, every node
// that observes it as invalid. Revalidate is the only way back to the valid
// state: it revalidates the observed dependencies, recomputes the node's own
// value once, and caches it until the next invalidation.
//
// Observation never implies ownership. PaintNodes own their children and
// their StyleItem; mask references between nodes are resolved through the
// [MaskRegistry], which holds weak pointers only.
//
// # Pipeline
//
// Each PaintNode owns a [StyleItem] that composes these attributes:
//
//	TransformAttribute   local matrix
//	ShapeAttribute       contour or boolean combination of children
//	ObjectAttribute      fills and borders
//	DropShadowAttribute  outer shadows
//	InnerShadowAttribute inner shadows
//	BackgroundBlurAttribute backdrop blur
//	StyleAttribute       shadows, fills and borders composed in paint order
//	LayerFXAttribute     layer, motion and radial blurs
//	AlphaMaskAttribute   alpha and luminosity masks
//	ShapeMaskAttribute   outline masks
//
// The StyleItem records its output into a [recording.Picture] that ordinary
// render passes replay without recomputation.
//
// # Environment
//
// Caches, the mask registry, the resource provider and the text shaper live
// in an [Env] that is passed to Revalidate and Render. The graph is not safe
// for concurrent use; separate Envs and trees may be used from separate
// goroutines.
package graph
