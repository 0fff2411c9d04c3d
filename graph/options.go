package graph

import "github.com/gogpu/layer/resource"

// Default cache capacities.
const (
	DefaultBlenderCacheSize     = 32
	DefaultColorFilterCacheSize = 64
	DefaultImageCacheSize       = 128
)

// Option configures an Env during creation.
//
// Example:
//
//	env := graph.NewEnv(
//	    graph.WithResources(resource.NewDirProvider("assets")),
//	    graph.WithImageCacheSize(256),
//	)
type Option func(*envOptions)

// envOptions holds optional configuration for Env creation.
type envOptions struct {
	blenders     int
	colorFilters int
	images       int
	resources    resource.Provider
	text         TextLayouter
	tolerance    float64
	maxImageSize int
	debugBounds  bool
}

// defaultOptions returns the default env options.
func defaultOptions() envOptions {
	return envOptions{
		blenders:     DefaultBlenderCacheSize,
		colorFilters: DefaultColorFilterCacheSize,
		images:       DefaultImageCacheSize,
	}
}

// WithBlenderCacheSize sets the capacity of the named blender cache.
func WithBlenderCacheSize(n int) Option {
	return func(o *envOptions) {
		o.blenders = n
	}
}

// WithColorFilterCacheSize sets the capacity of the compiled color filter
// cache used by pattern image adjustments.
func WithColorFilterCacheSize(n int) Option {
	return func(o *envOptions) {
		o.colorFilters = n
	}
}

// WithImageCacheSize sets the capacity of the decoded image cache.
func WithImageCacheSize(n int) Option {
	return func(o *envOptions) {
		o.images = n
	}
}

// WithResources sets the provider that resolves image GUIDs.
// Without a provider every image lookup misses.
func WithResources(p resource.Provider) Option {
	return func(o *envOptions) {
		o.resources = p
	}
}

// WithText sets the text-layout service used by text nodes.
func WithText(t TextLayouter) Option {
	return func(o *envOptions) {
		o.text = t
	}
}

// WithTolerance sets the curve flattening tolerance for strokes.
func WithTolerance(t float64) Option {
	return func(o *envOptions) {
		o.tolerance = t
	}
}

// WithMaxImageSize downscales decoded images larger than n pixels on
// either side. Zero keeps images at their natural size.
func WithMaxImageSize(n int) Option {
	return func(o *envOptions) {
		o.maxImageSize = n
	}
}

// WithDebugBounds makes the renderer outline the bounds of every node.
func WithDebugBounds(enabled bool) Option {
	return func(o *envOptions) {
		o.debugBounds = enabled
	}
}
