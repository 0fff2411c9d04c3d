// Package layer provides the drawing primitives of the render graph.
//
// # Overview
//
// layer is a Pure Go 2D vector layer in the GoGPU ecosystem. The root package
// holds everything a render pass touches: geometry (Point, Matrix, Rect),
// paths and boolean shapes, shaders (solid, gradients, images), blend modes,
// image filters, and the Canvas interface with its software implementation.
//
// The retained scene graph that caches styled drawables lives in the graph
// subpackage; recorded draw-command lists live in recording.
//
// # Quick Start
//
//	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
//	c := layer.NewRaster(img)
//
//	p := layer.NewPath()
//	p.Rectangle(16, 16, 128, 96)
//	c.DrawShape(layer.NewPathShape(p, layer.FillNonZero), &layer.Paint{
//	    Shader: layer.NewSolidShader(layer.Hex("#ff6600")),
//	    Alpha:  1,
//	})
//
// # Architecture
//
// The library is organized into:
//   - Public API: Canvas, Raster, Shape, Path, Paint, Shader, ImageFilter
//   - recording: Recorder and the immutable Picture it produces
//   - graph: Node invalidation core, attributes, StyleItem, PaintNode, Renderer
//   - text: the text layout service backed by go-text/typesetting
//   - Internal: cache (LRU), blend (per-pixel compositing), filter (convolution)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increases clockwise
//
// # Concurrency
//
// Canvases, shapes under construction and the graph are not safe for
// concurrent use. Immutable values (Picture, Shader, ImageFilter) may be
// shared across goroutines.
package layer
