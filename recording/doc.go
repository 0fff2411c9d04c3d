// Package recording captures drawing operations as replayable pictures.
//
// A Recorder implements layer.Canvas but stores typed commands instead of
// rasterizing. Finish returns an immutable Picture that can be played back
// onto any canvas, any number of times, under any matrix.
//
// # Architecture
//
// Commands capture canvas calls:
//   - State commands (Save, SaveLayer, Restore, Concat, ClipShape)
//   - Drawing commands (DrawShape, DrawImage, DrawPicture)
//
// Shapes, paints, images and nested pictures are stored in a ResourcePool
// and referenced by typed handles so commands stay small and comparable.
//
// # Example
//
//	rec := recording.NewRecorder(layer.Rect{})
//	rec.Concat(layer.Translate(10, 10))
//	layer.DrawRect(rec, layer.NewRect(0, 0, 50, 50), layer.NewColorPaint(layer.Red))
//	pic := rec.Finish()
//
//	raster := layer.NewRaster(100, 100)
//	pic.Playback(raster)
//
// Pictures carry conservative bounds and an xxhash fingerprint of their
// commands, used to detect unchanged output.
package recording
