// Package filter provides pixel-level image filters for layer effects.
//
// Every function takes a premultiplied *image.RGBA and returns a new image
// of the same size; inputs are never modified. Filters include:
//   - Gaussian blur with independent horizontal and vertical sigma
//   - Motion blur along an angle
//   - Radial (zoom) blur around a center
//   - Per-pixel color mapping
//   - Alpha extraction, tinting and inversion for shadows
package filter
