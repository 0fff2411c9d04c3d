package graph

import "github.com/gogpu/layer"

// Names of the custom blenders kept in the Env blender cache.
const (
	BlenderAlpha      = "alpha"
	BlenderLuminosity = "lumi"
	BlenderInvLumi    = "invLumi"
	BlenderStyleMask  = "styleMask"
	BlenderMaskOut    = "maskOut"
	BlenderLinearBurn = "linearBurn"
)

// namedBlenders compiles the custom blenders. All operate on premultiplied
// colors.
var namedBlenders = map[string]func() layer.Blender{
	// Destination color with the source's alpha.
	BlenderAlpha: func() layer.Blender {
		return layer.BlenderFunc(func(src, dst layer.RGBA) layer.RGBA {
			return layer.RGBA{R: dst.R, G: dst.G, B: dst.B, A: src.A}
		})
	},
	// Destination color with the HSL lightness of the source as alpha.
	BlenderLuminosity: func() layer.Blender {
		return layer.BlenderFunc(func(src, dst layer.RGBA) layer.RGBA {
			return layer.RGBA{R: dst.R, G: dst.G, B: dst.B, A: lightness(src)}
		})
	},
	BlenderInvLumi: func() layer.Blender {
		return layer.BlenderFunc(func(src, dst layer.RGBA) layer.RGBA {
			return layer.RGBA{R: dst.R, G: dst.G, B: dst.B, A: 1 - lightness(src)}
		})
	},
	// Source over destination, kept only where the destination is opaque.
	BlenderStyleMask: func() layer.Blender {
		return layer.BlenderFunc(func(src, dst layer.RGBA) layer.RGBA {
			k := 1 - src.A
			return layer.RGBA{
				R: (src.R + dst.R*k) * dst.A,
				G: (src.G + dst.G*k) * dst.A,
				B: (src.B + dst.B*k) * dst.A,
				A: (src.A + dst.A*k) * dst.A,
			}
		})
	},
	// Source kept where the destination is opaque. The backdrop of a
	// background blur is the blurred content masked by the object.
	BlenderMaskOut: func() layer.Blender {
		return layer.BlenderFunc(func(src, dst layer.RGBA) layer.RGBA {
			return layer.RGBA{R: src.R * dst.A, G: src.G * dst.A, B: src.B * dst.A, A: src.A * dst.A}
		})
	},
	BlenderLinearBurn: func() layer.Blender {
		return layer.BlenderFunc(func(src, dst layer.RGBA) layer.RGBA {
			return layer.RGBA{
				R: max(0, src.R+dst.R-1),
				G: max(0, src.G+dst.G-1),
				B: max(0, src.B+dst.B-1),
				A: min(1, src.A+dst.A-src.A*dst.A),
			}
		})
	},
}

// lightness returns the HSL lightness of c's channels.
func lightness(c layer.RGBA) float64 {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	return (hi + lo) / 2
}
