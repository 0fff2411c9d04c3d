package layer

import "github.com/gogpu/layer/internal/blend"

// BlendMode represents a compositing blend mode.
type BlendMode uint8

// Blend mode constants. The separable and HSL modes follow W3C
// Compositing and Blending Level 1; the rest are Porter-Duff operators.
const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendPlusDarker
	BlendPlusLighter
	BlendClear
	BlendSrc
	BlendDst
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcATop
	BlendDstATop
	BlendXor
)

var blendModeNames = [...]string{
	BlendNormal:      "Normal",
	BlendMultiply:    "Multiply",
	BlendScreen:      "Screen",
	BlendOverlay:     "Overlay",
	BlendDarken:      "Darken",
	BlendLighten:     "Lighten",
	BlendColorDodge:  "ColorDodge",
	BlendColorBurn:   "ColorBurn",
	BlendHardLight:   "HardLight",
	BlendSoftLight:   "SoftLight",
	BlendDifference:  "Difference",
	BlendExclusion:   "Exclusion",
	BlendHue:         "Hue",
	BlendSaturation:  "Saturation",
	BlendColor:       "Color",
	BlendLuminosity:  "Luminosity",
	BlendPlusDarker:  "PlusDarker",
	BlendPlusLighter: "PlusLighter",
	BlendClear:       "Clear",
	BlendSrc:         "Src",
	BlendDst:         "Dst",
	BlendDstOver:     "DstOver",
	BlendSrcIn:       "SrcIn",
	BlendDstIn:       "DstIn",
	BlendSrcOut:      "SrcOut",
	BlendDstOut:      "DstOut",
	BlendSrcATop:     "SrcATop",
	BlendDstATop:     "DstATop",
	BlendXor:         "Xor",
}

// String returns a human-readable name for the blend mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return unknownStr
}

// ParseBlendMode returns the mode with the given name.
func ParseBlendMode(name string) (BlendMode, bool) {
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), true
		}
	}
	return BlendNormal, false
}

// Blender combines a premultiplied source color with a premultiplied
// destination color. It replaces the blend mode of a Paint when set.
type Blender interface {
	Blend(src, dst RGBA) RGBA
}

// BlenderFunc adapts a function to the Blender interface.
type BlenderFunc func(src, dst RGBA) RGBA

// Blend implements Blender.
func (f BlenderFunc) Blend(src, dst RGBA) RGBA { return f(src, dst) }

// BlendPremultiplied composites premultiplied src onto dst with mode.
func BlendPremultiplied(mode BlendMode, src, dst RGBA) RGBA {
	c := blend.Apply(blend.Mode(mode), toBlend(src), toBlend(dst))
	return RGBA(c)
}

func toBlend(c RGBA) blend.Color { return blend.Color(c) }
