package graph

import (
	"strings"

	"github.com/gogpu/layer"
)

// BlendMode is the blend mode of a design object. Most modes map to a
// [layer.BlendMode]; some are custom blenders.
type BlendMode uint8

const (
	BlendPassThrough BlendMode = iota
	BlendNormal
	BlendDarken
	BlendMultiply
	BlendLinearBurn
	BlendColorBurn
	BlendLighten
	BlendScreen
	BlendLinearDodge
	BlendColorDodge
	BlendOverlay
	BlendSoftLight
	BlendHardLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendPlusDarker
	BlendPlusLighter
)

var blendModes = [...]struct {
	name string
	mode layer.BlendMode
}{
	BlendPassThrough: {"passThrough", layer.BlendNormal},
	BlendNormal:      {"normal", layer.BlendNormal},
	BlendDarken:      {"darken", layer.BlendDarken},
	BlendMultiply:    {"multiply", layer.BlendMultiply},
	BlendLinearBurn:  {"linearBurn", layer.BlendNormal},
	BlendColorBurn:   {"colorBurn", layer.BlendColorBurn},
	BlendLighten:     {"lighten", layer.BlendLighten},
	BlendScreen:      {"screen", layer.BlendScreen},
	BlendLinearDodge: {"linearDodge", layer.BlendPlusLighter},
	BlendColorDodge:  {"colorDodge", layer.BlendColorDodge},
	BlendOverlay:     {"overlay", layer.BlendOverlay},
	BlendSoftLight:   {"softLight", layer.BlendSoftLight},
	BlendHardLight:   {"hardLight", layer.BlendHardLight},
	BlendDifference:  {"difference", layer.BlendDifference},
	BlendExclusion:   {"exclusion", layer.BlendExclusion},
	BlendHue:         {"hue", layer.BlendHue},
	BlendSaturation:  {"saturation", layer.BlendSaturation},
	BlendColor:       {"color", layer.BlendColor},
	BlendLuminosity:  {"luminosity", layer.BlendLuminosity},
	BlendPlusDarker:  {"plusDarker", layer.BlendPlusDarker},
	BlendPlusLighter: {"plusLighter", layer.BlendPlusLighter},
}

// String returns the document name of the mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModes) {
		return blendModes[m].name
	}
	return "unknown"
}

// ParseBlendMode parses a document blend mode name, ignoring case.
func ParseBlendMode(name string) (BlendMode, bool) {
	for i, b := range blendModes {
		if strings.EqualFold(b.name, name) {
			return BlendMode(i), true
		}
	}
	return BlendNormal, false
}

// isNormal reports whether m composites like plain source-over.
func (m BlendMode) isNormal() bool {
	return m == BlendNormal || m == BlendPassThrough
}

// apply sets m on p, either as a blend mode or as a custom blender.
func (m BlendMode) apply(p *layer.Paint, env *Env) {
	if m == BlendLinearBurn {
		p.Blender = env.Blender(BlenderLinearBurn)
		return
	}
	if int(m) < len(blendModes) {
		p.BlendMode = blendModes[m].mode
	}
}
