package scene

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/graph"
	"github.com/gogpu/layer/text"
)

var (
	overflows = map[string]graph.Overflow{
		"visible": graph.OverflowVisible,
		"hidden":  graph.OverflowHidden,
		"scroll":  graph.OverflowScroll,
	}
	combines = map[string]graph.ContourType{
		"frame":              graph.ContourFrameOnly,
		"union":              graph.ContourUnion,
		"unionwithframe":     graph.ContourUnionWithFrame,
		"intersect":          graph.ContourIntersect,
		"intersectwithframe": graph.ContourIntersectWithFrame,
		"objectops":          graph.ContourObjectOps,
	}
	boolOps = map[string]graph.BoolOp{
		"none":      graph.BoolNone,
		"union":     graph.BoolUnion,
		"subtract":  graph.BoolSubtract,
		"intersect": graph.BoolIntersect,
		"exclude":   graph.BoolExclude,
	}
	windings = map[string]layer.FillRule{
		"nonzero": layer.FillNonZero,
		"evenodd": layer.FillEvenOdd,
	}
	strategies = map[string]graph.PaintStrategy{
		"recursive": graph.PaintRecursive,
		"self":      graph.PaintSelfOnly,
		"children":  graph.PaintChildrenOnly,
	}
	maskTypes = map[string]graph.MaskType{
		"none":    graph.MaskNone,
		"outline": graph.MaskOutline,
		"alpha":   graph.MaskAlpha,
	}
	maskShows = map[string]graph.MaskShowType{
		"invisible": graph.MaskShowInvisible,
		"content":   graph.MaskShowContent,
	}
	alphaMaskTypes = map[string]graph.AlphaMaskType{
		"alpha":             graph.AlphaMaskAlpha,
		"luminosity":        graph.AlphaMaskLuminosity,
		"inverseluminosity": graph.AlphaMaskInverseLuminosity,
	}
	gradientKinds = map[string]graph.GradientKind{
		"linear":  graph.GradientLinear,
		"radial":  graph.GradientRadial,
		"angular": graph.GradientAngular,
		"diamond": graph.GradientDiamond,
	}
	patternModes = map[string]graph.PatternMode{
		"fill":    graph.PatternFill,
		"fit":     graph.PatternFit,
		"stretch": graph.PatternStretch,
		"tile":    graph.PatternTile,
	}
	tileModes = map[string]graph.TileMode{
		"both":       graph.TileBoth,
		"horizontal": graph.TileHorizontal,
		"vertical":   graph.TileVertical,
	}
	borderPositions = map[string]graph.BorderPosition{
		"center":  graph.BorderCenter,
		"inside":  graph.BorderInside,
		"outside": graph.BorderOutside,
	}
	joins = map[string]layer.LineJoin{
		"miter": layer.JoinMiter,
		"round": layer.JoinRound,
		"bevel": layer.JoinBevel,
	}
	caps = map[string]layer.LineCap{
		"butt":   layer.CapButt,
		"round":  layer.CapRound,
		"square": layer.CapSquare,
	}
	blurKinds = map[string]graph.BlurKind{
		"gaussian":   graph.BlurGaussian,
		"background": graph.BlurBackground,
		"motion":     graph.BlurMotion,
		"radial":     graph.BlurRadial,
	}
	aligns = map[string]text.Align{
		"left":   text.AlignLeft,
		"center": text.AlignCenter,
		"right":  text.AlignRight,
	}
	directions = map[string]text.Direction{
		"auto": text.DirectionAuto,
		"ltr":  text.DirectionLTR,
		"rtl":  text.DirectionRTL,
	}
)

// lookup resolves a case-insensitive enum name. An empty name yields def.
func lookup[T any](field, name string, values map[string]T, def T) (T, error) {
	if name == "" {
		return def, nil
	}
	v, ok := values[strings.ToLower(name)]
	if !ok {
		return def, zerr.With(zerr.With(ErrInvalidValue, "field", field), "value", name)
	}
	return v, nil
}

// blendMode resolves a document blend mode name. An empty name is normal.
func blendMode(name string) (graph.BlendMode, error) {
	if name == "" {
		return graph.BlendNormal, nil
	}
	m, ok := graph.ParseBlendMode(name)
	if !ok {
		return graph.BlendNormal, zerr.With(zerr.With(ErrInvalidValue, "field", "blend"), "value", name)
	}
	return m, nil
}

func parseColor(s string) (layer.RGBA, error) {
	c, ok := layer.ParseHex(s)
	if !ok {
		return layer.Black, zerr.With(zerr.With(ErrInvalidValue, "field", "color"), "value", s)
	}
	return c, nil
}
