package graph

import (
	"fmt"
	"math"

	"github.com/gogpu/layer"
)

// minStopSpan separates gradient stops that share one position.
const minStopSpan = 1e-5

// gradientStops sorts stops by position.
func gradientStops(stops []GradientStop) []layer.ColorStop {
	cs := make([]layer.ColorStop, len(stops))
	for i, s := range stops {
		cs[i] = layer.ColorStop{Offset: s.Position, Color: s.Color}
	}
	return layer.SortStops(cs)
}

// NormalizeStops sorts stops and rescales their positions from
// [lo, hi], the range the stops cover, to [0, 1]. A stop sharing the
// position of the one before it is moved minStopSpan past it, so
// coincident stops keep their order and a hard edge between them.
func NormalizeStops(stops []GradientStop) (norm []layer.ColorStop, lo, hi float64) {
	sorted := gradientStops(stops)
	if len(sorted) == 0 {
		return nil, 0, 1
	}
	for i := 1; i < len(sorted); i++ {
		if prev := sorted[i-1].Offset; sorted[i].Offset-prev < minStopSpan {
			sorted[i].Offset = prev + minStopSpan
		}
	}
	lo, hi = sorted[0].Offset, sorted[len(sorted)-1].Offset
	if hi-lo < minStopSpan {
		hi = lo + minStopSpan
	}
	norm = make([]layer.ColorStop, len(sorted))
	for i, s := range sorted {
		norm[i] = layer.ColorStop{Offset: (s.Offset - lo) / (hi - lo), Color: s.Color}
	}
	return norm, lo, hi
}

// AngularStops sorts stops and adds boundary stops at 0 and 1 when the
// stops do not cover the full turn. Both boundary colors interpolate
// between the last and the first stop across the uncovered sector.
func AngularStops(stops []GradientStop) []layer.ColorStop {
	sorted := gradientStops(stops)
	if len(sorted) == 0 {
		return nil
	}
	lo, hi := sorted[0].Offset, sorted[len(sorted)-1].Offset
	first, last := sorted[0].Color, sorted[len(sorted)-1].Color
	seam := first
	if gap := lo + 1 - hi; gap > 0 {
		seam = first.Lerp(last, lo/gap)
	}
	out := make([]layer.ColorStop, 0, len(sorted)+2)
	if lo > 0 {
		out = append(out, layer.ColorStop{Offset: 0, Color: seam})
	}
	out = append(out, sorted...)
	if hi < 1 {
		out = append(out, layer.ColorStop{Offset: 1, Color: seam})
	}
	return out
}

// objectPoint maps a normalized point into bounds.
func objectPoint(bounds layer.Rect, p layer.Point) layer.Point {
	return bounds.Origin().Add(p.Scale(bounds.Size()))
}

// ellipseMatrix maps the circular gradient around from onto an ellipse
// whose major axis points at to.
func ellipseMatrix(from, to layer.Point, ratio float64) layer.Matrix {
	if ratio <= 0 {
		ratio = 1
	}
	theta := to.Sub(from).Angle()
	return layer.Translate(from.X, from.Y).
		Multiply(layer.Rotate(theta)).
		Multiply(layer.Scale(1, ratio)).
		Multiply(layer.Translate(-from.X, -from.Y))
}

// Shader builds the shader of g over bounds. It returns nil for a gradient
// without stops.
func (g Gradient) Shader(bounds layer.Rect) layer.Shader {
	if len(g.Stops) == 0 {
		return nil
	}
	from := objectPoint(bounds, g.From)
	to := objectPoint(bounds, g.To)
	switch g.Kind {
	case GradientAngular:
		s := layer.NewSweepGradient(from, AngularStops(g.Stops))
		return layer.WithLocalMatrix(s, ellipseMatrix(from, to, g.Ellipse))
	case GradientRadial, GradientDiamond:
		norm, lo, hi := NormalizeStops(g.Stops)
		r := from.Distance(to)
		m := ellipseMatrix(from, to, g.Ellipse)
		var s layer.Shader
		if g.Kind == GradientRadial {
			s = layer.NewRadialGradient(from, r*lo, r*hi, norm)
		} else {
			s = layer.NewDiamondGradient(from, r*lo, r*hi, norm)
		}
		return layer.WithLocalMatrix(s, m)
	default:
		norm, lo, hi := NormalizeStops(g.Stops)
		return layer.NewLinearGradient(from.Lerp(to, lo), from.Lerp(to, hi), norm)
	}
}

// patternMatrix maps image pixels of size iw x ih into bounds.
func (p Pattern) patternMatrix(bounds layer.Rect, iw, ih float64) layer.Matrix {
	origin := layer.Translate(bounds.X, bounds.Y)
	rot := p.Rotation * math.Pi / 180
	switch p.Mode {
	case PatternFit, PatternFill:
		sx, sy := bounds.W/iw, bounds.H/ih
		var s float64
		var shift layer.Matrix
		if p.Mode == PatternFit {
			s = min(sx, sy)
		} else {
			s = max(sx, sy)
		}
		if (p.Mode == PatternFit) == (sx < sy) {
			shift = layer.Translate(0, (bounds.H-s*ih)/2)
		} else {
			shift = layer.Translate((bounds.W-s*iw)/2, 0)
		}
		return origin.Multiply(shift).
			Multiply(layer.Scale(s, s)).
			Multiply(layer.RotateAbout(rot, iw/2, ih/2))
	case PatternStretch:
		t := p.Transform
		if t == (layer.Matrix{}) {
			t = layer.Identity()
		}
		return origin.Multiply(layer.Scale(bounds.W, bounds.H)).
			Multiply(t).
			Multiply(layer.Scale(1/iw, 1/ih))
	default:
		s := p.Scale
		if s <= 0 {
			s = 1
		}
		return origin.Multiply(layer.Rotate(rot)).Multiply(layer.Scale(s, s))
	}
}

// tileModes returns the extend modes per axis.
func (p Pattern) tileModes() (x, y layer.ExtendMode) {
	x, y = layer.ExtendDecal, layer.ExtendDecal
	if p.Mode != PatternTile {
		return x, y
	}
	rep := layer.ExtendRepeat
	if p.Mirror {
		rep = layer.ExtendReflect
	}
	switch p.Tile {
	case TileHorizontal:
		x = rep
	case TileVertical:
		y = rep
	default:
		x, y = rep, rep
	}
	return x, y
}

// Shader builds the image shader of p over bounds. A missing image is
// logged by the Env and yields nil.
func (p Pattern) Shader(bounds layer.Rect, env *Env) layer.Shader {
	img := env.Image(p.GUID)
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	ex, ey := p.tileModes()
	m := p.patternMatrix(bounds, float64(b.Dx()), float64(b.Dy()))
	var s layer.Shader = layer.NewImageShader(img, m, ex, ey)
	if cf := p.Adjust.colorFilter(env); cf != nil {
		s = layer.WithColorFilter(s, cf)
	}
	return s
}

// Tint colors applied by positive and negative tint.
var (
	warmTint = layer.RGB(1, 0.9, 0.2)
	coolTint = layer.RGB(1, 0.5, 0.9)
)

// colorFilter compiles a into one color filter, shared through the Env
// cache. It returns nil when a is the identity.
func (a ImageAdjust) colorFilter(env *Env) layer.ColorFilter {
	if a.IsZero() {
		return nil
	}
	key := fmt.Sprintf("adjust:%g:%g:%g:%g:%g:%g:%g:%g",
		a.Exposure, a.Contrast, a.Saturation, a.Temperature, a.Tint, a.Highlight, a.Shadow, a.Hue)
	return env.ColorFilter(key, a.compile)
}

func (a ImageAdjust) compile() layer.ColorFilter {
	m := layer.ContrastColorMatrix(1 + a.Contrast)
	m = layer.SaturationColorMatrix(1 + a.Saturation).Concat(m)
	if a.Hue != 0 {
		m = layer.HueRotateColorMatrix(a.Hue * math.Pi).Concat(m)
	}
	if t := a.Temperature * 0.5; t != 0 {
		temp := layer.IdentityColorMatrix()
		temp[0] += t
		temp[12] -= t
		m = temp.Concat(m)
	}
	if a.Tint != 0 {
		tc := warmTint
		if a.Tint < 0 {
			tc = coolTint
		}
		k := math.Abs(a.Tint)
		tint := layer.IdentityColorMatrix()
		tint[0] = 1 + (tc.R-1)*k
		tint[6] = 1 + (tc.G-1)*k
		tint[12] = 1 + (tc.B-1)*k
		m = tint.Concat(m)
	}
	if a.Exposure != 0 {
		m = layer.ScaleColorMatrix(math.Pow(3, a.Exposure)).Concat(m)
	}
	if a.Highlight == 0 && a.Shadow == 0 {
		return m
	}
	return layer.ColorFilterFunc(func(c layer.RGBA) layer.RGBA {
		c = m.FilterColor(c)
		c.R = highlightShadow(c.R, 0.299, a.Highlight, a.Shadow)
		c.G = highlightShadow(c.G, 0.587, a.Highlight, a.Shadow)
		c.B = highlightShadow(c.B, 0.114, a.Highlight, a.Shadow)
		return c.Clamp()
	})
}

// highlightShadow brightens or darkens a channel by how light it is.
func highlightShadow(v, weight, highlight, shadow float64) float64 {
	lum := math.Sqrt(weight * v * v)
	h := highlight * 0.05 * (math.Pow(8, lum) - 1)
	s := shadow * 0.05 * (math.Pow(8, 1-lum) - 1)
	return v + h + s
}

// fillPaint builds the paint of a fill type with its context setting over
// bounds. It returns nil when the fill cannot paint, such as a gradient
// without stops or a missing pattern image.
func fillPaint(ft FillType, ctx ContextSetting, bounds layer.Rect, env *Env) *layer.Paint {
	var p *layer.Paint
	switch f := ft.(type) {
	case ColorFill:
		c := f.Color
		c.A *= clampUnit(ctx.Opacity)
		p = layer.NewColorPaint(c)
	case Gradient:
		s := f.Shader(bounds)
		if s == nil {
			return nil
		}
		p = layer.NewPaint(s)
		p.Alpha = clampUnit(ctx.Opacity)
	case Pattern:
		s := f.Shader(bounds, env)
		if s == nil {
			return nil
		}
		p = layer.NewPaint(s)
		p.Alpha = clampUnit(ctx.Opacity)
	default:
		return nil
	}
	ctx.BlendMode.apply(p, env)
	return p
}
