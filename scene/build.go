package scene

import (
	"math"

	"go.trai.ch/zerr"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/graph"
	"github.com/gogpu/layer/text"
)

// builder turns node DTOs into PaintNodes. Symbols are built once on first
// use and cloned for every instance.
type builder struct {
	symbols  map[string]*nodeDTO
	built    map[string]*graph.PaintNode
	building map[string]bool
}

func newBuilder(symbols map[string]*nodeDTO) *builder {
	return &builder{
		symbols:  symbols,
		built:    make(map[string]*graph.PaintNode),
		building: make(map[string]bool),
	}
}

func (b *builder) node(d *nodeDTO) (*graph.PaintNode, error) {
	if d == nil {
		return nil, zerr.With(ErrInvalidValue, "field", "children")
	}
	name := d.Name
	if name == "" {
		name = d.ID
	}
	if name == "" {
		name = d.Type
	}

	var n *graph.PaintNode
	switch d.Type {
	case "group":
		n = graph.NewPaintNode(d.ID, name)
		n.SetContourType(graph.ContourUnion)
	case "frame", "rectangle":
		n = graph.NewPaintNode(d.ID, name)
	case "boolean":
		n = graph.NewPaintNode(d.ID, name)
		n.SetContourType(graph.ContourObjectOps)
	case "ellipse":
		n = graph.NewPaintNode(d.ID, name)
		n.SetContour(graph.EllipseContour{})
	case "star":
		n = graph.NewPaintNode(d.ID, name)
		n.SetContour(graph.StarContour{Points: orDefault(d.Sides, 5), Ratio: orDefaultF(d.Ratio, 0.5)})
	case "polygon":
		n = graph.NewPaintNode(d.ID, name)
		n.SetContour(graph.PolygonContour{Sides: orDefault(d.Sides, 3)})
	case "path":
		pts, err := points(d.Points)
		if err != nil {
			return nil, zerr.With(err, "node", d.ID)
		}
		n = graph.NewPaintNode(d.ID, name)
		n.SetContour(graph.PointsContour{Points: pts, Closed: d.Closed})
	case "text":
		c, err := textContour(d.Text)
		if err != nil {
			return nil, zerr.With(err, "node", d.ID)
		}
		n = graph.NewTextNode(d.ID, name, c)
	case "image":
		mode, err := lookup("mode", d.Mode, patternModes, graph.PatternFill)
		if err != nil {
			return nil, zerr.With(err, "node", d.ID)
		}
		n = graph.NewImageNode(d.ID, name, d.Image, mode)
	case "instance":
		sym, err := b.symbol(d.Ref)
		if err != nil {
			return nil, zerr.With(err, "node", d.ID)
		}
		n = sym.Clone(d.ID + "/")
	default:
		return nil, zerr.With(zerr.With(ErrUnknownNodeType, "type", d.Type), "node", d.ID)
	}

	if err := b.apply(n, d); err != nil {
		n.Detach()
		return nil, zerr.With(err, "node", d.ID)
	}
	return n, nil
}

// symbol returns the template built for the symbol named ref.
func (b *builder) symbol(ref string) (*graph.PaintNode, error) {
	if n, ok := b.built[ref]; ok {
		return n, nil
	}
	d, ok := b.symbols[ref]
	if !ok {
		return nil, zerr.With(ErrUnknownSymbol, "ref", ref)
	}
	if b.building[ref] {
		return nil, zerr.With(zerr.With(ErrInvalidValue, "field", "ref"), "cycle", ref)
	}
	b.building[ref] = true
	defer delete(b.building, ref)
	n, err := b.node(d)
	if err != nil {
		return nil, err
	}
	b.built[ref] = n
	return n, nil
}

// apply sets the properties common to every node type. Unset fields keep
// the node's current value, so instances only override what they declare.
func (b *builder) apply(n *graph.PaintNode, d *nodeDTO) error {
	if d.Frame != nil {
		r, err := rect(d.Frame)
		if err != nil {
			return err
		}
		n.SetFrameBounds(r)
	}
	if d.Radius != nil {
		c, err := corners(d.Radius)
		if err != nil {
			return err
		}
		n.SetFrameRadius(c)
	}
	if d.Smoothing != 0 {
		n.SetCornerSmoothing(d.Smoothing)
	}
	if d.Transform != nil {
		m, err := transform(d.Transform)
		if err != nil {
			return err
		}
		n.SetTransform(m)
	}
	if d.Visible != nil {
		n.SetVisible(*d.Visible)
	}
	if d.Opacity != nil || d.Blend != "" || d.Isolate {
		ctx, err := contextSetting(d.Opacity, d.Blend)
		if err != nil {
			return err
		}
		ctx.Isolate = d.Isolate
		n.SetContextSetting(ctx)
	}
	if err := b.applyEnums(n, d); err != nil {
		return err
	}
	if d.MaskBy != nil {
		n.SetMaskBy(d.MaskBy...)
	}
	if d.AlphaMaskBy != nil {
		n.SetAlphaMaskBy(d.AlphaMaskBy...)
	}
	if d.Style != nil {
		st, err := style(d.Style)
		if err != nil {
			return err
		}
		if d.Type == "image" {
			st.Fills = append(n.Style().Fills, st.Fills...)
		}
		n.SetStyle(st)
	}
	for _, cd := range d.Children {
		c, err := b.node(cd)
		if err != nil {
			return err
		}
		n.AddChild(c)
	}
	return nil
}

func (b *builder) applyEnums(n *graph.PaintNode, d *nodeDTO) error {
	if d.Overflow != "" {
		v, err := lookup("overflow", d.Overflow, overflows, graph.OverflowVisible)
		if err != nil {
			return err
		}
		n.SetOverflow(v)
	}
	if d.Combine != "" {
		v, err := lookup("combine", d.Combine, combines, graph.ContourFrameOnly)
		if err != nil {
			return err
		}
		n.SetContourType(v)
	}
	if d.BoolOp != "" {
		v, err := lookup("boolOp", d.BoolOp, boolOps, graph.BoolNone)
		if err != nil {
			return err
		}
		n.SetBoolOp(v)
	}
	if d.Winding != "" {
		v, err := lookup("winding", d.Winding, windings, layer.FillEvenOdd)
		if err != nil {
			return err
		}
		n.SetWindingRule(v)
	}
	if d.Paint != "" {
		v, err := lookup("paint", d.Paint, strategies, graph.PaintRecursive)
		if err != nil {
			return err
		}
		n.SetPaintStrategy(v)
	}
	if d.Mask != "" {
		v, err := lookup("mask", d.Mask, maskTypes, graph.MaskNone)
		if err != nil {
			return err
		}
		n.SetMaskType(v)
	}
	if d.MaskShow != "" {
		v, err := lookup("maskShow", d.MaskShow, maskShows, graph.MaskShowInvisible)
		if err != nil {
			return err
		}
		n.SetMaskShowType(v)
	}
	if d.AlphaMaskType != "" {
		v, err := lookup("alphaMaskType", d.AlphaMaskType, alphaMaskTypes, graph.AlphaMaskAlpha)
		if err != nil {
			return err
		}
		n.SetAlphaMaskType(v)
	}
	return nil
}

func style(d *styleDTO) (graph.Style, error) {
	var st graph.Style
	for _, p := range d.Fills {
		f, err := fill(p)
		if err != nil {
			return st, zerr.With(err, "style", "fills")
		}
		st.Fills = append(st.Fills, f)
	}
	for _, bd := range d.Borders {
		b, err := border(bd)
		if err != nil {
			return st, zerr.With(err, "style", "borders")
		}
		st.Borders = append(st.Borders, b)
	}
	for _, sd := range d.Shadows {
		s, err := shadow(sd)
		if err != nil {
			return st, zerr.With(err, "style", "shadows")
		}
		st.DropShadows = append(st.DropShadows, graph.DropShadow{
			Enabled:               s.enabled,
			Context:               s.ctx,
			Color:                 s.color,
			OffsetX:               s.offset.X,
			OffsetY:               s.offset.Y,
			Blur:                  sd.Blur,
			Spread:                sd.Spread,
			ShowBehindTransparent: sd.ShowBehind,
		})
	}
	for _, sd := range d.InnerShadows {
		s, err := shadow(sd)
		if err != nil {
			return st, zerr.With(err, "style", "innerShadows")
		}
		st.InnerShadows = append(st.InnerShadows, graph.InnerShadow{
			Enabled: s.enabled,
			Context: s.ctx,
			Color:   s.color,
			OffsetX: s.offset.X,
			OffsetY: s.offset.Y,
			Blur:    sd.Blur,
			Spread:  sd.Spread,
		})
	}
	for _, bd := range d.Blurs {
		kind, err := lookup("kind", bd.Kind, blurKinds, graph.BlurGaussian)
		if err != nil {
			return st, zerr.With(err, "style", "blurs")
		}
		center, err := point("center", bd.Center, layer.Pt(0.5, 0.5))
		if err != nil {
			return st, zerr.With(err, "style", "blurs")
		}
		st.Blurs = append(st.Blurs, graph.Blur{
			Enabled: enabled(bd.Enabled),
			Kind:    kind,
			Radius:  bd.Radius,
			Angle:   bd.Angle,
			Center:  center,
		})
	}
	return st, nil
}

func fill(d paintDTO) (graph.Fill, error) {
	ctx, err := contextSetting(d.Opacity, d.Blend)
	if err != nil {
		return graph.Fill{}, err
	}
	ft, err := fillType(d)
	if err != nil {
		return graph.Fill{}, err
	}
	return graph.Fill{Enabled: enabled(d.Enabled), Context: ctx, Type: ft}, nil
}

func fillType(d paintDTO) (graph.FillType, error) {
	switch {
	case d.Gradient != nil:
		return gradient(d.Gradient)
	case d.Pattern != nil:
		return pattern(d.Pattern)
	case d.Color != "":
		c, err := parseColor(d.Color)
		if err != nil {
			return nil, err
		}
		return graph.ColorFill{Color: c}, nil
	}
	return nil, zerr.With(ErrInvalidValue, "field", "color")
}

func gradient(d *gradientDTO) (graph.Gradient, error) {
	kind, err := lookup("kind", d.Kind, gradientKinds, graph.GradientLinear)
	if err != nil {
		return graph.Gradient{}, err
	}
	from, err := point("from", d.From, layer.Pt(0, 0.5))
	if err != nil {
		return graph.Gradient{}, err
	}
	to, err := point("to", d.To, layer.Pt(1, 0.5))
	if err != nil {
		return graph.Gradient{}, err
	}
	g := graph.Gradient{Kind: kind, From: from, To: to, Ellipse: d.Ellipse}
	for _, s := range d.Stops {
		c, err := parseColor(s.Color)
		if err != nil {
			return graph.Gradient{}, err
		}
		g.Stops = append(g.Stops, graph.GradientStop{Position: s.Pos, Color: c})
	}
	return g, nil
}

func pattern(d *patternDTO) (graph.Pattern, error) {
	mode, err := lookup("mode", d.Mode, patternModes, graph.PatternFill)
	if err != nil {
		return graph.Pattern{}, err
	}
	tile, err := lookup("tile", d.Tile, tileModes, graph.TileBoth)
	if err != nil {
		return graph.Pattern{}, err
	}
	return graph.Pattern{
		GUID:     d.Image,
		Mode:     mode,
		Rotation: d.Rotation,
		Scale:    d.Scale,
		Tile:     tile,
		Mirror:   d.Mirror,
		Adjust:   d.Adjust,
	}, nil
}

func border(d borderDTO) (graph.Border, error) {
	f, err := fill(d.paintDTO)
	if err != nil {
		return graph.Border{}, err
	}
	pos, err := lookup("position", d.Position, borderPositions, graph.BorderCenter)
	if err != nil {
		return graph.Border{}, err
	}
	join, err := lookup("join", d.Join, joins, layer.JoinMiter)
	if err != nil {
		return graph.Border{}, err
	}
	lineCap, err := lookup("cap", d.Cap, caps, layer.CapButt)
	if err != nil {
		return graph.Border{}, err
	}
	return graph.Border{
		Enabled:    f.Enabled,
		Context:    f.Context,
		Type:       f.Type,
		Thickness:  orDefaultF(d.Thickness, 1),
		Position:   pos,
		Dash:       d.Dash,
		DashOffset: d.DashOffset,
		Join:       join,
		Cap:        lineCap,
		MiterLimit: d.MiterLimit,
	}, nil
}

type shadowParams struct {
	enabled bool
	ctx     graph.ContextSetting
	color   layer.RGBA
	offset  layer.Point
}

// defaultShadowColor is black at a quarter opacity.
var defaultShadowColor = layer.NewRGBA(0, 0, 0, 0.25)

func shadow(d shadowDTO) (shadowParams, error) {
	ctx, err := contextSetting(d.Opacity, d.Blend)
	if err != nil {
		return shadowParams{}, err
	}
	c := defaultShadowColor
	if d.Color != "" {
		if c, err = parseColor(d.Color); err != nil {
			return shadowParams{}, err
		}
	}
	off, err := point("offset", d.Offset, layer.Point{})
	if err != nil {
		return shadowParams{}, err
	}
	return shadowParams{enabled: enabled(d.Enabled), ctx: ctx, color: c, offset: off}, nil
}

func textContour(d *textDTO) (*graph.TextContour, error) {
	if d == nil {
		return nil, zerr.With(ErrInvalidValue, "field", "text")
	}
	align, err := lookup("align", d.Align, aligns, text.AlignLeft)
	if err != nil {
		return nil, err
	}
	dir, err := lookup("direction", d.Direction, directions, text.DirectionAuto)
	if err != nil {
		return nil, err
	}
	c := &graph.TextContour{
		Content: d.Content,
		Font:    d.Font,
		Options: text.Options{
			Size:       d.Size,
			LineHeight: d.LineHeight,
			Width:      d.Width,
			Align:      align,
			Direction:  dir,
		},
	}
	for _, s := range d.Spans {
		span := graph.TextSpan{Start: s.Start, End: s.End}
		for _, p := range s.Fills {
			f, err := fill(p)
			if err != nil {
				return nil, zerr.With(err, "field", "spans")
			}
			span.Fills = append(span.Fills, f)
		}
		c.Spans = append(c.Spans, span)
	}
	return c, nil
}

func contextSetting(opacity *float64, blend string) (graph.ContextSetting, error) {
	ctx := graph.DefaultContextSetting()
	if opacity != nil {
		ctx.Opacity = *opacity
	}
	m, err := blendMode(blend)
	if err != nil {
		return ctx, err
	}
	ctx.BlendMode = m
	return ctx, nil
}

func transform(d *transformDTO) (layer.Matrix, error) {
	if d.Matrix != nil {
		if len(d.Matrix) != 6 {
			return layer.Identity(), zerr.With(ErrInvalidValue, "field", "matrix")
		}
		v := d.Matrix
		return layer.Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}, nil
	}
	t, err := point("translate", d.Translate, layer.Point{})
	if err != nil {
		return layer.Identity(), err
	}
	s, err := point("scale", d.Scale, layer.Pt(1, 1))
	if err != nil {
		return layer.Identity(), err
	}
	return layer.Translate(t.X, t.Y).
		Multiply(layer.Rotate(d.Rotate * math.Pi / 180)).
		Multiply(layer.Scale(s.X, s.Y)), nil
}

func rect(v []float64) (layer.Rect, error) {
	if len(v) != 4 || v[2] < 0 || v[3] < 0 {
		return layer.Rect{}, zerr.With(ErrInvalidValue, "field", "frame")
	}
	return layer.NewRect(v[0], v[1], v[2], v[3]), nil
}

func corners(v []float64) (layer.Corners, error) {
	switch len(v) {
	case 1:
		return layer.Corners{v[0], v[0], v[0], v[0]}, nil
	case 4:
		return layer.Corners{v[0], v[1], v[2], v[3]}, nil
	}
	return layer.Corners{}, zerr.With(ErrInvalidValue, "field", "radius")
}

func point(field string, v []float64, def layer.Point) (layer.Point, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 2:
		return layer.Pt(v[0], v[1]), nil
	}
	return def, zerr.With(ErrInvalidValue, "field", field)
}

func points(vs [][]float64) ([]layer.Point, error) {
	out := make([]layer.Point, 0, len(vs))
	for _, v := range vs {
		if len(v) != 2 {
			return nil, zerr.With(ErrInvalidValue, "field", "points")
		}
		out = append(out, layer.Pt(v[0], v[1]))
	}
	return out, nil
}

func enabled(v *bool) bool { return v == nil || *v }

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultF(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
