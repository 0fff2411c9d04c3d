package graph

import (
	"github.com/gogpu/layer"
	"github.com/gogpu/layer/text"
)

// runSource is a contour whose pieces carry their own fills.
type runSource interface {
	runs(env *Env, frame layer.Rect) []StyledShape
}

// TextSpan overrides the fills of the runes in [Start, End).
type TextSpan struct {
	Start, End int
	Fills      []Fill
}

// TextContour lays out text with the Env's text service. Glyphs are placed
// from the top-left of the frame. Runs are split where spans begin and end;
// each piece takes the fills of its span, or the style's fills.
type TextContour struct {
	Content string
	Font    string
	Options text.Options
	Spans   []TextSpan

	last *cachedLayout
}

// cachedLayout is the layout of the latest shape revalidation.
type cachedLayout struct {
	env     *Env
	content string
	font    string
	opts    text.Options
	layout  *text.Layout
}

// relayout lays the text out again and remembers the result.
func (t *TextContour) relayout(env *Env) *text.Layout {
	t.last = nil
	svc := env.Text()
	if svc == nil {
		layer.Logger().Warn("graph: no text service", "text", t.Content)
		return nil
	}
	l := svc.Layout(t.Content, t.Font, t.Options)
	if l != nil {
		t.last = &cachedLayout{env: env, content: t.Content, font: t.Font, opts: t.Options, layout: l}
	}
	return l
}

// layout returns the remembered layout when it still matches the text.
func (t *TextContour) layout(env *Env) *text.Layout {
	if c := t.last; c != nil && c.env == env && c.content == t.Content && c.font == t.Font && c.opts == t.Options {
		return c.layout
	}
	return t.relayout(env)
}

// Shape implements Contour.
func (t *TextContour) Shape(env *Env, frame layer.Rect, _ layer.FillRule) layer.Shape {
	l := t.relayout(env)
	if l == nil {
		return emptyShape()
	}
	p := l.Path().Transform(layer.Translate(frame.X, frame.Y))
	return layer.NewPathShape(p, layer.FillNonZero)
}

func (t *TextContour) runs(env *Env, frame layer.Rect) []StyledShape {
	if len(t.Spans) == 0 {
		return nil
	}
	l := t.layout(env)
	if l == nil {
		return nil
	}
	origin := layer.Translate(frame.X, frame.Y)
	var out []StyledShape
	for _, r := range l.Runs() {
		for _, piece := range t.splitRun(r) {
			p := l.RunPath(piece)
			if p == nil || p.IsEmpty() {
				continue
			}
			out = append(out, StyledShape{
				Shape: layer.NewPathShape(p.Transform(origin), layer.FillNonZero),
				Fills: t.spanFills(piece.Start),
			})
		}
	}
	return out
}

// splitRun cuts r into consecutive glyph groups that fall in one span.
func (t *TextContour) splitRun(r text.Run) []text.Run {
	var out []text.Run
	cur := -2
	for _, g := range r.Glyphs {
		span := t.spanAt(g.Cluster)
		if span != cur {
			out = append(out, text.Run{Start: g.Cluster, End: g.Cluster + 1, RTL: r.RTL})
			cur = span
		}
		last := &out[len(out)-1]
		last.Glyphs = append(last.Glyphs, g)
		last.Advance += g.Advance
		last.Start = min(last.Start, g.Cluster)
		last.End = max(last.End, g.Cluster+1)
	}
	return out
}

// spanAt returns the index of the span containing rune i, or -1.
func (t *TextContour) spanAt(i int) int {
	for k, s := range t.Spans {
		if i >= s.Start && i < s.End {
			return k
		}
	}
	return -1
}

func (t *TextContour) spanFills(i int) []Fill {
	if k := t.spanAt(i); k >= 0 {
		return t.Spans[k].Fills
	}
	return nil
}

// NewTextNode creates a node that draws content. The node's fills paint
// the glyphs.
func NewTextNode(guid, name string, content *TextContour) *PaintNode {
	n := NewPaintNode(guid, name)
	n.SetWindingRule(layer.FillNonZero)
	n.SetContour(content)
	return n
}

// NewImageNode creates a node whose frame is filled with the image
// resource guid.
func NewImageNode(guid, name, image string, mode PatternMode) *PaintNode {
	n := NewPaintNode(guid, name)
	n.SetContour(RectangleContour{})
	n.SetStyle(Style{Fills: []Fill{{
		Enabled: true,
		Context: DefaultContextSetting(),
		Type:    Pattern{GUID: image, Mode: mode},
	}}})
	return n
}
