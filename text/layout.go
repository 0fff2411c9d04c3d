package text

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/layer"
)

// Align is the horizontal alignment of lines inside the layout width.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// defaultLineHeight is the line height as a multiple of the font size.
const defaultLineHeight = 1.2

// Options control a layout.
type Options struct {
	// Size is the font size in pixels.
	Size float64
	// LineHeight is a multiple of Size. Zero means 1.2.
	LineHeight float64
	// Width wraps lines at word boundaries. Zero disables wrapping.
	Width float64
	// Align positions lines inside Width, or inside the widest line.
	Align Align
	// Direction is the base paragraph direction.
	Direction Direction
}

// Glyph is a positioned glyph. X and Y locate the glyph origin on the
// baseline in layout coordinates.
type Glyph struct {
	ID      uint16
	X, Y    float64
	Advance float64

	// Cluster is the rune offset of the first rune shaped into the glyph.
	Cluster int
}

// Run is a sequence of glyphs shaped with one direction. Start and End are
// rune offsets into the laid-out text.
type Run struct {
	Start, End int
	RTL        bool
	Glyphs     []Glyph
	Advance    float64
}

// Line is one line of a layout.
type Line struct {
	Runs     []Run
	Baseline float64
	Width    float64
}

// Layout is a laid-out string.
type Layout struct {
	Text  string
	Size  float64
	Lines []Line

	// Bounds is the union of the line boxes.
	Bounds layer.Rect

	font *Font
}

// Font returns the font the layout was shaped with.
func (l *Layout) Font() *Font { return l.font }

// Runs returns all runs in line order.
func (l *Layout) Runs() []Run {
	var out []Run
	for _, line := range l.Lines {
		out = append(out, line.Runs...)
	}
	return out
}

// RunPath returns the glyph outlines of r as one path.
func (l *Layout) RunPath(r Run) *layer.Path {
	p := layer.NewPath()
	if l.font == nil {
		return p
	}
	var buf sfnt.Buffer
	for _, g := range r.Glyphs {
		l.font.appendGlyph(p, &buf, g.ID, l.Size, g.X, g.Y)
	}
	return p
}

// Path returns the outlines of every glyph in the layout.
func (l *Layout) Path() *layer.Path {
	p := layer.NewPath()
	for _, r := range l.Runs() {
		p.Append(l.RunPath(r))
	}
	return p
}

// Shaper lays out text with a set of fonts. It is not safe for concurrent
// use.
type Shaper struct {
	fonts  map[string]*Font
	order  []*Font
	shaper shaping.HarfbuzzShaper
}

// NewShaper creates a shaper with the given fonts. The first font is the
// fallback for unknown names.
func NewShaper(fonts ...*Font) *Shaper {
	s := &Shaper{fonts: make(map[string]*Font)}
	for _, f := range fonts {
		s.AddFont(f)
	}
	return s
}

// AddFont registers f under its name.
func (s *Shaper) AddFont(f *Font) {
	if f == nil {
		return
	}
	if _, ok := s.fonts[f.name]; !ok {
		s.order = append(s.order, f)
	}
	s.fonts[f.name] = f
}

// Font returns the font registered as name, or the fallback font.
func (s *Shaper) Font(name string) *Font {
	if f, ok := s.fonts[name]; ok {
		return f
	}
	if len(s.order) == 0 {
		return nil
	}
	return s.order[0]
}

// Layout shapes content with the font registered as fontName. It returns
// nil when the shaper has no fonts.
func (s *Shaper) Layout(content, fontName string, opts Options) *Layout {
	f := s.Font(fontName)
	if f == nil {
		layer.Logger().Warn("text: no font available", "font", fontName)
		return nil
	}
	if opts.Size <= 0 {
		opts.Size = 12
	}
	lh := opts.LineHeight
	if lh <= 0 {
		lh = defaultLineHeight
	}
	lineHeight := opts.Size * lh
	m := f.Metrics(opts.Size)
	face := font.NewFace(f.shaped)

	l := &Layout{Text: content, Size: opts.Size, font: f}
	runes := []rune(content)
	offset := 0
	y := 0.0
	for _, para := range strings.Split(content, "\n") {
		pr := []rune(para)
		for _, span := range s.wrap(face, pr, opts) {
			line := s.shapeLine(face, runes, offset+span.start, offset+span.end, opts)
			line.Baseline = y + (lineHeight-m.Ascent-m.Descent)/2 + m.Ascent
			l.Lines = append(l.Lines, line)
			y += lineHeight
		}
		offset += len(pr) + 1
	}
	s.position(l, opts, lineHeight)
	return l
}

// position applies alignment and baselines to glyph coordinates and
// computes the layout bounds.
func (s *Shaper) position(l *Layout, opts Options, lineHeight float64) {
	width := opts.Width
	if width <= 0 {
		for _, line := range l.Lines {
			width = max(width, line.Width)
		}
	}
	for i := range l.Lines {
		line := &l.Lines[i]
		x := 0.0
		switch opts.Align {
		case AlignCenter:
			x = (width - line.Width) / 2
		case AlignRight:
			x = width - line.Width
		}
		for j := range line.Runs {
			run := &line.Runs[j]
			for k := range run.Glyphs {
				run.Glyphs[k].X += x
				run.Glyphs[k].Y += line.Baseline
			}
			x += run.Advance
		}
	}
	l.Bounds = layer.NewRect(0, 0, width, lineHeight*float64(len(l.Lines)))
}

// shapeLine shapes runes[start:end] run by run in visual order. Glyph X is
// relative to the start of its run and Y to the baseline.
func (s *Shaper) shapeLine(face *font.Face, runes []rune, start, end int, opts Options) Line {
	var line Line
	for _, seg := range segments(runes[start:end], opts.Direction) {
		run := s.shapeRun(face, runes, start+seg.start, start+seg.end, seg.rtl, opts.Size)
		line.Width += run.Advance
		line.Runs = append(line.Runs, run)
	}
	return line
}

// shapeRun shapes runes[start:end] with HarfBuzz. Glyph X is relative to
// the run start.
func (s *Shaper) shapeRun(face *font.Face, runes []rune, start, end int, rtl bool, size float64) Run {
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}
	out := s.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  start,
		RunEnd:    end,
		Direction: dir,
		Face:      face,
		Size:      floatToFixed(size),
		Script:    detectScript(runes[start:end]),
		Language:  language.NewLanguage("en"),
	})
	run := Run{Start: start, End: end, RTL: rtl, Glyphs: make([]Glyph, 0, len(out.Glyphs))}
	x := 0.0
	for _, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance)
		run.Glyphs = append(run.Glyphs, Glyph{
			ID:      uint16(g.GlyphID), //nolint:gosec // glyph ids of sfnt fonts fit in 16 bits
			X:       x + fixedToFloat(g.XOffset),
			Y:       -fixedToFloat(g.YOffset),
			Advance: adv,
			Cluster: g.ClusterIndex,
		})
		x += adv
	}
	run.Advance = x
	return run
}

// span is a rune range of one paragraph.
type span struct{ start, end int }

// wrap breaks a paragraph into line spans that fit opts.Width. A word wider
// than the width gets a line of its own.
func (s *Shaper) wrap(face *font.Face, para []rune, opts Options) []span {
	if opts.Width <= 0 || len(para) == 0 {
		return []span{{0, len(para)}}
	}
	var lines []span
	lineStart, lineEnd := 0, 0
	width := 0.0
	for _, w := range words(para) {
		ww := s.shapeRun(face, para, w.start, w.end, false, opts.Size).Advance
		if lineEnd > lineStart && width+ww > opts.Width {
			lines = append(lines, span{lineStart, lineEnd})
			lineStart = w.start
			for lineStart < w.end && unicode.IsSpace(para[lineStart]) {
				lineStart++
			}
			width = s.shapeRun(face, para, lineStart, w.end, false, opts.Size).Advance
		} else {
			width += ww
		}
		lineEnd = w.end
	}
	return append(lines, span{lineStart, len(para)})
}

// words splits runes into spans each holding leading spaces and one word.
func words(runes []rune) []span {
	var out []span
	start := 0
	inWord := false
	for i, r := range runes {
		space := unicode.IsSpace(r)
		if space && inWord {
			out = append(out, span{start, i})
			start = i
		}
		inWord = !space
	}
	if start < len(runes) {
		out = append(out, span{start, len(runes)})
	}
	return out
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
