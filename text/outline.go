package text

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/layer"
)

// appendGlyph appends the outline of glyph gid at size, with its origin at
// (x, y), to p. Glyphs without outlines (spaces, color bitmaps) add nothing.
func (f *Font) appendGlyph(p *layer.Path, buf *sfnt.Buffer, gid uint16, size, x, y float64) {
	segments, err := f.sfnt.LoadGlyph(buf, sfnt.GlyphIndex(gid), floatToFixed(size), nil)
	if err != nil {
		return
	}
	pt := func(v fixed.Point26_6) (float64, float64) {
		return x + fixedToFloat(v.X), y + fixedToFloat(v.Y)
	}
	started := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				p.Close()
			}
			p.MoveTo(pt(seg.Args[0]))
			started = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			ex, ey := pt(seg.Args[1])
			p.QuadraticTo(cx, cy, ex, ey)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
		}
	}
	if started {
		p.Close()
	}
}
