// Package text is the text-layout service of the render graph.
//
// A [Shaper] holds parsed fonts and lays out strings into a [Layout]:
// lines of bidirectional runs of positioned glyphs. Shaping uses
// go-text/typesetting (HarfBuzz), run splitting uses the Unicode
// bidirectional algorithm from golang.org/x/text, and glyph outlines come
// from golang.org/x/image/font/sfnt.
//
// Layout coordinates are y-down with the origin at the top-left corner of
// the first line box. The render graph fills the outline of each run with
// the fills of the text span the run starts in.
package text
