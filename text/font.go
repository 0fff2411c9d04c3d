package text

import (
	"bytes"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"go.trai.ch/zerr"
)

// ErrInvalidFont is returned for font data that cannot be parsed.
var ErrInvalidFont = zerr.New("invalid font data")

// Font is a parsed TrueType or OpenType font.
//
// The same bytes are parsed twice: go-text for shaping and sfnt for glyph
// outlines and metrics. A Font is safe for concurrent reads, but Shaper
// instances using it are not.
type Font struct {
	name   string
	shaped *font.Font
	sfnt   *sfnt.Font
}

// ParseFont parses font data. An empty name is replaced by the family name
// found in the font.
func ParseFont(name string, data []byte) (*Font, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, zerr.Wrap(err, ErrInvalidFont.Error())
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.Wrap(err, ErrInvalidFont.Error())
	}
	if name == "" {
		var buf sfnt.Buffer
		if family, err := sf.Name(&buf, sfnt.NameIDFamily); err == nil {
			name = family
		}
	}
	return &Font{name: name, shaped: face.Font, sfnt: sf}, nil
}

// Name returns the name the font is registered under.
func (f *Font) Name() string { return f.name }

// Metrics holds vertical font metrics at a size, in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
	Height  float64
}

// Metrics returns the font's vertical metrics at size.
func (f *Font) Metrics(size float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.sfnt.Metrics(&buf, floatToFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, Height: size * 1.2}
	}
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		Height:  fixedToFloat(m.Height),
	}
}

// floatToFixed converts a size in pixels to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a 26.6 fixed point value to pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
