package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction is a base paragraph direction.
type Direction uint8

const (
	// DirectionAuto takes the direction from the first strong character.
	DirectionAuto Direction = iota
	// DirectionLTR is left to right.
	DirectionLTR
	// DirectionRTL is right to left.
	DirectionRTL
)

// segment is a maximal range [start, end) of runes with one direction.
type segment struct {
	start, end int
	rtl        bool
}

// segments splits runes into directional runs in visual order.
func segments(runes []rune, dir Direction) []segment {
	if len(runes) == 0 {
		return nil
	}
	base := bidi.Neutral
	switch dir {
	case DirectionLTR:
		base = bidi.LeftToRight
	case DirectionRTL:
		base = bidi.RightToLeft
	}
	var p bidi.Paragraph
	if _, err := p.SetString(string(runes), bidi.DefaultDirection(base)); err != nil {
		return []segment{{start: 0, end: len(runes), rtl: dir == DirectionRTL}}
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return []segment{{start: 0, end: len(runes), rtl: dir == DirectionRTL}}
	}
	out := make([]segment, 0, ordering.NumRuns())
	for i := range ordering.NumRuns() {
		run := ordering.Run(i)
		start, end := run.Pos() // rune indices, end inclusive
		if end >= len(runes) {
			end = len(runes) - 1
		}
		if start > end {
			continue
		}
		out = append(out, segment{start: start, end: end + 1, rtl: run.Direction() == bidi.RightToLeft})
	}
	return out
}
