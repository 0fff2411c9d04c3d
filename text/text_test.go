package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func newTestShaper(t *testing.T) *Shaper {
	t.Helper()
	f, err := ParseFont("", goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	return NewShaper(f)
}

func TestParseFontName(t *testing.T) {
	f, err := ParseFont("", goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() == "" {
		t.Error("family name not read from font")
	}
	if named, _ := ParseFont("body", goregular.TTF); named.Name() != "body" {
		t.Errorf("Name() = %q, want %q", named.Name(), "body")
	}
	if _, err := ParseFont("bad", []byte("nope")); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestShaperFallbackFont(t *testing.T) {
	s := newTestShaper(t)
	if s.Font("missing") == nil {
		t.Fatal("fallback font not returned")
	}
	if NewShaper().Layout("x", "", Options{}) != nil {
		t.Error("layout without fonts should be nil")
	}
}

func TestLayoutSingleLine(t *testing.T) {
	s := newTestShaper(t)
	l := s.Layout("Hello", "Go", Options{Size: 20})
	if len(l.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(l.Lines))
	}
	runs := l.Runs()
	if len(runs) != 1 || len(runs[0].Glyphs) != 5 {
		t.Fatalf("runs = %+v", runs)
	}
	prev := -1.0
	for _, g := range runs[0].Glyphs {
		if g.X <= prev {
			t.Errorf("glyph x not increasing: %v after %v", g.X, prev)
		}
		prev = g.X
	}
	if l.Bounds.H != 24 {
		t.Errorf("height = %v, want 24", l.Bounds.H)
	}
	if l.Bounds.W <= 0 {
		t.Errorf("width = %v, want > 0", l.Bounds.W)
	}
}

func TestLayoutNewlines(t *testing.T) {
	s := newTestShaper(t)
	l := s.Layout("a\nb\nc", "", Options{Size: 10, LineHeight: 2})
	if len(l.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(l.Lines))
	}
	if got := l.Lines[1].Baseline - l.Lines[0].Baseline; got != 20 {
		t.Errorf("baseline step = %v, want 20", got)
	}
	if r := l.Lines[2].Runs[0]; r.Start != 4 || r.End != 5 {
		t.Errorf("third run = [%d,%d), want [4,5)", r.Start, r.End)
	}
}

func TestLayoutWraps(t *testing.T) {
	s := newTestShaper(t)
	one := s.Layout("aaaa bbbb cccc", "", Options{Size: 16})
	w := one.Lines[0].Width
	l := s.Layout("aaaa bbbb cccc", "", Options{Size: 16, Width: w * 0.6})
	if len(l.Lines) < 2 {
		t.Fatalf("lines = %d, want >= 2", len(l.Lines))
	}
	for i, line := range l.Lines {
		if line.Width > w*0.6+0.5 && len(line.Runs[0].Glyphs) > 4 {
			t.Errorf("line %d width %v exceeds %v", i, line.Width, w*0.6)
		}
	}
}

func TestLayoutAlign(t *testing.T) {
	s := newTestShaper(t)
	l := s.Layout("ab", "", Options{Size: 16, Width: 200, Align: AlignRight})
	g := l.Lines[0].Runs[0].Glyphs
	last := g[len(g)-1]
	if end := last.X + last.Advance; end < 199 || end > 201 {
		t.Errorf("right edge = %v, want 200", end)
	}
}

func TestLayoutBidiRuns(t *testing.T) {
	s := newTestShaper(t)
	l := s.Layout("abc אבג", "", Options{Size: 16})
	runs := l.Runs()
	if len(runs) < 2 {
		t.Fatalf("runs = %d, want >= 2", len(runs))
	}
	rtl := false
	for _, r := range runs {
		rtl = rtl || r.RTL
	}
	if !rtl {
		t.Error("no right-to-left run found")
	}
}

func TestLayoutPath(t *testing.T) {
	s := newTestShaper(t)
	l := s.Layout("H", "", Options{Size: 40})
	p := l.Path()
	if p.IsEmpty() {
		t.Fatal("empty glyph path")
	}
	b := p.Bounds()
	base := l.Lines[0].Baseline
	if b.Bottom() > base+0.5 || b.Y >= base {
		t.Errorf("glyph bounds %+v not above baseline %v", b, base)
	}
}

func TestWords(t *testing.T) {
	got := words([]rune("ab  cd e"))
	want := []span{{0, 2}, {2, 6}, {6, 8}}
	if len(got) != len(want) {
		t.Fatalf("words = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("words[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
