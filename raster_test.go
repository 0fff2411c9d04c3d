package layer

import (
	"image/color"
	"testing"
)

func pixel(r *Raster, x, y int) color.RGBA { return r.Image().RGBAAt(x, y) }

func TestRasterFillRect(t *testing.T) {
	r := NewRaster(20, 20)
	DrawRect(r, NewRect(5, 5, 10, 10), NewColorPaint(Red))

	if got := pixel(r, 10, 10); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside = %v, want opaque red", got)
	}
	if got := pixel(r, 2, 2); got.A != 0 {
		t.Errorf("outside = %v, want transparent", got)
	}
}

func TestRasterOverlappingFills(t *testing.T) {
	r := NewRaster(10, 10)
	rect := NewRect(0, 0, 10, 10)
	DrawRect(r, rect, NewColorPaint(Red))
	DrawRect(r, rect, NewColorPaint(Blue.WithAlpha(0.5)))

	got := FromPremultiplied(pixel(r, 5, 5))
	want := Red.Lerp(Blue, 0.5)
	if !colorNear(got, want, 1.0/255) {
		t.Errorf("composite = %v, want %v", got, want)
	}
}

func TestRasterMatrix(t *testing.T) {
	r := NewRaster(20, 20)
	r.Concat(Translate(10, 10))
	DrawRect(r, NewRect(0, 0, 5, 5), NewColorPaint(Green))
	if pixel(r, 12, 12).G != 255 {
		t.Error("translated rect missing")
	}
	if pixel(r, 2, 2).A != 0 {
		t.Error("rect drawn at the untranslated position")
	}
}

func TestRasterClip(t *testing.T) {
	r := NewRaster(20, 20)
	r.Save()
	ClipRect(r, NewRect(0, 0, 10, 20), ClipIntersect)
	ClipRect(r, NewRect(0, 0, 5, 20), ClipDifference)
	DrawRect(r, NewRect(0, 0, 20, 20), NewColorPaint(White))
	r.Restore()

	tests := []struct {
		x    int
		want uint8
	}{
		{2, 0},
		{7, 255},
		{15, 0},
	}
	for _, tt := range tests {
		if got := pixel(r, tt.x, 10).A; got != tt.want {
			t.Errorf("alpha at x=%d = %d, want %d", tt.x, got, tt.want)
		}
	}

	// The clip is gone after Restore.
	DrawRect(r, NewRect(0, 0, 20, 20), NewColorPaint(White))
	if pixel(r, 2, 10).A != 255 {
		t.Error("clip survived Restore")
	}
}

func TestRasterLayerAlpha(t *testing.T) {
	r := NewRaster(10, 10)
	p := NewPaint(nil)
	p.Alpha = 0.5
	r.SaveLayer(LayerRec{Paint: p})
	DrawRect(r, NewRect(0, 0, 10, 10), NewColorPaint(Red))
	DrawRect(r, NewRect(0, 0, 10, 10), NewColorPaint(Blue))
	r.Restore()

	// Group opacity: only the top fill shows, at half alpha.
	got := pixel(r, 5, 5)
	if got.R != 0 || got.B < 126 || got.B > 129 || got.A < 126 || got.A > 129 {
		t.Errorf("layer composite = %v, want half blue", got)
	}
}

func TestRasterLayerFilter(t *testing.T) {
	r := NewRaster(40, 40)
	p := NewPaint(nil)
	p.ImageFilter = &OffsetFilter{DX: 5, DY: 0}
	r.SaveLayer(LayerRec{Paint: p})
	DrawRect(r, NewRect(10, 10, 10, 10), NewColorPaint(Red))
	r.Restore()

	if pixel(r, 12, 15).A != 0 {
		t.Error("unfiltered content leaked")
	}
	if pixel(r, 22, 15).A != 255 {
		t.Error("offset content missing")
	}
}

func TestRasterBackdrop(t *testing.T) {
	r := NewRaster(10, 10)
	DrawRect(r, NewRect(0, 0, 10, 10), NewColorPaint(Red))
	inverted := &ColorFilterImageFilter{ColorFilter: ColorMatrix{
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	}}
	r.SaveLayer(LayerRec{Backdrop: inverted})
	r.Restore()

	if got := pixel(r, 5, 5); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("backdrop = %v, want blue", got)
	}
}

func TestRasterEvenOdd(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 20, 20)
	p.Rectangle(5, 5, 10, 10)

	r := NewRaster(20, 20)
	r.DrawShape(NewPathShape(p, FillEvenOdd), NewColorPaint(Black))
	if pixel(r, 10, 10).A != 0 {
		t.Error("even-odd hole filled")
	}
	if pixel(r, 2, 2).A != 255 {
		t.Error("even-odd ring missing")
	}

	r = NewRaster(20, 20)
	r.DrawShape(NewPathShape(p, FillNonZero), NewColorPaint(Black))
	if pixel(r, 10, 10).A != 255 {
		t.Error("non-zero interior missing")
	}
}

func TestRasterCombinedShape(t *testing.T) {
	a := RectShape(NewRect(0, 0, 10, 10))
	b := RectShape(NewRect(5, 0, 10, 10))
	r := NewRaster(20, 10)
	r.DrawShape(Difference(a, b), NewColorPaint(Black))
	if pixel(r, 2, 5).A != 255 || pixel(r, 7, 5).A != 0 || pixel(r, 12, 5).A != 0 {
		t.Errorf("difference coverage = %d %d %d", pixel(r, 2, 5).A, pixel(r, 7, 5).A, pixel(r, 12, 5).A)
	}
}

func TestRestoreToCount(t *testing.T) {
	r := NewRaster(4, 4)
	n := r.SaveCount()
	r.Save()
	r.SaveLayer(LayerRec{})
	r.Save()
	r.RestoreToCount(n)
	if r.SaveCount() != n {
		t.Errorf("SaveCount = %d, want %d", r.SaveCount(), n)
	}
	r.Restore()
	if r.SaveCount() != 1 {
		t.Error("unbalanced Restore popped the base state")
	}
}
