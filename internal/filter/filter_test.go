package filter

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func dot(w, h, x, y int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
	return img
}

func alphaSum(img *image.RGBA) float64 {
	var s float64
	for i := 3; i < len(img.Pix); i += 4 {
		s += float64(img.Pix[i])
	}
	return s
}

func TestSigmaFromRadius(t *testing.T) {
	tests := []struct {
		radius float64
		want   float64
	}{
		{0, 0},
		{-3, 0},
		{10, 0.57735*10 + 0.5},
	}
	for _, tt := range tests {
		if got := SigmaFromRadius(tt.radius); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SigmaFromRadius(%v) = %v, want %v", tt.radius, got, tt.want)
		}
	}
}

func TestGaussianZeroSigmaCopies(t *testing.T) {
	src := dot(8, 8, 4, 4)
	out := Gaussian(src, 0, 0)
	if out == src {
		t.Fatal("Gaussian returned its input")
	}
	if out.RGBAAt(4, 4) != src.RGBAAt(4, 4) {
		t.Errorf("pixel changed: %v", out.RGBAAt(4, 4))
	}
}

func TestGaussianSpreadsAndConserves(t *testing.T) {
	src := dot(31, 31, 15, 15)
	out := Gaussian(src, 2, 2)

	if out.Rect != src.Rect {
		t.Fatalf("bounds = %v, want %v", out.Rect, src.Rect)
	}
	center := out.RGBAAt(15, 15).A
	if center == 0 || center == 255 {
		t.Errorf("center alpha = %d, want partial", center)
	}
	if out.RGBAAt(17, 15).A == 0 {
		t.Error("blur did not spread horizontally")
	}
	if out.RGBAAt(15, 17).A == 0 {
		t.Error("blur did not spread vertically")
	}
	// Energy is conserved up to 8-bit rounding.
	if got, want := alphaSum(out), alphaSum(src); math.Abs(got-want) > want*0.1 {
		t.Errorf("alpha sum = %v, want about %v", got, want)
	}
}

func TestGaussianKeepsSolidCoverage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			src.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	out := Gaussian(src, 3, 3)

	if got := out.RGBAAt(20, 20).A; got < 250 {
		t.Errorf("interior alpha = %d, want opaque", got)
	}
	// An edge sample sits on the middle of the gaussian.
	if got := out.RGBAAt(29, 20).A; got < 110 || got > 170 {
		t.Errorf("edge alpha = %d, want about half", got)
	}
	if got, want := alphaSum(out), alphaSum(src); math.Abs(got-want) > want*0.01 {
		t.Errorf("alpha sum = %v, want %v", got, want)
	}
}

func TestGaussianHorizontalOnly(t *testing.T) {
	out := Gaussian(dot(21, 21, 10, 10), 2, 0)
	if out.RGBAAt(12, 10).A == 0 {
		t.Error("expected horizontal spread")
	}
	if out.RGBAAt(10, 12).A != 0 {
		t.Error("unexpected vertical spread")
	}
}

func TestMotionFollowsAngle(t *testing.T) {
	out := Motion(dot(21, 21, 10, 10), 4, 0)
	if out.RGBAAt(13, 10).A == 0 {
		t.Error("expected spread along x")
	}
	if out.RGBAAt(10, 13).A != 0 {
		t.Error("unexpected spread along y")
	}

	out = Motion(dot(21, 21, 10, 10), 4, math.Pi/2)
	if out.RGBAAt(10, 13).A == 0 {
		t.Error("expected spread along y for a vertical motion")
	}
}

func TestRadialKeepsCenter(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	out := Radial(src, 10, 10, 10)
	if got := out.RGBAAt(10, 10); got.A != 255 {
		t.Errorf("center = %v, want opaque", got)
	}
}

func TestOffset(t *testing.T) {
	out := Offset(dot(10, 10, 2, 3), 4, -1)
	if out.RGBAAt(6, 2).A != 255 {
		t.Errorf("offset pixel missing: %v", out.RGBAAt(6, 2))
	}
	if out.RGBAAt(2, 3).A != 0 {
		t.Error("source pixel still set")
	}
}

func TestTintKeepsCoverage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{128, 128, 128, 128})
	out := Tint(src, color.RGBA{255, 0, 0, 255})

	got := out.RGBAAt(0, 0)
	if got.R != 128 || got.G != 0 || got.A != 128 {
		t.Errorf("Tint = %v, want {128 0 0 128}", got)
	}
	if out.RGBAAt(1, 0).A != 0 {
		t.Error("transparent pixel got tinted")
	}
}

func TestInvertAlpha(t *testing.T) {
	out := InvertAlpha(dot(2, 1, 0, 0))
	if out.RGBAAt(0, 0).A != 0 || out.RGBAAt(1, 0).A != 255 {
		t.Errorf("InvertAlpha = %v %v", out.RGBAAt(0, 0), out.RGBAAt(1, 0))
	}
}

func TestMapStraightAlpha(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{64, 0, 0, 128})
	var seen float64
	out := Map(src, func(r, g, b, a float64) (float64, float64, float64, float64) {
		seen = r
		return 0, 1, 0, a
	})
	if math.Abs(seen-0.5) > 0.01 {
		t.Errorf("Map saw r = %v, want 0.5 (straight)", seen)
	}
	if got := out.RGBAAt(0, 0); got.G != 128 || got.A != 128 {
		t.Errorf("Map result = %v, want {0 128 0 128}", got)
	}
}
