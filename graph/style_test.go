package graph

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/layer"
)

func newRectNode(guid string, r layer.Rect, st Style) *PaintNode {
	n := NewPaintNode(guid, guid)
	n.SetFrameBounds(r)
	n.SetStyle(st)
	return n
}

func filled(c layer.RGBA) Style { return Style{Fills: []Fill{NewColorFill(c)}} }

func renderNode(n *PaintNode, env *Env, w, h int) *image.RGBA {
	return NewRenderer(n, env).RenderToImage(w, h, layer.Transparent)
}

func pixelNear(got, want color.RGBA, tol int) bool {
	d := func(a, b uint8) bool {
		v := int(a) - int(b)
		return v <= tol && v >= -tol
	}
	return d(got.R, want.R) && d(got.G, want.G) && d(got.B, want.B) && d(got.A, want.A)
}

func TestFillsPaintInOrder(t *testing.T) {
	blue := NewColorFill(layer.Blue)
	blue.Context.Opacity = 0.5
	n := newRectNode("a", layer.NewRect(0, 0, 10, 10), Style{Fills: []Fill{NewColorFill(layer.Red), blue}})
	img := renderNode(n, nil, 10, 10)

	want := color.RGBA{128, 0, 128, 255}
	if got := img.RGBAAt(5, 5); !pixelNear(got, want, 2) {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestDisabledFillSkipped(t *testing.T) {
	f := NewColorFill(layer.Red)
	f.Enabled = false
	n := newRectNode("a", layer.NewRect(0, 0, 10, 10), Style{Fills: []Fill{f}})
	env := NewEnv()
	if b := n.Bounds(env); !b.IsEmpty() {
		t.Errorf("bounds = %v, want empty", b)
	}
	if got := renderNode(n, env, 10, 10).RGBAAt(5, 5); got.A != 0 {
		t.Errorf("disabled fill painted %v", got)
	}
}

func TestBorderPositions(t *testing.T) {
	frame := layer.NewRect(10, 10, 20, 20)
	tests := []struct {
		name    string
		pos     BorderPosition
		bounds  layer.Rect
		painted []int
		clear   []int
	}{
		{"Inside", BorderInside, layer.NewRect(10, 10, 20, 20), []int{10, 11}, []int{9, 12}},
		{"Center", BorderCenter, layer.NewRect(9, 9, 22, 22), []int{9, 10}, []int{8, 11}},
		{"Outside", BorderOutside, layer.NewRect(8, 8, 24, 24), []int{8, 9}, []int{7, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newRectNode("b", frame, Style{Borders: []Border{NewColorBorder(layer.Red, 2, tt.pos)}})
			env := NewEnv()
			if got := n.Bounds(env); !rectNear(got, tt.bounds, 0.01) {
				t.Errorf("bounds = %v, want %v", got, tt.bounds)
			}
			img := renderNode(n, env, 40, 40)
			for _, x := range tt.painted {
				if got := img.RGBAAt(x, 20); !pixelNear(got, color.RGBA{255, 0, 0, 255}, 2) {
					t.Errorf("x=%d: pixel = %v, want red", x, got)
				}
			}
			for _, x := range tt.clear {
				if got := img.RGBAAt(x, 20); got.A != 0 {
					t.Errorf("x=%d: pixel = %v, want transparent", x, got)
				}
			}
		})
	}
}

func TestBorderInvisible(t *testing.T) {
	b := NewColorBorder(layer.Red, 0, BorderCenter)
	n := newRectNode("b", layer.NewRect(0, 0, 10, 10), Style{Borders: []Border{b}})
	if got := n.Bounds(NewEnv()); !got.IsEmpty() {
		t.Errorf("zero-width border bounds = %v", got)
	}
}

func TestDropShadow(t *testing.T) {
	st := filled(layer.Red)
	st.DropShadows = []DropShadow{{
		Enabled: true,
		Context: DefaultContextSetting(),
		Color:   layer.Black,
		OffsetX: 10,
	}}
	n := newRectNode("s", layer.NewRect(10, 10, 20, 20), st)
	env := NewEnv()

	if got := n.Bounds(env); !rectNear(got, layer.NewRect(10, 10, 20, 20), 0.01) {
		t.Errorf("content bounds = %v, want the object only", got)
	}
	eb := n.EffectBounds(env)
	if eb.X+eb.W < 39.5 {
		t.Errorf("effect bounds %v do not cover the shadow", eb)
	}

	img := renderNode(n, env, 50, 40)
	if got := img.RGBAAt(35, 20); !pixelNear(got, color.RGBA{0, 0, 0, 255}, 2) {
		t.Errorf("shadow pixel = %v, want black", got)
	}
	if got := img.RGBAAt(20, 20); !pixelNear(got, color.RGBA{255, 0, 0, 255}, 2) {
		t.Errorf("object pixel = %v, want red", got)
	}

	t.Run("NoFill", func(t *testing.T) {
		st := Style{
			Borders:     []Border{NewColorBorder(layer.Red, 1, BorderCenter)},
			DropShadows: st.DropShadows,
		}
		n := newRectNode("s", layer.NewRect(10, 10, 20, 20), st)
		env := NewEnv()
		if eb := n.EffectBounds(env); eb.X+eb.W > 31 {
			t.Errorf("unfilled shape cast a shadow: %v", eb)
		}
	})
}

func TestBorderOnBooleanGroup(t *testing.T) {
	root := NewPaintNode("u", "u")
	root.SetContourType(ContourUnion)
	root.SetStyle(Style{Borders: []Border{NewColorBorder(layer.Red, 2, BorderCenter)}})
	for _, r := range []layer.Rect{layer.NewRect(5, 5, 20, 20), layer.NewRect(15, 5, 20, 20)} {
		c := NewPaintNode("c", "c")
		c.SetFrameBounds(r)
		root.AddChild(c)
	}
	img := renderNode(root, NewEnv(), 40, 30)

	red := color.RGBA{255, 0, 0, 255}
	for _, p := range []image.Point{{4, 15}, {5, 15}, {34, 15}, {20, 4}, {20, 5}, {20, 24}} {
		if got := img.RGBAAt(p.X, p.Y); !pixelNear(got, red, 2) {
			t.Errorf("%v: pixel = %v, want red", p, got)
		}
	}
	// Operand edges inside the union are not stroked.
	for _, p := range []image.Point{{14, 15}, {15, 15}, {24, 15}, {25, 15}, {20, 15}} {
		if got := img.RGBAAt(p.X, p.Y); got.A != 0 {
			t.Errorf("%v: pixel = %v, want transparent", p, got)
		}
	}
}

func TestDropShadowOffsetBeyondObject(t *testing.T) {
	for _, showBehind := range []bool{false, true} {
		st := filled(layer.Red)
		st.DropShadows = []DropShadow{{
			Enabled:               true,
			Context:               DefaultContextSetting(),
			Color:                 layer.Black,
			OffsetY:               60,
			ShowBehindTransparent: showBehind,
		}}
		n := newRectNode("s", layer.NewRect(20, 20, 40, 40), st)
		img := renderNode(n, NewEnv(), 100, 130)
		if got := img.RGBAAt(40, 100); !pixelNear(got, color.RGBA{0, 0, 0, 255}, 2) {
			t.Errorf("showBehind=%v: shadow pixel = %v, want black", showBehind, got)
		}
		if got := img.RGBAAt(40, 40); !pixelNear(got, color.RGBA{255, 0, 0, 255}, 2) {
			t.Errorf("showBehind=%v: object pixel = %v, want red", showBehind, got)
		}
	}
}

func TestDropShadowBlurredOffset(t *testing.T) {
	st := filled(layer.Red)
	st.DropShadows = []DropShadow{{
		Enabled: true,
		Context: DefaultContextSetting(),
		Color:   layer.Black,
		OffsetY: 10,
		Blur:    10,
	}}
	n := newRectNode("s", layer.NewRect(10, 10, 40, 40), st)
	img := renderNode(n, NewEnv(), 70, 90)

	if got := img.RGBAAt(30, 54); got.A < 150 || got.R > 2 {
		t.Errorf("pixel below the object = %v, want dark shadow", got)
	}
	if got := img.RGBAAt(30, 30); !pixelNear(got, color.RGBA{255, 0, 0, 255}, 2) {
		t.Errorf("object pixel = %v, want red", got)
	}
	if a, b := img.RGBAAt(30, 56).A, img.RGBAAt(30, 66).A; a <= b || b == 0 {
		t.Errorf("shadow does not fade: alpha %d then %d", a, b)
	}
}

func TestDropShadowUnderTranslucentFill(t *testing.T) {
	tests := []struct {
		name       string
		showBehind bool
		interior   color.RGBA
	}{
		{"Clipped", false, color.RGBA{128, 0, 0, 128}},
		{"ShowBehind", true, color.RGBA{128, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := filled(layer.NewRGBA(1, 0, 0, 0.5))
			st.DropShadows = []DropShadow{{
				Enabled:               true,
				Context:               DefaultContextSetting(),
				Color:                 layer.Black,
				OffsetX:               2,
				OffsetY:               2,
				ShowBehindTransparent: tt.showBehind,
			}}
			n := newRectNode("s", layer.NewRect(10, 10, 20, 20), st)
			img := renderNode(n, NewEnv(), 40, 40)

			if got := img.RGBAAt(20, 20); !pixelNear(got, tt.interior, 2) {
				t.Errorf("interior = %v, want %v", got, tt.interior)
			}
			if got := img.RGBAAt(31, 20); !pixelNear(got, color.RGBA{0, 0, 0, 255}, 2) {
				t.Errorf("shadow edge = %v, want black", got)
			}
		})
	}
}

func TestInnerShadow(t *testing.T) {
	st := filled(layer.White)
	st.InnerShadows = []InnerShadow{{
		Enabled: true,
		Context: DefaultContextSetting(),
		Color:   layer.Black,
		OffsetX: 5,
	}}
	n := newRectNode("s", layer.NewRect(10, 10, 40, 40), st)
	env := NewEnv()
	img := renderNode(n, env, 60, 60)

	if got := img.RGBAAt(12, 30); got.R > 20 || got.A < 250 {
		t.Errorf("shadowed edge = %v, want dark", got)
	}
	if got := img.RGBAAt(30, 30); !pixelNear(got, color.RGBA{255, 255, 255, 255}, 2) {
		t.Errorf("interior = %v, want white", got)
	}
	if got := img.RGBAAt(5, 30); got.A != 0 {
		t.Errorf("inner shadow leaked outside: %v", got)
	}
	if eb := n.EffectBounds(env); !rectNear(eb, layer.NewRect(10, 10, 40, 40), 0.5) {
		t.Errorf("inner shadow changed effect bounds: %v", eb)
	}
}

func TestLayerBlurGrowsEffectBounds(t *testing.T) {
	st := filled(layer.Red)
	st.Blurs = []Blur{{Enabled: true, Kind: BlurGaussian, Radius: 4}}
	n := newRectNode("b", layer.NewRect(20, 20, 10, 10), st)
	env := NewEnv()

	content := n.Bounds(env)
	effect := n.EffectBounds(env)
	if !effect.ContainsRect(content) || effect == content {
		t.Errorf("effect bounds %v should strictly contain %v", effect, content)
	}
}

func TestItemRecordsOnce(t *testing.T) {
	n := newRectNode("a", layer.NewRect(0, 0, 10, 10), filled(layer.Red))
	env := NewEnv()
	r := NewRenderer(n, env)
	r.RenderToImage(10, 10, layer.Transparent)
	r.RenderToImage(10, 10, layer.Transparent)
	if got := n.StyleItem().Revalidations(); got != 1 {
		t.Errorf("item recorded %d times, want 1", got)
	}

	n.SetStyle(filled(layer.Blue))
	img := r.RenderToImage(10, 10, layer.Transparent)
	if got := n.StyleItem().Revalidations(); got != 2 {
		t.Errorf("item recorded %d times after a style change, want 2", got)
	}
	if got := img.RGBAAt(5, 5); got.B != 255 {
		t.Errorf("pixel = %v, want blue", got)
	}
}

func TestContextSettingLayer(t *testing.T) {
	n := newRectNode("a", layer.NewRect(0, 0, 10, 10), filled(layer.Red))
	ctx := DefaultContextSetting()
	ctx.Opacity = 0.5
	n.SetContextSetting(ctx)
	got := renderNode(n, nil, 10, 10).RGBAAt(5, 5)
	if !pixelNear(got, color.RGBA{128, 0, 0, 128}, 2) {
		t.Errorf("pixel = %v, want half-transparent red", got)
	}
}
