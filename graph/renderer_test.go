package graph

import (
	"image/color"
	"testing"

	"github.com/gogpu/layer"
)

func TestRendererBackground(t *testing.T) {
	r := NewRenderer(nil, nil)
	if r.Env() == nil {
		t.Fatal("renderer without an env")
	}
	img := r.RenderToImage(4, 4, layer.White)
	if got := img.RGBAAt(1, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, want white", got)
	}
}

func TestRendererScene(t *testing.T) {
	root := NewPaintNode("root", "root")
	root.SetFrameBounds(layer.NewRect(0, 0, 40, 40))
	card := newRectNode("card", layer.NewRect(0, 0, 20, 20), filled(layer.Red))
	card.SetTransform(layer.Translate(10, 10))
	root.AddChild(card)

	r := NewRenderer(root, NewEnv())
	if r.Root() != root {
		t.Fatal("Root() mismatch")
	}
	img := r.RenderToImage(40, 40, layer.White)
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, color.RGBA{255, 255, 255, 255}},
		{15, 15, color.RGBA{255, 0, 0, 255}},
		{29, 29, color.RGBA{255, 0, 0, 255}},
		{31, 31, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); !pixelNear(got, tt.want, 1) {
			t.Errorf("(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
