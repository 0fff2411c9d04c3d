package scene

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/graph"
)

const cardDoc = `
width: 60
height: 40
background: "#ffffff"
symbols:
  dot:
    type: ellipse
    id: dot
    frame: [0, 0, 10, 10]
    style:
      fills: [{color: "#00f"}]
root:
  type: frame
  id: root
  frame: [0, 0, 60, 40]
  children:
    - type: rectangle
      id: card
      frame: [0, 0, 20, 20]
      radius: [2]
      transform: {translate: [5, 5]}
      style:
        fills: [{color: "#f00"}]
        borders: [{color: "#000", thickness: 1, position: inside}]
    - type: instance
      id: a
      ref: dot
      transform: {translate: [30, 5]}
    - type: instance
      id: b
      ref: dot
      transform: {translate: [45, 5]}
      opacity: 0.5
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(cardDoc))
	require.NoError(t, err)

	assert.Equal(t, 60, doc.Width)
	assert.Equal(t, 40, doc.Height)
	assert.Equal(t, layer.White, doc.Background)
	require.NotNil(t, doc.Root)
	assert.Equal(t, "root", doc.Root.GUID())

	children := doc.Root.Children()
	require.Len(t, children, 3)
	card := children[0]
	assert.Equal(t, "card", card.GUID())
	assert.Equal(t, layer.NewRect(0, 0, 20, 20), card.Frame())
	st := card.Style()
	require.Len(t, st.Fills, 1)
	require.Len(t, st.Borders, 1)
	assert.Equal(t, graph.BorderInside, st.Borders[0].Position)
	assert.Equal(t, graph.ColorFill{Color: layer.Red}, st.Fills[0].Type)
	assert.True(t, st.Fills[0].Enabled)
}

func TestInstances(t *testing.T) {
	doc, err := Parse([]byte(cardDoc))
	require.NoError(t, err)

	children := doc.Root.Children()
	assert.Equal(t, "a/dot", children[1].GUID())
	assert.Equal(t, "b/dot", children[2].GUID())
	assert.Equal(t, layer.NewRect(0, 0, 10, 10), children[2].Frame())

	img := graph.NewRenderer(doc.Root, graph.NewEnv()).RenderToImage(doc.Width, doc.Height, doc.Background)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(15, 15), "card fill")
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(5, 15), "card border")
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(35, 10), "first instance")

	half := img.RGBAAt(50, 10)
	assert.InDelta(t, 128, int(half.R), 2, "second instance is half transparent")
	assert.InDelta(t, 255, int(half.B), 1)
}

func TestParseStyle(t *testing.T) {
	doc, err := Parse([]byte(`
root:
  type: star
  id: s
  frame: [0, 0, 20, 20]
  sides: 6
  style:
    fills:
      - gradient:
          kind: radial
          from: [0.5, 0.5]
          to: [1, 0.5]
          stops: [{pos: 0, color: "#fff"}, {pos: 1, color: "#000"}]
      - enabled: false
        blend: multiply
        pattern: {image: tex, mode: tile, scale: 2, tile: horizontal}
    shadows: [{offset: [2, 3], blur: 4}, {showBehind: true}]
    innerShadows: [{color: "#f00", spread: 1}]
    blurs: [{kind: motion, radius: 3, angle: 45}]
`))
	require.NoError(t, err)

	st := doc.Root.Style()
	require.Len(t, st.Fills, 2)
	g, ok := st.Fills[0].Type.(graph.Gradient)
	require.True(t, ok)
	assert.Equal(t, graph.GradientRadial, g.Kind)
	assert.Equal(t, layer.Pt(0.5, 0.5), g.From)
	require.Len(t, g.Stops, 2)
	assert.Equal(t, layer.Black, g.Stops[1].Color)

	assert.False(t, st.Fills[1].Enabled)
	assert.Equal(t, graph.BlendMultiply, st.Fills[1].Context.BlendMode)
	p, ok := st.Fills[1].Type.(graph.Pattern)
	require.True(t, ok)
	assert.Equal(t, "tex", p.GUID)
	assert.Equal(t, graph.PatternTile, p.Mode)
	assert.Equal(t, graph.TileHorizontal, p.Tile)

	require.Len(t, st.DropShadows, 2)
	assert.Equal(t, defaultShadowColor, st.DropShadows[0].Color)
	assert.InDelta(t, 3, st.DropShadows[0].OffsetY, 1e-9)
	assert.False(t, st.DropShadows[0].ShowBehindTransparent, "shadows are clipped by default")
	assert.True(t, st.DropShadows[1].ShowBehindTransparent)
	require.Len(t, st.InnerShadows, 1)
	assert.Equal(t, layer.Red, st.InnerShadows[0].Color)
	require.Len(t, st.Blurs, 1)
	assert.Equal(t, graph.BlurMotion, st.Blurs[0].Kind)
	assert.Equal(t, layer.Pt(0.5, 0.5), st.Blurs[0].Center)
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name string
		dto  transformDTO
		in   layer.Point
		want layer.Point
	}{
		{"translate", transformDTO{Translate: []float64{3, 4}}, layer.Pt(1, 1), layer.Pt(4, 5)},
		{"scale then translate", transformDTO{Translate: []float64{10, 0}, Scale: []float64{2, 3}}, layer.Pt(1, 1), layer.Pt(12, 3)},
		{"rotate", transformDTO{Rotate: 90}, layer.Pt(1, 0), layer.Pt(0, 1)},
		{"matrix", transformDTO{Matrix: []float64{1, 0, 5, 0, 1, 6}}, layer.Pt(0, 0), layer.Pt(5, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := transform(&tt.dto)
			require.NoError(t, err)
			got := m.TransformPoint(tt.in)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no root", "width: 10", "document has no root node"},
		{"bad yaml", "root: [", "failed to parse scene"},
		{"unknown type", "root: {type: hexagon}", "unknown node type"},
		{"unknown symbol", "root: {type: instance, ref: nope}", "unknown symbol"},
		{"bad color", `root: {type: frame, style: {fills: [{color: "#zz"}]}}`, "invalid value"},
		{"fill without paint", `root: {type: frame, style: {fills: [{opacity: 1}]}}`, "invalid value"},
		{"bad frame", "root: {type: frame, frame: [1, 2, 3]}", "invalid value"},
		{"bad enum", "root: {type: frame, overflow: sideways}", "invalid value"},
		{"bad blend", "root: {type: frame, blend: glow}", "invalid value"},
		{"bad background", "background: red\nroot: {type: frame}", "invalid value"},
		{"bad child", "root: {type: group, children: [{type: blob}]}", "unknown node type"},
		{"symbol cycle", "symbols: {a: {type: group, children: [{type: instance, ref: a}]}}\nroot: {type: instance, ref: a}", "invalid value"},
		{"text without content", "root: {type: text}", "invalid value"},
		{"bad points", "root: {type: path, points: [[1, 2, 3]]}", "invalid value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cardDoc), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, doc.Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read scene file")
}
