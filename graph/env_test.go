package graph

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/resource"
	"github.com/gogpu/layer/resource/mocks"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEnvImageCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockProvider(ctrl)
	data := pngBytes(t, 4, 4)
	p.EXPECT().ReadData("a").Return(data, nil).Times(2)
	p.EXPECT().ReadData("b").Return(data, nil).Times(1)

	env := NewEnv(WithResources(p), WithImageCacheSize(1))
	require.NotNil(t, env.Image("a"))
	require.NotNil(t, env.Image("a"))
	assert.Equal(t, 1, env.CacheStats().Images)

	// b evicts a, so a is read again.
	require.NotNil(t, env.Image("b"))
	require.NotNil(t, env.Image("a"))
	assert.Equal(t, 1, env.CacheStats().Images)
}

func TestEnvMissingImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().ReadData("gone").Return(nil, resource.ErrNotFound).Times(2)
	p.EXPECT().ReadData("junk").Return([]byte("not an image"), nil)

	env := NewEnv(WithResources(p))
	assert.Nil(t, env.Image("gone"))
	assert.Nil(t, env.Image("gone"), "misses must not be cached")
	assert.Nil(t, env.Image("junk"))
	assert.Zero(t, env.CacheStats().Images)

	assert.Nil(t, NewEnv().Image("any"), "no provider")
}

func TestEnvMaxImageSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().ReadData("big").Return(pngBytes(t, 64, 32), nil)

	env := NewEnv(WithResources(p), WithMaxImageSize(16))
	img := env.Image("big")
	require.NotNil(t, img)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestEnvBlenders(t *testing.T) {
	env := NewEnv(WithBlenderCacheSize(2))
	for _, name := range []string{BlenderAlpha, BlenderAlpha, BlenderLuminosity} {
		assert.NotNil(t, env.Blender(name), name)
	}
	assert.Equal(t, 2, env.CacheStats().Blenders)
	assert.Nil(t, env.Blender("nope"))

	var nilEnv *Env
	assert.NotNil(t, nilEnv.Blender(BlenderMaskOut))
	assert.Nil(t, nilEnv.Masks())
	assert.Equal(t, layer.DefaultTolerance, nilEnv.Tolerance())
}

func TestNamedBlenders(t *testing.T) {
	env := NewEnv()
	src := layer.RGBA{R: 1, G: 1, B: 1, A: 0.25}
	dst := layer.RGBA{R: 0.5, G: 0, B: 0, A: 1}

	tests := []struct {
		name string
		want layer.RGBA
	}{
		{BlenderAlpha, layer.RGBA{R: 0.5, A: 0.25}},
		{BlenderLuminosity, layer.RGBA{R: 0.5, A: 1}},
		{BlenderInvLumi, layer.RGBA{R: 0.5, A: 0}},
		{BlenderMaskOut, layer.RGBA{R: 1, G: 1, B: 1, A: 0.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.Blender(tt.name).Blend(src, dst)
			assert.True(t, colorNear(got, tt.want, 1e-9), "got %v, want %v", got, tt.want)
		})
	}
}

func TestPatternFill(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockProvider(ctrl)
	p.EXPECT().ReadData("white").Return(pngBytes(t, 2, 2), nil)

	env := NewEnv(WithResources(p))
	n := NewImageNode("img", "img", "white", PatternStretch)
	n.SetFrameBounds(layer.NewRect(0, 0, 10, 10))
	img := renderNode(n, env, 20, 10)

	assert.Equal(t, uint8(255), img.RGBAAt(5, 5).R)
	// Nothing is painted outside the frame.
	assert.Zero(t, img.RGBAAt(15, 5).A)
}
