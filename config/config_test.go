package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/graph"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 32, cfg.Cache.Blenders)
	assert.Equal(t, 64, cfg.Cache.ColorFilters)
	assert.Equal(t, 128, cfg.Cache.Images)
	assert.InDelta(t, 0.25, cfg.Render.Tolerance, 1e-9)
	assert.Equal(t, layer.White, cfg.BackgroundColor(layer.White))
}

func TestParseMergesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[cache]
images = 4

[render]
background = "#ff0000"
debugBounds = true
`))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Cache.Images)
	assert.Equal(t, 32, cfg.Cache.Blenders, "unset values keep defaults")
	assert.InDelta(t, 0.25, cfg.Render.Tolerance, 1e-9)
	assert.Equal(t, layer.Red, cfg.BackgroundColor(layer.White))

	env := graph.NewEnv(cfg.EnvOptions()...)
	assert.True(t, env.DebugBounds())
	assert.InDelta(t, 0.25, env.Tolerance(), 1e-9)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[cache", "failed to parse config"},
		{"zero cache", "[cache]\nblenders = 0", "invalid config"},
		{"negative images", "[cache]\nimages = -1", "invalid config"},
		{"tolerance", "[render]\ntolerance = 0.0", "invalid config"},
		{"max image size", "[render]\nmaxImageSize = -5", "invalid config"},
		{"background", "[render]\nbackground = \"white\"", "invalid config"},
		{"font path", "[[fonts]]\nname = \"body\"", "invalid config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fonts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fonts", "body.ttf"), goregular.TTF, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layer.toml"), []byte(`
[render]
assets = "assets"

[[fonts]]
name = "body"
path = "fonts/body.ttf"
`), 0o600))

	cfg, err := Load(filepath.Join(dir, "layer.toml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "assets"), cfg.resolve(cfg.Render.Assets))

	shaper, err := cfg.Shaper()
	require.NoError(t, err)
	require.NotNil(t, shaper)
	assert.NotNil(t, shaper.Font("body"))
}

func TestShaperErrors(t *testing.T) {
	cfg := Default()
	shaper, err := cfg.Shaper()
	require.NoError(t, err)
	assert.Nil(t, shaper, "no fonts configured")

	cfg.Fonts = []Font{{Name: "body", Path: filepath.Join(t.TempDir(), "missing.ttf")}}
	_, err = cfg.Shaper()
	require.ErrorContains(t, err, "failed to read font")

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("not a font"), 0o600))
	cfg.Fonts = []Font{{Name: "body", Path: bad}}
	_, err = cfg.Shaper()
	require.ErrorContains(t, err, "failed to parse font")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.ErrorContains(t, err, "failed to read config file")
}
