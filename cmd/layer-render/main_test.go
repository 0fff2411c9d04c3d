package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/layer"
)

const square = `
width: 8
height: 8
root:
  type: rectangle
  frame: [2, 2, 4, 4]
  style:
    fills: [{color: "#00ff00"}]
`

func TestRun(t *testing.T) {
	defer layer.SetLogger(nil)

	dir := t.TempDir()
	scenePath := filepath.Join(dir, "square.yaml")
	require.NoError(t, os.WriteFile(scenePath, []byte(square), 0o600))

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{"render", []string{"render", "-o", filepath.Join(dir, "out"), scenePath}, 0},
		{"no scenes prints help", []string{"render"}, 0},
		{"missing scene", []string{"render", "-o", dir, filepath.Join(dir, "nope.yaml")}, 1},
		{"missing config", []string{"render", "-c", filepath.Join(dir, "nope.toml"), scenePath}, 1},
		{"unknown command", []string{"paint"}, 1},
		{"version", []string{"version"}, 0},
		{"version flag", []string{"-v"}, 0},
		{"verbose bounds", []string{"bounds", "--verbose", scenePath}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.expectedExit, run(tt.args, &stdout, &stderr), stderr.String())
		})
	}

	f, err := os.Open(filepath.Join(dir, "out", "square.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	_, g, _, a := img.At(3, 3).RGBA()
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), a)
	_, _, _, a = img.At(0, 0).RGBA()
	assert.Zero(t, a, "transparent background")
}
