package commands

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const unsized = `
root:
  type: group
  id: g
  children:
    - type: rectangle
      id: a
      frame: [0, 0, 10, 6]
      style:
        fills: [{color: "#f00"}]
    - type: ellipse
      id: b
      frame: [12, 0, 8, 10]
      style:
        fills: [{color: "#00f"}]
`

func TestRenderAll(t *testing.T) {
	defer layer.SetLogger(nil)
	dir := t.TempDir()
	scenes := []string{
		writeFile(t, dir, "one.yaml", unsized),
		writeFile(t, dir, "two.yml", unsized),
	}
	cfg, err := config.Parse([]byte("[render]\nbackground = \"#ffffff\"\n"))
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	require.NoError(t, renderAll(context.Background(), cfg, scenes, out, 2))

	for _, name := range []string{"one.png", "two.png"} {
		f, err := os.Open(filepath.Join(out, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		_ = f.Close()
		require.NoError(t, err)
		assert.Equal(t, 20, img.Bounds().Dx(), "canvas follows the root bounds")
		assert.Equal(t, 10, img.Bounds().Dy())
		r, g, b, _ := img.At(5, 8).RGBA()
		assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b}, "config background")
	}
}

func TestRenderAllStopsOnError(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", unsized)
	bad := writeFile(t, dir, "bad.yaml", "root: {type: nonsense}")

	err := renderAll(context.Background(), config.Default(), []string{good, bad}, dir, 1)
	require.ErrorContains(t, err, "unknown node type")
}

func TestRenderEmptyCanvas(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.yaml", "root: {type: group}")
	err := renderAll(context.Background(), config.Default(), []string{path}, dir, 1)
	require.ErrorContains(t, err, "document has an empty canvas")
}

func TestBoundsCommand(t *testing.T) {
	defer layer.SetLogger(nil)
	path := writeFile(t, t.TempDir(), "scene.yaml", unsized)

	var stdout, stderr bytes.Buffer
	cli := New(&stdout, &stderr)
	cli.SetArgs([]string{"bounds", "--verbose", path})
	require.NoError(t, cli.Execute(context.Background()))

	assert.Equal(t, ""+
		"g bounds=(0,0,20,10) effect=(0,0,20,10)\n"+
		"  a bounds=(0,0,10,6) effect=(0,0,10,6)\n"+
		"  b bounds=(12,0,8,10) effect=(12,0,8,10)\n",
		stdout.String())
}

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cli := New(&stdout, &stderr)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "layer-render version dev\n", stdout.String())
}

func TestFlagShorthands(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cli := New(&stdout, &stderr)
	cli.SetArgs([]string{"-v"})
	require.NotPanics(t, func() {
		require.NoError(t, cli.Execute(context.Background()))
	})
	assert.Contains(t, stdout.String(), "dev")

	f := cli.rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, f)
	assert.Empty(t, f.Shorthand)
}
