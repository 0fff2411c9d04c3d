package commands

import (
	"context"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/config"
	"github.com/gogpu/layer/graph"
	"github.com/gogpu/layer/scene"
)

// ErrEmptyCanvas is returned for a document with no size and an empty root.
var ErrEmptyCanvas = zerr.New("document has an empty canvas")

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [scenes...]",
		Short: "Render scene files to PNG images",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			jobs, _ := cmd.Flags().GetInt("jobs")
			return renderAll(cmd.Context(), cfg, args, out, jobs)
		},
	}
	cmd.Flags().StringP("out", "o", ".", "Directory the PNG images are written to")
	cmd.Flags().IntP("jobs", "j", runtime.GOMAXPROCS(0), "Number of scenes rendered in parallel")
	return cmd
}

func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// renderAll renders every scene into out. Each scene gets its own Env.
func renderAll(ctx context.Context, cfg *config.Config, scenes []string, out string, jobs int) error {
	if err := os.MkdirAll(out, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", out)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))
	for _, path := range scenes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return renderFile(cfg, path, filepath.Join(out, pngName(path)))
		})
	}
	return g.Wait()
}

func renderFile(cfg *config.Config, path, dst string) error {
	doc, err := scene.Load(path)
	if err != nil {
		return err
	}
	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer doc.Root.Detach()

	w, h, err := canvasSize(doc, env)
	if err != nil {
		return zerr.With(err, "path", path)
	}
	bg := doc.Background
	if bg.A == 0 {
		bg = cfg.BackgroundColor(bg)
	}
	img := graph.NewRenderer(doc.Root, env).RenderToImage(w, h, bg)

	f, err := os.Create(dst) //nolint:gosec // path is derived from user input
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create image"), "path", dst)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to encode image"), "path", dst)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write image"), "path", dst)
	}
	stats := env.CacheStats()
	layer.Logger().Info("rendered", "scene", path, "out", dst, "width", w, "height", h,
		"images", stats.Images, "blenders", stats.Blenders, "colorFilters", stats.ColorFilters)
	return nil
}

func newEnv(cfg *config.Config) (*graph.Env, error) {
	opts := cfg.EnvOptions()
	shaper, err := cfg.Shaper()
	if err != nil {
		return nil, err
	}
	if shaper != nil {
		opts = append(opts, graph.WithText(shaper))
	}
	return graph.NewEnv(opts...), nil
}

// canvasSize returns the document size, or the extent of the root's
// effect bounds when the document declares none.
func canvasSize(doc *scene.Document, env *graph.Env) (int, int, error) {
	w, h := doc.Width, doc.Height
	if w > 0 && h > 0 {
		return w, h, nil
	}
	r := doc.Root.EffectBounds(env)
	if w <= 0 {
		w = int(math.Ceil(r.X + r.W))
	}
	if h <= 0 {
		h = int(math.Ceil(r.Y + r.H))
	}
	if w <= 0 || h <= 0 {
		return 0, 0, ErrEmptyCanvas
	}
	return w, h, nil
}

func pngName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}
