package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/layer/graph"
	"github.com/gogpu/layer/scene"
)

func (c *CLI) newBoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds <scene>",
		Short: "Print the bounds of every node in a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			doc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			defer doc.Root.Detach()
			env, err := newEnv(cfg)
			if err != nil {
				return err
			}
			printBounds(c.stdout, doc.Root, env, 0)
			return nil
		},
	}
}

// printBounds writes one line per node: its GUID, its bounds and its
// effect bounds in local coordinates.
func printBounds(w io.Writer, n *graph.PaintNode, env *graph.Env, depth int) {
	b := n.Bounds(env)
	e := n.EffectBounds(env)
	_, _ = fmt.Fprintf(w, "%s%s bounds=(%g,%g,%g,%g) effect=(%g,%g,%g,%g)\n",
		strings.Repeat("  ", depth), n.GUID(), b.X, b.Y, b.W, b.H, e.X, e.Y, e.W, e.H)
	for _, c := range n.Children() {
		printBounds(w, c, env, depth+1)
	}
}
