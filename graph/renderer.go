package graph

import (
	"image"

	"github.com/gogpu/layer"
)

// Renderer draws a tree with one Env.
type Renderer struct {
	root *PaintNode
	env  *Env
}

// NewRenderer creates a renderer for root. A nil env gets a default one.
func NewRenderer(root *PaintNode, env *Env) *Renderer {
	if env == nil {
		env = NewEnv()
	}
	return &Renderer{root: root, env: env}
}

// Root returns the rendered tree.
func (r *Renderer) Root() *PaintNode { return r.root }

// Env returns the renderer's environment.
func (r *Renderer) Env() *Env { return r.env }

// Render revalidates the tree and paints it onto c.
func (r *Renderer) Render(c layer.Canvas) {
	if r.root == nil {
		return
	}
	r.root.Render(c, r.env)
}

// RenderToImage renders the tree into a new w x h image cleared to bg.
func (r *Renderer) RenderToImage(w, h int, bg layer.RGBA) *image.RGBA {
	ras := layer.NewRaster(w, h)
	ras.Clear(bg)
	r.Render(ras)
	return ras.Image()
}
