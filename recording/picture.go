package recording

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/layer"
)

// Picture is an immutable list of recorded commands. It implements
// layer.Picture.
type Picture struct {
	commands    []Command
	resources   *ResourcePool
	bounds      layer.Rect
	fingerprint uint64
}

// Empty returns a picture that draws nothing.
func Empty() *Picture {
	return NewRecorder(layer.Rect{}).Finish()
}

// Bounds implements layer.Picture.
func (p *Picture) Bounds() layer.Rect {
	if p == nil {
		return layer.Rect{}
	}
	return p.bounds
}

// Commands returns the recorded commands.
func (p *Picture) Commands() []Command { return p.commands }

// Resources returns the resource pool.
func (p *Picture) Resources() *ResourcePool { return p.resources }

// Len returns the number of commands.
func (p *Picture) Len() int {
	if p == nil {
		return 0
	}
	return len(p.commands)
}

// Fingerprint returns a hash of the commands and their geometry. Equal
// fingerprints mean the pictures draw the same shapes with the same
// compositing parameters.
func (p *Picture) Fingerprint() uint64 {
	if p == nil {
		return 0
	}
	return p.fingerprint
}

// Playback implements layer.Picture. The canvas state is balanced on
// return.
func (p *Picture) Playback(c layer.Canvas) {
	if p == nil || len(p.commands) == 0 {
		return
	}
	n := c.SaveCount()
	c.Save()
	for _, cmd := range p.commands {
		p.replay(c, cmd)
	}
	c.RestoreToCount(n)
}

func (p *Picture) replay(c layer.Canvas, cmd Command) {
	res := p.resources
	switch cmd := cmd.(type) {
	case SaveCommand:
		c.Save()
	case SaveLayerCommand:
		c.SaveLayer(layer.LayerRec{Bounds: cmd.Bounds, Paint: res.Paint(cmd.Paint), Backdrop: cmd.Backdrop})
	case RestoreCommand:
		c.Restore()
	case ConcatCommand:
		c.Concat(cmd.Matrix)
	case ClipShapeCommand:
		c.ClipShape(res.Shape(cmd.Shape), cmd.Op)
	case DrawShapeCommand:
		c.DrawShape(res.Shape(cmd.Shape), res.Paint(cmd.Paint))
	case DrawImageCommand:
		c.DrawImage(res.Image(cmd.Image), cmd.Dst, res.Paint(cmd.Paint))
	case DrawPictureCommand:
		c.DrawPicture(res.Picture(cmd.Picture), res.Paint(cmd.Paint))
	}
}

// hasher writes primitive values into an xxhash digest.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (h *hasher) f(vs ...float64) {
	for _, v := range vs {
		binary.LittleEndian.PutUint64(h.buf[:], math.Float64bits(v))
		_, _ = h.d.Write(h.buf[:])
	}
}

func (h *hasher) u(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) s(v string) { _, _ = h.d.WriteString(v) }

func (h *hasher) rect(r layer.Rect) { h.f(r.X, r.Y, r.W, r.H) }

func (h *hasher) matrix(m layer.Matrix) { h.f(m.A, m.B, m.C, m.D, m.E, m.F) }

func (h *hasher) shape(s layer.Shape) {
	if layer.IsEmptyShape(s) {
		h.u(0)
		return
	}
	if cs, ok := s.(*layer.CombinedShape); ok {
		h.u(16 + uint64(cs.Op))
		h.shape(cs.A)
		h.shape(cs.B)
		return
	}
	h.rect(s.Bounds())
	for _, el := range s.Outline().Elements() {
		switch e := el.(type) {
		case layer.MoveTo:
			h.u(1)
			h.f(e.Point.X, e.Point.Y)
		case layer.LineTo:
			h.u(2)
			h.f(e.Point.X, e.Point.Y)
		case layer.QuadTo:
			h.u(3)
			h.f(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case layer.CubicTo:
			h.u(4)
			h.f(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case layer.Close:
			h.u(5)
		}
	}
}

func (h *hasher) paint(p *layer.Paint) {
	if p == nil {
		h.u(0)
		return
	}
	h.f(p.Alpha)
	h.u(uint64(p.BlendMode))
	if sc, ok := p.Shader.(*layer.SolidShader); ok {
		h.f(sc.Color.R, sc.Color.G, sc.Color.B, sc.Color.A)
	} else {
		h.s(fmt.Sprintf("%T", p.Shader))
	}
	h.s(fmt.Sprintf("%T%T%T", p.Blender, p.ColorFilter, p.ImageFilter))
}

func fingerprint(p *Picture) uint64 {
	h := &hasher{d: xxhash.New()}
	res := p.resources
	for _, cmd := range p.commands {
		h.u(uint64(cmd.Type()))
		switch cmd := cmd.(type) {
		case SaveLayerCommand:
			h.rect(cmd.Bounds)
			h.paint(res.Paint(cmd.Paint))
			h.s(fmt.Sprintf("%T", cmd.Backdrop))
		case ConcatCommand:
			h.matrix(cmd.Matrix)
		case ClipShapeCommand:
			h.shape(res.Shape(cmd.Shape))
			h.u(uint64(cmd.Op))
		case DrawShapeCommand:
			h.shape(res.Shape(cmd.Shape))
			h.paint(res.Paint(cmd.Paint))
		case DrawImageCommand:
			h.rect(cmd.Dst)
			h.paint(res.Paint(cmd.Paint))
			if img := res.Image(cmd.Image); img != nil {
				h.s(img.Bounds().String())
			}
		case DrawPictureCommand:
			if pic, ok := res.Picture(cmd.Picture).(*Picture); ok {
				h.u(pic.Fingerprint())
			}
			h.paint(res.Paint(cmd.Paint))
		}
	}
	return h.d.Sum64()
}
