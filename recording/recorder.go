package recording

import (
	"image"

	"github.com/gogpu/layer"
)

// Recorder captures canvas calls as commands. It implements layer.Canvas.
// Use Finish to obtain an immutable Picture.
//
// The Recorder tracks the matrix and a conservative clip so that the
// resulting picture knows its bounds, including the spread of layer image
// filters.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	cull      layer.Rect
	commands  []Command
	resources *ResourcePool
	stack     []recorderState
}

// recorderState stores the state for Save/Restore.
type recorderState struct {
	matrix  layer.Matrix
	clip    layer.Rect
	clipped bool
	layer   *recorderLayer
}

// recorderLayer accumulates the bounds drawn inside a SaveLayer.
type recorderLayer struct {
	rec    layer.LayerRec
	ctm    layer.Matrix
	bounds layer.Rect
}

// NewRecorder creates a recorder. A non-empty cull rectangle becomes the
// picture bounds; otherwise bounds are computed from the recorded commands.
func NewRecorder(cull layer.Rect) *Recorder {
	return &Recorder{
		cull:      cull,
		commands:  make([]Command, 0, 32),
		resources: NewResourcePool(),
		stack:     []recorderState{{matrix: layer.Identity(), layer: &recorderLayer{}}},
	}
}

func (r *Recorder) top() *recorderState { return &r.stack[len(r.stack)-1] }

// accumulator returns the innermost open layer.
func (r *Recorder) accumulator() *recorderLayer {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i].layer != nil {
			return r.stack[i].layer
		}
	}
	return r.stack[0].layer
}

func (r *Recorder) record(cmd Command) {
	r.commands = append(r.commands, cmd)
}

// addBounds unions a device rectangle, clipped, into the current layer.
func (r *Recorder) addBounds(b layer.Rect) {
	s := r.top()
	if s.clipped {
		b = b.Intersect(s.clip)
	}
	acc := r.accumulator()
	acc.bounds = acc.bounds.Union(b)
}

// Save implements layer.Canvas.
func (r *Recorder) Save() {
	s := *r.top()
	s.layer = nil
	r.stack = append(r.stack, s)
	r.record(SaveCommand{})
}

// SaveLayer implements layer.Canvas.
func (r *Recorder) SaveLayer(rec layer.LayerRec) {
	s := *r.top()
	s.layer = &recorderLayer{rec: rec, ctm: s.matrix}
	r.stack = append(r.stack, s)
	r.record(SaveLayerCommand{
		Bounds:   rec.Bounds,
		Paint:    r.resources.AddPaint(rec.Paint),
		Backdrop: rec.Backdrop,
	})
}

// Restore implements layer.Canvas.
func (r *Recorder) Restore() {
	if len(r.stack) <= 1 {
		return
	}
	s := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.record(RestoreCommand{})
	if s.layer != nil {
		parent := r.top()
		r.addBounds(s.layer.finalBounds(parent.clip, parent.clipped))
	}
}

// finalBounds returns the device bounds a closed layer covers.
func (l *recorderLayer) finalBounds(clip layer.Rect, clipped bool) layer.Rect {
	b := l.bounds
	if l.rec.Backdrop != nil {
		switch {
		case !l.rec.Bounds.IsEmpty():
			b = b.Union(l.ctm.MapRect(l.rec.Bounds))
		case clipped:
			b = b.Union(clip)
		}
	}
	if p := l.rec.Paint; p != nil && p.ImageFilter != nil {
		if inv, ok := l.ctm.Inverse(); ok {
			b = l.ctm.MapRect(p.ImageFilter.FastBounds(inv.MapRect(b)))
		}
	}
	if !l.rec.Bounds.IsEmpty() {
		b = b.Intersect(l.ctm.MapRect(l.rec.Bounds))
	}
	return b
}

// SaveCount implements layer.Canvas.
func (r *Recorder) SaveCount() int { return len(r.stack) }

// RestoreToCount implements layer.Canvas.
func (r *Recorder) RestoreToCount(n int) {
	for len(r.stack) > max(n, 1) {
		r.Restore()
	}
}

// Concat implements layer.Canvas.
func (r *Recorder) Concat(m layer.Matrix) {
	if m.IsIdentity() {
		return
	}
	s := r.top()
	s.matrix = s.matrix.Multiply(m)
	r.record(ConcatCommand{Matrix: m})
}

// Matrix implements layer.Canvas.
func (r *Recorder) Matrix() layer.Matrix { return r.top().matrix }

// ClipShape implements layer.Canvas.
func (r *Recorder) ClipShape(sh layer.Shape, op layer.ClipOp) {
	s := r.top()
	if op == layer.ClipIntersect {
		var b layer.Rect
		if sh != nil {
			b = s.matrix.MapRect(sh.Bounds())
		}
		if s.clipped {
			b = b.Intersect(s.clip)
		}
		s.clip, s.clipped = b, true
	}
	r.record(ClipShapeCommand{Shape: r.resources.AddShape(sh), Op: op})
}

// DrawShape implements layer.Canvas.
func (r *Recorder) DrawShape(sh layer.Shape, p *layer.Paint) {
	if layer.IsEmptyShape(sh) || p == nil {
		return
	}
	r.addBounds(r.top().matrix.MapRect(sh.Bounds()))
	r.record(DrawShapeCommand{Shape: r.resources.AddShape(sh), Paint: r.resources.AddPaint(p)})
}

// DrawImage implements layer.Canvas.
func (r *Recorder) DrawImage(img image.Image, dst layer.Rect, p *layer.Paint) {
	if img == nil || dst.IsEmpty() {
		return
	}
	r.addBounds(r.top().matrix.MapRect(dst))
	r.record(DrawImageCommand{Image: r.resources.AddImage(img), Dst: dst, Paint: r.resources.AddPaint(p)})
}

// DrawPicture implements layer.Canvas.
func (r *Recorder) DrawPicture(pic layer.Picture, p *layer.Paint) {
	if pic == nil {
		return
	}
	b := pic.Bounds()
	if p != nil && p.ImageFilter != nil {
		b = p.ImageFilter.FastBounds(b)
	}
	r.addBounds(r.top().matrix.MapRect(b))
	r.record(DrawPictureCommand{Picture: r.resources.AddPicture(pic), Paint: r.resources.AddPaint(p)})
}

// Finish closes any open states and returns the recorded picture.
// The Recorder must not be used afterwards.
func (r *Recorder) Finish() *Picture {
	r.RestoreToCount(1)
	bounds := r.cull
	if bounds.IsEmpty() {
		bounds = r.stack[0].layer.bounds
	}
	pic := &Picture{
		commands:  r.commands,
		resources: r.resources,
		bounds:    bounds,
	}
	pic.fingerprint = fingerprint(pic)
	return pic
}
