package graph

import "github.com/gogpu/layer"

// ContextSetting controls how a style element or a node composites.
type ContextSetting struct {
	Opacity   float64
	BlendMode BlendMode

	// Isolate composites the node's content in its own layer.
	Isolate bool

	// Knockout is carried for documents that use it and composites like
	// Isolate.
	Knockout bool
}

// DefaultContextSetting returns full opacity with normal blending.
func DefaultContextSetting() ContextSetting {
	return ContextSetting{Opacity: 1, BlendMode: BlendNormal}
}

// needsLayer reports whether compositing with s requires an offscreen layer.
func (s ContextSetting) needsLayer() bool {
	return s.Opacity < 1 || !s.BlendMode.isNormal() || s.Isolate || s.Knockout
}

// layerPaint returns the paint compositing a layer with s.
func (s ContextSetting) layerPaint(env *Env) *layer.Paint {
	p := layer.NewPaint(nil)
	p.Alpha = clampUnit(s.Opacity)
	s.BlendMode.apply(p, env)
	return p
}

// FillType is the paint source of a fill or border: a ColorFill, a
// Gradient or a Pattern.
type FillType interface {
	isFillType()
}

// ColorFill is a flat color.
type ColorFill struct {
	Color layer.RGBA
}

func (ColorFill) isFillType() {}

// GradientKind selects the gradient geometry.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientAngular
	GradientDiamond
)

// GradientStop is a color at a position in [0, 1].
type GradientStop struct {
	Position float64
	Color    layer.RGBA
}

// Gradient is a gradient fill. From and To are in normalized object
// space: (0, 0) is the top-left and (1, 1) the bottom-right of the bounds
// the gradient fills.
type Gradient struct {
	Kind     GradientKind
	From, To layer.Point
	Stops    []GradientStop

	// Ellipse is the ratio of the minor to the major axis for radial,
	// angular and diamond gradients. Zero means 1.
	Ellipse float64
}

func (Gradient) isFillType() {}

// PatternMode selects how a pattern image covers its bounds.
type PatternMode uint8

const (
	// PatternFill scales uniformly to cover the bounds.
	PatternFill PatternMode = iota
	// PatternFit scales uniformly to fit inside the bounds.
	PatternFit
	// PatternStretch scales each axis to the bounds.
	PatternStretch
	// PatternTile repeats the image at Scale.
	PatternTile
)

// TileMode selects the repeated axes of a tiled pattern.
type TileMode uint8

const (
	TileBoth TileMode = iota
	TileHorizontal
	TileVertical
)

// Pattern is an image fill.
type Pattern struct {
	GUID string
	Mode PatternMode

	// Rotation in degrees, about the image center for fill and fit.
	Rotation float64

	// Scale of the image for tiled patterns. Zero means 1.
	Scale  float64
	Tile   TileMode
	Mirror bool

	// Transform maps the unit square to the bounds for stretched
	// patterns. The zero value means identity.
	Transform layer.Matrix

	Adjust ImageAdjust
}

func (Pattern) isFillType() {}

// ImageAdjust holds image adjustments in [-1, 1]. The zero value leaves
// the image unchanged.
type ImageAdjust struct {
	Exposure    float64
	Contrast    float64
	Saturation  float64
	Temperature float64
	Tint        float64
	Highlight   float64
	Shadow      float64
	Hue         float64
}

// IsZero reports whether a leaves colors unchanged.
func (a ImageAdjust) IsZero() bool { return a == ImageAdjust{} }

// Fill is one fill of a style.
type Fill struct {
	Enabled bool
	Context ContextSetting
	Type    FillType
}

// NewColorFill returns an enabled flat fill.
func NewColorFill(c layer.RGBA) Fill {
	return Fill{Enabled: true, Context: DefaultContextSetting(), Type: ColorFill{Color: c}}
}

// BorderPosition places a stroke relative to the shape outline.
type BorderPosition uint8

const (
	BorderCenter BorderPosition = iota
	BorderInside
	BorderOutside
)

// Border is one stroke of a style.
type Border struct {
	Enabled    bool
	Context    ContextSetting
	Type       FillType
	Thickness  float64
	Position   BorderPosition
	Dash       []float64
	DashOffset float64
	Join       layer.LineJoin
	Cap        layer.LineCap
	MiterLimit float64
}

// NewColorBorder returns an enabled flat border.
func NewColorBorder(c layer.RGBA, thickness float64, pos BorderPosition) Border {
	return Border{
		Enabled:   true,
		Context:   DefaultContextSetting(),
		Type:      ColorFill{Color: c},
		Thickness: thickness,
		Position:  pos,
	}
}

// visible reports whether b draws anything.
func (b Border) visible() bool { return b.Enabled && b.Thickness > 0 && b.Type != nil }

// DropShadow is an outer shadow.
type DropShadow struct {
	Enabled          bool
	Context          ContextSetting
	Color            layer.RGBA
	OffsetX, OffsetY float64
	Blur             float64
	Spread           float64

	// ShowBehindTransparent keeps the part of the shadow that lies under
	// the object. By default that part is cleared.
	ShowBehindTransparent bool
}

// InnerShadow is a shadow cast inward from the shape edge.
type InnerShadow struct {
	Enabled          bool
	Context          ContextSetting
	Color            layer.RGBA
	OffsetX, OffsetY float64
	Blur             float64
	Spread           float64
}

// BlurKind selects a blur effect.
type BlurKind uint8

const (
	// BlurGaussian blurs the layer.
	BlurGaussian BlurKind = iota
	// BlurBackground blurs the content behind the object.
	BlurBackground
	// BlurMotion blurs the layer along Angle.
	BlurMotion
	// BlurRadial blurs the layer away from Center.
	BlurRadial
)

// Blur is a blur effect.
type Blur struct {
	Enabled bool
	Kind    BlurKind
	Radius  float64

	// Angle in degrees for motion blur.
	Angle float64

	// Center in normalized object space for radial blur.
	Center layer.Point
}

// Style is everything that decorates a shape, in declaration order.
type Style struct {
	Fills        []Fill
	Borders      []Border
	DropShadows  []DropShadow
	InnerShadows []InnerShadow
	Blurs        []Blur
}

// hasFill reports whether any fill is enabled.
func (s *Style) hasFill() bool {
	for _, f := range s.Fills {
		if f.Enabled && f.Type != nil {
			return true
		}
	}
	return false
}

func clampUnit(v float64) float64 {
	return min(1, max(0, v))
}
