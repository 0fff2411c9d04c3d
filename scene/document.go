package scene

import (
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/layer"
	"github.com/gogpu/layer/graph"
)

var (
	// ErrUnknownNodeType is returned for a node whose type is not supported.
	ErrUnknownNodeType = zerr.New("unknown node type")

	// ErrUnknownSymbol is returned for an instance of an undeclared symbol.
	ErrUnknownSymbol = zerr.New("unknown symbol")

	// ErrInvalidValue is returned for a malformed field.
	ErrInvalidValue = zerr.New("invalid value")

	// ErrNoRoot is returned for a document without a root node.
	ErrNoRoot = zerr.New("document has no root node")
)

// Document is a loaded design document.
type Document struct {
	Width, Height int
	Background    layer.RGBA
	Root          *graph.PaintNode
}

// documentDTO is the YAML form of a document.
type documentDTO struct {
	Width      int                 `yaml:"width"`
	Height     int                 `yaml:"height"`
	Background string              `yaml:"background"`
	Symbols    map[string]*nodeDTO `yaml:"symbols"`
	Root       *nodeDTO            `yaml:"root"`
}

// nodeDTO is the YAML form of a node. Fields that do not apply to a node
// type are ignored.
type nodeDTO struct {
	Type      string        `yaml:"type"`
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Frame     []float64     `yaml:"frame"`
	Radius    []float64     `yaml:"radius"`
	Smoothing float64       `yaml:"smoothing"`
	Transform *transformDTO `yaml:"transform"`
	Visible   *bool         `yaml:"visible"`

	Opacity *float64 `yaml:"opacity"`
	Blend   string   `yaml:"blend"`
	Isolate bool     `yaml:"isolate"`

	Overflow string `yaml:"overflow"`
	Combine  string `yaml:"combine"`
	BoolOp   string `yaml:"boolOp"`
	Winding  string `yaml:"winding"`
	Paint    string `yaml:"paint"`

	Mask          string   `yaml:"mask"`
	MaskShow      string   `yaml:"maskShow"`
	AlphaMaskType string   `yaml:"alphaMaskType"`
	MaskBy        []string `yaml:"maskBy"`
	AlphaMaskBy   []string `yaml:"alphaMaskBy"`

	Style    *styleDTO  `yaml:"style"`
	Children []*nodeDTO `yaml:"children"`

	Points [][]float64 `yaml:"points"`
	Closed bool        `yaml:"closed"`
	Sides  int         `yaml:"sides"`
	Ratio  float64     `yaml:"ratio"`

	Text  *textDTO `yaml:"text"`
	Image string   `yaml:"image"`
	Mode  string   `yaml:"mode"`
	Ref   string   `yaml:"ref"`
}

type transformDTO struct {
	Translate []float64 `yaml:"translate"`
	Rotate    float64   `yaml:"rotate"`
	Scale     []float64 `yaml:"scale"`
	Matrix    []float64 `yaml:"matrix"`
}

type styleDTO struct {
	Fills        []paintDTO  `yaml:"fills"`
	Borders      []borderDTO `yaml:"borders"`
	Shadows      []shadowDTO `yaml:"shadows"`
	InnerShadows []shadowDTO `yaml:"innerShadows"`
	Blurs        []blurDTO   `yaml:"blurs"`
}

type paintDTO struct {
	Enabled  *bool        `yaml:"enabled"`
	Opacity  *float64     `yaml:"opacity"`
	Blend    string       `yaml:"blend"`
	Color    string       `yaml:"color"`
	Gradient *gradientDTO `yaml:"gradient"`
	Pattern  *patternDTO  `yaml:"pattern"`
}

type gradientDTO struct {
	Kind    string    `yaml:"kind"`
	From    []float64 `yaml:"from"`
	To      []float64 `yaml:"to"`
	Ellipse float64   `yaml:"ellipse"`
	Stops   []stopDTO `yaml:"stops"`
}

type stopDTO struct {
	Pos   float64 `yaml:"pos"`
	Color string  `yaml:"color"`
}

type patternDTO struct {
	Image    string            `yaml:"image"`
	Mode     string            `yaml:"mode"`
	Rotation float64           `yaml:"rotation"`
	Scale    float64           `yaml:"scale"`
	Tile     string            `yaml:"tile"`
	Mirror   bool              `yaml:"mirror"`
	Adjust   graph.ImageAdjust `yaml:"adjust"`
}

type borderDTO struct {
	paintDTO   `yaml:",inline"`
	Thickness  float64   `yaml:"thickness"`
	Position   string    `yaml:"position"`
	Dash       []float64 `yaml:"dash"`
	DashOffset float64   `yaml:"dashOffset"`
	Join       string    `yaml:"join"`
	Cap        string    `yaml:"cap"`
	MiterLimit float64   `yaml:"miterLimit"`
}

type shadowDTO struct {
	Enabled *bool     `yaml:"enabled"`
	Opacity *float64  `yaml:"opacity"`
	Blend   string    `yaml:"blend"`
	Color   string    `yaml:"color"`
	Offset  []float64 `yaml:"offset"`
	Blur    float64   `yaml:"blur"`
	Spread  float64   `yaml:"spread"`
	// ShowBehind keeps the drop shadow under translucent fills.
	ShowBehind bool `yaml:"showBehind"`
}

type blurDTO struct {
	Enabled *bool     `yaml:"enabled"`
	Kind    string    `yaml:"kind"`
	Radius  float64   `yaml:"radius"`
	Angle   float64   `yaml:"angle"`
	Center  []float64 `yaml:"center"`
}

type textDTO struct {
	Content    string    `yaml:"content"`
	Font       string    `yaml:"font"`
	Size       float64   `yaml:"size"`
	LineHeight float64   `yaml:"lineHeight"`
	Width      float64   `yaml:"width"`
	Align      string    `yaml:"align"`
	Direction  string    `yaml:"direction"`
	Spans      []spanDTO `yaml:"spans"`
}

type spanDTO struct {
	Start int        `yaml:"start"`
	End   int        `yaml:"end"`
	Fills []paintDTO `yaml:"fills"`
}

// Load reads and builds the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read scene file"), "path", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return doc, nil
}

// Parse builds a document from YAML data.
func Parse(data []byte) (*Document, error) {
	var dto documentDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to parse scene")
	}
	if dto.Root == nil {
		return nil, ErrNoRoot
	}
	bg := layer.Transparent
	if dto.Background != "" {
		c, err := parseColor(dto.Background)
		if err != nil {
			return nil, zerr.With(err, "field", "background")
		}
		bg = c
	}
	b := newBuilder(dto.Symbols)
	root, err := b.node(dto.Root)
	if err != nil {
		return nil, err
	}
	return &Document{
		Width:      dto.Width,
		Height:     dto.Height,
		Background: bg,
		Root:       root,
	}, nil
}
