package recording

import "github.com/gogpu/layer"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave      CommandType = iota // Save current state
	CmdSaveLayer                    // Open an offscreen layer
	CmdRestore                      // Restore previous state
	CmdConcat                       // Multiply the current matrix
	CmdClipShape                    // Narrow the clip

	// Drawing commands
	CmdDrawShape   // Fill a shape
	CmdDrawImage   // Draw an image into a rectangle
	CmdDrawPicture // Play back a nested picture
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSave:        "Save",
	CmdSaveLayer:   "SaveLayer",
	CmdRestore:     "Restore",
	CmdConcat:      "Concat",
	CmdClipShape:   "ClipShape",
	CmdDrawShape:   "DrawShape",
	CmdDrawImage:   "DrawImage",
	CmdDrawPicture: "DrawPicture",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ShapeRef is a reference to a shape in the resource pool.
type ShapeRef uint32

// PaintRef is a reference to a paint in the resource pool.
type PaintRef uint32

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// PictureRef is a reference to a nested picture in the resource pool.
type PictureRef uint32

// InvalidRef is the sentinel value for an absent reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference points to a paint.
func (r PaintRef) IsValid() bool { return uint32(r) != InvalidRef }

// SaveCommand saves the current matrix and clip.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// SaveLayerCommand opens an offscreen layer.
type SaveLayerCommand struct {
	Bounds   layer.Rect
	Paint    PaintRef // InvalidRef for a plain layer
	Backdrop layer.ImageFilter
}

// Type implements Command.
func (SaveLayerCommand) Type() CommandType { return CmdSaveLayer }

// RestoreCommand restores the previously saved state.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// ConcatCommand multiplies the current matrix.
type ConcatCommand struct {
	Matrix layer.Matrix
}

// Type implements Command.
func (ConcatCommand) Type() CommandType { return CmdConcat }

// ClipShapeCommand narrows the clip by a shape.
type ClipShapeCommand struct {
	Shape ShapeRef
	Op    layer.ClipOp
}

// Type implements Command.
func (ClipShapeCommand) Type() CommandType { return CmdClipShape }

// DrawShapeCommand fills a shape.
type DrawShapeCommand struct {
	Shape ShapeRef
	Paint PaintRef
}

// Type implements Command.
func (DrawShapeCommand) Type() CommandType { return CmdDrawShape }

// DrawImageCommand draws an image scaled into Dst.
type DrawImageCommand struct {
	Image ImageRef
	Dst   layer.Rect
	Paint PaintRef
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// DrawPictureCommand plays back a nested picture.
type DrawPictureCommand struct {
	Picture PictureRef
	Paint   PaintRef // InvalidRef to play back without a layer
}

// Type implements Command.
func (DrawPictureCommand) Type() CommandType { return CmdDrawPicture }
