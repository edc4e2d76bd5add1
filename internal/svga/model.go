// Package svga defines the canonical in-memory model of an SVGA 2.0
// animation container: movie parameters, the image asset table, the
// sprite layers with their per-frame animation tracks, and audio cues.
//
// A Document is produced by the wire decoder, mutated through
// copy-on-write snapshots by the layer synthesizer, and consumed by the
// wire encoder. Image assets are kept as base64 text so the model can be
// handed to JSON/YAML consumers without a separate conversion step.
package svga

// Version is the container version every encoded document carries.
const Version = "2.0.0"

// Document is the root of one animation container.
type Document struct {
	Version string            `json:"version"`
	Params  Params            `json:"params"`
	Images  map[string]string `json:"images"` // asset key -> base64 raster bytes
	Sprites []Sprite          `json:"sprites"`
	Audios  []Audio           `json:"audios,omitempty"`
}

// Params describes the movie canvas and timing.
type Params struct {
	ViewBoxWidth  float64 `json:"viewBoxWidth"`
	ViewBoxHeight float64 `json:"viewBoxHeight"`
	FPS           int     `json:"fps"`
	Frames        int     `json:"frames"`
}

// Sprite is a named layer: an image reference plus one Frame per movie frame.
// MatteKey, when non-empty, names another sprite's image whose alpha channel
// masks this one.
type Sprite struct {
	ImageKey string  `json:"imageKey"`
	MatteKey string  `json:"matteKey,omitempty"`
	Frames   []Frame `json:"frames"`
}

// Frame is the state of a sprite at one point on the timeline.
type Frame struct {
	Alpha     float64   `json:"alpha"`
	Layout    Rect      `json:"layout"`
	Transform Transform `json:"transform"`
	ClipPath  string    `json:"clipPath,omitempty"`
	Shapes    []Shape   `json:"shapes,omitempty"`
}

// Rect is a local bounding rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Transform is a 2D affine matrix in the usual (a b c d tx ty) layout.
type Transform struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	D  float64 `json:"d"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// ShapeType selects the payload variant of a Shape.
type ShapeType int32

const (
	ShapePath    ShapeType = 0 // SVG path draw command
	ShapeRect    ShapeType = 1
	ShapeEllipse ShapeType = 2
	ShapeKeep    ShapeType = 3 // repeat the previous frame's shape
)

// Shape is one vector draw command inside a frame. Exactly one of Path,
// Rect and Ellipse is set, selected by Type; ShapeKeep carries none.
type Shape struct {
	Type      ShapeType    `json:"type"`
	Path      *PathArgs    `json:"path,omitempty"`
	Rect      *RectArgs    `json:"rect,omitempty"`
	Ellipse   *EllipseArgs `json:"ellipse,omitempty"`
	Styles    *ShapeStyle  `json:"styles,omitempty"`
	Transform *Transform   `json:"transform,omitempty"`
}

// PathArgs holds an SVG-syntax path string.
type PathArgs struct {
	D string `json:"d"`
}

// RectArgs holds rounded-rectangle geometry.
type RectArgs struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	CornerRadius float64 `json:"cornerRadius"`
}

// EllipseArgs holds ellipse geometry.
type EllipseArgs struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	RadiusX float64 `json:"radiusX"`
	RadiusY float64 `json:"radiusY"`
}

// LineCap styles a stroke end. Values follow the wire enum.
type LineCap int32

const (
	LineCapButt   LineCap = 0
	LineCapRound  LineCap = 1
	LineCapSquare LineCap = 2
)

// LineJoin styles a stroke corner. Values follow the wire enum.
type LineJoin int32

const (
	LineJoinMiter LineJoin = 0
	LineJoinRound LineJoin = 1
	LineJoinBevel LineJoin = 2
)

// ShapeStyle carries fill/stroke styling for a Shape.
type ShapeStyle struct {
	Fill        *Color    `json:"fill,omitempty"`
	Stroke      *Color    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth"`
	LineCap     LineCap   `json:"lineCap"`
	LineJoin    LineJoin  `json:"lineJoin"`
	MiterLimit  float64   `json:"miterLimit"`
	LineDash    []float64 `json:"lineDash,omitempty"`
}

// Color is an RGBA color with components in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Audio is an audio cue. The codec passes cues through untouched apart
// from key sanitization and integer rounding of the frame/time fields.
type Audio struct {
	AudioKey   string  `json:"audioKey"`
	StartFrame float64 `json:"startFrame"`
	EndFrame   float64 `json:"endFrame"`
	StartTime  float64 `json:"startTime"`
	TotalTime  float64 `json:"totalTime"`
}
