package wire

import (
	"bytes"
	"encoding/base64"
	"errors"
	"math"
	"testing"

	"github.com/ivlev/svgapatch/internal/sanitize"
	"github.com/ivlev/svgapatch/internal/svga"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

// approx allows for the float64 -> float32 -> float64 round trip.
func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func testMovie() *svga.Document {
	pixel := base64.StdEncoding.EncodeToString(sanitize.TransparentPixel)
	red := svga.Color{R: 1, A: 1}
	return &svga.Document{
		Version: svga.Version,
		Params:  svga.Params{ViewBoxWidth: 750, ViewBoxHeight: 750, FPS: 20, Frames: 2},
		Images:  map[string]string{"bg": pixel, "fg": pixel},
		Sprites: []svga.Sprite{
			{
				ImageKey: "bg",
				Frames: []svga.Frame{
					{
						Alpha:     1,
						Layout:    svga.Rect{X: 10, Y: 20, Width: 300, Height: 400},
						Transform: svga.Transform{A: 1.5, B: 0.25, C: -0.25, D: 1.5, TX: 5, TY: -5},
						ClipPath:  "M 0 0 L 10 0 L 10 10 Z",
						Shapes: []svga.Shape{
							{
								Type: svga.ShapePath,
								Path: &svga.PathArgs{D: "M 0 0 L 100 100 Z"},
								Styles: &svga.ShapeStyle{
									Fill:        &red,
									StrokeWidth: 2,
									LineCap:     svga.LineCapRound,
									LineJoin:    svga.LineJoinBevel,
									MiterLimit:  4,
									LineDash:    []float64{4, 2, 1},
								},
							},
							{Type: svga.ShapeRect, Rect: &svga.RectArgs{X: 1, Y: 2, Width: 3, Height: 4, CornerRadius: 0.5}},
							{Type: svga.ShapeEllipse, Ellipse: &svga.EllipseArgs{X: 5, Y: 6, RadiusX: 7, RadiusY: 8}},
						},
					},
					{Alpha: 0.5, Layout: svga.Rect{X: 10, Y: 20, Width: 300, Height: 400}, Transform: svga.Identity()},
				},
			},
			{
				ImageKey: "fg",
				MatteKey: "bg",
				Frames:   []svga.Frame{{Alpha: 1, Layout: svga.Rect{Width: 50, Height: 50}, Transform: svga.Identity()}, {Alpha: 1, Layout: svga.Rect{Width: 50, Height: 50}, Transform: svga.Identity()}},
			},
		},
		Audios: []svga.Audio{{AudioKey: "clap", StartFrame: 0, EndFrame: 2, StartTime: 0, TotalTime: 1000}},
	}
}

func TestRoundTripCompressed(t *testing.T) {
	c := newTestCodec(t)
	src := testMovie()

	data, repairs, err := c.Encode(src, EncodeOptions{Compress: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(repairs) != 0 {
		t.Fatalf("clean document produced repairs: %v", repairs)
	}
	if data[0] != 0x78 {
		t.Fatalf("compressed output lacks the zlib header, first byte %#x", data[0])
	}

	doc, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if doc.Version != svga.Version {
		t.Errorf("version = %q, want %q", doc.Version, svga.Version)
	}
	if doc.Params.ViewBoxWidth != 750 || doc.Params.FPS != 20 || doc.Params.Frames != 2 {
		t.Errorf("params = %+v", doc.Params)
	}
	if len(doc.Images) != 2 || doc.Images["bg"] != src.Images["bg"] {
		t.Errorf("image table did not survive: %d assets", len(doc.Images))
	}
	if len(doc.Sprites) != 2 {
		t.Fatalf("sprites = %d, want 2", len(doc.Sprites))
	}
	if doc.Sprites[1].MatteKey != "bg" {
		t.Errorf("matteKey = %q, want bg", doc.Sprites[1].MatteKey)
	}

	f := doc.Sprites[0].Frames[0]
	if !approx(f.Alpha, 1) || !approx(f.Layout.X, 10) || !approx(f.Layout.Height, 400) {
		t.Errorf("frame 0 = %+v", f)
	}
	if !approx(f.Transform.B, 0.25) || !approx(f.Transform.TY, -5) {
		t.Errorf("transform = %+v", f.Transform)
	}
	if f.ClipPath != "M 0 0 L 10 0 L 10 10 Z" {
		t.Errorf("clipPath = %q", f.ClipPath)
	}

	if len(f.Shapes) != 3 {
		t.Fatalf("shapes = %d, want 3", len(f.Shapes))
	}
	path := f.Shapes[0]
	if path.Type != svga.ShapePath || path.Path == nil || path.Path.D != "M 0 0 L 100 100 Z" {
		t.Errorf("path shape = %+v", path)
	}
	style := path.Styles
	if style == nil || style.Fill == nil || !approx(style.Fill.R, 1) || !approx(style.Fill.A, 1) {
		t.Fatalf("style = %+v", style)
	}
	if style.LineCap != svga.LineCapRound || style.LineJoin != svga.LineJoinBevel {
		t.Errorf("line style = cap %v join %v", style.LineCap, style.LineJoin)
	}
	if len(style.LineDash) != 3 || !approx(style.LineDash[0], 4) || !approx(style.LineDash[2], 1) {
		t.Errorf("lineDash = %v", style.LineDash)
	}
	rect := f.Shapes[1]
	if rect.Type != svga.ShapeRect || rect.Rect == nil || !approx(rect.Rect.CornerRadius, 0.5) {
		t.Errorf("rect shape = %+v", rect)
	}
	ellipse := f.Shapes[2]
	if ellipse.Type != svga.ShapeEllipse || ellipse.Ellipse == nil || !approx(ellipse.Ellipse.RadiusY, 8) {
		t.Errorf("ellipse shape = %+v", ellipse)
	}

	if len(doc.Audios) != 1 || doc.Audios[0].AudioKey != "clap" || doc.Audios[0].TotalTime != 1000 {
		t.Errorf("audios = %+v", doc.Audios)
	}
}

func TestRoundTripStored(t *testing.T) {
	c := newTestCodec(t)
	src := testMovie()

	data, _, err := c.Encode(src, EncodeOptions{Compress: false})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if data[0] == 0x78 {
		t.Fatalf("stored output looks zlib-framed")
	}

	doc, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode of stored payload: %v", err)
	}
	if len(doc.Sprites) != 2 || len(doc.Images) != 2 {
		t.Errorf("stored round trip lost content: %d sprites, %d images", len(doc.Sprites), len(doc.Images))
	}
}

func TestEncodeDeterministic(t *testing.T) {
	c := newTestCodec(t)

	first, _, err := c.Encode(testMovie(), EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, _, err := c.Encode(testMovie(), EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("two encodes of the same document differ")
	}
}

func TestEncodeForcesFieldPresence(t *testing.T) {
	c := newTestCodec(t)
	doc := &svga.Document{
		Params:  svga.Params{ViewBoxWidth: 100, ViewBoxHeight: 100, FPS: 20, Frames: 1},
		Images:  map[string]string{"a": base64.StdEncoding.EncodeToString(sanitize.TransparentPixel)},
		Sprites: []svga.Sprite{{ImageKey: "a", Frames: []svga.Frame{{Alpha: 1}}}},
	}

	data, _, err := c.Encode(doc, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// An all-zero layout would vanish from the proto3 wire entirely. The
	// epsilon policy keeps the fields present, so they come back nonzero.
	layout := out.Sprites[0].Frames[0].Layout
	for name, v := range map[string]float64{"x": layout.X, "y": layout.Y, "width": layout.Width, "height": layout.Height} {
		if v == 0 {
			t.Errorf("layout.%s decoded as 0, presence was not forced", name)
		}
		if !approx(v, sanitize.Epsilon) {
			t.Errorf("layout.%s = %v, want about %v", name, v, sanitize.Epsilon)
		}
	}
	tf := out.Sprites[0].Frames[0].Transform
	if tf.TX == 0 || tf.TY == 0 {
		t.Errorf("translation decoded as zero: %+v", tf)
	}
	if tf.A != 1 || tf.D != 1 {
		t.Errorf("identity scale did not survive: %+v", tf)
	}
}

func TestEncodeRepairsDanglingReference(t *testing.T) {
	c := newTestCodec(t)
	doc := &svga.Document{
		Params:  svga.Params{ViewBoxWidth: 10, ViewBoxHeight: 10, FPS: 1, Frames: 1},
		Images:  map[string]string{},
		Sprites: []svga.Sprite{{ImageKey: "missing", Frames: []svga.Frame{{Alpha: 1}}}},
	}

	data, repairs, err := c.Encode(doc, EncodeOptions{Compress: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(repairs) != 1 || repairs[0].Kind != sanitize.RepairDanglingRef {
		t.Fatalf("repairs = %v, want one dangling_reference", repairs)
	}

	out, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := base64.StdEncoding.EncodeToString(sanitize.TransparentPixel)
	if out.Images["missing"] != want {
		t.Errorf("dangling reference was not bound to the fallback pixel")
	}
}

func TestDecodeRejectsLegacyZip(t *testing.T) {
	c := newTestCodec(t)
	_, err := c.Decode([]byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00})
	if !errors.Is(err, ErrUnsupportedLegacyFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedLegacyFormat", err)
	}
}

func TestDecodeMalformedStored(t *testing.T) {
	c := newTestCodec(t)
	// A lone field tag with its value missing: not zlib, not deflate,
	// not a parseable message.
	_, err := c.Decode([]byte{0x08})
	if !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("err = %v, want ErrMalformedContainer", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err %T does not carry a DecodeError", err)
	}
	if de.Inflated {
		t.Errorf("stored garbage reported as inflated")
	}
}

func TestDecodeMalformedCompressed(t *testing.T) {
	c := newTestCodec(t)
	payload, err := deflate([]byte{0x08})
	if err != nil {
		t.Fatalf("deflate: %v", err)
	}
	_, err = c.Decode(payload)
	if !errors.Is(err, ErrMalformedContainer) {
		t.Fatalf("err = %v, want ErrMalformedContainer", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err %T does not carry a DecodeError", err)
	}
	if !de.Inflated {
		t.Errorf("inflated garbage reported as stored")
	}
}

func TestDecodeEmptyMovie(t *testing.T) {
	c := newTestCodec(t)
	doc, err := c.Decode(nil)
	if err != nil {
		t.Fatalf("Decode of empty payload: %v", err)
	}
	if doc.Version != "" || len(doc.Sprites) != 0 || len(doc.Images) != 0 {
		t.Errorf("empty payload decoded as %+v", doc)
	}
}
