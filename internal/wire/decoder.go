package wire

import (
	"encoding/base64"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/ivlev/svgapatch/internal/svga"
)

// Decode parses raw container bytes into a document.
//
// A payload starting with the ZIP signature is the legacy 1.x archive
// format and is rejected outright, before any decompression attempt.
// Everything else goes through the inflate fallback chain and is then
// parsed against the movie descriptor. Parse failures carry a
// DecodeError noting whether decompression succeeded, so a truncated
// stream can be told apart from a non-conforming payload. No partial
// document is ever returned.
func (c *Codec) Decode(data []byte) (*svga.Document, error) {
	if len(data) >= 2 && data[0] == 0x50 && data[1] == 0x4B {
		return nil, ErrUnsupportedLegacyFormat
	}

	payload, inflated := inflate(data)

	msg := dynamicpb.NewMessage(c.schema.Movie)
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, &DecodeError{Inflated: inflated, Err: err}
	}

	return documentFromMessage(msg), nil
}

func get(m protoreflect.Message, name protoreflect.Name) protoreflect.Value {
	return m.Get(m.Descriptor().Fields().ByName(name))
}

func hasField(m protoreflect.Message, name protoreflect.Name) bool {
	fd := m.Descriptor().Fields().ByName(name)
	return fd != nil && m.Has(fd)
}

// documentFromMessage converts the parsed wire message into the
// canonical model. Unset optional numbers take their declared defaults
// (an absent transform is the identity, an absent layout the zero rect)
// and image bytes become base64 text for JSON/UI interchange.
func documentFromMessage(msg protoreflect.Message) *svga.Document {
	doc := &svga.Document{
		Version: get(msg, "version").String(),
		Images:  map[string]string{},
	}

	if hasField(msg, "params") {
		pm := get(msg, "params").Message()
		doc.Params = svga.Params{
			ViewBoxWidth:  get(pm, "viewBoxWidth").Float(),
			ViewBoxHeight: get(pm, "viewBoxHeight").Float(),
			FPS:           int(get(pm, "fps").Int()),
			Frames:        int(get(pm, "frames").Int()),
		}
	}

	get(msg, "images").Map().Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
		doc.Images[k.String()] = base64.StdEncoding.EncodeToString(v.Bytes())
		return true
	})

	sprites := get(msg, "sprites").List()
	for i := 0; i < sprites.Len(); i++ {
		doc.Sprites = append(doc.Sprites, spriteFromMessage(sprites.Get(i).Message()))
	}

	audios := get(msg, "audios").List()
	for i := 0; i < audios.Len(); i++ {
		am := audios.Get(i).Message()
		doc.Audios = append(doc.Audios, svga.Audio{
			AudioKey:   get(am, "audioKey").String(),
			StartFrame: float64(get(am, "startFrame").Int()),
			EndFrame:   float64(get(am, "endFrame").Int()),
			StartTime:  float64(get(am, "startTime").Int()),
			TotalTime:  float64(get(am, "totalTime").Int()),
		})
	}

	return doc
}

func spriteFromMessage(m protoreflect.Message) svga.Sprite {
	sprite := svga.Sprite{
		ImageKey: get(m, "imageKey").String(),
		MatteKey: get(m, "matteKey").String(),
	}
	frames := get(m, "frames").List()
	for i := 0; i < frames.Len(); i++ {
		sprite.Frames = append(sprite.Frames, frameFromMessage(frames.Get(i).Message()))
	}
	return sprite
}

func frameFromMessage(m protoreflect.Message) svga.Frame {
	frame := svga.Frame{
		Alpha:     get(m, "alpha").Float(),
		Transform: svga.Identity(),
		ClipPath:  get(m, "clipPath").String(),
	}
	if hasField(m, "layout") {
		frame.Layout = rectFromMessage(get(m, "layout").Message())
	}
	if hasField(m, "transform") {
		frame.Transform = transformFromMessage(get(m, "transform").Message())
	}
	shapes := get(m, "shapes").List()
	for i := 0; i < shapes.Len(); i++ {
		frame.Shapes = append(frame.Shapes, shapeFromMessage(shapes.Get(i).Message()))
	}
	return frame
}

func rectFromMessage(m protoreflect.Message) svga.Rect {
	return svga.Rect{
		X:      get(m, "x").Float(),
		Y:      get(m, "y").Float(),
		Width:  get(m, "width").Float(),
		Height: get(m, "height").Float(),
	}
}

func transformFromMessage(m protoreflect.Message) svga.Transform {
	return svga.Transform{
		A:  get(m, "a").Float(),
		B:  get(m, "b").Float(),
		C:  get(m, "c").Float(),
		D:  get(m, "d").Float(),
		TX: get(m, "tx").Float(),
		TY: get(m, "ty").Float(),
	}
}

func shapeFromMessage(m protoreflect.Message) svga.Shape {
	shape := svga.Shape{
		Type: svga.ShapeType(get(m, "type").Enum()),
	}

	if which := m.WhichOneof(m.Descriptor().Oneofs().ByName("args")); which != nil {
		args := m.Get(which).Message()
		switch which.Name() {
		case "shape":
			shape.Path = &svga.PathArgs{D: get(args, "d").String()}
		case "rect":
			shape.Rect = &svga.RectArgs{
				X:            get(args, "x").Float(),
				Y:            get(args, "y").Float(),
				Width:        get(args, "width").Float(),
				Height:       get(args, "height").Float(),
				CornerRadius: get(args, "cornerRadius").Float(),
			}
		case "ellipse":
			shape.Ellipse = &svga.EllipseArgs{
				X:       get(args, "x").Float(),
				Y:       get(args, "y").Float(),
				RadiusX: get(args, "radiusX").Float(),
				RadiusY: get(args, "radiusY").Float(),
			}
		}
	}

	if hasField(m, "styles") {
		styles := styleFromMessage(get(m, "styles").Message())
		shape.Styles = &styles
	}
	if hasField(m, "transform") {
		tf := transformFromMessage(get(m, "transform").Message())
		shape.Transform = &tf
	}
	return shape
}

func styleFromMessage(m protoreflect.Message) svga.ShapeStyle {
	style := svga.ShapeStyle{
		StrokeWidth: get(m, "strokeWidth").Float(),
		LineCap:     svga.LineCap(get(m, "lineCap").Enum()),
		LineJoin:    svga.LineJoin(get(m, "lineJoin").Enum()),
		MiterLimit:  get(m, "miterLimit").Float(),
	}
	if hasField(m, "fill") {
		fill := colorFromMessage(get(m, "fill").Message())
		style.Fill = &fill
	}
	if hasField(m, "stroke") {
		stroke := colorFromMessage(get(m, "stroke").Message())
		style.Stroke = &stroke
	}
	dashes := get(m, "lineDash").List()
	for i := 0; i < dashes.Len(); i++ {
		style.LineDash = append(style.LineDash, dashes.Get(i).Float())
	}
	return style
}

func colorFromMessage(m protoreflect.Message) svga.Color {
	return svga.Color{
		R: get(m, "r").Float(),
		G: get(m, "g").Float(),
		B: get(m, "b").Float(),
		A: get(m, "a").Float(),
	}
}
