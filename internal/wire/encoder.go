package wire

import (
	"encoding/base64"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/ivlev/svgapatch/internal/sanitize"
	"github.com/ivlev/svgapatch/internal/svga"
)

// EncodeOptions control serialization of a document.
type EncodeOptions struct {
	// Compress wraps the serialized bytes in a zlib stream at level 6.
	Compress bool
}

// Encode normalizes and serializes a document.
//
// The document is rebuilt through the sanitize package first: keys are
// rewritten to the wire charset, dangling image and matte references are
// bound to the transparent fallback pixel, numeric fields go through the
// field policies and the version string is pinned. The repairs applied
// during normalization are returned for the caller to surface; they are
// advisory and never abort the encode. Any real failure discards all
// output, so a returned buffer is always complete.
func (c *Codec) Encode(doc *svga.Document, opts EncodeOptions) ([]byte, []sanitize.Repair, error) {
	clean, repairs := sanitize.Document(doc)

	msg, err := c.messageFromDocument(clean)
	if err != nil {
		return nil, nil, err
	}

	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		return nil, nil, err
	}

	if opts.Compress {
		data, err = deflate(data)
		if err != nil {
			return nil, nil, err
		}
	}
	return data, repairs, nil
}

func setStr(m protoreflect.Message, name protoreflect.Name, v string) {
	if v != "" {
		m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfString(v))
	}
}

func setF32(m protoreflect.Message, name protoreflect.Name, v float64) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfFloat32(float32(v)))
}

func setI32(m protoreflect.Message, name protoreflect.Name, v int) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfInt32(int32(v)))
}

func setEnum(m protoreflect.Message, name protoreflect.Name, v int32) {
	m.Set(m.Descriptor().Fields().ByName(name), protoreflect.ValueOfEnum(protoreflect.EnumNumber(v)))
}

func mutable(m protoreflect.Message, name protoreflect.Name) protoreflect.Message {
	return m.Mutable(m.Descriptor().Fields().ByName(name)).Message()
}

func (c *Codec) messageFromDocument(doc *svga.Document) (*dynamicpb.Message, error) {
	msg := dynamicpb.NewMessage(c.schema.Movie)
	m := msg.ProtoReflect()

	setStr(m, "version", doc.Version)

	pm := mutable(m, "params")
	setF32(pm, "viewBoxWidth", doc.Params.ViewBoxWidth)
	setF32(pm, "viewBoxHeight", doc.Params.ViewBoxHeight)
	setI32(pm, "fps", doc.Params.FPS)
	setI32(pm, "frames", doc.Params.Frames)

	images := m.Mutable(m.Descriptor().Fields().ByName("images")).Map()
	for key, b64 := range doc.Images {
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			// sanitize.Document replaces undecodable assets, so this is
			// a caller bug rather than bad input.
			return nil, fmt.Errorf("image %q: %w", key, err)
		}
		images.Set(protoreflect.ValueOfString(key).MapKey(), protoreflect.ValueOfBytes(raw))
	}

	sprites := m.Mutable(m.Descriptor().Fields().ByName("sprites")).List()
	for i := range doc.Sprites {
		el := sprites.NewElement()
		spriteToMessage(el.Message(), &doc.Sprites[i])
		sprites.Append(el)
	}

	audios := m.Mutable(m.Descriptor().Fields().ByName("audios")).List()
	for _, a := range doc.Audios {
		el := audios.NewElement()
		am := el.Message()
		setStr(am, "audioKey", a.AudioKey)
		setI32(am, "startFrame", int(a.StartFrame))
		setI32(am, "endFrame", int(a.EndFrame))
		setI32(am, "startTime", int(a.StartTime))
		setI32(am, "totalTime", int(a.TotalTime))
		audios.Append(el)
	}

	return msg, nil
}

func spriteToMessage(m protoreflect.Message, sprite *svga.Sprite) {
	setStr(m, "imageKey", sprite.ImageKey)
	setStr(m, "matteKey", sprite.MatteKey)
	frames := m.Mutable(m.Descriptor().Fields().ByName("frames")).List()
	for i := range sprite.Frames {
		el := frames.NewElement()
		frameToMessage(el.Message(), &sprite.Frames[i])
		frames.Append(el)
	}
}

func frameToMessage(m protoreflect.Message, frame *svga.Frame) {
	setF32(m, "alpha", frame.Alpha)
	rectToMessage(mutable(m, "layout"), frame.Layout)
	transformToMessage(mutable(m, "transform"), frame.Transform)
	setStr(m, "clipPath", frame.ClipPath)
	shapes := m.Mutable(m.Descriptor().Fields().ByName("shapes")).List()
	for i := range frame.Shapes {
		el := shapes.NewElement()
		shapeToMessage(el.Message(), &frame.Shapes[i])
		shapes.Append(el)
	}
}

func rectToMessage(m protoreflect.Message, r svga.Rect) {
	setF32(m, "x", r.X)
	setF32(m, "y", r.Y)
	setF32(m, "width", r.Width)
	setF32(m, "height", r.Height)
}

func transformToMessage(m protoreflect.Message, t svga.Transform) {
	setF32(m, "a", t.A)
	setF32(m, "b", t.B)
	setF32(m, "c", t.C)
	setF32(m, "d", t.D)
	setF32(m, "tx", t.TX)
	setF32(m, "ty", t.TY)
}

func shapeToMessage(m protoreflect.Message, shape *svga.Shape) {
	setEnum(m, "type", int32(shape.Type))
	switch {
	case shape.Path != nil:
		setStr(mutable(m, "shape"), "d", shape.Path.D)
	case shape.Rect != nil:
		rm := mutable(m, "rect")
		setF32(rm, "x", shape.Rect.X)
		setF32(rm, "y", shape.Rect.Y)
		setF32(rm, "width", shape.Rect.Width)
		setF32(rm, "height", shape.Rect.Height)
		setF32(rm, "cornerRadius", shape.Rect.CornerRadius)
	case shape.Ellipse != nil:
		em := mutable(m, "ellipse")
		setF32(em, "x", shape.Ellipse.X)
		setF32(em, "y", shape.Ellipse.Y)
		setF32(em, "radiusX", shape.Ellipse.RadiusX)
		setF32(em, "radiusY", shape.Ellipse.RadiusY)
	}
	if shape.Styles != nil {
		styleToMessage(mutable(m, "styles"), shape.Styles)
	}
	if shape.Transform != nil {
		transformToMessage(mutable(m, "transform"), *shape.Transform)
	}
}

func styleToMessage(m protoreflect.Message, style *svga.ShapeStyle) {
	if style.Fill != nil {
		colorToMessage(mutable(m, "fill"), *style.Fill)
	}
	if style.Stroke != nil {
		colorToMessage(mutable(m, "stroke"), *style.Stroke)
	}
	setF32(m, "strokeWidth", style.StrokeWidth)
	setEnum(m, "lineCap", int32(style.LineCap))
	setEnum(m, "lineJoin", int32(style.LineJoin))
	setF32(m, "miterLimit", style.MiterLimit)
	dashes := m.Mutable(m.Descriptor().Fields().ByName("lineDash")).List()
	for _, v := range style.LineDash {
		dashes.Append(protoreflect.ValueOfFloat32(float32(v)))
	}
}

func colorToMessage(m protoreflect.Message, c svga.Color) {
	setF32(m, "r", c.R)
	setF32(m, "g", c.G)
	setF32(m, "b", c.B)
	setF32(m, "a", c.A)
}
