// Package wire implements the SVGA 2.0 binary container codec: zlib
// deflated protobuf bytes, decoded into and encoded from the canonical
// model in internal/svga.
//
// The message descriptors are not generated from a .proto file; they are
// declared here as a descriptorpb file and resolved through protodesc at
// first use, then driven via dynamicpb. Field numbers follow the
// published 2.0 wire spec. Repeated float fields are declared unpacked
// because several native players cannot parse packed encodings.
package wire

import (
	"fmt"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

const schemaPackage = "com.opensource.svga"

// Schema holds the resolved root descriptor of the movie container.
type Schema struct {
	File  protoreflect.FileDescriptor
	Movie protoreflect.MessageDescriptor
}

var (
	schemaOnce sync.Once
	schemaVal  *Schema
	schemaErr  error
)

// loadSchema resolves the descriptors once per process. The first caller
// wins; everyone else observes the cached result.
func loadSchema() (*Schema, error) {
	schemaOnce.Do(func() {
		schemaVal, schemaErr = buildSchema()
	})
	if schemaErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, schemaErr)
	}
	return schemaVal, nil
}

// Codec binds decode and encode operations to the resolved schema.
// Construct one at startup and pass it to everything that touches the
// wire format; construction fails with ErrDependencyUnavailable when the
// descriptors cannot be resolved.
type Codec struct {
	schema *Schema
}

// NewCodec resolves the SVGA 2.0 schema and returns a codec bound to it.
func NewCodec() (*Codec, error) {
	s, err := loadSchema()
	if err != nil {
		return nil, err
	}
	return &Codec{schema: s}, nil
}

func buildSchema() (*Schema, error) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("svga.proto"),
		Package: proto.String(schemaPackage),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			movieEntityDesc(),
			movieParamsDesc(),
			spriteEntityDesc(),
			audioEntityDesc(),
			frameEntityDesc(),
			layoutDesc(),
			transformDesc(),
			shapeEntityDesc(),
		},
		EnumType: []*descriptorpb.EnumDescriptorProto{
			enumDesc("ShapeType", "SHAPE", "RECT", "ELLIPSE", "KEEP"),
			enumDesc("LineCap", "LineCap_BUTT", "LineCap_ROUND", "LineCap_SQUARE"),
			enumDesc("LineJoin", "LineJoin_MITER", "LineJoin_ROUND", "LineJoin_BEVEL"),
		},
	}

	fd, err := protodesc.NewFile(file, nil)
	if err != nil {
		return nil, err
	}
	movie := fd.Messages().ByName("MovieEntity")
	if movie == nil {
		return nil, fmt.Errorf("schema is missing MovieEntity")
	}
	return &Schema{File: fd, Movie: movie}, nil
}

func movieEntityDesc() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String("MovieEntity"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalar("version", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			message("params", 2, "MovieParams"),
			repeatedMessage("images", 3, "MovieEntity.ImagesEntry"),
			repeatedMessage("sprites", 4, "SpriteEntity"),
			repeatedMessage("audios", 5, "AudioEntity"),
		},
		NestedType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("ImagesEntry"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
					scalar("value", 2, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
				},
				Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
			},
		},
	}
}

func movieParamsDesc() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String("MovieParams"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalar("viewBoxWidth", 1, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("viewBoxHeight", 2, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("fps", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			scalar("frames", 4, descriptorpb.FieldDescriptorProto_TYPE_INT32),
		},
	}
}

func spriteEntityDesc() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String("SpriteEntity"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalar("imageKey", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			repeatedMessage("frames", 2, "FrameEntity"),
			scalar("matteKey", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
		},
	}
}

func audioEntityDesc() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String("AudioEntity"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalar("audioKey", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			scalar("startFrame", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			scalar("endFrame", 3, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			scalar("startTime", 4, descriptorpb.FieldDescriptorProto_TYPE_INT32),
			scalar("totalTime", 5, descriptorpb.FieldDescriptorProto_TYPE_INT32),
		},
	}
}

func frameEntityDesc() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String("FrameEntity"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalar("alpha", 1, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			message("layout", 2, "Layout"),
			message("transform", 3, "Transform"),
			scalar("clipPath", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			repeatedMessage("shapes", 5, "ShapeEntity"),
		},
	}
}

func layoutDesc() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String("Layout"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalar("x", 1, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("y", 2, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("width", 3, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("height", 4, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
		},
	}
}

func transformDesc() *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String("Transform"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalar("a", 1, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("b", 2, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("c", 3, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("d", 4, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("tx", 5, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
			scalar("ty", 6, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
		},
	}
}

func shapeEntityDesc() *descriptorpb.DescriptorProto {
	oneofArg := func(fd *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
		fd.OneofIndex = proto.Int32(0)
		return fd
	}
	return &descriptorpb.DescriptorProto{
		Name: proto.String("ShapeEntity"),
		Field: []*descriptorpb.FieldDescriptorProto{
			enum("type", 1, "ShapeType"),
			oneofArg(message("shape", 2, "ShapeEntity.ShapeArgs")),
			oneofArg(message("rect", 3, "ShapeEntity.RectArgs")),
			oneofArg(message("ellipse", 4, "ShapeEntity.EllipseArgs")),
			message("styles", 10, "ShapeEntity.ShapeStyle"),
			message("transform", 11, "Transform"),
		},
		OneofDecl: []*descriptorpb.OneofDescriptorProto{
			{Name: proto.String("args")},
		},
		NestedType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("ShapeArgs"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("d", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
			{
				Name: proto.String("RectArgs"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("x", 1, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					scalar("y", 2, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					scalar("width", 3, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					scalar("height", 4, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					scalar("cornerRadius", 5, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
				},
			},
			{
				Name: proto.String("EllipseArgs"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalar("x", 1, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					scalar("y", 2, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					scalar("radiusX", 3, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					scalar("radiusY", 4, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
				},
			},
			{
				Name: proto.String("ShapeStyle"),
				Field: []*descriptorpb.FieldDescriptorProto{
					message("fill", 1, "ShapeEntity.ShapeStyle.RGBAColor"),
					message("stroke", 2, "ShapeEntity.ShapeStyle.RGBAColor"),
					scalar("strokeWidth", 3, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					enum("lineCap", 4, "LineCap"),
					enum("lineJoin", 5, "LineJoin"),
					scalar("miterLimit", 6, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					unpackedFloats("lineDash", 7),
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("RGBAColor"),
						Field: []*descriptorpb.FieldDescriptorProto{
							scalar("r", 1, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
							scalar("g", 2, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
							scalar("b", 3, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
							scalar("a", 4, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
						},
					},
				},
			},
		},
	}
}

func scalar(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func message(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	fd := scalar(name, num, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	fd.TypeName = proto.String("." + schemaPackage + "." + typeName)
	return fd
}

func repeatedMessage(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	fd := message(name, num, typeName)
	fd.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return fd
}

func enum(name string, num int32, typeName string) *descriptorpb.FieldDescriptorProto {
	fd := scalar(name, num, descriptorpb.FieldDescriptorProto_TYPE_ENUM)
	fd.TypeName = proto.String("." + schemaPackage + "." + typeName)
	return fd
}

// unpackedFloats declares a repeated float field with packed=false: one
// wire entry per element, which is what the native players expect.
func unpackedFloats(name string, num int32) *descriptorpb.FieldDescriptorProto {
	fd := scalar(name, num, descriptorpb.FieldDescriptorProto_TYPE_FLOAT)
	fd.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	fd.Options = &descriptorpb.FieldOptions{Packed: proto.Bool(false)}
	return fd
}

func enumDesc(name string, values ...string) *descriptorpb.EnumDescriptorProto {
	ed := &descriptorpb.EnumDescriptorProto{Name: proto.String(name)}
	for i, v := range values {
		ed.Value = append(ed.Value, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(v),
			Number: proto.Int32(int32(i)),
		})
	}
	return ed
}
