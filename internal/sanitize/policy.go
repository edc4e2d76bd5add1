// Package sanitize normalizes a document before wire encoding.
//
// Two numeric policies apply. Layout rectangles and transform
// translations go through the epsilon-nonzero policy: proto3 drops
// zero-valued fields from the wire, and several native players treat a
// frame with a missing layout field as malformed, so near-zero values
// are bumped to a sign-matching 0.00001 that forces field presence.
// Every other numeric field goes through the safe-float policy, which
// only guards against NaN/Inf and preserves true zero.
//
// Structural sub-objects are rebuilt field by field under one of the two
// policies; nothing supplied by the caller is forwarded as-is.
package sanitize

import (
	"encoding/base64"
	"math"

	"github.com/ivlev/svgapatch/internal/svga"
)

// Epsilon is the substitute magnitude for near-zero presence-forced fields.
const Epsilon = 0.00001

// EpsilonNonzero bumps values with |v| <= Epsilon to a sign-matching
// Epsilon. Applied only to layout rectangles and transform translations.
func EpsilonNonzero(v float64) float64 {
	if math.IsNaN(v) {
		return Epsilon
	}
	if math.Abs(v) <= Epsilon {
		if math.Signbit(v) && v != 0 {
			return -Epsilon
		}
		return Epsilon
	}
	return v
}

// SafeFloat passes v through unless it is NaN or infinite, in which case
// def is substituted. True zero survives.
func SafeFloat(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// Rect rebuilds a layout rectangle under the epsilon-nonzero policy.
func RectFields(r svga.Rect) svga.Rect {
	return svga.Rect{
		X:      EpsilonNonzero(SafeFloat(r.X, 0)),
		Y:      EpsilonNonzero(SafeFloat(r.Y, 0)),
		Width:  EpsilonNonzero(SafeFloat(r.Width, 0)),
		Height: EpsilonNonzero(SafeFloat(r.Height, 0)),
	}
}

// TransformFields rebuilds a transform: scale/skew under safe-float with
// identity defaults, translation under epsilon-nonzero.
func TransformFields(t svga.Transform) svga.Transform {
	return svga.Transform{
		A:  SafeFloat(t.A, 1),
		B:  SafeFloat(t.B, 0),
		C:  SafeFloat(t.C, 0),
		D:  SafeFloat(t.D, 1),
		TX: EpsilonNonzero(SafeFloat(t.TX, 0)),
		TY: EpsilonNonzero(SafeFloat(t.TY, 0)),
	}
}

// ColorFields rebuilds an RGBA color under safe-float.
func ColorFields(c svga.Color) svga.Color {
	return svga.Color{
		R: SafeFloat(c.R, 0),
		G: SafeFloat(c.G, 0),
		B: SafeFloat(c.B, 0),
		A: SafeFloat(c.A, 0),
	}
}

// StyleFields rebuilds a shape style under safe-float.
func StyleFields(s svga.ShapeStyle) svga.ShapeStyle {
	out := svga.ShapeStyle{
		StrokeWidth: SafeFloat(s.StrokeWidth, 0),
		LineCap:     s.LineCap,
		LineJoin:    s.LineJoin,
		MiterLimit:  SafeFloat(s.MiterLimit, 0),
	}
	if s.Fill != nil {
		fill := ColorFields(*s.Fill)
		out.Fill = &fill
	}
	if s.Stroke != nil {
		stroke := ColorFields(*s.Stroke)
		out.Stroke = &stroke
	}
	if len(s.LineDash) > 0 {
		out.LineDash = make([]float64, len(s.LineDash))
		for i, v := range s.LineDash {
			out.LineDash[i] = SafeFloat(v, 0)
		}
	}
	return out
}

// ShapeFields rebuilds one shape. A path-draw shape with no path data is
// reclassified as the no-op keep variant instead of emitting an empty path.
func ShapeFields(s svga.Shape) svga.Shape {
	out := svga.Shape{Type: s.Type}
	switch s.Type {
	case svga.ShapePath:
		if s.Path == nil || s.Path.D == "" {
			out.Type = svga.ShapeKeep
		} else {
			out.Path = &svga.PathArgs{D: s.Path.D}
		}
	case svga.ShapeRect:
		var r svga.RectArgs
		if s.Rect != nil {
			r = *s.Rect
		}
		out.Rect = &svga.RectArgs{
			X:            SafeFloat(r.X, 0),
			Y:            SafeFloat(r.Y, 0),
			Width:        SafeFloat(r.Width, 0),
			Height:       SafeFloat(r.Height, 0),
			CornerRadius: SafeFloat(r.CornerRadius, 0),
		}
	case svga.ShapeEllipse:
		var e svga.EllipseArgs
		if s.Ellipse != nil {
			e = *s.Ellipse
		}
		out.Ellipse = &svga.EllipseArgs{
			X:       SafeFloat(e.X, 0),
			Y:       SafeFloat(e.Y, 0),
			RadiusX: SafeFloat(e.RadiusX, 0),
			RadiusY: SafeFloat(e.RadiusY, 0),
		}
	}
	if s.Styles != nil {
		styles := StyleFields(*s.Styles)
		out.Styles = &styles
	}
	if s.Transform != nil {
		tf := TransformFields(*s.Transform)
		out.Transform = &tf
	}
	return out
}

// FrameFields rebuilds one frame under both policies.
func FrameFields(f svga.Frame) svga.Frame {
	out := svga.Frame{
		Alpha:     clamp01(SafeFloat(f.Alpha, 0)),
		Layout:    RectFields(f.Layout),
		Transform: TransformFields(f.Transform),
		ClipPath:  f.ClipPath,
	}
	if len(f.Shapes) > 0 {
		out.Shapes = make([]svga.Shape, len(f.Shapes))
		for i, s := range f.Shapes {
			out.Shapes[i] = ShapeFields(s)
		}
	}
	return out
}

// Document rebuilds the whole document: sanitized asset keys, repaired
// references, policy-normalized numeric fields, rounded audio cues and a
// pinned version string. The input is left untouched. The repairs slice
// records every fix applied; it is empty for already-clean documents.
func Document(doc *svga.Document) (*svga.Document, []Repair) {
	var repairs []Repair
	keys := NewKeyRegistry()

	out := &svga.Document{
		Version: svga.Version,
		Params: svga.Params{
			ViewBoxWidth:  SafeFloat(doc.Params.ViewBoxWidth, 0),
			ViewBoxHeight: SafeFloat(doc.Params.ViewBoxHeight, 0),
			FPS:           doc.Params.FPS,
			Frames:        doc.Params.Frames,
		},
		Images: make(map[string]string, len(doc.Images)),
	}

	fallback := base64.StdEncoding.EncodeToString(TransparentPixel)

	for key, data := range doc.Images {
		clean := keys.Rename(key)
		if keys.Changed(key) {
			repairs = append(repairs, Repair{Kind: RepairRenamedKey, Key: key, Detail: "now " + clean})
		}
		if data == "" {
			out.Images[clean] = fallback
			repairs = append(repairs, Repair{Kind: RepairBadImageData, Key: clean, Detail: "empty asset"})
			continue
		}
		if _, err := base64.StdEncoding.DecodeString(data); err != nil {
			out.Images[clean] = fallback
			repairs = append(repairs, Repair{Kind: RepairBadImageData, Key: clean, Detail: err.Error()})
			continue
		}
		out.Images[clean] = data
	}

	out.Sprites = make([]svga.Sprite, len(doc.Sprites))
	for i, sprite := range doc.Sprites {
		imageKey := keys.Resolve(sprite.ImageKey)
		if _, ok := out.Images[imageKey]; !ok {
			out.Images[imageKey] = fallback
			repairs = append(repairs, Repair{Kind: RepairDanglingRef, Key: imageKey, Detail: "imageKey"})
		}
		matteKey := ""
		if sprite.MatteKey != "" {
			matteKey = keys.Resolve(sprite.MatteKey)
			if _, ok := out.Images[matteKey]; !ok {
				out.Images[matteKey] = fallback
				repairs = append(repairs, Repair{Kind: RepairDanglingRef, Key: matteKey, Detail: "matteKey"})
			}
		}
		frames := make([]svga.Frame, len(sprite.Frames))
		for j, f := range sprite.Frames {
			frames[j] = FrameFields(f)
		}
		out.Sprites[i] = svga.Sprite{ImageKey: imageKey, MatteKey: matteKey, Frames: frames}
	}

	if len(doc.Audios) > 0 {
		out.Audios = make([]svga.Audio, len(doc.Audios))
		for i, a := range doc.Audios {
			out.Audios[i] = svga.Audio{
				AudioKey:   Key(a.AudioKey),
				StartFrame: math.Round(SafeFloat(a.StartFrame, 0)),
				EndFrame:   math.Round(SafeFloat(a.EndFrame, 0)),
				StartTime:  math.Round(SafeFloat(a.StartTime, 0)),
				TotalTime:  math.Round(SafeFloat(a.TotalTime, 0)),
			}
		}
	}

	return out, repairs
}
