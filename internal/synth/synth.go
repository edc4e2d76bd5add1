// Package synth procedurally builds new animation layers and splices
// them into a document.
//
// A synthesized layer is one main sprite carrying the supplied raster,
// optionally animated by the pulse (scale breathing) and float (vertical
// bob) presets, plus three shine band sprites sweeping a tilted
// highlight across the target rectangle. All frame geometry is pure
// math over the document's frame count; the only effectful step is
// deriving the shine raster, which happens before the frame loops run.
//
// Documents are never mutated: every call clones the image table and
// sprite list and returns a new snapshot.
package synth

import (
	"context"
	"encoding/base64"
	"math"

	"github.com/ivlev/svgapatch/internal/raster"
	"github.com/ivlev/svgapatch/internal/sanitize"
	"github.com/ivlev/svgapatch/internal/svga"
)

// Preset is a bitmask of procedural motion effects.
type Preset uint8

const (
	PresetPulse Preset = 1 << iota // sinusoidal scale around 1
	PresetFloat                    // sinusoidal vertical offset
	PresetShine                    // three-band highlight sweep
)

// Has reports whether q is selected in p.
func (p Preset) Has(q Preset) bool { return p&q != 0 }

// Amplitudes of the motion presets, scaled by Options.Intensity.
const (
	pulseAmplitude = 0.05
	floatAmplitude = 6.0
)

// Options configure one synthesized layer.
type Options struct {
	Presets   Preset
	Cycles    float64 // effect repetitions over the movie, > 0
	Intensity float64 // effect amplitude multiplier, > 0
}

func (o Options) normalized() Options {
	if !(o.Cycles > 0) {
		o.Cycles = 1
	}
	if !(o.Intensity > 0) {
		o.Intensity = 1
	}
	return o
}

// ShineSource derives the tinted, blurred raster the shine bands share.
// It is the synthesizer's one I/O boundary.
type ShineSource interface {
	Shine(ctx context.Context, raster []byte) ([]byte, error)
}

// Synthesizer appends procedurally animated layers to documents.
type Synthesizer struct {
	// Shine derives band rasters. When nil, or when derivation fails,
	// bands reuse the base raster; a missing highlight never aborts a
	// patch.
	Shine ShineSource
}

// Synthesize returns a new document with the layer's sprites appended.
//
// The key is sanitized to the asset charset and bound to the supplied
// raster bytes, or to a fully transparent raster sized to the target
// rectangle when none are given. The main sprite gets one frame per
// movie frame; with the shine preset selected, three further band
// sprites are appended in leading, center, trailing order. The input
// document is left untouched.
func (s *Synthesizer) Synthesize(ctx context.Context, doc *svga.Document, target svga.Rect, key string, rasterBytes []byte, opts Options) (*svga.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key = sanitize.Key(key)
	opts = opts.normalized()

	if len(rasterBytes) == 0 {
		rasterBytes = raster.TransparentPNG(int(target.Width), int(target.Height))
	}

	shineRaster := rasterBytes
	if opts.Presets.Has(PresetShine) && s.Shine != nil {
		if derived, err := s.Shine.Shine(ctx, rasterBytes); err == nil && len(derived) > 0 {
			shineRaster = derived
		}
	}

	out := doc.Clone()
	out.Images[key] = base64.StdEncoding.EncodeToString(rasterBytes)

	total := out.Params.Frames
	out.Sprites = append(out.Sprites, svga.Sprite{
		ImageKey: key,
		Frames:   mainFrames(target, total, opts),
	})

	if opts.Presets.Has(PresetShine) {
		shineKey := key + "_shine"
		out.Images[shineKey] = base64.StdEncoding.EncodeToString(shineRaster)
		for _, band := range shineBands(target, total, opts) {
			band.ImageKey = shineKey
			out.Sprites = append(out.Sprites, band)
		}
	}

	return out, nil
}

func mainFrames(target svga.Rect, total int, opts Options) []svga.Frame {
	frames := make([]svga.Frame, 0, total)

	if target.Width <= 0 || target.Height <= 0 {
		for i := 0; i < total; i++ {
			frames = append(frames, svga.Frame{Transform: svga.Identity()})
		}
		return frames
	}

	for i := 0; i < total; i++ {
		progress := float64(i) / float64(total)
		theta := progress * 2 * math.Pi * opts.Cycles

		scale := 1.0
		if opts.Presets.Has(PresetPulse) {
			scale = 1 + math.Sin(theta)*pulseAmplitude*opts.Intensity
		}
		offsetY := 0.0
		if opts.Presets.Has(PresetFloat) {
			offsetY = math.Sin(theta) * floatAmplitude * opts.Intensity
		}

		frames = append(frames, svga.Frame{
			Alpha:  1,
			Layout: svga.Rect{Width: target.Width, Height: target.Height},
			Transform: svga.Transform{
				A:  scale,
				D:  scale,
				TX: target.X + target.Width*(1-scale)/2,
				TY: target.Y + target.Height*(1-scale)/2 + offsetY,
			},
		})
	}
	return frames
}
