package synth

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ivlev/svgapatch/internal/svga"
)

// Shine band geometry. Each band is a parallelogram tilted 30 degrees
// that sweeps left to right across the target rectangle; three copies
// with fixed offsets and alphas overlap into a soft highlight.
const (
	bandWidthRatio  = 0.4  // band width relative to target width, scaled by intensity
	bandTiltDegrees = 30.0 // lean of the parallelogram
	bandSpreadRatio = 0.05 // leading/trailing band offset relative to target width
)

var bandAlphas = [3]float64{0.3, 0.9, 0.3}

// shineBands returns the three band sprites in leading, center,
// trailing order. ImageKey is filled in by the caller.
func shineBands(target svga.Rect, total int, opts Options) []svga.Sprite {
	spread := target.Width * bandSpreadRatio
	offsets := [3]float64{-spread, 0, spread}

	bands := make([]svga.Sprite, 0, len(offsets))
	for i := range offsets {
		bands = append(bands, svga.Sprite{
			Frames: bandFrames(target, total, opts, offsets[i], bandAlphas[i]),
		})
	}
	return bands
}

func bandFrames(target svga.Rect, total int, opts Options, bandOffset, alpha float64) []svga.Frame {
	frames := make([]svga.Frame, 0, total)

	width, height := target.Width, target.Height
	if width <= 0 || height <= 0 {
		for i := 0; i < total; i++ {
			frames = append(frames, svga.Frame{Transform: svga.Identity()})
		}
		return frames
	}

	bandWidth := width * bandWidthRatio * opts.Intensity
	xOffset := height * math.Tan(bandTiltDegrees*math.Pi/180)
	// Travel starts with the band fully off the left edge and ends fully
	// off the right edge, tilt included.
	travel := width + 2*bandWidth + 2*xOffset

	for i := 0; i < total; i++ {
		progress := math.Mod(float64(i)/float64(total)*opts.Cycles, 1.0)
		cx := (-bandWidth - xOffset) + travel*progress + bandOffset

		frames = append(frames, svga.Frame{
			Alpha:  alpha,
			Layout: svga.Rect{Width: width, Height: height},
			Transform: svga.Transform{
				A:  1,
				D:  1,
				TX: target.X,
				TY: target.Y,
			},
			ClipPath: bandClipPath(cx, xOffset, bandWidth, height),
		})
	}
	return frames
}

// bandClipPath builds the SVG path of one parallelogram: top edge shifted
// right by the tilt offset, bottom edge shifted left.
func bandClipPath(cx, xOffset, bandWidth, height float64) string {
	half := bandWidth / 2
	return fmt.Sprintf("M %s 0 L %s 0 L %s %s L %s %s Z",
		num(cx+xOffset-half),
		num(cx+xOffset+half),
		num(cx-xOffset+half), num(height),
		num(cx-xOffset-half), num(height),
	)
}

// num formats a path coordinate without exponent notation and without
// trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
