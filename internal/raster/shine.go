package raster

import (
	"bytes"
	"context"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"
)

// Amount of lightening and blur applied to shine band rasters.
const (
	shineLift = 0.6 // fraction of remaining headroom added per channel
	shineBlur = 4.0 // gaussian sigma
)

// Shine derives the highlight raster for a layer: the source image
// lifted towards white and gaussian-blurred, alpha preserved. Satisfies
// the synthesizer's ShineSource.
func (r *Renderer) Shine(ctx context.Context, raster []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}

	lift := func(c uint8) uint8 {
		return c + uint8(float64(255-c)*shineLift)
	}
	lightened := imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: lift(c.R), G: lift(c.G), B: lift(c.B), A: c.A}
	})

	return encodePNG(imaging.Blur(lightened, shineBlur))
}
