// Package raster is the bitmap producer behind the layer synthesizer:
// it turns layer content (text, an uploaded image, a PDF page, a QR
// payload) into encoded PNG bytes sized for a target rectangle, and
// derives the tinted, blurred variant the shine bands use.
//
// The codec and synthesizer treat these bytes as opaque; nothing in this
// package touches the wire format.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ivlev/svgapatch/internal/sanitize"
)

// Kind selects the content source of a layer raster.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
	KindQR    Kind = "qr"
)

// Request describes one raster to produce.
type Request struct {
	Kind   Kind
	Text   string // KindText body or KindQR payload
	Data   []byte // KindImage / KindPDF source bytes
	Page   int    // KindPDF page index, zero-based
	Width  int
	Height int
	Style  TextStyle // KindText only
}

// Renderer produces layer rasters. The zero value is ready to use.
type Renderer struct{}

// Produce renders the request into PNG bytes of exactly Width x Height.
// Degenerate sizes yield the transparent fallback pixel rather than an
// error; bad source data is an error for the caller to repair.
func (r *Renderer) Produce(ctx context.Context, req Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Width < 1 || req.Height < 1 {
		return sanitize.TransparentPixel, nil
	}

	switch req.Kind {
	case KindText:
		img, err := renderText(req)
		if err != nil {
			return nil, err
		}
		return encodePNG(img)
	case KindImage:
		img, err := imaging.Decode(bytes.NewReader(req.Data))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return encodePNG(compose(img, req.Width, req.Height))
	case KindPDF:
		img, err := renderPDFPage(req.Data, req.Page)
		if err != nil {
			return nil, err
		}
		return encodePNG(compose(img, req.Width, req.Height))
	case KindQR:
		return renderQR(req)
	default:
		return nil, fmt.Errorf("unknown raster kind %q", req.Kind)
	}
}

// compose fits img into a transparent w x h canvas, preserving aspect.
func compose(img image.Image, w, h int) *image.NRGBA {
	canvas := imaging.New(w, h, color.NRGBA{})
	fitted := imaging.Fit(img, w, h, imaging.Lanczos)
	return imaging.PasteCenter(canvas, fitted)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TransparentPNG returns a fully transparent raster of the given size,
// or the 1x1 fallback pixel when the size is degenerate.
func TransparentPNG(w, h int) []byte {
	if w < 1 || h < 1 {
		return sanitize.TransparentPixel
	}
	out, err := encodePNG(imaging.New(w, h, color.NRGBA{}))
	if err != nil {
		return sanitize.TransparentPixel
	}
	return out
}
