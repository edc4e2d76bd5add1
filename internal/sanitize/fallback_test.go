package sanitize

import (
	"bytes"
	"image/png"
	"testing"
)

func TestTransparentPixelIsValidPNG(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(TransparentPixel))
	if err != nil {
		t.Fatalf("fallback pixel does not decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("fallback pixel is %dx%d, want 1x1", b.Dx(), b.Dy())
	}
	_, _, _, a := img.At(b.Min.X, b.Min.Y).RGBA()
	if a != 0 {
		t.Errorf("fallback pixel alpha = %d, want 0", a)
	}
}
