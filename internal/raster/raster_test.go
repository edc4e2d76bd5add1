package raster

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"testing"

	"github.com/ivlev/svgapatch/internal/sanitize"
)

func decodePNG(t *testing.T, data []byte) (w, h int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestTransparentPNG(t *testing.T) {
	data := TransparentPNG(32, 16)
	if w, h := decodePNG(t, data); w != 32 || h != 16 {
		t.Errorf("size = %dx%d, want 32x16", w, h)
	}

	if !bytes.Equal(TransparentPNG(0, 10), sanitize.TransparentPixel) {
		t.Errorf("degenerate size must yield the fallback pixel")
	}
	if !bytes.Equal(TransparentPNG(-1, -1), sanitize.TransparentPixel) {
		t.Errorf("negative size must yield the fallback pixel")
	}
}

func TestProduceDegenerateSize(t *testing.T) {
	r := &Renderer{}
	out, err := r.Produce(context.Background(), Request{Kind: KindText, Text: "x", Width: 0, Height: 10})
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if !bytes.Equal(out, sanitize.TransparentPixel) {
		t.Errorf("degenerate request must yield the fallback pixel")
	}
}

func TestProduceText(t *testing.T) {
	r := &Renderer{}
	out, err := r.Produce(context.Background(), Request{
		Kind:   KindText,
		Text:   "Hello",
		Width:  120,
		Height: 40,
		Style:  TextStyle{Color: color.NRGBA{R: 255, A: 255}},
	})
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if w, h := decodePNG(t, out); w != 120 || h != 40 {
		t.Errorf("size = %dx%d, want 120x40", w, h)
	}
}

func TestProduceImage(t *testing.T) {
	r := &Renderer{}
	src := TransparentPNG(10, 10)

	out, err := r.Produce(context.Background(), Request{Kind: KindImage, Data: src, Width: 64, Height: 48})
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if w, h := decodePNG(t, out); w != 64 || h != 48 {
		t.Errorf("size = %dx%d, want 64x48", w, h)
	}

	if _, err := r.Produce(context.Background(), Request{Kind: KindImage, Data: []byte("not an image"), Width: 10, Height: 10}); err == nil {
		t.Errorf("bad image bytes must error")
	}
}

func TestProduceQR(t *testing.T) {
	r := &Renderer{}

	out, err := r.Produce(context.Background(), Request{Kind: KindQR, Text: "https://example.com/x", Width: 80, Height: 80})
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if w, h := decodePNG(t, out); w != 80 || h != 80 {
		t.Errorf("square qr = %dx%d, want 80x80", w, h)
	}

	// Non-square targets keep the code square and pad the canvas.
	out, err = r.Produce(context.Background(), Request{Kind: KindQR, Text: "payload", Width: 100, Height: 60})
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if w, h := decodePNG(t, out); w != 100 || h != 60 {
		t.Errorf("padded qr = %dx%d, want 100x60", w, h)
	}
}

func TestProduceUnknownKind(t *testing.T) {
	r := &Renderer{}
	if _, err := r.Produce(context.Background(), Request{Kind: "gif", Width: 10, Height: 10}); err == nil {
		t.Errorf("unknown kind must error")
	}
}

func TestProduceCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Renderer{}
	if _, err := r.Produce(ctx, Request{Kind: KindText, Text: "x", Width: 10, Height: 10}); err == nil {
		t.Errorf("canceled context must abort")
	}
}

func TestShineLiftsAndPreservesSize(t *testing.T) {
	r := &Renderer{}
	base := TransparentPNG(24, 24)

	out, err := r.Shine(context.Background(), base)
	if err != nil {
		t.Fatalf("Shine: %v", err)
	}
	if w, h := decodePNG(t, out); w != 24 || h != 24 {
		t.Errorf("size = %dx%d, want 24x24", w, h)
	}

	if _, err := r.Shine(context.Background(), []byte("junk")); err == nil {
		t.Errorf("undecodable raster must error")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}, false},
		{"#f00", color.NRGBA{255, 0, 0, 255}, false},
		{"#1a2b3c", color.NRGBA{0x1a, 0x2b, 0x3c, 255}, false},
		{"#1A2B3C", color.NRGBA{0x1a, 0x2b, 0x3c, 255}, false},
		{"#11223344", color.NRGBA{0x11, 0x22, 0x33, 0x44}, false},
		{"fff", color.NRGBA{}, true},
		{"#ff", color.NRGBA{}, true},
		{"#ggg", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
