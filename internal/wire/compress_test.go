package wire

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/flate"
)

func TestInflateZlib(t *testing.T) {
	payload := []byte("svga movie payload, repeated payload payload payload")
	packed, err := deflate(payload)
	if err != nil {
		t.Fatalf("deflate: %v", err)
	}

	out, inflated := inflate(packed)
	if !inflated {
		t.Fatalf("zlib stream not recognized")
	}
	if !bytes.Equal(out, payload) {
		t.Errorf("round trip mismatch: %q", out)
	}
}

func TestInflateRawDeflate(t *testing.T) {
	payload := []byte("headerless stream produced by an older packer")
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate.NewWriter: %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out, inflated := inflate(buf.Bytes())
	if !inflated {
		t.Fatalf("raw deflate stream not recognized")
	}
	if !bytes.Equal(out, payload) {
		t.Errorf("round trip mismatch: %q", out)
	}
}

func TestInflatePassthrough(t *testing.T) {
	payload := []byte{0x08, 0x01, 0x12, 0x03, 'a', 'b', 'c'}
	out, inflated := inflate(payload)
	if inflated {
		t.Fatalf("uncompressed payload reported as inflated")
	}
	if !bytes.Equal(out, payload) {
		t.Errorf("passthrough mutated the payload: %x", out)
	}
}
