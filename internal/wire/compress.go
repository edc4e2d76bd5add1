package wire

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// deflateLevel is the zlib compression level used on encode.
const deflateLevel = 6

// inflate tries standard zlib first, then raw (headerless) deflate, and
// finally hands the input back unmodified on the assumption it was never
// compressed. The second return reports whether decompression happened.
func inflate(data []byte) ([]byte, bool) {
	if r, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
		out, err := io.ReadAll(r)
		r.Close()
		if err == nil {
			return out, true
		}
	}

	r := flate.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(r)
	r.Close()
	if err == nil && len(out) > 0 {
		return out, true
	}

	return data, false
}

// deflate wraps data in a zlib-framed DEFLATE stream at level 6.
func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, deflateLevel)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
