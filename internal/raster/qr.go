package raster

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// renderQR encodes the request text as a QR code PNG. The code is drawn
// square at the smaller target dimension and centered on a transparent
// canvas when the target is not square.
func renderQR(req Request) ([]byte, error) {
	size := req.Width
	if req.Height < size {
		size = req.Height
	}

	png, err := qrcode.Encode(req.Text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	if req.Width == req.Height {
		return png, nil
	}

	img, err := imaging.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("decode qr: %w", err)
	}
	return encodePNG(compose(img, req.Width, req.Height))
}
