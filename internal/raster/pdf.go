package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// pdfDPI is enough resolution for sticker-sized layers.
const pdfDPI = 144

// renderPDFPage rasterizes one page of an in-memory PDF. An out-of-range
// page index falls back to the first page.
func renderPDFPage(data []byte, page int) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	if page < 0 || page >= doc.NumPage() {
		page = 0
	}

	img, err := doc.ImageDPI(page, pdfDPI)
	if err != nil {
		return nil, fmt.Errorf("render pdf page %d: %w", page, err)
	}
	return img, nil
}
