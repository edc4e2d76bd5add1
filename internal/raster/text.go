package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// TextStyle configures text rendering. Zero values mean: auto-sized,
// first usable system font, opaque white.
type TextStyle struct {
	Font  string  // font file name, resolved via the system font paths
	Size  float64 // point size
	Color color.NRGBA
}

// fontFallbacks are tried after the requested font. DejaVu covers most
// Linux systems, Arial/Helvetica macOS and Windows.
var fontFallbacks = []string{"DejaVuSans.ttf", "Arial.ttf", "Helvetica.ttc"}

func renderText(req Request) (image.Image, error) {
	dc := gg.NewContext(req.Width, req.Height)

	size := req.Style.Size
	if size <= 0 {
		size = float64(req.Height) * 0.5
	}

	if path, err := resolveFont(req.Style.Font); err == nil {
		if err := dc.LoadFontFace(path, size); err != nil {
			dc.SetFontFace(basicfont.Face7x13)
		}
	} else {
		dc.SetFontFace(basicfont.Face7x13)
	}

	col := req.Style.Color
	if col == (color.NRGBA{}) {
		col = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	dc.SetColor(col)

	dc.DrawStringWrapped(req.Text,
		float64(req.Width)/2, float64(req.Height)/2,
		0.5, 0.5,
		float64(req.Width)*0.96, 1.2,
		gg.AlignCenter)
	return dc.Image(), nil
}

func resolveFont(name string) (string, error) {
	candidates := make([]string, 0, len(fontFallbacks)+1)
	if name != "" {
		candidates = append(candidates, name)
	}
	candidates = append(candidates, fontFallbacks...)

	for _, c := range candidates {
		if path, err := findfont.Find(c); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no usable font among %v", candidates)
}

// ParseHexColor parses #RGB, #RRGGBB and #RRGGBBAA color strings.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 255}
	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	pair := func(hi, lo byte) (uint8, bool) {
		h, ok1 := hex(hi)
		l, ok2 := hex(lo)
		return h<<4 | l, ok1 && ok2
	}

	if len(s) == 0 || s[0] != '#' {
		return c, fmt.Errorf("color %q: expected leading '#'", s)
	}
	var ok bool
	switch len(s) {
	case 4: // #RGB
		var r, g, b uint8
		r, ok = pair(s[1], s[1])
		if ok {
			g, ok = pair(s[2], s[2])
		}
		if ok {
			b, ok = pair(s[3], s[3])
		}
		c.R, c.G, c.B = r, g, b
	case 7: // #RRGGBB
		c.R, ok = pair(s[1], s[2])
		if ok {
			c.G, ok = pair(s[3], s[4])
		}
		if ok {
			c.B, ok = pair(s[5], s[6])
		}
	case 9: // #RRGGBBAA
		c.R, ok = pair(s[1], s[2])
		if ok {
			c.G, ok = pair(s[3], s[4])
		}
		if ok {
			c.B, ok = pair(s[5], s[6])
		}
		if ok {
			c.A, ok = pair(s[7], s[8])
		}
	default:
		return c, fmt.Errorf("color %q: bad length", s)
	}
	if !ok {
		return c, fmt.Errorf("color %q: bad hex digit", s)
	}
	return c, nil
}
