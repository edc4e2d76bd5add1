package sanitize

// TransparentPixel is a 1x1 fully transparent RGBA PNG. It stands in for
// every missing, empty or undecodable image asset so that encoded
// documents never carry dangling references or invalid raster data.
var TransparentPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, // PNG signature
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52, // IHDR, 1x1, RGBA8
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89,
	0x00, 0x00, 0x00, 0x0b, 0x49, 0x44, 0x41, 0x54, // IDAT, one transparent pixel
	0x78, 0xda, 0x63, 0x60, 0x00, 0x02, 0x00, 0x00,
	0x05, 0x00, 0x01, 0xe9, 0xfa, 0xdc, 0xd8,
	0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, // IEND
	0xae, 0x42, 0x60, 0x82,
}
