package svga

// Clone returns a snapshot of the document whose Images map and Sprites
// slice are independent of the receiver's. Sprite frame slices are shared:
// mutating code appends new sprites rather than editing existing ones, so
// two snapshots never alias each other's containers.
func (d *Document) Clone() *Document {
	out := &Document{
		Version: d.Version,
		Params:  d.Params,
		Images:  make(map[string]string, len(d.Images)+2),
		Sprites: make([]Sprite, len(d.Sprites), len(d.Sprites)+4),
		Audios:  make([]Audio, len(d.Audios)),
	}
	for k, v := range d.Images {
		out.Images[k] = v
	}
	copy(out.Sprites, d.Sprites)
	copy(out.Audios, d.Audios)
	return out
}
