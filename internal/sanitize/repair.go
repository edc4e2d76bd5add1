package sanitize

import "fmt"

// RepairKind classifies a non-fatal fix applied while normalizing a
// document. Repairs are advisory: they are reported to the caller but
// never abort an encode.
type RepairKind string

const (
	// RepairDanglingRef marks an image or matte key that resolved to no
	// asset and was bound to the transparent fallback pixel.
	RepairDanglingRef RepairKind = "dangling_reference"
	// RepairBadImageData marks an asset whose bytes were empty or could
	// not be base64-decoded and were replaced with the fallback pixel.
	RepairBadImageData RepairKind = "bad_image_data"
	// RepairRenamedKey marks a key that contained characters outside
	// [A-Za-z0-9_-] and was rewritten.
	RepairRenamedKey RepairKind = "renamed_key"
)

// Repair is one normalization fix, identified by the key it touched.
type Repair struct {
	Kind   RepairKind
	Key    string
	Detail string
}

func (r Repair) String() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s: %q", r.Kind, r.Key)
	}
	return fmt.Sprintf("%s: %q (%s)", r.Kind, r.Key, r.Detail)
}
