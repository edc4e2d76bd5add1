package sanitize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Key rewrites an asset or layer key to the wire-safe charset
// [A-Za-z0-9_-], replacing every other character with '_'. An empty key
// gets a generated layer_<id> name so it can still index the asset table.
func Key(key string) string {
	if key == "" {
		return "layer_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "_")
	}
	return unsafeKeyChars.ReplaceAllString(key, "_")
}

// KeyRegistry tracks a one-to-one mapping from original asset keys to
// their sanitized replacements, so sprite references can be remapped
// consistently with the rebuilt image table.
type KeyRegistry struct {
	renames map[string]string // original -> sanitized
	taken   map[string]string // sanitized -> original
}

// NewKeyRegistry returns an empty registry.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{
		renames: make(map[string]string),
		taken:   make(map[string]string),
	}
}

// Rename sanitizes key and records the mapping. Distinct originals that
// collapse to the same sanitized form are kept one-to-one by suffixing a
// counter.
func (r *KeyRegistry) Rename(key string) string {
	if mapped, ok := r.renames[key]; ok {
		return mapped
	}
	clean := Key(key)
	if owner, ok := r.taken[clean]; ok && owner != key {
		base := clean
		for n := 2; ; n++ {
			clean = base + "_" + strconv.Itoa(n)
			if _, ok := r.taken[clean]; !ok {
				break
			}
		}
	}
	r.renames[key] = clean
	r.taken[clean] = key
	return clean
}

// Resolve maps a sprite's reference through the registry. References to
// keys the registry has never seen are sanitized in place without being
// recorded, since they name no rebuilt asset.
func (r *KeyRegistry) Resolve(key string) string {
	if mapped, ok := r.renames[key]; ok {
		return mapped
	}
	return Key(key)
}

// Changed reports whether Rename altered the key's spelling.
func (r *KeyRegistry) Changed(key string) bool {
	mapped, ok := r.renames[key]
	return ok && mapped != key
}
