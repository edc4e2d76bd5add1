package wire

import (
	"errors"
	"fmt"
)

// Sentinel errors for codec operations. All fatal conditions wrap one of
// these; repairs of bad references or raster data are not errors and are
// reported separately (see the sanitize package).
var (
	// ErrDependencyUnavailable is returned when the wire schema cannot
	// be resolved against the protobuf runtime. Fatal, no retry.
	ErrDependencyUnavailable = errors.New("wire schema unavailable")

	// ErrUnsupportedLegacyFormat is returned for the ZIP-archive based
	// 1.x container, which this codec deliberately does not read.
	ErrUnsupportedLegacyFormat = errors.New("legacy zip-based container is not supported")

	// ErrMalformedContainer is returned when the payload does not parse
	// as an SVGA movie after the decompression attempts.
	ErrMalformedContainer = errors.New("malformed container")
)

// DecodeError is a parse failure annotated with whether decompression
// succeeded first, to tell a corrupt compressed stream apart from a
// valid stream carrying a non-conforming payload.
type DecodeError struct {
	Inflated bool // payload was decompressed before parsing
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Inflated {
		return fmt.Sprintf("malformed container (inflated payload): %v", e.Err)
	}
	return fmt.Sprintf("malformed container (stored payload): %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return ErrMalformedContainer }
