package pixeloid

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pixeloid package.
var (
	// ErrInvalidGeometry is returned when a shape has non-finite or
	// negative-size parameters. The offending object is skipped for the
	// frame; the error is never fatal to the pipeline.
	ErrInvalidGeometry = errors.New("pixeloid: invalid geometry")
)

// GeometryError describes why a shape was rejected by metadata
// computation. It wraps ErrInvalidGeometry so callers can match with
// errors.Is.
type GeometryError struct {
	Kind   Kind
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("pixeloid: invalid %s geometry: %s", e.Kind, e.Reason)
}

// Unwrap returns ErrInvalidGeometry for errors.Is matching.
func (e *GeometryError) Unwrap() error {
	return ErrInvalidGeometry
}
