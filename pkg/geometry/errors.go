package geometry

import "errors"

var (
	// ErrEmptyAggregate is returned when building a BVH from zero primitives.
	ErrEmptyAggregate = errors.New("geometry: cannot build BVH from an empty primitive list")
)
