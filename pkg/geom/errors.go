package geom

import "errors"

// Sentinel errors for the geometry model.
var (
	// ErrEmptyCoordinate indicates an accessor was used on an empty coordinate.
	ErrEmptyCoordinate = errors.New("geom: empty coordinate")

	// ErrEmptyCoordinateComparison indicates an ordering involving an empty coordinate.
	ErrEmptyCoordinateComparison = errors.New("geom: comparison of empty coordinates")

	// ErrMixedDimensionComparison indicates an ordering between a 2D and a 3D coordinate.
	ErrMixedDimensionComparison = errors.New("geom: comparison of coordinates with mixed dimensions")

	// ErrWrongGeometryKind indicates a checked accessor found another variant.
	ErrWrongGeometryKind = errors.New("geom: wrong geometry kind")

	// ErrInvalidScale indicates a non-positive rounding scale.
	ErrInvalidScale = errors.New("geom: scale factor must be positive")
)
