package algorithm

import (
	"errors"
	"fmt"

	"github.com/chazu/sfgeom/pkg/geom"
)

// Sentinel errors for the algorithm layer.
var (
	// ErrUnsupportedTypePair indicates a predicate has no rule for the pair.
	ErrUnsupportedTypePair = errors.New("algorithm: unsupported type pair")

	// ErrUnsupportedBoolean indicates a boolean operation has no rule for the pair.
	ErrUnsupportedBoolean = errors.New("algorithm: boolean operation not supported for this type pair")

	// ErrNotImplemented indicates an operation that is not available for a
	// geometry kind.
	ErrNotImplemented = errors.New("algorithm: function is not implemented")

	// ErrSkeletonUnsupported indicates an input the straight skeleton
	// cannot handle.
	ErrSkeletonUnsupported = errors.New("algorithm: straight skeleton not supported for this input")

	// ErrDegenerate indicates an input without the extent an operation
	// needs, such as a polygon of zero area.
	ErrDegenerate = errors.New("algorithm: degenerate input")
)

func unsupportedPair(op string, a, b geom.Geometry) error {
	return fmt.Errorf("%s(%s, %s): %w", op, a.GeometryTypeName(), b.GeometryTypeName(), ErrUnsupportedTypePair)
}

func unsupportedBoolean(a, b geom.Geometry) error {
	return fmt.Errorf("%w: %s, %s", ErrUnsupportedBoolean, a.GeometryTypeName(), b.GeometryTypeName())
}

func notImplemented(op string, g geom.Geometry) error {
	return fmt.Errorf("%s(%s): %w", op, g.GeometryTypeName(), ErrNotImplemented)
}
