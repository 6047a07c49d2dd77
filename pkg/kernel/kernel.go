// Package kernel is the numeric geometry kernel behind the algorithm layer.
//
// Every algorithm is written once against the Number constraint and
// instantiated with either the Exact field (arbitrary precision rationals,
// used wherever a predicate decides topology) or the Inexact field (float64,
// used where speed matters more than degenerate-position robustness). The
// kernel choice is a type parameter at the call site, so swapping it never
// changes the calling code.
//
// On top of the fields the package provides 2D and 3D points, segments,
// triangles and planes, the orientation predicates, do-intersect tests,
// intersection constructions and squared distances for every pair of
// primitives used by the algorithm layer.
package kernel

import "math/big"

// Number is the field capability a kernel number type provides.
// Implementations are immutable values: every operation returns a new value.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	// Quo divides; the divisor must be non-zero.
	Quo(T) T
	Neg() T
	Cmp(T) int
	Sign() int
	Float64() float64
	// Rat returns the value as a rational (a copy the caller may modify).
	Rat() *big.Rat
	// FromRat converts a rational into the receiver's type. It is called on
	// the zero value and must not depend on the receiver.
	FromRat(*big.Rat) T
	// Exact reports whether arithmetic in this field is free of round-off.
	Exact() bool
}

// Kind names a kernel flavour.
type Kind int

const (
	KindInexact Kind = iota
	KindExact
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	default:
		return "inexact"
	}
}

// KindOf reports the kernel flavour of the number type T.
func KindOf[T Number[T]]() Kind {
	var z T
	if z.Exact() {
		return KindExact
	}
	return KindInexact
}

// FromInt returns i in the field T.
func FromInt[T Number[T]](i int64) T {
	var z T
	return z.FromRat(big.NewRat(i, 1))
}

// FromFloat returns f in the field T. Finite floats convert exactly.
func FromFloat[T Number[T]](f float64) T {
	var z T
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		r.SetInt64(0)
	}
	return z.FromRat(r)
}

// Zero returns the additive identity of T.
func Zero[T Number[T]]() T {
	return FromInt[T](0)
}

// Min returns the smaller of a and b.
func Min[T Number[T]](a, b T) T {
	if b.Cmp(a) < 0 {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func Max[T Number[T]](a, b T) T {
	if b.Cmp(a) > 0 {
		return b
	}
	return a
}

// Abs returns |a|.
func Abs[T Number[T]](a T) T {
	if a.Sign() < 0 {
		return a.Neg()
	}
	return a
}

// Clamp01 clamps t into [0, 1].
func Clamp01[T Number[T]](t T) T {
	if t.Sign() < 0 {
		return Zero[T]()
	}
	one := FromInt[T](1)
	if t.Cmp(one) > 0 {
		return one
	}
	return t
}
