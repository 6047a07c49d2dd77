package kernel

import (
	"math"
	"math/big"
)

// ----------------------------------------------------------------------------
// Exact
// ----------------------------------------------------------------------------

// Exact is an arbitrary precision rational. The zero value is 0.
type Exact struct {
	r *big.Rat
}

var _ Number[Exact] = Exact{}

// NewExact wraps a copy of r.
func NewExact(r *big.Rat) Exact {
	return Exact{r: new(big.Rat).Set(r)}
}

func (a Exact) rat() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

// Rat returns a copy of the underlying rational.
func (a Exact) Rat() *big.Rat {
	return new(big.Rat).Set(a.rat())
}

func (a Exact) Add(b Exact) Exact { return Exact{new(big.Rat).Add(a.rat(), b.rat())} }
func (a Exact) Sub(b Exact) Exact { return Exact{new(big.Rat).Sub(a.rat(), b.rat())} }
func (a Exact) Mul(b Exact) Exact { return Exact{new(big.Rat).Mul(a.rat(), b.rat())} }
func (a Exact) Quo(b Exact) Exact { return Exact{new(big.Rat).Quo(a.rat(), b.rat())} }
func (a Exact) Neg() Exact        { return Exact{new(big.Rat).Neg(a.rat())} }
func (a Exact) Cmp(b Exact) int   { return a.rat().Cmp(b.rat()) }
func (a Exact) Sign() int         { return a.rat().Sign() }
func (a Exact) Exact() bool       { return true }

func (a Exact) Float64() float64 {
	f, _ := a.rat().Float64()
	return f
}

func (Exact) FromRat(r *big.Rat) Exact { return NewExact(r) }

func (a Exact) String() string { return a.rat().RatString() }

// ----------------------------------------------------------------------------
// Inexact
// ----------------------------------------------------------------------------

// Inexact is an IEEE double.
type Inexact float64

var _ Number[Inexact] = Inexact(0)

func (a Inexact) Add(b Inexact) Inexact { return a + b }
func (a Inexact) Sub(b Inexact) Inexact { return a - b }
func (a Inexact) Mul(b Inexact) Inexact { return a * b }
func (a Inexact) Quo(b Inexact) Inexact { return a / b }
func (a Inexact) Neg() Inexact          { return -a }
func (a Inexact) Float64() float64      { return float64(a) }
func (a Inexact) Exact() bool           { return false }

func (a Inexact) Cmp(b Inexact) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (a Inexact) Sign() int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	default:
		return 0
	}
}

func (a Inexact) Rat() *big.Rat {
	r := new(big.Rat)
	if math.IsInf(float64(a), 0) || math.IsNaN(float64(a)) {
		return r
	}
	return r.SetFloat64(float64(a))
}

func (Inexact) FromRat(r *big.Rat) Inexact {
	f, _ := r.Float64()
	return Inexact(f)
}

// Sqrt returns the square root of a squared distance as a float64.
func Sqrt[T Number[T]](sq T) float64 {
	return math.Sqrt(sq.Float64())
}
