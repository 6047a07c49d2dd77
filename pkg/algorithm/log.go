package algorithm

import (
	"math/big"
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
	tol    = DefaultTolerance()
)

// SetLogger replaces the package logger. A nil logger silences output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

func log() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Tolerance holds the thresholds of the validity checker. Relative is
// reserved and currently unused by any rule.
type Tolerance struct {
	Absolute float64
	Relative float64
}

// DefaultTolerance is 1e-9 absolute, 1e-4 relative.
func DefaultTolerance() Tolerance {
	return Tolerance{Absolute: 1e-9, Relative: 1e-4}
}

// SetTolerance replaces the thresholds used by IsValid.
func SetTolerance(t Tolerance) {
	mu.Lock()
	tol = t
	mu.Unlock()
}

func tolerance() Tolerance {
	mu.RLock()
	defer mu.RUnlock()
	return tol
}

// absTolerance is the absolute tolerance as an exact rational.
func absTolerance() *big.Rat {
	r := new(big.Rat)
	if r.SetFloat64(tolerance().Absolute) == nil {
		r.SetInt64(0)
	}
	return r
}
