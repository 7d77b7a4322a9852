// Package scalar is the numeric façade of component A: two pluggable
// scalar kinds, ScalarC (used during hypervolume bookkeeping, wants
// exactness) and ScalarF (used only to materialize a value for the
// caller), each fixed at archive-construction time as a generic type
// parameter rather than as the teacher's mutable class attribute
// (spec §9 "Scalar pluggability").
//
// The self-referential generic constraint mirrors
// lib/containers.Ordered[T interface{ Cmp(T) int }]: a scalar type S
// must know how to operate on itself.
package scalar

import "math/big"

// Value is satisfied by any scalar kind usable as ScalarC or ScalarF.
// Implementations must be closed under Add/Sub/Mul and totally
// ordered, both against another S and against a native float64 (spec
// §4.1).
type Value[S any] interface {
	Add(S) S
	Sub(S) S
	Mul(S) S
	Cmp(S) int
	CmpFloat64(float64) int
	Float64() float64
}

// Zero returns the additive identity of S via FromFloat64, so callers
// don't need a separate Zero method on every implementation.
func Zero[S Value[S]](fromFloat64 func(float64) S) S {
	return fromFloat64(0)
}

// Float64 is the default ScalarC/ScalarF: native 64-bit float
// arithmetic, rounding accepted (spec §4.1 "Both default to native
// 64-bit float").
type Float64 float64

var _ Value[Float64] = Float64(0)

func NewFloat64(f float64) Float64 { return Float64(f) }

func (a Float64) Add(b Float64) Float64            { return a + b }
func (a Float64) Sub(b Float64) Float64            { return a - b }
func (a Float64) Mul(b Float64) Float64            { return a * b }
func (a Float64) Float64() float64                 { return float64(a) }
func (a Float64) CmpFloat64(f float64) int         { return cmpFloat64(float64(a), f) }
func (a Float64) Cmp(b Float64) int                { return cmpFloat64(float64(a), float64(b)) }

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Rat is the exact ScalarC: an arbitrary-precision rational, so that
// hypervolume deltas computed during add/merge/prune are exact (spec
// §4.1 "A rational... choice makes hypervolume deltas exact").
type Rat struct {
	r *big.Rat
}

var _ Value[Rat] = Rat{}

func NewRat(f float64) Rat {
	r := new(big.Rat)
	r.SetFloat64(f)
	return Rat{r: r}
}

func RatFromFraction(num, den int64) Rat {
	return Rat{r: big.NewRat(num, den)}
}

func (a Rat) ratOrZero() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

func (a Rat) Add(b Rat) Rat {
	return Rat{r: new(big.Rat).Add(a.ratOrZero(), b.ratOrZero())}
}

func (a Rat) Sub(b Rat) Rat {
	return Rat{r: new(big.Rat).Sub(a.ratOrZero(), b.ratOrZero())}
}

func (a Rat) Mul(b Rat) Rat {
	return Rat{r: new(big.Rat).Mul(a.ratOrZero(), b.ratOrZero())}
}

func (a Rat) Cmp(b Rat) int {
	return a.ratOrZero().Cmp(b.ratOrZero())
}

func (a Rat) CmpFloat64(f float64) int {
	o := new(big.Rat)
	o.SetFloat64(f)
	return a.ratOrZero().Cmp(o)
}

func (a Rat) Float64() float64 {
	f, _ := a.ratOrZero().Float64()
	return f
}

func (a Rat) String() string {
	return a.ratOrZero().RatString()
}

// ToFinal converts a ScalarC reading into a ScalarF for reporting
// (spec §4.1 "to_final"). RatToFloat64 and IdentityFloat64 are the
// two conversions this library ships.
type ToFinal[C any, F any] func(C) F

func IdentityFloat64(c Float64) Float64 { return c }

func RatToFloat64(c Rat) Float64 { return Float64(c.Float64()) }
