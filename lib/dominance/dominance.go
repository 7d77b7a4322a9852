// Package dominance implements the bitwise (not strictly) / strictly
// dominates predicates over k-vectors (spec §4.2, component B). These
// are pure, total, comparison-only functions.
//
// The versions generic over constraints.Ordered serve callers
// (reporting, quick filters) that work in native numeric vectors and
// never touch the scalar façade. The generic *C variants are the ones
// the 3D/4D archive uses internally, since its exact hypervolume
// bookkeeping needs ScalarC arithmetic the same way the bi-objective
// archive does.
package dominance

import (
	"golang.org/x/exp/constraints"

	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// DominatesC is Dominates generalized to any pluggable scalar kind
// (spec §4.1, component A).
func DominatesC[C scalar.Value[C]](a, b []C) bool {
	if len(a) != len(b) {
		return false
	}
	strict := false
	for i := range a {
		c := a[i].Cmp(b[i])
		if c > 0 {
			return false
		}
		if c < 0 {
			strict = true
		}
	}
	return strict
}

// WeaklyDominatesC is WeaklyDominates generalized to any pluggable
// scalar kind.
func WeaklyDominatesC[C scalar.Value[C]](a, b []C) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) > 0 {
			return false
		}
	}
	return true
}

// EqualC is Equal generalized to any pluggable scalar kind.
func EqualC[C scalar.Value[C]](a, b []C) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// InDomainC is InDomain generalized to any pluggable scalar kind.
func InDomainC[C scalar.Value[C]](p, r []C) bool {
	if len(p) != len(r) {
		return false
	}
	for i := range p {
		if p[i].Cmp(r[i]) >= 0 {
			return false
		}
	}
	return true
}

// Dominates reports whether a weakly dominates b AND is not equal to
// b: every coordinate of a is <= the corresponding coordinate of b,
// with at least one strictly less. a and b must have equal length;
// mismatched lengths are the caller's bug (arity is checked above this
// package, at the archive boundary) and Dominates reports false.
//
// Generalized over constraints.Ordered (the teacher's own
// lib/containers.NativeOrdered constraint, kept from golang.org/x/exp)
// rather than scalar.Value[C]: a caller working directly in native
// int/float64 vectors — reporting, quick filters, the demo CLI's own
// pre-archive sanity checks — has no reason to wrap every coordinate
// in a ScalarC just to ask a dominance question.
func Dominates[T constraints.Ordered](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	strict := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			strict = true
		}
	}
	return strict
}

// WeaklyDominates drops Dominates' "at least one strict" clause:
// every coordinate of a is <= the corresponding coordinate of b.
func WeaklyDominates[T constraints.Ordered](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}
	return true
}

// Equal reports whether every coordinate of a and b is equal.
func Equal[T constraints.Ordered](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// InDomain reports whether p is strictly inside the rectangle bounded
// by reference point r on every axis (spec §3 invariant 5).
func InDomain[T constraints.Ordered](p, r []T) bool {
	if len(p) != len(r) {
		return false
	}
	for i := range p {
		if p[i] >= r[i] {
			return false
		}
	}
	return true
}
