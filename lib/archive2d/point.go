// Package archive2d implements component C of the spec: the
// bi-objective sorted non-dominated archive with incremental
// hypervolume bookkeeping and the uncrowded-hypervolume-improvement
// (UHVI) query. It is the hard-engineering core of the library (spec
// §1, §4.3).
//
// The teacher's bi-objective class inherits from a dynamic sequence
// type (Python list subclassing); per spec §9 "Parent-is-list
// inheritance" this is re-architected as containment: Archive holds
// its points in an unexported slice and exposes indexed read plus
// iteration explicitly, routing every mutation through
// invariant-preserving methods.
package archive2d

import "github.com/cma-es/moarchiving-go/lib/scalar"

// Point2 is an objective vector of two coordinates, parameterized by
// the ScalarC kind used for exact hypervolume bookkeeping (spec §4.1,
// component A).
type Point2[C scalar.Value[C]] struct {
	F1, F2 C
}

func (p Point2[C]) f1f64() float64 { return p.F1.Float64() }
func (p Point2[C]) f2f64() float64 { return p.F2.Float64() }

// weaklyDominates reports whether p weakly dominates q: p.F1 <= q.F1
// and p.F2 <= q.F2 (spec §4.2).
func (p Point2[C]) weaklyDominates(q Point2[C]) bool {
	return p.F1.Cmp(q.F1) <= 0 && p.F2.Cmp(q.F2) <= 0
}

// dominates is weaklyDominates with at least one strict inequality.
func (p Point2[C]) dominates(q Point2[C]) bool {
	return p.weaklyDominates(q) && (p.F1.Cmp(q.F1) < 0 || p.F2.Cmp(q.F2) < 0)
}

func (p Point2[C]) equal(q Point2[C]) bool {
	return p.F1.Cmp(q.F1) == 0 && p.F2.Cmp(q.F2) == 0
}

// inDomain reports whether p.F1 < r.F1 and p.F2 < r.F2 (spec §3
// invariant 5).
func (p Point2[C]) inDomain(r Point2[C]) bool {
	return p.F1.Cmp(r.F1) < 0 && p.F2.Cmp(r.F2) < 0
}
