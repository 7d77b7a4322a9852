package archive2d

import (
	"sort"

	"github.com/cma-es/moarchiving-go/lib/archiveerr"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// Config bundles every construction-time parameter from spec §4.3's
// "construct" row and §6's "Configuration" bullet, in the
// functional-options-adjacent style of the teacher's
// RBTree.KeyFn/AttrFn public fields (spec §9 "Class-attribute
// globals... Move to a construction-time configuration value").
type Config[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	// Initial is the optional initial list of points.
	Initial []Point2[C]
	// Infos is optional, aligned 1:1 with Initial.
	Infos []Info
	// Ref is the optional reference point. Hypervolume queries are
	// undefined (return ErrNotInitialized) until this is set; it is
	// immutable once the archive is constructed.
	Ref *Point2[C]
	// PreSorted, when true, asserts that Initial is already sorted
	// ascending by F1 and free of dominated pairs, skipping the
	// prune pass (spec §4.3 "optional sort=false").
	PreSorted bool
	// ToFinal converts a ScalarC reading into the reported ScalarF.
	// Required whenever F is used (i.e. always, in practice);
	// scalar.IdentityFloat64 is the common case.
	ToFinal scalar.ToFinal[C, F]
	// Debug enables the expensive self-check after every mutation
	// (spec §9 "make_expensive_asserts", moved from a class
	// attribute to this field).
	Debug bool
}

// Archive is the bi-objective sorted non-dominated archive (spec
// §4.3, component C). The zero value is not usable; construct with
// New.
type Archive[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	points []Point2[C]
	infos  []Info

	ref *Point2[C]

	idealPoint *Point2[C]
	weights    *Point2[C]

	h C // cached exact hypervolume w.r.t. ref; meaningless if ref == nil

	discarded     []Point2[C]
	discardedInfo []Info

	toFinal scalar.ToFinal[C, F]
	debug   bool
}

// New constructs an archive per spec §4.3's "construct" row. The
// initial list, if any, is pruned to a non-dominated, F1-ascending
// sequence unless cfg.PreSorted is true.
func New[C scalar.Value[C], F scalar.Value[F], Info any](cfg Config[C, F, Info]) (*Archive[C, F, Info], error) {
	a := &Archive[C, F, Info]{
		ref:     cfg.Ref,
		toFinal: cfg.ToFinal,
		debug:   cfg.Debug,
	}

	points := append([]Point2[C](nil), cfg.Initial...)
	var infos []Info
	if cfg.Infos != nil {
		infos = append([]Info(nil), cfg.Infos...)
	} else {
		infos = make([]Info, len(points))
	}
	if len(infos) != len(points) {
		return nil, archiveerr.Arityf("archive2d.New: %d points but %d infos", len(points), len(infos))
	}

	if cfg.PreSorted {
		a.points = points
		a.infos = infos
	} else {
		a.points, a.infos = pruneSorted(points, infos)
	}

	if a.ref != nil {
		a.h = a.computeHypervolumeFromScratch(*a.ref)
	}

	if a.debug {
		if err := a.CheckInvariants(); err != nil {
			archiveerr.Inconsistent("archive2d.New: %v", err)
		}
	}
	return a, nil
}

// Dim reports the archive's objective count — always 2 for this
// package, present so callers that dispatch across archive2d and
// archivekd through a common interface (package archive) don't need a
// type switch to learn it.
func (a *Archive[C, F, Info]) Dim() int { return 2 }

// SetNormalization sets the optional ideal-point/weights
// normalization parameters (spec §3 "Ideal point / weights"). They
// are applied element-wise only at indicator read-time by package
// indicator; they never mutate a's stored points or cached H.
func (a *Archive[C, F, Info]) SetNormalization(ideal, weights Point2[C]) {
	a.idealPoint = &ideal
	a.weights = &weights
}

func (a *Archive[C, F, Info]) Normalization() (ideal, weights *Point2[C]) {
	return a.idealPoint, a.weights
}

// Len returns the number of resident points.
func (a *Archive[C, F, Info]) Len() int { return len(a.points) }

// At returns the point and info at index idx.
func (a *Archive[C, F, Info]) At(idx int) (Point2[C], Info, error) {
	if idx < 0 || idx >= len(a.points) {
		var zeroP Point2[C]
		var zeroI Info
		return zeroP, zeroI, archiveerr.OutOfRangef("archive2d: index %d out of range [0,%d)", idx, len(a.points))
	}
	return a.points[idx], a.infos[idx], nil
}

// Range calls fn for every resident point in ascending F1 order,
// stopping early if fn returns false.
func (a *Archive[C, F, Info]) Range(fn func(idx int, p Point2[C], info Info) bool) {
	for i, p := range a.points {
		if !fn(i, p, a.infos[i]) {
			return
		}
	}
}

// Infos returns a copy of the info slice, aligned with iteration
// order (spec §6 "infos").
func (a *Archive[C, F, Info]) Infos() []Info {
	return append([]Info(nil), a.infos...)
}

// Discarded returns the points removed by the most recent Add call
// (spec §3 "Discarded list"). Cleared at the start of every Add.
func (a *Archive[C, F, Info]) Discarded() []Point2[C] {
	return append([]Point2[C](nil), a.discarded...)
}

func (a *Archive[C, F, Info]) DiscardedInfos() []Info {
	return append([]Info(nil), a.discardedInfo...)
}

// ReferencePoint returns the reference point, if set.
func (a *Archive[C, F, Info]) ReferencePoint() (Point2[C], bool) {
	if a.ref == nil {
		var zero Point2[C]
		return zero, false
	}
	return *a.ref, true
}

// Clear empties the archive (spec §6 "clear").
func (a *Archive[C, F, Info]) Clear() {
	a.points = nil
	a.infos = nil
	a.discarded = nil
	a.discardedInfo = nil
	var zero C
	a.h = zero
}

// BisectLeft returns the smallest index i >= lo such that
// points[i].F1 >= p.F1, tiebreaking on F2 when F1 is equal (spec
// §4.3 "Bisect semantics").
func (a *Archive[C, F, Info]) BisectLeft(p Point2[C], lo int) int {
	n := len(a.points)
	if lo < 0 {
		lo = 0
	}
	off := sort.Search(n-lo, func(i int) bool {
		q := a.points[lo+i]
		if c := q.F1.Cmp(p.F1); c != 0 {
			return c >= 0
		}
		return q.F2.Cmp(p.F2) >= 0
	})
	return lo + off
}

// InDomainPoint reports whether p is strictly inside the reference
// rectangle. Returns false (not an error) if no reference point is
// set, matching the "undefined" treatment of domain checks without r
// being meaningfully answerable any other way.
func (a *Archive[C, F, Info]) InDomainPoint(p Point2[C]) bool {
	if a.ref == nil {
		return false
	}
	return p.inDomain(*a.ref)
}

// InDomainIndex reports whether the resident at idx is in domain. An
// out-of-range index is defined as false (spec §4.3).
func (a *Archive[C, F, Info]) InDomainIndex(idx int) bool {
	if idx < 0 || idx >= len(a.points) {
		return false
	}
	return a.InDomainPoint(a.points[idx])
}

// dominatingNeighbor finds the unique resident that weakly dominates
// p, if any (spec §4.3 step 3: checking i-1 then i, where i =
// BisectLeft(p, 0), suffices because F2 strictly decreases as F1
// increases).
func (a *Archive[C, F, Info]) dominatingNeighbor(p Point2[C]) (idx int, ok bool) {
	i := a.BisectLeft(p, 0)
	if i > 0 && a.points[i-1].weaklyDominates(p) {
		return i - 1, true
	}
	if i < len(a.points) && a.points[i].weaklyDominates(p) {
		return i, true
	}
	return 0, false
}

// Dominates reports whether some resident weakly dominates p (spec
// §4.3 "dominates").
func (a *Archive[C, F, Info]) Dominates(p Point2[C]) bool {
	_, ok := a.dominatingNeighbor(p)
	return ok
}

// Dominators returns every resident that weakly dominates p, in
// ascending F1 order (spec §4.3 "dominators"). Because F2 strictly
// decreases as F1 increases, the dominator set is always a contiguous
// range ending at BisectLeft(p,0)-1, or at BisectLeft(p,0) when p
// equals the resident found there.
func (a *Archive[C, F, Info]) Dominators(p Point2[C]) []Point2[C] {
	i := a.BisectLeft(p, 0)
	hi := i // exclusive upper bound of the dominator range
	if i < len(a.points) && a.points[i].F1.Cmp(p.F1) == 0 && a.points[i].weaklyDominates(p) {
		hi = i + 1
	}
	if hi == 0 {
		return nil
	}
	// Within [0, hi), F2 is strictly descending; find the smallest lo
	// such that points[lo].F2 <= p.F2 — all indices >= lo then qualify.
	lo := sort.Search(hi, func(k int) bool {
		return a.points[k].F2.Cmp(p.F2) <= 0
	})
	if lo >= hi {
		return nil
	}
	return append([]Point2[C](nil), a.points[lo:hi]...)
}

// DominatorCount is Dominators(p), number_only=true in spec terms.
func (a *Archive[C, F, Info]) DominatorCount(p Point2[C]) int {
	return len(a.Dominators(p))
}

// Contains reports whether p is exactly equal to some resident.
func (a *Archive[C, F, Info]) Contains(p Point2[C]) bool {
	i := a.BisectLeft(p, 0)
	return i < len(a.points) && a.points[i].equal(p)
}
