// Package archivekd implements the 3D/4D non-dominated archive (spec
// §4.4, component E): an ordered-by-f1 associative container with the
// same public contract as package archive2d, generalized to a
// runtime-chosen coordinate count instead of a fixed 2-field struct.
package archivekd

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cma-es/moarchiving-go/lib/archiveerr"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

const contribCacheSize = 1024

// Config mirrors archive2d.Config, generalized with an explicit Dim
// (spec §4.4 "relevant coordinate count" — 3 or 4, though nothing
// here assumes a specific value).
type Config[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	Dim       int
	Initial   []Point[C]
	Infos     []Info
	Ref       Point[C]
	PreSorted bool
	ToFinal   scalar.ToFinal[C, F]
	Debug     bool
}

// Archive is the k-objective sorted non-dominated archive.
type Archive[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	dim int
	t   tree[C, Info]

	ref Point[C]

	idealPoint Point[C]
	weights    Point[C]

	h            C
	contribCache *lru.Cache[string, C]

	discarded     []Point[C]
	discardedInfo []Info

	toFinal scalar.ToFinal[C, F]
	debug   bool
}

// New constructs an archive per spec §4.4's "Public contract
// identical to §4.3". The initial list, if any, is pruned to a
// non-dominated, F1-ascending sequence unless cfg.PreSorted is true.
func New[C scalar.Value[C], F scalar.Value[F], Info any](cfg Config[C, F, Info]) (*Archive[C, F, Info], error) {
	if cfg.Dim != 3 && cfg.Dim != 4 {
		return nil, archiveerr.Arityf("archivekd.New: dimension must be 3 or 4, got %d", cfg.Dim)
	}
	cache, _ := lru.New[string, C](contribCacheSize)
	a := &Archive[C, F, Info]{
		dim:          cfg.Dim,
		ref:          cfg.Ref,
		toFinal:      cfg.ToFinal,
		debug:        cfg.Debug,
		contribCache: cache,
	}

	infos := cfg.Infos
	if infos == nil {
		infos = make([]Info, len(cfg.Initial))
	}
	if len(infos) != len(cfg.Initial) {
		return nil, archiveerr.Arityf("archivekd.New: %d points but %d infos", len(cfg.Initial), len(infos))
	}
	for _, p := range cfg.Initial {
		if len(p) != cfg.Dim {
			return nil, archiveerrArity(cfg.Dim, len(p))
		}
	}
	if cfg.Ref != nil && len(cfg.Ref) != cfg.Dim {
		return nil, archiveerrArity(cfg.Dim, len(cfg.Ref))
	}

	if cfg.PreSorted {
		for i, p := range cfg.Initial {
			a.t.insert(clonePoint(p), infos[i])
		}
	} else {
		points, pinfos := pruneKD(cfg.Initial, infos)
		for i, p := range points {
			a.t.insert(clonePoint(p), pinfos[i])
		}
	}

	a.recomputeHypervolume()

	if a.debug {
		if err := a.CheckInvariants(); err != nil {
			archiveerr.Inconsistent("archivekd.New: %v", err)
		}
	}
	return a, nil
}

func (a *Archive[C, F, Info]) Dim() int { return a.dim }

// SetNormalization sets the optional ideal-point/weights
// normalization parameters, applied only at indicator read-time.
func (a *Archive[C, F, Info]) SetNormalization(ideal, weights Point[C]) {
	a.idealPoint = clonePoint(ideal)
	a.weights = clonePoint(weights)
}

func (a *Archive[C, F, Info]) Normalization() (ideal, weights Point[C]) {
	return a.idealPoint, a.weights
}

// Len returns the number of resident points.
func (a *Archive[C, F, Info]) Len() int { return a.t.Len() }

// allPoints returns every resident in ascending-F1 order.
func (a *Archive[C, F, Info]) allPoints() []Point[C] {
	out := make([]Point[C], 0, a.t.Len())
	a.t.walk(func(n *node[C, Info]) { out = append(out, n.point) })
	return out
}

func (a *Archive[C, F, Info]) allInfos() []Info {
	out := make([]Info, 0, a.t.Len())
	a.t.walk(func(n *node[C, Info]) { out = append(out, n.info) })
	return out
}

func (a *Archive[C, F, Info]) indexOf(p Point[C]) (int, bool) {
	idx := 0
	found := -1
	a.t.walk(func(n *node[C, Info]) {
		if found < 0 && Point[C](n.point).equal(p) {
			found = idx
		}
		idx++
	})
	return found, found >= 0
}

// At returns the point and info at idx, in ascending-F1 order.
func (a *Archive[C, F, Info]) At(idx int) (Point[C], Info, error) {
	if idx < 0 || idx >= a.t.Len() {
		var zeroI Info
		return nil, zeroI, archiveerrOutOfRange(idx, a.t.Len())
	}
	var p Point[C]
	var inf Info
	i := 0
	a.t.walk(func(n *node[C, Info]) {
		if i == idx {
			p, inf = n.point, n.info
		}
		i++
	})
	return p, inf, nil
}

// Range calls fn for every resident in ascending-F1 order, stopping
// early if fn returns false.
func (a *Archive[C, F, Info]) Range(fn func(idx int, p Point[C], info Info) bool) {
	idx := 0
	stop := false
	a.t.walk(func(n *node[C, Info]) {
		if stop {
			return
		}
		if !fn(idx, n.point, n.info) {
			stop = true
		}
		idx++
	})
}

// Infos returns every info value, aligned with iteration order.
func (a *Archive[C, F, Info]) Infos() []Info { return a.allInfos() }

// Discarded returns the points removed by the most recent Add call.
func (a *Archive[C, F, Info]) Discarded() []Point[C] {
	return append([]Point[C](nil), a.discarded...)
}

func (a *Archive[C, F, Info]) DiscardedInfos() []Info {
	return append([]Info(nil), a.discardedInfo...)
}

// ReferencePoint returns the reference point, if set.
func (a *Archive[C, F, Info]) ReferencePoint() (Point[C], bool) {
	if a.ref == nil {
		return nil, false
	}
	return a.ref, true
}

// Clear empties the archive.
func (a *Archive[C, F, Info]) Clear() {
	a.t = tree[C, Info]{}
	a.discarded = nil
	a.discardedInfo = nil
	var zero C
	a.h = zero
	a.contribCache.Purge()
}

// InDomainPoint reports whether p is strictly inside the reference
// rectangle. False (not an error) if no reference point is set.
func (a *Archive[C, F, Info]) InDomainPoint(p Point[C]) bool {
	if a.ref == nil {
		return false
	}
	return p.inDomain(a.ref)
}

func (a *Archive[C, F, Info]) InDomainIndex(idx int) bool {
	p, _, err := a.At(idx)
	if err != nil {
		return false
	}
	return a.InDomainPoint(p)
}

// Dominates reports whether some resident weakly dominates p.
func (a *Archive[C, F, Info]) Dominates(p Point[C]) bool {
	return len(a.Dominators(p)) > 0
}

// Dominators returns every resident weakly dominating p, in ascending
// F1 order. Unlike archive2d, kD dominators need not be contiguous in
// F1, so this is a full scan over the (typically small) resident set.
func (a *Archive[C, F, Info]) Dominators(p Point[C]) []Point[C] {
	var out []Point[C]
	a.t.walk(func(n *node[C, Info]) {
		if Point[C](n.point).weaklyDominates(p) {
			out = append(out, n.point)
		}
	})
	return out
}

func (a *Archive[C, F, Info]) DominatorCount(p Point[C]) int {
	return len(a.Dominators(p))
}

// Contains reports whether p is exactly equal to some resident.
func (a *Archive[C, F, Info]) Contains(p Point[C]) bool {
	_, ok := a.indexOf(p)
	return ok
}
