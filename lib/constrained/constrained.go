// Package constrained implements component D: a wrapper that holds an
// inner non-dominated archive plus a parallel array of constraint
// vectors, per spec §4.5. A solution is feasible iff every constraint
// coordinate is <= 0; infeasible solutions never become resident in
// the inner archive but still count toward the hypervolume-plus-constr
// indicator.
package constrained

import (
	"fmt"
	"strings"
	"sync"

	"git.lukeshu.com/go/typedsync"

	"github.com/cma-es/moarchiving-go/lib/archive"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// Config bundles the wrapper's construction-time parameters (spec
// §4.5, §10.3 "τ and max_g_vals (constrained wrapper only)").
type Config[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	Inner    archive.MOArchive[C, F, Info]
	Tau      F
	MaxGVals []C // optional per-constraint normalization divisor

	// FromFloat64 builds an F from a raw float64, needed because the
	// HV+/HV+c indicators are computed in floating point (Euclidean
	// distances via gonum) and then have to land back in F. Required
	// whenever HypervolumePlus/HypervolumePlusConstr are called.
	FromFloat64 func(float64) F
}

type infeasibleEntry[C scalar.Value[C], Info any] struct {
	objective  []C
	constraint []C
	info       Info
}

// Archive is the constrained wrapper (spec §4.5, component D). Reads
// (Hypervolume*, Dominates, ...) take the shared RWMutex's read lock,
// so they can run concurrently with each other on an otherwise
// quiescent archive (spec §5); Add and the other mutators take the
// write lock, matching the inner archive's own single-writer model.
type Archive[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	mu sync.RWMutex

	inner       archive.MOArchive[C, F, Info]
	tau         F
	maxG        []C
	fromFloat64 func(float64) F

	infeasible []infeasibleEntry[C, Info]

	// constraintsByResident indexes each feasible resident's
	// constraint vector by an encoding of its objective vector, the
	// wrapper's feasibility index (spec SPEC_FULL §11: "typedsync's
	// generic Map[K,V] backs the constrained wrapper's feasibility
	// index"). A lock-free map rather than a plain map is overkill
	// given every write already runs under a.mu's exclusive lock, but
	// it's also free: At and similar readers can still Load
	// concurrently with each other without adding a second mutex,
	// the same handle-table role typedsync.Map plays in the teacher's
	// cmd/btrfs-rec/inspect/mount/mount.go.
	constraintsByResident typedsync.Map[string, []C]
}

// New wraps an existing inner archive. The inner archive must start
// empty; constrained.Archive owns all insertion from here on so that
// its feasibility bookkeeping stays consistent.
func New[C scalar.Value[C], F scalar.Value[F], Info any](cfg Config[C, F, Info]) *Archive[C, F, Info] {
	return &Archive[C, F, Info]{
		inner:       cfg.Inner,
		tau:         cfg.Tau,
		maxG:        cfg.MaxGVals,
		fromFloat64: cfg.FromFloat64,
	}
}

// Feasible reports whether every coordinate of g is <= 0.
func Feasible[C scalar.Value[C]](g []C) bool {
	var zero C
	for _, c := range g {
		if c.Cmp(zero) > 0 {
			return false
		}
	}
	return true
}

// encodeVector builds an exact index key from a coordinate vector,
// one %v-formatted field per coordinate (scalar.Rat's String prints
// its exact rational form, so two distinct Rat values never collide
// the way a float64-truncated key would). Coordinates are joined by a
// separator that cannot appear inside a formatted field, so vectors of
// different lengths or different splits never alias each other.
func encodeVector[C scalar.Value[C]](p []C) string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = fmt.Sprintf("%v", c)
	}
	return strings.Join(parts, "|")
}

// Add inserts (p, g, info). If g is feasible, p is added to the inner
// archive exactly as archive.MOArchive.Add would; if infeasible, p is
// recorded for the HV+/HV+c indicators but never becomes resident.
func (a *Archive[C, F, Info]) Add(p, g []C, info Info) (idx int, feasible bool, accepted bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	feasible = Feasible(g)
	if !feasible {
		a.infeasible = append(a.infeasible, infeasibleEntry[C, Info]{
			objective:  append([]C(nil), p...),
			constraint: append([]C(nil), g...),
			info:       info,
		})
		return -1, false, false
	}

	idx, ok := a.inner.Add(p, info)
	if ok {
		a.constraintsByResident.Store(encodeVector(p), append([]C(nil), g...))
	}
	return idx, true, ok
}

// AddList inserts a batch one at a time.
func (a *Archive[C, F, Info]) AddList(ps, gs [][]C, infos []Info) int {
	count := 0
	for i, p := range ps {
		var info Info
		if infos != nil {
			info = infos[i]
		}
		if _, _, ok := a.Add(p, gs[i], info); ok {
			count++
		}
	}
	return count
}

// Len returns the number of feasible residents.
func (a *Archive[C, F, Info]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.Len()
}

// At returns the feasible resident and its constraint vector at idx,
// in the inner archive's iteration order.
func (a *Archive[C, F, Info]) At(idx int) (p []C, g []C, info Info, err error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, info, err = a.inner.At(idx)
	if err != nil {
		return nil, nil, info, err
	}
	g, _ = a.constraintsByResident.Load(encodeVector(p))
	return p, g, info, nil
}

// Infeasible returns every recorded infeasible (objective, constraint)
// pair, in insertion order.
func (a *Archive[C, F, Info]) Infeasible() (objectives, constraints [][]C, infos []Info) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, e := range a.infeasible {
		objectives = append(objectives, append([]C(nil), e.objective...))
		constraints = append(constraints, append([]C(nil), e.constraint...))
		infos = append(infos, e.info)
	}
	return objectives, constraints, infos
}

// Clear empties both the inner archive and the infeasible record.
func (a *Archive[C, F, Info]) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inner.Clear()
	a.infeasible = nil
	a.constraintsByResident = typedsync.Map[string, []C]{}
}

// Dominates, Dominators, InDomainPoint, Contains pass straight through
// to the inner archive under the read lock.
func (a *Archive[C, F, Info]) Dominates(p []C) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.Dominates(p)
}

func (a *Archive[C, F, Info]) Dominators(p []C) [][]C {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.Dominators(p)
}

func (a *Archive[C, F, Info]) Contains(p []C) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.Contains(p)
}

// Inner exposes the wrapped archive for normalization setup and
// direct feasible-only queries the wrapper doesn't add value to.
func (a *Archive[C, F, Info]) Inner() archive.MOArchive[C, F, Info] {
	return a.inner
}
