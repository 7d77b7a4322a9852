package constrained

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Hypervolume is the ordinary feasible-only indicator: the inner
// archive's hypervolume, ignoring every infeasible entry entirely
// (spec §4.5 "hypervolume ignores infeasible solutions altogether").
func (a *Archive[C, F, Info]) Hypervolume() (C, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inner.Hypervolume()
}

// HypervolumePlus is the feasible hypervolume when the archive holds
// at least one feasible resident; otherwise it's the negated minimum
// Euclidean distance from any recorded infeasible objective vector to
// the feasible region (approximated, as the original does, by the
// distance to the reference point) — so an entirely-infeasible archive
// still orders candidates by how close they came (spec §4.5
// "hypervolume_plus").
func (a *Archive[C, F, Info]) HypervolumePlus() (F, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var zero F
	if a.inner.Len() > 0 {
		h, err := a.inner.Hypervolume()
		if err != nil {
			return zero, err
		}
		return a.fromFloat64(h.Float64()), nil
	}
	if len(a.infeasible) == 0 {
		return a.fromFloat64(math.Inf(-1)), nil
	}
	ref, ok := a.inner.ReferencePoint()
	if !ok {
		return zero, nil
	}
	best := a.minDistanceToRef(ref)
	return a.fromFloat64(-best), nil
}

// HypervolumePlusConstr additionally penalizes infeasibility by
// constraint violation when there is no feasible resident at all: the
// indicator becomes the negated maximum of (a) the minimum Euclidean
// distance from a recorded infeasible objective vector to the
// reference point and (b) tau times the minimum normalized constraint
// violation across recorded infeasible entries.
func (a *Archive[C, F, Info]) HypervolumePlusConstr() (F, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var zero F
	if a.inner.Len() > 0 {
		h, err := a.inner.Hypervolume()
		if err != nil {
			return zero, err
		}
		return a.fromFloat64(h.Float64()), nil
	}
	if len(a.infeasible) == 0 {
		return a.fromFloat64(math.Inf(-1)), nil
	}
	ref, ok := a.inner.ReferencePoint()
	distTerm := 0.0
	if ok {
		distTerm = a.minDistanceToRef(ref)
	}
	violTerm := a.tau.Float64() * a.minNormalizedViolation()
	worst := distTerm
	if violTerm > worst {
		worst = violTerm
	}
	return a.fromFloat64(-worst), nil
}

func (a *Archive[C, F, Info]) minDistanceToRef(ref []C) float64 {
	refF := make([]float64, len(ref))
	for i, c := range ref {
		refF[i] = c.Float64()
	}
	best := -1.0
	for _, e := range a.infeasible {
		pF := make([]float64, len(e.objective))
		for i, c := range e.objective {
			pF[i] = c.Float64()
		}
		d := floats.Distance(pF, refF, 2)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// minNormalizedViolation returns the smallest, over all recorded
// infeasible entries, of that entry's worst normalized constraint
// coordinate (g_i / max_g_i when MaxGVals is set, raw g_i otherwise),
// clamped to be non-negative (a feasible coordinate contributes 0).
func (a *Archive[C, F, Info]) minNormalizedViolation() float64 {
	best := -1.0
	for _, e := range a.infeasible {
		worst := 0.0
		for i, c := range e.constraint {
			v := c.Float64()
			if a.maxG != nil && i < len(a.maxG) {
				if denom := a.maxG[i].Float64(); denom != 0 {
					v /= denom
				}
			}
			if v < 0 {
				v = 0
			}
			if v > worst {
				worst = v
			}
		}
		if best < 0 || worst < best {
			best = worst
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
