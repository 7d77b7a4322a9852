package archivekd

import "github.com/cma-es/moarchiving-go/lib/scalar"

// HypervolumeImprovement is the uncrowded-hypervolume-improvement
// query (spec §4.3 table, generalized per §4.4). Never mutates the
// archive; requires a reference point.
func (a *Archive[C, F, Info]) HypervolumeImprovement(p Point[C]) (C, error) {
	var zero C
	if a.ref == nil {
		return zero, archiveerrNotInitialized()
	}

	if dominators := a.Dominators(p); len(dominators) > 0 {
		dist := a.distanceToDominatedBoundary(p, dominators)
		return zero.Sub(dist.Mul(dist)), nil
	}

	if !p.inDomain(a.ref) {
		return a.hypotheticalContribution(clipToDomain(p, a.ref)), nil
	}
	return a.hypotheticalContribution(p), nil
}

// clipToDomain replaces every coordinate at or past the reference
// point with the reference point's own value, per spec §4.3's
// out-of-domain UHVI treatment.
func clipToDomain[C scalar.Value[C]](p, ref Point[C]) Point[C] {
	out := clonePoint(p)
	for d := range out {
		if out[d].Cmp(ref[d]) >= 0 {
			out[d] = ref[d]
		}
	}
	return out
}

// distanceToDominatedBoundary generalizes archive2d's min(dx, dy): to
// stop p from being weakly dominated by every current dominator at
// once while moving along a single axis d, p[d] must drop below the
// smallest value that axis takes among the dominators (any dominator
// with a larger value on that axis would otherwise still dominate).
// The overall nearest escape is the smallest such per-axis move.
func (a *Archive[C, F, Info]) distanceToDominatedBoundary(p Point[C], dominators []Point[C]) C {
	k := len(p)
	minCoord := clonePoint(dominators[0])
	for _, q := range dominators[1:] {
		for d := 0; d < k; d++ {
			if q[d].Cmp(minCoord[d]) < 0 {
				minCoord[d] = q[d]
			}
		}
	}
	best := p[0].Sub(minCoord[0])
	for d := 1; d < k; d++ {
		slack := p[d].Sub(minCoord[d])
		if slack.Cmp(best) < 0 {
			best = slack
		}
	}
	return best
}

// hypotheticalContribution is the hypervolume p would add if inserted
// right now, without mutating the archive. Unlike archive2d's cascade
// arithmetic, this needs no special-casing: every resident p would
// dominate has a box that is already a subset of p's own box (p
// dominates it), so including those soon-to-be-discarded residents
// alongside p changes nothing in the union measure. A direct
// recompute of the grid over residents-plus-p is exact.
func (a *Archive[C, F, Info]) hypotheticalContribution(p Point[C]) C {
	pts := a.allPoints()
	withP := make([]Point[C], 0, len(pts)+1)
	withP = append(withP, pts...)
	withP = append(withP, p)
	return hypervolumeGrid(withP, a.ref).Sub(a.h)
}

// DistanceToParetoFront mirrors archive2d's: 0 for non-dominated p,
// otherwise the linear escape distance computed above (matching law
// L4: hypervolume_improvement(p) = -distance_to_pareto_front(p)^2,
// since HypervolumeImprovement squares this same quantity).
func (a *Archive[C, F, Info]) DistanceToParetoFront(p Point[C]) (F, error) {
	var zeroF F
	if a.ref == nil {
		return zeroF, archiveerrNotInitialized()
	}
	dominators := a.Dominators(p)
	if len(dominators) == 0 {
		var zero C
		return a.toFinal(zero), nil
	}
	return a.toFinal(a.distanceToDominatedBoundary(p, dominators)), nil
}
