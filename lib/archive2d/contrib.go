package archive2d

// leftF2 returns the F2 coordinate used as the left neighbour of
// points[idx] for per-element *contribution* purposes:
// points[idx-1].F2, or ref.F2 for the virtual left neighbour when
// idx==0 (spec §3 "Contribution (2D)"). This is deliberately distinct
// from the height used by the archive-wide hypervolume slice (which
// always measures down from ref.F2) — the gap between the two is
// exactly why invariant I3 allows Σcontributions < H.
func (a *Archive[C, F, Info]) leftF2(points []Point2[C], idx int) C {
	if idx > 0 {
		return points[idx-1].F2
	}
	return a.ref.F2
}

// rightF1 returns the F1 coordinate used as the right neighbour of
// points[idx]: points[idx+1].F1, or ref.F1 for the virtual right
// neighbour when idx is the last element. This one IS shared between
// the contribution formula and the hypervolume slice formula, since
// both measure width the same way.
func (a *Archive[C, F, Info]) rightF1(points []Point2[C], idx int) C {
	if idx+1 < len(points) {
		return points[idx+1].F1
	}
	return a.ref.F1
}

// contributionAt computes the per-element exclusive contribution
// c_idx = (rightF1 - points[idx].F1) * (leftF2 - points[idx].F2): the
// hypervolume lost if points[idx] alone were removed from the archive
// (spec §3, glossary "Contributing hypervolume"). Requires a.ref !=
// nil.
func (a *Archive[C, F, Info]) contributionAt(points []Point2[C], idx int) C {
	p := points[idx]
	dx := a.rightF1(points, idx).Sub(p.F1)
	dy := a.leftF2(points, idx).Sub(p.F2)
	return dx.Mul(dy)
}

// sumContributions sums contributionAt over [lo, hi] inclusive,
// against the given (pre-mutation) points slice.
func (a *Archive[C, F, Info]) sumContributions(points []Point2[C], lo, hi int) C {
	var sum C
	for idx := lo; idx <= hi; idx++ {
		sum = sum.Add(a.contributionAt(points, idx))
	}
	return sum
}

// sliceAt computes the i-th vertical slice of the archive-wide
// hypervolume: (rightF1 - points[idx].F1) * (ref.F2 - points[idx].F2).
// Unlike contributionAt, the height is always measured down from
// ref.F2 — consecutive slices are disjoint and their sum is the exact
// total area of the dominated region (glossary "Hypervolume (2D)").
func (a *Archive[C, F, Info]) sliceAt(points []Point2[C], idx int) C {
	p := points[idx]
	dx := a.rightF1(points, idx).Sub(p.F1)
	dy := a.ref.F2.Sub(p.F2)
	return dx.Mul(dy)
}

// computeHypervolumeFromScratch recomputes the 2D hypervolume of a's
// current points w.r.t. an arbitrary reference point, in O(n), without
// touching the cached a.h (spec §4.3 "compute_hypervolume(r')").
func (a *Archive[C, F, Info]) computeHypervolumeFromScratch(ref Point2[C]) C {
	saved := a.ref
	a.ref = &ref
	defer func() { a.ref = saved }()

	var sum C
	for idx := range a.points {
		sum = sum.Add(a.sliceAt(a.points, idx))
	}
	return sum
}

// ComputeHypervolume is the public "compute_hypervolume(r')" query: it
// never mutates the archive's stored reference point or cached H.
func (a *Archive[C, F, Info]) ComputeHypervolume(ref Point2[C]) C {
	return a.computeHypervolumeFromScratch(ref)
}

// ContributingHypervolumeAt is "contributing_hypervolume(idx)"; it
// requires a reference point to be set.
func (a *Archive[C, F, Info]) ContributingHypervolumeAt(idx int) (C, error) {
	var zero C
	if a.ref == nil {
		return zero, archiveerrNotInitialized()
	}
	if idx < 0 || idx >= len(a.points) {
		return zero, archiveerrOutOfRange(idx, len(a.points))
	}
	return a.contributionAt(a.points, idx), nil
}

// ContributingHypervolumeOf is "contributing_hypervolume(pair)": p
// must equal a resident exactly.
func (a *Archive[C, F, Info]) ContributingHypervolumeOf(p Point2[C]) (C, error) {
	var zero C
	i := a.BisectLeft(p, 0)
	if i >= len(a.points) || !a.points[i].equal(p) {
		return zero, archiveerrOutOfRange(-1, len(a.points))
	}
	return a.ContributingHypervolumeAt(i)
}

// ContributingHypervolumes returns the contribution of every resident,
// in ascending F1 order (spec §6 "contributing_hypervolumes").
func (a *Archive[C, F, Info]) ContributingHypervolumes() ([]C, error) {
	if a.ref == nil {
		return nil, archiveerrNotInitialized()
	}
	out := make([]C, len(a.points))
	for idx := range a.points {
		out[idx] = a.contributionAt(a.points, idx)
	}
	return out, nil
}

// Hypervolume returns the cached exact hypervolume w.r.t. the
// archive's reference point.
func (a *Archive[C, F, Info]) Hypervolume() (C, error) {
	var zero C
	if a.ref == nil {
		return zero, archiveerrNotInitialized()
	}
	return a.h, nil
}
