package archive2d

// HypervolumeImprovement is the uncrowded-hypervolume-improvement
// (UHVI) query (spec §4.3 "UHVI: hypervolume_improvement(p)"). It
// never mutates the archive. Requires a reference point.
//
//   - p weakly dominated by some resident: returns the negative of the
//     squared distance from p to the dominated region's boundary.
//   - p non-dominated and in domain: returns the positive hypervolume
//     increase adding p would produce.
//   - p non-dominated but out of domain on one axis: returns the
//     positive rectangular contribution with the offending axis
//     clipped to the reference point.
func (a *Archive[C, F, Info]) HypervolumeImprovement(p Point2[C]) (C, error) {
	var zero C
	if a.ref == nil {
		return zero, archiveerrNotInitialized()
	}

	if dominators := a.Dominators(p); len(dominators) > 0 {
		dist := a.distanceToDominatedBoundary(p, dominators)
		return zero.Sub(dist.Mul(dist)), nil
	}

	if !p.inDomain(*a.ref) {
		clipped := p
		if clipped.F1.Cmp(a.ref.F1) >= 0 {
			clipped.F1 = a.ref.F1
		}
		if clipped.F2.Cmp(a.ref.F2) >= 0 {
			clipped.F2 = a.ref.F2
		}
		return a.hypotheticalContribution(clipped), nil
	}

	return a.hypotheticalContribution(p), nil
}

// distanceToDominatedBoundary is the min(dx, dy) orthogonal distance
// from a dominated p to the nearest edge of the staircase: dx escapes
// via the f1 axis against the leftmost dominator (smallest F1, hence
// the binding constraint for an f1-only escape); dy escapes via the
// f2 axis against the rightmost dominator (smallest F2, the binding
// constraint for an f2-only escape). Both projections land within the
// staircase's segment extents for a contiguous dominator range, so the
// true nearest-point distance is exactly this minimum.
func (a *Archive[C, F, Info]) distanceToDominatedBoundary(p Point2[C], dominators []Point2[C]) C {
	lo := dominators[0]
	hi := dominators[len(dominators)-1]
	dx := p.F1.Sub(lo.F1)
	dy := p.F2.Sub(hi.F2)
	if dx.Cmp(dy) <= 0 {
		return dx
	}
	return dy
}

// hypotheticalContribution computes the hypervolume that inserting p
// would add, without mutating the archive (spec §4.3 "Algorithm for
// the non-dominated case", cost note: touch only the affected span).
//
// Inserting p only changes three kinds of slices (see sliceAt): the
// cascade-removed residents L[i..j] vanish outright; a brand new slice
// for p appears, bounded by L[i-1] on the left and L[j+1] on the
// right; and L[i-1]'s own slice narrows, because its right neighbour
// becomes p instead of the old L[i]. Every other resident's slice is
// untouched — sliceAt never looks past its immediate right neighbour.
func (a *Archive[C, F, Info]) hypotheticalContribution(p Point2[C]) C {
	i := a.BisectLeft(p, 0)
	j := i
	for j < len(a.points) && a.points[j].F2.Cmp(p.F2) >= 0 {
		j++
	}
	j--

	var delta C

	if i > 0 {
		left := a.points[i-1]
		oldLeftSlice := a.sliceAt(a.points, i-1)
		newLeftSlice := p.F1.Sub(left.F1).Mul(a.ref.F2.Sub(left.F2))
		delta = delta.Add(newLeftSlice).Sub(oldLeftSlice)
	}

	if j >= i {
		delta = delta.Sub(a.sumSlices(a.points, i, j))
	}

	var rightF1 C
	if j+1 < len(a.points) {
		rightF1 = a.points[j+1].F1
	} else {
		rightF1 = a.ref.F1
	}
	newPSlice := rightF1.Sub(p.F1).Mul(a.ref.F2.Sub(p.F2))
	delta = delta.Add(newPSlice)

	return delta
}

// sumSlices sums sliceAt over [lo, hi] inclusive, against the given
// (pre-mutation) points slice.
func (a *Archive[C, F, Info]) sumSlices(points []Point2[C], lo, hi int) C {
	var sum C
	for idx := lo; idx <= hi; idx++ {
		sum = sum.Add(a.sliceAt(points, idx))
	}
	return sum
}

// DistanceToParetoFront is the non-negative Euclidean-distance query
// (spec §4.3 table, §9 "Euclidean in distance_to_pareto_front"). For
// non-dominated p it is 0 (p already lies on or beyond the front);
// for dominated p it is the square root of the magnitude of
// HypervolumeImprovement(p), per law (L4) `hypervolume_improvement(p)
// = -distance_to_pareto_front(p)^2`.
func (a *Archive[C, F, Info]) DistanceToParetoFront(p Point2[C]) (F, error) {
	var zeroF F
	if a.ref == nil {
		return zeroF, archiveerrNotInitialized()
	}

	dominators := a.Dominators(p)
	if len(dominators) == 0 {
		var zero C
		return a.toFinal(zero), nil
	}

	// The orthogonal escape distance computed below is already the
	// Euclidean distance to the staircase: the nearest point on a
	// contiguous dominator range's boundary always lies on an
	// axis-aligned segment, never off a corner.
	dist := a.distanceToDominatedBoundary(p, dominators)
	return a.toFinal(dist), nil
}
