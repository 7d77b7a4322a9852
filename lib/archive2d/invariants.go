package archive2d

import "fmt"

// CheckInvariants verifies the archive's structural invariants (spec
// §5 I1-I4), returning a plain error describing the first violation
// found. Callers on the debug self-check path turn this into a panic
// via archiveerr.Inconsistent (spec §9 "make_expensive_asserts").
func (a *Archive[C, F, Info]) CheckInvariants() error {
	if len(a.infos) != len(a.points) {
		return fmt.Errorf("archive2d: %d points but %d infos", len(a.points), len(a.infos))
	}

	// I1: strictly ascending F1, strictly descending F2.
	for i := 1; i < len(a.points); i++ {
		prev, cur := a.points[i-1], a.points[i]
		if prev.F1.Cmp(cur.F1) >= 0 {
			return fmt.Errorf("archive2d: F1 not strictly ascending at index %d", i)
		}
		if prev.F2.Cmp(cur.F2) <= 0 {
			return fmt.Errorf("archive2d: F2 not strictly descending at index %d", i)
		}
	}

	if a.ref == nil {
		return nil
	}

	// Every resident must lie in the reference domain.
	for i, p := range a.points {
		if !p.inDomain(*a.ref) {
			return fmt.Errorf("archive2d: resident %d is outside the reference domain", i)
		}
	}

	// I2: the cached hypervolume matches a from-scratch recomputation.
	fresh := a.computeHypervolumeFromScratch(*a.ref)
	if fresh.Cmp(a.h) != 0 {
		return fmt.Errorf("archive2d: cached hypervolume %v disagrees with recomputed %v", a.h, fresh)
	}

	// I3: every individual contribution is non-negative, and their sum
	// never exceeds the cached hypervolume — overlapping staircase
	// rectangles mean contributions (measured against each element's
	// own left neighbour) are additive only in the single-element case.
	var sum C
	for i := range a.points {
		c := a.contributionAt(a.points, i)
		var zero C
		if c.Cmp(zero) < 0 {
			return fmt.Errorf("archive2d: negative contribution at index %d", i)
		}
		sum = sum.Add(c)
	}
	if sum.Cmp(a.h) > 0 {
		return fmt.Errorf("archive2d: sum of contributions %v exceeds cached hypervolume %v", sum, a.h)
	}
	if len(a.points) == 1 && sum.Cmp(a.h) != 0 {
		return fmt.Errorf("archive2d: single-resident contribution %v disagrees with cached hypervolume %v", sum, a.h)
	}

	return nil
}
