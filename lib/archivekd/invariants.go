package archivekd

import "fmt"

// CheckInvariants verifies the archive's structural invariants,
// analogous to archive2d.CheckInvariants but without the F1/F2
// ordering invariant (kD residents are only ordered by f1, which
// alone implies nothing about mutual non-domination).
func (a *Archive[C, F, Info]) CheckInvariants() error {
	pts := a.allPoints()

	for i, p := range pts {
		if len(p) != a.dim {
			return fmt.Errorf("archivekd: resident %d has %d coordinates, want %d", i, len(p), a.dim)
		}
	}

	for i := range pts {
		for j := range pts {
			if i == j {
				continue
			}
			if pts[j].weaklyDominates(pts[i]) {
				return fmt.Errorf("archivekd: resident %d is weakly dominated by resident %d", i, j)
			}
		}
	}

	if a.ref == nil {
		return nil
	}

	for i, p := range pts {
		if !p.inDomain(a.ref) {
			return fmt.Errorf("archivekd: resident %d is outside the reference domain", i)
		}
	}

	fresh := hypervolumeGrid(pts, a.ref)
	if fresh.Cmp(a.h) != 0 {
		return fmt.Errorf("archivekd: cached hypervolume %v disagrees with recomputed %v", a.h, fresh)
	}

	return nil
}
