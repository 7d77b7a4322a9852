package archivekd

import (
	"github.com/cma-es/moarchiving-go/lib/archiveerr"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// Add inserts p (spec §4.4, same contract as archive2d.Add): rejected
// silently — (-1, false), never an error — if p is out of domain or
// weakly dominated by a resident; otherwise every resident p
// dominates is discarded and p becomes resident.
//
// archive2d narrows the dominance check to a window located by
// BisectLeft, because F2 strictly decreasing with F1 makes the
// dominator set a contiguous range. That shortcut doesn't generalize
// past 2 objectives as a *contiguous range of tree positions* (spec
// §4.4 "in 3D the window is bounded by the next few elements... in 4D
// a more general sweep"), but f1 alone still prunes the search: a
// resident can only weakly dominate p if its f1 is <= p's (domination
// requires <= on every axis, f1 included), and p can only dominate a
// resident whose f1 is >= p's. walkLE/walkGE locate that split via the
// tree's ordering and never descend into the subtree that provably
// can't contain a match, rather than walking every resident.
func (a *Archive[C, F, Info]) Add(p Point[C], info Info) (int, bool) {
	a.discarded = a.discarded[:0]
	a.discardedInfo = a.discardedInfo[:0]

	if len(p) != a.dim {
		return -1, false
	}
	if a.ref != nil && !p.inDomain(a.ref) {
		return -1, false
	}

	rejected := false
	a.t.walkLE(p[0], func(n *node[C, Info]) bool {
		resident := Point[C](n.point)
		if resident.weaklyDominates(p) {
			rejected = true
			return false
		}
		return true
	})
	if rejected {
		return -1, false
	}

	var toRemove []Point[C]
	var toRemoveInfo []Info
	a.t.walkGE(p[0], func(n *node[C, Info]) bool {
		resident := Point[C](n.point)
		if p.dominates(resident) {
			toRemove = append(toRemove, clonePoint(resident))
			toRemoveInfo = append(toRemoveInfo, n.info)
		}
		return true
	})

	for _, r := range toRemove {
		a.t.deleteByPoint(r)
	}
	a.t.insert(clonePoint(p), info)
	a.discarded = append(a.discarded, toRemove...)
	a.discardedInfo = append(a.discardedInfo, toRemoveInfo...)

	a.recomputeHypervolume()

	if a.debug {
		if err := a.CheckInvariants(); err != nil {
			archiveerr.Inconsistent("archivekd.Add: %v", err)
		}
	}
	idx, _ := a.indexOf(p)
	return idx, true
}

// AddList inserts a batch one at a time, returning the count actually
// inserted.
func (a *Archive[C, F, Info]) AddList(ps []Point[C], infos []Info) int {
	count := 0
	for idx, p := range ps {
		var info Info
		if infos != nil {
			info = infos[idx]
		}
		if _, ok := a.Add(p, info); ok {
			count++
		}
	}
	return count
}

// Merge inserts a pre-sorted batch; kD dominance isn't windowable by
// position the way archive2d's is (see Add), so this gains nothing
// over AddList beyond sharing its signature — it still adds one at a
// time.
func (a *Archive[C, F, Info]) Merge(ps []Point[C], infos []Info) int {
	return a.AddList(ps, infos)
}

// Prune re-derives the non-dominated set from the current residents.
func (a *Archive[C, F, Info]) Prune() int {
	before := a.t.Len()
	points, infos := pruneKD(a.allPoints(), a.allInfos())
	a.t = tree[C, Info]{}
	for i, p := range points {
		a.t.insert(clonePoint(p), infos[i])
	}
	a.recomputeHypervolume()
	if a.debug {
		if err := a.CheckInvariants(); err != nil {
			archiveerr.Inconsistent("archivekd.Prune: %v", err)
		}
	}
	return before - a.t.Len()
}

// pruneKD drops every point weakly dominated by another, keeping the
// rest in F1-ascending order (ties broken the same way pointCmp does).
// O(n^2), matching the full-scan dominance bookkeeping the rest of
// this package uses.
func pruneKD[C scalar.Value[C], Info any](points []Point[C], infos []Info) ([]Point[C], []Info) {
	n := len(points)
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	for i := 0; i < n; i++ {
		if !keep[i] {
			continue
		}
		for j := 0; j < n; j++ {
			if i == j || !keep[j] {
				continue
			}
			if points[i].equal(points[j]) {
				if j < i {
					keep[i] = false
				}
				continue
			}
			if points[j].weaklyDominates(points[i]) {
				keep[i] = false
				break
			}
		}
	}

	var keptP []Point[C]
	var keptI []Info
	for i := range points {
		if keep[i] {
			keptP = append(keptP, points[i])
			keptI = append(keptI, infos[i])
		}
	}

	// Insertion sort by pointCmp, carrying infos along.
	for i := 1; i < len(keptP); i++ {
		j := i
		for j > 0 && pointCmp[C](keptP[j], keptP[j-1]) < 0 {
			keptP[j], keptP[j-1] = keptP[j-1], keptP[j]
			keptI[j], keptI[j-1] = keptI[j-1], keptI[j]
			j--
		}
	}
	return keptP, keptI
}

// RemoveAt removes the resident at idx.
func (a *Archive[C, F, Info]) RemoveAt(idx int) error {
	p, _, err := a.At(idx)
	if err != nil {
		return err
	}
	a.t.deleteByPoint(p)
	a.recomputeHypervolume()
	if a.debug {
		if err := a.CheckInvariants(); err != nil {
			archiveerr.Inconsistent("archivekd.RemoveAt: %v", err)
		}
	}
	return nil
}
