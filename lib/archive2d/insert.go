package archive2d

import (
	"sort"

	"github.com/cma-es/moarchiving-go/lib/archiveerr"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// Add is the insertion algorithm of spec §4.3: it returns the
// insertion index and true on success, or (-1, false) if p is
// weakly dominated or out of domain — both are successful no-ops,
// never errors (spec §7 "Insertions that are dominated are silently
// ignored").
func (a *Archive[C, F, Info]) Add(p Point2[C], info Info) (int, bool) {
	a.discarded = a.discarded[:0]
	a.discardedInfo = a.discardedInfo[:0]

	// Step 1: domain filter.
	if a.ref != nil && !p.inDomain(*a.ref) {
		return -1, false
	}

	// Step 2: locate.
	i := a.BisectLeft(p, 0)

	// Step 3: dominance filter.
	if i > 0 && a.points[i-1].weaklyDominates(p) {
		return -1, false
	}
	if i < len(a.points) && a.points[i].weaklyDominates(p) {
		return -1, false
	}

	a.spliceIn(i, p, info)

	if a.debug {
		if err := a.CheckInvariants(); err != nil {
			archiveerr.Inconsistent("archive2d.Add: %v", err)
		}
	}
	return i, true
}

// spliceIn performs steps 4-7 of the insertion algorithm starting
// from a located, non-dominated index i: cascade-remove every
// resident p would dominate, splice p in, record the discarded
// residents, and patch the cached hypervolume in place. The patch is
// exactly hypotheticalContribution's delta (the cascade-removed
// slices vanish, the surviving left neighbour's slice narrows, and
// p's own new slice appears), computed against the pre-mutation
// a.points before anything is spliced — reusing the same locality
// argument that makes that query correct rather than re-deriving it.
func (a *Archive[C, F, Info]) spliceIn(i int, p Point2[C], info Info) {
	j := i
	for j < len(a.points) && a.points[j].F2.Cmp(p.F2) >= 0 {
		j++
	}
	j--

	removedPoints := append([]Point2[C](nil), a.points[i:max(i, j+1)]...)
	removedInfos := append([]Info(nil), a.infos[i:max(i, j+1)]...)

	var delta C
	haveRef := a.ref != nil
	if haveRef {
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
	}

	switch {
	case j >= i:
		a.points[i] = p
		a.infos[i] = info
		a.points = append(a.points[:i+1], a.points[j+1:]...)
		a.infos = append(a.infos[:i+1], a.infos[j+1:]...)
	default:
		a.points = append(a.points, Point2[C]{})
		copy(a.points[i+1:], a.points[i:])
		a.points[i] = p

		a.infos = append(a.infos, info)
		copy(a.infos[i+1:], a.infos[i:])
		a.infos[i] = info
	}

	if haveRef {
		a.h = a.h.Add(delta)
	}

	a.discarded = append(a.discarded, removedPoints...)
	a.discardedInfo = append(a.discardedInfo, removedInfos...)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// AddList inserts an unsorted batch one at a time, returning the
// count actually inserted (spec §4.3 "add_list").
func (a *Archive[C, F, Info]) AddList(ps []Point2[C], infos []Info) int {
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

// Merge inserts an already-F1-sorted batch, advancing the archive
// cursor alongside the batch cursor so the combined scan cost for
// locating candidates is O(|archive|+|batch|) rather than
// O(|archive|*|batch|) (spec §4.3 "Merge of a sorted batch").
func (a *Archive[C, F, Info]) Merge(ps []Point2[C], infos []Info) int {
	cur := 0
	count := 0
	for idx, p := range ps {
		cur = a.BisectLeft(p, cur)
		var info Info
		if infos != nil {
			info = infos[idx]
		}

		if a.ref != nil && !p.inDomain(*a.ref) {
			continue
		}
		if cur > 0 && a.points[cur-1].weaklyDominates(p) {
			continue
		}
		if cur < len(a.points) && a.points[cur].weaklyDominates(p) {
			continue
		}

		a.discarded = a.discarded[:0]
		a.discardedInfo = a.discardedInfo[:0]
		a.spliceIn(cur, p, info)
		count++
	}
	return count
}

// Prune re-derives the non-dominated, F1-ascending sequence from the
// current points (spec §4.3 "Pruning"): sort by F1 ascending, then a
// left-to-right scan keeping the running-minimum F2, dropping any
// element whose F2 is >= that minimum. Returns the count removed.
func (a *Archive[C, F, Info]) Prune() int {
	before := len(a.points)
	a.points, a.infos = pruneSorted(a.points, a.infos)
	// Unlike spliceIn/RemoveAt, an arbitrary subset of residents can
	// vanish here, so there is no single affected span to patch
	// incrementally; a full recompute is O(n), which the sort above
	// already costs (spec §5 buckets hypervolume work at "O(n),
	// O(n log n) (construction)", and this call is already paying the
	// O(n log n) side of that bucket).
	if a.ref != nil {
		a.h = a.computeHypervolumeFromScratch(*a.ref)
	}
	if a.debug {
		if err := a.CheckInvariants(); err != nil {
			archiveerr.Inconsistent("archive2d.Prune: %v", err)
		}
	}
	return before - len(a.points)
}

// pruneSorted implements spec §4.3 "Pruning": sort by F1 ascending
// (F2 ascending on ties), then a left-to-right scan keeping the
// running-minimum F2 seen so far, dropping any element whose F2 is
// >= that minimum. The result is the non-dominated, F1-ascending,
// F2-descending sequence the archive's invariants require.
func pruneSorted[C scalar.Value[C], Info any](points []Point2[C], infos []Info) ([]Point2[C], []Info) {
	n := len(points)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := points[idx[i]], points[idx[j]]
		if c := a.F1.Cmp(b.F1); c != 0 {
			return c < 0
		}
		return a.F2.Cmp(b.F2) < 0
	})

	outP := make([]Point2[C], 0, n)
	outI := make([]Info, 0, n)
	haveMin := false
	var runningMin C
	for _, k := range idx {
		p := points[k]
		if haveMin && p.F2.Cmp(runningMin) >= 0 {
			continue
		}
		outP = append(outP, p)
		outI = append(outI, infos[k])
		runningMin = p.F2
		haveMin = true
	}
	return outP, outI
}

// RemoveAt removes the resident at idx, preserving invariants and
// updating the cached hypervolume and info alignment (spec §6
// "container-like removal by index"). Like spliceIn, the hypervolume
// update is a local patch: idx's own slice vanishes, and its left
// neighbour's slice (if any) widens to close the gap idx leaves
// behind — every other resident's slice is unaffected.
func (a *Archive[C, F, Info]) RemoveAt(idx int) error {
	if idx < 0 || idx >= len(a.points) {
		return archiveerrOutOfRange(idx, len(a.points))
	}

	var delta C
	haveRef := a.ref != nil
	if haveRef {
		delta = delta.Sub(a.sliceAt(a.points, idx))
		if idx > 0 {
			left := a.points[idx-1]
			oldLeftSlice := a.sliceAt(a.points, idx-1)
			var rightF1 C
			if idx+1 < len(a.points) {
				rightF1 = a.points[idx+1].F1
			} else {
				rightF1 = a.ref.F1
			}
			newLeftSlice := rightF1.Sub(left.F1).Mul(a.ref.F2.Sub(left.F2))
			delta = delta.Add(newLeftSlice).Sub(oldLeftSlice)
		}
	}

	a.points = append(a.points[:idx], a.points[idx+1:]...)
	a.infos = append(a.infos[:idx], a.infos[idx+1:]...)
	if haveRef {
		a.h = a.h.Add(delta)
	}
	if a.debug {
		if err := a.CheckInvariants(); err != nil {
			archiveerr.Inconsistent("archive2d.RemoveAt: %v", err)
		}
	}
	return nil
}
