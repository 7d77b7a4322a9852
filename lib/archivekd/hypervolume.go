package archivekd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// hypervolumeGrid computes the exact Lebesgue measure of the union of
// the axis-aligned boxes [point, ref] over every point (spec §4.4
// "Hypervolume uses the dimension-sweep method at each insertion").
//
// This is the coordinate-compression form of that sweep: collect the
// distinct coordinate values seen on each axis (at most len(points)+1
// of them, since ref always closes the grid on every axis), which
// partitions the domain into a grid of cells. A cell is covered iff
// its lower corner is weakly dominated by some point — the point's
// own box then necessarily covers the whole cell, since no other
// point's coordinate value falls strictly inside the cell on that
// axis. Summing the volume of every covered cell gives the exact
// union measure without any double-counting. For the archive sizes
// this package targets (3-4 objectives, a few dozen residents at
// most) the resulting O(n^(k+1)) cost is the "brief" treatment spec
// §4.4 asks for; component E never claims archive2d's asymptotics.
func hypervolumeGrid[C scalar.Value[C]](points []Point[C], ref Point[C]) C {
	var zero C
	if len(points) == 0 {
		return zero
	}
	k := len(ref)

	breaks := make([][]C, k)
	for d := 0; d < k; d++ {
		vals := make([]C, 0, len(points)+1)
		for _, p := range points {
			vals = append(vals, p[d])
		}
		vals = append(vals, ref[d])
		sort.Slice(vals, func(i, j int) bool { return vals[i].Cmp(vals[j]) < 0 })
		dedup := vals[:0]
		for i, v := range vals {
			if i == 0 || v.Cmp(vals[i-1]) != 0 {
				dedup = append(dedup, v)
			}
		}
		breaks[d] = dedup
	}

	idx := make([]int, k)
	var total C
	for {
		lower := make(Point[C], k)
		width := make([]C, k)
		inRange := true
		for d := 0; d < k; d++ {
			if idx[d]+1 >= len(breaks[d]) {
				inRange = false
				break
			}
			lower[d] = breaks[d][idx[d]]
			width[d] = breaks[d][idx[d]+1].Sub(breaks[d][idx[d]])
		}
		if inRange {
			if covered(points, lower) {
				vol := width[0]
				for d := 1; d < k; d++ {
					vol = vol.Mul(width[d])
				}
				total = total.Add(vol)
			}
		}

		d := k - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < len(breaks[d])-1 {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			break
		}
	}
	return total
}

func covered[C scalar.Value[C]](points []Point[C], cellLower Point[C]) bool {
	for _, p := range points {
		if p.weaklyDominates(cellLower) {
			return true
		}
	}
	return false
}

// recomputeHypervolume refreshes the cached total hypervolume and
// invalidates the per-element contributing-hypervolume cache (spec
// §4.4 "contributing hypervolumes are cached per element").
func (a *Archive[C, F, Info]) recomputeHypervolume() {
	if a.ref == nil {
		return
	}
	a.h = hypervolumeGrid(a.allPoints(), a.ref)
	a.contribCache.Purge()
}

// ContributingHypervolumeAt is H(archive) - H(archive without the
// resident at idx): the marginal hypervolume loss from removing it
// (spec §4.3 table, generalized per §4.4).
func (a *Archive[C, F, Info]) ContributingHypervolumeAt(idx int) (C, error) {
	var zero C
	if a.ref == nil {
		return zero, archiveerrNotInitialized()
	}
	pts := a.allPoints()
	if idx < 0 || idx >= len(pts) {
		return zero, archiveerrOutOfRange(idx, len(pts))
	}

	key := cacheKey(pts[idx])
	if v, ok := a.contribCache.Get(key); ok {
		return v, nil
	}

	without := make([]Point[C], 0, len(pts)-1)
	without = append(without, pts[:idx]...)
	without = append(without, pts[idx+1:]...)
	c := a.h.Sub(hypervolumeGrid(without, a.ref))

	a.contribCache.Add(key, c)
	return c, nil
}

// ContributingHypervolumeOf looks up a resident by value and returns
// its contribution, or ErrOutOfRange if p is not resident.
func (a *Archive[C, F, Info]) ContributingHypervolumeOf(p Point[C]) (C, error) {
	var zero C
	idx, ok := a.indexOf(p)
	if !ok {
		return zero, archiveerrOutOfRange(-1, a.Len())
	}
	return a.ContributingHypervolumeAt(idx)
}

// ContributingHypervolumes returns every resident's contribution, in
// ascending-F1 order.
func (a *Archive[C, F, Info]) ContributingHypervolumes() ([]C, error) {
	pts := a.allPoints()
	out := make([]C, len(pts))
	for i := range pts {
		c, err := a.ContributingHypervolumeAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// ComputeHypervolume is the public "compute_hypervolume(r')" query: the
// hypervolume of the current residents w.r.t. ref, computed from
// scratch. It never mutates the stored reference point or cached H.
func (a *Archive[C, F, Info]) ComputeHypervolume(ref Point[C]) C {
	return hypervolumeGrid(a.allPoints(), ref)
}

// Hypervolume returns the cached total hypervolume.
func (a *Archive[C, F, Info]) Hypervolume() (C, error) {
	var zero C
	if a.ref == nil {
		return zero, archiveerrNotInitialized()
	}
	return a.h, nil
}

// cacheKey builds an exact per-point cache key out of each coordinate's
// %v-formatted form (scalar.Rat prints its exact rational string, so
// two distinct Rat points can never collide the way a float64*1e9
// truncation would, silently handing back another point's cached
// contribution).
func cacheKey[C scalar.Value[C]](p Point[C]) string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = fmt.Sprintf("%v", c)
	}
	return strings.Join(parts, "|")
}
