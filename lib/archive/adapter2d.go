package archive

import (
	"github.com/cma-es/moarchiving-go/lib/archive2d"
	"github.com/cma-es/moarchiving-go/lib/archiveerr"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// adapter2D wraps *archive2d.Archive to satisfy MOArchive, converting
// between []C and archive2d.Point2[C] at every boundary. A vector of
// the wrong arity panics nowhere — callers that feed it a non-2-length
// slice get back zero values, matching the package-local convention
// that arity is checked once at the outermost boundary (the factory's
// New, and each mutating call here).
type adapter2D[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	a *archive2d.Archive[C, F, Info]
}

// Wrap2D adapts an existing *archive2d.Archive to the dimension-erased
// MOArchive contract.
func Wrap2D[C scalar.Value[C], F scalar.Value[F], Info any](a *archive2d.Archive[C, F, Info]) MOArchive[C, F, Info] {
	return adapter2D[C, F, Info]{a: a}
}

func toPoint2[C scalar.Value[C]](p []C) (archive2d.Point2[C], error) {
	if len(p) != 2 {
		var zero archive2d.Point2[C]
		return zero, archiveerr.Arityf("archive: expected a 2-coordinate vector, got %d", len(p))
	}
	return archive2d.Point2[C]{F1: p[0], F2: p[1]}, nil
}

func fromPoint2[C scalar.Value[C]](p archive2d.Point2[C]) []C {
	return []C{p.F1, p.F2}
}

func fromPoint2s[C scalar.Value[C]](ps []archive2d.Point2[C]) [][]C {
	out := make([][]C, len(ps))
	for i, p := range ps {
		out[i] = fromPoint2(p)
	}
	return out
}

func (w adapter2D[C, F, Info]) Dim() int { return 2 }
func (w adapter2D[C, F, Info]) Len() int { return w.a.Len() }

func (w adapter2D[C, F, Info]) At(idx int) ([]C, Info, error) {
	p, info, err := w.a.At(idx)
	if err != nil {
		var zero Info
		return nil, zero, err
	}
	return fromPoint2(p), info, nil
}

func (w adapter2D[C, F, Info]) Range(fn func(idx int, p []C, info Info) bool) {
	w.a.Range(func(idx int, p archive2d.Point2[C], info Info) bool {
		return fn(idx, fromPoint2(p), info)
	})
}

func (w adapter2D[C, F, Info]) Infos() []Info { return w.a.Infos() }

func (w adapter2D[C, F, Info]) Discarded() [][]C { return fromPoint2s(w.a.Discarded()) }

func (w adapter2D[C, F, Info]) DiscardedInfos() []Info { return w.a.DiscardedInfos() }

func (w adapter2D[C, F, Info]) ReferencePoint() ([]C, bool) {
	p, ok := w.a.ReferencePoint()
	if !ok {
		return nil, false
	}
	return fromPoint2(p), true
}

func (w adapter2D[C, F, Info]) Clear() { w.a.Clear() }

func (w adapter2D[C, F, Info]) CheckInvariants() error { return w.a.CheckInvariants() }

func (w adapter2D[C, F, Info]) InDomainPoint(p []C) bool {
	p2, err := toPoint2(p)
	if err != nil {
		return false
	}
	return w.a.InDomainPoint(p2)
}

func (w adapter2D[C, F, Info]) InDomainIndex(idx int) bool { return w.a.InDomainIndex(idx) }

func (w adapter2D[C, F, Info]) Dominates(p []C) bool {
	p2, err := toPoint2(p)
	if err != nil {
		return false
	}
	return w.a.Dominates(p2)
}

func (w adapter2D[C, F, Info]) Dominators(p []C) [][]C {
	p2, err := toPoint2(p)
	if err != nil {
		return nil
	}
	return fromPoint2s(w.a.Dominators(p2))
}

func (w adapter2D[C, F, Info]) DominatorCount(p []C) int {
	p2, err := toPoint2(p)
	if err != nil {
		return 0
	}
	return w.a.DominatorCount(p2)
}

func (w adapter2D[C, F, Info]) Contains(p []C) bool {
	p2, err := toPoint2(p)
	if err != nil {
		return false
	}
	return w.a.Contains(p2)
}

func (w adapter2D[C, F, Info]) Add(p []C, info Info) (int, bool) {
	p2, err := toPoint2(p)
	if err != nil {
		return -1, false
	}
	return w.a.Add(p2, info)
}

func (w adapter2D[C, F, Info]) AddList(ps [][]C, infos []Info) int {
	count := 0
	for idx, p := range ps {
		var info Info
		if infos != nil {
			info = infos[idx]
		}
		if _, ok := w.Add(p, info); ok {
			count++
		}
	}
	return count
}

func (w adapter2D[C, F, Info]) Merge(ps [][]C, infos []Info) int {
	points := make([]archive2d.Point2[C], 0, len(ps))
	valid := make([]Info, 0, len(ps))
	for idx, p := range ps {
		p2, err := toPoint2(p)
		if err != nil {
			continue
		}
		points = append(points, p2)
		if infos != nil {
			valid = append(valid, infos[idx])
		}
	}
	if infos == nil {
		valid = nil
	}
	return w.a.Merge(points, valid)
}

func (w adapter2D[C, F, Info]) Prune() int { return w.a.Prune() }

func (w adapter2D[C, F, Info]) RemoveAt(idx int) error { return w.a.RemoveAt(idx) }

func (w adapter2D[C, F, Info]) Hypervolume() (C, error) { return w.a.Hypervolume() }

func (w adapter2D[C, F, Info]) ContributingHypervolumeAt(idx int) (C, error) {
	return w.a.ContributingHypervolumeAt(idx)
}

func (w adapter2D[C, F, Info]) ContributingHypervolumeOf(p []C) (C, error) {
	var zero C
	p2, err := toPoint2(p)
	if err != nil {
		return zero, err
	}
	return w.a.ContributingHypervolumeOf(p2)
}

func (w adapter2D[C, F, Info]) ContributingHypervolumes() ([]C, error) {
	return w.a.ContributingHypervolumes()
}

func (w adapter2D[C, F, Info]) HypervolumeImprovement(p []C) (C, error) {
	var zero C
	p2, err := toPoint2(p)
	if err != nil {
		return zero, err
	}
	return w.a.HypervolumeImprovement(p2)
}

func (w adapter2D[C, F, Info]) DistanceToParetoFront(p []C) (F, error) {
	var zero F
	p2, err := toPoint2(p)
	if err != nil {
		return zero, err
	}
	return w.a.DistanceToParetoFront(p2)
}

func (w adapter2D[C, F, Info]) SetNormalization(ideal, weights []C) {
	idealP, err1 := toPoint2(ideal)
	weightsP, err2 := toPoint2(weights)
	if err1 != nil || err2 != nil {
		return
	}
	w.a.SetNormalization(idealP, weightsP)
}

func (w adapter2D[C, F, Info]) Normalization() (ideal, weights []C) {
	idealP, weightsP := w.a.Normalization()
	if idealP == nil || weightsP == nil {
		return nil, nil
	}
	return fromPoint2(*idealP), fromPoint2(*weightsP)
}
