package archive

import (
	"github.com/cma-es/moarchiving-go/lib/archivekd"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// adapterKD wraps *archivekd.Archive to satisfy MOArchive. Unlike
// adapter2D, no shape conversion is needed: archivekd.Point[C] is
// already a []C underneath, so every method here is a thin pass-through.
type adapterKD[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	a *archivekd.Archive[C, F, Info]
}

// WrapKD adapts an existing *archivekd.Archive to the
// dimension-erased MOArchive contract.
func WrapKD[C scalar.Value[C], F scalar.Value[F], Info any](a *archivekd.Archive[C, F, Info]) MOArchive[C, F, Info] {
	return adapterKD[C, F, Info]{a: a}
}

func toPoints[C scalar.Value[C]](ps [][]C) []archivekd.Point[C] {
	out := make([]archivekd.Point[C], len(ps))
	for i, p := range ps {
		out[i] = archivekd.Point[C](p)
	}
	return out
}

func fromPointsKD[C scalar.Value[C]](ps []archivekd.Point[C]) [][]C {
	out := make([][]C, len(ps))
	for i, p := range ps {
		out[i] = []C(p)
	}
	return out
}

func (w adapterKD[C, F, Info]) Dim() int { return w.a.Dim() }
func (w adapterKD[C, F, Info]) Len() int { return w.a.Len() }

func (w adapterKD[C, F, Info]) At(idx int) ([]C, Info, error) {
	p, info, err := w.a.At(idx)
	return []C(p), info, err
}

func (w adapterKD[C, F, Info]) Range(fn func(idx int, p []C, info Info) bool) {
	w.a.Range(func(idx int, p archivekd.Point[C], info Info) bool {
		return fn(idx, []C(p), info)
	})
}

func (w adapterKD[C, F, Info]) Infos() []Info { return w.a.Infos() }

func (w adapterKD[C, F, Info]) Discarded() [][]C { return fromPointsKD(w.a.Discarded()) }

func (w adapterKD[C, F, Info]) DiscardedInfos() []Info { return w.a.DiscardedInfos() }

func (w adapterKD[C, F, Info]) ReferencePoint() ([]C, bool) {
	p, ok := w.a.ReferencePoint()
	if !ok {
		return nil, false
	}
	return []C(p), true
}

func (w adapterKD[C, F, Info]) Clear() { w.a.Clear() }

func (w adapterKD[C, F, Info]) CheckInvariants() error { return w.a.CheckInvariants() }

func (w adapterKD[C, F, Info]) InDomainPoint(p []C) bool {
	return w.a.InDomainPoint(archivekd.Point[C](p))
}

func (w adapterKD[C, F, Info]) InDomainIndex(idx int) bool { return w.a.InDomainIndex(idx) }

func (w adapterKD[C, F, Info]) Dominates(p []C) bool {
	return w.a.Dominates(archivekd.Point[C](p))
}

func (w adapterKD[C, F, Info]) Dominators(p []C) [][]C {
	return fromPointsKD(w.a.Dominators(archivekd.Point[C](p)))
}

func (w adapterKD[C, F, Info]) DominatorCount(p []C) int {
	return w.a.DominatorCount(archivekd.Point[C](p))
}

func (w adapterKD[C, F, Info]) Contains(p []C) bool {
	return w.a.Contains(archivekd.Point[C](p))
}

func (w adapterKD[C, F, Info]) Add(p []C, info Info) (int, bool) {
	return w.a.Add(archivekd.Point[C](p), info)
}

func (w adapterKD[C, F, Info]) AddList(ps [][]C, infos []Info) int {
	return w.a.AddList(toPoints(ps), infos)
}

func (w adapterKD[C, F, Info]) Merge(ps [][]C, infos []Info) int {
	return w.a.Merge(toPoints(ps), infos)
}

func (w adapterKD[C, F, Info]) Prune() int { return w.a.Prune() }

func (w adapterKD[C, F, Info]) RemoveAt(idx int) error { return w.a.RemoveAt(idx) }

func (w adapterKD[C, F, Info]) Hypervolume() (C, error) { return w.a.Hypervolume() }

func (w adapterKD[C, F, Info]) ContributingHypervolumeAt(idx int) (C, error) {
	return w.a.ContributingHypervolumeAt(idx)
}

func (w adapterKD[C, F, Info]) ContributingHypervolumeOf(p []C) (C, error) {
	return w.a.ContributingHypervolumeOf(archivekd.Point[C](p))
}

func (w adapterKD[C, F, Info]) ContributingHypervolumes() ([]C, error) {
	return w.a.ContributingHypervolumes()
}

func (w adapterKD[C, F, Info]) HypervolumeImprovement(p []C) (C, error) {
	return w.a.HypervolumeImprovement(archivekd.Point[C](p))
}

func (w adapterKD[C, F, Info]) DistanceToParetoFront(p []C) (F, error) {
	return w.a.DistanceToParetoFront(archivekd.Point[C](p))
}

func (w adapterKD[C, F, Info]) SetNormalization(ideal, weights []C) {
	w.a.SetNormalization(archivekd.Point[C](ideal), archivekd.Point[C](weights))
}

func (w adapterKD[C, F, Info]) Normalization() (ideal, weights []C) {
	i, ws := w.a.Normalization()
	return []C(i), []C(ws)
}
