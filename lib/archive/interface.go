// Package archive is the common public contract shared by archive2d
// and archivekd (spec §9 "Dynamic dispatch by dimensionality": the
// original's runtime class selection becomes a factory returning one
// interface value, never a type switch at the call site).
//
// Every method here operates on plain []C objective vectors rather
// than either package's own point type, since an interface value's
// callers don't know — and shouldn't need to know — whether they're
// holding a 2-field archive2d.Point2 or a variable-length
// archivekd.Point underneath.
package archive

import "github.com/cma-es/moarchiving-go/lib/scalar"

// MOArchive is the dimension-erased non-dominated archive contract.
type MOArchive[C scalar.Value[C], F scalar.Value[F], Info any] interface {
	Dim() int
	Len() int
	At(idx int) ([]C, Info, error)
	Range(fn func(idx int, p []C, info Info) bool)
	Infos() []Info
	Discarded() [][]C
	DiscardedInfos() []Info
	ReferencePoint() ([]C, bool)
	Clear()

	// CheckInvariants verifies the archive's structural invariants and
	// returns the first violation found, independent of whether the
	// archive was constructed with Debug set. Callers that want a
	// traced self-check (xlog.TracedCheck) outside the archive's own
	// per-mutation debug path call this directly.
	CheckInvariants() error

	InDomainPoint(p []C) bool
	InDomainIndex(idx int) bool
	Dominates(p []C) bool
	Dominators(p []C) [][]C
	DominatorCount(p []C) int
	Contains(p []C) bool

	Add(p []C, info Info) (int, bool)
	AddList(ps [][]C, infos []Info) int
	Merge(ps [][]C, infos []Info) int
	Prune() int
	RemoveAt(idx int) error

	Hypervolume() (C, error)
	ContributingHypervolumeAt(idx int) (C, error)
	ContributingHypervolumeOf(p []C) (C, error)
	ContributingHypervolumes() ([]C, error)
	HypervolumeImprovement(p []C) (C, error)
	DistanceToParetoFront(p []C) (F, error)

	SetNormalization(ideal, weights []C)
	Normalization() (ideal, weights []C)
}
