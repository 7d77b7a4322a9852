package archivekd

import (
	"github.com/cma-es/moarchiving-go/lib/dominance"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// Point is a k-coordinate objective vector for k in {3, 4} (spec §4.4
// "Public contract identical to §4.3 with the relevant coordinate
// count"). Unlike archive2d.Point2, its dimension is a runtime
// property rather than a fixed struct shape, since the archive's own
// arity is only known at construction time.
type Point[C scalar.Value[C]] []C

func clonePoint[C scalar.Value[C]](p Point[C]) Point[C] {
	return append(Point[C](nil), p...)
}

func (p Point[C]) weaklyDominates(q Point[C]) bool {
	return dominance.WeaklyDominatesC[C](p, q)
}

func (p Point[C]) dominates(q Point[C]) bool {
	return dominance.DominatesC[C](p, q)
}

func (p Point[C]) equal(q Point[C]) bool {
	return dominance.EqualC[C](p, q)
}

func (p Point[C]) inDomain(ref Point[C]) bool {
	return dominance.InDomainC[C](p, ref)
}
