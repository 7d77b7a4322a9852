package indicator

import (
	"github.com/cma-es/moarchiving-go/lib/constrained"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// ConstrainedShell is a facade over constrained.Archive. Only Dominates
// applies the inner archive's ideal-point/weights normalization (to its
// query point); Hypervolume, HypervolumePlus and HypervolumePlusConstr
// forward to the wrapper unchanged and do not apply the normalization.
type ConstrainedShell[C scalar.Value[C], F scalar.Value[F], Info any] struct {
	w *constrained.Archive[C, F, Info]
}

// NewConstrained builds a ConstrainedShell over an existing wrapper.
func NewConstrained[C scalar.Value[C], F scalar.Value[F], Info any](w *constrained.Archive[C, F, Info]) ConstrainedShell[C, F, Info] {
	return ConstrainedShell[C, F, Info]{w: w}
}

func (s ConstrainedShell[C, F, Info]) normalize(p []C) []C {
	ideal, weights := s.w.Inner().Normalization()
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

func (s ConstrainedShell[C, F, Info]) Hypervolume() (C, error) { return s.w.Hypervolume() }

func (s ConstrainedShell[C, F, Info]) HypervolumePlus() (F, error) { return s.w.HypervolumePlus() }

func (s ConstrainedShell[C, F, Info]) HypervolumePlusConstr() (F, error) {
	return s.w.HypervolumePlusConstr()
}

// Dominates normalizes p before delegating to the inner archive.
func (s ConstrainedShell[C, F, Info]) Dominates(p []C) bool {
	return s.w.Dominates(s.normalize(p))
}
