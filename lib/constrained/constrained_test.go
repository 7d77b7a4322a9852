package constrained

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cma-es/moarchiving-go/lib/archive"
	"github.com/cma-es/moarchiving-go/lib/archive2d"
	"github.com/cma-es/moarchiving-go/lib/archivekd"
	"github.com/cma-es/moarchiving-go/lib/scalar"
)

func f(v float64) scalar.Float64 { return scalar.NewFloat64(v) }

func vec2(a, b float64) []scalar.Float64 { return []scalar.Float64{f(a), f(b)} }

func newInner(t *testing.T) archive.MOArchive[scalar.Float64, scalar.Float64, struct{}] {
	t.Helper()
	ref := archive2d.Point2[scalar.Float64]{F1: f(10), F2: f(10)}
	a, err := archive2d.New(archive2d.Config[scalar.Float64, scalar.Float64, struct{}]{
		Ref:     &ref,
		ToFinal: scalar.IdentityFloat64,
	})
	require.NoError(t, err)
	return archive.Wrap2D(a)
}

func newWrapper(t *testing.T) *Archive[scalar.Float64, scalar.Float64, struct{}] {
	t.Helper()
	return New(Config[scalar.Float64, scalar.Float64, struct{}]{
		Inner:       newInner(t),
		Tau:         f(0.1),
		FromFloat64: f,
	})
}

func TestAddFeasibleBecomesResident(t *testing.T) {
	w := newWrapper(t)
	idx, feasible, accepted := w.Add(vec2(2, 3), []scalar.Float64{f(-1), f(-1)}, struct{}{})
	assert.True(t, feasible)
	assert.True(t, accepted)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, w.Len())
}

func TestAddInfeasibleNeverResident(t *testing.T) {
	w := newWrapper(t)
	idx, feasible, accepted := w.Add(vec2(2, 3), []scalar.Float64{f(1), f(-1)}, struct{}{})
	assert.False(t, feasible)
	assert.False(t, accepted)
	assert.Equal(t, -1, idx)
	assert.Equal(t, 0, w.Len())

	objs, cons, _ := w.Infeasible()
	require.Len(t, objs, 1)
	assert.Equal(t, 2.0, objs[0][0].Float64())
	assert.Equal(t, 1.0, cons[0][0].Float64())
}

func TestHypervolumeIgnoresInfeasible(t *testing.T) {
	w := newWrapper(t)
	w.Add(vec2(2, 3), []scalar.Float64{f(-1)}, struct{}{})
	w.Add(vec2(50, 50), []scalar.Float64{f(1)}, struct{}{}) // infeasible, way outside

	h, err := w.Hypervolume()
	require.NoError(t, err)
	// resident (2,3) against ref (10,10): box is 8 x 7 = 56
	assert.Equal(t, 56.0, h.Float64())
}

func TestHypervolumePlusFallsBackToDistanceWhenAllInfeasible(t *testing.T) {
	w := newWrapper(t)
	w.Add(vec2(8, 8), []scalar.Float64{f(1)}, struct{}{})

	hvp, err := w.HypervolumePlus()
	require.NoError(t, err)
	// distance from (8,8) to ref (10,10) = sqrt(2^2+2^2) = sqrt(8)
	assert.InDelta(t, -2.8284271247461903, hvp.Float64(), 1e-9)
}

func TestHypervolumePlusUsesHypervolumeWhenFeasibleExists(t *testing.T) {
	w := newWrapper(t)
	w.Add(vec2(2, 3), []scalar.Float64{f(-1)}, struct{}{})

	hvp, err := w.HypervolumePlus()
	require.NoError(t, err)
	assert.Equal(t, 56.0, hvp.Float64())
}

func TestHypervolumePlusConstrPenalizesViolation(t *testing.T) {
	w := newWrapper(t)
	// dist to ref = sqrt(8) ~= 2.828; tau*violation = 0.1*5 = 0.5
	// max(2.828, 0.5) = 2.828
	w.Add(vec2(8, 8), []scalar.Float64{f(5)}, struct{}{})

	hvpc, err := w.HypervolumePlusConstr()
	require.NoError(t, err)
	assert.InDelta(t, -2.8284271247461903, hvpc.Float64(), 1e-9)
}

func TestHypervolumePlusConstrDistanceDominatedByViolation(t *testing.T) {
	w := newWrapper(t)
	w.Add(vec2(9.9, 9.9), []scalar.Float64{f(1000)}, struct{}{}) // tiny distance, huge violation

	hvpc, err := w.HypervolumePlusConstr()
	require.NoError(t, err)
	// tau*violation = 0.1*1000 = 100, dwarfs the near-zero distance term
	assert.InDelta(t, -100.0, hvpc.Float64(), 1e-6)
}

func TestFeasibleHelper(t *testing.T) {
	assert.True(t, Feasible([]scalar.Float64{f(-1), f(0)}))
	assert.False(t, Feasible([]scalar.Float64{f(-1), f(0.001)}))
}

func TestAtReturnsConstraintVector(t *testing.T) {
	w := newWrapper(t)
	w.Add(vec2(2, 3), []scalar.Float64{f(-5)}, struct{}{})

	p, g, _, err := w.At(0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, p[0].Float64())
	require.Len(t, g, 1)
	assert.Equal(t, -5.0, g[0].Float64())
}

func vec3(a, b, c float64) []scalar.Float64 { return []scalar.Float64{f(a), f(b), f(c)} }

// TestConstrainedScenario5 is spec §8 scenario 5: a constrained 3D
// archive, r=(5,5,5), objectives [[1,2,3],[1,3,4],[4,3,2],[1,3,0]],
// constraints [[3,0],[0,0],[0,0],[0,1]] — feasible iff every
// constraint coordinate is <= 0, so [1,2,3] (g=[3,0]) and [1,3,0]
// (g=[0,1]) are rejected before they ever reach the inner archive,
// and of the two feasible candidates [1,3,4] is dominated by nothing
// and [4,3,2] likewise survives, leaving resident set
// [[4,3,2],[1,3,4]].
func TestConstrainedScenario5(t *testing.T) {
	ref := archivekd.Point[scalar.Float64]{f(5), f(5), f(5)}
	inner, err := archivekd.New(archivekd.Config[scalar.Float64, scalar.Float64, struct{}]{
		Dim:     3,
		Ref:     ref,
		ToFinal: scalar.IdentityFloat64,
	})
	require.NoError(t, err)
	w := New(Config[scalar.Float64, scalar.Float64, struct{}]{
		Inner:       archive.WrapKD(inner),
		Tau:         f(0.1),
		FromFloat64: f,
	})

	objectives := [][]scalar.Float64{
		vec3(1, 2, 3),
		vec3(1, 3, 4),
		vec3(4, 3, 2),
		vec3(1, 3, 0),
	}
	constraints := [][]scalar.Float64{
		vec2(3, 0),
		vec2(0, 0),
		vec2(0, 0),
		vec2(0, 1),
	}
	for i, p := range objectives {
		w.Add(p, constraints[i], struct{}{})
	}

	require.Equal(t, 2, w.Len())
	got := make([][]float64, w.Len())
	for i := range got {
		p, _, _, err := w.At(i)
		require.NoError(t, err)
		got[i] = []float64{p[0].Float64(), p[1].Float64(), p[2].Float64()}
	}
	assert.ElementsMatch(t, [][]float64{{4, 3, 2}, {1, 3, 4}}, got)
}
