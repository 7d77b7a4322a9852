package archivekd

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// dumpResidents renders an archive's resident set for failure
// messages, the same diffing-aid role go-spew plays in the teacher's
// require failures.
func dumpResidents(a *Archive[scalar.Float64, scalar.Float64, struct{}]) string {
	return spew.Sdump(a.allPoints())
}

func vec(vs ...float64) Point[scalar.Float64] {
	out := make(Point[scalar.Float64], len(vs))
	for i, v := range vs {
		out[i] = scalar.NewFloat64(v)
	}
	return out
}

func newArchive(t *testing.T, dim int, initial []Point[scalar.Float64], ref Point[scalar.Float64]) *Archive[scalar.Float64, scalar.Float64, struct{}] {
	t.Helper()
	a, err := New(Config[scalar.Float64, scalar.Float64, struct{}]{
		Dim:     dim,
		Initial: initial,
		Ref:     ref,
		ToFinal: scalar.IdentityFloat64,
		Debug:   true,
	})
	require.NoError(t, err)
	return a
}

func hasPoint(t *testing.T, a *Archive[scalar.Float64, scalar.Float64, struct{}], p Point[scalar.Float64]) bool {
	t.Helper()
	return a.Contains(p)
}

// Spec scenario 4: empty 3D archive, r=(4,4,4), add
// [[1,2,3],[3,2,1],[2,3,2],[2,2,2]]; resident set equals
// [[3,2,1],[2,2,2],[1,2,3]].
func TestScenario4Construct3D(t *testing.T) {
	a := newArchive(t, 3, nil, vec(4, 4, 4))

	for _, p := range []Point[scalar.Float64]{
		vec(1, 2, 3),
		vec(3, 2, 1),
		vec(2, 3, 2),
		vec(2, 2, 2),
	} {
		a.Add(p, struct{}{})
	}

	require.Equal(t, 3, a.Len(), "residents: %s", dumpResidents(a))
	assert.True(t, hasPoint(t, a, vec(3, 2, 1)))
	assert.True(t, hasPoint(t, a, vec(2, 2, 2)))
	assert.True(t, hasPoint(t, a, vec(1, 2, 3)))
	assert.False(t, hasPoint(t, a, vec(2, 3, 2)))
}

func TestAddRejectsDominated(t *testing.T) {
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 1, 1)}, vec(5, 5, 5))
	_, ok := a.Add(vec(2, 2, 2), struct{}{})
	assert.False(t, ok)
	require.Equal(t, 1, a.Len())
}

func TestAddRejectsOutOfDomain(t *testing.T) {
	a := newArchive(t, 3, nil, vec(5, 5, 5))
	_, ok := a.Add(vec(5, 1, 1), struct{}{})
	assert.False(t, ok)
	require.Equal(t, 0, a.Len())
}

func TestHypervolumeCubeNoOverlap(t *testing.T) {
	// A single resident against ref=(10,10,10), so there is no overlap
	// to account for: box(1,1,1) has volume 9*9*9 = 729, the direct
	// product of its side lengths.
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 1, 1)}, vec(10, 10, 10))
	h, err := a.Hypervolume()
	require.NoError(t, err)
	assert.InDelta(t, 729.0, h.Float64(), 1e-9)
}

func TestHypervolumeUnionOfTwoBoxes(t *testing.T) {
	// ref=(4,4,4); residents (1,3,3) and (3,1,3) are mutually
	// non-dominated. box(1,3,3) = x[1,4)*y[3,4)*z[3,4), volume 3*1*1=3;
	// box(3,1,3) = x[3,4)*y[1,4)*z[3,4), volume 1*3*1=3; their overlap
	// is x[3,4)*y[3,4)*z[3,4), volume 1. Union = 3+3-1 = 5.
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 3, 3), vec(3, 1, 3)}, vec(4, 4, 4))
	h, err := a.Hypervolume()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, h.Float64(), 1e-9)
}

func TestContributingHypervolumesMatchAddition(t *testing.T) {
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 3, 3), vec(3, 1, 3)}, vec(4, 4, 4))
	total, err := a.Hypervolume()
	require.NoError(t, err)

	contribs, err := a.ContributingHypervolumes()
	require.NoError(t, err)
	require.Len(t, contribs, 2)
	for _, c := range contribs {
		assert.True(t, c.Float64() >= 0)
		assert.True(t, c.Float64() <= total.Float64()+1e-9)
	}
}

func TestHypervolumeImprovementDominatedIsNegativeSquaredDistance(t *testing.T) {
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 1, 1)}, vec(10, 10, 10))
	// (2,2,2) is dominated by (1,1,1); slack on every axis is 1, so
	// the escape distance is 1 and the improvement is -1.
	hi, err := a.HypervolumeImprovement(vec(2, 2, 2))
	require.NoError(t, err)
	assert.InDelta(t, -1.0, hi.Float64(), 1e-9)
}

func TestHypervolumeImprovementNonDominatedMatchesDelta(t *testing.T) {
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 3, 3)}, vec(4, 4, 4))
	before, err := a.Hypervolume()
	require.NoError(t, err)

	hi, err := a.HypervolumeImprovement(vec(3, 1, 3))
	require.NoError(t, err)

	a.Add(vec(3, 1, 3), struct{}{})
	after, err := a.Hypervolume()
	require.NoError(t, err)

	assert.InDelta(t, after.Float64()-before.Float64(), hi.Float64(), 1e-9)
}

func TestDistanceToParetoFrontZeroForNonDominated(t *testing.T) {
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 1, 1)}, vec(10, 10, 10))
	d, err := a.DistanceToParetoFront(vec(0, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, d.Float64(), 1e-9)
}

func TestRemoveAtUpdatesHypervolume(t *testing.T) {
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 3, 3), vec(3, 1, 3)}, vec(4, 4, 4))
	require.NoError(t, a.RemoveAt(0))
	require.Equal(t, 1, a.Len())

	h, err := a.Hypervolume()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, h.Float64(), 1e-9) // box(3,1,3) alone = 1*3*1
}

func TestHypervolumeRequiresReferencePoint(t *testing.T) {
	a := newArchive(t, 3, []Point[scalar.Float64]{vec(1, 1, 1)}, nil)
	_, err := a.Hypervolume()
	assert.Error(t, err)
}

func TestDimensionMismatchRejected(t *testing.T) {
	_, err := New(Config[scalar.Float64, scalar.Float64, struct{}]{
		Dim:     3,
		Initial: []Point[scalar.Float64]{vec(1, 2)},
		ToFinal: scalar.IdentityFloat64,
	})
	assert.Error(t, err)
}
