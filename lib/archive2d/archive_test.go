package archive2d

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cma-es/moarchiving-go/lib/scalar"
)

// dumpArchive renders an archive's resident list for failure messages,
// the way the teacher's require failures lean on detailed %v/spew
// formatting rather than a bare value diff.
func dumpArchive(a *Archive[scalar.Float64, scalar.Float64, struct{}]) string {
	return spew.Sdump(a.points)
}

func f64(v float64) scalar.Float64 { return scalar.NewFloat64(v) }

func pt(f1, f2 float64) Point2[scalar.Float64] {
	return Point2[scalar.Float64]{F1: f64(f1), F2: f64(f2)}
}

func newArchive(t *testing.T, initial []Point2[scalar.Float64], ref *Point2[scalar.Float64]) *Archive[scalar.Float64, scalar.Float64, struct{}] {
	t.Helper()
	a, err := New(Config[scalar.Float64, scalar.Float64, struct{}]{
		Initial: initial,
		Ref:     ref,
		ToFinal: scalar.IdentityFloat64,
		Debug:   true,
	})
	require.NoError(t, err)
	return a
}

func TestScenario1ConstructAndPrune(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{
		pt(-0.749, -1.188),
		pt(-0.557, 1.1076),
		pt(0.2454, 0.4724),
		pt(-1.146, -0.110),
	}, &ref)

	require.Equal(t, 2, a.Len())
	p0, _, err := a.At(0)
	require.NoError(t, err)
	p1, _, err := a.At(1)
	require.NoError(t, err)
	assert.Equal(t, pt(-1.146, -0.110), p0)
	assert.Equal(t, pt(-0.749, -1.188), p1)

	hvs, err := a.ContributingHypervolumes()
	require.NoError(t, err)
	require.Len(t, hvs, 2)
	assert.InDelta(t, 4.01367, hvs[0].Float64(), 1e-3)
	assert.InDelta(t, 11.587422, hvs[1].Float64(), 1e-3)
}

func TestScenario2Add(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{
		pt(-0.749, -1.188),
		pt(-0.557, 1.1076),
		pt(0.2454, 0.4724),
		pt(-1.146, -0.110),
	}, &ref)

	idx, ok := a.Add(pt(-1, -3), struct{}{})
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	require.Equal(t, 2, a.Len())
	p0, _, _ := a.At(0)
	p1, _, _ := a.At(1)
	assert.Equal(t, pt(-1.146, -0.110), p0)
	assert.Equal(t, pt(-1, -3), p1)
}

func TestScenario3OutOfDomain(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{
		pt(-1.146, -0.110),
		pt(-1, -3),
	}, &ref)

	_, ok := a.Add(pt(-1.5, 44), struct{}{})
	assert.False(t, ok)
	assert.Equal(t, 2, a.Len())
}

func TestEmptyArchiveBoundary(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, nil, &ref)
	hv, err := a.Hypervolume()
	require.NoError(t, err)
	assert.Equal(t, float64(0), hv.Float64())
	assert.False(t, a.Dominates(pt(1, 1)))
}

func TestAddEqualToResidentIsNoop(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{pt(1, 2)}, &ref)
	before, _ := a.Hypervolume()
	_, ok := a.Add(pt(1, 2), struct{}{})
	assert.False(t, ok)
	after, _ := a.Hypervolume()
	assert.Equal(t, before, after)
	assert.Equal(t, 1, a.Len())
}

func TestAddSameF1SmallerF2Dominates(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{pt(1, 5)}, &ref)
	idx, ok := a.Add(pt(1, 2), struct{}{})
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, a.Len())
	p0, _, _ := a.At(0)
	assert.Equal(t, pt(1, 2), p0)
}

func TestMergeEqualsAddListWhenSorted(t *testing.T) {
	ref := pt(10, 10)
	batch := []Point2[scalar.Float64]{pt(-2, 5), pt(-1, 3), pt(0, 1)}

	a1 := newArchive(t, nil, &ref)
	a1.AddList(batch, nil)

	a2 := newArchive(t, nil, &ref)
	a2.Merge(batch, nil)

	require.Equal(t, a1.Len(), a2.Len(), "add-list: %s\nmerge: %s", dumpArchive(a1), dumpArchive(a2))
	for i := 0; i < a1.Len(); i++ {
		p1, _, _ := a1.At(i)
		p2, _, _ := a2.At(i)
		assert.Equal(t, p1, p2, "add-list: %s\nmerge: %s", dumpArchive(a1), dumpArchive(a2))
	}
	hv1, _ := a1.Hypervolume()
	hv2, _ := a2.Hypervolume()
	assert.Equal(t, hv1, hv2)
}

func TestHypervolumeImprovementNonDominatedMatchesDelta(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{pt(1, 5), pt(4, 2)}, &ref)
	before, _ := a.Hypervolume()

	candidate := pt(2, 3)
	improvement, err := a.HypervolumeImprovement(candidate)
	require.NoError(t, err)

	a.Add(candidate, struct{}{})
	after, _ := a.Hypervolume()

	assert.InDelta(t, after.Float64()-before.Float64(), improvement.Float64(), 1e-9)
}

func TestHypervolumeImprovementDominatedIsNegativeSquaredDistance(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{pt(1, 1)}, &ref)

	improvement, err := a.HypervolumeImprovement(pt(2, 2))
	require.NoError(t, err)
	assert.True(t, improvement.Float64() < 0)

	dist, err := a.DistanceToParetoFront(pt(2, 2))
	require.NoError(t, err)
	assert.InDelta(t, -improvement.Float64(), dist.Float64()*dist.Float64(), 1e-9)
}

func TestDistanceToParetoFrontZeroForNonDominated(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{pt(5, 5)}, &ref)
	dist, err := a.DistanceToParetoFront(pt(1, 1))
	require.NoError(t, err)
	assert.Equal(t, float64(0), dist.Float64())
}

func TestHypervolumeRequiresReferencePoint(t *testing.T) {
	a := newArchive(t, []Point2[scalar.Float64]{pt(1, 1)}, nil)
	_, err := a.Hypervolume()
	require.Error(t, err)
}

func TestDominatorsContiguousRange(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{pt(1, 5), pt(2, 4), pt(3, 3)}, &ref)
	dominators := a.Dominators(pt(4, 6))
	require.Len(t, dominators, 3)
}

func TestRemoveAtUpdatesHypervolume(t *testing.T) {
	ref := pt(10, 10)
	a := newArchive(t, []Point2[scalar.Float64]{pt(1, 5), pt(4, 2)}, &ref)
	full, _ := a.Hypervolume()

	err := a.RemoveAt(1)
	require.NoError(t, err)
	reduced, _ := a.Hypervolume()
	assert.True(t, reduced.Float64() < full.Float64())

	fresh := a.ComputeHypervolume(ref)
	assert.InDelta(t, reduced.Float64(), fresh.Float64(), 1e-9)
}
