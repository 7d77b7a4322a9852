package dominance

import (
	"testing"

	"github.com/cma-es/moarchiving-go/lib/scalar"
)

func f64s(vs ...float64) []scalar.Float64 {
	out := make([]scalar.Float64, len(vs))
	for i, v := range vs {
		out[i] = scalar.NewFloat64(v)
	}
	return out
}

func TestDominates(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
		want bool
	}{
		{"strictly better both", []float64{1, 1}, []float64{2, 2}, true},
		{"equal", []float64{1, 1}, []float64{1, 1}, false},
		{"better one worse other", []float64{1, 3}, []float64{2, 2}, false},
		{"better one tie other", []float64{1, 2}, []float64{2, 2}, true},
		{"mismatched arity", []float64{1}, []float64{1, 2}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Dominates(c.a, c.b); got != c.want {
				t.Errorf("Dominates(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestWeaklyDominates(t *testing.T) {
	if !WeaklyDominates([]float64{1, 1}, []float64{1, 1}) {
		t.Error("equal vectors should weakly dominate each other")
	}
	if WeaklyDominates([]float64{1, 2}, []float64{2, 1}) {
		t.Error("incomparable vectors must not weakly dominate")
	}
}

func TestInDomain(t *testing.T) {
	r := []float64{10, 10}
	if !InDomain([]float64{1, 1}, r) {
		t.Error("(1,1) should be in domain of r=(10,10)")
	}
	if InDomain([]float64{10, 1}, r) {
		t.Error("boundary point must not be in domain")
	}
}

func TestDominatesCGeneric(t *testing.T) {
	if !DominatesC(f64s(1, 2, 3), f64s(2, 2, 3)) {
		t.Error("(1,2,3) should dominate (2,2,3)")
	}
	if DominatesC(f64s(1, 2, 3), f64s(1, 2, 3)) {
		t.Error("a point cannot dominate an identical one")
	}
	if DominatesC(f64s(1), f64s(1, 2)) {
		t.Error("mismatched arity must report false")
	}
}

func TestWeaklyDominatesCAndEqualC(t *testing.T) {
	if !WeaklyDominatesC(f64s(1, 1, 1), f64s(1, 1, 1)) {
		t.Error("equal vectors should weakly dominate each other")
	}
	if !EqualC(f64s(1, 1, 1), f64s(1, 1, 1)) {
		t.Error("identical vectors should be equal")
	}
	if EqualC(f64s(1, 1), f64s(1, 2)) {
		t.Error("differing vectors should not be equal")
	}
}

func TestInDomainCGeneric(t *testing.T) {
	r := f64s(4, 4, 4)
	if !InDomainC(f64s(1, 2, 3), r) {
		t.Error("(1,2,3) should be in domain of r=(4,4,4)")
	}
	if InDomainC(f64s(4, 1, 1), r) {
		t.Error("boundary point must not be in domain")
	}
}
