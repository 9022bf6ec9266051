package fourier

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"honnef.co/go/curve"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// naiveDFT is the textbook O(n²) forward transform.
func naiveDFT(seq []complex128) []complex128 {
	n := len(seq)
	out := make([]complex128, n)
	for k := range n {
		var sum complex128
		for j, x := range seq {
			sum += x * cmplx.Exp(complex(0, -2*math.Pi*float64(j*k)/float64(n)))
		}
		out[k] = sum
	}
	return out
}

func regularPolygon(center curve.Point, radius float64, sides int) []curve.Point {
	pts := make([]curve.Point, sides)
	for i := range sides {
		th := 2 * math.Pi * float64(i) / float64(sides)
		pts[i] = center.Translate(curve.VecFromAngle(th).Mul(radius))
	}
	return pts
}

func cmplxPoints(c []complex128) []curve.Point {
	return SampleSet(c).Points()
}
