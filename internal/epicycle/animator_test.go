package epicycle

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/olivier-w/epidraw/internal/fourier"
	"honnef.co/go/curve"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// fixture: DC at (10, 20), bin 1 radius 3 at phase 0, bin 3 (frequency -1)
// radius 1 at phase π/2.
func fixture() fourier.Spectrum {
	const n = 4
	return fourier.Spectrum{Bins: []complex128{
		complex(10*n, 20*n),
		complex(3*n, 0),
		0,
		complex(0, 1*n),
	}}
}

func TestChainFollowsSelectionOrder(t *testing.T) {
	spec := fixture()

	joints, circles := Chain(spec, []int{1, 3}, 0)
	diff(t, []curve.Point{curve.Pt(10, 20), curve.Pt(13, 20), curve.Pt(13, 21)}, joints, approx)
	diff(t, []curve.Circle{
		{Center: curve.Pt(10, 20), Radius: 3},
		{Center: curve.Pt(13, 20), Radius: 1},
	}, circles, approx)

	joints, _ = Chain(spec, []int{3, 1}, 0)
	diff(t, []curve.Point{curve.Pt(10, 20), curve.Pt(10, 21), curve.Pt(13, 21)}, joints, approx)
}

func TestChainRotatesBySignedFrequency(t *testing.T) {
	spec := fixture()
	joints, _ := Chain(spec, []int{1, 3}, math.Pi/2)
	// bin 1 turns +π/2, bin 3 turns -π/2 from its phase of π/2.
	diff(t, []curve.Point{curve.Pt(10, 20), curve.Pt(10, 23), curve.Pt(11, 23)}, joints, approx)
}

func TestChainEmptySelectionIsOrigin(t *testing.T) {
	joints, circles := Chain(fixture(), nil, 1)
	diff(t, []curve.Point{curve.Pt(10, 20)}, joints, approx)
	if len(circles) != 0 {
		t.Fatalf("expected no circles, got %v", circles)
	}
}

func TestStepFillsTrailAndEvicts(t *testing.T) {
	spec := fixture()
	a := NewAnimator(NewClock(25, 0.05), 4)
	for i := range 10 {
		f := a.Step(spec, []int{1})
		if a.Trail().Len() > 4 {
			t.Fatalf("trail exceeded capacity: %d", a.Trail().Len())
		}
		if want := min(i+1, 4); a.Trail().Len() != want {
			t.Fatalf("tick %d: trail len %d, want %d", i, a.Trail().Len(), want)
		}
		if a.Trail().Len() <= 2 && f.Trail != nil {
			t.Fatalf("tick %d: trail emitted with %d points", i, a.Trail().Len())
		}
		if a.Trail().Len() > 2 && len(f.Trail) != a.Trail().Len() {
			t.Fatalf("tick %d: frame trail %d points, want %d", i, len(f.Trail), a.Trail().Len())
		}
		tip, ok := a.Tip()
		if !ok || tip != f.Tip {
			t.Fatalf("tick %d: tip %v, frame tip %v", i, tip, f.Tip)
		}
		if f.Trail != nil {
			diff(t, f.Tip, f.Trail[len(f.Trail)-1])
		}
	}
}

func TestStepAdvancesAngle(t *testing.T) {
	c := NewClock(25, 0.05)
	a := NewAnimator(c, 10)
	f := a.Step(fixture(), nil)
	if math.Abs(f.Theta-c.Step()) > 1e-15 || a.Theta() != f.Theta {
		t.Fatalf("theta after one step = %v, want %v", f.Theta, c.Step())
	}
}

func TestPeekLeavesStateAlone(t *testing.T) {
	a := NewAnimator(NewClock(25, 0.05), 10)
	spec := fixture()
	a.Step(spec, []int{1})
	theta := a.Theta()
	f := a.Peek(spec, []int{1, 3})
	if a.Theta() != theta || a.Trail().Len() != 1 {
		t.Fatalf("Peek mutated animator: theta %v, trail %d", a.Theta(), a.Trail().Len())
	}
	if len(f.Joints) != 3 {
		t.Fatalf("expected 3 joints, got %d", len(f.Joints))
	}
}

func TestClearTrailForgetsTip(t *testing.T) {
	a := NewAnimator(NewClock(25, 0.05), 10)
	a.Step(fixture(), []int{1})
	a.ClearTrail()
	if _, ok := a.Tip(); ok {
		t.Fatal("expected no tip after ClearTrail")
	}
	if a.Trail().Len() != 0 {
		t.Fatalf("expected empty trail, got %d", a.Trail().Len())
	}
}
