package fourier

import (
	"errors"
	"fmt"

	"honnef.co/go/curve"
)

var (
	ErrNoPoints    = errors.New("fourier: stroke has no points")
	ErrSampleCount = errors.New("fourier: invalid sample count")
)

// SampleSet holds equally spaced samples of a closed curve, x as the real part
// and y as the imaginary part. Its order is the reconstruction order.
type SampleSet []complex128

// Points returns the samples as points.
func (s SampleSet) Points() []curve.Point {
	out := make([]curve.Point, len(s))
	for i, c := range s {
		out[i] = curve.Pt(real(c), imag(c))
	}
	return out
}

// ClosedLength returns the perimeter of the polyline through points, including
// the segment from the last point back to the first.
func ClosedLength(points []curve.Point) float64 {
	var total float64
	for i := range points {
		total += closedSegment(points, i).Length()
	}
	return total
}

func closedSegment(points []curve.Point, i int) curve.Line {
	return curve.Line{P0: points[i], P1: points[(i+1)%len(points)]}
}

// Resample walks the closed polyline through points and returns n samples
// spaced perimeter/n apart, starting at points[0].
//
// A stroke without length (a single tap) yields n copies of its first point.
func Resample(points []curve.Point, n int) (SampleSet, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrSampleCount, n)
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	out := make(SampleSet, n)
	perimeter := ClosedLength(points)
	if perimeter == 0 {
		first := complex(points[0].X, points[0].Y)
		for i := range out {
			out[i] = first
		}
		return out, nil
	}

	seg := 0
	walked := 0.0 // arc length at the start of seg
	last := len(points) - 1
	for i := range n {
		target := perimeter * float64(i) / float64(n)
		for {
			line := closedSegment(points, seg)
			length := line.Length()
			if target <= walked+length || seg == last {
				var t float64
				if length > 0 {
					t = min(max((target-walked)/length, 0), 1)
				}
				p := line.Eval(t)
				out[i] = complex(p.X, p.Y)
				break
			}
			walked += length
			seg++
		}
	}
	return out, nil
}
