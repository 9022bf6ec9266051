package fourier

import (
	"fmt"
	"math/cmplx"

	"honnef.co/go/curve"
)

// Spectrum is the unscaled DFT of a SampleSet. Consumers divide magnitudes by
// Len to get circle radii.
type Spectrum struct {
	Bins []complex128
}

func (s Spectrum) Len() int { return len(s.Bins) }

func (s Spectrum) Magnitude(i int) float64 { return cmplx.Abs(s.Bins[i]) }

func (s Spectrum) Phase(i int) float64 { return cmplx.Phase(s.Bins[i]) }

// Radius is the length of bin i's rotating vector.
func (s Spectrum) Radius(i int) float64 {
	return s.Magnitude(i) / float64(len(s.Bins))
}

// SignedFrequency maps bin i to its rotation rate: i for the first half of the
// spectrum, i-n for the wrapped negative half.
func (s Spectrum) SignedFrequency(i int) int {
	return SignedFrequency(i, len(s.Bins))
}

// SignedFrequency maps bin i of an n-point spectrum to its signed frequency.
func SignedFrequency(i, n int) int {
	if i > n/2 {
		return i - n
	}
	return i
}

// Origin is the DC term, the centroid of the sampled curve. Reconstruction
// always starts here.
func (s Spectrum) Origin() curve.Point {
	if len(s.Bins) == 0 {
		return curve.Point{}
	}
	return curve.Point{}.Translate(curve.VecFromAngle(s.Phase(0)).Mul(s.Radius(0)))
}

// Term returns bin i's vector at rotation angle theta.
func (s Spectrum) Term(i int, theta float64) curve.Vec2 {
	angle := float64(s.SignedFrequency(i))*theta + s.Phase(i)
	return curve.VecFromAngle(angle).Mul(s.Radius(i))
}

// Analyzer turns SampleSets of a fixed size into spectra.
type Analyzer struct {
	transform Transform
	n         int
}

// NewAnalyzer creates an Analyzer for n-point sample sets.
func NewAnalyzer(t Transform, n int) *Analyzer {
	if t == nil {
		t = DSP{}
	}
	return &Analyzer{transform: t, n: n}
}

// Points returns the configured sample count.
func (a *Analyzer) Points() int { return a.n }

// Analyze runs the forward transform over samples.
func (a *Analyzer) Analyze(samples SampleSet) (Spectrum, error) {
	if len(samples) != a.n || a.n < 1 {
		return Spectrum{}, fmt.Errorf("%w: got %d samples, want %d", ErrSampleCount, len(samples), a.n)
	}
	return Spectrum{Bins: a.transform.Forward(samples)}, nil
}
