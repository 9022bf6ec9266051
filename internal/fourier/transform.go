package fourier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

var ErrUnknownTransform = errors.New("fourier: unknown transform")

// Transform is a forward discrete Fourier transform. Implementations apply no
// normalization and must not modify seq.
type Transform interface {
	Name() string
	Forward(seq []complex128) []complex128
}

// DSP computes the transform with go-dsp, which handles any length.
type DSP struct{}

func (DSP) Name() string { return "dsp" }

func (DSP) Forward(seq []complex128) []complex128 {
	return fft.FFT(seq)
}

// Gonum computes the transform with gonum's FFTPACK port. The plan is rebuilt
// only when the sequence length changes. Not safe for concurrent use.
type Gonum struct {
	plan *fourier.CmplxFFT
}

func (*Gonum) Name() string { return "gonum" }

func (g *Gonum) Forward(seq []complex128) []complex128 {
	if len(seq) == 0 {
		return []complex128{}
	}
	if g.plan == nil {
		g.plan = fourier.NewCmplxFFT(len(seq))
	} else if g.plan.Len() != len(seq) {
		g.plan.Reset(len(seq))
	}
	return g.plan.Coefficients(nil, seq)
}

// Transforms lists the accepted transform names.
func Transforms() []string {
	return []string{"dsp", "gonum"}
}

// NewTransform returns the transform registered under name.
func NewTransform(name string) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dsp":
		return DSP{}, nil
	case "gonum":
		return &Gonum{}, nil
	}
	return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownTransform, name, strings.Join(Transforms(), ", "))
}
