package epicycle

import (
	"github.com/olivier-w/epidraw/internal/fourier"
	"honnef.co/go/curve"
)

// Frame is one evaluation of the epicycle chain.
type Frame struct {
	Theta float64
	// Joints starts at the DC origin and has one point per selected bin.
	Joints []curve.Point
	// Circles holds one guide circle per selected bin, centered on the joint
	// the bin's vector starts from.
	Circles []curve.Circle
	// Trail is nil until the trail holds more than two points.
	Trail []curve.Point
	Tip   curve.Point
}

// Chain evaluates the selected bins of spec at theta in selection order.
func Chain(spec fourier.Spectrum, selection []int, theta float64) ([]curve.Point, []curve.Circle) {
	prev := spec.Origin()
	joints := make([]curve.Point, 0, len(selection)+1)
	circles := make([]curve.Circle, 0, len(selection))
	joints = append(joints, prev)
	for _, i := range selection {
		next := prev.Translate(spec.Term(i, theta))
		circles = append(circles, curve.Circle{Center: prev, Radius: spec.Radius(i)})
		joints = append(joints, next)
		prev = next
	}
	return joints, circles
}

// Animator holds the rotation angle, the trail and the last tip. Only Step
// mutates it.
type Animator struct {
	clock  Clock
	theta  float64
	trail  *Trail
	tip    curve.Point
	hasTip bool
}

func NewAnimator(clock Clock, trailCapacity int) *Animator {
	return &Animator{clock: clock, trail: NewTrail(trailCapacity)}
}

func (a *Animator) Theta() float64 { return a.theta }

// Tip returns the tip recorded by the last Step since the trail was cleared.
func (a *Animator) Tip() (curve.Point, bool) { return a.tip, a.hasTip }

func (a *Animator) Trail() *Trail { return a.trail }

// Turn advances the angle one tick without evaluating anything. Used while
// there is no curve to animate.
func (a *Animator) Turn() {
	a.theta = a.clock.Advance(a.theta)
}

// Step advances the angle one tick, evaluates the chain and records the tip
// in the trail.
func (a *Animator) Step(spec fourier.Spectrum, selection []int) Frame {
	a.Turn()
	f := a.evaluate(spec, selection)
	a.tip = f.Tip
	a.hasTip = true
	a.trail.Push(f.Tip)
	f.Trail = a.trailPoints()
	return f
}

// Peek evaluates the chain at the current angle without advancing or
// touching the trail.
func (a *Animator) Peek(spec fourier.Spectrum, selection []int) Frame {
	f := a.evaluate(spec, selection)
	f.Trail = a.trailPoints()
	return f
}

// ClearTrail drops the trail and the recorded tip. The angle keeps running.
func (a *Animator) ClearTrail() {
	a.trail.Clear()
	a.tip = curve.Point{}
	a.hasTip = false
}

func (a *Animator) evaluate(spec fourier.Spectrum, selection []int) Frame {
	joints, circles := Chain(spec, selection, a.theta)
	return Frame{
		Theta:   a.theta,
		Joints:  joints,
		Circles: circles,
		Tip:     joints[len(joints)-1],
	}
}

func (a *Animator) trailPoints() []curve.Point {
	if a.trail.Len() <= 2 {
		return nil
	}
	return a.trail.Points()
}
