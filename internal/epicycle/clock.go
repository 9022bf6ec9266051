package epicycle

import "math"

const twoPi = 2 * math.Pi

// Clock advances the rotation angle by a fixed increment per animation tick,
// so one full turn takes animationHz/rotationHz ticks regardless of how late
// the ticks arrive.
type Clock struct {
	animationHz float64
	rotationHz  float64
	step        float64
}

func NewClock(animationHz, rotationHz float64) Clock {
	return Clock{
		animationHz: animationHz,
		rotationHz:  rotationHz,
		step:        twoPi * rotationHz / animationHz,
	}
}

// Step is the angle added per tick.
func (c Clock) Step() float64 { return c.step }

// Advance returns theta moved one tick forward, wrapped into [0, 2π).
func (c Clock) Advance(theta float64) float64 {
	next := math.Mod(theta+c.step, twoPi)
	if next < 0 {
		next += twoPi
	}
	return next
}

// TicksPerTurn is the number of ticks in one rotation period.
func (c Clock) TicksPerTurn() float64 {
	return c.animationHz / c.rotationHz
}

// TrailCapacity sizes the trail to damping of one rotation period, leaving a
// gap between the head and the tail of the trace.
func TrailCapacity(animationHz, rotationHz, damping float64) int {
	return int(math.Round(animationHz / rotationHz * damping))
}
