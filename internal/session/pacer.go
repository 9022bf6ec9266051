package session

import "time"

// Pacer spaces loop iterations at a fixed interval, measuring how long each
// iteration took so the sleep absorbs the work instead of adding to it.
type Pacer struct {
	interval time.Duration
	now      func() time.Time
	start    time.Time
}

// NewPacer creates a Pacer for rateHz iterations per second.
func NewPacer(rateHz float64) *Pacer {
	return &Pacer{
		interval: time.Duration(float64(time.Second) / rateHz),
		now:      time.Now,
	}
}

func (p *Pacer) Interval() time.Duration { return p.interval }

// Begin marks the start of an iteration.
func (p *Pacer) Begin() {
	p.start = p.now()
}

// Delay is how long to sleep before the next iteration: the rest of the
// interval, or zero when the iteration overran it.
func (p *Pacer) Delay() time.Duration {
	return max(0, p.interval-p.now().Sub(p.start))
}
