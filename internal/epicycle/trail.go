package epicycle

import "honnef.co/go/curve"

// Trail is a bounded FIFO of recent tip positions. Once full, every Push
// evicts the oldest point. It is not safe for concurrent use; the session loop
// owns it.
type Trail struct {
	buf  []curve.Point
	size int
	w    int // write position
	len  int // current fill level
}

// NewTrail creates a trail holding at most size points (at least one).
func NewTrail(size int) *Trail {
	size = max(size, 1)
	return &Trail{
		buf:  make([]curve.Point, size),
		size: size,
	}
}

// Push appends p and reports whether the oldest point was evicted to make room.
func (t *Trail) Push(p curve.Point) bool {
	evicted := t.len == t.size
	t.buf[t.w] = p
	t.w = (t.w + 1) % t.size
	if !evicted {
		t.len++
	}
	return evicted
}

// Points returns the stored points, oldest first.
func (t *Trail) Points() []curve.Point {
	if t.len == 0 {
		return nil
	}
	out := make([]curve.Point, t.len)
	start := (t.w - t.len + t.size) % t.size
	for i := range t.len {
		out[i] = t.buf[(start+i)%t.size]
	}
	return out
}

func (t *Trail) Len() int { return t.len }

func (t *Trail) Cap() int { return t.size }

// Clear resets the trail.
func (t *Trail) Clear() {
	t.w = 0
	t.len = 0
}
