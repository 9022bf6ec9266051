package session

import "sync/atomic"

// Guard admits at most one render pass at a time. Callers that fail to
// acquire it drop their request.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire takes the slot if it is free.
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *Guard) Release() {
	g.busy.Store(false)
}

// Busy reports whether a pass is in flight.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}
