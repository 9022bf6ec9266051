package session

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("session: loop stopped")

// RedrawFunc draws one frame. It runs on its own goroutine and may be slow;
// frames produced while it is still running are dropped.
type RedrawFunc func(RenderModel)

// Loop owns a Session and is the only goroutine that touches it. Input events,
// control changes and animation ticks are all serialized through Run.
type Loop struct {
	session *Session
	pacer   *Pacer
	logger  *log.Logger
	redraw  RedrawFunc
	guard   Guard

	inbox   chan func()
	done    chan struct{}
	visible bool
	timer   *time.Timer
	ticking bool

	dropped int
}

// NewLoop creates a Loop ticking at animationHz. The loop starts hidden.
func NewLoop(s *Session, animationHz float64, logger *log.Logger) *Loop {
	if logger == nil {
		logger = s.logger
	}
	return &Loop{
		session: s,
		pacer:   NewPacer(animationHz),
		logger:  logger,
		inbox:   make(chan func(), 64),
		done:    make(chan struct{}),
	}
}

// OnRedraw sets the frame consumer. Call before Run.
func (l *Loop) OnRedraw(fn RedrawFunc) {
	l.redraw = fn
}

// Post queues fn to run against the session on the loop goroutine, followed
// by a redraw when the view is visible. It is a no-op once the loop stopped.
func (l *Loop) Post(fn func(*Session)) {
	l.enqueue(func() {
		fn(l.session)
		if l.visible {
			l.requestRedraw(l.session.Render())
		}
	})
}

// Do runs fn on the loop goroutine and waits for it.
func (l *Loop) Do(ctx context.Context, fn func(*Session)) error {
	finished := make(chan struct{})
	l.Post(func(s *Session) {
		defer close(finished)
		fn(s)
	})
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pointer forwards an input event to the session.
func (l *Loop) Pointer(ev PointerEvent) {
	l.Post(func(s *Session) { s.HandlePointer(ev) })
}

// SetVisible starts or stops the animation clock. Hiding lets the pending
// sleep finish; the next iteration then sees the flag and does not tick.
func (l *Loop) SetVisible(v bool) {
	l.enqueue(func() { l.setVisible(v) })
}

func (l *Loop) enqueue(fn func()) {
	select {
	case l.inbox <- fn:
	case <-l.done:
	}
}

// Run serves events and ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	l.timer = time.NewTimer(time.Hour)
	l.timer.Stop()
	defer l.timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.inbox:
			fn()
		case <-l.timer.C:
			l.ticking = false
			if !l.visible {
				l.logger.Debug("animation stopped")
				continue
			}
			l.pacer.Begin()
			l.requestRedraw(l.session.Tick())
			l.schedule(l.pacer.Delay())
		}
	}
}

func (l *Loop) setVisible(v bool) {
	l.visible = v
	if v && !l.ticking {
		l.logger.Debug("animation started", "interval", l.pacer.Interval())
		l.schedule(0)
	}
}

func (l *Loop) schedule(d time.Duration) {
	l.ticking = true
	l.timer.Reset(d)
}

func (l *Loop) requestRedraw(m RenderModel) {
	if l.redraw == nil {
		return
	}
	if !l.guard.TryAcquire() {
		l.dropped++
		if l.dropped%100 == 1 {
			l.logger.Debug("redraw busy, dropping frame", "dropped", l.dropped)
		}
		return
	}
	go func() {
		defer l.guard.Release()
		l.redraw(m)
	}()
}
