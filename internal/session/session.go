package session

import (
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/olivier-w/epidraw/internal/epicycle"
	"github.com/olivier-w/epidraw/internal/fourier"
	"honnef.co/go/curve"
)

// Options configures a Session.
type Options struct {
	Points       int
	AnimationHz  float64
	RotationHz   float64
	TrailDamping float64
	// Frequencies is the initial number of selected bins.
	Frequencies int
	FollowScale float64
	Transform   fourier.Transform
}

// RenderModel is everything a renderer needs for one frame. It shares no
// memory with the session.
type RenderModel struct {
	Surface Surface
	// Strokes holds the completed stroke (if any) followed by the stroke
	// being drawn (if any).
	Strokes  []Stroke
	HasCurve bool
	Joints   []curve.Point
	Circles  []curve.Circle
	Trail    []curve.Point
	Tip      curve.Point
	// Camera is applied to everything drawn; identity unless following.
	Camera    curve.Affine
	Following bool

	Frequencies int
	MaxFreq     int
	Follow      bool
	Drawing     bool
}

// Session is the drawing controller. It tracks at most one stroke being
// drawn and at most one analysed curve. It is not safe for concurrent use:
// all calls must come from one goroutine (see Loop).
type Session struct {
	opts     Options
	logger   *log.Logger
	analyzer *fourier.Analyzer
	animator *epicycle.Animator
	surface  Surface

	active    *Stroke
	completed *Stroke
	spectrum  fourier.Spectrum
	selector  *fourier.Selector // nil while there is no curve

	frequencies int
	follow      bool
}

// New creates a Session. A nil logger discards output.
func New(opts Options, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	freq := opts.Frequencies
	if freq < 0 || freq > opts.Points {
		freq = opts.Points
	}
	return &Session{
		opts:        opts,
		logger:      logger,
		analyzer:    fourier.NewAnalyzer(opts.Transform, opts.Points),
		animator:    epicycle.NewAnimator(epicycle.NewClock(opts.AnimationHz, opts.RotationHz), epicycle.TrailCapacity(opts.AnimationHz, opts.RotationHz, opts.TrailDamping)),
		frequencies: freq,
	}
}

// SetSurface updates the input to pixel mapping.
func (s *Session) SetSurface(sf Surface) { s.surface = sf }

func (s *Session) Surface() Surface { return s.surface }

// Drawing reports whether a stroke is being captured.
func (s *Session) Drawing() bool { return s.active != nil }

// HasCurve reports whether a spectrum is available to animate.
func (s *Session) HasCurve() bool { return s.selector != nil }

func (s *Session) Spectrum() (fourier.Spectrum, bool) { return s.spectrum, s.HasCurve() }

func (s *Session) Animator() *epicycle.Animator { return s.animator }

// HandlePointer dispatches ev after mapping it to pixel space. It reports
// whether the event changed the session.
func (s *Session) HandlePointer(ev PointerEvent) bool {
	pt := s.surface.ToPixel(ev.Pos)
	switch ev.Kind {
	case Pressed:
		return s.Press(ev.ID, pt)
	case Moved:
		return s.Move(ev.ID, pt)
	case Released:
		return s.Release(ev.ID, pt)
	case Cancelled:
		return s.Cancel(ev.ID)
	}
	return false
}

// Press starts a stroke at pt. Only one stroke is tracked at a time; a press
// while another stroke is active is ignored.
func (s *Session) Press(id int64, pt curve.Point) bool {
	if s.active != nil {
		s.logger.Debug("ignoring concurrent press", "id", id, "active", s.active.ID)
		return false
	}
	s.active = &Stroke{ID: id, Points: []curve.Point{pt}}
	return true
}

// Move extends the active stroke.
func (s *Session) Move(id int64, pt curve.Point) bool {
	if s.active == nil || s.active.ID != id {
		return false
	}
	s.active.Points = append(s.active.Points, pt)
	return true
}

// Release closes the active stroke, replaces the previous curve with it and
// analyses it. pt is not appended; the last Move already placed the pen
// there.
func (s *Session) Release(id int64, pt curve.Point) bool {
	if s.active == nil || s.active.ID != id {
		return false
	}
	stroke := s.active
	stroke.Closed = true
	s.active = nil
	s.completed = stroke
	s.animator.ClearTrail()
	s.analyze(stroke)
	return true
}

// Cancel drops the active stroke without touching the current curve.
func (s *Session) Cancel(id int64) bool {
	if s.active == nil || s.active.ID != id {
		return false
	}
	s.active = nil
	return true
}

func (s *Session) analyze(stroke *Stroke) {
	start := time.Now()
	s.selector = nil
	s.spectrum = fourier.Spectrum{}

	samples, err := fourier.Resample(stroke.Points, s.opts.Points)
	if err != nil {
		s.logger.Error("resample failed", "err", err, "points", len(stroke.Points))
		return
	}
	spec, err := s.analyzer.Analyze(samples)
	if err != nil {
		s.logger.Error("spectrum analysis failed", "err", err)
		return
	}
	s.spectrum = spec
	s.selector = fourier.NewSelector(spec)
	s.logger.Debug("curve analysed",
		"raw_points", len(stroke.Points),
		"perimeter", fourier.ClosedLength(stroke.Points),
		"samples", len(samples),
		"origin", spec.Origin(),
		"took", time.Since(start),
	)
}

// Reset drops every stroke, the curve and the trail, and turns follow off.
func (s *Session) Reset() {
	s.active = nil
	s.completed = nil
	s.selector = nil
	s.spectrum = fourier.Spectrum{}
	s.animator.ClearTrail()
	s.follow = false
	s.logger.Debug("session reset")
}

// Frequencies is the accepted number of selected bins.
func (s *Session) Frequencies() int { return s.frequencies }

// MaxFrequencies is the largest accepted frequency count.
func (s *Session) MaxFrequencies() int { return s.opts.Points }

// SetFrequencyCount accepts k when it lies in [0, points].
func (s *Session) SetFrequencyCount(k int) bool {
	if k < 0 || k > s.opts.Points {
		return false
	}
	s.frequencies = k
	return true
}

// SetFrequencyText parses text as a frequency count. Malformed or out of range
// text leaves the previous value in place.
func (s *Session) SetFrequencyText(text string) bool {
	k, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		s.logger.Debug("ignoring frequency text", "text", text, "err", err)
		return false
	}
	if !s.SetFrequencyCount(k) {
		s.logger.Debug("ignoring frequency count out of range", "k", k, "max", s.opts.Points)
		return false
	}
	return true
}

// FrequencyText is the accepted frequency count as text.
func (s *Session) FrequencyText() string { return strconv.Itoa(s.frequencies) }

func (s *Session) Follow() bool { return s.follow }

func (s *Session) SetFollow(on bool) { s.follow = on }

func (s *Session) ToggleFollow() bool {
	s.follow = !s.follow
	return s.follow
}

// Tick advances the animation one step and renders the result.
func (s *Session) Tick() RenderModel {
	if !s.HasCurve() {
		s.animator.Turn()
		return s.render(nil)
	}
	f := s.animator.Step(s.spectrum, s.selector.Top(s.frequencies))
	return s.render(&f)
}

// Render builds the current frame without advancing the animation.
func (s *Session) Render() RenderModel {
	if !s.HasCurve() {
		return s.render(nil)
	}
	f := s.animator.Peek(s.spectrum, s.selector.Top(s.frequencies))
	return s.render(&f)
}

func (s *Session) render(f *epicycle.Frame) RenderModel {
	m := RenderModel{
		Surface:     s.surface,
		Camera:      curve.Identity,
		Frequencies: s.frequencies,
		MaxFreq:     s.opts.Points,
		Follow:      s.follow,
		Drawing:     s.active != nil,
	}
	if s.completed != nil {
		m.Strokes = append(m.Strokes, s.completed.clone())
	}
	if s.active != nil {
		m.Strokes = append(m.Strokes, s.active.clone())
	}
	if f != nil {
		m.HasCurve = true
		m.Joints = f.Joints
		m.Circles = f.Circles
		m.Trail = slices.Clone(f.Trail)
		m.Tip = f.Tip
	}
	if tip, ok := s.animator.Tip(); ok && s.follow && s.active == nil {
		m.Camera = FollowCamera(tip, s.surface.Center(), s.opts.FollowScale)
		m.Following = true
	}
	return m
}

// FollowCamera scales the scene by scale and then moves tip to center.
func FollowCamera(tip, center curve.Point, scale float64) curve.Affine {
	return curve.Scale(scale, scale).ThenTranslate(curve.Vec(center.X-tip.X*scale, center.Y-tip.Y*scale))
}
