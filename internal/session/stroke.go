package session

import (
	"slices"

	"honnef.co/go/curve"
)

// PointerKind is the phase of a pointer gesture.
type PointerKind int

const (
	Pressed PointerKind = iota
	Moved
	Released
	Cancelled
)

func (k PointerKind) String() string {
	switch k {
	case Pressed:
		return "pressed"
	case Moved:
		return "moved"
	case Released:
		return "released"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PointerEvent is one input sample. Pos is in the input surface's logical
// units; ID is stable for the duration of a gesture.
type PointerEvent struct {
	Kind PointerKind
	ID   int64
	Pos  curve.Point
}

// Stroke is a freehand path in pixel space.
type Stroke struct {
	ID     int64
	Points []curve.Point
	Closed bool
}

// Path returns the stroke as a polyline, closed back to its first point once
// the stroke is finished.
func (s Stroke) Path() curve.BezPath {
	var p curve.BezPath
	if len(s.Points) == 0 {
		return p
	}
	p.MoveTo(s.Points[0])
	for _, pt := range s.Points[1:] {
		p.LineTo(pt)
	}
	if s.Closed {
		p.ClosePath()
	}
	return p
}

func (s Stroke) clone() Stroke {
	s.Points = slices.Clone(s.Points)
	return s
}

// Surface maps input coordinates to pixel coordinates.
type Surface struct {
	Logical curve.Size
	Pixels  curve.Size
}

// Scale is pixels per logical unit on each axis. An unsized surface maps 1:1.
func (s Surface) Scale() curve.Vec2 {
	sx, sy := 1.0, 1.0
	if s.Logical.Width > 0 {
		sx = s.Pixels.Width / s.Logical.Width
	}
	if s.Logical.Height > 0 {
		sy = s.Pixels.Height / s.Logical.Height
	}
	return curve.Vec(sx, sy)
}

// ToPixel converts a logical point to pixel space.
func (s Surface) ToPixel(p curve.Point) curve.Point {
	return p.Transform(curve.Scale(s.Scale().Splat()))
}

// Center is the middle of the pixel surface.
func (s Surface) Center() curve.Point {
	return curve.Pt(s.Pixels.Width/2, s.Pixels.Height/2)
}
