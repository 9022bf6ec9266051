package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/epidraw/internal/canvas"
	"github.com/olivier-w/epidraw/internal/session"
)

// Painter turns render models into braille frames. A Painter is used by one
// redraw at a time.
type Painter struct {
	canvas *canvas.Canvas
}

// NewPainter returns a Painter with an empty canvas.
func NewPainter() *Painter {
	return &Painter{canvas: canvas.New(0, 0)}
}

// Paint rasterizes m at the cell size given by its surface.
func (p *Painter) Paint(m session.RenderModel) string {
	cols, rows := int(m.Surface.Logical.Width), int(m.Surface.Logical.Height)
	if c, r := p.canvas.Cells(); c != cols || r != rows {
		p.canvas.Resize(cols, rows)
	}
	cv := p.canvas
	cv.Clear()
	cv.SetTransform(m.Camera)

	for _, s := range m.Strokes {
		cv.Path(s.Path(), strokeStyle)
	}
	if !m.HasCurve {
		return cv.String()
	}
	for _, c := range m.Circles {
		cv.Circle(c, circleStyle)
	}
	if len(m.Trail) > 0 {
		cv.Gradient(m.Trail, trailStyle, trailFade)
	}
	cv.Polyline(m.Joints, chainStyle)
	return cv.String()
}

// Redrawer adapts a Painter to the session loop: each render model is painted
// off the UI goroutine and delivered with send.
func Redrawer(p *Painter, send func(tea.Msg)) session.RedrawFunc {
	return func(m session.RenderModel) {
		send(frameMsg{view: p.Paint(m), state: stateFromModel(m)})
	}
}
