// Package canvas rasterizes vector drawing onto a grid of Unicode Braille
// cells. Every cell is a 2x4 dot matrix, so a canvas of cols x rows cells
// has cols*2 x rows*4 addressable dots.
package canvas

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"honnef.co/go/curve"
)

const (
	// DotsX and DotsY are the dot resolution of a single cell.
	DotsX = 2
	DotsY = 4

	// Widths at or above this draw with a 2x2 pen.
	thickWidth = 6

	flattenTolerance = 0.25
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [DotsX][DotsY]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Style describes how a shape is stroked. The join and cap descriptors in
// Stroke are carried for callers but a braille dot has no sub-cell geometry
// to apply them to.
type Style struct {
	Color  colorful.Color
	Stroke curve.Stroke
}

// NewStyle returns a round-capped style of the given color and width.
func NewStyle(c colorful.Color, width float64) Style {
	return Style{Color: c, Stroke: curve.DefaultStroke.WithWidth(width)}
}

func (s Style) thick() bool { return s.Stroke.Width >= thickWidth }

type cell struct {
	bits uint8
	ink  colorful.Color
}

// Canvas is a braille raster. The zero value is an empty 0x0 canvas.
type Canvas struct {
	cols, rows int
	cells      []cell
	xf         curve.Affine
	profile    termenv.Profile
	seqs       map[string]string
}

// New returns a canvas of cols x rows cells using the terminal's color
// profile.
func New(cols, rows int) *Canvas {
	c := &Canvas{profile: termenv.EnvColorProfile(), seqs: make(map[string]string)}
	c.Resize(cols, rows)
	return c
}

// SetProfile overrides the color profile used by String.
func (c *Canvas) SetProfile(p termenv.Profile) {
	c.profile = p
	clear(c.seqs)
}

// Resize discards the content and sets a new cell size.
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 0)
	c.rows = max(rows, 0)
	c.cells = make([]cell, c.cols*c.rows)
	c.xf = curve.Identity
}

// Cells returns the size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

// Size returns the size in dots.
func (c *Canvas) Size() curve.Size {
	return curve.Sz(float64(c.cols*DotsX), float64(c.rows*DotsY))
}

// SetTransform sets the transform applied to every subsequent shape.
func (c *Canvas) SetTransform(aff curve.Affine) { c.xf = aff }

// Transform returns the current transform.
func (c *Canvas) Transform() curve.Affine { return c.xf }

// Clear erases every dot and resets the transform.
func (c *Canvas) Clear() {
	clear(c.cells)
	c.xf = curve.Identity
}

// At reports whether the dot at (x, y) is set.
func (c *Canvas) At(x, y int) bool {
	i, bit, ok := c.locate(x, y)
	return ok && c.cells[i].bits&(1<<bit) != 0
}

func (c *Canvas) locate(x, y int) (int, uint, bool) {
	if x < 0 || y < 0 || x >= c.cols*DotsX || y >= c.rows*DotsY {
		return 0, 0, false
	}
	return (y/DotsY)*c.cols + x/DotsX, brailleBits[x%DotsX][y%DotsY], true
}

func (c *Canvas) set(x, y int, ink colorful.Color) {
	i, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.cells[i].bits |= 1 << bit
	c.cells[i].ink = ink
}

func (c *Canvas) plot(x, y int, st Style, ink colorful.Color) {
	c.set(x, y, ink)
	if st.thick() {
		c.set(x+1, y, ink)
		c.set(x, y+1, ink)
		c.set(x+1, y+1, ink)
	}
}

// Polyline strokes the open polyline through pts. A single point draws one
// dot.
func (c *Canvas) Polyline(pts []curve.Point, st Style) {
	switch len(pts) {
	case 0:
		return
	case 1:
		p := pts[0].Transform(c.xf)
		c.line(p, p, st, st.Color)
		return
	}
	prev := pts[0].Transform(c.xf)
	for _, pt := range pts[1:] {
		next := pt.Transform(c.xf)
		c.line(prev, next, st, st.Color)
		prev = next
	}
}

// Gradient strokes pts like Polyline, blending each segment's color from
// from at the first point to st.Color at the last.
func (c *Canvas) Gradient(pts []curve.Point, st Style, from colorful.Color) {
	if len(pts) < 2 {
		c.Polyline(pts, st)
		return
	}
	last := float64(len(pts) - 1)
	prev := pts[0].Transform(c.xf)
	for i, pt := range pts[1:] {
		next := pt.Transform(c.xf)
		ink := from.BlendRgb(st.Color, float64(i+1)/last).Clamped()
		c.line(prev, next, st, ink)
		prev = next
	}
}

// Path strokes a Bézier path after flattening it.
func (c *Canvas) Path(p curve.BezPath, st Style) {
	var start, prev curve.Point
	var open bool
	for el := range curve.Flatten(curve.Transform(p.Elements(), c.xf), flattenTolerance) {
		switch el.Kind {
		case curve.MoveToKind:
			start, prev, open = el.P0, el.P0, true
			c.line(prev, prev, st, st.Color)
		case curve.LineToKind:
			if open {
				c.line(prev, el.P0, st, st.Color)
			}
			prev, open = el.P0, true
		case curve.ClosePathKind:
			if open {
				c.line(prev, start, st, st.Color)
			}
			prev = start
		}
	}
}

// Circle strokes the outline of ci.
func (c *Canvas) Circle(ci curve.Circle, st Style) {
	if ci.Radius <= 0 || math.IsNaN(ci.Radius) {
		c.Polyline([]curve.Point{ci.Center}, st)
		return
	}
	c.Path(ci.Path(flattenTolerance), st)
}

// line rasterizes the device-space segment a-b with Bresenham after
// clipping it to the canvas.
func (c *Canvas) line(a, b curve.Point, st Style, ink colorful.Color) {
	if a.IsNaN() || b.IsNaN() || a.IsInf() || b.IsInf() {
		return
	}
	size := c.Size()
	a, b, ok := clip(a, b, -1, -1, size.Width, size.Height)
	if !ok {
		return
	}
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.plot(x0, y0, st, ink)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip is Liang-Barsky against the rectangle [x0,x1]x[y0,y1].
func clip(a, b curve.Point, x0, y0, x1, y1 float64) (curve.Point, curve.Point, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, a.X - x0},
		{d.X, x1 - a.X},
		{-d.Y, a.Y - y0},
		{d.Y, y1 - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = min(t1, r)
		}
	}
	return a.Translate(d.Mul(t0)), a.Translate(d.Mul(t1)), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// String renders the canvas as rows of braille runes joined by newlines,
// colored per cell with the ink of the last shape that touched it.
func (c *Canvas) String() string {
	if c.cols == 0 || c.rows == 0 {
		return ""
	}
	if c.seqs == nil {
		c.seqs = make(map[string]string)
	}
	var sb strings.Builder
	sb.Grow(c.rows * (c.cols*3 + 1))
	ansi := newANSIState(c.profile, c.seqs)
	for row := range c.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range c.cols {
			cl := c.cells[row*c.cols+col]
			if cl.bits != 0 {
				ansi.set(&sb, cl.ink)
			}
			sb.WriteRune(rune(0x2800 + int(cl.bits)))
		}
		ansi.reset(&sb)
	}
	return sb.String()
}
