package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// gauge eases the displayed frequency count towards the selected one.
type gauge struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newGauge(fps int, start float64) gauge {
	return gauge{spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 6.0, 0.8), pos: start}
}

func (g *gauge) step(target float64) float64 {
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, target)
	return g.pos
}

func renderGauge(value, total float64, width int) string {
	if width < 4 {
		width = 4
	}

	var ratio float64
	if total > 0 {
		ratio = value / total
	}
	ratio = math.Max(0, math.Min(1, ratio))

	filled := int(math.Round(ratio * float64(width)))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

func renderCount(k, total int) string {
	return fmt.Sprintf("%d/%d", k, total)
}
