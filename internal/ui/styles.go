package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/epidraw/internal/canvas"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1E5AFF", Dark: "#6495ED"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)

// Layer styles for the drawing surface, back to front.
var (
	background  = canvas.RGB(0, 0, 0)
	strokeStyle = canvas.NewStyle(canvas.Over(canvas.RGB(100, 149, 237), background, 0.55), 5)
	circleStyle = canvas.NewStyle(canvas.RGB(128, 128, 128), 1)
	trailStyle  = canvas.NewStyle(canvas.RGB(30, 90, 255), 8)
	trailFade   = canvas.Over(canvas.RGB(30, 90, 255), background, 0.25)
	chainStyle  = canvas.NewStyle(canvas.RGB(230, 50, 50), 3)
)
