package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func isFocusInput(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "tab", "/":
		return true
	}
	return false
}

func helpText(editing, drawing bool) string {
	if editing {
		return "enter apply  esc/tab cancel  ctrl+c quit"
	}
	s := "drag draw  +/- freqs  tab edit  f follow  c clear"
	if drawing {
		s += "  esc/right-click cancel"
	}
	s += "  q quit"
	return s
}
