package ui

import "github.com/olivier-w/epidraw/internal/session"

// frameMsg carries one painted frame from the redraw goroutine.
type frameMsg struct {
	view  string
	state controlState
}

// stateMsg reports the session controls after a change was applied.
type stateMsg struct {
	state    controlState
	accepted bool
}

// stoppedMsg is sent when a control could not reach the session loop.
type stoppedMsg struct{ err error }

type controlState struct {
	frequencies int
	maxFreq     int
	text        string
	follow      bool
	hasCurve    bool
	drawing     bool
}

func stateFromModel(m session.RenderModel) controlState {
	return controlState{
		frequencies: m.Frequencies,
		maxFreq:     m.MaxFreq,
		follow:      m.Follow,
		hasCurve:    m.HasCurve,
		drawing:     m.Drawing,
	}
}

func stateFromSession(s *session.Session) controlState {
	return controlState{
		frequencies: s.Frequencies(),
		maxFreq:     s.MaxFrequencies(),
		text:        s.FrequencyText(),
		follow:      s.Follow(),
		hasCurve:    s.HasCurve(),
		drawing:     s.Drawing(),
	}
}
