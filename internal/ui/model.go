package ui

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/epidraw/internal/session"
	"honnef.co/go/curve"
)

const (
	// canvasTop is the screen row of the first canvas line.
	canvasTop = 1
	// chromeHeight counts the header, status and help lines.
	chromeHeight = 3

	pointerID      = 1
	controlTimeout = time.Second
	gaugeWidth     = 20
)

// Options configures the UI.
type Options struct {
	AnimationHz    float64
	Frequencies    int
	MaxFrequencies int
}

// Model is the Bubbletea model for the epidraw TUI. The drawing state lives in
// the session loop; the model only keeps what it needs to render chrome.
type Model struct {
	loop  *session.Loop
	input textinput.Model
	gauge gauge

	state  controlState
	frame  string
	width  int
	height int

	pointerDown bool
	quitting    bool
	err         error
}

// New creates a Model driving loop.
func New(loop *session.Loop, opts Options) Model {
	text := strconv.Itoa(opts.Frequencies)

	ti := textinput.New()
	ti.Prompt = "K "
	ti.Placeholder = "frequencies"
	ti.CharLimit = 6
	ti.Width = 6
	ti.SetValue(text)

	return Model{
		loop:  loop,
		input: ti,
		gauge: newGauge(int(math.Round(opts.AnimationHz)), float64(opts.Frequencies)),
		state: controlState{
			frequencies: opts.Frequencies,
			maxFreq:     opts.MaxFrequencies,
			text:        text,
		},
	}
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("epidraw"), m.setVisible(true))
}

func (m Model) setVisible(v bool) tea.Cmd {
	loop := m.loop
	return func() tea.Msg {
		loop.SetVisible(v)
		return nil
	}
}

// control applies fn on the session loop and reports the resulting state.
func (m Model) control(fn func(*session.Session) bool) tea.Cmd {
	loop := m.loop
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), controlTimeout)
		defer cancel()

		var msg stateMsg
		err := loop.Do(ctx, func(s *session.Session) {
			msg.accepted = fn(s)
			msg.state = stateFromSession(s)
		})
		if err != nil {
			return stoppedMsg{err: err}
		}
		return msg
	}
}

func adjustFrequencies(delta int) func(*session.Session) bool {
	return func(s *session.Session) bool {
		return s.SetFrequencyCount(s.Frequencies() + delta)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.Focused() {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		sf := m.surface()
		m.loop.Post(func(s *session.Session) { s.SetSurface(sf) })
		return m, nil

	case tea.FocusMsg:
		return m, m.setVisible(true)

	case tea.BlurMsg:
		return m, m.setVisible(false)

	case frameMsg:
		m.frame = msg.view
		st := msg.state
		st.text = strconv.Itoa(st.frequencies)
		m.applyState(st)
		m.gauge.step(float64(st.frequencies))
		return m, nil

	case stateMsg:
		m.applyState(msg.state)
		return m, nil

	case stoppedMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyState(st controlState) {
	m.state = st
	if !m.input.Focused() {
		m.input.SetValue(st.text)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	if isFocusInput(msg) {
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	switch msg.String() {
	case "+", "=":
		return m, m.control(adjustFrequencies(1))
	case "-", "_":
		return m, m.control(adjustFrequencies(-1))
	case "f":
		return m, m.control(func(s *session.Session) bool {
			s.ToggleFollow()
			return true
		})
	case "c":
		m.pointerDown = false
		return m, m.control(func(s *session.Session) bool {
			s.Reset()
			return true
		})
	case "esc":
		if m.pointerDown {
			m.pointerDown = false
			m.loop.Pointer(session.PointerEvent{Kind: session.Cancelled, ID: pointerID})
		}
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case "enter":
		text := m.input.Value()
		m.input.Blur()
		return m, m.control(func(s *session.Session) bool {
			return s.SetFrequencyText(text)
		})
	case "esc", "tab":
		m.input.Blur()
		m.input.SetValue(m.state.text)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.control(adjustFrequencies(1))
		case tea.MouseButtonWheelDown:
			return m, m.control(adjustFrequencies(-1))
		}
	}

	ev, ok := m.pointerEvent(msg)
	if !ok {
		return m, nil
	}
	switch ev.Kind {
	case session.Pressed:
		m.pointerDown = true
	case session.Released, session.Cancelled:
		m.pointerDown = false
	}
	m.loop.Pointer(ev)
	return m, nil
}

// pointerEvent maps a terminal mouse event to a pointer event in cell units
// relative to the canvas. Positions land in the middle of the cell.
func (m Model) pointerEvent(msg tea.MouseMsg) (session.PointerEvent, bool) {
	ev := session.PointerEvent{
		ID:  pointerID,
		Pos: curve.Pt(float64(msg.X)+0.5, float64(msg.Y-canvasTop)+0.5),
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if m.pointerDown || !m.inCanvas(msg.X, msg.Y) {
				return ev, false
			}
			ev.Kind = session.Pressed
		case tea.MouseButtonRight:
			if !m.pointerDown {
				return ev, false
			}
			ev.Kind = session.Cancelled
		default:
			return ev, false
		}
	case tea.MouseActionMotion:
		if !m.pointerDown {
			return ev, false
		}
		ev.Kind = session.Moved
	case tea.MouseActionRelease:
		if !m.pointerDown {
			return ev, false
		}
		ev.Kind = session.Released
	default:
		return ev, false
	}
	return ev, true
}

func (m Model) canvasRows() int {
	return max(m.height-chromeHeight, 0)
}

func (m Model) inCanvas(x, y int) bool {
	return x >= 0 && x < m.width && y >= canvasTop && y < canvasTop+m.canvasRows()
}

func (m Model) surface() session.Surface {
	cols, rows := float64(m.width), float64(m.canvasRows())
	return session.Surface{
		Logical: curve.Sz(cols, rows),
		Pixels:  curve.Sz(cols*2, rows*4),
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteByte('\n')

	lines := strings.Split(m.frame, "\n")
	for i := range m.canvasRows() {
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(helpText(m.input.Focused(), m.pointerDown)))
	return b.String()
}

func (m Model) headerLine() string {
	s := headerStyle.Render("epidraw") + "  " + labelStyle.Render(m.input.View())
	if m.state.follow {
		s += "  " + activeStyle.Render("follow")
	}
	return s
}

func (m Model) statusLine() string {
	shown := int(math.Round(m.gauge.pos))
	shown = max(0, min(shown, m.state.maxFreq))
	s := renderGauge(m.gauge.pos, float64(m.state.maxFreq), gaugeWidth) + " " + renderCount(shown, m.state.maxFreq)

	switch {
	case m.pointerDown || m.state.drawing:
		s += "  drawing"
	case !m.state.hasCurve:
		s += "  draw a closed shape"
	}
	return statusStyle.Render(s)
}
