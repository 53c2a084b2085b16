// Package ui is the kiosk's terminal front end. It renders snapshots from
// the view controller and translates key presses into controller calls;
// all orchestration decisions live on the controller side.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clarityplus/kiosk/internal/kiosk/enrollment"
	"github.com/clarityplus/kiosk/internal/kiosk/session"
	"github.com/clarityplus/kiosk/internal/kiosk/view"
)

// stateMsg delivers a fresh controller snapshot.
type stateMsg struct {
	state view.State
}

// actionDoneMsg reports a controller call that ran off the update loop.
type actionDoneMsg struct {
	err error
}

// Model is the Bubble Tea model for the kiosk screen.
type Model struct {
	ctrl *view.Controller
	keys keyMap

	state     view.State
	nameInput textinput.Model
	actionErr string

	width  int
	height int
}

func NewModel(ctrl *view.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = 64
	ti.Width = 32

	return Model{
		ctrl:      ctrl,
		keys:      newKeyMap(),
		state:     ctrl.Snapshot(),
		nameInput: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForUpdate(), textinput.Blink)
}

// waitForUpdate blocks on the controller's conflated update signal and
// re-snapshots. Update re-arms it after every stateMsg.
func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-m.ctrl.Updates()
		return stateMsg{state: m.ctrl.Snapshot()}
	}
}

// call runs a controller method off the update loop so a blocking backend
// request never freezes rendering.
func call(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg.state
		if m.state.Wizard.Stage == enrollment.StageName && !m.nameInput.Focused() {
			m.nameInput.Focus()
		}
		return m, m.waitForUpdate()

	case actionDoneMsg:
		if msg.err != nil {
			m.actionErr = msg.err.Error()
		} else {
			m.actionErr = ""
		}
		m.state = m.ctrl.Snapshot()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The name field swallows everything except navigation keys. Only a
	// bare enter confirms; space belongs to the name being typed.
	if m.state.Mode == session.ModeEnrollment && m.state.Wizard.Stage == enrollment.StageName {
		switch {
		case msg.Type == tea.KeyEnter:
			name := m.nameInput.Value()
			return m, call(func() error { return m.ctrl.EnterName(name) })
		case key.Matches(msg, m.keys.Back):
			return m, call(m.ctrl.WizardBack)
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.state.Mode {
	case session.ModeIdle:
		if key.Matches(msg, m.keys.Enroll) {
			m.nameInput.SetValue("")
			return m, call(m.ctrl.RequestEnrollment)
		}

	case session.ModeEnrollment:
		switch m.state.Wizard.Stage {
		case enrollment.StageWelcome:
			if key.Matches(msg, m.keys.Confirm) {
				return m, call(m.ctrl.RequestEnrollment)
			}
			if key.Matches(msg, m.keys.Back) {
				return m, call(func() error { m.ctrl.CancelEnrollment(); return nil })
			}
		case enrollment.StageCapture:
			if key.Matches(msg, m.keys.Confirm) {
				return m, call(m.ctrl.CapturePose)
			}
			if key.Matches(msg, m.keys.Back) {
				return m, call(m.ctrl.WizardBack)
			}
		case enrollment.StageSuccess:
			// The controller has already moved on to analysis.
		}

	case session.ModeAnalysis:
		switch {
		case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Back):
			return m, call(func() error { m.ctrl.DismissAnalysis(); return nil })
		case key.Matches(msg, m.keys.Retry):
			return m, call(func() error { m.ctrl.RetryAnalysis(); return nil })
		}
	}

	return m, nil
}
