package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devbench/devbench/internal/model"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case StepStartMsg:
		m.ensureStep(msg.Capability)
		step := m.outcomes[msg.Capability]
		step.Action = stepRunning
		m.outcomes[msg.Capability] = step
		return m, nil
	case StepCompleteMsg:
		name := msg.Outcome.Capability
		if name == "" {
			return m, nil
		}
		m.ensureStep(name)
		previous := m.outcomes[name].Action
		m.outcomes[name] = msg.Outcome
		if previous == "" || previous == stepRunning {
			m.completed++
		}
		return m, nil
	case RunDoneMsg:
		m.status = msg.Status
		m.finished = true
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, nil
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}

// Cancelled reports whether the user interrupted the run from the UI.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Status returns the terminal run state once RunDoneMsg has been seen.
func (m Model) Status() model.RunStatus {
	return m.status
}
