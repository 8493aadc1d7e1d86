package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devbench/devbench/internal/model"
)

// StepStartMsg indicates a capability has started its probe/install cycle.
type StepStartMsg struct {
	Capability string
	Time       time.Time
}

// StepCompleteMsg reports the outcome of one capability.
type StepCompleteMsg struct {
	Outcome model.StepOutcome
}

// RunDoneMsg carries the terminal state of the whole run.
type RunDoneMsg struct {
	Status model.RunStatus
}

type tickMsg struct{}

// stepRunning marks a started but unfinished capability in the outcomes map.
const stepRunning model.Action = "running"

// Model contains the Bubbletea state for the provisioning progress display.
type Model struct {
	name      string
	order     []string
	outcomes  map[string]model.StepOutcome
	total     int
	completed int
	status    model.RunStatus
	finished  bool
	cancelled bool
}

// NewModel constructs a progress model for the named run over the given
// capability list, in declaration order.
func NewModel(name string, capabilities []string) Model {
	m := Model{
		name:     name,
		outcomes: make(map[string]model.StepOutcome),
	}
	for _, c := range capabilities {
		m.ensureStep(c)
	}
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalSteps returns the number of capabilities tracked by the model.
func (m Model) TotalSteps() int {
	return m.total
}

// CompletedSteps returns the number of capabilities with a recorded outcome.
func (m Model) CompletedSteps() int {
	return m.completed
}

// IsFinished reports whether the run has reached a terminal state.
func (m Model) IsFinished() bool {
	return m.finished
}

func (m *Model) ensureStep(name string) {
	if name == "" {
		return
	}
	if _, exists := m.outcomes[name]; !exists {
		m.outcomes[name] = model.StepOutcome{Capability: name}
		m.order = append(m.order, name)
		m.total++
	}
}
