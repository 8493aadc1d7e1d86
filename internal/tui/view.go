package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/devbench/devbench/internal/model"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, headerStyle.Render(fmt.Sprintf("devbench • %s", m.title())))
	sections = append(sections, sectionStyle.Render("Progress"), m.renderProgress())

	if len(m.order) > 0 {
		sections = append(sections, sectionStyle.Render("Capabilities"), m.renderSteps())
	}

	if summary := m.renderSummary(); summary != "" {
		sections = append(sections, summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderProgress() string {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30

	ratio := 0.0
	if m.total > 0 {
		ratio = math.Min(1.0, float64(m.completed)/float64(m.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", m.completed, m.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", bar.ViewAs(ratio))
}

func (m Model) renderSteps() string {
	lines := make([]string, 0, len(m.order))
	for _, name := range m.order {
		outcome := m.outcomes[name]
		line := fmt.Sprintf(" %s %s", ActionIcon(outcome.Action), name)
		if detail := strings.TrimSpace(outcome.Detail); detail != "" {
			line = fmt.Sprintf("%s: %s", line, detail)
		}
		if outcome.Error != nil {
			line = fmt.Sprintf("%s: %s", line, outcome.Error)
		}
		if outcome.Duration > 0 {
			line = fmt.Sprintf("%s (%s)", line, outcome.Duration.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSummary() string {
	switch {
	case m.cancelled:
		return failedStyle.Render("Cancelled")
	case !m.finished:
		return ""
	case m.status == model.RunHalted:
		return failedStyle.Render("Provisioning halted; fix the failure above and re-run")
	default:
		return installedStyle.Render("Workstation ready")
	}
}

func (m Model) title() string {
	if strings.TrimSpace(m.name) != "" {
		return m.name
	}
	return "Provisioning"
}

// ActionIcon returns the glyph representing a capability's current state.
func ActionIcon(action model.Action) string {
	switch action {
	case model.ActionInstalled:
		return installedStyle.Render("✓")
	case model.ActionSkipped:
		return skippedStyle.Render("⊘")
	case model.ActionFailed:
		return failedStyle.Render("✗")
	case model.ActionWouldInstall:
		return wouldStyle.Render("✱")
	case stepRunning:
		return runningStyle.Render("⏳")
	default:
		return pendingStyle.Render("…")
	}
}
