package tui

import "github.com/charmbracelet/lipgloss"

// One style per capability action, plus the layout chrome. The palette leans
// on adaptive colors so the view stays readable on light terminals, where
// operators often run the provisioner from a stock Windows console.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "55", Dark: "99"})
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "75"}).MarginTop(1)

	installedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "78"})
	runningStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "26", Dark: "81"})
	failedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"})
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	wouldStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "94", Dark: "178"}).Italic(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	summaryStyle = lipgloss.NewStyle().MarginTop(1)
)
