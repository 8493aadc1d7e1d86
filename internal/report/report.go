package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/devbench/devbench/internal/logger"
)

// Level classifies a status event emitted during a provisioning run.
type Level int

const (
	// LevelInfo announces a step or intermediate progress.
	LevelInfo Level = iota
	// LevelSuccess marks a machine-state change that completed.
	LevelSuccess
	// LevelWarning flags a non-fatal problem the run continued past.
	LevelWarning
	// LevelError reports a failure, always with the underlying tool message.
	LevelError
	// LevelSkip records that a capability was already satisfied.
	LevelSkip
)

// String returns the canonical lower-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSkip:
		return "skip"
	default:
		return "info"
	}
}

// Reporter is the leveled status channel every component reports machine
// state changes through. Implementations must never return or raise an
// error: a broken sink cannot be allowed to mask the real provisioning
// failure.
type Reporter interface {
	// Report emits one leveled status event. Emission is append-only and
	// ordered.
	Report(level Level, message string)

	// Section emits a cosmetic grouping boundary. There is no matching end
	// call; sections are not a stack.
	Section(title string)
}

// Multi fans a status event out to several sinks. A panicking sink is
// swallowed so the remaining sinks still receive the event.
type Multi struct {
	sinks []Reporter
}

var _ Reporter = (*Multi)(nil)

// NewMulti combines sinks into a single Reporter.
func NewMulti(sinks ...Reporter) *Multi {
	return &Multi{sinks: sinks}
}

// Report forwards the event to every sink.
func (m *Multi) Report(level Level, message string) {
	for _, sink := range m.sinks {
		emit(func() { sink.Report(level, message) })
	}
}

// Section forwards the boundary to every sink.
func (m *Multi) Section(title string) {
	for _, sink := range m.sinks {
		emit(func() { sink.Section(title) })
	}
}

func emit(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func levelTag(l Level) string {
	switch l {
	case LevelSuccess:
		return successStyle.Render("  ok ")
	case LevelWarning:
		return warningStyle.Render(" warn")
	case LevelError:
		return errorStyle.Render("error")
	case LevelSkip:
		return skipStyle.Render(" skip")
	default:
		return infoStyle.Render(" info")
	}
}

// Console renders leveled status lines for a human operator.
type Console struct {
	out io.Writer
}

var _ Reporter = (*Console)(nil)

// NewConsole creates a console sink writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Report writes one styled status line. Write errors are swallowed.
func (c *Console) Report(level Level, message string) {
	fmt.Fprintf(c.out, "%s  %s\n", levelTag(level), message)
}

// Section writes a styled section banner.
func (c *Console) Section(title string) {
	fmt.Fprintf(c.out, "\n%s\n", sectionStyle.Render(title))
}

// Log writes structured status events through the zerolog wrapper so runs
// leave a machine-parseable trail alongside the console output.
type Log struct {
	log *logger.Logger
}

var _ Reporter = (*Log)(nil)

// NewLog creates a structured log sink.
func NewLog(log *logger.Logger) *Log {
	return &Log{log: log}
}

// Report maps status levels onto the logger's levels, tagging success and
// skip events so they stay distinguishable in the structured stream.
func (s *Log) Report(level Level, message string) {
	tagged := s.log.WithFields(map[string]any{"status": level.String()})
	switch level {
	case LevelWarning:
		tagged.Warn(message)
	case LevelError:
		tagged.Error(nil, message)
	default:
		tagged.Info(message)
	}
}

// Section records the boundary as an info entry.
func (s *Log) Section(title string) {
	s.log.WithFields(map[string]any{"section": title}).Info("section")
}
