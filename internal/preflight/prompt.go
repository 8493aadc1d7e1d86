package preflight

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// HuhPrompter renders line prompts with charmbracelet/huh.
type HuhPrompter struct{}

var _ Prompter = (*HuhPrompter)(nil)

// Input shows a single text input and writes the answer into value.
func (HuhPrompter) Input(title string, value *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(value),
		),
	)
	return form.Run()
}

// Interactive reports whether stdin and stdout are attached to a terminal,
// the precondition for prompting at all.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
