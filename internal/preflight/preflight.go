package preflight

import (
	"context"
	"fmt"

	"github.com/devbench/devbench/internal/model"
	"github.com/devbench/devbench/internal/report"
)

// Field is one piece of input a domain needs from the operator or from
// pre-existing machine configuration.
type Field struct {
	// Key identifies the field inside the collected answer set.
	Key string

	// Prompt is the question shown when interactive collection is needed.
	Prompt string

	// Placeholder is a sentinel value that counts as unconfigured even when
	// the domain's own state reports it (e.g. a template email address left
	// behind by machine imaging).
	Placeholder string
}

// Source answers "what does the machine already know" for one input domain.
// Read is a pure query in the same sense as a capability probe: it must not
// mutate anything and inconclusive reads surface as missing values, never
// errors.
type Source interface {
	Domain() string
	Fields() []Field
	Read(ctx context.Context) map[string]string
}

// Prompter collects a single line of input from the operator.
type Prompter interface {
	Input(title string, value *string) error
}

// Collector gathers every answer the capability list will need, once and up
// front, so a long provisioning run is never blocked mid-way on a human.
// This ordering is a deliberate guarantee, not a consequence of step order.
type Collector struct {
	sources     map[string]Source
	prompter    Prompter
	interactive bool
	reporter    report.Reporter
}

// NewCollector wires sources to a prompter. When interactive is false the
// collector never prompts; fields that cannot be detected stay unanswered
// and are reported as warnings.
func NewCollector(prompter Prompter, interactive bool, reporter report.Reporter, sources ...Source) *Collector {
	bySource := make(map[string]Source, len(sources))
	for _, src := range sources {
		bySource[src.Domain()] = src
	}
	return &Collector{
		sources:     bySource,
		prompter:    prompter,
		interactive: interactive,
		reporter:    reporter,
	}
}

// Collect resolves every field of the named domains. Detected values that
// are neither absent nor the placeholder sentinel are taken as-is without
// prompting, which keeps idempotent re-runs prompt-free.
func (c *Collector) Collect(ctx context.Context, domains []string) (model.Answers, error) {
	answers := make(model.Answers)

	for _, domain := range domains {
		src, ok := c.sources[domain]
		if !ok {
			return nil, fmt.Errorf("no preflight source registered for domain %q", domain)
		}

		detected := src.Read(ctx)

		for _, field := range src.Fields() {
			value := detected[field.Key]
			configured := value != "" && value != field.Placeholder

			if configured {
				answers[field.Key] = model.Answer{Key: field.Key, Value: value, WasPrompted: false}
				continue
			}

			if !c.interactive {
				c.reporter.Report(report.LevelWarning,
					fmt.Sprintf("%s is not configured and prompting is disabled", field.Key))
				continue
			}

			input := ""
			if err := c.prompter.Input(field.Prompt, &input); err != nil {
				return nil, fmt.Errorf("collecting %s: %w", field.Key, err)
			}
			if input == "" {
				c.reporter.Report(report.LevelWarning,
					fmt.Sprintf("no value supplied for %s", field.Key))
				continue
			}

			answers[field.Key] = model.Answer{Key: field.Key, Value: input, WasPrompted: true}
		}
	}

	return answers, nil
}
