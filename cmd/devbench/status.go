package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devbench/devbench/internal/config"
	"github.com/devbench/devbench/internal/execx"
	"github.com/devbench/devbench/internal/preflight"
	"github.com/devbench/devbench/internal/report"
)

type statusOptions struct {
	ConfigPath string
	Verbose    bool
}

var statusCmdRunner = runStatus

func newStatusCmd(root *rootFlags) *cobra.Command {
	opts := statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Probe every capability without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose

			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}

			return statusCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (optional)")

	return cmd
}

// runStatus probes each capability in order and reports its state. Probes
// are pure queries, so status never mutates the machine. The exit code is
// non-zero when anything is unsatisfied so scripted checks can gate on it.
func runStatus(opts statusOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	log = log.WithRun(cfg.Name)

	runner := execx.NewSystem()
	reporter := report.NewMulti(report.NewConsole(os.Stdout), report.NewLog(log))

	source := preflight.NewIdentitySource(cfg.Identity.EmailPlaceholder)
	caps, err := buildCapabilities(cfg, source)
	if err != nil {
		return err
	}

	// Probes tolerate a nil package manager; only installers need one, and
	// status must work on machines that fail that prerequisite.
	rc := newRunContext(cfg, runner, nil, reporter, log)

	ctx := context.Background()
	reporter.Section(cfg.Name)

	unsatisfied := 0
	for _, c := range caps {
		meta := c.Metadata()
		probe := c.Probe(ctx, rc)

		if probe.Satisfied {
			reporter.Report(report.LevelSuccess, fmt.Sprintf("%s: %s", meta.Name, probe.Detail))
			continue
		}

		unsatisfied++
		detail := probe.Detail
		if detail == "" {
			detail = "not satisfied"
		}
		reporter.Report(report.LevelWarning, fmt.Sprintf("%s: %s", meta.Name, detail))
	}

	if unsatisfied > 0 {
		return fmt.Errorf("%d of %d capabilities need provisioning", unsatisfied, len(caps))
	}

	reporter.Report(report.LevelSuccess, "workstation is fully provisioned")
	return nil
}
