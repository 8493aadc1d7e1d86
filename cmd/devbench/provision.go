package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/devbench/devbench/internal/config"
	"github.com/devbench/devbench/internal/engine"
	"github.com/devbench/devbench/internal/execx"
	"github.com/devbench/devbench/internal/pkgmgr"
	"github.com/devbench/devbench/internal/preflight"
	"github.com/devbench/devbench/internal/report"
	"github.com/devbench/devbench/internal/tui"
)

type provisionOptions struct {
	ConfigPath     string
	DryRun         bool
	Verbose        bool
	NonInteractive bool
}

var provisionCmdRunner = runProvision

func newProvisionCmd(root *rootFlags) *cobra.Command {
	opts := provisionOptions{}

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Bring the workstation to its declared state",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DryRun = root.dryRun
			opts.Verbose = root.verbose
			opts.NonInteractive = root.nonInteractive || !preflight.Interactive()

			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}

			return provisionCmdRunner(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (optional)")

	return cmd
}

func runProvision(opts provisionOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	effectiveDryRun := opts.DryRun || cfg.Settings.DryRun
	effectiveVerbose := opts.Verbose || cfg.Settings.Verbose
	interactive := !(opts.NonInteractive || cfg.Settings.NonInteractive)

	log, err := newLogger(effectiveVerbose)
	if err != nil {
		return err
	}
	log = log.WithRun(cfg.Name)

	// Interrupts cancel at the next step boundary; a step already running
	// its external tool finishes first.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	runner := execx.NewSystem()

	// The progress UI owns stdout while interactive, so status lines go only
	// to the structured log; otherwise they render directly on the console.
	var reporter report.Reporter = report.NewLog(log)
	if !interactive {
		reporter = report.NewMulti(report.NewConsole(os.Stdout), report.NewLog(log))
	}

	mgr, err := pkgmgr.Detect(runner, cfg.Settings.PackageManager)
	if err != nil {
		return err
	}

	source := preflight.NewIdentitySource(cfg.Identity.EmailPlaceholder)
	caps, err := buildCapabilities(cfg, source)
	if err != nil {
		return err
	}

	collector := preflight.NewCollector(preflight.HuhPrompter{}, interactive, reporter, source)

	orch := engine.New(engine.Options{
		Capabilities: caps,
		Collector:    collector,
		Reporter:     reporter,
		Logger:       log,
		DryRun:       effectiveDryRun,
	})

	rc := newRunContext(cfg, runner, mgr, reporter, log)

	// Preflight prompts and the progress UI cannot share the terminal, so
	// collection runs to completion before the program starts reading stdin.
	if err := orch.Preflight(ctx, rc); err != nil {
		return err
	}

	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, c.Metadata().Name)
	}
	state := tui.NewModel(cfg.Name, names)

	var program *tea.Program
	var programErr error
	done := make(chan struct{})

	if interactive {
		program = tea.NewProgram(state)
		go func() {
			_, programErr = program.Run()
			close(done)
		}()
	}

	result, runErr := orch.Run(ctx, rc)

	if result != nil {
		for _, outcome := range result.Outcomes {
			dispatchTuiMessage(interactive, program, &state, tui.StepCompleteMsg{Outcome: outcome})
		}
		dispatchTuiMessage(interactive, program, &state, tui.RunDoneMsg{Status: result.Status})
	}

	if interactive {
		if program != nil {
			program.Send(tea.QuitMsg{})
		}
		<-done
		if programErr != nil {
			return programErr
		}
	} else {
		fmt.Fprintln(os.Stdout, state.View())
	}

	if runErr != nil {
		return runErr
	}
	if result.Failed() {
		return fmt.Errorf("provisioning halted; fix the failure above and re-run")
	}

	if !effectiveDryRun {
		os.Setenv(searchPathEnv, rc.SearchPath.String())
		reporter.Report(report.LevelInfo,
			fmt.Sprintf("%s set to %s", searchPathEnv, rc.SearchPath.String()))
	}

	return nil
}

func dispatchTuiMessage(interactive bool, program *tea.Program, state *tui.Model, msg tea.Msg) {
	if interactive {
		if program != nil {
			program.Send(msg)
		}
		return
	}

	updated, _ := state.Update(msg)
	if m, ok := updated.(tui.Model); ok {
		*state = m
	}
}
