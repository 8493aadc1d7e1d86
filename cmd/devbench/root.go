package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose        bool
	dryRun         bool
	nonInteractive bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "devbench",
		Short:         "devbench provisions imaging workstations idempotently",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Preview required installs without making changes")
	cmd.PersistentFlags().BoolVar(&flags.nonInteractive, "non-interactive", false, "Never prompt; missing input becomes a warning")

	cmd.AddCommand(newProvisionCmd(flags))
	cmd.AddCommand(newStatusCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
