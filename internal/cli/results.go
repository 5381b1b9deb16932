package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headline-goat/abtest/internal/store"
)

func newResultsCmd(opts *globalOptions) *cobra.Command {
	var test namedTest

	cmd := &cobra.Command{
		Use:   "results <name>",
		Short: "Run a test on an experiment's recorded values",
		Long: `Run a proportion or mean test on the values recorded for an experiment.

Examples:
  abtest results checkout --numerator signups --denominator visitors
  abtest results checkout --mean revenue --variance revenue_var --count buyers --welch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return opts.withStore(func(ctx context.Context, s *store.SQLiteStore) error {
				e, err := s.GetExperiment(ctx, name)
				if err != nil {
					return notFound(name, err)
				}

				frame, err := s.Frame(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to get metrics: %w", err)
				}

				report, err := test.run(cmd, opts, frame)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if opts.cfg.Format == "text" {
					fmt.Fprintf(out, "EXPERIMENT: %s\n", e.Name)
					fmt.Fprintf(out, "STATE: %s\n", e.State)
					if e.Description != "" {
						fmt.Fprintf(out, "DESCRIPTION: %s\n", e.Description)
					}
					if e.WinnerGroup != "" {
						fmt.Fprintf(out, "WINNER: %s\n", e.WinnerGroup)
					}
					fmt.Fprintf(out, "CREATED: %s\n", e.CreatedAt.Format("2006-01-02"))
					fmt.Fprintln(out)
				}
				return writeReport(out, report, opts.cfg.Format)
			})
		},
	}

	test.register(cmd)

	return cmd
}
