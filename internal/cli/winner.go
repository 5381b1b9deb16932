package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headline-goat/abtest/internal/store"
)

func newWinnerCmd(opts *globalOptions) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "winner <name>",
		Short: "Declare a winner for an experiment",
		Long: `Declare the winning group of an experiment and complete it.

Example:
  abtest winner checkout --group test`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return opts.withStore(func(ctx context.Context, s *store.SQLiteStore) error {
				e, err := s.GetExperiment(ctx, name)
				if err != nil {
					return notFound(name, err)
				}

				// Validate experiment is running
				if e.State != store.StateRunning {
					return fmt.Errorf("experiment is not running (current state: %s)", e.State)
				}

				if err := s.SetWinner(ctx, name, strings.ToLower(group)); err != nil {
					return fmt.Errorf("failed to set winner: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Declared winner for experiment '%s': %s\n", name, strings.ToLower(group))
				fmt.Fprintln(cmd.OutOrStdout(), "Experiment has been marked as completed.")
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "winning group: test or control (required)")
	cmd.MarkFlagRequired("group")

	return cmd
}
