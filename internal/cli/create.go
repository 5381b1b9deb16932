package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headline-goat/abtest/internal/store"
)

func newCreateCmd(opts *globalOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new experiment",
		Long: `Create a new experiment with a test and a control group.

Examples:
  abtest create checkout --description "signup rate on the new checkout"
  abtest set checkout test signups 120`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			return opts.withStore(func(ctx context.Context, s *store.SQLiteStore) error {
				e, err := s.CreateExperiment(ctx, name, description)
				if err != nil {
					return fmt.Errorf("failed to create experiment: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Created experiment '%s'\n", e.Name)
				if e.Description != "" {
					fmt.Fprintf(out, "  Description: %s\n", e.Description)
				}
				fmt.Fprintf(out, "\nRecord values with: abtest set %s <test|control> <field> <value>\n", e.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "what the experiment measures (optional)")

	return cmd
}
