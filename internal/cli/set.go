package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headline-goat/abtest/internal/store"
)

func newSetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <group> <field> <value>",
		Short: "Set one value of an experiment's table",
		Long: `Set a numeric column of the test or control group of an experiment.
An existing value is replaced.

Examples:
  abtest set checkout test signups 120
  abtest set checkout control visitors 1000`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, group, field := args[0], strings.ToLower(args[1]), args[2]
			value, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[3], err)
			}

			return opts.withStore(func(ctx context.Context, s *store.SQLiteStore) error {
				if err := s.SetMetric(ctx, name, group, field, value); err != nil {
					return notFound(name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s.%s.%s = %g\n", name, group, field, value)
				return nil
			})
		},
	}
}
