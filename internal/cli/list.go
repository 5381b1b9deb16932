package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/headline-goat/abtest/internal/store"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all experiments",
		Long:  `List all experiments with their state and recorded columns.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(func(ctx context.Context, s *store.SQLiteStore) error {
				experiments, err := s.ListExperiments(ctx)
				if err != nil {
					return fmt.Errorf("failed to list experiments: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(experiments) == 0 {
					fmt.Fprintln(out, "No experiments yet.")
					fmt.Fprintln(out)
					fmt.Fprintln(out, "Create one with: abtest create <name>")
					return nil
				}

				// Print table
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tSTATE\tWINNER\tFIELDS\tCREATED")

				for _, e := range experiments {
					frame, err := s.Frame(ctx, e.Name)
					if err != nil {
						return fmt.Errorf("failed to get metrics for experiment %s: %w", e.Name, err)
					}

					winner := e.WinnerGroup
					if winner == "" {
						winner = "-"
					}
					fields := strings.Join(frame.Fields(), ",")
					if fields == "" {
						fields = "-"
					}

					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						e.Name,
						strings.ToUpper(string(e.State)),
						winner,
						fields,
						e.CreatedAt.Format("2006-01-02"),
					)
				}

				return w.Flush()
			})
		},
	}
}
